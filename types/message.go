package types

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/nicolasparada/go-errs"
)

// Message is immutable after creation except for the Read flag, which is
// flipped by the read-marking operation only.
type Message struct {
	ID             string    `json:"id" db:"id"`
	ConversationID string    `json:"conversation_id" db:"conversation_id"`
	AuthorID       string    `json:"author_id" db:"author_id"`
	Body           string    `json:"body" db:"body"`
	Read           bool      `json:"read" db:"read"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// MessageFlag carries the two message fields the unread counter scans,
// keeping the per-conversation payload small.
type MessageFlag struct {
	AuthorID string `db:"author_id"`
	Read     bool   `db:"read"`
}

type CreateMessage struct {
	ConversationID string `json:"conversation_id"`
	AuthorID       string `json:"author_id"`
	Body           string `json:"body"`
}

func (in *CreateMessage) Validate() error {
	in.Body = strings.TrimSpace(in.Body)

	if in.ConversationID == "" {
		return errs.InvalidArgumentError("conversation ID is required")
	}
	if in.AuthorID == "" {
		return errs.InvalidArgumentError("author ID is required")
	}
	if in.Body == "" {
		return errs.InvalidArgumentError("message body is required")
	}
	if utf8.RuneCountInString(in.Body) > 1000 {
		return errs.InvalidArgumentError("message body must be at most 1000 characters")
	}
	return nil
}

type ListMessages struct {
	ConversationID string
}

func (in *ListMessages) Validate() error {
	if in.ConversationID == "" {
		return errs.InvalidArgumentError("conversation ID is required")
	}
	return nil
}
