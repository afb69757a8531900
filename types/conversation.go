package types

import (
	"time"

	"github.com/nicolasparada/go-errs"
)

// Conversation ties a product listing to an interested user. The seller
// side is reached through the listing: conversation → product → owner.
// last_message_text and last_message_at are denormalized cache fields;
// they are null until the first message and may be stale for rows that
// predate the cache maintenance logic.
type Conversation struct {
	ID              string     `json:"id" db:"id"`
	ProductID       string     `json:"product_id" db:"product_id"`
	CounterpartID   string     `json:"counterpart_id" db:"counterpart_id"`
	LastMessageText *string    `json:"last_message_text" db:"last_message_text"`
	LastMessageAt   *time.Time `json:"last_message_at" db:"last_message_at"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
}

// ConversationSummary is built fresh on every list request and never
// persisted. OpponentName and UnreadCount are additive keys on top of the
// conversation's own fields.
type ConversationSummary struct {
	Conversation
	OpponentName string `json:"opponent_name"`
	UnreadCount  int    `json:"unread_count"`
}

type ListConversations struct {
	UserID string
}

func (in *ListConversations) Validate() error {
	if in.UserID == "" {
		return errs.InvalidArgumentError("userId is required")
	}
	return nil
}

type MarkConversationRead struct {
	ConversationID string
}

func (in *MarkConversationRead) Validate() error {
	if in.ConversationID == "" {
		return errs.InvalidArgumentError("conversation ID is required")
	}
	return nil
}

type MarkedRead struct {
	Success bool  `json:"success"`
	Count   int64 `json:"count"`
}
