package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/nicolasparada/go-db"
	"github.com/nicolasparada/go-errs"

	"github.com/dapamarket/dapa/types"
)

// ConversationsForUser returns every conversation in which the user holds
// either role: counterpart directly, or seller through the listing.
// Ordered by last activity, newest first; conversations with no messages
// yet sort last; ties break on ascending ID so the order is deterministic.
func (pg *Postgres) ConversationsForUser(ctx context.Context, userID string) ([]types.Conversation, error) {
	ctx, cancel := pg.callCtx(ctx)
	defer cancel()

	// LEFT JOIN: a conversation whose listing row has gone missing still
	// belongs to its counterpart; the resolver renders it with a sentinel
	// name instead of dropping it from the list.
	const q = `
		SELECT conversations.*
		FROM conversations
		LEFT JOIN products ON products.id = conversations.product_id
		WHERE conversations.counterpart_id = @user_id
			OR products.owner_id = @user_id
		ORDER BY conversations.last_message_at DESC NULLS LAST, conversations.id ASC
	`

	rows, err := pg.db.Query(ctx, q, pgx.StrictNamedArgs{
		"user_id": userID,
	})
	if err != nil {
		return nil, fmt.Errorf("sql select conversations: %w", err)
	}

	out, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[types.Conversation])
	if err != nil {
		return nil, fmt.Errorf("sql collect conversations: %w", err)
	}

	return out, nil
}

func (pg *Postgres) Conversation(ctx context.Context, conversationID string) (types.Conversation, error) {
	var out types.Conversation

	ctx, cancel := pg.callCtx(ctx)
	defer cancel()

	const q = `
		SELECT conversations.*
		FROM conversations
		WHERE conversations.id = @conversation_id
	`

	rows, err := pg.db.Query(ctx, q, pgx.StrictNamedArgs{
		"conversation_id": conversationID,
	})
	if err != nil {
		return out, fmt.Errorf("sql select conversation: %w", err)
	}

	out, err = pgx.CollectExactlyOneRow(rows, pgx.RowToStructByNameLax[types.Conversation])
	if db.IsNotFoundError(err) {
		return out, errs.NotFoundError("conversation not found")
	}

	if err != nil {
		return out, fmt.Errorf("sql collect conversation: %w", err)
	}

	return out, nil
}

// SetConversationLastMessage overwrites the denormalized last-message
// cache fields. The cache maintainer is the only caller; nothing else may
// touch these two columns once messages exist.
func (pg *Postgres) SetConversationLastMessage(ctx context.Context, conversationID, text string, at time.Time) error {
	ctx, cancel := pg.callCtx(ctx)
	defer cancel()

	const q = `
		UPDATE conversations
		SET last_message_text = @text,
			last_message_at = @at
		WHERE id = @conversation_id
	`

	_, err := pg.db.Exec(ctx, q, pgx.StrictNamedArgs{
		"conversation_id": conversationID,
		"text":            text,
		"at":              at,
	})
	if err != nil {
		return fmt.Errorf("sql update conversation last message: %w", err)
	}

	return nil
}
