package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgxutil"
	"github.com/nicolasparada/go-db"
	"github.com/nicolasparada/go-errs"

	"github.com/dapamarket/dapa/id"
	"github.com/dapamarket/dapa/types"
)

func (pg *Postgres) Messages(ctx context.Context, conversationID string) ([]types.Message, error) {
	ctx, cancel := pg.callCtx(ctx)
	defer cancel()

	const q = `
		SELECT messages.*
		FROM messages
		WHERE messages.conversation_id = @conversation_id
		ORDER BY messages.created_at ASC, messages.id ASC
	`

	rows, err := pg.db.Query(ctx, q, pgx.StrictNamedArgs{
		"conversation_id": conversationID,
	})
	if err != nil {
		return nil, fmt.Errorf("sql select messages: %w", err)
	}

	out, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[types.Message])
	if err != nil {
		return nil, fmt.Errorf("sql collect messages: %w", err)
	}

	return out, nil
}

func (pg *Postgres) LatestMessage(ctx context.Context, conversationID string) (types.Message, error) {
	var out types.Message

	ctx, cancel := pg.callCtx(ctx)
	defer cancel()

	const q = `
		SELECT messages.*
		FROM messages
		WHERE messages.conversation_id = @conversation_id
		ORDER BY messages.created_at DESC, messages.id DESC
		LIMIT 1
	`

	rows, err := pg.db.Query(ctx, q, pgx.StrictNamedArgs{
		"conversation_id": conversationID,
	})
	if err != nil {
		return out, fmt.Errorf("sql select latest message: %w", err)
	}

	out, err = pgx.CollectExactlyOneRow(rows, pgx.RowToStructByNameLax[types.Message])
	if db.IsNotFoundError(err) {
		return out, errs.NotFoundError("message not found")
	}

	if err != nil {
		return out, fmt.Errorf("sql collect latest message: %w", err)
	}

	return out, nil
}

func (pg *Postgres) CreateMessage(ctx context.Context, in types.CreateMessage) (types.Message, error) {
	var out types.Message

	ctx, cancel := pg.callCtx(ctx)
	defer cancel()

	const q = `
		INSERT INTO messages (id, conversation_id, author_id, body)
		VALUES (@message_id, @conversation_id, @author_id, @body)
		RETURNING messages.*
	`
	args := pgx.StrictNamedArgs{
		"message_id":      id.Generate(),
		"conversation_id": in.ConversationID,
		"author_id":       in.AuthorID,
		"body":            in.Body,
	}

	out, err := pgxutil.SelectRow(ctx, pg.db, q, []any{args}, pgx.RowToStructByNameLax[types.Message])
	if db.IsForeignKeyViolationError(err) {
		return out, errs.NotFoundError("conversation not found")
	}

	if err != nil {
		return out, fmt.Errorf("sql insert message: %w", err)
	}

	return out, nil
}

// MessageFlags fetches only the author and read flag of every message in
// the conversation, which is all the unread counter needs.
func (pg *Postgres) MessageFlags(ctx context.Context, conversationID string) ([]types.MessageFlag, error) {
	ctx, cancel := pg.callCtx(ctx)
	defer cancel()

	const q = `
		SELECT messages.author_id, messages.read
		FROM messages
		WHERE messages.conversation_id = @conversation_id
	`

	rows, err := pg.db.Query(ctx, q, pgx.StrictNamedArgs{
		"conversation_id": conversationID,
	})
	if err != nil {
		return nil, fmt.Errorf("sql select message flags: %w", err)
	}

	out, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[types.MessageFlag])
	if err != nil {
		return nil, fmt.Errorf("sql collect message flags: %w", err)
	}

	return out, nil
}

// MarkConversationRead flips the read flag on every message in the
// conversation. Idempotent: a second call matches zero rows.
func (pg *Postgres) MarkConversationRead(ctx context.Context, conversationID string) (int64, error) {
	ctx, cancel := pg.callCtx(ctx)
	defer cancel()

	const q = `
		UPDATE messages
		SET read = true
		WHERE conversation_id = @conversation_id
			AND read = false
	`

	tag, err := pg.db.Exec(ctx, q, pgx.StrictNamedArgs{
		"conversation_id": conversationID,
	})
	if err != nil {
		return 0, fmt.Errorf("sql mark conversation read: %w", err)
	}

	return tag.RowsAffected(), nil
}
