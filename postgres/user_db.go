package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/nicolasparada/go-db"
	"github.com/nicolasparada/go-errs"

	"github.com/dapamarket/dapa/types"
)

func (pg *Postgres) User(ctx context.Context, userID string) (types.User, error) {
	var out types.User

	ctx, cancel := pg.callCtx(ctx)
	defer cancel()

	const q = `
		SELECT users.*
		FROM users
		WHERE users.id = @user_id
	`

	rows, err := pg.db.Query(ctx, q, pgx.StrictNamedArgs{
		"user_id": userID,
	})
	if err != nil {
		return out, fmt.Errorf("sql select user: %w", err)
	}

	out, err = pgx.CollectExactlyOneRow(rows, pgx.RowToStructByNameLax[types.User])
	if db.IsNotFoundError(err) {
		return out, errs.NotFoundError("user not found")
	}

	if err != nil {
		return out, fmt.Errorf("sql collect user: %w", err)
	}

	return out, nil
}

// UserHandles resolves a batch of user IDs to display handles in one query.
// IDs with no matching row are simply absent from the result.
func (pg *Postgres) UserHandles(ctx context.Context, userIDs []string) (map[string]string, error) {
	if len(userIDs) == 0 {
		return map[string]string{}, nil
	}

	ctx, cancel := pg.callCtx(ctx)
	defer cancel()

	const q = `
		SELECT users.id, users.handle
		FROM users
		WHERE users.id = ANY(@user_ids)
	`

	rows, err := pg.db.Query(ctx, q, pgx.StrictNamedArgs{
		"user_ids": userIDs,
	})
	if err != nil {
		return nil, fmt.Errorf("sql select user handles: %w", err)
	}

	type row struct {
		ID     string `db:"id"`
		Handle string `db:"handle"`
	}

	collected, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[row])
	if err != nil {
		return nil, fmt.Errorf("sql collect user handles: %w", err)
	}

	out := make(map[string]string, len(collected))
	for _, r := range collected {
		out[r.ID] = r.Handle
	}

	return out, nil
}
