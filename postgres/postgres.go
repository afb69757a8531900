package postgres

import (
	"context"
	"embed"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nicolasparada/go-db"
)

//go:embed migrations/*.sql
var MigrationsFS embed.FS

const defaultCallTimeout = 5 * time.Second

// Postgres is the store gateway over the hosted relational store.
// Every call runs under a per-call deadline so a stalled store connection
// surfaces as an error instead of hanging the request.
type Postgres struct {
	db          *db.DB
	callTimeout time.Duration
}

func New(pool *pgxpool.Pool, callTimeout time.Duration) *Postgres {
	if callTimeout <= 0 {
		callTimeout = defaultCallTimeout
	}
	return &Postgres{
		db:          db.New(pool),
		callTimeout: callTimeout,
	}
}

func (pg *Postgres) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, pg.callTimeout)
}
