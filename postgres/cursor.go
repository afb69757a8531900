package postgres

import (
	"fmt"
	"time"

	"github.com/btcsuite/btcutil/base58"
	"github.com/nicolasparada/go-errs"
	"github.com/vmihailenco/msgpack/v5"
)

const defaultPageSize = 25

// Cursor marks a position in the product feed. Encoded cursors are opaque
// to clients: msgpack for compactness, base58 so they survive URLs.
type Cursor struct {
	ID        string    `msgpack:"i"`
	CreatedAt time.Time `msgpack:"t"`
}

func EncodeCursor(c Cursor) (string, error) {
	b, err := msgpack.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("msgpack marshal cursor: %w", err)
	}

	return base58.Encode(b), nil
}

func DecodeCursor(s string) (Cursor, error) {
	var c Cursor

	b := base58.Decode(s)
	if err := msgpack.Unmarshal(b, &c); err != nil {
		return c, errs.InvalidArgumentError("invalid cursor")
	}

	return c, nil
}

func normalizePageSize(first *uint) uint {
	if first == nil || *first == 0 {
		return defaultPageSize
	}
	return *first
}
