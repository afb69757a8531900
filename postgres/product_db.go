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

const sqlProductCols = `
	  products.id
	, products.name
	, products.price
	, products.description
	, products.image
	, products.owner_id
	, products.active
	, products.created_at
`

func (pg *Postgres) Products(ctx context.Context, in types.ListProducts) (types.Page[types.Product], error) {
	var out types.Page[types.Product]

	ctx, cancel := pg.callCtx(ctx)
	defer cancel()

	limit := normalizePageSize(in.PageArgs.First)

	query := `
		SELECT ` + sqlProductCols + `,
			users.location AS seller_location
		FROM products
		INNER JOIN users ON users.id = products.owner_id
	`
	args := pgx.StrictNamedArgs{
		"limit": limit + 1,
	}

	if in.PageArgs.After != nil {
		after, err := DecodeCursor(*in.PageArgs.After)
		if err != nil {
			return out, err
		}

		query += ` WHERE (products.created_at, products.id) < (@after_created_at, @after_id)`
		args["after_created_at"] = after.CreatedAt
		args["after_id"] = after.ID
	}

	query += `
		ORDER BY products.created_at DESC, products.id DESC
		LIMIT @limit
	`

	rows, err := pg.db.Query(ctx, query, args)
	if err != nil {
		return out, fmt.Errorf("sql select products: %w", err)
	}

	out.Items, err = pgx.CollectRows(rows, pgx.RowToStructByNameLax[types.Product])
	if err != nil {
		return out, fmt.Errorf("sql collect products: %w", err)
	}

	if uint(len(out.Items)) > limit {
		out.Items = out.Items[:limit]
		out.HasNextPage = true
	}

	if l := len(out.Items); l != 0 {
		last := out.Items[l-1]
		c, err := EncodeCursor(Cursor{ID: last.ID, CreatedAt: last.CreatedAt})
		if err != nil {
			return out, fmt.Errorf("encode products end cursor: %w", err)
		}
		out.EndCursor = new(c)
	}

	return out, nil
}

func (pg *Postgres) Product(ctx context.Context, productID string) (types.Product, error) {
	var out types.Product

	ctx, cancel := pg.callCtx(ctx)
	defer cancel()

	const q = `
		SELECT ` + sqlProductCols + `,
			users.location AS seller_location,
			json_build_object(
				'id', users.id,
				'handle', users.handle,
				'avatar', users.avatar,
				'location', users.location,
				'created_at', users.created_at
			) AS seller
		FROM products
		INNER JOIN users ON users.id = products.owner_id
		WHERE products.id = @product_id
	`

	rows, err := pg.db.Query(ctx, q, pgx.StrictNamedArgs{
		"product_id": productID,
	})
	if err != nil {
		return out, fmt.Errorf("sql select product: %w", err)
	}

	out, err = pgx.CollectExactlyOneRow(rows, pgx.RowToStructByNameLax[types.Product])
	if db.IsNotFoundError(err) {
		return out, errs.NotFoundError("product not found")
	}

	if err != nil {
		return out, fmt.Errorf("sql collect product: %w", err)
	}

	return out, nil
}

func (pg *Postgres) CreateProduct(ctx context.Context, in types.CreateProduct) (types.Product, error) {
	var out types.Product

	ctx, cancel := pg.callCtx(ctx)
	defer cancel()

	const q = `
		INSERT INTO products (id, name, price, description, image, owner_id, active)
		VALUES (@product_id, @name, @price, @description, @image, @owner_id, true)
		RETURNING ` + sqlProductCols + `
	`
	args := pgx.StrictNamedArgs{
		"product_id":  id.Generate(),
		"name":        in.Name,
		"price":       in.Price,
		"description": in.Description,
		"image":       in.Image,
		"owner_id":    in.OwnerID,
	}

	out, err := pgxutil.SelectRow(ctx, pg.db, q, []any{args}, pgx.RowToStructByNameLax[types.Product])
	if db.IsForeignKeyViolationError(err) {
		return out, errs.InvalidArgumentError("product owner does not exist")
	}

	if err != nil {
		return out, fmt.Errorf("sql insert product: %w", err)
	}

	return out, nil
}

// ProductOwners resolves a batch of product IDs to their owning user IDs
// in one query. Missing products are absent from the result.
func (pg *Postgres) ProductOwners(ctx context.Context, productIDs []string) (map[string]string, error) {
	if len(productIDs) == 0 {
		return map[string]string{}, nil
	}

	ctx, cancel := pg.callCtx(ctx)
	defer cancel()

	const q = `
		SELECT products.id, products.owner_id
		FROM products
		WHERE products.id = ANY(@product_ids)
	`

	rows, err := pg.db.Query(ctx, q, pgx.StrictNamedArgs{
		"product_ids": productIDs,
	})
	if err != nil {
		return nil, fmt.Errorf("sql select product owners: %w", err)
	}

	type row struct {
		ID      string `db:"id"`
		OwnerID string `db:"owner_id"`
	}

	collected, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[row])
	if err != nil {
		return nil, fmt.Errorf("sql collect product owners: %w", err)
	}

	out := make(map[string]string, len(collected))
	for _, r := range collected {
		out[r.ID] = r.OwnerID
	}

	return out, nil
}
