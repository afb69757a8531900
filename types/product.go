package types

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/nicolasparada/go-errs"
)

type Product struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Price       int64     `json:"price" db:"price"`
	Description string    `json:"description" db:"description"`
	Image       *string   `json:"image" db:"image"`
	OwnerID     string    `json:"owner_id" db:"owner_id"`
	Active      bool      `json:"active" db:"active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`

	// SellerLocation is denormalized from the owning user so product
	// listings render a location without a second lookup.
	SellerLocation string `json:"seller_location" db:"seller_location"`

	Seller *User `json:"seller,omitempty" db:"seller"`
}

type CreateProduct struct {
	Name        string  `json:"name"`
	Price       int64   `json:"price"`
	Description string  `json:"description"`
	Image       *string `json:"image"`
	OwnerID     string  `json:"owner_id"`
}

func (in *CreateProduct) Validate() error {
	in.Name = strings.TrimSpace(in.Name)

	if in.Name == "" {
		return errs.InvalidArgumentError("product name is required")
	}
	if utf8.RuneCountInString(in.Name) > 100 {
		return errs.InvalidArgumentError("product name must be at most 100 characters")
	}
	if in.OwnerID == "" {
		return errs.InvalidArgumentError("product owner is required")
	}
	if in.Price < 0 {
		return errs.InvalidArgumentError("product price cannot be negative")
	}
	return nil
}

type ListProducts struct {
	PageArgs PageArgs
}
