package service

import (
	"context"

	"github.com/dapamarket/dapa/types"
)

func (svc *Service) Products(ctx context.Context, in types.ListProducts) (types.Page[types.Product], error) {
	var out types.Page[types.Product]

	if err := in.PageArgs.Validate(); err != nil {
		return out, err
	}

	return svc.Store.Products(ctx, in)
}

func (svc *Service) Product(ctx context.Context, productID string) (types.Product, error) {
	out, err := svc.Store.Product(ctx, productID)
	if err != nil {
		return out, err
	}

	if out.Seller != nil {
		ensureAvatar(out.Seller)
	}

	return out, nil
}

func (svc *Service) CreateProduct(ctx context.Context, in types.CreateProduct) (types.Product, error) {
	var out types.Product

	if err := in.Validate(); err != nil {
		return out, err
	}

	return svc.Store.CreateProduct(ctx, in)
}

// NearbyProducts returns an empty feed for now.
// TODO: implement location-based filtering once listings carry coordinates.
func (svc *Service) NearbyProducts(ctx context.Context) ([]types.Product, error) {
	return []types.Product{}, nil
}
