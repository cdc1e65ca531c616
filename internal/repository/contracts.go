package repository

import (
	"context"

	"github.com/maxviazov/storefront-views/internal/model"
)

// Pinger represents a minimal readiness probe capability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ProductFilter narrows a product listing. Empty strings mean "no filter".
// Status is "true" or "false" (availability) and SortByPrice is "asc" or "desc".
type ProductFilter struct {
	Page        Page
	Category    string
	Status      string
	Title       string
	SortByPrice string
}

// ProductRepository is the read side of the catalog.
type ProductRepository interface {
	List(ctx context.Context, f ProductFilter) (PageResult[model.Product], error)
	GetByID(ctx context.Context, id string) (model.Product, error)
}

// CartRepository loads carts with their product lines populated.
type CartRepository interface {
	GetByID(ctx context.Context, id string) (model.Cart, error)
}

// UserRepository lists accounts for the admin users page.
type UserRepository interface {
	List(ctx context.Context, p Page) (PageResult[model.User], error)
}
