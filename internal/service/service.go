// Package service holds the lookup use cases the storefront views consume.
// It validates and normalizes inputs, then delegates to repositories.
package service

import (
	"context"
	"errors"

	"github.com/maxviazov/storefront-views/internal/model"
	"github.com/maxviazov/storefront-views/internal/repository"
)

// ErrInvalidInput is the marker error for aggregated validation failures (maps to HTTP 400).
// Field-level details are retrieved via FieldErrors(err).
var ErrInvalidInput = errors.New("invalid input")

// FieldError describes a single invalid field in a client request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type invalidInputError struct {
	fields []FieldError
}

func (e *invalidInputError) Error() string        { return ErrInvalidInput.Error() }
func (e *invalidInputError) Unwrap() error        { return ErrInvalidInput }
func (e *invalidInputError) Fields() []FieldError { return e.fields }

func newInvalidInput(fe []FieldError) error {
	if len(fe) == 0 {
		return nil
	}
	return &invalidInputError{fields: fe}
}

// NewInvalidInputError lets transport code report its own parse failures in the same shape.
func NewInvalidInputError(fe []FieldError) error { return newInvalidInput(fe) }

// FieldErrors extracts field errors from an aggregated validation error.
func FieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}
	var v interface{ Fields() []FieldError }
	if errors.As(err, &v) && errors.Is(err, ErrInvalidInput) {
		return v.Fields()
	}
	return nil
}

// ProductService is the product lookup behind the catalog pages.
type ProductService interface {
	GetProducts(ctx context.Context, filter repository.ProductFilter) (repository.PageResult[model.Product], error)
	GetProductByID(ctx context.Context, id string) (model.Product, error)
}

// CartService is the cart lookup behind the cart page.
type CartService interface {
	GetCartByID(ctx context.Context, id string) (model.Cart, error)
}

// UserService is the user lookup behind the admin users page.
type UserService interface {
	GetUsers(ctx context.Context, page repository.Page) (repository.PageResult[model.User], error)
}
