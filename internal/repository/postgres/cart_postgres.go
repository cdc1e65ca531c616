package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maxviazov/storefront-views/internal/model"
	"github.com/maxviazov/storefront-views/internal/repository"
)

type cartRepository struct{ pool *pgxpool.Pool }

func NewCartRepository(pool *pgxpool.Pool) repository.CartRepository {
	return &cartRepository{pool: pool}
}

// GetByID loads the cart header, then its lines joined with their products
// in the order they were added.
func (r *cartRepository) GetByID(ctx context.Context, id string) (model.Cart, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Cart{}, err
	}

	var c model.Cart
	err := r.pool.QueryRow(ctx,
		`SELECT id::text, created_at, updated_at FROM carts WHERE id = $1`, id,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Cart{}, repository.ErrNotFound
		}
		return model.Cart{}, repository.MapPgError(err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT ci.quantity,
		        p.id::text, p.title, p.description, p.code, p.price::float8, p.status, p.stock, p.category,
		        COALESCE(p.thumbnails, '{}'::text[]), p.created_at, p.updated_at
		 FROM cart_items ci
		 JOIN products p ON p.id = ci.product_id
		 WHERE ci.cart_id = $1
		 ORDER BY ci.added_at, p.id`, id,
	)
	if err != nil {
		return model.Cart{}, repository.MapPgError(err)
	}
	defer rows.Close()

	c.Items = []model.CartItem{}
	for rows.Next() {
		var it model.CartItem
		p := &it.Product
		if err := rows.Scan(&it.Quantity, &p.ID, &p.Title, &p.Description, &p.Code, &p.Price, &p.Status,
			&p.Stock, &p.Category, &p.Thumbnails, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return model.Cart{}, repository.MapPgError(err)
		}
		c.Items = append(c.Items, it)
	}
	if err := rows.Err(); err != nil {
		return model.Cart{}, repository.MapPgError(err)
	}
	return c, nil
}

var _ repository.CartRepository = (*cartRepository)(nil)
