package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maxviazov/storefront-views/internal/model"
	"github.com/maxviazov/storefront-views/internal/repository"
)

const productColumns = `id::text, title, description, code, price::float8, status, stock, category,
	COALESCE(thumbnails, '{}'::text[]), created_at, updated_at`

type productRepository struct{ pool *pgxpool.Pool }

func NewProductRepository(pool *pgxpool.Pool) repository.ProductRepository {
	return &productRepository{pool: pool}
}

func scanProduct(row pgx.Row, p *model.Product) error {
	return row.Scan(&p.ID, &p.Title, &p.Description, &p.Code, &p.Price, &p.Status, &p.Stock,
		&p.Category, &p.Thumbnails, &p.CreatedAt, &p.UpdatedAt)
}

// productWhere turns a filter into predicates. Title is a case-insensitive substring match.
func productWhere(f repository.ProductFilter) (*whereBuilder, error) {
	w := &whereBuilder{}
	if f.Category != "" {
		w.add("category = $%d", f.Category)
	}
	if f.Status != "" {
		status, err := strconv.ParseBool(f.Status)
		if err != nil {
			return nil, fmt.Errorf("status %q: %w", f.Status, repository.ErrInvalidQuery)
		}
		w.add("status = $%d", status)
	}
	if f.Title != "" {
		w.add("title ILIKE '%%' || $%d || '%%'", f.Title)
	}
	return w, nil
}

func productOrder(sortByPrice string) string {
	switch sortByPrice {
	case "asc":
		return " ORDER BY price ASC, id"
	case "desc":
		return " ORDER BY price DESC, id"
	default:
		return " ORDER BY created_at DESC, id"
	}
}

func (r *productRepository) List(ctx context.Context, f repository.ProductFilter) (repository.PageResult[model.Product], error) {
	if err := ensurePool(r.pool); err != nil {
		return repository.PageResult[model.Product]{}, err
	}
	number, limit := sanitizePage(f.Page.Number, f.Page.Limit)
	page := repository.Page{Number: number, Limit: limit}

	w, err := productWhere(f)
	if err != nil {
		return repository.PageResult[model.Product]{}, err
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`+w.String(), w.args...).Scan(&total); err != nil {
		return repository.PageResult[model.Product]{}, repository.MapPgError(err)
	}

	query := `SELECT ` + productColumns + ` FROM products` + w.String() + productOrder(f.SortByPrice) +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", w.next(), w.next()+1)
	args := append(w.args, limit, page.Offset())

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return repository.PageResult[model.Product]{}, repository.MapPgError(err)
	}
	defer rows.Close()

	res := repository.PageResult[model.Product]{Items: make([]model.Product, 0, limit), PageMeta: repository.NewPageMeta(page, total)}
	for rows.Next() {
		var p model.Product
		if err := scanProduct(rows, &p); err != nil {
			return repository.PageResult[model.Product]{}, repository.MapPgError(err)
		}
		res.Items = append(res.Items, p)
	}
	if err := rows.Err(); err != nil {
		return repository.PageResult[model.Product]{}, repository.MapPgError(err)
	}
	return res, nil
}

func (r *productRepository) GetByID(ctx context.Context, id string) (model.Product, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Product{}, err
	}
	var p model.Product
	row := r.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	if err := scanProduct(row, &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Product{}, repository.ErrNotFound
		}
		return model.Product{}, repository.MapPgError(err)
	}
	return p, nil
}

var _ repository.ProductRepository = (*productRepository)(nil)
