package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maxviazov/storefront-views/internal/model"
	"github.com/maxviazov/storefront-views/internal/repository"
)

type userRepository struct{ pool *pgxpool.Pool }

func NewUserRepository(pool *pgxpool.Pool) repository.UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) List(ctx context.Context, p repository.Page) (repository.PageResult[model.User], error) {
	if err := ensurePool(r.pool); err != nil {
		return repository.PageResult[model.User]{}, err
	}
	number, limit := sanitizePage(p.Number, p.Limit)
	page := repository.Page{Number: number, Limit: limit}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return repository.PageResult[model.User]{}, repository.MapPgError(err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id::text, first_name, last_name, email, age, role, COALESCE(cart_id::text, ''), created_at
		 FROM users
		 ORDER BY created_at, id
		 LIMIT $1 OFFSET $2`,
		limit, page.Offset(),
	)
	if err != nil {
		return repository.PageResult[model.User]{}, repository.MapPgError(err)
	}
	defer rows.Close()

	res := repository.PageResult[model.User]{Items: make([]model.User, 0, limit), PageMeta: repository.NewPageMeta(page, total)}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Age, &u.Role, &u.CartID, &u.CreatedAt); err != nil {
			return repository.PageResult[model.User]{}, repository.MapPgError(err)
		}
		res.Items = append(res.Items, u)
	}
	if err := rows.Err(); err != nil {
		return repository.PageResult[model.User]{}, repository.MapPgError(err)
	}
	return res, nil
}

var _ repository.UserRepository = (*userRepository)(nil)
