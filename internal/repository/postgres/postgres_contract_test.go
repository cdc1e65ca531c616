package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/maxviazov/storefront-views/internal/config"
	"github.com/maxviazov/storefront-views/internal/model"
	"github.com/maxviazov/storefront-views/internal/repository"
	"github.com/maxviazov/storefront-views/internal/repository/contract"
)

var (
	db     *sql.DB
	pool   *pgxpool.Pool
	skippy bool
)

func TestMain(m *testing.M) {
	if os.Getenv("CONTRACT_TESTS") != "1" {
		skippy = true
		os.Exit(m.Run())
	}

	dsn := buildDSNFromEnv()
	if dsn == "" {
		fmt.Println("[contract] DATABASE_URL or APP_POSTGRES_* env not set; skipping")
		skippy = true
		os.Exit(m.Run())
	}

	var err error
	db, err = sql.Open("pgx", dsn)
	if err != nil {
		fmt.Println("[contract] sql open error:", err)
		os.Exit(1)
	}
	if err := db.Ping(); err != nil {
		fmt.Println("[contract] db ping error:", err)
		os.Exit(1)
	}

	if err := goose.SetDialect("postgres"); err != nil {
		fmt.Println("[contract] goose dialect error:", err)
		os.Exit(1)
	}
	migrationsDir := filepath.Clean(filepath.Join("..", "..", "..", "migrations", "goose_sql"))
	if err := goose.Up(db, migrationsDir); err != nil {
		fmt.Println("[contract] goose up error:", err)
		os.Exit(1)
	}

	pool, err = pgxpool.New(context.Background(), dsn)
	if err != nil {
		fmt.Println("[contract] pgxpool new error:", err)
		os.Exit(1)
	}

	code := m.Run()
	pool.Close()
	db.Close()
	os.Exit(code)
}

func skipIfNeeded(t *testing.T) {
	if skippy {
		t.Skip("contract tests skipped; set CONTRACT_TESTS=1 and provide DB env")
	}
}

func buildDSNFromEnv() string {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		return v
	}
	user := os.Getenv("APP_POSTGRES_USER")
	dbName := os.Getenv("APP_POSTGRES_DB")
	if user == "" || dbName == "" {
		return ""
	}
	host := os.Getenv("APP_POSTGRES_HOST")
	if host == "" {
		host = "localhost"
	}
	return repository.DSN(config.PostgresConfig{
		Host:     host,
		Port:     5432,
		User:     user,
		Password: os.Getenv("APP_POSTGRES_PASSWORD"),
		DBName:   dbName,
		SSLMode:  "disable",
	})
}

func truncateAll(t *testing.T) {
	t.Helper()
	if _, err := pool.Exec(context.Background(), `TRUNCATE users, cart_items, carts, products`); err != nil {
		t.Fatalf("truncate: %v", err)
	}
}

func insertProduct(ctx context.Context, p model.Product) (string, error) {
	thumbs := p.Thumbnails
	if thumbs == nil {
		thumbs = []string{}
	}
	var id string
	err := pool.QueryRow(ctx,
		`INSERT INTO products (title, description, code, price, status, stock, category, thumbnails)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id::text`,
		p.Title, p.Description, p.Code, p.Price, p.Status, p.Stock, p.Category, thumbs,
	).Scan(&id)
	return id, err
}

func TestProductRepositoryContract(t *testing.T) {
	skipIfNeeded(t)
	contract.RunProductRepositoryContract(t, func(t *testing.T) (repository.ProductRepository, func(context.Context, model.Product) (string, error), func()) {
		truncateAll(t)
		return NewProductRepository(pool), insertProduct, func() { truncateAll(t) }
	})
}

func TestCartRepositoryContract(t *testing.T) {
	skipIfNeeded(t)
	contract.RunCartRepositoryContract(t, func(t *testing.T) (repository.CartRepository, func(context.Context, map[string]int) (string, error), func(context.Context, model.Product) (string, error), func()) {
		truncateAll(t)
		seedCart := func(ctx context.Context, lines map[string]int) (string, error) {
			var id string
			if err := pool.QueryRow(ctx, `INSERT INTO carts DEFAULT VALUES RETURNING id::text`).Scan(&id); err != nil {
				return "", err
			}
			for productID, qty := range lines {
				if _, err := pool.Exec(ctx,
					`INSERT INTO cart_items (cart_id, product_id, quantity) VALUES ($1, $2, $3)`,
					id, productID, qty,
				); err != nil {
					return "", err
				}
			}
			return id, nil
		}
		return NewCartRepository(pool), seedCart, insertProduct, func() { truncateAll(t) }
	})
}

func TestUserRepositoryContract(t *testing.T) {
	skipIfNeeded(t)
	contract.RunUserRepositoryContract(t, func(t *testing.T) (repository.UserRepository, func(context.Context, model.User) error, func()) {
		truncateAll(t)
		seed := func(ctx context.Context, u model.User) error {
			_, err := pool.Exec(ctx,
				`INSERT INTO users (first_name, last_name, email, age, role) VALUES ($1, $2, $3, $4, $5)`,
				u.FirstName, u.LastName, u.Email, u.Age, u.Role,
			)
			return err
		}
		return NewUserRepository(pool), seed, func() { truncateAll(t) }
	})
}

func TestRepositoryPing(t *testing.T) {
	skipIfNeeded(t)
	if err := pool.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
}
