// Package contract holds storage-agnostic behavior suites that every
// repository implementation must pass.
package contract

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/maxviazov/storefront-views/internal/model"
	"github.com/maxviazov/storefront-views/internal/repository"
)

type ProductFactory func(t *testing.T) (repo repository.ProductRepository, seed func(ctx context.Context, p model.Product) (string, error), cleanup func())

type CartFactory func(t *testing.T) (repo repository.CartRepository, seed func(ctx context.Context, lines map[string]int) (cartID string, err error), seedProduct func(ctx context.Context, p model.Product) (string, error), cleanup func())

type UserFactory func(t *testing.T) (repo repository.UserRepository, seed func(ctx context.Context, u model.User) error, cleanup func())

func seedCatalog(t *testing.T, seed func(ctx context.Context, p model.Product) (string, error)) {
	t.Helper()
	products := []model.Product{
		{Title: "Trail Runner", Code: "SH-1", Price: 120, Status: true, Stock: 4, Category: "shoes"},
		{Title: "Road Runner", Code: "SH-2", Price: 90, Status: true, Stock: 2, Category: "shoes"},
		{Title: "Court Classic", Code: "SH-3", Price: 60, Status: false, Stock: 0, Category: "shoes"},
		{Title: "Hiking Boot", Code: "SH-4", Price: 150, Status: true, Stock: 1, Category: "shoes"},
		{Title: "Linen Shirt", Code: "SR-1", Price: 40, Status: true, Stock: 9, Category: "shirts"},
		{Title: "Oxford Shirt", Code: "SR-2", Price: 55, Status: true, Stock: 3, Category: "shirts"},
		{Title: "Running Tee", Code: "SR-3", Price: 25, Status: false, Stock: 0, Category: "shirts"},
	}
	for _, p := range products {
		if _, err := seed(context.Background(), p); err != nil {
			t.Fatalf("seed %s: %v", p.Code, err)
		}
	}
}

func RunProductRepositoryContract(t *testing.T, makeRepo ProductFactory) {
	t.Helper()

	t.Run("list_category_pagination", func(t *testing.T) {
		repo, seed, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		seedCatalog(t, seed)
		ctx := context.Background()

		res, err := repo.List(ctx, repository.ProductFilter{Page: repository.Page{Number: 1, Limit: 3}, Category: "shoes"})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(res.Items) != 3 || res.Total != 4 || res.TotalPages != 2 || !res.HasNextPage || res.HasPrevPage {
			t.Fatalf("unexpected page 1: len=%d meta=%+v", len(res.Items), res.PageMeta)
		}
		res2, err := repo.List(ctx, repository.ProductFilter{Page: repository.Page{Number: 2, Limit: 3}, Category: "shoes"})
		if err != nil {
			t.Fatalf("list page 2: %v", err)
		}
		if len(res2.Items) != 1 || !res2.HasPrevPage || res2.HasNextPage || res2.PrevPage == nil || *res2.PrevPage != 1 {
			t.Fatalf("unexpected page 2: len=%d meta=%+v", len(res2.Items), res2.PageMeta)
		}
	})

	t.Run("list_sort_by_price", func(t *testing.T) {
		repo, seed, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		seedCatalog(t, seed)

		for _, dir := range []string{"asc", "desc"} {
			res, err := repo.List(context.Background(), repository.ProductFilter{Page: repository.Page{Number: 1, Limit: 10}, SortByPrice: dir})
			if err != nil {
				t.Fatalf("list %s: %v", dir, err)
			}
			if len(res.Items) != 7 {
				t.Fatalf("expected 7 products, got %d", len(res.Items))
			}
			for i := 1; i < len(res.Items); i++ {
				prev, cur := res.Items[i-1].Price, res.Items[i].Price
				if (dir == "asc" && prev > cur) || (dir == "desc" && prev < cur) {
					t.Fatalf("%s order broken at %d: %v then %v", dir, i, prev, cur)
				}
			}
		}
	})

	t.Run("list_title_and_status", func(t *testing.T) {
		repo, seed, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		seedCatalog(t, seed)

		res, err := repo.List(context.Background(), repository.ProductFilter{
			Page:   repository.Page{Number: 1, Limit: 10},
			Title:  "runn",
			Status: "true",
		})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if res.Total != 2 {
			t.Fatalf("expected 2 available runners, got %d", res.Total)
		}
		for _, p := range res.Items {
			if !p.Status {
				t.Fatalf("unavailable product leaked: %+v", p)
			}
		}
	})

	t.Run("list_empty_is_single_page", func(t *testing.T) {
		repo, _, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		res, err := repo.List(context.Background(), repository.ProductFilter{Page: repository.Page{Number: 1, Limit: 10}, Category: "none"})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(res.Items) != 0 || res.TotalPages != 1 || res.HasNextPage || res.HasPrevPage {
			t.Fatalf("unexpected empty page: %+v", res.PageMeta)
		}
	})

	t.Run("get_by_id", func(t *testing.T) {
		repo, seed, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		id, err := seed(context.Background(), model.Product{Title: "Canvas Tote", Code: "BG-1", Price: 19.5, Status: true, Stock: 5, Category: "bags", Thumbnails: []string{"/img/tote.png"}})
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		got, err := repo.GetByID(context.Background(), id)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.ID != id || got.Title != "Canvas Tote" || got.Price != 19.5 || len(got.Thumbnails) != 1 {
			t.Fatalf("mismatch: %+v", got)
		}
	})

	t.Run("get_not_found", func(t *testing.T) {
		repo, _, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		_, err := repo.GetByID(context.Background(), uuid.NewString())
		if !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func RunCartRepositoryContract(t *testing.T, makeRepo CartFactory) {
	t.Helper()

	t.Run("get_with_lines", func(t *testing.T) {
		repo, seedCart, seedProduct, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()

		lines := map[string]int{}
		for i, price := range []float64{10, 2.5} {
			id, err := seedProduct(ctx, model.Product{Title: fmt.Sprintf("Item %d", i), Code: fmt.Sprintf("IT-%d", i), Price: price, Status: true, Category: "misc"})
			if err != nil {
				t.Fatalf("seed product: %v", err)
			}
			lines[id] = i + 1
		}
		cartID, err := seedCart(ctx, lines)
		if err != nil {
			t.Fatalf("seed cart: %v", err)
		}

		cart, err := repo.GetByID(ctx, cartID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if cart.ID != cartID || len(cart.Items) != 2 {
			t.Fatalf("unexpected cart: %+v", cart)
		}
		for _, it := range cart.Items {
			if lines[it.Product.ID] != it.Quantity {
				t.Fatalf("quantity mismatch for %s: %d", it.Product.ID, it.Quantity)
			}
		}
		if cart.Total() != 15 {
			t.Fatalf("expected total 15, got %v", cart.Total())
		}
	})

	t.Run("get_empty_cart", func(t *testing.T) {
		repo, seedCart, _, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		cartID, err := seedCart(context.Background(), nil)
		if err != nil {
			t.Fatalf("seed cart: %v", err)
		}
		cart, err := repo.GetByID(context.Background(), cartID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if cart.Items == nil || len(cart.Items) != 0 {
			t.Fatalf("expected empty non-nil items, got %#v", cart.Items)
		}
	})

	t.Run("get_not_found", func(t *testing.T) {
		repo, _, _, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		_, err := repo.GetByID(context.Background(), uuid.NewString())
		if !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func RunUserRepositoryContract(t *testing.T, makeRepo UserFactory) {
	t.Helper()

	t.Run("list_pagination", func(t *testing.T) {
		repo, seed, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		for i := 0; i < 5; i++ {
			u := model.User{FirstName: "U", LastName: string(rune('A' + i)), Email: fmt.Sprintf("u%d@shop.test", i), Age: 20 + i, Role: "user"}
			if err := seed(ctx, u); err != nil {
				t.Fatalf("seed: %v", err)
			}
		}
		res, err := repo.List(ctx, repository.Page{Number: 2, Limit: 2})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(res.Items) != 2 || res.Total != 5 || res.TotalPages != 3 || !res.HasPrevPage || !res.HasNextPage {
			t.Fatalf("unexpected page: len=%d meta=%+v", len(res.Items), res.PageMeta)
		}
		if *res.PrevPage != 1 || *res.NextPage != 3 {
			t.Fatalf("unexpected neighbours: prev=%d next=%d", *res.PrevPage, *res.NextPage)
		}
	})
}
