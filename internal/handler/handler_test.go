package handler_test

import (
	"context"
	"errors"
	"html/template"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/storefront-views/internal/handler"
	"github.com/maxviazov/storefront-views/internal/model"
	"github.com/maxviazov/storefront-views/internal/repository"
	"github.com/maxviazov/storefront-views/internal/service"
	"github.com/maxviazov/storefront-views/internal/session"
)

const (
	productID     = "3b241101-e2bb-4255-8caf-4136c566a962"
	cartID        = "9c5b94b1-35ad-49bb-b118-8e8fc24abf80"
	defaultCartID = "6f1c2a4e-8c1b-4c1e-9a57-3d1c8a7f0b11"
)

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

type stubProductService struct {
	lastFilter repository.ProductFilter
	list       struct {
		res repository.PageResult[model.Product]
		err error
	}
	get struct {
		product model.Product
		err     error
	}
	panics bool
}

func (s *stubProductService) GetProducts(_ context.Context, f repository.ProductFilter) (repository.PageResult[model.Product], error) {
	if s.panics {
		panic("catalog exploded")
	}
	s.lastFilter = f
	return s.list.res, s.list.err
}

func (s *stubProductService) GetProductByID(context.Context, string) (model.Product, error) {
	return s.get.product, s.get.err
}

type stubCartService struct {
	cart model.Cart
	err  error
}

func (s *stubCartService) GetCartByID(context.Context, string) (model.Cart, error) {
	return s.cart, s.err
}

type stubUserService struct {
	lastPage repository.Page
	res      repository.PageResult[model.User]
	err      error
}

func (s *stubUserService) GetUsers(_ context.Context, p repository.Page) (repository.PageResult[model.User], error) {
	s.lastPage = p
	return s.res, s.err
}

type fixture struct {
	engine   *gin.Engine
	products *stubProductService
	carts    *stubCartService
	users    *stubUserService
	sessions *session.Manager
	pinger   *stubPinger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sessions, err := session.NewManager(session.Config{Secret: "0123456789abcdef0123", CookieName: "sid", TTL: 300})
	require.NoError(t, err)

	f := &fixture{
		engine:   gin.New(),
		products: &stubProductService{},
		carts:    &stubCartService{},
		users:    &stubUserService{},
		sessions: sessions,
		pinger:   &stubPinger{},
	}
	require.NoError(t, handler.Register(f.engine, handler.Deps{
		Pinger:        f.pinger,
		Products:      f.products,
		Carts:         f.carts,
		Users:         f.users,
		Sessions:      sessions,
		DefaultCartID: defaultCartID,
		Logger:        zerolog.New(io.Discard),
	}))
	return f
}

func (f *fixture) do(t *testing.T, target string, user *session.User) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if user != nil {
		c, err := f.sessions.Cookie(*user)
		require.NoError(t, err)
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func intPtr(v int) *int { return &v }

func TestRegister_RequiresSessions(t *testing.T) {
	gin.SetMode(gin.TestMode)
	assert.Error(t, handler.Register(gin.New(), handler.Deps{}))
}

func TestRoot_RedirectsToLogin(t *testing.T) {
	w := newFixture(t).do(t, "/", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestStaticPages(t *testing.T) {
	f := newFixture(t)
	cases := map[string]string{
		"/login":            `action="/api/sessions/login"`,
		"/register":         `action="/api/sessions/register"`,
		"/realtimeproducts": `id="realtime-products"`,
		"/chat":             `id="chat-log"`,
	}
	for path, marker := range cases {
		t.Run(path, func(t *testing.T) {
			w := f.do(t, path, nil)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.Contains(t, w.Body.String(), marker)
		})
	}
}

func TestProducts_RendersLinksAndForwardsFilters(t *testing.T) {
	f := newFixture(t)
	f.products.list.res = repository.PageResult[model.Product]{
		Items: []model.Product{{ID: productID, Title: "Trail Runner", Price: 120, Status: true, Category: "shoes"}},
		PageMeta: repository.PageMeta{
			Page: 2, Limit: 5, Total: 15, TotalPages: 3,
			HasPrevPage: true, PrevPage: intPtr(1),
			HasNextPage: true, NextPage: intPtr(3),
		},
	}

	w := f.do(t, "/products?limit=5&pageNum=2&category=shoes&product=shirt&sortByPrice=asc", &session.User{Email: "ana@shop.test", Role: "user"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Equal(t, repository.ProductFilter{
		Page:        repository.Page{Number: 2, Limit: 5},
		Category:    "shoes",
		Title:       "shirt",
		SortByPrice: "asc",
	}, f.products.lastFilter)

	body := w.Body.String()
	prev := template.HTMLEscapeString("/products?pageNum=1&limit=5&title=shirt&category=shoes&sortByPrice=asc")
	next := template.HTMLEscapeString("/products?pageNum=3&limit=5&category=shoes&sortByPrice=asc")
	assert.Contains(t, body, `href="`+prev+`"`)
	assert.Contains(t, body, `href="`+next+`"`)
	assert.Contains(t, body, "Trail Runner")
	assert.Contains(t, body, "$120.00")
	assert.Contains(t, body, "Page 2 of 3")
	assert.Contains(t, body, "Welcome, ana@shop.test! Role: user")
}

func TestProducts_DefaultsWithoutQuery(t *testing.T) {
	f := newFixture(t)
	f.products.list.res = repository.PageResult[model.Product]{PageMeta: repository.NewPageMeta(repository.Page{Number: 1, Limit: 10}, 0)}

	w := f.do(t, "/products", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, repository.Page{Number: 1, Limit: 10}, f.products.lastFilter.Page)
	assert.Contains(t, w.Body.String(), "No products match these filters.")
	assert.NotContains(t, w.Body.String(), `class="prev"`)
	assert.NotContains(t, w.Body.String(), `class="next"`)
	assert.NotContains(t, w.Body.String(), "Welcome,")
}

func TestProducts_InvalidFilter(t *testing.T) {
	f := newFixture(t)
	f.products.list.err = service.NewInvalidInputError([]service.FieldError{{Field: "sortByPrice", Message: "must be asc or desc"}})

	w := f.do(t, "/products?sortByPrice=sideways", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "sortByPrice")
	assert.Contains(t, w.Body.String(), "invalid_input")
}

func TestProducts_LookupFailure(t *testing.T) {
	f := newFixture(t)
	f.products.list.err = errors.New("db down")

	w := f.do(t, "/products", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal_error")
	assert.NotContains(t, w.Body.String(), "db down")
}

func TestProduct_UsesSessionCartThenDefault(t *testing.T) {
	f := newFixture(t)
	f.products.get.product = model.Product{ID: productID, Title: "Linen Shirt", Price: 40, Status: true}

	w := f.do(t, "/product/"+productID, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Linen Shirt")
	assert.Contains(t, w.Body.String(), "/api/carts/"+defaultCartID+"/product/"+productID)

	w = f.do(t, "/product/"+productID, &session.User{Email: "bo@shop.test", Role: "user", CartID: cartID})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/api/carts/"+cartID+"/product/"+productID)
	assert.NotContains(t, w.Body.String(), defaultCartID)
}

func TestProduct_NotFound(t *testing.T) {
	f := newFixture(t)
	f.products.get.err = repository.ErrNotFound

	w := f.do(t, "/product/"+productID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not_found")
}

func TestCart_Renders(t *testing.T) {
	f := newFixture(t)
	f.carts.cart = model.Cart{ID: cartID, Items: []model.CartItem{
		{Product: model.Product{ID: productID, Title: "Running Tee", Price: 25}, Quantity: 2},
	}}

	w := f.do(t, "/cart/"+cartID, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := w.Body.String()
	assert.Contains(t, body, "Running Tee")
	assert.Contains(t, body, `<td class="total">$50.00</td>`)
}

func TestCart_InvalidID(t *testing.T) {
	f := newFixture(t)
	f.carts.err = service.NewInvalidInputError([]service.FieldError{{Field: "id", Message: "must be a valid cart id"}})

	w := f.do(t, "/cart/nope", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUsers_RequiresSession(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, "/users", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "garbage"})
	rec := httptest.NewRecorder()
	f.engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusFound, rec.Code)
}

func TestUsers_RendersPage(t *testing.T) {
	f := newFixture(t)
	f.users.res = repository.PageResult[model.User]{
		Items: []model.User{
			{FirstName: "Ana", LastName: "Ruiz", Email: "ana@shop.test", Age: 31, Role: "admin"},
			{FirstName: "Bo", LastName: "Lee", Email: "bo@shop.test", Age: 27, Role: "user"},
		},
		PageMeta: repository.NewPageMeta(repository.Page{Number: 2, Limit: 2}, 6),
	}

	w := f.do(t, "/users?numPage=2&limit=2", &session.User{Email: "ana@shop.test", Role: "admin"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, repository.Page{Number: 2, Limit: 2}, f.users.lastPage)

	body := w.Body.String()
	assert.Contains(t, body, "bo@shop.test")
	assert.Contains(t, body, `href="/users?numPage=1&limit=2"`)
	assert.Contains(t, body, `href="/users?numPage=3&limit=2"`)
}

func TestHealth(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, http.StatusOK, f.do(t, "/live", nil).Code)
	assert.Equal(t, http.StatusOK, f.do(t, "/ready", nil).Code)

	f.pinger.err = errors.New("db down")
	w := f.do(t, "/ready", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "db down")
}

func TestNoRoute(t *testing.T) {
	w := newFixture(t).do(t, "/no-such", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not_found")
}

func TestRequestID(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, "/login", nil)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	f.engine.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestPanicRendersErrorPage(t *testing.T) {
	f := newFixture(t)
	f.products.panics = true

	w := f.do(t, "/products", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal_error")
}

func TestMetricsExposed(t *testing.T) {
	f := newFixture(t)
	f.do(t, "/login", nil)

	w := f.do(t, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `storefront_http_requests_total{code="200",method="GET",route="/login"} 1`)
}
