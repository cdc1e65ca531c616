package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/maxviazov/storefront-views/internal/repository"
	"github.com/maxviazov/storefront-views/internal/service"
	"github.com/maxviazov/storefront-views/internal/session"
	"github.com/maxviazov/storefront-views/pkg/response"
	"github.com/maxviazov/storefront-views/web"
)

// Deps is everything the view layer needs. Services are built once at startup
// and shared by all requests.
type Deps struct {
	Pinger   Pinger
	Products service.ProductService
	Carts    service.CartService
	Users    service.UserService
	Sessions *session.Manager
	// DefaultCartID backs the add-to-cart form when the session has no cart.
	DefaultCartID string
	Logger        zerolog.Logger
	// Registry receives the HTTP metrics; a private registry is used when nil.
	Registry *prometheus.Registry
}

// Register loads the views, installs middleware and mounts every route on r.
func Register(r *gin.Engine, d Deps) error {
	if d.Sessions == nil {
		return errors.New("session manager is required")
	}
	tmpl, err := web.Templates()
	if err != nil {
		return err
	}
	r.SetHTMLTemplate(tmpl)

	if d.Registry == nil {
		d.Registry = prometheus.NewRegistry()
	}
	metrics := NewMetrics(d.Registry)
	log := d.Logger.With().Str("module", "handler").Logger()

	r.Use(
		gin.CustomRecovery(func(c *gin.Context, recovered any) {
			log.Error().Interface("panic", recovered).Str("path", c.Request.URL.Path).Msg("handler panicked")
			response.RenderError(c, fmt.Errorf("panic: %v", recovered))
		}),
		RequestID(),
		metrics.Middleware(),
		AccessLog(log, "/live", "/ready", "/metrics"),
		LoadSession(d.Sessions, log),
	)
	r.NoRoute(func(c *gin.Context) { response.RenderError(c, repository.ErrNotFound) })

	h := NewHealthHandler(d.Pinger)
	r.GET("/live", h.Liveness)
	r.GET("/ready", h.Readiness)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/login") })
	RegisterPages(r)
	NewProductHandler(d.Products, d.DefaultCartID, log).Register(r)
	NewCartHandler(d.Carts).Register(r)
	NewUserHandler(d.Users).Register(r, RequireSession())
	return nil
}
