package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/maxviazov/storefront-views/internal/pagelinks"
	"github.com/maxviazov/storefront-views/internal/service"
	"github.com/maxviazov/storefront-views/pkg/response"
)

type ProductHandler struct {
	svc           service.ProductService
	defaultCartID string
	log           zerolog.Logger
}

func NewProductHandler(svc service.ProductService, defaultCartID string, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{svc: svc, defaultCartID: defaultCartID, log: logger.With().Str("component", "products").Logger()}
}

func (h *ProductHandler) Register(r gin.IRoutes) {
	r.GET(pagelinks.ListingPath, h.list)
	r.GET("/product/:id", h.get)
}

func (h *ProductHandler) list(c *gin.Context) {
	q := pagelinks.ParseQuery(c.Request.URL.Query())

	ctx, cancel := lookupContext(c)
	defer cancel()
	res, err := h.svc.GetProducts(ctx, q.Filter())
	if err != nil {
		response.RenderError(c, err)
		return
	}
	links := pagelinks.BuildLinks(q, res.PageMeta)

	data := viewData(c, "Products")
	data["Products"] = res.Items
	data["TotalPages"] = res.TotalPages
	data["Page"] = res.Page
	data["Limit"] = q.Limit
	data["HasPrevPage"] = res.HasPrevPage
	data["HasNextPage"] = res.HasNextPage
	data["PrevPage"] = res.PrevPage
	data["NextPage"] = res.NextPage
	data["PrevLink"] = links.Prev
	data["NextLink"] = links.Next
	data["Search"] = q.Title
	data["Category"] = q.Category
	data["SortByPrice"] = q.SortByPrice
	data["Availability"] = q.Status
	response.RenderView(c, "index.html", data)
}

func (h *ProductHandler) get(c *gin.Context) {
	ctx, cancel := lookupContext(c)
	defer cancel()
	product, err := h.svc.GetProductByID(ctx, c.Param("id"))
	if err != nil {
		response.RenderError(c, err)
		return
	}

	data := viewData(c, product.Title)
	data["Product"] = product
	data["CartID"] = h.cartID(c)
	response.RenderView(c, "product.html", data)
}

// cartID prefers the visitor's own cart and falls back to the configured one.
func (h *ProductHandler) cartID(c *gin.Context) string {
	if s, ok := currentSession(c); ok && s.User.CartID != "" {
		return s.User.CartID
	}
	if h.defaultCartID == "" {
		h.log.Debug().Str("request_id", c.GetString(requestIDKey)).Msg("no cart available for product page")
	}
	return h.defaultCartID
}
