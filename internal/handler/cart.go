package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/maxviazov/storefront-views/internal/service"
	"github.com/maxviazov/storefront-views/pkg/response"
)

type CartHandler struct {
	svc service.CartService
}

func NewCartHandler(svc service.CartService) *CartHandler { return &CartHandler{svc: svc} }

func (h *CartHandler) Register(r gin.IRoutes) {
	r.GET("/cart/:id", h.get)
}

func (h *CartHandler) get(c *gin.Context) {
	ctx, cancel := lookupContext(c)
	defer cancel()
	cart, err := h.svc.GetCartByID(ctx, c.Param("id"))
	if err != nil {
		response.RenderError(c, err)
		return
	}
	data := viewData(c, "Cart")
	data["Cart"] = cart
	response.RenderView(c, "cart.html", data)
}
