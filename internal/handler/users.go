package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/storefront-views/internal/repository"
	"github.com/maxviazov/storefront-views/internal/service"
	"github.com/maxviazov/storefront-views/pkg/response"
)

type UserHandler struct {
	svc service.UserService
}

func NewUserHandler(svc service.UserService) *UserHandler { return &UserHandler{svc: svc} }

// Register mounts the users page behind the given gate.
func (h *UserHandler) Register(r gin.IRoutes, gate gin.HandlerFunc) {
	r.GET("/users", gate, h.list)
}

func (h *UserHandler) list(c *gin.Context) {
	// Atoi errors fall through as 0; the service applies the defaults.
	number, _ := strconv.Atoi(c.Query("numPage"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	ctx, cancel := lookupContext(c)
	defer cancel()
	res, err := h.svc.GetUsers(ctx, repository.Page{Number: number, Limit: limit})
	if err != nil {
		response.RenderError(c, err)
		return
	}

	data := viewData(c, "Users")
	data["Users"] = res.Items
	data["Page"] = res.Page
	data["Limit"] = res.Limit
	data["HasPrevPage"] = res.HasPrevPage
	data["HasNextPage"] = res.HasNextPage
	data["PrevPage"] = res.PrevPage
	data["NextPage"] = res.NextPage
	response.RenderView(c, "users.html", data)
}
