package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/storefront-views/pkg/response"
)

// lookupTimeout bounds every collaborator call made while rendering a page.
const lookupTimeout = 5 * time.Second

func lookupContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), lookupTimeout)
}

// viewData seeds the keys every view's layout reads.
func viewData(c *gin.Context, title string) gin.H {
	data := gin.H{"Title": title, "Email": "", "Role": ""}
	if s, ok := currentSession(c); ok {
		data["Email"] = s.User.Email
		data["Role"] = s.User.Role
	}
	return data
}

// staticPage renders a view that needs nothing but the layout data.
func staticPage(view, title string) gin.HandlerFunc {
	return func(c *gin.Context) {
		response.RenderView(c, view, viewData(c, title))
	}
}

// RegisterPages mounts the views that render without any lookup.
func RegisterPages(r gin.IRoutes) {
	r.GET("/login", staticPage("login.html", "Log in"))
	r.GET("/register", staticPage("register.html", "Register"))
	r.GET("/realtimeproducts", staticPage("realtimeproducts.html", "Live catalog"))
	r.GET("/chat", staticPage("chat.html", "Chat"))
}
