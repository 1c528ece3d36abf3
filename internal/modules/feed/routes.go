package feed

import "github.com/gin-gonic/gin"

// RegisterRoutes registers the admin feed endpoint (expects auth middleware)
func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	r.GET("/admin/feed", handler.Connect)
}
