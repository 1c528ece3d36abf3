package admin

import "github.com/gin-gonic/gin"

// RegisterPublicRoutes registers the unauthenticated admin endpoints
func RegisterPublicRoutes(r *gin.RouterGroup, handler *Handler) {
	r.POST("/admin/login", handler.Login)
}

// RegisterProtectedRoutes registers the JWT-protected admin endpoints
func RegisterProtectedRoutes(r *gin.RouterGroup, handler *Handler) {
	enquiries := r.Group("/admin/enquiries")
	{
		enquiries.GET("", handler.ListEnquiries)
		enquiries.GET("/stats", handler.GetStats)
		enquiries.PATCH("/:id/status", handler.UpdateEnquiryStatus)
	}
}
