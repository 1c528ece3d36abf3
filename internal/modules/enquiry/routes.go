package enquiry

import "github.com/gin-gonic/gin"

// RegisterPublicRoutes registers the public enquiry endpoints
func RegisterPublicRoutes(r *gin.RouterGroup, handler *Handler) {
	enquiries := r.Group("/enquiries")
	{
		enquiries.POST("", handler.Submit)
		enquiries.GET("/session", handler.NewSession)
		enquiries.GET("/state", handler.GetState)
	}
}
