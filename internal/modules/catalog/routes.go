package catalog

import "github.com/gin-gonic/gin"

// RegisterRoutes registers the public catalog endpoints
func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	r.GET("/offers", handler.GetOffers)
	r.GET("/offers/:id", handler.GetOffer)
	r.GET("/destinations", handler.GetDestinations)
}
