package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"travelagency/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetOffers handles GET /api/v1/offers
func (h *Handler) GetOffers(c *gin.Context) {
	featuredOnly := c.Query("featured") == "true"

	limit := 20
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	offset := 0
	if v := c.Query("page"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			offset = (parsed - 1) * limit
		}
	}

	offers, err := h.service.ListOffers(c.Request.Context(), featuredOnly, limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Could not load offers")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"offers": offers})
}

// GetOffer handles GET /api/v1/offers/:id
func (h *Handler) GetOffer(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid offer ID")
		return
	}

	offer, err := h.service.GetOffer(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrOfferNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Offer not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Could not load offer")
		return
	}

	response.Success(c, http.StatusOK, offer)
}

// GetDestinations handles GET /api/v1/destinations
func (h *Handler) GetDestinations(c *gin.Context) {
	destinations, err := h.service.ListDestinations(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Could not load destinations")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"destinations": destinations})
}
