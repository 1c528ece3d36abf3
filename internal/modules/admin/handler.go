package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"travelagency/internal/domain"
	"travelagency/internal/pkg/response"
	"travelagency/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Login handles POST /api/v1/admin/login
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	admin, token, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Login failed")
		return
	}

	response.Success(c, http.StatusOK, LoginResponse{Token: token, Admin: admin})
}

// ListEnquiries handles GET /api/v1/admin/enquiries
func (h *Handler) ListEnquiries(c *gin.Context) {
	var status *domain.EnquiryStatus
	if v := c.Query("status"); v != "" {
		s := domain.EnquiryStatus(v)
		status = &s
	}

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

	enquiries, total, err := h.service.ListEnquiries(c.Request.Context(), status, limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Could not load enquiries")
		return
	}

	response.Success(c, http.StatusOK, EnquiryListResponse{Enquiries: enquiries, Total: total})
}

// UpdateEnquiryStatus handles PATCH /api/v1/admin/enquiries/:id/status
func (h *Handler) UpdateEnquiryStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid enquiry ID")
		return
	}

	var req UpdateEnquiryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	if err := h.service.UpdateEnquiryStatus(c.Request.Context(), id, req.Status); err != nil {
		switch {
		case errors.Is(err, ErrEnquiryNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Enquiry not found")
		case errors.Is(err, ErrInvalidStatus):
			response.Error(c, http.StatusUnprocessableEntity, "INVALID_STATUS", "Invalid enquiry status")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Could not update enquiry")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"updated": true})
}

// GetStats handles GET /api/v1/admin/enquiries/stats
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Could not load stats")
		return
	}

	response.Success(c, http.StatusOK, stats)
}
