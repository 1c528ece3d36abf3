package enquiry

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"travelagency/internal/domain"
	"travelagency/internal/pkg/response"
	"travelagency/internal/pkg/validator"
)

// SessionHeader identifies the logical form session across page loads.
const SessionHeader = "X-Enquiry-Session"

// The three fixed user-facing messages. Deliberately coarse: the rate
// limit message does not reveal the window, and nothing here hints at the
// CRM, the fallback store or the spam checks.
const (
	msgConsentMissing = "Please confirm you consent to us processing your details."
	msgTryAgain       = "Please try again in a moment."
	msgTotalFailure   = "We could not send your enquiry right now. Please call us directly."
)

// OfferResolver looks up the offer a submission references so the title
// stored downstream is ours, not the client's.
type OfferResolver interface {
	GetByID(ctx context.Context, id int64) (*domain.Offer, error)
}

type Handler struct {
	sessions *SessionManager
	offers   OfferResolver
}

func NewHandler(sessions *SessionManager, offers OfferResolver) *Handler {
	return &Handler{
		sessions: sessions,
		offers:   offers,
	}
}

// NewSession handles GET /api/v1/enquiries/session
func (h *Handler) NewSession(c *gin.Context) {
	response.Success(c, http.StatusOK, SessionResponse{Session: uuid.NewString()})
}

// GetState handles GET /api/v1/enquiries/state. Reads never allocate
// session state; a session that has not submitted anything is simply idle.
func (h *Handler) GetState(c *gin.Context) {
	if orch := h.sessions.Peek(h.sessionKey(c)); orch != nil {
		response.Success(c, http.StatusOK, StateResponse{
			State:     orch.State(),
			ErrorKind: orch.ErrorKind(),
		})
		return
	}
	response.Success(c, http.StatusOK, StateResponse{State: StateIdle})
}

// Submit handles POST /api/v1/enquiries (public)
func (h *Handler) Submit(c *gin.Context) {
	var req SubmitEnquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	orch := h.sessions.Get(h.sessionKey(c))

	// The Submitting state is entered before any network hop, so a rapid
	// double click is turned away here without ever reaching the gate.
	if orch.State() == StateSubmitting {
		response.Error(c, http.StatusTooManyRequests, "SUBMIT_IN_PROGRESS", msgTryAgain)
		return
	}

	draft := Draft{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:        strings.TrimSpace(req.Phone),
		Message:      strings.TrimSpace(req.Message),
		Source:       sourceTag(req.Context),
		OfferID:      req.OfferID,
		ConsentGiven: req.ConsentGiven,
	}

	if req.OfferID != nil && h.offers != nil {
		offer, err := h.offers.GetByID(c.Request.Context(), *req.OfferID)
		if err != nil || offer == nil {
			// A bad offer reference does not block the lead itself.
			log.Printf("enquiry submit: could not resolve offer %d: %v", *req.OfferID, err)
			draft.OfferID = nil
		} else {
			draft.OfferTitle = offer.Title
		}
	}

	// Once the pipeline starts there is no abort: a visitor closing the tab
	// must not cancel the delivery attempt or poison the fallback write.
	outcome := orch.Submit(context.WithoutCancel(c.Request.Context()), draft, req.Website, time.UnixMilli(req.FormRenderedAt))
	h.render(c, outcome)
}

func (h *Handler) render(c *gin.Context, outcome Outcome) {
	res := outcome.Project()
	if res.Accepted {
		response.Success(c, http.StatusOK, SubmitEnquiryResponse{Status: "received"})
		return
	}

	switch res.ErrorKind {
	case ErrorConsentMissing:
		response.Error(c, http.StatusUnprocessableEntity, "CONSENT_REQUIRED", msgConsentMissing)
	case ErrorRateLimited:
		response.Error(c, http.StatusTooManyRequests, "TOO_SOON", msgTryAgain)
	default:
		response.Error(c, http.StatusBadGateway, "DELIVERY_FAILED", msgTotalFailure)
	}
}

// sessionKey prefers the client-issued session token and falls back to
// the client IP, which groups anonymous traffic per source address.
func (h *Handler) sessionKey(c *gin.Context) string {
	if token := strings.TrimSpace(c.GetHeader(SessionHeader)); token != "" {
		return "token:" + token
	}
	return "ip:" + c.ClientIP()
}

func sourceTag(contextTag string) string {
	tag := strings.TrimSpace(contextTag)
	if tag == "" {
		return "website"
	}
	return tag
}
