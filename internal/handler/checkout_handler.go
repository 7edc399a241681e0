package handler

import (
	"io"
	"net/http"

	"shopfront/internal/middleware"
	"shopfront/internal/model"
	"shopfront/internal/service"

	"github.com/rs/zerolog"
)

// Webhook bodies above this size are rejected before verification.
const maxWebhookBody = 1 << 20

// CheckoutHandler serves external payment session endpoints.
type CheckoutHandler struct {
	checkout service.CheckoutService
	logger   zerolog.Logger
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(checkout service.CheckoutService, logger zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
		logger:   logger.With().Str("handler", "checkout").Logger(),
	}
}

// CreateSession handles POST /api/checkout/session.
func (h *CheckoutHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req model.CheckoutSessionRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	user := middleware.UserFrom(r.Context())
	resp, err := h.checkout.CreateSession(r.Context(), user.ID, &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// GetStatus handles GET /api/checkout/status/{sessionId}.
func (h *CheckoutHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	resp, err := h.checkout.GetStatus(r.Context(), user.ID, r.PathValue("sessionId"))
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Webhook handles POST /api/webhook/stripe. No session auth; the
// request is authenticated by its signature.
func (h *CheckoutHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		writeError(w, model.NewValidationError("failed to read webhook body"), h.logger)
		return
	}

	signature := r.Header.Get("Stripe-Signature")
	if err := h.checkout.HandleWebhook(r.Context(), payload, signature); err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "received"})
}
