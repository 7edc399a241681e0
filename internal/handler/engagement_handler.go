package handler

import (
	"net/http"

	"shopfront/internal/middleware"
	"shopfront/internal/model"
	"shopfront/internal/service"

	"github.com/rs/zerolog"
)

// EngagementHandler serves reviews, wishlists, returns and the contact
// form.
type EngagementHandler struct {
	engagement service.EngagementService
	logger     zerolog.Logger
}

// NewEngagementHandler creates a new engagement handler.
func NewEngagementHandler(engagement service.EngagementService, logger zerolog.Logger) *EngagementHandler {
	return &EngagementHandler{
		engagement: engagement,
		logger:     logger.With().Str("handler", "engagement").Logger(),
	}
}

// AddReview handles POST /api/reviews.
func (h *EngagementHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	var req model.AddReviewRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	user := middleware.UserFrom(r.Context())
	review, err := h.engagement.AddReview(r.Context(), user, &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, review)
}

// GetWishlist handles GET /api/wishlist.
func (h *EngagementHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	resp, err := h.engagement.GetWishlist(r.Context(), user.ID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// AddToWishlist handles POST /api/wishlist/{productId}.
func (h *EngagementHandler) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	if err := h.engagement.AddToWishlist(r.Context(), user.ID, r.PathValue("productId")); err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "added"})
}

// RemoveFromWishlist handles DELETE /api/wishlist/{productId}.
func (h *EngagementHandler) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	if err := h.engagement.RemoveFromWishlist(r.Context(), user.ID, r.PathValue("productId")); err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

// RequestReturn handles POST /api/returns.
func (h *EngagementHandler) RequestReturn(w http.ResponseWriter, r *http.Request) {
	var req model.RequestReturnRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	user := middleware.UserFrom(r.Context())
	ret, err := h.engagement.RequestReturn(r.Context(), user.ID, &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, ret)
}

// ListReturns handles GET /api/returns.
func (h *EngagementHandler) ListReturns(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	returns, err := h.engagement.ListReturns(r.Context(), user.ID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	if returns == nil {
		returns = []model.OrderReturn{}
	}
	writeJSON(w, http.StatusOK, returns)
}

// SubmitContactForm handles POST /api/contact.
func (h *EngagementHandler) SubmitContactForm(w http.ResponseWriter, r *http.Request) {
	var req model.ContactFormRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	msg, err := h.engagement.SubmitContactForm(r.Context(), &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, msg)
}

// ListAllReturns handles GET /api/admin/returns.
func (h *EngagementHandler) ListAllReturns(w http.ResponseWriter, r *http.Request) {
	returns, err := h.engagement.ListAllReturns(r.Context())
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	if returns == nil {
		returns = []model.OrderReturn{}
	}
	writeJSON(w, http.StatusOK, returns)
}

// UpdateReturnStatus handles PATCH /api/admin/returns/{id}/status.
func (h *EngagementHandler) UpdateReturnStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status model.ReturnStatus `json:"status"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	if err := h.engagement.UpdateReturnStatus(r.Context(), r.PathValue("id"), req.Status); err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// ListContactMessages handles GET /api/admin/contact.
func (h *EngagementHandler) ListContactMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.engagement.ListContactMessages(r.Context())
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	if messages == nil {
		messages = []model.ContactMessage{}
	}
	writeJSON(w, http.StatusOK, messages)
}

// UpdateContactStatus handles PATCH /api/admin/contact/{id}/status.
func (h *EngagementHandler) UpdateContactStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	if err := h.engagement.UpdateContactStatus(r.Context(), r.PathValue("id"), req.Status); err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}
