package handler

import (
	"net/http"

	"shopfront/internal/model"
	"shopfront/internal/service"

	"github.com/rs/zerolog"
)

// CouponHandler serves coupon validation and admin management.
type CouponHandler struct {
	coupons service.CouponService
	logger  zerolog.Logger
}

// NewCouponHandler creates a new coupon handler.
func NewCouponHandler(coupons service.CouponService, logger zerolog.Logger) *CouponHandler {
	return &CouponHandler{
		coupons: coupons,
		logger:  logger.With().Str("handler", "coupon").Logger(),
	}
}

// Apply handles POST /api/coupons/apply.
func (h *CouponHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var req model.ApplyCouponRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	coupon, err := h.coupons.Apply(r.Context(), req.Code)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, coupon)
}

// Create handles POST /api/admin/coupons.
func (h *CouponHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateCouponRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	coupon, err := h.coupons.Create(r.Context(), &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, coupon)
}

// List handles GET /api/admin/coupons.
func (h *CouponHandler) List(w http.ResponseWriter, r *http.Request) {
	coupons, err := h.coupons.List(r.Context())
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	if coupons == nil {
		coupons = []model.Coupon{}
	}
	writeJSON(w, http.StatusOK, coupons)
}
