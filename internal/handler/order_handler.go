package handler

import (
	"net/http"

	"shopfront/internal/middleware"
	"shopfront/internal/model"
	"shopfront/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// OrderHandler serves order creation, history and the admin console.
type OrderHandler struct {
	orders     service.OrderService
	engagement service.EngagementService
	logger     zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(orders service.OrderService, engagement service.EngagementService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		orders:     orders,
		engagement: engagement,
		logger:     logger.With().Str("handler", "order").Logger(),
	}
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateOrderRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	user := middleware.UserFrom(r.Context())
	order, err := h.orders.Create(r.Context(), user.ID, &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

// List handles GET /api/orders.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	orders, err := h.orders.ListByUser(r.Context(), user.ID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	if orders == nil {
		orders = []model.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

// Get handles GET /api/orders/{id}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, model.ErrOrderNotFound, h.logger)
		return
	}

	user := middleware.UserFrom(r.Context())
	order, err := h.orders.Get(r.Context(), user.ID, orderID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// GetTracking handles GET /api/orders/{id}/tracking.
func (h *OrderHandler) GetTracking(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, model.ErrOrderNotFound, h.logger)
		return
	}

	user := middleware.UserFrom(r.Context())
	tracking, err := h.engagement.GetTracking(r.Context(), user.ID, orderID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, tracking)
}

// ListRegions handles GET /api/shipping-regions.
func (h *OrderHandler) ListRegions(w http.ResponseWriter, r *http.Request) {
	regions, err := h.orders.ListRegions(r.Context())
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	if regions == nil {
		regions = []model.ShippingRegion{}
	}
	writeJSON(w, http.StatusOK, regions)
}

// ListAll handles GET /api/admin/orders.
func (h *OrderHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListAll(r.Context())
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	if orders == nil {
		orders = []model.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

// UpdateStatus handles PATCH /api/admin/orders/{id}/status.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, model.ErrOrderNotFound, h.logger)
		return
	}

	var req model.UpdateOrderStatusRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	if err := h.orders.UpdateStatus(r.Context(), orderID, req.Status); err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// UpsertTracking handles PUT /api/admin/orders/{id}/tracking.
func (h *OrderHandler) UpsertTracking(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, model.ErrOrderNotFound, h.logger)
		return
	}

	var req model.UpdateTrackingRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	tracking, err := h.engagement.UpsertTracking(r.Context(), orderID, &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, tracking)
}
