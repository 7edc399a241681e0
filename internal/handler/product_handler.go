package handler

import (
	"net/http"
	"strconv"

	"shopfront/internal/model"
	"shopfront/internal/service"

	"github.com/rs/zerolog"
)

// ProductHandler serves the public catalogue and its admin management.
type ProductHandler struct {
	products   service.ProductService
	engagement service.EngagementService
	logger     zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(products service.ProductService, engagement service.EngagementService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		products:   products,
		engagement: engagement,
		logger:     logger.With().Str("handler", "product").Logger(),
	}
}

// List handles GET /api/products with optional category and featured filters.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	var featured *bool
	if v := r.URL.Query().Get("featured"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, model.NewValidationError("featured must be a boolean"), h.logger)
			return
		}
		featured = &parsed
	}

	products, err := h.products.List(r.Context(), category, featured)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	if products == nil {
		products = []model.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

// Get handles GET /api/products/{id}.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.products.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// Search handles POST /api/products/search.
func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req model.SearchRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	resp, err := h.products.Search(r.Context(), &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	if resp.Products == nil {
		resp.Products = []model.Product{}
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListReviews handles GET /api/products/{id}/reviews.
func (h *ProductHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.engagement.ListReviews(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	if reviews == nil {
		reviews = []model.ProductReview{}
	}
	writeJSON(w, http.StatusOK, reviews)
}

// GetRating handles GET /api/products/{id}/rating.
func (h *ProductHandler) GetRating(w http.ResponseWriter, r *http.Request) {
	rating, err := h.engagement.GetRating(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, rating)
}

// Create handles POST /api/admin/products.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.ProductRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	product, err := h.products.Create(r.Context(), &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

// Update handles PUT /api/admin/products/{id}.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req model.ProductRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	product, err := h.products.Update(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// Delete handles DELETE /api/admin/products/{id}.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.products.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
