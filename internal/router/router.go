package router

import (
	"net/http"

	"shopfront/internal/handler"
	"shopfront/internal/middleware"
	"shopfront/internal/repository"
	"shopfront/internal/session"

	"github.com/rs/zerolog"
)

// Handlers bundles the HTTP handlers the router wires up.
type Handlers struct {
	Auth       *handler.AuthHandler
	Product    *handler.ProductHandler
	Cart       *handler.CartHandler
	Order      *handler.OrderHandler
	Coupon     *handler.CouponHandler
	Checkout   *handler.CheckoutHandler
	Engagement *handler.EngagementHandler
}

// New creates the HTTP router with all routes and middleware configured.
func New(
	h Handlers,
	sessions session.Store,
	users repository.UserRepository,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	auth := middleware.SessionAuth(sessions, users, logger)
	authed := func(hf http.HandlerFunc) http.Handler { return auth(hf) }
	admin := func(hf http.HandlerFunc) http.Handler { return auth(middleware.RequireAdmin(hf)) }

	// Auth
	mux.HandleFunc("POST /api/auth/register", h.Auth.Register)
	mux.HandleFunc("POST /api/auth/login", h.Auth.Login)
	mux.HandleFunc("POST /api/auth/admin/login", h.Auth.AdminLogin)
	mux.HandleFunc("POST /api/auth/reset-password", h.Auth.RequestPasswordReset)
	mux.HandleFunc("POST /api/auth/reset-password/confirm", h.Auth.ConfirmPasswordReset)
	mux.Handle("POST /api/auth/logout", authed(h.Auth.Logout))
	mux.Handle("GET /api/auth/me", authed(h.Auth.Me))
	mux.Handle("POST /api/auth/change-password", authed(h.Auth.ChangePassword))
	mux.Handle("GET /api/auth/addresses", authed(h.Auth.ListAddresses))
	mux.Handle("POST /api/auth/addresses", authed(h.Auth.CreateAddress))
	mux.Handle("PUT /api/auth/addresses/{id}", authed(h.Auth.UpdateAddress))
	mux.Handle("DELETE /api/auth/addresses/{id}", authed(h.Auth.DeleteAddress))

	// Catalogue (public)
	mux.HandleFunc("GET /api/products", h.Product.List)
	mux.HandleFunc("POST /api/products/search", h.Product.Search)
	mux.HandleFunc("GET /api/products/{id}", h.Product.Get)
	mux.HandleFunc("GET /api/products/{id}/reviews", h.Product.ListReviews)
	mux.HandleFunc("GET /api/products/{id}/rating", h.Product.GetRating)
	mux.HandleFunc("GET /api/shipping-regions", h.Order.ListRegions)
	mux.HandleFunc("POST /api/contact", h.Engagement.SubmitContactForm)

	// Cart
	mux.Handle("GET /api/cart", authed(h.Cart.Get))
	mux.Handle("POST /api/cart/add", authed(h.Cart.Add))
	mux.Handle("DELETE /api/cart/items/{productId}/{size}", authed(h.Cart.Remove))
	mux.Handle("DELETE /api/cart", authed(h.Cart.Clear))

	// Orders
	mux.Handle("POST /api/orders", authed(h.Order.Create))
	mux.Handle("GET /api/orders", authed(h.Order.List))
	mux.Handle("GET /api/orders/{id}", authed(h.Order.Get))
	mux.Handle("GET /api/orders/{id}/tracking", authed(h.Order.GetTracking))

	// Coupons
	mux.Handle("POST /api/coupons/apply", authed(h.Coupon.Apply))

	// Checkout; the webhook authenticates by signature, not session.
	mux.Handle("POST /api/checkout/session", authed(h.Checkout.CreateSession))
	mux.Handle("GET /api/checkout/status/{sessionId}", authed(h.Checkout.GetStatus))
	mux.HandleFunc("POST /api/webhook/stripe", h.Checkout.Webhook)

	// Engagement
	mux.Handle("POST /api/reviews", authed(h.Engagement.AddReview))
	mux.Handle("GET /api/wishlist", authed(h.Engagement.GetWishlist))
	mux.Handle("POST /api/wishlist/{productId}", authed(h.Engagement.AddToWishlist))
	mux.Handle("DELETE /api/wishlist/{productId}", authed(h.Engagement.RemoveFromWishlist))
	mux.Handle("POST /api/returns", authed(h.Engagement.RequestReturn))
	mux.Handle("GET /api/returns", authed(h.Engagement.ListReturns))

	// Admin console
	mux.Handle("POST /api/admin/products", admin(h.Product.Create))
	mux.Handle("PUT /api/admin/products/{id}", admin(h.Product.Update))
	mux.Handle("DELETE /api/admin/products/{id}", admin(h.Product.Delete))
	mux.Handle("GET /api/admin/orders", admin(h.Order.ListAll))
	mux.Handle("PATCH /api/admin/orders/{id}/status", admin(h.Order.UpdateStatus))
	mux.Handle("PUT /api/admin/orders/{id}/tracking", admin(h.Order.UpsertTracking))
	mux.Handle("POST /api/admin/coupons", admin(h.Coupon.Create))
	mux.Handle("GET /api/admin/coupons", admin(h.Coupon.List))
	mux.Handle("GET /api/admin/returns", admin(h.Engagement.ListAllReturns))
	mux.Handle("PATCH /api/admin/returns/{id}/status", admin(h.Engagement.UpdateReturnStatus))
	mux.Handle("GET /api/admin/contact", admin(h.Engagement.ListContactMessages))
	mux.Handle("PATCH /api/admin/contact/{id}/status", admin(h.Engagement.UpdateContactStatus))

	// Apply middleware in order: Recovery -> Logging -> CORS
	var root http.Handler = mux
	root = middleware.CORS(root)
	root = middleware.Logging(logger)(root)
	root = middleware.Recovery(logger)(root)

	return root
}
