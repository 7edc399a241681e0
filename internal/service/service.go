package service

import (
	"context"

	"shopfront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// UserService handles registration, authentication, profile addresses
// and password recovery.
type UserService interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.SessionResponse, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.SessionResponse, error)
	AdminLogin(ctx context.Context, req *model.LoginRequest) (*model.SessionResponse, error)
	Logout(ctx context.Context, token string) error
	ChangePassword(ctx context.Context, userID string, req *model.ChangePasswordRequest) error
	RequestPasswordReset(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, req *model.ConfirmPasswordResetRequest) error

	ListAddresses(ctx context.Context, userID string) ([]model.UserAddress, error)
	CreateAddress(ctx context.Context, userID string, req *model.AddressRequest) (*model.UserAddress, error)
	UpdateAddress(ctx context.Context, userID, addressID string, req *model.AddressRequest) (*model.UserAddress, error)
	DeleteAddress(ctx context.Context, userID, addressID string) error
}

// ProductService handles the public catalogue and its admin management.
type ProductService interface {
	List(ctx context.Context, category string, featured *bool) ([]model.Product, error)
	Get(ctx context.Context, id string) (*model.Product, error)
	Search(ctx context.Context, req *model.SearchRequest) (*model.SearchResponse, error)
	Create(ctx context.Context, req *model.ProductRequest) (*model.Product, error)
	Update(ctx context.Context, id string, req *model.ProductRequest) (*model.Product, error)
	Delete(ctx context.Context, id string) error
}

// CartService handles per-user cart mutation.
type CartService interface {
	Get(ctx context.Context, userID string) (*model.Cart, error)
	Add(ctx context.Context, userID string, req *model.AddToCartRequest) (*model.Cart, error)
	Remove(ctx context.Context, userID, productID, size string) (*model.Cart, error)
	Clear(ctx context.Context, userID string) error
}

// OrderService handles order assembly and fulfilment tracking.
type OrderService interface {
	Create(ctx context.Context, userID string, req *model.CreateOrderRequest) (*model.Order, error)
	Get(ctx context.Context, userID string, orderID uuid.UUID) (*model.Order, error)
	ListByUser(ctx context.Context, userID string) ([]model.Order, error)
	ListAll(ctx context.Context) ([]model.Order, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status model.OrderStatus) error
	ListRegions(ctx context.Context) ([]model.ShippingRegion, error)
}

// CouponService validates and manages discount codes.
type CouponService interface {
	// Apply validates a code for checkout without consuming a use.
	Apply(ctx context.Context, code string) (*model.Coupon, error)

	// Redeem consumes one use inside the order transaction.
	Redeem(ctx context.Context, tx pgx.Tx, coupon *model.Coupon) error

	Create(ctx context.Context, req *model.CreateCouponRequest) (*model.Coupon, error)
	List(ctx context.Context) ([]model.Coupon, error)
}

// CheckoutService drives external payment sessions for orders.
type CheckoutService interface {
	CreateSession(ctx context.Context, userID string, req *model.CheckoutSessionRequest) (*model.CheckoutSessionResponse, error)
	GetStatus(ctx context.Context, userID, sessionID string) (*model.CheckoutStatusResponse, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

// EngagementService handles reviews, wishlists, shipping tracking,
// returns and the contact form.
type EngagementService interface {
	AddReview(ctx context.Context, user *model.User, req *model.AddReviewRequest) (*model.ProductReview, error)
	ListReviews(ctx context.Context, productID string) ([]model.ProductReview, error)
	GetRating(ctx context.Context, productID string) (*model.ProductRating, error)

	GetWishlist(ctx context.Context, userID string) (*model.WishlistResponse, error)
	AddToWishlist(ctx context.Context, userID, productID string) error
	RemoveFromWishlist(ctx context.Context, userID, productID string) error

	GetTracking(ctx context.Context, userID string, orderID uuid.UUID) (*model.ShippingTracking, error)
	UpsertTracking(ctx context.Context, orderID uuid.UUID, req *model.UpdateTrackingRequest) (*model.ShippingTracking, error)

	RequestReturn(ctx context.Context, userID string, req *model.RequestReturnRequest) (*model.OrderReturn, error)
	ListReturns(ctx context.Context, userID string) ([]model.OrderReturn, error)
	ListAllReturns(ctx context.Context) ([]model.OrderReturn, error)
	UpdateReturnStatus(ctx context.Context, returnID string, status model.ReturnStatus) error

	SubmitContactForm(ctx context.Context, req *model.ContactFormRequest) (*model.ContactMessage, error)
	ListContactMessages(ctx context.Context) ([]model.ContactMessage, error)
	UpdateContactStatus(ctx context.Context, messageID, status string) error
}
