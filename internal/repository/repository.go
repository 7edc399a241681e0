package repository

import (
	"context"

	"shopfront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProductRepository defines data access for the catalogue and its
// per-size stock counters.
type ProductRepository interface {
	// GetAll retrieves products, optionally filtered by category and
	// featured flag.
	GetAll(ctx context.Context, category string, featured *bool) ([]model.Product, error)

	// GetByID retrieves a single product, or nil when absent.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// GetByIDTx retrieves a product inside a transaction. Order assembly
	// uses this for the fresh per-line read.
	GetByIDTx(ctx context.Context, tx pgx.Tx, id string) (*model.Product, error)

	// GetByIDs retrieves multiple products by their IDs.
	GetByIDs(ctx context.Context, ids []string) ([]model.Product, error)

	// Search runs a filtered, sorted, paginated catalogue query and
	// returns the matching page plus the total match count.
	Search(ctx context.Context, req *model.SearchRequest) ([]model.Product, int, error)

	// Create inserts a product with its size rows.
	Create(ctx context.Context, p *model.Product) error

	// Update replaces a product's fields and size rows wholesale.
	Update(ctx context.Context, p *model.Product) error

	// Delete removes a product. Historical orders keep their snapshots.
	Delete(ctx context.Context, id string) error

	// DecrementStock conditionally subtracts qty from a size's stock
	// within the transaction. Returns false when the row is absent or
	// holds fewer than qty units; stock never goes below zero.
	DecrementStock(ctx context.Context, tx pgx.Tx, productID, size string, qty int) (bool, error)
}

// CartRepository defines data access for per-user carts.
type CartRepository interface {
	// GetByUserID retrieves a user's cart, or nil when none exists yet.
	GetByUserID(ctx context.Context, userID string) (*model.Cart, error)

	// Save upserts the cart record and replaces its line items.
	Save(ctx context.Context, cart *model.Cart) error

	// Clear empties the cart's items, preserving the record.
	Clear(ctx context.Context, userID string) error

	// ClearTx empties the cart's items within a transaction.
	ClearTx(ctx context.Context, tx pgx.Tx, userID string) error
}

// OrderRepository defines data access for orders.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// Create inserts a new order within the provided transaction.
	Create(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateItems inserts the order's line item snapshots within the
	// provided transaction.
	CreateItems(ctx context.Context, tx pgx.Tx, orderID uuid.UUID, items []model.OrderItem) error

	// GetByID retrieves an order with its items, or nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// ListByUser retrieves a user's orders, newest first.
	ListByUser(ctx context.Context, userID string) ([]model.Order, error)

	// ListAll retrieves all orders, newest first.
	ListAll(ctx context.Context) ([]model.Order, error)

	// UpdateStatus transitions an order's fulfilment status. Returns
	// false when the order does not exist.
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (bool, error)

	// MarkPaid flips the order to paid/processing within the provided
	// transaction, as part of idempotent payment completion.
	MarkPaid(ctx context.Context, tx pgx.Tx, orderID string) error
}

// RegionRepository defines data access for the static shipping region table.
type RegionRepository interface {
	// List retrieves all shipping regions.
	List(ctx context.Context) ([]model.ShippingRegion, error)

	// GetByID retrieves a region, or nil when absent.
	GetByID(ctx context.Context, id string) (*model.ShippingRegion, error)

	// EnsureSeeded inserts the given regions if the table is empty.
	EnsureSeeded(ctx context.Context, regions []model.ShippingRegion) error
}

// CouponRepository defines data access for discount codes.
type CouponRepository interface {
	// GetActiveByCode retrieves an active coupon by its uppercase code,
	// or nil when missing or inactive.
	GetActiveByCode(ctx context.Context, code string) (*model.Coupon, error)

	// Exists reports whether any coupon (active or not) uses the code.
	Exists(ctx context.Context, code string) (bool, error)

	// Create inserts a coupon.
	Create(ctx context.Context, c *model.Coupon) error

	// List retrieves all coupons.
	List(ctx context.Context) ([]model.Coupon, error)

	// Redeem atomically increments used_count within the transaction,
	// guarded by the usage limit. Returns false when the limit is hit.
	Redeem(ctx context.Context, tx pgx.Tx, couponID string) (bool, error)
}

// UserRepository defines data access for users, their saved addresses
// and password reset tokens.
type UserRepository interface {
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error

	ListAddresses(ctx context.Context, userID string) ([]model.UserAddress, error)
	GetAddress(ctx context.Context, id, userID string) (*model.UserAddress, error)
	CreateAddress(ctx context.Context, a *model.UserAddress) error
	UpdateAddress(ctx context.Context, a *model.UserAddress) error
	DeleteAddress(ctx context.Context, id, userID string) (bool, error)
	UnsetDefaultAddresses(ctx context.Context, userID string) error

	CreateResetToken(ctx context.Context, t *model.PasswordResetToken) error
	GetResetToken(ctx context.Context, token string) (*model.PasswordResetToken, error)
	MarkResetTokenUsed(ctx context.Context, id string) error
}

// PaymentRepository defines data access for payment transactions.
type PaymentRepository interface {
	// BeginTx starts a transaction for the payment-completion sequence.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// Create inserts a payment transaction.
	Create(ctx context.Context, p *model.PaymentTransaction) error

	// GetBySessionID retrieves a transaction, or nil when absent.
	GetBySessionID(ctx context.Context, sessionID string) (*model.PaymentTransaction, error)

	// MarkCompleted flips the transaction to completed within the
	// provided transaction, only if it is not completed already.
	// Returns false when the transition already happened.
	MarkCompleted(ctx context.Context, tx pgx.Tx, sessionID string) (bool, error)
}

// ReviewRepository defines data access for product reviews.
type ReviewRepository interface {
	// Create inserts a review. Returns false when the user already
	// reviewed the product.
	Create(ctx context.Context, r *model.ProductReview) (bool, error)

	// ListByProduct retrieves a product's reviews, newest first.
	ListByProduct(ctx context.Context, productID string) ([]model.ProductReview, error)

	// Rating computes the average rating and review count for a product.
	Rating(ctx context.Context, productID string) (*model.ProductRating, error)
}

// WishlistRepository defines data access for wishlists.
type WishlistRepository interface {
	// Add inserts a wishlist entry. Returns false on duplicate.
	Add(ctx context.Context, item *model.WishlistItem) (bool, error)

	// Remove deletes an entry. Returns false when absent.
	Remove(ctx context.Context, userID, productID string) (bool, error)

	// ListByUser retrieves a user's wishlist entries.
	ListByUser(ctx context.Context, userID string) ([]model.WishlistItem, error)
}

// EngagementRepository defines data access for shipping tracking,
// returns and contact messages.
type EngagementRepository interface {
	UpsertTracking(ctx context.Context, t *model.ShippingTracking) error
	GetTracking(ctx context.Context, orderID string) (*model.ShippingTracking, error)

	// CreateReturn inserts a return request. Returns false when a
	// request already exists for the order.
	CreateReturn(ctx context.Context, r *model.OrderReturn) (bool, error)
	ListReturnsByUser(ctx context.Context, userID string) ([]model.OrderReturn, error)
	ListReturns(ctx context.Context) ([]model.OrderReturn, error)
	UpdateReturnStatus(ctx context.Context, id string, status model.ReturnStatus) (bool, error)

	CreateContactMessage(ctx context.Context, m *model.ContactMessage) error
	ListContactMessages(ctx context.Context) ([]model.ContactMessage, error)
	UpdateContactStatus(ctx context.Context, id, status string) (bool, error)
}
