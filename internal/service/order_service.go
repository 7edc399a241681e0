package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"shopfront/internal/model"
	"shopfront/internal/notify"
	"shopfront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// orderService implements OrderService. Order assembly runs as a single
// database transaction so a failed line never leaves partial decrements
// behind.
type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	cartRepo    repository.CartRepository
	regionRepo  repository.RegionRepository
	coupons     CouponService
	notifier    notify.Notifier
	logger      zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	cartRepo repository.CartRepository,
	regionRepo repository.RegionRepository,
	coupons CouponService,
	notifier notify.Notifier,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		cartRepo:    cartRepo,
		regionRepo:  regionRepo,
		coupons:     coupons,
		notifier:    notifier,
		logger:      logger.With().Str("service", "order").Logger(),
	}
}

func (s *orderService) Create(ctx context.Context, userID string, req *model.CreateOrderRequest) (*model.Order, error) {
	if err := validateOrderRequest(req); err != nil {
		return nil, err
	}

	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if cart == nil || len(cart.Items) == 0 {
		return nil, model.ErrEmptyCart
	}

	region, err := s.regionRepo.GetByID(ctx, req.ShippingRegionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load shipping region: %w", err)
	}
	if region == nil {
		return nil, model.ErrRegionNotFound
	}

	var coupon *model.Coupon
	if req.CouponCode != nil && *req.CouponCode != "" {
		coupon, err = s.coupons.Apply(ctx, *req.CouponCode)
		if err != nil {
			return nil, err
		}
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Each line gets a fresh in-transaction read and a conditional
	// decrement. When two orders race for the same stock row, the
	// decrement succeeds for exactly one of them.
	items := make([]model.OrderItem, 0, len(cart.Items))
	var total float64
	for _, line := range cart.Items {
		product, err := s.productRepo.GetByIDTx(ctx, tx, line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("failed to load product %s: %w", line.ProductID, err)
		}
		if product == nil {
			return nil, model.ErrProductNotFound
		}

		if !hasSize(product, line.Size) {
			return nil, model.NewDomainError(model.ErrCodeNotFound,
				fmt.Sprintf("Size %s not available for %s", line.Size, product.DisplayName()))
		}

		ok, err := s.productRepo.DecrementStock(ctx, tx, line.ProductID, line.Size, line.Quantity)
		if err != nil {
			return nil, fmt.Errorf("failed to decrement stock: %w", err)
		}
		if !ok {
			return nil, model.NewInsufficientStockError(product.DisplayName())
		}

		items = append(items, model.OrderItem{
			ProductID:   product.ID,
			ProductName: product.DisplayName(),
			Size:        line.Size,
			Quantity:    line.Quantity,
			Price:       product.Price,
		})
		total += product.Price * float64(line.Quantity)
	}

	var discount float64
	var couponCode *string
	if coupon != nil {
		if coupon.MinPurchase != nil && total < *coupon.MinPurchase {
			return nil, model.NewValidationError(fmt.Sprintf(
				"Coupon %s requires a minimum purchase of %.2f", coupon.Code, *coupon.MinPurchase))
		}
		discount = coupon.Discount(total)
		if discount > 0 {
			if err := s.coupons.Redeem(ctx, tx, coupon); err != nil {
				return nil, err
			}
			couponCode = &coupon.Code
			total -= discount
		}
	}

	now := time.Now().UTC()
	order := &model.Order{
		ID:              uuid.New(),
		UserID:          userID,
		Items:           items,
		TotalAmount:     total,
		DiscountAmount:  discount,
		CouponCode:      couponCode,
		ShippingCost:    region.Cost,
		ShippingRegion:  region.DisplayName(),
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		ShippingAddress: req.ShippingAddress,
		Status:          model.OrderPending,
		PaymentMethod:   "cod",
		PaymentStatus:   "pending",
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.orderRepo.Create(ctx, tx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	if err := s.orderRepo.CreateItems(ctx, tx, order.ID, items); err != nil {
		return nil, fmt.Errorf("failed to create order items: %w", err)
	}
	if err := s.cartRepo.ClearTx(ctx, tx, userID); err != nil {
		return nil, fmt.Errorf("failed to clear cart: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("user_id", userID).
		Int("item_count", len(items)).
		Float64("total", order.TotalAmount).
		Msg("order created")

	// Best effort; the order is already committed.
	s.notifier.OrderCreated(ctx, order)

	return order, nil
}

func (s *orderService) Get(ctx context.Context, userID string, orderID uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	if order == nil || order.UserID != userID {
		return nil, model.ErrOrderNotFound
	}
	return order, nil
}

func (s *orderService) ListByUser(ctx context.Context, userID string) ([]model.Order, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (s *orderService) ListAll(ctx context.Context) ([]model.Order, error) {
	orders, err := s.orderRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (s *orderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, status model.OrderStatus) error {
	if !model.ValidOrderStatus(status) {
		return model.NewValidationError(fmt.Sprintf("invalid order status: %s", status))
	}

	ok, err := s.orderRepo.UpdateStatus(ctx, orderID, status)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if !ok {
		return model.ErrOrderNotFound
	}

	s.logger.Info().
		Str("order_id", orderID.String()).
		Str("status", string(status)).
		Msg("order status updated")
	return nil
}

func (s *orderService) ListRegions(ctx context.Context) ([]model.ShippingRegion, error) {
	regions, err := s.regionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list regions: %w", err)
	}
	return regions, nil
}

func validateOrderRequest(req *model.CreateOrderRequest) error {
	switch {
	case strings.TrimSpace(req.ShippingRegionID) == "":
		return model.NewValidationError("shipping region is required")
	case strings.TrimSpace(req.CustomerName) == "":
		return model.NewValidationError("customer name is required")
	case strings.TrimSpace(req.CustomerPhone) == "":
		return model.NewValidationError("customer phone is required")
	case strings.TrimSpace(req.ShippingAddress) == "":
		return model.NewValidationError("shipping address is required")
	}
	return nil
}

func hasSize(p *model.Product, size string) bool {
	for _, s := range p.SizesStock {
		if s.Size == size {
			return true
		}
	}
	return false
}
