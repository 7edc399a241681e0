package service

import (
	"context"
	"fmt"
	"time"

	"shopfront/internal/model"
	"shopfront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// cartService implements CartService.
type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, logger zerolog.Logger) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		logger:      logger.With().Str("service", "cart").Logger(),
	}
}

// Get returns the user's cart, or an empty one when none exists yet.
func (s *cartService) Get(ctx context.Context, userID string) (*model.Cart, error) {
	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if cart == nil {
		return &model.Cart{
			ID:        uuid.NewString(),
			UserID:    userID,
			Items:     []model.CartItem{},
			UpdatedAt: time.Now().UTC(),
		}, nil
	}
	if cart.Items == nil {
		cart.Items = []model.CartItem{}
	}
	return cart, nil
}

func (s *cartService) Add(ctx context.Context, userID string, req *model.AddToCartRequest) (*model.Cart, error) {
	if req.ProductID == "" || req.Size == "" {
		return nil, model.NewValidationError("product and size are required")
	}
	if req.Quantity < 1 {
		return nil, model.NewValidationError("quantity must be at least 1")
	}

	product, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	// Point-in-time availability check only. Stock is not reserved;
	// order assembly re-checks with the conditional decrement.
	stock := -1
	for _, ss := range product.SizesStock {
		if ss.Size == req.Size {
			stock = ss.Stock
			break
		}
	}
	if stock < 0 {
		return nil, model.NewDomainError(model.ErrCodeNotFound,
			fmt.Sprintf("Size %s not available for %s", req.Size, product.DisplayName()))
	}
	if req.Quantity > stock {
		return nil, model.NewInsufficientStockError(product.DisplayName())
	}

	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	merged := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == req.ProductID && cart.Items[i].Size == req.Size {
			cart.Items[i].Quantity += req.Quantity
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, model.CartItem{
			ProductID: req.ProductID,
			Size:      req.Size,
			Quantity:  req.Quantity,
		})
	}
	cart.UpdatedAt = time.Now().UTC()

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}

	s.logger.Debug().
		Str("user_id", userID).
		Str("product_id", req.ProductID).
		Str("size", req.Size).
		Bool("merged", merged).
		Msg("cart item added")
	return cart, nil
}

// Remove deletes a line item. Removing an absent line is a no-op.
func (s *cartService) Remove(ctx context.Context, userID, productID, size string) (*model.Cart, error) {
	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	kept := cart.Items[:0]
	removed := false
	for _, item := range cart.Items {
		if item.ProductID == productID && item.Size == size {
			removed = true
			continue
		}
		kept = append(kept, item)
	}
	if !removed {
		return cart, nil
	}

	cart.Items = kept
	cart.UpdatedAt = time.Now().UTC()
	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	return cart, nil
}

func (s *cartService) Clear(ctx context.Context, userID string) error {
	if err := s.cartRepo.Clear(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
