package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"shopfront/internal/model"
	"shopfront/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// couponService implements CouponService.
type couponService struct {
	couponRepo repository.CouponRepository
	logger     zerolog.Logger
	now        func() time.Time
}

// NewCouponService creates a new coupon service.
func NewCouponService(couponRepo repository.CouponRepository, logger zerolog.Logger) CouponService {
	return &couponService{
		couponRepo: couponRepo,
		logger:     logger.With().Str("service", "coupon").Logger(),
		now:        time.Now,
	}
}

// Apply validates a code without consuming a use. Expiry is strict: a
// coupon whose expires_at equals the current instant is already expired.
func (s *couponService) Apply(ctx context.Context, code string) (*model.Coupon, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return nil, model.NewValidationError("coupon code is required")
	}

	coupon, err := s.couponRepo.GetActiveByCode(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to load coupon: %w", err)
	}
	if coupon == nil {
		return nil, model.ErrCouponNotFound
	}

	if coupon.ExpiresAt != nil && !s.now().UTC().Before(coupon.ExpiresAt.UTC()) {
		return nil, model.ErrCouponExpired
	}
	if coupon.UsageLimit != nil && coupon.UsedCount >= *coupon.UsageLimit {
		return nil, model.ErrUsageLimitReached
	}

	return coupon, nil
}

// Redeem consumes one use inside the order transaction. The guarded
// UPDATE re-checks the limit, so a race between Apply and Redeem fails
// the order instead of over-consuming the coupon.
func (s *couponService) Redeem(ctx context.Context, tx pgx.Tx, coupon *model.Coupon) error {
	ok, err := s.couponRepo.Redeem(ctx, tx, coupon.ID)
	if err != nil {
		return fmt.Errorf("failed to redeem coupon: %w", err)
	}
	if !ok {
		return model.ErrUsageLimitReached
	}

	s.logger.Info().Str("coupon_code", coupon.Code).Msg("coupon redeemed")
	return nil
}

func (s *couponService) Create(ctx context.Context, req *model.CreateCouponRequest) (*model.Coupon, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" {
		return nil, model.NewValidationError("coupon code is required")
	}
	if req.Type != model.CouponPercentage && req.Type != model.CouponFixed {
		return nil, model.NewValidationError("coupon type must be percentage or fixed")
	}
	if req.Value <= 0 {
		return nil, model.NewValidationError("coupon value must be positive")
	}
	if req.Type == model.CouponPercentage && req.Value > 100 {
		return nil, model.NewValidationError("percentage discount cannot exceed 100")
	}

	exists, err := s.couponRepo.Exists(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to check coupon code: %w", err)
	}
	if exists {
		return nil, model.ErrCouponCodeTaken
	}

	coupon := &model.Coupon{
		ID:          uuid.NewString(),
		Code:        code,
		Type:        req.Type,
		Value:       req.Value,
		MinPurchase: req.MinPurchase,
		MaxDiscount: req.MaxDiscount,
		ExpiresAt:   req.ExpiresAt,
		UsageLimit:  req.UsageLimit,
		Active:      true,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.couponRepo.Create(ctx, coupon); err != nil {
		return nil, fmt.Errorf("failed to create coupon: %w", err)
	}

	s.logger.Info().Str("coupon_code", code).Msg("coupon created")
	return coupon, nil
}

func (s *couponService) List(ctx context.Context) ([]model.Coupon, error) {
	coupons, err := s.couponRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list coupons: %w", err)
	}
	return coupons, nil
}
