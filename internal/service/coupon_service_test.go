package service

import (
	"context"
	"testing"
	"time"

	"shopfront/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCouponService_Apply_NormalizesCode(t *testing.T) {
	ctx := context.Background()

	repo := new(MockCouponRepository)
	repo.On("GetActiveByCode", ctx, "WELCOME10").Return(&model.Coupon{
		ID:     "c1",
		Code:   "WELCOME10",
		Type:   model.CouponPercentage,
		Value:  10,
		Active: true,
	}, nil)

	svc := NewCouponService(repo, zerolog.Nop())

	coupon, err := svc.Apply(ctx, "  welcome10 ")
	require.NoError(t, err)
	assert.Equal(t, "WELCOME10", coupon.Code)
}

func TestCouponService_Apply_NotFound(t *testing.T) {
	ctx := context.Background()

	repo := new(MockCouponRepository)
	repo.On("GetActiveByCode", ctx, "NOPE").Return(nil, nil)

	svc := NewCouponService(repo, zerolog.Nop())

	_, err := svc.Apply(ctx, "nope")
	assert.ErrorIs(t, err, model.ErrCouponNotFound)
}

func TestCouponService_Apply_ExpiryBoundary(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		expiresAt time.Time
		wantErr   error
	}{
		{name: "expires in the future", expiresAt: now.Add(time.Minute)},
		{name: "expires exactly now", expiresAt: now, wantErr: model.ErrCouponExpired},
		{name: "expired in the past", expiresAt: now.Add(-time.Minute), wantErr: model.ErrCouponExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expires := tt.expiresAt
			repo := new(MockCouponRepository)
			repo.On("GetActiveByCode", ctx, "SAVE5").Return(&model.Coupon{
				ID:        "c1",
				Code:      "SAVE5",
				Type:      model.CouponFixed,
				Value:     5,
				ExpiresAt: &expires,
				Active:    true,
			}, nil)

			svc := NewCouponService(repo, zerolog.Nop()).(*couponService)
			svc.now = func() time.Time { return now }

			_, err := svc.Apply(ctx, "SAVE5")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCouponService_Apply_UsageLimitReached(t *testing.T) {
	ctx := context.Background()

	limit := 100
	repo := new(MockCouponRepository)
	repo.On("GetActiveByCode", ctx, "POPULAR").Return(&model.Coupon{
		ID:         "c1",
		Code:       "POPULAR",
		Type:       model.CouponFixed,
		Value:      5,
		UsageLimit: &limit,
		UsedCount:  100,
		Active:     true,
	}, nil)

	svc := NewCouponService(repo, zerolog.Nop())

	_, err := svc.Apply(ctx, "POPULAR")
	assert.ErrorIs(t, err, model.ErrUsageLimitReached)
}

func TestCouponService_Apply_DoesNotConsumeUse(t *testing.T) {
	ctx := context.Background()

	repo := new(MockCouponRepository)
	repo.On("GetActiveByCode", ctx, "SAVE5").Return(&model.Coupon{
		ID: "c1", Code: "SAVE5", Type: model.CouponFixed, Value: 5, Active: true,
	}, nil)

	svc := NewCouponService(repo, zerolog.Nop())

	_, err := svc.Apply(ctx, "SAVE5")
	require.NoError(t, err)
	repo.AssertNotCalled(t, "Redeem", mock.Anything, mock.Anything, mock.Anything)
}

func TestCouponService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("stores uppercase code", func(t *testing.T) {
		repo := new(MockCouponRepository)
		repo.On("Exists", ctx, "NEWCODE").Return(false, nil)
		repo.On("Create", ctx, mock.AnythingOfType("*model.Coupon")).Return(nil)

		svc := NewCouponService(repo, zerolog.Nop())
		coupon, err := svc.Create(ctx, &model.CreateCouponRequest{
			Code: "newcode", Type: model.CouponFixed, Value: 25,
		})
		require.NoError(t, err)
		assert.Equal(t, "NEWCODE", coupon.Code)
		assert.True(t, coupon.Active)
	})

	t.Run("duplicate code conflicts", func(t *testing.T) {
		repo := new(MockCouponRepository)
		repo.On("Exists", ctx, "TAKEN").Return(true, nil)

		svc := NewCouponService(repo, zerolog.Nop())
		_, err := svc.Create(ctx, &model.CreateCouponRequest{
			Code: "taken", Type: model.CouponFixed, Value: 25,
		})
		assert.ErrorIs(t, err, model.ErrCouponCodeTaken)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects percentage above 100", func(t *testing.T) {
		repo := new(MockCouponRepository)
		svc := NewCouponService(repo, zerolog.Nop())
		_, err := svc.Create(ctx, &model.CreateCouponRequest{
			Code: "BIG", Type: model.CouponPercentage, Value: 150,
		})
		var domainErr *model.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, model.ErrCodeValidation, domainErr.Code)
	})
}

func TestCouponDiscount(t *testing.T) {
	minPurchase := 100.0
	maxDiscount := 30.0

	tests := []struct {
		name     string
		coupon   model.Coupon
		subtotal float64
		want     float64
	}{
		{
			name:     "percentage",
			coupon:   model.Coupon{Type: model.CouponPercentage, Value: 10},
			subtotal: 200,
			want:     20,
		},
		{
			name:     "percentage capped by max discount",
			coupon:   model.Coupon{Type: model.CouponPercentage, Value: 20, MaxDiscount: &maxDiscount},
			subtotal: 400,
			want:     30,
		},
		{
			name:     "fixed",
			coupon:   model.Coupon{Type: model.CouponFixed, Value: 15},
			subtotal: 200,
			want:     15,
		},
		{
			name:     "fixed clamped to subtotal",
			coupon:   model.Coupon{Type: model.CouponFixed, Value: 50},
			subtotal: 40,
			want:     40,
		},
		{
			name:     "below min purchase",
			coupon:   model.Coupon{Type: model.CouponPercentage, Value: 10, MinPurchase: &minPurchase},
			subtotal: 99,
			want:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.coupon.Discount(tt.subtotal))
		})
	}
}
