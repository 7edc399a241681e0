package integration

import (
	"context"
	"testing"
	"time"

	"shopfront/internal/model"
	"shopfront/internal/notify"
	"shopfront/internal/repository"
	"shopfront/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderAssembly_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db := SetupTestDB(t)
	logger := zerolog.Nop()

	productRepo := repository.NewProductRepository(db.Pool, logger)
	cartRepo := repository.NewCartRepository(db.Pool, logger)
	orderRepo := repository.NewOrderRepository(db.Pool, logger)
	regionRepo := repository.NewRegionRepository(db.Pool, logger)
	couponRepo := repository.NewCouponRepository(db.Pool, logger)

	coupons := service.NewCouponService(couponRepo, logger)
	orders := service.NewOrderService(orderRepo, productRepo, cartRepo, regionRepo, coupons, notify.Nop{}, logger)

	ctx := context.Background()

	regions := []model.ShippingRegion{
		{ID: "istanbul", Name: map[string]string{"en": "Istanbul"}, Cost: 50},
	}

	orderReq := func() *model.CreateOrderRequest {
		return &model.CreateOrderRequest{
			ShippingRegionID: "istanbul",
			CustomerName:     "Jane Doe",
			CustomerEmail:    "jane@example.com",
			CustomerPhone:    "+905551112233",
			ShippingAddress:  "1 Example Street",
		}
	}

	saveCart := func(t *testing.T, userID string, items []model.CartItem) {
		t.Helper()
		require.NoError(t, cartRepo.Save(ctx, &model.Cart{
			ID:        uuid.NewString(),
			UserID:    userID,
			Items:     items,
			UpdatedAt: time.Now().UTC(),
		}))
	}

	t.Run("empty cart is rejected", func(t *testing.T) {
		CleanupDB(t, db.Pool)
		require.NoError(t, regionRepo.EnsureSeeded(ctx, regions))
		user := SeedUser(t, db.Pool)

		_, err := orders.Create(ctx, user.ID, orderReq())
		assert.ErrorIs(t, err, model.ErrEmptyCart)
	})

	t.Run("successful order decrements stock and clears the cart", func(t *testing.T) {
		CleanupDB(t, db.Pool)
		require.NoError(t, regionRepo.EnsureSeeded(ctx, regions))
		user := SeedUser(t, db.Pool)

		p := NewProduct(120, 5)
		require.NoError(t, productRepo.Create(ctx, p))
		saveCart(t, user.ID, []model.CartItem{{ProductID: p.ID, Size: "M", Quantity: 1}})

		order, err := orders.Create(ctx, user.ID, orderReq())
		require.NoError(t, err)

		assert.Equal(t, 120.0, order.TotalAmount)
		assert.Equal(t, 50.0, order.ShippingCost)
		assert.Equal(t, 170.0, order.GrandTotal())
		assert.Equal(t, 4, stockOf(t, db, p.ID, "M"))

		cart, err := cartRepo.GetByUserID(ctx, user.ID)
		require.NoError(t, err)
		require.NotNil(t, cart)
		assert.Empty(t, cart.Items)

		stored, err := orderRepo.GetByID(ctx, order.ID)
		require.NoError(t, err)
		require.NotNil(t, stored)
		require.Len(t, stored.Items, 1)
		assert.Equal(t, 120.0, stored.Items[0].Price)
	})

	t.Run("stock failure rolls back every decrement", func(t *testing.T) {
		CleanupDB(t, db.Pool)
		require.NoError(t, regionRepo.EnsureSeeded(ctx, regions))
		user := SeedUser(t, db.Pool)

		p1 := NewProduct(100, 5)
		p2 := NewProduct(40, 1)
		require.NoError(t, productRepo.Create(ctx, p1))
		require.NoError(t, productRepo.Create(ctx, p2))
		saveCart(t, user.ID, []model.CartItem{
			{ProductID: p1.ID, Size: "M", Quantity: 1},
			{ProductID: p2.ID, Size: "M", Quantity: 2},
		})

		_, err := orders.Create(ctx, user.ID, orderReq())
		require.Error(t, err)

		var domainErr *model.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, model.ErrCodeInsufficientStock, domainErr.Code)

		// The first line's decrement must not survive the abort.
		assert.Equal(t, 5, stockOf(t, db, p1.ID, "M"))
		assert.Equal(t, 1, stockOf(t, db, p2.ID, "M"))

		cart, err := cartRepo.GetByUserID(ctx, user.ID)
		require.NoError(t, err)
		require.NotNil(t, cart)
		assert.Len(t, cart.Items, 2)

		var count int
		require.NoError(t, db.Pool.QueryRow(ctx, "SELECT COUNT(*) FROM orders").Scan(&count))
		assert.Zero(t, count)
	})

	t.Run("order snapshots survive product edits", func(t *testing.T) {
		CleanupDB(t, db.Pool)
		require.NoError(t, regionRepo.EnsureSeeded(ctx, regions))
		user := SeedUser(t, db.Pool)

		p := NewProduct(100, 5)
		require.NoError(t, productRepo.Create(ctx, p))
		saveCart(t, user.ID, []model.CartItem{{ProductID: p.ID, Size: "M", Quantity: 1}})

		order, err := orders.Create(ctx, user.ID, orderReq())
		require.NoError(t, err)

		p.Price = 999
		p.Name = map[string]string{"en": "Renamed Product"}
		require.NoError(t, productRepo.Update(ctx, p))

		stored, err := orderRepo.GetByID(ctx, order.ID)
		require.NoError(t, err)
		require.Len(t, stored.Items, 1)
		assert.Equal(t, 100.0, stored.Items[0].Price)
		assert.Equal(t, "Integration Product", stored.Items[0].ProductName)
		assert.Equal(t, 100.0, stored.TotalAmount)
	})

	t.Run("coupon is redeemed exactly once per order", func(t *testing.T) {
		CleanupDB(t, db.Pool)
		require.NoError(t, regionRepo.EnsureSeeded(ctx, regions))
		user := SeedUser(t, db.Pool)

		p := NewProduct(200, 5)
		require.NoError(t, productRepo.Create(ctx, p))
		saveCart(t, user.ID, []model.CartItem{{ProductID: p.ID, Size: "M", Quantity: 1}})

		require.NoError(t, couponRepo.Create(ctx, &model.Coupon{
			ID:        uuid.NewString(),
			Code:      "TENOFF",
			Type:      model.CouponPercentage,
			Value:     10,
			Active:    true,
			CreatedAt: time.Now().UTC(),
		}))

		req := orderReq()
		code := "tenoff"
		req.CouponCode = &code

		order, err := orders.Create(ctx, user.ID, req)
		require.NoError(t, err)
		assert.Equal(t, 20.0, order.DiscountAmount)
		assert.Equal(t, 180.0, order.TotalAmount)

		var used int
		require.NoError(t, db.Pool.QueryRow(ctx,
			"SELECT used_count FROM coupons WHERE code = 'TENOFF'").Scan(&used))
		assert.Equal(t, 1, used)
	})
}
