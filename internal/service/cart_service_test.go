package service

import (
	"context"
	"testing"

	"shopfront/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCartService_Get_NoCartYet(t *testing.T) {
	ctx := context.Background()

	cartRepo := new(MockCartRepository)
	cartRepo.On("GetByUserID", ctx, "user-1").Return(nil, nil)

	svc := NewCartService(cartRepo, new(MockProductRepository), zerolog.Nop())

	cart, err := svc.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", cart.UserID)
	assert.Empty(t, cart.Items)
	assert.NotNil(t, cart.Items)
}

func TestCartService_Add_MergesSameProductAndSize(t *testing.T) {
	ctx := context.Background()

	productRepo := new(MockProductRepository)
	productRepo.On("GetByID", ctx, "p1").Return(testProduct("p1", 100, 10), nil)

	existing := &model.Cart{
		ID:     "cart-1",
		UserID: "user-1",
		Items:  []model.CartItem{{ProductID: "p1", Size: "M", Quantity: 2}},
	}
	cartRepo := new(MockCartRepository)
	cartRepo.On("GetByUserID", ctx, "user-1").Return(existing, nil)
	cartRepo.On("Save", ctx, mock.AnythingOfType("*model.Cart")).Return(nil)

	svc := NewCartService(cartRepo, productRepo, zerolog.Nop())

	cart, err := svc.Add(ctx, "user-1", &model.AddToCartRequest{ProductID: "p1", Size: "M", Quantity: 3})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestCartService_Add_AppendsDifferentSize(t *testing.T) {
	ctx := context.Background()

	productRepo := new(MockProductRepository)
	product := testProduct("p1", 100, 10)
	product.SizesStock = append(product.SizesStock, model.SizeStock{Size: "L", Stock: 4})
	productRepo.On("GetByID", ctx, "p1").Return(product, nil)

	existing := &model.Cart{
		ID:     "cart-1",
		UserID: "user-1",
		Items:  []model.CartItem{{ProductID: "p1", Size: "M", Quantity: 2}},
	}
	cartRepo := new(MockCartRepository)
	cartRepo.On("GetByUserID", ctx, "user-1").Return(existing, nil)
	cartRepo.On("Save", ctx, mock.AnythingOfType("*model.Cart")).Return(nil)

	svc := NewCartService(cartRepo, productRepo, zerolog.Nop())

	cart, err := svc.Add(ctx, "user-1", &model.AddToCartRequest{ProductID: "p1", Size: "L", Quantity: 1})
	require.NoError(t, err)
	assert.Len(t, cart.Items, 2)
}

func TestCartService_Add_Validation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		req  model.AddToCartRequest
	}{
		{name: "zero quantity", req: model.AddToCartRequest{ProductID: "p1", Size: "M", Quantity: 0}},
		{name: "negative quantity", req: model.AddToCartRequest{ProductID: "p1", Size: "M", Quantity: -1}},
		{name: "missing product", req: model.AddToCartRequest{Size: "M", Quantity: 1}},
		{name: "missing size", req: model.AddToCartRequest{ProductID: "p1", Quantity: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewCartService(new(MockCartRepository), new(MockProductRepository), zerolog.Nop())
			_, err := svc.Add(ctx, "user-1", &tt.req)
			var domainErr *model.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, model.ErrCodeValidation, domainErr.Code)
		})
	}
}

func TestCartService_Add_StockChecks(t *testing.T) {
	ctx := context.Background()

	productRepo := new(MockProductRepository)
	productRepo.On("GetByID", ctx, "p1").Return(testProduct("p1", 100, 2), nil)
	productRepo.On("GetByID", ctx, "ghost").Return(nil, nil)

	svc := NewCartService(new(MockCartRepository), productRepo, zerolog.Nop())

	t.Run("unknown product", func(t *testing.T) {
		_, err := svc.Add(ctx, "user-1", &model.AddToCartRequest{ProductID: "ghost", Size: "M", Quantity: 1})
		assert.ErrorIs(t, err, model.ErrProductNotFound)
	})

	t.Run("unknown size", func(t *testing.T) {
		_, err := svc.Add(ctx, "user-1", &model.AddToCartRequest{ProductID: "p1", Size: "XS", Quantity: 1})
		var domainErr *model.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, model.ErrCodeNotFound, domainErr.Code)
	})

	t.Run("quantity above stock", func(t *testing.T) {
		_, err := svc.Add(ctx, "user-1", &model.AddToCartRequest{ProductID: "p1", Size: "M", Quantity: 3})
		var domainErr *model.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, model.ErrCodeInsufficientStock, domainErr.Code)
	})
}

func TestCartService_Remove_Idempotent(t *testing.T) {
	ctx := context.Background()

	existing := &model.Cart{
		ID:     "cart-1",
		UserID: "user-1",
		Items:  []model.CartItem{{ProductID: "p1", Size: "M", Quantity: 2}},
	}
	cartRepo := new(MockCartRepository)
	cartRepo.On("GetByUserID", ctx, "user-1").Return(existing, nil)

	svc := NewCartService(cartRepo, new(MockProductRepository), zerolog.Nop())

	// Removing a line that is not in the cart succeeds without a write.
	cart, err := svc.Remove(ctx, "user-1", "p1", "L")
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	cartRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCartService_Remove_DeletesLine(t *testing.T) {
	ctx := context.Background()

	existing := &model.Cart{
		ID:     "cart-1",
		UserID: "user-1",
		Items: []model.CartItem{
			{ProductID: "p1", Size: "M", Quantity: 2},
			{ProductID: "p1", Size: "L", Quantity: 1},
		},
	}
	cartRepo := new(MockCartRepository)
	cartRepo.On("GetByUserID", ctx, "user-1").Return(existing, nil)
	cartRepo.On("Save", ctx, mock.AnythingOfType("*model.Cart")).Return(nil)

	svc := NewCartService(cartRepo, new(MockProductRepository), zerolog.Nop())

	cart, err := svc.Remove(ctx, "user-1", "p1", "M")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "L", cart.Items[0].Size)
	cartRepo.AssertExpectations(t)
}

func TestCartService_Clear(t *testing.T) {
	ctx := context.Background()

	cartRepo := new(MockCartRepository)
	cartRepo.On("Clear", ctx, "user-1").Return(nil)

	svc := NewCartService(cartRepo, new(MockProductRepository), zerolog.Nop())
	assert.NoError(t, svc.Clear(ctx, "user-1"))
	cartRepo.AssertExpectations(t)
}
