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

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 100
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

func (s *productService) List(ctx context.Context, category string, featured *bool) ([]model.Product, error) {
	if category != "" && !model.ValidCategory(model.Category(category)) {
		return nil, model.NewValidationError(fmt.Sprintf("invalid category: %s", category))
	}

	products, err := s.productRepo.GetAll(ctx, category, featured)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (s *productService) Get(ctx context.Context, id string) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}
	return product, nil
}

func (s *productService) Search(ctx context.Context, req *model.SearchRequest) (*model.SearchResponse, error) {
	if req.Category != "" && !model.ValidCategory(model.Category(req.Category)) {
		return nil, model.NewValidationError(fmt.Sprintf("invalid category: %s", req.Category))
	}
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 {
		req.Limit = defaultSearchLimit
	}
	if req.Limit > maxSearchLimit {
		req.Limit = maxSearchLimit
	}

	products, total, err := s.productRepo.Search(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}

	totalPages := (total + req.Limit - 1) / req.Limit
	return &model.SearchResponse{
		Products:   products,
		Total:      total,
		Page:       req.Page,
		Limit:      req.Limit,
		TotalPages: totalPages,
	}, nil
}

func (s *productService) Create(ctx context.Context, req *model.ProductRequest) (*model.Product, error) {
	if err := validateProductRequest(req); err != nil {
		return nil, err
	}

	product := &model.Product{
		ID:          uuid.NewString(),
		SKU:         req.SKU,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Images:      req.Images,
		SizesStock:  req.SizesStock,
		Featured:    req.Featured,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().Str("product_id", product.ID).Str("sku", product.SKU).Msg("product created")
	return product, nil
}

func (s *productService) Update(ctx context.Context, id string, req *model.ProductRequest) (*model.Product, error) {
	if err := validateProductRequest(req); err != nil {
		return nil, err
	}

	existing, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	if existing == nil {
		return nil, model.ErrProductNotFound
	}

	product := &model.Product{
		ID:          id,
		SKU:         req.SKU,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Images:      req.Images,
		SizesStock:  req.SizesStock,
		Featured:    req.Featured,
		CreatedAt:   existing.CreatedAt,
	}
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.logger.Info().Str("product_id", id).Msg("product updated")
	return product, nil
}

func (s *productService) Delete(ctx context.Context, id string) error {
	existing, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load product: %w", err)
	}
	if existing == nil {
		return model.ErrProductNotFound
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.logger.Info().Str("product_id", id).Msg("product deleted")
	return nil
}

func validateProductRequest(req *model.ProductRequest) error {
	switch {
	case req.SKU == "":
		return model.NewValidationError("sku is required")
	case len(req.Name) == 0:
		return model.NewValidationError("name is required")
	case req.Price <= 0:
		return model.NewValidationError("price must be positive")
	case !model.ValidCategory(req.Category):
		return model.NewValidationError(fmt.Sprintf("invalid category: %s", req.Category))
	}

	seen := make(map[string]bool, len(req.SizesStock))
	for _, ss := range req.SizesStock {
		if ss.Size == "" {
			return model.NewValidationError("size label cannot be empty")
		}
		if ss.Stock < 0 {
			return model.NewValidationError("stock cannot be negative")
		}
		if seen[ss.Size] {
			return model.NewValidationError(fmt.Sprintf("duplicate size: %s", ss.Size))
		}
		seen[ss.Size] = true
	}
	return nil
}
