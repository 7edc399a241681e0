package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"shopfront/internal/model"
	"shopfront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// engagementService implements EngagementService.
type engagementService struct {
	reviewRepo     repository.ReviewRepository
	wishlistRepo   repository.WishlistRepository
	engagementRepo repository.EngagementRepository
	productRepo    repository.ProductRepository
	orderRepo      repository.OrderRepository
	logger         zerolog.Logger
}

// NewEngagementService creates a new engagement service.
func NewEngagementService(
	reviewRepo repository.ReviewRepository,
	wishlistRepo repository.WishlistRepository,
	engagementRepo repository.EngagementRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	logger zerolog.Logger,
) EngagementService {
	return &engagementService{
		reviewRepo:     reviewRepo,
		wishlistRepo:   wishlistRepo,
		engagementRepo: engagementRepo,
		productRepo:    productRepo,
		orderRepo:      orderRepo,
		logger:         logger.With().Str("service", "engagement").Logger(),
	}
}

func (s *engagementService) AddReview(ctx context.Context, user *model.User, req *model.AddReviewRequest) (*model.ProductReview, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, model.NewValidationError("rating must be between 1 and 5")
	}

	product, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	review := &model.ProductReview{
		ID:        uuid.NewString(),
		ProductID: req.ProductID,
		UserID:    user.ID,
		UserName:  user.Name,
		Rating:    req.Rating,
		Comment:   strings.TrimSpace(req.Comment),
		CreatedAt: time.Now().UTC(),
	}
	created, err := s.reviewRepo.Create(ctx, review)
	if err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	if !created {
		return nil, model.ErrDuplicateReview
	}
	return review, nil
}

func (s *engagementService) ListReviews(ctx context.Context, productID string) ([]model.ProductReview, error) {
	reviews, err := s.reviewRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

func (s *engagementService) GetRating(ctx context.Context, productID string) (*model.ProductRating, error) {
	rating, err := s.reviewRepo.Rating(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to load rating: %w", err)
	}
	return rating, nil
}

func (s *engagementService) GetWishlist(ctx context.Context, userID string) (*model.WishlistResponse, error) {
	items, err := s.wishlistRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlist: %w", err)
	}

	resp := &model.WishlistResponse{Items: items, Products: []model.Product{}}
	if len(items) == 0 {
		resp.Items = []model.WishlistItem{}
		return resp, nil
	}

	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ProductID
	}
	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load wishlist products: %w", err)
	}
	resp.Products = products
	return resp, nil
}

func (s *engagementService) AddToWishlist(ctx context.Context, userID, productID string) error {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return fmt.Errorf("failed to load product: %w", err)
	}
	if product == nil {
		return model.ErrProductNotFound
	}

	added, err := s.wishlistRepo.Add(ctx, &model.WishlistItem{
		ID:        uuid.NewString(),
		UserID:    userID,
		ProductID: productID,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to add wishlist item: %w", err)
	}
	if !added {
		return model.ErrDuplicateWishlist
	}
	return nil
}

func (s *engagementService) RemoveFromWishlist(ctx context.Context, userID, productID string) error {
	removed, err := s.wishlistRepo.Remove(ctx, userID, productID)
	if err != nil {
		return fmt.Errorf("failed to remove wishlist item: %w", err)
	}
	if !removed {
		return model.ErrWishlistNotFound
	}
	return nil
}

func (s *engagementService) GetTracking(ctx context.Context, userID string, orderID uuid.UUID) (*model.ShippingTracking, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	if order == nil || order.UserID != userID {
		return nil, model.ErrOrderNotFound
	}

	tracking, err := s.engagementRepo.GetTracking(ctx, orderID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to load tracking: %w", err)
	}
	if tracking == nil {
		return nil, model.ErrTrackingNotFound
	}
	return tracking, nil
}

func (s *engagementService) UpsertTracking(ctx context.Context, orderID uuid.UUID, req *model.UpdateTrackingRequest) (*model.ShippingTracking, error) {
	if req.TrackingNumber == "" || req.Carrier == "" {
		return nil, model.NewValidationError("tracking number and carrier are required")
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	tracking := &model.ShippingTracking{
		ID:                uuid.NewString(),
		OrderID:           orderID.String(),
		TrackingNumber:    req.TrackingNumber,
		Carrier:           req.Carrier,
		Status:            req.Status,
		EstimatedDelivery: req.EstimatedDelivery,
		UpdatedAt:         time.Now().UTC(),
	}
	if tracking.Status == "" {
		tracking.Status = "in_transit"
	}
	if err := s.engagementRepo.UpsertTracking(ctx, tracking); err != nil {
		return nil, fmt.Errorf("failed to save tracking: %w", err)
	}

	s.logger.Info().Str("order_id", orderID.String()).Msg("tracking updated")
	return tracking, nil
}

func (s *engagementService) RequestReturn(ctx context.Context, userID string, req *model.RequestReturnRequest) (*model.OrderReturn, error) {
	if strings.TrimSpace(req.Reason) == "" {
		return nil, model.NewValidationError("return reason is required")
	}

	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		return nil, model.NewValidationError("invalid order id")
	}
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	if order == nil || order.UserID != userID {
		return nil, model.ErrOrderNotFound
	}

	now := time.Now().UTC()
	ret := &model.OrderReturn{
		ID:           uuid.NewString(),
		OrderID:      order.ID.String(),
		UserID:       userID,
		Reason:       strings.TrimSpace(req.Reason),
		Status:       model.ReturnRequested,
		RefundAmount: order.GrandTotal(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	created, err := s.engagementRepo.CreateReturn(ctx, ret)
	if err != nil {
		return nil, fmt.Errorf("failed to create return: %w", err)
	}
	if !created {
		return nil, model.ErrDuplicateReturn
	}

	s.logger.Info().Str("order_id", ret.OrderID).Msg("return requested")
	return ret, nil
}

func (s *engagementService) ListReturns(ctx context.Context, userID string) ([]model.OrderReturn, error) {
	returns, err := s.engagementRepo.ListReturnsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list returns: %w", err)
	}
	return returns, nil
}

func (s *engagementService) ListAllReturns(ctx context.Context) ([]model.OrderReturn, error) {
	returns, err := s.engagementRepo.ListReturns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list returns: %w", err)
	}
	return returns, nil
}

func (s *engagementService) UpdateReturnStatus(ctx context.Context, returnID string, status model.ReturnStatus) error {
	switch status {
	case model.ReturnRequested, model.ReturnApproved, model.ReturnRejected, model.ReturnCompleted:
	default:
		return model.NewValidationError(fmt.Sprintf("invalid return status: %s", status))
	}

	ok, err := s.engagementRepo.UpdateReturnStatus(ctx, returnID, status)
	if err != nil {
		return fmt.Errorf("failed to update return status: %w", err)
	}
	if !ok {
		return model.ErrReturnNotFound
	}
	return nil
}

func (s *engagementService) SubmitContactForm(ctx context.Context, req *model.ContactFormRequest) (*model.ContactMessage, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Message) == "" {
		return nil, model.NewValidationError("name, email and message are required")
	}

	msg := &model.ContactMessage{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.TrimSpace(req.Email),
		Subject:   strings.TrimSpace(req.Subject),
		Message:   strings.TrimSpace(req.Message),
		Status:    model.ContactNew,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.engagementRepo.CreateContactMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to save contact message: %w", err)
	}
	return msg, nil
}

func (s *engagementService) ListContactMessages(ctx context.Context) ([]model.ContactMessage, error) {
	messages, err := s.engagementRepo.ListContactMessages(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list contact messages: %w", err)
	}
	return messages, nil
}

func (s *engagementService) UpdateContactStatus(ctx context.Context, messageID, status string) error {
	switch status {
	case model.ContactNew, model.ContactRead, model.ContactReplied:
	default:
		return model.NewValidationError(fmt.Sprintf("invalid message status: %s", status))
	}

	ok, err := s.engagementRepo.UpdateContactStatus(ctx, messageID, status)
	if err != nil {
		return fmt.Errorf("failed to update message status: %w", err)
	}
	if !ok {
		return model.ErrMessageNotFound
	}
	return nil
}
