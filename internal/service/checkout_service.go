package service

import (
	"context"
	"fmt"
	"time"

	"shopfront/internal/model"
	"shopfront/internal/payment"
	"shopfront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const checkoutCurrency = "usd"

// checkoutService implements CheckoutService on top of a payment.Gateway.
type checkoutService struct {
	paymentRepo repository.PaymentRepository
	orderRepo   repository.OrderRepository
	gateway     payment.Gateway
	logger      zerolog.Logger
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(
	paymentRepo repository.PaymentRepository,
	orderRepo repository.OrderRepository,
	gateway payment.Gateway,
	logger zerolog.Logger,
) CheckoutService {
	return &checkoutService{
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
		gateway:     gateway,
		logger:      logger.With().Str("service", "checkout").Logger(),
	}
}

func (s *checkoutService) CreateSession(ctx context.Context, userID string, req *model.CheckoutSessionRequest) (*model.CheckoutSessionResponse, error) {
	if req.OrderID == "" || req.OriginURL == "" {
		return nil, model.NewValidationError("order id and origin URL are required")
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
	if order.PaymentStatus == "paid" {
		return nil, model.ErrOrderAlreadyPaid
	}

	session, err := s.gateway.CreateSession(ctx,
		order.GrandTotal(), checkoutCurrency,
		req.OriginURL+"/checkout/success?session_id={CHECKOUT_SESSION_ID}",
		req.OriginURL+"/checkout/cancel",
		map[string]string{"order_id": order.ID.String(), "user_id": userID},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment session: %w", err)
	}

	now := time.Now().UTC()
	txn := &model.PaymentTransaction{
		ID:            uuid.NewString(),
		UserID:        userID,
		OrderID:       order.ID.String(),
		SessionID:     session.ID,
		Amount:        order.GrandTotal(),
		Currency:      checkoutCurrency,
		PaymentStatus: model.PaymentInitiated,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.paymentRepo.Create(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to record payment transaction: %w", err)
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("session_id", session.ID).
		Msg("checkout session created")
	return &model.CheckoutSessionResponse{SessionID: session.ID, URL: session.URL}, nil
}

func (s *checkoutService) GetStatus(ctx context.Context, userID, sessionID string) (*model.CheckoutStatusResponse, error) {
	txn, err := s.paymentRepo.GetBySessionID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load payment transaction: %w", err)
	}
	if txn == nil || txn.UserID != userID {
		return nil, model.ErrPaymentNotFound
	}

	status, err := s.gateway.GetStatus(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to poll payment status: %w", err)
	}

	if status.PaymentStatus == "paid" {
		if err := s.complete(ctx, sessionID, txn.OrderID); err != nil {
			return nil, err
		}
		txn.PaymentStatus = model.PaymentCompleted
	}

	return &model.CheckoutStatusResponse{
		PaymentStatus: string(txn.PaymentStatus),
		Amount:        txn.Amount,
		Currency:      txn.Currency,
		OrderID:       txn.OrderID,
	}, nil
}

func (s *checkoutService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.gateway.VerifyWebhook(payload, signature)
	if err != nil {
		return model.NewDomainError(model.ErrCodeUnauthorized, "Invalid webhook signature")
	}

	if event.Type != "checkout.session.completed" {
		s.logger.Debug().Str("event_type", event.Type).Msg("ignoring webhook event")
		return nil
	}

	txn, err := s.paymentRepo.GetBySessionID(ctx, event.SessionID)
	if err != nil {
		return fmt.Errorf("failed to load payment transaction: %w", err)
	}
	if txn == nil {
		// A session this service never issued; acknowledge and move on.
		s.logger.Warn().Str("session_id", event.SessionID).Msg("webhook for unknown session")
		return nil
	}

	return s.complete(ctx, event.SessionID, txn.OrderID)
}

// complete flips the payment transaction and its order to paid exactly
// once. A second delivery of the same event finds the transaction
// already completed and changes nothing.
func (s *checkoutService) complete(ctx context.Context, sessionID, orderID string) error {
	tx, err := s.paymentRepo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	flipped, err := s.paymentRepo.MarkCompleted(ctx, tx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to complete payment: %w", err)
	}
	if !flipped {
		s.logger.Debug().Str("session_id", sessionID).Msg("payment already completed")
		return nil
	}

	if err := s.orderRepo.MarkPaid(ctx, tx, orderID); err != nil {
		return fmt.Errorf("failed to mark order paid: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit payment completion: %w", err)
	}

	s.logger.Info().
		Str("session_id", sessionID).
		Str("order_id", orderID).
		Msg("payment completed")
	return nil
}
