package repository

import (
	"context"
	"fmt"

	"shopfront/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// engagementRepository implements EngagementRepository using PostgreSQL.
type engagementRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewEngagementRepository creates a new PostgreSQL-backed repository for
// tracking, returns and contact messages.
func NewEngagementRepository(pool *pgxpool.Pool, logger zerolog.Logger) EngagementRepository {
	return &engagementRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "engagement").Logger(),
	}
}

func (r *engagementRepository) UpsertTracking(ctx context.Context, t *model.ShippingTracking) error {
	query := `
		INSERT INTO shipping_tracking (id, order_id, tracking_number, carrier, status, estimated_delivery, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (order_id) DO UPDATE
		SET tracking_number = EXCLUDED.tracking_number,
		    carrier = EXCLUDED.carrier,
		    status = EXCLUDED.status,
		    estimated_delivery = EXCLUDED.estimated_delivery,
		    updated_at = EXCLUDED.updated_at
	`

	_, err := r.pool.Exec(ctx, query, t.ID, t.OrderID, t.TrackingNumber, t.Carrier,
		t.Status, t.EstimatedDelivery, t.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", t.OrderID).Msg("failed to upsert tracking")
		return fmt.Errorf("failed to upsert tracking: %w", err)
	}
	return nil
}

func (r *engagementRepository) GetTracking(ctx context.Context, orderID string) (*model.ShippingTracking, error) {
	var t model.ShippingTracking
	err := r.pool.QueryRow(ctx, `
		SELECT id, order_id, tracking_number, carrier, status, estimated_delivery, updated_at
		FROM shipping_tracking
		WHERE order_id = $1
	`, orderID).
		Scan(&t.ID, &t.OrderID, &t.TrackingNumber, &t.Carrier, &t.Status, &t.EstimatedDelivery, &t.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", orderID).Msg("failed to query tracking")
		return nil, fmt.Errorf("failed to query tracking: %w", err)
	}
	return &t, nil
}

func (r *engagementRepository) CreateReturn(ctx context.Context, ret *model.OrderReturn) (bool, error) {
	query := `
		INSERT INTO order_returns (id, order_id, user_id, reason, status, refund_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query, ret.ID, ret.OrderID, ret.UserID, ret.Reason,
		ret.Status, ret.RefundAmount, ret.CreatedAt, ret.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return false, nil
		}
		r.logger.Error().Err(err).Str("order_id", ret.OrderID).Msg("failed to create return")
		return false, fmt.Errorf("failed to create return: %w", err)
	}
	return true, nil
}

const returnColumns = "id, order_id, user_id, reason, status, refund_amount, created_at, updated_at"

func (r *engagementRepository) ListReturnsByUser(ctx context.Context, userID string) ([]model.OrderReturn, error) {
	return r.listReturns(ctx,
		"SELECT "+returnColumns+" FROM order_returns WHERE user_id = $1 ORDER BY created_at DESC", userID)
}

func (r *engagementRepository) ListReturns(ctx context.Context) ([]model.OrderReturn, error) {
	return r.listReturns(ctx, "SELECT "+returnColumns+" FROM order_returns ORDER BY created_at DESC")
}

func (r *engagementRepository) listReturns(ctx context.Context, query string, args ...any) ([]model.OrderReturn, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query returns")
		return nil, fmt.Errorf("failed to query returns: %w", err)
	}
	defer rows.Close()

	var returns []model.OrderReturn
	for rows.Next() {
		var ret model.OrderReturn
		err := rows.Scan(&ret.ID, &ret.OrderID, &ret.UserID, &ret.Reason, &ret.Status,
			&ret.RefundAmount, &ret.CreatedAt, &ret.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan return: %w", err)
		}
		returns = append(returns, ret)
	}
	return returns, rows.Err()
}

func (r *engagementRepository) UpdateReturnStatus(ctx context.Context, id string, status model.ReturnStatus) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		"UPDATE order_returns SET status = $2, updated_at = now() WHERE id = $1", id, status)
	if err != nil {
		r.logger.Error().Err(err).Str("return_id", id).Msg("failed to update return status")
		return false, fmt.Errorf("failed to update return status: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *engagementRepository) CreateContactMessage(ctx context.Context, m *model.ContactMessage) error {
	query := `
		INSERT INTO contact_messages (id, name, email, subject, message, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query, m.ID, m.Name, m.Email, m.Subject, m.Message, m.Status, m.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to create contact message")
		return fmt.Errorf("failed to create contact message: %w", err)
	}
	return nil
}

func (r *engagementRepository) ListContactMessages(ctx context.Context) ([]model.ContactMessage, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, email, subject, message, status, created_at
		FROM contact_messages
		ORDER BY created_at DESC
	`)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query contact messages")
		return nil, fmt.Errorf("failed to query contact messages: %w", err)
	}
	defer rows.Close()

	var messages []model.ContactMessage
	for rows.Next() {
		var m model.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.Status, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan contact message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (r *engagementRepository) UpdateContactStatus(ctx context.Context, id, status string) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		"UPDATE contact_messages SET status = $2 WHERE id = $1", id, status)
	if err != nil {
		r.logger.Error().Err(err).Str("message_id", id).Msg("failed to update contact status")
		return false, fmt.Errorf("failed to update contact status: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
