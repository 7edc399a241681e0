package repository

import (
	"context"
	"fmt"

	"shopfront/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// paymentRepository implements PaymentRepository using PostgreSQL.
type paymentRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPaymentRepository creates a new PostgreSQL-backed payment repository.
func NewPaymentRepository(pool *pgxpool.Pool, logger zerolog.Logger) PaymentRepository {
	return &paymentRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "payment").Logger(),
	}
}

func (r *paymentRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

func (r *paymentRepository) Create(ctx context.Context, p *model.PaymentTransaction) error {
	query := `
		INSERT INTO payment_transactions (id, user_id, order_id, session_id, amount, currency, payment_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query, p.ID, p.UserID, p.OrderID, p.SessionID,
		p.Amount, p.Currency, p.PaymentStatus, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("session_id", p.SessionID).Msg("failed to create payment transaction")
		return fmt.Errorf("failed to create payment transaction: %w", err)
	}
	return nil
}

func (r *paymentRepository) GetBySessionID(ctx context.Context, sessionID string) (*model.PaymentTransaction, error) {
	var p model.PaymentTransaction
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, order_id, session_id, amount, currency, payment_status, created_at, updated_at
		FROM payment_transactions
		WHERE session_id = $1
	`, sessionID).
		Scan(&p.ID, &p.UserID, &p.OrderID, &p.SessionID, &p.Amount, &p.Currency,
			&p.PaymentStatus, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("session_id", sessionID).Msg("failed to query payment transaction")
		return nil, fmt.Errorf("failed to query payment transaction: %w", err)
	}
	return &p, nil
}

// MarkCompleted performs the at-most-once transition into completed.
// The status guard lives in the statement itself, so a second delivery
// of the same event affects zero rows.
func (r *paymentRepository) MarkCompleted(ctx context.Context, tx pgx.Tx, sessionID string) (bool, error) {
	query := `
		UPDATE payment_transactions
		SET payment_status = 'completed', updated_at = now()
		WHERE session_id = $1 AND payment_status <> 'completed'
	`

	tag, err := tx.Exec(ctx, query, sessionID)
	if err != nil {
		r.logger.Error().Err(err).Str("session_id", sessionID).Msg("failed to complete payment transaction")
		return false, fmt.Errorf("failed to complete payment transaction: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
