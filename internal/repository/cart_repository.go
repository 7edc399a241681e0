package repository

import (
	"context"
	"fmt"

	"shopfront/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// cartRepository implements CartRepository using PostgreSQL.
type cartRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCartRepository creates a new PostgreSQL-backed cart repository.
func NewCartRepository(pool *pgxpool.Pool, logger zerolog.Logger) CartRepository {
	return &cartRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "cart").Logger(),
	}
}

func (r *cartRepository) GetByUserID(ctx context.Context, userID string) (*model.Cart, error) {
	var cart model.Cart
	err := r.pool.QueryRow(ctx,
		"SELECT id, user_id, updated_at FROM carts WHERE user_id = $1", userID).
		Scan(&cart.ID, &cart.UserID, &cart.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to query cart")
		return nil, fmt.Errorf("failed to query cart: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		"SELECT product_id, size, quantity FROM cart_items WHERE cart_id = $1 ORDER BY position", cart.ID)
	if err != nil {
		r.logger.Error().Err(err).Str("cart_id", cart.ID).Msg("failed to query cart items")
		return nil, fmt.Errorf("failed to query cart items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item model.CartItem
		if err := rows.Scan(&item.ProductID, &item.Size, &item.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		cart.Items = append(cart.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cart items: %w", err)
	}

	return &cart, nil
}

// Save upserts the cart record and replaces its line items. A cart is a
// small per-user list, so rewriting it wholesale keeps the merge logic
// in one place (the service).
func (r *cartRepository) Save(ctx context.Context, cart *model.Cart) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO carts (id, user_id, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET updated_at = EXCLUDED.updated_at
	`
	if _, err := tx.Exec(ctx, query, cart.ID, cart.UserID, cart.UpdatedAt); err != nil {
		r.logger.Error().Err(err).Str("user_id", cart.UserID).Msg("failed to upsert cart")
		return fmt.Errorf("failed to upsert cart: %w", err)
	}

	// The cart id may differ from cart.ID when the row already existed.
	var cartID string
	if err := tx.QueryRow(ctx, "SELECT id FROM carts WHERE user_id = $1", cart.UserID).Scan(&cartID); err != nil {
		return fmt.Errorf("failed to resolve cart id: %w", err)
	}

	if _, err := tx.Exec(ctx, "DELETE FROM cart_items WHERE cart_id = $1", cartID); err != nil {
		return fmt.Errorf("failed to clear cart items: %w", err)
	}

	if len(cart.Items) > 0 {
		batch := &pgx.Batch{}
		for i, item := range cart.Items {
			batch.Queue(
				"INSERT INTO cart_items (cart_id, product_id, size, quantity, position) VALUES ($1, $2, $3, $4, $5)",
				cartID, item.ProductID, item.Size, item.Quantity, i)
		}

		results := tx.SendBatch(ctx, batch)
		for range cart.Items {
			if _, err := results.Exec(); err != nil {
				results.Close()
				return fmt.Errorf("failed to insert cart item: %w", err)
			}
		}
		if err := results.Close(); err != nil {
			return fmt.Errorf("failed to insert cart items: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit cart: %w", err)
	}

	r.logger.Debug().
		Str("user_id", cart.UserID).
		Int("item_count", len(cart.Items)).
		Msg("cart saved")
	return nil
}

func (r *cartRepository) Clear(ctx context.Context, userID string) error {
	return r.clear(ctx, r.pool, userID)
}

func (r *cartRepository) ClearTx(ctx context.Context, tx pgx.Tx, userID string) error {
	return r.clear(ctx, tx, userID)
}

// execer is satisfied by both *pgxpool.Pool and pgx.Tx.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func (r *cartRepository) clear(ctx context.Context, q execer, userID string) error {
	query := `
		DELETE FROM cart_items
		WHERE cart_id IN (SELECT id FROM carts WHERE user_id = $1)
	`
	if _, err := q.Exec(ctx, query, userID); err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to clear cart")
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	if _, err := q.Exec(ctx, "UPDATE carts SET updated_at = now() WHERE user_id = $1", userID); err != nil {
		return fmt.Errorf("failed to touch cart: %w", err)
	}
	return nil
}
