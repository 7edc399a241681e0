package repository

import (
	"context"
	"errors"
	"fmt"

	"shopfront/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// uniqueViolation is the PostgreSQL error code for duplicate keys.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// reviewRepository implements ReviewRepository using PostgreSQL.
type reviewRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewReviewRepository creates a new PostgreSQL-backed review repository.
func NewReviewRepository(pool *pgxpool.Pool, logger zerolog.Logger) ReviewRepository {
	return &reviewRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "review").Logger(),
	}
}

func (r *reviewRepository) Create(ctx context.Context, review *model.ProductReview) (bool, error) {
	query := `
		INSERT INTO product_reviews (id, product_id, user_id, user_name, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query, review.ID, review.ProductID, review.UserID,
		review.UserName, review.Rating, review.Comment, review.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return false, nil
		}
		r.logger.Error().Err(err).Str("product_id", review.ProductID).Msg("failed to create review")
		return false, fmt.Errorf("failed to create review: %w", err)
	}
	return true, nil
}

func (r *reviewRepository) ListByProduct(ctx context.Context, productID string) ([]model.ProductReview, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, product_id, user_id, user_name, rating, comment, created_at
		FROM product_reviews
		WHERE product_id = $1
		ORDER BY created_at DESC
	`, productID)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", productID).Msg("failed to query reviews")
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	var reviews []model.ProductReview
	for rows.Next() {
		var review model.ProductReview
		err := rows.Scan(&review.ID, &review.ProductID, &review.UserID, &review.UserName,
			&review.Rating, &review.Comment, &review.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}
	return reviews, rows.Err()
}

func (r *reviewRepository) Rating(ctx context.Context, productID string) (*model.ProductRating, error) {
	var rating model.ProductRating
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(ROUND(AVG(rating)::numeric, 1), 0), COUNT(*)
		FROM product_reviews
		WHERE product_id = $1
	`, productID).Scan(&rating.AverageRating, &rating.TotalReviews)
	if err != nil {
		if err == pgx.ErrNoRows {
			return &model.ProductRating{}, nil
		}
		r.logger.Error().Err(err).Str("product_id", productID).Msg("failed to aggregate rating")
		return nil, fmt.Errorf("failed to aggregate rating: %w", err)
	}
	return &rating, nil
}
