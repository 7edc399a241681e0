package repository

import (
	"context"
	"fmt"

	"shopfront/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// userRepository implements UserRepository using PostgreSQL.
type userRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewUserRepository creates a new PostgreSQL-backed user repository.
func NewUserRepository(pool *pgxpool.Pool, logger zerolog.Logger) UserRepository {
	return &userRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "user").Logger(),
	}
}

const userColumns = "id, email, name, picture, password_hash, role, created_at"

func (r *userRepository) Create(ctx context.Context, u *model.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query, u.ID, u.Email, u.Name, u.Picture, u.PasswordHash, u.Role, u.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("email", u.Email).Msg("failed to create user")
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.getUser(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getUser(ctx, "SELECT "+userColumns+" FROM users WHERE email = $1", email)
}

func (r *userRepository) getUser(ctx context.Context, query string, arg any) (*model.User, error) {
	var u model.User
	err := r.pool.QueryRow(ctx, query, arg).
		Scan(&u.ID, &u.Email, &u.Name, &u.Picture, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Msg("failed to query user")
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &u, nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	_, err := r.pool.Exec(ctx, "UPDATE users SET password_hash = $2 WHERE id = $1", userID, passwordHash)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to update password")
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

const addressColumns = "id, user_id, full_name, phone, address_line1, address_line2, city, state, postal_code, country, is_default, created_at"

func (r *userRepository) ListAddresses(ctx context.Context, userID string) ([]model.UserAddress, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT "+addressColumns+" FROM user_addresses WHERE user_id = $1 ORDER BY created_at", userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to query addresses")
		return nil, fmt.Errorf("failed to query addresses: %w", err)
	}
	defer rows.Close()

	var addresses []model.UserAddress
	for rows.Next() {
		var a model.UserAddress
		err := rows.Scan(&a.ID, &a.UserID, &a.FullName, &a.Phone, &a.AddressLine1, &a.AddressLine2,
			&a.City, &a.State, &a.PostalCode, &a.Country, &a.IsDefault, &a.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan address: %w", err)
		}
		addresses = append(addresses, a)
	}
	return addresses, rows.Err()
}

func (r *userRepository) GetAddress(ctx context.Context, id, userID string) (*model.UserAddress, error) {
	var a model.UserAddress
	err := r.pool.QueryRow(ctx,
		"SELECT "+addressColumns+" FROM user_addresses WHERE id = $1 AND user_id = $2", id, userID).
		Scan(&a.ID, &a.UserID, &a.FullName, &a.Phone, &a.AddressLine1, &a.AddressLine2,
			&a.City, &a.State, &a.PostalCode, &a.Country, &a.IsDefault, &a.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("address_id", id).Msg("failed to query address")
		return nil, fmt.Errorf("failed to query address: %w", err)
	}
	return &a, nil
}

func (r *userRepository) CreateAddress(ctx context.Context, a *model.UserAddress) error {
	query := `
		INSERT INTO user_addresses (` + addressColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.pool.Exec(ctx, query, a.ID, a.UserID, a.FullName, a.Phone, a.AddressLine1,
		a.AddressLine2, a.City, a.State, a.PostalCode, a.Country, a.IsDefault, a.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", a.UserID).Msg("failed to create address")
		return fmt.Errorf("failed to create address: %w", err)
	}
	return nil
}

func (r *userRepository) UpdateAddress(ctx context.Context, a *model.UserAddress) error {
	query := `
		UPDATE user_addresses
		SET full_name = $3, phone = $4, address_line1 = $5, address_line2 = $6, city = $7,
		    state = $8, postal_code = $9, country = $10, is_default = $11
		WHERE id = $1 AND user_id = $2
	`

	_, err := r.pool.Exec(ctx, query, a.ID, a.UserID, a.FullName, a.Phone, a.AddressLine1,
		a.AddressLine2, a.City, a.State, a.PostalCode, a.Country, a.IsDefault)
	if err != nil {
		r.logger.Error().Err(err).Str("address_id", a.ID).Msg("failed to update address")
		return fmt.Errorf("failed to update address: %w", err)
	}
	return nil
}

func (r *userRepository) DeleteAddress(ctx context.Context, id, userID string) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		"DELETE FROM user_addresses WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("address_id", id).Msg("failed to delete address")
		return false, fmt.Errorf("failed to delete address: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *userRepository) UnsetDefaultAddresses(ctx context.Context, userID string) error {
	_, err := r.pool.Exec(ctx,
		"UPDATE user_addresses SET is_default = false WHERE user_id = $1", userID)
	if err != nil {
		return fmt.Errorf("failed to unset default addresses: %w", err)
	}
	return nil
}

func (r *userRepository) CreateResetToken(ctx context.Context, t *model.PasswordResetToken) error {
	query := `
		INSERT INTO password_reset_tokens (id, user_id, token, expires_at, used, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query, t.ID, t.UserID, t.Token, t.ExpiresAt, t.Used, t.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", t.UserID).Msg("failed to create reset token")
		return fmt.Errorf("failed to create reset token: %w", err)
	}
	return nil
}

func (r *userRepository) GetResetToken(ctx context.Context, token string) (*model.PasswordResetToken, error) {
	var t model.PasswordResetToken
	err := r.pool.QueryRow(ctx,
		"SELECT id, user_id, token, expires_at, used, created_at FROM password_reset_tokens WHERE token = $1",
		token).
		Scan(&t.ID, &t.UserID, &t.Token, &t.ExpiresAt, &t.Used, &t.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query reset token: %w", err)
	}
	return &t, nil
}

func (r *userRepository) MarkResetTokenUsed(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, "UPDATE password_reset_tokens SET used = true WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to mark reset token used: %w", err)
	}
	return nil
}
