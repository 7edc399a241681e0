package repository

import (
	"context"
	"fmt"

	"shopfront/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// regionRepository implements RegionRepository using PostgreSQL.
type regionRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewRegionRepository creates a new PostgreSQL-backed shipping region repository.
func NewRegionRepository(pool *pgxpool.Pool, logger zerolog.Logger) RegionRepository {
	return &regionRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "region").Logger(),
	}
}

func (r *regionRepository) List(ctx context.Context) ([]model.ShippingRegion, error) {
	rows, err := r.pool.Query(ctx, "SELECT id, name, cost FROM shipping_regions ORDER BY cost")
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query shipping regions")
		return nil, fmt.Errorf("failed to query shipping regions: %w", err)
	}
	defer rows.Close()

	var regions []model.ShippingRegion
	for rows.Next() {
		var region model.ShippingRegion
		if err := rows.Scan(&region.ID, &region.Name, &region.Cost); err != nil {
			return nil, fmt.Errorf("failed to scan shipping region: %w", err)
		}
		regions = append(regions, region)
	}
	return regions, rows.Err()
}

func (r *regionRepository) GetByID(ctx context.Context, id string) (*model.ShippingRegion, error) {
	var region model.ShippingRegion
	err := r.pool.QueryRow(ctx, "SELECT id, name, cost FROM shipping_regions WHERE id = $1", id).
		Scan(&region.ID, &region.Name, &region.Cost)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("region_id", id).Msg("shipping region not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("region_id", id).Msg("failed to query shipping region")
		return nil, fmt.Errorf("failed to query shipping region: %w", err)
	}
	return &region, nil
}

func (r *regionRepository) EnsureSeeded(ctx context.Context, regions []model.ShippingRegion) error {
	var count int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM shipping_regions").Scan(&count); err != nil {
		return fmt.Errorf("failed to count shipping regions: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, region := range regions {
		_, err := r.pool.Exec(ctx,
			"INSERT INTO shipping_regions (id, name, cost) VALUES ($1, $2, $3)",
			region.ID, region.Name, region.Cost)
		if err != nil {
			return fmt.Errorf("failed to seed shipping region %s: %w", region.ID, err)
		}
	}

	r.logger.Info().Int("count", len(regions)).Msg("shipping regions seeded")
	return nil
}
