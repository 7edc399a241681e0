// Package region loads the static shipping region table from a JSON
// file and seeds it into the database on startup.
package region

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"shopfront/internal/model"
	"shopfront/internal/repository"

	"github.com/rs/zerolog"
)

type regionFile struct {
	Regions []model.ShippingRegion `json:"regions"`
}

// Seed reads the regions file and inserts its entries when the table is
// empty. Existing rows win; the file is only the bootstrap source.
func Seed(ctx context.Context, path string, repo repository.RegionRepository, logger zerolog.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read regions file %s: %w", path, err)
	}

	var file regionFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse regions file %s: %w", path, err)
	}
	if len(file.Regions) == 0 {
		return fmt.Errorf("regions file %s contains no regions", path)
	}

	for _, r := range file.Regions {
		if r.ID == "" || r.Cost < 0 {
			return fmt.Errorf("invalid region entry %q in %s", r.ID, path)
		}
	}

	if err := repo.EnsureSeeded(ctx, file.Regions); err != nil {
		return fmt.Errorf("failed to seed regions: %w", err)
	}

	logger.Info().Int("count", len(file.Regions)).Str("file", path).Msg("shipping regions ready")
	return nil
}
