package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/easycod/platform/internal/domain"
	"github.com/jackc/pgx/v5"
)

type settingsRepo struct{}

// NewSettingsRepository returns a pgx-backed SettingsRepository.
func NewSettingsRepository() SettingsRepository {
	return &settingsRepo{}
}

func (r *settingsRepo) FindByShop(ctx context.Context, db DBTX, shop string) (*domain.PixelSettings, error) {
	var raw json.RawMessage
	err := db.QueryRow(ctx,
		`SELECT settings FROM pixel_settings WHERE shop_domain = $1`, shop).Scan(&raw)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("query pixel settings: %w", err)
	}

	var settings domain.PixelSettings
	if err := json.Unmarshal(raw, &settings); err != nil {
		return nil, fmt.Errorf("decode pixel settings: %w", err)
	}
	return &settings, nil
}

func (r *settingsRepo) Upsert(ctx context.Context, db DBTX, shop string, settings *domain.PixelSettings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode pixel settings: %w", err)
	}

	_, err = db.Exec(ctx, `
		INSERT INTO pixel_settings (shop_domain, settings)
		VALUES ($1, $2)
		ON CONFLICT (shop_domain)
		DO UPDATE SET settings = EXCLUDED.settings, updated_at = now()`,
		shop, raw)
	if err != nil {
		return fmt.Errorf("upsert pixel settings: %w", err)
	}
	return nil
}
