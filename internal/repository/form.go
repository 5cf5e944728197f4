package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/easycod/platform/internal/domain"
	"github.com/jackc/pgx/v5"
)

type formRepo struct{}

// NewFormRepository returns a pgx-backed FormRepository.
func NewFormRepository() FormRepository {
	return &formRepo{}
}

func (r *formRepo) FindByShop(ctx context.Context, db DBTX, shop string) (*domain.FormConfig, error) {
	var raw json.RawMessage
	err := db.QueryRow(ctx,
		`SELECT config FROM form_configs WHERE shop_domain = $1`, shop).Scan(&raw)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("query form config: %w", err)
	}

	var config domain.FormConfig
	if err := json.Unmarshal(raw, &config); err != nil {
		return nil, fmt.Errorf("decode form config: %w", err)
	}
	return &config, nil
}

func (r *formRepo) Upsert(ctx context.Context, db DBTX, shop string, config *domain.FormConfig) error {
	raw, err := json.Marshal(config)
	if err != nil {
		return fmt.Errorf("encode form config: %w", err)
	}

	_, err = db.Exec(ctx, `
		INSERT INTO form_configs (shop_domain, config)
		VALUES ($1, $2)
		ON CONFLICT (shop_domain)
		DO UPDATE SET config = EXCLUDED.config, updated_at = now()`,
		shop, raw)
	if err != nil {
		return fmt.Errorf("upsert form config: %w", err)
	}
	return nil
}
