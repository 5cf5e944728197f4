package repository

import (
	"context"
	"fmt"

	"github.com/easycod/platform/internal/domain"
)

type statsRepo struct{}

// NewStatsRepository returns a pgx-backed StatsRepository.
func NewStatsRepository() StatsRepository {
	return &statsRepo{}
}

func (r *statsRepo) IncrementDaily(ctx context.Context, db DBTX, shop, eventName string) error {
	_, err := db.Exec(ctx, `
		INSERT INTO pixel_event_stats (shop_domain, event_name, day, count)
		VALUES ($1, $2, date_trunc('day', now() AT TIME ZONE 'utc')::date, 1)
		ON CONFLICT (shop_domain, event_name, day)
		DO UPDATE SET count = pixel_event_stats.count + 1`,
		shop, eventName)
	if err != nil {
		return fmt.Errorf("increment event stat: %w", err)
	}
	return nil
}

func (r *statsRepo) ListByShop(ctx context.Context, db DBTX, shop string, days int) ([]domain.PixelEventStat, error) {
	if days <= 0 || days > 90 {
		days = 30
	}

	rows, err := db.Query(ctx, `
		SELECT shop_domain, event_name, day, count
		FROM pixel_event_stats
		WHERE shop_domain = $1
		  AND day >= (date_trunc('day', now() AT TIME ZONE 'utc')::date - $2::int)
		ORDER BY day DESC, event_name ASC`, shop, days)
	if err != nil {
		return nil, fmt.Errorf("query event stats: %w", err)
	}
	defer rows.Close()

	var stats []domain.PixelEventStat
	for rows.Next() {
		var s domain.PixelEventStat
		if err := rows.Scan(&s.ShopDomain, &s.EventName, &s.Day, &s.Count); err != nil {
			return nil, fmt.Errorf("scan event stat row: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
