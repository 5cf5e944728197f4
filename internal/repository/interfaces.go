package repository

import (
	"context"

	"github.com/easycod/platform/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX abstracts pgx.Tx and pgxpool.Pool so repositories work with both.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// SettingsRepository provides access to pixel_settings.
type SettingsRepository interface {
	// FindByShop returns the shop's pixel settings, or nil when none saved.
	FindByShop(ctx context.Context, db DBTX, shop string) (*domain.PixelSettings, error)

	// Upsert saves the shop's pixel settings.
	Upsert(ctx context.Context, db DBTX, shop string, settings *domain.PixelSettings) error
}

// FormRepository provides access to form_configs.
type FormRepository interface {
	// FindByShop returns the shop's form config, or nil when none saved.
	FindByShop(ctx context.Context, db DBTX, shop string) (*domain.FormConfig, error)

	// Upsert saves the shop's form config.
	Upsert(ctx context.Context, db DBTX, shop string, config *domain.FormConfig) error
}

// SubmissionRepository provides access to submissions.
type SubmissionRepository interface {
	// Insert creates a new submission row.
	Insert(ctx context.Context, db DBTX, sub *domain.Submission) error

	// FindByID returns a submission by ID.
	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Submission, error)

	// ListByShop returns submissions for a shop, newest first.
	// Supports cursor-based pagination.
	ListByShop(ctx context.Context, db DBTX, shop string, cursor *string, limit int) ([]domain.Submission, error)
}

// OutboxRepository provides access to the event_outbox table.
type OutboxRepository interface {
	// Insert writes an outbox event (within the caller's transaction when one
	// is open).
	Insert(ctx context.Context, db DBTX, draft domain.OutboxDraft) error
}

// LocationRepository provides access to the wilaya/commune cascade.
type LocationRepository interface {
	// ListWilayas returns all wilayas ordered by code.
	ListWilayas(ctx context.Context, db DBTX) ([]domain.Wilaya, error)

	// FindWilaya returns one wilaya by code, or nil when unknown.
	FindWilaya(ctx context.Context, db DBTX, code string) (*domain.Wilaya, error)

	// ListCommunes returns the communes of one wilaya ordered by name.
	ListCommunes(ctx context.Context, db DBTX, wilayaCode string) ([]domain.Commune, error)
}

// StatsRepository provides access to pixel_event_stats.
type StatsRepository interface {
	// IncrementDaily bumps the daily counter for one tracked event.
	IncrementDaily(ctx context.Context, db DBTX, shop, eventName string) error

	// ListByShop returns the shop's daily counters for the last `days` days.
	ListByShop(ctx context.Context, db DBTX, shop string, days int) ([]domain.PixelEventStat, error)
}
