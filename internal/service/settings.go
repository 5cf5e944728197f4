package service

import (
	"context"
	"log/slog"

	"github.com/easycod/platform/internal/domain"
	"github.com/easycod/platform/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SettingsService backs the embedded admin dashboard: pixel settings, form
// config, submission history, and the tracked-event report.
type SettingsService struct {
	pool        *pgxpool.Pool
	settings    repository.SettingsRepository
	forms       repository.FormRepository
	submissions repository.SubmissionRepository
	outbox      repository.OutboxRepository
	stats       repository.StatsRepository
	logger      *slog.Logger
}

// NewSettingsService creates a SettingsService.
func NewSettingsService(
	pool *pgxpool.Pool,
	settings repository.SettingsRepository,
	forms repository.FormRepository,
	submissions repository.SubmissionRepository,
	outbox repository.OutboxRepository,
	stats repository.StatsRepository,
	logger *slog.Logger,
) *SettingsService {
	return &SettingsService{
		pool:        pool,
		settings:    settings,
		forms:       forms,
		submissions: submissions,
		outbox:      outbox,
		stats:       stats,
		logger:      logger,
	}
}

// Settings returns the shop's pixel settings; a shop that never saved any
// gets the zero value with everything off.
func (s *SettingsService) Settings(ctx context.Context, shop string) (*domain.PixelSettings, error) {
	settings, err := s.settings.FindByShop(ctx, s.pool, shop)
	if err != nil {
		return nil, domain.ErrInternal("load pixel settings", err)
	}
	if settings == nil {
		settings = &domain.PixelSettings{}
	}
	return settings, nil
}

// SaveSettings validates and persists pixel settings, recording the change
// in the outbox.
func (s *SettingsService) SaveSettings(ctx context.Context, shop string, settings *domain.PixelSettings) error {
	if err := settings.Validate(); err != nil {
		return domain.ErrValidation(err.Error())
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	if err := s.settings.Upsert(ctx, tx, shop, settings); err != nil {
		return domain.ErrInternal("save pixel settings", err)
	}
	if err := s.outbox.Insert(ctx, tx, domain.NewSettingsUpdatedEvent(shop, settings)); err != nil {
		return domain.ErrInternal("record settings change", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.ErrInternal("commit settings", err)
	}

	s.logger.Info("pixel settings saved", "shop", shop)
	return nil
}

// Form returns the shop's form config for the admin editor. Unlike the
// storefront path, an inactive form is still returned here.
func (s *SettingsService) Form(ctx context.Context, shop string) (*domain.FormConfig, error) {
	config, err := s.forms.FindByShop(ctx, s.pool, shop)
	if err != nil {
		return nil, domain.ErrInternal("load form config", err)
	}
	if config == nil {
		config = domain.DefaultFormConfig()
	}
	return config, nil
}

// SaveForm validates and persists the form config, recording the change in
// the outbox.
func (s *SettingsService) SaveForm(ctx context.Context, shop string, config *domain.FormConfig) error {
	if err := config.Validate(); err != nil {
		return domain.ErrValidation(err.Error())
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	if err := s.forms.Upsert(ctx, tx, shop, config); err != nil {
		return domain.ErrInternal("save form config", err)
	}
	if err := s.outbox.Insert(ctx, tx, domain.NewFormUpdatedEvent(shop, config)); err != nil {
		return domain.ErrInternal("record form change", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.ErrInternal("commit form config", err)
	}

	s.logger.Info("form config saved", "shop", shop)
	return nil
}

// Submissions lists the shop's order submissions, newest first.
func (s *SettingsService) Submissions(ctx context.Context, shop string, cursor *string, limit int) ([]domain.Submission, error) {
	subs, err := s.submissions.ListByShop(ctx, s.pool, shop, cursor, limit)
	if err != nil {
		return nil, domain.ErrInternal("list submissions", err)
	}
	return subs, nil
}

// EventReport returns daily tracked-event counts for the report page.
func (s *SettingsService) EventReport(ctx context.Context, shop string, days int) ([]domain.PixelEventStat, error) {
	stats, err := s.stats.ListByShop(ctx, s.pool, shop, days)
	if err != nil {
		return nil, domain.ErrInternal("list event stats", err)
	}
	return stats, nil
}
