package service

import (
	"context"
	"log/slog"

	"github.com/easycod/platform/internal/domain"
	"github.com/easycod/platform/internal/pixel"
	"github.com/easycod/platform/internal/repository"
	"github.com/easycod/platform/internal/session"
	"github.com/easycod/platform/internal/trigger"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TrackingService connects the storefront trigger endpoints to the pixel
// dispatcher. Each trigger evaluation loads the shop's current settings,
// records a fired event in the outbox for the analytics pipeline, then hands
// delivery to the dispatcher on a detached goroutine so the shopper's
// request never waits on ad-platform APIs.
type TrackingService struct {
	pool        *pgxpool.Pool
	settings    repository.SettingsRepository
	outbox      repository.OutboxRepository
	dispatcher  *pixel.Dispatcher
	paymentInfo *trigger.PaymentInfo
	cart        *trigger.Cart
	purchase    *trigger.Purchase
	store       session.Store
	logger      *slog.Logger
}

// NewTrackingService creates a TrackingService.
func NewTrackingService(
	pool *pgxpool.Pool,
	settings repository.SettingsRepository,
	outbox repository.OutboxRepository,
	dispatcher *pixel.Dispatcher,
	store session.Store,
	logger *slog.Logger,
) *TrackingService {
	return &TrackingService{
		pool:        pool,
		settings:    settings,
		outbox:      outbox,
		dispatcher:  dispatcher,
		paymentInfo: trigger.NewPaymentInfo(store, logger),
		cart:        trigger.NewCart(store, logger),
		purchase:    trigger.NewPurchase(logger),
		store:       store,
		logger:      logger,
	}
}

// IssueSession creates a new browsing-session correlation ID.
func (s *TrackingService) IssueSession(_ context.Context) string {
	return session.NewSessionID()
}

// FieldEdited handles one storefront field-interaction report.
func (s *TrackingService) FieldEdited(ctx context.Context, shop, sessionID, fieldName, fieldType string) {
	settings := s.loadSettings(ctx, shop)
	s.paymentInfo.FieldEdited(ctx, sessionID, fieldName, fieldType, s.sink(shop, sessionID, settings))
}

// CartSnapshot handles one storefront cart-mutation snapshot.
func (s *TrackingService) CartSnapshot(ctx context.Context, shop, sessionID string, snap domain.CartSnapshot) {
	settings := s.loadSettings(ctx, shop)
	s.cart.SnapshotReceived(ctx, sessionID, snap, s.sink(shop, sessionID, settings))
}

// SubmissionCompleted fires the Purchase trigger for an accepted order. The
// submit flow calls this on every success path, the redirect one included.
func (s *TrackingService) SubmissionCompleted(ctx context.Context, shop, sessionID string, result domain.SubmissionResult, cart domain.CartSnapshot) {
	settings := s.loadSettings(ctx, shop)
	s.purchase.SubmissionCompleted(ctx, result, cart, s.sink(shop, sessionID, settings))
}

// loadSettings fetches the shop's pixel settings. A load failure degrades to
// nil, which the dispatcher treats as nothing-configured.
func (s *TrackingService) loadSettings(ctx context.Context, shop string) *domain.PixelSettings {
	settings, err := s.settings.FindByShop(ctx, s.pool, shop)
	if err != nil {
		s.logger.Warn("pixel settings load failed", "shop", shop, "error", err)
		return nil
	}
	return settings
}

// sink builds the trigger event sink for one request. The outbox write rides
// the request context; delivery runs on a context detached from the request
// so an early client disconnect cannot cancel in-flight platform calls.
func (s *TrackingService) sink(shop, sessionID string, settings *domain.PixelSettings) trigger.DispatchFunc {
	return func(ctx context.Context, event domain.CanonicalEvent, data domain.EventPayload) {
		draft := domain.NewPixelTrackedEvent(shop, sessionID, event, data)
		if err := s.outbox.Insert(ctx, s.pool, draft); err != nil {
			s.logger.Warn("pixel audit record failed",
				"shop", shop, "session_id", sessionID, "event", event, "error", err)
		}

		bg := context.WithoutCancel(ctx)
		go s.dispatcher.Dispatch(bg, settings, event, data)
	}
}
