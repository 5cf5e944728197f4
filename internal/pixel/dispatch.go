package pixel

import (
	"context"
	"log/slog"

	"github.com/easycod/platform/internal/domain"
)

// Dispatcher delivers one canonical event to every platform the merchant has
// configured. Delivery is fire-and-forget and best-effort: no retries, no
// queueing. One platform's failure never prevents delivery to the rest.
type Dispatcher struct {
	registry RegistryFunc
	logger   *slog.Logger
}

// NewDispatcher creates a dispatcher over the given tracker registry.
func NewDispatcher(registry RegistryFunc, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{registry: registry, logger: logger}
}

// Dispatch attempts delivery of one canonical event to all configured
// platforms. The adapter table is rebuilt from current settings on every
// call.
func (d *Dispatcher) Dispatch(ctx context.Context, settings *domain.PixelSettings, event domain.CanonicalEvent, data domain.EventPayload) {
	if settings == nil {
		d.logger.Debug("pixel dispatch skipped: no settings", "event", event)
		return
	}
	if settings.DisableAllEvents {
		d.logger.Debug("pixel dispatch skipped: all events disabled", "event", event)
		return
	}

	reg := d.registry(settings)
	for _, adapter := range BuildAdapters(settings, reg) {
		eventName := adapter.Events[event]
		if eventName == "" {
			// Platform does not support this event.
			continue
		}
		if cond, ok := adapter.Conditions[event]; ok && !cond() {
			continue
		}
		if adapter.Tracker == nil {
			// No delivery capability resolved for this platform.
			continue
		}

		payload := adapter.Payload(data, eventName)
		d.send(ctx, adapter, event, eventName, payload)
	}
}

// send invokes one tracker with full failure isolation: both returned errors
// and panics are contained and logged with the platform name.
func (d *Dispatcher) send(ctx context.Context, adapter Adapter, event domain.CanonicalEvent, eventName string, payload map[string]any) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("pixel tracker panicked",
				"platform", adapter.Platform,
				"event", event,
				"platform_event", eventName,
				"panic", r,
			)
		}
	}()

	if err := adapter.Tracker(ctx, eventName, payload); err != nil {
		d.logger.Warn("pixel tracker failed",
			"platform", adapter.Platform,
			"event", event,
			"platform_event", eventName,
			"error", err,
		)
	}
}
