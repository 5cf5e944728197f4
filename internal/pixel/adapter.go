// Package pixel implements the ad-platform event dispatcher: a per-platform
// adapter table mapping canonical tracking events onto each network's
// conversion API, a payload normalizer, and a fault-isolated dispatch loop.
package pixel

import (
	"context"

	"github.com/easycod/platform/internal/domain"
)

// Platform identifies one supported ad/tracking network.
type Platform string

const (
	PlatformFacebook  Platform = "facebook"
	PlatformSnapchat  Platform = "snapchat"
	PlatformGoogle    Platform = "google"
	PlatformTiktok    Platform = "tiktok"
	PlatformKwai      Platform = "kwai"
	PlatformCriteo    Platform = "criteo"
	PlatformPinterest Platform = "pinterest"
	PlatformTaboola   Platform = "taboola"
)

// AllPlatforms lists every supported platform in dispatch order.
func AllPlatforms() []Platform {
	return []Platform{
		PlatformFacebook,
		PlatformSnapchat,
		PlatformGoogle,
		PlatformTiktok,
		PlatformKwai,
		PlatformCriteo,
		PlatformPinterest,
		PlatformTaboola,
	}
}

// TrackerFunc delivers one platform-named event with a platform-shaped
// payload. Implementations are thin conversion-API calls; the dispatch loop
// owns failure isolation, so a TrackerFunc may error or panic freely without
// affecting other platforms.
type TrackerFunc func(ctx context.Context, eventName string, payload map[string]any) error

// PayloadFunc builds the platform-specific payload from the canonical event
// data. Must be pure: implementations never mutate data.
type PayloadFunc func(data domain.EventPayload, eventName string) map[string]any

// Adapter declares how canonical events map onto one platform. Adapters are
// immutable once built and the table is rebuilt from current settings on
// every dispatch pass.
type Adapter struct {
	Platform Platform

	// Tracker is the delivery capability, resolved once when the table is
	// built. A nil Tracker makes every send to this platform a safe no-op.
	Tracker TrackerFunc

	// Events maps canonical events to platform event names. A missing entry
	// means the platform intentionally does not support that event.
	Events map[domain.CanonicalEvent]string

	// Payload builds the platform-shaped payload.
	Payload PayloadFunc

	// Conditions optionally gate individual events behind merchant toggles.
	// Absence means the event is always permitted once the platform is
	// configured.
	Conditions map[domain.CanonicalEvent]func() bool
}

// Registry resolves tracker capabilities per platform for one shop's
// settings. A platform missing from the registry has no server-side delivery
// path and its adapter sends become no-ops.
type Registry map[Platform]TrackerFunc

// RegistryFunc builds a Registry for a given shop's settings. The indirection
// lets per-shop credentials (pixel IDs) bind into the tracker closures at
// table-build time.
type RegistryFunc func(settings *domain.PixelSettings) Registry

// StaticRegistry adapts a fixed Registry into a RegistryFunc.
func StaticRegistry(reg Registry) RegistryFunc {
	return func(*domain.PixelSettings) Registry { return reg }
}
