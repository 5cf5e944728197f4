package service

import (
	"context"

	"github.com/easycod/platform/internal/domain"
	"github.com/easycod/platform/internal/guard"
	"github.com/easycod/platform/internal/infra"
	"github.com/easycod/platform/internal/pixel"
	"github.com/easycod/platform/internal/provider"
)

// PlatformClients holds one conversion-API client per ad platform. A nil
// client means no server-side credential is configured for that platform and
// its events are dropped silently.
type PlatformClients struct {
	Meta      *provider.MetaClient
	Snap      *provider.SnapClient
	Google    *provider.GoogleClient
	Tiktok    *provider.TiktokClient
	Kwai      *provider.KwaiClient
	Criteo    *provider.CriteoClient
	Pinterest *provider.PinterestClient
	Taboola   *provider.TaboolaClient
}

// NewPlatformClients builds clients for every platform with a configured
// credential.
func NewPlatformClients(cfg *infra.Config) *PlatformClients {
	pc := &PlatformClients{}
	if cfg.MetaAccessToken != "" {
		pc.Meta = provider.NewMetaClient(cfg.MetaAccessToken)
	}
	if cfg.SnapAccessToken != "" {
		pc.Snap = provider.NewSnapClient(cfg.SnapAccessToken)
	}
	if cfg.GoogleAPISecret != "" {
		pc.Google = provider.NewGoogleClient(cfg.GoogleAPISecret)
	}
	if cfg.TiktokAccessToken != "" {
		pc.Tiktok = provider.NewTiktokClient(cfg.TiktokAccessToken)
	}
	if cfg.KwaiAccessToken != "" {
		pc.Kwai = provider.NewKwaiClient(cfg.KwaiAccessToken)
	}
	if cfg.CriteoAPIKey != "" {
		pc.Criteo = provider.NewCriteoClient(cfg.CriteoAPIKey)
	}
	if cfg.PinterestAccessToken != "" {
		pc.Pinterest = provider.NewPinterestClient(cfg.PinterestAccessToken)
	}
	if cfg.TaboolaAPIKey != "" {
		pc.Taboola = provider.NewTaboolaClient(cfg.TaboolaAPIKey)
	}
	return pc
}

// trackCall is the shared shape of every provider Track method.
type trackCall func(ctx context.Context, id, eventName string, payload map[string]any) error

// NewPlatformRegistry returns a RegistryFunc that binds each shop's pixel IDs
// into tracker closures and wraps every delivery in the per-platform circuit
// breaker. An open circuit skips the call; it never retries.
func NewPlatformRegistry(clients *PlatformClients, breaker *guard.CircuitBreaker) pixel.RegistryFunc {
	return func(settings *domain.PixelSettings) pixel.Registry {
		reg := pixel.Registry{}

		bind := func(platform pixel.Platform, id string, call trackCall) {
			if id == "" || call == nil {
				return
			}
			reg[platform] = func(ctx context.Context, eventName string, payload map[string]any) error {
				key := string(platform)
				if res := breaker.Check(ctx, key); !res.Allowed {
					return nil
				}
				if err := call(ctx, id, eventName, payload); err != nil {
					breaker.RecordFailure(key)
					return err
				}
				breaker.RecordSuccess(key)
				return nil
			}
		}

		if clients.Meta != nil {
			bind(pixel.PlatformFacebook, settings.FacebookPixelID, clients.Meta.Track)
		}
		if clients.Snap != nil {
			bind(pixel.PlatformSnapchat, settings.SnapPixelID, clients.Snap.Track)
		}
		if clients.Google != nil {
			bind(pixel.PlatformGoogle, settings.GoogleTagID, clients.Google.Track)
		}
		if clients.Tiktok != nil {
			bind(pixel.PlatformTiktok, settings.TiktokPixelID, clients.Tiktok.Track)
		}
		if clients.Kwai != nil {
			bind(pixel.PlatformKwai, settings.KwaiPixelID, clients.Kwai.Track)
		}
		if clients.Criteo != nil {
			bind(pixel.PlatformCriteo, settings.CriteoAccountID, clients.Criteo.Track)
		}
		if clients.Pinterest != nil {
			bind(pixel.PlatformPinterest, settings.PinterestTagID, clients.Pinterest.Track)
		}
		if clients.Taboola != nil {
			bind(pixel.PlatformTaboola, settings.TaboolaAccountID, clients.Taboola.Track)
		}

		return reg
	}
}
