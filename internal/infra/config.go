package infra

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds all application configuration parsed from environment variables.
type Config struct {
	// Database
	DatabaseURL string `env:"DATABASE_URL"`
	PGHost      string `env:"PGHOST" envDefault:"localhost"`
	PGPort      int    `env:"PGPORT" envDefault:"5432"`
	PGUser      string `env:"PGUSER" envDefault:"easycod"`
	PGPassword  string `env:"PGPASSWORD" envDefault:"easycod"`
	PGDatabase  string `env:"PGDATABASE" envDefault:"easycod"`

	// Server
	APIPort int `env:"API_PORT" envDefault:"3200"`

	// Kafka
	KafkaBrokers string `env:"KAFKA_BROKERS" envDefault:"localhost:9092"`
	KafkaEnabled bool   `env:"KAFKA_ENABLED" envDefault:"false"`

	// CORS
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*"`

	// Dev
	AllowInsecureDefaults bool `env:"ALLOW_INSECURE_DEFAULTS" envDefault:"false"`

	// Shopify app credentials. The API secret both signs session tokens and
	// verifies admin requests; the access token authenticates the Admin API
	// client used for order creation.
	ShopifyAPIKey      string `env:"SHOPIFY_API_KEY"`
	ShopifyAPISecret   string `env:"SHOPIFY_API_SECRET"`
	ShopifyAccessToken string `env:"SHOPIFY_ACCESS_TOKEN"`
	ShopifyAPIVersion  string `env:"SHOPIFY_API_VERSION" envDefault:"2024-07"`

	// Server-side conversion API credentials, one per ad platform. An empty
	// value disables server-side delivery for that platform.
	MetaAccessToken      string `env:"META_CAPI_ACCESS_TOKEN"`
	TiktokAccessToken    string `env:"TIKTOK_ACCESS_TOKEN"`
	GoogleAPISecret      string `env:"GOOGLE_MP_API_SECRET"`
	SnapAccessToken      string `env:"SNAP_CAPI_ACCESS_TOKEN"`
	KwaiAccessToken      string `env:"KWAI_ACCESS_TOKEN"`
	CriteoAPIKey         string `env:"CRITEO_API_KEY"`
	PinterestAccessToken string `env:"PINTEREST_ACCESS_TOKEN"`
	TaboolaAPIKey        string `env:"TABOOLA_API_KEY"`
}

// LoadConfig parses environment variables into a Config struct.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Validate checks for insecure configuration that must not run in production.
// Set ALLOW_INSECURE_DEFAULTS=true to bypass (local dev only).
func (c *Config) Validate() error {
	if c.AllowInsecureDefaults {
		return nil
	}
	if c.ShopifyAPISecret == "" {
		return fmt.Errorf("SHOPIFY_API_SECRET is required; set it or set ALLOW_INSECURE_DEFAULTS=true for local dev")
	}
	if len(c.ShopifyAPISecret) < 32 {
		return fmt.Errorf("SHOPIFY_API_SECRET is too short (%d chars); minimum 32 characters required", len(c.ShopifyAPISecret))
	}
	return nil
}

// DSN returns the PostgreSQL connection string, preferring DATABASE_URL if set.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.PGUser, c.PGPassword, c.PGHost, c.PGPort, c.PGDatabase)
}
