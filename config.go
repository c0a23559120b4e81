package podsettings

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for a podsettings site.
type Config struct {
	Name        string `toml:"name"`        // Site/podcast name (default "Podcast")
	URL         string `toml:"url"`         // Canonical site URL (default "http://localhost:3000")
	Description string `toml:"description"` // Site description, used as feed default
	Owner       string `toml:"owner"`       // Owner name, used as feed default
	OwnerEmail  string `toml:"owner_email"` // Owner email, used as feed default
	Language    string `toml:"language"`    // ISO-639-1 language (default "en")
	FeedSlug    string `toml:"feed_slug"`   // Feed path segment (default "podcast")

	Addr         string `toml:"addr"`          // Listen address (default ":3000")
	DatabasePath string `toml:"database_path"` // SQLite path (default "data/settings.db")
	OptionPrefix string `toml:"option_prefix"` // Option key namespace (default DefaultPrefix)

	AdminPassword string `toml:"admin_password"` // Required: admin login password
	SessionSecret string `toml:"session_secret"` // Required: session encryption secret
	CookieSecure  bool   `toml:"cookie_secure"`  // Set true for HTTPS

	HostingAPIURL string `toml:"hosting_api_url"` // Hosting service base URL (empty disables hosting calls)
}

func (c *Config) setDefaults() {
	if c.Name == "" {
		c.Name = "Podcast"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Language == "" {
		c.Language = "en"
	}
	if c.FeedSlug == "" {
		c.FeedSlug = "podcast"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/settings.db"
	}
	if c.OptionPrefix == "" {
		c.OptionPrefix = DefaultPrefix
	}
}

// LoadConfig reads a TOML config file. Missing keys keep their defaults;
// secrets left empty can still be supplied via EnvOr/MustEnv by the caller.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg.setDefaults()
	return cfg, nil
}

// AppOption configures additional App behavior.
type AppOption func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) AppOption {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) AppOption {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithSchemaFilter appends a schema filter applied after the base schema is
// defined and before the engine validates it.
func WithSchemaFilter(f SchemaFilter) AppOption {
	return func(a *App) {
		a.filters = append(a.filters, f)
	}
}

// WithScopeProvider supplies the collaborator that lists the series scopes
// shown in the feed-details scope switcher.
func WithScopeProvider(p ScopeProvider) AppOption {
	return func(a *App) {
		a.scopes = p
	}
}

// WithNotifier supplies the collaborator that receives import requests.
func WithNotifier(n Notifier) AppOption {
	return func(a *App) {
		a.notifier = n
	}
}
