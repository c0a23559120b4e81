// Package podsettings is a podcast settings engine built with Go, Echo, and
// templ. A declarative schema (sections of typed fields) is rendered into an
// admin settings surface, validated on submission, and persisted through a
// flat key-value option store with per-series override resolution.
//
// Users provide their own templ templates via the ViewFuncs struct; when no
// templates are supplied the admin surface answers with the JSON field
// records instead, so any presentation layer can draw the forms.
package podsettings

import (
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/podsettings/hosting"
)

// Scope identifies one series whose feed details may override the defaults.
type Scope struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ScopeProvider lists the series scopes available for per-series overrides.
// Episode and series storage live outside this module; the provider is how
// the settings surface learns what scopes exist.
type ScopeProvider interface {
	ListScopes() ([]Scope, error)
}

// ViewFuncs holds user-provided templ components that the framework calls
// when rendering pages. This is the inversion-of-control mechanism that
// lets users own and customize all templates. Any nil component falls back
// to a JSON response.
type ViewFuncs struct {
	SettingsPage func(page SettingsPage, csrfToken string) templ.Component
	AdminLogin   func(showError bool, csrfToken string) templ.Component
	NotFound     func() templ.Component
	ServerError  func() templ.Component
}

// App is the central podsettings application. It wires together the option
// store, settings engine, handlers, middleware, and user-provided templates.
type App struct {
	Config  Config
	Echo    *echo.Echo
	Store   *Store
	Engine  *Engine
	Views   ViewFuncs
	Hosting *hosting.Client

	loginLimiter *LoginLimiter
	scopes       ScopeProvider
	notifier     Notifier
	filters      []SchemaFilter
	customRoutes []func(*App)
	staticDir    string
}

// New creates a new podsettings App with the given configuration and view functions.
func New(cfg Config, views ViewFuncs, opts ...AppOption) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		notifier:  LogNotifier{},
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start initializes the store, engine, middleware, and routes, and starts
// the server. A *SchemaError from a filter-modified schema is fatal here:
// the settings surface refuses to come up over an inconsistent schema.
func (a *App) Start() error {
	if err := a.setup(); err != nil {
		return err
	}

	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setup() error {
	if a.Config.AdminPassword == "" {
		return fmt.Errorf("podsettings: AdminPassword is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("podsettings: SessionSecret is required")
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("podsettings: init store: %w", err)
	}
	a.Store = store

	engine, err := NewEngine(DefaultSchema(a.Config), store, a.filters,
		WithPrefix(a.Config.OptionPrefix))
	if err != nil {
		return fmt.Errorf("podsettings: init engine: %w", err)
	}
	a.Engine = engine

	if a.Config.HostingAPIURL != "" {
		a.Hosting = hosting.NewClient(a.Config.HostingAPIURL)
	}

	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Embedded framework asset (settings.js drives the credential validate
	// button and the cover uploader), falling through to the user's static dir.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/settings.js", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))

	e.Static("/public", a.staticDir)

	// Admin routes
	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", handleAdminLogout)
	e.GET("/admin/settings/", a.handleSettings)
	e.POST("/admin/settings/save/", a.handleSettingsSave)
	e.POST("/admin/settings/cover/", a.handleCoverUpload)
	e.POST("/admin/settings/import/", a.handleImportRequest)
	e.GET("/admin/settings/api/validate", a.handleValidateCredentials)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
