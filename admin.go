package podsettings

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/podsettings/hosting"
)

// Tab is one entry of the settings tab bar, in schema section order.
type Tab struct {
	Key    string `json:"key"`
	Title  string `json:"title"`
	Active bool   `json:"active"`
}

// ScopeLink is one entry of the series scope switcher.
type ScopeLink struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// SettingsPage is the full page model for the settings surface: the tab
// bar, the rendered active section, the scope switcher and the view-feed
// link. Templates receive it as-is; without templates it is served as JSON.
type SettingsPage struct {
	Title   string      `json:"title"`
	Tabs    []Tab       `json:"tabs"`
	Section SectionView `json:"section"`
	Scopes  []ScopeLink `json:"scopes,omitempty"`
	FeedURL string      `json:"feed_url"`
	Message string      `json:"message,omitempty"`
	Errors  []string    `json:"errors,omitempty"`
}

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		if a.Views.AdminLogin != nil {
			return Render(c, a.Views.AdminLogin(false, CsrfToken(c)))
		}
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "login required"})
	}
	return c.Redirect(http.StatusSeeOther, "/admin/settings/")
}

func (a *App) handleAdminLogin(c echo.Context) error {
	if !a.loginLimiter.Allow(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin/settings/")
	}
	if a.Views.AdminLogin != nil {
		return Render(c, a.Views.AdminLogin(true, CsrfToken(c)))
	}
	return c.JSON(http.StatusUnauthorized, map[string]string{"error": "wrong password"})
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

func (a *App) handleSettings(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	tab := c.QueryParam("tab")
	scope := c.QueryParam("series")
	return a.renderSettings(c, tab, scope, c.QueryParam("msg"), nil)
}

func (a *App) handleSettingsSave(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	if err := c.Request().ParseForm(); err != nil {
		return err
	}
	tab := c.FormValue("tab")
	if tab == "" {
		tab = a.firstSectionKey()
	}
	scope := c.FormValue("series")

	errs := a.Engine.SubmitSection(tab, scope, c.Request().PostForm)
	var errStrings []string
	for _, err := range errs {
		errStrings = append(errStrings, err.Error())
	}

	msg := "Settings saved."
	if len(errStrings) > 0 {
		msg = "Some settings were not saved."
	}

	// Push the saved feed details to the hosting service when connected.
	// A push failure never fails the save; the values are already stored.
	if tab == SectionFeedDetails && a.Hosting != nil && a.Engine.HostingConnected() {
		if err := a.pushFeedDetails(c, scope); err != nil {
			c.Logger().Errorf("push feed details: %v", err)
		}
	}

	return a.renderSettings(c, tab, scope, msg, errStrings)
}

func (a *App) renderSettings(c echo.Context, tab, scope, msg string, errStrings []string) error {
	if tab == "" {
		tab = a.firstSectionKey()
	}
	section, err := a.Engine.RenderSection(tab, scope)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "unknown settings tab")
	}

	page := SettingsPage{
		Title:   a.Config.Name + " Settings",
		Section: section,
		FeedURL: a.feedURL(scope),
		Message: msg,
		Errors:  errStrings,
	}
	for _, sec := range a.Engine.Schema().Sections {
		page.Tabs = append(page.Tabs, Tab{Key: sec.Key, Title: sec.Title, Active: sec.Key == tab})
	}
	if tab == SectionFeedDetails && a.scopes != nil {
		scopes, err := a.scopes.ListScopes()
		if err != nil {
			return err
		}
		active := scope
		if active == "" {
			active = DefaultScope
		}
		page.Scopes = append(page.Scopes, ScopeLink{ID: DefaultScope, Name: "Default feed", Active: active == DefaultScope})
		for _, s := range scopes {
			page.Scopes = append(page.Scopes, ScopeLink{ID: s.ID, Name: s.Name, Active: active == s.ID})
		}
	}

	if a.Views.SettingsPage != nil {
		return Render(c, a.Views.SettingsPage(page, CsrfToken(c)))
	}
	return c.JSON(http.StatusOK, page)
}

func (a *App) firstSectionKey() string {
	secs := a.Engine.Schema().Sections
	if len(secs) == 0 {
		return ""
	}
	return secs[0].Key
}

// feedURL builds the view-feed link for the active scope.
func (a *App) feedURL(scope string) string {
	url := BuildURL(a.Config.URL, "feed", a.Config.FeedSlug)
	if scope != "" && scope != DefaultScope {
		url = BuildURL(url, scope)
	}
	return url
}

// pushFeedDetails uploads the resolved feed-details values for a scope.
func (a *App) pushFeedDetails(c echo.Context, scope string) error {
	sec, _ := a.Engine.Schema().Section(SectionFeedDetails)
	values := make(map[string]string, len(sec.Fields))
	for _, f := range sec.Fields {
		if f.Type == FieldLink || f.Type == FieldHidden || f.Secret() {
			continue
		}
		v, err := a.Engine.Resolve(f.ID, scope)
		if err != nil {
			return err
		}
		values[f.ID] = v
	}

	token, _ := a.Engine.Resolve(FieldIDHostingToken, "")
	email, _ := a.Engine.Resolve(FieldIDHostingEmail, "")

	seriesID := scope
	if seriesID == "" {
		seriesID = DefaultScope
	}
	return a.Hosting.PushFeed(c.Request().Context(), token, email, hosting.FeedDetails{
		SeriesID: seriesID,
		Values:   values,
	})
}

func (a *App) handleValidateCredentials(c echo.Context) error {
	if !IsAdmin(c) {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "login required"})
	}
	if a.Hosting == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "hosting service not configured"})
	}
	token := strings.TrimSpace(c.QueryParam("api_token"))
	email := strings.TrimSpace(c.QueryParam("email"))

	status, err := a.Hosting.ValidateCredentials(c.Request().Context(), token, email)
	if err != nil {
		return c.JSON(http.StatusBadGateway, map[string]any{"valid": false, "message": err.Error()})
	}
	return c.JSON(http.StatusOK, status)
}

func (a *App) handleImportRequest(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	req := ImportRequest{
		Name:    strings.TrimSpace(c.FormValue("name")),
		Website: strings.TrimSpace(c.FormValue("website")),
		Email:   strings.TrimSpace(c.FormValue("email")),
		FeedURL: strings.TrimSpace(c.FormValue("podcast_url")),
	}
	if err := a.notifier.NotifyImport(req); err != nil {
		return err
	}
	return a.renderSettings(c, a.firstSectionKey(), "", "Thanks, someone will be in touch to assist with importing your podcast.", nil)
}
