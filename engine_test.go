package podsettings

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func testSchema() Schema {
	return Schema{Sections: []Section{
		{
			Key:   "general",
			Title: "General",
			Fields: []Field{
				{ID: "title", Label: "Title", Type: FieldText, Default: "My Podcast", Validator: StripTags},
				{ID: "slug", Label: "Slug", Type: FieldText, Validator: NormalizeSlug},
				{ID: "protect", Label: "Password protect", Type: FieldCheckbox, Validator: CheckboxValue},
				{ID: "feed_password", Label: "Password", Type: FieldSecret, Validator: EncodePassword},
				{ID: "locations", Label: "Locations", Type: FieldMultiCheckbox, Options: []Option{
					{Value: "content", Label: "Content"},
					{Value: "excerpt", Label: "Excerpt"},
				}},
				{ID: FieldIDRedirectFeed, Label: "Redirect feed", Type: FieldCheckbox, Validator: CheckboxValue},
				{ID: "docs", Label: "Documentation", Type: FieldLink, Default: "http://example.com/docs"},
			},
		},
		{
			Key:   "hosting",
			Title: "Hosting",
			Fields: []Field{
				{ID: FieldIDHostingEmail, Label: "Email", Type: FieldText},
				{ID: FieldIDHostingToken, Label: "Token", Type: FieldText},
				{ID: FieldIDHostingAccountID, Label: "Account ID", Type: FieldHidden},
				{ID: FieldIDHostingDisconnect, Label: "Disconnect", Type: FieldCheckbox, Validator: CheckboxValue},
			},
		},
	}}
}

func newTestEngine(t *testing.T, opts ...EngineOption) (*Engine, *MemStore) {
	t.Helper()
	store := NewMemStore()
	e, err := NewEngine(testSchema(), store, nil, opts...)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	return e, store
}

func TestKeyComposition(t *testing.T) {
	e, _ := newTestEngine(t)

	tests := []struct {
		fieldID string
		scope   string
		want    string
	}{
		{"title", "", "podcast_title"},
		{"title", DefaultScope, "podcast_title"},
		{"title", "26", "podcast_title_26"},
		{"data_title", "tech-show", "podcast_data_title_tech-show"},
	}
	for _, tt := range tests {
		if got := e.Key(tt.fieldID, tt.scope); got != tt.want {
			t.Errorf("Key(%q, %q) = %q, want %q", tt.fieldID, tt.scope, got, tt.want)
		}
	}
}

func TestKeyCustomPrefix(t *testing.T) {
	store := NewMemStore()
	e, err := NewEngine(testSchema(), store, nil, WithPrefix("show_"))
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	if got := e.Key("title", "7"); got != "show_title_7" {
		t.Errorf("Key = %q, want %q", got, "show_title_7")
	}
}

func TestResolveFallbackChain(t *testing.T) {
	e, store := newTestEngine(t)

	// Nothing stored: static default.
	v, err := e.Resolve("title", "26")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if v != "My Podcast" {
		t.Errorf("unstored resolve = %q, want static default", v)
	}

	// Unscoped stored value covers scoped reads.
	store.Set("podcast_title", "Shared Title")
	v, _ = e.Resolve("title", "26")
	if v != "Shared Title" {
		t.Errorf("scoped resolve = %q, want unscoped fallback %q", v, "Shared Title")
	}

	// Scoped stored value wins over both.
	store.Set("podcast_title_26", "Series Title")
	v, _ = e.Resolve("title", "26")
	if v != "Series Title" {
		t.Errorf("scoped resolve = %q, want %q", v, "Series Title")
	}

	// Other scopes still see the unscoped value.
	v, _ = e.Resolve("title", "99")
	if v != "Shared Title" {
		t.Errorf("other-scope resolve = %q, want %q", v, "Shared Title")
	}

	// The default scope sentinel addresses the unscoped key.
	v, _ = e.Resolve("title", DefaultScope)
	if v != "Shared Title" {
		t.Errorf("default-scope resolve = %q, want %q", v, "Shared Title")
	}
}

func TestResolveUnknownField(t *testing.T) {
	e, _ := newTestEngine(t)
	if _, err := e.Resolve("no_such_field", ""); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestSubmitStoresValidatedValue(t *testing.T) {
	e, store := newTestEngine(t)

	got, err := e.Submit("title", "", "  <b>Loud</b> Title  ")
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if got != "Loud Title" {
		t.Errorf("Submit returned %q, want validator output", got)
	}
	v, ok, _ := store.Get("podcast_title")
	if !ok || v != "Loud Title" {
		t.Errorf("stored = %q (ok=%v), want %q", v, ok, "Loud Title")
	}
}

func TestSubmitUnknownField(t *testing.T) {
	e, _ := newTestEngine(t)

	_, err := e.Submit("no_such_field", "", "x")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
	if verr.Field != "no_such_field" {
		t.Errorf("Field = %q, want %q", verr.Field, "no_such_field")
	}
}

func TestSubmitValidatorRejection(t *testing.T) {
	e, store := newTestEngine(t)
	store.Set("podcast_protect", "on")

	_, err := e.Submit("protect", "", "yes please")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
	// A rejection must leave the stored value untouched.
	v, _, _ := store.Get("podcast_protect")
	if v != "on" {
		t.Errorf("stored after rejection = %q, want %q", v, "on")
	}
}

func TestSecretBlankSubmitKeepsStored(t *testing.T) {
	e, store := newTestEngine(t)

	first, err := e.Submit("feed_password", "", "hunter2")
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if first == "hunter2" {
		t.Fatal("secret stored in plaintext")
	}
	if len(first) != 32 || strings.ToLower(first) != first {
		t.Errorf("encoded secret %q is not a hex digest", first)
	}

	// A blank re-submission is a no-op returning the stored value.
	again, err := e.Submit("feed_password", "", "")
	if err != nil {
		t.Fatalf("blank Submit failed: %v", err)
	}
	if again != first {
		t.Errorf("blank submit returned %q, want stored %q", again, first)
	}
	v, _, _ := store.Get("podcast_feed_password")
	if v != first {
		t.Errorf("stored after blank submit = %q, want %q", v, first)
	}
}

func TestRedirectDateTransitions(t *testing.T) {
	fixed := time.Unix(1700000000, 0)

	tests := []struct {
		name      string
		before    string // "" means absent
		submit    string
		wantStamp bool
	}{
		{"absent to on", "", "on", true},
		{"off to on", "", "on", true},
		{"on to on", "on", "on", false},
		{"on to off", "on", "", false},
		{"absent to off", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, store := newTestEngine(t, withClock(func() time.Time { return fixed }))
			if tt.before != "" {
				store.Set("podcast_redirect_feed", tt.before)
			}

			if _, err := e.Submit(FieldIDRedirectFeed, "", tt.submit); err != nil {
				t.Fatalf("Submit failed: %v", err)
			}

			stamp, ok, _ := store.Get("podcast_redirect_feed_date")
			if ok != tt.wantStamp {
				t.Fatalf("date stamped = %v, want %v", ok, tt.wantStamp)
			}
			if tt.wantStamp && stamp != "1700000000" {
				t.Errorf("stamp = %q, want %q", stamp, "1700000000")
			}
		})
	}
}

func TestRedirectDateScoped(t *testing.T) {
	fixed := time.Unix(1700000000, 0)
	e, store := newTestEngine(t, withClock(func() time.Time { return fixed }))

	if _, err := e.Submit(FieldIDRedirectFeed, "26", "on"); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if _, ok, _ := store.Get("podcast_redirect_feed_date_26"); !ok {
		t.Error("scoped redirect date not written")
	}
	if _, ok, _ := store.Get("podcast_redirect_feed_date"); ok {
		t.Error("unscoped redirect date written for a scoped submit")
	}
}

func TestSubmitValuesRoundtrip(t *testing.T) {
	e, store := newTestEngine(t)

	if _, err := e.SubmitValues("locations", "", []string{"content", "excerpt"}); err != nil {
		t.Fatalf("SubmitValues failed: %v", err)
	}
	stored, _, _ := store.Get("podcast_locations")
	if stored != ",content,excerpt," {
		t.Errorf("stored = %q, want sentinel encoding", stored)
	}

	vals, err := e.ResolveValues("locations", "")
	if err != nil {
		t.Fatalf("ResolveValues failed: %v", err)
	}
	if len(vals) != 2 || vals[0] != "content" || vals[1] != "excerpt" {
		t.Errorf("ResolveValues = %v", vals)
	}

	// Empty selection stores the empty set, not a stray sentinel.
	if _, err := e.SubmitValues("locations", "", nil); err != nil {
		t.Fatalf("SubmitValues failed: %v", err)
	}
	stored, _, _ = store.Get("podcast_locations")
	if stored != "" {
		t.Errorf("empty set stored as %q", stored)
	}
}

func TestSubmitSectionIndependence(t *testing.T) {
	e, store := newTestEngine(t)

	form := map[string][]string{
		"title":   {"Good Title"},
		"protect": {"bogus"}, // rejected by CheckboxValue
		"slug":    {"My Show"},
	}
	errs := e.SubmitSection("general", "", form)
	if len(errs) != 1 {
		t.Fatalf("errs = %v, want exactly one", errs)
	}
	var verr *ValidationError
	if !errors.As(errs[0], &verr) || verr.Field != "protect" {
		t.Fatalf("err = %v, want ValidationError for protect", errs[0])
	}

	// The rejected field never blocks its neighbors.
	if v, _, _ := store.Get("podcast_title"); v != "Good Title" {
		t.Errorf("title = %q, want stored despite sibling rejection", v)
	}
	if v, _, _ := store.Get("podcast_slug"); v != "my-show" {
		t.Errorf("slug = %q, want normalized", v)
	}
}

func TestSubmitSectionCheckboxAbsent(t *testing.T) {
	e, store := newTestEngine(t)
	store.Set("podcast_protect", "on")

	// Browsers omit unchecked checkboxes entirely; absence means "off".
	errs := e.SubmitSection("general", "", map[string][]string{
		"title": {"T"},
	})
	if len(errs) != 0 {
		t.Fatalf("errs = %v", errs)
	}
	v, ok, _ := store.Get("podcast_protect")
	if !ok || v != "" {
		t.Errorf("protect = %q (ok=%v), want stored empty", v, ok)
	}

	// Non-checkbox fields absent from the form stay untouched.
	if _, ok, _ := store.Get("podcast_slug"); ok {
		t.Error("absent text field was written")
	}
}

func TestSubmitSectionSkipsLinks(t *testing.T) {
	e, store := newTestEngine(t)

	errs := e.SubmitSection("general", "", map[string][]string{
		"docs": {"http://evil.example.com"},
	})
	if len(errs) != 0 {
		t.Fatalf("errs = %v", errs)
	}
	if _, ok, _ := store.Get("podcast_docs"); ok {
		t.Error("link field was persisted from a form")
	}
}

func TestSubmitSectionUnknownSection(t *testing.T) {
	e, _ := newTestEngine(t)
	errs := e.SubmitSection("nope", "", nil)
	if len(errs) != 1 {
		t.Fatalf("errs = %v, want one", errs)
	}
}

func TestDisconnectDeletesHostingKeys(t *testing.T) {
	e, store := newTestEngine(t)
	store.Set("podcast_hosting_account_email", "a@b.com")
	store.Set("podcast_hosting_account_api_token", "tok")
	store.Set("podcast_hosting_account_id", "42")

	if !e.HostingConnected() {
		t.Fatal("expected hosting connected")
	}

	if _, err := e.Submit(FieldIDHostingDisconnect, "", "on"); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	for _, key := range []string{
		"podcast_hosting_account_email",
		"podcast_hosting_account_api_token",
		"podcast_hosting_account_id",
		"podcast_hosting_disconnect",
	} {
		if _, ok, _ := store.Get(key); ok {
			t.Errorf("%s still stored after disconnect", key)
		}
	}
	if e.HostingConnected() {
		t.Error("still connected after disconnect")
	}
}

func TestDeleteRestoresFallback(t *testing.T) {
	e, store := newTestEngine(t)
	store.Set("podcast_title", "Shared")
	store.Set("podcast_title_26", "Scoped")

	if err := e.Delete("title", "26"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	v, _ := e.Resolve("title", "26")
	if v != "Shared" {
		t.Errorf("resolve after delete = %q, want unscoped fallback", v)
	}
}

func TestWriteHookObservesTransition(t *testing.T) {
	type call struct{ field, scope, old, stored string }
	var calls []call

	store := NewMemStore()
	e, err := NewEngine(testSchema(), store, nil, WithWriteHook(func(fieldID, scope, old, stored string) {
		calls = append(calls, call{fieldID, scope, old, stored})
	}))
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	store.Set("podcast_title", "Old")
	if _, err := e.Submit("title", "", "New"); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if len(calls) != 1 {
		t.Fatalf("hook calls = %d, want 1", len(calls))
	}
	if calls[0].old != "Old" || calls[0].stored != "New" {
		t.Errorf("hook saw old=%q stored=%q", calls[0].old, calls[0].stored)
	}
}
