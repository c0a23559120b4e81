package podsettings

import (
	"fmt"
	"strconv"
	"time"
)

// DefaultScope is the sentinel scope meaning "no override": values submitted
// or resolved under it use the bare option key.
const DefaultScope = "default"

// DefaultPrefix namespaces every option key written by the engine.
const DefaultPrefix = "podcast_"

// Well-known field IDs the engine attaches side effects to.
const (
	FieldIDRedirectFeed      = "redirect_feed"
	FieldIDRedirectFeedDate  = "redirect_feed_date"
	FieldIDHostingEmail      = "hosting_account_email"
	FieldIDHostingToken      = "hosting_account_api_token"
	FieldIDHostingAccountID  = "hosting_account_id"
	FieldIDHostingDisconnect = "hosting_disconnect"
)

// WriteHook observes a completed option write. Hooks run after the store
// write, outside the generic write path, and are best-effort: under
// concurrent writers a hook may observe a stale old value.
type WriteHook func(fieldID, scope, old, stored string)

// Engine holds the validated schema and performs value resolution,
// validated submission and rendering against an OptionStore. Construct one
// at startup and pass it by reference; it has no mutable schema state.
type Engine struct {
	schema Schema
	store  OptionStore
	prefix string
	hooks  []WriteHook
	clock  func() time.Time
}

// EngineOption configures an Engine at construction.
type EngineOption func(*Engine)

// WithPrefix overrides the option key namespace token.
func WithPrefix(prefix string) EngineOption {
	return func(e *Engine) { e.prefix = prefix }
}

// WithWriteHook registers an observer that fires after every successful
// write, in registration order.
func WithWriteHook(h WriteHook) EngineOption {
	return func(e *Engine) { e.hooks = append(e.hooks, h) }
}

// withClock lets tests pin the redirect timestamp.
func withClock(fn func() time.Time) EngineOption {
	return func(e *Engine) { e.clock = fn }
}

// NewEngine applies the schema filters in order, validates the filtered
// schema, and returns an engine bound to store. A *SchemaError means the
// whole settings surface must refuse to operate.
func NewEngine(schema Schema, store OptionStore, filters []SchemaFilter, opts ...EngineOption) (*Engine, error) {
	for _, f := range filters {
		schema = f(schema)
	}
	if err := schema.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		schema: schema,
		store:  store,
		prefix: DefaultPrefix,
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	// Standard side effects, attached as ordinary hooks so they stay out of
	// the generic write path.
	e.hooks = append([]WriteHook{e.markRedirectDate, e.maybeDisconnect}, e.hooks...)
	return e, nil
}

// Schema returns the filtered, validated schema the engine operates on.
func (e *Engine) Schema() Schema { return e.schema }

// Key composes the stored option key for a field and scope: the namespace
// prefix plus the field ID, with "_"+scope appended for a real scope. The
// empty scope and DefaultScope both address the unscoped key. This rule is
// load-bearing: reads and writes must compose identically.
func (e *Engine) Key(fieldID, scope string) string {
	key := e.prefix + fieldID
	if scope != "" && scope != DefaultScope {
		key += "_" + scope
	}
	return key
}

// stored returns the value written exactly at the composed key, with no
// fallback.
func (e *Engine) stored(fieldID, scope string) (string, bool, error) {
	return e.store.Get(e.Key(fieldID, scope))
}

// Resolve returns the effective value for a field and scope: the scoped
// stored value if present, else the unscoped stored value, else the field's
// static default.
func (e *Engine) Resolve(fieldID, scope string) (string, error) {
	f, ok := e.schema.Field(fieldID)
	if !ok {
		return "", fmt.Errorf("resolve: unknown field %q", fieldID)
	}
	if scope != "" && scope != DefaultScope {
		v, ok, err := e.stored(fieldID, scope)
		if err != nil {
			return "", err
		}
		if ok {
			return v, nil
		}
	}
	v, ok, err := e.stored(fieldID, "")
	if err != nil {
		return "", err
	}
	if ok {
		return v, nil
	}
	return f.Default, nil
}

// ResolveValues resolves a set-valued field into its member values.
func (e *Engine) ResolveValues(fieldID, scope string) ([]string, error) {
	v, err := e.Resolve(fieldID, scope)
	if err != nil {
		return nil, err
	}
	return SplitValues(v), nil
}

// Submit validates raw for the named field and writes it through to the
// store under the composed key, returning the stored value. A rejection is
// reported as *ValidationError; a store failure as *PersistenceError.
//
// Secret fields never have their stored value cleared by blank input: an
// empty raw is a no-op that returns the existing stored value.
func (e *Engine) Submit(fieldID, scope, raw string) (string, error) {
	f, ok := e.schema.Field(fieldID)
	if !ok {
		return "", &ValidationError{Field: fieldID, Reason: "unknown field"}
	}

	if f.Secret() && raw == "" {
		v, _, err := e.stored(fieldID, scope)
		return v, err
	}

	value := raw
	if f.Validator != nil {
		v, err := f.Validator(raw)
		if err != nil {
			return "", &ValidationError{Field: fieldID, Reason: err.Error()}
		}
		value = v
	}

	key := e.Key(fieldID, scope)
	old, _, err := e.store.Get(key)
	if err != nil {
		return "", err
	}
	if err := e.store.Set(key, value); err != nil {
		return "", err
	}
	for _, h := range e.hooks {
		h(fieldID, scope, old, value)
	}
	return value, nil
}

// SubmitValues submits a set-valued field (e.g. a multi-checkbox) from its
// individual form values.
func (e *Engine) SubmitValues(fieldID, scope string, vals []string) (string, error) {
	return e.Submit(fieldID, scope, JoinValues(vals))
}

// SubmitSection validates and persists every submitted field of a section
// independently: one rejected field never blocks the others. Fields of the
// section absent from form are left untouched, except checkboxes, which
// browsers omit when unchecked and which are therefore stored as "".
// The returned slice holds one *ValidationError (or *PersistenceError) per
// failed field.
func (e *Engine) SubmitSection(sectionKey, scope string, form map[string][]string) []error {
	sec, ok := e.schema.Section(sectionKey)
	if !ok {
		return []error{fmt.Errorf("submit: unknown section %q", sectionKey)}
	}
	var errs []error
	for _, f := range sec.Fields {
		if f.Type == FieldLink {
			continue // computed, never persisted from a form
		}
		vals, present := form[f.ID]
		var err error
		switch {
		case f.Multi():
			_, err = e.SubmitValues(f.ID, scope, vals)
		case !present && f.Type == FieldCheckbox:
			_, err = e.Submit(f.ID, scope, "")
		case !present:
			continue
		default:
			raw := ""
			if len(vals) > 0 {
				raw = vals[0]
			}
			_, err = e.Submit(f.ID, scope, raw)
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// Delete removes the stored value for a field and scope, restoring fallback
// resolution for that scope.
func (e *Engine) Delete(fieldID, scope string) error {
	return e.store.Delete(e.Key(fieldID, scope))
}

// markRedirectDate records when feed redirection was switched on: the
// transition from any non-"on" stored state to "on" writes a Unix timestamp
// under the companion redirect date key. Any other transition leaves the
// companion key alone.
func (e *Engine) markRedirectDate(fieldID, scope, old, stored string) {
	if fieldID != FieldIDRedirectFeed {
		return
	}
	if stored != "on" || old == "on" {
		return
	}
	ts := strconv.FormatInt(e.clock().Unix(), 10)
	_ = e.store.Set(e.Key(FieldIDRedirectFeedDate, scope), ts)
}

// maybeDisconnect tears down the hosting connection when the disconnect
// flag is switched on: the stored account credentials are deleted along
// with the flag itself.
func (e *Engine) maybeDisconnect(fieldID, scope, old, stored string) {
	if fieldID != FieldIDHostingDisconnect || stored != "on" {
		return
	}
	for _, id := range []string{
		FieldIDHostingEmail,
		FieldIDHostingToken,
		FieldIDHostingAccountID,
		FieldIDHostingDisconnect,
	} {
		_ = e.store.Delete(e.Key(id, scope))
	}
}

// HostingConnected reports whether hosting account credentials are stored.
func (e *Engine) HostingConnected() bool {
	token, okT, _ := e.stored(FieldIDHostingToken, "")
	email, okE, _ := e.stored(FieldIDHostingEmail, "")
	return okT && okE && token != "" && email != ""
}
