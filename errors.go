package podsettings

import "fmt"

// SchemaError reports a malformed schema definition. It is fatal at load
// time: an engine is never constructed over an inconsistent schema.
type SchemaError struct {
	Section string
	Field   string
	Reason  string
}

func (e *SchemaError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("settings schema: section %q field %q: %s", e.Section, e.Field, e.Reason)
	}
	return fmt.Sprintf("settings schema: section %q: %s", e.Section, e.Reason)
}

// ValidationError reports a rejected submitted value. One rejection never
// aborts the rest of a submission batch.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid value for %q: %s", e.Field, e.Reason)
}

// PersistenceError wraps a failure of the underlying option store. It is
// propagated, never retried here.
type PersistenceError struct {
	Op  string // "get", "set" or "delete"
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("option store: %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
