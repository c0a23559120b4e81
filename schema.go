package podsettings

import "strconv"

// FieldType identifies the rendering and persistence strategy for a field.
// The set is closed; a type outside it is rendered as nothing (the surface
// stays silent rather than failing a whole page for one bad field).
type FieldType string

const (
	FieldText          FieldType = "text"
	FieldNumber        FieldType = "number"
	FieldColourPicker  FieldType = "colour-picker"
	FieldPassword      FieldType = "password"
	FieldSecret        FieldType = "text_secret"
	FieldTextarea      FieldType = "textarea"
	FieldCheckbox      FieldType = "checkbox"
	FieldMultiCheckbox FieldType = "checkbox_multi"
	FieldRadio         FieldType = "radio"
	FieldSelect        FieldType = "select"
	FieldImage         FieldType = "image"
	FieldLink          FieldType = "link"
	FieldHidden        FieldType = "hidden"
)

// Option is one selectable value of a choice field. Select options may carry
// a Group label; consecutive options sharing a group render inside one group.
type Option struct {
	Value string
	Label string
	Group string
}

// Validator normalizes or rejects a raw submitted value.
type Validator func(raw string) (string, error)

// Field is one configurable setting. Fields are immutable once the engine
// is constructed.
type Field struct {
	ID          string
	Label       string
	Description string
	Type        FieldType
	Options     []Option // choice types only
	Default     string
	Placeholder string
	Validator   Validator
	Class       string // presentation hint only
	ParentClass string // presentation hint only
}

// Secret reports whether stored values of this field must never be
// re-rendered or overwritten by blank input.
func (f Field) Secret() bool {
	return f.Type == FieldPassword || f.Type == FieldSecret
}

// Multi reports whether the field's value is a set rather than a scalar.
func (f Field) Multi() bool {
	return f.Type == FieldMultiCheckbox
}

// Section is a named ordered group of fields shown together as one tab.
type Section struct {
	Key         string
	Title       string
	Description string
	Fields      []Field
}

// Schema is the full ordered section list defining the settings surface.
// Declaration order is significant: it determines tab and field order.
type Schema struct {
	Sections []Section
}

// SchemaFilter transforms a schema after the base definition and before the
// engine validates or uses it. This is the extensibility point for callers
// that need to add, remove or reshape sections and fields.
type SchemaFilter func(Schema) Schema

// Section returns the section with the given key.
func (s Schema) Section(key string) (Section, bool) {
	for _, sec := range s.Sections {
		if sec.Key == key {
			return sec, true
		}
	}
	return Section{}, false
}

// Field returns the first field with the given ID, searching sections in
// order. The same ID may appear in more than one section (both pointing at
// the same stored option); definitions are expected to agree.
func (s Schema) Field(id string) (Field, bool) {
	for _, sec := range s.Sections {
		for _, f := range sec.Fields {
			if f.ID == id {
				return f, true
			}
		}
	}
	return Field{}, false
}

// Validate checks the schema for definition errors: duplicate field IDs
// within a section, duplicate section keys, and select option groups that
// are not contiguous in declaration order.
func (s Schema) Validate() error {
	sectionKeys := make(map[string]bool, len(s.Sections))
	for _, sec := range s.Sections {
		if sectionKeys[sec.Key] {
			return &SchemaError{Section: sec.Key, Reason: "duplicate section key"}
		}
		sectionKeys[sec.Key] = true

		fieldIDs := make(map[string]bool, len(sec.Fields))
		for _, f := range sec.Fields {
			if f.ID == "" {
				return &SchemaError{Section: sec.Key, Reason: "field with empty id"}
			}
			if fieldIDs[f.ID] {
				return &SchemaError{Section: sec.Key, Field: f.ID, Reason: "duplicate field id"}
			}
			fieldIDs[f.ID] = true

			if f.Type == FieldSelect {
				if err := validateGroups(sec.Key, f); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// validateGroups rejects option lists where a group label recurs after the
// run has been closed by a different group. Rendering opens one group per
// contiguous run, so a recurring label would silently split the group.
func validateGroups(sectionKey string, f Field) error {
	seen := make(map[string]bool)
	prev := ""
	for i, opt := range f.Options {
		if i == 0 || opt.Group != prev {
			if opt.Group != "" && seen[opt.Group] {
				return &SchemaError{
					Section: sectionKey,
					Field:   f.ID,
					Reason:  "select option group " + strconv.Quote(opt.Group) + " is not contiguous",
				}
			}
			if opt.Group != "" {
				seen[opt.Group] = true
			}
		}
		prev = opt.Group
	}
	return nil
}
