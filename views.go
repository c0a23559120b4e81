package podsettings

import "fmt"

// SecretPlaceholder is shown in place of a stored secret; the value itself
// is never re-rendered.
const SecretPlaceholder = "Password stored securely"

// OptionView is one rendered choice with its computed selection state.
type OptionView struct {
	Value    string
	Label    string
	Selected bool
}

// OptionGroup is a contiguous run of select options sharing one group
// label. An empty label is a group of its own (rendered flat).
type OptionGroup struct {
	Label   string
	Options []OptionView
}

// FieldView is the presentation record for one field: everything a
// presentation layer needs to draw the input, whatever the markup.
type FieldView struct {
	ID          string        `json:"id"`
	Type        FieldType     `json:"type"`
	Label       string        `json:"label"`
	Description string        `json:"description"`
	Value       string        `json:"value"`
	Values      []string      `json:"values,omitempty"`
	Placeholder string        `json:"placeholder,omitempty"`
	HasStored   bool          `json:"has_stored,omitempty"`
	Options     []OptionView  `json:"options,omitempty"`
	Groups      []OptionGroup `json:"groups,omitempty"`
	Class       string        `json:"-"`
	ParentClass string        `json:"-"`
}

// SectionView is the ordered render output for one section and scope.
type SectionView struct {
	Key         string      `json:"key"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Scope       string      `json:"scope,omitempty"`
	Fields      []FieldView `json:"fields"`
}

// RenderSection resolves every field of the named section for the given
// scope and produces its presentation records in declaration order. Hidden
// fields and fields of a type outside the known set render nothing; they
// are skipped rather than treated as errors.
func (e *Engine) RenderSection(sectionKey, scope string) (SectionView, error) {
	sec, ok := e.schema.Section(sectionKey)
	if !ok {
		return SectionView{}, fmt.Errorf("render: unknown section %q", sectionKey)
	}
	view := SectionView{
		Key:         sec.Key,
		Title:       sec.Title,
		Description: sec.Description,
		Scope:       scope,
	}
	for _, f := range sec.Fields {
		fv, ok, err := e.renderField(f, scope)
		if err != nil {
			return SectionView{}, err
		}
		if !ok {
			continue
		}
		view.Fields = append(view.Fields, fv)
	}
	return view, nil
}

func (e *Engine) renderField(f Field, scope string) (FieldView, bool, error) {
	fv := FieldView{
		ID:          f.ID,
		Type:        f.Type,
		Label:       f.Label,
		Description: f.Description,
		Placeholder: f.Placeholder,
		Class:       f.Class,
		ParentClass: f.ParentClass,
	}

	resolved, err := e.Resolve(f.ID, scope)
	if err != nil {
		return FieldView{}, false, err
	}

	switch f.Type {
	case FieldText, FieldNumber, FieldColourPicker, FieldTextarea,
		FieldCheckbox, FieldImage, FieldLink:
		fv.Value = resolved

	case FieldPassword, FieldSecret:
		// Never re-render a secret. The input is always empty so that an
		// unmodified re-submission cannot overwrite the stored value.
		fv.Value = ""
		if resolved != "" {
			fv.HasStored = true
			fv.Placeholder = SecretPlaceholder
		}

	case FieldMultiCheckbox:
		fv.Values = SplitValues(resolved)
		selected := make(map[string]bool, len(fv.Values))
		for _, v := range fv.Values {
			selected[v] = true
		}
		for _, opt := range f.Options {
			fv.Options = append(fv.Options, OptionView{
				Value:    opt.Value,
				Label:    opt.Label,
				Selected: selected[opt.Value],
			})
		}

	case FieldRadio:
		fv.Value = resolved
		for _, opt := range f.Options {
			fv.Options = append(fv.Options, OptionView{
				Value:    opt.Value,
				Label:    opt.Label,
				Selected: opt.Value == resolved,
			})
		}

	case FieldSelect:
		fv.Value = resolved
		fv.Groups = groupOptions(f.Options, resolved)

	default:
		// Unknown types (and hidden fields) render nothing. Silent
		// fallthrough is pinned behavior, not an error.
		return FieldView{}, false, nil
	}

	return fv, true, nil
}

// groupOptions splits options into contiguous runs by group label,
// preserving declaration order. A boundary occurs exactly on a transition
// to a different label, including a transition to the empty label.
func groupOptions(opts []Option, resolved string) []OptionGroup {
	var groups []OptionGroup
	for i, opt := range opts {
		ov := OptionView{
			Value:    opt.Value,
			Label:    opt.Label,
			Selected: opt.Value == resolved,
		}
		if i == 0 || opt.Group != opts[i-1].Group {
			groups = append(groups, OptionGroup{Label: opt.Group})
		}
		last := len(groups) - 1
		groups[last].Options = append(groups[last].Options, ov)
	}
	return groups
}
