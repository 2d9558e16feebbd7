package form

import (
	"strings"

	"categoryassign/internal/registry"
)

// Option is a selectable value of a list-like field.
type Option struct {
	Value string
	Label string
}

// Field describes one form input. Group is the dotted data path the value is
// stored under ("" for top-level fields, "options" for transition options).
type Field struct {
	Name        string
	Group       string
	Fieldset    string
	Type        string
	Label       string
	Description string
	Default     string
	Readonly    bool
	Disabled    bool
	Required    bool
	Attrs       map[string]string
	Options     []Option
}

// Key returns the data path of the field.
func (f *Field) Key() string {
	return joinKey(f.Group, f.Name)
}

// Attr returns an extra attribute declared on the field.
func (f *Field) Attr(name string) string {
	if f == nil || f.Attrs == nil {
		return ""
	}
	return f.Attrs[name]
}

func (f *Field) clone() *Field {
	cp := *f
	if f.Attrs != nil {
		cp.Attrs = make(map[string]string, len(f.Attrs))
		for k, v := range f.Attrs {
			cp.Attrs[k] = v
		}
	}
	if f.Options != nil {
		cp.Options = append([]Option(nil), f.Options...)
	}
	return &cp
}

// Form is a named, request-scoped field collection with bound data.
type Form struct {
	name   string
	fields []*Field
	data   registry.Registry
}

// New returns an empty form. The name identifies the form's context, e.g.
// "articles.article".
func New(name string) *Form {
	return &Form{name: strings.TrimSpace(name), data: registry.New()}
}

// Name returns the form context.
func (f *Form) Name() string {
	if f == nil {
		return ""
	}
	return f.name
}

// Fields returns the fields in declaration order.
func (f *Form) Fields() []*Field {
	if f == nil {
		return nil
	}
	out := make([]*Field, len(f.fields))
	copy(out, f.fields)
	return out
}

// Field returns the named field, or nil when the form lacks it. The optional
// group selects a grouped field ("options").
func (f *Form) Field(name string, group ...string) *Field {
	if f == nil {
		return nil
	}
	key := joinKey(firstOrEmpty(group), name)
	for _, field := range f.fields {
		if field.Key() == key {
			return field
		}
	}
	return nil
}

// AddField appends field, replacing an existing field with the same key in place.
func (f *Form) AddField(field *Field) {
	if f == nil || field == nil || strings.TrimSpace(field.Name) == "" {
		return
	}
	for i, existing := range f.fields {
		if existing.Key() == field.Key() {
			f.fields[i] = field
			return
		}
	}
	f.fields = append(f.fields, field)
}

// RemoveField drops the named field and reports whether it existed.
func (f *Form) RemoveField(name string, group ...string) bool {
	if f == nil {
		return false
	}
	key := joinKey(firstOrEmpty(group), name)
	for i, field := range f.fields {
		if field.Key() == key {
			f.fields = append(f.fields[:i], f.fields[i+1:]...)
			return true
		}
	}
	return false
}

// Bind merges data into the form's bound values. Any shape accepted by
// registry.From may be passed.
func (f *Form) Bind(data any) {
	if f == nil {
		return
	}
	f.data.Merge(registry.From(data).Clone())
}

// Data returns the bound values.
func (f *Form) Data() registry.Registry {
	if f == nil {
		return registry.New()
	}
	return f.data
}

// SetValue overwrites the bound value of a field.
func (f *Form) SetValue(name, group string, value any) {
	if f == nil {
		return
	}
	f.data.Set(joinKey(group, name), value)
}

// Value returns the bound value for a field, falling back to the field
// default when nothing is bound.
func (f *Form) Value(name, group string) any {
	if f == nil {
		return nil
	}
	key := joinKey(group, name)
	if f.data.Has(key) {
		return f.data.Get(key)
	}
	if field := f.Field(name, group); field != nil && field.Default != "" {
		return field.Default
	}
	return nil
}

// Clone returns an independent copy of the form.
func (f *Form) Clone() *Form {
	if f == nil {
		return nil
	}
	cp := &Form{name: f.name, data: f.data.Clone()}
	cp.fields = make([]*Field, len(f.fields))
	for i, field := range f.fields {
		cp.fields[i] = field.clone()
	}
	return cp
}

func joinKey(group, name string) string {
	group = strings.Trim(strings.TrimSpace(group), ".")
	name = strings.TrimSpace(name)
	if group == "" {
		return name
	}
	return group + "." + name
}

func firstOrEmpty(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
