package form

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrEmptyDefinition is returned when an XML definition contains no fields.
var ErrEmptyDefinition = errors.New("form definition has no fields")

type xmlForm struct {
	XMLName   xml.Name      `xml:"form"`
	Groups    []xmlGroup    `xml:"fields"`
	Fieldsets []xmlFieldset `xml:"fieldset"`
	Fields    []xmlField    `xml:"field"`
}

type xmlGroup struct {
	Name      string        `xml:"name,attr"`
	Groups    []xmlGroup    `xml:"fields"`
	Fieldsets []xmlFieldset `xml:"fieldset"`
	Fields    []xmlField    `xml:"field"`
}

type xmlFieldset struct {
	Name   string     `xml:"name,attr"`
	Fields []xmlField `xml:"field"`
}

type xmlField struct {
	Attrs   []xml.Attr  `xml:",any,attr"`
	Options []xmlOption `xml:"option"`
}

type xmlOption struct {
	Value string `xml:"value,attr"`
	Label string `xml:",chardata"`
}

// Parse builds a form named name from an XML definition.
func Parse(name string, data []byte) (*Form, error) {
	f := New(name)
	if err := f.Load(bytes.NewReader(data)); err != nil {
		return nil, err
	}
	return f, nil
}

// Load merges the fields declared by an XML definition into the form. Fields
// whose key already exists are replaced in place; new fields are appended.
func (f *Form) Load(r io.Reader) error {
	if f == nil {
		return errors.New("form is nil")
	}
	var doc xmlForm
	decoder := xml.NewDecoder(r)
	if err := decoder.Decode(&doc); err != nil {
		return fmt.Errorf("decode form xml: %w", err)
	}
	fields := collectFields(doc)
	if len(fields) == 0 {
		return ErrEmptyDefinition
	}
	for _, field := range fields {
		f.AddField(field)
	}
	return nil
}

// LoadFile merges the definition stored at path.
func (f *Form) LoadFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open form file: %w", err)
	}
	defer file.Close()
	if err := f.Load(file); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func collectFields(doc xmlForm) []*Field {
	var out []*Field
	for _, field := range doc.Fields {
		out = appendField(out, field, "", "")
	}
	for _, set := range doc.Fieldsets {
		for _, field := range set.Fields {
			out = appendField(out, field, "", set.Name)
		}
	}
	for _, group := range doc.Groups {
		out = collectGroup(out, group, "")
	}
	return out
}

func collectGroup(out []*Field, group xmlGroup, parent string) []*Field {
	path := joinKey(parent, group.Name)
	for _, field := range group.Fields {
		out = appendField(out, field, path, "")
	}
	for _, set := range group.Fieldsets {
		for _, field := range set.Fields {
			out = appendField(out, field, path, set.Name)
		}
	}
	for _, nested := range group.Groups {
		out = collectGroup(out, nested, path)
	}
	return out
}

func appendField(out []*Field, raw xmlField, group, fieldset string) []*Field {
	field := &Field{Group: group, Fieldset: fieldset, Type: "text"}
	for _, attr := range raw.Attrs {
		value := strings.TrimSpace(attr.Value)
		switch attr.Name.Local {
		case "name":
			field.Name = value
		case "type":
			if value != "" {
				field.Type = value
			}
		case "label":
			field.Label = value
		case "description":
			field.Description = value
		case "default":
			field.Default = value
		case "readonly":
			field.Readonly = parseBoolAttr(value)
		case "disabled":
			field.Disabled = parseBoolAttr(value)
		case "required":
			field.Required = parseBoolAttr(value)
		default:
			if field.Attrs == nil {
				field.Attrs = map[string]string{}
			}
			field.Attrs[attr.Name.Local] = value
		}
	}
	if field.Name == "" {
		return out
	}
	for _, opt := range raw.Options {
		field.Options = append(field.Options, Option{
			Value: strings.TrimSpace(opt.Value),
			Label: strings.TrimSpace(opt.Label),
		})
	}
	return append(out, field)
}

func parseBoolAttr(value string) bool {
	switch strings.ToLower(value) {
	case "true", "1", "yes", "readonly", "disabled", "required":
		return true
	default:
		return false
	}
}
