package registry

import (
	"fmt"
	"reflect"
	"strings"
)

// Provider is implemented by values that carry their own registry.
type Provider interface {
	Registry() Registry
}

// From normalizes a data payload into a Registry. It accepts registries,
// string-keyed maps, Provider implementations, and structs (or pointers to
// structs) whose exported fields are keyed by their json tag or lower-cased
// name. Unsupported shapes yield an empty registry.
func From(data any) Registry {
	switch typed := data.(type) {
	case nil:
		return New()
	case Registry:
		if typed == nil {
			return New()
		}
		return typed
	case map[string]any:
		return Registry(typed)
	case map[string]string:
		out := make(Registry, len(typed))
		for key, value := range typed {
			out[key] = value
		}
		return out
	case Provider:
		if reg := typed.Registry(); reg != nil {
			return reg
		}
		return New()
	}

	rv := reflect.ValueOf(data)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return New()
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Struct:
		return fromStruct(rv)
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return New()
		}
		out := make(Registry, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = iter.Value().Interface()
		}
		return out
	default:
		return New()
	}
}

func fromStruct(rv reflect.Value) Registry {
	rt := rv.Type()
	out := make(Registry, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		name := fieldKey(field)
		if name == "" {
			continue
		}
		out[name] = rv.Field(i).Interface()
	}
	return out
}

func fieldKey(field reflect.StructField) string {
	if tag, ok := field.Tag.Lookup("json"); ok {
		name, _, _ := strings.Cut(tag, ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return strings.ToLower(field.Name)
}

// String renders the registry for log lines.
func (r Registry) String() string {
	parts := make([]string, 0, len(r))
	for _, key := range r.Keys() {
		parts = append(parts, fmt.Sprintf("%s=%v", key, r[key]))
	}
	return "{" + strings.Join(parts, " ") + "}"
}
