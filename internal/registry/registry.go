package registry

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Registry stores loosely typed parameters keyed by name. Dotted keys address
// nested registries ("options.category_id").
type Registry map[string]any

// New returns an empty registry.
func New() Registry {
	return Registry{}
}

// FromJSON decodes a JSON object into a registry. Blank input yields an empty registry.
func FromJSON(raw string) (Registry, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return New(), nil
	}
	decoder := json.NewDecoder(strings.NewReader(raw))
	decoder.UseNumber()
	var values map[string]any
	if err := decoder.Decode(&values); err != nil {
		return nil, fmt.Errorf("decode registry: %w", err)
	}
	return Registry(normalizeMap(values)), nil
}

// JSON encodes the registry as a JSON object.
func (r Registry) JSON() (string, error) {
	if len(r) == 0 {
		return "{}", nil
	}
	data, err := json.Marshal(map[string]any(r))
	if err != nil {
		return "", fmt.Errorf("encode registry: %w", err)
	}
	return string(data), nil
}

// Get returns the raw value stored under key, or nil.
func (r Registry) Get(key string) any {
	value, _ := r.lookup(key)
	return value
}

// Has reports whether key is present, even when its value is empty.
func (r Registry) Has(key string) bool {
	_, ok := r.lookup(key)
	return ok
}

func (r Registry) lookup(key string) (any, bool) {
	key = strings.TrimSpace(key)
	if r == nil || key == "" {
		return nil, false
	}
	if value, ok := r[key]; ok {
		return value, true
	}
	head, rest, nested := strings.Cut(key, ".")
	if !nested {
		return nil, false
	}
	child, ok := r[head]
	if !ok {
		return nil, false
	}
	switch typed := child.(type) {
	case Registry:
		return typed.lookup(rest)
	case map[string]any:
		return Registry(typed).lookup(rest)
	default:
		return nil, false
	}
}

// Set stores value under key, creating nested registries for dotted keys.
func (r Registry) Set(key string, value any) {
	key = strings.TrimSpace(key)
	if r == nil || key == "" {
		return
	}
	head, rest, nested := strings.Cut(key, ".")
	if !nested {
		r[key] = value
		return
	}
	child, ok := r[head].(Registry)
	if !ok {
		if plain, isMap := r[head].(map[string]any); isMap {
			child = Registry(plain)
		} else {
			child = New()
		}
		r[head] = child
	}
	child.Set(rest, value)
}

// GetString returns the value as a trimmed string, or fallback when empty.
func (r Registry) GetString(key, fallback string) string {
	value, ok := r.lookup(key)
	if !ok || value == nil {
		return fallback
	}
	s := strings.TrimSpace(stringify(value))
	if s == "" {
		return fallback
	}
	return s
}

// GetInt64 returns the value as an integer, or fallback when missing or not numeric.
func (r Registry) GetInt64(key string, fallback int64) int64 {
	value, ok := r.lookup(key)
	if !ok {
		return fallback
	}
	n, ok := ToInt64(value)
	if !ok {
		return fallback
	}
	return n
}

// GetBool returns the value interpreted as a flag. Integers and strings such as
// "1", "yes", and "false" are accepted; anything else yields fallback.
func (r Registry) GetBool(key string, fallback bool) bool {
	value, ok := r.lookup(key)
	if !ok || value == nil {
		return fallback
	}
	switch typed := value.(type) {
	case bool:
		return typed
	case string:
		switch strings.ToLower(strings.TrimSpace(typed)) {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off", "":
			return false
		}
		return fallback
	}
	if n, ok := ToInt64(value); ok {
		return n != 0
	}
	return fallback
}

// Keys returns the top-level keys in sorted order.
func (r Registry) Keys() []string {
	keys := make([]string, 0, len(r))
	for key := range r {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a deep copy of nested registries and maps.
func (r Registry) Clone() Registry {
	if r == nil {
		return New()
	}
	out := make(Registry, len(r))
	for key, value := range r {
		switch typed := value.(type) {
		case Registry:
			out[key] = typed.Clone()
		case map[string]any:
			out[key] = Registry(typed).Clone()
		default:
			out[key] = value
		}
	}
	return out
}

// Merge copies every key from other into r, replacing existing values.
func (r Registry) Merge(other Registry) {
	for key, value := range other {
		r[key] = value
	}
}

// ToInt64 converts the common numeric shapes (ints, floats without a
// fractional part, json.Number, numeric strings) into an int64.
func ToInt64(value any) (int64, bool) {
	switch typed := value.(type) {
	case nil:
		return 0, false
	case int:
		return int64(typed), true
	case int8:
		return int64(typed), true
	case int16:
		return int64(typed), true
	case int32:
		return int64(typed), true
	case int64:
		return typed, true
	case uint:
		return int64(typed), true
	case uint8:
		return int64(typed), true
	case uint16:
		return int64(typed), true
	case uint32:
		return int64(typed), true
	case uint64:
		if typed > math.MaxInt64 {
			return 0, false
		}
		return int64(typed), true
	case float32:
		return floatToInt(float64(typed))
	case float64:
		return floatToInt(typed)
	case json.Number:
		if n, err := typed.Int64(); err == nil {
			return n, true
		}
		if f, err := typed.Float64(); err == nil {
			return floatToInt(f)
		}
		return 0, false
	case string:
		trimmed := strings.TrimSpace(typed)
		if trimmed == "" {
			return 0, false
		}
		n, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func floatToInt(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return int64(f), true
}

// Empty reports whether value counts as unset: nil, zero numbers, false,
// blank strings, "0", and empty collections.
func Empty(value any) bool {
	if value == nil {
		return true
	}
	switch typed := value.(type) {
	case bool:
		return !typed
	case string:
		trimmed := strings.TrimSpace(typed)
		return trimmed == "" || trimmed == "0"
	case json.Number:
		return typed.String() == "0"
	case Registry:
		return len(typed) == 0
	}
	if n, ok := ToInt64(value); ok {
		return n == 0
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return true
		}
		return Empty(rv.Elem().Interface())
	case reflect.Float32, reflect.Float64:
		return rv.Float() == 0
	}
	return false
}

func stringify(value any) string {
	switch typed := value.(type) {
	case string:
		return typed
	case json.Number:
		return typed.String()
	case fmt.Stringer:
		return typed.String()
	default:
		return fmt.Sprint(value)
	}
}

func normalizeMap(values map[string]any) map[string]any {
	for key, value := range values {
		if nested, ok := value.(map[string]any); ok {
			values[key] = Registry(normalizeMap(nested))
		}
	}
	return values
}
