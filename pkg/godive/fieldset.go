package godive

import (
	"fmt"
	"strconv"
)

// FieldSet offers typed helpers on top of a dynamic field map.
type FieldSet struct {
	data map[string]any
}

// FieldSet returns a FieldSet wrapper for the result's fields.
func (r Result) FieldSet() FieldSet {
	return FieldSet{data: r.Fields}
}

// Map exposes the underlying map for callers that still need raw access.
func (fs FieldSet) Map() map[string]any {
	return fs.data
}

// Raw returns the stored value without conversions.
func (fs FieldSet) Raw(key string) (any, bool) {
	if fs.data == nil {
		return nil, false
	}
	v, ok := fs.data[key]
	return v, ok
}

// Float returns the field coerced to float64.
func (fs FieldSet) Float(key string) (float64, error) {
	v, ok := fs.Raw(key)
	if !ok {
		return 0, fmt.Errorf("field %q missing", key)
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, fmt.Errorf("field %q is not numeric: %w", key, err)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("field %q has unsupported type %T", key, v)
	}
}

// Int returns the field coerced to int64.
func (fs FieldSet) Int(key string) (int64, error) {
	v, ok := fs.Raw(key)
	if !ok {
		return 0, fmt.Errorf("field %q missing", key)
	}
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case float64:
		return int64(n), nil
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("field %q is not integer: %w", key, err)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("field %q has unsupported type %T", key, v)
	}
}

// String returns the field as a string.
func (fs FieldSet) String(key string) (string, error) {
	v, ok := fs.Raw(key)
	if !ok {
		return "", fmt.Errorf("field %q missing", key)
	}
	switch s := v.(type) {
	case string:
		return s, nil
	case fmt.Stringer:
		return s.String(), nil
	default:
		return fmt.Sprintf("%v", v), nil
	}
}
