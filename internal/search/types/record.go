package types

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// DocumentRecord is a semi-structured upstream document profile. The upstream
// schema is not contractually stable, so known keys are read defensively and
// a missing key yields a fallback, never an error.
type DocumentRecord map[string]any

// StringField returns the value at key rendered as a string. Numbers are
// stringified without a trailing exponent; absent or empty values yield
// the fallback.
func (d DocumentRecord) StringField(key, fallback string) string {
	v, ok := d[key]
	if !ok || v == nil {
		return fallback
	}
	switch t := v.(type) {
	case string:
		if t == "" {
			return fallback
		}
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		return t.String()
	default:
		return fmt.Sprintf("%v", t)
	}
}

// FloatField returns the value at key as a float64, or the fallback when
// the key is absent or not numeric.
func (d DocumentRecord) FloatField(key string, fallback float64) float64 {
	v, ok := d[key]
	if !ok || v == nil {
		return fallback
	}
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return f
		}
	case string:
		if f, err := strconv.ParseFloat(t, 64); err == nil {
			return f
		}
	}
	return fallback
}
