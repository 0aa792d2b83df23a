// Package mapping translates between remote rows (internal/entities) and application records
// (internal/domain).
//
// Remote numerics arrive as nullable strings and are coerced with spf13/cast; values that do
// not parse fall back to the field's default. Every To* function is the inverse of the
// matching From* function for the fields the application reads or writes.
package mapping

import (
	"strings"

	"github.com/spf13/cast"
)

func intFrom(s *string, def int) int {
	if s == nil {
		return def
	}
	v, err := cast.ToIntE(decimal(*s))
	if err != nil {
		return def
	}
	return v
}

func floatFrom(s *string, def float64) float64 {
	if s == nil {
		return def
	}
	v, err := cast.ToFloat64E(strings.TrimSpace(*s))
	if err != nil {
		return def
	}
	return v
}

// decimal strips leading zeros so cast does not read "010" as octal.
func decimal(s string) string {
	s = strings.TrimSpace(s)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	if t := strings.TrimLeft(s, "0"); t != s {
		s = t
		if s == "" || s[0] == '.' {
			s = "0" + s
		}
	}
	if neg {
		return "-" + s
	}
	return s
}

func numString(v any) *string {
	s := cast.ToString(v)
	return &s
}

// optionalNum returns nil for zero so unset optional numbers stay null remotely.
func optionalNum(v int) *string {
	if v == 0 {
		return nil
	}
	return numString(v)
}

// anyInt coerces a loosely typed value (number, numeric string) into an int.
func anyInt(v any) (int, bool) {
	if s, ok := v.(string); ok {
		v = decimal(s)
	}
	n, err := cast.ToIntE(v)
	return n, err == nil
}

func anyBool(v any) (bool, bool) {
	b, err := cast.ToBoolE(v)
	return b, err == nil
}

func anyString(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	s, err := cast.ToStringE(v)
	return s, err == nil
}

// lookup returns the first value present in m under any of keys.
func lookup(m map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			return v, true
		}
	}
	return nil, false
}
