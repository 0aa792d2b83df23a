package storage

import (
	"time"
)

// TimestampFormat is the textual form dates take inside persisted free-form values.
const TimestampFormat = time.RFC3339Nano

// SerializeDates walks maps and slices nested in v and formats every time.Time stored under
// one of the allowed field names as a TimestampFormat string. Other values are left untouched.
func SerializeDates(v any, fields []string) any {
	return walkDates(v, allowList(fields), func(value any) any {
		switch t := value.(type) {
		case time.Time:
			return t.Format(TimestampFormat)
		case *time.Time:
			if t == nil {
				return nil
			}
			return t.Format(TimestampFormat)
		}
		return value
	})
}

// ReviveDates is the inverse of SerializeDates: strings under the allowed field names that parse
// as timestamps become time.Time values again.
func ReviveDates(v any, fields []string) any {
	return walkDates(v, allowList(fields), func(value any) any {
		s, ok := value.(string)
		if !ok {
			return value
		}
		t, err := time.Parse(TimestampFormat, s)
		if err != nil {
			return value
		}
		return t
	})
}

func allowList(fields []string) map[string]bool {
	allowed := make(map[string]bool, len(fields))
	for _, f := range fields {
		allowed[f] = true
	}
	return allowed
}

func walkDates(v any, allowed map[string]bool, convert func(any) any) any {
	switch node := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(node))
		for k, child := range node {
			if allowed[k] {
				out[k] = convert(child)
				continue
			}
			out[k] = walkDates(child, allowed, convert)
		}
		return out
	case []any:
		out := make([]any, len(node))
		for i, child := range node {
			out[i] = walkDates(child, allowed, convert)
		}
		return out
	case []map[string]any:
		out := make([]any, len(node))
		for i, child := range node {
			out[i] = walkDates(child, allowed, convert)
		}
		return out
	}
	return v
}
