package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// StringArray maps a Postgres text[] column to a []string. The driver binds
// it as an array literal and scans back the literal text form, so it has to
// handle quoting and escaping in both directions.
type StringArray []string

func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return "{}", nil
	}
	var b strings.Builder
	b.WriteByte('{')
	for i, s := range a {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		s = strings.ReplaceAll(s, `\`, `\\`)
		s = strings.ReplaceAll(s, `"`, `\"`)
		b.WriteString(s)
		b.WriteByte('"')
	}
	b.WriteByte('}')
	return b.String(), nil
}

func (a *StringArray) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*a = nil
		return nil
	case string:
		return a.parse(v)
	case []byte:
		return a.parse(string(v))
	default:
		return fmt.Errorf("cannot scan %T into StringArray", src)
	}
}

// ToStringArray normalizes a decoded JSON tags value into a StringArray.
// A lone string becomes a singleton, slices are filtered of empty entries,
// anything else collapses to an empty set.
func ToStringArray(v any) StringArray {
	switch t := v.(type) {
	case nil:
		return StringArray{}
	case string:
		if t == "" {
			return StringArray{}
		}
		return StringArray{t}
	case []string:
		return StringArray(t)
	case StringArray:
		return t
	case []any:
		out := make(StringArray, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return StringArray{}
	}
}

// parse decodes the Postgres array literal format: {a,"b c","d\"e"}.
func (a *StringArray) parse(s string) error {
	if len(s) < 2 || s[0] != '{' || s[len(s)-1] != '}' {
		return fmt.Errorf("malformed array literal: %q", s)
	}
	body := s[1 : len(s)-1]
	if body == "" {
		*a = StringArray{}
		return nil
	}

	var (
		out      []string
		elem     strings.Builder
		inQuotes bool
		escaped  bool
	)
	flush := func() {
		v := elem.String()
		// unquoted NULL elements never occur here, tags are plain strings
		out = append(out, v)
		elem.Reset()
	}
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case escaped:
			elem.WriteByte(c)
			escaped = false
		case c == '\\':
			escaped = true
		case c == '"':
			inQuotes = !inQuotes
		case c == ',' && !inQuotes:
			flush()
		default:
			elem.WriteByte(c)
		}
	}
	flush()
	*a = out
	return nil
}
