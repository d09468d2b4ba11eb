// Package coerce parses loosely-typed spreadsheet cell values into
// well-typed optional primitives. Every function tolerates nil, empty,
// and malformed input and never panics; coercion failure resolves to the
// zero-information value (nil pointer, unparsed original, empty string).
package coerce

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// dateLayouts are tried in order by Instant. Day-first slash formats come
// first because that is how the source sheet renders journey dates.
var dateLayouts = []string{
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
	"2/1/2006",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.RFC3339,
	"2006-01-02",
	"02-01-2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// Number converts a raw cell value into a nullable float. Strings are
// trimmed and stripped of thousands-separators before parsing. Empty or
// unparseable input yields nil, as do NaN and infinities.
func Number(v any) *float64 {
	switch n := v.(type) {
	case nil:
		return nil
	case float64:
		return finite(n)
	case float32:
		return finite(float64(n))
	case int:
		return finite(float64(n))
	case int64:
		return finite(float64(n))
	case string:
		s := strings.TrimSpace(n)
		s = strings.ReplaceAll(s, ",", "")
		if s == "" {
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		return finite(f)
	default:
		return nil
	}
}

func finite(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// Instant normalizes a free-text date into a sortable RFC 3339 string.
// The second return reports whether parsing succeeded; on failure the
// trimmed original text is returned so the caller can still display it.
func Instant(v any) (string, bool) {
	s := String(v)
	if s == "" {
		return "", false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Format(time.RFC3339), true
		}
	}
	return s, false
}

// ParseInstant parses a string previously produced by Instant back into a
// time. The second return is false for unparsed originals.
func ParseInstant(s string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// String converts a raw cell value into a trimmed string. Nil yields "".
func String(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case bool:
		return strconv.FormatBool(s)
	default:
		return ""
	}
}
