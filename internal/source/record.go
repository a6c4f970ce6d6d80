// Package source normalizes raw goal records and MonetIQ state files into
// typed goals and signals. Nothing here fails on bad field values: numbers
// that cannot be read become 0 and dates that cannot be read become "now".
package source

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// Record is one raw goal object as it arrives from external state.
type Record map[string]any

// dateLayouts are tried in order when reading a date string.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"02/01/2006",
}

// first returns the first present, non-nil value among keys.
func (r Record) first(keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := r[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// String returns the first non-empty string value among keys.
func (r Record) String(keys ...string) string {
	v, ok := r.first(keys...)
	if !ok {
		return ""
	}
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case json.Number:
		return s.String()
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(s, 10)
	case int:
		return strconv.Itoa(s)
	default:
		return ""
	}
}

// Amount returns the first value among keys as a non-negative number.
func (r Record) Amount(keys ...string) float64 {
	v, ok := r.first(keys...)
	if !ok {
		return 0
	}
	f := toFloat(v)
	if f < 0 {
		return 0
	}
	return f
}

// Time returns the first value among keys as a time, or ok=false when
// none is present or none can be parsed.
func (r Record) Time(loc *time.Location, keys ...string) (time.Time, bool) {
	v, ok := r.first(keys...)
	if !ok {
		return time.Time{}, false
	}
	return toTime(v, loc)
}

func toFloat(v any) float64 {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	case string:
		f = parseAmount(n)
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// parseAmount reads "12,500", "₹ 1200.50" or "$90" style strings.
func parseAmount(s string) float64 {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-', r == 'e', r == 'E', r == '+':
			return r
		default:
			return -1
		}
	}, s)
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return f
}

func toTime(v any, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return time.Time{}, false
		}
		return t, true
	case *time.Time:
		if t == nil || t.IsZero() {
			return time.Time{}, false
		}
		return *t, true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range dateLayouts {
			if parsed, err := time.ParseInLocation(layout, s, loc); err == nil {
				return parsed, true
			}
		}
	}
	return time.Time{}, false
}

// normalizeKey turns display labels like "Emergency Fund" into
// "emergency_fund".
func normalizeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)
	return s
}
