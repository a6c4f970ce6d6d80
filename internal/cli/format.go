// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/theirongolddev/nestegg/internal/model"
	"github.com/theirongolddev/nestegg/internal/money"
)

// Currency is the symbol used by FormatMoney. Commands set it from config.
var Currency = "₹"

// FormatMoney formats a whole monetary amount with separators.
// e.g., 125000.4 -> "₹125,000"
func FormatMoney(v float64) string {
	return money.Format(Currency, v)
}

// FormatMoneyCents formats an amount keeping two decimals.
func FormatMoneyCents(v float64) string {
	return money.FormatCents(Currency, v)
}

// FormatPercent formats a 0-100 value as a percentage string.
func FormatPercent(pct float64) string {
	return strconv.FormatFloat(pct, 'f', 1, 64) + "%"
}

// FormatVariance formats a signed percentage-point variance, e.g. "+4.2pp".
func FormatVariance(v float64) string {
	if v >= 0 {
		return "+" + strconv.FormatFloat(v, 'f', 1, 64) + "pp"
	}
	return strconv.FormatFloat(v, 'f', 1, 64) + "pp"
}

// FormatMonths renders a month count; nil means the goal has no deadline.
func FormatMonths(m *int) string {
	if m == nil {
		return "-"
	}
	if *m == 1 {
		return "1 month"
	}
	return fmt.Sprintf("%d months", *m)
}

// FormatPredicted renders predicted months to completion.
func FormatPredicted(months float64) string {
	if months >= 999 {
		return "never"
	}
	return fmt.Sprintf("%.1f mo", months)
}

// FormatDate renders an optional date as YYYY-MM-DD.
func FormatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("2006-01-02")
}

// FormatAge renders how long ago t was, e.g. "3 months ago".
func FormatAge(t time.Time, now time.Time) string {
	return humanize.RelTime(t, now, "ago", "from now")
}

// FormatHealth returns a short human label for a health state.
func FormatHealth(h model.GoalHealth) string {
	switch h {
	case model.HealthOnTrack:
		return "on track"
	case model.HealthAtRisk:
		return "at risk"
	case model.HealthOffTrack:
		return "off track"
	case model.HealthUnrealistic:
		return "unrealistic"
	case model.HealthCompleted:
		return "completed"
	default:
		return string(h)
	}
}

// FormatDelta formats a money delta with an explicit sign.
func FormatDelta(current, previous float64) string {
	delta := money.Sub(current, previous)
	if delta >= 0 {
		return "+" + FormatMoney(delta)
	}
	return FormatMoney(delta)
}

// Truncate shortens s to at most n runes, marking the cut with "…".
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return strings.TrimRight(string(r[:n-1]), " ") + "…"
}
