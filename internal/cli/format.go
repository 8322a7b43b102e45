// Package cli provides formatting and rendering utilities for plain
// terminal output.
package cli

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	return humanize.Comma(n)
}

// FormatMinutes formats a response time for tables, one decimal place.
func FormatMinutes(m float64) string {
	return fmt.Sprintf("%.1fm", m)
}

// FormatOptionalPercent formats a nullable percentage; nil prints a dash.
func FormatOptionalPercent(p *float64) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprintf("%.0f%%", *p)
}

// FormatAge renders how long ago t was, relative to now.
// e.g., "3 minutes ago"
func FormatAge(t, now time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// FormatBytes renders a byte count like "1.2 MB".
func FormatBytes(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}
