package utils

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var idPrinter = message.NewPrinter(language.Indonesian)

// FormatIDR formats whole Rupiah as "Rp100.000"
func FormatIDR(amount int64) string {
	if amount < 0 {
		return "-Rp" + idPrinter.Sprintf("%d", -amount)
	}
	return "Rp" + idPrinter.Sprintf("%d", amount)
}

// FormatPoints groups a points balance as "10.000"
func FormatPoints(points int64) string {
	return idPrinter.Sprintf("%d", points)
}

// FormatRating renders an average rating with two decimals
func FormatRating(rating float64) string {
	return fmt.Sprintf("%.2f", rating)
}

// FormatDate renders event dates as "02 Jan 2006", or "-" for zero values.
// Dates are shown in DisplayLocation.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.In(DisplayLocation()).Format("02 Jan 2006")
}

// FormatDateTime renders deadlines as "02 Jan 2006 15:04"
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.In(DisplayLocation()).Format("02 Jan 2006 15:04")
}

// FormatLongDate renders review dates as "January 2, 2006"
func FormatLongDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.In(DisplayLocation()).Format("January 2, 2006")
}

// FormatClock renders a remaining duration as HH:MM:SS, clamped at zero
func FormatClock(d time.Duration) string {
	s := int64(d / time.Second)
	if s < 0 {
		s = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, (s%3600)/60, s%60)
}

// FormatFileSize renders a byte count as "512 KB" or "2.5 MB"
func FormatFileSize(n int64) string {
	switch {
	case n >= 1<<20:
		return strings.TrimSuffix(fmt.Sprintf("%.1f", float64(n)/(1<<20)), ".0") + " MB"
	case n >= 1<<10:
		return fmt.Sprintf("%d KB", n>>10)
	}
	return fmt.Sprintf("%d B", n)
}

// Truncate shortens s to at most n runes, appending an ellipsis
func Truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n])) + "…"
}
