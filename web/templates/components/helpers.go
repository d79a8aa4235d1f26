package components

import (
	"fmt"
	"html/template"
	"net/url"
	"strconv"
	"time"

	"event-storefront/internal/models"
	"event-storefront/internal/services"
	"event-storefront/internal/utils"
)

// Funcs returns the template helpers shared by every page and partial
func Funcs() template.FuncMap {
	return template.FuncMap{
		"idr":         formatIDR,
		"points":      utils.FormatPoints,
		"date":        formatDate,
		"datetime":    formatDateTime,
		"longDate":    utils.FormatLongDate,
		"localInput":  localInput,
		"rating":      formatRating,
		"stars":       stars,
		"statusLabel": services.StatusLabel,
		"statusTone":  services.StatusTone,
		"toneClass":   toneClass,
		"truncate":    utils.Truncate,
		"add":         func(a, b int) int { return a + b },
		"sub":         func(a, b int) int { return a - b },
		"seq":         seq,
		"pageURL":     pageURL,
		"fieldError":  fieldError,
		"ms":          func(d time.Duration) int64 { return d.Milliseconds() },
	}
}

// formatIDR accepts the integer types used by the models
func formatIDR(v any) string {
	switch n := v.(type) {
	case int64:
		return utils.FormatIDR(n)
	case int:
		return utils.FormatIDR(int64(n))
	case models.Amount:
		return utils.FormatIDR(int64(n))
	default:
		return utils.FormatIDR(0)
	}
}

func formatRating(v any) string {
	switch n := v.(type) {
	case float64:
		return utils.FormatRating(n)
	case models.Decimal:
		return utils.FormatRating(float64(n))
	default:
		return utils.FormatRating(0)
	}
}

func formatDate(v any) string {
	switch t := v.(type) {
	case time.Time:
		return utils.FormatDate(t)
	case *time.Time:
		if t != nil {
			return utils.FormatDate(*t)
		}
	}
	return models.FallbackText
}

func formatDateTime(v any) string {
	switch t := v.(type) {
	case time.Time:
		return utils.FormatDateTime(t)
	case *time.Time:
		if t != nil {
			return utils.FormatDateTime(*t)
		}
	}
	return models.FallbackText
}

// localInput renders a timestamp for a datetime-local input
func localInput(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(utils.DisplayLocation()).Format("2006-01-02T15:04")
}

// stars returns five flags, true for each filled star
func stars(n int) []bool {
	out := make([]bool, 5)
	for i := range out {
		out[i] = i < n
	}
	return out
}

func toneClass(tone string) string {
	switch tone {
	case "green":
		return "bg-green-100 text-green-800"
	case "red":
		return "bg-red-100 text-red-800"
	default:
		return "bg-gray-100 text-gray-800"
	}
}

func seq(from, to int) []int {
	if to < from {
		return nil
	}
	out := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}

// pageURL builds a listing URL keeping the current filters
func pageURL(base string, page int, search string, categoryID, organizerID int) string {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	if search != "" {
		q.Set("search", search)
	}
	if categoryID > 0 {
		q.Set("category", strconv.Itoa(categoryID))
	}
	if organizerID > 0 {
		q.Set("organizer", strconv.Itoa(organizerID))
	}
	return fmt.Sprintf("%s?%s", base, q.Encode())
}

func fieldError(errs map[string]string, field string) string {
	if errs == nil {
		return ""
	}
	return errs[field]
}
