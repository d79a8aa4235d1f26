package middleware

import (
	"encoding/json"
	"html/template"
	"net/http"

	"event-storefront/internal/models"
)

// WriteHTMXError writes an inline error fragment for HTMX swaps
func WriteHTMXError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(`<div class="bg-red-50 border border-red-200 text-red-800 p-4 rounded-lg" role="alert"><p class="text-sm">` +
		template.HTMLEscapeString(message) + `</p></div>`))
}

// TriggerToast adds an HX-Trigger header firing a "toast" event on the client
func TriggerToast(w http.ResponseWriter, kind, message string) {
	payload, err := json.Marshal(map[string]models.Flash{
		"toast": {Kind: kind, Message: message},
	})
	if err != nil {
		return
	}
	w.Header().Set("HX-Trigger", string(payload))
}

// Redirect sends the browser to target, using HX-Redirect for HTMX requests
func Redirect(w http.ResponseWriter, r *http.Request, target string) {
	if IsHTMXRequest(r) {
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
