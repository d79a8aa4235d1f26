package middleware

import (
	"net/http"

	"event-storefront/internal/utils"

	"go.uber.org/zap"
)

// CSRFMiddleware provides CSRF protection functionality
type CSRFMiddleware struct {
	sessions *SessionManager
	log      *zap.Logger
}

// NewCSRFMiddleware creates a new CSRF middleware
func NewCSRFMiddleware(sessions *SessionManager, log *zap.Logger) *CSRFMiddleware {
	return &CSRFMiddleware{sessions: sessions, log: log}
}

// CSRFProtection checks the session token on state-changing requests. The
// token is read from the X-CSRF-Token header or the csrf_token form field.
func (m *CSRFMiddleware) CSRFProtection(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		session := m.sessions.Get(r)
		sessionToken, _ := session.Values[csrfKey].(string)

		requestToken := r.Header.Get("X-CSRF-Token")
		if requestToken == "" {
			requestToken = r.FormValue("csrf_token")
		}

		if !utils.TokensEqual(sessionToken, requestToken) {
			m.log.Warn("csrf token mismatch",
				zap.String("path", r.URL.Path),
				zap.Bool("has_session_token", sessionToken != ""),
				zap.Bool("has_request_token", requestToken != ""),
			)
			if IsHTMXRequest(r) {
				WriteHTMXError(w, http.StatusForbidden, "Security token mismatch. Please refresh the page and try again.")
				return
			}
			http.Error(w, "CSRF token mismatch", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}
