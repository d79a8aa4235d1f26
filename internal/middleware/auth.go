package middleware

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"event-storefront/internal/models"

	"go.uber.org/zap"
)

type contextKey string

const (
	UserContextKey contextKey = "user"
	CSRFContextKey contextKey = "csrf_token"
)

// SessionExpiredMessage is the toast shown when the access token has expired
const SessionExpiredMessage = "Your session has expired. Please login again."

// AuthMiddleware provides authentication functionality
type AuthMiddleware struct {
	sessions *SessionManager
	log      *zap.Logger
	now      func() time.Time
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(sessions *SessionManager, log *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions, log: log, now: time.Now}
}

// LoadUser puts the session user and CSRF token into the request context.
// Expired access tokens log the user out.
func (m *AuthMiddleware) LoadUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := m.sessions.Get(r)
		dirty := false

		user := m.sessions.User(session)
		if user != nil && user.Expired(m.now()) {
			m.log.Info("access token expired", zap.String("user_id", user.ID))
			m.sessions.ClearUser(r.Context(), session)
			m.sessions.AddFlash(session, "error", SessionExpiredMessage)
			user = nil
			dirty = true
		}

		if _, ok := session.Values[csrfKey].(string); !ok {
			dirty = true
		}
		token := m.sessions.CSRFToken(session)

		if dirty {
			m.sessions.Save(w, r, session)
		}

		ctx := WithCSRFToken(r.Context(), token)
		if user != nil {
			ctx = SetUserContext(ctx, user)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuth middleware ensures user is authenticated
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return RequireAuth(next)
}

// RequireAuth redirects anonymous visitors to the login page
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetUserFromContext(r.Context()) == nil {
			target := LoginURL(r)
			if IsHTMXRequest(r) {
				w.Header().Set("HX-Redirect", target)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			http.Redirect(w, r, target, http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// LoginURL returns the login page URL that comes back to the current page
func LoginURL(r *http.Request) string {
	back := r.URL.RequestURI()
	if IsHTMXRequest(r) {
		if current := r.Header.Get("HX-Current-URL"); current != "" {
			if u, err := url.Parse(current); err == nil {
				back = u.RequestURI()
			}
		}
	}
	return "/login?redirect=" + url.QueryEscape(back)
}

// GetUserFromContext retrieves the user from request context
func GetUserFromContext(ctx context.Context) *models.SessionUser {
	user, ok := ctx.Value(UserContextKey).(*models.SessionUser)
	if !ok {
		return nil
	}
	return user
}

// SetUserContext sets the user in the context
func SetUserContext(ctx context.Context, user *models.SessionUser) context.Context {
	return context.WithValue(ctx, UserContextKey, user)
}

// AccessToken returns the bearer token of the logged-in user, or ""
func AccessToken(ctx context.Context) string {
	if user := GetUserFromContext(ctx); user != nil {
		return user.AccessToken
	}
	return ""
}

// WithCSRFToken stores the CSRF token for templates
func WithCSRFToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, CSRFContextKey, token)
}

// CSRFTokenFromContext returns the CSRF token stored by LoadUser
func CSRFTokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(CSRFContextKey).(string)
	return token
}

// IsHTMXRequest checks if the request is from HTMX
func IsHTMXRequest(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
