package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"event-storefront/internal/cache"
	"event-storefront/internal/models"
	"event-storefront/internal/utils"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

// SessionName is the cookie holding the storefront session
const SessionName = "session"

const (
	userKey    = "user"
	csrfKey    = "csrf_token"
	flashKey   = "_toast"
	draftIDKey = "draft_id"
)

// DefaultDraftTTL is how long an untouched purchase draft is kept
const DefaultDraftTTL = 24 * time.Hour

// NewCookieStore creates the session cookie store
func NewCookieStore(secret string, maxAge time.Duration, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// SessionManager reads and writes the values kept in the session cookie.
// Structured values are stored as JSON strings. Purchase drafts live in the
// drafts cache under an opaque id held in the cookie.
type SessionManager struct {
	store    sessions.Store
	drafts   cache.Cache
	draftTTL time.Duration
	log      *zap.Logger
}

// NewSessionManager creates a new session manager. A nil drafts cache falls
// back to an in-process one.
func NewSessionManager(store sessions.Store, drafts cache.Cache, draftTTL time.Duration, log *zap.Logger) *SessionManager {
	if drafts == nil {
		drafts = cache.NewMemory()
	}
	if draftTTL <= 0 {
		draftTTL = DefaultDraftTTL
	}
	return &SessionManager{store: store, drafts: drafts, draftTTL: draftTTL, log: log}
}

// Get returns the request's session. A cookie that fails to decode yields a
// fresh session.
func (m *SessionManager) Get(r *http.Request) *sessions.Session {
	session, err := m.store.Get(r, SessionName)
	if err != nil {
		m.log.Debug("discarding unreadable session", zap.Error(err))
	}
	if session == nil {
		session = sessions.NewSession(m.store, SessionName)
	}
	return session
}

// Save writes the session cookie, logging failures
func (m *SessionManager) Save(w http.ResponseWriter, r *http.Request, session *sessions.Session) error {
	if err := session.Save(r, w); err != nil {
		m.log.Error("failed to save session", zap.Error(err))
		return err
	}
	return nil
}

// User returns the logged-in user stored in the session
func (m *SessionManager) User(session *sessions.Session) *models.SessionUser {
	raw, ok := session.Values[userKey].(string)
	if !ok || raw == "" {
		return nil
	}
	var user models.SessionUser
	if err := json.Unmarshal([]byte(raw), &user); err != nil || user.AccessToken == "" {
		return nil
	}
	return &user
}

// SetUser stores the logged-in user and rotates the CSRF token
func (m *SessionManager) SetUser(session *sessions.Session, user *models.SessionUser) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	session.Values[userKey] = string(data)
	delete(session.Values, csrfKey)
	m.CSRFToken(session)
	return nil
}

// ClearUser logs the user out and drops their purchase drafts
func (m *SessionManager) ClearUser(ctx context.Context, session *sessions.Session) {
	delete(session.Values, userKey)
	delete(session.Values, csrfKey)

	id := draftID(session)
	if id == "" {
		return
	}
	delete(session.Values, draftIDKey)
	if err := m.drafts.DeletePrefix(ctx, cache.DraftsPrefix(id)); err != nil {
		m.log.Warn("failed to drop purchase drafts", zap.Error(err))
	}
}

// CSRFToken returns the session's CSRF token, creating one when missing
func (m *SessionManager) CSRFToken(session *sessions.Session) string {
	if token, ok := session.Values[csrfKey].(string); ok && token != "" {
		return token
	}
	token := GenerateCSRFToken()
	session.Values[csrfKey] = token
	return token
}

// Draft returns the purchase draft for an event, or an empty one
func (m *SessionManager) Draft(ctx context.Context, session *sessions.Session, eventID string) *models.PurchaseDraft {
	id := draftID(session)
	if id == "" {
		return models.NewPurchaseDraft(eventID)
	}

	var draft models.PurchaseDraft
	hit, err := m.drafts.Get(ctx, cache.DraftKey(id, eventID), &draft)
	if err != nil {
		m.log.Warn("discarding unreadable purchase draft", zap.String("event_id", eventID), zap.Error(err))
		return models.NewPurchaseDraft(eventID)
	}
	if !hit {
		return models.NewPurchaseDraft(eventID)
	}
	draft.EventID = eventID
	if draft.Quantities == nil {
		draft.Quantities = make(map[string]int)
	}
	return &draft
}

// SaveDraft stores a purchase draft, giving the session a draft id on first
// use. The session must be saved afterwards when the id is new.
func (m *SessionManager) SaveDraft(ctx context.Context, session *sessions.Session, draft *models.PurchaseDraft) error {
	id := draftID(session)
	if id == "" {
		token, err := utils.GenerateSecureToken(16)
		if err != nil {
			return fmt.Errorf("generate draft id: %w", err)
		}
		id = token
		session.Values[draftIDKey] = id
	}
	if err := m.drafts.Set(ctx, cache.DraftKey(id, draft.EventID), draft, m.draftTTL); err != nil {
		return fmt.Errorf("save purchase draft: %w", err)
	}
	return nil
}

// DeleteDraft drops the purchase draft of an event
func (m *SessionManager) DeleteDraft(ctx context.Context, session *sessions.Session, eventID string) error {
	id := draftID(session)
	if id == "" {
		return nil
	}
	return m.drafts.Delete(ctx, cache.DraftKey(id, eventID))
}

func draftID(session *sessions.Session) string {
	id, _ := session.Values[draftIDKey].(string)
	return id
}

// AddFlash queues a toast for the next render
func (m *SessionManager) AddFlash(session *sessions.Session, kind, message string) {
	data, err := json.Marshal(models.Flash{Kind: kind, Message: message})
	if err != nil {
		return
	}
	session.AddFlash(string(data), flashKey)
}

// Flashes pops the queued toasts
func (m *SessionManager) Flashes(session *sessions.Session) []models.Flash {
	raw := session.Flashes(flashKey)
	flashes := make([]models.Flash, 0, len(raw))
	for _, v := range raw {
		s, ok := v.(string)
		if !ok {
			continue
		}
		var f models.Flash
		if err := json.Unmarshal([]byte(s), &f); err == nil {
			flashes = append(flashes, f)
		}
	}
	return flashes
}

// GenerateCSRFToken generates a CSRF token for the session
func GenerateCSRFToken() string {
	token, err := utils.GenerateSecureToken(32)
	if err != nil {
		return strings.ReplaceAll(time.Now().UTC().Format("20060102150405.000000000"), ".", "")
	}
	return token
}
