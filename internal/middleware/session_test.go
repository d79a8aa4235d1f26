package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"event-storefront/internal/cache"
	"event-storefront/internal/models"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestSessions() *SessionManager {
	store := NewCookieStore("test-secret-key-for-sessions-123", time.Hour, false)
	return NewSessionManager(store, cache.NewMemory(), time.Hour, zap.NewNop())
}

// sessionCookies saves a session prepared by fill and returns its cookies
func sessionCookies(t *testing.T, m *SessionManager, fill func(s *sessions.Session)) []*http.Cookie {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	s := m.Get(req)
	fill(s)
	require.NoError(t, m.Save(w, req, s))
	return w.Result().Cookies()
}

func withCookies(r *http.Request, cookies []*http.Cookie) *http.Request {
	for _, c := range cookies {
		r.AddCookie(c)
	}
	return r
}

func TestNewCookieStore(t *testing.T) {
	store := NewCookieStore("secret", 2*time.Hour, true)
	assert.Equal(t, 7200, store.Options.MaxAge)
	assert.True(t, store.Options.HttpOnly)
	assert.True(t, store.Options.Secure)
	assert.Equal(t, http.SameSiteLaxMode, store.Options.SameSite)
}

func TestSessionManager_UserRoundTrip(t *testing.T) {
	m := newTestSessions()
	user := &models.SessionUser{ID: "u1", Name: "Ana", AccessToken: "tok"}

	cookies := sessionCookies(t, m, func(s *sessions.Session) {
		require.NoError(t, m.SetUser(s, user))
	})

	s := m.Get(withCookies(httptest.NewRequest(http.MethodGet, "/", nil), cookies))
	got := m.User(s)
	require.NotNil(t, got)
	assert.Equal(t, "Ana", got.Name)
	assert.Equal(t, "tok", got.AccessToken)
	assert.NotEmpty(t, m.CSRFToken(s))

	m.ClearUser(context.Background(), s)
	assert.Nil(t, m.User(s))
}

func TestSessionManager_SetUserRotatesCSRF(t *testing.T) {
	m := newTestSessions()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	s := m.Get(req)

	before := m.CSRFToken(s)
	require.NoError(t, m.SetUser(s, &models.SessionUser{AccessToken: "tok"}))
	assert.NotEqual(t, before, m.CSRFToken(s))
}

func TestSessionManager_Drafts(t *testing.T) {
	ctx := context.Background()
	m := newTestSessions()
	s := m.Get(httptest.NewRequest(http.MethodGet, "/", nil))

	draft := m.Draft(ctx, s, "e1")
	assert.Equal(t, "e1", draft.EventID)
	assert.Empty(t, draft.Quantities)

	draft.SetQty("vip", 2)
	draft.PromoCode = "HEMAT"
	require.NoError(t, m.SaveDraft(ctx, s, draft))
	assert.NotEmpty(t, s.Values[draftIDKey])

	got := m.Draft(ctx, s, "e1")
	assert.Equal(t, 2, got.Qty("vip"))
	assert.Equal(t, "HEMAT", got.PromoCode)
	assert.Empty(t, m.Draft(ctx, s, "e2").Quantities)

	require.NoError(t, m.DeleteDraft(ctx, s, "e1"))
	assert.Equal(t, 0, m.Draft(ctx, s, "e1").Qty("vip"))
}

func TestSessionManager_DraftsStayOutOfTheCookie(t *testing.T) {
	ctx := context.Background()
	m := newTestSessions()
	user := &models.SessionUser{
		ID:          "u1",
		Name:        "Budi",
		Email:       "budi@example.com",
		AccessToken: strings.Repeat("x", 420),
		ExpiresAt:   time.Now().Add(time.Hour),
	}

	const events = 12
	var cookies []*http.Cookie
	for i := 0; i < events; i++ {
		req := withCookies(httptest.NewRequest(http.MethodPost, "/", nil), cookies)
		w := httptest.NewRecorder()
		s := m.Get(req)
		if i == 0 {
			require.NoError(t, m.SetUser(s, user))
		}

		d := m.Draft(ctx, s, fmt.Sprintf("event-%02d", i))
		d.SetQty("ticket-regular", 2)
		d.PromoCode = "HEMAT10"
		d.Promo = &models.AppliedPromo{CouponID: fmt.Sprintf("coupon-%02d", i), Code: "HEMAT10", DiscountAmount: 10000}
		require.NoError(t, m.SaveDraft(ctx, s, d))
		require.NoError(t, m.Save(w, req, s), "session saves after %d drafts", i+1)

		cookies = w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Less(t, len(cookies[0].String()), 4096)
	}

	s := m.Get(withCookies(httptest.NewRequest(http.MethodGet, "/", nil), cookies))
	require.NotNil(t, m.User(s))
	for i := 0; i < events; i++ {
		d := m.Draft(ctx, s, fmt.Sprintf("event-%02d", i))
		assert.Equal(t, 2, d.Qty("ticket-regular"), "draft %d", i)
		require.NotNil(t, d.Promo)
		assert.Equal(t, fmt.Sprintf("coupon-%02d", i), d.Promo.CouponID)
	}
}

func TestSessionManager_DraftsAreNotShared(t *testing.T) {
	ctx := context.Background()
	m := newTestSessions()
	a := m.Get(httptest.NewRequest(http.MethodGet, "/", nil))
	b := m.Get(httptest.NewRequest(http.MethodGet, "/", nil))

	d := models.NewPurchaseDraft("e1")
	d.SetQty("vip", 1)
	require.NoError(t, m.SaveDraft(ctx, a, d))

	assert.Equal(t, 0, m.Draft(ctx, b, "e1").Qty("vip"))
}

func TestSessionManager_ClearUserDropsDrafts(t *testing.T) {
	ctx := context.Background()
	drafts := cache.NewMemory()
	m := NewSessionManager(NewCookieStore("test-secret-key-for-sessions-123", time.Hour, false), drafts, time.Hour, zap.NewNop())
	s := m.Get(httptest.NewRequest(http.MethodGet, "/", nil))

	d := models.NewPurchaseDraft("e1")
	d.SetQty("vip", 1)
	require.NoError(t, m.SaveDraft(ctx, s, d))
	require.NoError(t, m.SetUser(s, &models.SessionUser{AccessToken: "tok"}))

	m.ClearUser(ctx, s)
	assert.Nil(t, s.Values[draftIDKey])
	assert.Equal(t, 0, m.Draft(ctx, s, "e1").Qty("vip"))
	assert.Equal(t, 0, drafts.Len())
}

func TestSessionManager_CorruptDraft(t *testing.T) {
	ctx := context.Background()
	drafts := cache.NewMemory()
	m := NewSessionManager(NewCookieStore("test-secret-key-for-sessions-123", time.Hour, false), drafts, time.Hour, zap.NewNop())
	s := m.Get(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, m.SaveDraft(ctx, s, models.NewPurchaseDraft("e1")))

	id := s.Values[draftIDKey].(string)
	require.NoError(t, drafts.Set(ctx, cache.DraftKey(id, "e1"), "{not a draft", time.Hour))

	assert.Equal(t, "e1", m.Draft(ctx, s, "e1").EventID)
}

// failingCache refuses every write
type failingCache struct{ cache.Cache }

func (failingCache) Set(context.Context, string, any, time.Duration) error {
	return errors.New("cache unavailable")
}

func TestSessionManager_SaveDraftReportsCacheErrors(t *testing.T) {
	m := NewSessionManager(NewCookieStore("test-secret-key-for-sessions-123", time.Hour, false), failingCache{cache.NewMemory()}, time.Hour, zap.NewNop())
	s := m.Get(httptest.NewRequest(http.MethodGet, "/", nil))

	err := m.SaveDraft(context.Background(), s, models.NewPurchaseDraft("e1"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cache unavailable")
}

func TestSessionManager_Flashes(t *testing.T) {
	m := newTestSessions()
	s := m.Get(httptest.NewRequest(http.MethodGet, "/", nil))

	m.AddFlash(s, "success", "Review submitted.")
	m.AddFlash(s, "error", "Upload failed.")

	flashes := m.Flashes(s)
	require.Len(t, flashes, 2)
	assert.Equal(t, models.Flash{Kind: "success", Message: "Review submitted."}, flashes[0])
	assert.Equal(t, "error", flashes[1].Kind)

	assert.Empty(t, m.Flashes(s), "flashes are consumed")
}

func TestGenerateCSRFToken(t *testing.T) {
	token1 := GenerateCSRFToken()
	token2 := GenerateCSRFToken()

	assert.Len(t, token1, 64)
	assert.NotEqual(t, token1, token2)
}
