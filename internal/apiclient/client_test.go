package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"event-storefront/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", 2*time.Second, nil)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestListEvents_QueryAndMeta(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/events", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "2", q.Get("page"))
		assert.Equal(t, "3", q.Get("take"))
		assert.Equal(t, "jazz", q.Get("search"))
		assert.Equal(t, "4", q.Get("category_id"))
		assert.False(t, q.Has("organizer_id"))

		writeJSON(w, http.StatusOK, map[string]any{
			"data": []map[string]any{{"event_id": "e1", "title": "Jazz Night", "slug": "jazz-night"}},
			"meta": map[string]any{"page": 2, "take": 3, "total": 7},
		})
	})

	page, err := c.ListEvents(context.Background(), models.EventFilter{Page: 2, Take: 3, Search: " jazz ", CategoryID: 4})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Jazz Night", page.Data[0].Title)
	assert.Equal(t, 7, page.Meta.Total)
}

func TestGetEvent_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/events/no%20such", r.URL.EscapedPath())
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "Event not found"})
	})

	_, err := c.GetEvent(context.Background(), "no such")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Event not found", apiErr.Message)
}

func TestUnreachableAPI(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	c := New(srv.URL, time.Second, nil)
	_, err := c.ListCategories(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrAPIUnreachable))
}

func TestListCategories_Sorting(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "category_id", r.URL.Query().Get("sortBy"))
		assert.Equal(t, "asc", r.URL.Query().Get("sortOrder"))
		writeJSON(w, http.StatusOK, map[string]any{
			"data": []map[string]any{{"category_id": 1, "category_name": "Music", "category_field": "/music.png"}},
		})
	})

	cats, err := c.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "Music", cats[0].Name)
}

func TestValidatePromotion(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/promotions/validate", r.URL.Path)
		if r.URL.Query().Get("code") != "HEMAT" {
			writeJSON(w, http.StatusBadRequest, map[string]any{"message": "Promo code is invalid"})
			return
		}
		assert.Equal(t, "e1", r.URL.Query().Get("event_id"))
		writeJSON(w, http.StatusOK, map[string]any{
			"message": "ok",
			"data":    map[string]any{"coupon_id": "c1", "code": "HEMAT", "discount_name": "Hemat", "discount_amount": "25000"},
		})
	})

	promo, err := c.ValidatePromotion(context.Background(), "HEMAT", "e1")
	require.NoError(t, err)
	assert.Equal(t, models.Amount(25000), promo.DiscountAmount)

	_, err = c.ValidatePromotion(context.Background(), "NOPE", "e1")
	require.Error(t, err)
	assert.Equal(t, "Promo code is invalid", Message(err, "Failed to apply promo."))
	assert.True(t, errors.Is(err, models.ErrInvalidInput))
}

func TestPointsBalance_SendsBearer(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Unauthorized"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"data": map[string]any{"points_balance": 15000}})
	})

	balance, err := c.PointsBalance(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, int64(15000), balance)

	_, err = c.PointsBalance(context.Background(), "")
	assert.True(t, errors.Is(err, models.ErrUnauthorized))
}

func TestCreateTransaction_Payload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "e1", body["event_id"])
		assert.Equal(t, "t1", body["ticket_id"])
		assert.Equal(t, float64(2), body["qty"])
		assert.Equal(t, "c1", body["coupon_id"])
		assert.Equal(t, float64(5000), body["points_used"])

		writeJSON(w, http.StatusCreated, map[string]any{
			"data": map[string]any{
				"transaction_id":   "trx-1",
				"status":           "WAITING_FOR_PAYMENT",
				"payment_deadline": "2026-01-10T14:00:00.000Z",
				"computed":         map[string]any{"qty": 2, "base_price": 100000, "total_price": 170000},
			},
		})
	})

	trx, err := c.CreateTransaction(context.Background(), "tok", models.CreateTransactionRequest{
		EventID: "e1", TicketID: "t1", Qty: 2, CouponID: "c1", PointsUsed: 5000,
	})
	require.NoError(t, err)
	assert.Equal(t, "trx-1", trx.ID)
	assert.Equal(t, models.Amount(170000), trx.Computed.TotalPrice)
}

func TestListTransactions_Status(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "WAITING_FOR_PAYMENT", r.URL.Query().Get("status"))
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		writeJSON(w, http.StatusOK, map[string]any{"data": []any{}})
	})

	page, err := c.ListTransactions(context.Background(), "tok", models.StatusWaitingForPayment, 1, 5)
	require.NoError(t, err)
	assert.Empty(t, page.Data)
	assert.Equal(t, 1, page.Meta.Page)
}

func TestUploadPaymentProof_Multipart(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transactions/trx-1/payment-proof", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		f, hdr, err := r.FormFile("image")
		require.NoError(t, err)
		defer f.Close()
		data, _ := io.ReadAll(f)

		assert.Equal(t, "proof.jpg", hdr.Filename)
		assert.Equal(t, "image/jpeg", hdr.Header.Get("Content-Type"))
		assert.Equal(t, []byte("jpeg-bytes"), data)
		writeJSON(w, http.StatusOK, map[string]any{"message": "uploaded"})
	})

	err := c.UploadPaymentProof(context.Background(), "tok", "trx-1", &models.Upload{
		Filename: "proof.jpg", ContentType: "image/jpeg", Data: []byte("jpeg-bytes"),
	})
	require.NoError(t, err)
}

func TestCreateEvent_TicketsAsJSONString(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Jazz Night", r.FormValue("title"))
		assert.Equal(t, "2", r.FormValue("category_id"))
		assert.JSONEq(t, `[{"name":"VIP","price":250000,"quota":10}]`, r.FormValue("tickets"))
		_, _, err := r.FormFile("image")
		assert.NoError(t, err)
		writeJSON(w, http.StatusCreated, map[string]any{"data": map[string]any{"event_id": "e1"}})
	})

	ev, err := c.CreateEvent(context.Background(), "tok", models.CreateEventForm{
		Title:      "Jazz Night",
		CategoryID: 2,
		Image:      &models.Upload{Filename: "poster.png", ContentType: "image/png", Data: []byte("png")},
		Tickets:    []models.TicketTypeInput{{Name: "VIP", Price: 250000, Quota: 10}},
	})
	require.NoError(t, err)
	assert.Equal(t, "e1", ev.ID)
}

func TestLogin_TokenFallbacks(t *testing.T) {
	tests := []struct {
		name string
		data map[string]any
	}{
		{name: "accessToken", data: map[string]any{"accessToken": "tok", "email": "a@b.c"}},
		{name: "access_token", data: map[string]any{"access_token": "tok", "email": "a@b.c"}},
		{name: "nested user token", data: map[string]any{"user": map[string]any{"token": "tok", "email": "a@b.c", "id": 12}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, map[string]any{"data": tt.data})
			})

			res, err := c.Login(context.Background(), "a@b.c", "secret")
			require.NoError(t, err)
			assert.Equal(t, "tok", res.Token)
			assert.Equal(t, "a@b.c", res.Email)
		})
	}
}

func TestLogin_MissingToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"data": map[string]any{"email": "a@b.c"}})
	})

	_, err := c.Login(context.Background(), "a@b.c", "secret")
	assert.Error(t, err)
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "fallback", Message(nil, "fallback"))
	assert.Equal(t, "from api", Message(&APIError{StatusCode: 400, Message: "from api"}, "fallback"))
	assert.Equal(t, "plain", Message(errors.New("plain"), "fallback"))
	assert.Equal(t, "fallback", Message(models.ErrAPIUnreachable, "fallback"))
}
