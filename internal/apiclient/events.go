package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"event-storefront/internal/models"
)

// ListEvents calls GET /events
func (c *Client) ListEvents(ctx context.Context, f models.EventFilter) (*models.Page[models.Event], error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(f.Page))
	q.Set("take", strconv.Itoa(f.Take))
	if s := strings.TrimSpace(f.Search); s != "" {
		q.Set("search", s)
	}
	if f.CategoryID > 0 {
		q.Set("category_id", strconv.Itoa(f.CategoryID))
	}
	if f.OrganizerID > 0 {
		q.Set("organizer_id", strconv.Itoa(f.OrganizerID))
	}

	var out envelope[[]models.Event]
	if err := do(ctx, c, request{method: http.MethodGet, path: "/events", query: q}, &out); err != nil {
		return nil, err
	}

	page := &models.Page[models.Event]{Data: out.Data}
	if out.Meta != nil {
		page.Meta = *out.Meta
	} else {
		page.Meta = models.PageMeta{Page: f.Page, Take: f.Take, Total: len(out.Data)}
	}
	if page.Data == nil {
		page.Data = []models.Event{}
	}
	return page, nil
}

// GetEvent calls GET /events/{slug}
func (c *Client) GetEvent(ctx context.Context, slug string) (*models.Event, error) {
	var out envelope[*models.Event]
	path := "/events/" + url.PathEscape(slug)
	if err := do(ctx, c, request{method: http.MethodGet, path: path}, &out); err != nil {
		return nil, err
	}
	if out.Data == nil {
		return nil, &APIError{StatusCode: http.StatusNotFound, Message: "Event not found"}
	}
	return out.Data, nil
}

// CreateEvent posts the create-event form as multipart/form-data. Dates must
// already be RFC 3339; tickets travel as a JSON string field.
func (c *Client) CreateEvent(ctx context.Context, token string, form models.CreateEventForm) (*models.Event, error) {
	tickets, err := json.Marshal(form.Tickets)
	if err != nil {
		return nil, err
	}

	mp := newMultipart()
	mp.field("title", form.Title)
	mp.field("description", form.Description)
	mp.field("start_date", form.StartDate)
	mp.field("end_date", form.EndDate)
	mp.field("location", form.Location)
	mp.file("image", form.Image)
	mp.field("category_id", strconv.Itoa(form.CategoryID))
	mp.field("tickets", string(tickets))
	body, contentType, err := mp.finish()
	if err != nil {
		return nil, err
	}

	var out envelope[*models.Event]
	req := request{method: http.MethodPost, path: "/events", token: token, body: body, contentType: contentType}
	if err := do(ctx, c, req, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// ListCategories calls GET /categories sorted by id
func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	q := url.Values{}
	q.Set("sortBy", "category_id")
	q.Set("sortOrder", "asc")

	var out envelope[[]models.Category]
	if err := do(ctx, c, request{method: http.MethodGet, path: "/categories", query: q}, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// ListPromotions calls GET /promotions with the customer's token
func (c *Client) ListPromotions(ctx context.Context, token string) ([]models.Promotion, error) {
	var out envelope[[]models.Promotion]
	if err := do(ctx, c, request{method: http.MethodGet, path: "/promotions", token: token}, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// ListOrganizerPromotions calls GET /promotions/organizer/{id}
func (c *Client) ListOrganizerPromotions(ctx context.Context, organizerID int) ([]models.Promotion, error) {
	var out envelope[[]models.Promotion]
	path := "/promotions/organizer/" + strconv.Itoa(organizerID)
	if err := do(ctx, c, request{method: http.MethodGet, path: path}, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// ValidatePromotion calls GET /promotions/validate for a code on an event
func (c *Client) ValidatePromotion(ctx context.Context, code, eventID string) (*models.AppliedPromo, error) {
	q := url.Values{}
	q.Set("code", code)
	q.Set("event_id", eventID)

	var out envelope[*models.AppliedPromo]
	if err := do(ctx, c, request{method: http.MethodGet, path: "/promotions/validate", query: q}, &out); err != nil {
		return nil, err
	}
	if out.Data == nil {
		msg := out.Message
		if msg == "" {
			msg = "Failed to apply promo."
		}
		return nil, &APIError{StatusCode: http.StatusUnprocessableEntity, Message: msg}
	}
	return out.Data, nil
}

// CreatePromotion posts the create-promotion form as multipart/form-data
func (c *Client) CreatePromotion(ctx context.Context, token string, form models.CreatePromotionForm) (*models.Promotion, error) {
	mp := newMultipart()
	mp.field("code", form.Code)
	mp.field("discount_name", form.DiscountName)
	mp.field("discount_amount", strconv.FormatInt(form.DiscountAmount, 10))
	mp.field("quota", strconv.Itoa(form.Quota))
	mp.field("expires_at", form.ExpiresAt)
	mp.field("event_id", form.EventID)
	mp.file("image", form.Image)
	body, contentType, err := mp.finish()
	if err != nil {
		return nil, err
	}

	var out envelope[*models.Promotion]
	req := request{method: http.MethodPost, path: "/promotions", token: token, body: body, contentType: contentType}
	if err := do(ctx, c, req, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}
