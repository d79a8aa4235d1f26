package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"event-storefront/internal/models"
)

// CreateReview calls POST /reviews
func (c *Client) CreateReview(ctx context.Context, token string, payload models.CreateReviewRequest) (*models.Review, error) {
	body, err := jsonBody(payload)
	if err != nil {
		return nil, err
	}

	var out envelope[*models.Review]
	req := request{method: http.MethodPost, path: "/reviews", token: token, body: body, contentType: "application/json"}
	if err := do(ctx, c, req, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// ListOrganizerReviews calls GET /reviews/organizer/{id}
func (c *Client) ListOrganizerReviews(ctx context.Context, organizerID, take int) ([]models.Review, error) {
	q := url.Values{}
	if take > 0 {
		q.Set("take", strconv.Itoa(take))
	}

	var out envelope[[]models.Review]
	path := "/reviews/organizer/" + strconv.Itoa(organizerID)
	if err := do(ctx, c, request{method: http.MethodGet, path: path, query: q}, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}
