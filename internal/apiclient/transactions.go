package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"event-storefront/internal/models"
)

// PointsBalance calls GET /points/balance
func (c *Client) PointsBalance(ctx context.Context, token string) (int64, error) {
	var out envelope[struct {
		PointsBalance models.Amount `json:"points_balance"`
	}]
	if err := do(ctx, c, request{method: http.MethodGet, path: "/points/balance", token: token}, &out); err != nil {
		return 0, err
	}
	return int64(out.Data.PointsBalance), nil
}

// CreateTransaction calls POST /transactions
func (c *Client) CreateTransaction(ctx context.Context, token string, payload models.CreateTransactionRequest) (*models.Transaction, error) {
	body, err := jsonBody(payload)
	if err != nil {
		return nil, err
	}

	var out envelope[*models.Transaction]
	req := request{method: http.MethodPost, path: "/transactions", token: token, body: body, contentType: "application/json"}
	if err := do(ctx, c, req, &out); err != nil {
		return nil, err
	}
	if out.Data == nil {
		return &models.Transaction{}, nil
	}
	return out.Data, nil
}

// GetTransaction calls GET /transactions/{id}
func (c *Client) GetTransaction(ctx context.Context, token, id string) (*models.Transaction, error) {
	var out envelope[*models.Transaction]
	path := "/transactions/" + url.PathEscape(id)
	if err := do(ctx, c, request{method: http.MethodGet, path: path, token: token}, &out); err != nil {
		return nil, err
	}
	if out.Data == nil {
		return nil, &APIError{StatusCode: http.StatusNotFound, Message: "Transaction not found"}
	}
	return out.Data, nil
}

// ListTransactions calls GET /transactions for the token's owner
func (c *Client) ListTransactions(ctx context.Context, token string, status models.TransactionStatus, page, take int) (*models.Page[models.Transaction], error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", string(status))
	}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if take > 0 {
		q.Set("take", strconv.Itoa(take))
	}

	var out envelope[[]models.Transaction]
	if err := do(ctx, c, request{method: http.MethodGet, path: "/transactions", query: q, token: token}, &out); err != nil {
		return nil, err
	}

	result := &models.Page[models.Transaction]{Data: out.Data}
	if result.Data == nil {
		result.Data = []models.Transaction{}
	}
	if out.Meta != nil {
		result.Meta = *out.Meta
	} else {
		result.Meta = models.PageMeta{Page: page, Take: take, Total: len(result.Data)}
	}
	return result, nil
}

// UploadPaymentProof posts the proof image as the multipart field "image"
func (c *Client) UploadPaymentProof(ctx context.Context, token, id string, proof *models.Upload) error {
	mp := newMultipart()
	mp.file("image", proof)
	body, contentType, err := mp.finish()
	if err != nil {
		return err
	}

	path := "/transactions/" + url.PathEscape(id) + "/payment-proof"
	req := request{method: http.MethodPost, path: path, token: token, body: body, contentType: contentType}
	var out envelope[any]
	return do(ctx, c, req, &out)
}
