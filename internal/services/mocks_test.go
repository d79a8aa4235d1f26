package services

import (
	"context"

	"event-storefront/internal/apiclient"
	"event-storefront/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockAPI stands in for the remote events API
type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) ListEvents(ctx context.Context, f models.EventFilter) (*models.Page[models.Event], error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Page[models.Event]), args.Error(1)
}

func (m *MockAPI) GetEvent(ctx context.Context, slug string) (*models.Event, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *MockAPI) ListCategories(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockAPI) ListPromotions(ctx context.Context, token string) ([]models.Promotion, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Promotion), args.Error(1)
}

func (m *MockAPI) ListOrganizerPromotions(ctx context.Context, organizerID int) ([]models.Promotion, error) {
	args := m.Called(ctx, organizerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Promotion), args.Error(1)
}

func (m *MockAPI) ListOrganizerReviews(ctx context.Context, organizerID, take int) ([]models.Review, error) {
	args := m.Called(ctx, organizerID, take)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Review), args.Error(1)
}

func (m *MockAPI) ValidatePromotion(ctx context.Context, code, eventID string) (*models.AppliedPromo, error) {
	args := m.Called(ctx, code, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AppliedPromo), args.Error(1)
}

func (m *MockAPI) PointsBalance(ctx context.Context, token string) (int64, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAPI) CreateTransaction(ctx context.Context, token string, payload models.CreateTransactionRequest) (*models.Transaction, error) {
	args := m.Called(ctx, token, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func (m *MockAPI) GetTransaction(ctx context.Context, token, id string) (*models.Transaction, error) {
	args := m.Called(ctx, token, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func (m *MockAPI) ListTransactions(ctx context.Context, token string, status models.TransactionStatus, page, take int) (*models.Page[models.Transaction], error) {
	args := m.Called(ctx, token, status, page, take)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Page[models.Transaction]), args.Error(1)
}

func (m *MockAPI) UploadPaymentProof(ctx context.Context, token, id string, proof *models.Upload) error {
	args := m.Called(ctx, token, id, proof)
	return args.Error(0)
}

func (m *MockAPI) CreateReview(ctx context.Context, token string, payload models.CreateReviewRequest) (*models.Review, error) {
	args := m.Called(ctx, token, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockAPI) CreateEvent(ctx context.Context, token string, form models.CreateEventForm) (*models.Event, error) {
	args := m.Called(ctx, token, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *MockAPI) CreatePromotion(ctx context.Context, token string, form models.CreatePromotionForm) (*models.Promotion, error) {
	args := m.Called(ctx, token, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Promotion), args.Error(1)
}

func (m *MockAPI) Login(ctx context.Context, email, password string) (*apiclient.LoginResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*apiclient.LoginResult), args.Error(1)
}

// MockImages stands in for the image normalizer
type MockImages struct {
	mock.Mock
}

func (m *MockImages) Normalize(up *models.Upload) (*models.Upload, error) {
	args := m.Called(up)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Upload), args.Error(1)
}

func testEvent() *models.Event {
	return &models.Event{
		ID:    "8d7f6a52-4a0c-4f43-9a3d-1f5b8f0c2a11",
		Title: "Jazz Night",
		Slug:  "jazz-night",
		Tickets: []models.Ticket{
			{ID: "vip", Name: "VIP", Price: 250000, Stock: 3},
			{ID: "reg", Name: "Regular", Price: 100000, Stock: 10},
		},
	}
}
