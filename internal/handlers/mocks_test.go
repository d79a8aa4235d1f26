package handlers

import (
	"context"

	"event-storefront/internal/models"
	"event-storefront/internal/services"

	"github.com/stretchr/testify/mock"
)

// MockCatalogService is a mock implementation of CatalogServiceInterface
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) BrowseEvents(ctx context.Context, f models.EventFilter) (*models.Page[models.Event], error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Page[models.Event]), args.Error(1)
}

func (m *MockCatalogService) Categories(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockCatalogService) EventBySlug(ctx context.Context, slug string) (*models.Event, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *MockCatalogService) Promotions(ctx context.Context, token string) ([]models.Promotion, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Promotion), args.Error(1)
}

func (m *MockCatalogService) OrganizerPromotions(ctx context.Context, organizerID int) ([]models.Promotion, error) {
	args := m.Called(ctx, organizerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Promotion), args.Error(1)
}

func (m *MockCatalogService) OrganizerReviews(ctx context.Context, organizerID int) ([]models.Review, error) {
	args := m.Called(ctx, organizerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Review), args.Error(1)
}

func (m *MockCatalogService) OrganizerProfile(ctx context.Context, organizerID int) (*services.OrganizerProfile, error) {
	args := m.Called(ctx, organizerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.OrganizerProfile), args.Error(1)
}

// MockPurchaseAPI stands in for the purchase endpoints of the events API
type MockPurchaseAPI struct {
	mock.Mock
}

func (m *MockPurchaseAPI) ValidatePromotion(ctx context.Context, code, eventID string) (*models.AppliedPromo, error) {
	args := m.Called(ctx, code, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AppliedPromo), args.Error(1)
}

func (m *MockPurchaseAPI) PointsBalance(ctx context.Context, token string) (int64, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPurchaseAPI) CreateTransaction(ctx context.Context, token string, payload models.CreateTransactionRequest) (*models.Transaction, error) {
	args := m.Called(ctx, token, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

// MockTransactionService is a mock implementation of TransactionServiceInterface
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) Get(ctx context.Context, token, id string) (*models.Transaction, error) {
	args := m.Called(ctx, token, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func (m *MockTransactionService) List(ctx context.Context, token, tab string, page int) (*models.Page[models.Transaction], error) {
	args := m.Called(ctx, token, tab, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Page[models.Transaction]), args.Error(1)
}

func (m *MockTransactionService) UploadPaymentProof(ctx context.Context, token, id string, proof *models.Upload) (*models.Transaction, error) {
	args := m.Called(ctx, token, id, proof)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func (m *MockTransactionService) UploadState(trx *models.Transaction) services.UploadState {
	args := m.Called(trx)
	return args.Get(0).(services.UploadState)
}

// MockReviewService is a mock implementation of ReviewServiceInterface
type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) Submit(ctx context.Context, token string, form *models.ReviewForm, organizerID int) error {
	args := m.Called(ctx, token, form, organizerID)
	return args.Error(0)
}

// MockOrganizerService is a mock implementation of OrganizerServiceInterface
type MockOrganizerService struct {
	mock.Mock
}

func (m *MockOrganizerService) Categories(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockOrganizerService) EventOptions(ctx context.Context) ([]models.Event, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Event), args.Error(1)
}

func (m *MockOrganizerService) CreateEvent(ctx context.Context, token string, form *models.CreateEventForm) (*models.Event, error) {
	args := m.Called(ctx, token, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *MockOrganizerService) CreatePromotion(ctx context.Context, token string, form *models.CreatePromotionForm) (*models.Promotion, error) {
	args := m.Called(ctx, token, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Promotion), args.Error(1)
}

// MockAuthService is a mock implementation of AuthServiceInterface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, form *models.LoginForm) (*models.SessionUser, error) {
	args := m.Called(ctx, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SessionUser), args.Error(1)
}
