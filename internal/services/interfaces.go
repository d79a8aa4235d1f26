package services

import (
	"context"

	"event-storefront/internal/apiclient"
	"event-storefront/internal/models"
)

// CatalogAPI is the part of the events API used for browsing
type CatalogAPI interface {
	ListEvents(ctx context.Context, f models.EventFilter) (*models.Page[models.Event], error)
	GetEvent(ctx context.Context, slug string) (*models.Event, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListPromotions(ctx context.Context, token string) ([]models.Promotion, error)
	ListOrganizerPromotions(ctx context.Context, organizerID int) ([]models.Promotion, error)
	ListOrganizerReviews(ctx context.Context, organizerID, take int) ([]models.Review, error)
}

// PurchaseAPI is the part of the events API used while buying tickets
type PurchaseAPI interface {
	ValidatePromotion(ctx context.Context, code, eventID string) (*models.AppliedPromo, error)
	PointsBalance(ctx context.Context, token string) (int64, error)
	CreateTransaction(ctx context.Context, token string, payload models.CreateTransactionRequest) (*models.Transaction, error)
}

// TransactionAPI is the part of the events API used after checkout
type TransactionAPI interface {
	GetTransaction(ctx context.Context, token, id string) (*models.Transaction, error)
	ListTransactions(ctx context.Context, token string, status models.TransactionStatus, page, take int) (*models.Page[models.Transaction], error)
	UploadPaymentProof(ctx context.Context, token, id string, proof *models.Upload) error
}

// ReviewAPI submits reviews
type ReviewAPI interface {
	CreateReview(ctx context.Context, token string, payload models.CreateReviewRequest) (*models.Review, error)
}

// OrganizerAPI publishes events and promotions
type OrganizerAPI interface {
	ListEvents(ctx context.Context, f models.EventFilter) (*models.Page[models.Event], error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateEvent(ctx context.Context, token string, form models.CreateEventForm) (*models.Event, error)
	CreatePromotion(ctx context.Context, token string, form models.CreatePromotionForm) (*models.Promotion, error)
}

// AuthAPI exchanges credentials for a bearer token
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*apiclient.LoginResult, error)
}

// CatalogServiceInterface defines the browsing operations used by handlers
type CatalogServiceInterface interface {
	BrowseEvents(ctx context.Context, f models.EventFilter) (*models.Page[models.Event], error)
	Categories(ctx context.Context) ([]models.Category, error)
	EventBySlug(ctx context.Context, slug string) (*models.Event, error)
	Promotions(ctx context.Context, token string) ([]models.Promotion, error)
	OrganizerPromotions(ctx context.Context, organizerID int) ([]models.Promotion, error)
	OrganizerReviews(ctx context.Context, organizerID int) ([]models.Review, error)
	OrganizerProfile(ctx context.Context, organizerID int) (*OrganizerProfile, error)
}

// PurchaseServiceInterface defines the purchase flow used by handlers
type PurchaseServiceInterface interface {
	Increment(event *models.Event, draft *models.PurchaseDraft, ticketID string) error
	Decrement(event *models.Event, draft *models.PurchaseDraft, ticketID string) error
	SetQuantity(event *models.Event, draft *models.PurchaseDraft, ticketID string, qty int) error
	ApplyPromo(ctx context.Context, event *models.Event, draft *models.PurchaseDraft, code string) (string, error)
	ChangePromoCode(draft *models.PurchaseDraft, code string)
	ClearPromo(draft *models.PurchaseDraft)
	TogglePoints(draft *models.PurchaseDraft, on, loggedIn bool, pricing Pricing) error
	PointsBalance(ctx context.Context, token string) int64
	Pricing(event *models.Event, draft *models.PurchaseDraft, balance int64) Pricing
	Checkout(event *models.Event, draft *models.PurchaseDraft, loggedIn bool, balance int64) (*TransactionView, error)
	CreateTransaction(ctx context.Context, token string, event *models.Event, draft *models.PurchaseDraft, balance int64) (*TransactionView, error)
}

// TransactionServiceInterface defines transaction tracking used by handlers
type TransactionServiceInterface interface {
	Get(ctx context.Context, token, id string) (*models.Transaction, error)
	List(ctx context.Context, token, tab string, page int) (*models.Page[models.Transaction], error)
	UploadPaymentProof(ctx context.Context, token, id string, proof *models.Upload) (*models.Transaction, error)
	UploadState(trx *models.Transaction) UploadState
}

// ReviewServiceInterface defines review submission used by handlers
type ReviewServiceInterface interface {
	Submit(ctx context.Context, token string, form *models.ReviewForm, organizerID int) error
}

// OrganizerServiceInterface defines the organizer forms used by handlers
type OrganizerServiceInterface interface {
	Categories(ctx context.Context) ([]models.Category, error)
	EventOptions(ctx context.Context) ([]models.Event, error)
	CreateEvent(ctx context.Context, token string, form *models.CreateEventForm) (*models.Event, error)
	CreatePromotion(ctx context.Context, token string, form *models.CreatePromotionForm) (*models.Promotion, error)
}

// AuthServiceInterface defines login used by handlers
type AuthServiceInterface interface {
	Login(ctx context.Context, form *models.LoginForm) (*models.SessionUser, error)
}
