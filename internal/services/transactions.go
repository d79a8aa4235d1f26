package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"event-storefront/internal/apiclient"
	"event-storefront/internal/models"
	"event-storefront/internal/utils"

	"go.uber.org/zap"
)

const (
	ToastProofSubmitted = "Payment proof submitted."
	transactionsPerPage = 10
)

// Status tabs on the transactions page
const (
	TabToPay     = "to-pay"
	TabToConfirm = "to-confirm"
	TabMyBooking = "my-booking"
	TabToRate    = "to-rate"
)

// Tab is one status filter on the transactions page
type Tab struct {
	Key    string
	Label  string
	Status models.TransactionStatus
}

// Tabs lists the status tabs in display order
var Tabs = []Tab{
	{Key: TabToPay, Label: "To Pay", Status: models.StatusWaitingForPayment},
	{Key: TabToConfirm, Label: "To Confirm", Status: models.StatusWaitingForConfirmation},
	{Key: TabMyBooking, Label: "My Booking", Status: models.StatusPaid},
	{Key: TabToRate, Label: "To Rate", Status: models.StatusWaitingForReview},
}

var statusLabels = map[models.TransactionStatus]string{
	models.StatusWaitingForPayment:      "To Pay",
	models.StatusWaitingForConfirmation: "Waiting for confirmation by admin",
	models.StatusPaid:                   "Paid",
	models.StatusReject:                 "Rejected",
	models.StatusExpired:                "Expired",
	models.StatusCanceled:               "Canceled",
	models.StatusWaitingForReview:       "Waiting for Review",
	models.StatusReviewDone:             "Review Done",
	models.StatusDraft:                  "Draft",
}

// StatusLabel returns the customer-facing label, or the raw status when unknown
func StatusLabel(status models.TransactionStatus) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return string(status)
}

// StatusTone returns "green", "red" or "neutral" for badge styling
func StatusTone(status models.TransactionStatus) string {
	switch status {
	case models.StatusWaitingForConfirmation, models.StatusPaid:
		return "green"
	case models.StatusExpired, models.StatusCanceled, models.StatusReject:
		return "red"
	default:
		return "neutral"
	}
}

// TabStatus maps a tab key to its status filter
func TabStatus(tab string) (models.TransactionStatus, bool) {
	for _, t := range Tabs {
		if t.Key == tab {
			return t.Status, true
		}
	}
	return "", false
}

// NextTab returns the tab selected after clicking clicked while current is active.
// Clicking the active tab clears the filter.
func NextTab(current, clicked string) string {
	if _, ok := TabStatus(clicked); !ok || clicked == current {
		return ""
	}
	return clicked
}

// UploadState describes whether a payment proof can be uploaded right now
type UploadState struct {
	Remaining time.Duration
	Countdown string
	Expired   bool
	CanUpload bool
	HasProof  bool
}

// ComputeUploadState evaluates the upload window of trx at now
func ComputeUploadState(trx *models.Transaction, now time.Time) UploadState {
	var st UploadState
	if trx == nil {
		return st
	}
	if trx.PaymentDeadline != nil {
		st.Remaining = trx.PaymentDeadline.Sub(now)
	}
	awaiting := trx.Status == models.StatusWaitingForPayment
	st.Expired = trx.Status == models.StatusExpired || (awaiting && st.Remaining <= 0)
	st.CanUpload = awaiting && !st.Expired
	st.Countdown = utils.FormatClock(st.Remaining)
	st.HasProof = trx.HasProof()
	return st
}

// ImageNormalizer prepares an uploaded image for forwarding
type ImageNormalizer interface {
	Normalize(up *models.Upload) (*models.Upload, error)
}

// TransactionService tracks transactions and the payment-proof workflow
type TransactionService struct {
	api    TransactionAPI
	images ImageNormalizer
	log    *zap.Logger
	now    func() time.Time
}

// NewTransactionService creates a new transaction service
func NewTransactionService(api TransactionAPI, images ImageNormalizer, log *zap.Logger) *TransactionService {
	return &TransactionService{api: api, images: images, log: log, now: time.Now}
}

// Get fetches one transaction of the logged-in user
func (s *TransactionService) Get(ctx context.Context, token, id string) (*models.Transaction, error) {
	if token == "" {
		return nil, models.ErrLoginRequired
	}
	trx, err := s.api.GetTransaction(ctx, token, id)
	if err != nil {
		if errors.Is(err, apiclient.ErrNotFound) {
			return nil, models.ErrTransactionNotFound
		}
		return nil, err
	}
	return trx, nil
}

// List returns the user's transactions, filtered by tab when one is selected
func (s *TransactionService) List(ctx context.Context, token, tab string, page int) (*models.Page[models.Transaction], error) {
	if token == "" {
		return nil, models.ErrLoginRequired
	}
	if page < 1 {
		page = 1
	}
	status, _ := TabStatus(tab)
	return s.api.ListTransactions(ctx, token, status, page, transactionsPerPage)
}

// UploadState evaluates the upload window of trx now
func (s *TransactionService) UploadState(trx *models.Transaction) UploadState {
	return ComputeUploadState(trx, s.now())
}

// UploadPaymentProof checks the transaction is awaiting payment, normalizes
// the image, forwards it and returns the refreshed transaction.
func (s *TransactionService) UploadPaymentProof(ctx context.Context, token, id string, proof *models.Upload) (*models.Transaction, error) {
	if token == "" {
		return nil, models.ErrLoginRequired
	}
	if proof.Empty() {
		return nil, models.ErrProofRequired
	}
	if ct := strings.ToLower(proof.ContentType); ct != "" && !strings.HasPrefix(ct, "image/") {
		return nil, models.ErrProofNotImage
	}

	trx, err := s.Get(ctx, token, id)
	if err != nil {
		return nil, err
	}
	if !s.UploadState(trx).CanUpload {
		return nil, models.ErrUploadNotAllowed
	}

	normalized, err := s.images.Normalize(proof)
	if err != nil {
		if errors.Is(err, models.ErrNotAnImage) {
			return nil, models.ErrProofNotImage
		}
		return nil, err
	}

	if err := s.api.UploadPaymentProof(ctx, token, id, normalized); err != nil {
		s.log.Error("payment proof upload failed", zap.String("transaction_id", id), zap.Error(err))
		return nil, err
	}

	s.log.Info("payment proof uploaded",
		zap.String("transaction_id", id),
		zap.Int("bytes", len(normalized.Data)),
	)

	return s.Get(ctx, token, id)
}
