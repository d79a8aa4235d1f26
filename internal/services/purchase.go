package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"event-storefront/internal/apiclient"
	"event-storefront/internal/models"
	"event-storefront/internal/utils"

	"go.uber.org/zap"
)

const (
	ToastTransactionCreated = "Transaction created! Please upload your payment proof."
	draftDeadlineText       = "(if unpaid)"
)

// TicketLine is one "Nx Name" row of a transaction summary
type TicketLine struct {
	Name  string
	Price string
}

// TransactionView is the summary shown in the checkout modal and upload card
type TransactionView struct {
	ID         string
	EventName  string
	EventDate  string
	Status     string
	StatusCode models.TransactionStatus
	Deadline   string
	Tickets    []TicketLine
	Total      string
	Image      string
	IsDraft    bool
	Payload    models.CreateTransactionRequest
	// Raw is the API transaction, nil for drafts
	Raw *models.Transaction
}

// PurchaseService handles the ticket selection, promo, points and checkout flow
type PurchaseService struct {
	api PurchaseAPI
	log *zap.Logger
}

// NewPurchaseService creates a new purchase service
func NewPurchaseService(api PurchaseAPI, log *zap.Logger) *PurchaseService {
	return &PurchaseService{api: api, log: log}
}

// Increment adds one ticket, stopping at the ticket's stock
func (s *PurchaseService) Increment(event *models.Event, draft *models.PurchaseDraft, ticketID string) error {
	return s.SetQuantity(event, draft, ticketID, draft.Qty(ticketID)+1)
}

// Decrement removes one ticket, stopping at zero
func (s *PurchaseService) Decrement(event *models.Event, draft *models.PurchaseDraft, ticketID string) error {
	return s.SetQuantity(event, draft, ticketID, draft.Qty(ticketID)-1)
}

// SetQuantity stores a quantity clamped to [0, stock]
func (s *PurchaseService) SetQuantity(event *models.Event, draft *models.PurchaseDraft, ticketID string, qty int) error {
	ticket, ok := event.FindTicket(ticketID)
	if !ok {
		return models.ErrTicketNotFound
	}
	draft.SetQty(ticketID, ClampQty(qty, ticket.Stock))
	return nil
}

// ApplyPromo validates a promo code for the event. It returns the success
// toast; on failure the applied promo is cleared and the message kept on the draft.
func (s *PurchaseService) ApplyPromo(ctx context.Context, event *models.Event, draft *models.PurchaseDraft, code string) (string, error) {
	code = strings.TrimSpace(code)
	draft.PromoCode = code
	if code == "" {
		return "", nil
	}

	pricing := ComputePricing(event.Tickets, draft, 0)
	if pricing.Subtotal <= 0 {
		draft.Promo = nil
		draft.PromoError = models.ErrPromoNeedsTickets.Error()
		return "", models.ErrPromoNeedsTickets
	}

	promo, err := s.api.ValidatePromotion(ctx, code, event.ID)
	if err != nil {
		draft.Promo = nil
		draft.PromoError = apiclient.Message(err, "Failed to apply promo.")
		s.log.Info("promo rejected",
			zap.String("event_id", event.ID),
			zap.String("code", code),
			zap.Error(err),
		)
		return "", errors.New(draft.PromoError)
	}

	draft.Promo = promo
	draft.PromoError = ""
	if promo.Code == "" {
		promo.Code = code
	}
	return fmt.Sprintf("Promo applied: %s", promo.Code), nil
}

// ChangePromoCode records a new code input, dropping any applied promo
func (s *PurchaseService) ChangePromoCode(draft *models.PurchaseDraft, code string) {
	draft.PromoCode = code
	draft.Promo = nil
	draft.PromoError = ""
}

// ClearPromo removes the code, the applied promo and its error
func (s *PurchaseService) ClearPromo(draft *models.PurchaseDraft) {
	draft.PromoCode = ""
	draft.Promo = nil
	draft.PromoError = ""
}

// TogglePoints switches the points discount. Turning it on requires a login;
// the request is ignored when points cannot apply to the current order.
func (s *PurchaseService) TogglePoints(draft *models.PurchaseDraft, on, loggedIn bool, pricing Pricing) error {
	if !on {
		draft.UsePoints = false
		return nil
	}
	if !loggedIn {
		draft.UsePoints = false
		return models.ErrPointsNeedLogin
	}
	if !pricing.CanUsePoints {
		return nil
	}
	draft.UsePoints = true
	return nil
}

// PointsBalance returns the customer's points, 0 when logged out or on failure
func (s *PurchaseService) PointsBalance(ctx context.Context, token string) int64 {
	if token == "" {
		return 0
	}
	balance, err := s.api.PointsBalance(ctx, token)
	if err != nil {
		s.log.Warn("failed to load points balance", zap.Error(err))
		return 0
	}
	return max(0, balance)
}

// Pricing computes the order summary for the event's tickets
func (s *PurchaseService) Pricing(event *models.Event, draft *models.PurchaseDraft, balance int64) Pricing {
	return ComputePricing(event.Tickets, draft, balance)
}

// Checkout builds the DRAFT transaction shown before the order is sent
func (s *PurchaseService) Checkout(event *models.Event, draft *models.PurchaseDraft, loggedIn bool, balance int64) (*TransactionView, error) {
	pricing := ComputePricing(event.Tickets, draft, balance)
	if !pricing.HasItems() {
		return nil, models.ErrNoTicketsSelected
	}
	if !loggedIn && draft.UsePoints {
		draft.UsePoints = false
		return nil, models.ErrPointsNeedLogin
	}

	view := &TransactionView{
		EventName:  event.Title,
		EventDate:  utils.FormatDate(event.StartDate),
		Status:     StatusLabel(models.StatusDraft),
		StatusCode: models.StatusDraft,
		Deadline:   draftDeadlineText,
		Total:      utils.FormatIDR(pricing.TotalAfterPoints),
		Image:      event.ImageURL(),
		IsDraft:    true,
		Payload:    CheckoutPayload(event, pricing),
	}
	for _, line := range pricing.Selected {
		view.Tickets = append(view.Tickets, TicketLine{
			Name:  fmt.Sprintf("%dx %s", line.Qty, line.Ticket.Name),
			Price: utils.FormatIDR(line.LineTotal),
		})
	}
	return view, nil
}

// CheckoutPayload builds the create-transaction body. The API takes a single
// ticket type per transaction, so the first selected line is sent.
func CheckoutPayload(event *models.Event, pricing Pricing) models.CreateTransactionRequest {
	payload := models.CreateTransactionRequest{
		EventID:    event.ID,
		PointsUsed: pricing.PointsUsed,
	}
	if len(pricing.Selected) > 0 {
		payload.TicketID = pricing.Selected[0].Ticket.ID
		payload.Qty = pricing.Selected[0].Qty
	}
	if pricing.Promo != nil {
		payload.CouponID = pricing.Promo.CouponID
	}
	return payload
}

// CreateTransaction sends the order to the API and resets the draft on success
func (s *PurchaseService) CreateTransaction(ctx context.Context, token string, event *models.Event, draft *models.PurchaseDraft, balance int64) (*TransactionView, error) {
	if token == "" {
		return nil, models.ErrLoginRequired
	}

	pricing := ComputePricing(event.Tickets, draft, balance)
	if !pricing.HasItems() {
		return nil, models.ErrNoTicketsSelected
	}
	payload := CheckoutPayload(event, pricing)
	if payload.EventID == "" || payload.TicketID == "" {
		return nil, models.ErrMissingCheckoutIDs
	}

	trx, err := s.api.CreateTransaction(ctx, token, payload)
	if err != nil {
		s.log.Error("failed to create transaction",
			zap.String("event_id", payload.EventID),
			zap.String("ticket_id", payload.TicketID),
			zap.Int("qty", payload.Qty),
			zap.Error(err),
		)
		return nil, err
	}

	s.log.Info("transaction created",
		zap.String("transaction_id", trx.ID),
		zap.String("event_id", payload.EventID),
	)

	ticketName := pricing.Selected[0].Ticket.Name
	view := NewTransactionView(trx, event, ticketName, payload.Qty, int64(pricing.Selected[0].Price))
	*draft = *models.NewPurchaseDraft(event.ID)
	return view, nil
}

// NewTransactionView maps an API transaction into its summary. The fallback
// values are used when the response omits the computed totals.
func NewTransactionView(trx *models.Transaction, event *models.Event, ticketName string, qty int, unitPrice int64) *TransactionView {
	base := unitPrice
	total := int64(trx.TotalPrice)
	if trx.Qty > 0 {
		qty = trx.Qty
	}
	if trx.Computed != nil {
		if trx.Computed.Qty > 0 {
			qty = trx.Computed.Qty
		}
		if trx.Computed.BasePrice > 0 {
			base = int64(trx.Computed.BasePrice)
		}
		if trx.Computed.TotalPrice > 0 {
			total = int64(trx.Computed.TotalPrice)
		}
	}
	if trx.Ticket != nil && trx.Ticket.Name != "" {
		ticketName = trx.Ticket.Name
	}
	if total == 0 {
		total = base * int64(qty)
	}

	view := &TransactionView{
		ID:         trx.ID,
		EventName:  trx.EventTitle(),
		EventDate:  models.FallbackText,
		Status:     StatusLabel(trx.Status),
		StatusCode: trx.Status,
		Deadline:   models.FallbackText,
		Total:      utils.FormatIDR(total),
		Image:      models.FallbackEventImage,
		Raw:        trx,
	}
	if trx.Event != nil {
		if trx.Event.StartDate != nil {
			view.EventDate = utils.FormatDate(*trx.Event.StartDate)
		}
		if trx.Event.Image != "" {
			view.Image = trx.Event.Image
		}
	}
	if event != nil {
		if view.EventName == models.FallbackEventTitle && event.Title != "" {
			view.EventName = event.Title
		}
		if view.EventDate == models.FallbackText {
			view.EventDate = utils.FormatDate(event.StartDate)
		}
		if view.Image == models.FallbackEventImage {
			view.Image = event.ImageURL()
		}
	}
	if trx.PaymentDeadline != nil {
		view.Deadline = utils.FormatDateTime(*trx.PaymentDeadline)
	}
	if qty > 0 || ticketName != "" {
		view.Tickets = []TicketLine{{
			Name:  fmt.Sprintf("%d x %s", qty, nonEmpty(ticketName, models.FallbackText)),
			Price: utils.FormatIDR(base * int64(qty)),
		}}
	}
	return view
}

func nonEmpty(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
