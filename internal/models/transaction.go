package models

import "time"

// TransactionStatus is the lifecycle state of a purchase, owned by the API
type TransactionStatus string

const (
	StatusWaitingForPayment      TransactionStatus = "WAITING_FOR_PAYMENT"
	StatusWaitingForConfirmation TransactionStatus = "WAITING_FOR_CONFIRMATION"
	StatusPaid                   TransactionStatus = "PAID"
	StatusReject                 TransactionStatus = "REJECT"
	StatusExpired                TransactionStatus = "EXPIRED"
	StatusCanceled               TransactionStatus = "CANCELED"
	StatusWaitingForReview       TransactionStatus = "WAITING_FOR_REVIEW"
	StatusReviewDone             TransactionStatus = "REVIEW_DONE"

	// StatusDraft marks a checkout that has not been sent to the API yet
	StatusDraft TransactionStatus = "DRAFT"
)

// Transaction is a ticket purchase as returned by the transactions API
type Transaction struct {
	ID                   string             `json:"transaction_id"`
	Status               TransactionStatus  `json:"status"`
	PaymentDeadline      *time.Time         `json:"payment_deadline,omitempty"`
	ConfirmationDeadline *time.Time         `json:"confirmation_deadline,omitempty"`
	PaymentProof         *string            `json:"paymentProof,omitempty"`
	EventID              string             `json:"event_id,omitempty"`
	TicketID             string             `json:"ticket_id,omitempty"`
	Qty                  int                `json:"qty,omitempty"`
	TotalPrice           Amount             `json:"total_price,omitempty"`
	PointsUsed           Amount             `json:"points_used,omitempty"`
	CreatedAt            *time.Time         `json:"created_at,omitempty"`
	Event                *TransactionEvent  `json:"events,omitempty"`
	Ticket               *TransactionTicket `json:"tickets,omitempty"`
	Computed             *TransactionTotals `json:"computed,omitempty"`
}

// TransactionEvent is the event relation embedded in a transaction
type TransactionEvent struct {
	EventID     string     `json:"event_id,omitempty"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	Image       string     `json:"image,omitempty"`
	OrganizerID int        `json:"organizer_id,omitempty"`
}

// TransactionTicket is the ticket relation embedded in a transaction
type TransactionTicket struct {
	Name  string `json:"name"`
	Price Amount `json:"price,omitempty"`
}

// TransactionTotals are the amounts computed by the API at creation time
type TransactionTotals struct {
	Qty        int    `json:"qty"`
	BasePrice  Amount `json:"base_price"`
	TotalPrice Amount `json:"total_price"`
}

// CreateTransactionRequest is the body of POST /transactions
type CreateTransactionRequest struct {
	EventID    string `json:"event_id"`
	TicketID   string `json:"ticket_id"`
	Qty        int    `json:"qty"`
	CouponID   string `json:"coupon_id,omitempty"`
	PointsUsed int64  `json:"points_used"`
}

// HasProof reports whether a payment proof has been uploaded
func (t Transaction) HasProof() bool {
	return t.PaymentProof != nil && *t.PaymentProof != ""
}

// EventTitle returns the embedded event title or "Unknown Event"
func (t Transaction) EventTitle() string {
	if t.Event != nil && t.Event.Title != "" {
		return t.Event.Title
	}
	return FallbackEventTitle
}

// ResolvedEventID returns the event id from the row or its event relation
func (t Transaction) ResolvedEventID() string {
	if t.EventID != "" {
		return t.EventID
	}
	if t.Event != nil {
		return t.Event.EventID
	}
	return ""
}
