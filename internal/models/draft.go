package models

// PurchaseDraft is the in-progress purchase for a single event, kept in the
// session between requests until a transaction is created.
type PurchaseDraft struct {
	EventID    string         `json:"event_id"`
	Quantities map[string]int `json:"quantities"`
	PromoCode  string         `json:"promo_code"`
	Promo      *AppliedPromo  `json:"promo,omitempty"`
	PromoError string         `json:"promo_error,omitempty"`
	UsePoints  bool           `json:"use_points"`
}

// NewPurchaseDraft returns an empty draft for an event
func NewPurchaseDraft(eventID string) *PurchaseDraft {
	return &PurchaseDraft{
		EventID:    eventID,
		Quantities: make(map[string]int),
	}
}

// Qty returns the selected quantity for a ticket type
func (d *PurchaseDraft) Qty(ticketID string) int {
	if d.Quantities == nil {
		return 0
	}
	return d.Quantities[ticketID]
}

// SetQty stores a quantity, dropping zero entries
func (d *PurchaseDraft) SetQty(ticketID string, qty int) {
	if d.Quantities == nil {
		d.Quantities = make(map[string]int)
	}
	if qty <= 0 {
		delete(d.Quantities, ticketID)
		return
	}
	d.Quantities[ticketID] = qty
}
