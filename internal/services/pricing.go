package services

import "event-storefront/internal/models"

// PointsPerRupiah is how many Rupiah of spend earn one loyalty point
const PointsPerRupiah = 1000

// PriceLine is one ticket type with its selected quantity
type PriceLine struct {
	Ticket    models.Ticket
	Qty       int
	Price     int64
	LineTotal int64
}

// Pricing is the order summary for a purchase draft. All amounts are whole Rupiah.
type Pricing struct {
	Lines            []PriceLine
	Selected         []PriceLine
	Subtotal         int64
	Discount         int64
	Total            int64
	PointsBalance    int64
	UsePoints        bool
	PointsUsed       int64
	TotalAfterPoints int64
	EstimatedPoints  int64
	CanUsePoints     bool
	Promo            *models.AppliedPromo
}

// HasItems reports whether at least one ticket is selected
func (p Pricing) HasItems() bool {
	return len(p.Selected) > 0
}

// ClampQty bounds a quantity to [0, stock]
func ClampQty(qty, stock int) int {
	if stock < 0 {
		stock = 0
	}
	if qty < 0 {
		return 0
	}
	if qty > stock {
		return stock
	}
	return qty
}

// ComputePricing derives the order summary from the tickets on sale, the
// draft's quantities, promo and points toggle, and the customer's balance.
func ComputePricing(tickets []models.Ticket, draft *models.PurchaseDraft, balance int64) Pricing {
	p := Pricing{
		Lines:         make([]PriceLine, 0, len(tickets)),
		PointsBalance: max(0, balance),
	}
	if draft == nil {
		draft = &models.PurchaseDraft{}
	}

	for _, t := range tickets {
		qty := ClampQty(draft.Qty(t.ID), t.Stock)
		price := int64(t.Price)
		line := PriceLine{Ticket: t, Qty: qty, Price: price, LineTotal: int64(qty) * price}
		p.Lines = append(p.Lines, line)
		if qty > 0 {
			p.Selected = append(p.Selected, line)
			p.Subtotal += line.LineTotal
		}
	}

	if draft.Promo != nil {
		p.Promo = draft.Promo
		p.Discount = max(0, min(p.Subtotal, int64(draft.Promo.DiscountAmount)))
	}
	p.Total = max(0, p.Subtotal-p.Discount)

	p.UsePoints = draft.UsePoints
	if p.UsePoints {
		p.PointsUsed = max(0, min(p.PointsBalance, p.Total))
	}
	p.TotalAfterPoints = max(0, p.Total-p.PointsUsed)
	p.EstimatedPoints = p.Total / PointsPerRupiah
	p.CanUsePoints = p.PointsBalance > 0 && p.HasItems() && p.Total > 0

	return p
}
