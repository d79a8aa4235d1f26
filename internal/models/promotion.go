package models

import (
	"strings"
	"time"
)

// Promotion is a coupon published by an organizer for one of their events
type Promotion struct {
	ID             string          `json:"coupon_id"`
	Code           string          `json:"code"`
	DiscountName   string          `json:"discount_name"`
	DiscountAmount Amount          `json:"discount_amount"`
	Quota          int             `json:"quota,omitempty"`
	ExpiresAt      time.Time       `json:"expires_at"`
	Image          string          `json:"image"`
	EventID        string          `json:"event_id"`
	Event          *PromotionEvent `json:"events,omitempty"`
}

// PromotionEvent is the event relation embedded in a promotion
type PromotionEvent struct {
	Title     string    `json:"title"`
	Slug      string    `json:"slug,omitempty"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// ImageURL returns the promotion banner or the default thumbnail
func (p Promotion) ImageURL() string {
	if strings.TrimSpace(p.Image) != "" {
		return p.Image
	}
	return FallbackEventImage
}

// EventTitle returns the promoted event's title or "Unknown Event"
func (p Promotion) EventTitle() string {
	if p.Event != nil && strings.TrimSpace(p.Event.Title) != "" {
		return p.Event.Title
	}
	return FallbackEventTitle
}

// AppliedPromo is a promotion accepted by /promotions/validate for an event
type AppliedPromo struct {
	CouponID       string    `json:"coupon_id"`
	Code           string    `json:"code"`
	DiscountName   string    `json:"discount_name"`
	DiscountAmount Amount    `json:"discount_amount"`
	ExpiresAt      time.Time `json:"expires_at"`
	EventID        string    `json:"event_id"`
}
