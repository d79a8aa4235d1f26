package models

import (
	"math"
	"time"
)

// Review is a post-event rating left by a customer
type Review struct {
	ID        string       `json:"review_id"`
	Rating    Decimal      `json:"rating"`
	Comment   string       `json:"comment"`
	CreatedAt time.Time    `json:"created_at"`
	User      *ReviewUser  `json:"user,omitempty"`
	Event     *ReviewEvent `json:"events,omitempty"`
}

type ReviewUser struct {
	FullName     string    `json:"full_name"`
	ProfileImage string    `json:"profile_image"`
	CreatedAt    time.Time `json:"created_at"`
}

type ReviewEvent struct {
	Title string `json:"title"`
}

// CreateReviewRequest is the body of POST /reviews
type CreateReviewRequest struct {
	TransactionID string `json:"transaction_id"`
	EventID       string `json:"event_id"`
	Rating        int    `json:"rating"`
	Comment       string `json:"comment"`
}

// Stars returns the rating rounded and clamped to 0..5
func (r Review) Stars() int {
	return ClampStars(float64(r.Rating))
}

// ClampStars rounds a rating and clamps it to the 0..5 star scale
func ClampStars(rating float64) int {
	if math.IsNaN(rating) {
		return 0
	}
	n := int(math.Round(rating))
	if n < 0 {
		return 0
	}
	if n > 5 {
		return 5
	}
	return n
}

// AuthorName returns the reviewer's name or "-"
func (r Review) AuthorName() string {
	if r.User != nil && r.User.FullName != "" {
		return r.User.FullName
	}
	return FallbackText
}

// AuthorImage returns the reviewer's avatar or the placeholder image
func (r Review) AuthorImage() string {
	if r.User != nil && r.User.ProfileImage != "" {
		return r.User.ProfileImage
	}
	return FallbackProfileImage
}

// EventTitle returns the reviewed event title or "-"
func (r Review) EventTitle() string {
	if r.Event != nil && r.Event.Title != "" {
		return r.Event.Title
	}
	return FallbackText
}
