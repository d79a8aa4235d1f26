package models

// Upload is a file received from a form and forwarded to the API
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Empty reports whether no file was provided
func (u *Upload) Empty() bool {
	return u == nil || len(u.Data) == 0
}

// TicketTypeInput is one ticket type row of the create-event form
type TicketTypeInput struct {
	Name  string `json:"name" form:"name" validate:"required"`
	Price int64  `json:"price" form:"price" validate:"gte=0"`
	Quota int    `json:"quota" form:"quota" validate:"gte=1"`
}

// CreateEventForm is the organizer's create-event submission
type CreateEventForm struct {
	Title       string            `form:"title" validate:"required,min=5"`
	CategoryID  int               `form:"category_id" validate:"gte=1"`
	Description string            `form:"description" validate:"required,min=10"`
	StartDate   string            `form:"start_date" validate:"required"`
	EndDate     string            `form:"end_date" validate:"required"`
	Location    string            `form:"location" validate:"required"`
	Image       *Upload           `form:"image" validate:"required"`
	Tickets     []TicketTypeInput `form:"tickets" validate:"min=1,dive"`
}

// CreatePromotionForm is the organizer's create-promotion submission
type CreatePromotionForm struct {
	Code           string  `form:"code" validate:"required"`
	DiscountName   string  `form:"discount_name" validate:"required"`
	DiscountAmount int64   `form:"discount_amount" validate:"gte=1"`
	Quota          int     `form:"quota" validate:"gte=1"`
	ExpiresAt      string  `form:"expires_at" validate:"required"`
	EventID        string  `form:"event_id" validate:"required,uuid"`
	Image          *Upload `form:"image" validate:"required"`
}

// ReviewForm is a post-event review submission
type ReviewForm struct {
	TransactionID string `form:"transaction_id" validate:"required,uuid"`
	EventID       string `form:"event_id" validate:"required,uuid"`
	Rating        int    `form:"rating" validate:"gte=1,lte=5"`
	Comment       string `form:"comment" validate:"min=3"`
}

// LoginForm is the storefront login submission
type LoginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}
