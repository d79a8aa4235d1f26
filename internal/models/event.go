package models

import (
	"strconv"
	"strings"
	"time"
)

const (
	FallbackEventImage    = "/thumbnail.jpeg"
	FallbackProfileImage  = "/profpic-pengganti.png"
	FallbackOrganizerName = "Unknown Organizer"
	FallbackEventTitle    = "Unknown Event"
	FallbackText          = "-"
)

// Event represents an event as returned by the events API
type Event struct {
	ID          string          `json:"event_id"`
	Title       string          `json:"title"`
	Slug        string          `json:"slug"`
	Description string          `json:"description"`
	StartDate   time.Time       `json:"start_date"`
	EndDate     time.Time       `json:"end_date"`
	Location    string          `json:"location"`
	Image       string          `json:"image"`
	CategoryID  int             `json:"category_id"`
	OrganizerID int             `json:"organizer_id,omitempty"`
	Organizer   *EventOrganizer `json:"organizers,omitempty"`
	Category    *EventCategory  `json:"categories,omitempty"`
	Tickets     []Ticket        `json:"tickets,omitempty"`
}

// EventOrganizer is the organizer relation embedded in an event
type EventOrganizer struct {
	ID               int            `json:"organizer_id,omitempty"`
	OrganizationName string         `json:"organization_name"`
	AverageRating    Decimal        `json:"average_rating"`
	TotalReviews     int            `json:"total_reviews"`
	User             *OrganizerUser `json:"user,omitempty"`
}

// OrganizerUser is the account behind an organizer profile
type OrganizerUser struct {
	ProfileImage string `json:"profile_image"`
}

// EventCategory is the category relation embedded in an event
type EventCategory struct {
	Name string `json:"category_name"`
}

// Ticket is one ticket type offered for an event
type Ticket struct {
	ID          string `json:"ticket_id"`
	Name        string `json:"name"`
	Price       Amount `json:"price"`
	Stock       int    `json:"stock"`
	Description string `json:"description"`
}

// Category is a browsable event category
type Category struct {
	ID    int    `json:"category_id"`
	Name  string `json:"category_name"`
	Field string `json:"category_field"`
}

// ImageURL returns the category image, falling back to the default thumbnail
// unless category_field holds an absolute or root-relative URL.
func (c Category) ImageURL() string {
	field := strings.TrimSpace(c.Field)
	if strings.HasPrefix(field, "http") || strings.HasPrefix(field, "/") {
		return field
	}
	return FallbackEventImage
}

// DisplayName returns the category name or "Category #<id>"
func (c Category) DisplayName() string {
	if name := strings.TrimSpace(c.Name); name != "" {
		return name
	}
	return "Category #" + strconv.Itoa(c.ID)
}

// ImageURL returns the event image or the default thumbnail
func (e Event) ImageURL() string {
	if strings.TrimSpace(e.Image) != "" {
		return e.Image
	}
	return FallbackEventImage
}

// OrganizerName returns the organizer's display name
func (e Event) OrganizerName() string {
	if e.Organizer != nil && strings.TrimSpace(e.Organizer.OrganizationName) != "" {
		return e.Organizer.OrganizationName
	}
	return FallbackOrganizerName
}

// OrganizerImage returns the organizer's profile image or the placeholder avatar
func (e Event) OrganizerImage() string {
	if e.Organizer != nil && e.Organizer.User != nil && strings.TrimSpace(e.Organizer.User.ProfileImage) != "" {
		return e.Organizer.User.ProfileImage
	}
	return FallbackProfileImage
}

// OrganizerRef returns the organizer id used to link to the organizer page
func (e Event) OrganizerRef() int {
	if e.Organizer != nil && e.Organizer.ID > 0 {
		return e.Organizer.ID
	}
	return e.OrganizerID
}

// CategoryName returns the embedded category name or "-"
func (e Event) CategoryName() string {
	if e.Category != nil && strings.TrimSpace(e.Category.Name) != "" {
		return e.Category.Name
	}
	return FallbackText
}

// FindTicket looks up a ticket type by id
func (e Event) FindTicket(id string) (*Ticket, bool) {
	for i := range e.Tickets {
		if e.Tickets[i].ID == id {
			return &e.Tickets[i], true
		}
	}
	return nil, false
}
