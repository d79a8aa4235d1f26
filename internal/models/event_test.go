package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmount_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Amount
	}{
		{name: "number", input: `150000`, expected: 150000},
		{name: "decimal string", input: `"150000.00"`, expected: 150000},
		{name: "float number", input: `99999.6`, expected: 100000},
		{name: "empty string", input: `""`, expected: 0},
		{name: "garbage string", input: `"free"`, expected: 0},
		{name: "null", input: `null`, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a Amount = 42
			require.NoError(t, json.Unmarshal([]byte(tt.input), &a))
			assert.Equal(t, tt.expected, a)
		})
	}
}

func TestDecimal_UnmarshalJSON(t *testing.T) {
	var d struct {
		Rating Decimal `json:"rating"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"rating":"4.25"}`), &d))
	assert.InDelta(t, 4.25, float64(d.Rating), 0.0001)

	require.NoError(t, json.Unmarshal([]byte(`{"rating":"n/a"}`), &d))
	assert.Equal(t, Decimal(0), d.Rating)
}

func TestEvent_DecodesAPIShape(t *testing.T) {
	body := `{
		"event_id": "e1",
		"title": "Jazz Night",
		"slug": "jazz-night",
		"start_date": "2026-01-10T12:00:00.000Z",
		"end_date": "2026-01-10T15:00:00.000Z",
		"category_id": 2,
		"organizers": {"organization_name": "Blue Note", "average_rating": "4.5", "total_reviews": 12, "user": {"profile_image": ""}},
		"categories": {"category_name": "Music"},
		"tickets": [{"ticket_id": "t1", "name": "VIP", "price": "250000.00", "stock": 5}]
	}`

	var e Event
	require.NoError(t, json.Unmarshal([]byte(body), &e))

	assert.Equal(t, "Blue Note", e.OrganizerName())
	assert.Equal(t, FallbackProfileImage, e.OrganizerImage())
	assert.Equal(t, FallbackEventImage, e.ImageURL())
	assert.Equal(t, "Music", e.CategoryName())
	require.Len(t, e.Tickets, 1)
	assert.Equal(t, Amount(250000), e.Tickets[0].Price)

	ticket, ok := e.FindTicket("t1")
	require.True(t, ok)
	assert.Equal(t, "VIP", ticket.Name)

	_, ok = e.FindTicket("missing")
	assert.False(t, ok)
}

func TestEvent_Fallbacks(t *testing.T) {
	e := &Event{}
	assert.Equal(t, FallbackOrganizerName, e.OrganizerName())
	assert.Equal(t, FallbackText, e.CategoryName())
	assert.Equal(t, 0, e.OrganizerRef())

	e.OrganizerID = 7
	assert.Equal(t, 7, e.OrganizerRef())
	e.Organizer = &EventOrganizer{ID: 9}
	assert.Equal(t, 9, e.OrganizerRef())
}

func TestCategory_ImageURL(t *testing.T) {
	tests := []struct {
		field    string
		expected string
	}{
		{field: "https://cdn.example.com/music.png", expected: "https://cdn.example.com/music.png"},
		{field: "/images/sport.png", expected: "/images/sport.png"},
		{field: "music", expected: FallbackEventImage},
		{field: "", expected: FallbackEventImage},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			assert.Equal(t, tt.expected, Category{Field: tt.field}.ImageURL())
		})
	}
}

func TestCategory_DisplayName(t *testing.T) {
	assert.Equal(t, "Music", Category{ID: 1, Name: "Music"}.DisplayName())
	assert.Equal(t, "Category #3", Category{ID: 3}.DisplayName())
}

func TestPageMeta(t *testing.T) {
	m := PageMeta{Page: 1, Take: 3, Total: 7}
	assert.Equal(t, 3, m.TotalPages())
	assert.False(t, m.HasPrev())
	assert.True(t, m.HasNext())

	m.Page = 3
	assert.True(t, m.HasPrev())
	assert.False(t, m.HasNext())

	assert.Equal(t, 1, PageMeta{}.TotalPages())
}
