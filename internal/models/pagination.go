package models

// PageMeta is the pagination block of list responses
type PageMeta struct {
	Page  int `json:"page"`
	Take  int `json:"take"`
	Total int `json:"total"`
}

// Page is a pageable list response
type Page[T any] struct {
	Data []T      `json:"data"`
	Meta PageMeta `json:"meta"`
}

// TotalPages returns the number of pages, at least 1
func (m PageMeta) TotalPages() int {
	if m.Take <= 0 || m.Total <= 0 {
		return 1
	}
	return (m.Total + m.Take - 1) / m.Take
}

// HasPrev reports whether there is a page before the current one
func (m PageMeta) HasPrev() bool {
	return m.Page > 1
}

// HasNext reports whether there is a page after the current one
func (m PageMeta) HasNext() bool {
	return m.Page < m.TotalPages()
}

// EventFilter narrows the /events listing
type EventFilter struct {
	Page        int
	Take        int
	Search      string
	CategoryID  int
	OrganizerID int
}
