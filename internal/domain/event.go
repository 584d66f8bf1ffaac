package domain

import "strings"

// Event represents a scheduled event managed by the remote service
type Event struct {
	ID          *string     `json:"id,omitempty"`
	Title       string      `json:"title" validate:"required"`
	Date        string      `json:"date" validate:"required,datetime=2006-01-02"`
	Time        string      `json:"time" validate:"required,datetime=15:04"`
	Location    string      `json:"location" validate:"required"`
	Description *string     `json:"description,omitempty"`
	Capacity    *int        `json:"capacity,omitempty" validate:"omitempty,gt=0"`
	Status      EventStatus `json:"status" validate:"required,oneof=upcoming ongoing completed cancelled"`
	CreatedAt   *string     `json:"created_at,omitempty"`
	UpdatedAt   *string     `json:"updated_at,omitempty"`
}

// HasID reports whether the event carries a server-assigned id
func (e Event) HasID() bool {
	return e.ID != nil && strings.TrimSpace(*e.ID) != ""
}

// IDValue returns the id or an empty string
func (e Event) IDValue() string {
	if e.ID == nil {
		return ""
	}
	return *e.ID
}

// IsValid checks that all required fields are non-blank
func (e Event) IsValid() bool {
	return strings.TrimSpace(e.Title) != "" &&
		strings.TrimSpace(e.Date) != "" &&
		strings.TrimSpace(e.Time) != "" &&
		strings.TrimSpace(e.Location) != "" &&
		strings.TrimSpace(string(e.Status)) != ""
}

// StatusLabel returns the display label of the event status
func (e Event) StatusLabel(locale Locale) string {
	return e.Status.Label(locale)
}

// Clone returns a deep copy of the event
func (e *Event) Clone() *Event {
	if e == nil {
		return nil
	}
	c := *e
	c.ID = cloneString(e.ID)
	c.Description = cloneString(e.Description)
	c.CreatedAt = cloneString(e.CreatedAt)
	c.UpdatedAt = cloneString(e.UpdatedAt)
	if e.Capacity != nil {
		v := *e.Capacity
		c.Capacity = &v
	}
	return &c
}

// WithID returns a copy of the event carrying the given id
func (e Event) WithID(id string) Event {
	c := *e.Clone()
	c.ID = &id
	return c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
