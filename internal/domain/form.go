package domain

import (
	"strconv"
	"strings"
)

// EventForm holds the raw text of the create/edit form
type EventForm struct {
	Title       string
	Date        string
	Time        string
	Location    string
	Description string
	Capacity    string
	Status      EventStatus
}

// ParseCapacity returns the capacity when text is a positive integer, nil otherwise
func ParseCapacity(text string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n <= 0 {
		return nil
	}
	return &n
}

// OptionalText returns nil for blank input
func OptionalText(text string) *string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return &text
}

// FormFromEvent pre-fills the form from an existing event
func FormFromEvent(e *Event) EventForm {
	if e == nil {
		return EventForm{Status: StatusUpcoming}
	}
	form := EventForm{
		Title:    e.Title,
		Date:     e.Date,
		Time:     e.Time,
		Location: e.Location,
		Status:   e.Status,
	}
	if e.Description != nil {
		form.Description = *e.Description
	}
	if e.Capacity != nil {
		form.Capacity = strconv.Itoa(*e.Capacity)
	}
	if form.Status == "" {
		form.Status = StatusUpcoming
	}
	return form
}

// ToEvent builds the event to submit; draft supplies the id in edit mode
func (f EventForm) ToEvent(draft *Event) Event {
	status := f.Status
	if status == "" {
		status = StatusUpcoming
	}
	e := Event{
		Title:       f.Title,
		Date:        f.Date,
		Time:        f.Time,
		Location:    f.Location,
		Description: OptionalText(f.Description),
		Capacity:    ParseCapacity(f.Capacity),
		Status:      status,
	}
	if draft != nil {
		e.ID = cloneString(draft.ID)
	}
	return e
}
