package domain

import "strings"

// EventStatus is the lifecycle state of an event
type EventStatus string

// EventStatus constants
const (
	StatusUpcoming  EventStatus = "upcoming"
	StatusOngoing   EventStatus = "ongoing"
	StatusCompleted EventStatus = "completed"
	StatusCancelled EventStatus = "cancelled"
)

// Locale selects the language of user-facing labels
type Locale string

// Supported locales
const (
	LocaleID Locale = "id"
	LocaleEN Locale = "en"
)

var statusLabels = map[Locale]map[EventStatus]string{
	LocaleID: {
		StatusUpcoming:  "Akan Datang",
		StatusOngoing:   "Berlangsung",
		StatusCompleted: "Selesai",
		StatusCancelled: "Dibatalkan",
	},
	LocaleEN: {
		StatusUpcoming:  "Upcoming",
		StatusOngoing:   "Ongoing",
		StatusCompleted: "Completed",
		StatusCancelled: "Cancelled",
	},
}

// AllStatuses returns every known status in display order
func AllStatuses() []EventStatus {
	return []EventStatus{StatusUpcoming, StatusOngoing, StatusCompleted, StatusCancelled}
}

// ParseEventStatus maps a raw value to a status, falling back to upcoming
func ParseEventStatus(value string) EventStatus {
	s := EventStatus(strings.ToLower(strings.TrimSpace(value)))
	if s.Known() {
		return s
	}
	return StatusUpcoming
}

// ParseLocale returns the matching locale, defaulting to Indonesian
func ParseLocale(value string) Locale {
	if Locale(strings.ToLower(value)) == LocaleEN {
		return LocaleEN
	}
	return LocaleID
}

// Known reports whether s is one of the four defined statuses
func (s EventStatus) Known() bool {
	switch s {
	case StatusUpcoming, StatusOngoing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Label returns the human readable label; unknown statuses render raw
func (s EventStatus) Label(locale Locale) string {
	labels, ok := statusLabels[locale]
	if !ok {
		labels = statusLabels[LocaleID]
	}
	if label, ok := labels[s]; ok {
		return label
	}
	return string(s)
}

func (s EventStatus) String() string {
	return string(s)
}
