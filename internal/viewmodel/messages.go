package viewmodel

import "github.com/prohmpiriya/event-management/internal/domain"

// Fallback error messages when a failure carries none
const (
	MsgLoadEvents       = "Failed to load events"
	MsgEventNotFound    = "Event not found"
	MsgLoadEventsByDate = "Failed to load events for this date"
	MsgFilterEvents     = "Failed to filter events"
	MsgLoadStatistics   = "Failed to load statistics"
	MsgCreateEvent      = "Failed to create event"
	MsgUpdateEvent      = "Failed to update event"
	MsgDeleteEvent      = "Failed to delete event"
)

type successKey int

const (
	successCreated successKey = iota
	successUpdated
	successDeleted
)

var successMessages = map[domain.Locale]map[successKey]string{
	domain.LocaleID: {
		successCreated: "Event berhasil dibuat!",
		successUpdated: "Event berhasil diupdate!",
		successDeleted: "Event berhasil dihapus!",
	},
	domain.LocaleEN: {
		successCreated: "Event created successfully!",
		successUpdated: "Event updated successfully!",
		successDeleted: "Event deleted successfully!",
	},
}

func successMessage(locale domain.Locale, key successKey) string {
	msgs, ok := successMessages[locale]
	if !ok {
		msgs = successMessages[domain.LocaleID]
	}
	return msgs[key]
}
