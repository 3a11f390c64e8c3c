package event_bus

// Entity mutation events. Saved covers both create and edit: subscribers
// recompute derived state per id either way.
const (
	// CalendarEventSaved carries an event.Event payload.
	CalendarEventSaved EventType = "calendar.event.saved"
	// CalendarEventDeleted carries the deleted event id as a string payload.
	CalendarEventDeleted EventType = "calendar.event.deleted"
)
