package event

import "errors"

var ErrInvalidEvent = errors.New("invalid event")

// Event is a calendar event on a single day. Times are local wall-clock
// strings; there is no timezone handling anywhere in the model.
//
// An all-day event carries no start/end time and no reminder. A timed event
// needs StartTime to be positioned on the grid or reminded; a missing or
// inverted EndTime resolves to one hour after the start.
type Event struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	// Date is the calendar day in YYYY-MM-DD format.
	Date string `json:"date"`
	// StartTime and EndTime are HH:MM, 24h clock.
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`
	AllDay    bool   `json:"allDay"`
	// ReminderMinutes is how many minutes before StartTime to notify.
	// Zero means no reminder.
	ReminderMinutes int `json:"reminderMinutes,omitempty"`
}

func (e Event) EntityID() string   { return e.ID }
func (e Event) EntityDate() string { return e.Date }

// WithID returns a copy of the event with the id set. Used by the store
// collection at insertion time.
func (e Event) WithID(id string) Event {
	e.ID = id
	return e
}
