package reminder

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/daybook/daybook/internal/utils"
	"github.com/daybook/daybook/pkg/event"
	log "github.com/sirupsen/logrus"
)

// ErrInvalidTimeSpec marks an event whose date/time strings cannot be
// combined into a trigger instant. It is logged per event and never aborts
// a batch or blocks saving the event itself.
var ErrInvalidTimeSpec = errors.New("invalid time spec")

// Scheduler keeps at most one armed reminder timer per event id and fires a
// notification at startTime minus reminderMinutes. The registry is derived,
// ephemeral state: nothing survives a restart, RescheduleAll is the only
// recovery path and the caller invokes it.
type Scheduler struct {
	clock       utils.Clock
	sink        NotificationSink
	permissions *Permissions

	mu      sync.Mutex
	pending map[string]*pendingReminder
}

type pendingReminder struct {
	timer utils.Timer
}

func NewScheduler(clock utils.Clock, sink NotificationSink, permissions *Permissions) *Scheduler {
	return &Scheduler{
		clock:       clock,
		sink:        sink,
		permissions: permissions,
		pending:     make(map[string]*pendingReminder),
	}
}

// Schedule recomputes the registry entry for the event: cancel first, then
// arm a fresh timer when the event still requests a future reminder. Events
// that are all-day, have no reminder, or no start time only get the cleanup,
// which covers the reminder-removed edit case.
func (s *Scheduler) Schedule(e event.Event) {
	if e.AllDay || e.ReminderMinutes <= 0 || e.StartTime == "" {
		s.Cancel(e.ID)
		return
	}

	if s.permissions != nil && s.permissions.Denied() {
		log.Debugf("notifications denied, not scheduling reminder for event %s", e.ID)
		s.Cancel(e.ID)
		return
	}

	trigger, err := triggerInstant(e)
	if err != nil {
		log.Warnf("cannot schedule reminder for event %s: %v", e.ID, err)
		s.Cancel(e.ID)
		return
	}

	now := s.clock.Now()
	if !trigger.After(now) {
		// Never fire reminders for times already passed.
		s.Cancel(e.ID)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if previous, ok := s.pending[e.ID]; ok {
		previous.timer.Stop()
		delete(s.pending, e.ID)
	}

	// The delay is computed once from the authoritative trigger instant.
	reg := &pendingReminder{}
	reg.timer = s.clock.AfterFunc(trigger.Sub(now), func() {
		s.fire(e, reg)
	})
	s.pending[e.ID] = reg
	log.Debugf("reminder for event %s armed at %s", e.ID, trigger.Format(time.RFC3339))
}

// Cancel stops and removes the pending timer for the id. Safe to call for
// ids that were never scheduled; once it returns the callback will not fire.
func (s *Scheduler) Cancel(eventID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if reg, ok := s.pending[eventID]; ok {
		reg.timer.Stop()
		delete(s.pending, eventID)
	}
}

// RescheduleAll arms reminders for every given event, typically at process
// start. Schedule's cancel-first semantics make this safe to repeat; a
// malformed event is skipped without affecting the others.
func (s *Scheduler) RescheduleAll(events []event.Event) {
	for _, e := range events {
		s.Schedule(e)
	}
}

// Stop cancels every pending timer. Used at shutdown and in tests.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, reg := range s.pending {
		reg.timer.Stop()
		delete(s.pending, id)
	}
}

// Pending reports whether the id currently has an armed timer.
func (s *Scheduler) Pending(eventID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pending[eventID]
	return ok
}

func (s *Scheduler) fire(e event.Event, reg *pendingReminder) {
	s.mu.Lock()
	if current, ok := s.pending[e.ID]; !ok || current != reg {
		// Cancelled or replaced after this callback was already queued.
		s.mu.Unlock()
		return
	}
	// A fired timer is not pending anymore.
	delete(s.pending, e.ID)
	s.mu.Unlock()

	// The notification tag equals the event id so the platform replaces a
	// re-fired notification instead of stacking a duplicate.
	if err := s.sink.Show(e.Title, notificationBody(e), e.ID); err != nil {
		log.Errorf("failed to show notification for event %s: %v", e.ID, err)
	}
}

func triggerInstant(e event.Event) (time.Time, error) {
	start, err := utils.CombineDayTime(e.Date, e.StartTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidTimeSpec, err)
	}
	return start.Add(-time.Duration(e.ReminderMinutes) * time.Minute), nil
}

func notificationBody(e event.Event) string {
	body := fmt.Sprintf("Starts at %s", e.StartTime)
	if e.Description != "" {
		body += "\n" + e.Description
	}
	return body
}
