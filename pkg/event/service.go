package event

import (
	"context"
	"fmt"

	"github.com/daybook/daybook/internal/event_bus"
	"github.com/daybook/daybook/internal/utils"
	"github.com/daybook/daybook/pkg/store"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	List(ctx context.Context) ([]Event, error)
	ForDay(ctx context.Context, date string) ([]Event, error)
	ForRange(ctx context.Context, from, to string) ([]Event, error)
	Create(ctx context.Context, event Event) (Event, error)
	Update(ctx context.Context, event Event) (Event, error)
	Delete(ctx context.Context, id string) error
}

// ServiceImpl owns the persisted event collection. Every mutation is
// announced on the bus so the reminder registry for that id is recomputed
// and never left stale.
type ServiceImpl struct {
	events *store.Collection[Event]
	bus    *event_bus.EventBus
}

func NewService(events *store.Collection[Event], bus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{events: events, bus: bus}
}

func (s *ServiceImpl) List(ctx context.Context) ([]Event, error) {
	return s.events.List(ctx)
}

func (s *ServiceImpl) ForDay(ctx context.Context, date string) ([]Event, error) {
	if _, err := utils.ParseDay(date); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}
	return s.events.FindByDate(ctx, date)
}

func (s *ServiceImpl) ForRange(ctx context.Context, from, to string) ([]Event, error) {
	for _, date := range []string{from, to} {
		if _, err := utils.ParseDay(date); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
		}
	}
	return s.events.FindByDateRange(ctx, from, to)
}

func (s *ServiceImpl) Create(ctx context.Context, event Event) (Event, error) {
	normalized, err := normalize(event)
	if err != nil {
		return Event{}, err
	}

	stored, err := s.events.Add(ctx, normalized)
	if err != nil {
		return Event{}, fmt.Errorf("failed to store event: %w", err)
	}

	s.publish(ctx, event_bus.CalendarEventSaved, stored)
	return stored, nil
}

func (s *ServiceImpl) Update(ctx context.Context, event Event) (Event, error) {
	normalized, err := normalize(event)
	if err != nil {
		return Event{}, err
	}

	updated, err := s.events.Update(ctx, normalized)
	if err != nil {
		return Event{}, fmt.Errorf("failed to update event: %w", err)
	}

	s.publish(ctx, event_bus.CalendarEventSaved, updated)
	return updated, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.events.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	s.publish(ctx, event_bus.CalendarEventDeleted, id)
	return nil
}

func (s *ServiceImpl) publish(ctx context.Context, eventType event_bus.EventType, data any) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(event_bus.NewEvent(ctx, eventType, data)); err != nil {
		// Subscriber failures must not undo a completed save.
		log.Errorf("failed to publish %s: %v", eventType, err)
	}
}

// normalize validates the invariant fields and strips time-of-day data from
// all-day events. Start/end times are deliberately not validated here: an
// unparsable time degrades to "not positioned, not reminded" downstream and
// must never block saving the event itself.
func normalize(event Event) (Event, error) {
	if event.Title == "" {
		return Event{}, fmt.Errorf("%w: title must not be empty", ErrInvalidEvent)
	}
	if _, err := utils.ParseDay(event.Date); err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}
	if event.ReminderMinutes < 0 {
		return Event{}, fmt.Errorf("%w: reminderMinutes must be positive", ErrInvalidEvent)
	}
	if event.AllDay {
		event.StartTime = ""
		event.EndTime = ""
		event.ReminderMinutes = 0
	}
	return event, nil
}
