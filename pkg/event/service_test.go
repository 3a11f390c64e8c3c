package event

import (
	"context"
	"testing"

	"github.com/daybook/daybook/internal/event_bus"
	"github.com/daybook/daybook/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupServiceTest() (*ServiceImpl, *event_bus.EventBus) {
	medium := store.NewStubMedium()
	events := store.NewCollection(medium, "events", Event.WithID)
	bus := event_bus.NewEventBus()
	return NewService(events, bus), bus
}

func TestService_CreateAssignsIdAndPublishes(t *testing.T) {
	service, bus := setupServiceTest()
	ctx := context.Background()

	var saved []Event
	event_bus.SubscribeTyped(bus, event_bus.CalendarEventSaved, func(e event_bus.EventT[Event]) error {
		saved = append(saved, e.Data)
		return nil
	})

	created, err := service.Create(ctx, Event{Title: "Dentist", Date: "2024-06-01", StartTime: "14:00"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	require.Len(t, saved, 1)
	assert.Equal(t, created, saved[0])

	all, err := service.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, created, all[0])
}

func TestService_CreateRejectsEmptyTitle(t *testing.T) {
	service, _ := setupServiceTest()

	_, err := service.Create(context.Background(), Event{Date: "2024-06-01"})
	assert.ErrorIs(t, err, ErrInvalidEvent)
}

func TestService_CreateRejectsBadDate(t *testing.T) {
	service, _ := setupServiceTest()

	_, err := service.Create(context.Background(), Event{Title: "x", Date: "June 1st"})
	assert.ErrorIs(t, err, ErrInvalidEvent)
}

func TestService_CreateRejectsNegativeReminder(t *testing.T) {
	service, _ := setupServiceTest()

	_, err := service.Create(context.Background(), Event{Title: "x", Date: "2024-06-01", ReminderMinutes: -5})
	assert.ErrorIs(t, err, ErrInvalidEvent)
}

func TestService_CreateStripsTimesFromAllDayEvents(t *testing.T) {
	service, _ := setupServiceTest()

	created, err := service.Create(context.Background(), Event{
		Title:           "Holiday",
		Date:            "2024-06-01",
		AllDay:          true,
		StartTime:       "09:00",
		EndTime:         "10:00",
		ReminderMinutes: 15,
	})
	require.NoError(t, err)
	assert.Empty(t, created.StartTime)
	assert.Empty(t, created.EndTime)
	assert.Zero(t, created.ReminderMinutes)
}

func TestService_CreateAllowsUnparsableTimes(t *testing.T) {
	// A bad time degrades to "not positioned, not reminded" downstream;
	// it must not block saving the event.
	service, _ := setupServiceTest()

	created, err := service.Create(context.Background(), Event{
		Title:     "Sloppy input",
		Date:      "2024-06-01",
		StartTime: "half past nine",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
}

func TestService_UpdatePublishes(t *testing.T) {
	service, bus := setupServiceTest()
	ctx := context.Background()

	created, err := service.Create(ctx, Event{Title: "Dentist", Date: "2024-06-01", StartTime: "14:00"})
	require.NoError(t, err)

	var saved []Event
	event_bus.SubscribeTyped(bus, event_bus.CalendarEventSaved, func(e event_bus.EventT[Event]) error {
		saved = append(saved, e.Data)
		return nil
	})

	created.StartTime = "16:00"
	updated, err := service.Update(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, "16:00", updated.StartTime)

	require.Len(t, saved, 1)
	assert.Equal(t, updated, saved[0])
}

func TestService_UpdateUnknownId(t *testing.T) {
	service, _ := setupServiceTest()

	_, err := service.Update(context.Background(), Event{ID: "missing", Title: "x", Date: "2024-06-01"})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestService_DeletePublishesId(t *testing.T) {
	service, bus := setupServiceTest()
	ctx := context.Background()

	created, err := service.Create(ctx, Event{Title: "Dentist", Date: "2024-06-01"})
	require.NoError(t, err)

	var deleted []string
	event_bus.SubscribeTyped(bus, event_bus.CalendarEventDeleted, func(e event_bus.EventT[string]) error {
		deleted = append(deleted, e.Data)
		return nil
	})

	require.NoError(t, service.Delete(ctx, created.ID))
	assert.Equal(t, []string{created.ID}, deleted)
}

func TestService_DeleteUnknownId(t *testing.T) {
	service, _ := setupServiceTest()

	err := service.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestService_ForRange(t *testing.T) {
	service, _ := setupServiceTest()
	ctx := context.Background()

	for _, date := range []string{"2024-05-31", "2024-06-01", "2024-06-07", "2024-06-08"} {
		_, err := service.Create(ctx, Event{Title: "e", Date: date})
		require.NoError(t, err)
	}

	week, err := service.ForRange(ctx, "2024-06-01", "2024-06-07")
	require.NoError(t, err)
	assert.Len(t, week, 2)
}
