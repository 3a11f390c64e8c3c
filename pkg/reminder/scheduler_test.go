package reminder

import (
	"testing"
	"time"

	"github.com/daybook/daybook/internal/utils"
	"github.com/daybook/daybook/pkg/event"
	"github.com/daybook/daybook/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSchedulerTest(now time.Time) (*Scheduler, *utils.MockClock, *StubSink) {
	clock := utils.NewMockClock(now)
	sink := NewStubSink()
	permissions := NewPermissions(store.NewStubMedium(), StaticPrompter{Allow: true})
	scheduler := NewScheduler(clock, sink, permissions)
	return scheduler, clock, sink
}

func localTime(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, time.Local)
}

func TestScheduler_FiresAtTriggerInstant(t *testing.T) {
	scheduler, clock, sink := setupSchedulerTest(localTime(2024, time.June, 1, 13, 0))

	scheduler.Schedule(event.Event{
		ID:              "ev-1",
		Title:           "Dentist",
		Description:     "Bring insurance card",
		Date:            "2024-06-01",
		StartTime:       "14:00",
		ReminderMinutes: 15,
	})

	require.True(t, scheduler.Pending("ev-1"))
	require.Equal(t, 1, clock.PendingTimers())

	// Nothing fires before the trigger instant, 45 minutes away.
	clock.Advance(44 * time.Minute)
	assert.Empty(t, sink.Shown())

	clock.Advance(1 * time.Minute)
	shown := sink.Shown()
	require.Len(t, shown, 1)
	assert.Equal(t, "Dentist", shown[0].Title)
	assert.Contains(t, shown[0].Body, "14:00")
	assert.Contains(t, shown[0].Body, "Bring insurance card")
	assert.Equal(t, "ev-1", shown[0].Tag)

	// A fired timer is not pending anymore.
	assert.False(t, scheduler.Pending("ev-1"))
}

func TestScheduler_PastTriggerIsNotArmed(t *testing.T) {
	scheduler, clock, sink := setupSchedulerTest(localTime(2024, time.June, 1, 14, 30))

	scheduler.Schedule(event.Event{
		ID:              "ev-1",
		Title:           "Dentist",
		Date:            "2024-06-01",
		StartTime:       "14:00",
		ReminderMinutes: 15,
	})

	assert.False(t, scheduler.Pending("ev-1"))
	clock.Advance(24 * time.Hour)
	assert.Empty(t, sink.Shown())
}

func TestScheduler_RescheduleReplacesTimer(t *testing.T) {
	scheduler, clock, sink := setupSchedulerTest(localTime(2024, time.June, 1, 12, 0))

	e := event.Event{
		ID:              "ev-1",
		Title:           "Dentist",
		Date:            "2024-06-01",
		StartTime:       "14:00",
		ReminderMinutes: 15,
	}
	scheduler.Schedule(e)

	e.StartTime = "16:00"
	scheduler.Schedule(e)

	assert.Equal(t, 1, clock.PendingTimers())

	// Past the first trigger instant: nothing may fire.
	clock.SetNow(localTime(2024, time.June, 1, 14, 0))
	assert.Empty(t, sink.Shown())

	// The second computed time fires exactly once.
	clock.SetNow(localTime(2024, time.June, 1, 15, 45))
	shown := sink.Shown()
	require.Len(t, shown, 1)
	assert.Equal(t, "ev-1", shown[0].Tag)
}

func TestScheduler_CancelStopsPendingTimer(t *testing.T) {
	scheduler, clock, sink := setupSchedulerTest(localTime(2024, time.June, 1, 12, 0))

	scheduler.Schedule(event.Event{
		ID:              "ev-1",
		Title:           "Dentist",
		Date:            "2024-06-01",
		StartTime:       "14:00",
		ReminderMinutes: 15,
	})
	require.True(t, scheduler.Pending("ev-1"))

	scheduler.Cancel("ev-1")
	assert.False(t, scheduler.Pending("ev-1"))

	clock.Advance(24 * time.Hour)
	assert.Empty(t, sink.Shown())
}

func TestScheduler_CancelUnknownIdIsNoOp(t *testing.T) {
	scheduler, _, _ := setupSchedulerTest(localTime(2024, time.June, 1, 12, 0))

	scheduler.Cancel("never-scheduled")
	assert.False(t, scheduler.Pending("never-scheduled"))
}

func TestScheduler_ScheduleCleansUpWhenReminderRemoved(t *testing.T) {
	scheduler, clock, sink := setupSchedulerTest(localTime(2024, time.June, 1, 12, 0))

	e := event.Event{
		ID:              "ev-1",
		Title:           "Dentist",
		Date:            "2024-06-01",
		StartTime:       "14:00",
		ReminderMinutes: 15,
	}
	scheduler.Schedule(e)
	require.True(t, scheduler.Pending("ev-1"))

	// Edit removes the reminder; the stale registry entry must go too.
	e.ReminderMinutes = 0
	scheduler.Schedule(e)
	assert.False(t, scheduler.Pending("ev-1"))

	clock.Advance(24 * time.Hour)
	assert.Empty(t, sink.Shown())
}

func TestScheduler_AllDayEventIsNeverArmed(t *testing.T) {
	scheduler, _, _ := setupSchedulerTest(localTime(2024, time.June, 1, 12, 0))

	scheduler.Schedule(event.Event{
		ID:              "ev-1",
		Title:           "Holiday",
		Date:            "2024-06-02",
		AllDay:          true,
		ReminderMinutes: 15,
	})

	assert.False(t, scheduler.Pending("ev-1"))
}

func TestScheduler_MalformedTimeSpecIsSkipped(t *testing.T) {
	scheduler, clock, sink := setupSchedulerTest(localTime(2024, time.June, 1, 12, 0))

	scheduler.Schedule(event.Event{
		ID:              "ev-bad",
		Title:           "Broken",
		Date:            "not-a-date",
		StartTime:       "14:00",
		ReminderMinutes: 15,
	})

	assert.False(t, scheduler.Pending("ev-bad"))
	clock.Advance(24 * time.Hour)
	assert.Empty(t, sink.Shown())
}

func TestScheduler_RescheduleAllSkipsMalformedEvents(t *testing.T) {
	scheduler, clock, sink := setupSchedulerTest(localTime(2024, time.June, 1, 12, 0))

	scheduler.RescheduleAll([]event.Event{
		{ID: "ev-bad", Title: "Broken", Date: "2024-13-99", StartTime: "14:00", ReminderMinutes: 15},
		{ID: "ev-ok", Title: "Dentist", Date: "2024-06-01", StartTime: "14:00", ReminderMinutes: 15},
	})

	assert.False(t, scheduler.Pending("ev-bad"))
	require.True(t, scheduler.Pending("ev-ok"))

	clock.SetNow(localTime(2024, time.June, 1, 13, 45))
	shown := sink.Shown()
	require.Len(t, shown, 1)
	assert.Equal(t, "ev-ok", shown[0].Tag)
}

func TestScheduler_RescheduleAllIsIdempotent(t *testing.T) {
	scheduler, clock, sink := setupSchedulerTest(localTime(2024, time.June, 1, 12, 0))

	events := []event.Event{
		{ID: "ev-1", Title: "Dentist", Date: "2024-06-01", StartTime: "14:00", ReminderMinutes: 15},
	}
	scheduler.RescheduleAll(events)
	scheduler.RescheduleAll(events)

	assert.Equal(t, 1, clock.PendingTimers())

	clock.SetNow(localTime(2024, time.June, 1, 13, 45))
	assert.Len(t, sink.Shown(), 1)
}

func TestScheduler_DeniedPermissionDisablesScheduling(t *testing.T) {
	clock := utils.NewMockClock(localTime(2024, time.June, 1, 12, 0))
	sink := NewStubSink()
	medium := store.NewStubMedium()
	permissions := NewPermissions(medium, StaticPrompter{Allow: false})
	permissions.Request(t.Context())
	scheduler := NewScheduler(clock, sink, permissions)

	scheduler.Schedule(event.Event{
		ID:              "ev-1",
		Title:           "Dentist",
		Date:            "2024-06-01",
		StartTime:       "14:00",
		ReminderMinutes: 15,
	})

	assert.False(t, scheduler.Pending("ev-1"))
}

func TestScheduler_StopCancelsEverything(t *testing.T) {
	scheduler, clock, sink := setupSchedulerTest(localTime(2024, time.June, 1, 12, 0))

	scheduler.RescheduleAll([]event.Event{
		{ID: "ev-1", Title: "A", Date: "2024-06-01", StartTime: "14:00", ReminderMinutes: 15},
		{ID: "ev-2", Title: "B", Date: "2024-06-01", StartTime: "15:00", ReminderMinutes: 30},
	})
	scheduler.Stop()

	assert.False(t, scheduler.Pending("ev-1"))
	assert.False(t, scheduler.Pending("ev-2"))
	clock.Advance(24 * time.Hour)
	assert.Empty(t, sink.Shown())
}
