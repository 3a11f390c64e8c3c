package app

import (
	"github.com/daybook/daybook/internal/config"
	"github.com/daybook/daybook/internal/event_bus"
	"github.com/daybook/daybook/internal/utils"
	"github.com/daybook/daybook/pkg/event"
	"github.com/daybook/daybook/pkg/ics"
	"github.com/daybook/daybook/pkg/reminder"
	"github.com/daybook/daybook/pkg/store"
	"github.com/daybook/daybook/pkg/todo"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Bus   *event_bus.EventBus
	Clock utils.Clock

	EventCollection *store.Collection[event.Event]
	EventService    event.Service
	EventHandler    *event.Handler

	TodoCollection *store.Collection[todo.Todo]
	TodoService    todo.Service
	TodoHandler    *todo.Handler

	Permissions     *reminder.Permissions
	Scheduler       *reminder.Scheduler
	ReminderHandler *reminder.Handler

	IcsHandler *ics.Handler
}

// BuildDependencies initializes and wires all application services and
// handlers on top of the given key-value medium.
func BuildDependencies(medium store.Medium, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Bus = event_bus.NewEventBus()
	deps.Clock = utils.SystemClock{}

	deps.EventCollection = store.NewCollection(medium, "events", event.Event.WithID)
	eventService := event.NewService(deps.EventCollection, deps.Bus)
	deps.EventService = eventService
	deps.EventHandler = event.NewHandler(eventService)

	deps.TodoCollection = store.NewCollection(medium, "todos", todo.Todo.WithID)
	todoService := todo.NewService(deps.TodoCollection)
	deps.TodoService = todoService
	deps.TodoHandler = todo.NewHandler(todoService)

	deps.Permissions = reminder.NewPermissions(medium, reminder.StaticPrompter{Allow: cfg.Notifications.Enabled})
	deps.Scheduler = reminder.NewScheduler(deps.Clock, reminder.NewDesktopSink(), deps.Permissions)
	deps.ReminderHandler = reminder.NewHandler(deps.Permissions)

	deps.IcsHandler = ics.NewHandler(deps.EventService, deps.TodoService)

	// Any saved or deleted event recomputes its reminder registry entry.
	event_bus.SubscribeTyped(deps.Bus, event_bus.CalendarEventSaved, func(e event_bus.EventT[event.Event]) error {
		deps.Scheduler.Schedule(e.Data)
		return nil
	})
	event_bus.SubscribeTyped(deps.Bus, event_bus.CalendarEventDeleted, func(e event_bus.EventT[string]) error {
		deps.Scheduler.Cancel(e.Data)
		return nil
	})

	return deps
}
