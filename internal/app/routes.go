package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Events
	r.HandleFunc("/api/event", deps.EventHandler.GetEvents).Queries("from", "{from}", "to", "{to}").Methods("GET")
	r.HandleFunc("/api/event", deps.EventHandler.CreateEvent).Methods("POST")
	r.HandleFunc("/api/event/{eventId}", deps.EventHandler.UpdateEvent).Methods("PUT")
	r.HandleFunc("/api/event/{eventId}", deps.EventHandler.DeleteEvent).Methods("DELETE")

	// Time grid
	r.HandleFunc("/api/grid/day", deps.EventHandler.GetDayGrid).Queries("date", "{date}").Methods("GET")
	r.HandleFunc("/api/grid/week", deps.EventHandler.GetWeekGrid).Queries("start", "{start}").Methods("GET")

	// Todos
	r.HandleFunc("/api/todo", deps.TodoHandler.GetTodos).Methods("GET")
	r.HandleFunc("/api/todo", deps.TodoHandler.CreateTodo).Methods("POST")
	r.HandleFunc("/api/todo/{todoId}", deps.TodoHandler.UpdateTodo).Methods("PUT")
	r.HandleFunc("/api/todo/{todoId}/status", deps.TodoHandler.SetTodoStatus).Methods("PATCH")
	r.HandleFunc("/api/todo/{todoId}", deps.TodoHandler.DeleteTodo).Methods("DELETE")

	// Notifications
	r.HandleFunc("/api/notifications/permission", deps.ReminderHandler.GetPermission).Methods("GET")
	r.HandleFunc("/api/notifications/permission", deps.ReminderHandler.RequestPermission).Methods("POST")

	// iCalendar export
	r.HandleFunc("/api/calendar.ics", deps.IcsHandler.GetCalendar).Methods("GET")
}
