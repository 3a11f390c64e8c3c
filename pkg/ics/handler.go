package ics

import (
	"net/http"

	"github.com/daybook/daybook/pkg/event"
	"github.com/daybook/daybook/pkg/todo"
)

type Handler struct {
	events event.Service
	todos  todo.Service
}

func NewHandler(events event.Service, todos todo.Service) *Handler {
	return &Handler{events: events, todos: todos}
}

// GetCalendar serves the whole calendar as an iCalendar feed.
func (h *Handler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	events, err := h.events.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	todos, err := h.todos.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(Render(events, todos)))
}
