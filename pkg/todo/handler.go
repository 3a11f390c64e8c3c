package todo

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/daybook/daybook/internal/rest"
	"github.com/daybook/daybook/pkg/store"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service Service
}

type StatusDTO struct {
	Completed bool `json:"completed"`
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetTodos(w http.ResponseWriter, r *http.Request) {
	var (
		todos []Todo
		err   error
	)
	if date := r.URL.Query().Get("date"); date != "" {
		todos, err = h.service.ForDay(r.Context(), date)
	} else {
		todos, err = h.service.List(r.Context())
	}
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, todos)
}

func (h *Handler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	var todo Todo
	if err := json.NewDecoder(r.Body).Decode(&todo); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.service.Create(r.Context(), todo)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	var todo Todo
	if err := json.NewDecoder(r.Body).Decode(&todo); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	todo.ID = mux.Vars(r)["todoId"]

	updated, err := h.service.Update(r.Context(), todo)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) SetTodoStatus(w http.ResponseWriter, r *http.Request) {
	var status StatusDTO
	if err := json.NewDecoder(r.Body).Decode(&status); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := h.service.SetCompleted(r.Context(), mux.Vars(r)["todoId"], status.Completed)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), mux.Vars(r)["todoId"]); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidTodo):
		writeJSON(w, http.StatusBadRequest, rest.ErrorResponse{Error: err.Error()})
	case errors.Is(err, store.ErrNotFound):
		writeJSON(w, http.StatusNotFound, rest.ErrorResponse{Error: "todo not found"})
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Errorf("failed to encode response: %v", err)
	}
}
