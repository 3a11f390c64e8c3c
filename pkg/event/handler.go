package event

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/daybook/daybook/internal/rest"
	"github.com/daybook/daybook/internal/utils"
	"github.com/daybook/daybook/pkg/layout"
	"github.com/daybook/daybook/pkg/store"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const defaultHourHeightPx = 60

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// PositionedEventDTO is a grid-positioned event: the event itself plus its
// vertical pixel span.
type PositionedEventDTO struct {
	Event
	layout.Span
}

// DayGridDTO is one day column of the time grid. AllDay entries carry no
// span and render in a separate band. Overlapping timed events are
// positioned independently; the grid does no column packing.
type DayGridDTO struct {
	Date       string               `json:"date"`
	HourHeight float64              `json:"hourHeight"`
	AllDay     []Event              `json:"allDay"`
	Timed      []PositionedEventDTO `json:"timed"`
}

func (h *Handler) GetEvents(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	events, err := h.service.ForRange(r.Context(), from, to)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, events)
}

func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var event Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.service.Create(r.Context(), event)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var event Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	event.ID = mux.Vars(r)["eventId"]

	updated, err := h.service.Update(r.Context(), event)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["eventId"]
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetDayGrid returns a single positioned day column.
func (h *Handler) GetDayGrid(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	hourHeight := parseHourHeight(r)

	grid, err := h.dayGrid(r, date, hourHeight)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, grid)
}

// GetWeekGrid returns seven independent day columns starting at the given
// date, each positioned by the same per-day calculation as the day view.
func (h *Handler) GetWeekGrid(w http.ResponseWriter, r *http.Request) {
	start := r.URL.Query().Get("start")
	hourHeight := parseHourHeight(r)

	firstDay, err := utils.ParseDay(start)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, rest.ErrorResponse{
			Error:   "Invalid start date",
			Details: "'start' must be in YYYY-MM-DD format",
		})
		return
	}

	days := make([]DayGridDTO, 0, 7)
	for i := 0; i < 7; i++ {
		date := firstDay.AddDate(0, 0, i).Format(utils.DayFormat)
		grid, err := h.dayGrid(r, date, hourHeight)
		if err != nil {
			h.writeError(w, err)
			return
		}
		days = append(days, grid)
	}

	writeJSON(w, http.StatusOK, days)
}

func (h *Handler) dayGrid(r *http.Request, date string, hourHeight float64) (DayGridDTO, error) {
	events, err := h.service.ForDay(r.Context(), date)
	if err != nil {
		return DayGridDTO{}, err
	}

	grid := DayGridDTO{
		Date:       date,
		HourHeight: hourHeight,
		AllDay:     make([]Event, 0),
		Timed:      make([]PositionedEventDTO, 0, len(events)),
	}
	for _, e := range events {
		span, positioned := layout.Position(e.StartTime, e.EndTime, e.AllDay, hourHeight)
		if !positioned {
			grid.AllDay = append(grid.AllDay, e)
			continue
		}
		grid.Timed = append(grid.Timed, PositionedEventDTO{Event: e, Span: span})
	}
	return grid, nil
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidEvent):
		writeJSON(w, http.StatusBadRequest, rest.ErrorResponse{Error: err.Error()})
	case errors.Is(err, store.ErrNotFound):
		writeJSON(w, http.StatusNotFound, rest.ErrorResponse{Error: "event not found"})
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func parseHourHeight(r *http.Request) float64 {
	raw := r.URL.Query().Get("hourHeight")
	if raw == "" {
		return defaultHourHeightPx
	}
	hourHeight, err := strconv.ParseFloat(raw, 64)
	if err != nil || hourHeight <= 0 {
		log.Debugf("ignoring invalid hourHeight %q", raw)
		return defaultHourHeightPx
	}
	return hourHeight
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Errorf("failed to encode response: %v", err)
	}
}
