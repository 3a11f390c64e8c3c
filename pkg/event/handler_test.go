package event

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/daybook/daybook/internal/event_bus"
	"github.com/daybook/daybook/pkg/store"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHandlerTest(t *testing.T) (*Handler, *ServiceImpl, *mux.Router) {
	t.Helper()
	medium := store.NewStubMedium()
	events := store.NewCollection(medium, "events", Event.WithID)
	service := NewService(events, event_bus.NewEventBus())
	handler := NewHandler(service)

	r := mux.NewRouter()
	r.HandleFunc("/api/event", handler.GetEvents).Methods("GET")
	r.HandleFunc("/api/event", handler.CreateEvent).Methods("POST")
	r.HandleFunc("/api/event/{eventId}", handler.UpdateEvent).Methods("PUT")
	r.HandleFunc("/api/event/{eventId}", handler.DeleteEvent).Methods("DELETE")
	r.HandleFunc("/api/grid/day", handler.GetDayGrid).Methods("GET")
	r.HandleFunc("/api/grid/week", handler.GetWeekGrid).Methods("GET")
	return handler, service, r
}

func TestHandler_CreateEvent(t *testing.T) {
	_, _, router := setupHandlerTest(t)

	body := `{"title":"Dentist","date":"2024-06-01","startTime":"14:00","reminderMinutes":15}`
	req := httptest.NewRequest("POST", "/api/event", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var created Event
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Dentist", created.Title)
}

func TestHandler_CreateEventRejectsMissingTitle(t *testing.T) {
	_, _, router := setupHandlerTest(t)

	req := httptest.NewRequest("POST", "/api/event", strings.NewReader(`{"date":"2024-06-01"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_UpdateUnknownEventReturns404(t *testing.T) {
	_, _, router := setupHandlerTest(t)

	body := `{"title":"Dentist","date":"2024-06-01"}`
	req := httptest.NewRequest("PUT", "/api/event/nope", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_DeleteUnknownEventReturns404(t *testing.T) {
	_, _, router := setupHandlerTest(t)

	req := httptest.NewRequest("DELETE", "/api/event/nope", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_GetDayGrid(t *testing.T) {
	_, service, router := setupHandlerTest(t)
	ctx := t.Context()

	_, err := service.Create(ctx, Event{Title: "Standup", Date: "2024-06-01", StartTime: "09:00", EndTime: "10:30"})
	require.NoError(t, err)
	_, err = service.Create(ctx, Event{Title: "Holiday", Date: "2024-06-01", AllDay: true})
	require.NoError(t, err)
	_, err = service.Create(ctx, Event{Title: "Other day", Date: "2024-06-02", StartTime: "09:00"})
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/grid/day?date=2024-06-01&hourHeight=60", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var grid DayGridDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&grid))

	assert.Equal(t, "2024-06-01", grid.Date)
	require.Len(t, grid.AllDay, 1)
	assert.Equal(t, "Holiday", grid.AllDay[0].Title)
	require.Len(t, grid.Timed, 1)
	assert.Equal(t, "Standup", grid.Timed[0].Title)
	assert.Equal(t, 540.0, grid.Timed[0].Top)
	assert.Equal(t, 90.0, grid.Timed[0].Height)
}

func TestHandler_GetDayGridRejectsBadDate(t *testing.T) {
	_, _, router := setupHandlerTest(t)

	req := httptest.NewRequest("GET", "/api/grid/day?date=yesterday", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_GetWeekGridReturnsSevenColumns(t *testing.T) {
	_, service, router := setupHandlerTest(t)

	_, err := service.Create(t.Context(), Event{Title: "Midweek", Date: "2024-06-05", StartTime: "12:00"})
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/grid/week?start=2024-06-03", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var days []DayGridDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&days))

	require.Len(t, days, 7)
	assert.Equal(t, "2024-06-03", days[0].Date)
	assert.Equal(t, "2024-06-09", days[6].Date)
	require.Len(t, days[2].Timed, 1)
	assert.Equal(t, "Midweek", days[2].Timed[0].Title)
}
