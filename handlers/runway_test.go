package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"runway/handlers"
	"runway/models"
	"runway/routes"
	"runway/services/runway"
	"runway/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAudit struct {
	events []models.RunwayEvent
	err    error
	limit  int64
}

func (f *fakeAudit) Recent(_ context.Context, limit int64) ([]models.RunwayEvent, error) {
	f.limit = limit
	return f.events, f.err
}

func newTestRouter(h *handlers.RunwayHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(utils.ErrorHandler())
	routes.RegisterRoutes(r, handlers.NewHandlerBundle(h))
	return r
}

func newTestHandler(k int) *handlers.RunwayHandler {
	return handlers.NewRunwayHandler(runway.NewDefaultRunwayService(runway.NewStore(k), nil))
}

func do(t *testing.T, r http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	}
	return w, out
}

func TestRunwayScenarioOverHTTP(t *testing.T) {
	r := newTestRouter(newTestHandler(10))

	w, body := do(t, r, http.MethodPost, "/api/runway/reservations", `{"time":"09:00"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Reservation successfully made.", body["message"])

	w, body = do(t, r, http.MethodPost, "/api/runway/reservations", `{"time":"09:05"}`)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, runway.ReasonSeparation, body["reason"])

	w, _ = do(t, r, http.MethodPost, "/api/runway/reservations", `{"time":"09:15"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w, body = do(t, r, http.MethodPost, "/api/runway/land", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Plane landed successfully at time 9:00.", body["message"])

	w, body = do(t, r, http.MethodGet, "/api/runway/min", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "9:15", body["reservation"].(map[string]any)["time"])
}

func TestRequestReservationBadInput(t *testing.T) {
	r := newTestRouter(newTestHandler(5))

	tests := []struct {
		name string
		body string
		msg  string
	}{
		{"missing time", `{}`, "Invalid request payload"},
		{"not json", `time=09:00`, "Invalid request payload"},
		{"bad format", `{"time":"0900"}`, "Invalid time format."},
		{"bad value", `{"time":"25:00"}`, "Invalid time value."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := do(t, r, http.MethodPost, "/api/runway/reservations", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.msg, body["message"])
		})
	}
}

func TestEmptyRunway(t *testing.T) {
	r := newTestRouter(newTestHandler(5))

	w, body := do(t, r, http.MethodPost, "/api/runway/land", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "No reservations to land.", body["message"])

	for _, path := range []string{"/api/runway/max", "/api/runway/min", "/api/runway/next"} {
		w, body = do(t, r, http.MethodGet, path, "")
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.Equal(t, "No reservations made.", body["message"], path)
	}

	w, body = do(t, r, http.MethodGet, "/api/runway/reservations", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, body["count"])
	assert.EqualValues(t, 5, body["k"])
}

func TestSearchRankAndList(t *testing.T) {
	r := newTestRouter(newTestHandler(5))
	for _, tm := range []string{"0:10", "0:30", "0:50"} {
		w, _ := do(t, r, http.MethodPost, "/api/runway/reservations", `{"time":"`+tm+`"}`)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w, body := do(t, r, http.MethodGet, "/api/runway/reservations/00:30", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["reserved"])
	assert.Equal(t, "0:30", body["time"])

	w, body = do(t, r, http.MethodGet, "/api/runway/reservations/00:31", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, body["reserved"])

	w, body = do(t, r, http.MethodGet, "/api/runway/reservations/0:30/rank", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, body["rank"])

	w, body = do(t, r, http.MethodGet, "/api/runway/reservations/1:00/rank", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "No reservation made at this time.", body["message"])

	w, _ = do(t, r, http.MethodGet, "/api/runway/reservations/xx/rank", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, body = do(t, r, http.MethodGet, "/api/runway/max", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0:50", body["reservation"].(map[string]any)["time"])

	w, _ = do(t, r, http.MethodGet, "/api/runway/reservations", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list models.ReservationList
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, 3, list.Count)
	assert.Equal(t, "0:10", list.Reservations[0].Time)
	assert.Equal(t, "0:50", list.Reservations[2].Time)
}

func TestGetAudit(t *testing.T) {
	h := newTestHandler(5)
	r := newTestRouter(h)

	w, body := do(t, r, http.MethodGet, "/api/runway/audit", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Audit journal disabled", body["message"])

	audit := &fakeAudit{events: []models.RunwayEvent{{ID: "e1", Type: models.EventLanded, Time: "9:00"}}}
	h.Audit = audit

	w, body = do(t, r, http.MethodGet, "/api/runway/audit?limit=10", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 10, audit.limit)
	assert.Len(t, body["events"], 1)

	w, _ = do(t, r, http.MethodGet, "/api/runway/audit?limit=-3", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	audit.err = errors.New("mongo down")
	w, _ = do(t, r, http.MethodGet, "/api/runway/audit", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.EqualValues(t, 50, audit.limit)
}

// streamRecorder lets c.Stream run against a recorder.
type streamRecorder struct {
	*httptest.ResponseRecorder
	closed chan bool
}

func (r *streamRecorder) CloseNotify() <-chan bool { return r.closed }

type fakeEventSource struct {
	events []models.RunwayEvent
}

func (f *fakeEventSource) Subscribe(context.Context) <-chan models.RunwayEvent {
	ch := make(chan models.RunwayEvent, len(f.events))
	for _, ev := range f.events {
		ch <- ev
	}
	close(ch)
	return ch
}

func TestStreamEvents(t *testing.T) {
	h := newTestHandler(5)
	r := newTestRouter(h)

	w, _ := do(t, r, http.MethodGet, "/api/runway/events", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	h.Events = &fakeEventSource{events: []models.RunwayEvent{
		{ID: "a", Type: models.EventRequestAccepted, Minute: 540, Time: "9:00"},
		{ID: "b", Type: models.EventLanded, Minute: 540, Time: "9:00"},
	}}
	req := httptest.NewRequest(http.MethodGet, "/api/runway/events", nil)
	rec := &streamRecorder{ResponseRecorder: httptest.NewRecorder(), closed: make(chan bool, 1)}
	r.ServeHTTP(rec, req)

	out := rec.Body.String()
	assert.Contains(t, out, "event:"+models.EventRequestAccepted)
	assert.Contains(t, out, "event:"+models.EventLanded)
	assert.Contains(t, out, `"time":"9:00"`)
}
