package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrument_RecordsRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Instrument)
	r.Get("/leave/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	r.Method(http.MethodGet, "/metrics", Handler())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/leave/abc", nil))
	require.Equal(t, http.StatusTeapot, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `route="/leave/{id}"`), "route pattern label missing")
	assert.True(t, strings.Contains(body, `status="418"`))
}

func TestAttendanceEvents_Counts(t *testing.T) {
	before := testutil.ToFloat64(AttendanceEvents.WithLabelValues("check_in", OutcomeConflict))
	AttendanceEvents.WithLabelValues("check_in", OutcomeConflict).Inc()
	after := testutil.ToFloat64(AttendanceEvents.WithLabelValues("check_in", OutcomeConflict))
	assert.Equal(t, before+1, after)
}
