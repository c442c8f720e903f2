package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := NewRecorder(reg)
	require.NoError(t, err)

	rec.RevisionSaved("team_member_revisions")
	rec.RevisionSaved("team_member_revisions")
	rec.RevisionDeleted("team_member_revisions")

	assert.Equal(t, 2.0, testutil.ToFloat64(rec.saved.WithLabelValues("team_member_revisions")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.deleted.WithLabelValues("team_member_revisions")))
	assert.Equal(t, 0.0, testutil.ToFloat64(rec.saved.WithLabelValues("working_hours_revisions")))
}

func TestNewRecorder_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewRecorder(reg)
	require.NoError(t, err)

	_, err = NewRecorder(reg)
	assert.Error(t, err)
}

func TestHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := NewRecorder(reg)
	require.NoError(t, err)
	rec.RevisionSaved("working_hours_revisions")

	w := httptest.NewRecorder()
	Handler(reg).ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), `audit_trail_revisions_saved_total{table="working_hours_revisions"} 1`)
}

func TestInstrument(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := NewRecorder(reg)
	require.NoError(t, err)

	h := rec.Instrument(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/team", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/team", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(rec.requests.WithLabelValues("201", "post")))
	assert.Equal(t, 1, testutil.CollectAndCount(rec.duration))
}
