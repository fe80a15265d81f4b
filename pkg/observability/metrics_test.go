package observability

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"archibridge/domain/events"
)

func scrape(t *testing.T, c *Collector) string {
	t.Helper()
	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestCollector_ObserveEvents(t *testing.T) {
	c := NewCollector("test")
	now := time.Now()

	for _, e := range []events.DomainEvent{
		events.NewModelImported("m1", "elements.csv", 3, 2, 5, now),
		events.NewImageAdded("m1", "images/a.png", 12, now),
		events.NewModelSaved("m1", "/tmp/m.archimate", 4, now),
		events.NewEditReverted("m1", "Import CSV", now),
	} {
		require.NoError(t, c.Observe(context.Background(), e))
	}

	body := scrape(t, c)
	for _, line := range []string{
		"test_csv_imports_total 1",
		"test_concepts_created_total 3",
		"test_concepts_updated_total 2",
		"test_properties_created_total 5",
		"test_images_stored_total 1",
		"test_images_pruned_total 4",
		"test_models_saved_total 1",
	} {
		assert.Contains(t, body, line)
	}
}

func TestCollector_RecordsBusAndHTTP(t *testing.T) {
	c := NewCollector("test")
	c.RecordCommand("ImportCSVCommand", time.Millisecond, nil)
	c.RecordCommand("ImportCSVCommand", time.Millisecond, errors.New("x"))
	c.RecordQuery("GetModelQuery", nil)
	c.RecordHTTPRequest(http.MethodGet, "/api/v1/models/{modelID}", 200, time.Millisecond)

	body := scrape(t, c)
	assert.Contains(t, body, `test_commands_total{command="ImportCSVCommand",status="error"} 1`)
	assert.Contains(t, body, `test_commands_total{command="ImportCSVCommand",status="success"} 1`)
	assert.Contains(t, body, `test_queries_total{query="GetModelQuery",status="success"} 1`)
	assert.Contains(t, body, `test_http_requests_total{method="GET",route="/api/v1/models/{modelID}",status="200"} 1`)
	assert.Contains(t, body, "test_command_duration_seconds_count")
}

func TestCollector_IndependentRegistries(t *testing.T) {
	a, b := NewCollector("test"), NewCollector("test")
	a.ImagesStored.Inc()

	assert.Contains(t, scrape(t, a), "test_images_stored_total 1")
	assert.Contains(t, scrape(t, b), "test_images_stored_total 0")
}
