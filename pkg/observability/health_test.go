package observability

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthChecker_Check(t *testing.T) {
	hc := NewHealthChecker(time.Second)
	hc.Register("postgres", func(context.Context) error { return nil })

	status := hc.Check(context.Background())
	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, map[string]string{"postgres": "healthy"}, status.Checks)

	hc.Register("kafka", func(context.Context) error { return errors.New("no brokers") })

	status = hc.Check(context.Background())
	assert.Equal(t, "unhealthy", status.Status)
	assert.Equal(t, "unhealthy: no brokers", status.Checks["kafka"])
	assert.False(t, hc.Healthy(context.Background()))
}

func TestHealthChecker_CheckHonorsTimeout(t *testing.T) {
	hc := NewHealthChecker(20 * time.Millisecond)
	hc.Register("slow", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	start := time.Now()
	assert.False(t, hc.Healthy(context.Background()))
	assert.Less(t, time.Since(start), time.Second)
}

func TestMount(t *testing.T) {
	hc := NewHealthChecker(time.Second)
	healthy := true
	hc.Register("postgres", func(context.Context) error {
		if healthy {
			return nil
		}
		return errors.New("down")
	})

	r := chi.NewRouter()
	Mount(r, hc)

	get := func(path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec
	}

	rec := get("/health")
	require.Equal(t, http.StatusOK, rec.Code)
	var status HealthStatus
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&status))
	assert.Equal(t, "healthy", status.Status)

	assert.Equal(t, http.StatusOK, get("/ready").Code)
	assert.Equal(t, http.StatusOK, get("/metrics").Code)

	healthy = false
	assert.Equal(t, http.StatusServiceUnavailable, get("/health").Code)
	assert.Equal(t, http.StatusServiceUnavailable, get("/ready").Code)
}
