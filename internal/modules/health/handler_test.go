package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MuhamadAgungGumelar/compta-web/internal/core/monitor"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource struct {
	status monitor.Status
	ok     bool
}

func (s staticSource) Status() (monitor.Status, bool) { return s.status, s.ok }

func getHealth(t *testing.T, src StatusSource) map[string]interface{} {
	t.Helper()

	app := fiber.New()
	app.Get("/health", NewHealthHandler("compta-web", src).GetHealth)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestGetHealthBeforeFirstCheck(t *testing.T) {
	body := getHealth(t, staticSource{})

	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "compta-web", body["service"])
	assert.Equal(t, map[string]interface{}{"status": "unknown"}, body["backend"])
}

func TestGetHealthBackendDown(t *testing.T) {
	body := getHealth(t, staticSource{ok: true, status: monitor.Status{
		Error:               "ping: connection refused",
		CheckedAt:           time.Now(),
		ConsecutiveFailures: 3,
	}})

	assert.Equal(t, "degraded", body["status"])
	backend := body["backend"].(map[string]interface{})
	assert.Equal(t, "down", backend["status"])
	assert.Equal(t, float64(3), backend["consecutive_failures"])
}

func TestGetHealthBackendUp(t *testing.T) {
	body := getHealth(t, staticSource{ok: true, status: monitor.Status{
		Reachable: true,
		Latency:   42 * time.Millisecond,
		CheckedAt: time.Now(),
	}})

	assert.Equal(t, "ok", body["status"])
	backend := body["backend"].(map[string]interface{})
	assert.Equal(t, "up", backend["status"])
	assert.Equal(t, float64(42), backend["latency_ms"])
}
