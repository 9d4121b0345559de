package http_test

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/smart-inventory-api/internal/infrastructure/metrics"
	apphttp "github.com/jhoicas/smart-inventory-api/internal/interfaces/http"
	"github.com/jhoicas/smart-inventory-api/pkg/logger"
)

func newObservedApp(t *testing.T) (*fiber.App, *metrics.Metrics, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	m := metrics.New()
	app := fiber.New()
	app.Use(apphttp.MetricsMiddleware(m))
	app.Use(apphttp.RequestLogger(logger.New(logger.Config{Env: "test", Level: "info", Output: &buf})))
	app.Use(recover.New())
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/boom", func(c *fiber.Ctx) error { return fiber.ErrBadRequest })
	app.Get("/panic", func(c *fiber.Ctx) error { panic("falla") })
	return app, m, &buf
}

func scrape(t *testing.T, m *metrics.Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func loggedStatuses(t *testing.T, buf *bytes.Buffer) []int {
	t.Helper()
	var out []int
	sc := bufio.NewScanner(buf)
	for sc.Scan() {
		var line struct {
			Status int `json:"status"`
		}
		require.NoError(t, json.Unmarshal(sc.Bytes(), &line))
		out = append(out, line.Status)
	}
	return out
}

func TestObservabilidad_StatusDeErrores(t *testing.T) {
	app, m, buf := newObservedApp(t)

	cases := []struct {
		path string
		want int
	}{
		{"/ok", fiber.StatusOK},
		{"/nope", fiber.StatusNotFound},
		{"/boom", fiber.StatusBadRequest},
		{"/panic", fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest("GET", tc.path, nil))
		require.NoError(t, err)
		assert.Equal(t, tc.want, resp.StatusCode, tc.path)
	}

	body := scrape(t, m)
	assert.Contains(t, body, `smart_inventory_http_requests_total{method="GET",route="/ok",status="200"} 1`)
	assert.Contains(t, body, `smart_inventory_http_requests_total{method="GET",route="unmatched",status="404"} 1`)
	assert.Contains(t, body, `smart_inventory_http_requests_total{method="GET",route="/boom",status="400"} 1`)
	assert.Contains(t, body, `smart_inventory_http_requests_total{method="GET",route="/panic",status="500"} 1`)
	assert.NotContains(t, body, `route="unmatched",status="200"`)

	assert.Equal(t, []int{200, 404, 400, 500}, loggedStatuses(t, buf))
}
