package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bobby-s-dev/birth-timing/internal/config"
	"github.com/bobby-s-dev/birth-timing/internal/models"
	"github.com/bobby-s-dev/birth-timing/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubGeocoder struct{}

func (stubGeocoder) Resolve(ctx context.Context, query string) (*models.LocationData, error) {
	if query == "London" {
		return &models.LocationData{Latitude: 51.5074, Longitude: -0.1278, City: "London", Country: "United Kingdom"}, nil
	}
	return nil, errors.New("no match")
}

func newTestApp(t *testing.T) (*fiber.App, *services.TimingService) {
	t.Helper()

	cfg := &config.Config{}
	cfg.Cache.Duration = time.Minute
	cfg.Cache.MaxSize = 100
	cfg.Engine.NoiseSeed = 5

	service := services.NewTimingService(cfg, stubGeocoder{}, zap.NewNop())

	app := fiber.New()
	handler := NewHandler(service, []string{"Prague", "London"}, zap.NewNop())
	SetupRoutes(app, handler, zap.NewNop())

	return app, service
}

func doRequest(t *testing.T, app *fiber.App, path string) (*http.Response, []byte) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	return resp, body
}

func TestScoreEndpoint(t *testing.T) {
	app, service := newTestApp(t)
	defer service.Stop()

	resp, body := doRequest(t, app, "/api/v1/timing/score?lat=40.7128&lon=-74.0060&date=2024-07-15&country=United+States")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result models.OptimalTimingResult
	require.NoError(t, json.Unmarshal(body, &result))

	assert.GreaterOrEqual(t, result.OverallScore, 0)
	assert.LessOrEqual(t, result.OverallScore, 100)
	assert.NotEmpty(t, result.Recommendations)
}

func TestScoreEndpointRejectsBadLatitude(t *testing.T) {
	app, service := newTestApp(t)
	defer service.Stop()

	resp, _ := doRequest(t, app, "/api/v1/timing/score?lat=120&lon=0")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doRequest(t, app, "/api/v1/timing/score?lat=abc&lon=0")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doRequest(t, app, "/api/v1/timing/score?lat=40&lon=0&date=notadate")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAnalysisEndpoint(t *testing.T) {
	app, service := newTestApp(t)
	defer service.Stop()

	resp, body := doRequest(t, app, "/api/v1/timing/analysis?lat=40.7128&lon=-74.0060&date=2024-06&range=4")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var analysis models.TimingAnalysis
	require.NoError(t, json.Unmarshal(body, &analysis))

	// range=4 evaluates 9 months; the top quartile is ceil(9*0.25)=3.
	assert.Len(t, analysis.OptimalWindows, 3)

	resp, _ = doRequest(t, app, "/api/v1/timing/analysis?lat=40&lon=0&range=99")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestReportEndpoint(t *testing.T) {
	app, service := newTestApp(t)
	defer service.Stop()

	resp, body := doRequest(t, app, "/api/v1/timing/report?lat=51.5&lon=-0.13&date=2025-03&range=6")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var report models.OptimalityReport
	require.NoError(t, json.Unmarshal(body, &report))

	assert.NotEmpty(t, report.Summary)
	assert.NotEmpty(t, report.ScientificBasis)
}

func TestGeocodeEndpoint(t *testing.T) {
	app, service := newTestApp(t)
	defer service.Stop()

	resp, body := doRequest(t, app, "/api/v1/geocode?q=London")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var location models.LocationData
	require.NoError(t, json.Unmarshal(body, &location))
	assert.Equal(t, "London", location.City)

	resp, _ = doRequest(t, app, "/api/v1/geocode")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doRequest(t, app, "/api/v1/geocode?q=Nowhereville")
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestHealthAndLocations(t *testing.T) {
	app, service := newTestApp(t)
	defer service.Stop()

	resp, _ := doRequest(t, app, "/api/v1/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := doRequest(t, app, "/api/v1/locations")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "Prague")
}
