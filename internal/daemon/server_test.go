package daemon

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gearvrf/gvrf-exporter/internal/config"
	"github.com/gearvrf/gvrf-exporter/internal/models"
	"github.com/gearvrf/gvrf-exporter/internal/staging"
)

func newTestServer(t *testing.T) (*Server, http.Handler) {
	t.Helper()

	stager, err := staging.NewStager(filepath.Join(t.TempDir(), "assets"), "http://192.168.1.5:8000/")
	require.NoError(t, err)

	s := NewServer(config.DefaultConfig(), stager)
	return s, s.Handler()
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	h.ServeHTTP(w, req)
	return w
}

func TestServesStagedFiles(t *testing.T) {
	s, h := newTestServer(t)
	require.NoError(t, os.WriteFile(filepath.Join(s.Stager.Root(), "Cube.fbx"), []byte("fbx-bytes"), 0o644))

	w := get(t, h, "/Cube.fbx")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "fbx-bytes", w.Body.String())

	w = get(t, h, "/Missing.fbx")
	assert.Equal(t, http.StatusNotFound, w.Code)

	assert.Equal(t, int64(2), s.TotalRequests)
}

func TestRejectsWrites(t *testing.T) {
	_, h := newTestServer(t)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/Cube.fbx", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestHealth(t *testing.T) {
	s, h := newTestServer(t)

	w := get(t, h, "/health")
	require.Equal(t, http.StatusOK, w.Code)

	var health models.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, models.HealthStatusHealthy, health.Status)
	assert.Equal(t, "/api/v1", health.ApiBasePath)

	require.NoError(t, os.RemoveAll(s.Stager.Root()))

	w = get(t, h, "/health")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestListAssets(t *testing.T) {
	s, h := newTestServer(t)
	require.NoError(t, os.WriteFile(filepath.Join(s.Stager.Root(), "Lamp.json"), []byte("{}"), 0o644))

	w := get(t, h, "/api/v1/assets")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		BaseURL string              `json:"base_url"`
		Assets  []staging.AssetInfo `json:"assets"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "http://192.168.1.5:8000/", body.BaseURL)
	require.Len(t, body.Assets, 1)
	assert.Equal(t, "Lamp.json", body.Assets[0].Name)
	assert.Equal(t, "http://192.168.1.5:8000/Lamp.json", body.Assets[0].URL)
}

func TestEvents(t *testing.T) {
	s, h := newTestServer(t)
	logrus.SetLevel(logrus.InfoLevel)
	s.Config.CaptureEvents(50)

	logrus.WithField(models.RunField, "run-1").Infoln("Exported Cube")
	logrus.WithField(models.RunField, "run-2").Warnln("Texture missing")

	w := get(t, h, "/api/v1/events?run=run-1")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Events []models.LogEntry `json:"events"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Events, 1)
	assert.Equal(t, "Exported Cube", body.Events[0].Message)

	w = get(t, h, "/api/v1/events?level=warning")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Events, 1)
	assert.Equal(t, "run-2", body.Events[0].Run())

	assert.Equal(t, http.StatusBadRequest, get(t, h, "/api/v1/events?level=loud").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, h, "/api/v1/events?limit=-1").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, h, "/api/v1/events?since=yesterday").Code)
}

func TestStartStop(t *testing.T) {
	s, _ := newTestServer(t)
	s.Config.Server.Host = "127.0.0.1"
	s.Config.Server.Port = 0

	require.NoError(t, s.Start())
	defer s.Stop()

	resp, err := http.Get("http://" + s.Addr() + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	s.Stop()
	_, err = http.Get("http://" + s.Addr() + "/health")
	assert.Error(t, err)
}

func TestRequestID(t *testing.T) {
	_, h := newTestServer(t)

	w := get(t, h, "/health")
	assert.Len(t, w.Header().Get(RequestIDHeader), 36)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "device-fetch-1")
	h.ServeHTTP(w, req)
	assert.Equal(t, "device-fetch-1", w.Header().Get(RequestIDHeader))
}
