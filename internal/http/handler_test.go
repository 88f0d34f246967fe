package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oceandrift/drift-api/internal/domain"
	"github.com/oceandrift/drift-api/internal/observability"
	"github.com/oceandrift/drift-api/internal/usecase"
)

type constantSampler struct {
	uv domain.UV
}

func (s constantSampler) Sample(time.Time, float64, float64) (domain.UV, error) {
	return s.uv, nil
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	provider := usecase.FieldProviderFunc(func(_, _ float64, _, _ time.Time) (domain.Sampler, error) {
		return constantSampler{domain.UV{U: 0.3, V: 0.1}}, nil
	})
	profiles := domain.NewProfileTable()
	uc := usecase.NewPredictionUseCase(
		provider,
		profiles,
		domain.NewIntegrator(profiles),
		clockwork.NewFakeClockAt(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)),
		observability.NewMetricsForTesting(),
	)
	return SetupRouter(uc, "")
}

func postPrediction(t *testing.T, router *gin.Engine, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/v1/drift/predictions", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestPostPrediction_OK(t *testing.T) {
	router := newTestRouter(t)

	w := postPrediction(t, router, map[string]any{
		"lat":         52.5,
		"lon":         4.2,
		"hours":       3,
		"object_type": "Kayak",
		"start_time":  "2026-03-01T06:00:00Z",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp usecase.PredictionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "Kayak", resp.ObjectType)
	assert.Equal(t, "2026-03-01T06:00:00Z", resp.StartTime)
	assert.Equal(t, 52.5, resp.InitialPosition.Lat)
	assert.Greater(t, resp.FinalPosition.Lon, 4.2)
	assert.Len(t, resp.Trajectory, 4)
	assert.NotEmpty(t, resp.SearchPattern.Pattern)
	assert.False(t, resp.Degraded)
}

func TestPostPrediction_DefaultsStartTime(t *testing.T) {
	router := newTestRouter(t)

	w := postPrediction(t, router, map[string]any{
		"lat":         52.5,
		"lon":         4.2,
		"hours":       1,
		"object_type": "Kayak",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp usecase.PredictionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "2026-03-01T12:00:00Z", resp.StartTime)
}

func TestPostPrediction_BadRequest(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing hours", map[string]any{"lat": 52.5, "lon": 4.2, "object_type": "Kayak"}},
		{"negative hours", map[string]any{"lat": 52.5, "lon": 4.2, "hours": -1}},
		{"latitude out of range", map[string]any{"lat": 95, "lon": 4.2, "hours": 1}},
		{"longitude out of range", map[string]any{"lat": 52.5, "lon": 200, "hours": 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postPrediction(t, router, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp["error"])
		})
	}
}

func TestPostPrediction_MalformedBody(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/drift/predictions", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetObjects(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/objects", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Objects []usecase.ObjectInfo `json:"objects"`
		Count   int                  `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 11, resp.Count)
	assert.Len(t, resp.Objects, 11)
}

func TestHealthCheck(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
