package central_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fieldsync-agent/internal/config"
	"github.com/fieldsync-agent/internal/domain"
	"github.com/fieldsync-agent/internal/infrastructure/central"
	apperrors "github.com/fieldsync-agent/internal/pkg/errors"
)

func newTestClient(t *testing.T, handler http.Handler) (*httptest.Server, *config.CentralConfig) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return srv, &config.CentralConfig{
		BaseURL:        srv.URL,
		AuthToken:      "test-token",
		RequestTimeout: 5 * time.Second,
		UploadTimeout:  5 * time.Second,
	}
}

func TestClient_FetchStations(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/stations", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":"st-1","stationNumber":"AWS-001","stationType":"AWS","district":"Patna","latitude":25.59,"longitude":85.13},
			{"id":"st-2","stationNumber":"ARG-007","stationType":"ARG","district":"Gaya","latitude":24.79,"longitude":84.99}
		]`))
	})

	_, cfg := newTestClient(t, mux)
	c := central.NewClient(cfg, zap.NewNop())

	stations, err := c.FetchStations(context.Background())

	require.NoError(t, err)
	require.Len(t, stations, 2)
	assert.Equal(t, domain.KindWeatherAutomatic, stations[0].Kind)
	assert.Equal(t, domain.KindRainGauge, stations[1].Kind)
	assert.Equal(t, "AWS-001", stations[0].StationNumber)
}

func TestClient_StartTrip_Conflict(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/trips/start", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Trip already in progress", http.StatusConflict)
	})

	_, cfg := newTestClient(t, mux)
	c := central.NewClient(cfg, zap.NewNop())

	trip, err := c.StartTrip(context.Background(), "op-1", "plan-1", domain.Coordinate{Lat: 25.59, Long: 85.13})

	assert.Nil(t, trip)
	assert.ErrorIs(t, err, apperrors.ErrTripConflict)
}

func TestClient_SubmitVisit_NoActiveTrip(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/visits", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "No active trip found", http.StatusNotFound)
	})

	_, cfg := newTestClient(t, mux)
	c := central.NewClient(cfg, zap.NewNop())

	_, err := c.SubmitVisit(context.Background(), &domain.Visit{StationID: "st-1"})

	assert.ErrorIs(t, err, apperrors.ErrNoActiveTrip)
}

func TestClient_NetworkErrorIsRetryable(t *testing.T) {
	srv, cfg := newTestClient(t, http.NotFoundHandler())
	srv.Close() // force connection refused

	c := central.NewClient(cfg, zap.NewNop())

	_, err := c.FetchStations(context.Background())

	assert.ErrorIs(t, err, apperrors.ErrNetwork)
	assert.True(t, apperrors.IsRetryable(err))
}

func TestClient_UploadMedia(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/media", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, header, err := r.FormFile("file")
		require.NoError(t, err)
		assert.Equal(t, "photo-1.jpg", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"url":"/uploads/photo-1.jpg"}`))
	})

	_, cfg := newTestClient(t, mux)
	c := central.NewClient(cfg, zap.NewNop())

	url, err := c.UploadMedia(context.Background(), &domain.MediaBlob{
		Filename:   "photo-1.jpg",
		Data:       []byte("jpeg-bytes"),
		CapturedAt: time.Now(),
		Location:   domain.Coordinate{Lat: 25.59, Long: 85.13},
	})

	require.NoError(t, err)
	assert.Equal(t, "/uploads/photo-1.jpg", url)
}

func TestClient_UploadMedia_FailureIsUploadError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/media", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "storage unavailable", http.StatusInternalServerError)
	})

	_, cfg := newTestClient(t, mux)
	c := central.NewClient(cfg, zap.NewNop())

	_, err := c.UploadMedia(context.Background(), &domain.MediaBlob{Filename: "x.jpg"})

	assert.ErrorIs(t, err, apperrors.ErrUpload)
}
