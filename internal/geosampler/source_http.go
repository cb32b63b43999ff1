package geosampler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/fieldsync-agent/internal/domain"
)

// httpSource reads fixes from a gpsd-style JSON endpoint on the device
// (the companion location daemon exposes GET /position).
type httpSource struct {
	client  *http.Client
	baseURL string
}

func NewHTTPSource(baseURL string) Source {
	return &httpSource{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: baseURL,
	}
}

func (s *httpSource) Position(ctx context.Context) (domain.Coordinate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/position", nil)
	if err != nil {
		return domain.UnknownLocation, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return domain.UnknownLocation, fmt.Errorf("failed to read position: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.UnknownLocation, fmt.Errorf("location source returned status %d", resp.StatusCode)
	}

	var fix struct {
		Lat  float64 `json:"lat"`
		Long float64 `json:"long"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&fix); err != nil {
		return domain.UnknownLocation, fmt.Errorf("failed to decode position: %w", err)
	}

	return domain.Coordinate{Lat: fix.Lat, Long: fix.Long}, nil
}

// FixedSource always reports the same coordinate. Used in development and
// in tests.
type FixedSource struct {
	Pos domain.Coordinate
	Err error
}

func (s *FixedSource) Position(ctx context.Context) (domain.Coordinate, error) {
	return s.Pos, s.Err
}
