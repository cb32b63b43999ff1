// Package central implements the remote interface of the central
// authority: reference-data pulls, trip registration and visit submission.
package central

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/fieldsync-agent/internal/config"
	"github.com/fieldsync-agent/internal/domain"
	"github.com/fieldsync-agent/internal/domain/repository"
	apperrors "github.com/fieldsync-agent/internal/pkg/errors"
)

type client struct {
	httpClient   *http.Client
	uploadClient *http.Client
	baseURL      string
	authToken    string
	logger       *zap.Logger
}

// NewClient creates an HTTP client for the central API.
func NewClient(cfg *config.CentralConfig, logger *zap.Logger) repository.CentralRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		uploadClient: &http.Client{
			Timeout: cfg.UploadTimeout,
		},
		baseURL:   cfg.BaseURL,
		authToken: cfg.AuthToken,
		logger:    logger,
	}
}

// stationDTO matches the central store's station snapshot shape.
type stationDTO struct {
	ID             string     `json:"id"`
	StationNumber  string     `json:"stationNumber"`
	StationType    string     `json:"stationType"`
	District       string     `json:"district"`
	Block          string     `json:"block"`
	Panchayat      string     `json:"panchayat"`
	Latitude       float64    `json:"latitude"`
	Longitude      float64    `json:"longitude"`
	LastVisited    *time.Time `json:"lastVisitedDate,omitempty"`
	EngineerName   string     `json:"vendorEngineerName,omitempty"`
}

type planDTO struct {
	ID        string        `json:"id"`
	StartDate time.Time     `json:"startDate"`
	EndDate   time.Time     `json:"endDate"`
	Status    string        `json:"status"`
	Items     []planItemDTO `json:"items"`
}

type planItemDTO struct {
	ID            string     `json:"id"`
	StationID     string     `json:"stationId"`
	StationNumber string     `json:"stationNumber"`
	PlanDate      *time.Time `json:"planDate,omitempty"`
	Order         int        `json:"order"`
	Purpose       string     `json:"purpose"`
	Visited       bool       `json:"visited"`
	VisitID       string     `json:"visitId,omitempty"`
}

type tripDTO struct {
	ID        string    `json:"id"`
	PlanID    string    `json:"planId"`
	Status    string    `json:"status"`
	StartDate time.Time `json:"startDate"`
	StartLat  float64   `json:"startLat"`
	StartLong float64   `json:"startLong"`
	TotalDist float64   `json:"totalDist"`
}

func (c *client) FetchStations(ctx context.Context) ([]domain.Station, error) {
	var dtos []stationDTO
	if err := c.getJSON(ctx, "/api/v1/stations", &dtos); err != nil {
		return nil, err
	}

	stations := make([]domain.Station, 0, len(dtos))
	for _, d := range dtos {
		stations = append(stations, domain.Station{
			ID:            d.ID,
			StationNumber: d.StationNumber,
			Kind:          domain.ParseStationKind(d.StationType),
			District:      d.District,
			Block:         d.Block,
			Panchayat:     d.Panchayat,
			Latitude:      d.Latitude,
			Longitude:     d.Longitude,
			LastVisited:   d.LastVisited,
			EngineerName:  d.EngineerName,
		})
	}

	c.logger.Debug("Fetched station snapshot", zap.Int("count", len(stations)))
	return stations, nil
}

func (c *client) FetchPlans(ctx context.Context, operatorID string) ([]domain.Plan, error) {
	var dtos []planDTO
	path := fmt.Sprintf("/api/v1/plans?operator_id=%s", operatorID)
	if err := c.getJSON(ctx, path, &dtos); err != nil {
		return nil, err
	}

	plans := make([]domain.Plan, 0, len(dtos))
	for _, d := range dtos {
		plan := domain.Plan{
			ID:         d.ID,
			OperatorID: operatorID,
			StartDate:  d.StartDate,
			EndDate:    d.EndDate,
			Status:     domain.PlanStatus(d.Status),
		}
		for _, it := range d.Items {
			plan.Items = append(plan.Items, domain.PlanItem{
				ID:            it.ID,
				PlanID:        d.ID,
				StationID:     it.StationID,
				StationNumber: it.StationNumber,
				PlanDate:      it.PlanDate,
				Order:         it.Order,
				Purpose:       it.Purpose,
				Visited:       it.Visited,
				VisitID:       it.VisitID,
			})
		}
		plans = append(plans, plan)
	}

	c.logger.Debug("Fetched assigned plans",
		zap.String("operator_id", operatorID),
		zap.Int("count", len(plans)))
	return plans, nil
}

func (c *client) StartTrip(ctx context.Context, operatorID, planID string, origin domain.Coordinate) (*domain.Trip, error) {
	body := map[string]interface{}{
		"operator_id": operatorID,
		"plan_id":     planID,
		"lat":         origin.Lat,
		"long":        origin.Long,
	}

	var dto tripDTO
	if err := c.postJSON(ctx, "/api/v1/trips/start", body, &dto); err != nil {
		return nil, err
	}

	return &domain.Trip{
		RemoteID:   dto.ID,
		OperatorID: operatorID,
		PlanID:     dto.PlanID,
		Status:     domain.TripStatus(dto.Status),
		StartedAt:  dto.StartDate,
		StartLat:   dto.StartLat,
		StartLong:  dto.StartLong,
	}, nil
}

func (c *client) CompleteTrip(ctx context.Context, remoteTripID string, end domain.Coordinate) error {
	body := map[string]interface{}{
		"lat":  end.Lat,
		"long": end.Long,
	}
	path := fmt.Sprintf("/api/v1/trips/%s/complete", remoteTripID)
	return c.postJSON(ctx, path, body, nil)
}

func (c *client) SubmitVisit(ctx context.Context, visit *domain.Visit) (string, error) {
	body := map[string]interface{}{
		"station_id": visit.StationID,
		"visit_date": visit.VisitDate,
		"latitude":   visit.Location.Lat,
		"longitude":  visit.Location.Long,
		"inspection": visit.Inspection,
		"media_refs": visit.MediaRefs,
	}
	if visit.TripID != "" {
		body["trip_id"] = visit.TripID
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := c.postJSON(ctx, "/api/v1/visits", body, &created); err != nil {
		return "", err
	}

	return created.ID, nil
}

func (c *client) UploadMedia(ctx context.Context, blob *domain.MediaBlob) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", blob.Filename)
	if err != nil {
		return "", apperrors.ErrUpload.WithDetails(map[string]interface{}{"reason": err.Error()})
	}
	if _, err := part.Write(blob.Data); err != nil {
		return "", apperrors.ErrUpload.WithDetails(map[string]interface{}{"reason": err.Error()})
	}

	meta, _ := json.Marshal(map[string]interface{}{
		"lat":  blob.Location.Lat,
		"long": blob.Location.Long,
		"time": blob.CapturedAt.UnixMilli(),
	})
	_ = mw.WriteField("meta", string(meta))

	if err := mw.Close(); err != nil {
		return "", apperrors.ErrUpload.WithDetails(map[string]interface{}{"reason": err.Error()})
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/media", &buf)
	if err != nil {
		return "", apperrors.ErrUpload.WithDetails(map[string]interface{}{"reason": err.Error()})
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	c.authorize(req)

	resp, err := c.uploadClient.Do(req)
	if err != nil {
		c.logger.Warn("Media upload failed", zap.String("filename", blob.Filename), zap.Error(err))
		return "", apperrors.ErrUpload.WithDetails(map[string]interface{}{"reason": err.Error()})
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Warn("Media upload rejected",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return "", apperrors.ErrUpload.WithDetails(map[string]interface{}{
			"status": resp.StatusCode,
		})
	}

	var result struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", apperrors.ErrUpload.WithDetails(map[string]interface{}{"reason": err.Error()})
	}

	return result.URL, nil
}

func (c *client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Central API unreachable", zap.String("path", path), zap.Error(err))
		return apperrors.ErrNetwork.WithDetails(map[string]interface{}{"reason": err.Error()})
	}
	defer resp.Body.Close()

	if err := c.mapStatus(resp, path); err != nil {
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *client) postJSON(ctx context.Context, path string, body interface{}, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Central API unreachable", zap.String("path", path), zap.Error(err))
		return apperrors.ErrNetwork.WithDetails(map[string]interface{}{"reason": err.Error()})
	}
	defer resp.Body.Close()

	if err := c.mapStatus(resp, path); err != nil {
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *client) authorize(req *http.Request) {
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}
}

// mapStatus translates central API status codes into the agent's error
// taxonomy. 5xx and unexpected codes are NETWORK_ERROR so callers retry.
func (c *client) mapStatus(resp *http.Response, path string) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil

	case resp.StatusCode == http.StatusConflict:
		return apperrors.ErrTripConflict

	case resp.StatusCode == http.StatusNotFound:
		return apperrors.ErrNoActiveTrip

	case resp.StatusCode == http.StatusUnprocessableEntity,
		resp.StatusCode == http.StatusBadRequest:
		body, _ := io.ReadAll(resp.Body)
		return apperrors.ErrValidation.WithDetails(map[string]interface{}{
			"response": string(body),
		})

	default:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Warn("Central API returned error",
			zap.String("path", path),
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return apperrors.ErrNetwork.WithDetails(map[string]interface{}{
			"status": resp.StatusCode,
		})
	}
}
