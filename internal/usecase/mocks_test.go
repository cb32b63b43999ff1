package usecase_test

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/mock"

	"github.com/fieldsync-agent/internal/domain"
	"github.com/fieldsync-agent/internal/pkg/metrics"
)

func newTestCollector() *metrics.Collector {
	return metrics.NewCollector(prometheus.NewRegistry(), "fieldsync_test")
}

// MockTripStore is a mock of repository.TripStore
type MockTripStore struct {
	mock.Mock
}

func (m *MockTripStore) Create(ctx context.Context, trip *domain.Trip) error {
	args := m.Called(ctx, trip)
	return args.Error(0)
}

func (m *MockTripStore) GetOngoing(ctx context.Context, operatorID string) (*domain.Trip, error) {
	args := m.Called(ctx, operatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Trip), args.Error(1)
}

func (m *MockTripStore) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Trip), args.Error(1)
}

func (m *MockTripStore) AddSegment(ctx context.Context, tripID string, distanceKm float64, point domain.Coordinate) error {
	args := m.Called(ctx, tripID, distanceKm, point)
	return args.Error(0)
}

func (m *MockTripStore) Complete(ctx context.Context, trip *domain.Trip, finalLegKm float64) error {
	args := m.Called(ctx, trip, finalLegKm)
	return args.Error(0)
}

func (m *MockTripStore) SetRemoteID(ctx context.Context, tripID, remoteID string) error {
	args := m.Called(ctx, tripID, remoteID)
	return args.Error(0)
}

// MockPlanStore is a mock of repository.PlanStore
type MockPlanStore struct {
	mock.Mock
}

func (m *MockPlanStore) ReplaceAll(ctx context.Context, operatorID string, plans []domain.Plan) error {
	args := m.Called(ctx, operatorID, plans)
	return args.Error(0)
}

func (m *MockPlanStore) ListByOperator(ctx context.Context, operatorID string) ([]domain.Plan, error) {
	args := m.Called(ctx, operatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Plan), args.Error(1)
}

func (m *MockPlanStore) GetByID(ctx context.Context, id string) (*domain.Plan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Plan), args.Error(1)
}

func (m *MockPlanStore) MarkItemVisited(ctx context.Context, planID, stationID string) (bool, error) {
	args := m.Called(ctx, planID, stationID)
	return args.Bool(0), args.Error(1)
}

// MockStationStore is a mock of repository.StationStore
type MockStationStore struct {
	mock.Mock
}

func (m *MockStationStore) ReplaceAll(ctx context.Context, stations []domain.Station) error {
	args := m.Called(ctx, stations)
	return args.Error(0)
}

func (m *MockStationStore) List(ctx context.Context) ([]domain.Station, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Station), args.Error(1)
}

func (m *MockStationStore) GetByID(ctx context.Context, id string) (*domain.Station, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Station), args.Error(1)
}

func (m *MockStationStore) TouchVisited(ctx context.Context, id string, when time.Time, engineer string) error {
	args := m.Called(ctx, id, when, engineer)
	return args.Error(0)
}

// MockSubmissionStore is a mock of repository.SubmissionStore
type MockSubmissionStore struct {
	mock.Mock
}

func (m *MockSubmissionStore) Enqueue(ctx context.Context, sub *domain.Submission) (string, error) {
	args := m.Called(ctx, sub)
	return args.String(0), args.Error(1)
}

func (m *MockSubmissionStore) Retryable(ctx context.Context) ([]domain.Submission, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Submission), args.Error(1)
}

func (m *MockSubmissionStore) MarkStatus(ctx context.Context, id string, status domain.SubmissionStatus, lastError string) error {
	args := m.Called(ctx, id, status, lastError)
	return args.Error(0)
}

func (m *MockSubmissionStore) CountByStatus(ctx context.Context) (map[domain.SubmissionStatus]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.SubmissionStatus]int), args.Error(1)
}

// MockCentralRepository is a mock of repository.CentralRepository
type MockCentralRepository struct {
	mock.Mock
}

func (m *MockCentralRepository) FetchStations(ctx context.Context) ([]domain.Station, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Station), args.Error(1)
}

func (m *MockCentralRepository) FetchPlans(ctx context.Context, operatorID string) ([]domain.Plan, error) {
	args := m.Called(ctx, operatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Plan), args.Error(1)
}

func (m *MockCentralRepository) StartTrip(ctx context.Context, operatorID, planID string, origin domain.Coordinate) (*domain.Trip, error) {
	args := m.Called(ctx, operatorID, planID, origin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Trip), args.Error(1)
}

func (m *MockCentralRepository) CompleteTrip(ctx context.Context, remoteTripID string, end domain.Coordinate) error {
	args := m.Called(ctx, remoteTripID, end)
	return args.Error(0)
}

func (m *MockCentralRepository) SubmitVisit(ctx context.Context, visit *domain.Visit) (string, error) {
	args := m.Called(ctx, visit)
	return args.String(0), args.Error(1)
}

func (m *MockCentralRepository) UploadMedia(ctx context.Context, blob *domain.MediaBlob) (string, error) {
	args := m.Called(ctx, blob)
	return args.String(0), args.Error(1)
}
