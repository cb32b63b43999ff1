package errors

import "net/http"

const (
	CodeTripConflict    = "TRIP_CONFLICT"
	CodeNotFound        = "NOT_FOUND"
	CodeValidationError = "VALIDATION_ERROR"
	CodeNetworkError    = "NETWORK_ERROR"
	CodeUploadError     = "UPLOAD_ERROR"
)

var (
	// ErrTripConflict - a trip is already ONGOING for this operator. The
	// caller is expected to redirect to the existing trip, not retry.
	ErrTripConflict = New(
		CodeTripConflict,
		"A trip is already in progress for this operator",
		http.StatusConflict,
	)

	ErrNoActiveTrip = New(
		CodeNotFound,
		"No active trip found for this operator",
		http.StatusNotFound,
	)

	ErrPlanNotFound = New(
		CodeNotFound,
		"Plan not found",
		http.StatusNotFound,
	)

	ErrStationNotFound = New(
		CodeNotFound,
		"Station not found",
		http.StatusNotFound,
	)

	ErrSubmissionNotFound = New(
		CodeNotFound,
		"Pending submission not found",
		http.StatusNotFound,
	)

	ErrValidation = New(
		CodeValidationError,
		"Required inspection fields are missing",
		http.StatusUnprocessableEntity,
	)

	ErrInsufficientMedia = New(
		CodeValidationError,
		"A visit requires at least 2 and at most 4 photos",
		http.StatusUnprocessableEntity,
	)

	// ErrNetwork - transient transport failure; always retryable and never
	// mutates local state.
	ErrNetwork = New(
		CodeNetworkError,
		"Central API unreachable",
		http.StatusBadGateway,
	)

	// ErrUpload - media upload failed; the whole visit submission is
	// deferred and retried as a unit.
	ErrUpload = New(
		CodeUploadError,
		"Media upload failed",
		http.StatusBadGateway,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Local store operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
