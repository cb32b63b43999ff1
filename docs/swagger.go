// Package docs FieldSync Agent API.
//
// On-device agent for offline-first field inspection of weather stations.
// Captures inspection visits with photos while disconnected, tracks trip
// distance from GPS fixes and reconciles with the central store when
// connectivity returns.
//
// Main capabilities:
// - Cached station catalogue and tour plans with a daily work view
// - Trip lifecycle with segment-by-segment distance accumulation
// - Offline visit capture with kind-aware inspection validation
// - Durable submission queue with pull/push synchronization
//
//	Schemes: http
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package docs
