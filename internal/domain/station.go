package domain

import "time"

// StationKind enumerates the supported station types.
type StationKind string

const (
	// KindWeatherAutomatic - automatic weather station (AWS): full sensor
	// suite including temperature, wind, pressure and solar radiation.
	KindWeatherAutomatic StationKind = "WEATHER_AUTOMATIC"

	// KindRainGauge - automatic rain gauge (ARG): rainfall sensors only.
	KindRainGauge StationKind = "RAIN_GAUGE"

	KindUnknown StationKind = "UNKNOWN"
)

// ParseStationKind maps the central store's short type codes onto kinds.
func ParseStationKind(s string) StationKind {
	switch s {
	case "AWS", string(KindWeatherAutomatic):
		return KindWeatherAutomatic
	case "ARG", string(KindRainGauge):
		return KindRainGauge
	default:
		return KindUnknown
	}
}

// IsValid reports whether the kind is one of the known station types.
func (k StationKind) IsValid() bool {
	return k == KindWeatherAutomatic || k == KindRainGauge
}

// Station is reference data owned by the central store. The agent holds a
// read-only cached copy that is replaced wholesale on every pull.
type Station struct {
	ID            string      `json:"id" db:"id"`
	StationNumber string      `json:"station_number" db:"station_number"`
	Kind          StationKind `json:"kind" db:"kind"`
	District      string      `json:"district" db:"district"`
	Block         string      `json:"block" db:"block"`
	Panchayat     string      `json:"panchayat" db:"panchayat"`
	Latitude      float64     `json:"latitude" db:"latitude"`
	Longitude     float64     `json:"longitude" db:"longitude"`
	LastVisited   *time.Time  `json:"last_visited,omitempty" db:"last_visited"`
	EngineerName  string      `json:"engineer_name,omitempty" db:"engineer_name"`
}

// Location returns the station's coordinate.
func (s *Station) Location() Coordinate {
	return Coordinate{Lat: s.Latitude, Long: s.Longitude}
}
