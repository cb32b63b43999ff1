package domain

// Coordinate is a WGS84 latitude/longitude pair.
//
// The pair (0,0) is the sentinel for "no location available". GPS
// acquisition that times out yields it, and distance computation treats it
// as absent rather than as a real point in the Gulf of Guinea. This
// convention is kept for compatibility with the central store.
type Coordinate struct {
	Lat  float64 `json:"lat" db:"lat"`
	Long float64 `json:"long" db:"long"`
}

// IsZero reports whether the coordinate is the "unknown location" sentinel.
func (c Coordinate) IsZero() bool {
	return c.Lat == 0 && c.Long == 0
}

// UnknownLocation is the sentinel coordinate used when GPS is unavailable.
var UnknownLocation = Coordinate{}
