package geo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fieldsync-agent/internal/domain"
	"github.com/fieldsync-agent/internal/pkg/geo"
)

func TestDistance_IdenticalPointsAreZero(t *testing.T) {
	p := domain.Coordinate{Lat: 25.5941, Long: 85.1376}

	d, ok := geo.Distance(p, p)

	assert.True(t, ok)
	assert.Equal(t, 0.0, d)
}

func TestDistance_Symmetric(t *testing.T) {
	a := domain.Coordinate{Lat: 25.5941, Long: 85.1376}
	b := domain.Coordinate{Lat: 26.1197, Long: 85.3910}

	ab, okAB := geo.Distance(a, b)
	ba, okBA := geo.Distance(b, a)

	assert.True(t, okAB)
	assert.True(t, okBA)
	assert.InDelta(t, ab, ba, 1e-9)
}

func TestDistance_KnownValue(t *testing.T) {
	// One hundredth of a degree in both axes near (10,20) is about 1.56 km.
	a := domain.Coordinate{Lat: 10.0, Long: 20.0}
	b := domain.Coordinate{Lat: 10.01, Long: 20.01}

	d, ok := geo.Distance(a, b)

	assert.True(t, ok)
	assert.InDelta(t, 1.5606, d, 0.001)
}

func TestDistance_SentinelEndpointNotComputable(t *testing.T) {
	real := domain.Coordinate{Lat: 10.0, Long: 20.0}

	cases := []struct {
		name string
		a, b domain.Coordinate
	}{
		{"sentinel first", domain.UnknownLocation, real},
		{"sentinel second", real, domain.UnknownLocation},
		{"both sentinel", domain.UnknownLocation, domain.UnknownLocation},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, ok := geo.Distance(tc.a, tc.b)
			assert.False(t, ok)
			assert.Equal(t, 0.0, d)
		})
	}
}

func TestValidCoordinates(t *testing.T) {
	assert.True(t, geo.ValidCoordinates(25.59, 85.13))
	assert.False(t, geo.ValidCoordinates(91, 0))
	assert.False(t, geo.ValidCoordinates(0, -181))
}
