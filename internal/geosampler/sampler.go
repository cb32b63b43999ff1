// Package geosampler wraps the device location source. Position reads are
// single-shot and bounded: a read that cannot complete within the
// configured timeout resolves to the unknown-location sentinel instead of
// blocking the capture flow.
package geosampler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/fieldsync-agent/internal/domain"
	"github.com/fieldsync-agent/internal/pkg/geo"
)

// Source is a raw device location provider.
type Source interface {
	// Position blocks until a fix is available or ctx is done.
	Position(ctx context.Context) (domain.Coordinate, error)
}

// Sampler performs bounded single-shot reads against a Source.
type Sampler struct {
	source  Source
	timeout time.Duration
	logger  *zap.Logger
}

func NewSampler(source Source, timeout time.Duration, logger *zap.Logger) *Sampler {
	return &Sampler{
		source:  source,
		timeout: timeout,
		logger:  logger,
	}
}

// Sample returns the current position, or the unknown-location sentinel
// when acquisition times out, fails, or yields an out-of-range fix.
// Degrading to the sentinel is deliberate: capture must keep working
// without GPS, and the distance engine skips sentinel segments.
func (s *Sampler) Sample(ctx context.Context) domain.Coordinate {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	type result struct {
		pos domain.Coordinate
		err error
	}
	resCh := make(chan result, 1)

	go func() {
		pos, err := s.source.Position(ctx)
		resCh <- result{pos: pos, err: err}
	}()

	select {
	case <-ctx.Done():
		s.logger.Warn("GPS acquisition timed out, proceeding without location",
			zap.Duration("timeout", s.timeout))
		return domain.UnknownLocation

	case res := <-resCh:
		if res.err != nil {
			s.logger.Warn("GPS acquisition failed, proceeding without location",
				zap.Error(res.err))
			return domain.UnknownLocation
		}
		if !geo.ValidCoordinates(res.pos.Lat, res.pos.Long) {
			s.logger.Warn("GPS returned out-of-range fix, discarding",
				zap.Float64("lat", res.pos.Lat),
				zap.Float64("long", res.pos.Long))
			return domain.UnknownLocation
		}
		return res.pos
	}
}
