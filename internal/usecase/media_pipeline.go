package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/fieldsync-agent/internal/domain"
	"github.com/fieldsync-agent/internal/domain/repository"
	"github.com/fieldsync-agent/internal/pkg/metrics"
)

// MediaPipeline uploads a visit's photos to the central store before the
// visit record itself is submitted. Uploads are all-or-nothing per visit:
// one failed blob defers the whole visit, and already-uploaded blobs are
// simply re-sent on the next attempt since the central store deduplicates
// by blob id.
type MediaPipeline struct {
	central repository.CentralRepository
	metrics *metrics.Collector
	logger  *zap.Logger
}

func NewMediaPipeline(central repository.CentralRepository, collector *metrics.Collector, logger *zap.Logger) *MediaPipeline {
	return &MediaPipeline{
		central: central,
		metrics: collector,
		logger:  logger,
	}
}

// UploadAll pushes every blob in capture order and returns the remote refs
// in the same order. The first failure aborts the batch with UPLOAD_ERROR.
func (p *MediaPipeline) UploadAll(ctx context.Context, blobs []domain.MediaBlob) ([]string, error) {
	refs := make([]string, 0, len(blobs))
	for i := range blobs {
		blob := &blobs[i]
		ref, err := p.central.UploadMedia(ctx, blob)
		if err != nil {
			p.logger.Warn("Media upload failed, deferring visit",
				zap.String("blob_id", blob.ID),
				zap.Int("uploaded", len(refs)),
				zap.Int("total", len(blobs)),
				zap.Error(err))
			return nil, err
		}
		p.metrics.MediaUploadBytes.Add(float64(len(blob.Data)))
		refs = append(refs, ref)
	}
	return refs, nil
}
