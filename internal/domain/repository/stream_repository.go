package repository

import (
	"context"

	"github.com/fieldsync-agent/internal/domain"
)

// StreamRepository carries sync coordination events between the agent API
// and the sync worker.
type StreamRepository interface {
	CreateConsumerGroup(ctx context.Context, stream, group string) error
	// ConsumeBatch reads up to count pending messages without blocking
	// indefinitely.
	ConsumeBatch(ctx context.Context, stream, group, consumer string, count int) ([]domain.StreamMessage, error)
	AckMessage(ctx context.Context, stream, group, messageID string) error
	Publish(ctx context.Context, stream string, data interface{}) error
}
