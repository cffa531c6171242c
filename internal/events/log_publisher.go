// Package events holds publishers that do not need a broker.
package events

import (
	"context"

	interfaces "github.com/sheikh-saqib/cold-storage-ledger/internal/interfaces"
	"go.uber.org/zap"
)

// LogPublisher logs events instead of sending them anywhere. Used when no
// Kafka brokers are configured.
type LogPublisher struct {
	log *zap.Logger
}

func NewLogPublisher(log *zap.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(ctx context.Context, key string, event any) error {
	p.log.Info("event", zap.String("key", key), zap.Any("event", event))
	return nil
}

var _ interfaces.EventPublisher = (*LogPublisher)(nil)
