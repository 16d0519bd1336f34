// Package publisher delivers signup events to downstream consumers.
package publisher

import (
	"context"

	"github.com/okian/mergington/internal/domain/model"
	"github.com/okian/mergington/pkg/logger"
)

// Publisher delivers a signup event. Implementations must be safe for
// concurrent use by several workers.
type Publisher interface {
	Publish(ctx context.Context, e model.SignupEvent) error
	Close() error
}

// LogPublisher writes one structured log record per signup event.
type LogPublisher struct {
	logger logger.Logger
}

// NewLogPublisher returns a publisher logging through l, or the global
// logger named "signups" when l is nil.
func NewLogPublisher(l logger.Logger) *LogPublisher {
	if l == nil {
		l = logger.Named("signups")
	}
	return &LogPublisher{logger: l}
}

func (p *LogPublisher) Publish(ctx context.Context, e model.SignupEvent) error {
	p.logger.Info(ctx, "participant signed up",
		logger.String("event_id", e.ID),
		logger.String("activity", e.Activity),
		logger.String("email", e.Email),
		logger.Int("participants", e.Participants),
		logger.Any("occurred_at", e.OccurredAt),
	)
	return nil
}

func (p *LogPublisher) Close() error { return nil }
