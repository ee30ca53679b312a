package services

import (
	"context"
	"encoding/json"

	awspkg "github.com/KingGimer44/VideoJuego/pkg/aws"

	"go.uber.org/zap"
)

type typedPublisher interface {
	PublishWithType(ctx context.Context, topicArn, eventType string, message []byte) error
}

// EventPublisher publishes domain events to one SNS topic. Failures are
// logged and never fail the request that produced the event.
type EventPublisher struct {
	sns      awspkg.SNSPublisher
	topicArn string
	logger   *zap.Logger
}

// NewEventPublisher returns a publisher. A nil client or empty topic makes
// every Publish a no-op.
func NewEventPublisher(sns awspkg.SNSPublisher, topicArn string, logger *zap.Logger) *EventPublisher {
	return &EventPublisher{sns: sns, topicArn: topicArn, logger: logger}
}

func (p *EventPublisher) enabled() bool {
	return p != nil && p.sns != nil && p.topicArn != ""
}

// Publish marshals payload and sends it tagged with eventType.
func (p *EventPublisher) Publish(ctx context.Context, eventType string, payload any) {
	if !p.enabled() {
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		p.logger.Error("Failed to marshal event", zap.String("event_type", eventType), zap.Error(err))
		return
	}

	if tp, ok := p.sns.(typedPublisher); ok {
		err = tp.PublishWithType(ctx, p.topicArn, eventType, body)
	} else {
		err = p.sns.Publish(ctx, p.topicArn, body)
	}
	if err != nil {
		p.logger.Error("Failed to publish event", zap.String("event_type", eventType), zap.Error(err))
		return
	}

	p.logger.Debug("Published event", zap.String("event_type", eventType))
}
