package services

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"bookbot-backend/internal/logging"
	"bookbot-backend/internal/metrics"
	"bookbot-backend/internal/models"
	"bookbot-backend/internal/validation"
)

// Publisher sends a payload to every subscriber of channel.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

type RedisPublisher struct {
	client *redis.Client
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

func (p *RedisPublisher) Publish(ctx context.Context, channel string, payload []byte) error {
	return p.client.Publish(ctx, channel, payload).Err()
}

// FeedbackService records message ratings. Nothing is stored; events are
// logged and, with a publisher, broadcast.
type FeedbackService struct {
	publisher Publisher
	channel   string
	now       func() time.Time
}

// NewFeedbackService accepts a nil publisher when no broker is configured.
func NewFeedbackService(publisher Publisher, channel string, now func() time.Time) *FeedbackService {
	if now == nil {
		now = time.Now
	}
	return &FeedbackService{publisher: publisher, channel: channel, now: now}
}

func (s *FeedbackService) Submit(ctx context.Context, req models.FeedbackRequest) (*models.FeedbackEvent, error) {
	if err := validation.ValidateStruct(&req); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}

	event := &models.FeedbackEvent{
		ID:           uuid.NewString(),
		MessageID:    req.MessageID,
		IsPositive:   req.IsPositive,
		FeedbackText: req.FeedbackText,
		ReceivedAt:   s.now().UTC(),
	}

	logging.Ctx(ctx).Info().
		Str("feedback_id", event.ID).
		Str("message_id", event.MessageID).
		Bool("positive", event.IsPositive).
		Str("text", event.FeedbackText).
		Msg("feedback received")
	metrics.RecordFeedback(event.IsPositive)

	if s.publisher != nil {
		if err := s.publish(ctx, event); err != nil {
			// Broadcast is best effort; the rating itself was accepted.
			logging.Ctx(ctx).Warn().Err(err).Str("feedback_id", event.ID).Msg("failed to publish feedback event")
		}
	}
	return event, nil
}

func (s *FeedbackService) publish(ctx context.Context, event *models.FeedbackEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode feedback event: %w", err)
	}
	return s.publisher.Publish(ctx, s.channel, data)
}
