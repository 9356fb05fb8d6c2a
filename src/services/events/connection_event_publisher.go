package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"
	"userconnections/src/infra/kafka"

	"github.com/google/uuid"
)

const EventTypeConnectionsReconciled = "connections.reconciled"

// ConnectionsReconciledEvent anuncia que uma reconciliação terminou.
// É um anúncio de desfecho do import pull-based, não um feed de mudanças.
type ConnectionsReconciledEvent struct {
	Platform       string    `json:"platform"`
	PlatformUserID string    `json:"platform_user_id"`
	UserID         int64     `json:"user_id"`
	FollowerCount  int       `json:"follower_count"`
	FollowingCount int       `json:"following_count"`
	ReconciledAt   time.Time `json:"reconciled_at"`
}

type ConnectionEventPublisher struct {
	logger      *slog.Logger
	kafkaClient *kafka.KafkaClient
	topic       string
}

func NewConnectionEventPublisher(
	logger *slog.Logger,
	kafkaClient *kafka.KafkaClient,
	topic string,
) *ConnectionEventPublisher {
	return &ConnectionEventPublisher{
		logger:      logger,
		kafkaClient: kafkaClient,
		topic:       topic,
	}
}

// PublishReconciled publishes a single reconciliation outcome to Kafka.
func (p *ConnectionEventPublisher) PublishReconciled(ctx context.Context, event ConnectionsReconciledEvent) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("ConnectionEventPublisher.PublishReconciled - failed to marshal event: %w", err)
	}

	eventID := uuid.New().String()

	kafkaMsg := kafka.Message{
		// Partition by natural key for ordering per subject
		Key:   fmt.Sprintf("%s:%s", event.Platform, event.PlatformUserID),
		Value: eventBytes,
		Headers: map[string]string{
			"event_id":   eventID,
			"event_type": EventTypeConnectionsReconciled,
			"platform":   event.Platform,
		},
	}

	if err := p.kafkaClient.Producer([]kafka.Message{kafkaMsg}, p.topic); err != nil {
		p.logger.Error("Failed to publish reconciled event to Kafka",
			"error", err,
			"topic", p.topic,
			"event_id", eventID,
			"platform_user_id", event.PlatformUserID)
		return err
	}

	p.logger.Debug("Published reconciled event",
		"event_id", eventID,
		"platform_user_id", event.PlatformUserID,
		"follower_count", event.FollowerCount,
		"following_count", event.FollowingCount)

	return nil
}
