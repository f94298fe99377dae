package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// Topic carrying all authorization and account audit events.
const TopicAudit = "asset-service.audit"

// Event types published on the audit topic. The audit trail itself is an
// external consumer; this service only emits.
const (
	EventFeatureGranted = "permission.feature_granted"
	EventFeatureRevoked = "permission.feature_revoked"
	EventSchoolGranted  = "permission.school_granted"
	EventSchoolRevoked  = "permission.school_revoked"
	EventUserStatus     = "user.status_changed"
	EventUserRole       = "user.role_changed"
	EventUserDeleted    = "user.deleted"
)

// Event is the envelope written to the audit topic.
type Event struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	ActorID    uint           `json:"actor_id"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload"`
}

// Publisher emits audit events. Implementations must be safe for
// concurrent use.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NewEvent stamps an envelope with id and time.
func NewEvent(eventType string, actorID uint, payload map[string]any) Event {
	return Event{
		ID:         uuid.New().String(),
		Type:       eventType,
		ActorID:    actorID,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

// watermillPublisher adapts any watermill message.Publisher to the audit
// Publisher interface.
type watermillPublisher struct {
	publisher message.Publisher
	logger    *slog.Logger
}

func newWatermillPublisher(publisher message.Publisher, logger *slog.Logger) Publisher {
	return &watermillPublisher{publisher: publisher, logger: logger}
}

func (p *watermillPublisher) Publish(ctx context.Context, event Event) error {
	raw, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}

	msg := message.NewMessage(event.ID, raw)
	msg.Metadata.Set("type", event.Type)
	msg.SetContext(ctx)

	if err := p.publisher.Publish(TopicAudit, msg); err != nil {
		return fmt.Errorf("publish audit event: %w", err)
	}

	p.logger.Debug("audit event published", "type", event.Type, "id", event.ID)
	return nil
}

func (p *watermillPublisher) Close() error {
	return p.publisher.Close()
}

// NewChannelPublisher returns an in-process publisher for development and
// tests. Events are dropped when nothing subscribes.
func NewChannelPublisher(logger *slog.Logger) Publisher {
	pubsub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewSlogLogger(logger))
	return newWatermillPublisher(pubsub, logger)
}
