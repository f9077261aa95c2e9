// Package events carries engagement changes (likes, comments) from the API to the
// counter worker over Kafka.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const TopicEngagement = "engagement_events"

type Kind string

const (
	KindLikeAdded      Kind = "like_added"
	KindLikeRemoved    Kind = "like_removed"
	KindCommentAdded   Kind = "comment_added"
	KindCommentRemoved Kind = "comment_removed"
)

// EngagementEvent describes one counter change. ItemType is "post" or "comment".
// PostID is set for comment events so the worker can bump comment_count.
type EngagementEvent struct {
	EventID    uuid.UUID  `json:"event_id"`
	Kind       Kind       `json:"kind"`
	UserID     uuid.UUID  `json:"user_id"`
	ItemID     uuid.UUID  `json:"item_id"`
	ItemType   string     `json:"item_type"`
	PostID     *uuid.UUID `json:"post_id,omitempty"`
	Delta      int        `json:"delta"`
	OccurredAt time.Time  `json:"occurred_at"`
}

// NewEngagementEvent stamps a fresh event id and time.
func NewEngagementEvent(kind Kind, userID, itemID uuid.UUID, itemType string, postID *uuid.UUID) EngagementEvent {
	delta := 1
	if kind == KindLikeRemoved || kind == KindCommentRemoved {
		delta = -1
	}
	return EngagementEvent{
		EventID:    uuid.New(),
		Kind:       kind,
		UserID:     userID,
		ItemID:     itemID,
		ItemType:   itemType,
		PostID:     postID,
		Delta:      delta,
		OccurredAt: time.Now().UTC(),
	}
}

func (e EngagementEvent) Encode() ([]byte, error) {
	return json.Marshal(e)
}

func DecodeEngagementEvent(b []byte) (EngagementEvent, error) {
	var e EngagementEvent
	err := json.Unmarshal(b, &e)
	return e, err
}

// Publisher emits engagement events after the originating write committed.
type Publisher interface {
	Publish(ctx context.Context, e EngagementEvent) error
}

// Config is shared by the publisher and the worker.
type Config struct {
	Brokers      string        `env:"KAFKA_BROKERS" env-default:"localhost:9092"`
	Topic        string        `env:"KAFKA_ENGAGEMENT_TOPIC" env-default:"engagement_events"`
	GroupID      string        `env:"KAFKA_GROUP_ID" env-default:"engagement-worker"`
	WriteTimeout time.Duration `env:"KAFKA_WRITE_TIMEOUT" env-default:"2s"`
	Enabled      bool          `env:"KAFKA_ENABLED" env-default:"true"`
}
