package social

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/joefazee/betpoints/internal/events"
	"github.com/joefazee/betpoints/internal/logger"
	"github.com/joefazee/betpoints/models"
	"gorm.io/gorm"
)

var ErrUnknownEvent = errors.New("engagement event has no counter to apply")

// CounterProcessor is the engagement worker's handler. Each event is applied at most
// once: its id is recorded in processed_events in the same transaction as the
// counter update.
type CounterProcessor struct {
	db     *gorm.DB
	repo   Repository
	logger logger.Logger
}

func NewCounterProcessor(db *gorm.DB, repo Repository, log logger.Logger) *CounterProcessor {
	return &CounterProcessor{db: db, repo: repo, logger: log}
}

func (p *CounterProcessor) Handle(ctx context.Context, e events.EngagementEvent) error {
	counter, id, err := counterFor(e)
	if err != nil {
		return err
	}

	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repoTx := p.repo.WithTx(tx)

		fresh, err := repoTx.MarkProcessed(ctx, e.EventID)
		if err != nil {
			return fmt.Errorf("mark processed: %w", err)
		}
		if !fresh {
			return events.ErrDuplicateEvent
		}

		if err := repoTx.AdjustCounter(ctx, counter, id, e.Delta); err != nil {
			return fmt.Errorf("adjust counter: %w", err)
		}

		p.logger.Debug("engagement event applied", map[string]interface{}{
			"event_id": e.EventID,
			"kind":     e.Kind,
			"item_id":  id,
			"delta":    e.Delta,
		})
		return nil
	})
}

func counterFor(e events.EngagementEvent) (Counter, uuid.UUID, error) {
	switch e.Kind {
	case events.KindLikeAdded, events.KindLikeRemoved:
		switch models.ItemType(e.ItemType) {
		case models.ItemTypePost:
			return PostLikes, e.ItemID, nil
		case models.ItemTypeComment:
			return CommentLikes, e.ItemID, nil
		}
	case events.KindCommentAdded, events.KindCommentRemoved:
		if e.PostID != nil {
			return PostComments, *e.PostID, nil
		}
	}
	return 0, uuid.Nil, fmt.Errorf("%w: kind=%s item_type=%s", ErrUnknownEvent, e.Kind, e.ItemType)
}
