package events

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joefazee/betpoints/internal/logger"
	"github.com/segmentio/kafka-go"
)

func NewWriter(cfg Config) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(strings.Split(cfg.Brokers, ",")...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
		WriteTimeout:           cfg.WriteTimeout,
	}
}

func NewReader(cfg Config) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  strings.Split(cfg.Brokers, ","),
		Topic:    cfg.Topic,
		GroupID:  cfg.GroupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// KafkaPublisher keys messages by item id so events for one item stay ordered
// within a partition.
type KafkaPublisher struct {
	writer  messageWriter
	timeout time.Duration
}

var _ Publisher = (*KafkaPublisher)(nil)

func NewKafkaPublisher(w messageWriter, timeout time.Duration) *KafkaPublisher {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &KafkaPublisher{writer: w, timeout: timeout}
}

func (p *KafkaPublisher) Publish(ctx context.Context, e EngagementEvent) error {
	b, err := e.Encode()
	if err != nil {
		return fmt.Errorf("encode engagement event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(e.ItemID.String()),
		Value: b,
		Time:  e.OccurredAt,
	})
}

// LogPublisher only logs. Used when KAFKA_ENABLED=false.
type LogPublisher struct {
	logger logger.Logger
}

func NewLogPublisher(l logger.Logger) *LogPublisher {
	return &LogPublisher{logger: l}
}

func (p *LogPublisher) Publish(_ context.Context, e EngagementEvent) error {
	p.logger.Debug("engagement event not published", map[string]interface{}{
		"event_id": e.EventID.String(),
		"kind":     string(e.Kind),
		"item_id":  e.ItemID.String(),
	})
	return nil
}

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

// HandlerFunc applies one event. Returning an error triggers a retry.
type HandlerFunc func(ctx context.Context, e EngagementEvent) error

// Consumer fetches, handles, then commits. Undecodable messages are committed and
// skipped; handler failures are retried MaxAttempts times before the message is
// skipped.
type Consumer struct {
	Reader      messageReader
	Handle      HandlerFunc
	Logger      logger.Logger
	MaxAttempts int
	Backoff     time.Duration

	OnResult func(kind Kind, result string)
}

func (c *Consumer) Run(ctx context.Context) error {
	attempts := c.MaxAttempts
	if attempts <= 0 {
		attempts = 3
	}

	for {
		m, err := c.Reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.Logger.Warn("kafka fetch failed", map[string]interface{}{"error": err.Error()})
			if !sleep(ctx, c.backoff()) {
				return ctx.Err()
			}
			continue
		}

		e, err := DecodeEngagementEvent(m.Value)
		if err != nil {
			c.Logger.Error(fmt.Errorf("decode engagement event: %w", err), map[string]interface{}{"offset": m.Offset})
			c.report("", "invalid")
		} else {
			c.handle(ctx, e, attempts)
		}

		if err := c.Reader.CommitMessages(ctx, m); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.Logger.Error(fmt.Errorf("commit offset: %w", err), map[string]interface{}{"offset": m.Offset})
		}
	}
}

func (c *Consumer) handle(ctx context.Context, e EngagementEvent, attempts int) {
	var err error
	for i := 1; i <= attempts; i++ {
		if err = c.Handle(ctx, e); err == nil {
			c.report(e.Kind, "applied")
			return
		}
		if errors.Is(err, ErrDuplicateEvent) {
			c.report(e.Kind, "duplicate")
			return
		}
		if i < attempts && !sleep(ctx, c.backoff()*time.Duration(i)) {
			break
		}
	}
	c.Logger.Error(fmt.Errorf("apply engagement event: %w", err), map[string]interface{}{
		"event_id": e.EventID.String(),
		"kind":     string(e.Kind),
	})
	c.report(e.Kind, "failed")
}

func (c *Consumer) backoff() time.Duration {
	if c.Backoff <= 0 {
		return 500 * time.Millisecond
	}
	return c.Backoff
}

func (c *Consumer) report(kind Kind, result string) {
	if c.OnResult != nil {
		c.OnResult(kind, result)
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// ErrDuplicateEvent tells the consumer an event was already applied.
var ErrDuplicateEvent = errors.New("event already processed")
