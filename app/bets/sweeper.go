package bets

import (
	"context"
	"time"

	"github.com/joefazee/betpoints/internal/logger"
)

// Sweeper periodically closes bets that outlived their deadlines.
type Sweeper struct {
	settler  Settler
	interval time.Duration
	logger   logger.Logger
	now      func() time.Time
}

func NewSweeper(settler Settler, config *Config, log logger.Logger) *Sweeper {
	if config == nil {
		config = GetDefaultConfig()
	}
	return &Sweeper{
		settler:  settler,
		interval: config.SweepInterval,
		logger:   log,
		now:      time.Now,
	}
}

// Run sweeps once immediately, then on every tick until ctx is done.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("bet sweeper started", map[string]interface{}{"interval": s.interval.String()})
	for {
		s.Sweep(ctx)

		select {
		case <-ctx.Done():
			s.logger.Info("bet sweeper stopped", nil)
			return
		case <-ticker.C:
		}
	}
}

// Sweep runs a single pass and reports the result.
func (s *Sweeper) Sweep(ctx context.Context) *BatchResult {
	result, err := s.settler.ExpireStaleBets(ctx, s.now())
	if err != nil {
		s.logger.Error(err, map[string]interface{}{"component": "bet_sweeper"})
	}
	if result != nil && (result.Total() > 0 || result.Failed > 0) {
		s.logger.Info("expired stale bets", map[string]interface{}{
			"cancelled": result.Cancelled,
			"pushed":    result.Pushed,
			"failed":    result.Failed,
		})
	}
	return result
}
