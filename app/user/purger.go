package user

import (
	"context"
	"time"

	"github.com/joefazee/betpoints/internal/logger"
)

// TokenPurger drops blacklist rows for tokens that have long since expired.
type TokenPurger struct {
	repo     Repository
	interval time.Duration
	logger   logger.Logger
}

func NewTokenPurger(repo Repository, interval time.Duration, log logger.Logger) *TokenPurger {
	if interval <= 0 {
		interval = time.Hour
	}
	return &TokenPurger{repo: repo, interval: interval, logger: log}
}

// Run purges on every tick until ctx is done.
func (p *TokenPurger) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Purge(ctx)
		}
	}
}

func (p *TokenPurger) Purge(ctx context.Context) int64 {
	n, err := p.repo.PurgeRevokedTokens(ctx)
	if err != nil {
		p.logger.Error(err, map[string]interface{}{"component": "token_purger"})
		return 0
	}
	if n > 0 {
		p.logger.Debug("purged revoked tokens", map[string]interface{}{"count": n})
	}
	return n
}
