package leaderboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/joefazee/betpoints/internal/cache"
	"github.com/joefazee/betpoints/internal/logger"
	"gorm.io/gorm"
)

// Unranked is reported for callers who do not appear in the standings.
const Unranked = "unranked"

type Response struct {
	Leaderboard []RankedEntry `json:"leaderboard"`
	UserRank    string        `json:"user_rank"`
	UserBalance int64         `json:"user_balance"`
}

type service struct {
	repo   Repository
	cache  cache.Cache[string]
	config *Config
	logger logger.Logger
}

func NewService(repo Repository, c cache.Cache[string], config *Config, log logger.Logger) Service {
	if config == nil {
		config = GetDefaultConfig()
	}
	return &service{repo: repo, cache: c, config: config, logger: log}
}

func (s *service) cacheKey() string {
	return "leaderboard:top:" + strconv.Itoa(s.config.Size)
}

// Get returns the ranked top of the board plus the caller's own competition rank,
// which is computed live so it stays correct for users below the top.
func (s *service) Get(ctx context.Context, userID uuid.UUID) (*Response, error) {
	board, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	resp := &Response{Leaderboard: board, UserRank: Unranked}

	entry, err := s.repo.GetEntry(ctx, userID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return resp, nil
	case err != nil:
		return nil, fmt.Errorf("get leaderboard entry: %w", err)
	}

	above, err := s.repo.CountAbove(ctx, entry.Balance)
	if err != nil {
		return nil, fmt.Errorf("count users above: %w", err)
	}
	resp.UserRank = Ordinal(int(above) + 1)
	resp.UserBalance = entry.Balance
	return resp, nil
}

// snapshot serves the ranked board from cache, rebuilding it on a miss. Cache failures
// fall through to the database.
func (s *service) snapshot(ctx context.Context) ([]RankedEntry, error) {
	if s.cache != nil && s.config.CacheTTL > 0 {
		raw, err := s.cache.Get(ctx, s.cacheKey())
		if err == nil {
			var board []RankedEntry
			if jsonErr := json.Unmarshal([]byte(raw), &board); jsonErr == nil {
				return board, nil
			}
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("leaderboard cache read failed", map[string]interface{}{"error": err.Error()})
		}
	}

	entries, err := s.repo.TopEntries(ctx, s.config.Size)
	if err != nil {
		return nil, fmt.Errorf("load leaderboard: %w", err)
	}
	board := Rank(entries)

	if s.cache != nil && s.config.CacheTTL > 0 {
		raw, err := json.Marshal(board)
		if err == nil {
			err = s.cache.Set(ctx, s.cacheKey(), string(raw), s.config.CacheTTL)
		}
		if err != nil {
			s.logger.Warn("leaderboard cache write failed", map[string]interface{}{"error": err.Error()})
		}
	}
	return board, nil
}
