package leaderboard

import (
	"time"

	"github.com/joefazee/betpoints/models"
)

type Config struct {
	Size     int           `env:"LEADERBOARD_SIZE" env-default:"50"`
	CacheTTL time.Duration `env:"LEADERBOARD_CACHE_TTL" env-default:"30s"`
}

func (c *Config) Validate() error {
	type validation struct {
		ok  bool
		err error
	}

	checks := []validation{
		{c.Size > 0 && c.Size <= 500, models.ErrInvalidLeaderboardSize},
		{c.CacheTTL >= 0, models.ErrInvalidCacheTTL},
	}

	for _, v := range checks {
		if !v.ok {
			return v.err
		}
	}
	return nil
}

func GetDefaultConfig() *Config {
	return &Config{
		Size:     50,
		CacheTTL: 30 * time.Second,
	}
}
