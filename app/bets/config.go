package bets

import (
	"time"

	"github.com/joefazee/betpoints/models"
)

// Config controls how long bets may sit unresolved before the sweeper closes them.
type Config struct {
	OpenTTL        time.Duration `env:"BET_OPEN_TTL" env-default:"24h"`
	SettleTimeout  time.Duration `env:"BET_SETTLE_TIMEOUT" env-default:"72h"`
	SweepInterval  time.Duration `env:"BET_SWEEP_INTERVAL" env-default:"5m"`
	SweepBatchSize int           `env:"BET_SWEEP_BATCH_SIZE" env-default:"100"`
}

func (c *Config) Validate() error {
	type validation struct {
		ok  bool
		err error
	}

	checks := []validation{
		{c.OpenTTL > 0, models.ErrInvalidBetTimeout},
		{c.SettleTimeout > 0, models.ErrInvalidBetTimeout},
		{c.SweepInterval >= time.Second, models.ErrInvalidSweepInterval},
		{c.SweepBatchSize > 0 && c.SweepBatchSize <= 1000, models.ErrInvalidSweepInterval},
	}

	for _, v := range checks {
		if !v.ok {
			return v.err
		}
	}
	return nil
}

// GetDefaultConfig returns the default bet lifecycle configuration
func GetDefaultConfig() *Config {
	return &Config{
		OpenTTL:        24 * time.Hour,
		SettleTimeout:  72 * time.Hour,
		SweepInterval:  5 * time.Minute,
		SweepBatchSize: 100,
	}
}
