package app

import (
	"time"

	"github.com/joefazee/betpoints/app/bets"
	"github.com/joefazee/betpoints/app/database"
	"github.com/joefazee/betpoints/app/leaderboard"
	"github.com/joefazee/betpoints/app/media"
	"github.com/joefazee/betpoints/app/user"
	"github.com/joefazee/betpoints/internal/cache"
	"github.com/joefazee/betpoints/internal/events"
	"github.com/joefazee/betpoints/internal/metrics"
	"github.com/joefazee/betpoints/internal/nexus"
)

type Config struct {
	DB          database.Config
	Cache       cache.Config
	Kafka       events.Config
	Metrics     metrics.Config
	User        user.Config
	Bets        bets.Config
	Leaderboard leaderboard.Config
	Storage     media.Config

	AppHost         string        `env:"APP_HOST" env-default:"localhost"`
	AppPort         string        `env:"APP_PORT" env-default:"8080"`
	Env             string        `env:"APP_ENV" env-default:"development" validate:"oneof=development staging production test"`
	LogLevel        string        `env:"LOG_LEVEL" env-default:"info"`
	RequestTimeout  time.Duration `env:"HTTP_REQUEST_TIMEOUT" env-default:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"15s"`
	TokenPurgeEvery time.Duration `env:"TOKEN_PURGE_INTERVAL" env-default:"1h"`
}

// Validate runs each module's cross-field checks. Tag rules are checked by the loader.
func (c *Config) Validate() error {
	for _, v := range []nexus.Validatable{&c.DB, &c.User, &c.Bets, &c.Leaderboard, &c.Storage} {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Addr is the host:port the API listens on.
func (c *Config) Addr() string {
	return c.AppHost + ":" + c.AppPort
}

// LoadConfig loads the application configuration from environment variables or a config file.
func LoadConfig() (*Config, error) {
	c := &Config{}
	err := nexus.NewLoader().Load(c)
	return c, err
}

// WorkerConfig is the subset the engagement worker needs.
type WorkerConfig struct {
	DB      database.Config
	Kafka   events.Config
	Metrics metrics.Config

	Env             string        `env:"APP_ENV" env-default:"development" validate:"oneof=development staging production test"`
	LogLevel        string        `env:"LOG_LEVEL" env-default:"info"`
	MaxAttempts     int           `env:"WORKER_MAX_ATTEMPTS" env-default:"5" validate:"min=1"`
	RetryBackoff    time.Duration `env:"WORKER_RETRY_BACKOFF" env-default:"500ms"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"15s"`
}

func (c *WorkerConfig) Validate() error {
	return c.DB.Validate()
}

func LoadWorkerConfig() (*WorkerConfig, error) {
	c := &WorkerConfig{}
	err := nexus.NewLoader().Load(c)
	return c, err
}
