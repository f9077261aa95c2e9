package user

import (
	"time"

	"github.com/joefazee/betpoints/models"
)

type Config struct {
	SymmetricKey       string        `env:"SYMMETRIC_KEY"`
	AccessTokenTTL     time.Duration `env:"ACCESS_TOKEN_TTL" env-default:"24h"`
	InitialBalance     int64         `env:"INITIAL_BALANCE" env-default:"1000"`
	PermissionCacheTTL time.Duration `env:"PERMISSION_CACHE_TTL" env-default:"30m"`
	AvatarMaxBytes     int64         `env:"AVATAR_MAX_BYTES" env-default:"2097152"`
}

func (c *Config) Validate() error {
	type validation struct {
		ok  bool
		err error
	}

	checks := []validation{
		{len(c.SymmetricKey) == 32, models.ErrInvalidSymmetricKey},
		{c.AccessTokenTTL > 0, models.ErrInvalidTokenTTL},
		{c.InitialBalance >= 0, models.ErrInvalidInitialBalance},
		{c.PermissionCacheTTL >= 0, models.ErrInvalidCacheTTL},
		{c.AvatarMaxBytes > 0, models.ErrInvalidUploadLimit},
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
		SymmetricKey:       "12345678901234567890123456789012",
		AccessTokenTTL:     24 * time.Hour,
		InitialBalance:     models.StartingBalance,
		PermissionCacheTTL: 30 * time.Minute,
		AvatarMaxBytes:     2 << 20,
	}
}
