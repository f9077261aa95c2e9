package media

import (
	"strings"

	"github.com/joefazee/betpoints/models"
)

type Config struct {
	Enabled   bool   `env:"STORAGE_ENABLED" env-default:"false"`
	Endpoint  string `env:"STORAGE_ENDPOINT" env-default:"localhost:9000"`
	AccessKey string `env:"STORAGE_ACCESS_KEY"`
	SecretKey string `env:"STORAGE_SECRET_KEY"`
	Bucket    string `env:"STORAGE_BUCKET" env-default:"avatars"`
	Region    string `env:"STORAGE_REGION" env-default:"us-east-1"`
	UseSSL    bool   `env:"STORAGE_USE_SSL" env-default:"false"`
	// PublicBaseURL prefixes object keys in returned URLs, e.g. a CDN in front of the bucket.
	// Empty means the endpoint itself.
	PublicBaseURL string `env:"STORAGE_PUBLIC_BASE_URL"`
}

func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}

	type validation struct {
		ok  bool
		err error
	}

	checks := []validation{
		{strings.TrimSpace(c.Endpoint) != "", models.ErrStorageNotConfigured},
		{strings.TrimSpace(c.Bucket) != "", models.ErrStorageNotConfigured},
		{c.AccessKey != "" && c.SecretKey != "", models.ErrStorageNotConfigured},
	}

	for _, v := range checks {
		if !v.ok {
			return v.err
		}
	}
	return nil
}

func (c *Config) baseURL() string {
	if c.PublicBaseURL != "" {
		return strings.TrimRight(c.PublicBaseURL, "/")
	}
	scheme := "http"
	if c.UseSSL {
		scheme = "https"
	}
	return scheme + "://" + strings.TrimRight(c.Endpoint, "/") + "/" + c.Bucket
}

func GetDefaultConfig() *Config {
	return &Config{
		Endpoint: "localhost:9000",
		Bucket:   "avatars",
		Region:   "us-east-1",
	}
}
