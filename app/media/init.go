package media

import (
	"context"

	"github.com/joefazee/betpoints/internal/deps"
)

const UploaderKey = "media_uploader"

// InitStorage registers the object store when storage is enabled. With storage
// disabled nothing is registered and avatar uploads report the store as unavailable.
func InitStorage(ctx context.Context, container *deps.Container, config *Config) error {
	if !config.Enabled {
		container.Logger.Warn("object storage disabled", nil)
		return nil
	}

	store, err := NewStore(config)
	if err != nil {
		return err
	}
	if err := store.EnsureBucket(ctx); err != nil {
		return err
	}

	container.RegisterService(UploaderKey, store)
	container.Logger.Info("object storage ready", map[string]interface{}{
		"endpoint": config.Endpoint,
		"bucket":   config.Bucket,
	})
	return nil
}

// UploaderFrom returns the registered uploader, or nil when storage is disabled.
func UploaderFrom(container *deps.Container) Uploader {
	u, _ := container.GetService(UploaderKey).(Uploader)
	return u
}
