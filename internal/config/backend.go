package config

import (
	"procurehub/internal/adapters/persistence/repositories"
	"procurehub/internal/adapters/storage"
)

// NewBackend returns the storage backend for the configured driver.
// Database drivers connect and migrate before returning.
func NewBackend(cfg *Config) (storage.Backend, error) {
	if !cfg.UsesDatabase() {
		return storage.NewMemoryBackend(), nil
	}

	db, err := ConnectDatabase(cfg)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return repositories.NewKVRepository(db), nil
}
