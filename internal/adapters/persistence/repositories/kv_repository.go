package repositories

import (
	"context"
	"errors"

	"procurehub/internal/adapters/persistence/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVRepository stores storage-layer values in the kv_entries table.
// It satisfies storage.Backend.
type KVRepository struct {
	db *gorm.DB
}

// NewKVRepository creates a new kv repository
func NewKVRepository(db *gorm.DB) *KVRepository {
	return &KVRepository{db: db}
}

// Get returns the raw JSON stored under key
func (r *KVRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var entry models.KVEntry
	err := r.db.WithContext(ctx).Where("kv_key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(entry.Value), true, nil
}

// Set inserts or overwrites key
func (r *KVRepository) Set(ctx context.Context, key, value string) error {
	entry := models.KVEntry{Key: key, Value: datatypes.JSON(value)}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "kv_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

// Remove deletes key
func (r *KVRepository) Remove(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Where("kv_key = ?", key).Delete(&models.KVEntry{}).Error
}

// Keys lists every stored key
func (r *KVRepository) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	err := r.db.WithContext(ctx).Model(&models.KVEntry{}).Order("kv_key").Pluck("kv_key", &keys).Error
	return keys, err
}

// SeedRunRepository records seeding history
type SeedRunRepository struct {
	db *gorm.DB
}

// NewSeedRunRepository creates a new seed run repository
func NewSeedRunRepository(db *gorm.DB) *SeedRunRepository {
	return &SeedRunRepository{db: db}
}

// Create records a run
func (r *SeedRunRepository) Create(ctx context.Context, run *models.SeedRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

// Latest returns the most recent runs, newest first
func (r *SeedRunRepository) Latest(ctx context.Context, limit int) ([]*models.SeedRun, error) {
	var runs []*models.SeedRun
	err := r.db.WithContext(ctx).Order("id DESC").Limit(limit).Find(&runs).Error
	return runs, err
}
