package models

import (
	"time"

	"gorm.io/datatypes"
)

// KVEntry represents kv_entries table, the durable backend of the storage layer
type KVEntry struct {
	Key       string         `gorm:"column:kv_key;primaryKey;size:191" json:"key"`
	Value     datatypes.JSON `gorm:"not null" json:"value"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (KVEntry) TableName() string {
	return "kv_entries"
}

// SeedRun represents seed_runs table, one row per seeding or import
type SeedRun struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Mode      string    `gorm:"size:20;not null" json:"mode"`
	Source    string    `gorm:"size:50" json:"source"`
	Users     int       `json:"users"`
	Projects  int       `json:"projects"`
	Bids      int       `json:"bids"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (SeedRun) TableName() string {
	return "seed_runs"
}

// All lists every model for AutoMigrate
func All() []any {
	return []any{&KVEntry{}, &SeedRun{}}
}
