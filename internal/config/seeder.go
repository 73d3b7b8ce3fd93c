package config

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"time"

	"procurehub/internal/adapters/persistence/models"
	"procurehub/internal/adapters/persistence/repositories"
	"procurehub/internal/adapters/storage"
	"procurehub/internal/core/datagen"
	"procurehub/internal/core/domain"
)

// SnapshotVersion is the format version written by Export
const SnapshotVersion = 1

// Snapshot is the export/import document
type Snapshot struct {
	Version    int             `json:"version"`
	ExportedAt time.Time       `json:"exportedAt"`
	Data       datagen.Dataset `json:"data"`
	Settings   Settings        `json:"settings"`
}

// Settings are the persisted client preferences
type Settings struct {
	Theme       storage.Theme `json:"theme"`
	SidebarOpen bool          `json:"sidebarOpen"`
}

// Seeder populates, exports, imports and clears the storage layer
type Seeder struct {
	adapters *storage.Adapters
	runs     *repositories.SeedRunRepository
	Now      func() time.Time
}

// NewSeeder creates a new seeder instance. runs may be nil.
func NewSeeder(adapters *storage.Adapters, runs *repositories.SeedRunRepository) *Seeder {
	return &Seeder{adapters: adapters, runs: runs, Now: time.Now}
}

// Dataset builds the startup dataset for the configured seed mode
func (s *Seeder) Dataset(cfg *Config) *datagen.Dataset {
	if cfg.Mock.SeedMode == SeedGenerated {
		g := datagen.New(cfg.Mock.Seed)
		g.Now = s.Now
		return g.GenerateCompleteDataset(datagen.DefaultOptions())
	}
	return StaticDataset(s.Now())
}

// IsSeeded reports whether the seeded flag is set
func (s *Seeder) IsSeeded(ctx context.Context) bool {
	return storage.Get(ctx, s.adapters.Store, storage.KeySeeded, false)
}

// SeedIfEmpty seeds once. It returns false when data was already present.
func (s *Seeder) SeedIfEmpty(ctx context.Context, ds *datagen.Dataset) (bool, error) {
	if s.IsSeeded(ctx) || len(s.adapters.Users.GetUsers(ctx)) > 0 {
		log.Println("🌱 Data already exists, skipping seed.")
		return false, nil
	}
	if err := s.Seed(ctx, ds); err != nil {
		return false, err
	}
	return true, nil
}

// Seed overwrites every collection with ds
func (s *Seeder) Seed(ctx context.Context, ds *datagen.Dataset) error {
	return s.write(ctx, ds, "seed")
}

func (s *Seeder) write(ctx context.Context, ds *datagen.Dataset, source string) error {
	if !s.adapters.Store.Available() {
		return domain.ErrStorageUnavailable
	}
	a := s.adapters

	notifications := append([]domain.Notification(nil), ds.Notifications...)
	sort.SliceStable(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})
	notifications = storage.CapPerUser(notifications, storage.MaxNotificationsPerUser)

	a.Users.SetUsers(ctx, ds.Users)
	a.Projects.SetProjects(ctx, ds.Projects)
	a.Bids.SetBids(ctx, ds.Bids)
	a.Notifications.SetNotifications(ctx, notifications)
	a.Loans.Replace(ctx, ds.Loans)
	a.Orders.Replace(ctx, ds.Orders)
	a.Payments.Replace(ctx, ds.Payments)
	a.Inventory.Replace(ctx, ds.Inventory)
	storage.Set(ctx, a.Store, storage.KeySeeded, true)

	if s.runs != nil {
		run := &models.SeedRun{
			Mode:     source,
			Source:   "procurehub",
			Users:    len(ds.Users),
			Projects: len(ds.Projects),
			Bids:     len(ds.Bids),
		}
		if err := s.runs.Create(ctx, run); err != nil {
			log.Printf("⚠️ Failed to record seed run: %v", err)
		}
	}

	log.Printf("🌱 Data %s completed [users: %d, projects: %d, bids: %d, notifications: %d]",
		source, len(ds.Users), len(ds.Projects), len(ds.Bids), len(notifications))
	return nil
}

// Export serializes every collection and the app settings
func (s *Seeder) Export(ctx context.Context) ([]byte, error) {
	if !s.adapters.Store.Available() {
		return nil, domain.ErrStorageUnavailable
	}
	a := s.adapters
	snap := Snapshot{
		Version:    SnapshotVersion,
		ExportedAt: s.Now().UTC(),
		Data: datagen.Dataset{
			Users:         a.Users.GetUsers(ctx),
			Projects:      a.Projects.GetProjects(ctx),
			Bids:          a.Bids.GetBids(ctx),
			Notifications: a.Notifications.GetNotifications(ctx),
			Loans:         a.Loans.All(ctx),
			Orders:        a.Orders.All(ctx),
			Payments:      a.Payments.All(ctx),
			Inventory:     a.Inventory.All(ctx),
		},
		Settings: Settings{
			Theme:       a.App.GetTheme(ctx),
			SidebarOpen: a.App.GetSidebarOpen(ctx),
		},
	}
	return json.MarshalIndent(snap, "", "  ")
}

// Import replaces all collections with an exported snapshot
func (s *Seeder) Import(ctx context.Context, data []byte) error {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return domain.Validationf("invalid snapshot: %v", err)
	}
	if snap.Version != SnapshotVersion {
		return domain.Validationf("unsupported snapshot version %d", snap.Version)
	}
	if errs := datagen.CheckIntegrity(&snap.Data); len(errs) > 0 {
		return fmt.Errorf("%w: snapshot has %d integrity errors, first: %v", domain.ErrValidation, len(errs), errs[0])
	}

	if err := s.write(ctx, &snap.Data, "import"); err != nil {
		return err
	}
	if snap.Settings.Theme.Valid() {
		s.adapters.App.SetTheme(ctx, snap.Settings.Theme)
	}
	s.adapters.App.SetSidebarOpen(ctx, snap.Settings.SidebarOpen)
	return nil
}

// Clear removes every application key
func (s *Seeder) Clear(ctx context.Context) error {
	if !s.adapters.Store.Available() {
		return domain.ErrStorageUnavailable
	}
	s.adapters.Store.Clear(ctx)
	log.Println("🧹 Storage cleared")
	return nil
}

// History returns the latest recorded seed and import runs. Memory storage keeps no history.
func (s *Seeder) History(ctx context.Context, limit int) ([]*models.SeedRun, error) {
	if s.runs == nil {
		return []*models.SeedRun{}, nil
	}
	return s.runs.Latest(ctx, limit)
}
