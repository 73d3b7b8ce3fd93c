package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"procurehub/internal/config"

	"github.com/robfig/cron/v3"
)

// jobTimeout bounds a single scheduled run
const jobTimeout = 2 * time.Minute

// SnapshotExporter produces a JSON snapshot of all persisted data
type SnapshotExporter interface {
	Export(ctx context.Context) ([]byte, error)
}

// CronService runs the scheduled maintenance jobs
type CronService struct {
	cron          *cron.Cron
	cfg           config.CronConfig
	notifications *NotificationService
	exporter      SnapshotExporter
}

// NewCronService creates a cron service. exporter may be nil, which disables snapshots.
func NewCronService(cfg config.CronConfig, notifications *NotificationService, exporter SnapshotExporter) *CronService {
	return &CronService{
		cron:          cron.New(),
		cfg:           cfg,
		notifications: notifications,
		exporter:      exporter,
	}
}

// Start registers the configured jobs and starts the scheduler
func (s *CronService) Start() error {
	if s.cfg.Retention != "" {
		if _, err := s.cron.AddFunc(s.cfg.Retention, s.RunRetention); err != nil {
			return fmt.Errorf("retention schedule %q: %w", s.cfg.Retention, err)
		}
		log.Printf("⏰ Retention job scheduled (%s)", s.cfg.Retention)
	}
	if s.cfg.Snapshot != "" && s.exporter != nil {
		if _, err := s.cron.AddFunc(s.cfg.Snapshot, s.RunSnapshot); err != nil {
			return fmt.Errorf("snapshot schedule %q: %w", s.cfg.Snapshot, err)
		}
		log.Printf("⏰ Snapshot job scheduled (%s) -> %s", s.cfg.Snapshot, s.cfg.SnapshotPath)
	}

	s.cron.Start()
	log.Println("🚀 CronService started")
	return nil
}

// Stop stops the scheduler and waits for running jobs
func (s *CronService) Stop() {
	<-s.cron.Stop().Done()
	log.Println("🛑 CronService stopped")
}

// RunRetention drops old read notifications
func (s *CronService) RunRetention() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	removed, err := s.notifications.EnforceRetention(ctx)
	if err != nil {
		log.Printf("❌ Retention job failed: %v", err)
		return
	}
	if removed > 0 {
		log.Printf("🧹 Retention removed %d notification(s)", removed)
	}
}

// RunSnapshot writes the current data to SnapshotPath
func (s *CronService) RunSnapshot() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if err := s.writeSnapshot(ctx); err != nil {
		log.Printf("❌ Snapshot job failed: %v", err)
		return
	}
	log.Printf("✅ Snapshot written to %s", s.cfg.SnapshotPath)
}

func (s *CronService) writeSnapshot(ctx context.Context) error {
	data, err := s.exporter.Export(ctx)
	if err != nil {
		return err
	}
	// write then rename so readers never see a partial file
	tmp := s.cfg.SnapshotPath + ".tmp"
	if dir := filepath.Dir(s.cfg.SnapshotPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.cfg.SnapshotPath)
}
