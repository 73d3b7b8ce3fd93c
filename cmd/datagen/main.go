package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"procurehub/internal/adapters/storage"
	"procurehub/internal/config"
	"procurehub/internal/core/datagen"
)

// datagen writes an importable snapshot to a file or stdout.
//
//	go run ./cmd/datagen -seed 7 -gcs 5 -out dataset.json
func main() {
	var (
		seed     = flag.Int64("seed", 42, "generator seed")
		static   = flag.Bool("static", false, "write the fixed demo dataset instead of a generated one")
		gcs      = flag.Int("gcs", 0, "number of general contractors")
		subs     = flag.Int("subs", 0, "number of subcontractors")
		projects = flag.Int("projects", 0, "projects per general contractor")
		bids     = flag.Int("bids", 0, "bids per project")
		out      = flag.String("out", "", "output file (default stdout)")
	)
	flag.Parse()

	var ds *datagen.Dataset
	if *static {
		ds = config.StaticDataset(time.Now())
	} else {
		opts := datagen.DefaultOptions()
		if *gcs > 0 {
			opts.NumGCs = *gcs
		}
		if *subs > 0 {
			opts.NumSubcontractors = *subs
		}
		if *projects > 0 {
			opts.ProjectsPerGC = *projects
		}
		if *bids > 0 {
			opts.BidsPerProject = *bids
		}
		ds = datagen.New(*seed).GenerateCompleteDataset(opts)
	}

	if errs := datagen.CheckIntegrity(ds); len(errs) > 0 {
		for _, err := range errs {
			log.Printf("❌ %v", err)
		}
		log.Fatalf("❌ Generated dataset failed integrity check")
	}

	data, err := json.MarshalIndent(config.Snapshot{
		Version:    config.SnapshotVersion,
		ExportedAt: time.Now().UTC(),
		Data:       *ds,
		Settings:   config.Settings{Theme: storage.ThemeLight, SidebarOpen: true},
	}, "", "  ")
	if err != nil {
		log.Fatalf("❌ Failed to encode dataset: %v", err)
	}

	if *out == "" {
		os.Stdout.Write(append(data, '\n'))
		return
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		log.Fatalf("❌ Failed to write %s: %v", *out, err)
	}
	log.Printf("✅ Wrote %d users, %d projects, %d bids to %s", len(ds.Users), len(ds.Projects), len(ds.Bids), *out)
}
