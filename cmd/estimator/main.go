// Command estimator runs the draw position estimation pipeline against the
// housing office CSV exports and publishes the snapshot document the
// dashboard consumes.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/Ammaar-Alam/draw-calculator/internal/config"
	"github.com/Ammaar-Alam/draw-calculator/internal/estimator"
	"github.com/Ammaar-Alam/draw-calculator/internal/logger"
	"github.com/Ammaar-Alam/draw-calculator/internal/metrics"
	"github.com/Ammaar-Alam/draw-calculator/internal/models"
	"github.com/Ammaar-Alam/draw-calculator/internal/storage"
)

var (
	configPath = flag.String("config", "configs/config.yaml", "Path to configuration file")
	firstName  = flag.String("first", "", "First name as it appears in the draw roster")
	lastName   = flag.String("last", "", "Last name as it appears in the draw roster")
)

func main() {
	flag.Parse()

	if *firstName == "" || *lastName == "" {
		log.Fatal("Both -first and -last are required")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)

	in, err := loadInputs(cfg.Estimator)
	if err != nil {
		logger.Fatal("Failed to load estimator inputs: %v", err)
	}

	snap, err := estimator.Estimate(in, *firstName, *lastName)
	if err != nil {
		logger.Fatal("Estimation failed: %v", err)
	}
	derived := metrics.Derive(snap)

	if err := writeSnapshot(cfg.Estimator.OutputPath, snap); err != nil {
		logger.Fatal("Failed to write snapshot document: %v", err)
	}
	logger.Info("Snapshot document written to %s", cfg.Estimator.OutputPath)

	recordEstimate(cfg.Storage.DBPath, snap)
	printSummary(snap, derived)
}

// loadInputs parses every configured CSV. The upperclass roster is
// mandatory; missing rooms or Spelman data degrade the estimate (zero
// removals) the same way the pipeline treats an empty file.
func loadInputs(cfg config.EstimatorConfig) (estimator.Inputs, error) {
	in := estimator.Inputs{ResCollegeTopN: cfg.ResCollegeTopN}

	var err error
	if in.Upperclass, err = estimator.LoadRoster(cfg.UpperclassCSV); err != nil {
		return estimator.Inputs{}, err
	}

	if cfg.RoomsCSV != "" {
		if in.Rooms, err = estimator.LoadRooms(cfg.RoomsCSV); err != nil {
			logger.Warn("Rooms list unavailable, Spelman capacity and singles count will be zero: %v", err)
		}
	}
	if cfg.SpelmanCSV != "" {
		if in.Spelman, err = estimator.LoadRoster(cfg.SpelmanCSV); err != nil {
			logger.Warn("Spelman roster unavailable, Spelman filtering skipped: %v", err)
		}
	}
	for _, path := range cfg.OtherResCSVs {
		roster, err := estimator.LoadRoster(path)
		if err != nil {
			logger.Warn("Skipping residential college roster %s: %v", path, err)
			continue
		}
		in.OtherRes = append(in.OtherRes, roster)
	}
	return in, nil
}

func writeSnapshot(path string, snap models.Snapshot) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

// recordEstimate stores the run in the shared history database. Best-effort:
// a broken database should not cost the user their estimate output.
func recordEstimate(dbPath string, snap models.Snapshot) {
	store, err := storage.New(dbPath)
	if err != nil {
		logger.Warn("History storage unavailable: %v", err)
		return
	}
	defer store.Close()

	if _, err := store.RecordResult(context.Background(), "estimator", snap, ""); err != nil {
		logger.Warn("Failed to record estimate: %v", err)
	}
}

func printSummary(snap models.Snapshot, derived models.DerivedMetrics) {
	fmt.Printf("\nEstimate for %s (draw time %s)\n\n", snap.UserName, snap.DrawTime)

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Metric", "Value")
	table.Append("Raw draw position", strconv.Itoa(snap.RawPosition))
	table.Append("Initially ahead", strconv.Itoa(snap.InitialAhead))
	table.Append(fmt.Sprintf("Removed: Spelman (top %d)", snap.SpelmanCapacity), strconv.Itoa(snap.RemovedSpelman))
	table.Append(fmt.Sprintf("Removed: other res colleges (top %d)", snap.OtherResTopN), strconv.Itoa(snap.RemovedOtherRes))
	table.Append("Final position estimate", strconv.Itoa(snap.FinalPositionEstimate))
	table.Append("Competitor rank", strconv.Itoa(derived.CompetitorRank))
	table.Append("Available singles", strconv.Itoa(snap.AvailableSingles))
	table.Append("Chance of a single", fmt.Sprintf("%d%% (%s)", snap.ProbabilitySingle, derived.ProbabilityTier))
	table.Render()
}
