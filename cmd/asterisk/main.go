// Command asterisk batch-processes recorded trial CSVs: conditioning, target
// synthesis, screening and metrics, with optional SQLite persistence, smoothed
// CSV output and plot generation.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/asterisk-data/asterisk.report/internal/asterisk"
	"github.com/asterisk-data/asterisk.report/internal/config"
	"github.com/asterisk-data/asterisk.report/internal/hands"
	"github.com/asterisk-data/asterisk.report/internal/monitoring"
	"github.com/asterisk-data/asterisk.report/internal/report"
	"github.com/asterisk-data/asterisk.report/internal/trialdb"
	"github.com/asterisk-data/asterisk.report/internal/version"
)

func main() {
	dataDir := flag.String("data", "", "Directory containing trial CSV files (required)")
	handsPath := flag.String("hands", "hand_dims.csv", "Hand dimensions CSV (name,span_mm,depth_mm)")
	configPath := flag.String("config", "", "Analysis config JSON (optional)")
	dbPath := flag.String("db", "", "SQLite database path; empty disables persistence")
	migrationsDir := flag.String("migrations", "", "Apply pending migrations from this directory before recording")
	notes := flag.String("notes", "", "Notes to attach to the run record")
	outDir := flag.String("out", "", "Directory for conditioned CSV output; empty disables")
	plotDir := flag.String("plots", "", "Directory for plot output; empty disables")
	html := flag.Bool("html", false, "Also render interactive HTML scatter views per subject and hand")
	window := flag.Int("window", 0, "Moving-average window in frames; 0 disables smoothing")
	workers := flag.Int("workers", 4, "Number of concurrent trial workers")
	verbose := flag.Bool("verbose", false, "Enable per-trial debug logging")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	monitoring.SetDebug(*verbose)

	if *dataDir == "" {
		fmt.Fprintln(os.Stderr, "missing required -data directory")
		flag.Usage()
		os.Exit(1)
	}
	if *workers < 1 {
		*workers = 1
	}

	var cfg *config.AnalysisConfig
	if *configPath != "" {
		var err error
		cfg, err = config.LoadAnalysisConfig(*configPath)
		if err != nil {
			monitoring.Logf("load config: %v", err)
			os.Exit(1)
		}
	}

	table, err := hands.LoadTable(*handsPath)
	if err != nil {
		monitoring.Logf("load hand dimensions: %v", err)
		os.Exit(1)
	}

	paths, err := discoverTrials(*dataDir)
	if err != nil {
		monitoring.Logf("discover trials: %v", err)
		os.Exit(1)
	}
	if len(paths) == 0 {
		monitoring.Logf("no trial CSVs found in %s", *dataDir)
		os.Exit(1)
	}
	monitoring.Logf("found %d trial files in %s", len(paths), *dataDir)

	trials := processTrials(paths, batchOptions{
		table:   table,
		cfg:     cfg,
		window:  *window,
		outDir:  *outDir,
		plotDir: *plotDir,
		workers: *workers,
	})

	if *dbPath != "" {
		if err := recordRun(*dbPath, *migrationsDir, *notes, trials); err != nil {
			monitoring.Logf("record run: %v", err)
			os.Exit(1)
		}
	}

	if *plotDir != "" {
		renderGroupViews(trials, *plotDir, *html)
	}

	logSummary(trials)
}

// recordRun persists every trial under a fresh run id, applying migrations
// first when a migrations directory was given.
func recordRun(dbPath, migrationsDir, notes string, trials []*asterisk.Trial) error {
	db, err := trialdb.NewDB(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if migrationsDir != "" {
		if err := db.MigrateUp(migrationsDir); err != nil {
			return err
		}
	}

	runID, err := db.CreateRun(notes)
	if err != nil {
		return err
	}
	for _, t := range trials {
		if err := db.RecordTrial(runID, t); err != nil {
			return err
		}
	}
	monitoring.Logf("recorded %d trials under run %s", len(trials), runID)
	return nil
}

// renderGroupViews draws one star figure per subject and hand, plus the HTML
// scatter view when requested.
func renderGroupViews(trials []*asterisk.Trial, plotDir string, html bool) {
	for key, group := range groupBySubjectHand(trials) {
		if _, err := report.PlotAsterisk(key, group, plotDir); err != nil {
			monitoring.Logf("asterisk plot %s: %v", key, err)
		}
		if !html {
			continue
		}
		if _, err := report.RenderScatterHTML(key, group, plotDir); err != nil {
			monitoring.Logf("scatter view %s: %v", key, err)
		}
	}
}

func logSummary(trials []*asterisk.Trial) {
	var usable, withMetrics, noMovement, deviant int
	for _, t := range trials {
		if t.Usable() {
			usable++
		}
		if t.Metrics != nil {
			withMetrics++
		}
		if t.HasLabel(asterisk.LabelNoMovement) {
			noMovement++
		}
		if t.HasLabel(asterisk.LabelPathDeviation) {
			deviant++
		}
	}
	monitoring.Logf("processed %d trials: %d usable, %d with metrics, %d no-movement, %d path-deviation",
		len(trials), usable, withMetrics, noMovement, deviant)
}
