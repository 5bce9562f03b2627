package main

import (
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"github.com/asterisk-data/asterisk.report/internal/asterisk"
	"github.com/asterisk-data/asterisk.report/internal/config"
	"github.com/asterisk-data/asterisk.report/internal/hands"
	"github.com/asterisk-data/asterisk.report/internal/monitoring"
	"github.com/asterisk-data/asterisk.report/internal/report"
)

type batchOptions struct {
	table   *hands.Table
	cfg     *config.AnalysisConfig
	window  int
	outDir  string
	plotDir string
	workers int
}

// discoverTrials lists the CSV files in dir whose names encode a valid trial
// identity. Files that do not parse are logged and skipped, not fatal: data
// directories often hold stray notes and calibration files.
func discoverTrials(dir string) ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", dir, err)
	}

	var out []string
	for _, p := range paths {
		if _, err := asterisk.ParseTrialName(p); err != nil {
			monitoring.Logf("skipping %s: %v", filepath.Base(p), err)
			continue
		}
		out = append(out, p)
	}
	sort.Strings(out)
	return out, nil
}

// processTrials runs the per-trial pipeline across a worker pool. Trials are
// independent, so the only coordination is distributing paths and collecting
// results. The returned slice is sorted by trial name.
func processTrials(paths []string, opts batchOptions) []*asterisk.Trial {
	if opts.workers < 1 {
		opts.workers = 1
	}

	jobs := make(chan string)
	results := make(chan *asterisk.Trial)

	var wg sync.WaitGroup
	for i := 0; i < opts.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				if t := processOne(path, opts); t != nil {
					results <- t
				}
			}
		}()
	}

	go func() {
		for _, p := range paths {
			jobs <- p
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	var trials []*asterisk.Trial
	for t := range results {
		trials = append(trials, t)
	}
	sort.Slice(trials, func(i, j int) bool {
		return trials[i].Identity.Name() < trials[j].Identity.Name()
	})
	return trials
}

func processOne(path string, opts batchOptions) *asterisk.Trial {
	trial, err := asterisk.NewTrialFromFile(path, opts.table, opts.cfg)
	if err != nil {
		monitoring.Logf("%s: %v", filepath.Base(path), err)
		return nil
	}
	if !trial.Usable() {
		return trial
	}

	if opts.window > 0 {
		trial.ApplyMovingAverage(opts.window)
	}
	if opts.outDir != "" {
		if _, err := trial.SaveCSV(opts.outDir); err != nil {
			monitoring.Logf("save %s: %v", trial.Identity.Name(), err)
		}
	}
	if opts.plotDir != "" {
		if _, err := report.PlotTrial(trial, opts.plotDir); err != nil {
			monitoring.Logf("plot %s: %v", trial.Identity.Name(), err)
		}
	}
	return trial
}

// groupBySubjectHand buckets trials into {subject}_{hand} groups for the
// combined star figures.
func groupBySubjectHand(trials []*asterisk.Trial) map[string][]*asterisk.Trial {
	groups := make(map[string][]*asterisk.Trial)
	for _, t := range trials {
		if !t.Usable() {
			continue
		}
		key := t.Identity.Subject + "_" + t.Identity.Hand
		groups[key] = append(groups[key], t)
	}
	return groups
}
