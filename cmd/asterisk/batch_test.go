package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asterisk-data/asterisk.report/internal/asterisk"
	"github.com/asterisk-data/asterisk.report/internal/hands"
	"github.com/asterisk-data/asterisk.report/internal/testutil"
)

var testTable = hands.NewTable(hands.Geometry{Name: "2v2", Span: 1000, Depth: 1000})

var straightTrialCSV = testutil.StraightTrialCSV(0, 0.3, 4)

func TestDiscoverTrials(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "sub1_2v2_a_n_1.csv", straightTrialCSV)
	testutil.WriteFile(t, dir, "sub1_2v2_b_n_1.csv", straightTrialCSV)
	testutil.WriteFile(t, dir, "calibration_notes.csv", "whatever\n")
	testutil.WriteFile(t, dir, "readme.txt", "not a csv\n")

	paths, err := discoverTrials(dir)
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, "sub1_2v2_a_n_1.csv", filepath.Base(paths[0]))
	assert.Equal(t, "sub1_2v2_b_n_1.csv", filepath.Base(paths[1]))
}

func TestProcessTrials(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "out")
	testutil.WriteFile(t, dir, "sub1_2v2_a_n_1.csv", straightTrialCSV)
	testutil.WriteFile(t, dir, "sub1_2v2_c_n_1.csv", straightTrialCSV)
	testutil.WriteFile(t, dir, "sub2_2v2_a_n_1.csv", straightTrialCSV)

	paths, err := discoverTrials(dir)
	require.NoError(t, err)

	trials := processTrials(paths, batchOptions{
		table:   testTable,
		window:  5,
		outDir:  outDir,
		workers: 3,
	})

	require.Len(t, trials, 3)
	// Sorted by trial name regardless of worker completion order.
	assert.Equal(t, "sub1_2v2_a_n_1", trials[0].Identity.Name())
	assert.Equal(t, "sub1_2v2_c_n_1", trials[1].Identity.Name())
	assert.Equal(t, "sub2_2v2_a_n_1", trials[2].Identity.Name())

	for _, trial := range trials {
		require.NotNil(t, trial.Filtered)
		assert.Equal(t, 5, trial.Filtered.Window)

		saved := filepath.Join(outDir, "f5_"+trial.Identity.FileName())
		_, statErr := os.Stat(saved)
		assert.NoError(t, statErr, "smoothed CSV missing for %s", trial.Identity.Name())
	}
}

func TestProcessTrialsUnknownHand(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "sub1_mystery_a_n_1.csv", straightTrialCSV)
	testutil.WriteFile(t, dir, "sub1_2v2_a_n_1.csv", straightTrialCSV)

	paths, err := discoverTrials(dir)
	require.NoError(t, err)

	// The unknown hand is dropped with a log line; the rest still process.
	trials := processTrials(paths, batchOptions{table: testTable, workers: 2})
	require.Len(t, trials, 1)
	assert.Equal(t, "sub1_2v2_a_n_1", trials[0].Identity.Name())
}

func TestGroupBySubjectHand(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "sub1_2v2_a_n_1.csv", straightTrialCSV)
	testutil.WriteFile(t, dir, "sub1_2v2_b_n_1.csv", straightTrialCSV)
	testutil.WriteFile(t, dir, "sub2_2v2_a_n_1.csv", straightTrialCSV)

	paths, err := discoverTrials(dir)
	require.NoError(t, err)
	trials := processTrials(paths, batchOptions{table: testTable, workers: 1})

	groups := groupBySubjectHand(trials)
	require.Len(t, groups, 2)
	assert.Len(t, groups["sub1_2v2"], 2)
	assert.Len(t, groups["sub2_2v2"], 1)

	// Unusable trials stay out of the figures.
	id := asterisk.Identity{Subject: "sub3", Hand: "2v2", Translation: asterisk.DirA, Rotation: asterisk.RotNone, Number: "1"}
	unusable := asterisk.NewTrial(id, nil, hands.Geometry{Name: "2v2", Span: 1000, Depth: 1000}, nil)
	groups = groupBySubjectHand(append(trials, unusable))
	assert.Len(t, groups, 2)
}
