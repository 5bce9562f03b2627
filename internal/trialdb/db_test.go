package trialdb

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asterisk-data/asterisk.report/internal/asterisk"
	"github.com/asterisk-data/asterisk.report/internal/hands"
)

var testGeometry = hands.Geometry{Name: "2v2", Span: 1000, Depth: 1000}

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "trials.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func straightTrial(t *testing.T, subject, number string) *asterisk.Trial {
	t.Helper()
	id := asterisk.Identity{
		Subject: subject, Hand: "2v2",
		Translation: asterisk.DirA, Rotation: asterisk.RotNone, Number: number,
	}
	raw := []asterisk.RawFrame{
		{Y: 0}, {Y: 0.1}, {Y: 0.2}, {Y: 0.3},
	}
	trial := asterisk.NewTrial(id, raw, testGeometry, nil)
	require.NotNil(t, trial.Metrics)
	return trial
}

func stalledTrial(t *testing.T, subject, number string) *asterisk.Trial {
	t.Helper()
	id := asterisk.Identity{
		Subject: subject, Hand: "2v2",
		Translation: asterisk.DirB, Rotation: asterisk.RotNone, Number: number,
	}
	raw := []asterisk.RawFrame{{X: 0, Y: 0}, {X: 0.00001, Y: 0}}
	trial := asterisk.NewTrial(id, raw, testGeometry, nil)
	require.True(t, trial.HasLabel(asterisk.LabelNoMovement))
	return trial
}

func TestCreateRun(t *testing.T) {
	db := openTestDB(t)

	runID, err := db.CreateRun("nightly batch")
	require.NoError(t, err)

	_, err = uuid.Parse(runID)
	assert.NoError(t, err, "run id should be a UUID")

	other, err := db.CreateRun("second run")
	require.NoError(t, err)
	assert.NotEqual(t, runID, other)
}

func TestRecordAndListTrials(t *testing.T) {
	db := openTestDB(t)
	runID, err := db.CreateRun("")
	require.NoError(t, err)

	require.NoError(t, db.RecordTrial(runID, straightTrial(t, "sub1", "1")))
	require.NoError(t, db.RecordTrial(runID, stalledTrial(t, "sub1", "2")))

	trials, err := db.ListTrials(runID)
	require.NoError(t, err)
	require.Len(t, trials, 2)

	// Ordered by trial id: a before b.
	assert.Equal(t, "sub1_2v2_a_n_1", trials[0].TrialID)
	assert.True(t, trials[0].Usable)
	assert.Empty(t, trials[0].Labels)

	assert.Equal(t, "sub1_2v2_b_n_2", trials[1].TrialID)
	assert.Equal(t, []string{asterisk.LabelNoMovement}, trials[1].Labels)

	// Only the trial that produced metrics has a metrics row.
	metrics, err := db.ListMetrics(runID)
	require.NoError(t, err)
	require.Len(t, metrics, 1)
	assert.Equal(t, "sub1_2v2_a_n_1", metrics[0].TrialID)
	assert.InDelta(t, 0.3, metrics[0].TotalDistance, 0.01)
}

func TestListScopedToRun(t *testing.T) {
	db := openTestDB(t)

	first, err := db.CreateRun("first")
	require.NoError(t, err)
	second, err := db.CreateRun("second")
	require.NoError(t, err)

	require.NoError(t, db.RecordTrial(first, straightTrial(t, "sub1", "1")))
	require.NoError(t, db.RecordTrial(second, straightTrial(t, "sub2", "1")))

	trials, err := db.ListTrials(first)
	require.NoError(t, err)
	require.Len(t, trials, 1)
	assert.Equal(t, "sub1", trials[0].Subject)
}

func TestSummarizeConditions(t *testing.T) {
	db := openTestDB(t)
	runID, err := db.CreateRun("")
	require.NoError(t, err)

	// Three repeats of the same condition plus one unusable trial that must
	// not drag the averages down.
	for _, n := range []string{"1", "2", "3"} {
		require.NoError(t, db.RecordTrial(runID, straightTrial(t, "sub1", n)))
	}
	require.NoError(t, db.RecordTrial(runID, stalledTrial(t, "sub1", "4")))

	summaries, err := db.SummarizeConditions(runID)
	require.NoError(t, err)
	require.Len(t, summaries, 1, "only the metric-bearing condition appears")

	s := summaries[0]
	assert.Equal(t, "2v2", s.Hand)
	assert.Equal(t, "a", s.Translation)
	assert.Equal(t, "n", s.Rotation)
	assert.Equal(t, 3, s.Trials)
	assert.InDelta(t, 0.3, s.AvgDistance, 0.01)
	assert.GreaterOrEqual(t, s.AvgFrechet, 0.0)
}

func TestMigrations(t *testing.T) {
	db := openTestDB(t)
	migrationsDir := filepath.Join("..", "..", "migrations")

	version, dirty, err := db.MigrateVersion(migrationsDir)
	require.NoError(t, err)
	assert.Equal(t, uint(0), version)
	assert.False(t, dirty)

	require.NoError(t, db.MigrateUp(migrationsDir))

	version, dirty, err = db.MigrateVersion(migrationsDir)
	require.NoError(t, err)
	assert.Equal(t, uint(2), version)
	assert.False(t, dirty)

	// Up again is a no-op.
	require.NoError(t, db.MigrateUp(migrationsDir))

	// Step back one version.
	require.NoError(t, db.MigrateDown(migrationsDir))
	version, _, err = db.MigrateVersion(migrationsDir)
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)

	// The schema still works after migrating.
	runID, err := db.CreateRun("post-migration")
	require.NoError(t, err)
	require.NoError(t, db.RecordTrial(runID, straightTrial(t, "sub1", "1")))
}
