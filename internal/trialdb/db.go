// Package trialdb persists analyzed trials and their metrics to SQLite so
// that runs can be compared and aggregated after the fact.
package trialdb

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/asterisk-data/asterisk.report/internal/asterisk"
)

type DB struct {
	*sql.DB
}

// NewDB opens (or creates) the trial database at path and ensures the base
// schema exists. Later schema changes go through migrations.
func NewDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			run_id            TEXT PRIMARY KEY,
			notes             TEXT,
			timestamp         TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE IF NOT EXISTS trials (
			run_id            TEXT,
			trial_id          TEXT,
			subject           TEXT,
			hand              TEXT,
			translation       TEXT,
			rotation          TEXT,
			number            TEXT,
			usable            INTEGER,
			labels            TEXT,
			timestamp         TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (run_id, trial_id),
			FOREIGN KEY(run_id) REFERENCES runs(run_id)
		);
		CREATE TABLE IF NOT EXISTS metrics (
			run_id              TEXT,
			trial_id            TEXT,
			total_distance      DOUBLE,
			translation_frechet DOUBLE,
			rotation_frechet    DOUBLE,
			max_error           DOUBLE,
			movement_efficiency DOUBLE,
			arc_length          DOUBLE,
			area_between_curves DOUBLE,
			max_area_region     DOUBLE,
			max_area_location   DOUBLE,
			timestamp           TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (run_id, trial_id),
			FOREIGN KEY(run_id) REFERENCES runs(run_id)
		);
	`)
	if err != nil {
		return nil, err
	}

	return &DB{db}, nil
}

// CreateRun records a new analysis run and returns its generated id.
func (db *DB) CreateRun(notes string) (string, error) {
	runID := uuid.NewString()
	_, err := db.Exec("INSERT INTO runs (run_id, notes) VALUES (?, ?)", runID, notes)
	if err != nil {
		return "", fmt.Errorf("create run: %w", err)
	}
	return runID, nil
}

// RecordTrial stores one analyzed trial under the given run: its identity and
// labels always, its metrics row only when metrics were computed.
func (db *DB) RecordTrial(runID string, t *asterisk.Trial) error {
	id := t.Identity
	usable := 0
	if t.Usable() {
		usable = 1
	}

	_, err := db.Exec(
		`INSERT INTO trials (
			run_id, trial_id, subject, hand, translation, rotation, number,
			usable, labels
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, id.Name(), id.Subject, id.Hand, string(id.Translation),
		string(id.Rotation), id.Number, usable, strings.Join(t.Labels(), ";"),
	)
	if err != nil {
		return fmt.Errorf("record trial %s: %w", id.Name(), err)
	}

	if t.Metrics == nil {
		return nil
	}

	m := t.Metrics
	_, err = db.Exec(
		`INSERT INTO metrics (
			run_id, trial_id, total_distance, translation_frechet,
			rotation_frechet, max_error, movement_efficiency, arc_length,
			area_between_curves, max_area_region, max_area_location
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, m.TrialID, m.TotalDistance, m.TranslationFrechet,
		m.RotationFrechet, m.MaxError, m.MovementEfficiency, m.ArcLength,
		m.AreaBetweenCurves, m.MaxAreaRegion, m.MaxAreaLocation,
	)
	if err != nil {
		return fmt.Errorf("record metrics for %s: %w", id.Name(), err)
	}
	return nil
}

// TrialRow is one stored trial with its quality labels.
type TrialRow struct {
	TrialID     string
	Subject     string
	Hand        string
	Translation string
	Rotation    string
	Number      string
	Usable      bool
	Labels      []string
}

// ListTrials returns every trial recorded under the run, ordered by id.
func (db *DB) ListTrials(runID string) ([]TrialRow, error) {
	rows, err := db.Query(
		`SELECT trial_id, subject, hand, translation, rotation, number, usable, labels
		 FROM trials WHERE run_id = ? ORDER BY trial_id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("list trials: %w", err)
	}
	defer rows.Close()

	var out []TrialRow
	for rows.Next() {
		var r TrialRow
		var usable int
		var labels string
		if err := rows.Scan(&r.TrialID, &r.Subject, &r.Hand, &r.Translation,
			&r.Rotation, &r.Number, &usable, &labels); err != nil {
			return nil, fmt.Errorf("scan trial row: %w", err)
		}
		r.Usable = usable != 0
		if labels != "" {
			r.Labels = strings.Split(labels, ";")
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ListMetrics returns the metrics records stored under the run, ordered by
// trial id.
func (db *DB) ListMetrics(runID string) ([]asterisk.MetricsRecord, error) {
	rows, err := db.Query(
		`SELECT trial_id, total_distance, translation_frechet, rotation_frechet,
			max_error, movement_efficiency, arc_length, area_between_curves,
			max_area_region, max_area_location
		 FROM metrics WHERE run_id = ? ORDER BY trial_id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("list metrics: %w", err)
	}
	defer rows.Close()

	var out []asterisk.MetricsRecord
	for rows.Next() {
		var m asterisk.MetricsRecord
		if err := rows.Scan(&m.TrialID, &m.TotalDistance, &m.TranslationFrechet,
			&m.RotationFrechet, &m.MaxError, &m.MovementEfficiency, &m.ArcLength,
			&m.AreaBetweenCurves, &m.MaxAreaRegion, &m.MaxAreaLocation); err != nil {
			return nil, fmt.Errorf("scan metrics row: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// ConditionSummary aggregates metrics over the repeated trials of one
// (hand, translation, rotation) task condition. Failed metrics (the negative
// sentinel) are excluded from the averages.
type ConditionSummary struct {
	Hand        string
	Translation string
	Rotation    string
	Trials      int
	AvgDistance float64
	AvgFrechet  float64
	AvgArea     float64
}

// SummarizeConditions averages the stored metrics per task condition for a
// run. Conditions with no successful metric values report zero averages.
func (db *DB) SummarizeConditions(runID string) ([]ConditionSummary, error) {
	rows, err := db.Query(
		`SELECT t.hand, t.translation, t.rotation,
			COUNT(m.trial_id),
			COALESCE(AVG(CASE WHEN m.total_distance >= 0 THEN m.total_distance END), 0),
			COALESCE(AVG(CASE WHEN m.translation_frechet >= 0 THEN m.translation_frechet END), 0),
			COALESCE(AVG(CASE WHEN m.area_between_curves >= 0 THEN m.area_between_curves END), 0)
		 FROM trials t
		 JOIN metrics m ON m.run_id = t.run_id AND m.trial_id = t.trial_id
		 WHERE t.run_id = ?
		 GROUP BY t.hand, t.translation, t.rotation
		 ORDER BY t.hand, t.translation, t.rotation`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("summarize conditions: %w", err)
	}
	defer rows.Close()

	var out []ConditionSummary
	for rows.Next() {
		var s ConditionSummary
		if err := rows.Scan(&s.Hand, &s.Translation, &s.Rotation, &s.Trials,
			&s.AvgDistance, &s.AvgFrechet, &s.AvgArea); err != nil {
			return nil, fmt.Errorf("scan condition summary: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
