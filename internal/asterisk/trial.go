package asterisk

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/asterisk-data/asterisk.report/internal/config"
	"github.com/asterisk-data/asterisk.report/internal/hands"
	"github.com/asterisk-data/asterisk.report/internal/monitoring"
)

// Qualitative labels attached during analysis. Labels are append-only; they
// flag data quality, they never abort processing.
const (
	LabelNoMovement    = "no_movement"
	LabelPathDeviation = "path_deviation"
)

// Identity is the tuple that names a trial. It determines the canonical file
// name encoding and must round-trip through ParseTrialName exactly.
type Identity struct {
	Subject     string
	Hand        string
	Translation Direction
	Rotation    RotationMode
	Number      string
}

// ParseTrialName recovers a trial identity from its file name encoding
// {subject}_{hand}_{direction}_{rotation}_{number}.csv. The extension and any
// leading directories are ignored.
func ParseTrialName(name string) (Identity, error) {
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	parts := strings.Split(base, "_")
	if len(parts) != 5 {
		return Identity{}, fmt.Errorf("trial name %q: want 5 underscore-separated fields, got %d", name, len(parts))
	}
	for i, p := range parts {
		if p == "" {
			return Identity{}, fmt.Errorf("trial name %q: field %d is empty", name, i+1)
		}
	}

	id := Identity{
		Subject:     parts[0],
		Hand:        parts[1],
		Translation: Direction(parts[2]),
		Rotation:    RotationMode(parts[3]),
		Number:      parts[4],
	}
	if !id.Translation.Valid() {
		return Identity{}, fmt.Errorf("trial name %q: unknown direction %q", name, parts[2])
	}
	if !id.Rotation.Valid() {
		return Identity{}, fmt.Errorf("trial name %q: unknown rotation mode %q", name, parts[3])
	}
	if id.Rotation.IsContinuous() && id.Translation != DirNone {
		return Identity{}, fmt.Errorf("trial name %q: %s rotation requires direction n", name, parts[3])
	}
	return id, nil
}

// Name returns the codified trial name without extension.
func (id Identity) Name() string {
	return fmt.Sprintf("%s_%s_%s_%s_%s", id.Subject, id.Hand, id.Translation, id.Rotation, id.Number)
}

// FileName returns the canonical CSV file name for the trial.
func (id Identity) FileName() string {
	return id.Name() + ".csv"
}

// Trial is the aggregate for one recorded attempt: the conditioned
// trajectory, its target, labels, and metrics. Everything is computed at
// construction; the only later mutation is ApplyMovingAverage, which attaches
// a derived filtered snapshot.
type Trial struct {
	Identity Identity
	Hand     hands.Geometry

	// Poses is nil when the source table could not be read; the trial then
	// retains its identity but is unusable for metrics.
	Poses    *Trajectory
	Filtered *FilteredTrajectory

	Target         Target
	TargetRotation float64

	labels map[string]bool

	// Metrics is nil when the trial was unusable or labeled no-movement.
	Metrics *MetricsRecord
}

// NewTrial builds and fully analyzes a trial from raw frames: conditioning,
// target synthesis, deviation screening, then metrics, in that order.
func NewTrial(id Identity, raw []RawFrame, geom hands.Geometry, cfg *config.AnalysisConfig) *Trial {
	if cfg == nil {
		cfg = config.EmptyAnalysisConfig()
	}
	t := &Trial{
		Identity: id,
		Hand:     geom,
		Poses:    Condition(raw, geom, cfg),
		labels:   make(map[string]bool),
	}
	t.analyze(cfg)
	return t
}

// NewTrialFromFile parses the identity from the file name, looks up the hand
// geometry (unknown hands are a hard error) and analyzes the trial. A file
// that exists but cannot be parsed yields a usable=false trial, not an error.
func NewTrialFromFile(path string, table *hands.Table, cfg *config.AnalysisConfig) (*Trial, error) {
	id, err := ParseTrialName(path)
	if err != nil {
		return nil, err
	}
	geom, err := table.Lookup(id.Hand)
	if err != nil {
		return nil, fmt.Errorf("trial %s: %w", id.Name(), err)
	}
	if cfg == nil {
		cfg = config.EmptyAnalysisConfig()
	}

	t := &Trial{
		Identity: id,
		Hand:     geom,
		Poses:    ConditionFile(path, geom, cfg),
		labels:   make(map[string]bool),
	}
	t.analyze(cfg)
	return t, nil
}

// analyze runs the strictly sequential per-trial pipeline. Conditioning has
// already populated Poses (possibly nil).
func (t *Trial) analyze(cfg *config.AnalysisConfig) {
	if !t.Usable() {
		monitoring.Logf("trial %s: no trajectory data, skipping analysis", t.Identity.Name())
		return
	}

	t.Target = SynthesizeTarget(t.Identity.Translation, t.Poses, cfg)
	t.TargetRotation = SynthesizeTargetRotation(t.Identity.Rotation, t.Poses)

	if t.noMovement(cfg) {
		t.addLabel(LabelNoMovement)
		monitoring.Debugf("trial %s: labeled %s, metrics skipped", t.Identity.Name(), LabelNoMovement)
		return
	}

	if HasExcessiveDeviation(t.Poses, t.Target, cfg) {
		// Advisory only: metrics still run for deviant trials.
		t.addLabel(LabelPathDeviation)
	}

	m := ComputeMetrics(t.Identity.Name(), t.Poses, t.Target, t.TargetRotation)
	t.Metrics = &m
}

// noMovement decides whether the trial moved enough for metrics to be
// meaningful. Translation trials gate on distance covered along the target;
// rotation-only trials gate on the final rotation magnitude instead, since
// their translational extent is zero by design.
func (t *Trial) noMovement(cfg *config.AnalysisConfig) bool {
	threshold := cfg.GetNoMovementThreshold()
	if t.Identity.Translation == DirNone {
		last, ok := t.Poses.Last()
		return !ok || last.RMag < threshold
	}
	return t.Target.TotalDistance < threshold
}

// Usable reports whether the trial has trajectory data to analyze.
func (t *Trial) Usable() bool {
	return t.Poses.Len() > 0
}

func (t *Trial) addLabel(label string) {
	t.labels[label] = true
}

// HasLabel reports whether the given quality label was attached.
func (t *Trial) HasLabel(label string) bool {
	return t.labels[label]
}

// Labels returns the attached quality labels in stable order.
func (t *Trial) Labels() []string {
	out := make([]string, 0, len(t.labels))
	for _, l := range []string{LabelNoMovement, LabelPathDeviation} {
		if t.labels[l] {
			out = append(out, l)
		}
	}
	return out
}

// ApplyMovingAverage attaches a moving-average filtered snapshot of the
// trajectory. Re-applying replaces the previous snapshot; the base trajectory
// is never modified.
func (t *Trial) ApplyMovingAverage(window int) {
	if !t.Usable() {
		return
	}
	t.Filtered = t.Poses.MovingAverage(window)
}
