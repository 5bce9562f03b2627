// Package hands provides the hand geometry reference table used to normalize
// trial trajectories. Span and depth (both mm) are the physical extents of a
// hand's workspace; dividing x by span and y by depth makes trials across
// differently sized hands comparable.
package hands

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// Geometry is an immutable record of one hand's measurements.
type Geometry struct {
	Name  string
	Span  float64 // mm
	Depth float64 // mm
}

// Equivalent reports whether two hands match by name with span and depth
// within tolerance (mm). Used to sanity-check reference tables across runs.
func (g Geometry) Equivalent(other Geometry, tolerance float64) bool {
	if g.Name != other.Name {
		return false
	}
	if diff := g.Span - other.Span; diff < -tolerance || diff > tolerance {
		return false
	}
	if diff := g.Depth - other.Depth; diff < -tolerance || diff > tolerance {
		return false
	}
	return true
}

// Table is a read-only lookup of hand geometries, loaded once per process.
type Table struct {
	byName map[string]Geometry
}

// LoadTable reads a hand dimensions CSV with rows of name,span_mm,depth_mm.
// A header row starting with "name" is skipped.
func LoadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open hand dimensions: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 3
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse hand dimensions %s: %w", path, err)
	}

	t := &Table{byName: make(map[string]Geometry, len(records))}
	for i, rec := range records {
		if i == 0 && rec[0] == "name" {
			continue
		}
		span, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, fmt.Errorf("hand %q: bad span %q: %w", rec[0], rec[1], err)
		}
		depth, err := strconv.ParseFloat(rec[2], 64)
		if err != nil {
			return nil, fmt.Errorf("hand %q: bad depth %q: %w", rec[0], rec[2], err)
		}
		if span <= 0 || depth <= 0 {
			return nil, fmt.Errorf("hand %q: span and depth must be positive (got %v, %v)", rec[0], span, depth)
		}
		t.byName[rec[0]] = Geometry{Name: rec[0], Span: span, Depth: depth}
	}

	if len(t.byName) == 0 {
		return nil, fmt.Errorf("hand dimensions %s contains no entries", path)
	}
	return t, nil
}

// NewTable builds a table from explicit geometries, for tests and callers
// that do not load from disk.
func NewTable(geometries ...Geometry) *Table {
	t := &Table{byName: make(map[string]Geometry, len(geometries))}
	for _, g := range geometries {
		t.byName[g.Name] = g
	}
	return t
}

// Lookup returns the geometry for the named hand. An unknown hand is a hard
// error: normalization cannot proceed without span and depth.
func (t *Table) Lookup(name string) (Geometry, error) {
	g, ok := t.byName[name]
	if !ok {
		return Geometry{}, fmt.Errorf("unknown hand %q in dimensions table", name)
	}
	return g, nil
}

// Names returns the hand names present in the table.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.byName))
	for name := range t.byName {
		names = append(names, name)
	}
	return names
}
