// Package testutil provides shared test fixtures for trial data.
//
// This package centralises common test helpers to reduce code duplication
// across test files and improve test maintainability.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteFile writes content to dir/name and returns the full path, failing the
// test on error.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// StraightTrialCSV builds a raw pose table of rows points moving in a straight
// line from the origin to (x, y) meters with zero rotation.
func StraightTrialCSV(x, y float64, rows int) string {
	if rows < 2 {
		rows = 2
	}
	var b strings.Builder
	b.WriteString("x,y,rmag\n")
	for i := 0; i < rows; i++ {
		frac := float64(i) / float64(rows-1)
		fmt.Fprintf(&b, "%g,%g,0\n", x*frac, y*frac)
	}
	return b.String()
}

// RotationTrialCSV builds a raw pose table that stays at the origin while the
// rotation magnitude climbs linearly to finalDegrees.
func RotationTrialCSV(finalDegrees float64, rows int) string {
	if rows < 2 {
		rows = 2
	}
	var b strings.Builder
	b.WriteString("x,y,rmag\n")
	for i := 0; i < rows; i++ {
		frac := float64(i) / float64(rows-1)
		fmt.Fprintf(&b, "0,0,%g\n", finalDegrees*frac)
	}
	return b.String()
}

// HandDimsCSV returns a hand dimensions table with the given rows, each
// "name,span,depth".
func HandDimsCSV(rows ...string) string {
	return "name,span,depth\n" + strings.Join(rows, "\n") + "\n"
}
