package testutil

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFile(t *testing.T) {
	t.Parallel()

	path := WriteFile(t, t.TempDir(), "fixture.csv", "a,b\n1,2\n")
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", string(content))
}

func TestStraightTrialCSV(t *testing.T) {
	t.Parallel()

	csv := StraightTrialCSV(0, 0.3, 4)
	lines := strings.Split(strings.TrimSpace(csv), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "x,y,rmag", lines[0])
	assert.Equal(t, "0,0,0", lines[1])
	assert.Equal(t, "0,0.3,0", lines[4])
}

func TestRotationTrialCSV(t *testing.T) {
	t.Parallel()

	csv := RotationTrialCSV(20, 5)
	lines := strings.Split(strings.TrimSpace(csv), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "0,0,0", lines[1])
	assert.Equal(t, "0,0,20", lines[5])
}

func TestHandDimsCSV(t *testing.T) {
	t.Parallel()

	csv := HandDimsCSV("2v2,44,62", "barrett,200,200")
	assert.Equal(t, "name,span,depth\n2v2,44,62\nbarrett,200,200\n", csv)
}
