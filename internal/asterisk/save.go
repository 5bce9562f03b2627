package asterisk

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/asterisk-data/asterisk.report/internal/monitoring"
)

// SaveCSV writes the trial's conditioned pose data under dir and returns the
// path written. Unfiltered trials produce {name}.csv with frame,x,y,rmag;
// once a moving average has been applied the file is named
// f{window}_{name}.csv and carries the filtered columns as well.
func (t *Trial) SaveCSV(dir string) (string, error) {
	if !t.Usable() {
		return "", fmt.Errorf("trial %s has no data to save", t.Identity.Name())
	}

	name := t.Identity.FileName()
	if t.Filtered != nil {
		name = fmt.Sprintf("f%d_%s", t.Filtered.Window, name)
	}
	path := filepath.Join(dir, name)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"frame", "x", "y", "rmag"}
	if t.Filtered != nil {
		header = append(header, "f_x", "f_y", "f_rmag")
	}
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("write header: %w", err)
	}

	for i, frame := range t.Poses.Frames {
		row := []string{
			strconv.Itoa(i),
			formatValue(frame.X),
			formatValue(frame.Y),
			formatValue(frame.RMag),
		}
		if t.Filtered != nil {
			ff := t.Filtered.Frames[i]
			row = append(row, formatValue(ff.X), formatValue(ff.Y), formatValue(ff.RMag))
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("write row %d: %w", i, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush %s: %w", path, err)
	}

	monitoring.Debugf("saved trial data to %s", path)
	return path, nil
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
