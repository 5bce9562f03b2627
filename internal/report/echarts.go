package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/asterisk-data/asterisk.report/internal/asterisk"
)

// RenderScatterHTML writes an interactive scatter view of the given trials to
// an HTML file under dir and returns the path. Each trial is one series; the
// third value dimension carries the rotation magnitude so the visual map can
// color twist progress.
func RenderScatterHTML(name string, trials []*asterisk.Trial, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}

	maxRot := 0.0
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: name, Theme: "dark", Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{Title: name, Subtitle: fmt.Sprintf("trials=%d", len(trials))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: -0.6, Max: 0.6, Name: "x (normalized)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: -0.6, Max: 0.6, Name: "y (normalized)", NameLocation: "middle", NameGap: 30}),
	)

	for _, t := range trials {
		if !t.Usable() {
			continue
		}
		data := make([]opts.ScatterData, 0, t.Poses.Len())
		for _, f := range t.Poses.Frames {
			if f.RMag > maxRot {
				maxRot = f.RMag
			}
			data = append(data, opts.ScatterData{Value: []interface{}{f.X, f.Y, f.RMag}})
		}
		scatter.AddSeries(t.Identity.Name(), data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 4}))
	}

	if maxRot == 0 {
		maxRot = 1
	}
	scatter.SetGlobalOptions(
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        float32(maxRot),
			Dimension:  "2",
			InRange:    &opts.VisualMapInRange{Color: []string{"#440154", "#3e4989", "#26828e", "#35b779", "#b5de2b", "#fde725"}},
		}),
	)

	path := filepath.Join(dir, name+".html")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := scatter.Render(f); err != nil {
		return "", fmt.Errorf("failed to render chart: %w", err)
	}
	return path, nil
}
