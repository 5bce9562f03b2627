// Package report renders analyzed trials: static PNG plots for publication
// figures and an interactive HTML scatter view for eyeballing a whole run.
package report

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/asterisk-data/asterisk.report/internal/asterisk"
)

var (
	targetColor = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	idealDashes = []vg.Length{vg.Points(4), vg.Points(3)}
)

// PlotTrial renders one trial against its target line and saves
// {name}.png under dir, returning the path written. The filtered trajectory,
// when present, is drawn alongside the raw one.
func PlotTrial(t *asterisk.Trial, dir string) (string, error) {
	if !t.Usable() {
		return "", fmt.Errorf("trial %s has no data to plot", t.Identity.Name())
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}

	p := plot.New()
	p.Title.Text = t.Identity.Name()
	p.X.Label.Text = "x (normalized)"
	p.Y.Label.Text = "y (normalized)"
	squareAxes(p, 0.6)

	if len(t.Target.Path) > 0 {
		targetLine, err := plotter.NewLine(pointsToXYs(t.Target.Path))
		if err != nil {
			return "", err
		}
		targetLine.Color = targetColor
		targetLine.Dashes = idealDashes
		p.Add(targetLine)
		p.Legend.Add("target", targetLine)
	}

	trialLine, err := plotter.NewLine(pointsToXYs(t.Poses.Points()))
	if err != nil {
		return "", err
	}
	trialLine.Color = paletteColors(1)[0]
	trialLine.Width = vg.Points(1)
	p.Add(trialLine)
	p.Legend.Add("trial", trialLine)

	if t.Filtered != nil {
		filteredPts := make([]asterisk.Point, len(t.Filtered.Frames))
		for i, f := range t.Filtered.Frames {
			filteredPts[i] = asterisk.Point{X: f.X, Y: f.Y}
		}
		filteredLine, err := plotter.NewLine(pointsToXYs(filteredPts))
		if err != nil {
			return "", err
		}
		filteredLine.Color = paletteColors(2)[1]
		filteredLine.Width = vg.Points(1)
		p.Add(filteredLine)
		p.Legend.Add(fmt.Sprintf("filtered (w=%d)", t.Filtered.Window), filteredLine)
	}

	p.Legend.Top = true
	p.Legend.Left = false

	path := filepath.Join(dir, t.Identity.Name()+".png")
	if err := p.Save(8*vg.Inch, 8*vg.Inch, path); err != nil {
		return "", fmt.Errorf("save trial plot: %w", err)
	}
	return path, nil
}

// PlotAsterisk renders a set of trials (typically one hand's eight
// translation directions) on a single star figure with the full ideal lines
// dashed underneath. Saves {name}.png under dir.
func PlotAsterisk(name string, trials []*asterisk.Trial, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}

	p := plot.New()
	p.Title.Text = name
	p.X.Label.Text = "x (normalized)"
	p.Y.Label.Text = "y (normalized)"
	squareAxes(p, 0.6)

	// Ideal lines first so trial lines draw on top.
	for _, d := range asterisk.TranslationDirections {
		ideal, err := plotter.NewLine(pointsToXYs(asterisk.IdealPath(d, 2, 0.5)))
		if err != nil {
			return "", err
		}
		ideal.Color = targetColor
		ideal.Dashes = idealDashes
		p.Add(ideal)
	}

	colors := paletteColors(len(trials))
	for i, t := range trials {
		if !t.Usable() {
			continue
		}
		line, err := plotter.NewLine(pointsToXYs(t.Poses.Points()))
		if err != nil {
			return "", err
		}
		line.Color = colors[i]
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(t.Identity.Name(), line)
	}

	p.Legend.Top = true
	p.Legend.Left = true
	p.Legend.XOffs = 10
	p.Legend.YOffs = -10

	path := filepath.Join(dir, name+".png")
	if err := p.Save(10*vg.Inch, 10*vg.Inch, path); err != nil {
		return "", fmt.Errorf("save asterisk plot: %w", err)
	}
	return path, nil
}

func squareAxes(p *plot.Plot, extent float64) {
	p.X.Min, p.X.Max = -extent, extent
	p.Y.Min, p.Y.Max = -extent, extent
}

func pointsToXYs(points []asterisk.Point) plotter.XYs {
	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i] = plotter.XY{X: pt.X, Y: pt.Y}
	}
	return xys
}

// paletteColors creates a palette of distinct colors for trial lines.
func paletteColors(n int) []color.Color {
	if n <= 0 {
		return nil
	}

	colors := make([]color.Color, n)
	for i := 0; i < n; i++ {
		hue := float64(i) / float64(n)
		r, g, b := hslToRGB(hue, 0.7, 0.5)
		colors[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return colors
}

// hslToRGB converts HSL to RGB (0-255 range)
func hslToRGB(h, s, l float64) (r, g, b uint8) {
	var rf, gf, bf float64

	if s == 0 {
		rf, gf, bf = l, l, l
	} else {
		var q float64
		if l < 0.5 {
			q = l * (1 + s)
		} else {
			q = l + s - l*s
		}
		p := 2*l - q
		rf = hueToRGB(p, q, h+1.0/3.0)
		gf = hueToRGB(p, q, h)
		bf = hueToRGB(p, q, h-1.0/3.0)
	}

	return uint8(rf * 255), uint8(gf * 255), uint8(bf * 255)
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t += 1
	}
	if t > 1 {
		t -= 1
	}
	if t < 1.0/6.0 {
		return p + (q-p)*6*t
	}
	if t < 1.0/2.0 {
		return q
	}
	if t < 2.0/3.0 {
		return p + (q-p)*(2.0/3.0-t)*6
	}
	return p
}
