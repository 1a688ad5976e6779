package optics

import (
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Line width in points of a plotted ray of amplitude 1
const plotThickness = 4

func newRayPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	return p
}

func addPath(p *plot.Plot, pts plotter.XYs, i int, amplitude float64, dashed bool) error {
	l, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	l.Color = plotutil.Color(i)
	l.Width = vg.Points(math.Max(0.5, amplitude*plotThickness))
	if dashed {
		l.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	}
	p.Add(l)
	return nil
}

// PlotBundle plots the primary (solid) and secondary (dashed) branches of each trace. Secondary
// branches that never carry light are left out.
func PlotBundle(title string, rays []Trace) (*plot.Plot, error) {
	p := newRayPlot(title)
	for i, t := range rays {
		if len(t) < 2 {
			continue
		}
		primary := make(plotter.XYs, len(t))
		secondary := make(plotter.XYs, len(t))
		lit := false
		for j, s := range t {
			primary[j].X, primary[j].Y = s.Primary.X, s.Primary.Y
			secondary[j].X, secondary[j].Y = s.Secondary.X, s.Secondary.Y
			lit = lit || s.Secondary.Amplitude > 0
		}
		if err := addPath(p, primary, i, t[0].Primary.Amplitude, false); err != nil {
			return nil, err
		}
		if lit {
			if err := addPath(p, secondary, i, t.Last().Secondary.Amplitude, true); err != nil {
				return nil, err
			}
		}
	}
	return p, nil
}

// PlotAngleBundle plots angle-form traces point to point
func PlotAngleBundle(title string, rays []AngleTrace) (*plot.Plot, error) {
	p := newRayPlot(title)
	for i, t := range rays {
		if len(t) < 2 {
			continue
		}
		pts := make(plotter.XYs, len(t))
		for j, s := range t {
			pts[j].X, pts[j].Y = s.X, s.Y
		}
		if err := addPath(p, pts, i, 1, false); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// SavePlot writes p to path; the format follows the file extension
func SavePlot(p *plot.Plot, width, height int, path string) error {
	return p.Save(font.Length(width), font.Length(height), path)
}
