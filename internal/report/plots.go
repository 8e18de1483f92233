package report

import (
	"fmt"
	"image/color"
	"path/filepath"

	"github.com/banshee-data/scenario.report/internal/scenario"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// writePlots renders the PNG charts and returns the paths written.
func (w *Writer) writePlots(dir string, s *scenario.Summary, objects []*scenario.ObjectSeries) ([]string, error) {
	var written []string
	colors := generateColors(len(objects))

	builders := []struct {
		file  string
		build func() (*plot.Plot, error)
	}{
		{EgoVelocityFile, func() (*plot.Plot, error) { return egoSeriesPlot(s, "Ego Velocity", "Velocity (m/s)", s.Ego.Velocity) }},
		{EgoAccelerationFile, func() (*plot.Plot, error) {
			return egoSeriesPlot(s, "Ego Acceleration Magnitude", "|a| (m/s²)", s.Ego.AccelerationAbs)
		}},
		{TrajectoryFile, func() (*plot.Plot, error) { return trajectoryPlot(s, objects, colors) }},
		{ObjectVelocityFile, func() (*plot.Plot, error) { return objectVelocityPlot(objects, colors) }},
	}

	for _, b := range builders {
		p, err := b.build()
		if err != nil {
			return written, fmt.Errorf("%s: %w", b.file, err)
		}
		if p == nil {
			continue
		}
		path := filepath.Join(dir, b.file)
		if err := w.savePlot(p, path); err != nil {
			return written, fmt.Errorf("save %s: %w", b.file, err)
		}
		written = append(written, path)
	}
	return written, nil
}

// savePlot encodes p as PNG through the Writer's filesystem.
func (w *Writer) savePlot(p *plot.Plot, path string) error {
	width := vg.Length(w.cfg.GetPlotWidthInches()) * vg.Inch
	height := vg.Length(w.cfg.GetPlotHeightInches()) * vg.Inch

	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return err
	}
	f, err := w.fs.Create(path)
	if err != nil {
		return err
	}
	if _, err := wt.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// egoSeriesPlot plots ys against ego time. Returns nil when there are no steps.
func egoSeriesPlot(s *scenario.Summary, title, yLabel string, ys []float64) (*plot.Plot, error) {
	if len(ys) == 0 {
		return nil, nil
	}

	p := newPlot(fmt.Sprintf("%s (%s)", title, s.DrivingMode), "Time (s)", yLabel)
	pts := make(plotter.XYs, len(ys))
	for i, y := range ys {
		pts[i] = plotter.XY{X: s.Ego.Time[i], Y: y}
	}
	if err := addLine(p, "ego", pts, egoColor); err != nil {
		return nil, err
	}
	return p, nil
}

// trajectoryPlot draws the ego path and each selected object's path in x/y.
func trajectoryPlot(s *scenario.Summary, objects []*scenario.ObjectSeries, colors []color.Color) (*plot.Plot, error) {
	if s.Ego.Len() == 0 && len(objects) == 0 {
		return nil, nil
	}

	p := newPlot("Trajectories", "X (m)", "Y (m)")
	if s.Ego.Len() > 0 {
		if err := addLine(p, "ego", vecXYs(s.Ego.Position), egoColor); err != nil {
			return nil, err
		}
	}
	for i, o := range objects {
		if err := addLine(p, objectLabel(o.ID), vecXYs(o.Position), colors[i]); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// objectVelocityPlot draws absolute velocity against time per object.
func objectVelocityPlot(objects []*scenario.ObjectSeries, colors []color.Color) (*plot.Plot, error) {
	if len(objects) == 0 {
		return nil, nil
	}

	p := newPlot("Dynamic Object Velocity", "Time (s)", "Velocity (m/s)")
	for i, o := range objects {
		pts := make(plotter.XYs, o.Len())
		for j := range o.Time {
			pts[j] = plotter.XY{X: o.Time[j], Y: o.Velocity[j]}
		}
		if err := addLine(p, objectLabel(o.ID), pts, colors[i]); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10
	return p
}

func addLine(p *plot.Plot, label string, pts plotter.XYs, c color.Color) error {
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.Color = c
	line.Width = vg.Points(1)
	p.Add(line)
	p.Legend.Add(label, line)
	return nil
}

func vecXYs(vs []scenario.Vec2) plotter.XYs {
	pts := make(plotter.XYs, len(vs))
	for i, v := range vs {
		pts[i] = plotter.XY{X: v.X, Y: v.Y}
	}
	return pts
}

func objectLabel(id int64) string {
	return fmt.Sprintf("object %d", id)
}
