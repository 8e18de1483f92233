package report

import (
	"fmt"
	"math"

	"github.com/banshee-data/scenario.report/internal/scenario"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const (
	chartWidth  = "1100px"
	chartHeight = "420px"
)

// writeDashboard renders every series of s on a single HTML page.
func (w *Writer) writeDashboard(path, name string, s *scenario.Summary, objects []*scenario.ObjectSeries) error {
	page := components.NewPage()
	page.PageTitle = fmt.Sprintf("Scenario %s", name)

	if s.Ego.Len() > 0 {
		page.AddCharts(
			timeSeriesChart("Ego Velocity", summarySubtitle(s), "m/s", "ego", s.Ego.Time, s.Ego.Velocity),
			timeSeriesChart("Ego Acceleration Magnitude", "", "m/s²", "ego", s.Ego.Time, s.Ego.AccelerationAbs),
			timeSeriesChart("Ego Yaw Rate", "", "rad/s", "ego", s.Ego.Time, s.Ego.YawRate),
		)
	}
	if s.Ego.Len() > 0 || len(objects) > 0 {
		page.AddCharts(trajectoryChart(s, objects))
	}
	if len(objects) > 0 {
		page.AddCharts(objectVelocityChart(objects))
	}

	f, err := w.fs.Create(path)
	if err != nil {
		return err
	}
	if err := page.Render(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func summarySubtitle(s *scenario.Summary) string {
	return fmt.Sprintf("mode=%s steps=%d mean_ego=%s objects=%d mean_object=%.2f",
		s.DrivingMode, s.Ego.Len(), formatSpeed(s.MeanEgoVelocity), len(s.DynamicObjects), s.MeanObjectVelocity)
}

// formatSpeed prints NaN as "n/a".
func formatSpeed(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", v)
}

func baseOptions(title, subtitle, xName, yName string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: xName, NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: yName}),
	}
}

func lineData(xs, ys []float64) []opts.LineData {
	data := make([]opts.LineData, len(xs))
	for i := range xs {
		data[i] = opts.LineData{Value: []interface{}{xs[i], ys[i]}}
	}
	return data
}

func timeSeriesChart(title, subtitle, yName, series string, xs, ys []float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(baseOptions(title, subtitle, "time (s)", yName)...)
	line.AddSeries(series, lineData(xs, ys), charts.WithItemStyleOpts(opts.ItemStyle{Color: hexColor(egoColor)}))
	return line
}

func trajectoryChart(s *scenario.Summary, objects []*scenario.ObjectSeries) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(baseOptions("Trajectories", "", "X (m)", "Y (m)")...)

	toScatter := func(vs []scenario.Vec2) []opts.ScatterData {
		data := make([]opts.ScatterData, len(vs))
		for i, v := range vs {
			data[i] = opts.ScatterData{Value: []interface{}{v.X, v.Y}}
		}
		return data
	}

	if s.Ego.Len() > 0 {
		scatter.AddSeries("ego", toScatter(s.Ego.Position),
			charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 4}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: hexColor(egoColor)}))
	}
	colors := generateColors(len(objects))
	for i, o := range objects {
		scatter.AddSeries(objectLabel(o.ID), toScatter(o.Position),
			charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 3}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: hexColor(colors[i])}))
	}
	return scatter
}

func objectVelocityChart(objects []*scenario.ObjectSeries) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(baseOptions("Dynamic Object Velocity", fmt.Sprintf("%d objects", len(objects)), "time (s)", "m/s")...)

	colors := generateColors(len(objects))
	for i, o := range objects {
		line.AddSeries(objectLabel(o.ID), lineData(o.Time, o.Velocity),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: hexColor(colors[i])}))
	}
	return line
}
