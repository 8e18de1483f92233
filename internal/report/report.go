package report

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/banshee-data/scenario.report/internal/config"
	"github.com/banshee-data/scenario.report/internal/fsutil"
	"github.com/banshee-data/scenario.report/internal/monitoring"
	"github.com/banshee-data/scenario.report/internal/scenario"
	"github.com/banshee-data/scenario.report/internal/security"
	"github.com/banshee-data/scenario.report/internal/timeutil"
	"github.com/google/uuid"
)

// Output file names inside a run directory.
const (
	EgoVelocityFile     = "ego_velocity.png"
	EgoAccelerationFile = "ego_acceleration.png"
	TrajectoryFile      = "trajectory.png"
	ObjectVelocityFile  = "object_velocity.png"
	DashboardFile       = "dashboard.html"
)

// runIDLen is how much of the run UUID goes into the directory name.
const runIDLen = 8

// Result describes one completed render.
type Result struct {
	RunID string
	Dir   string
	Files []string
}

// Writer renders summaries into run directories.
type Writer struct {
	cfg   *config.ReportConfig
	fs    fsutil.FileSystem
	clock timeutil.Clock
	newID func() string
}

// NewWriter returns a Writer. Nil arguments fall back to the default
// config, the OS filesystem and the real clock.
func NewWriter(cfg *config.ReportConfig, fsys fsutil.FileSystem, clock timeutil.Clock) *Writer {
	if cfg == nil {
		cfg = config.DefaultReportConfig()
	}
	if fsys == nil {
		fsys = fsutil.OSFileSystem{}
	}
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	return &Writer{cfg: cfg, fs: fsys, clock: clock, newID: uuid.NewString}
}

// Write renders s under a new run directory named after name.
// Charts whose series are empty are skipped.
func (w *Writer) Write(name string, s *scenario.Summary) (*Result, error) {
	if s == nil {
		return nil, errors.New("nil summary")
	}
	if !w.cfg.Enabled() {
		return nil, errors.New("no report output enabled")
	}

	runID := w.newID()
	short := runID
	if len(short) > runIDLen {
		short = short[:runIDLen]
	}
	dir := filepath.Join(
		w.cfg.GetOutputDir(),
		security.SanitizeFilename(name),
		timeutil.RunStamp(w.clock.Now())+"_"+short,
	)
	if err := w.fs.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}

	res := &Result{RunID: runID, Dir: dir}
	objects := selectObjects(s, w.cfg.GetMaxObjects())

	if w.cfg.GetWritePNG() {
		files, err := w.writePlots(dir, s, objects)
		res.Files = append(res.Files, files...)
		if err != nil {
			return res, err
		}
	}
	if w.cfg.GetWriteHTML() {
		path := filepath.Join(dir, DashboardFile)
		if err := w.writeDashboard(path, name, s, objects); err != nil {
			return res, fmt.Errorf("dashboard: %w", err)
		}
		res.Files = append(res.Files, path)
	}

	monitoring.Debugf("report %s: %d files in %s", runID, len(res.Files), dir)
	return res, nil
}

// selectObjects orders objects by retained sample count (descending, ties by
// id) and keeps at most max of them; max 0 keeps all.
func selectObjects(s *scenario.Summary, max int) []*scenario.ObjectSeries {
	objs := make([]*scenario.ObjectSeries, 0, len(s.DynamicObjects))
	for _, o := range s.DynamicObjects {
		objs = append(objs, o)
	}
	sort.Slice(objs, func(i, j int) bool {
		if objs[i].Len() != objs[j].Len() {
			return objs[i].Len() > objs[j].Len()
		}
		return objs[i].ID < objs[j].ID
	})
	if max > 0 && len(objs) > max {
		objs = objs[:max]
	}
	return objs
}
