// Command scenario-report loads driving-scenario logs, logs a kinematic
// summary for each, and optionally renders PNG charts and an HTML dashboard.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/banshee-data/scenario.report/internal/config"
	"github.com/banshee-data/scenario.report/internal/fsutil"
	"github.com/banshee-data/scenario.report/internal/monitoring"
	"github.com/banshee-data/scenario.report/internal/report"
	"github.com/banshee-data/scenario.report/internal/scenario"
	"github.com/banshee-data/scenario.report/internal/security"
	"github.com/banshee-data/scenario.report/internal/timeutil"
	"github.com/banshee-data/scenario.report/internal/version"
)

func main() {
	log.SetFlags(log.LstdFlags)
	os.Exit(run(os.Args[1:], os.Stderr, fsutil.OSFileSystem{}, timeutil.RealClock{}))
}

// run is main without the process exit, so tests can drive it.
func run(args []string, stderr io.Writer, fsys fsutil.FileSystem, clock timeutil.Clock) int {
	fl := flag.NewFlagSet("scenario-report", flag.ContinueOnError)
	fl.SetOutput(stderr)
	var (
		configPath  = fl.String("config", "", "path to report config JSON")
		outDir      = fl.String("out", "", "report output directory (overrides config)")
		writePNG    = fl.Bool("png", false, "render PNG charts")
		writeHTML   = fl.Bool("html", false, "render HTML dashboard")
		maxObjects  = fl.Int("max-objects", -1, "max dynamic objects to plot, 0 for all (overrides config)")
		dataDir     = fl.String("data-dir", "", "only accept scenario files inside this directory (overrides config)")
		verbose     = fl.Bool("v", false, "verbose logging")
		showVersion = fl.Bool("version", false, "print version and exit")
	)
	fl.Usage = func() {
		fmt.Fprintf(stderr, "usage: scenario-report [flags] <scenario.json>...\n")
		fl.PrintDefaults()
	}
	if err := fl.Parse(args); err != nil {
		return 2
	}

	if *showVersion {
		fmt.Fprintln(stderr, version.String())
		return 0
	}
	if fl.NArg() == 0 {
		fl.Usage()
		return 2
	}
	monitoring.SetVerbose(*verbose)

	cfg := config.DefaultReportConfig()
	if *configPath != "" {
		fileCfg, err := config.LoadReportConfig(*configPath)
		if err != nil {
			monitoring.Logf("failed to load config: %v", err)
			return 1
		}
		cfg.Merge(fileCfg)
	}

	// flags given on the command line win over the config file
	overrides := &config.ReportConfig{}
	fl.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "out":
			overrides.OutputDir = outDir
		case "png":
			overrides.WritePNG = writePNG
		case "html":
			overrides.WriteHTML = writeHTML
		case "max-objects":
			overrides.MaxObjects = maxObjects
		case "data-dir":
			overrides.DataDir = dataDir
		}
	})
	cfg.Merge(overrides)
	if err := cfg.Validate(); err != nil {
		monitoring.Logf("invalid options: %v", err)
		return 1
	}

	if monitoring.Verbose() {
		monitoring.Logf("config: out=%s png=%v html=%v max_objects=%d data_dir=%q",
			cfg.GetOutputDir(), cfg.GetWritePNG(), cfg.GetWriteHTML(), cfg.GetMaxObjects(), cfg.GetDataDir())
	}

	// The data-dir check must look at the same filesystem the loader reads.
	// Symlinks can only be resolved on the OS filesystem.
	_, onDisk := fsys.(fsutil.OSFileSystem)

	loader := scenario.NewLoader(fsys)
	var writer *report.Writer
	if cfg.Enabled() {
		writer = report.NewWriter(cfg, fsys, clock)
	}

	failed := 0
	for _, path := range fl.Args() {
		if err := processFile(path, cfg, onDisk, loader, writer, clock); err != nil {
			monitoring.Logf("%s: %v", path, err)
			failed++
		}
	}

	if failed > 0 {
		monitoring.Logf("%d of %d scenario(s) failed", failed, fl.NArg())
		return 1
	}
	return 0
}

func processFile(path string, cfg *config.ReportConfig, onDisk bool, loader *scenario.Loader, writer *report.Writer, clock timeutil.Clock) error {
	if err := security.ValidateScenarioPath(path, cfg.GetDataDir(), onDisk); err != nil {
		return err
	}

	start := clock.Now()
	s, err := loader.Load(path)
	switch {
	case errors.Is(err, scenario.ErrNotFound):
		return fmt.Errorf("cannot read scenario: %w", err)
	case errors.Is(err, scenario.ErrMalformed):
		return fmt.Errorf("invalid scenario: %w", err)
	case err != nil:
		return err
	}

	monitoring.Logf("%s: %s", path, describe(s))
	monitoring.Debugf("%s: loaded in %v", path, clock.Since(start))

	if writer == nil {
		return nil
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	res, err := writer.Write(name, s)
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}
	monitoring.Logf("%s: wrote %d file(s) to %s (run %s)", path, len(res.Files), res.Dir, res.RunID)
	return nil
}

// describe formats the one-line summary logged for each scenario.
func describe(s *scenario.Summary) string {
	return fmt.Sprintf("mode=%s ego_steps=%d mean_ego_velocity=%s ego_p85=%s objects=%d mean_object_velocity=%.2f",
		s.DrivingMode,
		s.Ego.Len(),
		formatFloat(s.MeanEgoVelocity),
		formatFloat(s.EgoVelocityStats.P85),
		len(s.DynamicObjects),
		s.MeanObjectVelocity,
	)
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", v)
}
