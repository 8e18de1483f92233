package scenario

import (
	"bytes"
	"fmt"

	"github.com/banshee-data/scenario.report/internal/fsutil"
	"github.com/banshee-data/scenario.report/internal/monitoring"
)

// Loader reads scenario documents from a FileSystem.
// A Loader holds no per-call state and may be reused.
type Loader struct {
	fs fsutil.FileSystem
}

// NewLoader returns a Loader reading from fsys. A nil fsys uses the OS filesystem.
func NewLoader(fsys fsutil.FileSystem) *Loader {
	if fsys == nil {
		fsys = fsutil.OSFileSystem{}
	}
	return &Loader{fs: fsys}
}

// Load reads the scenario at path in full and summarises it.
// Errors wrap ErrNotFound when the file cannot be read and ErrMalformed
// when its content does not match the scenario schema.
func (l *Loader) Load(path string) (*Summary, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	rec, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if len(rec.Dynamics) == 0 {
		monitoring.Logf("warning: %s has no %s steps; mean ego velocity is undefined", path, sectionDynamics)
	}

	s, err := Summarize(rec)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	monitoring.Debugf("loaded %s: mode=%s ego_steps=%d observations=%d objects=%d",
		path, s.DrivingMode, s.Ego.Len(), len(rec.Objects), len(s.DynamicObjects))
	return s, nil
}

// Load reads the scenario at path from the OS filesystem.
func Load(path string) (*Summary, error) {
	return NewLoader(nil).Load(path)
}
