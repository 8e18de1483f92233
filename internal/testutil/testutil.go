// Package testutil provides shared test utilities and scenario fixtures.
//
// Fixtures are built as plain maps so tests can delete or corrupt
// individual fields before marshalling.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// Default object footprint used by Object.
const (
	DefaultObjectLength = 4.5
	DefaultObjectWidth  = 1.8
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// Doc is a scenario document under construction.
type Doc struct {
	Systems  []map[string]any
	Dynamics []map[string]any
	Objects  []map[string]any

	// OmitDynamics and OmitObjects drop the section key entirely.
	OmitDynamics bool
	OmitObjects  bool
}

// NewDoc returns a document whose single systems entry carries statusADF.
func NewDoc(statusADF float64) *Doc {
	return &Doc{
		Systems:  []map[string]any{{"status_adf": statusADF}},
		Dynamics: []map[string]any{},
		Objects:  []map[string]any{},
	}
}

// EgoStep builds one ego_vehicle_dynamics entry.
func EgoStep(fileTime, x, y, ax, ay, velocity, heading, yawRate float64) map[string]any {
	return map[string]any{
		"file_time":     fileTime,
		"x":             x,
		"y":             y,
		"ax":            ax,
		"ay":            ay,
		"velocity":      velocity,
		"heading_angle": heading,
		"yaw_rate":      yawRate,
	}
}

// Object builds one dynamic_objects entry. Relative position mirrors the
// absolute position, relative velocity is (absVelocity, 0), and the
// footprint uses the package defaults.
func Object(id int64, fileTime, absVelocity, x, y, ax, ay float64) map[string]any {
	return map[string]any{
		"internal_id":    id,
		"file_time":      fileTime,
		"abs_velocity":   absVelocity,
		"x":              x,
		"y":              y,
		"ax":             ax,
		"ay":             ay,
		"rel_position_x": x,
		"rel_position_y": y,
		"rel_velocity_x": absVelocity,
		"rel_velocity_y": 0.0,
		"length":         DefaultObjectLength,
		"width":          DefaultObjectWidth,
	}
}

// AddEgo appends ego steps and returns d for chaining.
func (d *Doc) AddEgo(steps ...map[string]any) *Doc {
	d.Dynamics = append(d.Dynamics, steps...)
	return d
}

// AddObjects appends object observations and returns d for chaining.
func (d *Doc) AddObjects(objs ...map[string]any) *Doc {
	d.Objects = append(d.Objects, objs...)
	return d
}

// JSON marshals the document, failing the test on error.
func (d *Doc) JSON(t *testing.T) []byte {
	t.Helper()
	doc := map[string]any{"ego_vehicle_systems": d.Systems}
	if !d.OmitDynamics {
		doc["ego_vehicle_dynamics"] = d.Dynamics
	}
	if !d.OmitObjects {
		doc["dynamic_objects"] = d.Objects
	}
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal scenario fixture: %v", err)
	}
	return data
}

// WriteFile writes the document to dir/name and returns the path.
func (d *Doc) WriteFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, d.JSON(t), 0644); err != nil {
		t.Fatalf("write scenario fixture: %v", err)
	}
	return path
}
