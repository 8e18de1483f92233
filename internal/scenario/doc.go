// Package scenario loads driving-scenario logs and reshapes them into
// time-aligned kinematic series for the ego vehicle and every tracked
// dynamic object.
//
// A scenario log is a single JSON document with three sections:
//
//   - ego_vehicle_systems: system status entries; only the first entry's
//     status_adf flag is read to decide the driving mode.
//   - ego_vehicle_dynamics: one sample per time step for the ego vehicle.
//   - dynamic_objects: one observation per object per time step.
//
// Load reads a document, checks that every required field is present, and
// returns a Summary holding the ego series, per-object series (only steps
// with strictly positive absolute velocity), and mean velocities. The
// package performs no unit conversion; values are carried as logged.
package scenario
