package scenario

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
)

// Section names as they appear in the scenario document.
const (
	sectionSystems  = "ego_vehicle_systems"
	sectionDynamics = "ego_vehicle_dynamics"
	sectionObjects  = "dynamic_objects"
)

// Vec2 is a planar vector (position, acceleration, relative velocity, ...).
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Norm returns the Euclidean magnitude sqrt(X²+Y²).
func (v Vec2) Norm() float64 {
	return math.Hypot(v.X, v.Y)
}

// SystemStatus is one ego_vehicle_systems entry.
type SystemStatus struct {
	StatusADF float64
}

// EgoStep is one ego_vehicle_dynamics sample.
type EgoStep struct {
	FileTime     float64
	Position     Vec2
	Acceleration Vec2
	Velocity     float64
	HeadingAngle float64
	YawRate      float64
}

// ObjectObservation is one dynamic_objects entry: a single object at a single step.
type ObjectObservation struct {
	InternalID   int64
	FileTime     float64
	AbsVelocity  float64
	Position     Vec2
	Acceleration Vec2
	RelPosition  Vec2
	RelVelocity  Vec2
	Length       float64
	Width        float64
}

// Record is a scenario document after schema checking.
type Record struct {
	Systems  []SystemStatus
	Dynamics []EgoStep
	Objects  []ObjectObservation
}

// Wire-level shapes. Required fields are pointers so absence can be told
// apart from a zero value.
type rawRecord struct {
	Systems  []rawSystemStatus      `json:"ego_vehicle_systems"`
	Dynamics *[]rawEgoStep          `json:"ego_vehicle_dynamics"`
	Objects  []rawObjectObservation `json:"dynamic_objects"`
}

type rawSystemStatus struct {
	StatusADF *statusFlag `json:"status_adf"`
}

// statusFlag accepts status_adf written either as a number or as a JSON
// boolean; false maps to 0 and true to 1.
type statusFlag float64

func (f *statusFlag) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		if b {
			*f = 1
		} else {
			*f = 0
		}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("status_adf must be a number or boolean, got %s", data)
	}
	*f = statusFlag(v)
	return nil
}

type rawEgoStep struct {
	FileTime     *float64 `json:"file_time"`
	X            *float64 `json:"x"`
	Y            *float64 `json:"y"`
	AX           *float64 `json:"ax"`
	AY           *float64 `json:"ay"`
	Velocity     *float64 `json:"velocity"`
	HeadingAngle *float64 `json:"heading_angle"`
	YawRate      *float64 `json:"yaw_rate"`
}

type rawObjectObservation struct {
	InternalID   *int64   `json:"internal_id"`
	FileTime     *float64 `json:"file_time"`
	AbsVelocity  *float64 `json:"abs_velocity"`
	X            *float64 `json:"x"`
	Y            *float64 `json:"y"`
	AX           *float64 `json:"ax"`
	AY           *float64 `json:"ay"`
	RelPositionX *float64 `json:"rel_position_x"`
	RelPositionY *float64 `json:"rel_position_y"`
	RelVelocityX *float64 `json:"rel_velocity_x"`
	RelVelocityY *float64 `json:"rel_velocity_y"`
	Length       *float64 `json:"length"`
	Width        *float64 `json:"width"`
}

// Decode reads a whole scenario document from r and checks it against the
// schema. Unknown fields are ignored; anything after the document other than
// whitespace is rejected. All failures wrap ErrMalformed.
func Decode(r io.Reader) (*Record, error) {
	var raw rawRecord
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrMalformed, err)
	}
	// A log holds exactly one document.
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return nil, fmt.Errorf("%w: trailing data after document at offset %d", ErrMalformed, dec.InputOffset())
		}
		return nil, fmt.Errorf("%w: trailing data after document: %w", ErrMalformed, err)
	}
	return raw.validate()
}

func (raw *rawRecord) validate() (*Record, error) {
	// Only the first systems entry is consulted, but it must exist.
	if len(raw.Systems) == 0 {
		return nil, missingSection(sectionSystems)
	}
	if raw.Systems[0].StatusADF == nil {
		return nil, missingField(sectionSystems, 0, "status_adf")
	}
	if raw.Dynamics == nil {
		return nil, missingSection(sectionDynamics)
	}

	rec := &Record{
		Systems:  make([]SystemStatus, 0, len(raw.Systems)),
		Dynamics: make([]EgoStep, 0, len(*raw.Dynamics)),
		Objects:  make([]ObjectObservation, 0, len(raw.Objects)),
	}

	for _, s := range raw.Systems {
		var st SystemStatus
		if s.StatusADF != nil {
			st.StatusADF = float64(*s.StatusADF)
		}
		rec.Systems = append(rec.Systems, st)
	}

	for i, s := range *raw.Dynamics {
		step, err := s.toStep(i)
		if err != nil {
			return nil, err
		}
		rec.Dynamics = append(rec.Dynamics, step)
	}

	for i, o := range raw.Objects {
		obs, err := o.toObservation(i)
		if err != nil {
			return nil, err
		}
		rec.Objects = append(rec.Objects, obs)
	}

	return rec, nil
}

func (s rawEgoStep) toStep(i int) (EgoStep, error) {
	var missing string
	switch {
	case s.FileTime == nil:
		missing = "file_time"
	case s.X == nil:
		missing = "x"
	case s.Y == nil:
		missing = "y"
	case s.AX == nil:
		missing = "ax"
	case s.AY == nil:
		missing = "ay"
	case s.Velocity == nil:
		missing = "velocity"
	case s.HeadingAngle == nil:
		missing = "heading_angle"
	case s.YawRate == nil:
		missing = "yaw_rate"
	}
	if missing != "" {
		return EgoStep{}, missingField(sectionDynamics, i, missing)
	}

	return EgoStep{
		FileTime:     *s.FileTime,
		Position:     Vec2{X: *s.X, Y: *s.Y},
		Acceleration: Vec2{X: *s.AX, Y: *s.AY},
		Velocity:     *s.Velocity,
		HeadingAngle: *s.HeadingAngle,
		YawRate:      *s.YawRate,
	}, nil
}

func (o rawObjectObservation) toObservation(i int) (ObjectObservation, error) {
	var missing string
	switch {
	case o.InternalID == nil:
		missing = "internal_id"
	case o.FileTime == nil:
		missing = "file_time"
	case o.AbsVelocity == nil:
		missing = "abs_velocity"
	case o.X == nil:
		missing = "x"
	case o.Y == nil:
		missing = "y"
	case o.AX == nil:
		missing = "ax"
	case o.AY == nil:
		missing = "ay"
	case o.RelPositionX == nil:
		missing = "rel_position_x"
	case o.RelPositionY == nil:
		missing = "rel_position_y"
	case o.RelVelocityX == nil:
		missing = "rel_velocity_x"
	case o.RelVelocityY == nil:
		missing = "rel_velocity_y"
	case o.Length == nil:
		missing = "length"
	case o.Width == nil:
		missing = "width"
	}
	if missing != "" {
		return ObjectObservation{}, missingField(sectionObjects, i, missing)
	}

	return ObjectObservation{
		InternalID:   *o.InternalID,
		FileTime:     *o.FileTime,
		AbsVelocity:  *o.AbsVelocity,
		Position:     Vec2{X: *o.X, Y: *o.Y},
		Acceleration: Vec2{X: *o.AX, Y: *o.AY},
		RelPosition:  Vec2{X: *o.RelPositionX, Y: *o.RelPositionY},
		RelVelocity:  Vec2{X: *o.RelVelocityX, Y: *o.RelVelocityY},
		Length:       *o.Length,
		Width:        *o.Width,
	}, nil
}
