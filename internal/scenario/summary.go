package scenario

import (
	"slices"
)

// DrivingMode reports whether the automated driving function was active.
type DrivingMode string

const (
	Manual    DrivingMode = "manual"
	Automated DrivingMode = "automated"
)

// DrivingModeFromStatus maps a status_adf flag to a DrivingMode.
// Exactly zero is manual; every other value is automated.
func DrivingModeFromStatus(statusADF float64) DrivingMode {
	if statusADF == 0 {
		return Manual
	}
	return Automated
}

// EgoSeries holds the ego dynamics as parallel arrays, one element per
// logged step and in log order.
type EgoSeries struct {
	Time            []float64
	Velocity        []float64
	Position        []Vec2
	PositionAbs     []float64
	Acceleration    []Vec2
	AccelerationAbs []float64
	HeadingAngle    []float64
	YawRate         []float64
}

// Len returns the number of steps in the series.
func (e *EgoSeries) Len() int { return len(e.Time) }

// ObjectSeries holds the retained observations of one dynamic object.
// Only steps with strictly positive absolute velocity are present.
type ObjectSeries struct {
	ID              int64
	Time            []float64
	Velocity        []float64
	Position        []Vec2
	PositionAbs     []float64
	Acceleration    []Vec2
	AccelerationAbs []float64
	RelPosition     []Vec2
	RelVelocity     []Vec2
	Length          []float64
	Width           []float64

	// VelocityStats is filled once all observations are grouped.
	VelocityStats VelocityStats
}

// Len returns the number of retained observations.
func (o *ObjectSeries) Len() int { return len(o.Time) }

func (o *ObjectSeries) append(obs ObjectObservation) {
	o.Time = append(o.Time, obs.FileTime)
	o.Velocity = append(o.Velocity, obs.AbsVelocity)
	o.Position = append(o.Position, obs.Position)
	o.PositionAbs = append(o.PositionAbs, obs.Position.Norm())
	o.Acceleration = append(o.Acceleration, obs.Acceleration)
	o.AccelerationAbs = append(o.AccelerationAbs, obs.Acceleration.Norm())
	o.RelPosition = append(o.RelPosition, obs.RelPosition)
	o.RelVelocity = append(o.RelVelocity, obs.RelVelocity)
	o.Length = append(o.Length, obs.Length)
	o.Width = append(o.Width, obs.Width)
}

// Summary is the result of loading one scenario.
type Summary struct {
	DrivingMode DrivingMode

	// MeanEgoVelocity is NaN when the log has no ego dynamics steps.
	MeanEgoVelocity  float64
	EgoVelocityStats VelocityStats
	Ego              EgoSeries

	DynamicObjects map[int64]*ObjectSeries
	// ObjectOrder lists object ids in the order they were first retained.
	ObjectOrder []int64

	// MeanObjectVelocity is the mean over every retained object velocity
	// sample across all objects, or 0 when no object was retained.
	MeanObjectVelocity float64
}

// ObjectIDs returns the retained object ids in ascending order.
func (s *Summary) ObjectIDs() []int64 {
	ids := make([]int64, 0, len(s.DynamicObjects))
	for id := range s.DynamicObjects {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Summarize derives the ego and object series and the mean velocities from rec.
func Summarize(rec *Record) (*Summary, error) {
	if rec == nil || len(rec.Systems) == 0 {
		return nil, missingSection(sectionSystems)
	}

	s := &Summary{
		DrivingMode:    DrivingModeFromStatus(rec.Systems[0].StatusADF),
		Ego:            buildEgoSeries(rec.Dynamics),
		DynamicObjects: make(map[int64]*ObjectSeries),
	}

	var pooled []float64
	for _, obs := range rec.Objects {
		if obs.AbsVelocity <= 0 {
			continue
		}
		series, ok := s.DynamicObjects[obs.InternalID]
		if !ok {
			series = &ObjectSeries{ID: obs.InternalID}
			s.DynamicObjects[obs.InternalID] = series
			s.ObjectOrder = append(s.ObjectOrder, obs.InternalID)
		}
		series.append(obs)
		pooled = append(pooled, obs.AbsVelocity)
	}
	for _, series := range s.DynamicObjects {
		series.VelocityStats = computeVelocityStats(series.Velocity)
	}

	s.MeanEgoVelocity = mean(s.Ego.Velocity)
	s.EgoVelocityStats = computeVelocityStats(s.Ego.Velocity)
	if len(pooled) > 0 {
		s.MeanObjectVelocity = mean(pooled)
	}

	return s, nil
}

func buildEgoSeries(steps []EgoStep) EgoSeries {
	n := len(steps)
	e := EgoSeries{
		Time:            make([]float64, n),
		Velocity:        make([]float64, n),
		Position:        make([]Vec2, n),
		PositionAbs:     make([]float64, n),
		Acceleration:    make([]Vec2, n),
		AccelerationAbs: make([]float64, n),
		HeadingAngle:    make([]float64, n),
		YawRate:         make([]float64, n),
	}
	for i, st := range steps {
		e.Time[i] = st.FileTime
		e.Velocity[i] = st.Velocity
		e.Position[i] = st.Position
		e.PositionAbs[i] = st.Position.Norm()
		e.Acceleration[i] = st.Acceleration
		e.AccelerationAbs[i] = st.Acceleration.Norm()
		e.HeadingAngle[i] = st.HeadingAngle
		e.YawRate[i] = st.YawRate
	}
	return e
}
