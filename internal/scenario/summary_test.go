package scenario

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func egoStep(t, x, y, ax, ay, v float64) EgoStep {
	return EgoStep{FileTime: t, Position: Vec2{X: x, Y: y}, Acceleration: Vec2{X: ax, Y: ay}, Velocity: v}
}

func observation(id int64, t, v, x, y float64) ObjectObservation {
	return ObjectObservation{
		InternalID:  id,
		FileTime:    t,
		AbsVelocity: v,
		Position:    Vec2{X: x, Y: y},
		RelPosition: Vec2{X: x - 1, Y: y},
		RelVelocity: Vec2{X: v - 1, Y: 0},
		Length:      4,
		Width:       2,
	}
}

func TestDrivingModeFromStatus(t *testing.T) {
	tests := []struct {
		flag float64
		want DrivingMode
	}{
		{0, Manual},
		{1, Automated},
		{2, Automated},
		{-1, Automated},
		{0.5, Automated},
	}
	for _, tt := range tests {
		if got := DrivingModeFromStatus(tt.flag); got != tt.want {
			t.Errorf("DrivingModeFromStatus(%v) = %s, want %s", tt.flag, got, tt.want)
		}
	}
}

func TestSummarize_EgoSeries(t *testing.T) {
	rec := &Record{
		Systems: []SystemStatus{{StatusADF: 0}, {StatusADF: 3}},
		Dynamics: []EgoStep{
			egoStep(0.0, 3, 4, 1, 0, 10),
			egoStep(0.1, 6, 8, 0, -2, 12),
			egoStep(0.2, -5, 12, 3, 4, 14),
		},
	}
	rec.Dynamics[1].HeadingAngle = 0.25
	rec.Dynamics[2].YawRate = -0.05

	s, err := Summarize(rec)
	require.NoError(t, err)

	want := EgoSeries{
		Time:            []float64{0.0, 0.1, 0.2},
		Velocity:        []float64{10, 12, 14},
		Position:        []Vec2{{3, 4}, {6, 8}, {-5, 12}},
		PositionAbs:     []float64{5, 10, 13},
		Acceleration:    []Vec2{{1, 0}, {0, -2}, {3, 4}},
		AccelerationAbs: []float64{1, 2, 5},
		HeadingAngle:    []float64{0, 0.25, 0},
		YawRate:         []float64{0, 0, -0.05},
	}
	if diff := cmp.Diff(want, s.Ego, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("ego series mismatch (-want +got):\n%s", diff)
	}

	// only the first systems entry decides the mode
	assert.Equal(t, Manual, s.DrivingMode)
	assert.InDelta(t, 12.0, s.MeanEgoVelocity, 1e-12)
}

func TestSummarize_EgoArraysShareLength(t *testing.T) {
	for _, n := range []int{0, 1, 7, 250} {
		rec := &Record{Systems: []SystemStatus{{StatusADF: 1}}}
		for i := 0; i < n; i++ {
			rec.Dynamics = append(rec.Dynamics, egoStep(float64(i)*0.05, float64(i), 1, 0.1, 0.2, float64(i%9)))
		}
		s, err := Summarize(rec)
		require.NoError(t, err)

		e := s.Ego
		for name, l := range map[string]int{
			"time":             len(e.Time),
			"velocity":         len(e.Velocity),
			"position":         len(e.Position),
			"position_abs":     len(e.PositionAbs),
			"acceleration":     len(e.Acceleration),
			"acceleration_abs": len(e.AccelerationAbs),
			"heading_angle":    len(e.HeadingAngle),
			"yaw_rate":         len(e.YawRate),
		} {
			assert.Equal(t, n, l, "n=%d %s", n, name)
		}
	}
}

func TestSummarize_MagnitudesMatchComponents(t *testing.T) {
	rec := &Record{Systems: []SystemStatus{{}}}
	for i := 0; i < 50; i++ {
		x := float64(i)*1.7 - 40
		y := math.Sin(float64(i)) * 30
		rec.Dynamics = append(rec.Dynamics, egoStep(float64(i), x, y, y/10, -x/10, 1))
		rec.Objects = append(rec.Objects, observation(int64(i%4), float64(i), 1+float64(i%3), y, x))
	}

	s, err := Summarize(rec)
	require.NoError(t, err)

	for i := range s.Ego.Position {
		p, a := s.Ego.Position[i], s.Ego.Acceleration[i]
		assert.InDelta(t, math.Sqrt(p.X*p.X+p.Y*p.Y), s.Ego.PositionAbs[i], 1e-9)
		assert.InDelta(t, math.Sqrt(a.X*a.X+a.Y*a.Y), s.Ego.AccelerationAbs[i], 1e-9)
	}
	for _, obj := range s.DynamicObjects {
		for i := range obj.Position {
			p := obj.Position[i]
			assert.InDelta(t, math.Sqrt(p.X*p.X+p.Y*p.Y), obj.PositionAbs[i], 1e-9)
		}
	}
}

func TestSummarize_ObjectFiltering(t *testing.T) {
	rec := &Record{
		Systems: []SystemStatus{{StatusADF: 1}},
		Objects: []ObjectObservation{
			observation(9, 0.0, 0, 1, 1),    // stationary
			observation(4, 0.0, 2, 10, 0),   // kept
			observation(9, 0.1, -1, 1, 1),   // negative
			observation(4, 0.1, 4, 11, 0),   // kept
			observation(5, 0.1, 0, 20, 20),  // never moves
			observation(9, 0.2, 9, 2, 1),    // kept
			observation(6, 0.2, 1e-9, 3, 3), // tiny but positive
		},
	}

	s, err := Summarize(rec)
	require.NoError(t, err)

	assert.Equal(t, []int64{4, 6, 9}, s.ObjectIDs())
	assert.Equal(t, []int64{4, 9, 6}, s.ObjectOrder)
	assert.NotContains(t, s.DynamicObjects, int64(5))

	obj4 := s.DynamicObjects[4]
	want := &ObjectSeries{
		ID:              4,
		Time:            []float64{0.0, 0.1},
		Velocity:        []float64{2, 4},
		Position:        []Vec2{{10, 0}, {11, 0}},
		PositionAbs:     []float64{10, 11},
		Acceleration:    []Vec2{{}, {}},
		AccelerationAbs: []float64{0, 0},
		RelPosition:     []Vec2{{9, 0}, {10, 0}},
		RelVelocity:     []Vec2{{1, 0}, {3, 0}},
		Length:          []float64{4, 4},
		Width:           []float64{2, 2},
	}
	if diff := cmp.Diff(want, obj4, cmpopts.IgnoreFields(ObjectSeries{}, "VelocityStats")); diff != "" {
		t.Errorf("object 4 mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 2, obj4.VelocityStats.Count)
	assert.Equal(t, 3.0, obj4.VelocityStats.Mean)

	obj9 := s.DynamicObjects[9]
	assert.Equal(t, []float64{0.2}, obj9.Time)
	assert.Equal(t, []float64{9}, obj9.Velocity)

	for _, obj := range s.DynamicObjects {
		for _, v := range obj.Velocity {
			assert.Greater(t, v, 0.0)
		}
	}
}

// The pooled mean weights every retained sample, not just the last object.
func TestSummarize_MeanObjectVelocityPooled(t *testing.T) {
	rec := &Record{
		Systems: []SystemStatus{{}},
		Objects: []ObjectObservation{
			observation(1, 0, 2, 0, 0),
			observation(1, 1, 4, 0, 0),
			observation(2, 0, 9, 0, 0),
		},
	}

	s, err := Summarize(rec)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, s.MeanObjectVelocity, 1e-12)
}

func TestSummarize_NilRecord(t *testing.T) {
	_, err := Summarize(nil)
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = Summarize(&Record{})
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestVec2_Norm(t *testing.T) {
	assert.Equal(t, 5.0, Vec2{X: 3, Y: -4}.Norm())
	assert.Equal(t, 0.0, Vec2{}.Norm())
}
