package planner

import (
	"math"
	"testing"

	"clipsmith/types"
)

func TestAdvancePhaseContinuity(t *testing.T) {
	// Accumulated phase over three segments of 3s, 5s, 4s at one turn per 3s:
	// (12/3)*360 mod 360 = 0.
	phase := 0.0
	for _, d := range []float64{3, 5, 4} {
		phase = AdvancePhase(phase, d, 3.0)
	}
	if math.Abs(phase) > 1e-9 && math.Abs(phase-360) > 1e-9 {
		t.Fatalf("accumulated phase = %.6f; want 0", phase)
	}
}

func TestAdvancePhaseMatchesTotal(t *testing.T) {
	// Advancing segment by segment equals advancing once by the total.
	durations := []float64{2.7, 4.1, 3.3, 6.25}
	period := 3.0

	stepped := 17.0
	total := 0.0
	for _, d := range durations {
		stepped = AdvancePhase(stepped, d, period)
		total += d
	}
	direct := AdvancePhase(17.0, total, period)

	if math.Abs(stepped-direct) > 1e-6 {
		t.Fatalf("stepped phase %.6f != direct phase %.6f", stepped, direct)
	}
}

func TestParameterizeClipHasNoMotion(t *testing.T) {
	curve, phaseOut := Parameterize(types.AssetClip, 0, 3.0, 90.0, 3.0)
	if curve != nil {
		t.Fatalf("clip motion curve = %+v; want nil", curve)
	}
	if math.Abs(phaseOut-90.0) > 1e-9 {
		// One full turn over 3s at period 3s returns to the same angle.
		t.Fatalf("phase out = %.4f; want 90", phaseOut)
	}
}

func TestParameterizeAntiRepetition(t *testing.T) {
	// Consecutive segments must never get the same motion preset.
	prev := ""
	for i := 0; i < 20; i++ {
		curve, _ := Parameterize(types.AssetStill, i, 4.0, 0, 3.0)
		if curve == nil {
			t.Fatalf("still at index %d got nil motion curve", i)
		}
		if curve.Preset == prev {
			t.Fatalf("index %d repeats preset %q", i, curve.Preset)
		}
		prev = curve.Preset
	}
}

func TestMotionPresetsStayInFrame(t *testing.T) {
	check := func(name string, r types.CropRect) {
		if r.X < 0 || r.Y < 0 || r.W <= 0 || r.H <= 0 || r.X+r.W > 1+1e-9 || r.Y+r.H > 1+1e-9 {
			t.Fatalf("preset %q crop %+v leaves the frame", name, r)
		}
	}
	for _, p := range motionPresets {
		check(p.Preset, p.Start)
		check(p.Preset, p.End)
	}
}
