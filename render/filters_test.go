package render

import (
	"strings"
	"testing"

	"clipsmith/types"
)

func TestLerpExpr(t *testing.T) {
	if got := lerpExpr(0.5, 0.5, 90); got != "0.500000" {
		t.Fatalf("constant lerp = %q", got)
	}
	if got := lerpExpr(0, 0.2, 1); got != "0.000000" {
		t.Fatalf("single-frame lerp = %q", got)
	}
	got := lerpExpr(0, 0.2, 90)
	if got != "0.000000+(0.200000-0.000000)*on/89" {
		t.Fatalf("lerp expr = %q", got)
	}
}

func TestZoompanArgs(t *testing.T) {
	curve := types.MotionCurve{
		Preset: "zoom-in-center",
		Start:  types.CropRect{X: 0, Y: 0, W: 1, H: 1},
		End:    types.CropRect{X: 0.15, Y: 0.15, W: 0.7, H: 0.7},
	}
	args := zoompanArgs(curve, 3.0, 30, 1080, 1920)

	if args["d"] != 90 {
		t.Fatalf("d = %v; want 90", args["d"])
	}
	if args["s"] != "1080x1920" {
		t.Fatalf("s = %v; want 1080x1920", args["s"])
	}
	z, ok := args["z"].(string)
	if !ok || !strings.Contains(z, "on/89") {
		t.Fatalf("z = %v; want interpolation over 89 steps", args["z"])
	}
	x, _ := args["x"].(string)
	if !strings.HasPrefix(x, "iw*(") {
		t.Fatalf("x = %q; want iw-scaled expression", x)
	}
}

func TestRotateExpr(t *testing.T) {
	got := rotateExpr(0, 3.0)
	if got != "2*PI/3.000000*t+0.0000000000" {
		t.Fatalf("rotate expr = %q", got)
	}
	if got := rotateExpr(90, 3.0); !strings.Contains(got, "1.5707963268") {
		t.Fatalf("rotate expr with phase = %q; want pi/2 offset", got)
	}
}

func TestSynthToneExprCarriesDuration(t *testing.T) {
	got := synthToneExpr(12.5)
	if !strings.Contains(got, "d=12.500") {
		t.Fatalf("synth expr = %q; want duration 12.500", got)
	}
	if !strings.HasPrefix(got, "aevalsrc=") {
		t.Fatalf("synth expr = %q; want aevalsrc source", got)
	}
}
