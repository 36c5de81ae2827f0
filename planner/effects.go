package planner

import (
	"math"

	"clipsmith/types"
)

// DefaultOverlayPeriod is the wall-clock time for one full turn of the brand
// overlay, in seconds.
const DefaultOverlayPeriod = 3.0

var fullFrame = types.CropRect{X: 0, Y: 0, W: 1, H: 1}

// motionPresets is a fixed rotation of pan+zoom movements, cycled by segment
// index so consecutive segments never repeat the same motion. Crop windows
// are fractions of the source frame and stay inside [0,1].
var motionPresets = []types.MotionCurve{
	{Preset: "zoom-in-center", Start: fullFrame, End: types.CropRect{X: 0.15, Y: 0.15, W: 0.7, H: 0.7}},
	{Preset: "zoom-out-center", Start: types.CropRect{X: 0.15, Y: 0.15, W: 0.7, H: 0.7}, End: fullFrame},
	{Preset: "zoom-in-corner", Start: fullFrame, End: types.CropRect{X: 0.3, Y: 0.3, W: 0.7, H: 0.7}},
	{Preset: "pan-right", Start: types.CropRect{X: 0, Y: 0.1, W: 0.8, H: 0.8}, End: types.CropRect{X: 0.2, Y: 0.1, W: 0.8, H: 0.8}},
	{Preset: "zoom-out-sweep", Start: types.CropRect{X: 0.3, Y: 0, W: 0.7, H: 0.7}, End: fullFrame},
	{Preset: "pan-down", Start: types.CropRect{X: 0.1, Y: 0, W: 0.8, H: 0.8}, End: types.CropRect{X: 0.1, Y: 0.2, W: 0.8, H: 0.8}},
}

// Parameterize computes the motion curve for a segment's visual and advances
// the brand-overlay rotation phase. Clips get no motion curve (nil); stills
// get the preset for their position in the video. phaseIn is the overlay
// angle carried over from the previous segment so the rotation never jumps
// at a cut.
func Parameterize(kind string, index int, duration, phaseIn, period float64) (*types.MotionCurve, float64) {
	phaseOut := AdvancePhase(phaseIn, duration, period)

	if kind != types.AssetStill {
		return nil, phaseOut
	}

	curve := motionPresets[index%len(motionPresets)]
	return &curve, phaseOut
}

// AdvancePhase rotates the overlay at one full turn per period seconds and
// returns the resulting angle mod 360.
func AdvancePhase(phaseIn, duration, period float64) float64 {
	if period <= 0 {
		period = DefaultOverlayPeriod
	}
	return math.Mod(phaseIn+360.0*duration/period, 360.0)
}
