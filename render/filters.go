package render

import (
	"fmt"
	"math"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"clipsmith/types"
)

// lerpExpr builds an ffmpeg expression that moves linearly from a to b over
// the output frames of a zoompan filter. Constant values collapse to a plain
// number so the filter graph stays readable in logs.
func lerpExpr(a, b float64, frames int) string {
	if frames <= 1 || a == b {
		return fmt.Sprintf("%.6f", a)
	}
	return fmt.Sprintf("%.6f+(%.6f-%.6f)*on/%d", a, b, a, frames-1)
}

// zoompanArgs translates a motion curve into zoompan filter arguments.
// The crop window is expressed as frame fractions, so zoom is the inverse of
// the window width and x/y scale with the input dimensions.
func zoompanArgs(curve types.MotionCurve, duration float64, fps, width, height int) ffmpeg.KwArgs {
	frames := int(math.Round(duration * float64(fps)))
	if frames < 1 {
		frames = 1
	}

	zStart, zEnd := 1.0/curve.Start.W, 1.0/curve.End.W

	return ffmpeg.KwArgs{
		"z":   lerpExpr(zStart, zEnd, frames),
		"x":   "iw*(" + lerpExpr(curve.Start.X, curve.End.X, frames) + ")",
		"y":   "ih*(" + lerpExpr(curve.Start.Y, curve.End.Y, frames) + ")",
		"d":   frames,
		"s":   fmt.Sprintf("%dx%d", width, height),
		"fps": fps,
	}
}

// rotateExpr builds the overlay rotation angle: one full turn per period
// seconds, offset by the starting phase in degrees. Driven by the global
// timeline so the rotation never jumps at a cut.
func rotateExpr(phaseDegrees, period float64) string {
	if period <= 0 {
		period = 3.0
	}
	radians := phaseDegrees * math.Pi / 180.0
	return fmt.Sprintf("2*PI/%.6f*t+%.10f", period, radians)
}

// synthToneExpr builds an aevalsrc expression for the fallback background
// tone: a quiet A3 chord so videos without a music pool are not silent.
func synthToneExpr(duration float64) string {
	return fmt.Sprintf(
		"aevalsrc=0.5*sin(220*2*PI*t)+0.3*sin(277.18*2*PI*t)+0.2*sin(329.63*2*PI*t):s=44100:d=%.3f",
		duration)
}
