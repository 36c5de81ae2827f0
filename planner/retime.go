package planner

import (
	"log"

	"clipsmith/types"
)

// Retime converts segment-relative caption cues to global timestamps,
// compensating for the narration speed factor applied after synthesis.
//
// Cues were authored against the original (unscaled) audio timeline, so each
// offset divides by speedFactor. segmentStart is the cumulative scaled
// duration of all prior segments; segmentDuration is this segment's original
// audio duration. Cues that would overrun the scaled segment end are clamped,
// and cues whose clamped span collapses are dropped with a warning rather
// than failing the plan.
func Retime(cues []types.CaptionCue, segmentStart, segmentDuration, speedFactor float64) []types.CaptionCue {
	scaledEnd := segmentStart + segmentDuration/speedFactor

	out := make([]types.CaptionCue, 0, len(cues))
	for _, cue := range cues {
		globalStart := segmentStart + cue.Start/speedFactor
		globalEnd := segmentStart + cue.End/speedFactor

		if globalEnd > scaledEnd {
			globalEnd = scaledEnd
		}
		if globalEnd-globalStart <= 0 {
			log.Printf("Warning: dropping caption cue [%.3f, %.3f] %q: clamped span is empty",
				cue.Start, cue.End, cue.Text)
			continue
		}

		out = append(out, types.CaptionCue{Start: globalStart, End: globalEnd, Text: cue.Text})
	}
	return out
}
