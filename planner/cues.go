package planner

import (
	"strings"

	"clipsmith/types"
)

// SynthesizeCues builds evenly-spaced caption cues for a segment that arrived
// without any. Words are grouped into chunks of wordsPerCue and each chunk
// gets a share of the audio duration proportional to its word count. Cues are
// authored in the original (unscaled) timeline so Retime applies uniformly.
func SynthesizeCues(text string, audioDuration float64, wordsPerCue int) []types.CaptionCue {
	words := strings.Fields(text)
	if len(words) == 0 || audioDuration <= 0 {
		return nil
	}
	if wordsPerCue <= 0 {
		wordsPerCue = 4
	}

	timePerWord := audioDuration / float64(len(words))

	var cues []types.CaptionCue
	current := 0.0
	for i := 0; i < len(words); i += wordsPerCue {
		chunk := words[i:min(i+wordsPerCue, len(words))]
		end := current + timePerWord*float64(len(chunk))
		cues = append(cues, types.CaptionCue{
			Start: current,
			End:   end,
			Text:  strings.Join(chunk, " "),
		})
		current = end
	}
	return cues
}
