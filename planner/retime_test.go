package planner

import (
	"math"
	"testing"

	"clipsmith/types"
)

func TestRetimeSpeedCompensation(t *testing.T) {
	// A cue at [2.0, 4.0] in a segment starting at global 10.0s with a 1.2x
	// speed factor lands at [10+2/1.2, 10+4/1.2].
	cues := []types.CaptionCue{{Start: 2.0, End: 4.0, Text: "hello"}}

	got := Retime(cues, 10.0, 6.0, 1.2)
	if len(got) != 1 {
		t.Fatalf("got %d cues; want 1", len(got))
	}
	if math.Abs(got[0].Start-11.666667) > 1e-5 {
		t.Fatalf("start = %.6f; want 11.666667", got[0].Start)
	}
	if math.Abs(got[0].End-13.333333) > 1e-5 {
		t.Fatalf("end = %.6f; want 13.333333", got[0].End)
	}
}

func TestRetimeUnitSpeedIsOffset(t *testing.T) {
	cues := []types.CaptionCue{
		{Start: 0.0, End: 1.5, Text: "a"},
		{Start: 1.5, End: 3.0, Text: "b"},
	}

	got := Retime(cues, 7.0, 3.0, 1.0)
	if len(got) != 2 {
		t.Fatalf("got %d cues; want 2", len(got))
	}
	if got[0].Start != 7.0 || got[0].End != 8.5 || got[1].Start != 8.5 || got[1].End != 10.0 {
		t.Fatalf("unexpected cues: %+v", got)
	}
}

func TestRetimeMonotonic(t *testing.T) {
	cues := []types.CaptionCue{
		{Start: 0.0, End: 0.8, Text: "a"},
		{Start: 0.9, End: 1.7, Text: "b"},
		{Start: 2.0, End: 2.9, Text: "c"},
	}

	got := Retime(cues, 5.0, 3.0, 1.2)
	for i := 1; i < len(got); i++ {
		if got[i].Start < got[i-1].End {
			t.Fatalf("cue %d starts at %.4f before previous end %.4f", i, got[i].Start, got[i-1].End)
		}
	}
}

func TestRetimeClampsOverflow(t *testing.T) {
	// Cue runs past the original segment end; the scaled cue must be clamped
	// to the scaled segment end, not dropped.
	cues := []types.CaptionCue{{Start: 2.0, End: 5.0, Text: "late"}}

	got := Retime(cues, 0.0, 3.0, 1.0)
	if len(got) != 1 {
		t.Fatalf("got %d cues; want 1", len(got))
	}
	if got[0].End != 3.0 {
		t.Fatalf("end = %.4f; want clamped to 3.0", got[0].End)
	}
}

func TestRetimeDropsCollapsedCues(t *testing.T) {
	// A cue entirely past the segment end collapses to nothing when clamped
	// and is dropped without failing.
	cues := []types.CaptionCue{
		{Start: 0.5, End: 1.0, Text: "keep"},
		{Start: 3.5, End: 4.0, Text: "drop"},
	}

	got := Retime(cues, 0.0, 3.0, 1.0)
	if len(got) != 1 {
		t.Fatalf("got %d cues; want 1", len(got))
	}
	if got[0].Text != "keep" {
		t.Fatalf("kept cue = %q; want %q", got[0].Text, "keep")
	}
}
