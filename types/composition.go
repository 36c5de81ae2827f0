package types

import "time"

// Asset kinds
const (
	AssetStill = "still"
	AssetClip  = "clip"
)

// Asset sources
const (
	SourceLibrary     = "library"
	SourceGenerated   = "generated"
	SourcePlaceholder = "placeholder"
)

// Duration decision modes
const (
	ModeAnimate = "animate"
	ModeTrim    = "trim"
	ModeLoop    = "loop"
)

// Asset is a visual (still image or clip) selected for a segment.
// Assets are immutable once selected; planner components only read them.
type Asset struct {
	Path           string  `json:"path"`
	Kind           string  `json:"kind"`
	Source         string  `json:"source"`
	NativeDuration float64 `json:"native_duration"` // seconds; 0 for stills
	Width          int     `json:"width,omitempty"`
	Height         int     `json:"height,omitempty"`
	Orientation    string  `json:"orientation,omitempty"`
}

// CaptionCue is one timed caption chunk. Offsets are segment-relative in the
// original (unscaled) audio timeline until the retimer converts them to
// global timestamps.
type CaptionCue struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Segment is one timed narration unit of the video, produced by the upstream
// script/audio stage and consumed read-only.
type Segment struct {
	Index         int          `json:"index"`
	Text          string       `json:"text"`
	Caption       string       `json:"caption,omitempty"`
	Title         string       `json:"title,omitempty"`
	AudioPath     string       `json:"audio_path"`
	AudioDuration float64      `json:"audio_duration"`
	Cues          []CaptionCue `json:"cues,omitempty"`
}

// DurationDecision says how an asset of arbitrary native duration fills a
// target span: animate a still, trim a long clip, or loop a short one and
// trim the concatenation.
type DurationDecision struct {
	Mode      string  `json:"mode"`
	Target    float64 `json:"target"`
	LoopCount int     `json:"loop_count,omitempty"`
}

// CropRect is a crop window expressed as fractions of the source frame.
type CropRect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// MotionCurve describes a pan+zoom movement for a still image: the renderer
// interpolates linearly from Start to End over the entry duration.
type MotionCurve struct {
	Preset string   `json:"preset"`
	Start  CropRect `json:"start"`
	End    CropRect `json:"end"`
}

// PlanEntry is the fully-timed render instruction for one segment.
type PlanEntry struct {
	Index           int              `json:"index"`
	Asset           Asset            `json:"asset"`
	Degraded        bool             `json:"degraded,omitempty"`
	Start           float64          `json:"start"`    // global timeline, scaled
	Duration        float64          `json:"duration"` // scaled
	AudioPath       string           `json:"audio_path"`
	Decision        DurationDecision `json:"decision"`
	Motion          *MotionCurve     `json:"motion,omitempty"` // nil for clips
	OverlayPhaseIn  float64          `json:"overlay_phase_in"` // degrees
	OverlayPhaseOut float64          `json:"overlay_phase_out"`
	Title           string           `json:"title,omitempty"`
	TitleStart      float64          `json:"title_start"`
	TitleEnd        float64          `json:"title_end"`
	Cues            []CaptionCue     `json:"cues,omitempty"` // global timeline
}

// BackgroundAudioPlan describes the single background-music instruction.
type BackgroundAudioPlan struct {
	TrackPath    string           `json:"track_path,omitempty"`
	Synthesized  bool             `json:"synthesized,omitempty"`
	StartOffset  float64          `json:"start_offset"`
	Decision     DurationDecision `json:"decision"`
	FadeOutStart float64          `json:"fade_out_start"`
	FadeOutEnd   float64          `json:"fade_out_end"`
}

// CompositionPlan is the renderer-ready description of the whole video.
// It is produced once per video and never mutated afterwards.
type CompositionPlan struct {
	VideoID       string              `json:"video_id"`
	SpeedFactor   float64             `json:"speed_factor"`
	OverlayPeriod float64             `json:"overlay_period"` // seconds per overlay turn
	FrameRate     int                 `json:"frame_rate"`
	Width         int                 `json:"width"`
	Height        int                 `json:"height"`
	TotalDuration float64             `json:"total_duration"`
	Entries       []PlanEntry         `json:"entries"`
	Background    BackgroundAudioPlan `json:"background"`
	CreatedAt     time.Time           `json:"created_at"`
}

// MusicTrack is one candidate background-music file.
type MusicTrack struct {
	Path     string  `json:"path"`
	Duration float64 `json:"duration"`
}
