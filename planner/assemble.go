package planner

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"time"

	"clipsmith/types"
)

// MusicLibrary exposes the pool of background-music candidates.
type MusicLibrary interface {
	Tracks() []types.MusicTrack
}

// Config is the planner's slice of the configuration surface. It is validated
// by the configuration loader before it reaches the assembler.
type Config struct {
	SpeedFactor       float64 // narration playback multiplier, e.g. 1.2
	OverlayPeriod     float64 // seconds per full overlay turn
	MusicFadeDuration float64 // seconds of fade-out ending at total duration
	MinSpan           float64 // minimum renderable span
	FrameRate         int
	Width             int
	Height            int
	TitleMaxLen       int
	WordsPerCue       int
	Seed              int64
}

func (c Config) withDefaults() Config {
	if c.SpeedFactor <= 0 {
		c.SpeedFactor = 1.0
	}
	if c.OverlayPeriod <= 0 {
		c.OverlayPeriod = DefaultOverlayPeriod
	}
	if c.MusicFadeDuration < 0 {
		c.MusicFadeDuration = 0
	}
	if c.MinSpan <= 0 {
		c.MinSpan = DefaultMinSpan
	}
	if c.FrameRate <= 0 {
		c.FrameRate = 30
	}
	if c.Width <= 0 {
		c.Width = 1080
	}
	if c.Height <= 0 {
		c.Height = 1920
	}
	if c.TitleMaxLen <= 0 {
		c.TitleMaxLen = 24
	}
	if c.WordsPerCue <= 0 {
		c.WordsPerCue = 4
	}
	return c
}

// Assembler merges matcher, reconciler, parameterizer and retimer output into
// one immutable CompositionPlan. It is pure apart from the matcher's
// generation fallback; all timing state is threaded through an explicit fold
// accumulator.
type Assembler struct {
	cfg     Config
	matcher *Matcher
	music   MusicLibrary // may be nil
	rng     *rand.Rand
}

// foldState is the accumulator threaded through per-segment steps.
type foldState struct {
	cumulativeTime float64
	overlayPhase   float64
}

// NewAssembler creates an assembler. music may be nil; the background plan
// then falls back to a synthesized tone.
func NewAssembler(cfg Config, matcher *Matcher, music MusicLibrary) *Assembler {
	cfg = cfg.withDefaults()
	return &Assembler{
		cfg:     cfg,
		matcher: matcher,
		music:   music,
		rng:     rand.New(rand.NewSource(cfg.Seed)),
	}
}

// Assemble produces the composition plan for one video. exclude seeds the
// matcher's used-asset set (nil is fine); clips picked during assembly are
// added to it so the same footage never appears twice in one video.
//
// Segment-level problems (unmatchable visuals, invalid clips) are recovered
// with placeholders and a degraded mark. Timeline arithmetic violations
// return a PlanInconsistencyError and abort the video.
func (a *Assembler) Assemble(ctx context.Context, videoID string, segments []types.Segment, exclude map[string]bool) (*types.CompositionPlan, error) {
	if len(segments) == 0 {
		return nil, inconsistencyf("no segments to plan")
	}
	if exclude == nil {
		exclude = make(map[string]bool)
	}

	state := foldState{}
	entries := make([]types.PlanEntry, 0, len(segments))

	for _, seg := range segments {
		if seg.AudioDuration <= 0 {
			return nil, inconsistencyf("segment %d has non-positive audio duration %.3f", seg.Index, seg.AudioDuration)
		}

		entry, next, err := a.planSegment(ctx, seg, state, exclude)
		if err != nil {
			return nil, err
		}
		if next.cumulativeTime <= state.cumulativeTime {
			return nil, inconsistencyf("segment %d did not advance the timeline (%.4f -> %.4f)",
				seg.Index, state.cumulativeTime, next.cumulativeTime)
		}

		entries = append(entries, entry)
		state = next
	}

	total := state.cumulativeTime
	background, err := a.planBackground(total)
	if err != nil {
		return nil, err
	}

	plan := &types.CompositionPlan{
		VideoID:       videoID,
		SpeedFactor:   a.cfg.SpeedFactor,
		OverlayPeriod: a.cfg.OverlayPeriod,
		FrameRate:     a.cfg.FrameRate,
		Width:         a.cfg.Width,
		Height:        a.cfg.Height,
		TotalDuration: total,
		Entries:       entries,
		Background:    background,
		CreatedAt:     time.Now().UTC(),
	}

	if err := validatePlan(plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// planSegment is one step of the fold: resolve the asset, decide duration,
// parameterize effects, retime cues, and advance the accumulator.
func (a *Assembler) planSegment(ctx context.Context, seg types.Segment, state foldState, exclude map[string]bool) (types.PlanEntry, foldState, error) {
	scaled := seg.AudioDuration / a.cfg.SpeedFactor

	asset, degraded := a.matcher.Match(ctx, seg, exclude)

	decision, err := Reconcile(asset, scaled, a.cfg.MinSpan)
	if err != nil {
		var invalid *InvalidAssetError
		if !errors.As(err, &invalid) {
			return types.PlanEntry{}, state, err
		}
		// Unplayable clip: fall back to the placeholder still.
		log.Printf("Warning: segment %d: %v; substituting placeholder", seg.Index, err)
		asset = PlaceholderAsset()
		degraded = true
		if decision, err = Reconcile(asset, scaled, a.cfg.MinSpan); err != nil {
			return types.PlanEntry{}, state, err
		}
	}
	if asset.Kind == types.AssetClip {
		exclude[asset.Path] = true
	}

	motion, phaseOut := Parameterize(asset.Kind, seg.Index, scaled, state.overlayPhase, a.cfg.OverlayPeriod)

	cues := seg.Cues
	if len(cues) == 0 {
		cues = SynthesizeCues(captionText(seg), seg.AudioDuration, a.cfg.WordsPerCue)
	}
	globalCues := Retime(cues, state.cumulativeTime, seg.AudioDuration, a.cfg.SpeedFactor)

	entry := types.PlanEntry{
		Index:           seg.Index,
		Asset:           asset,
		Degraded:        degraded,
		Start:           state.cumulativeTime,
		Duration:        scaled,
		AudioPath:       seg.AudioPath,
		Decision:        decision,
		Motion:          motion,
		OverlayPhaseIn:  state.overlayPhase,
		OverlayPhaseOut: phaseOut,
		Title:           truncateTitle(seg.Title, a.cfg.TitleMaxLen),
		TitleStart:      state.cumulativeTime,
		TitleEnd:        state.cumulativeTime + scaled,
		Cues:            globalCues,
	}

	next := foldState{
		cumulativeTime: state.cumulativeTime + scaled,
		overlayPhase:   phaseOut,
	}
	return entry, next, nil
}

// planBackground selects and reconciles the single background-music
// instruction: a seeded-random track from the pool, or a synthesized tone
// descriptor when the pool is empty.
func (a *Assembler) planBackground(total float64) (types.BackgroundAudioPlan, error) {
	fadeStart := total - a.cfg.MusicFadeDuration
	if fadeStart < 0 {
		fadeStart = 0
	}

	var tracks []types.MusicTrack
	if a.music != nil {
		tracks = a.music.Tracks()
	}
	if len(tracks) == 0 {
		return types.BackgroundAudioPlan{
			Synthesized:  true,
			Decision:     types.DurationDecision{Mode: types.ModeTrim, Target: total},
			FadeOutStart: fadeStart,
			FadeOutEnd:   total,
		}, nil
	}

	track := tracks[a.rng.Intn(len(tracks))]
	decision, err := Reconcile(types.Asset{
		Path:           track.Path,
		Kind:           types.AssetClip,
		Source:         types.SourceLibrary,
		NativeDuration: track.Duration,
	}, total, a.cfg.MinSpan)
	if err != nil {
		// An unreadable track is not worth failing the video over.
		log.Printf("Warning: background track %s unusable: %v; falling back to synthesized tone", track.Path, err)
		return types.BackgroundAudioPlan{
			Synthesized:  true,
			Decision:     types.DurationDecision{Mode: types.ModeTrim, Target: total},
			FadeOutStart: fadeStart,
			FadeOutEnd:   total,
		}, nil
	}

	return types.BackgroundAudioPlan{
		TrackPath:    track.Path,
		Decision:     decision,
		FadeOutStart: fadeStart,
		FadeOutEnd:   total,
	}, nil
}

// validatePlan enforces the timeline invariants a renderer depends on.
func validatePlan(plan *types.CompositionPlan) error {
	if plan.TotalDuration <= 0 {
		return inconsistencyf("total duration %.4f is not positive", plan.TotalDuration)
	}

	cursor := 0.0
	for _, e := range plan.Entries {
		if e.Duration <= 0 {
			return inconsistencyf("entry %d has non-positive duration %.4f", e.Index, e.Duration)
		}
		if !closeEnough(e.Start, cursor) {
			return inconsistencyf("entry %d starts at %.4f, expected %.4f", e.Index, e.Start, cursor)
		}
		for _, cue := range e.Cues {
			if cue.End > plan.TotalDuration+FrameTolerance {
				return inconsistencyf("entry %d cue ends at %.4f beyond total %.4f", e.Index, cue.End, plan.TotalDuration)
			}
		}
		cursor = e.Start + e.Duration
	}
	if !closeEnough(cursor, plan.TotalDuration) {
		return inconsistencyf("entries sum to %.4f, total is %.4f", cursor, plan.TotalDuration)
	}

	bg := plan.Background
	if bg.FadeOutEnd != plan.TotalDuration {
		return inconsistencyf("fade-out ends at %.4f, expected total %.4f", bg.FadeOutEnd, plan.TotalDuration)
	}
	if bg.FadeOutStart < 0 || bg.FadeOutStart > bg.FadeOutEnd {
		return inconsistencyf("fade-out window [%.4f, %.4f] is invalid", bg.FadeOutStart, bg.FadeOutEnd)
	}
	return nil
}

func captionText(seg types.Segment) string {
	if seg.Caption != "" {
		return seg.Caption
	}
	return seg.Text
}

func truncateTitle(title string, max int) string {
	runes := []rune(title)
	if len(runes) <= max {
		return title
	}
	return string(runes[:max]) + "..."
}

func closeEnough(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= FrameTolerance
}
