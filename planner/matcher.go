package planner

import (
	"context"
	"log"
	"math/rand"
	"time"

	"clipsmith/types"
)

// Library exposes read-only category pools of pre-supplied assets.
type Library interface {
	Pool(category string) []types.Asset
}

// AssetGenerator is the generation-fallback collaborator. It is fallible and
// potentially slow; the matcher applies a timeout and never propagates its
// failures.
type AssetGenerator interface {
	GenerateAsset(ctx context.Context, promptHint string) (types.Asset, error)
}

// MatcherConfig holds the tunables for asset matching.
type MatcherConfig struct {
	Seed            int64         // seeds the selection RNG; same seed + same library = same picks
	GenerateTimeout time.Duration // per-call timeout for the generation fallback
}

const defaultGenerateTimeout = 60 * time.Second

// Matcher maps segment text to a visual asset. Library selection is pure and
// deterministic for a fixed seed; only the generation fallback does I/O.
type Matcher struct {
	library   Library
	generator AssetGenerator // may be nil
	rng       *rand.Rand
	timeout   time.Duration
}

// NewMatcher creates a matcher over the given library. generator may be nil,
// in which case unmatched segments go straight to the placeholder.
func NewMatcher(library Library, generator AssetGenerator, cfg MatcherConfig) *Matcher {
	timeout := cfg.GenerateTimeout
	if timeout <= 0 {
		timeout = defaultGenerateTimeout
	}
	return &Matcher{
		library:   library,
		generator: generator,
		rng:       rand.New(rand.NewSource(cfg.Seed)),
		timeout:   timeout,
	}
}

// Match resolves the visual asset for one segment. exclude lists asset paths
// already used in this video; clips in it are skipped so one video never
// repeats footage, while stills remain reusable. The second return value is
// true when the segment is degraded (placeholder substituted).
//
// Match never fails: if no keyword matches, all pools are empty, or the
// generation fallback errors out, a neutral placeholder still is returned.
func (m *Matcher) Match(ctx context.Context, seg types.Segment, exclude map[string]bool) (types.Asset, bool) {
	if asset, ok := m.selectFromLibrary(seg, exclude); ok {
		return asset, false
	}

	if m.generator == nil {
		log.Printf("Warning: %v; substituting placeholder", &MatchExhaustedError{SegmentIndex: seg.Index})
		return PlaceholderAsset(), true
	}

	gctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	asset, err := m.generator.GenerateAsset(gctx, promptHint(seg))
	if err != nil {
		log.Printf("Warning: %v; substituting placeholder", &MatchExhaustedError{SegmentIndex: seg.Index, Cause: err})
		return PlaceholderAsset(), true
	}

	asset.Source = types.SourceGenerated
	if asset.Kind == "" {
		asset.Kind = types.AssetStill
	}
	return asset, false
}

// selectFromLibrary picks uniformly from the union of all matched category
// pools, so larger pools are proportionally more likely.
func (m *Matcher) selectFromLibrary(seg types.Segment, exclude map[string]bool) (types.Asset, bool) {
	categories := matchCategories(seg.Title + " " + seg.Text)
	if len(categories) == 0 {
		return types.Asset{}, false
	}

	var pool []types.Asset
	for _, c := range categories {
		for _, a := range m.library.Pool(c) {
			if a.Kind == types.AssetClip && exclude[a.Path] {
				continue
			}
			pool = append(pool, a)
		}
	}
	if len(pool) == 0 {
		return types.Asset{}, false
	}

	return pool[m.rng.Intn(len(pool))], true
}

// PlaceholderAsset is the neutral still substituted when every other option
// is exhausted. The pipeline must never abort because one segment has no
// visual.
func PlaceholderAsset() types.Asset {
	return types.Asset{
		Path:   "assets/placeholder.png",
		Kind:   types.AssetStill,
		Source: types.SourcePlaceholder,
	}
}

func promptHint(seg types.Segment) string {
	if seg.Title != "" {
		return seg.Title
	}
	return seg.Text
}
