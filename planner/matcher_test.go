package planner

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"clipsmith/types"
)

type stubLibrary map[string][]types.Asset

func (l stubLibrary) Pool(category string) []types.Asset { return l[category] }

type stubGenerator struct {
	asset types.Asset
	err   error
	calls int
}

func (g *stubGenerator) GenerateAsset(ctx context.Context, promptHint string) (types.Asset, error) {
	g.calls++
	if g.err != nil {
		return types.Asset{}, g.err
	}
	return g.asset, nil
}

func clipAsset(path string, dur float64) types.Asset {
	return types.Asset{Path: path, Kind: types.AssetClip, Source: types.SourceLibrary, NativeDuration: dur}
}

func stillAsset(path string) types.Asset {
	return types.Asset{Path: path, Kind: types.AssetStill, Source: types.SourceLibrary}
}

func TestMatchDeterministicForSeed(t *testing.T) {
	lib := stubLibrary{
		"bitcoin": {clipAsset("btc1.mp4", 5), clipAsset("btc2.mp4", 6), stillAsset("btc.png")},
		"crypto":  {clipAsset("chain.mp4", 7)},
	}
	seg := types.Segment{Index: 0, Text: "bitcoin rallies again", AudioDuration: 4}

	first, _ := NewMatcher(lib, nil, MatcherConfig{Seed: 42}).Match(context.Background(), seg, nil)
	second, _ := NewMatcher(lib, nil, MatcherConfig{Seed: 42}).Match(context.Background(), seg, nil)

	if first.Path != second.Path {
		t.Fatalf("same seed picked %q then %q", first.Path, second.Path)
	}
}

func TestMatchUniformOverPooledMembers(t *testing.T) {
	// "bitcoin" unlocks both the bitcoin pool (3 assets) and the crypto pool
	// (1 asset). Selection is uniform over the 4 pooled members, so each
	// should land near a quarter of the draws.
	lib := stubLibrary{
		"bitcoin": {stillAsset("a.png"), stillAsset("b.png"), stillAsset("c.png")},
		"crypto":  {stillAsset("d.png")},
	}
	seg := types.Segment{Index: 0, Text: "bitcoin soars", AudioDuration: 4}

	counts := map[string]int{}
	const draws = 4000
	for seed := int64(0); seed < draws; seed++ {
		asset, degraded := NewMatcher(lib, nil, MatcherConfig{Seed: seed}).Match(context.Background(), seg, nil)
		if degraded {
			t.Fatalf("seed %d degraded unexpectedly", seed)
		}
		counts[asset.Path]++
	}

	for _, path := range []string{"a.png", "b.png", "c.png", "d.png"} {
		n := counts[path]
		if n < draws/4-draws/10 || n > draws/4+draws/10 {
			t.Fatalf("asset %s drawn %d times out of %d; want near %d", path, n, draws, draws/4)
		}
	}
}

func TestMatchFallsBackToGenerator(t *testing.T) {
	gen := &stubGenerator{asset: types.Asset{Path: "generated.png", Kind: types.AssetStill}}
	m := NewMatcher(stubLibrary{}, gen, MatcherConfig{Seed: 1, GenerateTimeout: time.Second})

	seg := types.Segment{Index: 2, Text: "nothing matches this", AudioDuration: 4}
	asset, degraded := m.Match(context.Background(), seg, nil)

	if gen.calls != 1 {
		t.Fatalf("generator called %d times; want 1", gen.calls)
	}
	if degraded {
		t.Fatalf("generated asset marked degraded")
	}
	if asset.Source != types.SourceGenerated {
		t.Fatalf("source = %q; want %q", asset.Source, types.SourceGenerated)
	}
}

func TestMatchPlaceholderWhenGeneratorFails(t *testing.T) {
	gen := &stubGenerator{err: errors.New("quota exceeded")}
	m := NewMatcher(stubLibrary{}, gen, MatcherConfig{Seed: 1, GenerateTimeout: time.Second})

	seg := types.Segment{Index: 3, Text: "no keywords here either", AudioDuration: 4}
	asset, degraded := m.Match(context.Background(), seg, nil)

	if !degraded {
		t.Fatalf("expected degraded segment")
	}
	if asset.Source != types.SourcePlaceholder || asset.Kind != types.AssetStill {
		t.Fatalf("placeholder = %+v; want neutral still", asset)
	}
}

func TestMatchPlaceholderWithoutGenerator(t *testing.T) {
	m := NewMatcher(stubLibrary{}, nil, MatcherConfig{Seed: 1})

	asset, degraded := m.Match(context.Background(), types.Segment{Text: "unmatched"}, nil)
	if !degraded || asset.Source != types.SourcePlaceholder {
		t.Fatalf("got %+v degraded=%v; want placeholder + degraded", asset, degraded)
	}
}

func TestMatchExcludesUsedClips(t *testing.T) {
	lib := stubLibrary{
		"bitcoin": {clipAsset("only.mp4", 5)},
	}
	m := NewMatcher(lib, nil, MatcherConfig{Seed: 7})
	seg := types.Segment{Index: 1, Text: "bitcoin dips", AudioDuration: 4}

	exclude := map[string]bool{"only.mp4": true}
	asset, degraded := m.Match(context.Background(), seg, exclude)

	if !degraded || asset.Source != types.SourcePlaceholder {
		t.Fatalf("used clip was not excluded: got %+v degraded=%v", asset, degraded)
	}
}

func TestMatchStillsRemainReusable(t *testing.T) {
	lib := stubLibrary{
		"bitcoin": {stillAsset("chart.png")},
	}
	m := NewMatcher(lib, nil, MatcherConfig{Seed: 7})
	seg := types.Segment{Index: 1, Text: "bitcoin dips", AudioDuration: 4}

	exclude := map[string]bool{"chart.png": true}
	asset, degraded := m.Match(context.Background(), seg, exclude)

	if degraded || asset.Path != "chart.png" {
		t.Fatalf("still should be reusable: got %+v degraded=%v", asset, degraded)
	}
}

func TestMatchCategoriesFirstMatchOrder(t *testing.T) {
	cases := []struct {
		text string
		want []string
	}{
		{"Bitcoin hits a new high", []string{"bitcoin", "crypto"}},
		{"Tesla and Nvidia rally", []string{"tesla", "electric-vehicles", "cars", "nvidia", "ai", "technology"}},
		{"quiet day in the garden", nil},
	}

	for _, c := range cases {
		t.Run(c.text, func(t *testing.T) {
			got := matchCategories(c.text)
			if fmt.Sprint(got) != fmt.Sprint(c.want) {
				t.Fatalf("matchCategories(%q) = %v; want %v", c.text, got, c.want)
			}
		})
	}
}
