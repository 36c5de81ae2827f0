package planner

import (
	"math"

	"clipsmith/types"
)

// DefaultMinSpan is the smallest renderable span: one frame at 30 fps.
const DefaultMinSpan = 1.0 / 30.0

// FrameTolerance is the rounding tolerance on resulting playable spans.
const FrameTolerance = 1.0 / 30.0

// Reconcile decides how asset fills exactly target seconds of screen time.
//
// Stills are animated for the full target. Clips at least as long as the
// target are trimmed to [0, target] from the start; shorter clips are looped
// ceil(target/native) times and the concatenation trimmed to target. A clip
// with non-positive native duration yields an InvalidAssetError; callers
// substitute a still instead.
func Reconcile(asset types.Asset, target, minSpan float64) (types.DurationDecision, error) {
	if minSpan <= 0 {
		minSpan = DefaultMinSpan
	}
	if target < minSpan {
		return types.DurationDecision{}, inconsistencyf(
			"target duration %.4fs below minimum renderable span %.4fs", target, minSpan)
	}

	switch asset.Kind {
	case types.AssetStill:
		return types.DurationDecision{Mode: types.ModeAnimate, Target: target}, nil

	case types.AssetClip:
		if asset.NativeDuration <= 0 {
			return types.DurationDecision{}, &InvalidAssetError{Path: asset.Path, NativeDuration: asset.NativeDuration}
		}
		if asset.NativeDuration >= target {
			return types.DurationDecision{Mode: types.ModeTrim, Target: target}, nil
		}

		loops := int(math.Ceil(target / asset.NativeDuration))
		// Guard against float error leaving the concatenation short.
		for float64(loops)*asset.NativeDuration < target {
			loops++
		}
		return types.DurationDecision{Mode: types.ModeLoop, Target: target, LoopCount: loops}, nil

	default:
		return types.DurationDecision{}, inconsistencyf("unknown asset kind %q for %s", asset.Kind, asset.Path)
	}
}
