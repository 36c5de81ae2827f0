package planner

import "fmt"

// InvalidAssetError reports a clip asset whose native duration makes it
// unplayable. Callers recover by substituting a still image.
type InvalidAssetError struct {
	Path           string
	NativeDuration float64
}

func (e *InvalidAssetError) Error() string {
	return fmt.Sprintf("invalid asset %s: non-positive native duration %.3f", e.Path, e.NativeDuration)
}

// MatchExhaustedError reports that no library asset matched a segment and the
// generation fallback failed too. It is recoverable: the matcher substitutes
// a placeholder and marks the segment degraded.
type MatchExhaustedError struct {
	SegmentIndex int
	Cause        error
}

func (e *MatchExhaustedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("no asset for segment %d: generation fallback failed: %v", e.SegmentIndex, e.Cause)
	}
	return fmt.Sprintf("no asset for segment %d: no keyword match and no generator configured", e.SegmentIndex)
}

func (e *MatchExhaustedError) Unwrap() error { return e.Cause }

// PlanInconsistencyError reports a violated timeline invariant. It is always
// fatal: a plan that breaks its own arithmetic must never reach the renderer.
type PlanInconsistencyError struct {
	Reason string
}

func (e *PlanInconsistencyError) Error() string {
	return "plan inconsistency: " + e.Reason
}

func inconsistencyf(format string, args ...interface{}) *PlanInconsistencyError {
	return &PlanInconsistencyError{Reason: fmt.Sprintf(format, args...)}
}
