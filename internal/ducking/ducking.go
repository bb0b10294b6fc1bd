// Package ducking computes automatic gain reduction for a background
// track while foreground spans (narration, dialogue) are active. Each
// suppression range contributes a four-phase amount: an easing-shaped
// attack that begins lookahead+attack frames before the range, a full
// duck across the range plus a hold tail, and an easing-shaped release.
// Ranges combine by maximum, so back-to-back spans hold the duck
// instead of bouncing between them. Every query is a pure function of
// the frame and the profile.
package ducking

import (
	"github.com/eohjun/remotion-studio-sub002/internal/envelope"
	"github.com/eohjun/remotion-studio-sub002/internal/segment"
)

// Range marks an inclusive frame span where a foreground signal is
// active, Start <= End.
type Range struct {
	Start int
	End   int
}

// Profile holds the resolved shaping parameters for one ducked track.
// All durations are frame counts and must be non-negative. Easing
// shapes both the attack and release ramps and must be monotonic over
// [0,1]; a nil easing falls back to linear.
type Profile struct {
	DuckedVolume    float64
	AttackFrames    int
	ReleaseFrames   int
	HoldFrames      int
	LookaheadFrames int
	Easing          envelope.Easing
}

// AmountAt returns the ducking amount in [0,1] that a single range
// contributes at frame: 0 while idle, 1 across the lookahead pre-roll,
// the range itself and the hold tail, ramped on the attack and release.
func (p Profile) AmountAt(frame int, r Range) float64 {
	duckStart := r.Start - p.LookaheadFrames - p.AttackFrames
	attackEnd := r.Start - p.LookaheadFrames
	holdEnd := r.End + p.HoldFrames
	releaseEnd := holdEnd + p.ReleaseFrames

	switch {
	case frame < duckStart || frame > releaseEnd:
		return 0
	case frame < attackEnd:
		// Reaching here forces AttackFrames > 0.
		return p.ease(float64(frame-duckStart) / float64(p.AttackFrames))
	case frame <= holdEnd:
		return 1
	default:
		// Reaching here forces ReleaseFrames > 0.
		return p.ease(1 - float64(frame-holdEnd)/float64(p.ReleaseFrames))
	}
}

// Amount returns the combined ducking amount at frame: the maximum of
// the per-range amounts. The slice may be unsorted; cost is linear in
// the number of ranges.
func (p Profile) Amount(frame int, ranges []Range) float64 {
	combined := 0.0
	for _, r := range ranges {
		if a := p.AmountAt(frame, r); a > combined {
			combined = a
			if combined >= 1 {
				break
			}
		}
	}
	return combined
}

// GainAt returns the final background gain at frame: normalVolume
// pulled toward the profile's ducked volume by the combined amount,
// clamped to [0,1].
func (p Profile) GainAt(frame int, normalVolume float64, ranges []Range) float64 {
	amount := p.Amount(frame, ranges)
	return clamp01(normalVolume + (p.DuckedVolume-normalVolume)*amount)
}

// MergeRanges collapses ranges whose gap is at most gapFrames so that
// near-adjacent foreground spans duck as one continuous span instead of
// fluttering. This is pre-processing: call it once at construction, not
// per frame.
func MergeRanges(ranges []Range, gapFrames int) []Range {
	if len(ranges) == 0 {
		return nil
	}
	spans := make([]segment.Range, len(ranges))
	for i, r := range ranges {
		spans[i] = segment.Range{Start: float64(r.Start), End: float64(r.End)}
	}
	merged := segment.Merge(spans, float64(gapFrames))
	out := make([]Range, len(merged))
	for i, s := range merged {
		out[i] = Range{Start: int(s.Start), End: int(s.End)}
	}
	return out
}

func (p Profile) ease(t float64) float64 {
	if p.Easing == nil {
		return envelope.Linear(t)
	}
	return clamp01(p.Easing(t))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
