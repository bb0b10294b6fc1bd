// Package audiomix computes per-frame audio automation for
// frame-indexed video compositions: fades, background ducking under
// narration, multi-track crossfades, and beat-synchronized timing.
// Every query is a pure function of a frame index and immutable
// configuration, so gains can be evaluated out of order, in parallel,
// and repeatedly with bit-identical results.
package audiomix

import (
	"errors"

	intduck "github.com/eohjun/remotion-studio-sub002/internal/ducking"
	intenv "github.com/eohjun/remotion-studio-sub002/internal/envelope"
	intseg "github.com/eohjun/remotion-studio-sub002/internal/segment"
	inttime "github.com/eohjun/remotion-studio-sub002/internal/timebase"
)

// Engine binds a frame rate. All second- and millisecond-based
// conversions go through it so fps is validated exactly once.
type Engine struct {
	fps int
}

// New returns an Engine for the given frame rate.
func New(fps int) (Engine, error) {
	if fps <= 0 {
		return Engine{}, errors.New("fps must be positive")
	}
	return Engine{fps: fps}, nil
}

// FPS reports the bound frame rate.
func (e Engine) FPS() int { return e.fps }

// SecondsToFrames converts seconds to the nearest frame index.
func (e Engine) SecondsToFrames(sec float64) int {
	return inttime.SecondsToFrames(sec, e.fps)
}

// FramesToSeconds converts a frame index to seconds.
func (e Engine) FramesToSeconds(frames int) float64 {
	return inttime.FramesToSeconds(frames, e.fps)
}

// MsToFrames converts milliseconds to the nearest frame index.
func (e Engine) MsToFrames(ms float64) int {
	return inttime.MsToFrames(ms, e.fps)
}

// FramesToMs converts a frame index to milliseconds.
func (e Engine) FramesToMs(frames int) float64 {
	return inttime.FramesToMs(frames, e.fps)
}

// FadeVolume interpolates linearly from one volume to another across
// [startFrame, startFrame+durationFrames], clamped to the endpoints
// outside the window. A non-positive duration returns to immediately.
func FadeVolume(frame, startFrame, durationFrames int, from, to float64) float64 {
	return intenv.FadeVolume(frame, startFrame, durationFrames, from, to)
}

// FadeIn ramps from silence to maxVolume over inFrames starting at
// startFrame.
func FadeIn(frame, startFrame, inFrames int, maxVolume float64) float64 {
	return intenv.FadeIn(frame, startFrame, inFrames, maxVolume)
}

// FadeOut ramps from maxVolume to silence over the outFrames leading up
// to endFrame.
func FadeOut(frame, endFrame, outFrames int, maxVolume float64) float64 {
	return intenv.FadeOut(frame, endFrame, outFrames, maxVolume)
}

// FadeInOut shapes a whole clip: rise over inFrames from startFrame,
// hold at maxVolume, fall over the final outFrames of the
// totalFrames-long window. When the two ramps would overlap the
// fade-out wins from its start onward.
func FadeInOut(frame, startFrame, totalFrames, inFrames, outFrames int, maxVolume float64) float64 {
	return intenv.FadeInOut(frame, startFrame, totalFrames, inFrames, outFrames, maxVolume)
}

// EasingName selects the interpolation shape used by ducking attack and
// release ramps.
type EasingName string

const (
	EasingLinear   EasingName = "linear"
	EasingSmooth   EasingName = "smooth"
	EasingSmoother EasingName = "smoother"
	EasingCubic    EasingName = "cubic"
)

// TimeRange is a span in seconds. Endpoints are fractional so segment
// boundaries between frames survive merging.
type TimeRange struct {
	Start float64
	End   float64
}

// FrameRange is a span in whole frames, inclusive of both endpoints.
type FrameRange struct {
	Start int
	End   int
}

// MergeTimeRanges sorts spans by start and greedily merges any pair
// separated by at most gapSeconds into one, returning a minimal
// disjoint list. Used to de-flutter narration segments before they
// drive ducking.
func MergeTimeRanges(ranges []TimeRange, gapSeconds float64) []TimeRange {
	in := make([]intseg.Range, len(ranges))
	for i, r := range ranges {
		in[i] = intseg.Range{Start: r.Start, End: r.End}
	}
	merged := intseg.Merge(in, gapSeconds)
	if merged == nil {
		return nil
	}
	out := make([]TimeRange, len(merged))
	for i, r := range merged {
		out[i] = TimeRange{Start: r.Start, End: r.End}
	}
	return out
}

// MergeFrameRanges is MergeTimeRanges on whole-frame spans.
func MergeFrameRanges(ranges []FrameRange, gapFrames int) []FrameRange {
	in := make([]intduck.Range, len(ranges))
	for i, r := range ranges {
		in[i] = intduck.Range{Start: r.Start, End: r.End}
	}
	merged := intduck.MergeRanges(in, gapFrames)
	if merged == nil {
		return nil
	}
	out := make([]FrameRange, len(merged))
	for i, r := range merged {
		out[i] = FrameRange{Start: r.Start, End: r.End}
	}
	return out
}

// FrameRangesFromSeconds converts second-level spans to frame spans at
// the engine's frame rate.
func (e Engine) FrameRangesFromSeconds(ranges []TimeRange) []FrameRange {
	if len(ranges) == 0 {
		return nil
	}
	out := make([]FrameRange, len(ranges))
	for i, r := range ranges {
		out[i] = FrameRange{
			Start: inttime.SecondsToFrames(r.Start, e.fps),
			End:   inttime.SecondsToFrames(r.End, e.fps),
		}
	}
	return out
}
