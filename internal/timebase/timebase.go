// Package timebase converts between wall-clock durations and integer
// frame indices at a fixed frame rate. Conversions to frames round to
// the nearest frame, so sub-frame precision is deliberately lossy: a
// round trip through seconds lands within one frame of where it
// started. Callers validate fps at construction; a non-positive fps
// here returns 0 rather than propagating Inf or NaN.
package timebase

import "math"

// SecondsToFrames returns the frame index nearest to seconds at fps.
func SecondsToFrames(seconds float64, fps int) int {
	if fps <= 0 {
		return 0
	}
	return int(math.Round(seconds * float64(fps)))
}

// FramesToSeconds returns the exact time of a frame index in seconds.
func FramesToSeconds(frames, fps int) float64 {
	if fps <= 0 {
		return 0
	}
	return float64(frames) / float64(fps)
}

// MsToFrames returns the frame index nearest to ms milliseconds at fps.
func MsToFrames(ms float64, fps int) int {
	if fps <= 0 {
		return 0
	}
	return int(math.Round(ms * float64(fps) / 1000.0))
}

// FramesToMs returns the exact time of a frame index in milliseconds.
func FramesToMs(frames, fps int) float64 {
	if fps <= 0 {
		return 0
	}
	return float64(frames) * 1000.0 / float64(fps)
}
