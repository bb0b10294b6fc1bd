// Package beat derives musical timing from a frame counter. A Clock
// maps a tempo onto a frame grid and answers per-frame queries: which
// beat a frame falls in, how far through that beat it is, and whether
// it is close enough to a beat boundary to count as "on" it. Pulse
// shaping for beat-synchronized animation is a stateless envelope over
// the same grid.
package beat

import (
	"errors"
	"math"
)

// Clock is an immutable tempo grid. The zero value is not usable;
// construct with New.
type Clock struct {
	fps             int
	framesPerBeat   float64
	startFrame      int
	toleranceFrames int
}

// New builds a Clock for the given frame rate and tempo. subdivision
// multiplies the grid density: 2 places a tick on every eighth note of
// a bpm quarter-note pulse. startFrame anchors beat zero and
// toleranceFrames widens IsOnBeat around each tick.
func New(fps int, bpm float64, subdivision, startFrame, toleranceFrames int) (Clock, error) {
	if fps <= 0 {
		return Clock{}, errors.New("fps must be positive")
	}
	if bpm*float64(subdivision) <= 0 {
		return Clock{}, errors.New("bpm times subdivision must be positive")
	}
	if toleranceFrames < 0 {
		return Clock{}, errors.New("toleranceFrames must not be negative")
	}
	return Clock{
		fps:             fps,
		framesPerBeat:   60 / (bpm * float64(subdivision)) * float64(fps),
		startFrame:      startFrame,
		toleranceFrames: toleranceFrames,
	}, nil
}

// FramesPerBeat reports the grid interval in frames. Fractional for
// tempos that do not divide the frame rate evenly.
func (c Clock) FramesPerBeat() float64 { return c.framesPerBeat }

// StartFrame reports the frame beat zero is anchored to.
func (c Clock) StartFrame() int { return c.startFrame }

// Number reports the beat index the frame falls in, or -1 before the
// clock starts.
func (c Clock) Number(frame int) int {
	if frame < c.startFrame {
		return -1
	}
	return int(math.Floor(float64(frame-c.startFrame) / c.framesPerBeat))
}

// Progress reports how far the frame is through its beat, in [0,1).
// Frames before the clock starts report 0.
func (c Clock) Progress(frame int) float64 {
	if frame < c.startFrame {
		return 0
	}
	return math.Mod(float64(frame-c.startFrame), c.framesPerBeat) / c.framesPerBeat
}

// OnBeat reports whether the frame lies within the tolerance window of
// a beat boundary, on either side.
func (c Clock) OnBeat(frame int) bool {
	if frame < c.startFrame {
		return false
	}
	rem := math.Mod(float64(frame-c.startFrame), c.framesPerBeat)
	return math.Min(rem, c.framesPerBeat-rem) <= float64(c.toleranceFrames)
}

// Envelope is a stateless per-beat decay: peak exactly on each beat,
// falling linearly to rest over decayFrames, then flat until the next
// beat retriggers it. Frames before the clock starts report rest.
// Non-positive decayFrames snaps between peak on the beat and rest off
// it.
func (c Clock) Envelope(frame int, peak, rest, decayFrames float64) float64 {
	if frame < c.startFrame {
		return rest
	}
	since := math.Mod(float64(frame-c.startFrame), c.framesPerBeat)
	if decayFrames <= 0 {
		if since == 0 {
			return peak
		}
		return rest
	}
	t := since / decayFrames
	if t >= 1 {
		return rest
	}
	return peak + (rest-peak)*t
}
