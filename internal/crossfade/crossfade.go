// Package crossfade computes paired outgoing/incoming gain values for
// transitions between tracks under five interchangeable curve families.
// The equal-power family is the loudness-preserving default: its two
// gains always satisfy out^2 + in^2 = 1. Every query is a pure function
// of the frame and the window.
package crossfade

import (
	"fmt"
	"math"
)

// Curve selects the gain family for a transition.
type Curve string

const (
	Linear      Curve = "linear"
	EqualPower  Curve = "equal-power"
	Exponential Curve = "exponential"
	SCurve      Curve = "s-curve"
	Logarithmic Curve = "logarithmic"
)

// CurveFor maps a configuration name to its Curve.
func CurveFor(name string) (Curve, error) {
	switch Curve(name) {
	case Linear, EqualPower, Exponential, SCurve, Logarithmic:
		return Curve(name), nil
	default:
		return "", fmt.Errorf("unknown crossfade curve %q (expected linear|equal-power|exponential|s-curve|logarithmic)", name)
	}
}

// Gains holds the paired multipliers at one transition position.
type Gains struct {
	Outgoing float64
	Incoming float64
}

// Window describes one crossfade transition. A non-positive duration
// collapses to an instantaneous cut at StartFrame. Overlap reshapes
// progress as p^(1/overlap): above 1 widens the effective transition,
// below 1 narrows it. Exponent applies to the Exponential curve only.
type Window struct {
	StartFrame     int
	DurationFrames int
	Curve          Curve
	Exponent       float64
	MaxVolume      float64
	Overlap        float64
}

// DefaultWindow returns an equal-power window at unity volume with no
// overlap reshaping.
func DefaultWindow() Window {
	return Window{Curve: EqualPower, Exponent: 2, MaxVolume: 1, Overlap: 1}
}

// Progress returns the reshaped transition progress at frame in [0,1].
func (w Window) Progress(frame int) float64 {
	var p float64
	switch {
	case w.DurationFrames <= 0:
		if frame >= w.StartFrame {
			p = 1
		}
	default:
		p = clamp01(float64(frame-w.StartFrame) / float64(w.DurationFrames))
	}
	if w.Overlap > 0 && w.Overlap != 1 {
		p = math.Pow(p, 1/w.Overlap)
	}
	return p
}

// GainsAt returns the outgoing and incoming gains at frame, both scaled
// by MaxVolume.
func (w Window) GainsAt(frame int) Gains {
	g := w.Curve.gains(w.Exponent, w.Progress(frame))
	return Gains{Outgoing: g.Outgoing * w.MaxVolume, Incoming: g.Incoming * w.MaxVolume}
}

// gains evaluates the curve family at progress p in [0,1], unscaled.
func (c Curve) gains(exponent, p float64) Gains {
	switch c {
	case EqualPower:
		return Gains{Outgoing: math.Cos(p * math.Pi / 2), Incoming: math.Sin(p * math.Pi / 2)}
	case Exponential:
		e := exponent
		if e <= 0 {
			e = 2
		}
		return Gains{Outgoing: math.Pow(1-p, e), Incoming: math.Pow(p, e)}
	case SCurve:
		// Equal-power applied to smoothstep progress: gentler entry and
		// exit than the plain sine pair.
		s := p * p * (3 - 2*p)
		return Gains{Outgoing: math.Cos(s * math.Pi / 2), Incoming: math.Sin(s * math.Pi / 2)}
	case Logarithmic:
		// Complementary perceptual tapers: log10(1+9x) maps 0..1 onto
		// 0..1 while holding the outgoing side well above the linear
		// ramp past mid-transition.
		return Gains{Outgoing: math.Log10(1 + 9*(1-p)), Incoming: math.Log10(1 + 9*p)}
	default: // Linear
		return Gains{Outgoing: 1 - p, Incoming: p}
	}
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
