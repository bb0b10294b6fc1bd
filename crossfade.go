package audiomix

import (
	"errors"
	"fmt"

	intcross "github.com/eohjun/remotion-studio-sub002/internal/crossfade"
)

// CrossfadeCurve names the gain taper used across a transition.
type CrossfadeCurve string

const (
	CurveLinear      CrossfadeCurve = "linear"
	CurveEqualPower  CrossfadeCurve = "equal-power"
	CurveExponential CrossfadeCurve = "exponential"
	CurveSCurve      CrossfadeCurve = "s-curve"
	CurveLogarithmic CrossfadeCurve = "logarithmic"
)

// CrossfadeGains pairs the two sides of one transition at one frame.
type CrossfadeGains struct {
	Outgoing float64
	Incoming float64
}

type CrossfadeOption func(*crossfadeConfig)

type crossfadeConfig struct {
	curve     CrossfadeCurve
	exponent  float64
	maxVolume float64
	overlap   float64
	fadeIn    int
	fadeOut   int
}

func defaultCrossfadeConfig() crossfadeConfig {
	return crossfadeConfig{
		curve:     CurveEqualPower,
		exponent:  2,
		maxVolume: 1,
		overlap:   1,
		fadeIn:    -1,
		fadeOut:   -1,
	}
}

func WithCurve(curve CrossfadeCurve) CrossfadeOption {
	return func(cfg *crossfadeConfig) {
		cfg.curve = curve
	}
}

// WithExponent sets the power of the exponential curve. Ignored by the
// other curves.
func WithExponent(e float64) CrossfadeOption {
	return func(cfg *crossfadeConfig) {
		cfg.exponent = e
	}
}

// WithMaxVolume scales both sides of the transition.
func WithMaxVolume(v float64) CrossfadeOption {
	return func(cfg *crossfadeConfig) {
		cfg.maxVolume = v
	}
}

// WithOverlap reshapes progress through the window: above 1 the two
// tracks share the air longer, below 1 the handoff tightens.
func WithOverlap(o float64) CrossfadeOption {
	return func(cfg *crossfadeConfig) {
		cfg.overlap = o
	}
}

// WithFadeInFrames gives a track sequence an entry ramp width distinct
// from its default window; zero keeps the default. Sequences only.
func WithFadeInFrames(frames int) CrossfadeOption {
	return func(cfg *crossfadeConfig) {
		cfg.fadeIn = frames
	}
}

// WithFadeOutFrames gives a track sequence an exit ramp width distinct
// from its default window; zero keeps the default. Sequences only.
func WithFadeOutFrames(frames int) CrossfadeOption {
	return func(cfg *crossfadeConfig) {
		cfg.fadeOut = frames
	}
}

func (cfg crossfadeConfig) window(startFrame, durationFrames int) (intcross.Window, error) {
	curve, err := intcross.CurveFor(string(cfg.curve))
	if err != nil {
		return intcross.Window{}, err
	}
	if cfg.maxVolume < 0 || cfg.maxVolume > 1 {
		return intcross.Window{}, errors.New("maxVolume must be within [0,1]")
	}
	if cfg.overlap <= 0 {
		return intcross.Window{}, errors.New("overlap must be positive")
	}
	if cfg.exponent <= 0 {
		return intcross.Window{}, errors.New("exponent must be positive")
	}
	return intcross.Window{
		StartFrame:     startFrame,
		DurationFrames: durationFrames,
		Curve:          curve,
		Exponent:       cfg.exponent,
		MaxVolume:      cfg.maxVolume,
		Overlap:        cfg.overlap,
	}, nil
}

// Crossfade evaluates one transition between two tracks.
type Crossfade struct {
	window intcross.Window
}

// NewCrossfade builds a transition starting at startFrame and lasting
// durationFrames. A non-positive duration is a hard cut at startFrame.
// Defaults: equal-power curve, full volume, overlap 1.
func NewCrossfade(startFrame, durationFrames int, opts ...CrossfadeOption) (Crossfade, error) {
	cfg := defaultCrossfadeConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.fadeIn != -1 || cfg.fadeOut != -1 {
		return Crossfade{}, errors.New("fadeInFrames and fadeOutFrames apply to track sequences")
	}
	w, err := cfg.window(startFrame, durationFrames)
	if err != nil {
		return Crossfade{}, err
	}
	return Crossfade{window: w}, nil
}

// Progress reports how far through the transition the frame is, in
// [0,1], after any overlap reshaping.
func (c Crossfade) Progress(frame int) float64 {
	return c.window.Progress(frame)
}

// GainsAt returns the outgoing and incoming gains at the frame.
func (c Crossfade) GainsAt(frame int) CrossfadeGains {
	g := c.window.GainsAt(frame)
	return CrossfadeGains{Outgoing: g.Outgoing, Incoming: g.Incoming}
}

// TrackSequence evaluates per-track gains for an ordered chain of
// spans, each track handing off to the next. A track is full volume in
// steady state, ramps in against its predecessor from its own start,
// and ramps out against its successor from the successor's start. The
// two ramp widths default to durationFrames and can be set
// independently with WithFadeInFrames and WithFadeOutFrames.
type TrackSequence struct {
	seq intcross.Sequence
}

// NewTrackSequence builds a crossfade chain over ordered track spans.
func NewTrackSequence(spans []FrameRange, durationFrames int, opts ...CrossfadeOption) (TrackSequence, error) {
	if len(spans) == 0 {
		return TrackSequence{}, errors.New("track sequence needs at least one span")
	}
	cfg := defaultCrossfadeConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.fadeIn != -1 && cfg.fadeIn < 0 {
		return TrackSequence{}, errors.New("fadeInFrames must not be negative")
	}
	if cfg.fadeOut != -1 && cfg.fadeOut < 0 {
		return TrackSequence{}, errors.New("fadeOutFrames must not be negative")
	}
	w, err := cfg.window(0, durationFrames)
	if err != nil {
		return TrackSequence{}, err
	}

	in := make([]intcross.Span, len(spans))
	for i, s := range spans {
		if s.End < s.Start {
			return TrackSequence{}, fmt.Errorf("track span %d ends at frame %d before it starts at %d", i, s.End, s.Start)
		}
		if i > 0 && s.Start < spans[i-1].Start {
			return TrackSequence{}, fmt.Errorf("track spans out of order: span %d starts at frame %d, span %d at %d", i-1, spans[i-1].Start, i, s.Start)
		}
		in[i] = intcross.Span{Start: s.Start, End: s.End}
	}

	seq := intcross.Sequence{Spans: in, Window: w}
	if cfg.fadeIn != -1 {
		seq.FadeInFrames = cfg.fadeIn
	}
	if cfg.fadeOut != -1 {
		seq.FadeOutFrames = cfg.fadeOut
	}
	return TrackSequence{seq: seq}, nil
}

// GainAt returns track i's gain at the frame. Zero outside the track's
// span or for an index outside the sequence.
func (s TrackSequence) GainAt(i, frame int) float64 {
	return s.seq.GainAt(i, frame)
}

// Len reports the number of tracks in the sequence.
func (s TrackSequence) Len() int { return s.seq.Len() }

// Spans returns a copy of the track spans.
func (s TrackSequence) Spans() []FrameRange {
	out := make([]FrameRange, len(s.seq.Spans))
	for i, sp := range s.seq.Spans {
		out[i] = FrameRange{Start: sp.Start, End: sp.End}
	}
	return out
}
