package audiomix

import (
	"errors"

	intbeat "github.com/eohjun/remotion-studio-sub002/internal/beat"
)

// BeatInfo describes where a frame sits on the beat grid.
type BeatInfo struct {
	Number   int     // beat index, -1 before the clock starts
	Progress float64 // position within the beat, [0,1)
	OnBeat   bool    // within the tolerance window of a boundary
}

// Beat is one enumerated tick: its index and the frame it lands on.
type Beat struct {
	Index int
	Frame int
}

type BeatOption func(*beatConfig)

type beatConfig struct {
	subdivision     int
	startFrame      int
	toleranceFrames int
	pulsePeak       float64
	pulseRest       float64
	scalePeak       float64
	scaleRest       float64
	opacityPeak     float64
	opacityRest     float64
	decayFrames     float64
}

func defaultBeatConfig() beatConfig {
	return beatConfig{
		subdivision: 1,
		pulsePeak:   1,
		pulseRest:   0,
		scalePeak:   1.15,
		scaleRest:   1.0,
		opacityPeak: 1.0,
		opacityRest: 0.7,
		decayFrames: -1,
	}
}

// WithSubdivision multiplies the grid density: 2 ticks eighth notes
// against a quarter-note bpm.
func WithSubdivision(n int) BeatOption {
	return func(cfg *beatConfig) {
		cfg.subdivision = n
	}
}

// WithStartFrame anchors beat zero at the given frame.
func WithStartFrame(frame int) BeatOption {
	return func(cfg *beatConfig) {
		cfg.startFrame = frame
	}
}

// WithToleranceFrames widens the on-beat window around each boundary.
func WithToleranceFrames(frames int) BeatOption {
	return func(cfg *beatConfig) {
		cfg.toleranceFrames = frames
	}
}

// WithPulseRange sets the peak and resting values of PulseAt.
func WithPulseRange(peak, rest float64) BeatOption {
	return func(cfg *beatConfig) {
		cfg.pulsePeak, cfg.pulseRest = peak, rest
	}
}

// WithScaleRange sets the peak and resting values of ScaleAt.
func WithScaleRange(peak, rest float64) BeatOption {
	return func(cfg *beatConfig) {
		cfg.scalePeak, cfg.scaleRest = peak, rest
	}
}

// WithOpacityRange sets the peak and resting values of OpacityAt.
func WithOpacityRange(peak, rest float64) BeatOption {
	return func(cfg *beatConfig) {
		cfg.opacityPeak, cfg.opacityRest = peak, rest
	}
}

// WithDecayFrames sets how many frames the beat envelopes take to relax
// from peak to rest. The default is half a beat. Zero snaps between
// peak on the boundary frame and rest everywhere else.
func WithDecayFrames(frames float64) BeatOption {
	return func(cfg *beatConfig) {
		cfg.decayFrames = frames
	}
}

// BeatClock answers beat-grid queries at the engine's frame rate and
// drives beat-synchronized animation values. Immutable once built.
type BeatClock struct {
	clock intbeat.Clock
	cfg   beatConfig
	decay float64
}

// NewBeatClock builds a clock for the given tempo. Defaults:
// quarter-note grid, beat zero at frame 0, exact-frame tolerance,
// pulse 1 to 0, scale 1.15 to 1.0, opacity 1.0 to 0.7, envelopes
// decaying over half a beat.
func (e Engine) NewBeatClock(bpm float64, opts ...BeatOption) (BeatClock, error) {
	cfg := defaultBeatConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.decayFrames != -1 && cfg.decayFrames < 0 {
		return BeatClock{}, errors.New("decayFrames must not be negative")
	}
	clock, err := intbeat.New(e.fps, bpm, cfg.subdivision, cfg.startFrame, cfg.toleranceFrames)
	if err != nil {
		return BeatClock{}, err
	}
	decay := cfg.decayFrames
	if decay == -1 {
		decay = clock.FramesPerBeat() / 2
	}
	return BeatClock{clock: clock, cfg: cfg, decay: decay}, nil
}

// FramesPerBeat reports the grid interval in frames.
func (b BeatClock) FramesPerBeat() float64 { return b.clock.FramesPerBeat() }

// InfoAt reports the beat number, intra-beat progress, and on-beat flag
// for the frame.
func (b BeatClock) InfoAt(frame int) BeatInfo {
	return BeatInfo{
		Number:   b.clock.Number(frame),
		Progress: b.clock.Progress(frame),
		OnBeat:   b.clock.OnBeat(frame),
	}
}

// PulseAt is a per-beat decay envelope for driving intensity: peak on
// each beat, relaxing to rest over the decay window.
func (b BeatClock) PulseAt(frame int) float64 {
	return b.clock.Envelope(frame, b.cfg.pulsePeak, b.cfg.pulseRest, b.decay)
}

// ScaleAt is the pulse envelope mapped to a scale factor, for size
// bounces synchronized to the beat.
func (b BeatClock) ScaleAt(frame int) float64 {
	return b.clock.Envelope(frame, b.cfg.scalePeak, b.cfg.scaleRest, b.decay)
}

// OpacityAt is the pulse envelope mapped to an opacity, for flash
// effects synchronized to the beat.
func (b BeatClock) OpacityAt(frame int) float64 {
	return b.clock.Envelope(frame, b.cfg.opacityPeak, b.cfg.opacityRest, b.decay)
}

// BeatIterator walks beat ticks lazily within a bounded window.
type BeatIterator struct {
	it *intbeat.Iterator
}

// Beats returns an iterator over the beats whose frames fall in
// [fromFrame, toFrame]. Beats are produced on demand; nothing is
// materialized up front.
func (b BeatClock) Beats(fromFrame, toFrame int) *BeatIterator {
	return &BeatIterator{it: b.clock.Beats(fromFrame, toFrame)}
}

// Next returns the next beat inside the window; ok is false once the
// window is exhausted.
func (it *BeatIterator) Next() (Beat, bool) {
	b, ok := it.it.Next()
	if !ok {
		return Beat{}, false
	}
	return Beat{Index: b.Index, Frame: b.Frame}, true
}

// Seek repositions the iterator at the first beat on or after frame,
// in either direction.
func (it *BeatIterator) Seek(frame int) { it.it.Seek(frame) }

// Collect drains the iterator into a slice.
func (it *BeatIterator) Collect() []Beat {
	var beats []Beat
	for {
		b, ok := it.Next()
		if !ok {
			return beats
		}
		beats = append(beats, b)
	}
}
