package audiomix

import (
	"errors"
	"fmt"

	intduck "github.com/eohjun/remotion-studio-sub002/internal/ducking"
	intenv "github.com/eohjun/remotion-studio-sub002/internal/envelope"
)

// DuckingPreset names a built-in ducking character.
type DuckingPreset string

const (
	DuckAggressive DuckingPreset = "aggressive"
	DuckNatural    DuckingPreset = "natural"
	DuckSubtle     DuckingPreset = "subtle"
	DuckPodcast    DuckingPreset = "podcast"
	DuckCinematic  DuckingPreset = "cinematic"
)

// DuckingPresets lists the built-in preset names.
func DuckingPresets() []string { return intduck.PresetNames() }

type DuckingOption func(*duckingConfig)

type duckingConfig struct {
	profile  intduck.Profile
	easing   EasingName
	mergeGap int
}

// WithDuckedVolume overrides the gain the background holds while fully
// ducked.
func WithDuckedVolume(v float64) DuckingOption {
	return func(cfg *duckingConfig) {
		cfg.profile.DuckedVolume = v
	}
}

func WithAttackFrames(frames int) DuckingOption {
	return func(cfg *duckingConfig) {
		cfg.profile.AttackFrames = frames
	}
}

func WithReleaseFrames(frames int) DuckingOption {
	return func(cfg *duckingConfig) {
		cfg.profile.ReleaseFrames = frames
	}
}

func WithHoldFrames(frames int) DuckingOption {
	return func(cfg *duckingConfig) {
		cfg.profile.HoldFrames = frames
	}
}

func WithLookaheadFrames(frames int) DuckingOption {
	return func(cfg *duckingConfig) {
		cfg.profile.LookaheadFrames = frames
	}
}

// WithDuckEasing overrides the preset's attack/release interpolation
// shape.
func WithDuckEasing(name EasingName) DuckingOption {
	return func(cfg *duckingConfig) {
		cfg.easing = name
	}
}

// WithMergeGap merges suppression ranges separated by at most the given
// gap before any gain is computed, so rapid-fire narration segments
// hold one continuous duck.
func WithMergeGap(frames int) DuckingOption {
	return func(cfg *duckingConfig) {
		cfg.mergeGap = frames
	}
}

// Ducking evaluates background gain against a fixed set of suppression
// ranges. Immutable once built; queries are pure.
type Ducking struct {
	profile intduck.Profile
	normal  float64
	ranges  []intduck.Range
}

// NewDucking builds a ducking evaluator from a preset, the background
// track's normal volume, and the frame spans that should suppress it.
// Options override individual preset fields. Every field is validated
// here; queries never fail.
func NewDucking(preset DuckingPreset, normalVolume float64, ranges []FrameRange, opts ...DuckingOption) (Ducking, error) {
	profile, err := intduck.ProfileFor(string(preset))
	if err != nil {
		return Ducking{}, err
	}
	cfg := duckingConfig{profile: profile}
	for _, opt := range opts {
		opt(&cfg)
	}

	if normalVolume < 0 || normalVolume > 1 {
		return Ducking{}, errors.New("normalVolume must be within [0,1]")
	}
	if cfg.profile.DuckedVolume < 0 || cfg.profile.DuckedVolume > 1 {
		return Ducking{}, errors.New("duckedVolume must be within [0,1]")
	}
	if cfg.profile.AttackFrames < 0 {
		return Ducking{}, errors.New("attackFrames must not be negative")
	}
	if cfg.profile.ReleaseFrames < 0 {
		return Ducking{}, errors.New("releaseFrames must not be negative")
	}
	if cfg.profile.HoldFrames < 0 {
		return Ducking{}, errors.New("holdFrames must not be negative")
	}
	if cfg.profile.LookaheadFrames < 0 {
		return Ducking{}, errors.New("lookaheadFrames must not be negative")
	}
	if cfg.mergeGap < 0 {
		return Ducking{}, errors.New("mergeGap must not be negative")
	}
	if cfg.easing != "" {
		fn, err := intenv.ByName(string(cfg.easing))
		if err != nil {
			return Ducking{}, err
		}
		cfg.profile.Easing = fn
	}

	spans := make([]intduck.Range, len(ranges))
	for i, r := range ranges {
		if r.End < r.Start {
			return Ducking{}, fmt.Errorf("ducking range %d ends at frame %d before it starts at %d", i, r.End, r.Start)
		}
		spans[i] = intduck.Range{Start: r.Start, End: r.End}
	}
	if cfg.mergeGap > 0 {
		spans = intduck.MergeRanges(spans, cfg.mergeGap)
	}

	return Ducking{profile: cfg.profile, normal: normalVolume, ranges: spans}, nil
}

// GainAt returns the background gain at the frame, in [0,1].
func (d Ducking) GainAt(frame int) float64 {
	return d.profile.GainAt(frame, d.normal, d.ranges)
}

// AmountAt returns the duck amount at the frame: 0 undisturbed, 1 fully
// ducked, eased in between. Ranges combine by maximum.
func (d Ducking) AmountAt(frame int) float64 {
	return d.profile.Amount(frame, d.ranges)
}

// NormalVolume reports the gain the background holds when undisturbed.
func (d Ducking) NormalVolume() float64 { return d.normal }

// DuckedVolume reports the gain the background holds when fully ducked.
func (d Ducking) DuckedVolume() float64 { return d.profile.DuckedVolume }

// Ranges returns a copy of the suppression spans the evaluator was
// built with, after any merging.
func (d Ducking) Ranges() []FrameRange {
	out := make([]FrameRange, len(d.ranges))
	for i, r := range d.ranges {
		out[i] = FrameRange{Start: r.Start, End: r.End}
	}
	return out
}
