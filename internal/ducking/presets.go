package ducking

import (
	"fmt"

	"github.com/eohjun/remotion-studio-sub002/internal/envelope"
)

// AggressiveProfile ducks hard and fast: deep reduction with short
// punchy ramps, for dense voiceover over energetic music.
func AggressiveProfile() Profile {
	return Profile{
		DuckedVolume:    0.1,
		AttackFrames:    3,
		ReleaseFrames:   6,
		HoldFrames:      2,
		LookaheadFrames: 2,
		Easing:          envelope.Cubic,
	}
}

// NaturalProfile is the general-purpose voiceover duck: moderate depth
// with smooth ramps.
func NaturalProfile() Profile {
	return Profile{
		DuckedVolume:    0.2,
		AttackFrames:    10,
		ReleaseFrames:   20,
		HoldFrames:      5,
		LookaheadFrames: 5,
		Easing:          envelope.Smooth,
	}
}

// SubtleProfile keeps the background present, trimming it just enough
// to clear space for the foreground.
func SubtleProfile() Profile {
	return Profile{
		DuckedVolume:    0.45,
		AttackFrames:    20,
		ReleaseFrames:   30,
		HoldFrames:      4,
		LookaheadFrames: 3,
		Easing:          envelope.Smooth,
	}
}

// PodcastProfile favors intelligibility: a firm duck with a long hold
// so rapid speech exchanges never pump the bed.
func PodcastProfile() Profile {
	return Profile{
		DuckedVolume:    0.25,
		AttackFrames:    8,
		ReleaseFrames:   15,
		HoldFrames:      10,
		LookaheadFrames: 6,
		Easing:          envelope.Linear,
	}
}

// CinematicProfile moves slowly in both directions for film-style
// transitions that are felt rather than heard.
func CinematicProfile() Profile {
	return Profile{
		DuckedVolume:    0.3,
		AttackFrames:    35,
		ReleaseFrames:   50,
		HoldFrames:      18,
		LookaheadFrames: 12,
		Easing:          envelope.Smoother,
	}
}

// ProfileFor returns the named preset profile.
func ProfileFor(name string) (Profile, error) {
	switch name {
	case "aggressive":
		return AggressiveProfile(), nil
	case "natural":
		return NaturalProfile(), nil
	case "subtle":
		return SubtleProfile(), nil
	case "podcast":
		return PodcastProfile(), nil
	case "cinematic":
		return CinematicProfile(), nil
	default:
		return Profile{}, fmt.Errorf("unknown ducking preset %q (expected aggressive|natural|subtle|podcast|cinematic)", name)
	}
}

// PresetNames lists the built-in presets in display order.
func PresetNames() []string {
	return []string{"aggressive", "natural", "subtle", "podcast", "cinematic"}
}
