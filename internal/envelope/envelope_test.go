package envelope

import (
	"math"
	"testing"
)

func TestFadeVolumeRampAndClamp(t *testing.T) {
	tests := []struct {
		name  string
		frame int
		want  float64
	}{
		{"well before window", -50, 0.2},
		{"at window start", 100, 0.2},
		{"quarter through", 125, 0.35},
		{"midpoint", 150, 0.5},
		{"at window end", 200, 0.8},
		{"after window", 999, 0.8},
	}
	for _, tt := range tests {
		got := FadeVolume(tt.frame, 100, 100, 0.2, 0.8)
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("%s (frame %d): got %v, want %v", tt.name, tt.frame, got, tt.want)
		}
	}
}

func TestFadeVolumeNonPositiveDurationSteps(t *testing.T) {
	for _, duration := range []int{0, -10} {
		for _, frame := range []int{-5, 100, 105} {
			if got := FadeVolume(frame, 100, duration, 0.2, 0.8); got != 0.8 {
				t.Errorf("duration %d frame %d: got %v, want 0.8", duration, frame, got)
			}
		}
	}
}

func TestFadeInAndFadeOut(t *testing.T) {
	if got := FadeIn(0, 0, 30, 0.8); got != 0 {
		t.Errorf("FadeIn at start: got %v, want 0", got)
	}
	if got := FadeIn(15, 0, 30, 0.8); math.Abs(got-0.4) > 1e-12 {
		t.Errorf("FadeIn halfway: got %v, want 0.4", got)
	}
	if got := FadeIn(30, 0, 30, 0.8); got != 0.8 {
		t.Errorf("FadeIn at end: got %v, want 0.8", got)
	}
	if got := FadeOut(270, 300, 30, 0.8); got != 0.8 {
		t.Errorf("FadeOut at ramp start: got %v, want 0.8", got)
	}
	if got := FadeOut(285, 300, 30, 0.8); math.Abs(got-0.4) > 1e-12 {
		t.Errorf("FadeOut halfway: got %v, want 0.4", got)
	}
	if got := FadeOut(300, 300, 30, 0.8); got != 0 {
		t.Errorf("FadeOut at end: got %v, want 0", got)
	}
}

func TestFadeInOutEndpointsAndPlateau(t *testing.T) {
	const (
		total = 300
		in    = 30
		out   = 30
		max   = 0.8
	)
	if got := FadeInOut(0, 0, total, in, out, max); got != 0 {
		t.Errorf("at frame 0: got %v, want 0", got)
	}
	if got := FadeInOut(150, 0, total, in, out, max); got != max {
		t.Errorf("at midpoint: got %v, want %v", got, max)
	}
	if got := FadeInOut(300, 0, total, in, out, max); got != 0 {
		t.Errorf("at last frame: got %v, want 0", got)
	}
	if got := FadeInOut(15, 0, total, in, out, max); math.Abs(got-0.4) > 1e-12 {
		t.Errorf("mid fade-in: got %v, want 0.4", got)
	}
	if got := FadeInOut(285, 0, total, in, out, max); math.Abs(got-0.4) > 1e-12 {
		t.Errorf("mid fade-out: got %v, want 0.4", got)
	}
}

// When the window is shorter than both ramps combined, the fade-out
// owns every frame from its start; the fade-in never double-scales.
func TestFadeInOutOverlapFavorsFadeOut(t *testing.T) {
	const (
		total = 20
		in    = 15
		out   = 15
		max   = 0.9
	)
	// Fade-out starts at frame 5, inside the fade-in window.
	outStart := total - out
	for frame := outStart; frame <= total; frame++ {
		want := FadeVolume(frame, outStart, out, max, 0)
		if got := FadeInOut(frame, 0, total, in, out, max); got != want {
			t.Fatalf("frame %d: got %v, want fade-out value %v", frame, got, want)
		}
	}
	// Before the fade-out start the fade-in still applies.
	if got := FadeInOut(3, 0, total, in, out, max); math.Abs(got-max*3.0/15.0) > 1e-12 {
		t.Errorf("frame 3: got %v, want fade-in value %v", got, max*3.0/15.0)
	}
}

func TestEasingsFixEndpointsAndStayMonotonic(t *testing.T) {
	easings := map[string]Easing{
		"linear":   Linear,
		"smooth":   Smooth,
		"smoother": Smoother,
		"cubic":    Cubic,
	}
	for name, ease := range easings {
		if got := ease(0); got != 0 {
			t.Errorf("%s(0): got %v, want 0", name, got)
		}
		if got := ease(1); got != 1 {
			t.Errorf("%s(1): got %v, want 1", name, got)
		}
		prev := 0.0
		for i := 0; i <= 100; i++ {
			v := ease(float64(i) / 100)
			if v < 0 || v > 1 {
				t.Fatalf("%s(%v) = %v outside [0,1]", name, float64(i)/100, v)
			}
			if v < prev {
				t.Fatalf("%s not monotonic at %v: %v < %v", name, float64(i)/100, v, prev)
			}
			prev = v
		}
		// Out-of-range inputs clamp.
		if got := ease(-0.5); got != 0 {
			t.Errorf("%s(-0.5): got %v, want 0", name, got)
		}
		if got := ease(1.5); got != 1 {
			t.Errorf("%s(1.5): got %v, want 1", name, got)
		}
	}
}

func TestSmoothValueAtMidpoint(t *testing.T) {
	if got := Smooth(0.5); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("Smooth(0.5): got %v, want 0.5", got)
	}
	if got := Smooth(0.25); math.Abs(got-0.15625) > 1e-12 {
		t.Errorf("Smooth(0.25): got %v, want 0.15625", got)
	}
}

func TestEasingByName(t *testing.T) {
	for _, name := range []string{"linear", "smooth", "smoother", "cubic"} {
		ease, err := ByName(name)
		if err != nil {
			t.Fatalf("ByName(%q): %v", name, err)
		}
		if ease == nil {
			t.Fatalf("ByName(%q) returned nil easing", name)
		}
	}
	if _, err := ByName("bouncy"); err == nil {
		t.Fatal("ByName with unknown name should fail")
	}
}
