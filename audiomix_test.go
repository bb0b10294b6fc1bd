package audiomix

import (
	"math"
	"math/rand"
	"testing"
)

func TestEngineValidatesFPS(t *testing.T) {
	if _, err := New(0); err == nil {
		t.Fatal("New(0) should fail")
	}
	if _, err := New(-24); err == nil {
		t.Fatal("New(-24) should fail")
	}
	e, err := New(30)
	if err != nil {
		t.Fatalf("New(30): %v", err)
	}
	if e.FPS() != 30 {
		t.Fatalf("FPS = %d, want 30", e.FPS())
	}
}

func TestTimeConversions(t *testing.T) {
	e, _ := New(30)
	if got := e.SecondsToFrames(5.2); got != 156 {
		t.Errorf("SecondsToFrames(5.2) = %d, want 156", got)
	}
	if got := e.FramesToSeconds(156); math.Abs(got-5.2) > 1e-12 {
		t.Errorf("FramesToSeconds(156) = %v, want 5.2", got)
	}
	if got := e.MsToFrames(100); got != 3 {
		t.Errorf("MsToFrames(100) = %d, want 3", got)
	}
	if got := e.FramesToMs(3); math.Abs(got-100) > 1e-12 {
		t.Errorf("FramesToMs(3) = %v, want 100", got)
	}
	// A frame-seconds-frame trip never drifts more than one frame.
	for _, fps := range []int{24, 25, 30, 60} {
		eng, _ := New(fps)
		for frame := 0; frame < 200; frame++ {
			back := eng.SecondsToFrames(eng.FramesToSeconds(frame))
			if diff := back - frame; diff < -1 || diff > 1 {
				t.Fatalf("fps %d frame %d: round trip landed on %d", fps, frame, back)
			}
		}
	}
}

func TestFadeInOutShape(t *testing.T) {
	// 300-frame clip, 30-frame ramps, peak 0.8.
	if got := FadeInOut(0, 0, 300, 30, 30, 0.8); got != 0 {
		t.Errorf("first frame = %v, want 0", got)
	}
	if got := FadeInOut(150, 0, 300, 30, 30, 0.8); got != 0.8 {
		t.Errorf("midpoint = %v, want 0.8", got)
	}
	if got := FadeInOut(300, 0, 300, 30, 30, 0.8); got != 0 {
		t.Errorf("last frame = %v, want 0", got)
	}
	if got := FadeInOut(15, 0, 300, 30, 30, 0.8); math.Abs(got-0.4) > 1e-12 {
		t.Errorf("mid fade-in = %v, want 0.4", got)
	}
	if got, want := FadeIn(10, 0, 20, 1.0), 0.5; math.Abs(got-want) > 1e-12 {
		t.Errorf("FadeIn = %v, want %v", got, want)
	}
	if got, want := FadeOut(90, 100, 20, 1.0), 0.5; math.Abs(got-want) > 1e-12 {
		t.Errorf("FadeOut = %v, want %v", got, want)
	}
	if got := FadeVolume(50, 0, 0, 0.2, 0.9); got != 0.9 {
		t.Errorf("zero-duration fade = %v, want 0.9", got)
	}
}

// The reference ducking scenario: 30 fps, narration at [30,150], music
// normally at 0.4, natural preset. The duck window spans frames 15
// (attack begins) through 175 (release ends).
func TestNaturalDuckingScenario(t *testing.T) {
	duck, err := NewDucking(DuckNatural, 0.4, []FrameRange{{Start: 30, End: 150}})
	if err != nil {
		t.Fatalf("NewDucking: %v", err)
	}
	if got := duck.GainAt(10); got != 0.4 {
		t.Errorf("gain(10) = %v, want 0.4", got)
	}
	if got := duck.GainAt(15); got != 0.4 {
		t.Errorf("gain(15) = %v, want 0.4 (attack starts here)", got)
	}
	g20 := duck.GainAt(20)
	if g20 <= 0.2 || g20 >= 0.4 {
		t.Errorf("gain(20) = %v, want inside (0.2, 0.4)", g20)
	}
	g24 := duck.GainAt(24)
	if math.Abs(g20-0.4) >= math.Abs(g24-0.4) {
		t.Errorf("gain(20)=%v should sit closer to 0.4 than gain(24)=%v", g20, g24)
	}
	if got := duck.GainAt(25); got != 0.2 {
		t.Errorf("gain(25) = %v, want 0.2 (attack complete)", got)
	}
	if got := duck.GainAt(100); got != 0.2 {
		t.Errorf("gain(100) = %v, want 0.2", got)
	}
	if got := duck.GainAt(155); got != 0.2 {
		t.Errorf("gain(155) = %v, want 0.2 (hold tail)", got)
	}
	if got := duck.GainAt(200); got != 0.4 {
		t.Errorf("gain(200) = %v, want 0.4 (released)", got)
	}
}

func TestDuckingBuilderValidates(t *testing.T) {
	spans := []FrameRange{{Start: 0, End: 10}}
	cases := []struct {
		name   string
		preset DuckingPreset
		normal float64
		opts   []DuckingOption
	}{
		{"unknown preset", "gentle", 0.4, nil},
		{"normal volume above 1", DuckNatural, 1.5, nil},
		{"normal volume below 0", DuckNatural, -0.1, nil},
		{"ducked volume above 1", DuckNatural, 0.4, []DuckingOption{WithDuckedVolume(1.3)}},
		{"negative attack", DuckNatural, 0.4, []DuckingOption{WithAttackFrames(-1)}},
		{"negative release", DuckNatural, 0.4, []DuckingOption{WithReleaseFrames(-2)}},
		{"negative hold", DuckNatural, 0.4, []DuckingOption{WithHoldFrames(-1)}},
		{"negative lookahead", DuckNatural, 0.4, []DuckingOption{WithLookaheadFrames(-3)}},
		{"unknown easing", DuckNatural, 0.4, []DuckingOption{WithDuckEasing("bouncy")}},
		{"negative merge gap", DuckNatural, 0.4, []DuckingOption{WithMergeGap(-1)}},
	}
	for _, c := range cases {
		if _, err := NewDucking(c.preset, c.normal, spans, c.opts...); err == nil {
			t.Errorf("%s: expected error", c.name)
		}
	}
	if _, err := NewDucking(DuckNatural, 0.4, []FrameRange{{Start: 10, End: 5}}); err == nil {
		t.Error("reversed range: expected error")
	}
}

func TestDuckingOverridesAndMergeGap(t *testing.T) {
	duck, err := NewDucking(DuckNatural, 0.5,
		[]FrameRange{{Start: 0, End: 10}, {Start: 14, End: 24}},
		WithDuckedVolume(0.35), WithMergeGap(5))
	if err != nil {
		t.Fatalf("NewDucking: %v", err)
	}
	if got := duck.DuckedVolume(); got != 0.35 {
		t.Errorf("DuckedVolume = %v, want 0.35", got)
	}
	ranges := duck.Ranges()
	if len(ranges) != 1 || ranges[0] != (FrameRange{Start: 0, End: 24}) {
		t.Fatalf("Ranges = %+v, want one span [0,24]", ranges)
	}
	// The gap between the original spans stays fully ducked.
	if got := duck.AmountAt(12); got != 1 {
		t.Errorf("amount in merged gap = %v, want 1", got)
	}
}

func TestCrossfadeFacade(t *testing.T) {
	cf, err := NewCrossfade(100, 50)
	if err != nil {
		t.Fatalf("NewCrossfade: %v", err)
	}
	if g := cf.GainsAt(100); g.Outgoing != 1 || g.Incoming != 0 {
		t.Errorf("gains at start = %+v, want {1 0}", g)
	}
	g := cf.GainsAt(125)
	if math.Abs(g.Outgoing-math.Cos(math.Pi/4)) > 1e-12 || math.Abs(g.Incoming-math.Sin(math.Pi/4)) > 1e-12 {
		t.Errorf("gains at midpoint = %+v", g)
	}
	if p := cf.Progress(150); p != 1 {
		t.Errorf("progress at end = %v, want 1", p)
	}

	linear, err := NewCrossfade(0, 100, WithCurve(CurveLinear), WithMaxVolume(0.5))
	if err != nil {
		t.Fatalf("NewCrossfade linear: %v", err)
	}
	if g := linear.GainsAt(50); math.Abs(g.Outgoing-0.25) > 1e-12 || math.Abs(g.Incoming-0.25) > 1e-12 {
		t.Errorf("scaled linear midpoint = %+v, want {0.25 0.25}", g)
	}

	for name, opts := range map[string][]CrossfadeOption{
		"unknown curve":             {WithCurve("bezier")},
		"maxVolume above 1":         {WithMaxVolume(1.5)},
		"zero overlap":              {WithOverlap(0)},
		"negative exponent":         {WithExponent(-1)},
		"sequence-only fade option": {WithFadeInFrames(10)},
	} {
		if _, err := NewCrossfade(0, 10, opts...); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestTrackSequenceFacade(t *testing.T) {
	spans := []FrameRange{{Start: 0, End: 100}, {Start: 80, End: 200}}
	seq, err := NewTrackSequence(spans, 20)
	if err != nil {
		t.Fatalf("NewTrackSequence: %v", err)
	}
	if seq.Len() != 2 {
		t.Fatalf("Len = %d, want 2", seq.Len())
	}
	if got := seq.GainAt(0, 40); got != 1 {
		t.Errorf("steady gain = %v, want 1", got)
	}
	out, in := seq.GainAt(0, 90), seq.GainAt(1, 90)
	if sum := out*out + in*in; math.Abs(sum-1) > 1e-9 {
		t.Errorf("handoff power = %v, want 1", sum)
	}
	if got := seq.GainAt(1, 50); got != 0 {
		t.Errorf("gain before span = %v, want 0", got)
	}

	if _, err := NewTrackSequence(nil, 20); err == nil {
		t.Error("empty sequence: expected error")
	}
	if _, err := NewTrackSequence([]FrameRange{{Start: 50, End: 90}, {Start: 0, End: 40}}, 20); err == nil {
		t.Error("unordered spans: expected error")
	}
	if _, err := NewTrackSequence([]FrameRange{{Start: 50, End: 10}}, 20); err == nil {
		t.Error("reversed span: expected error")
	}
	if _, err := NewTrackSequence(spans, 20, WithFadeInFrames(-1)); err == nil {
		t.Error("negative fade-in: expected error")
	}
}

func TestBeatClockFacade(t *testing.T) {
	e, _ := New(30)
	clock, err := e.NewBeatClock(120, WithToleranceFrames(1))
	if err != nil {
		t.Fatalf("NewBeatClock: %v", err)
	}
	if got := clock.FramesPerBeat(); got != 15 {
		t.Fatalf("FramesPerBeat = %v, want 15", got)
	}
	info := clock.InfoAt(30)
	if info.Number != 2 || !info.OnBeat {
		t.Errorf("InfoAt(30) = %+v, want beat 2 on the boundary", info)
	}
	if info := clock.InfoAt(16); !info.OnBeat {
		t.Errorf("InfoAt(16) with tolerance 1 should be on beat")
	}
	if info := clock.InfoAt(-1); info.Number != -1 {
		t.Errorf("InfoAt(-1).Number = %d, want -1", info.Number)
	}

	frames := []int{}
	for _, b := range clock.Beats(0, 100).Collect() {
		frames = append(frames, b.Frame)
	}
	want := []int{0, 15, 30, 45, 60, 75, 90}
	if len(frames) != len(want) {
		t.Fatalf("Beats(0,100) = %v, want %v", frames, want)
	}
	for i := range want {
		if frames[i] != want[i] {
			t.Fatalf("Beats(0,100) = %v, want %v", frames, want)
		}
	}

	// Default animation envelopes: pulse 1->0, scale 1.15->1.0,
	// opacity 1.0->0.7, decaying over half a beat.
	if got := clock.PulseAt(0); got != 1 {
		t.Errorf("PulseAt(0) = %v, want 1", got)
	}
	if got := clock.PulseAt(10); got != 0 {
		t.Errorf("PulseAt(10) = %v, want 0 (decay over)", got)
	}
	if got := clock.ScaleAt(0); got != 1.15 {
		t.Errorf("ScaleAt(0) = %v, want 1.15", got)
	}
	if got := clock.ScaleAt(12); got != 1.0 {
		t.Errorf("ScaleAt(12) = %v, want 1.0", got)
	}
	if got := clock.OpacityAt(0); got != 1.0 {
		t.Errorf("OpacityAt(0) = %v, want 1.0", got)
	}
	if got := clock.OpacityAt(10); got != 0.7 {
		t.Errorf("OpacityAt(10) = %v, want 0.7", got)
	}

	snap, err := e.NewBeatClock(120, WithDecayFrames(0))
	if err != nil {
		t.Fatalf("NewBeatClock snap: %v", err)
	}
	if got := snap.PulseAt(1); got != 0 {
		t.Errorf("snap PulseAt(1) = %v, want 0", got)
	}

	if _, err := e.NewBeatClock(0); err == nil {
		t.Error("zero bpm: expected error")
	}
	if _, err := e.NewBeatClock(120, WithSubdivision(0)); err == nil {
		t.Error("zero subdivision: expected error")
	}
	if _, err := e.NewBeatClock(120, WithToleranceFrames(-1)); err == nil {
		t.Error("negative tolerance: expected error")
	}
	if _, err := e.NewBeatClock(120, WithDecayFrames(-3)); err == nil {
		t.Error("negative decay: expected error")
	}
}

func TestMergeRangeHelpers(t *testing.T) {
	merged := MergeTimeRanges([]TimeRange{{0, 5}, {5.2, 10}}, 1)
	if len(merged) != 1 || merged[0] != (TimeRange{0, 10}) {
		t.Fatalf("merge across 0.2s gap = %+v, want [{0 10}]", merged)
	}
	kept := MergeTimeRanges([]TimeRange{{0, 5}, {8, 10}}, 1)
	if len(kept) != 2 {
		t.Fatalf("3s gap should not merge, got %+v", kept)
	}

	e, _ := New(30)
	frames := e.FrameRangesFromSeconds([]TimeRange{{0, 5}, {5.2, 10}})
	if frames[0] != (FrameRange{Start: 0, End: 150}) || frames[1] != (FrameRange{Start: 156, End: 300}) {
		t.Fatalf("FrameRangesFromSeconds = %+v", frames)
	}

	fm := MergeFrameRanges([]FrameRange{{Start: 0, End: 150}, {Start: 156, End: 300}}, 30)
	if len(fm) != 1 || fm[0] != (FrameRange{Start: 0, End: 300}) {
		t.Fatalf("MergeFrameRanges = %+v, want [{0 300}]", fm)
	}
}

// Gains are pure functions of the frame, so evaluation order must not
// matter: a shuffled pass has to reproduce the forward pass bit for
// bit.
func TestEvaluationOrderIndependence(t *testing.T) {
	duck, err := NewDucking(DuckPodcast, 0.6, []FrameRange{{Start: 40, End: 90}, {Start: 100, End: 160}})
	if err != nil {
		t.Fatalf("NewDucking: %v", err)
	}
	seq, err := NewTrackSequence([]FrameRange{{Start: 0, End: 120}, {Start: 100, End: 240}}, 20, WithCurve(CurveSCurve))
	if err != nil {
		t.Fatalf("NewTrackSequence: %v", err)
	}
	e, _ := New(30)
	clock, err := e.NewBeatClock(97, WithSubdivision(2))
	if err != nil {
		t.Fatalf("NewBeatClock: %v", err)
	}

	const n = 300
	forward := make([][4]float64, n)
	for f := 0; f < n; f++ {
		forward[f] = [4]float64{duck.GainAt(f), seq.GainAt(0, f), seq.GainAt(1, f), clock.PulseAt(f)}
	}
	rng := rand.New(rand.NewSource(1))
	for _, f := range rng.Perm(n) {
		got := [4]float64{duck.GainAt(f), seq.GainAt(0, f), seq.GainAt(1, f), clock.PulseAt(f)}
		if got != forward[f] {
			t.Fatalf("frame %d: shuffled evaluation %v differs from forward %v", f, got, forward[f])
		}
	}
}
