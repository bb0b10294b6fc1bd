package audiomix

import "testing"

func BenchmarkMixGainsAt(b *testing.B) {
	m, err := LoadMix([]byte(testMixJSON))
	if err != nil {
		b.Fatalf("LoadMix: %v", err)
	}
	frames := m.DurationFrames() + 1

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.GainsAt(i % frames)
	}
}

func BenchmarkDuckingGainAt(b *testing.B) {
	ranges := []FrameRange{
		{Start: 60, End: 150},
		{Start: 200, End: 320},
		{Start: 400, End: 520},
	}
	duck, err := NewDucking(DuckNatural, 0.8, ranges)
	if err != nil {
		b.Fatalf("NewDucking: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		duck.GainAt(i % 600)
	}
}

func BenchmarkPreviewSample(b *testing.B) {
	m, err := LoadMix([]byte(testMixJSON))
	if err != nil {
		b.Fatalf("LoadMix: %v", err)
	}
	samples := (m.DurationFrames() + 1) * 48000 / m.Engine().FPS()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.PreviewSample(48000, i%samples)
	}
}
