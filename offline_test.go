package audiomix

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"
)

// The parallel chunk render must reassemble exactly what a one-goroutine
// pass produces, sample for sample.
func TestRenderMixMatchesSequentialPass(t *testing.T) {
	m := loadTestMix(t)
	const rate = 8000
	got, err := RenderMix(m, rate)
	if err != nil {
		t.Fatalf("RenderMix: %v", err)
	}
	wantLen := (m.DurationFrames() + 1) * rate / m.Engine().FPS()
	if len(got) != wantLen {
		t.Fatalf("rendered %d samples, want %d", len(got), wantLen)
	}
	for n := range got {
		want := float32(m.PreviewSample(rate, n))
		if got[n] != want {
			t.Fatalf("sample %d: parallel %v differs from sequential %v", n, got[n], want)
		}
	}
}

func TestRenderMixValidates(t *testing.T) {
	if _, err := RenderMix(nil, 44100); err == nil {
		t.Error("nil mix: expected error")
	}
	m := loadTestMix(t)
	if _, err := RenderMix(m, 0); err == nil {
		t.Error("zero sample rate: expected error")
	}
	if _, err := RenderMix(m, -8000); err == nil {
		t.Error("negative sample rate: expected error")
	}
}

func TestEncodeWAVFloat32LE(t *testing.T) {
	samples := []float32{0, 0.5, -1, 0.25}
	wav := EncodeWAVFloat32LE(samples, 48000, 1)

	if len(wav) != 44+len(samples)*4 {
		t.Fatalf("encoded %d bytes, want %d", len(wav), 44+len(samples)*4)
	}
	if string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" || string(wav[12:16]) != "fmt " {
		t.Fatal("missing RIFF/WAVE/fmt markers")
	}
	if got := binary.LittleEndian.Uint32(wav[4:]); got != uint32(36+len(samples)*4) {
		t.Errorf("chunk size = %d, want %d", got, 36+len(samples)*4)
	}
	if got := binary.LittleEndian.Uint16(wav[20:]); got != 3 {
		t.Errorf("format tag = %d, want 3 (IEEE float)", got)
	}
	if got := binary.LittleEndian.Uint16(wav[22:]); got != 1 {
		t.Errorf("channels = %d, want 1", got)
	}
	if got := binary.LittleEndian.Uint32(wav[24:]); got != 48000 {
		t.Errorf("sample rate = %d, want 48000", got)
	}
	if got := binary.LittleEndian.Uint32(wav[28:]); got != 48000*4 {
		t.Errorf("byte rate = %d, want %d", got, 48000*4)
	}
	if got := binary.LittleEndian.Uint16(wav[32:]); got != 4 {
		t.Errorf("block align = %d, want 4", got)
	}
	if got := binary.LittleEndian.Uint16(wav[34:]); got != 32 {
		t.Errorf("bits per sample = %d, want 32", got)
	}
	if string(wav[36:40]) != "data" {
		t.Fatal("missing data marker")
	}
	if got := binary.LittleEndian.Uint32(wav[40:]); got != uint32(len(samples)*4) {
		t.Errorf("data size = %d, want %d", got, len(samples)*4)
	}
	for i, s := range samples {
		if got := binary.LittleEndian.Uint32(wav[44+i*4:]); got != math.Float32bits(s) {
			t.Errorf("sample %d bits = %08x, want %08x", i, got, math.Float32bits(s))
		}
	}
}

func TestWriteWAVFile(t *testing.T) {
	m, err := LoadMix([]byte(`{"tracks": [{"kind": "music", "start_frame": 0, "end_frame": 30}]}`))
	if err != nil {
		t.Fatalf("LoadMix: %v", err)
	}
	path := filepath.Join(t.TempDir(), "mix.wav")
	if err := WriteWAVFile(path, m, 8000); err != nil {
		t.Fatalf("WriteWAVFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	wantSamples := (30 + 1) * 8000 / 30
	if len(data) != 44+wantSamples*4 {
		t.Errorf("file is %d bytes, want %d", len(data), 44+wantSamples*4)
	}
	if string(data[0:4]) != "RIFF" {
		t.Error("file does not start with RIFF")
	}
}
