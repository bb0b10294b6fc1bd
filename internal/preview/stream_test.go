package preview

import (
	"encoding/binary"
	"io"
	"math"
	"testing"
)

// rampSource reports the sample index itself, making byte positions
// easy to verify.
type rampSource struct{}

func (rampSource) SampleAt(n int) float64 { return float64(n) }

func TestStreamReaderLayout(t *testing.T) {
	r := NewStreamReader(rampSource{}, 0)
	p := make([]byte, 4*8) // four stereo float32 frames
	n, err := r.Read(p)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if n != len(p) {
		t.Fatalf("Read: got %d bytes, want %d", n, len(p))
	}
	for i := 0; i < 4; i++ {
		want := math.Float32bits(float32(i))
		left := binary.LittleEndian.Uint32(p[i*8:])
		right := binary.LittleEndian.Uint32(p[i*8+4:])
		if left != want || right != want {
			t.Errorf("frame %d: got L=%08x R=%08x, want %08x", i, left, right, want)
		}
	}
}

func TestStreamReaderAdvancesAndSeeks(t *testing.T) {
	r := NewStreamReader(rampSource{}, 0)
	p := make([]byte, 2*8)
	if _, err := r.Read(p); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got := r.Position(); got != 2 {
		t.Fatalf("Position after one read: got %d, want 2", got)
	}
	if _, err := r.Read(p); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got := binary.LittleEndian.Uint32(p[0:]); got != math.Float32bits(2) {
		t.Errorf("second read should continue at sample 2, got bits %08x", got)
	}

	r.SetPosition(100)
	if _, err := r.Read(p); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got := binary.LittleEndian.Uint32(p[0:]); got != math.Float32bits(100) {
		t.Errorf("read after seek should start at sample 100, got bits %08x", got)
	}

	r.SetPosition(-5)
	if got := r.Position(); got != 0 {
		t.Errorf("negative seek should clamp to 0, got %d", got)
	}
}

func TestStreamReaderLimitEndsWithEOF(t *testing.T) {
	r := NewStreamReader(rampSource{}, 3)
	p := make([]byte, 8*8)
	n, err := r.Read(p)
	if n != 3*8 {
		t.Fatalf("Read: got %d bytes, want %d", n, 3*8)
	}
	if err != io.EOF {
		t.Fatalf("Read at limit: got err %v, want io.EOF", err)
	}
	n, err = r.Read(p)
	if n != 0 || err != io.EOF {
		t.Fatalf("Read past limit: got n=%d err=%v, want 0, io.EOF", n, err)
	}
}

func TestStreamReaderShortBuffer(t *testing.T) {
	r := NewStreamReader(rampSource{}, 0)
	n, err := r.Read(make([]byte, 7)) // less than one stereo frame
	if n != 0 || err != nil {
		t.Fatalf("short buffer: got n=%d err=%v, want 0, nil", n, err)
	}
}
