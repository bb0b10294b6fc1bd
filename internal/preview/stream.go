// Package preview streams a sample-indexed signal through the ebiten
// audio pipeline for live monitoring. The source is addressed by
// absolute sample index, so the reader owns the only cursor and can be
// repositioned at any time without the source keeping state.
package preview

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	ebitaudio "github.com/hajimehoshi/ebiten/v2/audio"
)

// Source produces the monitoring signal one sample at a time. SampleAt
// must be safe to call out of order and from any goroutine.
type Source interface {
	SampleAt(n int) float64
}

// StreamReader adapts a Source to the stereo float32 stream ebiten
// consumes, duplicating the mono signal into both channels. A positive
// limit ends the stream with io.EOF once the cursor passes it.
type StreamReader struct {
	mu     sync.Mutex
	source Source
	pos    int
	limit  int
}

func NewStreamReader(source Source, limit int) *StreamReader {
	return &StreamReader{source: source, limit: limit}
}

func (r *StreamReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	frames := len(p) / 8
	if frames == 0 {
		return 0, nil
	}
	if r.limit > 0 && frames > r.limit-r.pos {
		frames = r.limit - r.pos
		if frames < 0 {
			frames = 0
		}
	}
	for i := 0; i < frames; i++ {
		u := math.Float32bits(float32(r.source.SampleAt(r.pos)))
		binary.LittleEndian.PutUint32(p[i*8:], u)
		binary.LittleEndian.PutUint32(p[i*8+4:], u)
		r.pos++
	}
	if r.limit > 0 && r.pos >= r.limit {
		return frames * 8, io.EOF
	}
	return frames * 8, nil
}

// SetPosition moves the cursor to sample n. The audio pipeline keeps a
// short buffer, so the jump is heard after a small latency.
func (r *StreamReader) SetPosition(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n < 0 {
		n = 0
	}
	r.pos = n
}

// Position reports the cursor in samples.
func (r *StreamReader) Position() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pos
}

func (r *StreamReader) Close() error { return nil }

var (
	audioContextOnce sync.Once
	audioContext     *ebitaudio.Context
	audioSampleRate  int
)

// sharedAudioContext returns the process-wide ebiten audio context.
// ebiten allows exactly one context per process, created once at a
// fixed sample rate.
func sharedAudioContext(sampleRate int) (*ebitaudio.Context, error) {
	audioContextOnce.Do(func() {
		audioSampleRate = sampleRate
		audioContext = ebitaudio.NewContext(sampleRate)
	})
	if audioSampleRate != sampleRate {
		return nil, fmt.Errorf("audio context already initialized at %d Hz (requested %d Hz)", audioSampleRate, sampleRate)
	}
	return audioContext, nil
}

// Player plays a Source through the shared audio context.
type Player struct {
	player *ebitaudio.Player
	reader *StreamReader
}

// NewPlayer streams the source at the given rate. limit bounds the
// stream in samples; non-positive means endless.
func NewPlayer(sampleRate int, source Source, limit int) (*Player, error) {
	ctx, err := sharedAudioContext(sampleRate)
	if err != nil {
		return nil, err
	}
	reader := NewStreamReader(source, limit)
	pl, err := ctx.NewPlayerF32(reader)
	if err != nil {
		return nil, err
	}
	return &Player{
		player: pl,
		reader: reader,
	}, nil
}

func (p *Player) Play()  { p.player.Play() }
func (p *Player) Pause() { p.player.Pause() }
func (p *Player) IsPlaying() bool {
	return p.player.IsPlaying()
}

// Position returns the playback position as heard.
func (p *Player) Position() time.Duration {
	return p.player.Position()
}

// SamplePosition reports the stream cursor in samples. It runs a
// little ahead of what is heard, by the pipeline's buffer.
func (p *Player) SamplePosition() int {
	return p.reader.Position()
}

// SeekSample moves the stream cursor. Playback continues from there
// after the pipeline's buffer drains.
func (p *Player) SeekSample(n int) {
	p.reader.SetPosition(n)
}

func (p *Player) Stop() error {
	p.player.Pause()
	p.player.Close()
	return p.reader.Close()
}
