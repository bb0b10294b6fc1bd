package audiomix

import (
	"encoding/binary"
	"errors"
	"math"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// renderChunk is the number of samples each worker renders at a time.
const renderChunk = 32768

// RenderMix synthesizes the mix's mono monitoring signal at the given
// sample rate, covering frames 0 through DurationFrames. Disjoint
// chunks render on parallel workers; every sample is a pure function
// of its index, so the reassembled buffer is bit-identical to a
// sequential pass.
func RenderMix(m *Mix, sampleRate int) ([]float32, error) {
	if m == nil {
		return nil, errors.New("mix must not be nil")
	}
	if sampleRate <= 0 {
		return nil, errors.New("sampleRate must be positive")
	}
	total := (m.DurationFrames() + 1) * sampleRate / m.Engine().FPS()
	out := make([]float32, total)

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for start := 0; start < total; start += renderChunk {
		end := start + renderChunk
		if end > total {
			end = total
		}
		g.Go(func() error {
			for n := start; n < end; n++ {
				out[n] = float32(m.PreviewSample(sampleRate, n))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// RenderMixToWAV renders the mix and encodes it as a mono float32 WAV.
func RenderMixToWAV(m *Mix, sampleRate int) ([]byte, error) {
	samples, err := RenderMix(m, sampleRate)
	if err != nil {
		return nil, err
	}
	return EncodeWAVFloat32LE(samples, sampleRate, 1), nil
}

// WriteWAVFile renders the mix and writes the WAV to disk.
func WriteWAVFile(path string, m *Mix, sampleRate int) error {
	wav, err := RenderMixToWAV(m, sampleRate)
	if err != nil {
		return err
	}
	return os.WriteFile(path, wav, 0o644)
}

// EncodeWAVFloat32LE wraps raw float32 samples in a WAV container
// (IEEE float format, little endian).
func EncodeWAVFloat32LE(samples []float32, sampleRate int, channels int) []byte {
	dataSize := len(samples) * 4
	byteRate := sampleRate * channels * 4
	blockAlign := channels * 4
	chunkSize := 36 + dataSize
	out := make([]byte, 44+dataSize)
	copy(out[0:], []byte("RIFF"))
	binary.LittleEndian.PutUint32(out[4:], uint32(chunkSize))
	copy(out[8:], []byte("WAVE"))
	copy(out[12:], []byte("fmt "))
	binary.LittleEndian.PutUint32(out[16:], 16)
	binary.LittleEndian.PutUint16(out[20:], 3)
	binary.LittleEndian.PutUint16(out[22:], uint16(channels))
	binary.LittleEndian.PutUint32(out[24:], uint32(sampleRate))
	binary.LittleEndian.PutUint32(out[28:], uint32(byteRate))
	binary.LittleEndian.PutUint16(out[32:], uint16(blockAlign))
	binary.LittleEndian.PutUint16(out[34:], 32)
	copy(out[36:], []byte("data"))
	binary.LittleEndian.PutUint32(out[40:], uint32(dataSize))
	for i, s := range samples {
		binary.LittleEndian.PutUint32(out[44+i*4:], math.Float32bits(s))
	}
	return out
}
