// Package tone generates placeholder audio for monitoring a mix before
// the real stems exist. A Voice is addressed by absolute sample index
// rather than advanced sample by sample, so any region of the signal
// can be computed independently and in any order.
package tone

import (
	"fmt"
	"math"
)

const twoPi = math.Pi * 2

// Shape selects the oscillator waveform.
type Shape int

const (
	Sine Shape = iota
	Triangle
	Square
)

// ShapeFor maps a config name to a Shape.
func ShapeFor(name string) (Shape, error) {
	switch name {
	case "sine":
		return Sine, nil
	case "triangle":
		return Triangle, nil
	case "square":
		return Square, nil
	}
	return Sine, fmt.Errorf("unknown tone shape %q (expected sine|triangle|square)", name)
}

func (s Shape) String() string {
	switch s {
	case Triangle:
		return "triangle"
	case Square:
		return "square"
	}
	return "sine"
}

// Voice is a fixed-frequency oscillator. The zero value is silent.
type Voice struct {
	Freq       float64
	Shape      Shape
	Gain       float64
	SampleRate int
}

// At returns the voice's sample at index n. Phase is derived from n
// alone, so calls are independent and repeatable.
func (v Voice) At(n int) float64 {
	if v.SampleRate <= 0 || v.Freq <= 0 || v.Gain == 0 {
		return 0
	}
	phase := math.Mod(v.Freq*float64(n)/float64(v.SampleRate), 1)
	if phase < 0 {
		phase++
	}
	var s float64
	switch v.Shape {
	case Triangle:
		if phase < 0.5 {
			s = 4*phase - 1
		} else {
			s = 3 - 4*phase
		}
	case Square:
		if phase < 0.5 {
			s = 1
		} else {
			s = -1
		}
	default:
		s = math.Sin(twoPi * phase)
	}
	return s * v.Gain
}
