package beat

import "math"

// Beat is one tick of the grid: its index and the frame it rounds to.
type Beat struct {
	Index int
	Frame int
}

// FrameOf reports the frame beat index lands on. Fractional grid
// positions round to the nearest frame, halves away from zero.
func (c Clock) FrameOf(index int) int {
	return c.startFrame + int(math.Round(float64(index)*c.framesPerBeat))
}

// Iterator walks the beat grid one tick at a time. Beats are computed
// on demand, never materialized in bulk, and the walk stops at the
// horizon handed to Beats. Seek repositions an iterator in either
// direction, so a single Iterator can replay a region.
type Iterator struct {
	clock Clock
	next  int
	limit int
}

// Beats returns an iterator over the beats whose frames fall in
// [fromFrame, toFrame].
func (c Clock) Beats(fromFrame, toFrame int) *Iterator {
	it := &Iterator{clock: c, limit: toFrame}
	it.Seek(fromFrame)
	return it
}

// Seek repositions the iterator at the first beat on or after frame.
// The clock has no beats before its start frame, so seeking earlier
// lands on beat zero.
func (it *Iterator) Seek(frame int) {
	c := it.clock
	k := 0
	if frame > c.startFrame {
		k = int(math.Ceil(float64(frame-c.startFrame) / c.framesPerBeat))
	}
	// Rounding can put a beat's frame a step either side of the
	// estimate, so settle on the exact boundary.
	for k > 0 && c.FrameOf(k-1) >= frame {
		k--
	}
	for c.FrameOf(k) < frame {
		k++
	}
	it.next = k
}

// Next returns the next beat within the horizon. ok is false once the
// walk passes the horizon; Seek makes the iterator live again.
func (it *Iterator) Next() (Beat, bool) {
	frame := it.clock.FrameOf(it.next)
	if frame > it.limit {
		return Beat{}, false
	}
	b := Beat{Index: it.next, Frame: frame}
	it.next++
	return b, true
}

// Collect drains the iterator into a slice. Bounded by the horizon, so
// the slice stays proportional to the requested window.
func (it *Iterator) Collect() []Beat {
	var beats []Beat
	for {
		b, ok := it.Next()
		if !ok {
			return beats
		}
		beats = append(beats, b)
	}
}
