package crossfade

// Span is one track's active frame range in a sequence, Start <= End.
type Span struct {
	Start int
	End   int
}

// Sequence computes per-track gains for an ordered chain of tracks
// whose neighbors hand off through crossfades. Each track's gain
// depends only on its own span and its neighbors' start frames, never
// on another track's computed value, so tracks and frames evaluate
// independently in any order.
//
// Entry ramps anchor at the track's own start frame; exit ramps anchor
// at the next track's start frame. When both tracks use the same
// window width the two ramps share their progress, so the configured
// curve's loudness contract holds across the boundary. The first track
// has no entry ramp and the last no exit ramp.
type Sequence struct {
	Spans []Span

	// Window is the curve template; its StartFrame and DurationFrames
	// act as the default ramp anchor width.
	Window Window

	// FadeInFrames and FadeOutFrames override the entry and exit ramp
	// widths independently; zero means use Window.DurationFrames.
	FadeInFrames  int
	FadeOutFrames int
}

// GainAt returns track i's gain at frame. Outside the track's span the
// gain is 0. Where a short span makes the entry and exit ramps overlap,
// the smaller gain wins, keeping the envelope continuous.
func (s Sequence) GainAt(i, frame int) float64 {
	if i < 0 || i >= len(s.Spans) {
		return 0
	}
	sp := s.Spans[i]
	if frame < sp.Start || frame > sp.End {
		return 0
	}

	gain := 1.0
	if i > 0 {
		w := s.Window
		w.StartFrame = sp.Start
		w.DurationFrames = s.fadeInFrames()
		if in := s.Window.Curve.gains(s.Window.Exponent, w.Progress(frame)).Incoming; in < gain {
			gain = in
		}
	}
	if i < len(s.Spans)-1 {
		w := s.Window
		w.StartFrame = s.Spans[i+1].Start
		w.DurationFrames = s.fadeOutFrames()
		if out := s.Window.Curve.gains(s.Window.Exponent, w.Progress(frame)).Outgoing; out < gain {
			gain = out
		}
	}
	return gain * s.Window.MaxVolume
}

// Len returns the number of tracks in the sequence.
func (s Sequence) Len() int {
	return len(s.Spans)
}

func (s Sequence) fadeInFrames() int {
	if s.FadeInFrames > 0 {
		return s.FadeInFrames
	}
	return s.Window.DurationFrames
}

func (s Sequence) fadeOutFrames() int {
	if s.FadeOutFrames > 0 {
		return s.FadeOutFrames
	}
	return s.Window.DurationFrames
}
