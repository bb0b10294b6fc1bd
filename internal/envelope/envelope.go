// Package envelope computes linear fade ramps over frame windows. All
// functions are pure: the result depends only on the arguments, so
// frames can be evaluated in any order.
package envelope

// FadeVolume returns the level at frame for a linear ramp running from
// "from" to "to" across [startFrame, startFrame+durationFrames]. Frames
// before the window hold "from", frames after hold "to". A non-positive
// duration is an instantaneous step to "to".
func FadeVolume(frame, startFrame, durationFrames int, from, to float64) float64 {
	if durationFrames <= 0 {
		return to
	}
	t := float64(frame-startFrame) / float64(durationFrames)
	if t <= 0 {
		return from
	}
	if t >= 1 {
		return to
	}
	return from + (to-from)*t
}

// FadeIn ramps 0 up to maxVolume over inFrames starting at startFrame.
func FadeIn(frame, startFrame, inFrames int, maxVolume float64) float64 {
	return FadeVolume(frame, startFrame, inFrames, 0, maxVolume)
}

// FadeOut ramps maxVolume down to 0 over the outFrames ending at
// endFrame.
func FadeOut(frame, endFrame, outFrames int, maxVolume float64) float64 {
	return FadeVolume(frame, endFrame-outFrames, outFrames, maxVolume, 0)
}

// FadeInOut shapes a whole window: a fade-in over inFrames at the start
// of [startFrame, startFrame+totalFrames], a plateau at maxVolume, and a
// fade-out over outFrames at the end. When the window is too short for
// both ramps the fade-out wins from its start frame, so the level is
// never scaled by both ramps at once.
func FadeInOut(frame, startFrame, totalFrames, inFrames, outFrames int, maxVolume float64) float64 {
	outStart := startFrame + totalFrames - outFrames
	if outFrames > 0 && frame >= outStart {
		return FadeVolume(frame, outStart, outFrames, maxVolume, 0)
	}
	return FadeVolume(frame, startFrame, inFrames, 0, maxVolume)
}
