package audiomix

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	intenv "github.com/eohjun/remotion-studio-sub002/internal/envelope"
	inttone "github.com/eohjun/remotion-studio-sub002/internal/tone"
)

// TrackKind classifies a mix track. Narration suppresses music through
// ducking; music tracks chain through crossfades; sfx plays as-is.
type TrackKind string

const (
	KindMusic     TrackKind = "music"
	KindNarration TrackKind = "narration"
	KindSFX       TrackKind = "sfx"
)

// Track describes one compiled mix track.
type Track struct {
	Name          string
	Kind          TrackKind
	Span          FrameRange
	Volume        float64
	FadeInFrames  int
	FadeOutFrames int
}

// mixDocument is the JSON project shape. Pointer fields distinguish
// "absent" from an explicit zero where zero is meaningful.
type mixDocument struct {
	FPS            int           `json:"fps,omitempty"`
	DurationFrames int           `json:"duration_frames,omitempty"`
	MasterVolume   float64       `json:"master_volume,omitempty"`
	Tracks         []trackDoc    `json:"tracks"`
	Ducking        *duckingDoc   `json:"ducking,omitempty"`
	Crossfade      *crossfadeDoc `json:"crossfade,omitempty"`
	Beat           *beatDoc      `json:"beat,omitempty"`
}

type trackDoc struct {
	Name          string  `json:"name,omitempty"`
	Kind          string  `json:"kind"`
	StartFrame    int     `json:"start_frame"`
	EndFrame      int     `json:"end_frame"`
	Volume        float64 `json:"volume,omitempty"`
	FadeInFrames  int     `json:"fade_in_frames,omitempty"`
	FadeOutFrames int     `json:"fade_out_frames,omitempty"`
	Tone          string  `json:"tone,omitempty"`
	Freq          float64 `json:"freq,omitempty"`
}

type duckingDoc struct {
	Preset          string   `json:"preset,omitempty"`
	DuckedVolume    *float64 `json:"ducked_volume,omitempty"`
	AttackFrames    *int     `json:"attack_frames,omitempty"`
	ReleaseFrames   *int     `json:"release_frames,omitempty"`
	HoldFrames      *int     `json:"hold_frames,omitempty"`
	LookaheadFrames *int     `json:"lookahead_frames,omitempty"`
	Easing          string   `json:"easing,omitempty"`
	MergeGapFrames  int      `json:"merge_gap_frames,omitempty"`
	Disabled        bool     `json:"disabled,omitempty"`
}

type crossfadeDoc struct {
	Curve          string  `json:"curve,omitempty"`
	DurationFrames int     `json:"duration_frames,omitempty"`
	FadeInFrames   int     `json:"fade_in_frames,omitempty"`
	FadeOutFrames  int     `json:"fade_out_frames,omitempty"`
	Exponent       float64 `json:"exponent,omitempty"`
	MaxVolume      float64 `json:"max_volume,omitempty"`
	Overlap        float64 `json:"overlap,omitempty"`
}

type beatDoc struct {
	BPM             float64 `json:"bpm"`
	Subdivision     int     `json:"subdivision,omitempty"`
	StartFrame      int     `json:"start_frame,omitempty"`
	ToleranceFrames int     `json:"tolerance_frames,omitempty"`
}

type mixTrack struct {
	info     Track
	shape    inttone.Shape
	freq     float64
	duck     *Ducking
	seqIndex int
}

// Mix is a compiled mix document: an engine, a track list, and the
// automation built from them. All queries are pure; a Mix can be shared
// across goroutines freely.
type Mix struct {
	engine   Engine
	duration int
	master   float64
	tracks   []mixTrack
	seq      *TrackSequence
	beat     *BeatClock
}

// LoadMixFile reads and compiles a JSON mix document from disk.
func LoadMixFile(path string) (*Mix, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadMix(data)
}

// LoadMix compiles a JSON mix document. Missing fields default the way
// the video pipeline expects: 30 fps, music volume 0.3, narration 1.0,
// sfx 0.7, natural ducking driven by the narration spans, and an
// equal-power crossfade chain when several music tracks are present.
// Every value is validated here; queries on the compiled Mix never
// fail.
func LoadMix(data []byte) (*Mix, error) {
	var doc mixDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.FPS <= 0 {
		doc.FPS = 30
	}
	engine, err := New(doc.FPS)
	if err != nil {
		return nil, err
	}
	if len(doc.Tracks) == 0 {
		return nil, errors.New("mix document has no tracks")
	}
	if doc.MasterVolume == 0 {
		doc.MasterVolume = 0.8
	}
	if doc.MasterVolume < 0 || doc.MasterVolume > 1 {
		return nil, errors.New("masterVolume must be within [0,1]")
	}

	m := &Mix{engine: engine, master: doc.MasterVolume}
	var narration []FrameRange
	var musicIdx []int
	for i, td := range doc.Tracks {
		tr, shape, freq, err := compileTrack(i, td)
		if err != nil {
			return nil, err
		}
		m.tracks = append(m.tracks, mixTrack{info: tr, shape: shape, freq: freq, seqIndex: -1})
		if tr.Span.End > m.duration {
			m.duration = tr.Span.End
		}
		switch tr.Kind {
		case KindNarration:
			narration = append(narration, tr.Span)
		case KindMusic:
			musicIdx = append(musicIdx, i)
		}
	}
	if doc.DurationFrames > 0 {
		m.duration = doc.DurationFrames
	}

	if err := m.compileDucking(doc.Ducking, narration, musicIdx); err != nil {
		return nil, err
	}
	if err := m.compileSequence(doc.Crossfade, musicIdx); err != nil {
		return nil, err
	}
	if doc.Beat != nil {
		subdivision := doc.Beat.Subdivision
		if subdivision <= 0 {
			subdivision = 1
		}
		clock, err := engine.NewBeatClock(doc.Beat.BPM,
			WithSubdivision(subdivision),
			WithStartFrame(doc.Beat.StartFrame),
			WithToleranceFrames(doc.Beat.ToleranceFrames),
		)
		if err != nil {
			return nil, err
		}
		m.beat = &clock
	}
	return m, nil
}

func compileTrack(i int, td trackDoc) (Track, inttone.Shape, float64, error) {
	kind := TrackKind(td.Kind)
	var volume, freq float64
	var shapeName string
	switch kind {
	case KindMusic:
		volume, freq, shapeName = 0.3, 220, "sine"
	case KindNarration:
		volume, freq, shapeName = 1.0, 440, "triangle"
	case KindSFX:
		volume, freq, shapeName = 0.7, 880, "square"
	default:
		return Track{}, 0, 0, fmt.Errorf("unknown track kind %q (expected music|narration|sfx)", td.Kind)
	}
	name := td.Name
	if name == "" {
		name = fmt.Sprintf("%s-%d", kind, i)
	}
	if td.Volume > 0 {
		volume = td.Volume
	}
	if volume > 1 {
		return Track{}, 0, 0, fmt.Errorf("track %q volume must be within [0,1]", name)
	}
	if td.EndFrame < td.StartFrame {
		return Track{}, 0, 0, fmt.Errorf("track %q ends at frame %d before it starts at %d", name, td.EndFrame, td.StartFrame)
	}
	if td.FadeInFrames < 0 || td.FadeOutFrames < 0 {
		return Track{}, 0, 0, fmt.Errorf("track %q fade frames must not be negative", name)
	}
	if td.Tone != "" {
		shapeName = td.Tone
	}
	shape, err := inttone.ShapeFor(shapeName)
	if err != nil {
		return Track{}, 0, 0, err
	}
	if td.Freq > 0 {
		freq = td.Freq
	}
	return Track{
		Name:          name,
		Kind:          kind,
		Span:          FrameRange{Start: td.StartFrame, End: td.EndFrame},
		Volume:        volume,
		FadeInFrames:  td.FadeInFrames,
		FadeOutFrames: td.FadeOutFrames,
	}, shape, freq, nil
}

// compileDucking attaches a ducking evaluator to every music track,
// driven by the narration spans. Skipped when there is nothing to duck
// or the document opts out.
func (m *Mix) compileDucking(doc *duckingDoc, narration []FrameRange, musicIdx []int) error {
	if len(musicIdx) == 0 || len(narration) == 0 {
		return nil
	}
	if doc != nil && doc.Disabled {
		return nil
	}
	preset := DuckNatural
	gap := 0
	var opts []DuckingOption
	if doc != nil {
		if doc.Preset != "" {
			preset = DuckingPreset(doc.Preset)
		}
		if doc.DuckedVolume != nil {
			opts = append(opts, WithDuckedVolume(*doc.DuckedVolume))
		}
		if doc.AttackFrames != nil {
			opts = append(opts, WithAttackFrames(*doc.AttackFrames))
		}
		if doc.ReleaseFrames != nil {
			opts = append(opts, WithReleaseFrames(*doc.ReleaseFrames))
		}
		if doc.HoldFrames != nil {
			opts = append(opts, WithHoldFrames(*doc.HoldFrames))
		}
		if doc.LookaheadFrames != nil {
			opts = append(opts, WithLookaheadFrames(*doc.LookaheadFrames))
		}
		if doc.Easing != "" {
			opts = append(opts, WithDuckEasing(EasingName(doc.Easing)))
		}
		gap = doc.MergeGapFrames
	}
	// Overlapping narration spans always collapse; the configured gap
	// additionally bridges short silences.
	ranges := MergeFrameRanges(narration, gap)
	for _, i := range musicIdx {
		duck, err := NewDucking(preset, m.tracks[i].info.Volume, ranges, opts...)
		if err != nil {
			return err
		}
		d := duck
		m.tracks[i].duck = &d
	}
	return nil
}

// compileSequence chains the music tracks through crossfades when more
// than one is present.
func (m *Mix) compileSequence(doc *crossfadeDoc, musicIdx []int) error {
	if len(musicIdx) < 2 {
		return nil
	}
	duration := 30
	var opts []CrossfadeOption
	if doc != nil {
		if doc.DurationFrames > 0 {
			duration = doc.DurationFrames
		}
		if doc.Curve != "" {
			opts = append(opts, WithCurve(CrossfadeCurve(doc.Curve)))
		}
		if doc.Exponent > 0 {
			opts = append(opts, WithExponent(doc.Exponent))
		}
		if doc.MaxVolume > 0 {
			opts = append(opts, WithMaxVolume(doc.MaxVolume))
		}
		if doc.Overlap > 0 {
			opts = append(opts, WithOverlap(doc.Overlap))
		}
		if doc.FadeInFrames > 0 {
			opts = append(opts, WithFadeInFrames(doc.FadeInFrames))
		}
		if doc.FadeOutFrames > 0 {
			opts = append(opts, WithFadeOutFrames(doc.FadeOutFrames))
		}
	}
	spans := make([]FrameRange, len(musicIdx))
	for si, i := range musicIdx {
		spans[si] = m.tracks[i].info.Span
	}
	seq, err := NewTrackSequence(spans, duration, opts...)
	if err != nil {
		return err
	}
	m.seq = &seq
	for si, i := range musicIdx {
		m.tracks[i].seqIndex = si
	}
	return nil
}

// Engine returns the engine the mix was compiled against.
func (m *Mix) Engine() Engine { return m.engine }

// DurationFrames reports the mix length: the configured duration or the
// last track end, whichever the document settles on.
func (m *Mix) DurationFrames() int { return m.duration }

// MasterVolume reports the output scaling applied by PreviewSample.
func (m *Mix) MasterVolume() float64 { return m.master }

// Tracks returns a copy of the compiled track list.
func (m *Mix) Tracks() []Track {
	out := make([]Track, len(m.tracks))
	for i, tr := range m.tracks {
		out[i] = tr.info
	}
	return out
}

// BeatClock returns the mix's beat clock, if the document declared a
// tempo.
func (m *Mix) BeatClock() (BeatClock, bool) {
	if m.beat == nil {
		return BeatClock{}, false
	}
	return *m.beat, true
}

// GainAt returns the gain of one track at one frame: zero outside the
// track's span, otherwise its volume automated by ducking, crossfade
// position, and its own fades.
func (m *Mix) GainAt(trackIndex, frame int) float64 {
	if trackIndex < 0 || trackIndex >= len(m.tracks) {
		return 0
	}
	tr := m.tracks[trackIndex]
	sp := tr.info.Span
	if frame < sp.Start || frame > sp.End {
		return 0
	}
	g := tr.info.Volume
	if tr.duck != nil {
		g = tr.duck.GainAt(frame)
	}
	if tr.seqIndex >= 0 && m.seq != nil {
		g *= m.seq.GainAt(tr.seqIndex, frame)
	}
	mask := intenv.FadeInOut(frame, sp.Start, sp.End-sp.Start, tr.info.FadeInFrames, tr.info.FadeOutFrames, 1)
	return clamp01(g * mask)
}

// GainsAt returns every track's gain at the frame, indexed like
// Tracks.
func (m *Mix) GainsAt(frame int) []float64 {
	out := make([]float64, len(m.tracks))
	for i := range m.tracks {
		out[i] = m.GainAt(i, frame)
	}
	return out
}

// DuckAmountAt reports how hard the music is ducked at the frame, 0 to
// 1. Zero when the mix has no ducking.
func (m *Mix) DuckAmountAt(frame int) float64 {
	for _, tr := range m.tracks {
		if tr.duck != nil {
			return tr.duck.AmountAt(frame)
		}
	}
	return 0
}

// PreviewSample synthesizes sample n of the monitoring signal at the
// given sample rate: each track's placeholder tone scaled by its gain
// at the frame the sample falls in. Pure in (sampleRate, n), so any
// region can be rendered independently.
func (m *Mix) PreviewSample(sampleRate, n int) float64 {
	if sampleRate <= 0 || n < 0 {
		return 0
	}
	frame := n * m.engine.fps / sampleRate
	var sum float64
	for i, tr := range m.tracks {
		g := m.GainAt(i, frame)
		if g == 0 {
			continue
		}
		v := inttone.Voice{Freq: tr.freq, Shape: tr.shape, Gain: g, SampleRate: sampleRate}
		sum += v.At(n)
	}
	return sum * m.master
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
