// Command automix_ui is a curve scope for a mix document: one lane per
// track showing its automated gain over the timeline, a beat ruler, a
// scrubbing playhead, and tone-based audio monitoring. The document is
// recompiled and the scope redrawn whenever the file changes on disk.
package main

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	audiomix "github.com/eohjun/remotion-studio-sub002"
	"github.com/eohjun/remotion-studio-sub002/internal/preview"
)

const (
	windowW      = 1100
	windowH      = 640
	minWindowW   = 900
	minWindowH   = 480
	uiSampleRate = 48000

	textScale = 2
	charW     = 7 * textScale
	lineH     = 14 * textScale

	// Left gutter inside the timeline for track names and meters.
	gutterW = 190
)

var (
	bgColor       = color.RGBA{24, 24, 32, 255}
	panelColor    = color.RGBA{14, 16, 22, 255}
	borderColor   = color.RGBA{50, 54, 68, 255}
	gridColor     = color.RGBA{40, 44, 58, 255}
	tickColor     = color.RGBA{70, 76, 94, 255}
	beatColor     = color.RGBA{255, 184, 108, 200}
	playheadColor = color.RGBA{255, 184, 108, 255}

	musicColor     = color.RGBA{80, 200, 255, 220}
	narrationColor = color.RGBA{120, 255, 170, 220}
	sfxColor       = color.RGBA{190, 140, 255, 220}
)

// reloadMsg carries the result of recompiling the mix document.
type reloadMsg struct {
	mix *audiomix.Mix
	err error
}

// watchMix recompiles the document whenever it is written and hands the
// result to the UI loop. It watches the directory rather than the file
// so editors that replace the file on save are still seen.
func watchMix(path string, out chan<- reloadMsg) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		out <- reloadMsg{err: err}
		return
	}
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		out <- reloadMsg{err: err}
		return
	}
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != filepath.Clean(path) {
				continue
			}
			m, err := audiomix.LoadMixFile(path)
			out <- reloadMsg{mix: m, err: err}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			out <- reloadMsg{err: err}
		}
	}
}

// mixSource adapts the compiled mix to the preview player's pull
// interface.
type mixSource struct {
	mix  *audiomix.Mix
	rate int
}

func (s mixSource) SampleAt(n int) float64 { return s.mix.PreviewSample(s.rate, n) }

type game struct {
	path    string
	mix     *audiomix.Mix
	reloads <-chan reloadMsg

	player  *preview.Player
	playing bool

	frame    int
	dragging bool

	curves  *ebiten.Image
	curvesW int
	curvesH int
	// curvesOK goes false whenever the mix changes, forcing a redraw of
	// the cached curve image.
	curvesOK bool

	status    string
	statusErr bool

	textCache map[string]*ebiten.Image
	viewW     int
	viewH     int
}

func newGame(path string, m *audiomix.Mix, reloads <-chan reloadMsg) *game {
	return &game{
		path:      path,
		mix:       m,
		reloads:   reloads,
		status:    "Ready",
		textCache: make(map[string]*ebiten.Image, 256),
		viewW:     windowW,
		viewH:     windowH,
	}
}

func (g *game) Update() error {
	g.pollReloads()
	g.handleKeys()
	g.handleMouse()
	g.followPlayback()
	return nil
}

func (g *game) Layout(outsideW, outsideH int) (int, int) {
	if outsideW < minWindowW {
		outsideW = minWindowW
	}
	if outsideH < minWindowH {
		outsideH = minWindowH
	}
	g.viewW = outsideW
	g.viewH = outsideH
	return outsideW, outsideH
}

func (g *game) Close() { g.stopPlayback() }

func (g *game) pollReloads() {
	for {
		select {
		case msg := <-g.reloads:
			if msg.err != nil {
				g.setError(msg.err.Error())
				continue
			}
			g.applyMix(msg.mix)
			g.setStatus("Reloaded " + filepath.Base(g.path))
		default:
			return
		}
	}
}

// applyMix swaps in a recompiled mix, rebinding the player so the new
// automation is heard. Playback resumes from the current playhead.
func (g *game) applyMix(m *audiomix.Mix) {
	wasPlaying := g.playing
	g.stopPlayback()
	g.mix = m
	g.curvesOK = false
	if g.frame > m.DurationFrames() {
		g.frame = m.DurationFrames()
	}
	if wasPlaying {
		g.startPlayback()
	}
}

func (g *game) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.togglePlayback()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		m, err := audiomix.LoadMixFile(g.path)
		if err != nil {
			g.setError(err.Error())
		} else {
			g.applyMix(m)
			g.setStatus("Reloaded " + filepath.Base(g.path))
		}
	}

	fps := g.mix.Engine().FPS()
	step := 0
	switch {
	case keyRepeats(ebiten.KeyArrowLeft):
		step = -1
	case keyRepeats(ebiten.KeyArrowRight):
		step = 1
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		step = -fps
	case inpututil.IsKeyJustPressed(ebiten.KeyPageDown):
		step = fps
	}
	if step != 0 {
		g.seekTo(g.frame + step)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyHome) {
		g.seekTo(0)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnd) {
		g.seekTo(g.mix.DurationFrames())
	}
}

// keyRepeats fires on the initial press and then at a steady rate while
// the key stays held.
func keyRepeats(key ebiten.Key) bool {
	d := inpututil.KeyPressDuration(key)
	return d == 1 || (d >= 20 && d%3 == 0)
}

func (g *game) handleMouse() {
	mx, my := ebiten.CursorPosition()
	l := g.layoutRects()
	plot := g.plotRect(l.timeline)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && pointInRect(mx, my, l.timeline) {
		g.dragging = true
	}
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g.dragging = false
	}
	if g.dragging {
		g.seekTo(g.frameAtX(mx, plot))
	}

	if _, wy := ebiten.Wheel(); wy != 0 && pointInRect(mx, my, l.timeline) {
		g.seekTo(g.frame - int(wy*5))
	}
}

func (g *game) togglePlayback() {
	if g.playing {
		g.player.Pause()
		g.playing = false
		g.setStatus("Paused")
		return
	}
	if g.frame >= g.mix.DurationFrames() {
		g.seekTo(0)
	}
	g.startPlayback()
}

func (g *game) startPlayback() {
	if g.player == nil {
		fps := g.mix.Engine().FPS()
		limit := (g.mix.DurationFrames() + 1) * uiSampleRate / fps
		pl, err := preview.NewPlayer(uiSampleRate, mixSource{mix: g.mix, rate: uiSampleRate}, limit)
		if err != nil {
			g.setError(err.Error())
			return
		}
		pl.SeekSample(g.frame * uiSampleRate / fps)
		g.player = pl
	}
	g.player.Play()
	g.playing = true
	g.setStatus("Playing")
}

func (g *game) stopPlayback() {
	if g.player != nil {
		_ = g.player.Stop()
		g.player = nil
	}
	g.playing = false
}

func (g *game) seekTo(frame int) {
	if frame < 0 {
		frame = 0
	}
	if last := g.mix.DurationFrames(); frame > last {
		frame = last
	}
	g.frame = frame
	if g.player != nil {
		g.player.SeekSample(frame * uiSampleRate / g.mix.Engine().FPS())
	}
}

// followPlayback pins the playhead to the stream cursor while audio
// runs.
func (g *game) followPlayback() {
	if !g.playing || g.player == nil {
		return
	}
	fps := g.mix.Engine().FPS()
	frame := g.player.SamplePosition() * fps / uiSampleRate
	if last := g.mix.DurationFrames(); frame > last {
		frame = last
	}
	g.frame = frame
	if !g.player.IsPlaying() {
		// The stream ended; drop the player so the next start rebuilds
		// it from a fresh cursor.
		g.stopPlayback()
		g.setStatus("Playback ended")
	}
}

type uiLayout struct {
	header   image.Rectangle
	timeline image.Rectangle
	ruler    image.Rectangle
	status   image.Rectangle
}

func (g *game) layoutRects() uiLayout {
	w := g.viewW
	h := g.viewH
	if w < minWindowW {
		w = minWindowW
	}
	if h < minWindowH {
		h = minWindowH
	}

	pad := 16
	headerH := lineH + 12
	rulerH := 26
	statusH := 2*lineH + 16

	statusTop := h - pad - statusH
	rulerTop := statusTop - 8 - rulerH

	return uiLayout{
		header:   image.Rect(pad, pad, w-pad, pad+headerH),
		timeline: image.Rect(pad, pad+headerH+8, w-pad, rulerTop-8),
		ruler:    image.Rect(pad, rulerTop, w-pad, rulerTop+rulerH),
		status:   image.Rect(pad, statusTop, w-pad, statusTop+statusH),
	}
}

// plotRect is the curve area of the timeline: the panel minus its
// border and the label gutter.
func (g *game) plotRect(timeline image.Rectangle) image.Rectangle {
	return image.Rect(timeline.Min.X+gutterW, timeline.Min.Y+2, timeline.Max.X-2, timeline.Max.Y-2)
}

func (g *game) durationFrames() int {
	if d := g.mix.DurationFrames(); d > 0 {
		return d
	}
	return 1
}

func (g *game) frameAtX(mx int, plot image.Rectangle) int {
	if plot.Dx() <= 1 {
		return 0
	}
	frac := clamp(float64(mx-plot.Min.X)/float64(plot.Dx()-1), 0, 1)
	return int(frac * float64(g.durationFrames()))
}

func (g *game) xAtFrame(frame int, plot image.Rectangle) int {
	return plot.Min.X + frame*(plot.Dx()-1)/g.durationFrames()
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(bgColor)
	l := g.layoutRects()

	g.drawHeader(screen, l.header)
	g.drawTimeline(screen, l.timeline)
	g.drawRuler(screen, l.ruler, g.plotRect(l.timeline))
	g.drawStatus(screen, l.status)
}

func (g *game) drawHeader(screen *ebiten.Image, rect image.Rectangle) {
	engine := g.mix.Engine()
	left := fmt.Sprintf("automix scope  %s", shortenEnd(filepath.Base(g.path), 15))
	g.drawText(screen, left, rect.Min.X, rect.Min.Y)

	right := fmt.Sprintf("frame %d/%d  %6.2fs", g.frame, g.mix.DurationFrames(), engine.FramesToSeconds(g.frame))
	if clock, ok := g.mix.BeatClock(); ok {
		info := clock.InfoAt(g.frame)
		marker := " "
		if info.OnBeat {
			marker = "*"
		}
		right += fmt.Sprintf("  beat %d %s", info.Number, marker)
	}
	g.drawText(screen, right, rect.Max.X-len(right)*charW, rect.Min.Y)
}

func (g *game) drawTimeline(screen *ebiten.Image, rect image.Rectangle) {
	drawPanel(screen, rect)
	plot := g.plotRect(rect)
	if plot.Dx() < 2 || plot.Dy() < 2 {
		return
	}

	if !g.curvesOK || g.curvesW != plot.Dx() || g.curvesH != plot.Dy() {
		g.rebuildCurves(plot.Dx(), plot.Dy())
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(plot.Min.X), float64(plot.Min.Y))
	screen.DrawImage(g.curves, op)

	// Gutter: name, kind color chip, and the live gain at the playhead.
	tracks := g.mix.Tracks()
	laneH := plot.Dy() / len(tracks)
	for i, tr := range tracks {
		top := plot.Min.Y + i*laneH
		chip := image.Rect(rect.Min.X+8, top+6, rect.Min.X+14, top+6+lineH-8)
		ebitenutil.DrawRect(screen, float64(chip.Min.X), float64(chip.Min.Y), float64(chip.Dx()), float64(chip.Dy()), kindColor(tr.Kind))
		g.drawText(screen, shortenEnd(tr.Name, (gutterW-100)/charW), rect.Min.X+20, top+4)
		g.drawText(screen, fmt.Sprintf("%.3f", g.mix.GainAt(i, g.frame)), rect.Min.X+gutterW-5*charW-8, top+4)
	}
	ebitenutil.DrawRect(screen, float64(rect.Min.X+gutterW-2), float64(rect.Min.Y), 1, float64(rect.Dy()), borderColor)

	// Playhead across every lane.
	px := g.xAtFrame(g.frame, plot)
	ebitenutil.DrawRect(screen, float64(px), float64(plot.Min.Y), 1, float64(plot.Dy()), playheadColor)
}

// rebuildCurves redraws the cached per-track gain curves. The image
// only changes when the mix document or the window size does.
func (g *game) rebuildCurves(w, h int) {
	if g.curves == nil || g.curvesW != w || g.curvesH != h {
		g.curves = ebiten.NewImage(w, h)
		g.curvesW, g.curvesH = w, h
	}
	g.curves.Fill(panelColor)

	tracks := g.mix.Tracks()
	duration := g.durationFrames()
	laneH := h / len(tracks)
	if laneH < 8 {
		g.curvesOK = true
		return
	}

	for i, tr := range tracks {
		top := i * laneH
		bottom := top + laneH - 2
		headroom := laneH - 8

		// Unity and floor grid lines.
		ebitenutil.DrawRect(g.curves, 0, float64(bottom-headroom), float64(w), 1, gridColor)
		ebitenutil.DrawRect(g.curves, 0, float64(bottom), float64(w), 1, gridColor)

		col := kindColor(tr.Kind)
		prevY := bottom - int(g.mix.GainAt(i, 0)*float64(headroom))
		for px := 1; px < w; px++ {
			frame := px * duration / (w - 1)
			y := bottom - int(g.mix.GainAt(i, frame)*float64(headroom))
			ebitenutil.DrawLine(g.curves, float64(px-1), float64(prevY), float64(px), float64(y), col)
			prevY = y
		}
	}
	g.curvesOK = true
}

// drawRuler marks seconds along the timeline and, when the mix has a
// tempo, every beat frame from the clock's iterator.
func (g *game) drawRuler(screen *ebiten.Image, rect image.Rectangle, plot image.Rectangle) {
	if plot.Dx() < 2 {
		return
	}
	engine := g.mix.Engine()
	duration := g.durationFrames()

	baseY := rect.Max.Y - 4
	ebitenutil.DrawRect(screen, float64(plot.Min.X), float64(baseY), float64(plot.Dx()), 1, borderColor)

	for sec := 0; sec*engine.FPS() <= duration; sec++ {
		x := g.xAtFrame(sec*engine.FPS(), plot)
		ebitenutil.DrawRect(screen, float64(x), float64(baseY-6), 1, 6, tickColor)
	}

	clock, ok := g.mix.BeatClock()
	if !ok {
		return
	}
	it := clock.Beats(0, duration)
	for {
		b, ok := it.Next()
		if !ok {
			return
		}
		x := g.xAtFrame(b.Frame, plot)
		tickH := 8
		if b.Index%4 == 0 {
			tickH = 14
		}
		ebitenutil.DrawRect(screen, float64(x), float64(baseY-tickH), 1, float64(tickH), beatColor)
	}
}

func (g *game) drawStatus(screen *ebiten.Image, rect image.Rectangle) {
	msg := g.status
	if g.statusErr {
		msg = "ERROR " + msg
	}
	g.drawText(screen, shortenEnd(msg, rect.Dx()/charW), rect.Min.X, rect.Min.Y)

	hint := "space play  arrows scrub  pgup/pgdn 1s  home/end  r reload"
	g.drawText(screen, hint, rect.Min.X, rect.Min.Y+lineH+4)
}

func (g *game) setError(msg string) {
	g.status = msg
	g.statusErr = true
}

func (g *game) setStatus(msg string) {
	g.status = msg
	g.statusErr = false
}

func kindColor(kind audiomix.TrackKind) color.RGBA {
	switch kind {
	case audiomix.KindNarration:
		return narrationColor
	case audiomix.KindSFX:
		return sfxColor
	}
	return musicColor
}

func drawPanel(screen *ebiten.Image, rect image.Rectangle) {
	ebitenutil.DrawRect(screen, float64(rect.Min.X), float64(rect.Min.Y), float64(rect.Dx()), float64(rect.Dy()), panelColor)
	x := float64(rect.Min.X)
	y := float64(rect.Min.Y)
	w := float64(rect.Dx())
	h := float64(rect.Dy())
	ebitenutil.DrawRect(screen, x, y, w, 1, borderColor)
	ebitenutil.DrawRect(screen, x, y+h-1, w, 1, borderColor)
	ebitenutil.DrawRect(screen, x, y, 1, h, borderColor)
	ebitenutil.DrawRect(screen, x+w-1, y, 1, h, borderColor)
}

func (g *game) drawText(screen *ebiten.Image, msg string, x, y int) {
	if msg == "" {
		return
	}
	img := g.textCache[msg]
	if img == nil {
		w := len([]rune(msg)) * 7
		if w < 1 {
			w = 1
		}
		img = ebiten.NewImage(w, 14)
		ebitenutil.DebugPrintAt(img, msg, 0, 0)
		if len(g.textCache) > 3000 {
			g.textCache = make(map[string]*ebiten.Image, 256)
		}
		g.textCache[msg] = img
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(textScale, textScale)
	op.GeoM.Translate(float64(x), float64(y))
	screen.DrawImage(img, op)
}

func shortenEnd(s string, maxChars int) string {
	r := []rune(s)
	if len(r) <= maxChars {
		return s
	}
	if maxChars <= 3 {
		if maxChars < 0 {
			maxChars = 0
		}
		return string(r[:maxChars])
	}
	return string(r[:maxChars-3]) + "..."
}

func clamp(v, minV, maxV float64) float64 {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}

func main() {
	path := "mix.json"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		log.Fatalf("resolve %q: %v", path, err)
	}
	m, err := audiomix.LoadMixFile(abs)
	if err != nil {
		log.Fatal(err)
	}

	reloads := make(chan reloadMsg, 16)
	go watchMix(abs, reloads)

	g := newGame(abs, m, reloads)
	defer g.Close()

	ebiten.SetWindowSize(windowW, windowH)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSizeLimits(minWindowW, minWindowH, -1, -1)
	ebiten.SetWindowTitle("automix scope")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
