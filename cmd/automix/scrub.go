package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	audiomix "github.com/eohjun/remotion-studio-sub002"
	"github.com/eohjun/remotion-studio-sub002/internal/cli"
)

// scrubModel is the Bubbletea model for the frame scrubber: a cursor
// over the timeline with live gain meters at the cursor frame.
type scrubModel struct {
	mix   *audiomix.Mix
	frame int
	width int
}

func newScrubModel(m *audiomix.Mix) scrubModel {
	return scrubModel{mix: m}
}

func (m scrubModel) Init() tea.Cmd {
	return nil
}

func (m scrubModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		fps := m.mix.Engine().FPS()
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			m.frame--
		case "right", "l":
			m.frame++
		case "pgup":
			m.frame -= fps
		case "pgdown":
			m.frame += fps
		case "home", "g":
			m.frame = 0
		case "end", "G":
			m.frame = m.mix.DurationFrames()
		}
		if m.frame < 0 {
			m.frame = 0
		}
		if last := m.mix.DurationFrames(); m.frame > last {
			m.frame = last
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

func (m scrubModel) View() string {
	var sb strings.Builder
	engine := m.mix.Engine()

	sb.WriteString(cli.TitleStyle.Render("automix scrub"))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("%s %s   %s %s\n",
		cli.KeyStyle.Render("Frame:"),
		cli.ValueStyle.Render(fmt.Sprintf("%d / %d", m.frame, m.mix.DurationFrames())),
		cli.KeyStyle.Render("Time:"),
		cli.ValueStyle.Render(fmt.Sprintf("%.2fs", engine.FramesToSeconds(m.frame)))))

	if clock, ok := m.mix.BeatClock(); ok {
		info := clock.InfoAt(m.frame)
		line := fmt.Sprintf("beat %d at %.0f%%", info.Number, info.Progress*100)
		if info.OnBeat {
			sb.WriteString(cli.BeatStyle.Render("● " + line))
		} else {
			sb.WriteString(cli.MutedStyle.Render("  " + line))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	for i, tr := range m.mix.Tracks() {
		gain := m.mix.GainAt(i, m.frame)
		sb.WriteString(fmt.Sprintf("%12s %s %s\n",
			tr.Name, cli.Meter(gain, 30), cli.FormatGain(gain)))
	}
	duck := m.mix.DuckAmountAt(m.frame)
	sb.WriteString(fmt.Sprintf("%12s %s %s\n",
		"duck", cli.Meter(duck, 30), cli.FormatGain(duck)))

	sb.WriteString("\n")
	sb.WriteString(cli.MutedStyle.Render("left/right step 1  pgup/pgdn step 1s  home/end jump  q quit"))
	sb.WriteString("\n")
	return sb.String()
}
