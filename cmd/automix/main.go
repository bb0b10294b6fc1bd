package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"

	audiomix "github.com/eohjun/remotion-studio-sub002"
	"github.com/eohjun/remotion-studio-sub002/internal/cli"
)

var version = "0.1.0"

// CLI defines the command-line interface.
type CLI struct {
	Mix     string           `short:"m" type:"existingfile" default:"mix.json" help:"Path to the mix document"`
	Version kong.VersionFlag `short:"v" help:"Show version information"`

	Gains  GainsCmd  `cmd:"" help:"Print per-track gains over a frame range"`
	Beats  BeatsCmd  `cmd:"" help:"Enumerate beat frames up to a horizon"`
	Render RenderCmd `cmd:"" help:"Render the monitoring mix to a WAV file"`
	Scrub  ScrubCmd  `cmd:"" help:"Scrub the timeline interactively"`
}

func main() {
	cliArgs := &CLI{}
	ctx := kong.Parse(cliArgs,
		kong.Name("automix"),
		kong.Description("Frame-indexed audio automation for video compositions"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)
	if err := ctx.Run(cliArgs); err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}
}

// GainsCmd prints a gain table: one row per frame, one column per
// track, plus the duck amount and a beat marker.
type GainsCmd struct {
	From int `default:"0" help:"First frame"`
	To   int `default:"-1" help:"Last frame (default: mix duration)"`
	Step int `default:"1" help:"Frame step"`
}

func (c *GainsCmd) Run(root *CLI) error {
	m, err := audiomix.LoadMixFile(root.Mix)
	if err != nil {
		return err
	}
	if c.Step <= 0 {
		return errors.New("step must be positive")
	}
	to := c.To
	if to < 0 {
		to = m.DurationFrames()
	}
	tracks := m.Tracks()
	clock, hasClock := m.BeatClock()

	fmt.Println(cli.TitleStyle.Render("automix gains"))
	header := []string{fmt.Sprintf("%7s", "frame")}
	for _, tr := range tracks {
		header = append(header, fmt.Sprintf("%10s", tr.Name))
	}
	header = append(header, fmt.Sprintf("%6s", "duck"))
	if hasClock {
		header = append(header, fmt.Sprintf("%5s", "beat"))
	}
	fmt.Println(cli.KeyStyle.Render(strings.Join(header, " ")))

	for frame := c.From; frame <= to; frame += c.Step {
		row := []string{fmt.Sprintf("%7d", frame)}
		for i := range tracks {
			row = append(row, fmt.Sprintf("%10s", cli.FormatGain(m.GainAt(i, frame))))
		}
		row = append(row, fmt.Sprintf("%6s", cli.FormatGain(m.DuckAmountAt(frame))))
		line := strings.Join(row, " ")
		if hasClock {
			info := clock.InfoAt(frame)
			if info.OnBeat {
				line += " " + cli.BeatStyle.Render(fmt.Sprintf("%5d", info.Number))
			}
		}
		fmt.Println(line)
	}
	return nil
}

// BeatsCmd lists the beats of the mix's tempo grid.
type BeatsCmd struct {
	From int `default:"0" help:"First frame"`
	To   int `default:"-1" help:"Horizon frame (default: mix duration)"`
}

func (c *BeatsCmd) Run(root *CLI) error {
	m, err := audiomix.LoadMixFile(root.Mix)
	if err != nil {
		return err
	}
	clock, ok := m.BeatClock()
	if !ok {
		return errors.New("mix document declares no tempo")
	}
	to := c.To
	if to < 0 {
		to = m.DurationFrames()
	}
	engine := m.Engine()

	fmt.Println(cli.TitleStyle.Render("automix beats"))
	fmt.Println(cli.KeyStyle.Render(fmt.Sprintf("%6s %8s %9s", "beat", "frame", "seconds")))
	it := clock.Beats(c.From, to)
	for {
		b, ok := it.Next()
		if !ok {
			break
		}
		fmt.Printf("%6d %8d %9.3f\n", b.Index, b.Frame, engine.FramesToSeconds(b.Frame))
	}
	return nil
}

// RenderCmd writes the monitoring mix as a mono float32 WAV.
type RenderCmd struct {
	Out  string `short:"o" default:"mix.wav" help:"Output WAV path"`
	Rate int    `default:"44100" help:"Sample rate in Hz"`
}

func (c *RenderCmd) Run(root *CLI) error {
	m, err := audiomix.LoadMixFile(root.Mix)
	if err != nil {
		return err
	}
	if err := audiomix.WriteWAVFile(c.Out, m, c.Rate); err != nil {
		return err
	}
	seconds := m.Engine().FramesToSeconds(m.DurationFrames())
	fmt.Printf("%s %s\n", cli.KeyStyle.Render("Wrote:"), cli.ValueStyle.Render(c.Out))
	fmt.Printf("%s %s\n", cli.KeyStyle.Render("Length:"),
		cli.ValueStyle.Render(fmt.Sprintf("%.2fs at %d Hz", seconds, c.Rate)))
	return nil
}

// ScrubCmd opens the interactive frame scrubber.
type ScrubCmd struct{}

func (c *ScrubCmd) Run(root *CLI) error {
	m, err := audiomix.LoadMixFile(root.Mix)
	if err != nil {
		return err
	}
	p := tea.NewProgram(newScrubModel(m), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
