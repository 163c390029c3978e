// Command subterm runs the submarine demo in a terminal.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"os"
	"time"

	"subsim/internal/core"
	"subsim/internal/logging"
	"subsim/internal/sims/submarine"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
)

const frameInterval = 16 * time.Millisecond

type viewer struct {
	screen tcell.Screen
	sim    *submarine.Sim
	clock  *core.FixedStep
	styles []tcell.Style

	seed      int64
	paused    bool
	stepOnce  bool
	lastEvent string
}

func main() {
	cfg := submarine.DefaultConfig()
	cfg.Bind(flag.CommandLine)
	tps := flag.Int("tps", 30, "ticks per second")
	logFile := flag.String("log", "", "write logs to this file; the terminal is busy drawing")
	flag.Parse()

	out, err := logOutput(*logFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logging.InitWith(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"), out)
	log := logging.Component("subterm")

	screen, err := tcell.NewScreen()
	if err != nil {
		log.WithError(err).Fatal("creating screen")
	}
	if err := screen.Init(); err != nil {
		log.WithError(err).Fatal("initialising screen")
	}
	screen.EnableMouse()
	defer screen.Fini()

	v := &viewer{
		screen: screen,
		sim:    submarine.NewWithConfig(cfg),
		clock:  core.NewFixedStep(*tps),
		seed:   cfg.Seed,
	}
	v.styles = paletteStyles(v.sim.Palette())
	log.WithFields(logrus.Fields{"hull_w": cfg.HullWidth, "hull_h": cfg.HullHeight, "tps": *tps}).Info("starting")
	v.run()
}

func logOutput(path string) (*os.File, error) {
	if path == "" {
		return os.Stderr, nil
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

func paletteStyles(palette []color.RGBA) []tcell.Style {
	out := make([]tcell.Style, len(palette))
	for i, c := range palette {
		out[i] = tcell.StyleDefault.Background(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
	}
	return out
}

func (v *viewer) run() {
	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	for {
		select {
		case ev := <-events:
			if !v.handle(ev) {
				return
			}
		case <-ticker.C:
			for v.clock.ShouldStep() {
				if v.paused && !v.stepOnce {
					continue
				}
				v.stepOnce = false
				v.step()
			}
			v.draw()
		}
	}
}

func (v *viewer) step() {
	v.sim.Step()
	for _, ev := range v.sim.Events() {
		switch e := ev.(type) {
		case submarine.SubmarineEvent:
			v.lastEvent = fmt.Sprintf("sub %d %s", e.Submarine, e.Kind)
		case submarine.SubmarineCreated:
			v.lastEvent = fmt.Sprintf("sub %d created", e.Submarine)
		case submarine.GameStateReset:
			v.lastEvent = "reset"
		}
	}
}

// handle reacts to input and reports whether the viewer should keep running.
func (v *viewer) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		v.screen.Sync()
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				v.paused = !v.paused
			case 'n':
				v.stepOnce = true
			case 'r':
				v.sim.Reset(v.seed)
			case 'w':
				v.toggle("water")
			case 'g':
				v.toggle("gravity")
			case 's':
				v.toggle("sonar")
			}
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		cx, cy := x/2, y
		switch ev.Buttons() {
		case tcell.Button1:
			v.sim.Click(cx, cy)
		case tcell.Button2:
			v.sim.PourWater(cx, cy)
		case tcell.Button3:
			v.sim.ToggleWall(cx, cy)
		}
	}
	return true
}

func (v *viewer) toggle(key string) {
	for _, g := range v.sim.Parameters().Groups {
		for _, p := range g.Params {
			if p.Key == key {
				v.sim.SetBoolParameter(key, p.Value != "true")
				return
			}
		}
	}
}

func (v *viewer) draw() {
	v.screen.Clear()
	size := v.sim.Size()
	cells := v.sim.Cells()
	last := len(v.styles) - 1
	for y := 0; y < size.H; y++ {
		for x := 0; x < size.W; x++ {
			style := v.styles[min(int(cells[y*size.W+x]), last)]
			v.screen.SetContent(2*x, y, ' ', nil, style)
			v.screen.SetContent(2*x+1, y, ' ', nil, style)
		}
	}
	v.status(size.H)
	v.screen.Show()
}

func (v *viewer) status(row int) {
	w := v.sim.World()
	line := fmt.Sprintf("tick %d", w.Tick)
	if len(w.Submarines) > 0 {
		n := w.Submarines[0].Nav
		line += fmt.Sprintf("  pos %d,%d  speed %d,%d  sonar %d",
			n.Position.X, n.Position.Y, n.Speed.X, n.Speed.Y, len(w.Submarines[0].Sonar.Visible))
	}
	if v.paused {
		line += "  [paused]"
	}
	if v.lastEvent != "" {
		line += "  " + v.lastEvent
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorSilver)
	for i, r := range line {
		v.screen.SetContent(i, row+1, r, nil, style)
	}
	help := "space pause  n step  r reset  w/g/s toggles  click interact  right-click wall  q quit"
	for i, r := range help {
		v.screen.SetContent(i, row+2, r, nil, style.Dim(true))
	}
}
