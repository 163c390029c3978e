//go:build ebiten

package main

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"subsim/internal/app"
	"subsim/internal/core"
	"subsim/internal/logging"
	_ "subsim/internal/sims/submarine"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	params := map[string]string{}
	flag.Func("p", "simulation parameter as key=value, repeatable", func(s string) error {
		k, v, ok := strings.Cut(s, "=")
		if !ok {
			return fmt.Errorf("want key=value, got %q", s)
		}
		params[k] = v
		return nil
	})
	flag.Parse()
	logging.Init()
	log := logging.Component("viewer")

	factory, ok := core.Sims()[cfg.Sim]
	if !ok {
		log.Fatalf("unknown sim %q", cfg.Sim)
	}

	sim := factory(params)
	sim.Reset(cfg.Seed)

	game := app.New(sim, cfg)
	size := sim.Size()
	log.WithFields(logrus.Fields{"sim": sim.Name(), "w": size.W, "h": size.H, "tps": cfg.TPS}).Info("starting viewer")

	ebiten.SetWindowTitle("subsim: " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*cfg.Scale+max(cfg.HUDWidth, 0), size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
