// Command subsweep measures how sealed hulls of different sizes and flood
// levels drift over a fixed number of ticks.
package main

import (
	"flag"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"subsim/internal/core"
	"subsim/internal/logging"
	"subsim/internal/sims/submarine"

	"github.com/sirupsen/logrus"
)

type scenario struct {
	width  int
	height int
	flood  int // percent of interior rows filled from the bottom
}

func (s scenario) String() string {
	return fmt.Sprintf("%dx%d flood=%d%%", s.width, s.height, s.flood)
}

type scenarioResult struct {
	scenario
	accel     int32
	drift     int32
	peakSpeed int32
	firstHit  int
	contacts  int
}

func main() {
	steps := flag.Int("steps", 600, "ticks to simulate per scenario")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	random := flag.Int("random", 0, "extra scenarios with random sizes")
	seed := flag.Int64("seed", 1, "seed for the random scenarios")
	flag.Parse()
	logging.Init()
	log := logging.Component("subsweep")

	var sets []scenario
	for _, size := range []int{24, 48, 72, 102} {
		for _, flood := range []int{0, 25, 50, 75} {
			sets = append(sets, scenario{width: size, height: size, flood: flood})
		}
	}
	rng := core.NewRNG(*seed)
	for i := 0; i < *random; i++ {
		sets = append(sets, scenario{
			width:  24 + rng.IntN(96),
			height: 10 + rng.IntN(96),
			flood:  rng.IntN(101),
		})
	}

	log.WithFields(logrus.Fields{"scenarios": len(sets), "workers": *workers, "steps": *steps}).Info("sweeping")

	jobs := make(chan scenario)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sc := range jobs {
				results <- runScenario(sc, *steps)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, sc := range sets {
			jobs <- sc
		}
		close(jobs)
	}()

	start := time.Now()
	var all []scenarioResult
	for res := range results {
		all = append(all, res)
		log.WithFields(logrus.Fields{
			"scenario": res.scenario.String(),
			"drift":    res.drift,
			"hit":      res.firstHit,
		}).Debug("scenario done")
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].drift != all[j].drift {
			return all[i].drift < all[j].drift
		}
		return all[i].scenario.String() < all[j].scenario.String()
	})

	fmt.Printf("%-22s %8s %10s %8s %8s %8s\n", "scenario", "accel", "drift", "peak", "hit", "contacts")
	for _, r := range all {
		hit := "-"
		if r.firstHit >= 0 {
			hit = fmt.Sprint(r.firstHit)
		}
		fmt.Printf("%-22s %8d %10d %8d %8s %8d\n", r.scenario, r.accel, r.drift, r.peakSpeed, hit, r.contacts)
	}
	log.WithField("elapsed", time.Since(start).Round(time.Millisecond)).Info("sweep complete")
}

// runScenario drops one flooded hull into an open rock world with a floor far
// below and follows it. Negative drift means the hull rose.
func runScenario(sc scenario, steps int) scenarioResult {
	res := scenarioResult{scenario: sc, firstHit: -1}

	tpl := submarine.HullTemplate(sc.width, sc.height)
	rows := (sc.height - 2) * sc.flood / 100
	for y := sc.height - 1 - rows; y < sc.height-1; y++ {
		for x := 1; x < sc.width-1; x++ {
			tpl.WaterCells[y*sc.width+x] = submarine.TemplateWater
		}
	}

	w := submarine.NewWorld(submarine.DemoRock(64, 64, 0, 0))
	events := w.Advance([]submarine.Command{submarine.CreateSubmarine{Template: tpl, RockX: 20, RockY: 20}})
	if len(events) == 0 || len(w.Submarines) == 0 {
		logging.Component("subsweep").WithField("scenario", sc.String()).Warn("template rejected")
		return res
	}
	sub := w.Submarines[0]
	start := sub.Nav.Position.Y
	res.accel = sub.Nav.Acceleration.Y

	for i := 0; i < steps; i++ {
		w.Advance(nil)
		speed := sub.Nav.Speed.Y
		if speed < 0 {
			speed = -speed
		}
		res.peakSpeed = max(res.peakSpeed, speed)
		if len(sub.Collisions) > 0 {
			res.contacts++
			if res.firstHit < 0 {
				res.firstHit = i
			}
		}
	}
	res.drift = sub.Nav.Position.Y - start
	return res
}
