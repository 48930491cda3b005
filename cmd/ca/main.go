//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"strings"

	"excitable-cells/internal/app"
	"excitable-cells/internal/core"
	_ "excitable-cells/internal/sims/excitable"

	"github.com/hajimehoshi/ebiten/v2"
)

type preferredTPS interface {
	TPS() int
}

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	factory, ok := core.Sims()[cfg.Sim]
	if !ok {
		log.Fatalf("unknown sim %q (available: %s)", cfg.Sim, strings.Join(core.Names(), ", "))
	}

	sim, err := factory(cfg.SimConfig())
	if err != nil {
		log.Fatalf("create %s: %v", cfg.Sim, err)
	}

	tps := cfg.TPS
	if p, ok := sim.(preferredTPS); ok && tps <= 0 {
		tps = p.TPS()
	}
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}

	game := app.New(sim, cfg.Scale, cfg.HUDWidth, cfg.Seed)
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle("excitable-cells: " + cfg.Scenario)
	ebiten.SetTPS(tps)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
