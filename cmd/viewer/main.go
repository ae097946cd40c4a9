//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"arbor/internal/app"
	"arbor/internal/logging"
	"arbor/internal/variants"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	logger := logging.New(level)

	src, err := cfg.Source()
	if err != nil {
		log.Fatal(err)
	}
	v, err := variants.Open(src)
	if err != nil {
		log.Fatal(err)
	}

	game := app.New(v, cfg, logger)

	ebiten.SetWindowTitle("arbor: " + v.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(cfg.Size+cfg.Panel, cfg.Size)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
