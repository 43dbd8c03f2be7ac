package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	flag.Parse()

	if *recordDefaultPGO {
		stop, err := startDefaultPGORecording("default.pgo")
		if err != nil {
			log.Fatalf("starting PGO capture: %v", err)
		}
		defer stop()
	}

	g, err := newGame()
	if err != nil {
		log.Fatalf("initializing water engine: %v", err)
	}

	ebiten.SetWindowSize(g.n*windowScale, g.n*windowScale)
	ebiten.SetWindowTitle("Ripple Pool")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
