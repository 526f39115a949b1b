package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/smasonuk/orbit3d"
	"github.com/smasonuk/orbit3d/ebitenbackend"
)

func main() {
	var configPath string
	var noFPS bool
	flag.StringVar(&configPath, "config", "", "Path to YAML config file")
	flag.BoolVar(&noFPS, "nofps", false, "Hide the FPS overlay")
	flag.Parse()

	cfg := orbit3d.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = orbit3d.LoadConfig(configPath); err != nil {
			log.Fatal(err)
		}
	}

	w, h := cfg.Window.Width, cfg.Window.Height
	backend := ebitenbackend.New(w, h)

	log.Println("Initializing scene...")
	scene, err := orbit3d.NewScene(backend, cfg)
	if err != nil {
		log.Fatal(err)
	}
	log.Println("Initialization Complete.")

	game := ebitenbackend.NewGame(scene, backend, w, h)
	game.ShowFPS = !noFPS

	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
