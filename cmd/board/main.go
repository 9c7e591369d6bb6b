package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/tactics-board/internal/board"
	"github.com/Garsondee/tactics-board/internal/config"
	"github.com/Garsondee/tactics-board/internal/formation"
	"github.com/Garsondee/tactics-board/internal/share"
)

func main() {
	var cfgPath, shareAddr string
	flag.StringVar(&cfgPath, "config", "", "optional YAML config file")
	flag.StringVar(&shareAddr, "share", "", "serve a live read-only mirror on this address (overrides BOARD_SHARE_ADDR)")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if shareAddr != "" {
		cfg.ShareAddr = shareAddr
	}

	store := formation.NewStore(
		formation.WithPreset(cfg.Preset),
		formation.WithDrawColor(cfg.Draw.Palette[0]),
	)
	lib := formation.NewLibrary(cfg.DataDir)
	g := board.New(cfg, store, lib)
	defer g.Close()

	if cfg.ShareAddr != "" {
		hub := share.NewHub(nil)
		detach := hub.Attach(store)
		defer detach()
		if _, err := hub.Start(cfg.ShareAddr); err != nil {
			log.Fatalf("share: %v", err)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := hub.Shutdown(ctx); err != nil {
				log.Printf("share shutdown: %v", err)
			}
		}()
	}

	ebiten.SetWindowTitle("Tactics Board")
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
