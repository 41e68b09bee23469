package main

import (
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/skyraid/game"
	"github.com/milk9111/skyraid/hud"
	"github.com/milk9111/skyraid/persist"
	"github.com/milk9111/skyraid/prefabs"
)

func main() {
	shipName := flag.String("ship", "", "ship to fly (defaults to the catalog default)")
	stage := flag.Int("stage", 0, "stage index to start from")
	resume := flag.Bool("continue", false, "resume the saved run")
	savePath := flag.String("save", "skyraid_save.yaml", "progress file")
	contentDir := flag.String("content", "prefabs", "directory checked for content overrides")
	watch := flag.Bool("watch", false, "reload content from -content while running")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	prefabs.SetDir(*contentDir)
	content, err := prefabs.LoadContent()
	if err != nil {
		log.Fatal(err)
	}
	for _, problem := range content.Validate() {
		log.Printf("content: %v", problem)
	}

	state := hud.NewState()
	session, err := game.NewSession(content, game.Options{
		Ship:       *shipName,
		StartStage: *stage,
		Continue:   *resume,
		Seed:       *seed,
		Store:      persist.NewFileStore(*savePath),
		Notifier:   state,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer session.Close()

	if *watch {
		if err := session.WatchContent(*contentDir); err != nil {
			log.Printf("watch %s: %v", *contentDir, err)
		}
	}
	session.Start()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("skyraid")

	if err := ebiten.RunGame(NewGame(session, state)); err != nil {
		log.Fatal(err)
	}
}
