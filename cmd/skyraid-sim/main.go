package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/milk9111/skyraid/game"
	"github.com/milk9111/skyraid/hud"
	"github.com/milk9111/skyraid/persist"
	"github.com/milk9111/skyraid/prefabs"
)

func main() {
	shipName := flag.String("ship", "", "ship to fly (defaults to the catalog default)")
	stage := flag.Int("stage", 0, "stage index to start from")
	seed := flag.Int64("seed", 1, "random seed")
	step := flag.Float64("dt", 1.0/60, "simulation step in seconds")
	limit := flag.Duration("limit", 10*time.Minute, "simulated time before giving up")
	savePath := flag.String("save", "", "progress file (in memory when empty)")
	contentDir := flag.String("content", "prefabs", "directory checked for content overrides")
	watch := flag.Bool("watch", false, "reload content from -content while running")
	feedAddr := flag.String("feed", "", "serve a websocket spectator feed on this address, e.g. :8080")
	realtime := flag.Bool("realtime", false, "pace the simulation to wall-clock time")
	flag.Parse()

	log.SetPrefix("sim: ")
	prefabs.SetDir(*contentDir)
	content, err := prefabs.LoadContent()
	if err != nil {
		log.Fatal(err)
	}

	var store persist.Store = &persist.MemoryStore{}
	if *savePath != "" {
		store = persist.NewFileStore(*savePath)
	}

	state := hud.NewState()
	notifier := hud.Fanout{state}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var srv *http.Server
	if *feedAddr != "" {
		feed := hud.NewFeed()
		defer feed.Close()
		notifier = append(notifier, feed)

		mux := http.NewServeMux()
		mux.Handle("/feed", feed)
		srv = &http.Server{Addr: *feedAddr, Handler: mux}
		go func() {
			log.Printf("spectator feed on ws://%s/feed", *feedAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("feed server: %v", err)
			}
		}()
	}

	session, err := game.NewSession(content, game.Options{
		Ship:       *shipName,
		StartStage: *stage,
		Seed:       *seed,
		Store:      store,
		Notifier:   notifier,
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

	elapsed := run(ctx, session, *step, limit.Seconds(), *realtime)

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}

	s := state.Snapshot()
	fmt.Printf("result=%s stage=%d wave=%d score=%d high=%d lives=%d time=%.1fs\n",
		s.Phase, s.Stage+1, s.Wave+1, s.Score, s.HighScore, s.Lives, elapsed)
}

// run flies the autopilot until the session ends, the limit passes or ctx
// is cancelled, and returns the simulated seconds.
func run(ctx context.Context, session *game.Session, dt, limit float64, realtime bool) float64 {
	pilot := game.Autopilot{}
	session.Start()

	var pace <-chan time.Time
	if realtime {
		ticker := time.NewTicker(time.Duration(dt * float64(time.Second)))
		defer ticker.Stop()
		pace = ticker.C
	}

	elapsed := 0.0
	for !session.Over() && elapsed < limit {
		if pace != nil {
			select {
			case <-ctx.Done():
				return elapsed
			case <-pace:
			}
		} else if ctx.Err() != nil {
			return elapsed
		}
		session.SetInput(pilot.Input(session))
		session.Tick(dt)
		elapsed += dt
	}
	if !session.Over() {
		log.Printf("stopped after %.0fs without finishing", elapsed)
	}
	return elapsed
}
