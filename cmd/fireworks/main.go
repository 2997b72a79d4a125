// cmd/fireworks/main.go
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	_ "net/http/pprof"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"go-fireworks/internal/app"
	"go-fireworks/internal/bridge"
	"go-fireworks/internal/config"
	"go-fireworks/internal/defs"
	"go-fireworks/internal/event"
	"go-fireworks/internal/host"
	"go-fireworks/internal/remote"
	"go-fireworks/internal/state"
	"go-fireworks/internal/ui"
)

type AppGame struct {
	stateMachine   *state.StateMachine
	lastUpdateTime time.Time
}

func (a *AppGame) Update() error {
	now := time.Now()
	deltaTime := now.Sub(a.lastUpdateTime).Seconds()
	if deltaTime > config.MaxDeltaTime {
		deltaTime = config.MaxDeltaTime
	}
	a.lastUpdateTime = now
	a.stateMachine.Update(deltaTime)
	return nil
}

func (a *AppGame) Draw(screen *ebiten.Image) {
	a.stateMachine.Draw(screen)
}

// Layout: холст шоу следует за окном
func (a *AppGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.stateMachine.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func main() {
	configPath := flag.String("config", "", "path to show config (json)")
	themesPath := flag.String("themes", "", "path to theme catalog (json)")
	useWorker := flag.Bool("worker", false, "run the engine on a worker goroutine")
	listen := flag.String("listen", "", "websocket control address, implies -worker")
	pprofAddr := flag.String("pprof", "localhost:6060", "pprof address, empty to disable")
	seed := flag.Int64("seed", 0, "random seed, 0 for time-based")
	flag.Parse()

	if *pprofAddr != "" {
		go func() {
			log.Println(http.ListenAndServe(*pprofAddr, nil))
		}()
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
	}
	themes := defs.DefaultThemes()
	if *themesPath != "" {
		loaded, err := defs.LoadThemes(*themesPath)
		if err != nil {
			log.Fatal(err)
		}
		themes = loaded
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	width, height := float64(config.ScreenWidth), float64(config.ScreenHeight)
	readout := host.NewReadout(cfg.TargetFPS)

	var show host.Show
	if *useWorker || *listen != "" {
		worker := bridge.NewWorker(cfg, themes, true)
		ws, err := host.StartWorkerShow(ctx, worker, width, height, *seed, cfg, themes, readout)
		if err != nil {
			log.Fatal(err)
		}
		if *listen != "" {
			srv := remote.NewServer(worker)
			ws.Tap = srv.Broadcast
			go func() {
				if err := srv.ListenAndServe(ctx, *listen); err != nil {
					log.Printf("remote control stopped: %v", err)
				}
			}()
		}
		show = ws
	} else {
		engine, err := app.NewEngine(width, height, cfg, themes, *seed)
		if err != nil {
			log.Fatal(err)
		}
		event.SubscribeLog(engine.EventDispatcher)
		show = host.NewLocalShow(engine, readout)
	}
	defer show.Close()

	hud, err := ui.NewHUD(10, 10, readout)
	if err != nil {
		log.Fatal(err)
	}

	sm := state.NewStateMachine(config.ScreenWidth, config.ScreenHeight)
	sm.SetState(state.NewShowState(sm, show, hud))
	game := &AppGame{
		stateMachine:   sm,
		lastUpdateTime: time.Now(),
	}
	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("Fireworks")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TargetFPS)
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
