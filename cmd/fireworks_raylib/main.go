// cmd/fireworks_raylib/main.go
package main

import (
	"flag"
	"log"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"go-fireworks/internal/app"
	"go-fireworks/internal/config"
	"go-fireworks/internal/defs"
	"go-fireworks/internal/event"
	"go-fireworks/internal/host"
	"go-fireworks/internal/ui"
	"go-fireworks/pkg/render/raylibr"
)

var shapeKeys = []int32{rl.KeyOne, rl.KeyTwo, rl.KeyThree, rl.KeyFour, rl.KeyFive, rl.KeySix}

func main() {
	configPath := flag.String("config", "", "path to show config (json)")
	seed := flag.Int64("seed", 0, "random seed, 0 for time-based")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(config.ScreenWidth, config.ScreenHeight, "Fireworks (raylib)")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.TargetFPS))

	engine, err := app.NewEngine(config.ScreenWidth, config.ScreenHeight, cfg, defs.DefaultThemes(), *seed)
	if err != nil {
		log.Fatal(err)
	}
	event.SubscribeLog(engine.EventDispatcher)
	readout := host.NewReadout(cfg.TargetFPS)
	show := host.NewLocalShow(engine, readout)
	defer show.Close()

	screen := raylibr.New()
	scene, err := screen.NewLayer(config.ScreenWidth, config.ScreenHeight)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { scene.Dispose() }()
	indicator := ui.NewQualityIndicatorRL(18, 18, 6)
	paused, hudVisible := false, true

	for !rl.WindowShouldClose() {
		if rl.IsWindowResized() {
			w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
			scene.Dispose()
			if scene, err = screen.NewLayer(w, h); err != nil {
				log.Fatal(err)
			}
			show.Resize(float64(w), float64(h))
		}

		if rl.IsKeyPressed(rl.KeyP) || rl.IsKeyPressed(rl.KeyF9) {
			paused = !paused
			readout.Paused = paused
		}
		if rl.IsKeyPressed(rl.KeyH) {
			hudVisible = !hudVisible
		}
		if !paused {
			handleInput(show)
		}

		dt := float64(rl.GetFrameTime())
		if dt > config.MaxDeltaTime {
			dt = config.MaxDeltaTime
		}

		rl.BeginDrawing()
		screen.Begin()
		if !paused {
			show.Frame(dt)
			show.Draw(scene, dt)
		}
		rl.ClearBackground(rl.Black)
		screen.DrawLayer(scene, 1)
		if hudVisible {
			drawHUD(indicator, readout)
		}
		rl.EndDrawing()
	}
}

func handleInput(show host.Show) {
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		pos := rl.GetMousePosition()
		show.Spawn(float64(pos.X), float64(pos.Y))
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		log.Printf("theme: %s", show.NextTheme())
	}
	for i, key := range shapeKeys {
		if !rl.IsKeyPressed(key) {
			continue
		}
		if shape, ok := defs.ShapeForKey(i + 1); ok {
			if err := show.SetShape(shape.String()); err != nil {
				log.Printf("failed to set shape: %v", err)
			}
		}
	}
}

func drawHUD(indicator *ui.QualityIndicatorRL, readout *host.Readout) {
	lines := readout.Lines()
	rl.DrawRectangle(6, 6, 300, int32(len(lines)*18+12), rl.NewColor(0, 0, 0, 140))
	indicator.Draw(readout.StateColor(), readout.SinceChange())
	for i, line := range lines {
		rl.DrawText(line, 32, int32(10+i*18), 16, rl.White)
	}
}
