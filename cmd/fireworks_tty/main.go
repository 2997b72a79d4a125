// cmd/fireworks_tty/main.go
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"go-fireworks/internal/app"
	"go-fireworks/internal/config"
	"go-fireworks/internal/defs"
	"go-fireworks/internal/event"
	"go-fireworks/internal/host"
	"go-fireworks/pkg/render/tcellr"
)

// cellScale: сколько пикселей движка в одной ячейке по горизонтали
const cellScale = 6

type terminalShow struct {
	screen  tcell.Screen
	canvas  *tcellr.Canvas
	show    host.Show
	readout *host.Readout
	paused  bool
}

func main() {
	configPath := flag.String("config", "", "path to show config (json)")
	logPath := flag.String("log", "", "log file, the terminal is busy with the show")
	seed := flag.Int64("seed", 0, "random seed, 0 for time-based")
	flag.Parse()

	log.SetOutput(io.Discard)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	// в терминале слоёв нет, а мелкие детали всё равно не видны
	cfg.EnableGlow = false
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()
	screen.EnableMouse()

	cols, rows := screen.Size()
	canvas := tcellr.New(cols, rows, cellScale)
	w, h := canvas.Size()
	engine, err := app.NewEngine(float64(w), float64(h), cfg, defs.DefaultThemes(), *seed)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Failed to start engine: %v\n", err)
		os.Exit(1)
	}
	event.SubscribeLog(engine.EventDispatcher)
	readout := host.NewReadout(cfg.TargetFPS)
	t := &terminalShow{
		screen:  screen,
		canvas:  canvas,
		show:    host.NewLocalShow(engine, readout),
		readout: readout,
	}
	defer t.show.Close()
	t.run(cfg.TargetFPS)
}

func (t *terminalShow) run(fps int) {
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	last := time.Now()
	for {
		select {
		case ev := <-eventChan:
			if !t.handleInput(ev) {
				return
			}
		case now := <-ticker.C:
			dt := min(now.Sub(last).Seconds(), config.MaxDeltaTime)
			last = now
			if t.paused {
				continue
			}
			t.show.Frame(dt)
			t.show.Draw(t.canvas, dt)
			t.canvas.Present(t.screen)
			t.drawStatus()
			t.screen.Show()
		}
	}
}

func (t *terminalShow) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyF9:
			t.togglePause()
		case tcell.KeyRune:
			switch r := ev.Rune(); {
			case r == 'q':
				return false
			case r == 'p':
				t.togglePause()
			case r == ' ':
				log.Printf("theme: %s", t.show.NextTheme())
			case r >= '1' && r <= '6':
				if shape, ok := defs.ShapeForKey(int(r - '0')); ok {
					if err := t.show.SetShape(shape.String()); err != nil {
						log.Printf("failed to set shape: %v", err)
					}
				}
			}
		}
	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 != 0 && !t.paused {
			x, y := ev.Position()
			t.show.Spawn(float64(x*cellScale+cellScale/2), float64(y*2*cellScale+cellScale))
		}
	case *tcell.EventResize:
		t.screen.Sync()
		cols, rows := t.screen.Size()
		t.canvas.Resize(cols, rows)
		w, h := t.canvas.Size()
		t.show.Resize(float64(w), float64(h))
	}
	return true
}

func (t *terminalShow) togglePause() {
	t.paused = !t.paused
	t.readout.Paused = t.paused
	t.drawStatus()
	t.screen.Show()
}

// drawStatus: первая строка HUD поверх шоу
func (t *terminalShow) drawStatus() {
	lines := t.readout.Lines()
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	state := t.readout.StateColor()
	dot := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(state.R), int32(state.G), int32(state.B))).Background(tcell.ColorBlack)
	t.screen.SetContent(0, 0, '●', nil, dot)
	for i, line := range lines {
		for j, r := range []rune(" " + line) {
			t.screen.SetContent(1+j, i, r, nil, style)
		}
	}
}
