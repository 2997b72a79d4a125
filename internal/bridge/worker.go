// internal/bridge/worker.go
package bridge

import (
	"context"
	"fmt"
	"log"
	"runtime/debug"
	"time"

	"go-fireworks/internal/app"
	"go-fireworks/internal/config"
	"go-fireworks/internal/defs"
	"go-fireworks/internal/event"
	"go-fireworks/pkg/render"
)

const queueSize = 64

// Worker держит движок на своей горутине. С хостом общается только
// сообщениями: команды приходят в порядке отправки, события уходят так же.
type Worker struct {
	cfg    config.Config
	themes *defs.Themes

	commands chan Command
	events   chan Event

	engine  *app.Engine
	canvas  *render.Recorder // кадр собирается здесь и уходит хосту
	frames  bool
	lastRun time.Time
}

// NewWorker готовит воркер. Движок создаётся командой init.
// frames: отправлять ли хосту готовые кадры.
func NewWorker(cfg config.Config, themes *defs.Themes, frames bool) *Worker {
	return &Worker{
		cfg:      cfg,
		themes:   themes,
		commands: make(chan Command, queueSize),
		events:   make(chan Event, queueSize),
		frames:   frames,
	}
}

// Send ставит команду в очередь
func (w *Worker) Send(ctx context.Context, c Command) error {
	select {
	case w.commands <- c:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Events: поток событий воркера
func (w *Worker) Events() <-chan Event {
	return w.events
}

// Run крутит цикл воркера до отмены ctx. Паника в тике или обработчике
// превращается в событие fault, цикл продолжает работу.
func (w *Worker) Run(ctx context.Context) error {
	interval := w.interval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	defer w.teardown()

	w.lastRun = time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case c := <-w.commands:
			w.guard(func() error { return w.handle(c) })
			// setConfig или init могли сменить target_fps
			if next := w.interval(); next != interval {
				interval = next
				ticker.Reset(interval)
			}
		case now := <-ticker.C:
			dt := now.Sub(w.lastRun).Seconds()
			w.lastRun = now
			w.guard(func() error { return w.tick(dt) })
		}
	}
}

// interval: период тика под текущий target_fps
func (w *Worker) interval() time.Duration {
	fps := w.cfg.TargetFPS
	if w.engine != nil && w.engine.Store != nil {
		fps = w.engine.Config().TargetFPS
	}
	if fps <= 0 {
		fps = config.Default().TargetFPS
	}
	return time.Second / time.Duration(fps)
}

func (w *Worker) guard(fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("worker panic: %v\n%s", r, debug.Stack())
			w.emit(Event{Type: EvtFault, Message: fmt.Sprint(r)})
		}
	}()
	if err := fn(); err != nil {
		w.emit(Event{Type: EvtFault, Message: err.Error()})
	}
}

func (w *Worker) handle(c Command) error {
	if c.Type == CmdInit {
		return w.init(c)
	}
	if w.engine == nil {
		return fmt.Errorf("%s: %w", c.Type, ErrNotInitialized)
	}
	switch c.Type {
	case CmdResize:
		w.engine.Resize(c.Width, c.Height)
		w.canvas.W, w.canvas.H = int(c.Width), int(c.Height)
	case CmdSpawnAt:
		w.engine.SpawnEmitter(c.X, c.Y)
	case CmdSetTheme:
		return w.engine.SetTheme(c.Name)
	case CmdSetShape:
		return w.engine.SetShape(c.Name)
	case CmdSetConfig:
		return w.engine.ApplyConfig(c.Patch)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, c.Type)
	}
	return nil
}

func (w *Worker) init(c Command) error {
	if w.engine != nil {
		w.engine.Dispose()
	}
	engine, err := app.NewEngine(c.Width, c.Height, w.cfg, w.themes, c.Seed)
	if err != nil {
		return fmt.Errorf("failed to init engine: %w", err)
	}
	w.engine = engine
	// слоёв у кадра нет: небо рисуется напрямую
	w.canvas = render.NewRecorder(int(c.Width), int(c.Height), false)
	w.canvas.KeepPaths = true

	engine.EventDispatcher.Subscribe(event.FrameRate, event.ListenerFunc(w.onFrameRate))
	engine.EventDispatcher.Subscribe(event.ModeChanged, event.ListenerFunc(w.onMode))
	return nil
}

func (w *Worker) tick(dt float64) error {
	if w.engine == nil {
		return nil
	}
	w.engine.Frame(dt)
	if !w.frames {
		return nil
	}
	w.engine.Draw(w.canvas, dt)
	w.emitFrame(Event{Type: EvtFrame, Ops: w.canvas.Take()})
	return nil
}

func (w *Worker) onFrameRate(e event.Event) {
	data := e.Data.(event.FrameRateData)
	w.emit(Event{
		Type:      EvtFrameRate,
		FPS:       data.FPS,
		Rate:      data.Rate,
		Particles: data.LiveParticles,
		Rockets:   data.LiveRockets,
	})
}

func (w *Worker) onMode(e event.Event) {
	data := e.Data.(event.ModeData)
	w.emit(Event{Type: EvtMode, Mode: data.Mode, FPS: data.FPS})
}

// emit не блокирует цикл: при полной очереди событие теряется с записью в лог
func (w *Worker) emit(e Event) {
	select {
	case w.events <- e:
	default:
		log.Printf("worker event queue full, dropped %s", e.Type)
	}
}

// emitFrame отдаёт кадр, только если хост успевает их забирать
func (w *Worker) emitFrame(e Event) {
	select {
	case w.events <- e:
	default:
	}
}

func (w *Worker) teardown() {
	if w.engine != nil {
		w.engine.Dispose()
		w.engine = nil
	}
}
