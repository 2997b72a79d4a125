// internal/host/show.go
package host

import (
	"context"
	"errors"
	"fmt"
	"log"
	"runtime/debug"
	"time"

	"go-fireworks/internal/app"
	"go-fireworks/internal/bridge"
	"go-fireworks/internal/component"
	"go-fireworks/internal/config"
	"go-fireworks/internal/defs"
	"go-fireworks/internal/event"
	"go-fireworks/pkg/render"
)

const sendTimeout = 100 * time.Millisecond

// Show: то, чем управляет окно хоста. Движок живёт либо в потоке окна
// (LocalShow), либо на горутине воркера (WorkerShow). Окно об этом не знает.
type Show interface {
	Spawn(x, y float64)
	NextTheme() string
	SetShape(name string) error
	Resize(width, height float64)
	Frame(dt float64)
	Draw(c render.Canvas, dt float64)
	Close()
}

var (
	_ Show = (*LocalShow)(nil)
	_ Show = (*WorkerShow)(nil)
)

// LocalShow: движок в потоке окна
type LocalShow struct {
	Engine  *app.Engine
	Readout *Readout
}

func NewLocalShow(engine *app.Engine, readout *Readout) *LocalShow {
	cfg := engine.Config()
	readout.Theme, readout.Shape = cfg.Theme, cfg.Shape
	readout.Subscribe(engine.EventDispatcher)
	return &LocalShow{Engine: engine, Readout: readout}
}

func (s *LocalShow) Spawn(x, y float64) { s.Engine.SpawnEmitter(x, y) }

func (s *LocalShow) NextTheme() string {
	s.Readout.Theme = s.Engine.NextTheme()
	return s.Readout.Theme
}

func (s *LocalShow) SetShape(name string) error {
	if err := s.Engine.SetShape(name); err != nil {
		return err
	}
	s.Readout.Shape = name
	return nil
}

func (s *LocalShow) Resize(width, height float64) { s.Engine.Resize(width, height) }

func (s *LocalShow) Frame(dt float64) {
	s.guard(func() { s.Engine.Frame(dt) })
	s.Readout.Update()
}

func (s *LocalShow) Draw(c render.Canvas, dt float64) {
	s.guard(func() { s.Engine.Draw(c, dt) })
}

// guard не даёт панике в кадре уронить окно: она уходит событием Fault
func (s *LocalShow) guard(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("show panic: %v\n%s", r, debug.Stack())
			s.Engine.EventDispatcher.Dispatch(event.Event{Type: event.Fault, Data: event.FaultData{Message: fmt.Sprint(r)}})
		}
	}()
	fn()
}
func (s *LocalShow) Close()                           { s.Engine.Dispose() }

// WorkerShow: движок на горутине воркера. Окно шлёт команды и
// повторяет последний присланный кадр.
type WorkerShow struct {
	// Tap видит каждое событие воркера, кроме кадров. Нужен удалённому пульту.
	Tap func(bridge.Event)

	worker  *bridge.Worker
	themes  *defs.Themes
	readout *Readout
	theme   string
	frame   []render.Op

	ctx    context.Context
	cancel context.CancelFunc
	done   chan error
}

// StartWorkerShow запускает воркер и отправляет ему init.
// Воркер должен быть создан с отправкой кадров.
func StartWorkerShow(parent context.Context, worker *bridge.Worker, width, height float64, seed int64,
	cfg config.Config, themes *defs.Themes, readout *Readout) (*WorkerShow, error) {
	if themes == nil {
		themes = defs.DefaultThemes()
	}
	ctx, cancel := context.WithCancel(parent)
	s := &WorkerShow{
		worker:  worker,
		themes:  themes,
		readout: readout,
		theme:   cfg.Theme,
		ctx:     ctx,
		cancel:  cancel,
		done:    make(chan error, 1),
	}
	readout.Theme, readout.Shape = cfg.Theme, cfg.Shape

	go func() { s.done <- worker.Run(ctx) }()
	if err := worker.Send(ctx, bridge.Init(width, height, seed)); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to init worker: %w", err)
	}
	return s, nil
}

func (s *WorkerShow) send(c bridge.Command) {
	ctx, cancel := context.WithTimeout(s.ctx, sendTimeout)
	defer cancel()
	if err := s.worker.Send(ctx, c); err != nil {
		log.Printf("failed to send %s to worker: %v", c.Type, err)
	}
}

func (s *WorkerShow) Spawn(x, y float64) { s.send(bridge.SpawnAt(x, y)) }

// NextTheme: воркер не знает «следующей» темы, каталог ведёт окно
func (s *WorkerShow) NextTheme() string {
	s.theme = s.themes.Next(s.theme)
	s.readout.Theme = s.theme
	s.send(bridge.SetTheme(s.theme))
	return s.theme
}

// SetShape проверяет имя на месте, чтобы ошибка пришла сразу, а не fault-ом
func (s *WorkerShow) SetShape(name string) error {
	if _, err := component.ParseShape(name); err != nil {
		return err
	}
	s.readout.Shape = name
	s.send(bridge.SetShape(name))
	return nil
}

func (s *WorkerShow) Resize(width, height float64) { s.send(bridge.Resize(width, height)) }

// Frame забирает всё, что воркер успел прислать, не блокируясь
func (s *WorkerShow) Frame(float64) {
	s.Drain()
	s.readout.Update()
}

// Drain разбирает очередь событий без шага пружины HUD.
// Воркер не останавливается на паузе окна, очередь всё равно надо читать.
func (s *WorkerShow) Drain() {
	events := s.worker.Events()
	for drained := false; !drained; {
		select {
		case e := <-events:
			s.handle(e)
		default:
			drained = true
		}
	}
}

func (s *WorkerShow) handle(e bridge.Event) {
	switch e.Type {
	case bridge.EvtFrame:
		s.frame = e.Ops
		return
	case bridge.EvtFrameRate:
		s.readout.OnEvent(event.Event{Type: event.FrameRate, Data: event.FrameRateData{
			FPS:           e.FPS,
			Rate:          e.Rate,
			LiveParticles: e.Particles,
			LiveRockets:   e.Rockets,
			ParticleCount: s.readout.Budget,
		}})
	case bridge.EvtMode:
		s.readout.OnEvent(event.Event{Type: event.ModeChanged, Data: event.ModeData{Mode: e.Mode, FPS: e.FPS}})
	case bridge.EvtFault:
		log.Printf("worker fault: %s", e.Message)
	}
	if s.Tap != nil {
		s.Tap(e)
	}
}

// Draw повторяет последний кадр воркера
func (s *WorkerShow) Draw(c render.Canvas, _ float64) {
	render.Replay(c, s.frame)
}

// Close останавливает воркер и ждёт его выхода
func (s *WorkerShow) Close() {
	s.cancel()
	if err := <-s.done; err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("worker stopped: %v", err)
	}
}
