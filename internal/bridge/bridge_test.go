package bridge

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go-fireworks/internal/app"
	"go-fireworks/internal/config"
	"go-fireworks/internal/defs"
)

func TestCommandCodec(t *testing.T) {
	data, err := EncodeCommand(SetConfig(config.Patch{"gravity": 0.3, "show_trails": false}))
	if err != nil {
		t.Fatal(err)
	}
	c, err := DecodeCommand(data)
	if err != nil {
		t.Fatal(err)
	}
	if c.Type != CmdSetConfig {
		t.Fatalf("type %q", c.Type)
	}
	// патч после msgpack должен применяться так же, как исходный
	cfg, err := c.Patch.ApplyTo(config.Default())
	if err != nil {
		t.Fatalf("decoded patch rejected: %v", err)
	}
	if cfg.Gravity != 0.3 || cfg.ShowTrails {
		t.Fatalf("decoded patch applied as %+v", cfg)
	}

	data, _ = EncodeCommand(SpawnAt(12.5, 40))
	if c, err := DecodeCommand(data); err != nil || c.X != 12.5 || c.Y != 40 {
		t.Fatalf("spawnAt decoded as %+v, %v", c, err)
	}
}

func TestDecodeCommandRejectsUnknown(t *testing.T) {
	data, _ := EncodeCommand(Command{Type: "explodeEverything"})
	if _, err := DecodeCommand(data); !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("err = %v", err)
	}
	if _, err := DecodeCommand([]byte{0xc1}); err == nil {
		t.Fatal("garbage accepted")
	}
}

func TestEventCodecSkipsFrames(t *testing.T) {
	data, err := EncodeEvent(Event{Type: EvtFault, Message: "boom"})
	if err != nil {
		t.Fatal(err)
	}
	e, err := DecodeEvent(data)
	if err != nil || e.Type != EvtFault || e.Message != "boom" {
		t.Fatalf("decoded %+v, %v", e, err)
	}
}

func startWorker(t *testing.T, frames bool) (*Worker, context.Context) {
	t.Helper()
	return startWorkerWith(t, frames, func(cfg *config.Config) { cfg.StatsIntervalMs = 100 })
}

func startWorkerWith(t *testing.T, frames bool, mutate func(*config.Config)) (*Worker, context.Context) {
	t.Helper()
	cfg := config.Default()
	mutate(&cfg)
	w := NewWorker(cfg, defs.DefaultThemes(), frames)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Error("worker did not stop")
		}
	})
	return w, ctx
}

func waitFor(t *testing.T, w *Worker, typ EventType) Event {
	t.Helper()
	timeout := time.After(3 * time.Second)
	for {
		select {
		case e := <-w.Events():
			if e.Type == typ {
				return e
			}
		case <-timeout:
			t.Fatalf("no %s event", typ)
		}
	}
}

func TestWorkerReportsFrameRate(t *testing.T) {
	w, ctx := startWorker(t, false)
	if err := w.Send(ctx, Init(640, 480, 1)); err != nil {
		t.Fatal(err)
	}
	w.Send(ctx, SpawnAt(320, 100))
	e := waitFor(t, w, EvtFrameRate)
	if e.FPS <= 0 {
		t.Fatalf("fps = %d", e.FPS)
	}
}

// frameRates собирает замеры, пока check не вернёт true или не выйдет время
func frameRates(t *testing.T, w *Worker, timeout time.Duration, check func(Event) bool) []Event {
	t.Helper()
	var seen []Event
	deadline := time.After(timeout)
	for {
		select {
		case e := <-w.Events():
			if e.Type != EvtFrameRate {
				continue
			}
			seen = append(seen, e)
			if check(e) {
				return seen
			}
		case <-deadline:
			t.Fatalf("condition not met, reports %+v", seen)
		}
	}
}

func TestWorkerReportsHeadroomAtTargetPace(t *testing.T) {
	w, ctx := startWorkerWith(t, true, func(cfg *config.Config) { cfg.StatsIntervalMs = 500 })
	w.Send(ctx, Init(640, 480, 1))
	target := config.Default().TargetFPS
	// тикер воркера идёт ровно на target_fps, запас виден только в Rate
	frameRates(t, w, 4*time.Second, func(e Event) bool {
		return e.FPS <= target+1 && e.Rate > target+config.RecoverMargin
	})
}

func TestWorkerRepacesOnTargetChange(t *testing.T) {
	w, ctx := startWorkerWith(t, false, func(cfg *config.Config) { cfg.StatsIntervalMs = 500 })
	w.Send(ctx, Init(640, 480, 1))
	waitFor(t, w, EvtFrameRate)
	if err := w.Send(ctx, SetConfig(config.Patch{"target_fps": 30})); err != nil {
		t.Fatal(err)
	}
	frameRates(t, w, 4*time.Second, func(e Event) bool {
		return e.FPS >= 27 && e.FPS <= 33 && e.Rate > 30+config.RecoverMargin
	})
}

func TestWorkerFaultsDoNotStopLoop(t *testing.T) {
	w, ctx := startWorker(t, false)
	w.Send(ctx, SpawnAt(1, 1))
	if e := waitFor(t, w, EvtFault); !strings.Contains(e.Message, ErrNotInitialized.Error()) {
		t.Fatalf("fault %q", e.Message)
	}

	w.Send(ctx, Init(640, 480, 1))
	w.Send(ctx, SetTheme("plaid"))
	if e := waitFor(t, w, EvtFault); !strings.Contains(e.Message, "unknown theme") {
		t.Fatalf("fault %q", e.Message)
	}
	// цикл жив: замеры продолжают приходить
	waitFor(t, w, EvtFrameRate)
}

func TestWorkerSendsFrames(t *testing.T) {
	w, ctx := startWorker(t, true)
	w.Send(ctx, Init(320, 240, 1))
	e := waitFor(t, w, EvtFrame)
	if len(e.Ops) == 0 {
		t.Fatal("empty frame")
	}
}

func TestGuardRecoversPanic(t *testing.T) {
	w := NewWorker(config.Default(), defs.DefaultThemes(), false)
	// пустой движок без систем: первая же команда паникует
	w.engine = &app.Engine{}
	w.guard(func() error { return w.handle(SpawnAt(1, 1)) })
	select {
	case e := <-w.events:
		if e.Type != EvtFault || e.Message == "" {
			t.Fatalf("event %+v", e)
		}
	default:
		t.Fatal("panic not reported")
	}
}
