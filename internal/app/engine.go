// internal/app/engine.go
package app

import (
	"fmt"
	"time"

	"go-fireworks/internal/component"
	"go-fireworks/internal/config"
	"go-fireworks/internal/defs"
	"go-fireworks/internal/entity"
	"go-fireworks/internal/event"
	"go-fireworks/internal/system"
	"go-fireworks/internal/utils"
	"go-fireworks/pkg/pool"
	"go-fireworks/pkg/render"
)

// Stats: снимок состояния шоу для HUD и отчётов
type Stats struct {
	FPS           int // фактическая частота последнего окна
	Rate          int // частота, которую видел контроллер
	Mode          system.Mode
	LiveParticles int
	LiveRockets   int
	ParticleCount int
	MaxRockets    int
	Wind          float64
	Particles     pool.Stats
}

// Engine holds the show state: world, config and systems.
// Все методы вызываются из одного потока и только между тиками.
type Engine struct {
	World           *entity.World
	Store           *config.Store
	Themes          *defs.Themes
	EventDispatcher *event.Dispatcher
	Rng             *utils.Rand

	WindSystem       *system.WindSystem
	ExplosionSystem  *system.ExplosionSystem
	ParticleSystem   *system.ParticleSystem
	RocketSystem     *system.RocketSystem
	AutoLaunchSystem *system.AutoLaunchSystem
	SkySystem        *system.SkySystem
	RenderSystem     *system.RenderSystem
	Controller       *system.AdaptiveController
	Meter            *system.RateMeter

	tuner  *config.Tuner
	sample system.Sample
}

// NewEngine собирает движок. При seed 0 сид берётся из времени.
func NewEngine(width, height float64, cfg config.Config, themes *defs.Themes, seed int64) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if themes == nil {
		themes = defs.DefaultThemes()
	}

	rng := utils.NewRand(seed)
	world := entity.NewWorld(width, height, cfg)
	store := config.NewStore(cfg)
	eventDispatcher := event.NewDispatcher()

	e := &Engine{
		World:           world,
		Store:           store,
		Themes:          themes,
		EventDispatcher: eventDispatcher,
		Rng:             rng,
		WindSystem:      system.NewWindSystem(world, rng),
		ParticleSystem:  system.NewParticleSystem(world, rng),
		SkySystem:       system.NewSkySystem(rng),
		Meter:           system.NewRateMeter(cfg.StatsInterval(), cfg.TargetFPS),
		tuner:           store.Tuner(),
	}
	e.ExplosionSystem = system.NewExplosionSystem(world, themes, rng, eventDispatcher)
	e.RocketSystem = system.NewRocketSystem(world, rng, e.ParticleSystem, e.ExplosionSystem)
	e.AutoLaunchSystem = system.NewAutoLaunchSystem(world, rng, e.RocketSystem)
	e.RenderSystem = system.NewRenderSystem(world, e.SkySystem)
	e.Controller = system.NewAdaptiveController(e.tuner, eventDispatcher)

	e.SkySystem.Resize(width, height, &cfg)
	return e, nil
}

// Advance: один тик симуляции: ветер, ракеты, частицы.
func (e *Engine) Advance() {
	cfg := e.Store.Snapshot()
	e.World.Warm()
	e.World.Ticks++

	e.WindSystem.Update()
	e.ParticleSystem.Begin(&cfg)
	e.RocketSystem.Update(&cfg)
	e.ParticleSystem.Update()
}

// Frame: кадр хоста длиной dt секунд: автозапуск, тик, замер частоты.
// Контроллер меняет настройки только на границе окна замера.
func (e *Engine) Frame(dt float64) {
	start := time.Now()
	cfg := e.Store.Snapshot()
	step := dt
	if step > config.MaxDeltaTime {
		step = config.MaxDeltaTime
	}
	e.AutoLaunchSystem.Update(step, &cfg)
	e.Advance()
	e.Meter.Work(time.Since(start))

	if sample, ok := e.Meter.Frame(dt); ok {
		e.sample = sample
		e.Controller.Observe(sample.Rate)
		stats := e.Stats()
		e.EventDispatcher.Dispatch(event.Event{
			Type: event.FrameRate,
			Data: event.FrameRateData{
				FPS:           sample.FPS,
				Rate:          sample.Rate,
				LiveParticles: stats.LiveParticles,
				LiveRockets:   stats.LiveRockets,
				ParticleCount: stats.ParticleCount,
			},
		})
	}
}

// Draw рисует текущее состояние на поверхность
func (e *Engine) Draw(c render.Canvas, dt float64) {
	start := time.Now()
	cfg := e.Store.Snapshot()
	e.RenderSystem.Draw(c, &cfg, dt, e.Controller.ForceSimple())
	e.Meter.Work(time.Since(start))
}

// SpawnEmitter запускает ракету с земли в точку (x, y).
// false: достигнут лимит ракет, это не ошибка.
func (e *Engine) SpawnEmitter(x, y float64) bool {
	cfg := e.Store.Snapshot()
	return e.RocketSystem.LaunchFromGround(x, y, &cfg)
}

// Launch запускает ракету из произвольной точки
func (e *Engine) Launch(startX, startY, targetX, targetY float64) bool {
	cfg := e.Store.Snapshot()
	return e.RocketSystem.Launch(startX, startY, targetX, targetY, &cfg)
}

// Resize меняет размер сцены. Живые частицы и ракеты остаются в пулах.
func (e *Engine) Resize(width, height float64) {
	e.World.Width, e.World.Height = width, height
	cfg := e.Store.Snapshot()
	e.SkySystem.Resize(width, height, &cfg)
}

func (e *Engine) SetTheme(name string) error {
	if err := e.Themes.Validate(name); err != nil {
		return err
	}
	e.Store.SetTheme(name)
	return nil
}

// NextTheme переключает тему по кругу и возвращает новое имя
func (e *Engine) NextTheme() string {
	next := e.Themes.Next(e.Store.Snapshot().Theme)
	e.Store.SetTheme(next)
	return next
}

func (e *Engine) SetShape(name string) error {
	shape, err := component.ParseShape(name)
	if err != nil {
		return err
	}
	e.Store.SetShape(shape.String())
	return nil
}

// ApplyConfig применяет патч поверх эталонных настроек качества и
// делает результат новым эталоном контроллера.
func (e *Engine) ApplyConfig(p config.Patch) error {
	current := e.tuner.Tunables()
	e.tuner.SetTunables(e.Controller.Baseline())
	if err := e.Store.Apply(p); err != nil {
		e.tuner.SetTunables(current)
		return fmt.Errorf("failed to apply config: %w", err)
	}
	cfg := e.Store.Snapshot()
	e.World.Particles.SetCeiling(cfg.MaxParticles)
	e.Meter.SetWindow(cfg.StatsInterval(), cfg.TargetFPS)
	e.Controller.Rebaseline()
	return nil
}

// Reset возвращает в пулы всё живое
func (e *Engine) Reset() {
	e.World.Clear()
}

// Dispose освобождает внеэкранные слои
func (e *Engine) Dispose() {
	e.Reset()
	e.SkySystem.Dispose()
}

func (e *Engine) Config() config.Config { return e.Store.Snapshot() }
func (e *Engine) Mode() system.Mode     { return e.Controller.Mode() }
func (e *Engine) Wind() float64         { return e.World.Wind }

func (e *Engine) Stats() Stats {
	cfg := e.Store.Snapshot()
	return Stats{
		FPS:           e.sample.FPS,
		Rate:          e.sample.Rate,
		Mode:          e.Controller.Mode(),
		LiveParticles: e.World.Particles.Len(),
		LiveRockets:   e.World.Rockets.Len(),
		ParticleCount: cfg.ParticleCount,
		MaxRockets:    cfg.MaxRockets,
		Wind:          e.World.Wind,
		Particles:     e.World.Particles.Stats(),
	}
}
