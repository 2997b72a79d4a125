// internal/host/readout.go
package host

import (
	"fmt"
	"image/color"
	"time"

	"github.com/charmbracelet/harmonica"

	"go-fireworks/internal/config"
	"go-fireworks/internal/event"
)

// Readout: данные HUD, не зависящие от графической библиотеки.
// Получает события движка и сглаживает частоту кадров пружиной,
// чтобы цифра не прыгала между окнами замера.
type Readout struct {
	FPS       float64 // сглаженное значение для показа
	Mode      string
	Particles int
	Rockets   int
	Budget    int
	Theme     string
	Shape     string
	Paused    bool

	target    float64
	velocity  float64
	spring    harmonica.Spring
	changedAt time.Time
}

var _ event.Listener = (*Readout)(nil)

// NewReadout: fps задаёт шаг пружины, обычно целевая частота
func NewReadout(fps int) *Readout {
	return &Readout{
		Mode:   "normal",
		spring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// Subscribe подписывает HUD на события движка
func (r *Readout) Subscribe(d *event.Dispatcher) {
	d.Subscribe(event.FrameRate, r)
	d.Subscribe(event.ModeChanged, r)
}

func (r *Readout) OnEvent(e event.Event) {
	switch data := e.Data.(type) {
	case event.FrameRateData:
		r.target = float64(data.FPS)
		r.Particles = data.LiveParticles
		r.Rockets = data.LiveRockets
		r.Budget = data.ParticleCount
	case event.ModeData:
		if data.Mode != r.Mode {
			r.Mode = data.Mode
			r.changedAt = time.Now()
		}
	}
}

// Update: шаг пружины, раз в кадр
func (r *Readout) Update() {
	r.FPS, r.velocity = r.spring.Update(r.FPS, r.velocity, r.target)
}

// Degraded: контроллер упростил картинку
func (r *Readout) Degraded() bool {
	return r.Mode != "normal"
}

// StateColor: цвет индикатора качества
func (r *Readout) StateColor() color.RGBA {
	if r.Degraded() {
		return config.DegradedStateColor
	}
	return config.NormalStateColor
}

// SinceChange: сколько прошло со смены режима
func (r *Readout) SinceChange() time.Duration {
	if r.changedAt.IsZero() {
		return time.Hour
	}
	return time.Since(r.changedAt)
}

func (r *Readout) Lines() []string {
	lines := []string{
		fmt.Sprintf("FPS %.0f  %s", r.FPS, r.Mode),
		fmt.Sprintf("particles %d  rockets %d  budget %d", r.Particles, r.Rockets, r.Budget),
	}
	if r.Theme != "" || r.Shape != "" {
		lines = append(lines, fmt.Sprintf("theme %s  shape %s", r.Theme, r.Shape))
	}
	if r.Paused {
		lines = append(lines, "PAUSED")
	}
	return lines
}
