// internal/system/adaptive.go
package system

import (
	"math"
	"time"

	"go-fireworks/internal/config"
	"go-fireworks/internal/event"
)

// Mode: режим качества
type Mode uint8

const (
	ModeNormal Mode = iota
	ModeDegraded
)

func (m Mode) String() string {
	if m == ModeDegraded {
		return "degraded"
	}
	return "normal"
}

// Sample: итог одного окна замера
type Sample struct {
	FPS  int // фактическая частота кадров
	Rate int // частота для контроллера, с учётом запаса по времени работы
}

// RateMeter считает кадры и раз в окно выдаёт Sample.
// Хост держит цикл на целевой частоте, поэтому фактический FPS выше цели
// не поднимается. Пока цикл успевает, Rate считается по времени работы
// кадра (Work): так виден запас, и контроллер может вернуться в Normal.
type RateMeter struct {
	window float64
	target int

	frames  int
	elapsed float64
	busy    float64
}

func NewRateMeter(window time.Duration, targetFPS int) *RateMeter {
	return &RateMeter{window: window.Seconds(), target: targetFPS}
}

// SetWindow меняет длину окна и цель, текущий замер продолжается
func (m *RateMeter) SetWindow(window time.Duration, targetFPS int) {
	m.window = window.Seconds()
	m.target = targetFPS
}

// Work добавляет время, потраченное на кадр: тик и отрисовку
func (m *RateMeter) Work(d time.Duration) {
	m.busy += d.Seconds()
}

// Frame учитывает кадр длиной dt секунд. ok == true, когда окно закрылось.
func (m *RateMeter) Frame(dt float64) (s Sample, ok bool) {
	m.frames++
	m.elapsed += dt
	if m.elapsed < m.window || m.elapsed <= 0 {
		return Sample{}, false
	}
	actual := float64(m.frames) / m.elapsed
	s.FPS = int(math.Round(actual))
	s.Rate = s.FPS
	// Когда цикл отстаёт от цели, Rate равен фактической частоте:
	// время работы не учитывает GPU и ожидание vsync.
	if m.busy > 0 && s.FPS >= m.target-config.DegradeMargin {
		capacity := float64(m.frames) / m.busy
		if capacity > actual {
			s.Rate = int(math.Round(min(capacity, config.MaxMeasuredRate)))
		}
	}
	m.frames = 0
	m.elapsed = 0
	m.busy = 0
	return s, true
}

// AdaptiveController держит частоту кадров у цели: переключает режим
// Normal/Degraded с гистерезисом и независимо подрезает бюджет частиц.
// Пишет настройки только через config.Tuner.
type AdaptiveController struct {
	tuner           *config.Tuner
	eventDispatcher *event.Dispatcher

	baseline config.Tunables
	mode     Mode
	fps      int

	belowWindows int // окон подряд ниже target-DegradeMargin
	aboveWindows int // окон подряд выше target+RecoverMargin
}

func NewAdaptiveController(tuner *config.Tuner, eventDispatcher *event.Dispatcher) *AdaptiveController {
	c := &AdaptiveController{tuner: tuner, eventDispatcher: eventDispatcher}
	c.Rebaseline()
	return c
}

// Rebaseline запоминает текущие настройки как эталон и возвращает Normal.
// Вызывается при старте и после setConfig.
func (c *AdaptiveController) Rebaseline() {
	c.baseline = c.tuner.Tunables()
	c.mode = ModeNormal
	c.belowWindows = 0
	c.aboveWindows = 0
}

func (c *AdaptiveController) Mode() Mode                { return c.mode }
func (c *AdaptiveController) Baseline() config.Tunables { return c.baseline }

// ForceSimple: рендер должен упрощать не-core частицы
func (c *AdaptiveController) ForceSimple() bool {
	_, target := c.tuner.Limits()
	return c.fps > 0 && c.fps < target-config.BudgetMargin
}

// Observe принимает замер за одно окно (Sample.Rate)
func (c *AdaptiveController) Observe(fps int) {
	c.fps = fps
	minParticles, target := c.tuner.Limits()

	if fps < target-config.DegradeMargin {
		c.belowWindows++
	} else {
		c.belowWindows = 0
	}
	if fps > target+config.RecoverMargin {
		c.aboveWindows++
	} else {
		c.aboveWindows = 0
	}

	v := c.tuner.Tunables()

	// Бюджет частиц: вниз быстро, вверх медленно
	if fps < target-config.BudgetMargin && v.ParticleCount > minParticles {
		v.ParticleCount = max(minParticles, v.ParticleCount-config.BudgetStepDown)
	} else if fps > target+config.BudgetMargin && v.ParticleCount < c.baseline.ParticleCount {
		v.ParticleCount = min(c.baseline.ParticleCount, v.ParticleCount+config.BudgetStepUp)
	}

	switch {
	case c.mode == ModeNormal && c.belowWindows >= config.DegradeWindows:
		c.degrade(&v)
	case c.mode == ModeDegraded && c.aboveWindows >= config.RecoverWindows:
		c.restore(&v)
	}

	c.tuner.SetTunables(v)
}

func (c *AdaptiveController) degrade(v *config.Tunables) {
	v.SecondaryEnabled = false
	v.EnableGlow = false
	// пол в DegradedMinRockets не поднимает лимит выше эталона
	v.MaxRockets = min(c.baseline.MaxRockets, max(config.DegradedMinRockets, c.baseline.MaxRockets/2))
	v.SecondaryChildCount = min(v.SecondaryChildCount, config.DegradedChildCap)
	c.switchMode(ModeDegraded)
}

// restore возвращает эталон. Бюджет частиц не трогается: он растёт сам.
func (c *AdaptiveController) restore(v *config.Tunables) {
	v.SecondaryEnabled = c.baseline.SecondaryEnabled
	v.EnableGlow = c.baseline.EnableGlow
	v.ShowStars = c.baseline.ShowStars
	v.MaxRockets = c.baseline.MaxRockets
	v.SecondaryChildCount = c.baseline.SecondaryChildCount
	c.switchMode(ModeNormal)
}

func (c *AdaptiveController) switchMode(m Mode) {
	c.mode = m
	c.belowWindows = 0
	c.aboveWindows = 0
	if c.eventDispatcher != nil {
		c.eventDispatcher.Dispatch(event.Event{
			Type: event.ModeChanged,
			Data: event.ModeData{Mode: m.String(), FPS: c.fps},
		})
	}
}
