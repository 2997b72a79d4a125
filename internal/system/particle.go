// internal/system/particle.go
package system

import (
	"math"

	"go-fireworks/internal/component"
	"go-fireworks/internal/config"
	"go-fireworks/internal/entity"
	"go-fireworks/internal/utils"
)

// ParticleSystem двигает частицы, запускает вторичные взрывы и
// возвращает мёртвые частицы в пул
type ParticleSystem struct {
	world *entity.World
	rng   *utils.Rand
	cfg   *config.Config // снимок текущего тика
}

func NewParticleSystem(world *entity.World, rng *utils.Rand) *ParticleSystem {
	return &ParticleSystem{world: world, rng: rng}
}

// Begin запоминает снимок конфигурации на время тика
func (s *ParticleSystem) Begin(cfg *config.Config) {
	s.cfg = cfg
}

// EmitSpark: искра ракеты: не core, без вторичных, гаснет втрое быстрее
func (s *ParticleSystem) EmitSpark(spec component.ParticleSpec) {
	if s.cfg == nil {
		return
	}
	p, ok := s.world.Particles.Acquire()
	if !ok {
		return
	}
	spec.IsCore = false
	p.Spawn(spec, s.cfg, s.rng)
	p.FadeSpeed *= config.SparkFadeK
}

// Update: один тик всех живых частиц.
// Обход с конца: swap-with-last при освобождении ставит на место i уже
// обработанную частицу или свежего потомка, который в этом тике не двигается.
func (s *ParticleSystem) Update() {
	cfg := s.cfg
	pool := s.world.Particles
	wind := s.world.Wind * config.WindFactor

	for i := pool.Len() - 1; i >= 0; i-- {
		p := pool.Live()[i]

		if !p.IsCore {
			p.VX += wind
		}
		p.Tick()

		if s.canBurst(p, cfg) && s.rng.Chance(cfg.SecondaryProbability) {
			s.burst(p, cfg)
		}

		if p.IsDead() {
			pool.Release(p)
		}
	}
}

func (s *ParticleSystem) canBurst(p *component.Particle, cfg *config.Config) bool {
	return cfg.SecondaryEnabled &&
		p.IsCore &&
		p.CanSpawnSecondary &&
		!p.SecondarySpawned &&
		p.Alpha > 0.25 && p.Alpha < 0.75 &&
		p.Generation < cfg.SecondaryMaxGenerations
}

// burst: вторичный взрыв на месте родителя, один раз на частицу
func (s *ParticleSystem) burst(parent *component.Particle, cfg *config.Config) {
	parent.SecondarySpawned = true
	for j := 0; j < cfg.SecondaryChildCount; j++ {
		child, ok := s.world.Particles.Acquire()
		if !ok {
			return
		}
		child.Spawn(component.ParticleSpec{
			X:     parent.X,
			Y:     parent.Y,
			Color: parent.Color,
			Angle: s.rng.Range(0, 2*math.Pi),
			Speed: config.SecondaryBaseSpeed * (0.7 + s.rng.Float64()*0.6),
			Shape: component.ShapeCircle,
			Scale: 1,
		}, cfg, s.rng)
		child.Generation = parent.Generation + 1
		child.SecondarySpawned = true
		child.CanSpawnSecondary = false
		child.Depth = parent.Depth
	}
}
