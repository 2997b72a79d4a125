// internal/system/explosion.go
package system

import (
	"math"

	"go-fireworks/internal/component"
	"go-fireworks/internal/config"
	"go-fireworks/internal/defs"
	"go-fireworks/internal/entity"
	"go-fireworks/internal/event"
	"go-fireworks/internal/utils"
)

// burstRule: угол и скорость i-й частицы из count.
// Скорость возвращается без учёта масштаба ракеты.
type burstRule struct {
	angle func(i, count int, rng *utils.Rand) float64
	speed func(i, count int, rng *utils.Rand) float64
}

func randomAngle(_, _ int, rng *utils.Rand) float64 { return rng.Range(0, 2*math.Pi) }

// burstRules: таблица форм взрыва. Random сюда не входит: он разрешается раньше.
var burstRules = map[component.Shape]burstRule{
	component.ShapeCircle: {
		angle: randomAngle,
		speed: func(_, _ int, rng *utils.Rand) float64 { return rng.Range(4.5, 11) },
	},
	component.ShapeRing: {
		angle: func(i, count int, _ *utils.Rand) float64 { return float64(i) / float64(count) * 2 * math.Pi },
		speed: func(_, _ int, rng *utils.Rand) float64 { return 8 + rng.Range(0, 2) },
	},
	component.ShapeStar: {
		// пять лучей: группа из пяти частиц плюс мелкий сдвиг внутри группы
		angle: func(i, _ int, _ *utils.Rand) float64 {
			return float64(i/5)*(2*math.Pi/5) + float64(i%5)*(2*math.Pi/25)
		},
		speed: func(_, _ int, rng *utils.Rand) float64 { return 9 + rng.Range(0, 3) },
	},
	component.ShapeSpiral: {
		angle: func(i, _ int, _ *utils.Rand) float64 { return float64(i) * 0.2 },
		speed: func(i, count int, _ *utils.Rand) float64 { return 3.5 + float64(i)/float64(count)*7 },
	},
	component.ShapeHeart: {
		// сердце видно по форме частиц, траектории случайные
		angle: randomAngle,
		speed: func(_, _ int, rng *utils.Rand) float64 { return 5 + rng.Range(0, 7) },
	},
}

// ExplosionSystem превращает взорвавшуюся ракету в облако частиц
type ExplosionSystem struct {
	world           *entity.World
	themes          *defs.Themes
	rng             *utils.Rand
	eventDispatcher *event.Dispatcher
}

func NewExplosionSystem(world *entity.World, themes *defs.Themes, rng *utils.Rand, eventDispatcher *event.Dispatcher) *ExplosionSystem {
	return &ExplosionSystem{world: world, themes: themes, rng: rng, eventDispatcher: eventDispatcher}
}

// ResolveShape разрешает Random в конкретную форму
func (s *ExplosionSystem) ResolveShape(shape component.Shape) component.Shape {
	if _, ok := burstRules[shape]; ok {
		return shape
	}
	return component.ConcreteShapes[s.rng.Intn(len(component.ConcreteShapes))]
}

// BurstSize: сколько частиц даст взрыв и сколько из них core
func BurstSize(particleCount int, scale float64, rng *utils.Rand) (count, core int) {
	base := particleCount + int(math.Floor(rng.Range(-config.ExplosionJitter, config.ExplosionJitter)))
	count = int(math.Floor(float64(base) * scale))
	if count < 0 {
		count = 0
	}
	core = int(math.Floor(float64(count) * config.CoreFraction))
	if core < config.MinCoreParticles {
		core = config.MinCoreParticles
	}
	return count, core
}

// Explode рождает частицы взрыва ракеты r. Возвращает, сколько частиц реально
// получено из пула: у жёсткого предела пула часть взрыва молча пропадает.
func (s *ExplosionSystem) Explode(r *component.Rocket, cfg *config.Config) int {
	shape := component.ShapeRandom
	if parsed, err := component.ParseShape(cfg.Shape); err == nil {
		shape = parsed
	}
	shape = s.ResolveShape(shape)
	rule := burstRules[shape]

	drawShape := component.ShapeCircle
	if shape == component.ShapeHeart {
		drawShape = component.ShapeHeart
	}

	count, core := BurstSize(cfg.ParticleCount, r.Scale, s.rng)
	canCascade := cfg.SecondaryEnabled && cfg.SecondaryMaxGenerations > 1

	spawned := 0
	for i := 0; i < count; i++ {
		angle := rule.angle(i, count, s.rng)
		speed := rule.speed(i, count, s.rng) * r.Scale * config.ExplosionSpeedK
		isCore := i < core

		p, ok := s.world.Particles.Acquire()
		if !ok {
			continue
		}
		p.Spawn(component.ParticleSpec{
			X:      r.X,
			Y:      r.Y,
			Color:  s.themes.Pick(cfg.Theme, s.rng),
			Angle:  angle,
			Speed:  speed,
			Shape:  drawShape,
			IsCore: isCore,
			Scale:  r.Scale,
		}, cfg, s.rng)
		p.Generation = 1
		p.SecondarySpawned = false
		p.CanSpawnSecondary = isCore && canCascade
		p.Depth = r.Depth
		spawned++
	}

	if s.eventDispatcher != nil {
		s.eventDispatcher.Dispatch(event.Event{
			Type: event.Exploded,
			Data: event.ExplodedData{X: r.X, Y: r.Y, Shape: shape.String(), Particles: spawned},
		})
	}
	return spawned
}
