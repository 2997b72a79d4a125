// internal/system/rocket.go
package system

import (
	"go-fireworks/internal/component"
	"go-fireworks/internal/config"
	"go-fireworks/internal/entity"
	"go-fireworks/internal/utils"
)

// RocketSystem запускает и ведёт ракеты. Живые ракеты пула и есть
// активные эмиттеры, их число ограничено cfg.MaxRockets.
type RocketSystem struct {
	world     *entity.World
	rng       *utils.Rand
	sparks    component.SparkSink
	explosion *ExplosionSystem
}

func NewRocketSystem(world *entity.World, rng *utils.Rand, sparks component.SparkSink, explosion *ExplosionSystem) *RocketSystem {
	return &RocketSystem{world: world, rng: rng, sparks: sparks, explosion: explosion}
}

// Launch запускает ракету из start в target.
// При достигнутом лимите ракет молча возвращает false.
func (s *RocketSystem) Launch(startX, startY, targetX, targetY float64, cfg *config.Config) bool {
	if s.world.Rockets.Len() >= cfg.MaxRockets {
		return false
	}
	r, ok := s.world.Rockets.Acquire()
	if !ok {
		return false
	}
	r.Launch(startX, startY, targetX, targetY, cfg, s.rng, s.sparks)
	return true
}

// LaunchFromGround стартует с земли у центра экрана
func (s *RocketSystem) LaunchFromGround(targetX, targetY float64, cfg *config.Config) bool {
	startX := s.world.Width/2 + s.rng.Range(-config.LaunchSpread, config.LaunchSpread)
	return s.Launch(startX, s.world.Height, targetX, targetY, cfg)
}

// Update двигает ракеты. Взорвавшаяся ракета сразу отдаёт частицы и
// возвращается в пул.
func (s *RocketSystem) Update(cfg *config.Config) int {
	exploded := 0
	pool := s.world.Rockets
	for i := pool.Len() - 1; i >= 0; i-- {
		r := pool.Live()[i]
		if r.Tick() {
			s.explosion.Explode(r, cfg)
			pool.Release(r)
			exploded++
		}
	}
	return exploded
}
