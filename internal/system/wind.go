// internal/system/wind.go
package system

import (
	"math"

	"go-fireworks/internal/config"
	"go-fireworks/internal/entity"
	"go-fireworks/internal/utils"
)

// WindSystem: медленно меняющийся ветер: синус плюс небольшой шум
type WindSystem struct {
	world *entity.World
	rng   *utils.Rand
}

func NewWindSystem(world *entity.World, rng *utils.Rand) *WindSystem {
	return &WindSystem{world: world, rng: rng}
}

func (s *WindSystem) Update() {
	s.world.Time += config.WindStep
	s.world.Wind = math.Sin(s.world.Time)*config.WindAmplitude + (s.rng.Float64()-0.5)*config.WindNoise
}
