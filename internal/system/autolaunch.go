// internal/system/autolaunch.go
package system

import (
	"go-fireworks/internal/config"
	"go-fireworks/internal/entity"
	"go-fireworks/internal/utils"
)

// AutoLaunchSystem сам запускает ракеты со случайной паузой
type AutoLaunchSystem struct {
	world   *entity.World
	rng     *utils.Rand
	rockets *RocketSystem
	timer   float64 // секунд до следующего запуска
}

func NewAutoLaunchSystem(world *entity.World, rng *utils.Rand, rockets *RocketSystem) *AutoLaunchSystem {
	return &AutoLaunchSystem{world: world, rng: rng, rockets: rockets, timer: config.FirstAutoLaunch}
}

// Update отсчитывает dt секунд. Таймер идёт и при выключенном автозапуске,
// поэтому после включения первая ракета не ждёт полной паузы.
func (s *AutoLaunchSystem) Update(dt float64, cfg *config.Config) bool {
	s.timer -= dt
	if s.timer > 0 {
		return false
	}
	delay := cfg.AutoLaunchDelay().Seconds()
	s.timer = s.rng.Range(delay*0.2, delay*1.8)
	if !cfg.AutoLaunch {
		return false
	}

	w, h := s.world.Width, s.world.Height
	x := s.rng.Range(w*0.1, w*0.9)
	y := s.rng.Range(h*0.1, h*0.5)
	return s.rockets.LaunchFromGround(x, y, cfg)
}
