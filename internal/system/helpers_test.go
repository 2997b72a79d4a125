package system

import (
	"go-fireworks/internal/component"
	"go-fireworks/internal/config"
	"go-fireworks/internal/defs"
	"go-fireworks/internal/entity"
	"go-fireworks/internal/event"
	"go-fireworks/internal/utils"
)

type testRig struct {
	cfg        config.Config
	world      *entity.World
	rng        *utils.Rand
	dispatcher *event.Dispatcher
	explosion  *ExplosionSystem
	particles  *ParticleSystem
	rockets    *RocketSystem
}

func newRig(mutate func(*config.Config)) *testRig {
	cfg := config.Default()
	if mutate != nil {
		mutate(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	r := &testRig{
		cfg:        cfg,
		world:      entity.NewWorld(1000, 800, cfg),
		rng:        utils.NewRand(42),
		dispatcher: event.NewDispatcher(),
	}
	r.explosion = NewExplosionSystem(r.world, defs.DefaultThemes(), r.rng, r.dispatcher)
	r.particles = NewParticleSystem(r.world, r.rng)
	r.particles.Begin(&r.cfg)
	r.rockets = NewRocketSystem(r.world, r.rng, nil, r.explosion)
	return r
}

// tick: как Engine.Advance, но без ветра
func (r *testRig) tick() {
	r.particles.Begin(&r.cfg)
	r.rockets.Update(&r.cfg)
	r.particles.Update()
}

func (r *testRig) rocketAt(x, y, scale float64) *component.Rocket {
	rocket := component.NewRocket()
	rocket.X, rocket.Y = x, y
	rocket.Scale = scale
	rocket.Depth = 1
	return rocket
}

type eventCounter struct {
	events []event.Event
}

func (c *eventCounter) OnEvent(e event.Event) { c.events = append(c.events, e) }
