package system

import (
	"math"
	"testing"

	"go-fireworks/internal/config"
	"go-fireworks/internal/event"
)

func TestLaunchBackpressure(t *testing.T) {
	rig := newRig(func(c *config.Config) { c.MaxRockets = 3 })
	for i := 0; i < 3; i++ {
		if !rig.rockets.LaunchFromGround(100, 100, &rig.cfg) {
			t.Fatalf("launch %d rejected under the cap", i)
		}
	}
	if rig.rockets.LaunchFromGround(100, 100, &rig.cfg) {
		t.Fatal("launch accepted at the cap")
	}
	if rig.world.Rockets.Len() != 3 {
		t.Fatalf("live rockets = %d", rig.world.Rockets.Len())
	}
}

func TestLaunchFromGroundStartsNearCentre(t *testing.T) {
	rig := newRig(nil)
	rig.rockets.LaunchFromGround(10, 10, &rig.cfg)
	r := rig.world.Rockets.Live()[0]
	if math.Abs(r.StartX-rig.world.Width/2) > config.LaunchSpread || r.StartY != rig.world.Height {
		t.Fatalf("start (%v, %v)", r.StartX, r.StartY)
	}
}

func TestRocketScenarioExplodesOnce(t *testing.T) {
	rig := newRig(func(c *config.Config) {
		c.RocketSpeed = 10
		c.RocketSpeedJitter = 0
	})
	counter := &eventCounter{}
	rig.dispatcher.Subscribe(event.Exploded, counter)

	if !rig.rockets.Launch(100, 100, 400, 50, &rig.cfg) {
		t.Fatal("launch rejected")
	}
	scale := rig.world.Rockets.Live()[0].Scale
	ticks := int(math.Ceil(math.Hypot(300, 50) / 10))

	for i := 1; i < ticks; i++ {
		if rig.rockets.Update(&rig.cfg) != 0 {
			t.Fatalf("exploded early at tick %d", i)
		}
	}
	if rig.rockets.Update(&rig.cfg) != 1 {
		t.Fatalf("no explosion at tick %d", ticks)
	}
	if rig.world.Rockets.Len() != 0 {
		t.Fatal("rocket not released after explosion")
	}
	for i := 0; i < 5; i++ {
		rig.rockets.Update(&rig.cfg)
	}
	if len(counter.events) != 1 {
		t.Fatalf("%d explosions", len(counter.events))
	}

	n := rig.world.Particles.Len()
	lo := int(math.Floor(float64(rig.cfg.ParticleCount-config.ExplosionJitter) * scale))
	hi := int(math.Floor(float64(rig.cfg.ParticleCount+config.ExplosionJitter) * scale))
	if n < lo || n > hi {
		t.Fatalf("%d particles, want [%d, %d] for scale %v", n, lo, hi, scale)
	}
}

func TestAutoLaunchSchedule(t *testing.T) {
	rig := newRig(func(c *config.Config) { c.MaxRockets = 100 })
	auto := NewAutoLaunchSystem(rig.world, rig.rng, rig.rockets)

	if auto.Update(0.5, &rig.cfg) {
		t.Fatal("launched before the first second")
	}
	if !auto.Update(0.6, &rig.cfg) {
		t.Fatal("no launch after the first second")
	}
	r := rig.world.Rockets.Live()[0]
	w, h := rig.world.Width, rig.world.Height
	if r.TargetX < 0.1*w || r.TargetX > 0.9*w || r.TargetY < 0.1*h || r.TargetY > 0.5*h {
		t.Fatalf("target (%v, %v) outside the launch box", r.TargetX, r.TargetY)
	}

	// следующая пауза лежит в [0.2, 1.8] от AutoLaunchDelay
	delay := rig.cfg.AutoLaunchDelay().Seconds()
	if auto.timer < 0.2*delay || auto.timer > 1.8*delay {
		t.Fatalf("next delay %v", auto.timer)
	}

	rig.cfg.AutoLaunch = false
	for i := 0; i < 100; i++ {
		if auto.Update(0.1, &rig.cfg) {
			t.Fatal("launched with auto-launch off")
		}
	}
}
