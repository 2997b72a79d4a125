package system

import (
	"image/color"
	"math"
	"testing"

	"go-fireworks/internal/component"
	"go-fireworks/internal/config"
)

func spawnCore(rig *testRig, alpha float64) *component.Particle {
	p, _ := rig.world.Particles.Acquire()
	p.Spawn(component.ParticleSpec{
		X: 300, Y: 300, Color: color.RGBA{0, 255, 0, 255}, Speed: 1, IsCore: true, Scale: 1,
	}, &rig.cfg, rig.rng)
	p.Alpha = alpha
	p.FadeSpeed = 0.01
	p.Generation = 1
	p.CanSpawnSecondary = true
	p.Depth = 0.7
	return p
}

func TestSecondaryBurstFiresOnce(t *testing.T) {
	rig := newRig(func(c *config.Config) { c.SecondaryProbability = 1 })
	parent := spawnCore(rig, 0.5)

	rig.particles.Update()
	if got := rig.world.Particles.Len(); got != 1+rig.cfg.SecondaryChildCount {
		t.Fatalf("live = %d, want parent + %d children", got, rig.cfg.SecondaryChildCount)
	}
	if !parent.SecondarySpawned {
		t.Fatal("parent not marked")
	}
	for _, p := range rig.world.Particles.Live() {
		if p == parent {
			continue
		}
		if p.Generation != 2 || !p.SecondarySpawned || p.CanSpawnSecondary || p.IsCore {
			t.Fatalf("child state: gen=%d spawned=%v can=%v core=%v", p.Generation, p.SecondarySpawned, p.CanSpawnSecondary, p.IsCore)
		}
		if p.Depth != parent.Depth || p.Color != parent.Color {
			t.Fatal("child did not inherit depth and colour")
		}
		speed := math.Hypot(p.VX, p.VY)
		// до тика скорость не больше 3.2*1.3*1.2, тик только гасит её трением
		if speed > config.SecondaryBaseSpeed*1.3*1.2+0.1 {
			t.Fatalf("child speed %v too high", speed)
		}
	}

	rig.particles.Update()
	if got := rig.world.Particles.Len(); got != 1+rig.cfg.SecondaryChildCount {
		t.Fatalf("second burst: live = %d", got)
	}
}

func TestSecondaryBurstNeedsAlphaWindow(t *testing.T) {
	for _, alpha := range []float64{0.9, 0.2} {
		rig := newRig(func(c *config.Config) { c.SecondaryProbability = 1 })
		spawnCore(rig, alpha)
		rig.particles.Update()
		if rig.world.Particles.Len() != 1 {
			t.Fatalf("alpha %v: burst outside (0.25, 0.75)", alpha)
		}
	}
}

func TestSecondaryBurstRespectsSwitchAndGeneration(t *testing.T) {
	rig := newRig(func(c *config.Config) {
		c.SecondaryProbability = 1
		c.SecondaryEnabled = false
	})
	spawnCore(rig, 0.5)
	rig.particles.Update()
	if rig.world.Particles.Len() != 1 {
		t.Fatal("burst with secondary disabled")
	}

	rig = newRig(func(c *config.Config) { c.SecondaryProbability = 1 })
	p := spawnCore(rig, 0.5)
	p.Generation = rig.cfg.SecondaryMaxGenerations
	rig.particles.Update()
	if rig.world.Particles.Len() != 1 {
		t.Fatal("burst at max generation")
	}
}

func TestGenerationBound(t *testing.T) {
	for _, maxGen := range []int{1, 2, 3} {
		rig := newRig(func(c *config.Config) {
			c.SecondaryProbability = 1
			c.SecondaryMaxGenerations = maxGen
			c.ParticleCount = 60
			c.MaxRockets = 20
		})
		for i := 0; i < 5; i++ {
			rig.rockets.Launch(500, 800, 100+float64(i)*150, 200, &rig.cfg)
		}
		for tick := 0; tick < 400; tick++ {
			rig.tick()
			for _, p := range rig.world.Particles.Live() {
				if p.Generation > maxGen {
					t.Fatalf("maxGen %d: generation %d", maxGen, p.Generation)
				}
				if p.Generation == maxGen && p.CanSpawnSecondary {
					t.Fatalf("maxGen %d: particle at the cap can cascade", maxGen)
				}
			}
		}
	}
}

func TestDeadParticleReleasedInSameTick(t *testing.T) {
	rig := newRig(nil)
	p := spawnCore(rig, 0.005)
	p.CanSpawnSecondary = false
	rig.particles.Update()
	if rig.world.Particles.Len() != 0 {
		t.Fatal("dead particle still live")
	}
	if p.PoolIndex() != -1 || p.Generation != 0 {
		t.Fatal("released particle not reset")
	}
}

func TestAlphaStrictlyDecreasesWhileLive(t *testing.T) {
	rig := newRig(func(c *config.Config) { c.SecondaryEnabled = false })
	rig.explosion.Explode(rig.rocketAt(500, 300, 1), &rig.cfg)
	prev := map[*component.Particle]float64{}
	for _, p := range rig.world.Particles.Live() {
		prev[p] = p.Alpha
	}
	for tick := 0; tick < 300 && rig.world.Particles.Len() > 0; tick++ {
		rig.particles.Update()
		for _, p := range rig.world.Particles.Live() {
			if p.IsDead() {
				t.Fatal("dead particle survived the update pass")
			}
			if p.Alpha >= prev[p] {
				t.Fatalf("alpha %v did not drop below %v", p.Alpha, prev[p])
			}
			prev[p] = p.Alpha
		}
	}
}

func TestWindPushesOnlyPeripheralParticles(t *testing.T) {
	rig := newRig(nil)
	rig.world.Wind = 1

	core, _ := rig.world.Particles.Acquire()
	core.Spawn(component.ParticleSpec{IsCore: true, Scale: 1}, &rig.cfg, rig.rng)
	peripheral, _ := rig.world.Particles.Acquire()
	peripheral.Spawn(component.ParticleSpec{Scale: 1}, &rig.cfg, rig.rng)
	core.CanSpawnSecondary = false

	rig.particles.Update()
	if core.VX != 0 {
		t.Fatalf("core vx = %v", core.VX)
	}
	want := config.WindFactor * peripheral.Friction
	if math.Abs(peripheral.VX-want) > 1e-12 {
		t.Fatalf("peripheral vx = %v, want %v", peripheral.VX, want)
	}
}

func TestSparkFadesFaster(t *testing.T) {
	rig := newRig(nil)
	rig.particles.EmitSpark(component.ParticleSpec{IsCore: true, Scale: config.SparkScale})
	p := rig.world.Particles.Live()[0]
	if p.IsCore {
		t.Fatal("spark must not be core")
	}
	if p.FadeSpeed < 0.01*config.SparkFadeK {
		t.Fatalf("spark fade %v", p.FadeSpeed)
	}
	if p.CanSpawnSecondary || p.Generation != 0 {
		t.Fatal("spark eligible for secondary bursts")
	}
}

func TestWindStaysBounded(t *testing.T) {
	rig := newRig(nil)
	wind := NewWindSystem(rig.world, rig.rng)
	limit := config.WindAmplitude + config.WindNoise/2
	for i := 0; i < 2000; i++ {
		wind.Update()
		if math.Abs(rig.world.Wind) > limit {
			t.Fatalf("wind %v exceeds %v", rig.world.Wind, limit)
		}
	}
	if math.Abs(rig.world.Time-2000*config.WindStep) > 1e-9 {
		t.Fatalf("wind phase %v", rig.world.Time)
	}
}
