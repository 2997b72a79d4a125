package system

import (
	"testing"

	"go-fireworks/internal/component"
	"go-fireworks/internal/config"
	"go-fireworks/pkg/render"
)

func TestEffectiveShapeDoesNotMutate(t *testing.T) {
	p := component.NewParticle()
	p.Shape = component.ShapeStar

	if got := EffectiveShape(p, true); got != component.ShapeCircle {
		t.Fatalf("simplified peripheral shape = %v", got)
	}
	if p.Shape != component.ShapeStar {
		t.Fatal("EffectiveShape changed the particle")
	}
	if got := EffectiveShape(p, false); got != component.ShapeStar {
		t.Fatalf("normal shape = %v", got)
	}
	p.IsCore = true
	if got := EffectiveShape(p, true); got != component.ShapeStar {
		t.Fatalf("core shape simplified to %v", got)
	}
}

func TestRenderStep(t *testing.T) {
	tests := []struct {
		live, want int
	}{
		{0, 1},
		{1200, 1},
		{1201, 2},
		{2000, 2},
		{2001, 4},
	}
	for _, tt := range tests {
		if got := RenderStep(tt.live); got != tt.want {
			t.Errorf("RenderStep(%d) = %d, want %d", tt.live, got, tt.want)
		}
	}
}

func newRenderRig(t *testing.T) (*testRig, *SkySystem, *RenderSystem) {
	t.Helper()
	rig := newRig(func(c *config.Config) { c.StarCount = 30 })
	sky := NewSkySystem(rig.rng)
	sky.Resize(rig.world.Width, rig.world.Height, &rig.cfg)
	return rig, sky, NewRenderSystem(rig.world, sky)
}

func TestSkyUsesLayersWhenAvailable(t *testing.T) {
	rig, sky, rs := newRenderRig(t)
	canvas := render.NewRecorder(1000, 800, true)

	rs.Draw(canvas, &rig.cfg, 1.0/60, false)
	if canvas.Layers != config.StarLayerCount+1 {
		t.Fatalf("%d layers, want %d", canvas.Layers, config.StarLayerCount+1)
	}
	if got := canvas.Count(render.OpDrawLayer); got != config.StarLayerCount+1 {
		t.Fatalf("%d layer draws", got)
	}

	canvas.Reset()
	rs.Draw(canvas, &rig.cfg, 1.0/60, false)
	if canvas.Layers != config.StarLayerCount+1 {
		t.Fatal("layers recreated on the second frame")
	}
	if sky.Direct() {
		t.Fatal("sky fell back with layers available")
	}
}

func TestSkyFallsBackWithoutLayers(t *testing.T) {
	rig, sky, rs := newRenderRig(t)
	canvas := render.NewRecorder(1000, 800, false)

	rs.Draw(canvas, &rig.cfg, 1.0/60, false)
	if !sky.Direct() {
		t.Fatal("sky did not fall back")
	}
	if canvas.Count(render.OpDrawLayer) != 0 {
		t.Fatal("layer drawn without offscreen support")
	}
	// звёзды и дома рисуются напрямую
	if canvas.Count(render.OpFillCircle) < rig.cfg.StarCount {
		t.Fatalf("%d circles for %d stars", canvas.Count(render.OpFillCircle), rig.cfg.StarCount)
	}
	if canvas.Count(render.OpFillRect) == 0 {
		t.Fatal("skyline not drawn")
	}
}

func TestSkyHonoursSwitches(t *testing.T) {
	rig, _, rs := newRenderRig(t)
	rig.cfg.ShowStars = false
	rig.cfg.SkylineEnabled = false
	canvas := render.NewRecorder(1000, 800, true)
	rs.Draw(canvas, &rig.cfg, 1.0/60, false)
	if canvas.Layers != 0 || canvas.Count(render.OpDrawLayer) != 0 {
		t.Fatal("sky drawn while disabled")
	}
}

func TestRenderDrawsEntitiesAdditively(t *testing.T) {
	rig, _, rs := newRenderRig(t)
	rig.cfg.ShowStars = false
	rig.cfg.SkylineEnabled = false
	rig.rockets.Launch(500, 800, 500, 100, &rig.cfg)
	rig.explosion.Explode(rig.rocketAt(500, 400, 1), &rig.cfg)

	before := make([]component.Particle, 0, rig.world.Particles.Len())
	for _, p := range rig.world.Particles.Live() {
		before = append(before, *p)
	}

	canvas := render.NewRecorder(1000, 800, false)
	rs.Draw(canvas, &rig.cfg, 1.0/60, true)

	additive := 0
	for _, op := range canvas.Ops {
		if op.Blend == render.BlendLighter {
			additive++
		}
	}
	if additive < len(before) {
		t.Fatalf("%d additive ops for %d particles", additive, len(before))
	}
	for i, p := range rig.world.Particles.Live() {
		if *p != before[i] {
			t.Fatal("render pass mutated a particle")
		}
	}
}

func TestRenderCullsOffscreenParticles(t *testing.T) {
	rig, _, rs := newRenderRig(t)
	rig.cfg.ShowStars = false
	rig.cfg.SkylineEnabled = false
	p, _ := rig.world.Particles.Acquire()
	p.Spawn(component.ParticleSpec{X: -500, Y: -500, IsCore: true, Scale: 1}, &rig.cfg, rig.rng)

	canvas := render.NewRecorder(1000, 800, false)
	rs.Draw(canvas, &rig.cfg, 1.0/60, false)
	// только фон и свечение горизонта
	if len(canvas.Ops) != 2 {
		t.Fatalf("%d ops, want 2", len(canvas.Ops))
	}
}
