// internal/system/render.go
package system

import (
	"math"

	"go-fireworks/internal/component"
	"go-fireworks/internal/config"
	"go-fireworks/internal/entity"
	"go-fireworks/internal/utils"
	"go-fireworks/pkg/render"
)

// RenderSystem рисует кадр. Состояние симуляции только читается.
type RenderSystem struct {
	world *entity.World
	sky   *SkySystem
	clock float64 // секунды, для мерцания частиц

	trail []component.TrailPoint
	path  []render.Point
}

func NewRenderSystem(world *entity.World, sky *SkySystem) *RenderSystem {
	return &RenderSystem{world: world, sky: sky}
}

// EffectiveShape: форма, которой частица рисуется в этом кадре.
// В упрощённом режиме не-core частицы рисуются кругом.
func EffectiveShape(p *component.Particle, forceSimple bool) component.Shape {
	if forceSimple && !p.IsCore {
		return component.ShapeCircle
	}
	return p.Shape
}

// RenderStep: при большой нагрузке рисуется только каждая step-я не-core частица
func RenderStep(live int) int {
	switch {
	case live > config.RenderStep4Above:
		return 4
	case live > config.RenderStep2Above:
		return 2
	}
	return 1
}

// Draw рисует кадр. lowFPS: замер частоты ниже цели больше чем на BudgetMargin.
func (s *RenderSystem) Draw(c render.Canvas, cfg *config.Config, dt float64, lowFPS bool) {
	s.clock += dt
	w, h := c.Size()

	c.SetBlend(render.BlendSourceOver)
	// полупрозрачная заливка оставляет за частицами короткий шлейф
	c.Fill(config.BackgroundColor, config.BackgroundAlpha)
	c.FillCircle(float32(w)/2, float32(h), float32(h)*0.8, config.HorizonGlowColor, 0.15)

	s.sky.Draw(c, cfg)

	c.SetBlend(render.BlendLighter)
	for _, r := range s.world.Rockets.Live() {
		s.drawRocket(c, r, cfg)
	}

	particles := s.world.Particles.Live()
	forceSimple := lowFPS || len(particles) > config.HighLoadParticles
	step := RenderStep(len(particles))
	for i, p := range particles {
		if !p.IsCore && step > 1 && i%step != 0 {
			continue
		}
		s.drawParticle(c, p, cfg, forceSimple, float64(w), float64(h))
	}

	c.SetBlend(render.BlendSourceOver)
}

func (s *RenderSystem) drawRocket(c render.Canvas, r *component.Rocket, cfg *config.Config) {
	depth := float32(r.Depth)

	s.trail = r.Trail(s.trail)
	if len(s.trail) > 1 {
		s.path = s.path[:0]
		for _, tp := range s.trail {
			s.path = append(s.path, render.Point{X: float32(tp.X), Y: float32(tp.Y)})
		}
		c.StrokePath(s.path, 2*depth, config.RocketTrailColor, 0.4*depth)
	}

	size := float32(r.Size) * depth
	if cfg.EnableGlow {
		glow := float32(cfg.GlowBlur / 15)
		c.FillCircle(float32(r.X), float32(r.Y), size*(1+glow), render.Brighten(config.RocketColor, 0.5), 0.3*depth)
	}
	c.FillCircle(float32(r.X), float32(r.Y), size, config.RocketColor, depth)
}

func (s *RenderSystem) drawParticle(c render.Canvas, p *component.Particle, cfg *config.Config, forceSimple bool, w, h float64) {
	if p.X < -config.CullMargin || p.X > w+config.CullMargin || p.Y < -config.CullMargin || p.Y > h+config.CullMargin {
		return
	}

	alpha := utils.Clamp(p.Alpha, 0, 1) * p.Depth
	if alpha <= 0.01 {
		return
	}
	// мерцание во второй половине жизни
	if p.Alpha < 0.5 {
		alpha *= 0.7 + 0.3*math.Sin(s.clock*10*p.TwinkleSpeed+p.TwinkleOffset)
	}

	x, y := float32(p.X), float32(p.Y)

	if p.IsCore && cfg.ShowTrails && p.TrailLen() > 1 {
		s.trail = p.Trail(s.trail)
		s.path = s.path[:0]
		for _, tp := range s.trail {
			s.path = append(s.path, render.Point{X: float32(tp.X), Y: float32(tp.Y)})
		}
		c.StrokePath(s.path, float32(p.Size*p.Depth*0.5), p.Color, float32(alpha*cfg.TrailAlpha))
	}

	size := float32(p.Size * p.Depth)
	a := float32(alpha)
	fill := p.Color
	if p.Alpha > 0.8 {
		fill = config.HotWhite
	}

	if !p.IsCore && (size < 3.5 || alpha < 0.4) {
		c.FillRect(x-size/2, y-size/2, size, size, fill, a)
		return
	}

	switch EffectiveShape(p, forceSimple) {
	case component.ShapeStar:
		s.path = render.Place(s.path, render.StarPath, x, y, size)
		c.FillPath(s.path, fill, a)
	case component.ShapeHeart:
		s.path = render.Place(s.path, render.HeartPath, x, y, size)
		c.FillPath(s.path, fill, a)
	case component.ShapeRing:
		c.StrokeCircle(x, y, size*1.2, 1, p.Color, a)
	default:
		c.FillCircle(x, y, size, fill, a)
		if p.IsCore && p.Alpha > 0.4 {
			c.FillCircle(x, y, size*0.4, config.HotWhite, a)
		}
	}
}
