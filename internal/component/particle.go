// internal/component/particle.go
package component

import (
	"image/color"
	"math"

	"go-fireworks/internal/config"
	"go-fireworks/internal/utils"
)

// TrailPoint: точка хвоста core-частицы
type TrailPoint struct {
	X, Y  float64
	Alpha float64
}

// ParticleSpec: параметры рождения частицы
type ParticleSpec struct {
	X, Y   float64
	Color  color.RGBA
	Angle  float64
	Speed  float64
	Shape  Shape
	IsCore bool
	Scale  float64
}

// Particle: светящаяся точка. Живёт в live-списке пула частиц.
type Particle struct {
	X, Y   float64
	VX, VY float64

	Color  color.RGBA
	Shape  Shape
	IsCore bool
	Scale  float64
	Depth  float64 // 1 — передний план, меньше — дальше и тусклее
	Size   float64

	Alpha     float64 // оставшаяся жизнь, <= 0 — мертва
	FadeSpeed float64

	// Окружение, разыгранное при рождении
	Gravity  float64
	Friction float64

	TwinkleOffset float64
	TwinkleSpeed  float64

	Generation        int // 0 — корень, 1 — взрыв, 2+ — вторичные
	CanSpawnSecondary bool
	SecondarySpawned  bool

	trail     [config.CoreTrailLength]TrailPoint
	trailHead int
	trailLen  int
	trailCap  int

	poolIndex int
}

// NewParticle: конструктор для пула
func NewParticle() *Particle {
	return &Particle{poolIndex: -1, Depth: 1}
}

func (p *Particle) PoolIndex() int     { return p.poolIndex }
func (p *Particle) SetPoolIndex(i int) { p.poolIndex = i }

// Reset очищает всё, что зависит от жизненного цикла
func (p *Particle) Reset() {
	idx := p.poolIndex
	*p = Particle{poolIndex: idx, Depth: 1}
}

// Spawn инициализирует частицу. Пул не делает этого сам.
func (p *Particle) Spawn(spec ParticleSpec, cfg *config.Config, rng *utils.Rand) {
	p.X, p.Y = spec.X, spec.Y
	p.Color = spec.Color
	p.Shape = spec.Shape
	p.IsCore = spec.IsCore
	p.Scale = spec.Scale
	if p.Scale <= 0 {
		p.Scale = 1
	}
	p.Depth = 1

	// ±20% разброса скорости на каждую частицу
	variation := 0.8 + rng.Range(0, 0.4)
	p.VX = math.Cos(spec.Angle) * spec.Speed * variation
	p.VY = math.Sin(spec.Angle) * spec.Speed * variation

	p.Alpha = 1
	fadeK := cfg.FadeSpeed / config.DefaultFadeSpeed
	if p.IsCore {
		p.FadeSpeed = rng.Range(0.005, 0.012) * fadeK
		p.Size = rng.Range(5, 8) * p.Scale
	} else {
		p.FadeSpeed = rng.Range(0.01, 0.025) * fadeK
		p.Size = rng.Range(3, 5) * p.Scale
	}

	p.TwinkleOffset = rng.Range(0, 2*math.Pi)
	p.TwinkleSpeed = rng.Range(10, 20)

	p.Gravity = cfg.Gravity + rng.Range(0, 0.04)
	p.Friction = cfg.Friction + rng.Range(0, 0.02)

	p.Generation = 0
	p.CanSpawnSecondary = false
	p.SecondarySpawned = false

	p.trailHead, p.trailLen, p.trailCap = 0, 0, 0
	if p.IsCore && cfg.ShowTrails {
		p.trailCap = config.CoreTrailLength
	}
}

// Tick продвигает частицу на один тик
func (p *Particle) Tick() {
	if p.trailCap > 0 {
		p.pushTrail()
	}

	p.X += p.VX
	p.Y += p.VY
	p.VY += p.Gravity
	p.VX *= p.Friction
	p.VY *= p.Friction

	p.Alpha -= p.FadeSpeed
}

func (p *Particle) pushTrail() {
	slot := (p.trailHead + p.trailLen) % p.trailCap
	p.trail[slot] = TrailPoint{X: p.X, Y: p.Y, Alpha: p.Alpha}
	if p.trailLen < p.trailCap {
		p.trailLen++
	} else {
		// самая старая точка вытесняется
		p.trailHead = (p.trailHead + 1) % p.trailCap
	}
}

// IsDead: жизнь кончилась
func (p *Particle) IsDead() bool {
	return p.Alpha <= 0
}

// TrailLen: сколько точек в хвосте
func (p *Particle) TrailLen() int {
	return p.trailLen
}

// Trail дописывает хвост в dst от старой точки к новой.
func (p *Particle) Trail(dst []TrailPoint) []TrailPoint {
	dst = dst[:0]
	for i := 0; i < p.trailLen; i++ {
		dst = append(dst, p.trail[(p.trailHead+i)%p.trailCap])
	}
	return dst
}
