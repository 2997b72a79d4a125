// internal/component/rocket.go
package component

import (
	"math"

	"go-fireworks/internal/config"
	"go-fireworks/internal/utils"
)

// SparkSink: куда ракета отдаёт искры при подъёме.
// Ракета не владеет приёмником и не переживает его.
type SparkSink interface {
	EmitSpark(spec ParticleSpec)
}

// Rocket: фаза подъёма, которая заканчивается ровно одним взрывом.
type Rocket struct {
	X, Y             float64
	StartX, StartY   float64
	TargetX, TargetY float64
	VX, VY           float64

	Distance float64
	Traveled float64

	Scale    float64 // размер взрыва и частиц
	Depth    float64 // 1 или 0.7
	Size     float64
	Exploded bool

	trail     [config.RocketTrailLength]TrailPoint
	trailHead int
	trailLen  int

	sparks    SparkSink
	rng       *utils.Rand
	poolIndex int
}

// NewRocket: конструктор для пула
func NewRocket() *Rocket {
	return &Rocket{poolIndex: -1, Depth: 1}
}

func (r *Rocket) PoolIndex() int     { return r.poolIndex }
func (r *Rocket) SetPoolIndex(i int) { r.poolIndex = i }

func (r *Rocket) Reset() {
	idx := r.poolIndex
	*r = Rocket{poolIndex: idx, Depth: 1}
}

// Launch готовит ракету к полёту из start в target.
func (r *Rocket) Launch(startX, startY, targetX, targetY float64, cfg *config.Config, rng *utils.Rand, sparks SparkSink) {
	r.X, r.Y = startX, startY
	r.StartX, r.StartY = startX, startY
	r.TargetX, r.TargetY = targetX, targetY
	r.sparks = sparks
	r.rng = rng

	r.Scale = rng.Range(0.75, 1.25)
	r.Depth = 1
	if !rng.Chance(0.7) {
		r.Depth = 0.7
	}

	dx := targetX - startX
	dy := targetY - startY
	r.Distance = utils.Distance(startX, startY, targetX, targetY)
	r.Traveled = 0
	r.Exploded = false

	speed := cfg.RocketSpeed
	if cfg.RocketSpeedJitter > 0 {
		speed += rng.Range(0, cfg.RocketSpeedJitter)
	}
	if r.Distance > 0 {
		r.VX = dx / r.Distance * speed
		r.VY = dy / r.Distance * speed
	} else {
		r.VX, r.VY = 0, 0
	}

	r.Size = 3 * r.Scale
	r.trailHead, r.trailLen = 0, 0
}

// Tick двигает ракету. Возвращает true ровно один раз, в тик взрыва.
func (r *Rocket) Tick() bool {
	if r.Exploded {
		return false
	}
	r.pushTrail()

	// Искры при подъёме: чистая декорация
	if r.sparks != nil && r.rng.Chance(config.SparkChance) {
		r.sparks.EmitSpark(ParticleSpec{
			X:     r.X,
			Y:     r.Y,
			Color: config.SparkColor,
			Angle: math.Pi/2 + r.rng.Range(-0.2, 0.2),
			Speed: r.rng.Range(1, 3),
			Shape: ShapeCircle,
			Scale: config.SparkScale,
		})
	}

	r.X += r.VX
	r.Y += r.VY
	r.Traveled += math.Hypot(r.VX, r.VY)

	if r.Traveled >= r.Distance {
		r.Exploded = true
		return true
	}
	return false
}

func (r *Rocket) pushTrail() {
	n := len(r.trail)
	slot := (r.trailHead + r.trailLen) % n
	r.trail[slot] = TrailPoint{X: r.X, Y: r.Y, Alpha: 1}
	if r.trailLen < n {
		r.trailLen++
	} else {
		r.trailHead = (r.trailHead + 1) % n
	}
}

// Trail дописывает хвост ракеты в dst от старой точки к новой.
func (r *Rocket) Trail(dst []TrailPoint) []TrailPoint {
	dst = dst[:0]
	for i := 0; i < r.trailLen; i++ {
		dst = append(dst, r.trail[(r.trailHead+i)%len(r.trail)])
	}
	return dst
}
