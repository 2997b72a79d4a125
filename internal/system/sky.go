// internal/system/sky.go
package system

import (
	"errors"
	"log"
	"math"

	"go-fireworks/internal/config"
	"go-fireworks/internal/utils"
	"go-fireworks/pkg/render"
)

type star struct {
	x, y         float64
	radius       float64
	baseAlpha    float64
	twinkleSpeed float64
	phase        float64
}

type lightWindow struct {
	rx, ry, rw, rh float64
}

type building struct {
	x, width, height float64
	windows          []lightWindow
}

// SkySystem рисует звёзды и силуэт города. Если поверхность умеет
// внеэкранные слои, статичное рисуется в них один раз, иначе каждый кадр.
type SkySystem struct {
	rng           *utils.Rand
	width, height float64

	stars     []star
	buildings []building
	starTime  float64

	// параметры, под которые сгенерировано небо
	genStars int
	genRatio float64

	starLayers []render.Layer
	skyline    render.Layer
	layersOK   bool // слои созданы и отрисованы под текущее небо
	direct     bool // слоёв нет, рисуем напрямую
	warned     bool
}

func NewSkySystem(rng *utils.Rand) *SkySystem {
	return &SkySystem{rng: rng, genStars: -1}
}

// Resize пересоздаёт небо под новый размер. Слои будут созданы заново
// на следующем Draw.
func (s *SkySystem) Resize(width, height float64, cfg *config.Config) {
	s.width, s.height = width, height
	s.generate(cfg)
	s.Dispose()
}

func (s *SkySystem) generate(cfg *config.Config) {
	s.genStars = cfg.StarCount
	s.genRatio = cfg.SkylineHeightRatio

	s.stars = s.stars[:0]
	for i := 0; i < cfg.StarCount; i++ {
		s.stars = append(s.stars, star{
			x:            s.rng.Range(0, s.width),
			y:            s.rng.Range(0, s.height*config.StarSkyRatio),
			radius:       s.rng.Range(0.5, 1.5),
			baseAlpha:    s.rng.Range(0.3, 0.8),
			twinkleSpeed: s.rng.Range(0.5, 1.5),
			phase:        s.rng.Range(0, 2*math.Pi),
		})
	}

	const minWidth, maxWidth = 30.0, 70.0
	baseHeight := s.height * cfg.SkylineHeightRatio
	s.buildings = s.buildings[:0]
	for x := 0.0; x < s.width+maxWidth; {
		w := s.rng.Range(minWidth, maxWidth)
		bh := baseHeight * s.rng.Range(0.4, 1)
		b := building{x: x, width: w, height: bh}
		if bh > 20 {
			rows := int(bh / 10)
			cols := int(w / 8)
			for r := 0; r < rows; r++ {
				for c := 0; c < cols; c++ {
					// горит примерно каждое третье окно
					if s.rng.Chance(0.3) {
						b.windows = append(b.windows, lightWindow{
							rx: float64(c*8 + 2), ry: float64(r*10 + 2), rw: 4, rh: 6,
						})
					}
				}
			}
		}
		s.buildings = append(s.buildings, b)
		x += w * s.rng.Range(0.7, 1.1)
	}
}

// Dispose освобождает внеэкранные слои
func (s *SkySystem) Dispose() {
	for _, l := range s.starLayers {
		l.Dispose()
	}
	s.starLayers = nil
	if s.skyline != nil {
		s.skyline.Dispose()
		s.skyline = nil
	}
	s.layersOK = false
}

// Direct сообщает, что небо рисуется без внеэкранных слоёв
func (s *SkySystem) Direct() bool { return s.direct }

func (s *SkySystem) prepare(c render.Canvas, cfg *config.Config) {
	if cfg.StarCount != s.genStars || cfg.SkylineHeightRatio != s.genRatio {
		s.generate(cfg)
		s.layersOK = false
	}
	if s.layersOK || s.direct {
		return
	}

	if s.starLayers == nil {
		w, h := c.Size()
		layers := make([]render.Layer, 0, config.StarLayerCount)
		var err error
		for i := 0; i < config.StarLayerCount && err == nil; i++ {
			var l render.Layer
			if l, err = render.NewLayer(c, w, h); err == nil {
				layers = append(layers, l)
			}
		}
		var skyline render.Layer
		if err == nil {
			skyline, err = render.NewLayer(c, w, h)
		}
		if err != nil {
			for _, l := range layers {
				l.Dispose()
			}
			s.fallback(err)
			return
		}
		s.starLayers = layers
		s.skyline = skyline
	}

	for _, l := range s.starLayers {
		l.Clear()
	}
	for i, st := range s.stars {
		s.starLayers[i%len(s.starLayers)].FillCircle(float32(st.x), float32(st.y), float32(st.radius), config.StarColor, float32(st.baseAlpha))
	}
	s.skyline.Clear()
	s.drawBuildings(s.skyline, true)
	s.layersOK = true
}

// fallback включает прямое рисование. Предупреждение пишется один раз.
func (s *SkySystem) fallback(err error) {
	s.direct = true
	if s.warned {
		return
	}
	s.warned = true
	if errors.Is(err, render.ErrNoOffscreen) {
		log.Println("offscreen layers not supported, falling back to real-time rendering")
		return
	}
	log.Printf("failed to create offscreen layers, falling back to real-time rendering: %v", err)
}

func (s *SkySystem) drawBuildings(c render.Canvas, withWindows bool) {
	for _, b := range s.buildings {
		top := s.height - b.height
		c.FillRect(float32(b.x), float32(top), float32(b.width), float32(b.height), config.SkylineColor, 1)
		if !withWindows {
			continue
		}
		for _, w := range b.windows {
			c.FillRect(float32(b.x+w.rx), float32(top+w.ry), float32(w.rw), float32(w.rh), config.WindowLightColor, 0.6)
		}
	}
}

// Draw рисует звёзды (если включены) и город (если включён)
func (s *SkySystem) Draw(c render.Canvas, cfg *config.Config) {
	if !cfg.ShowStars && !cfg.SkylineEnabled {
		return
	}
	s.prepare(c, cfg)
	s.starTime += 0.005

	if cfg.ShowStars {
		if s.direct {
			for _, st := range s.stars {
				t := s.starTime*st.twinkleSpeed + st.phase
				alpha := st.baseAlpha * (0.6 + 0.4*math.Sin(t))
				c.FillCircle(float32(st.x), float32(st.y), float32(st.radius), config.StarColor, float32(alpha))
			}
		} else {
			n := len(s.starLayers)
			for i, l := range s.starLayers {
				// у каждого слоя своя фаза и частота мерцания
				phase := float64(i) * (2 * math.Pi / float64(n)) * 1.5
				freq := 0.8 + math.Mod(float64(i)*0.3, 1.5)
				alpha := 0.6 + 0.4*math.Sin(s.starTime*freq+phase)
				if i%2 == 0 {
					alpha *= 0.8
				}
				c.DrawLayer(l, float32(alpha))
			}
		}
	}

	if cfg.SkylineEnabled {
		if s.direct {
			s.drawBuildings(c, false)
		} else {
			c.DrawLayer(s.skyline, 1)
		}
	}
}
