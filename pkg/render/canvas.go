// pkg/render/canvas.go
package render

import (
	"errors"
	"image/color"
)

// ErrNoOffscreen: поверхность не умеет создавать внеэкранные слои
var ErrNoOffscreen = errors.New("offscreen layers not supported")

// Point: точка пути в координатах поверхности
type Point struct {
	X, Y float32
}

// Blend: режим смешивания
type Blend int

const (
	BlendSourceOver Blend = iota
	BlendLighter          // аддитивное смешивание для света
)

// Canvas is the drawable surface the show renders into.
// Движок только пишет в него и никогда не читает нарисованное.
// Цвет передаётся непрозрачным, прозрачность, отдельным alpha в [0, 1].
type Canvas interface {
	Size() (w, h int)
	Fill(c color.RGBA, alpha float32)
	SetBlend(b Blend)
	FillRect(x, y, w, h float32, c color.RGBA, alpha float32)
	FillCircle(cx, cy, r float32, c color.RGBA, alpha float32)
	StrokeCircle(cx, cy, r, width float32, c color.RGBA, alpha float32)
	FillPath(pts []Point, c color.RGBA, alpha float32)
	StrokePath(pts []Point, width float32, c color.RGBA, alpha float32)
	DrawLayer(l Layer, alpha float32)
}

// Layer: внеэкранная поверхность для статичных слоёв (звёзды, силуэт города)
type Layer interface {
	Canvas
	Clear()
	Dispose()
}

// LayerProvider: необязательная возможность поверхности
type LayerProvider interface {
	NewLayer(w, h int) (Layer, error)
}

// NewLayer создаёт слой, если поверхность это умеет.
func NewLayer(c Canvas, w, h int) (Layer, error) {
	lp, ok := c.(LayerProvider)
	if !ok {
		return nil, ErrNoOffscreen
	}
	return lp.NewLayer(w, h)
}
