// pkg/render/ebitenr/canvas.go
package ebitenr

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"go-fireworks/pkg/render"
)

// Canvas рисует в *ebiten.Image через треугольники.
// Один белый пиксель служит источником, цвет задаётся вершинами.
type Canvas struct {
	target *ebiten.Image
	white  *ebiten.Image
	blend  ebiten.Blend

	vs []ebiten.Vertex
	is []uint16
}

var (
	_ render.Canvas        = (*Canvas)(nil)
	_ render.LayerProvider = (*Canvas)(nil)
)

// New оборачивает целевое изображение. Цель можно сменить через SetTarget.
func New(target *ebiten.Image) *Canvas {
	white := ebiten.NewImage(1, 1)
	white.Fill(color.White)
	return &Canvas{
		target: target,
		white:  white,
		blend:  ebiten.BlendSourceOver,
		vs:     make([]ebiten.Vertex, 0, 64),
		is:     make([]uint16, 0, 96),
	}
}

// SetTarget переключает холст на новый экран кадра
func (c *Canvas) SetTarget(target *ebiten.Image) {
	c.target = target
}

func (c *Canvas) Size() (int, int) {
	b := c.target.Bounds()
	return b.Dx(), b.Dy()
}

func (c *Canvas) SetBlend(b render.Blend) {
	if b == render.BlendLighter {
		c.blend = ebiten.BlendLighter
		return
	}
	c.blend = ebiten.BlendSourceOver
}

func (c *Canvas) Fill(col color.RGBA, alpha float32) {
	w, h := c.Size()
	c.FillRect(0, 0, float32(w), float32(h), col, alpha)
}

func (c *Canvas) FillRect(x, y, w, h float32, col color.RGBA, alpha float32) {
	var path vector.Path
	path.MoveTo(x, y)
	path.LineTo(x+w, y)
	path.LineTo(x+w, y+h)
	path.LineTo(x, y+h)
	path.Close()
	c.fill(&path, col, alpha)
}

func (c *Canvas) FillCircle(cx, cy, r float32, col color.RGBA, alpha float32) {
	if r <= 0 {
		return
	}
	var path vector.Path
	path.Arc(cx, cy, r, 0, 2*math.Pi, vector.Clockwise)
	path.Close()
	c.fill(&path, col, alpha)
}

func (c *Canvas) StrokeCircle(cx, cy, r, width float32, col color.RGBA, alpha float32) {
	if r <= 0 {
		return
	}
	var path vector.Path
	path.Arc(cx, cy, r, 0, 2*math.Pi, vector.Clockwise)
	path.Close()
	c.stroke(&path, width, col, alpha)
}

func (c *Canvas) FillPath(pts []render.Point, col color.RGBA, alpha float32) {
	if len(pts) < 3 {
		return
	}
	path := polyline(pts)
	c.fill(&path, col, alpha)
}

func (c *Canvas) StrokePath(pts []render.Point, width float32, col color.RGBA, alpha float32) {
	if len(pts) < 2 {
		return
	}
	path := polyline(pts)
	c.stroke(&path, width, col, alpha)
}

func (c *Canvas) DrawLayer(l render.Layer, alpha float32) {
	layer, ok := l.(*Layer)
	if !ok {
		return
	}
	op := &ebiten.DrawImageOptions{Blend: c.blend}
	op.ColorScale.ScaleAlpha(alpha)
	c.target.DrawImage(layer.img, op)
}

// NewLayer создаёт внеэкранное изображение того же размера
func (c *Canvas) NewLayer(w, h int) (render.Layer, error) {
	img := ebiten.NewImage(w, h)
	return &Layer{Canvas: New(img), img: img}, nil
}

func polyline(pts []render.Point) vector.Path {
	var path vector.Path
	path.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		path.LineTo(p.X, p.Y)
	}
	return path
}

func (c *Canvas) fill(path *vector.Path, col color.RGBA, alpha float32) {
	c.vs, c.is = path.AppendVerticesAndIndicesForFilling(c.vs[:0], c.is[:0])
	c.draw(col, alpha)
}

func (c *Canvas) stroke(path *vector.Path, width float32, col color.RGBA, alpha float32) {
	c.vs, c.is = path.AppendVerticesAndIndicesForStroke(c.vs[:0], c.is[:0], &vector.StrokeOptions{
		Width:    width,
		LineJoin: vector.LineJoinRound,
		LineCap:  vector.LineCapRound,
	})
	c.draw(col, alpha)
}

func (c *Canvas) draw(col color.RGBA, alpha float32) {
	if len(c.is) == 0 {
		return
	}
	a := alpha * float32(col.A) / 255
	for i := range c.vs {
		c.vs[i].SrcX, c.vs[i].SrcY = 0.5, 0.5
		c.vs[i].ColorR = float32(col.R) / 255
		c.vs[i].ColorG = float32(col.G) / 255
		c.vs[i].ColorB = float32(col.B) / 255
		c.vs[i].ColorA = a
	}
	c.target.DrawTriangles(c.vs, c.is, c.white, &ebiten.DrawTrianglesOptions{
		AntiAlias: true,
		Blend:     c.blend,
	})
}

// Layer: предрендеренное изображение, как mapImage у гекс-карты
type Layer struct {
	*Canvas
	img *ebiten.Image
}

func (l *Layer) Clear() { l.img.Clear() }

func (l *Layer) Dispose() {
	l.img.Deallocate()
	l.white.Deallocate()
}
