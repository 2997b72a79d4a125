// pkg/render/tcellr/canvas.go
package tcellr

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"go-fireworks/pkg/render"
)

// Canvas растеризует шоу в буфер и выводит его в терминал полублоками:
// каждая ячейка содержит два пикселя по вертикали, верхний цвет в fg, нижний в bg.
// Логическое разрешение больше сетки в Scale раз, чтобы физика движка
// работала в привычных пиксельных величинах.
type Canvas struct {
	Scale int
	// Brightness приглушает вывод, при 1 цвета не меняются
	Brightness float64

	cols, rows int
	pix        []rgb // cols x rows*2
	blend      render.Blend
}

type rgb struct{ r, g, b float32 }

var _ render.Canvas = (*Canvas)(nil)

func New(cols, rows, scale int) *Canvas {
	c := &Canvas{Scale: scale, Brightness: 1}
	c.Resize(cols, rows)
	return c
}

// Resize меняет сетку ячеек и очищает буфер
func (c *Canvas) Resize(cols, rows int) {
	if c.Scale < 1 {
		c.Scale = 1
	}
	c.cols, c.rows = max(cols, 1), max(rows, 1)
	c.pix = make([]rgb, c.cols*c.rows*2)
}

// Size: логический размер в пикселях движка
func (c *Canvas) Size() (int, int) {
	return c.cols * c.Scale, c.rows * 2 * c.Scale
}

func (c *Canvas) SetBlend(b render.Blend) { c.blend = b }

func (c *Canvas) plot(px, py int, col color.RGBA, alpha float32) {
	if px < 0 || py < 0 || px >= c.cols || py >= c.rows*2 || alpha <= 0 {
		return
	}
	a := alpha * float32(col.A) / 255
	if a > 1 {
		a = 1
	}
	p := &c.pix[py*c.cols+px]
	r, g, b := float32(col.R)/255, float32(col.G)/255, float32(col.B)/255
	if c.blend == render.BlendLighter {
		p.r = min(p.r+r*a, 1)
		p.g = min(p.g+g*a, 1)
		p.b = min(p.b+b*a, 1)
		return
	}
	p.r += (r - p.r) * a
	p.g += (g - p.g) * a
	p.b += (b - p.b) * a
}

// cell переводит логическую координату в индекс пикселя буфера
func (c *Canvas) cell(v float32) int {
	return int(math.Floor(float64(v) / float64(c.Scale)))
}

func (c *Canvas) Fill(col color.RGBA, alpha float32) {
	for py := 0; py < c.rows*2; py++ {
		for px := 0; px < c.cols; px++ {
			c.plot(px, py, col, alpha)
		}
	}
}

func (c *Canvas) FillRect(x, y, w, h float32, col color.RGBA, alpha float32) {
	x0, y0 := c.cell(x), c.cell(y)
	x1, y1 := c.cell(x+w-0.001), c.cell(y+h-0.001)
	for py := y0; py <= y1; py++ {
		for px := x0; px <= x1; px++ {
			c.plot(px, py, col, alpha)
		}
	}
}

// FillCircle: круг меньше пикселя всё равно оставляет точку,
// прозрачность падает пропорционально площади.
func (c *Canvas) FillCircle(cx, cy, r float32, col color.RGBA, alpha float32) {
	s := float32(c.Scale)
	if r*2 < s {
		c.plot(c.cell(cx), c.cell(cy), col, alpha*min(1, (r*2/s)*(r*2/s)+0.25))
		return
	}
	x0, y0, x1, y1 := c.cell(cx-r), c.cell(cy-r), c.cell(cx+r), c.cell(cy+r)
	for py := y0; py <= y1; py++ {
		for px := x0; px <= x1; px++ {
			dx := (float32(px)+0.5)*s - cx
			dy := (float32(py)+0.5)*s - cy
			if dx*dx+dy*dy <= r*r {
				c.plot(px, py, col, alpha)
			}
		}
	}
}

func (c *Canvas) StrokeCircle(cx, cy, r, width float32, col color.RGBA, alpha float32) {
	s := float32(c.Scale)
	half := max(width, s) / 2
	x0, y0, x1, y1 := c.cell(cx-r-half), c.cell(cy-r-half), c.cell(cx+r+half), c.cell(cy+r+half)
	for py := y0; py <= y1; py++ {
		for px := x0; px <= x1; px++ {
			dx := (float32(px)+0.5)*s - cx
			dy := (float32(py)+0.5)*s - cy
			d := float32(math.Hypot(float64(dx), float64(dy)))
			if d >= r-half && d <= r+half {
				c.plot(px, py, col, alpha)
			}
		}
	}
}

// FillPath заливает многоугольник по правилу чётности
func (c *Canvas) FillPath(pts []render.Point, col color.RGBA, alpha float32) {
	if len(pts) < 3 {
		return
	}
	minX, minY, maxX, maxY := pts[0].X, pts[0].Y, pts[0].X, pts[0].Y
	for _, p := range pts[1:] {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}
	s := float32(c.Scale)
	if maxX-minX < s && maxY-minY < s {
		c.FillCircle((minX+maxX)/2, (minY+maxY)/2, (maxX-minX)/2, col, alpha)
		return
	}
	for py := c.cell(minY); py <= c.cell(maxY); py++ {
		for px := c.cell(minX); px <= c.cell(maxX); px++ {
			if inside(pts, (float32(px)+0.5)*s, (float32(py)+0.5)*s) {
				c.plot(px, py, col, alpha)
			}
		}
	}
}

func inside(pts []render.Point, x, y float32) bool {
	in := false
	for i, j := 0, len(pts)-1; i < len(pts); j, i = i, i+1 {
		a, b := pts[i], pts[j]
		if (a.Y > y) != (b.Y > y) && x < (b.X-a.X)*(y-a.Y)/(b.Y-a.Y)+a.X {
			in = !in
		}
	}
	return in
}

func (c *Canvas) StrokePath(pts []render.Point, width float32, col color.RGBA, alpha float32) {
	for i := 1; i < len(pts); i++ {
		c.line(pts[i-1], pts[i], col, alpha)
	}
}

// line: отрезок шагами в полпикселя. Толщина в терминале не видна.
func (c *Canvas) line(a, b render.Point, col color.RGBA, alpha float32) {
	s := float64(c.Scale)
	steps := int(math.Ceil(math.Hypot(float64(b.X-a.X), float64(b.Y-a.Y))/s*2)) + 1
	lastX, lastY := math.MinInt, math.MinInt
	for i := 0; i <= steps; i++ {
		t := float32(i) / float32(steps)
		px, py := c.cell(a.X+(b.X-a.X)*t), c.cell(a.Y+(b.Y-a.Y)*t)
		if px == lastX && py == lastY {
			continue
		}
		c.plot(px, py, col, alpha)
		lastX, lastY = px, py
	}
}

// DrawLayer не нужен: слоёв здесь нет, небо рисуется напрямую
func (c *Canvas) DrawLayer(render.Layer, float32) {}

func (c *Canvas) color(p rgb) tcell.Color {
	col := color.RGBA{
		R: uint8(p.r * 255),
		G: uint8(p.g * 255),
		B: uint8(p.b * 255),
		A: 255,
	}
	if c.Brightness < 1 {
		col = render.DarkenColor(col, c.Brightness)
	}
	return tcell.NewRGBColor(int32(col.R), int32(col.G), int32(col.B))
}

// Present выводит буфер на экран. Show вызывает вызывающий.
func (c *Canvas) Present(screen tcell.Screen) {
	for row := 0; row < c.rows; row++ {
		for col := 0; col < c.cols; col++ {
			top := c.pix[(row*2)*c.cols+col]
			bottom := c.pix[(row*2+1)*c.cols+col]
			style := tcell.StyleDefault.Foreground(c.color(top)).Background(c.color(bottom))
			screen.SetContent(col, row, '▀', nil, style)
		}
	}
}
