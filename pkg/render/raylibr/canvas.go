// pkg/render/raylibr/canvas.go
package raylibr

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"go-fireworks/pkg/render"
)

const circleSegments = 24

// Canvas рисует вызовами raylib. Вызывать между BeginDrawing и EndDrawing.
// Слои сделаны на RenderTexture2D, поэтому их можно наполнять прямо внутри кадра.
type Canvas struct {
	texture *rl.RenderTexture2D // nil — рисуем на экран
	w, h    int
	blend   render.Blend
	fan     []rl.Vector2
}

var (
	_ render.Canvas        = (*Canvas)(nil)
	_ render.LayerProvider = (*Canvas)(nil)
)

// New: холст экрана окна
func New() *Canvas {
	return &Canvas{fan: make([]rl.Vector2, 0, 64)}
}

func (c *Canvas) Size() (int, int) {
	if c.texture == nil {
		return rl.GetScreenWidth(), rl.GetScreenHeight()
	}
	return c.w, c.h
}

// Begin вызывается в начале кадра: сбрасывает режим смешивания
func (c *Canvas) Begin() {
	rl.DisableBackfaceCulling()
	c.blend = render.BlendSourceOver
}

func (c *Canvas) SetBlend(b render.Blend) {
	c.blend = b
}

// with выполняет draw в нужной цели с нужным смешиванием
func (c *Canvas) with(draw func()) {
	if c.texture != nil {
		rl.BeginTextureMode(*c.texture)
		defer rl.EndTextureMode()
	}
	if c.blend == render.BlendLighter {
		rl.BeginBlendMode(rl.BlendAdditive)
		defer rl.EndBlendMode()
	}
	draw()
}

func toRL(col color.RGBA, alpha float32) rl.Color {
	if alpha < 0 {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}
	return rl.NewColor(col.R, col.G, col.B, uint8(float32(col.A)*alpha))
}

func (c *Canvas) Fill(col color.RGBA, alpha float32) {
	w, h := c.Size()
	c.FillRect(0, 0, float32(w), float32(h), col, alpha)
}

func (c *Canvas) FillRect(x, y, w, h float32, col color.RGBA, alpha float32) {
	c.with(func() {
		rl.DrawRectangleV(rl.NewVector2(x, y), rl.NewVector2(w, h), toRL(col, alpha))
	})
}

func (c *Canvas) FillCircle(cx, cy, r float32, col color.RGBA, alpha float32) {
	c.with(func() {
		rl.DrawCircleV(rl.NewVector2(cx, cy), r, toRL(col, alpha))
	})
}

func (c *Canvas) StrokeCircle(cx, cy, r, width float32, col color.RGBA, alpha float32) {
	c.with(func() {
		rl.DrawRing(rl.NewVector2(cx, cy), r-width/2, r+width/2, 0, 360, circleSegments, toRL(col, alpha))
	})
}

// FillPath рисует веер из центра контура. Звезда и сердце звёздны
// относительно центра, этого достаточно.
func (c *Canvas) FillPath(pts []render.Point, col color.RGBA, alpha float32) {
	if len(pts) < 3 {
		return
	}
	var cx, cy float32
	for _, p := range pts {
		cx += p.X
		cy += p.Y
	}
	n := float32(len(pts))
	c.fan = append(c.fan[:0], rl.NewVector2(cx/n, cy/n))
	for _, p := range pts {
		c.fan = append(c.fan, rl.NewVector2(p.X, p.Y))
	}
	c.fan = append(c.fan, rl.NewVector2(pts[0].X, pts[0].Y))
	c.with(func() {
		rl.DrawTriangleFan(c.fan, toRL(col, alpha))
	})
}

func (c *Canvas) StrokePath(pts []render.Point, width float32, col color.RGBA, alpha float32) {
	if len(pts) < 2 {
		return
	}
	rc := toRL(col, alpha)
	c.with(func() {
		for i := 1; i < len(pts); i++ {
			rl.DrawLineEx(rl.NewVector2(pts[i-1].X, pts[i-1].Y), rl.NewVector2(pts[i].X, pts[i].Y), width, rc)
		}
	})
}

func (c *Canvas) DrawLayer(l render.Layer, alpha float32) {
	layer, ok := l.(*Layer)
	if !ok {
		return
	}
	// текстуры рендера перевёрнуты по вертикали
	src := rl.NewRectangle(0, 0, float32(layer.w), -float32(layer.h))
	c.with(func() {
		rl.DrawTextureRec(layer.rt.Texture, src, rl.NewVector2(0, 0), rl.Fade(rl.White, alpha))
	})
}

func (c *Canvas) NewLayer(w, h int) (render.Layer, error) {
	rt := rl.LoadRenderTexture(int32(w), int32(h))
	l := &Layer{rt: rt}
	l.Canvas = Canvas{texture: &l.rt, w: w, h: h, fan: make([]rl.Vector2, 0, 16)}
	l.Clear()
	return l, nil
}

// Layer: внеэкранная текстура
type Layer struct {
	Canvas
	rt rl.RenderTexture2D
}

func (l *Layer) Clear() {
	rl.BeginTextureMode(l.rt)
	rl.ClearBackground(rl.Blank)
	rl.EndTextureMode()
}

func (l *Layer) Dispose() {
	rl.UnloadRenderTexture(l.rt)
}
