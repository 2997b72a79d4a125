// internal/ui/indicator.go
package ui

import (
	"image/color"
	"math"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// pulse: при смене режима индикатор вздрагивает и затухает
func pulse(radius float32, since time.Duration) float32 {
	scale := 1.0 + 0.3*math.Exp(-since.Seconds()*8)
	return radius * float32(scale)
}

// QualityIndicator: кружок режима качества для ebiten
type QualityIndicator struct {
	X, Y   float32
	Radius float32
}

func NewQualityIndicator(x, y, radius float32) *QualityIndicator {
	return &QualityIndicator{X: x, Y: y, Radius: radius}
}

// Draw отрисовывает индикатор
func (i *QualityIndicator) Draw(screen *ebiten.Image, stateColor color.RGBA, since time.Duration) {
	r := pulse(i.Radius, since)
	vector.DrawFilledCircle(screen, i.X, i.Y, r, stateColor, true)
	vector.StrokeCircle(screen, i.X, i.Y, r, 1, color.White, true)
}

// QualityIndicatorRL - версия индикатора для Raylib
type QualityIndicatorRL struct {
	X, Y   float32
	Radius float32
}

func NewQualityIndicatorRL(x, y, radius float32) *QualityIndicatorRL {
	return &QualityIndicatorRL{X: x, Y: y, Radius: radius}
}

func (i *QualityIndicatorRL) Draw(stateColor color.RGBA, since time.Duration) {
	r := pulse(i.Radius, since)
	rlColor := rl.NewColor(stateColor.R, stateColor.G, stateColor.B, stateColor.A)
	rl.DrawCircleV(rl.NewVector2(i.X, i.Y), r, rlColor)
	rl.DrawCircleLines(int32(i.X), int32(i.Y), r, rl.White)
}
