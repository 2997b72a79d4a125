// internal/ui/hud.go
package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"go-fireworks/internal/host"
)

const (
	hudFontSize   = 13
	hudLineHeight = 17
	hudPadding    = 8
)

var hudBackground = color.RGBA{0, 0, 0, 140}

// HUD: панель в углу экрана: индикатор качества и строки Readout
type HUD struct {
	X, Y      float32
	Visible   bool
	Readout   *host.Readout
	Indicator *QualityIndicator
	fontFace  font.Face
}

// NewHUD загружает встроенный шрифт Go
func NewHUD(x, y float32, readout *host.Readout) (*HUD, error) {
	tt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse hud font: %w", err)
	}
	face, err := opentype.NewFace(tt, &opentype.FaceOptions{
		Size:    hudFontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create hud font face: %w", err)
	}
	return &HUD{
		X:         x,
		Y:         y,
		Visible:   true,
		Readout:   readout,
		Indicator: NewQualityIndicator(x+hudPadding+6, y+hudPadding+6, 6),
		fontFace:  face,
	}, nil
}

func (h *HUD) Draw(screen *ebiten.Image) {
	if !h.Visible {
		return
	}
	lines := h.Readout.Lines()

	width := 0
	for _, line := range lines {
		b := text.BoundString(h.fontFace, line)
		width = max(width, b.Dx())
	}
	panelW := float32(width + hudPadding*3 + 12)
	panelH := float32(len(lines)*hudLineHeight + hudPadding)
	vector.DrawFilledRect(screen, h.X, h.Y, panelW, panelH, hudBackground, false)

	h.Indicator.Draw(screen, h.Readout.StateColor(), h.Readout.SinceChange())

	textX := int(h.X) + hudPadding*2 + 12
	for i, line := range lines {
		y := int(h.Y) + hudPadding + hudFontSize + i*hudLineHeight - 2
		text.Draw(screen, line, h.fontFace, textX, y, color.White)
	}
}
