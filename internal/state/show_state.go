// internal/state/show_state.go
package state

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"go-fireworks/internal/defs"
	"go-fireworks/internal/host"
	"go-fireworks/internal/ui"
	"go-fireworks/pkg/render/ebitenr"
)

var _ State = (*ShowState)(nil)

var shapeKeys = []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5, ebiten.Key6}

// ShowState: экран шоу. Сцена рисуется в своё изображение, которое
// не очищается между кадрами: на этом держатся хвосты частиц.
// HUD рисуется поверх уже на экране.
type ShowState struct {
	sm     *StateMachine
	show   host.Show
	hud    *ui.HUD
	scene  *ebiten.Image
	canvas *ebitenr.Canvas

	lastDelta float64
	touches   []ebiten.TouchID
}

func NewShowState(sm *StateMachine, show host.Show, hud *ui.HUD) *ShowState {
	return &ShowState{sm: sm, show: show, hud: hud}
}

func (s *ShowState) Enter() {
	s.hud.Readout.Paused = false
}

func (s *ShowState) Exit() {}

// Resize пересоздаёт сцену под новый размер окна
func (s *ShowState) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	if s.scene != nil {
		b := s.scene.Bounds()
		if b.Dx() == width && b.Dy() == height {
			return
		}
		s.scene.Deallocate()
	}
	s.scene = ebiten.NewImage(width, height)
	if s.canvas == nil {
		s.canvas = ebitenr.New(s.scene)
	} else {
		s.canvas.SetTarget(s.scene)
	}
	s.show.Resize(float64(width), float64(height))
}

func (s *ShowState) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		s.sm.SetState(NewPauseState(s.sm, s))
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		log.Printf("theme: %s", s.show.NextTheme())
	}
	for i, key := range shapeKeys {
		if !inpututil.IsKeyJustPressed(key) {
			continue
		}
		if shape, ok := defs.ShapeForKey(i + 1); ok {
			if err := s.show.SetShape(shape.String()); err != nil {
				log.Printf("failed to set shape: %v", err)
			}
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		s.hud.Visible = !s.hud.Visible
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		s.show.Spawn(float64(x), float64(y))
	}
	s.touches = inpututil.AppendJustPressedTouchIDs(s.touches[:0])
	for _, id := range s.touches {
		x, y := ebiten.TouchPosition(id)
		s.show.Spawn(float64(x), float64(y))
	}

	s.lastDelta = deltaTime
	s.show.Frame(deltaTime)
}

func (s *ShowState) Draw(screen *ebiten.Image) {
	if s.scene == nil {
		return
	}
	s.show.Draw(s.canvas, s.lastDelta)
	s.DrawScene(screen)
	s.hud.Draw(screen)
}

// DrawScene выводит сцену без обновления, пауза рисует через него
func (s *ShowState) DrawScene(screen *ebiten.Image) {
	if s.scene != nil {
		screen.DrawImage(s.scene, nil)
	}
}
