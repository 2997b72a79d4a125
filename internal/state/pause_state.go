// internal/state/pause_state.go
package state

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Убеждаемся, что PauseState соответствует интерфейсу State
var _ State = (*PauseState)(nil)

var pauseOverlay = color.RGBA{0, 0, 0, 128}

// PauseState замораживает шоу: движок не тикает, последняя сцена
// остаётся на экране под затемнением.
type PauseState struct {
	stateMachine *StateMachine
	show         *ShowState
}

func NewPauseState(sm *StateMachine, show *ShowState) *PauseState {
	return &PauseState{stateMachine: sm, show: show}
}

func (s *PauseState) Enter() {
	s.show.hud.Readout.Paused = true
}

func (s *PauseState) Update(float64) {
	if d, ok := s.show.show.(interface{ Drain() }); ok {
		d.Drain()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		s.stateMachine.SetState(s.show)
	}
}

func (s *PauseState) Draw(screen *ebiten.Image) {
	s.show.DrawScene(screen)
	b := screen.Bounds()
	vector.DrawFilledRect(screen, 0, 0, float32(b.Dx()), float32(b.Dy()), pauseOverlay, false)
	s.show.hud.Draw(screen)
	ebitenutil.DebugPrintAt(screen, "P / F9 / Esc to resume", b.Dx()/2-66, b.Dy()/2)
}

func (s *PauseState) Exit() {}
