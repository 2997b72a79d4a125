// internal/state/state.go
package state

import "github.com/hajimehoshi/ebiten/v2"

// State: интерфейс для всех экранов
type State interface {
	Enter()
	Update(deltaTime float64)
	Draw(screen *ebiten.Image)
	Exit()
}

// Resizer: экран, которому важен размер окна
type Resizer interface {
	Resize(width, height int)
}

// StateMachine: структура для управления экранами
type StateMachine struct {
	current       State
	width, height int
}

// NewStateMachine создаёт новую машину состояний без начального состояния
func NewStateMachine(width, height int) *StateMachine {
	return &StateMachine{width: width, height: height}
}

// SetState устанавливает новое состояние
func (sm *StateMachine) SetState(newState State) {
	if sm.current != nil {
		sm.current.Exit()
	}
	sm.current = newState
	if sm.current != nil {
		if r, ok := sm.current.(Resizer); ok {
			r.Resize(sm.width, sm.height)
		}
		sm.current.Enter()
	}
}

func (sm *StateMachine) Current() State {
	return sm.current
}

// Resize запоминает размер окна и сообщает его текущему экрану
func (sm *StateMachine) Resize(width, height int) {
	if width == sm.width && height == sm.height {
		return
	}
	sm.width, sm.height = width, height
	if r, ok := sm.current.(Resizer); ok {
		r.Resize(width, height)
	}
}

// Update обновляет текущее состояние
func (sm *StateMachine) Update(deltaTime float64) {
	if sm.current != nil {
		sm.current.Update(deltaTime)
	}
}

// Draw отрисовывает текущее состояние
func (sm *StateMachine) Draw(screen *ebiten.Image) {
	if sm.current != nil {
		sm.current.Draw(screen)
	}
}
