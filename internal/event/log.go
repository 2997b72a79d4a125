// internal/event/log.go
package event

import "log"

// LogListener пишет в лог смены режима и сбои
type LogListener struct{}

func (LogListener) OnEvent(e Event) {
	switch data := e.Data.(type) {
	case ModeData:
		log.Printf("quality mode: %s (fps %d)", data.Mode, data.FPS)
	case FaultData:
		log.Printf("fault: %s", data.Message)
	}
}

// SubscribeLog подписывает LogListener на ModeChanged и Fault
func SubscribeLog(d *Dispatcher) {
	d.Subscribe(ModeChanged, LogListener{})
	d.Subscribe(Fault, LogListener{})
}
