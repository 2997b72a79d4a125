// internal/event/types.go
package event

const (
	FrameRate   EventType = "FrameRate"   // Замер частоты кадров за окно
	Fault       EventType = "Fault"       // Паника внутри тика или обработчика команды
	ModeChanged EventType = "ModeChanged" // Контроллер сменил режим качества
	Exploded    EventType = "Exploded"    // Ракета взорвалась
)

// FrameRateData: Data для FrameRate
type FrameRateData struct {
	FPS           int
	Rate          int // частота для контроллера, может быть выше FPS
	LiveParticles int
	LiveRockets   int
	ParticleCount int // текущий бюджет частиц на взрыв
}

// FaultData: Data для Fault
type FaultData struct {
	Message string
}

// ModeData: Data для ModeChanged
type ModeData struct {
	Mode string
	FPS  int
}

// ExplodedData: Data для Exploded
type ExplodedData struct {
	X, Y      float64
	Shape     string
	Particles int
}
