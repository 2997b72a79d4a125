// internal/bridge/message.go
package bridge

import (
	"errors"

	"go-fireworks/internal/config"
	"go-fireworks/pkg/render"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrNotInitialized = errors.New("engine not initialized")
)

// CommandType: входящие команды хоста
type CommandType string

const (
	CmdInit      CommandType = "init"
	CmdResize    CommandType = "resize"
	CmdSpawnAt   CommandType = "spawnAt"
	CmdSetTheme  CommandType = "setTheme"
	CmdSetShape  CommandType = "setShape"
	CmdSetConfig CommandType = "setConfig"
)

// Command: одно сообщение хоста воркеру
type Command struct {
	Type   CommandType  `msgpack:"type"`
	X      float64      `msgpack:"x,omitempty"`
	Y      float64      `msgpack:"y,omitempty"`
	Width  float64      `msgpack:"width,omitempty"`
	Height float64      `msgpack:"height,omitempty"`
	Seed   int64        `msgpack:"seed,omitempty"`
	Name   string       `msgpack:"name,omitempty"`
	Patch  config.Patch `msgpack:"patch,omitempty"`
}

func Init(width, height float64, seed int64) Command {
	return Command{Type: CmdInit, Width: width, Height: height, Seed: seed}
}

func Resize(width, height float64) Command {
	return Command{Type: CmdResize, Width: width, Height: height}
}

func SpawnAt(x, y float64) Command {
	return Command{Type: CmdSpawnAt, X: x, Y: y}
}

func SetTheme(name string) Command { return Command{Type: CmdSetTheme, Name: name} }
func SetShape(name string) Command { return Command{Type: CmdSetShape, Name: name} }

func SetConfig(p config.Patch) Command {
	return Command{Type: CmdSetConfig, Patch: p}
}

// EventType: исходящие события воркера
type EventType string

const (
	EvtFrameRate EventType = "frameRate"
	EvtFault     EventType = "fault"
	EvtMode      EventType = "mode"
	EvtFrame     EventType = "frame" // готовый кадр для хоста, по сети не ходит
)

// Event: одно сообщение воркера хосту
type Event struct {
	Type      EventType   `msgpack:"type"`
	FPS       int         `msgpack:"fps,omitempty"`
	Rate      int         `msgpack:"rate,omitempty"`
	Particles int         `msgpack:"particles,omitempty"`
	Rockets   int         `msgpack:"rockets,omitempty"`
	Mode      string      `msgpack:"mode,omitempty"`
	Message   string      `msgpack:"message,omitempty"`
	Ops       []render.Op `msgpack:"-"`
}
