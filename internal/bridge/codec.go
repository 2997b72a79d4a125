// internal/bridge/codec.go
package bridge

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// EncodeCommand сериализует команду для передачи по сети
func EncodeCommand(c Command) ([]byte, error) {
	data, err := msgpack.Marshal(&c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode command: %w", err)
	}
	return data, nil
}

// DecodeCommand разбирает команду и проверяет её тип
func DecodeCommand(data []byte) (Command, error) {
	var c Command
	if err := msgpack.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("failed to decode command: %w", err)
	}
	switch c.Type {
	case CmdInit, CmdResize, CmdSpawnAt, CmdSetTheme, CmdSetShape, CmdSetConfig:
		return c, nil
	}
	return c, fmt.Errorf("%w: %q", ErrUnknownCommand, c.Type)
}

func EncodeEvent(e Event) ([]byte, error) {
	data, err := msgpack.Marshal(&e)
	if err != nil {
		return nil, fmt.Errorf("failed to encode event: %w", err)
	}
	return data, nil
}

func DecodeEvent(data []byte) (Event, error) {
	var e Event
	if err := msgpack.Unmarshal(data, &e); err != nil {
		return e, fmt.Errorf("failed to decode event: %w", err)
	}
	return e, nil
}
