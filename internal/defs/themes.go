// internal/defs/themes.go
package defs

import (
	"errors"
	"fmt"
	"image/color"

	"go-fireworks/internal/utils"
	"go-fireworks/pkg/render"
)

var ErrUnknownTheme = errors.New("unknown theme")

// Themes: каталог палитр. Цвета разбираются один раз при загрузке.
type Themes struct {
	order    []string
	palettes map[string][]color.RGBA
}

// NewThemes строит каталог из определений. Повторный ID заменяет палитру,
// сохраняя её место в порядке переключения.
func NewThemes(defs []ThemeDefinition) (*Themes, error) {
	t := &Themes{palettes: make(map[string][]color.RGBA)}
	for _, def := range defs {
		if err := t.add(def); err != nil {
			return nil, err
		}
	}
	if len(t.order) == 0 {
		return nil, fmt.Errorf("theme catalog is empty")
	}
	return t, nil
}

// DefaultThemes: каталог из встроенных палитр
func DefaultThemes() *Themes {
	t, err := NewThemes(BuiltinThemes)
	if err != nil {
		panic(err) // встроенные палитры корректны
	}
	return t
}

func (t *Themes) add(def ThemeDefinition) error {
	if def.ID == "" {
		return fmt.Errorf("theme without id")
	}
	if len(def.Colors) == 0 {
		return fmt.Errorf("theme %q has no colors", def.ID)
	}
	palette := make([]color.RGBA, 0, len(def.Colors))
	for _, hex := range def.Colors {
		c, err := render.ParseHex(hex)
		if err != nil {
			return fmt.Errorf("theme %q: %w", def.ID, err)
		}
		palette = append(palette, c)
	}
	if _, exists := t.palettes[def.ID]; !exists {
		t.order = append(t.order, def.ID)
	}
	t.palettes[def.ID] = palette
	return nil
}

func (t *Themes) Names() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

func (t *Themes) Has(name string) bool {
	_, ok := t.palettes[name]
	return ok
}

// Next возвращает тему, следующую за name по кругу
func (t *Themes) Next(name string) string {
	for i, n := range t.order {
		if n == name {
			return t.order[(i+1)%len(t.order)]
		}
	}
	return t.order[0]
}

// Colors возвращает палитру. Неизвестное имя откатывается на default,
// а если её нет, на первую тему каталога.
func (t *Themes) Colors(name string) []color.RGBA {
	if p, ok := t.palettes[name]; ok {
		return p
	}
	if p, ok := t.palettes[DefaultThemeID]; ok {
		return p
	}
	return t.palettes[t.order[0]]
}

// Pick: случайный цвет палитры
func (t *Themes) Pick(name string, rng *utils.Rand) color.RGBA {
	p := t.Colors(name)
	return p[rng.Intn(len(p))]
}

// Validate проверяет имя темы для команд хоста
func (t *Themes) Validate(name string) error {
	if !t.Has(name) {
		return fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	return nil
}
