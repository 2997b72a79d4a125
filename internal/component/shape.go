// internal/component/shape.go
package component

import (
	"errors"
	"fmt"
)

var ErrUnknownShape = errors.New("unknown shape")

// Shape: форма взрыва и/или форма отрисовки частицы.
// Частица рисуется только как Circle, Star, Heart или Ring.
type Shape uint8

const (
	ShapeCircle Shape = iota
	ShapeHeart
	ShapeStar
	ShapeSpiral
	ShapeRing
	ShapeRandom // разрешается в конкретную форму один раз на взрыв
)

var shapeNames = [...]string{
	ShapeCircle: "circle",
	ShapeHeart:  "heart",
	ShapeStar:   "star",
	ShapeSpiral: "spiral",
	ShapeRing:   "ring",
	ShapeRandom: "random",
}

// ConcreteShapes: все формы, кроме Random, в порядке каталога
var ConcreteShapes = []Shape{ShapeCircle, ShapeHeart, ShapeStar, ShapeSpiral, ShapeRing}

func (s Shape) String() string {
	if int(s) < len(shapeNames) {
		return shapeNames[s]
	}
	return fmt.Sprintf("shape(%d)", s)
}

// ParseShape переводит имя формы в значение
func ParseShape(name string) (Shape, error) {
	for i, n := range shapeNames {
		if n == name {
			return Shape(i), nil
		}
	}
	return ShapeCircle, fmt.Errorf("%w: %q", ErrUnknownShape, name)
}
