// internal/defs/shapes.go
package defs

import "go-fireworks/internal/component"

// ShapeOrder: формы в порядке клавиш 1–6
var ShapeOrder = []component.Shape{
	component.ShapeCircle,
	component.ShapeHeart,
	component.ShapeStar,
	component.ShapeSpiral,
	component.ShapeRing,
	component.ShapeRandom,
}

// ShapeForKey переводит номер клавиши (с 1) в форму
func ShapeForKey(n int) (component.Shape, bool) {
	if n < 1 || n > len(ShapeOrder) {
		return component.ShapeRandom, false
	}
	return ShapeOrder[n-1], true
}
