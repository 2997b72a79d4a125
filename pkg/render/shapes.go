// pkg/render/shapes.go
package render

import "math"

// Нормализованные контуры фигур (радиус/размер 1), считаются один раз.
var (
	StarPath  = buildStar(5, 2.5)
	HeartPath = buildHeart(8)
)

func buildStar(points int, inset float64) []Point {
	pts := make([]Point, 0, points*2)
	for i := 0; i < points*2; i++ {
		angle := math.Pi / float64(points) * float64(i)
		radius := 1.0
		if i%2 == 1 {
			radius = 1 / inset
		}
		pts = append(pts, Point{
			X: float32(math.Sin(angle) * radius),
			Y: float32(-math.Cos(angle) * radius),
		})
	}
	return pts
}

// buildHeart раскладывает четыре кубические кривые Безье в ломаную
func buildHeart(samples int) []Point {
	const top = 0.3
	type seg [4][2]float64
	segs := []seg{
		{{0, top}, {0, 0}, {-0.5, 0}, {-0.5, top}},
		{{-0.5, top}, {-0.5, (1 + top) / 2}, {0, 1}, {0, 1.3}},
		{{0, 1.3}, {0, 1}, {0.5, (1 + top) / 2}, {0.5, top}},
		{{0.5, top}, {0.5, 0}, {0, 0}, {0, top}},
	}
	pts := make([]Point, 0, len(segs)*samples)
	for _, s := range segs {
		for i := 0; i < samples; i++ {
			t := float64(i) / float64(samples)
			u := 1 - t
			a, b, c, d := u*u*u, 3*u*u*t, 3*u*t*t, t*t*t
			pts = append(pts, Point{
				X: float32(a*s[0][0] + b*s[1][0] + c*s[2][0] + d*s[3][0]),
				// центрируем по вертикали: контур занимает y ∈ [0, 1.3]
				Y: float32(a*s[0][1]+b*s[1][1]+c*s[2][1]+d*s[3][1]) - 0.65,
			})
		}
	}
	return pts
}

// Place переносит нормализованный контур в точку (x, y) с масштабом scale.
// Результат дописывается в dst, чтобы не аллоцировать на каждом кадре.
func Place(dst, src []Point, x, y, scale float32) []Point {
	dst = dst[:0]
	for _, p := range src {
		dst = append(dst, Point{X: x + p.X*scale, Y: y + p.Y*scale})
	}
	return dst
}
