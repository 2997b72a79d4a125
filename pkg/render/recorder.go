// pkg/render/recorder.go
package render

import "image/color"

// OpKind: тип записанной операции
type OpKind string

const (
	OpFill         OpKind = "fill"
	OpFillRect     OpKind = "fill_rect"
	OpFillCircle   OpKind = "fill_circle"
	OpStrokeCircle OpKind = "stroke_circle"
	OpFillPath     OpKind = "fill_path"
	OpStrokePath   OpKind = "stroke_path"
	OpDrawLayer    OpKind = "draw_layer"
)

// Op: одна записанная операция рисования
type Op struct {
	Kind   OpKind
	X, Y   float32
	W, H   float32 // для кругов W — радиус
	Points int
	Pts    []Point // копия пути, нужна для Replay
	Color  color.RGBA
	Alpha  float32
	Blend  Blend
}

// Recorder: Canvas в памяти: ничего не рисует, только запоминает вызовы.
// Используется в тестах и как заглушка для безголового режима.
type Recorder struct {
	W, H      int
	Offscreen bool // умеет ли создавать слои
	KeepPaths bool // копировать точки путей для Replay
	Ops       []Op
	Layers    int
	blend     Blend
}

var _ Canvas = (*Recorder)(nil)

func NewRecorder(w, h int, offscreen bool) *Recorder {
	return &Recorder{W: w, H: h, Offscreen: offscreen}
}

func (r *Recorder) Size() (int, int) { return r.W, r.H }
func (r *Recorder) SetBlend(b Blend)  { r.blend = b }

func (r *Recorder) add(op Op) {
	op.Blend = r.blend
	r.Ops = append(r.Ops, op)
}

func (r *Recorder) Fill(c color.RGBA, alpha float32) {
	r.add(Op{Kind: OpFill, W: float32(r.W), H: float32(r.H), Color: c, Alpha: alpha})
}

func (r *Recorder) FillRect(x, y, w, h float32, c color.RGBA, alpha float32) {
	r.add(Op{Kind: OpFillRect, X: x, Y: y, W: w, H: h, Color: c, Alpha: alpha})
}

func (r *Recorder) FillCircle(cx, cy, rad float32, c color.RGBA, alpha float32) {
	r.add(Op{Kind: OpFillCircle, X: cx, Y: cy, W: rad, Color: c, Alpha: alpha})
}

func (r *Recorder) StrokeCircle(cx, cy, rad, width float32, c color.RGBA, alpha float32) {
	r.add(Op{Kind: OpStrokeCircle, X: cx, Y: cy, W: rad, H: width, Color: c, Alpha: alpha})
}

func (r *Recorder) FillPath(pts []Point, c color.RGBA, alpha float32) {
	r.add(Op{Kind: OpFillPath, Points: len(pts), Pts: r.keep(pts), Color: c, Alpha: alpha})
}

func (r *Recorder) StrokePath(pts []Point, width float32, c color.RGBA, alpha float32) {
	r.add(Op{Kind: OpStrokePath, Points: len(pts), Pts: r.keep(pts), W: width, Color: c, Alpha: alpha})
}

func (r *Recorder) DrawLayer(l Layer, alpha float32) {
	r.add(Op{Kind: OpDrawLayer, Alpha: alpha})
}

// NewLayer отдаёт вложенный Recorder, если Offscreen включён.
func (r *Recorder) NewLayer(w, h int) (Layer, error) {
	if !r.Offscreen {
		return nil, ErrNoOffscreen
	}
	r.Layers++
	return &recorderLayer{Recorder: NewRecorder(w, h, false)}, nil
}

func (r *Recorder) keep(pts []Point) []Point {
	if !r.KeepPaths {
		return nil
	}
	out := make([]Point, len(pts))
	copy(out, pts)
	return out
}

// Take забирает записанные операции. Recorder начинает новый список,
// так что отданный срез можно передать в другой поток.
func (r *Recorder) Take() []Op {
	ops := r.Ops
	r.Ops = nil
	r.blend = BlendSourceOver
	return ops
}

// Replay повторяет операции на другой поверхности. Слои не переносятся:
// DrawLayer пропускается.
func Replay(dst Canvas, ops []Op) {
	for _, op := range ops {
		dst.SetBlend(op.Blend)
		switch op.Kind {
		case OpFill:
			dst.Fill(op.Color, op.Alpha)
		case OpFillRect:
			dst.FillRect(op.X, op.Y, op.W, op.H, op.Color, op.Alpha)
		case OpFillCircle:
			dst.FillCircle(op.X, op.Y, op.W, op.Color, op.Alpha)
		case OpStrokeCircle:
			dst.StrokeCircle(op.X, op.Y, op.W, op.H, op.Color, op.Alpha)
		case OpFillPath:
			dst.FillPath(op.Pts, op.Color, op.Alpha)
		case OpStrokePath:
			dst.StrokePath(op.Pts, op.W, op.Color, op.Alpha)
		}
	}
	dst.SetBlend(BlendSourceOver)
}

// Count возвращает число операций данного типа
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Reset забывает записанные операции
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
	r.blend = BlendSourceOver
}

type recorderLayer struct {
	*Recorder
	disposed bool
}

func (l *recorderLayer) Clear()   { l.Ops = l.Ops[:0] }
func (l *recorderLayer) Dispose() { l.disposed = true }
