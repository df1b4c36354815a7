package surface

import (
	"fmt"
	"image/color"
	"strings"
	"sync"

	"github.com/gogpu/gg"
)

// Op is one recorded drawing call, with the style in effect when it was made.
type Op struct {
	Name        string
	Args        []float64
	LineWidth   float64
	FillColor   color.Color
	StrokeColor color.Color
}

func (o Op) String() string {
	if len(o.Args) == 0 {
		return o.Name
	}
	parts := make([]string, len(o.Args))
	for i, a := range o.Args {
		parts[i] = fmt.Sprintf("%g", a)
	}
	return o.Name + "(" + strings.Join(parts, ",") + ")"
}

// Recorder is a Context that only logs calls. Style setters are not logged;
// the style in effect is captured on every op instead.
type Recorder struct {
	mu        sync.Mutex
	ops       []Op
	lineWidth float64
	cap       gg.LineCap
	join      gg.LineJoin
	fill      color.Color
	stroke    color.Color
}

var _ Context = (*Recorder)(nil)

func NewRecorder() *Recorder {
	return &Recorder{lineWidth: 1, fill: color.Black, stroke: color.Black}
}

func (r *Recorder) record(name string, args ...float64) {
	r.ops = append(r.ops, Op{
		Name:        name,
		Args:        args,
		LineWidth:   r.lineWidth,
		FillColor:   r.fill,
		StrokeColor: r.stroke,
	})
}

// Ops returns a copy of the recorded calls.
func (r *Recorder) Ops() []Op {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Op(nil), r.ops...)
}

// Names returns the recorded call names, in order.
func (r *Recorder) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, len(r.ops))
	for i, op := range r.ops {
		names[i] = op.Name
	}
	return names
}

// Reset drops recorded calls and keeps the style.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = nil
}

// Style reports the current style.
func (r *Recorder) Style() (lineWidth float64, fill, stroke color.Color, lineCap gg.LineCap, join gg.LineJoin) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lineWidth, r.fill, r.stroke, r.cap, r.join
}

func (r *Recorder) Scale(x, y float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("scale", x, y)
}

func (r *Recorder) Translate(x, y float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("translate", x, y)
}

func (r *Recorder) SetLineWidth(width float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lineWidth = width
}

func (r *Recorder) SetLineCap(c gg.LineCap) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cap = c
}

func (r *Recorder) SetLineJoin(j gg.LineJoin) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.join = j
}

func (r *Recorder) SetFillColor(c color.Color) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fill = c
}

func (r *Recorder) SetStrokeColor(c color.Color) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stroke = c
}

func (r *Recorder) FillRect(x, y, w, h float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("fillRect", x, y, w, h)
}

func (r *Recorder) BeginPath() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("beginPath")
}

func (r *Recorder) ClosePath() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("closePath")
}

func (r *Recorder) MoveTo(x, y float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("moveTo", x, y)
}

func (r *Recorder) LineTo(x, y float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("lineTo", x, y)
}

func (r *Recorder) Arc(x, y, radius, angle1, angle2 float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("arc", x, y, radius, angle1, angle2)
}

func (r *Recorder) Fill() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("fill")
	return nil
}

func (r *Recorder) Stroke() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("stroke")
	return nil
}
