package surface

import (
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/gogpu/gg"
)

// Raster is a Context that paints into a gg pixmap.
//
// gg shares one brush between fill and stroke, so Raster keeps both colors
// and selects the right one just before painting. The transform is applied
// here and gg's own matrix stays at identity; the line width and arc radii
// are in user space and get multiplied by the scale.
// Fill and Stroke consume the current path.
type Raster struct {
	mu        sync.Mutex
	dc        *gg.Context
	sx, sy    float64
	tx, ty    float64
	lineWidth float64
	fill      color.Color
	stroke    color.Color
}

var _ Context = (*Raster)(nil)

// NewRaster allocates a transparent width x height pixel surface.
func NewRaster(width, height int) *Raster {
	return &Raster{
		dc:        gg.NewContext(width, height),
		sx:        1,
		sy:        1,
		lineWidth: 1,
		fill:      color.Black,
		stroke:    color.Black,
	}
}

// Size is the pixel size of the surface.
func (r *Raster) Size() (width, height int) {
	return r.dc.Width(), r.dc.Height()
}

// Image returns a snapshot of the pixels.
func (r *Raster) Image() image.Image {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dc.Image()
}

// Close releases the gg context.
func (r *Raster) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dc.Close()
}

func (r *Raster) Scale(x, y float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sx *= x
	r.sy *= y
}

func (r *Raster) Translate(x, y float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tx += r.sx * x
	r.ty += r.sy * y
}

func (r *Raster) device(x, y float64) (float64, float64) {
	return r.sx*x + r.tx, r.sy*y + r.ty
}

// scale is the length factor; non-uniform scales use the larger axis.
func (r *Raster) scale() float64 {
	return math.Max(math.Abs(r.sx), math.Abs(r.sy))
}

func (r *Raster) SetLineWidth(width float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lineWidth = width
}

func (r *Raster) SetLineCap(c gg.LineCap) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dc.SetLineCap(c)
}

func (r *Raster) SetLineJoin(j gg.LineJoin) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dc.SetLineJoin(j)
}

func (r *Raster) SetFillColor(c color.Color) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fill = c
}

func (r *Raster) SetStrokeColor(c color.Color) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stroke = c
}

// FillRect paints a rectangle with the fill color. It replaces the current path.
func (r *Raster) FillRect(x, y, w, h float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dc.ClearPath()
	x0, y0 := r.device(x, y)
	x1, y1 := r.device(x+w, y+h)
	r.dc.DrawRectangle(x0, y0, x1-x0, y1-y0)
	r.dc.SetColor(r.fill)
	_ = r.dc.Fill()
}

func (r *Raster) BeginPath() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dc.ClearPath()
}

func (r *Raster) ClosePath() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dc.ClosePath()
}

func (r *Raster) MoveTo(x, y float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dc.MoveTo(r.device(x, y))
}

func (r *Raster) LineTo(x, y float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dc.LineTo(r.device(x, y))
}

func (r *Raster) Arc(x, y, radius, angle1, angle2 float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cx, cy := r.device(x, y)
	if angle2-angle1 >= 2*math.Pi {
		r.dc.DrawCircle(cx, cy, radius*r.scale())
		return
	}
	r.dc.DrawArc(cx, cy, radius*r.scale(), angle1, angle2)
}

func (r *Raster) Fill() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dc.SetColor(r.fill)
	return r.dc.Fill()
}

func (r *Raster) Stroke() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dc.SetColor(r.stroke)
	r.dc.SetLineWidth(r.lineWidth * r.scale())
	return r.dc.Stroke()
}
