// Package surface defines the immediate-mode 2D drawing contract the pad draws
// through, with a gg-backed raster implementation and a recording one.
package surface

import (
	"image/color"
	"log/slog"

	"github.com/gogpu/gg"
)

// Context is an immediate-mode 2D drawing surface in the style of a canvas
// 2D context. Pixels are not retained as objects: once drawn they stay drawn.
type Context interface {
	Scale(x, y float64)
	Translate(x, y float64)

	SetLineWidth(width float64)
	SetLineCap(c gg.LineCap)
	SetLineJoin(j gg.LineJoin)
	SetFillColor(c color.Color)
	SetStrokeColor(c color.Color)

	FillRect(x, y, w, h float64)
	BeginPath()
	ClosePath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	// Arc adds a circular arc centred at (x, y), angles in radians.
	Arc(x, y, r, angle1, angle2 float64)
	Fill() error
	Stroke() error
}

// UseLogger routes gg's internal diagnostics to l.
func UseLogger(l *slog.Logger) {
	gg.SetLogger(l)
}
