// Package pad is the drawing component: it owns the pen configuration, the
// drag session and the drawing context, and turns pointer events into
// immediate-mode drawing calls.
package pad

import (
	"log/slog"
	"math"

	applog "SketchPad/internal/log"
	"SketchPad/internal/state"
	"SketchPad/internal/surface"

	"github.com/gogpu/gg"
)

// Logical canvas size.
const (
	Width  = 600
	Height = 300
)

// Target is the on-screen element the pad draws into.
type Target interface {
	// Bounds is the element rectangle in viewport coordinates.
	Bounds() state.DrawingArea
	DevicePixelRatio() float64
	// Allocate sizes the element's pixel buffer and returns a context for it,
	// or nil if none is available.
	Allocate(pixelWidth, pixelHeight int) surface.Context
	// Events delivers pointer events that start over the element.
	Events() EventSource
}

// DrawingSurface is the drawing component. It is not safe for concurrent
// use; all calls are expected from the UI event loop.
type DrawingSurface struct {
	pen     state.PenConfig
	drag    state.DragSession
	ctx     surface.Context
	bounds  state.DrawingArea
	detach  []func()
	mounted bool
	log     *slog.Logger

	// OnChange, if set, is called after every pen change.
	OnChange func(state.PenConfig)
}

func New() *DrawingSurface {
	return &DrawingSurface{
		pen: state.DefaultPenConfig(),
		log: applog.WithComponent("pad"),
	}
}

// Pen returns the current pen configuration.
func (d *DrawingSurface) Pen() state.PenConfig { return d.pen }

// Phase returns the drag session state.
func (d *DrawingSurface) Phase() state.DragPhase { return d.drag.Phase() }

// Ready reports whether the pad is mounted with a usable context.
func (d *DrawingSurface) Ready() bool { return d.ctx != nil }

// Mount prepares the target and attaches pointer listeners: pointer-down on
// the target, move and up on window so strokes leaving the element keep
// tracking. Without a target or context the pad stays inert.
// Mounting an already mounted pad does nothing.
func (d *DrawingSurface) Mount(t Target, window EventSource) {
	if d.mounted {
		return
	}
	d.mounted = true
	l := applog.WithOperation(d.log, "mount")
	if t == nil {
		l.Debug("no target, controls inert")
		return
	}

	dpr := t.DevicePixelRatio()
	if dpr <= 0 {
		dpr = 1
	}
	ctx := t.Allocate(int(math.Round(Width*dpr)), int(math.Round(Height*dpr)))
	if ctx == nil {
		l.Debug("no drawing context, controls inert")
		return
	}
	d.ctx = ctx
	d.bounds = t.Bounds()

	ctx.Scale(dpr, dpr)
	ctx.SetFillColor(state.Background)
	ctx.FillRect(0, 0, Width, Height)
	ctx.SetFillColor(state.Palette[0].Color)
	ctx.SetLineCap(gg.LineCapRound)
	ctx.SetLineJoin(gg.LineJoinRound)
	ctx.SetLineWidth(float64(d.pen.Size))
	ctx.Translate(-float64(d.bounds.X), -float64(d.bounds.Y))
	d.applyColor()

	d.detach = append(d.detach, t.Events().On(PointerDown, d.pointerDown))
	if window != nil {
		d.detach = append(d.detach,
			window.On(PointerMove, d.pointerMove),
			window.On(PointerUp, d.pointerUp),
		)
	}
	l.Debug("mounted", slog.Float64("dpr", dpr),
		slog.Float64("x", float64(d.bounds.X)), slog.Float64("y", float64(d.bounds.Y)))
}

// Unmount detaches every listener. A stroke in progress is dropped without
// further drawing. The pen configuration is kept.
func (d *DrawingSurface) Unmount() {
	for _, f := range d.detach {
		f()
	}
	d.detach = nil
	if d.drag.Phase() == state.Dragging {
		d.log.Debug("stroke abandoned", slog.String("session", d.drag.ID()))
	}
	d.drag.Abandon()
	d.ctx = nil
	d.mounted = false
}

// SetPenSize stores size as given; bounds are the control's job.
func (d *DrawingSurface) SetPenSize(size int) {
	d.pen.Size = size
	if d.ctx != nil {
		d.ctx.SetLineWidth(float64(size))
	}
	d.changed()
}

// SetEraser toggles painting with the background color. The selected
// palette entry is kept.
func (d *DrawingSurface) SetEraser(on bool) {
	d.pen.Eraser = on
	d.applyColor()
	d.changed()
}

// SelectColor picks palette entry i and turns the eraser off.
func (d *DrawingSurface) SelectColor(i int) {
	if !state.ValidColorIndex(i) {
		d.log.Warn("palette index out of range", slog.Int("index", i))
		return
	}
	d.pen.Eraser = false
	d.pen.ColorIndex = i
	d.applyColor()
	d.changed()
}

func (d *DrawingSurface) applyColor() {
	if d.ctx == nil {
		return
	}
	c := d.pen.InkColor()
	d.ctx.SetFillColor(c)
	d.ctx.SetStrokeColor(c)
}

func (d *DrawingSurface) changed() {
	if d.OnChange != nil {
		d.OnChange(d.pen)
	}
}

func (d *DrawingSurface) pointerDown(p state.Point) {
	if d.ctx == nil || !d.bounds.Contains(p) {
		return
	}
	x, y := float64(p.X), float64(p.Y)

	// Disc first, so a click without movement still leaves a dot.
	d.ctx.BeginPath()
	d.ctx.Arc(x, y, float64(d.pen.Size)/2, 0, 2*math.Pi)
	if err := d.ctx.Fill(); err != nil {
		d.log.Warn("fill failed", slog.Any("err", err))
	}
	d.ctx.BeginPath()
	d.ctx.MoveTo(x, y)

	if d.drag.Begin(p) {
		d.log.Debug("stroke restarted without pointer-up")
	}
	at := d.bounds.Local(p)
	d.log.Debug("stroke begin", slog.String("session", d.drag.ID()),
		slog.Float64("x", float64(at.X)), slog.Float64("y", float64(at.Y)),
		slog.Int("size", d.pen.Size), slog.Bool("eraser", d.pen.Eraser))
}

func (d *DrawingSurface) pointerMove(p state.Point) {
	if d.ctx == nil {
		return
	}
	if _, ok := d.drag.Extend(p); !ok {
		return
	}
	x, y := float64(p.X), float64(p.Y)
	d.ctx.LineTo(x, y)
	if err := d.ctx.Stroke(); err != nil {
		d.log.Warn("stroke failed", slog.Any("err", err))
	}
	d.ctx.ClosePath()
	d.ctx.BeginPath()
	d.ctx.MoveTo(x, y)
}

func (d *DrawingSurface) pointerUp(state.Point) {
	if d.ctx == nil || !d.drag.End() {
		return
	}
	d.ctx.ClosePath()
	d.log.Debug("stroke end", slog.String("session", d.drag.ID()),
		slog.Int("segments", d.drag.Segments()))
}
