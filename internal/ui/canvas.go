package ui

import (
	"image"
	"image/color"

	"SketchPad/internal/pad"
	"SketchPad/internal/state"
	"SketchPad/internal/surface"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// Canvas is the on-screen drawing element. It owns the pixel buffer the pad
// paints into and feeds it pointer input: presses through its own listeners,
// drags and releases through the window's, so a stroke that leaves the
// element keeps going.
type Canvas struct {
	widget.BaseWidget
	board  *pad.DrawingSurface
	window *pad.Listeners
	events *pad.Listeners
	dpr    float64
	origin fyne.Position
	raster *surface.Raster
	img    *canvas.Image
}

var _ fyne.Widget = (*Canvas)(nil)
var _ fyne.Draggable = (*Canvas)(nil)
var _ desktop.Mouseable = (*Canvas)(nil)
var _ desktop.Hoverable = (*Canvas)(nil)
var _ pad.Target = (*Canvas)(nil)

// NewCanvas creates the element for board. dpr > 0 overrides the window scale.
func NewCanvas(board *pad.DrawingSurface, window *pad.Listeners, dpr float64) *Canvas {
	c := &Canvas{
		board:  board,
		window: window,
		events: pad.NewListeners(),
		dpr:    dpr,
	}
	c.ExtendBaseWidget(c)
	return c
}

// Bounds is the element's drawing rectangle in window coordinates. The
// origin is kept so later events are reported against the same rectangle
// even if the layout moves the element.
func (c *Canvas) Bounds() state.DrawingArea {
	c.origin = fyne.Position{}
	if app := fyne.CurrentApp(); app != nil {
		c.origin = app.Driver().AbsolutePositionForObject(c)
	}
	return state.DrawingArea{X: c.origin.X, Y: c.origin.Y, Width: pad.Width, Height: pad.Height}
}

func (c *Canvas) DevicePixelRatio() float64 {
	if c.dpr > 0 {
		return c.dpr
	}
	if app := fyne.CurrentApp(); app != nil {
		if cv := app.Driver().CanvasForObject(c); cv != nil {
			return float64(cv.Scale())
		}
	}
	return 1
}

func (c *Canvas) Allocate(w, h int) surface.Context {
	if c.raster != nil {
		_ = c.raster.Close()
	}
	c.raster = surface.NewRaster(w, h)
	return c.raster
}

func (c *Canvas) Events() pad.EventSource { return c.events }

// Snapshot returns the current pixels, or nil before the first layout.
func (c *Canvas) Snapshot() image.Image {
	if c.raster == nil {
		return nil
	}
	return c.raster.Image()
}

// toPoint maps an element-relative position to window coordinates.
func (c *Canvas) toPoint(p fyne.Position) state.Point {
	return state.Point{X: c.origin.X + p.X, Y: c.origin.Y + p.Y}
}

func (c *Canvas) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	c.events.Dispatch(pad.PointerDown, c.toPoint(e.Position))
	c.repaint()
}

func (c *Canvas) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	c.window.Dispatch(pad.PointerUp, c.toPoint(e.Position))
}

func (c *Canvas) MouseMoved(e *desktop.MouseEvent) {
	c.window.Dispatch(pad.PointerMove, c.toPoint(e.Position))
	c.repaint()
}

// Dragged keeps arriving while the button is held, inside the element or not.
func (c *Canvas) Dragged(e *fyne.DragEvent) {
	c.window.Dispatch(pad.PointerMove, c.toPoint(e.Position))
	c.repaint()
}

func (c *Canvas) DragEnd() {
	c.window.Dispatch(pad.PointerUp, state.Point{})
}

func (c *Canvas) MouseIn(*desktop.MouseEvent) {}
func (c *Canvas) MouseOut()                   {}

func (c *Canvas) repaint() {
	if c.img == nil || c.raster == nil {
		return
	}
	c.img.Image = c.raster.Image()
	c.img.Refresh()
}

func (c *Canvas) CreateRenderer() fyne.WidgetRenderer {
	c.img = canvas.NewImageFromImage(image.NewUniform(color.White))
	c.img.FillMode = canvas.ImageFillStretch
	c.img.ScaleMode = canvas.ImageScaleFastest
	return &canvasRenderer{c: c}
}

type canvasRenderer struct {
	c *Canvas
}

func (r *canvasRenderer) Layout(fyne.Size) {
	r.c.img.Move(fyne.NewPos(0, 0))
	r.c.img.Resize(fyne.NewSize(pad.Width, pad.Height))
	// Mount needs the final position, which is only known once laid out.
	r.c.board.Mount(r.c, r.c.window)
	r.c.repaint()
}

func (r *canvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(pad.Width, pad.Height)
}

func (r *canvasRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.c.img}
}

func (r *canvasRenderer) Refresh() {
	r.c.repaint()
}

func (r *canvasRenderer) Destroy() {
	r.c.board.Unmount()
	if r.c.raster != nil {
		_ = r.c.raster.Close()
		r.c.raster = nil
	}
}
