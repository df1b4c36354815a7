package ui

import (
	"fmt"
	"image/color"
	"math"

	"SketchPad/internal/pad"
	"SketchPad/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// --- Palette swatch ---
type colorSwatch struct {
	widget.BaseWidget
	index    int
	selected bool
	OnTapped func(int)

	border *canvas.Rectangle
}

func newColorSwatch(i int, tapped func(int)) *colorSwatch {
	s := &colorSwatch{index: i, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(state.Palette[s.index].Color)
	rect.SetMinSize(fyne.NewSize(32, 32))

	s.border = canvas.NewRectangle(color.Transparent)
	s.paintBorder()

	return widget.NewSimpleRenderer(container.NewStack(rect, s.border))
}

func (s *colorSwatch) paintBorder() {
	if s.border == nil {
		return
	}
	if s.selected {
		s.border.StrokeColor = color.Gray{Y: 40}
		s.border.StrokeWidth = 3
	} else {
		s.border.StrokeColor = color.Gray{Y: 150}
		s.border.StrokeWidth = 1
	}
	s.border.Refresh()
}

func (s *colorSwatch) setSelected(on bool) {
	if s.selected == on {
		return
	}
	s.selected = on
	s.paintBorder()
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.index)
	}
}

// Toolbar holds the pen controls. It follows the board's pen through
// OnChange, so the eraser check clears itself when a color is picked.
type Toolbar struct {
	SizeLabel *widget.Label
	Size      *widget.Slider
	Eraser    *widget.Check
	Colors    []*colorSwatch

	board   *pad.DrawingSurface
	syncing bool
}

func NewToolbar(board *pad.DrawingSurface) *Toolbar {
	t := &Toolbar{board: board}
	pen := board.Pen()

	t.SizeLabel = widget.NewLabel(sizeText(pen.Size))
	t.Size = widget.NewSlider(state.MinPenSize, state.MaxPenSize)
	t.Size.Step = 1
	t.Size.SetValue(float64(pen.Size))
	t.Size.OnChanged = func(v float64) {
		board.SetPenSize(int(math.Round(v)))
	}

	t.Eraser = widget.NewCheck("Eraser", func(on bool) {
		if t.syncing {
			return
		}
		board.SetEraser(on)
	})
	t.Eraser.SetChecked(pen.Eraser)

	for i := range state.Palette {
		t.Colors = append(t.Colors, newColorSwatch(i, board.SelectColor))
	}
	t.Colors[pen.ColorIndex].selected = true

	board.OnChange = t.sync
	return t
}

func sizeText(n int) string { return fmt.Sprintf("Pen size %d", n) }

func (t *Toolbar) sync(pen state.PenConfig) {
	t.SizeLabel.SetText(sizeText(pen.Size))
	if t.Eraser.Checked != pen.Eraser {
		t.syncing = true
		t.Eraser.SetChecked(pen.Eraser)
		t.syncing = false
	}
	for i, s := range t.Colors {
		s.setSelected(i == pen.ColorIndex)
	}
}

// Object lays the controls out in one row.
func (t *Toolbar) Object() fyne.CanvasObject {
	swatches := container.NewHBox()
	for _, s := range t.Colors {
		swatches.Add(s)
	}
	slider := container.New(layout.NewGridWrapLayout(fyne.NewSize(180, 35)), t.Size)

	return container.NewHBox(
		t.SizeLabel,
		slider,
		widget.NewSeparator(),
		t.Eraser,
		widget.NewSeparator(),
		widget.NewLabel("Color"),
		swatches,
		layout.NewSpacer(),
	)
}
