package ui

import (
	"SketchPad/internal/config"
	"SketchPad/internal/pad"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
)

// NewContent builds the pad, its canvas and the toolbar above it.
func NewContent(cfg config.AppConfig) (fyne.CanvasObject, *pad.DrawingSurface, *Canvas) {
	window := pad.NewListeners()
	board := pad.New()
	cv := NewCanvas(board, window, cfg.Display.DevicePixelRatio)
	toolbar := NewToolbar(board)

	// The canvas keeps its logical size; extra room goes around it.
	content := container.NewBorder(toolbar.Object(), nil, nil, nil, container.NewCenter(cv))
	return content, board, cv
}

func RunApp(cfg config.AppConfig) {
	myApp := app.New()
	myWindow := myApp.NewWindow(cfg.Window.Title)

	content, _, _ := NewContent(cfg)
	myWindow.SetContent(content)
	myWindow.Resize(fyne.NewSize(pad.Width+80, pad.Height+120))
	myWindow.ShowAndRun()
}
