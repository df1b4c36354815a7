package state

import (
	"image/color"
)

// Point is a position in pointer (viewport) or surface coordinates.
type Point struct{ X, Y float32 }

const (
	MinPenSize     = 1
	MaxPenSize     = 30
	DefaultPenSize = 5
)

// Swatch is one palette entry.
type Swatch struct {
	Name  string
	Hex   string
	Color color.NRGBA
}

// Palette is the fixed set of pen colors, in display order.
var Palette = [8]Swatch{
	{Name: "black", Hex: "#000", Color: color.NRGBA{A: 255}},
	{Name: "red", Hex: "#f00", Color: color.NRGBA{R: 255, A: 255}},
	{Name: "dark-orange", Hex: "#ff8c00", Color: color.NRGBA{R: 255, G: 140, A: 255}},
	{Name: "yellow", Hex: "#ff0", Color: color.NRGBA{R: 255, G: 255, A: 255}},
	{Name: "green", Hex: "#008000", Color: color.NRGBA{G: 128, A: 255}},
	{Name: "blue", Hex: "#00f", Color: color.NRGBA{B: 255, A: 255}},
	{Name: "indigo", Hex: "#4b0082", Color: color.NRGBA{R: 75, B: 130, A: 255}},
	{Name: "purple", Hex: "#800080", Color: color.NRGBA{R: 128, B: 128, A: 255}},
}

// Background is the surface color, and the color the eraser paints with.
var Background = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// PenConfig is the user-controlled pen state.
type PenConfig struct {
	Size       int
	ColorIndex int
	Eraser     bool
}

func DefaultPenConfig() PenConfig {
	return PenConfig{Size: DefaultPenSize}
}

// InkColor is the color fills and strokes are drawn with under this config.
func (c PenConfig) InkColor() color.NRGBA {
	if c.Eraser {
		return Background
	}
	return Palette[c.ColorIndex].Color
}

// ValidColorIndex reports whether i addresses a palette entry.
func ValidColorIndex(i int) bool {
	return i >= 0 && i < len(Palette)
}
