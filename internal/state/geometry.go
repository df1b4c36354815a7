package state

// DrawingArea represents a rectangular area, in viewport coordinates unless noted.
type DrawingArea struct {
	X      float32
	Y      float32
	Width  float32
	Height float32
}

// Contains reports whether p lies inside the area, edges included.
func (a DrawingArea) Contains(p Point) bool {
	return p.X >= a.X && p.X <= a.X+a.Width &&
		p.Y >= a.Y && p.Y <= a.Y+a.Height
}

// Local converts a viewport point to area-local coordinates.
func (a DrawingArea) Local(p Point) Point {
	return Point{X: p.X - a.X, Y: p.Y - a.Y}
}
