package pad

import (
	"image/color"
	"math"
	"reflect"
	"testing"

	"SketchPad/internal/state"
	"SketchPad/internal/surface"

	"github.com/gogpu/gg"
)

type fakeTarget struct {
	rec       *surface.Recorder
	bounds    state.DrawingArea
	dpr       float64
	events    *Listeners
	noContext bool
	allocs    [][2]int
}

func (f *fakeTarget) Bounds() state.DrawingArea { return f.bounds }
func (f *fakeTarget) DevicePixelRatio() float64 { return f.dpr }
func (f *fakeTarget) Events() EventSource { return f.events }
func (f *fakeTarget) Allocate(w, h int) surface.Context {
	f.allocs = append(f.allocs, [2]int{w, h})
	if f.noContext {
		return nil
	}
	return f.rec
}

type fixture struct {
	pad    *DrawingSurface
	target *fakeTarget
	window *Listeners
	rec    *surface.Recorder
}

func mounted(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		pad:    New(),
		window: NewListeners(),
		rec:    surface.NewRecorder(),
	}
	f.target = &fakeTarget{
		rec:    f.rec,
		bounds: state.DrawingArea{X: 10, Y: 20, Width: Width, Height: Height},
		dpr:    1,
		events: NewListeners(),
	}
	f.pad.Mount(f.target, f.window)
	f.rec.Reset()
	return f
}

func (f *fixture) down(x, y float32) { f.target.events.Dispatch(PointerDown, state.Point{X: x, Y: y}) }
func (f *fixture) move(x, y float32) { f.window.Dispatch(PointerMove, state.Point{X: x, Y: y}) }
func (f *fixture) up(x, y float32) { f.window.Dispatch(PointerUp, state.Point{X: x, Y: y}) }

func opsNamed(ops []surface.Op, name string) []surface.Op {
	var out []surface.Op
	for _, op := range ops {
		if op.Name == name {
			out = append(out, op)
		}
	}
	return out
}

func TestMountPreparesSurface(t *testing.T) {
	rec := surface.NewRecorder()
	target := &fakeTarget{
		rec:    rec,
		bounds: state.DrawingArea{X: 10, Y: 20, Width: Width, Height: Height},
		dpr:    2,
		events: NewListeners(),
	}
	window := NewListeners()
	p := New()
	p.Mount(target, window)

	if !p.Ready() {
		t.Fatal("pad should be ready after mount")
	}
	if !reflect.DeepEqual(target.allocs, [][2]int{{1200, 600}}) {
		t.Fatalf("allocations = %v, want one 1200x600", target.allocs)
	}
	got := make([]string, 0)
	for _, op := range rec.Ops() {
		got = append(got, op.String())
	}
	want := []string{"scale(2,2)", "fillRect(0,0,600,300)", "translate(-10,-20)"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("mount ops = %v, want %v", got, want)
	}
	if fill := rec.Ops()[1].FillColor; fill != color.Color(state.Background) {
		t.Fatalf("background fill = %v", fill)
	}
	w, fill, stroke, lineCap, join := rec.Style()
	if w != 5 || lineCap != gg.LineCapRound || join != gg.LineJoinRound {
		t.Fatalf("style width=%v cap=%v join=%v", w, lineCap, join)
	}
	black := color.Color(state.Palette[0].Color)
	if fill != black || stroke != black {
		t.Fatalf("style colors fill=%v stroke=%v", fill, stroke)
	}
	if target.events.Count() != 1 || window.Count() != 2 {
		t.Fatalf("listeners surface=%d window=%d", target.events.Count(), window.Count())
	}
}

func TestMountIsOnce(t *testing.T) {
	f := mounted(t)
	f.pad.Mount(f.target, f.window)
	if len(f.target.allocs) != 1 {
		t.Fatalf("second mount allocated again: %v", f.target.allocs)
	}
	if f.window.Count() != 2 {
		t.Fatalf("second mount attached more listeners: %d", f.window.Count())
	}
}

func TestSingleClickDrawsOneDisc(t *testing.T) {
	f := mounted(t)
	f.pad.SetPenSize(12)
	f.down(100, 50)
	f.up(100, 50)

	want := []string{"beginPath", "arc", "fill", "beginPath", "moveTo", "closePath"}
	if got := f.rec.Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("ops = %v, want %v", got, want)
	}
	arc := f.rec.Ops()[1]
	if !reflect.DeepEqual(arc.Args, []float64{100, 50, 6, 0, 2 * math.Pi}) {
		t.Fatalf("arc args = %v", arc.Args)
	}
	if len(opsNamed(f.rec.Ops(), "stroke")) != 0 {
		t.Fatal("a click must not stroke a segment")
	}
	if f.pad.Phase() != state.Idle {
		t.Fatalf("phase = %s", f.pad.Phase())
	}
}

func TestDragDrawsIndependentSegments(t *testing.T) {
	f := mounted(t)
	f.down(20, 30)
	f.move(40, 50)
	f.move(60, 70)
	f.up(60, 70)

	var got []string
	for _, op := range f.rec.Ops() {
		got = append(got, op.String())
	}
	want := []string{
		"beginPath", "arc(20,30,2.5,0,6.283185307179586)", "fill",
		"beginPath", "moveTo(20,30)",
		"lineTo(40,50)", "stroke", "closePath", "beginPath", "moveTo(40,50)",
		"lineTo(60,70)", "stroke", "closePath", "beginPath", "moveTo(60,70)",
		"closePath",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ops =\n%v\nwant\n%v", got, want)
	}
}

func TestMoveWhileIdleDrawsNothing(t *testing.T) {
	f := mounted(t)
	f.move(50, 50)
	f.up(50, 50)
	f.move(70, 70)
	if ops := f.rec.Ops(); len(ops) != 0 {
		t.Fatalf("idle events drew %v", ops)
	}
}

func TestMoveOutsideBoundsKeepsStroking(t *testing.T) {
	f := mounted(t)
	f.down(600, 100)
	f.move(900, 100)
	f.move(605, 110)
	if n := len(opsNamed(f.rec.Ops(), "stroke")); n != 2 {
		t.Fatalf("strokes = %d, want 2", n)
	}
}

func TestPointerDownOutsideBoundsIgnored(t *testing.T) {
	f := mounted(t)
	f.down(5, 5)
	f.move(50, 50)
	if ops := f.rec.Ops(); len(ops) != 0 {
		t.Fatalf("down outside the surface drew %v", ops)
	}
}

func TestPenSizeAppliesToNextStrokeOnly(t *testing.T) {
	f := mounted(t)
	prev := state.DefaultPenSize
	for s := state.MinPenSize; s <= state.MaxPenSize; s++ {
		f.rec.Reset()
		f.down(100, 100)
		f.move(110, 110)
		before := opsNamed(f.rec.Ops(), "stroke")
		f.pad.SetPenSize(s)
		f.move(120, 120)
		f.up(120, 120)

		strokes := opsNamed(f.rec.Ops(), "stroke")
		if len(strokes) != 2 {
			t.Fatalf("size %d: strokes = %d", s, len(strokes))
		}
		if before[0].LineWidth != float64(prev) || strokes[0].LineWidth != float64(prev) {
			t.Fatalf("size %d: earlier segment width changed to %v", s, strokes[0].LineWidth)
		}
		if strokes[1].LineWidth != float64(s) {
			t.Fatalf("size %d: next segment width = %v", s, strokes[1].LineWidth)
		}
		if f.pad.Pen().Size != s {
			t.Fatalf("pen size = %d, want %d", f.pad.Pen().Size, s)
		}
		prev = s
	}
}

func TestPenSizeDiscDiameter(t *testing.T) {
	f := mounted(t)
	f.pad.SetPenSize(30)
	f.down(200, 100)
	arc := opsNamed(f.rec.Ops(), "arc")[0]
	if arc.Args[2]*2 != 30 {
		t.Fatalf("disc diameter = %v", arc.Args[2]*2)
	}
}

func TestSelectColorTurnsEraserOff(t *testing.T) {
	for i := range state.Palette {
		for _, eraser := range []bool{true, false} {
			f := mounted(t)
			f.pad.SetEraser(eraser)
			f.pad.SelectColor(i)
			if f.pad.Pen().Eraser {
				t.Fatalf("index %d: eraser still active", i)
			}
			if f.pad.Pen().ColorIndex != i {
				t.Fatalf("index %d: color index = %d", i, f.pad.Pen().ColorIndex)
			}
			f.down(100, 100)
			f.move(120, 120)
			want := color.Color(state.Palette[i].Color)
			fill := opsNamed(f.rec.Ops(), "fill")[0]
			stroke := opsNamed(f.rec.Ops(), "stroke")[0]
			if fill.FillColor != want || stroke.StrokeColor != want {
				t.Fatalf("index %d eraser=%v: fill=%v stroke=%v", i, eraser, fill.FillColor, stroke.StrokeColor)
			}
		}
	}
}

func TestEraserPaintsBackgroundAndRestoresColor(t *testing.T) {
	f := mounted(t)
	f.pad.SelectColor(3)
	f.pad.SetEraser(true)
	f.down(100, 100)
	f.move(110, 100)
	f.up(110, 100)

	white := color.Color(state.Background)
	for _, op := range f.rec.Ops() {
		if op.Name == "fill" && op.FillColor != white {
			t.Fatalf("eraser fill = %v", op.FillColor)
		}
		if op.Name == "stroke" && op.StrokeColor != white {
			t.Fatalf("eraser stroke = %v", op.StrokeColor)
		}
	}
	if f.pad.Pen().ColorIndex != 3 {
		t.Fatalf("eraser changed the color index to %d", f.pad.Pen().ColorIndex)
	}

	f.pad.SetEraser(false)
	_, fill, stroke, _, _ := f.rec.Style()
	yellow := color.Color(state.Palette[3].Color)
	if fill != yellow || stroke != yellow {
		t.Fatalf("restored fill=%v stroke=%v, want %v", fill, stroke, yellow)
	}
}

func TestSelectColorOutOfRangeIgnored(t *testing.T) {
	f := mounted(t)
	f.pad.SelectColor(2)
	f.pad.SetEraser(true)
	f.pad.SelectColor(8)
	f.pad.SelectColor(-1)
	if p := f.pad.Pen(); p.ColorIndex != 2 || !p.Eraser {
		t.Fatalf("pen changed: %+v", p)
	}
}

func TestUnmountDetachesListeners(t *testing.T) {
	f := mounted(t)
	f.down(100, 100)
	f.move(110, 110)
	f.pad.Unmount()
	f.rec.Reset()

	if f.window.Count() != 0 || f.target.events.Count() != 0 {
		t.Fatalf("listeners left: window=%d surface=%d", f.window.Count(), f.target.events.Count())
	}
	f.move(120, 120)
	f.up(120, 120)
	f.down(130, 130)
	if ops := f.rec.Ops(); len(ops) != 0 {
		t.Fatalf("events after unmount drew %v", ops)
	}
	if f.pad.Phase() != state.Idle || f.pad.Ready() {
		t.Fatal("unmounted pad should be idle and not ready")
	}

	// Setters keep working on the stored config.
	f.pad.SetPenSize(9)
	if f.pad.Pen().Size != 9 {
		t.Fatal("pen size not stored after unmount")
	}
	f.pad.Unmount()
}

func TestRemountAfterUnmount(t *testing.T) {
	f := mounted(t)
	f.pad.SetPenSize(8)
	f.pad.Unmount()
	f.pad.Mount(f.target, f.window)
	if len(f.target.allocs) != 2 {
		t.Fatalf("remount should allocate again: %v", f.target.allocs)
	}
	if w, _, _, _, _ := f.rec.Style(); w != 8 {
		t.Fatalf("remount line width = %v", w)
	}
	if f.window.Count() != 2 || f.target.events.Count() != 1 {
		t.Fatal("remount should attach exactly one set of listeners")
	}
}

func TestDegradedWithoutContext(t *testing.T) {
	window := NewListeners()
	target := &fakeTarget{dpr: 1, events: NewListeners(), noContext: true}
	p := New()
	p.Mount(target, window)
	if p.Ready() {
		t.Fatal("pad without context should not be ready")
	}
	if window.Count() != 0 || target.events.Count() != 0 {
		t.Fatal("degraded pad should not attach listeners")
	}
	p.SetPenSize(20)
	p.SetEraser(true)
	p.SelectColor(5)
	if got := p.Pen(); got != (state.PenConfig{Size: 20, ColorIndex: 5}) {
		t.Fatalf("pen = %+v", got)
	}

	nilTarget := New()
	nilTarget.Mount(nil, window)
	nilTarget.SetPenSize(3)
	if nilTarget.Ready() || nilTarget.Pen().Size != 3 {
		t.Fatal("nil target should leave an inert pad with working setters")
	}
}

func TestZeroDevicePixelRatioFallsBackToOne(t *testing.T) {
	target := &fakeTarget{rec: surface.NewRecorder(), dpr: 0, events: NewListeners()}
	New().Mount(target, NewListeners())
	if target.allocs[0] != [2]int{Width, Height} {
		t.Fatalf("allocation = %v", target.allocs[0])
	}
}

func TestOnChangeReportsPen(t *testing.T) {
	f := mounted(t)
	var seen []state.PenConfig
	f.pad.OnChange = func(c state.PenConfig) { seen = append(seen, c) }
	f.pad.SetPenSize(7)
	f.pad.SetEraser(true)
	f.pad.SelectColor(1)
	want := []state.PenConfig{
		{Size: 7},
		{Size: 7, Eraser: true},
		{Size: 7, ColorIndex: 1},
	}
	if !reflect.DeepEqual(seen, want) {
		t.Fatalf("changes = %+v, want %+v", seen, want)
	}
}
