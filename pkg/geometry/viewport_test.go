package geometry

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCanvasToScreenRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		view Viewport
		pt   Vector2
	}{
		{"origin at default zoom", NewViewport(800, 600), Vector2{}},
		{"offset point", NewViewport(800, 600), Vector2{X: 120, Y: -45}},
		{"zoomed in", Viewport{Center: Vector2{X: 10, Y: 20}, Zoom: 2.5, Width: 1024, Height: 768}, Vector2{X: -3, Y: 7}},
		{"zoomed out", Viewport{Center: Vector2{X: -100, Y: 50}, Zoom: 0.25, Width: 640, Height: 480}, Vector2{X: 999, Y: -999}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			back := tt.view.ScreenToCanvas(tt.view.CanvasToScreen(tt.pt))
			if !almostEqual(back.X, tt.pt.X) || !almostEqual(back.Y, tt.pt.Y) {
				t.Errorf("round trip %v = %v", tt.pt, back)
			}
		})
	}
}

func TestScreenYAxisFlips(t *testing.T) {
	view := NewViewport(800, 600)

	// A point above the canvas center must land above the screen center.
	up := view.CanvasToScreen(Vector2{X: 0, Y: 100})
	if up.Y >= 300 {
		t.Errorf("canvas y=100 mapped to screen y=%v, want < 300", up.Y)
	}

	down := view.CanvasToScreen(Vector2{X: 0, Y: -100})
	if down.Y <= 300 {
		t.Errorf("canvas y=-100 mapped to screen y=%v, want > 300", down.Y)
	}
}

func TestScreenDeltaToCanvas(t *testing.T) {
	view := Viewport{Center: Vector2{}, Zoom: 2, Width: 800, Height: 600}

	d := view.ScreenDeltaToCanvas(10, 10)
	if !almostEqual(d.X, 5) || !almostEqual(d.Y, -5) {
		t.Errorf("delta = %v, want (5, -5)", d)
	}
}

func TestScreenToCanvasZeroZoom(t *testing.T) {
	view := Viewport{Width: 800, Height: 600}

	// Zero zoom must not divide by zero; it falls back to 1:1.
	p := view.ScreenToCanvas(ScreenPoint{X: 410, Y: 290})
	if !almostEqual(p.X, 10) || !almostEqual(p.Y, 10) {
		t.Errorf("point = %v, want (10, 10)", p)
	}
}

func TestPan(t *testing.T) {
	view := NewViewport(800, 600)

	panned := view.Pan(Vector2{X: 10, Y: -5})
	if panned.Center.X != 10 || panned.Center.Y != -5 {
		t.Errorf("center = %v, want (10, -5)", panned.Center)
	}
	// The new center lands at the middle of the screen.
	mid := panned.CanvasToScreen(Vector2{X: 10, Y: -5})
	if !almostEqual(mid.X, 400) || !almostEqual(mid.Y, 300) {
		t.Errorf("new center maps to %v, want (400, 300)", mid)
	}
	if view.Center != (Vector2{}) {
		t.Errorf("pan mutated the original viewport: %v", view.Center)
	}
}

func TestScreenRect(t *testing.T) {
	view := NewViewport(800, 600)

	r := NewRect(Vector2{X: 10, Y: 20}, Vector2{X: 30, Y: 40})
	tl, w, h := view.ScreenRect(r)
	// Canvas top-left (-5, 40) lands right of and above the screen center.
	if !almostEqual(tl.X, 395) || !almostEqual(tl.Y, 260) {
		t.Errorf("top-left = %v, want (395, 260)", tl)
	}
	if w != 30 || h != 40 {
		t.Errorf("pixel size = (%v, %v), want (30, 40)", w, h)
	}

	zoomed := Viewport{Zoom: 2, Width: 800, Height: 600}
	tl, w, h = zoomed.ScreenRect(NewRect(Vector2{}, Vector2{X: 30, Y: 30}))
	if !almostEqual(tl.X, 370) || !almostEqual(tl.Y, 270) {
		t.Errorf("zoomed top-left = %v, want (370, 270)", tl)
	}
	if w != 60 || h != 60 {
		t.Errorf("zoomed pixel size = (%v, %v), want (60, 60)", w, h)
	}
}

func TestPortAnchorPlacement(t *testing.T) {
	block := NewRect(Vector2{X: 0, Y: 0}, Vector2{X: 30, Y: 30})

	tests := []struct {
		name     string
		index    int
		count    int
		output   bool
		mirrored bool
		want     Vector2
	}{
		{"single input on left edge", 0, 1, false, false, Vector2{X: -15, Y: 0}},
		{"single output on right edge", 0, 1, true, false, Vector2{X: 15, Y: 0}},
		{"mirrored input on right edge", 0, 1, false, true, Vector2{X: 15, Y: 0}},
		{"mirrored output on left edge", 0, 1, true, true, Vector2{X: -15, Y: 0}},
		{"first of three", 0, 3, false, false, Vector2{X: -15, Y: 15 - 30.0/4}},
		{"last of three", 2, 3, false, false, Vector2{X: -15, Y: 15 - 3*30.0/4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PortAnchor(block, tt.index, tt.count, tt.output, tt.mirrored)
			if !almostEqual(got.X, tt.want.X) || !almostEqual(got.Y, tt.want.Y) {
				t.Errorf("PortAnchor = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPortAnchorsEvenlySpaced(t *testing.T) {
	block := NewRect(Vector2{}, Vector2{X: 40, Y: 60})

	const n = 4
	var prev float64 = math.Inf(1)
	var gap float64
	for i := 0; i < n; i++ {
		a := PortAnchor(block, i, n, true, false)
		if a.Y >= prev {
			t.Fatalf("anchor %d not below anchor %d", i, i-1)
		}
		if i > 0 {
			g := prev - a.Y
			if gap != 0 && !almostEqual(g, gap) {
				t.Errorf("uneven gap: %v vs %v", g, gap)
			}
			gap = g
		}
		prev = a.Y
	}
}
