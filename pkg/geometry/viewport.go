package geometry

// ScreenPoint represents a point in screen space.
// Screen space is y-down: larger Y is further toward the bottom of the window.
type ScreenPoint struct {
	X float64
	Y float64
}

// Viewport describes the visible window onto the canvas: the canvas point at
// the center of the screen, the zoom factor, and the screen size in pixels.
type Viewport struct {
	// Center is the canvas-space point shown at the middle of the screen
	Center Vector2
	// Zoom is the scale factor from canvas units to pixels (1.0 = 1:1)
	Zoom float64
	// Width is the screen width in pixels
	Width float64
	// Height is the screen height in pixels
	Height float64
}

// NewViewport creates a viewport centered on the origin at 100% zoom
func NewViewport(width, height float64) Viewport {
	return Viewport{Center: Vector2{}, Zoom: 1.0, Width: width, Height: height}
}

// CanvasToScreen converts a canvas-space point to screen coordinates.
// The Y axis flips because canvas space is y-up and screen space is y-down.
func (v Viewport) CanvasToScreen(p Vector2) ScreenPoint {
	return ScreenPoint{
		X: (p.X-v.Center.X)*v.Zoom + v.Width/2,
		Y: v.Height/2 - (p.Y-v.Center.Y)*v.Zoom,
	}
}

// ScreenToCanvas converts a screen point to canvas coordinates
func (v Viewport) ScreenToCanvas(p ScreenPoint) Vector2 {
	zoom := v.Zoom
	if zoom == 0 {
		zoom = 1.0
	}
	return Vector2{
		X: (p.X-v.Width/2)/zoom + v.Center.X,
		Y: v.Center.Y - (p.Y-v.Height/2)/zoom,
	}
}

// ScreenDeltaToCanvas converts a raw pointer movement in pixels to a
// canvas-space displacement: divided by zoom on X, divided by zoom and
// negated on Y because canvas Y increases opposite to screen Y.
func (v Viewport) ScreenDeltaToCanvas(dx, dy float64) Vector2 {
	zoom := v.Zoom
	if zoom == 0 {
		zoom = 1.0
	}
	return Vector2{X: dx / zoom, Y: -dy / zoom}
}

// Pan moves the viewport center by a canvas-space delta
func (v Viewport) Pan(delta Vector2) Viewport {
	v.Center = v.Center.Add(delta)
	return v
}

// ScreenRect returns a block rectangle's on-screen extent in pixels.
// The returned values are the top-left screen corner and pixel size.
func (v Viewport) ScreenRect(r Rect) (topLeft ScreenPoint, w, h float64) {
	tl := v.CanvasToScreen(Vector2{X: r.Left(), Y: r.Top()})
	return tl, r.Size.X * v.Zoom, r.Size.Y * v.Zoom
}

// PortAnchor computes the canvas-space anchor point of a port on a block.
// Input ports sit on the left edge and output ports on the right edge,
// swapped when the block is mirrored. Sibling ports divide the edge evenly:
// port i of n sits at fraction (i+1)/(n+1) down from the top.
func PortAnchor(block Rect, index, count int, output, mirrored bool) Vector2 {
	if count < 1 {
		count = 1
	}
	x := block.Left()
	if output != mirrored {
		x = block.Right()
	}
	frac := float64(index+1) / float64(count+1)
	return Vector2{X: x, Y: block.Top() - block.Size.Y*frac}
}
