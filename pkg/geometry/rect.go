package geometry

// Rect represents an axis-aligned rectangle in canvas space,
// stored as a center point and a size. Blocks keep their position as the
// center so symmetric resizing leaves the opposite edge fixed.
type Rect struct {
	Center Vector2
	Size   Vector2
}

// NewRect creates a rectangle from a center point and a size
func NewRect(center, size Vector2) Rect {
	return Rect{Center: center, Size: size}
}

// Left returns the X coordinate of the left edge
func (r Rect) Left() float64 {
	return r.Center.X - r.Size.X/2
}

// Right returns the X coordinate of the right edge
func (r Rect) Right() float64 {
	return r.Center.X + r.Size.X/2
}

// Top returns the Y coordinate of the top edge (canvas space is y-up)
func (r Rect) Top() float64 {
	return r.Center.Y + r.Size.Y/2
}

// Bottom returns the Y coordinate of the bottom edge
func (r Rect) Bottom() float64 {
	return r.Center.Y - r.Size.Y/2
}

// Contains checks if a point lies within the rectangle (edges inclusive)
func (r Rect) Contains(p Vector2) bool {
	return p.X >= r.Left() && p.X <= r.Right() &&
		p.Y >= r.Bottom() && p.Y <= r.Top()
}

// Intersects checks if two rectangles overlap
func (r Rect) Intersects(other Rect) bool {
	if r.Left() >= other.Right() || other.Left() >= r.Right() {
		return false
	}
	if r.Bottom() >= other.Top() || other.Bottom() >= r.Top() {
		return false
	}
	return true
}

// Expanded returns a rectangle grown by margin on every side.
// A negative margin shrinks the rectangle.
func (r Rect) Expanded(margin float64) Rect {
	return Rect{
		Center: r.Center,
		Size:   Vector2{X: r.Size.X + 2*margin, Y: r.Size.Y + 2*margin},
	}
}
