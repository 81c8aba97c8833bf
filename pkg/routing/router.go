// Package routing computes orthogonal polyline paths for edges between two
// port anchors. The router is a pure function of the anchor points, the two
// blocks' bounding boxes, and the edge's midpoint hints; it never inspects
// graph state.
package routing

import (
	"math"

	"github.com/dshills/blockcanvas/pkg/geometry"
)

// Routing distance defaults, in canvas units
const (
	// DefaultMinSegment is the minimum length of any interior segment, so a
	// line never re-enters a port's hit region
	DefaultMinSegment = 10.0
	// DefaultMinVisible is the block size below which an endpoint counts as
	// collapsed and produces no polyline
	DefaultMinVisible = 4.0
	// DefaultClearance is how far a wrap-around route stays clear of the
	// blocks' bounding boxes
	DefaultClearance = 15.0
)

// sameLevelEps treats anchors within this vertical distance as level
const sameLevelEps = 1e-9

// Router holds the routing distances. The zero value is not usable; create
// one with NewRouter and override fields as needed.
type Router struct {
	MinSegment float64
	MinVisible float64
	Clearance  float64
}

// NewRouter creates a router with the default distances
func NewRouter() Router {
	return Router{
		MinSegment: DefaultMinSegment,
		MinVisible: DefaultMinVisible,
		Clearance:  DefaultClearance,
	}
}

// Route produces an ordered polyline from the output anchor to the input
// anchor using only horizontal and vertical segments.
//
// Two topological cases:
//   - forward: the input lies far enough to the right of the output for two
//     minimum-length horizontal runs; the path jogs vertically at positions
//     given by the midpoint hints (even indices are fractions along X, odd
//     indices fractions along Y).
//   - wrap-around: the input lies behind the output; a 5-segment path routes
//     over or under both blocks at an altitude clear of both bounding boxes.
//
// A collapsed endpoint (box smaller than MinVisible on either axis) yields a
// nil path.
func (r Router) Route(outAnchor, inAnchor geometry.Vector2, outBox, inBox geometry.Rect, midPoints []float64) []geometry.Vector2 {
	if collapsed(outBox, r.MinVisible) || collapsed(inBox, r.MinVisible) {
		return nil
	}

	if inAnchor.X-outAnchor.X >= 2*r.MinSegment {
		return r.routeForward(outAnchor, inAnchor, midPoints)
	}
	return r.routeWraparound(outAnchor, inAnchor, outBox, inBox)
}

func collapsed(box geometry.Rect, minVisible float64) bool {
	return box.Size.X < minVisible || box.Size.Y < minVisible
}

// routeForward builds the forward path. Level anchors collapse to a straight
// line regardless of hints, because every hinted height interpolates to the
// same level. Otherwise each hint pair becomes a vertical jog; jogs with less
// than MinSegment of vertical travel are skipped, and each jog's X is pushed
// at least MinSegment past the previous one so no interior segment
// degenerates. Jogs that run out of horizontal room fold their height change
// into the previous jog.
func (r Router) routeForward(out, in geometry.Vector2, mids []float64) []geometry.Vector2 {
	if math.Abs(out.Y-in.Y) < sameLevelEps {
		return []geometry.Vector2{out, in}
	}
	if len(mids) == 0 {
		mids = []float64{0.5}
	}

	pts := make([]geometry.Vector2, 0, len(mids)+3)
	pts = append(pts, out)

	curY := out.Y
	prevX := out.X
	for i := 0; i < len(mids); i += 2 {
		nextY := in.Y
		if i+1 < len(mids) {
			nextY = geometry.Lerp(out.Y, in.Y, mids[i+1])
		}
		if math.Abs(nextY-curY)+sameLevelEps < r.MinSegment {
			continue
		}

		low := prevX + r.MinSegment
		high := in.X - r.MinSegment
		if low > high {
			pts[len(pts)-1].Y = nextY
			curY = nextY
			continue
		}
		x := geometry.Clamp(geometry.Lerp(out.X, in.X, mids[i]), low, high)
		pts = append(pts,
			geometry.Vector2{X: x, Y: curY},
			geometry.Vector2{X: x, Y: nextY},
		)
		curY = nextY
		prevX = x
	}

	// Skipped or even-length hint lists can leave the path at a foreign
	// height; finish with one more vertical jog just before the input
	// anchor, folding into the previous jog when no room remains.
	if math.Abs(curY-in.Y) > sameLevelEps {
		x := in.X - r.MinSegment
		if len(pts) > 1 && x-prevX < r.MinSegment {
			pts[len(pts)-1].Y = in.Y
		} else {
			pts = append(pts,
				geometry.Vector2{X: x, Y: curY},
				geometry.Vector2{X: x, Y: in.Y},
			)
		}
	}

	pts = append(pts, in)
	return pts
}

// routeWraparound builds the 5-segment path for an input behind the output:
// out by the minimum length, up or down to a clear altitude, back past the
// input, down or up to the input's height, and in.
func (r Router) routeWraparound(out, in geometry.Vector2, outBox, inBox geometry.Rect) []geometry.Vector2 {
	alt := r.altitude(out, in, outBox, inBox)

	p1 := geometry.Vector2{X: out.X + r.MinSegment, Y: out.Y}
	p2 := geometry.Vector2{X: p1.X, Y: alt}
	p3 := geometry.Vector2{X: math.Min(in.X, inBox.Left()) - r.MinSegment, Y: alt}
	p4 := geometry.Vector2{X: p3.X, Y: in.Y}

	return []geometry.Vector2{out, p1, p2, p3, p4, in}
}

// altitude picks the horizontal routing height for a wrap-around path. The
// height always clears both bounding boxes; above both blocks is preferred
// unless routing below costs materially less vertical travel.
func (r Router) altitude(out, in geometry.Vector2, outBox, inBox geometry.Rect) float64 {
	above := math.Max(outBox.Top(), inBox.Top()) + r.Clearance
	below := math.Min(outBox.Bottom(), inBox.Bottom()) - r.Clearance

	costAbove := math.Abs(out.Y-above) + math.Abs(above-in.Y)
	costBelow := math.Abs(out.Y-below) + math.Abs(below-in.Y)

	if costBelow*1.25 < costAbove {
		return below
	}
	return above
}

// MidpointForSegment maps a path segment index to the midpoint hint that
// controls it. Segment 0 and the final segment hug the anchors and are not
// adjustable; interior segment s is positioned by midPoints[s-1]. Returns -1
// when the segment has no midpoint.
func MidpointForSegment(segment, midCount int) int {
	idx := segment - 1
	if idx < 0 || idx >= midCount {
		return -1
	}
	return idx
}

// MidpointVertical reports whether the segment a midpoint index controls is
// vertical. Even midpoint indices are X fractions positioning vertical
// segments; odd indices are Y fractions positioning horizontal segments.
func MidpointVertical(midIndex int) bool {
	return midIndex%2 == 0
}

// FractionDelta converts a canvas-space pointer displacement into a change
// of the given midpoint hint, scaling by the anchor span on the matching
// axis. Returns 0 when the span is degenerate.
func FractionDelta(out, in geometry.Vector2, midIndex int, delta geometry.Vector2) float64 {
	if MidpointVertical(midIndex) {
		span := in.X - out.X
		if math.Abs(span) < sameLevelEps {
			return 0
		}
		return delta.X / span
	}
	span := in.Y - out.Y
	if math.Abs(span) < sameLevelEps {
		return 0
	}
	return delta.Y / span
}
