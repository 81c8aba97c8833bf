package interaction

import (
	"math"

	"github.com/dshills/blockcanvas/pkg/geometry"
	"github.com/dshills/blockcanvas/pkg/graph"
	"github.com/dshills/blockcanvas/pkg/routing"
)

// Hit tolerance defaults, in pixels
const (
	// DefaultPortRadius is the pick radius around a port marker
	DefaultPortRadius = 6.0
	// DefaultHandleStrip is the width of the resize hit strips along a
	// block's edges
	DefaultHandleStrip = 6.0
	// DefaultEdgeTolerance is the pick distance from an edge segment
	DefaultEdgeTolerance = 4.0
)

// HitConfig holds the pixel-space pick tolerances used by hit testing.
// Tolerances are divided by the viewport zoom before canvas-space tests.
type HitConfig struct {
	PortRadius    float64
	HandleStrip   float64
	EdgeTolerance float64
}

// DefaultHitConfig returns the default pick tolerances
func DefaultHitConfig() HitConfig {
	return HitConfig{
		PortRadius:    DefaultPortRadius,
		HandleStrip:   DefaultHandleStrip,
		EdgeTolerance: DefaultEdgeTolerance,
	}
}

// Target is the closed union of things a pointer event can land on
type Target interface {
	isTarget()
}

// TargetCanvas is empty canvas background
type TargetCanvas struct{}

// TargetBlock is a block's body
type TargetBlock struct {
	ID graph.BlockID
}

// TargetHandle is one of the eight resize strips on a block's border
type TargetHandle struct {
	ID        graph.BlockID
	Direction geometry.Direction
}

// TargetPort is a port marker on a block edge
type TargetPort struct {
	Block     graph.BlockID
	PortIndex int
	Output    bool
}

// TargetEdge is a segment of a routed edge polyline. Interior reports
// whether the segment is adjustable (not an anchor-hugging end segment).
type TargetEdge struct {
	ID       graph.EdgeID
	Segment  int
	Interior bool
}

func (TargetCanvas) isTarget() {}
func (TargetBlock) isTarget()  {}
func (TargetHandle) isTarget() {}
func (TargetPort) isTarget()   {}
func (TargetEdge) isTarget()   {}

// HitTest resolves a screen point to the topmost canvas item under it.
// Priority order: port markers, resize handles, block bodies, edge
// segments, then empty canvas. Blocks later in the graph draw on top, so
// blocks are scanned back to front.
func HitTest(g *graph.Graph, view geometry.Viewport, router routing.Router, cfg HitConfig, p geometry.ScreenPoint) Target {
	pt := view.ScreenToCanvas(p)
	zoom := view.Zoom
	if zoom == 0 {
		zoom = 1.0
	}

	portTol := cfg.PortRadius / zoom
	handleStrip := cfg.HandleStrip / zoom
	edgeTol := cfg.EdgeTolerance / zoom

	for i := len(g.Blocks) - 1; i >= 0; i-- {
		b := &g.Blocks[i]
		if idx, output, ok := portAt(b, pt, portTol); ok {
			return TargetPort{Block: b.ID, PortIndex: idx, Output: output}
		}
		if dir, ok := geometry.HandleAt(b.Rect(), pt, handleStrip); ok {
			return TargetHandle{ID: b.ID, Direction: dir}
		}
		if b.Rect().Contains(pt) {
			return TargetBlock{ID: b.ID}
		}
	}

	for i := len(g.Edges) - 1; i >= 0; i-- {
		e := &g.Edges[i]
		path := RoutedPath(g, router, e)
		if seg, ok := segmentAt(path, pt, edgeTol); ok {
			interior := seg > 0 && seg < len(path)-2
			return TargetEdge{ID: e.ID, Segment: seg, Interior: interior}
		}
	}

	return TargetCanvas{}
}

// portAt returns the index and side of the port whose anchor lies within
// tol of the point
func portAt(b *graph.Block, pt geometry.Vector2, tol float64) (index int, output, ok bool) {
	for i := range b.OutputPorts {
		if b.OutputAnchor(i).Dist(pt) <= tol {
			return i, true, true
		}
	}
	for i := range b.InputPorts {
		if b.InputAnchor(i).Dist(pt) <= tol {
			return i, false, true
		}
	}
	return 0, false, false
}

// RoutedPath routes an edge against the current graph geometry. Returns nil
// when an endpoint is missing or collapsed.
func RoutedPath(g *graph.Graph, router routing.Router, e *graph.Edge) []geometry.Vector2 {
	outAnchor, inAnchor, outBox, inBox, ok := EdgeGeometry(g, e)
	if !ok {
		return nil
	}
	return router.Route(outAnchor, inAnchor, outBox, inBox, e.MidPoints)
}

// EdgeGeometry resolves an edge's endpoints to anchor points and bounding
// boxes against the current graph
func EdgeGeometry(g *graph.Graph, e *graph.Edge) (outAnchor, inAnchor geometry.Vector2, outBox, inBox geometry.Rect, ok bool) {
	outBlock, found := g.Block(e.Output.BlockID)
	if !found {
		return
	}
	inBlock, found := g.Block(e.Input.BlockID)
	if !found {
		return
	}
	outIdx, found := outBlock.OutputIndex(e.Output.PortID)
	if !found {
		return
	}
	inIdx, found := inBlock.InputIndex(e.Input.PortID)
	if !found {
		return
	}
	return outBlock.OutputAnchor(outIdx), inBlock.InputAnchor(inIdx),
		outBlock.Rect(), inBlock.Rect(), true
}

// segmentAt returns the index of the first polyline segment within tol of
// the point
func segmentAt(path []geometry.Vector2, pt geometry.Vector2, tol float64) (int, bool) {
	for i := 0; i+1 < len(path); i++ {
		if distToSegment(pt, path[i], path[i+1]) <= tol {
			return i, true
		}
	}
	return 0, false
}

// distToSegment returns the distance from p to the segment ab
func distToSegment(p, a, b geometry.Vector2) float64 {
	ab := b.Sub(a)
	lenSq := ab.X*ab.X + ab.Y*ab.Y
	if lenSq == 0 {
		return p.Dist(a)
	}
	ap := p.Sub(a)
	t := (ap.X*ab.X + ap.Y*ab.Y) / lenSq
	t = math.Max(0, math.Min(1, t))
	return p.Dist(a.Add(ab.Scale(t)))
}
