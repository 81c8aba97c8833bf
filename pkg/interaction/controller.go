// Package interaction turns a stream of low-level pointer events into
// high-level editor actions. A finite state machine tracks the current
// gesture; hit testing decides what each pointer-down lands on.
package interaction

import (
	"time"

	"github.com/dshills/blockcanvas/pkg/editor"
	"github.com/dshills/blockcanvas/pkg/geometry"
	"github.com/dshills/blockcanvas/pkg/graph"
	"github.com/dshills/blockcanvas/pkg/routing"
)

// DefaultDoubleClickWindow is how close together two presses on the same
// block must land to count as a double-click
const DefaultDoubleClickWindow = 300 * time.Millisecond

// Button identifies which pointer button generated an event
type Button int

// Pointer buttons
const (
	ButtonLeft Button = iota
	ButtonRight
)

// Modifiers carries the keyboard modifier state of a pointer event
type Modifiers struct {
	// Shift extends the selection instead of replacing it
	Shift bool
	// Ctrl requests an edge split (cmd on macOS; the host normalizes)
	Ctrl bool
}

// Controller is the pointer-interaction state machine. It owns only the
// transient gesture state; graph state lives with the host and is passed
// into every event method. Actions are emitted through the dispatch
// callback; the host feeds them to the reducer.
type Controller struct {
	view   geometry.Viewport
	router routing.Router
	hit    HitConfig

	dispatch   func(editor.Action)
	openConfig func(graph.BlockID)

	doubleClickWindow time.Duration
	now               func() time.Time

	current   gesture
	cursor    string
	lastPoint geometry.ScreenPoint

	// double-click slot, updated on pointer-down only
	lastPressAt    time.Time
	lastPressBlock graph.BlockID
}

// NewController creates a controller dispatching actions through the given
// callback. openConfig is invoked when a block is double-clicked; it may be
// nil.
func NewController(view geometry.Viewport, dispatch func(editor.Action), openConfig func(graph.BlockID)) *Controller {
	return &Controller{
		view:              view,
		router:            routing.NewRouter(),
		hit:               DefaultHitConfig(),
		dispatch:          dispatch,
		openConfig:        openConfig,
		doubleClickWindow: DefaultDoubleClickWindow,
		now:               time.Now,
		current:           gestureIdle{},
		cursor:            "default",
	}
}

// SetViewport updates the viewport used for coordinate mapping and hit
// testing. The host calls this on pan, zoom, or window resize.
func (c *Controller) SetViewport(view geometry.Viewport) {
	c.view = view
}

// SetRouter overrides the router used for edge hit testing and previews
func (c *Controller) SetRouter(r routing.Router) {
	c.router = r
}

// SetDoubleClickWindow overrides the double-click debounce window
func (c *Controller) SetDoubleClickWindow(d time.Duration) {
	c.doubleClickWindow = d
}

// Cursor returns the cursor hint for the current pointer position
func (c *Controller) Cursor() string {
	return c.cursor
}

// Dragging reports whether a gesture other than Idle is in progress
func (c *Controller) Dragging() bool {
	_, idle := c.current.(gestureIdle)
	return !idle
}

// PointerDown handles a pointer press against the current graph
func (c *Controller) PointerDown(g *graph.Graph, p geometry.ScreenPoint, btn Button, mod Modifiers) {
	c.lastPoint = p
	target := HitTest(g, c.view, c.router, c.hit, p)

	switch t := target.(type) {
	case TargetPort:
		c.current = gestureDragEdge{
			block:     t.Block,
			portIndex: t.PortIndex,
			output:    t.Output,
			ghost:     c.view.ScreenToCanvas(p),
		}

	case TargetHandle:
		c.emit(editor.SelectObject{Kind: graph.KindBlock, ID: t.ID.String()})
		c.current = gestureResize{direction: t.Direction}

	case TargetBlock:
		if c.isDoubleClick(t.ID) {
			// Double-click opens the block configuration surface and
			// deliberately starts no drag. The slot is cleared so a third
			// press cannot chain another double-click.
			c.lastPressAt = time.Time{}
			c.lastPressBlock = ""
			c.current = gestureIdle{}
			if c.openConfig != nil {
				c.openConfig(t.ID)
			}
			return
		}
		c.lastPressAt = c.now()
		c.lastPressBlock = t.ID
		c.emit(editor.SelectObject{Kind: graph.KindBlock, ID: t.ID.String(), Multiple: mod.Shift})
		c.current = gestureDragBlock{}

	case TargetEdge:
		c.pointerDownEdge(g, t, btn, mod)

	case TargetCanvas:
		c.emit(editor.DeselectAll{})
		c.current = gestureIdle{}
	}
}

// pointerDownEdge handles presses on an edge segment: plain click selects,
// shift-click toggles, ctrl-click splits the segment, right-click removes a
// split, and a plain press on an interior segment arms a midpoint drag.
func (c *Controller) pointerDownEdge(g *graph.Graph, t TargetEdge, btn Button, mod Modifiers) {
	edge, ok := g.Edge(t.ID)
	if !ok {
		c.current = gestureIdle{}
		return
	}
	midIndex := routing.MidpointForSegment(t.Segment, len(edge.MidPoints))

	switch {
	case btn == ButtonRight:
		c.emit(editor.SelectObject{Kind: graph.KindEdge, ID: t.ID.String()})
		if midIndex >= 0 {
			c.emit(editor.RemoveEdgeSplit{Index: midIndex})
		}
		c.current = gestureIdle{}

	case mod.Ctrl:
		c.emit(editor.SelectObject{Kind: graph.KindEdge, ID: t.ID.String()})
		split := midIndex
		if split < 0 {
			split = 0
		}
		c.emit(editor.AddEdgeSplit{AfterIndex: split})
		c.current = gestureIdle{}

	default:
		c.emit(editor.SelectObject{Kind: graph.KindEdge, ID: t.ID.String(), Multiple: mod.Shift})
		if t.Interior && !mod.Shift && midIndex >= 0 {
			c.current = gestureMoveMidpoint{edge: t.ID, midIndex: midIndex}
		} else {
			c.current = gestureIdle{}
		}
	}
}

// PointerMove handles pointer motion. While dragging it dispatches the
// matching move/resize/midpoint action scaled to canvas space; while idle it
// only updates the cursor hint for hovered resize handles.
func (c *Controller) PointerMove(g *graph.Graph, p geometry.ScreenPoint) {
	delta := c.view.ScreenDeltaToCanvas(p.X-c.lastPoint.X, p.Y-c.lastPoint.Y)
	c.lastPoint = p

	switch st := c.current.(type) {
	case gestureDragBlock:
		c.emit(editor.MoveBlocks{Delta: delta})

	case gestureResize:
		c.emit(editor.ResizeBlock{Direction: st.direction, Delta: delta})

	case gestureMoveMidpoint:
		edge, ok := g.Edge(st.edge)
		if !ok {
			c.current = gestureIdle{}
			return
		}
		outAnchor, inAnchor, _, _, ok := EdgeGeometry(g, edge)
		if !ok {
			return
		}
		frac := routing.FractionDelta(outAnchor, inAnchor, st.midIndex, delta)
		c.emit(editor.MoveEdgeMidpoint{PieceIndex: st.midIndex, Delta: frac})

	case gestureDragEdge:
		st.ghost = c.view.ScreenToCanvas(p)
		c.current = st

	case gestureIdle:
		c.updateCursor(g, p)
	}
}

// PointerUp ends the current gesture. Releasing an edge drag over a port of
// the opposite direction completes the connection; anywhere else cancels
// without error.
func (c *Controller) PointerUp(g *graph.Graph, p geometry.ScreenPoint) {
	st, dragging := c.current.(gestureDragEdge)
	c.current = gestureIdle{}
	if !dragging {
		return
	}

	target, ok := HitTest(g, c.view, c.router, c.hit, p).(TargetPort)
	if !ok {
		return
	}

	// Normalize so the edge's output is whichever side the drag marked as
	// the output, regardless of drag direction.
	switch {
	case st.output && !target.Output:
		c.emit(editor.AddEdge{
			Output: editor.PortRef{Block: st.block, PortIndex: st.portIndex},
			Input:  editor.PortRef{Block: target.Block, PortIndex: target.PortIndex},
		})
	case !st.output && target.Output:
		c.emit(editor.AddEdge{
			Output: editor.PortRef{Block: target.Block, PortIndex: target.PortIndex},
			Input:  editor.PortRef{Block: st.block, PortIndex: st.portIndex},
		})
	}
}

// CancelGesture aborts any in-progress gesture. The host calls this when a
// pointer-up may have been lost, such as on window focus loss mid-drag.
func (c *Controller) CancelGesture() {
	c.current = gestureIdle{}
}

// GhostPath returns the preview polyline for an in-progress edge drag,
// routed with the pointer position standing in for the missing anchor.
// Returns nil when no edge drag is active.
func (c *Controller) GhostPath(g *graph.Graph) []geometry.Vector2 {
	st, ok := c.current.(gestureDragEdge)
	if !ok {
		return nil
	}
	block, found := g.Block(st.block)
	if !found {
		return nil
	}

	// The pointer has no block box; give it a small phantom one so the
	// collapsed-endpoint rule does not suppress the preview.
	phantom := geometry.NewRect(st.ghost, geometry.Vector2{
		X: c.router.MinVisible * 2,
		Y: c.router.MinVisible * 2,
	})

	if st.output {
		return c.router.Route(block.OutputAnchor(st.portIndex), st.ghost, block.Rect(), phantom, nil)
	}
	return c.router.Route(st.ghost, block.InputAnchor(st.portIndex), phantom, block.Rect(), nil)
}

func (c *Controller) updateCursor(g *graph.Graph, p geometry.ScreenPoint) {
	if t, ok := HitTest(g, c.view, c.router, c.hit, p).(TargetHandle); ok {
		c.cursor = t.Direction.Cursor()
		return
	}
	c.cursor = "default"
}

func (c *Controller) isDoubleClick(id graph.BlockID) bool {
	return c.lastPressBlock == id &&
		!c.lastPressAt.IsZero() &&
		c.now().Sub(c.lastPressAt) <= c.doubleClickWindow
}

func (c *Controller) emit(a editor.Action) {
	if c.dispatch != nil {
		c.dispatch(a)
	}
}
