package interaction

import (
	"github.com/dshills/blockcanvas/pkg/geometry"
	"github.com/dshills/blockcanvas/pkg/graph"
)

// gesture is the closed union of interaction states. Exactly one gesture is
// active at a time, making illegal state combinations unrepresentable.
type gesture interface {
	isGesture()
}

// gestureIdle means no pointer interaction is in progress
type gestureIdle struct{}

// gestureDragBlock moves the selected blocks with the pointer
type gestureDragBlock struct{}

// gestureResize resizes the sole selected block from one handle
type gestureResize struct {
	direction geometry.Direction
}

// gestureDragEdge draws a new edge from a port toward the pointer. The
// ghost point is the pointer's canvas position used as the missing anchor
// for preview routing.
type gestureDragEdge struct {
	block     graph.BlockID
	portIndex int
	output    bool
	ghost     geometry.Vector2
}

// gestureMoveMidpoint drags one routing midpoint of a selected edge
type gestureMoveMidpoint struct {
	edge     graph.EdgeID
	midIndex int
}

func (gestureIdle) isGesture()         {}
func (gestureDragBlock) isGesture()    {}
func (gestureResize) isGesture()       {}
func (gestureDragEdge) isGesture()     {}
func (gestureMoveMidpoint) isGesture() {}
