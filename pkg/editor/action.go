package editor

import (
	"github.com/dshills/blockcanvas/pkg/geometry"
	"github.com/dshills/blockcanvas/pkg/graph"
)

// Action is the closed union of graph edits the reducer understands.
// Concrete actions are value types; the marker method keeps the union
// sealed to this package's types.
type Action interface {
	isAction()
}

// PortRef identifies a port by its owning block and its index among
// sibling ports on the same side. Interaction code works in indices; the
// reducer resolves them to port ids.
type PortRef struct {
	Block     graph.BlockID
	PortIndex int
}

// SelectObject selects a block or edge. With Multiple set the item is
// toggled in the selection; otherwise the selection is replaced.
type SelectObject struct {
	Kind     graph.ItemKind
	ID       string
	Multiple bool
}

// DeselectAll empties the selection
type DeselectAll struct{}

// DeleteSelected removes every selected item and cascades to edges
// touching removed blocks
type DeleteSelected struct{}

// MoveBlocks translates every selected block by a canvas-space delta
type MoveBlocks struct {
	Delta geometry.Vector2
}

// ResizeBlock grows or shrinks the sole selected block from one of the
// eight compass handles. The opposite edge stays fixed.
type ResizeBlock struct {
	Direction geometry.Direction
	Delta     geometry.Vector2
}

// AddBlock instantiates a template at a canvas position and appends the
// new block to the graph
type AddBlock struct {
	Template *graph.BlockTemplate
	Position geometry.Vector2
}

// AddEdge connects an output port to an input port, validating every edge
// invariant first
type AddEdge struct {
	Output PortRef
	Input  PortRef
}

// MoveEdgeMidpoint shifts one routing midpoint of the sole selected edge
type MoveEdgeMidpoint struct {
	PieceIndex int
	Delta      float64
}

// AddEdgeSplit splits one routing segment of the sole selected edge into
// three by inserting a pair of interpolated midpoints
type AddEdgeSplit struct {
	AfterIndex int
}

// RemoveEdgeSplit removes a pair of adjacent midpoints, undoing a split.
// At least one midpoint always remains.
type RemoveEdgeSplit struct {
	Index int
}

func (SelectObject) isAction()     {}
func (DeselectAll) isAction()      {}
func (DeleteSelected) isAction()   {}
func (MoveBlocks) isAction()       {}
func (ResizeBlock) isAction()      {}
func (AddBlock) isAction()         {}
func (AddEdge) isAction()          {}
func (MoveEdgeMidpoint) isAction() {}
func (AddEdgeSplit) isAction()     {}
func (RemoveEdgeSplit) isAction()  {}
