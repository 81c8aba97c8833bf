package editor

import (
	"github.com/dshills/blockcanvas/pkg/graph"
)

// State is the complete editable state of the diagram: the graph plus the
// current selection. It is a value type; the reducer returns new states and
// never mutates its input, so callers may keep old states for undo.
type State struct {
	Graph     graph.Graph
	Selection graph.SelectionSet
}

// Clone returns a deep copy of the state
func (s State) Clone() State {
	return State{
		Graph:     s.Graph.Clone(),
		Selection: s.Selection.Clone(),
	}
}
