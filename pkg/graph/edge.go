package graph

import (
	"errors"
	"fmt"
)

// Endpoint identifies one end of an edge by block and port id
type Endpoint struct {
	BlockID BlockID `json:"block_id" yaml:"block"`
	PortID  PortID  `json:"port_id" yaml:"port"`
}

// Edge represents a typed connection from one block's output port to
// another block's input port. MidPoints are routing hints in the 0..1 range
// along the output-to-input span; an empty list means the router's default.
type Edge struct {
	ID        EdgeID    `json:"id" yaml:"id"`
	Type      ValueType `json:"type" yaml:"type"`
	Output    Endpoint  `json:"output" yaml:"output"`
	Input     Endpoint  `json:"input" yaml:"input"`
	MidPoints []float64 `json:"mid_points,omitempty" yaml:"mid_points,omitempty"`
}

// Validate checks the edge's intrinsic fields. Invariants that require the
// owning graph (port existence, type match, single input) are checked by
// Graph.ValidateEdge.
func (e *Edge) Validate() error {
	if e.ID == "" {
		return errors.New("edge: empty edge ID")
	}
	if e.Output.BlockID == "" || e.Output.PortID == "" {
		return errors.New("edge: incomplete output endpoint")
	}
	if e.Input.BlockID == "" || e.Input.PortID == "" {
		return errors.New("edge: incomplete input endpoint")
	}
	if e.Output.BlockID == e.Input.BlockID {
		return fmt.Errorf("edge: self-loop detected (block %s to itself)", e.Output.BlockID)
	}
	if !e.Type.Valid() {
		return fmt.Errorf("edge %s: unknown type %q", e.ID, e.Type)
	}
	return nil
}

// Touches reports whether the edge references the given block
func (e *Edge) Touches(id BlockID) bool {
	return e.Output.BlockID == id || e.Input.BlockID == id
}

// Clone returns a deep copy of the edge
func (e Edge) Clone() Edge {
	out := e
	if e.MidPoints != nil {
		out.MidPoints = append([]float64(nil), e.MidPoints...)
	}
	return out
}
