package graph

import (
	"fmt"
)

// Graph represents a block diagram: blocks and the edges connecting their
// ports. Blocks and edges reference each other by id only, never by index,
// so reordering either slice is always safe.
type Graph struct {
	Blocks []Block `json:"blocks" yaml:"blocks"`
	Edges  []Edge  `json:"edges" yaml:"edges"`
}

// Block returns the block with the given id
func (g *Graph) Block(id BlockID) (*Block, bool) {
	for i := range g.Blocks {
		if g.Blocks[i].ID == id {
			return &g.Blocks[i], true
		}
	}
	return nil, false
}

// Edge returns the edge with the given id
func (g *Graph) Edge(id EdgeID) (*Edge, bool) {
	for i := range g.Edges {
		if g.Edges[i].ID == id {
			return &g.Edges[i], true
		}
	}
	return nil, false
}

// ValidateEdge checks whether connecting the given output endpoint to the
// given input endpoint would preserve every edge invariant:
//  1. no self-loop
//  2. matching port types
//  3. the input port accepts at most one incoming edge
//  4. no duplicate (output, input) pair
//
// Both endpoints must resolve to existing blocks and ports. Returns nil when
// the connection is legal; otherwise one of the sentinel errors wrapped with
// endpoint context.
func (g *Graph) ValidateEdge(output, input Endpoint) error {
	if output.BlockID == input.BlockID {
		return fmt.Errorf("%w: block %s", ErrSelfLoop, output.BlockID)
	}

	outBlock, ok := g.Block(output.BlockID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrBlockNotFound, output.BlockID)
	}
	inBlock, ok := g.Block(input.BlockID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrBlockNotFound, input.BlockID)
	}

	outPort, ok := outBlock.OutputPort(output.PortID)
	if !ok {
		return fmt.Errorf("%w: output port %s on block %s", ErrPortNotFound, output.PortID, output.BlockID)
	}
	inPort, ok := inBlock.InputPort(input.PortID)
	if !ok {
		return fmt.Errorf("%w: input port %s on block %s", ErrPortNotFound, input.PortID, input.BlockID)
	}

	if !outPort.Type.Compatible(inPort.Type) {
		return fmt.Errorf("%w: %s -> %s", ErrTypeMismatch, outPort.Type, inPort.Type)
	}

	for i := range g.Edges {
		e := &g.Edges[i]
		if e.Output == output && e.Input == input {
			return fmt.Errorf("%w: %s.%s -> %s.%s", ErrDuplicateEdge,
				output.BlockID, output.PortID, input.BlockID, input.PortID)
		}
		if e.Input == input {
			return fmt.Errorf("%w: %s.%s", ErrInputConnected, input.BlockID, input.PortID)
		}
	}
	return nil
}

// CascadeDelete returns a new graph with the selected blocks and edges
// removed, along with every edge touching a removed block. The relative
// order of the surviving blocks and edges is preserved. The input graph is
// not modified.
func (g *Graph) CascadeDelete(selection SelectionSet) Graph {
	deadBlocks := make(map[BlockID]bool)
	deadEdges := make(map[EdgeID]bool)
	for _, it := range selection {
		switch it.Kind {
		case KindBlock:
			deadBlocks[BlockID(it.ID)] = true
		case KindEdge:
			deadEdges[EdgeID(it.ID)] = true
		}
	}

	out := Graph{
		Blocks: make([]Block, 0, len(g.Blocks)),
		Edges:  make([]Edge, 0, len(g.Edges)),
	}
	for i := range g.Blocks {
		if !deadBlocks[g.Blocks[i].ID] {
			out.Blocks = append(out.Blocks, g.Blocks[i].Clone())
		}
	}
	for i := range g.Edges {
		e := &g.Edges[i]
		if deadEdges[e.ID] || deadBlocks[e.Output.BlockID] || deadBlocks[e.Input.BlockID] {
			continue
		}
		out.Edges = append(out.Edges, e.Clone())
	}
	return out
}

// Validate checks every graph invariant: block validity, block id
// uniqueness, edge validity, endpoint existence, type agreement, the
// single-input rule, and edge uniqueness. Used when loading documents from
// storage.
func (g *Graph) Validate() error {
	seenBlocks := make(map[BlockID]bool, len(g.Blocks))
	for i := range g.Blocks {
		b := &g.Blocks[i]
		if err := b.Validate(); err != nil {
			return err
		}
		if seenBlocks[b.ID] {
			return fmt.Errorf("graph: duplicate block ID %s", b.ID)
		}
		seenBlocks[b.ID] = true
	}

	seenEdges := make(map[EdgeID]bool, len(g.Edges))
	seenInputs := make(map[Endpoint]bool, len(g.Edges))
	seenPairs := make(map[[2]Endpoint]bool, len(g.Edges))
	for i := range g.Edges {
		e := &g.Edges[i]
		if err := e.Validate(); err != nil {
			return err
		}
		if seenEdges[e.ID] {
			return fmt.Errorf("graph: duplicate edge ID %s", e.ID)
		}
		seenEdges[e.ID] = true

		outBlock, ok := g.Block(e.Output.BlockID)
		if !ok {
			return fmt.Errorf("edge %s: %w: %s", e.ID, ErrBlockNotFound, e.Output.BlockID)
		}
		inBlock, ok := g.Block(e.Input.BlockID)
		if !ok {
			return fmt.Errorf("edge %s: %w: %s", e.ID, ErrBlockNotFound, e.Input.BlockID)
		}
		outPort, ok := outBlock.OutputPort(e.Output.PortID)
		if !ok {
			return fmt.Errorf("edge %s: %w: output %s", e.ID, ErrPortNotFound, e.Output.PortID)
		}
		inPort, ok := inBlock.InputPort(e.Input.PortID)
		if !ok {
			return fmt.Errorf("edge %s: %w: input %s", e.ID, ErrPortNotFound, e.Input.PortID)
		}
		if !outPort.Type.Compatible(inPort.Type) {
			return fmt.Errorf("edge %s: %w: %s -> %s", e.ID, ErrTypeMismatch, outPort.Type, inPort.Type)
		}
		if seenInputs[e.Input] {
			return fmt.Errorf("edge %s: %w: %s.%s", e.ID, ErrInputConnected, e.Input.BlockID, e.Input.PortID)
		}
		seenInputs[e.Input] = true
		pair := [2]Endpoint{e.Output, e.Input}
		if seenPairs[pair] {
			return fmt.Errorf("edge %s: %w", e.ID, ErrDuplicateEdge)
		}
		seenPairs[pair] = true
	}
	return nil
}

// Clone returns a deep copy of the graph
func (g Graph) Clone() Graph {
	out := Graph{
		Blocks: make([]Block, len(g.Blocks)),
		Edges:  make([]Edge, len(g.Edges)),
	}
	for i := range g.Blocks {
		out.Blocks[i] = g.Blocks[i].Clone()
	}
	for i := range g.Edges {
		out.Edges[i] = g.Edges[i].Clone()
	}
	return out
}
