package editor

import (
	"fmt"
	"log"

	"github.com/dshills/blockcanvas/pkg/geometry"
	"github.com/dshills/blockcanvas/pkg/graph"
)

// Reduce applies one action to a state and returns the resulting state.
// Every branch either returns a fully independent copy or the unchanged
// input state when the action is rejected. Invalid user input is rejected
// silently apart from a warning log, so the UI never fails mid-gesture;
// panics are reserved for programmer misuse such as an unknown resize
// direction.
func Reduce(s State, a Action) State {
	switch act := a.(type) {
	case SelectObject:
		return reduceSelect(s, act)
	case DeselectAll:
		return State{Graph: s.Graph.Clone()}
	case DeleteSelected:
		return reduceDelete(s)
	case MoveBlocks:
		return reduceMove(s, act)
	case ResizeBlock:
		return reduceResize(s, act)
	case AddBlock:
		return reduceAddBlock(s, act)
	case AddEdge:
		return reduceAddEdge(s, act)
	case MoveEdgeMidpoint:
		return reduceMoveMidpoint(s, act)
	case AddEdgeSplit:
		return reduceAddSplit(s, act)
	case RemoveEdgeSplit:
		return reduceRemoveSplit(s, act)
	default:
		panic(fmt.Sprintf("editor: unknown action type %T", a))
	}
}

func reduceSelect(s State, act SelectObject) State {
	out := State{Graph: s.Graph.Clone()}
	if act.Multiple {
		out.Selection = s.Selection.Toggle(act.Kind, act.ID)
	} else {
		out.Selection = graph.SelectionSet{{Kind: act.Kind, ID: act.ID}}
	}
	return out
}

func reduceDelete(s State) State {
	if len(s.Selection) == 0 {
		return s
	}
	return State{Graph: s.Graph.CascadeDelete(s.Selection)}
}

func reduceMove(s State, act MoveBlocks) State {
	ids := s.Selection.BlockIDs()
	if len(ids) == 0 {
		return s
	}
	selected := make(map[graph.BlockID]bool, len(ids))
	for _, id := range ids {
		selected[id] = true
	}

	out := s.Clone()
	for i := range out.Graph.Blocks {
		if selected[out.Graph.Blocks[i].ID] {
			out.Graph.Blocks[i].Position = out.Graph.Blocks[i].Position.Add(act.Delta)
		}
	}
	return out
}

// resizeMasks returns the sign masks for a resize direction. The delta mask
// selects which size components the pointer delta affects; the position mask
// moves the block center by half the size change so the opposite edge stays
// fixed.
func resizeMasks(d geometry.Direction) (deltaMask, posMask geometry.Vector2) {
	switch d {
	case geometry.DirE:
		return geometry.Vector2{X: 1, Y: 0}, geometry.Vector2{X: 1, Y: 1}
	case geometry.DirW:
		return geometry.Vector2{X: -1, Y: 0}, geometry.Vector2{X: -1, Y: 1}
	case geometry.DirN:
		return geometry.Vector2{X: 0, Y: 1}, geometry.Vector2{X: 1, Y: 1}
	case geometry.DirS:
		return geometry.Vector2{X: 0, Y: -1}, geometry.Vector2{X: 1, Y: -1}
	case geometry.DirNE:
		return geometry.Vector2{X: 1, Y: 1}, geometry.Vector2{X: 1, Y: 1}
	case geometry.DirNW:
		return geometry.Vector2{X: -1, Y: 1}, geometry.Vector2{X: -1, Y: 1}
	case geometry.DirSE:
		return geometry.Vector2{X: 1, Y: -1}, geometry.Vector2{X: 1, Y: -1}
	case geometry.DirSW:
		return geometry.Vector2{X: -1, Y: -1}, geometry.Vector2{X: -1, Y: -1}
	default:
		panic(fmt.Sprintf("editor: unknown resize direction %q", d))
	}
}

func reduceResize(s State, act ResizeBlock) State {
	deltaMask, posMask := resizeMasks(act.Direction)

	id, ok := s.Selection.SoleBlock()
	if !ok {
		log.Printf("Warning: resize requires exactly one selected block")
		return s
	}

	block, found := s.Graph.Block(id)
	if !found {
		log.Printf("Warning: resize target block %s not found", id)
		return s
	}

	sizeDelta := act.Delta.Mul(deltaMask)
	newSize := block.Size.Add(sizeDelta)
	if newSize.X <= 0 || newSize.Y <= 0 {
		// Size must stay strictly positive; collapsing below the visible
		// minimum is a rendering concern, not a model one.
		return s
	}

	out := s.Clone()
	target, _ := out.Graph.Block(id)
	target.Size = newSize
	target.Position = target.Position.Add(sizeDelta.Mul(posMask).Scale(0.5))
	return out
}

func reduceAddBlock(s State, act AddBlock) State {
	if act.Template == nil {
		log.Printf("Warning: add block with no template is a no-op")
		return s
	}
	out := s.Clone()
	out.Graph.Blocks = append(out.Graph.Blocks, graph.InstantiateBlock(act.Template, act.Position))
	return out
}

func reduceAddEdge(s State, act AddEdge) State {
	outBlock, ok := s.Graph.Block(act.Output.Block)
	if !ok {
		log.Printf("Warning: add edge: output block %s not found", act.Output.Block)
		return s
	}
	inBlock, ok := s.Graph.Block(act.Input.Block)
	if !ok {
		log.Printf("Warning: add edge: input block %s not found", act.Input.Block)
		return s
	}
	if act.Output.PortIndex < 0 || act.Output.PortIndex >= len(outBlock.OutputPorts) {
		log.Printf("Warning: add edge: output port index %d out of range", act.Output.PortIndex)
		return s
	}
	if act.Input.PortIndex < 0 || act.Input.PortIndex >= len(inBlock.InputPorts) {
		log.Printf("Warning: add edge: input port index %d out of range", act.Input.PortIndex)
		return s
	}

	outPort := outBlock.OutputPorts[act.Output.PortIndex]
	inPort := inBlock.InputPorts[act.Input.PortIndex]
	output := graph.Endpoint{BlockID: outBlock.ID, PortID: outPort.ID}
	input := graph.Endpoint{BlockID: inBlock.ID, PortID: inPort.ID}

	if err := s.Graph.ValidateEdge(output, input); err != nil {
		log.Printf("Warning: add edge rejected: %v", err)
		return s
	}

	edgeType := outPort.Type
	if edgeType == graph.TypeAny {
		edgeType = inPort.Type
	}

	edge := graph.Edge{
		ID:        graph.NewEdgeID(),
		Type:      edgeType,
		Output:    output,
		Input:     input,
		MidPoints: seedMidPoints(outBlock, act.Output.PortIndex, inBlock, act.Input.PortIndex),
	}

	out := s.Clone()
	out.Graph.Edges = append(out.Graph.Edges, edge)
	return out
}

// seedMidPoints computes the initial routing hint for a new edge from the
// two anchors' relative vertical position and the ports' indices among
// their siblings. Parallel edges between stacked ports get staggered jogs
// so they do not overlap.
func seedMidPoints(outBlock *graph.Block, outIdx int, inBlock *graph.Block, inIdx int) []float64 {
	outAnchor := outBlock.OutputAnchor(outIdx)
	inAnchor := inBlock.InputAnchor(inIdx)

	offset := 0.05 * float64(outIdx-inIdx)
	if outAnchor.Y < inAnchor.Y {
		offset = -offset
	}
	return []float64{geometry.Clamp(0.5+offset, 0.1, 0.9)}
}

func reduceMoveMidpoint(s State, act MoveEdgeMidpoint) State {
	id, ok := s.Selection.SoleEdge()
	if !ok {
		log.Printf("Warning: move midpoint requires exactly one selected edge")
		return s
	}
	edge, found := s.Graph.Edge(id)
	if !found {
		log.Printf("Warning: move midpoint: edge %s not found", id)
		return s
	}

	mids := edge.MidPoints
	if len(mids) == 0 {
		mids = []float64{0.5}
	}
	if act.PieceIndex < 0 || act.PieceIndex >= len(mids) {
		log.Printf("Warning: move midpoint: index %d out of range", act.PieceIndex)
		return s
	}

	out := s.Clone()
	target, _ := out.Graph.Edge(id)
	if len(target.MidPoints) == 0 {
		target.MidPoints = []float64{0.5}
	}
	target.MidPoints[act.PieceIndex] += act.Delta
	return out
}

func reduceAddSplit(s State, act AddEdgeSplit) State {
	id, ok := s.Selection.SoleEdge()
	if !ok {
		log.Printf("Warning: edge split requires exactly one selected edge")
		return s
	}
	edge, found := s.Graph.Edge(id)
	if !found {
		log.Printf("Warning: edge split: edge %s not found", id)
		return s
	}

	mids := edge.MidPoints
	if len(mids) == 0 {
		mids = []float64{0.5}
	}
	if act.AfterIndex < 0 || act.AfterIndex >= len(mids) {
		log.Printf("Warning: edge split: index %d out of range", act.AfterIndex)
		return s
	}

	prev := mids[act.AfterIndex]
	next := 0.5
	if act.AfterIndex+1 < len(mids) {
		next = mids[act.AfterIndex+1]
	}
	v1 := prev + (next-prev)/3
	v2 := prev + 2*(next-prev)/3

	split := make([]float64, 0, len(mids)+2)
	split = append(split, mids[:act.AfterIndex+1]...)
	split = append(split, v1, v2)
	split = append(split, mids[act.AfterIndex+1:]...)

	out := s.Clone()
	target, _ := out.Graph.Edge(id)
	target.MidPoints = split
	return out
}

func reduceRemoveSplit(s State, act RemoveEdgeSplit) State {
	id, ok := s.Selection.SoleEdge()
	if !ok {
		log.Printf("Warning: removing an edge split requires exactly one selected edge")
		return s
	}
	edge, found := s.Graph.Edge(id)
	if !found {
		log.Printf("Warning: remove edge split: edge %s not found", id)
		return s
	}

	mids := edge.MidPoints
	// A pair removal needs at least 3 midpoints so one control point survives
	if len(mids) < 3 {
		log.Printf("Warning: remove edge split: edge has too few midpoints")
		return s
	}
	if act.Index < 0 || act.Index+1 >= len(mids) {
		log.Printf("Warning: remove edge split: index %d out of range", act.Index)
		return s
	}

	joined := make([]float64, 0, len(mids)-2)
	joined = append(joined, mids[:act.Index]...)
	joined = append(joined, mids[act.Index+2:]...)

	out := s.Clone()
	target, _ := out.Graph.Edge(id)
	target.MidPoints = joined
	return out
}
