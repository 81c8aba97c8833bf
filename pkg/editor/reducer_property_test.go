package editor

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/dshills/blockcanvas/pkg/geometry"
	"github.com/dshills/blockcanvas/pkg/graph"
)

// TestReducerInvariants uses property-based testing to verify the invariants
// every reduction must preserve regardless of input.
func TestReducerInvariants(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping property-based test in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	// Property 1: moving blocks never changes graph structure
	properties.Property("move preserves block and edge counts", prop.ForAll(
		func(dx, dy float64) bool {
			s, srcID, dstID := twoBlockState()
			s = Reduce(s, AddEdge{
				Output: PortRef{Block: srcID, PortIndex: 0},
				Input:  PortRef{Block: dstID, PortIndex: 0},
			})
			s.Selection = graph.SelectionSet{{Kind: graph.KindBlock, ID: srcID.String()}}

			out := Reduce(s, MoveBlocks{Delta: geometry.Vector2{X: dx, Y: dy}})
			return len(out.Graph.Blocks) == 2 && len(out.Graph.Edges) == 1
		},
		gen.Float64Range(-1e6, 1e6),
		gen.Float64Range(-1e6, 1e6),
	))

	// Property 2: any accepted resize keeps the size strictly positive
	properties.Property("resize keeps size positive", prop.ForAll(
		func(dirIdx int, dx, dy float64) bool {
			dirs := []geometry.Direction{
				geometry.DirN, geometry.DirS, geometry.DirE, geometry.DirW,
				geometry.DirNE, geometry.DirNW, geometry.DirSE, geometry.DirSW,
			}
			b := numberBlock("b", 0, 0)
			b.Size = geometry.Vector2{X: 30, Y: 30}
			s := State{
				Graph:     graph.Graph{Blocks: []graph.Block{b}},
				Selection: graph.SelectionSet{{Kind: graph.KindBlock, ID: b.ID.String()}},
			}

			out := Reduce(s, ResizeBlock{
				Direction: dirs[dirIdx%len(dirs)],
				Delta:     geometry.Vector2{X: dx, Y: dy},
			})
			got, ok := out.Graph.Block(b.ID)
			return ok && got.Size.X > 0 && got.Size.Y > 0
		},
		gen.IntRange(0, 7),
		gen.Float64Range(-100, 100),
		gen.Float64Range(-100, 100),
	))

	// Property 3: resize moves the center by exactly half the size change
	properties.Property("resize center tracks half the size delta", prop.ForAll(
		func(dx, dy float64) bool {
			b := numberBlock("b", 0, 0)
			b.Size = geometry.Vector2{X: 30, Y: 30}
			s := State{
				Graph:     graph.Graph{Blocks: []graph.Block{b}},
				Selection: graph.SelectionSet{{Kind: graph.KindBlock, ID: b.ID.String()}},
			}

			out := Reduce(s, ResizeBlock{Direction: geometry.DirSE, Delta: geometry.Vector2{X: dx, Y: dy}})
			got, _ := out.Graph.Block(b.ID)

			moved := got.Position.Sub(b.Position)
			grew := got.Size.Sub(b.Size)
			return moved.X == grew.X/2 && moved.Y == -grew.Y/2
		},
		gen.Float64Range(-10, 100),
		gen.Float64Range(-100, 10),
	))

	// Property 4: a rejected duplicate add leaves the edge count at one
	properties.Property("duplicate edges never accumulate", prop.ForAll(
		func(n int) bool {
			s, srcID, dstID := twoBlockState()
			add := AddEdge{
				Output: PortRef{Block: srcID, PortIndex: 0},
				Input:  PortRef{Block: dstID, PortIndex: 0},
			}
			for i := 0; i < n%10+1; i++ {
				s = Reduce(s, add)
			}
			return len(s.Graph.Edges) == 1
		},
		gen.IntRange(1, 50),
	))

	// Property 5: every reachable state passes full graph validation
	properties.Property("reductions preserve graph validity", prop.ForAll(
		func(seed int) bool {
			s, srcID, dstID := twoBlockState()
			actions := []Action{
				AddEdge{Output: PortRef{Block: srcID, PortIndex: 0}, Input: PortRef{Block: dstID, PortIndex: 0}},
				SelectObject{Kind: graph.KindBlock, ID: srcID.String()},
				MoveBlocks{Delta: geometry.Vector2{X: float64(seed % 100)}},
				ResizeBlock{Direction: geometry.DirE, Delta: geometry.Vector2{X: float64(seed % 20)}},
				DeselectAll{},
			}
			for _, a := range actions {
				s = Reduce(s, a)
				if err := s.Graph.Validate(); err != nil {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 1<<20),
	))

	properties.TestingRun(t)
}
