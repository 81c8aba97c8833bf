package graph

import (
	"encoding/json"
	"fmt"
)

// The wire format is the contract shared with the simulation engine and
// with any save/load interchange: the graph stripped of purely
// presentational fields. Blocks lose position, size, color, shape, icon and
// mirroring; edges lose their routing midpoints.

// WirePort is a port as it appears on the wire
type WirePort struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Type         ValueType   `json:"type"`
	InitialValue interface{} `json:"initialValue,omitempty"`
}

// WireBlock is a block as it appears on the wire
type WireBlock struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Description    string     `json:"description,omitempty"`
	Tags           []string   `json:"tags,omitempty"`
	InputPorts     []WirePort `json:"inputPorts"`
	OutputPorts    []WirePort `json:"outputPorts"`
	CallbackString string     `json:"callbackString,omitempty"`
}

// WireEndpoint is an edge endpoint as it appears on the wire
type WireEndpoint struct {
	BlockID string `json:"blockID"`
	PortID  string `json:"portID"`
}

// WireEdge is an edge as it appears on the wire
type WireEdge struct {
	ID     string       `json:"id"`
	Type   ValueType    `json:"type"`
	Output WireEndpoint `json:"output"`
	Input  WireEndpoint `json:"input"`
}

// WireGraph is the full wire-format graph
type WireGraph struct {
	Blocks []WireBlock `json:"blocks"`
	Edges  []WireEdge  `json:"edges"`
}

// ExportWire converts a graph to its wire representation
func ExportWire(g *Graph) WireGraph {
	out := WireGraph{
		Blocks: make([]WireBlock, 0, len(g.Blocks)),
		Edges:  make([]WireEdge, 0, len(g.Edges)),
	}
	for i := range g.Blocks {
		b := &g.Blocks[i]
		wb := WireBlock{
			ID:             b.ID.String(),
			Name:           b.Name,
			Description:    b.Description,
			CallbackString: b.Callback,
			InputPorts:     make([]WirePort, 0, len(b.InputPorts)),
			OutputPorts:    make([]WirePort, 0, len(b.OutputPorts)),
		}
		if b.Tags != nil {
			wb.Tags = append([]string(nil), b.Tags...)
		}
		for _, p := range b.InputPorts {
			wb.InputPorts = append(wb.InputPorts, wirePort(p))
		}
		for _, p := range b.OutputPorts {
			wb.OutputPorts = append(wb.OutputPorts, wirePort(p))
		}
		out.Blocks = append(out.Blocks, wb)
	}
	for i := range g.Edges {
		e := &g.Edges[i]
		out.Edges = append(out.Edges, WireEdge{
			ID:   e.ID.String(),
			Type: e.Type,
			Output: WireEndpoint{
				BlockID: e.Output.BlockID.String(),
				PortID:  e.Output.PortID.String(),
			},
			Input: WireEndpoint{
				BlockID: e.Input.BlockID.String(),
				PortID:  e.Input.PortID.String(),
			},
		})
	}
	return out
}

func wirePort(p Port) WirePort {
	return WirePort{
		ID:           p.ID.String(),
		Name:         p.Name,
		Type:         p.Type,
		InitialValue: p.InitialValue.Interface(),
	}
}

// MarshalWire serializes a graph to wire-format JSON
func MarshalWire(g *Graph) ([]byte, error) {
	data, err := json.MarshalIndent(ExportWire(g), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal wire graph: %w", err)
	}
	return data, nil
}
