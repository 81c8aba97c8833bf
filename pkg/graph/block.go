package graph

import (
	"errors"
	"fmt"

	"github.com/dshills/blockcanvas/pkg/geometry"
)

// Block represents a typed processing unit placed on the canvas.
// Position is the center of the block in canvas space; Size must have both
// components strictly positive.
type Block struct {
	ID             BlockID           `json:"id" yaml:"id"`
	Name           string            `json:"name" yaml:"name"`
	Description    string            `json:"description,omitempty" yaml:"description,omitempty"`
	Tags           []string          `json:"tags,omitempty" yaml:"tags,omitempty"`
	Position       geometry.Vector2  `json:"position" yaml:"position"`
	Size           geometry.Vector2  `json:"size" yaml:"size"`
	InputPorts     []Port            `json:"input_ports,omitempty" yaml:"input_ports,omitempty"`
	OutputPorts    []Port            `json:"output_ports,omitempty" yaml:"output_ports,omitempty"`
	Color          string            `json:"color,omitempty" yaml:"color,omitempty"`
	Shape          string            `json:"shape,omitempty" yaml:"shape,omitempty"`
	Icon           string            `json:"icon,omitempty" yaml:"icon,omitempty"`
	Mirrored       bool              `json:"mirrored,omitempty" yaml:"mirrored,omitempty"`
	MetaParameters map[string]string `json:"meta_parameters,omitempty" yaml:"meta_parameters,omitempty"`
	Callback       string            `json:"callback,omitempty" yaml:"callback,omitempty"`
}

// Validate checks if the block is valid, including port id uniqueness
// within the block
func (b *Block) Validate() error {
	if b.ID == "" {
		return errors.New("block: empty block ID")
	}
	if b.Name == "" {
		return fmt.Errorf("block %s: empty name", b.ID)
	}
	if b.Size.X <= 0 || b.Size.Y <= 0 {
		return fmt.Errorf("block %s: size must be positive, got (%g, %g)", b.ID, b.Size.X, b.Size.Y)
	}

	seen := make(map[PortID]bool, len(b.InputPorts)+len(b.OutputPorts))
	for i := range b.InputPorts {
		if err := b.InputPorts[i].Validate(); err != nil {
			return fmt.Errorf("block %s: %w", b.ID, err)
		}
		if seen[b.InputPorts[i].ID] {
			return fmt.Errorf("block %s: duplicate port ID %s", b.ID, b.InputPorts[i].ID)
		}
		seen[b.InputPorts[i].ID] = true
	}
	for i := range b.OutputPorts {
		if err := b.OutputPorts[i].Validate(); err != nil {
			return fmt.Errorf("block %s: %w", b.ID, err)
		}
		if seen[b.OutputPorts[i].ID] {
			return fmt.Errorf("block %s: duplicate port ID %s", b.ID, b.OutputPorts[i].ID)
		}
		seen[b.OutputPorts[i].ID] = true
	}
	return nil
}

// Rect returns the block's canvas-space bounding rectangle
func (b *Block) Rect() geometry.Rect {
	return geometry.NewRect(b.Position, b.Size)
}

// InputPort returns the input port with the given id
func (b *Block) InputPort(id PortID) (*Port, bool) {
	for i := range b.InputPorts {
		if b.InputPorts[i].ID == id {
			return &b.InputPorts[i], true
		}
	}
	return nil, false
}

// OutputPort returns the output port with the given id
func (b *Block) OutputPort(id PortID) (*Port, bool) {
	for i := range b.OutputPorts {
		if b.OutputPorts[i].ID == id {
			return &b.OutputPorts[i], true
		}
	}
	return nil, false
}

// InputIndex returns the position of an input port among its siblings
func (b *Block) InputIndex(id PortID) (int, bool) {
	for i := range b.InputPorts {
		if b.InputPorts[i].ID == id {
			return i, true
		}
	}
	return 0, false
}

// OutputIndex returns the position of an output port among its siblings
func (b *Block) OutputIndex(id PortID) (int, bool) {
	for i := range b.OutputPorts {
		if b.OutputPorts[i].ID == id {
			return i, true
		}
	}
	return 0, false
}

// InputAnchor returns the canvas-space anchor point of input port index i
func (b *Block) InputAnchor(i int) geometry.Vector2 {
	return geometry.PortAnchor(b.Rect(), i, len(b.InputPorts), false, b.Mirrored)
}

// OutputAnchor returns the canvas-space anchor point of output port index i
func (b *Block) OutputAnchor(i int) geometry.Vector2 {
	return geometry.PortAnchor(b.Rect(), i, len(b.OutputPorts), true, b.Mirrored)
}

// Clone returns a deep copy of the block
func (b Block) Clone() Block {
	out := b
	if b.Tags != nil {
		out.Tags = append([]string(nil), b.Tags...)
	}
	if b.InputPorts != nil {
		out.InputPorts = append([]Port(nil), b.InputPorts...)
	}
	if b.OutputPorts != nil {
		out.OutputPorts = append([]Port(nil), b.OutputPorts...)
	}
	if b.MetaParameters != nil {
		out.MetaParameters = make(map[string]string, len(b.MetaParameters))
		for k, v := range b.MetaParameters {
			out.MetaParameters[k] = v
		}
	}
	return out
}
