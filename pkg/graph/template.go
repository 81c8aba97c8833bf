package graph

import (
	"errors"
	"fmt"

	"github.com/dshills/blockcanvas/pkg/geometry"
)

// DefaultBlockSize is the size given to freshly instantiated blocks,
// in canvas units
var DefaultBlockSize = geometry.Vector2{X: 30, Y: 30}

// PortSpec describes a port in a block template. It carries everything a
// Port has except the id, which is generated at instantiation time.
type PortSpec struct {
	Name         string    `json:"name" yaml:"name"`
	Type         ValueType `json:"type" yaml:"type"`
	InitialValue Value     `json:"initial_value,omitempty" yaml:"initial_value,omitempty"`
}

// BlockTemplate is the externally supplied prototype a block is created
// from. Templates come from a template source; this package only consumes
// them.
type BlockTemplate struct {
	Name           string            `json:"name" yaml:"name"`
	Description    string            `json:"description,omitempty" yaml:"description,omitempty"`
	Category       string            `json:"category,omitempty" yaml:"category,omitempty"`
	Tags           []string          `json:"tags,omitempty" yaml:"tags,omitempty"`
	InputPorts     []PortSpec        `json:"input_ports,omitempty" yaml:"input_ports,omitempty"`
	OutputPorts    []PortSpec        `json:"output_ports,omitempty" yaml:"output_ports,omitempty"`
	Color          string            `json:"color,omitempty" yaml:"color,omitempty"`
	Shape          string            `json:"shape,omitempty" yaml:"shape,omitempty"`
	Icon           string            `json:"icon,omitempty" yaml:"icon,omitempty"`
	MetaParameters map[string]string `json:"meta_parameters,omitempty" yaml:"meta_parameters,omitempty"`
	Callback       string            `json:"callback,omitempty" yaml:"callback,omitempty"`
}

// Validate checks if the template is valid
func (t *BlockTemplate) Validate() error {
	if t.Name == "" {
		return errors.New("template: empty name")
	}
	seen := make(map[string]bool, len(t.InputPorts)+len(t.OutputPorts))
	for _, p := range t.InputPorts {
		if p.Name == "" {
			return fmt.Errorf("template %s: input port with empty name", t.Name)
		}
		if !p.Type.Valid() {
			return fmt.Errorf("template %s: port %s has unknown type %q", t.Name, p.Name, p.Type)
		}
		if seen["in:"+p.Name] {
			return fmt.Errorf("template %s: duplicate input port %s", t.Name, p.Name)
		}
		seen["in:"+p.Name] = true
	}
	for _, p := range t.OutputPorts {
		if p.Name == "" {
			return fmt.Errorf("template %s: output port with empty name", t.Name)
		}
		if !p.Type.Valid() {
			return fmt.Errorf("template %s: port %s has unknown type %q", t.Name, p.Name, p.Type)
		}
		if seen["out:"+p.Name] {
			return fmt.Errorf("template %s: duplicate output port %s", t.Name, p.Name)
		}
		seen["out:"+p.Name] = true
	}
	return nil
}

// InstantiateBlock creates a block from a template at the given canvas
// position. A fresh id is generated for the block and for every port; all
// other template fields are copied verbatim. The block gets the default
// size and starts unmirrored.
func InstantiateBlock(template *BlockTemplate, position geometry.Vector2) Block {
	block := Block{
		ID:          NewBlockID(),
		Name:        template.Name,
		Description: template.Description,
		Position:    position,
		Size:        DefaultBlockSize,
		Color:       template.Color,
		Shape:       template.Shape,
		Icon:        template.Icon,
		Mirrored:    false,
		Callback:    template.Callback,
	}
	if template.Tags != nil {
		block.Tags = append([]string(nil), template.Tags...)
	}
	if template.MetaParameters != nil {
		block.MetaParameters = make(map[string]string, len(template.MetaParameters))
		for k, v := range template.MetaParameters {
			block.MetaParameters[k] = v
		}
	}
	for _, spec := range template.InputPorts {
		block.InputPorts = append(block.InputPorts, Port{
			ID:           NewPortID(),
			Name:         spec.Name,
			Type:         spec.Type,
			InitialValue: spec.InitialValue,
		})
	}
	for _, spec := range template.OutputPorts {
		block.OutputPorts = append(block.OutputPorts, Port{
			ID:           NewPortID(),
			Name:         spec.Name,
			Type:         spec.Type,
			InitialValue: spec.InitialValue,
		})
	}
	return block
}
