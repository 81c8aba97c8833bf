package graph

import (
	"errors"
	"fmt"
)

// Port represents a single typed connection point on a block.
// A port is directional: it belongs to a block's input or output list.
type Port struct {
	ID           PortID    `json:"id" yaml:"id"`
	Name         string    `json:"name" yaml:"name"`
	Type         ValueType `json:"type" yaml:"type"`
	InitialValue Value     `json:"initial_value,omitempty" yaml:"initial_value,omitempty"`
}

// Validate checks if the port is valid
func (p *Port) Validate() error {
	if p.ID == "" {
		return errors.New("port: empty port ID")
	}
	if p.Name == "" {
		return errors.New("port: empty port name")
	}
	if !p.Type.Valid() {
		return fmt.Errorf("port %s: unknown type %q", p.Name, p.Type)
	}
	return nil
}

// Clone returns an independent copy of the port
func (p Port) Clone() Port {
	return p
}
