package graph

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Edge validation errors. The reducer treats these as silent rejections;
// callers that need the reason can match with errors.Is.
var (
	// ErrSelfLoop is returned when an edge would connect a block to itself
	ErrSelfLoop = errors.New("edge connects a block to itself")
	// ErrTypeMismatch is returned when the output and input port types differ
	ErrTypeMismatch = errors.New("output and input port types do not match")
	// ErrInputConnected is returned when the input port already has an edge
	ErrInputConnected = errors.New("input port already has an incoming edge")
	// ErrDuplicateEdge is returned when an identical edge already exists
	ErrDuplicateEdge = errors.New("identical edge already exists")
	// ErrBlockNotFound is returned when an id does not resolve to a block
	ErrBlockNotFound = errors.New("block not found")
	// ErrPortNotFound is returned when an id does not resolve to a port
	ErrPortNotFound = errors.New("port not found")
)

// BlockID is a unique identifier for a block within a graph
type BlockID string

// String returns the string representation of the BlockID
func (b BlockID) String() string {
	return string(b)
}

// NewBlockID generates a new unique BlockID
func NewBlockID() BlockID {
	return BlockID(uuid.NewString())
}

// PortID is an identifier for a port, unique within its owning block
type PortID string

// String returns the string representation of the PortID
func (p PortID) String() string {
	return string(p)
}

// NewPortID generates a new unique PortID
func NewPortID() PortID {
	return PortID(uuid.NewString())
}

// EdgeID is a unique identifier for an edge within a graph
type EdgeID string

// String returns the string representation of the EdgeID
func (e EdgeID) String() string {
	return string(e)
}

// NewEdgeID generates a new unique EdgeID
func NewEdgeID() EdgeID {
	return EdgeID(uuid.NewString())
}

// ValueType is the closed set of payload types a port can carry
type ValueType string

// Supported port value types
const (
	TypeNumber  ValueType = "number"
	TypeString  ValueType = "string"
	TypeBoolean ValueType = "boolean"
	TypeAny     ValueType = "any"
)

// Valid reports whether t is a recognized value type
func (t ValueType) Valid() bool {
	switch t {
	case TypeNumber, TypeString, TypeBoolean, TypeAny:
		return true
	}
	return false
}

// Compatible reports whether an output of type t may feed an input of type o.
// TypeAny accepts and produces every type.
func (t ValueType) Compatible(o ValueType) bool {
	return t == o || t == TypeAny || o == TypeAny
}

// Value is a tagged variant holding a port's payload. Exactly the field
// matching Type is meaningful; the others stay at their zero value.
type Value struct {
	Type   ValueType `json:"type" yaml:"type"`
	Number float64   `json:"number,omitempty" yaml:"number,omitempty"`
	String string    `json:"string,omitempty" yaml:"string,omitempty"`
	Bool   bool      `json:"bool,omitempty" yaml:"bool,omitempty"`
}

// NumberValue creates a numeric value
func NumberValue(n float64) Value {
	return Value{Type: TypeNumber, Number: n}
}

// StringValue creates a string value
func StringValue(s string) Value {
	return Value{Type: TypeString, String: s}
}

// BoolValue creates a boolean value
func BoolValue(b bool) Value {
	return Value{Type: TypeBoolean, Bool: b}
}

// Interface returns the payload as a plain Go value for serialization
func (v Value) Interface() interface{} {
	switch v.Type {
	case TypeNumber:
		return v.Number
	case TypeString:
		return v.String
	case TypeBoolean:
		return v.Bool
	}
	return nil
}

// Validate checks that the value carries a recognized type
func (v Value) Validate() error {
	if !v.Type.Valid() {
		return fmt.Errorf("value: unknown type %q", v.Type)
	}
	return nil
}
