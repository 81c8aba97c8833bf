// Package diagram defines the persisted editor document: a named graph
// with descriptive metadata. The wire format the simulation engine consumes
// is produced separately by graph.ExportWire; documents additionally keep
// layout (positions, sizes, midpoints) so a reopened diagram looks the way
// it was left.
package diagram

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/blockcanvas/pkg/graph"
)

// ErrDiagramNotFound is returned when a diagram cannot be found
var ErrDiagramNotFound = errors.New("diagram not found")

// DiagramID is a unique identifier for a stored diagram
type DiagramID string

// String returns the string representation of the DiagramID
func (d DiagramID) String() string {
	return string(d)
}

// NewDiagramID generates a new unique DiagramID
func NewDiagramID() DiagramID {
	return DiagramID(uuid.NewString())
}

// Metadata contains descriptive information about a diagram
type Metadata struct {
	Author       string    `json:"author,omitempty" yaml:"author,omitempty"`
	Created      time.Time `json:"created,omitempty" yaml:"created,omitempty"`
	LastModified time.Time `json:"last_modified,omitempty" yaml:"last_modified,omitempty"`
	Tags         []string  `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Diagram is a stored block diagram document
type Diagram struct {
	ID          string      `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Metadata    Metadata    `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	Graph       graph.Graph `json:"graph" yaml:"graph"`
}

// New creates a diagram with a fresh id and timestamps
func New(name, description string) (*Diagram, error) {
	if name == "" {
		return nil, errors.New("diagram name cannot be empty")
	}
	now := time.Now()
	return &Diagram{
		ID:          NewDiagramID().String(),
		Name:        name,
		Description: description,
		Metadata: Metadata{
			Created:      now,
			LastModified: now,
		},
	}, nil
}

// Validate checks the document and every graph invariant
func (d *Diagram) Validate() error {
	if d.ID == "" {
		return errors.New("diagram: empty ID")
	}
	if d.Name == "" {
		return errors.New("diagram: empty name")
	}
	return d.Graph.Validate()
}

// Touch updates the last-modified timestamp
func (d *Diagram) Touch() {
	d.Metadata.LastModified = time.Now()
}

// Repository defines the interface for diagram persistence
type Repository interface {
	// Save persists a diagram to storage
	Save(d *Diagram) error

	// Load retrieves a diagram by ID
	Load(id DiagramID) (*Diagram, error)

	// Delete removes a diagram from storage
	Delete(id DiagramID) error

	// List returns all diagrams
	List() ([]*Diagram, error)
}
