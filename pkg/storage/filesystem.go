package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dshills/blockcanvas/pkg/diagram"
	bcerrors "github.com/dshills/blockcanvas/pkg/errors"
)

// FilesystemDiagramRepository implements diagram.Repository using
// filesystem storage. Diagrams are stored as YAML files in
// ~/.blockcanvas/diagrams/
type FilesystemDiagramRepository struct {
	baseDir string
}

// NewFilesystemDiagramRepository creates a new filesystem-based diagram
// repository rooted in the user's home directory. It ensures the diagrams
// directory exists.
func NewFilesystemDiagramRepository() (*FilesystemDiagramRepository, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}
	return NewFilesystemDiagramRepositoryWithPath(filepath.Join(homeDir, ".blockcanvas"))
}

// NewFilesystemDiagramRepositoryWithPath creates a repository with a custom
// base directory. Useful for testing or custom configurations.
func NewFilesystemDiagramRepositoryWithPath(baseDir string) (*FilesystemDiagramRepository, error) {
	diagramsDir := filepath.Join(baseDir, "diagrams")
	if err := os.MkdirAll(diagramsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create diagrams directory: %w", err)
	}
	return &FilesystemDiagramRepository{baseDir: diagramsDir}, nil
}

// Save persists a diagram to the filesystem as a YAML file. The file is
// written to a temp path and renamed so a crash never leaves a truncated
// document.
func (r *FilesystemDiagramRepository) Save(d *diagram.Diagram) error {
	if d == nil {
		return fmt.Errorf("cannot save nil diagram")
	}
	if d.ID == "" {
		return fmt.Errorf("diagram must have an ID")
	}
	if err := d.Graph.Validate(); err != nil {
		return bcerrors.NewOperationalError("diagram.save", d.ID, "", err)
	}

	data, err := yaml.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal diagram to YAML: %w", err)
	}

	filePath := r.diagramPath(diagram.DiagramID(d.ID))
	tempPath := filePath + ".tmp"

	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write diagram file: %w", err)
	}
	if err := os.Rename(tempPath, filePath); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to save diagram file: %w", err)
	}
	return nil
}

// Load retrieves a diagram from the filesystem by its ID
func (r *FilesystemDiagramRepository) Load(id diagram.DiagramID) (*diagram.Diagram, error) {
	if id == "" {
		return nil, fmt.Errorf("diagram ID cannot be empty")
	}

	filePath := r.diagramPath(id)
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", diagram.ErrDiagramNotFound, id)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read diagram file: %w", err)
	}

	var d diagram.Diagram
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, bcerrors.NewOperationalError("diagram.load", id.String(), "", err)
	}
	if err := d.Graph.Validate(); err != nil {
		return nil, bcerrors.NewOperationalError("diagram.load", id.String(), "", err)
	}
	return &d, nil
}

// Delete removes a diagram from the filesystem
func (r *FilesystemDiagramRepository) Delete(id diagram.DiagramID) error {
	if id == "" {
		return fmt.Errorf("diagram ID cannot be empty")
	}

	filePath := r.diagramPath(id)
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", diagram.ErrDiagramNotFound, id)
	}
	if err := os.Remove(filePath); err != nil {
		return fmt.Errorf("failed to delete diagram file: %w", err)
	}
	return nil
}

// List returns all diagrams stored in the repository. Unreadable files are
// skipped so one corrupt document does not hide the rest.
func (r *FilesystemDiagramRepository) List() ([]*diagram.Diagram, error) {
	entries, err := os.ReadDir(r.baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read diagrams directory: %w", err)
	}

	diagrams := make([]*diagram.Diagram, 0)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), ".yaml")
		d, err := r.Load(diagram.DiagramID(id))
		if err != nil {
			continue
		}
		diagrams = append(diagrams, d)
	}
	return diagrams, nil
}

// diagramPath returns the full filesystem path for a diagram ID
func (r *FilesystemDiagramRepository) diagramPath(id diagram.DiagramID) string {
	return filepath.Join(r.baseDir, id.String()+".yaml")
}
