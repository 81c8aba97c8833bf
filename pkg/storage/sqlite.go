package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/dshills/blockcanvas/pkg/diagram"
	bcerrors "github.com/dshills/blockcanvas/pkg/errors"
)

// SQLiteDiagramRepository implements diagram.Repository using SQLite
// storage. Useful when many diagrams need listing and querying without
// reading every document file.
type SQLiteDiagramRepository struct {
	db *sql.DB
}

// NewSQLiteDiagramRepository creates a new SQLite-based diagram repository.
// Database location: ~/.blockcanvas/blockcanvas.db
func NewSQLiteDiagramRepository() (*SQLiteDiagramRepository, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}
	return NewSQLiteDiagramRepositoryWithPath(filepath.Join(homeDir, ".blockcanvas", "blockcanvas.db"))
}

// NewSQLiteDiagramRepositoryWithPath creates a repository with a custom
// database path. Useful for testing.
func NewSQLiteDiagramRepositoryWithPath(dbPath string) (*SQLiteDiagramRepository, error) {
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite works best with a single connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := InitializeDatabase(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &SQLiteDiagramRepository{db: db}, nil
}

// Close closes the database connection
func (r *SQLiteDiagramRepository) Close() error {
	return r.db.Close()
}

// Save persists a diagram, updating it if the ID already exists
func (r *SQLiteDiagramRepository) Save(d *diagram.Diagram) error {
	if d == nil {
		return fmt.Errorf("cannot save nil diagram")
	}
	if d.ID == "" {
		return fmt.Errorf("diagram must have an ID")
	}
	if err := d.Graph.Validate(); err != nil {
		return bcerrors.NewOperationalError("diagram.save", d.ID, "", err)
	}

	doc, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal diagram: %w", err)
	}

	_, err = r.db.Exec(`
		INSERT INTO diagrams (id, name, description, created_at, modified_at, document)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			modified_at = excluded.modified_at,
			document = excluded.document`,
		d.ID, d.Name, d.Description,
		d.Metadata.Created, d.Metadata.LastModified, string(doc))
	if err != nil {
		return fmt.Errorf("failed to save diagram: %w", err)
	}
	return nil
}

// Load retrieves a diagram by ID
func (r *SQLiteDiagramRepository) Load(id diagram.DiagramID) (*diagram.Diagram, error) {
	if id == "" {
		return nil, fmt.Errorf("diagram ID cannot be empty")
	}

	var doc string
	err := r.db.QueryRow("SELECT document FROM diagrams WHERE id = ?", id.String()).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", diagram.ErrDiagramNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load diagram: %w", err)
	}

	var d diagram.Diagram
	if err := json.Unmarshal([]byte(doc), &d); err != nil {
		return nil, bcerrors.NewOperationalError("diagram.load", id.String(), "", err)
	}
	return &d, nil
}

// Delete removes a diagram by ID
func (r *SQLiteDiagramRepository) Delete(id diagram.DiagramID) error {
	if id == "" {
		return fmt.Errorf("diagram ID cannot be empty")
	}

	res, err := r.db.Exec("DELETE FROM diagrams WHERE id = ?", id.String())
	if err != nil {
		return fmt.Errorf("failed to delete diagram: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", diagram.ErrDiagramNotFound, id)
	}
	return nil
}

// List returns all stored diagrams ordered by last modification
func (r *SQLiteDiagramRepository) List() ([]*diagram.Diagram, error) {
	rows, err := r.db.Query("SELECT document FROM diagrams ORDER BY modified_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list diagrams: %w", err)
	}
	defer func() { _ = rows.Close() }()

	diagrams := make([]*diagram.Diagram, 0)
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("failed to scan diagram row: %w", err)
		}
		var d diagram.Diagram
		if err := json.Unmarshal([]byte(doc), &d); err != nil {
			continue
		}
		diagrams = append(diagrams, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate diagram rows: %w", err)
	}
	return diagrams, nil
}
