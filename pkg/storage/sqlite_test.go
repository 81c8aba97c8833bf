package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/blockcanvas/pkg/diagram"
)

func newTestSQLiteRepo(t *testing.T) *SQLiteDiagramRepository {
	t.Helper()
	repo, err := NewSQLiteDiagramRepositoryWithPath(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestSQLiteSaveLoadRoundTrip(t *testing.T) {
	repo := newTestSQLiteRepo(t)
	d := testDiagram(t, "plant model")

	require.NoError(t, repo.Save(d))

	loaded, err := repo.Load(diagram.DiagramID(d.ID))
	require.NoError(t, err)
	assert.Equal(t, d.Name, loaded.Name)
	require.Len(t, loaded.Graph.Blocks, 2)
	require.Len(t, loaded.Graph.Edges, 1)
}

func TestSQLiteLoadMissing(t *testing.T) {
	repo := newTestSQLiteRepo(t)

	_, err := repo.Load("no-such-diagram")
	assert.ErrorIs(t, err, diagram.ErrDiagramNotFound)
}

func TestSQLiteUpsert(t *testing.T) {
	repo := newTestSQLiteRepo(t)
	d := testDiagram(t, "before")

	require.NoError(t, repo.Save(d))
	d.Name = "after"
	d.Touch()
	require.NoError(t, repo.Save(d))

	loaded, err := repo.Load(diagram.DiagramID(d.ID))
	require.NoError(t, err)
	assert.Equal(t, "after", loaded.Name)

	diagrams, err := repo.List()
	require.NoError(t, err)
	assert.Len(t, diagrams, 1)
}

func TestSQLiteDelete(t *testing.T) {
	repo := newTestSQLiteRepo(t)
	d := testDiagram(t, "doomed")

	require.NoError(t, repo.Save(d))
	require.NoError(t, repo.Delete(diagram.DiagramID(d.ID)))

	_, err := repo.Load(diagram.DiagramID(d.ID))
	assert.ErrorIs(t, err, diagram.ErrDiagramNotFound)

	assert.ErrorIs(t, repo.Delete(diagram.DiagramID(d.ID)), diagram.ErrDiagramNotFound)
}

func TestSQLiteListOrdersByModification(t *testing.T) {
	repo := newTestSQLiteRepo(t)

	older := testDiagram(t, "older")
	older.Metadata.LastModified = time.Now().Add(-time.Hour)
	newer := testDiagram(t, "newer")
	newer.Metadata.LastModified = time.Now()

	require.NoError(t, repo.Save(older))
	require.NoError(t, repo.Save(newer))

	diagrams, err := repo.List()
	require.NoError(t, err)
	require.Len(t, diagrams, 2)
	assert.Equal(t, "newer", diagrams[0].Name)
	assert.Equal(t, "older", diagrams[1].Name)
}

func TestSQLiteSaveRejectsInvalidGraph(t *testing.T) {
	repo := newTestSQLiteRepo(t)
	d := testDiagram(t, "broken")
	d.Graph.Edges[0].Output.PortID = "gone"

	require.Error(t, repo.Save(d))
}
