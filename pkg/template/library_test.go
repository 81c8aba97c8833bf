package template

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/blockcanvas/pkg/graph"
)

func mathPack() *BlockPack {
	return &BlockPack{
		Name:    "mathblocks",
		Version: "1.0.0",
		Blocks: []graph.BlockTemplate{
			{
				Name:        "gain",
				Category:    "math",
				Tags:        []string{"math", "linear"},
				InputPorts:  []graph.PortSpec{{Name: "in", Type: graph.TypeNumber}},
				OutputPorts: []graph.PortSpec{{Name: "out", Type: graph.TypeNumber}},
				Callback:    "k * in",
			},
			{
				Name:        "integrator",
				Category:    "math",
				Tags:        []string{"math", "dynamic"},
				InputPorts:  []graph.PortSpec{{Name: "in", Type: graph.TypeNumber}},
				OutputPorts: []graph.PortSpec{{Name: "out", Type: graph.TypeNumber}},
			},
		},
	}
}

func sourcePack() *BlockPack {
	return &BlockPack{
		Name:    "sources",
		Version: "0.2.0",
		Blocks: []graph.BlockTemplate{
			{
				Name:        "step",
				Category:    "sources",
				Tags:        []string{"signal"},
				OutputPorts: []graph.PortSpec{{Name: "out", Type: graph.TypeNumber}},
			},
		},
	}
}

// writePack stores a pack file the way the library itself would.
func writePack(t *testing.T, dir string, pack *BlockPack) {
	t.Helper()
	lib, err := NewLibrary(dir)
	require.NoError(t, err)
	require.NoError(t, lib.installPack(pack))
}

func TestLibraryLoadsPacksFromDisk(t *testing.T) {
	dir := t.TempDir()
	writePack(t, dir, mathPack())
	writePack(t, dir, sourcePack())

	lib, err := NewLibrary(dir)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"mathblocks", "sources"}, lib.InstalledPacks())
	assert.Len(t, lib.GetAvailableBlocks(), 3)
}

func TestLibraryRejectsInvalidPackFile(t *testing.T) {
	dir := t.TempDir()
	bad := []byte("name: \"has spaces in it\"\nversion: x\nblocks: []\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), bad, 0644))

	_, err := NewLibrary(dir)
	assert.Error(t, err)
}

func TestGetBlockReturnsCopy(t *testing.T) {
	dir := t.TempDir()
	writePack(t, dir, mathPack())
	lib, err := NewLibrary(dir)
	require.NoError(t, err)

	tmpl := lib.GetBlock("gain")
	require.NotNil(t, tmpl)
	tmpl.Name = "mutated"

	again := lib.GetBlock("gain")
	require.NotNil(t, again, "mutating a returned template must not affect the library")

	assert.Nil(t, lib.GetBlock("no-such-block"))
}

func TestSearchBlocks(t *testing.T) {
	dir := t.TempDir()
	writePack(t, dir, mathPack())
	writePack(t, dir, sourcePack())
	lib, err := NewLibrary(dir)
	require.NoError(t, err)

	tests := []struct {
		name  string
		query SearchQuery
		want  []string
	}{
		{"substring name", SearchQuery{Name: "gai"}, []string{"gain"}},
		{"case insensitive", SearchQuery{Name: "GAIN"}, []string{"gain"}},
		{"by category", SearchQuery{Category: "sources"}, []string{"step"}},
		{"all tags required", SearchQuery{Tags: []string{"math", "dynamic"}}, []string{"integrator"}},
		{"shared tag", SearchQuery{Tags: []string{"math"}}, []string{"gain", "integrator"}},
		{"no match", SearchQuery{Name: "derivative"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var names []string
			for _, b := range lib.SearchBlocks(tt.query) {
				names = append(names, b.Name)
			}
			assert.ElementsMatch(t, tt.want, names)
		})
	}
}

func TestUninstallBlockPack(t *testing.T) {
	dir := t.TempDir()
	writePack(t, dir, mathPack())
	lib, err := NewLibrary(dir)
	require.NoError(t, err)

	notified := 0
	unsubscribe := lib.OnLibraryChanged(func() { notified++ })

	require.NoError(t, lib.UninstallBlockPack("mathblocks"))
	assert.Empty(t, lib.InstalledPacks())
	assert.Equal(t, 1, notified)

	// The pack file is gone, so a fresh library no longer sees it.
	fresh, err := NewLibrary(dir)
	require.NoError(t, err)
	assert.Empty(t, fresh.InstalledPacks())

	assert.Error(t, lib.UninstallBlockPack("mathblocks"))
	assert.Equal(t, 1, notified, "a failed uninstall must not notify")

	unsubscribe()
	require.NoError(t, lib.installPack(mathPack()))
	assert.Equal(t, 1, notified, "unsubscribed listeners must not fire")
}
