// Package template supplies block templates to the editor. The editor core
// only consumes the Source interface; how templates are fetched and stored
// is this package's concern.
package template

import (
	"github.com/dshills/blockcanvas/pkg/graph"
)

// SearchQuery filters the available templates. Empty fields match
// everything.
type SearchQuery struct {
	Name     string
	Tags     []string
	Category string
}

// Source is the template collaborator the editor consumes. Implementations
// decide the transport; the core never inspects it.
type Source interface {
	// GetAvailableBlocks returns every installed block template
	GetAvailableBlocks() []graph.BlockTemplate

	// GetBlock returns the template with the given name, or nil if absent
	GetBlock(name string) *graph.BlockTemplate

	// SearchBlocks returns the templates matching the query
	SearchBlocks(query SearchQuery) []graph.BlockTemplate

	// OnLibraryChanged registers a callback invoked after every install or
	// uninstall. The returned function unsubscribes.
	OnLibraryChanged(func()) (unsubscribe func())

	// InstallBlockPack fetches a pack manifest from a URL and installs it
	InstallBlockPack(url string) error

	// UninstallBlockPack removes an installed pack and its templates
	UninstallBlockPack(name string) error
}
