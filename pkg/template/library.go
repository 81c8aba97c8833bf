package template

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dshills/blockcanvas/pkg/graph"
	"github.com/dshills/blockcanvas/pkg/validation"
)

// BlockPack is a named collection of block templates installed as one unit
type BlockPack struct {
	Name        string                `json:"name" yaml:"name"`
	Version     string                `json:"version" yaml:"version"`
	Description string                `json:"description,omitempty" yaml:"description,omitempty"`
	Blocks      []graph.BlockTemplate `json:"blocks" yaml:"blocks"`
}

// Validate checks the pack and every template in it
func (p *BlockPack) Validate() error {
	if err := validation.ValidatePackName(p.Name); err != nil {
		return fmt.Errorf("pack: %w", err)
	}
	if len(p.Blocks) == 0 {
		return fmt.Errorf("pack %s: no blocks", p.Name)
	}
	for i := range p.Blocks {
		if err := p.Blocks[i].Validate(); err != nil {
			return fmt.Errorf("pack %s: %w", p.Name, err)
		}
		if err := validation.ValidateCallback(p.Blocks[i].Callback); err != nil {
			return fmt.Errorf("pack %s: block %s: %w", p.Name, p.Blocks[i].Name, err)
		}
	}
	return nil
}

// Library is a filesystem-backed template source. Packs are stored as YAML
// files, one per pack, in the library directory. All methods are for use
// from the single UI goroutine; change callbacks fire synchronously.
type Library struct {
	dir       string
	packs     map[string]*BlockPack
	listeners map[int]func()
	nextSub   int
	installer *PackInstaller
}

// NewLibrary creates a library over the given directory, loading every pack
// file found there. The directory is created if missing.
func NewLibrary(dir string) (*Library, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create template library directory: %w", err)
	}

	lib := &Library{
		dir:       dir,
		packs:     make(map[string]*BlockPack),
		listeners: make(map[int]func()),
	}
	lib.installer = NewPackInstaller()

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read template library directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		pack, err := loadPackFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		lib.packs[pack.Name] = pack
	}
	return lib, nil
}

func loadPackFile(path string) (*BlockPack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pack file %s: %w", path, err)
	}
	var pack BlockPack
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("failed to parse pack file %s: %w", path, err)
	}
	if err := pack.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pack file %s: %w", path, err)
	}
	return &pack, nil
}

// GetAvailableBlocks returns every template from every installed pack
func (l *Library) GetAvailableBlocks() []graph.BlockTemplate {
	var out []graph.BlockTemplate
	for _, pack := range l.packs {
		out = append(out, pack.Blocks...)
	}
	return out
}

// GetBlock returns the first template with the given name, or nil
func (l *Library) GetBlock(name string) *graph.BlockTemplate {
	for _, pack := range l.packs {
		for i := range pack.Blocks {
			if pack.Blocks[i].Name == name {
				tmpl := pack.Blocks[i]
				return &tmpl
			}
		}
	}
	return nil
}

// SearchBlocks returns templates matching the query. Name matching is a
// case-insensitive substring test; every requested tag must be present.
func (l *Library) SearchBlocks(query SearchQuery) []graph.BlockTemplate {
	var out []graph.BlockTemplate
	for _, tmpl := range l.GetAvailableBlocks() {
		if query.Name != "" && !strings.Contains(strings.ToLower(tmpl.Name), strings.ToLower(query.Name)) {
			continue
		}
		if query.Category != "" && tmpl.Category != query.Category {
			continue
		}
		if !hasAllTags(tmpl.Tags, query.Tags) {
			continue
		}
		out = append(out, tmpl)
	}
	return out
}

func hasAllTags(have, want []string) bool {
	for _, w := range want {
		found := false
		for _, h := range have {
			if h == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// OnLibraryChanged registers a change callback and returns its unsubscribe
// function
func (l *Library) OnLibraryChanged(cb func()) func() {
	id := l.nextSub
	l.nextSub++
	l.listeners[id] = cb
	return func() {
		delete(l.listeners, id)
	}
}

func (l *Library) notify() {
	for _, cb := range l.listeners {
		cb()
	}
}

// InstallBlockPack downloads, validates, and installs a pack manifest from
// a URL. The pack file is written atomically; listeners are notified only
// after the install fully succeeds.
func (l *Library) InstallBlockPack(url string) error {
	pack, err := l.installer.Fetch(url)
	if err != nil {
		return err
	}
	return l.installPack(pack)
}

// installPack writes a validated pack to the library directory and makes it
// available
func (l *Library) installPack(pack *BlockPack) error {
	if err := pack.Validate(); err != nil {
		return err
	}

	data, err := yaml.Marshal(pack)
	if err != nil {
		return fmt.Errorf("failed to marshal pack %s: %w", pack.Name, err)
	}

	path := l.packPath(pack.Name)
	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write pack file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to install pack file: %w", err)
	}

	l.packs[pack.Name] = pack
	l.notify()
	return nil
}

// UninstallBlockPack removes an installed pack and deletes its file
func (l *Library) UninstallBlockPack(name string) error {
	if _, ok := l.packs[name]; !ok {
		return fmt.Errorf("pack not installed: %s", name)
	}
	if err := os.Remove(l.packPath(name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove pack file: %w", err)
	}
	delete(l.packs, name)
	l.notify()
	return nil
}

// InstalledPacks returns the names of every installed pack
func (l *Library) InstalledPacks() []string {
	names := make([]string, 0, len(l.packs))
	for name := range l.packs {
		names = append(names, name)
	}
	return names
}

func (l *Library) packPath(name string) string {
	return filepath.Join(l.dir, name+".yaml")
}
