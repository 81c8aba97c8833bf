package graph

// ItemKind distinguishes the kinds of selectable canvas items
type ItemKind string

// Selectable item kinds
const (
	KindBlock ItemKind = "block"
	KindEdge  ItemKind = "edge"
)

// SelectedItem is one entry in a selection: a kind plus the item's id
type SelectedItem struct {
	Kind ItemKind
	ID   string
}

// SelectionSet is an ordered sequence of selected items. Insertion order is
// preserved; single-item operations such as resize act only when the
// selection holds exactly one item of the required kind.
type SelectionSet []SelectedItem

// Contains reports whether the selection holds the given item
func (s SelectionSet) Contains(kind ItemKind, id string) bool {
	for _, it := range s {
		if it.Kind == kind && it.ID == id {
			return true
		}
	}
	return false
}

// Toggle returns a new selection with the item added if absent or removed
// if present. The input selection is not modified.
func (s SelectionSet) Toggle(kind ItemKind, id string) SelectionSet {
	out := make(SelectionSet, 0, len(s)+1)
	removed := false
	for _, it := range s {
		if it.Kind == kind && it.ID == id {
			removed = true
			continue
		}
		out = append(out, it)
	}
	if !removed {
		out = append(out, SelectedItem{Kind: kind, ID: id})
	}
	return out
}

// BlockIDs returns the ids of all selected blocks in selection order
func (s SelectionSet) BlockIDs() []BlockID {
	var ids []BlockID
	for _, it := range s {
		if it.Kind == KindBlock {
			ids = append(ids, BlockID(it.ID))
		}
	}
	return ids
}

// SoleBlock returns the selected block id if the selection holds exactly
// one item and that item is a block
func (s SelectionSet) SoleBlock() (BlockID, bool) {
	if len(s) == 1 && s[0].Kind == KindBlock {
		return BlockID(s[0].ID), true
	}
	return "", false
}

// SoleEdge returns the selected edge id if the selection holds exactly one
// item and that item is an edge
func (s SelectionSet) SoleEdge() (EdgeID, bool) {
	if len(s) == 1 && s[0].Kind == KindEdge {
		return EdgeID(s[0].ID), true
	}
	return "", false
}

// Clone returns an independent copy of the selection
func (s SelectionSet) Clone() SelectionSet {
	if s == nil {
		return nil
	}
	return append(SelectionSet(nil), s...)
}
