package geometry

// Direction identifies one of the eight compass resize handles on a block
type Direction string

// Resize handle directions
const (
	DirN  Direction = "n"
	DirS  Direction = "s"
	DirE  Direction = "e"
	DirW  Direction = "w"
	DirNE Direction = "ne"
	DirNW Direction = "nw"
	DirSE Direction = "se"
	DirSW Direction = "sw"
)

// Valid reports whether d is one of the eight compass directions
func (d Direction) Valid() bool {
	switch d {
	case DirN, DirS, DirE, DirW, DirNE, DirNW, DirSE, DirSW:
		return true
	}
	return false
}

// Cursor returns the directional cursor hint for hovering a resize handle
func (d Direction) Cursor() string {
	switch d {
	case DirN, DirS:
		return "ns-resize"
	case DirE, DirW:
		return "ew-resize"
	case DirNE, DirSW:
		return "nesw-resize"
	case DirNW, DirSE:
		return "nwse-resize"
	}
	return "default"
}

// HandleAt returns the resize handle under a canvas-space point, testing
// fixed-width strips along the block's edges and corners. The strip width is
// in canvas units; callers divide their pixel width by zoom. Corner strips
// win over edge strips so diagonal handles stay reachable.
func HandleAt(block Rect, p Vector2, strip float64) (Direction, bool) {
	outer := block.Expanded(strip / 2)
	if !outer.Contains(p) {
		return "", false
	}

	nearLeft := p.X <= block.Left()+strip/2
	nearRight := p.X >= block.Right()-strip/2
	nearTop := p.Y >= block.Top()-strip/2
	nearBottom := p.Y <= block.Bottom()+strip/2

	switch {
	case nearTop && nearLeft:
		return DirNW, true
	case nearTop && nearRight:
		return DirNE, true
	case nearBottom && nearLeft:
		return DirSW, true
	case nearBottom && nearRight:
		return DirSE, true
	case nearTop:
		return DirN, true
	case nearBottom:
		return DirS, true
	case nearLeft:
		return DirW, true
	case nearRight:
		return DirE, true
	}
	return "", false
}
