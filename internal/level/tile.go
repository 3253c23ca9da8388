// Package level parses text level files into tile maps and loads them by
// level number from a directory or the built-in set.
package level

// Tile is the kind of one grid cell.
type Tile int

const (
	TileEmpty  Tile = iota // Nothing; not drawn, not collidable
	TileGround             // Solid from above
	TileDanger             // Kills on any overlap
)

// String returns a human-readable name for the tile.
func (t Tile) String() string {
	switch t {
	case TileEmpty:
		return "empty"
	case TileGround:
		return "ground"
	case TileDanger:
		return "danger"
	default:
		return "unknown"
	}
}

// TileFromRune maps a level file character to a tile.
// Unknown characters, including whitespace and the spawn marker, are empty.
func TileFromRune(r rune) Tile {
	switch r {
	case '#':
		return TileGround
	case 'D':
		return TileDanger
	default:
		return TileEmpty
	}
}

// TileMap is a grid of tiles indexed [row][col]. Rows may differ in length.
type TileMap [][]Tile

// Rows returns the number of rows.
func (m TileMap) Rows() int {
	return len(m)
}

// Cols returns the length of the given row, or 0 if the row does not exist.
func (m TileMap) Cols(row int) int {
	if row < 0 || row >= len(m) {
		return 0
	}
	return len(m[row])
}

// Width returns the length of the longest row.
func (m TileMap) Width() int {
	w := 0
	for _, row := range m {
		if len(row) > w {
			w = len(row)
		}
	}
	return w
}

// At returns the tile at (row, col). Cells outside the map are empty.
func (m TileMap) At(row, col int) Tile {
	if row < 0 || row >= len(m) || col < 0 || col >= len(m[row]) {
		return TileEmpty
	}
	return m[row][col]
}

// Empty reports whether the map has no tiles. A map of blank rows is empty.
func (m TileMap) Empty() bool {
	return m.Width() == 0
}

// Count returns how many tiles of kind t the map holds.
func (m TileMap) Count(t Tile) int {
	n := 0
	for _, row := range m {
		for _, tile := range row {
			if tile == t {
				n++
			}
		}
	}
	return n
}
