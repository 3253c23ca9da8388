package level

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// SpawnMarker marks the row the player starts on.
const SpawnMarker = 'p'

// maxLineLength bounds a single level row.
const maxLineLength = 1 << 20

// Level is a parsed level file.
type Level struct {
	ID       int
	Tiles    TileMap
	SpawnRow int  // Row of the last spawn marker
	HasSpawn bool // Whether any spawn marker was present
	Source   string
}

// SpawnY returns the player's starting y for the given tile size, or
// fallback when the level has no spawn marker.
func (l *Level) SpawnY(tileSize, fallback float64) float64 {
	if !l.HasSpawn {
		return fallback
	}
	return float64(l.SpawnRow) * tileSize
}

// Parse reads a level from text.
// Each line is one row; trailing whitespace is stripped before parsing.
//
// Characters:
//
//	'#' = ground
//	'D' = danger
//	'p' = empty, marks the spawn row (last one wins)
//	anything else = empty
func Parse(r io.Reader) (*Level, error) {
	lvl := &Level{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineLength)

	row := 0
	for scanner.Scan() {
		line := strings.TrimRightFunc(scanner.Text(), unicode.IsSpace)
		tiles := make([]Tile, 0, len(line))
		for _, ch := range line {
			if ch == SpawnMarker {
				lvl.SpawnRow = row
				lvl.HasSpawn = true
			}
			tiles = append(tiles, TileFromRune(ch))
		}
		lvl.Tiles = append(lvl.Tiles, tiles)
		row++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("level: reading row %d: %w", row, err)
	}

	return lvl, nil
}

// ParseString parses a level from an in-memory string.
func ParseString(s string) *Level {
	// Only a row longer than maxLineLength can fail here.
	lvl, err := Parse(strings.NewReader(s))
	if err != nil {
		return &Level{}
	}
	return lvl
}
