// Package camera tracks the horizontal scroll of the level.
package camera

// Camera is a horizontal scroll offset that only moves forward.
type Camera struct {
	Offset float64 // World x shown at screen x 0
	Speed  float64 // World units scrolled per tick
}

// New creates a camera at offset 0. Negative speeds are treated as 0 so the
// offset never decreases.
func New(speed float64) Camera {
	if speed < 0 {
		speed = 0
	}
	return Camera{Speed: speed}
}

// Advance scrolls one tick forward.
func (c *Camera) Advance() {
	c.Offset += c.Speed
}

// Reset moves the camera back to the start of the level.
func (c *Camera) Reset() {
	c.Offset = 0
}

// ToScreenX converts a world x to a screen x.
func (c Camera) ToScreenX(worldX float64) float64 {
	return worldX - c.Offset
}

// TileScreenX returns the screen x of the left edge of a tile column.
func (c Camera) TileScreenX(col int, tileSize float64) float64 {
	return c.ToScreenX(float64(col) * tileSize)
}

// VisibleCols returns the half-open column range [first, last) that
// intersects a screen of the given width.
func (c Camera) VisibleCols(screenW, tileSize float64) (first, last int) {
	first = int(c.Offset / tileSize)
	if first < 0 {
		first = 0
	}
	last = int((c.Offset+screenW)/tileSize) + 1
	return first, last
}
