package tiles

import "strings"

// Container is an ordered, fixed-capacity run of tiles. Racks and lanes
// are both containers; they differ only in capacity and bookkeeping.
type Container struct {
	tiles []Tile
	cap   int
}

// NewContainer returns an empty container with the given capacity.
func NewContainer(capacity int) *Container {
	return &Container{tiles: make([]Tile, 0, capacity), cap: capacity}
}

func (c *Container) Len() int    { return len(c.tiles) }
func (c *Container) Cap() int    { return c.cap }
func (c *Container) Full() bool  { return len(c.tiles) >= c.cap }
func (c *Container) Empty() bool { return len(c.tiles) == 0 }

// At returns the tile at index i, or false if i is out of range.
func (c *Container) At(i int) (Tile, bool) {
	if i < 0 || i >= len(c.tiles) {
		return Tile{}, false
	}
	return c.tiles[i], true
}

// Append adds a tile at the end. It fails only when the container is full.
func (c *Container) Append(t Tile) bool {
	if c.Full() {
		return false
	}
	c.tiles = append(c.tiles, t)
	return true
}

// Insert places a tile at index i, shifting later tiles right. Out-of-range
// indexes are clamped to the nearest end rather than rejected; the only
// failure is a full container.
func (c *Container) Insert(i int, t Tile) bool {
	if c.Full() {
		return false
	}
	if i < 0 {
		i = 0
	}
	if i > len(c.tiles) {
		i = len(c.tiles)
	}
	c.tiles = append(c.tiles, Tile{})
	copy(c.tiles[i+1:], c.tiles[i:])
	c.tiles[i] = t
	return true
}

// RemoveAt takes the tile at index i out, shifting later tiles left.
func (c *Container) RemoveAt(i int) (Tile, bool) {
	if i < 0 || i >= len(c.tiles) {
		return Tile{}, false
	}
	t := c.tiles[i]
	c.tiles = append(c.tiles[:i], c.tiles[i+1:]...)
	return t, true
}

// Clear empties the container and returns the removed tiles in order.
func (c *Container) Clear() []Tile {
	removed := c.tiles
	c.tiles = make([]Tile, 0, c.cap)
	return removed
}

// Tiles returns a copy of the contents in order.
func (c *Container) Tiles() []Tile {
	out := make([]Tile, len(c.tiles))
	copy(out, c.tiles)
	return out
}

// SetKind retags the tile at index i without moving it.
func (c *Container) SetKind(i int, k Kind) bool {
	if i < 0 || i >= len(c.tiles) {
		return false
	}
	c.tiles[i].Kind = k
	return true
}

// Word reads the letters left to right as a lowercase word.
func (c *Container) Word() string {
	var sb strings.Builder
	sb.Grow(len(c.tiles))
	for _, t := range c.tiles {
		sb.WriteByte(byte(t.Letter) + ('a' - 'A'))
	}
	return sb.String()
}

// LetterCounts tallies the contents by letter.
func (c *Container) LetterCounts() [26]uint8 {
	var counts [26]uint8
	for _, t := range c.tiles {
		counts[t.Letter.Index()]++
	}
	return counts
}

// CopyFrom replaces the contents with a copy of o's contents. Capacities
// must already match; this is used for turn snapshots.
func (c *Container) CopyFrom(o *Container) {
	c.tiles = c.tiles[:0]
	c.tiles = append(c.tiles, o.tiles...)
}

func (c *Container) String() string {
	parts := make([]string, len(c.tiles))
	for i, t := range c.tiles {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}
