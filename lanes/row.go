package lanes

import (
	"strings"

	"github.com/wordfray/wordfray/tiles"
)

// LaneCount is the fixed number of lanes on the board.
const LaneCount = 3

// Row is the board's fixed run of lanes.
type Row struct {
	lanes [LaneCount]*Lane
}

// NewRow returns a row of empty lanes.
func NewRow() *Row {
	r := &Row{}
	for i := range r.lanes {
		r.lanes[i] = NewLane()
	}
	return r
}

// Lane returns the lane at index i, or nil if i is out of range.
func (r *Row) Lane(i int) *Lane {
	if i < 0 || i >= LaneCount {
		return nil
	}
	return r.lanes[i]
}

// Lanes returns the lanes in board order. The slice is fresh but the
// pointers are live.
func (r *Row) Lanes() []*Lane {
	out := make([]*Lane, LaneCount)
	copy(out[:], r.lanes[:])
	return out
}

// Compact shifts lane contents toward index 0. The pass order is 0←1,
// 1←2, then 0←1 again; the re-check covers a lane freed up by the middle
// pass. Tiles, ownership and the turn-start snapshot move together;
// locked/visible flags stay with the board position.
func (r *Row) Compact() {
	r.shift(0, 1)
	r.shift(1, 2)
	r.shift(0, 1)
}

func (r *Row) shift(dst, src int) {
	d, s := r.lanes[dst], r.lanes[src]
	if d.Len() != 0 || s.Len() == 0 {
		return
	}
	d.Container, s.Container = s.Container, d.Container
	d.Owner, s.Owner = s.Owner, tiles.NoSeat
	d.TemporaryOwner, s.TemporaryOwner = s.TemporaryOwner, tiles.NoSeat
	d.startOfTurnCount, s.startOfTurnCount = s.startOfTurnCount, 0
}

// LockTiles retags every lane's tiles as Locked.
func (r *Row) LockTiles() {
	for _, l := range r.lanes {
		l.LockTiles()
	}
}

// SnapshotTurnStart records each lane's current count as its baseline.
func (r *Row) SnapshotTurnStart() {
	for _, l := range r.lanes {
		l.SnapshotTurnStart()
	}
}

// ClearTemporaryOwners drops provisional attribution on every lane.
func (r *Row) ClearTemporaryOwners() {
	for _, l := range r.lanes {
		l.TemporaryOwner = tiles.NoSeat
	}
}

// Reset empties every lane and clears all per-match state. The removed
// tiles are returned keyed by lane index so callers can put them back in
// the right pool.
func (r *Row) Reset() [LaneCount][]tiles.Tile {
	var removed [LaneCount][]tiles.Tile
	for i, l := range r.lanes {
		removed[i] = l.Clear()
		l.Owner = tiles.NoSeat
		l.TemporaryOwner = tiles.NoSeat
		l.Locked = false
		l.Visible = true
		l.startOfTurnCount = 0
	}
	return removed
}

func (r *Row) String() string {
	var sb strings.Builder
	for i, l := range r.lanes {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(l.String())
	}
	return sb.String()
}
