package game

import "github.com/wordfray/wordfray/tiles"

// LocKind distinguishes the two container families the input layer can
// address.
type LocKind uint8

const (
	LocHand LocKind = iota
	LocLane
)

// Loc addresses a tile container from the input layer's point of view.
// Lane is meaningful only when Kind is LocLane.
type Loc struct {
	Kind LocKind
	Lane int
}

func HandLoc() Loc      { return Loc{Kind: LocHand} }
func LaneLoc(i int) Loc { return Loc{Kind: LocLane, Lane: i} }

// laneEvent maps a Loc to the Lane field events carry; -1 means the hand.
func (l Loc) laneEvent() int {
	if l.Kind == LocLane {
		return l.Lane
	}
	return -1
}

// dragState is the one tile the player may hold at a time, with enough
// provenance to put it back where it came from.
type dragState struct {
	tile      tiles.Tile
	from      Loc
	fromIndex int
}

// previewTarget is where the held tile would land if dropped now. Purely
// advisory; the render layer uses it for the insertion marker.
type previewTarget struct {
	to    Loc
	index int
}

// Dragging reports whether a tile is currently held.
func (m *Match) Dragging() bool { return m.drag != nil }

// HeldTile returns the tile being dragged, if any.
func (m *Match) HeldTile() (tiles.Tile, bool) {
	if m.drag == nil {
		return tiles.Tile{}, false
	}
	return m.drag.tile, true
}

// Preview returns the current drop target, if one was announced.
func (m *Match) Preview() (Loc, int, bool) {
	if m.preview == nil {
		return Loc{}, 0, false
	}
	return m.preview.to, m.preview.index, true
}

// PickUp lifts the tile at index out of the addressed container and
// starts a drag. It refuses outside the playing phase, while another
// drag is live, on locked or hidden lanes, and on tiles carried over
// from earlier turns.
func (m *Match) PickUp(loc Loc, index int) bool {
	if m.phase != PhasePlaying || m.drag != nil {
		return false
	}
	switch loc.Kind {
	case LocHand:
		t, ok := m.racks[m.active].RemoveAt(index)
		if !ok {
			return false
		}
		m.drag = &dragState{tile: t, from: loc, fromIndex: index}
	case LocLane:
		ln := m.row.Lane(loc.Lane)
		if ln == nil || !ln.Playable() {
			return false
		}
		t, ok := ln.At(index)
		if !ok || t.Kind == tiles.Locked {
			return false
		}
		t, _ = ln.RemoveAt(index)
		if !ln.HasNewTiles() {
			ln.TemporaryOwner = tiles.NoSeat
		}
		m.drag = &dragState{tile: t, from: loc, fromIndex: index}
	default:
		return false
	}
	m.emit(Event{Type: TilePickedUp, Seat: m.active, Lane: loc.laneEvent(), Tile: m.drag.tile})
	return true
}

// MovePreview announces where the held tile is hovering. It never
// mutates containers.
func (m *Match) MovePreview(loc Loc, index int) bool {
	if m.drag == nil {
		return false
	}
	if loc.Kind == LocLane && m.row.Lane(loc.Lane) == nil {
		return false
	}
	m.preview = &previewTarget{to: loc, index: index}
	return true
}

// Drop places the held tile into the addressed container at index
// (clamped). Full containers and unplayable lanes refuse the drop and
// keep the drag live so the caller can retry or cancel.
func (m *Match) Drop(loc Loc, index int) bool {
	if m.drag == nil {
		return false
	}
	switch loc.Kind {
	case LocHand:
		if !m.racks[m.active].Insert(index, m.drag.tile) {
			return false
		}
	case LocLane:
		ln := m.row.Lane(loc.Lane)
		if ln == nil || !ln.Playable() {
			return false
		}
		if !ln.Insert(index, m.drag.tile) {
			return false
		}
		if ln.HasNewTiles() {
			ln.TemporaryOwner = m.active
		}
	default:
		return false
	}
	tile := m.drag.tile
	m.drag, m.preview = nil, nil
	m.emit(Event{Type: TilePlaced, Seat: m.active, Lane: loc.laneEvent(), Tile: tile})
	return true
}

// CancelDrag returns the held tile to its source container. It cannot
// fail while a drag is live: removal freed the slot and nothing else
// mutates containers mid-drag.
func (m *Match) CancelDrag() bool {
	if m.drag == nil {
		return false
	}
	d := m.drag
	switch d.from.Kind {
	case LocHand:
		m.racks[m.active].Insert(d.fromIndex, d.tile)
	case LocLane:
		ln := m.row.Lane(d.from.Lane)
		ln.Insert(d.fromIndex, d.tile)
		if ln.HasNewTiles() {
			ln.TemporaryOwner = m.active
		}
	}
	m.drag, m.preview = nil, nil
	m.emit(Event{Type: TileReturned, Seat: m.active, Lane: d.from.laneEvent(), Tile: d.tile})
	return true
}

// cancelActiveDrag is the internal pre-step for actions that must not
// orphan a held tile.
func (m *Match) cancelActiveDrag() {
	if m.drag != nil {
		m.CancelDrag()
	}
}
