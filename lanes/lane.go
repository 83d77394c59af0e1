// Package lanes models the shared word-building slots both sides fight
// over, and the fixed row that holds them.
package lanes

import (
	"fmt"

	"github.com/wordfray/wordfray/tiles"
)

// LaneSize is how many tiles a lane holds when full.
const LaneSize = 12

// Lane is a contested tile container. Owner is permanent attribution, set
// when a word is accepted into the lane. TemporaryOwner is provisional
// attribution while tiles are being placed, and is only ever set while the
// lane holds more tiles than its start-of-turn snapshot.
type Lane struct {
	tiles.Container
	Owner          tiles.Seat
	TemporaryOwner tiles.Seat
	Locked         bool
	Visible        bool

	startOfTurnCount int
}

// NewLane returns an empty, visible, unlocked lane.
func NewLane() *Lane {
	return &Lane{Container: *tiles.NewContainer(LaneSize), Visible: true}
}

// SnapshotTurnStart records the current tile count as the turn-start
// baseline. Tiles beyond the baseline are "new this turn".
func (l *Lane) SnapshotTurnStart() {
	l.startOfTurnCount = l.Len()
}

// StartOfTurnCount returns the snapshot taken at the last turn start.
func (l *Lane) StartOfTurnCount() int {
	return l.startOfTurnCount
}

// NewTileCount returns how many tiles were added since the turn started.
func (l *Lane) NewTileCount() int {
	n := l.Len() - l.startOfTurnCount
	if n < 0 {
		return 0
	}
	return n
}

// HasNewTiles reports whether any tiles were added since the turn started.
func (l *Lane) HasNewTiles() bool {
	return l.Len() > l.startOfTurnCount
}

// LockTiles retags every tile in the lane as Locked. Run at turn start so
// only tiles placed afterward read as new.
func (l *Lane) LockTiles() {
	for i := 0; i < l.Len(); i++ {
		l.SetKind(i, tiles.Locked)
	}
}

// Playable reports whether the lane accepts placements at all.
func (l *Lane) Playable() bool {
	return l.Visible && !l.Locked
}

func (l *Lane) String() string {
	return fmt.Sprintf("[%s] owner=%v", l.Container.String(), l.Owner)
}
