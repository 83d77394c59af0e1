package game

import (
	"github.com/rs/zerolog/log"

	"github.com/wordfray/wordfray/lanes"
	"github.com/wordfray/wordfray/lexicon"
	"github.com/wordfray/wordfray/tiles"
)

// One-shot powered tile magnitudes, applied when the word holding the
// tile is accepted.
const (
	ShieldPerTile = 3
	HealPerTile   = 2
	MeteorKnock   = 2
)

// beginTurn runs turn-start housekeeping and opens a playing turn for
// the seat: both hands refill (required letters first), lanes compact
// toward index zero, carried-over lane tiles lock, and the snapshots
// that define "new this turn" are taken.
func (m *Match) beginTurn(seat tiles.Seat) {
	m.active = seat
	m.phase = PhasePlaying
	m.turnNumber++
	m.usedMulliganThisTurn = false
	m.restartAvailable = true
	m.failedLanes = nil
	m.drag, m.preview = nil, nil

	m.refillRack(tiles.Player)
	m.refillRack(tiles.Foe)
	m.row.Compact()
	m.row.LockTiles()
	m.row.SnapshotTurnStart()
	m.row.ClearTemporaryOwners()
	m.handSnapshot = m.racks[seat].Tiles()
	m.turnLog = TurnRecord{Turn: m.turnNumber, Seat: seat}
	m.emit(Event{Type: TurnChanged, Seat: seat})
}

// beginFoeTurn hands the turn to the scripted side. Lanes are
// re-snapshotted so only what the foe adds reads as new; compaction
// stays a playing-turn affair.
func (m *Match) beginFoeTurn() {
	m.active = tiles.Foe
	m.phase = PhaseFoeTurn
	m.turnNumber++
	m.failedLanes = nil

	m.row.LockTiles()
	m.row.SnapshotTurnStart()
	m.row.ClearTemporaryOwners()
	m.turnLog = TurnRecord{Turn: m.turnNumber, Seat: tiles.Foe}
	m.emit(Event{Type: TurnChanged, Seat: tiles.Foe})
	if m.foe != nil {
		m.foe.StartTurn(m)
	}
}

// finishFoeTurn accepts the lanes the foe rebuilt this turn, mirroring
// the human submit path, then refills its hand and moves to end-of-turn.
func (m *Match) finishFoeTurn() {
	for i, ln := range m.row.Lanes() {
		if ln.Owner == tiles.Foe && ln.HasNewTiles() {
			m.acceptLane(tiles.Foe, i, ln)
		}
	}
	m.row.ClearTemporaryOwners()
	m.refillRack(tiles.Foe)
	m.phase = PhaseEndTurn
}

// refillRack tops the seat's hand up to capacity. Letters required by
// active relics come first, preferring powered instances; the rest is
// random. An exhausted pool leaves the hand short rather than failing.
func (m *Match) refillRack(seat tiles.Seat) {
	rack, pool := m.racks[seat], m.pools[seat]
	for _, l := range m.relics.RequiredLetters(seat) {
		if rack.Full() {
			break
		}
		if rack.HasLetter(l) {
			continue
		}
		if t, ok := pool.DrawLetter(l); ok {
			rack.Append(t)
		}
	}
	for !rack.Full() {
		t, ok := pool.Draw()
		if !ok {
			break
		}
		rack.Append(t)
	}
}

// SubmitTurn ends the acting side's placement. Every lane that gained
// tiles this turn must read as a dictionary word of at least the minimum
// length; otherwise nothing changes and FailedLanes reports the
// offenders. On success the changed lanes are accepted, powered tiles
// fire, and the hand refills (or the forced free mulligan triggers when
// nothing was placed and the hand is full).
func (m *Match) SubmitTurn() bool {
	if m.phase != PhasePlaying {
		return false
	}
	m.cancelActiveDrag()

	var failed []int
	for i, ln := range m.row.Lanes() {
		if !ln.HasNewTiles() {
			continue
		}
		word := ln.Word()
		if len(word) < lexicon.MinWordLength || !m.dict.HasWord(word, m.active) {
			failed = append(failed, i)
		}
	}
	if len(failed) > 0 {
		m.failedLanes = failed
		log.Debug().Ints("lanes", failed).Msg("rejected-turn")
		return false
	}
	m.failedLanes = nil

	played := false
	for i, ln := range m.row.Lanes() {
		if ln.HasNewTiles() {
			played = true
			m.acceptLane(m.active, i, ln)
		}
	}
	m.row.ClearTemporaryOwners()

	if !played && m.racks[m.active].Full() {
		// stuck with a full hand and nothing playable; the discard is
		// free and does not touch the paid allowance
		m.discardAndRedraw(m.active)
		m.turnLog.FreeMulligan = true
		m.emit(Event{Type: MulliganUsed, Seat: m.active, Free: true})
	} else {
		m.refillRack(m.active)
	}
	m.phase = PhaseEndTurn
	return true
}

// acceptLane makes the seat the lane's permanent owner, records the
// word, applies relic healing, and fires any powered tiles in the lane.
func (m *Match) acceptLane(seat tiles.Seat, idx int, ln *lanes.Lane) {
	ln.Owner = seat
	word := ln.Word()
	m.turnLog.Words = append(m.turnLog.Words, word)
	if len(word) > len(m.longestWord[seat]) {
		m.longestWord[seat] = word
	}
	m.emit(Event{Type: WordAccepted, Seat: seat, Lane: idx, Word: word})
	log.Debug().Str("seat", seat.String()).Int("lane", idx).Str("word", word).Msg("accepted-word")

	if heal := m.relics.HealOnWord(seat, word); heal > 0 {
		m.applyHeal(seat, heal)
	}
	for i := 0; i < ln.Len(); i++ {
		t, _ := ln.At(i)
		if !t.Kind.Powered() {
			continue
		}
		m.firePower(seat, t.Kind)
		ln.SetKind(i, tiles.Plain)
	}
}

func (m *Match) firePower(seat tiles.Seat, k tiles.Kind) {
	switch k {
	case tiles.Shield:
		m.applyShield(seat, ShieldPerTile)
	case tiles.Heal:
		m.applyHeal(seat, HealPerTile)
	case tiles.Meteor:
		m.fireMeteor(seat)
	}
}

func (m *Match) applyHeal(seat tiles.Seat, amount int) {
	healed := m.maxHealth[seat] - m.health[seat]
	if healed > amount {
		healed = amount
	}
	if healed <= 0 {
		return
	}
	m.health[seat] += healed
	m.turnLog.Healed += healed
	m.emit(Event{Type: Healed, Seat: seat, Amount: healed})
}

func (m *Match) applyShield(seat tiles.Seat, amount int) {
	m.shield[seat] += amount
	m.turnLog.ShieldGained += amount
	m.emit(Event{Type: ShieldGained, Seat: seat, Amount: amount})
}

// fireMeteor knocks up to MeteorKnock tiles off the opponent's owned
// lanes, returning them to the opponent's pool. A lane emptied this way
// loses its owner.
func (m *Match) fireMeteor(seat tiles.Seat) {
	opp := seat.Opponent()
	left := MeteorKnock
	for i, ln := range m.row.Lanes() {
		for left > 0 && ln.Owner == opp && !ln.Empty() {
			t, _ := ln.RemoveAt(ln.Len() - 1)
			m.pools[opp].PutBack(t)
			left--
			m.emit(Event{Type: TileReturned, Seat: opp, Lane: i, Tile: t})
		}
		if ln.Owner == opp && ln.Empty() {
			ln.Owner = tiles.NoSeat
		}
	}
}

// Mulligan discards the acting side's hand back into its pool and draws
// a fresh one, spending one of the per-match allowance. It also forfeits
// restart-turn for the rest of the turn, since the turn-start hand no
// longer exists to restore.
func (m *Match) Mulligan() bool {
	if m.phase != PhasePlaying || m.mulligansLeft <= 0 {
		return false
	}
	m.cancelActiveDrag()
	m.discardAndRedraw(m.active)
	m.mulligansLeft--
	m.usedMulliganThisTurn = true
	m.restartAvailable = false
	m.turnLog.Mulligans++
	m.emit(Event{Type: MulliganUsed, Seat: m.active})
	return true
}

func (m *Match) discardAndRedraw(seat tiles.Seat) {
	rack, pool := m.racks[seat], m.pools[seat]
	for _, t := range rack.Clear() {
		pool.PutBack(t)
	}
	m.refillRack(seat)
}

// RestartTurn rewinds the acting side to its turn-start snapshot: tiles
// placed this turn go back to the pool and the hand redraws its exact
// snapshot letters. Available once per turn and never after a mulligan.
func (m *Match) RestartTurn() bool {
	if m.phase != PhasePlaying || !m.restartAvailable || m.usedMulliganThisTurn {
		return false
	}
	m.cancelActiveDrag()
	pool := m.pools[m.active]

	// this turn's additions are exactly the unlocked tiles
	for _, ln := range m.row.Lanes() {
		for i := ln.Len() - 1; i >= 0; i-- {
			t, _ := ln.At(i)
			if t.Kind == tiles.Locked {
				continue
			}
			if rm, ok := ln.RemoveAt(i); ok {
				pool.PutBack(rm)
			}
		}
		ln.TemporaryOwner = tiles.NoSeat
	}

	rack := m.racks[m.active]
	for _, t := range rack.Clear() {
		pool.PutBack(t)
	}
	for _, want := range m.handSnapshot {
		if t, ok := pool.DrawExact(want.Letter, want.Kind); ok {
			rack.Append(t)
		}
	}

	m.restartAvailable = false
	m.failedLanes = nil
	m.turnLog.Restarted = true
	m.emit(Event{Type: TurnRestarted, Seat: m.active})
	return true
}
