package game

import "github.com/wordfray/wordfray/tiles"

// TurnRecord is the ledger entry for one turn, appended after its combat
// pass resolves. Seat-indexed arrays use the tiles.Seat values.
type TurnRecord struct {
	Turn         int
	Seat         tiles.Seat
	Words        []string
	DamageDealt  [3]int
	Healed       int
	ShieldGained int
	Mulligans    int
	FreeMulligan bool
	Restarted    bool
	HealthAfter  [3]int
}

// History returns the completed turns of the current match, oldest
// first. The in-progress turn is not included until its combat resolves.
func (m *Match) History() []TurnRecord {
	out := make([]TurnRecord, len(m.history))
	copy(out, m.history)
	return out
}
