package game

import "github.com/wordfray/wordfray/tiles"

// EventType names a discrete happening collaborators can react to with
// sound or animation. The engine never waits on a subscriber.
type EventType uint8

const (
	TilePickedUp EventType = iota
	TilePlaced
	TileReturned
	WordAccepted
	TurnChanged
	DamageDealt
	Healed
	ShieldGained
	MulliganUsed
	TurnRestarted
	MatchWon
	MatchLost
)

func (e EventType) String() string {
	switch e {
	case TilePickedUp:
		return "tile-picked-up"
	case TilePlaced:
		return "tile-placed"
	case TileReturned:
		return "tile-returned"
	case WordAccepted:
		return "word-accepted"
	case TurnChanged:
		return "turn-changed"
	case DamageDealt:
		return "damage-dealt"
	case Healed:
		return "healed"
	case ShieldGained:
		return "shield-gained"
	case MulliganUsed:
		return "mulligan-used"
	case TurnRestarted:
		return "turn-restarted"
	case MatchWon:
		return "match-won"
	case MatchLost:
		return "match-lost"
	}
	return "unknown"
}

// Event is one notification. Fields beyond Type are filled when they
// apply: Seat is the seat the event concerns, Lane is a lane index or -1,
// Amount carries damage/heal/shield quantities, Free marks a forced
// mulligan.
type Event struct {
	Type   EventType
	Seat   tiles.Seat
	Lane   int
	Word   string
	Amount int
	Tile   tiles.Tile
	Free   bool
}

// Subscribe registers a listener for every subsequent event. Listeners
// run synchronously in subscription order; they must not mutate the
// match.
func (m *Match) Subscribe(fn func(Event)) {
	m.subscribers = append(m.subscribers, fn)
}

func (m *Match) emit(ev Event) {
	for _, fn := range m.subscribers {
		fn(ev)
	}
}
