// Package tiles holds the letter-tile primitives for the game: tiles and
// their one-shot powers, the per-side pools they are drawn from, and the
// ordered containers (racks) that hold them during play.
package tiles

import "fmt"

// Letter is an uppercase ASCII letter, 'A' through 'Z'.
type Letter byte

// Index returns the 0-25 alphabet index of the letter.
func (l Letter) Index() int {
	return int(l - 'A')
}

// Valid reports whether the letter is in the playable range.
func (l Letter) Valid() bool {
	return l >= 'A' && l <= 'Z'
}

func (l Letter) String() string {
	return string(rune(l))
}

// ParseLetter converts a rune to a Letter, folding case.
func ParseLetter(r rune) (Letter, error) {
	if r >= 'a' && r <= 'z' {
		r -= 'a' - 'A'
	}
	l := Letter(r)
	if !l.Valid() {
		return 0, fmt.Errorf("not a playable letter: %q", r)
	}
	return l, nil
}

// Kind tags a tile with its one-shot power, if any. Locked is not a power:
// it marks tiles already on a lane at the start of a turn, which cannot be
// picked up and do not count as newly placed.
type Kind uint8

const (
	Plain Kind = iota
	Locked
	Shield
	Heal
	Meteor
)

// Powered reports whether the kind carries a one-shot effect that fires
// when the tile's word is accepted.
func (k Kind) Powered() bool {
	return k == Shield || k == Heal || k == Meteor
}

func (k Kind) String() string {
	switch k {
	case Plain:
		return "plain"
	case Locked:
		return "locked"
	case Shield:
		return "shield"
	case Heal:
		return "heal"
	case Meteor:
		return "meteor"
	}
	return "unknown"
}

// ParseKind is the inverse of Kind.String. It is used by the reward data
// loader; unknown names are an error there, so they are one here.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "plain":
		return Plain, nil
	case "locked":
		return Locked, nil
	case "shield":
		return Shield, nil
	case "heal":
		return Heal, nil
	case "meteor":
		return Meteor, nil
	}
	return 0, fmt.Errorf("unknown tile kind %q", s)
}

// Tile is a single letter tile. The letter never changes; the kind does
// (lane tiles are retagged Locked at every turn start).
type Tile struct {
	Letter Letter
	Kind   Kind
}

func (t Tile) String() string {
	if t.Kind == Plain {
		return t.Letter.String()
	}
	return fmt.Sprintf("%s(%s)", t.Letter, t.Kind)
}

// Seat identifies a side of the match.
type Seat uint8

const (
	NoSeat Seat = iota
	Player
	Foe
)

// Opponent returns the other seat. NoSeat is its own opponent.
func (s Seat) Opponent() Seat {
	switch s {
	case Player:
		return Foe
	case Foe:
		return Player
	}
	return NoSeat
}

func (s Seat) String() string {
	switch s {
	case Player:
		return "player"
	case Foe:
		return "foe"
	}
	return "none"
}
