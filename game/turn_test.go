package game

import (
	"sort"
	"testing"

	"github.com/matryer/is"

	"github.com/wordfray/wordfray/gamedata"
	"github.com/wordfray/wordfray/lexicon"
	"github.com/wordfray/wordfray/relic"
	"github.com/wordfray/wordfray/tiles"
)

func letterString(r *tiles.Rack) string {
	ls := make([]byte, 0, r.Len())
	for _, t := range r.Tiles() {
		ls = append(ls, byte(t.Letter))
	}
	sort.Slice(ls, func(i, j int) bool { return ls[i] < ls[j] })
	return string(ls)
}

func TestMulliganAllowance(t *testing.T) {
	is := is.New(t)
	m := newTestMatch(t, "rust-rat")
	is.True(m.Mulligan())
	is.True(m.Mulligan())
	is.True(!m.Mulligan())
	is.Equal(m.MulligansLeft(), 0)
	is.Equal(m.racks[tiles.Player].Len(), tiles.RackSize)
}

func TestRestartTurnRestoresSnapshot(t *testing.T) {
	is := is.New(t)
	m := newTestMatch(t, "rust-rat")
	before := letterString(m.racks[tiles.Player])

	is.True(m.PickUp(HandLoc(), 0))
	is.True(m.Drop(LaneLoc(0), 0))
	is.True(m.PickUp(HandLoc(), 0))
	is.True(m.Drop(LaneLoc(0), 1))
	is.Equal(m.racks[tiles.Player].Len(), 5)
	is.Equal(m.row.Lane(0).Len(), 2)

	is.True(m.RestartTurn())
	is.Equal(m.row.Lane(0).Len(), 0)
	is.Equal(m.row.Lane(0).TemporaryOwner, tiles.NoSeat)
	is.Equal(letterString(m.racks[tiles.Player]), before)

	// once per turn
	is.True(!m.RestartTurn())
}

func TestRestartKeepsCarriedTiles(t *testing.T) {
	is := is.New(t)
	m := newTestMatch(t, "rust-rat")
	fillLane(t, m, 0, tiles.Player, "cat")
	setRack(t, m, tiles.Player, "SQJXZVW")

	idx, _ := m.racks[tiles.Player].IndexOfLetter('S')
	is.True(m.PickUp(HandLoc(), idx))
	is.True(m.Drop(LaneLoc(0), 3))
	is.Equal(m.row.Lane(0).Word(), "cats")

	is.True(m.RestartTurn())
	is.Equal(m.row.Lane(0).Word(), "cat")
	is.Equal(m.row.Lane(0).Owner, tiles.Player)
}

func TestRestartRefusedAfterMulligan(t *testing.T) {
	is := is.New(t)
	m := newTestMatch(t, "rust-rat")
	is.True(m.Mulligan())
	is.True(!m.RestartTurn())
}

func TestForcedFreeMulligan(t *testing.T) {
	is := is.New(t)
	m := newTestMatch(t, "rust-rat")
	paid := m.MulligansLeft()
	free := 0
	m.Subscribe(func(ev Event) {
		if ev.Type == MulliganUsed && ev.Free {
			free++
		}
	})

	// full hand, nothing placed: the engine forces a free redraw
	is.True(m.SubmitTurn())
	is.Equal(free, 1)
	is.Equal(m.MulligansLeft(), paid)
	is.Equal(m.racks[tiles.Player].Len(), tiles.RackSize)
	is.Equal(m.Phase(), PhaseEndTurn)
}

func TestShieldTileGrantsShield(t *testing.T) {
	is := is.New(t)
	m := newTestMatch(t, "rust-rat")
	setRack(t, m, tiles.Player, "CATQJXZ")
	idx, _ := m.racks[tiles.Player].IndexOfLetter('C')
	m.racks[tiles.Player].SetKind(idx, tiles.Shield)

	placeWord(t, m, 0, "cat")
	is.True(m.SubmitTurn())
	is.Equal(m.Shield(tiles.Player), ShieldPerTile)
	for _, tl := range m.row.Lane(0).Tiles() {
		is.True(!tl.Kind.Powered()) // power consumed on accept
	}
}

func TestHealTileHealsCapped(t *testing.T) {
	is := is.New(t)
	m := newTestMatch(t, "rust-rat")
	m.health[tiles.Player] = DefaultMaxHealth - 1
	setRack(t, m, tiles.Player, "CATQJXZ")
	idx, _ := m.racks[tiles.Player].IndexOfLetter('A')
	m.racks[tiles.Player].SetKind(idx, tiles.Heal)

	placeWord(t, m, 0, "cat")
	is.True(m.SubmitTurn())
	is.Equal(m.Health(tiles.Player), DefaultMaxHealth)
}

func TestMeteorKnocksOpponentTiles(t *testing.T) {
	is := is.New(t)
	m := newTestMatch(t, "rust-rat")
	fillLane(t, m, 1, tiles.Foe, "ants")
	foePool := m.pools[tiles.Foe].TilesRemaining()

	setRack(t, m, tiles.Player, "CATQJXZ")
	idx, _ := m.racks[tiles.Player].IndexOfLetter('C')
	m.racks[tiles.Player].SetKind(idx, tiles.Meteor)
	placeWord(t, m, 0, "cat")
	is.True(m.SubmitTurn())

	is.Equal(m.row.Lane(1).Len(), 2)
	is.Equal(m.row.Lane(1).Owner, tiles.Foe)
	is.Equal(m.pools[tiles.Foe].TilesRemaining(), foePool+2)
}

func TestMeteorClearsEmptiedLane(t *testing.T) {
	is := is.New(t)
	m := newTestMatch(t, "rust-rat")
	fillLane(t, m, 2, tiles.Foe, "at")

	setRack(t, m, tiles.Player, "CATQJXZ")
	idx, _ := m.racks[tiles.Player].IndexOfLetter('C')
	m.racks[tiles.Player].SetKind(idx, tiles.Meteor)
	placeWord(t, m, 0, "cat")
	is.True(m.SubmitTurn())

	is.Equal(m.row.Lane(2).Len(), 0)
	is.Equal(m.row.Lane(2).Owner, tiles.NoSeat)
}

func TestLeechLocketHealsPerWord(t *testing.T) {
	is := is.New(t)
	dict := lexicon.NewDictionaryFromWords(testWords)
	m := NewMatch(dict, relic.NewRegistry(), gamedata.MustLoad(), Options{Seed: 9})
	is.NoErr(m.GrantPlayerRelic("leech-locket"))
	is.NoErr(m.StartMatch("rust-rat"))
	m.health[tiles.Player] = 30

	setRack(t, m, tiles.Player, "CATQJXZ")
	placeWord(t, m, 0, "cat")
	is.True(m.SubmitTurn())
	is.Equal(m.Health(tiles.Player), 32)
}

func TestLockedLaneRefusesDrop(t *testing.T) {
	is := is.New(t)
	m := newTestMatch(t, "sea-reaver")
	is.True(m.row.Lane(2).Locked)

	is.True(m.PickUp(HandLoc(), 0))
	is.True(!m.Drop(LaneLoc(2), 0))
	// the drag survives the refused drop
	is.True(m.Dragging())
	is.True(m.CancelDrag())
	is.Equal(m.racks[tiles.Player].Len(), tiles.RackSize)
}

func TestHiddenLaneRefusesDrop(t *testing.T) {
	is := is.New(t)
	m := newTestMatch(t, "bestiary-binder")
	is.True(!m.row.Lane(2).Visible)

	is.True(m.PickUp(HandLoc(), 0))
	is.True(!m.Drop(LaneLoc(2), 0))
	is.True(m.CancelDrag())
}

func TestCarriedTilesCannotBeLifted(t *testing.T) {
	is := is.New(t)
	m := newTestMatch(t, "rust-rat")
	fillLane(t, m, 0, tiles.Player, "cat")
	is.True(!m.PickUp(LaneLoc(0), 0))
}

func TestFullLaneRefusesDrop(t *testing.T) {
	is := is.New(t)
	m := newTestMatch(t, "rust-rat")
	fillLane(t, m, 0, tiles.Player, "catscatsants")
	is.Equal(m.row.Lane(0).Len(), 12)

	is.True(m.PickUp(HandLoc(), 0))
	is.True(!m.Drop(LaneLoc(0), 12))
	is.True(m.CancelDrag())
}

func TestInputGatedByPhase(t *testing.T) {
	is := is.New(t)
	m := newTestMatch(t, "rust-rat")
	is.True(m.SubmitTurn())
	is.Equal(m.Phase(), PhaseEndTurn)

	is.True(!m.PickUp(HandLoc(), 0))
	is.True(!m.Mulligan())
	is.True(!m.RestartTurn())
	is.True(!m.SubmitTurn())
}

func TestDragPreview(t *testing.T) {
	is := is.New(t)
	m := newTestMatch(t, "rust-rat")
	is.True(!m.MovePreview(LaneLoc(0), 0)) // nothing held

	is.True(m.PickUp(HandLoc(), 2))
	is.True(m.MovePreview(LaneLoc(1), 0))
	loc, idx, ok := m.Preview()
	is.True(ok)
	is.Equal(loc, LaneLoc(1))
	is.Equal(idx, 0)

	is.True(m.CancelDrag())
	_, _, ok = m.Preview()
	is.True(!ok)
}

func TestRequiredLetterDrawnFirst(t *testing.T) {
	is := is.New(t)
	dict := lexicon.NewDictionaryFromWords(testWords)
	m := NewMatch(dict, relic.NewRegistry(), gamedata.MustLoad(), Options{Seed: 3})
	is.NoErr(m.GrantPlayerRelic("quartermasters-coin"))
	is.NoErr(m.StartMatch("rust-rat"))
	is.True(m.racks[tiles.Player].HasLetter('Q'))

	// and again after every refill
	is.True(m.Mulligan())
	is.True(m.racks[tiles.Player].HasLetter('Q'))
}
