package relic

import (
	"testing"

	"github.com/matryer/is"

	"github.com/wordfray/wordfray/tiles"
)

func TestActivateIsIdempotent(t *testing.T) {
	is := is.New(t)

	r := NewRegistry()
	is.NoErr(r.Activate(tiles.Player, "whetstone-charm"))
	is.NoErr(r.Activate(tiles.Player, "whetstone-charm"))
	is.Equal(len(r.Active(tiles.Player)), 1)
	is.Equal(r.ScoreBonus(tiles.Player, "cat"), 1)
}

func TestActivateUnknownRelicFails(t *testing.T) {
	is := is.New(t)

	r := NewRegistry()
	err := r.Activate(tiles.Player, "philosophers-stone")
	if err == nil {
		t.Fatal("expected an error for an unknown relic")
	}
	is.Equal(len(r.Active(tiles.Player)), 0)
}

func TestDeactivate(t *testing.T) {
	is := is.New(t)

	r := NewRegistry()
	is.NoErr(r.Activate(tiles.Foe, "leech-locket"))
	is.NoErr(r.Deactivate(tiles.Foe, "leech-locket"))
	is.NoErr(r.Deactivate(tiles.Foe, "leech-locket"))
	is.Equal(len(r.Active(tiles.Foe)), 0)
	is.Equal(r.HealOnWord(tiles.Foe, "cat"), 0)
}

func TestMultipliersCompound(t *testing.T) {
	is := is.New(t)

	r := NewRegistry()
	is.NoErr(r.Activate(tiles.Player, "aleph-sigil"))
	is.NoErr(r.Activate(tiles.Player, "glass-hourglass"))

	// 2 (starts with a) * 1.5 (hourglass)
	is.Equal(r.ScoreMult(tiles.Player, "ant"), 3.0)
	// hourglass only
	is.Equal(r.ScoreMult(tiles.Player, "cat"), 1.5)
	// hourglass doubles incoming damage
	is.Equal(r.Vulnerability(tiles.Player, "cat"), 2.0)
}

func TestAlephSigilOnAntWord(t *testing.T) {
	is := is.New(t)

	r := NewRegistry()
	is.NoErr(r.Activate(tiles.Player, "aleph-sigil"))
	is.Equal(r.ScoreMult(tiles.Player, "ant"), 2.0)
	is.Equal(r.ScoreBonus(tiles.Player, "ant"), 0)
	is.Equal(r.Vulnerability(tiles.Foe, "ant"), 1.0)
}

func TestWolfsbanePunishesPlurals(t *testing.T) {
	is := is.New(t)

	r := NewRegistry()
	is.NoErr(r.Activate(tiles.Foe, "wolfsbane-wreath"))
	is.Equal(r.Vulnerability(tiles.Foe, "cats"), 1.5)
	is.Equal(r.Vulnerability(tiles.Foe, "cat"), 1.0)
}

func TestPercentDamageTakesMax(t *testing.T) {
	is := is.New(t)

	r := NewRegistry()
	r.Register(testPercent{Base{name: "test-percent"}, 25})
	is.NoErr(r.Activate(tiles.Player, "blood-chalice"))
	is.NoErr(r.Activate(tiles.Player, "test-percent"))
	is.Equal(r.PercentDamage(tiles.Player), 25.0)
	is.Equal(r.PercentDamage(tiles.Foe), 0.0)
}

type testPercent struct {
	Base
	pct float64
}

func (p testPercent) PercentDamage() float64 { return p.pct }

func TestCollectors(t *testing.T) {
	is := is.New(t)

	r := NewRegistry()
	is.NoErr(r.Activate(tiles.Foe, "quartermasters-coin"))
	is.NoErr(r.Activate(tiles.Foe, "bestiary-appendix"))
	is.NoErr(r.Activate(tiles.Foe, "cartographers-folio"))

	letters := r.RequiredLetters(tiles.Foe)
	is.Equal(len(letters), 1)
	is.Equal(letters[0], tiles.Letter('Q'))

	words := r.ExtraWords(tiles.Foe)
	is.Equal(len(words), 20)
	is.True(r.Unblockable(tiles.Foe) == false)

	is.NoErr(r.Activate(tiles.Foe, "siegebreaker-horn"))
	is.True(r.Unblockable(tiles.Foe))
}

func TestResetActiveClearsBothSeats(t *testing.T) {
	is := is.New(t)

	r := NewRegistry()
	is.NoErr(r.Activate(tiles.Player, "whetstone-charm"))
	is.NoErr(r.Activate(tiles.Foe, "leech-locket"))
	r.ResetActive()
	is.Equal(len(r.Active(tiles.Player)), 0)
	is.Equal(len(r.Active(tiles.Foe)), 0)
	// the known set survives
	is.NoErr(r.Activate(tiles.Player, "whetstone-charm"))
}
