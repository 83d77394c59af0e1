package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordfray/wordfray/gamedata"
	"github.com/wordfray/wordfray/lexicon"
	"github.com/wordfray/wordfray/relic"
	"github.com/wordfray/wordfray/tiles"
)

func TestLaneDamageFormula(t *testing.T) {
	type testcase struct {
		name      string
		word      string
		ourRelics []string
		foeRelics []string
		expected  int
	}

	for _, tc := range []testcase{
		{"bare-count", "cat", nil, nil, 3},
		{"flat-bonus", "cat", []string{"whetstone-charm"}, nil, 4},
		{"prefix-mult-hits", "ant", []string{"aleph-sigil"}, nil, 6},
		{"prefix-mult-misses", "cat", []string{"aleph-sigil"}, nil, 3},
		{"long-word-mult", "strand", []string{"longship-figurehead"}, nil, 9},
		{"short-word-no-mult", "cat", []string{"longship-figurehead"}, nil, 3},
		{"mult-and-bonus-stack", "ant", []string{"aleph-sigil", "whetstone-charm"}, nil, 7},
		{"defender-vulnerable-to-plural", "cats", nil, []string{"wolfsbane-wreath"}, 6},
		{"defender-vulnerability-needs-plural", "cat", nil, []string{"wolfsbane-wreath"}, 3},
		{"hourglass-boosts-own-offense", "cat", []string{"glass-hourglass"}, nil, 4},
		{"hourglass-on-defender-doubles", "cat", nil, []string{"glass-hourglass"}, 6},
	} {
		t.Run(tc.name, func(t *testing.T) {
			m := newTestMatch(t, "rust-rat")
			for _, name := range tc.ourRelics {
				require.NoError(t, m.relics.Activate(tiles.Player, name))
			}
			for _, name := range tc.foeRelics {
				require.NoError(t, m.relics.Activate(tiles.Foe, name))
			}
			fillLane(t, m, 0, tiles.Player, tc.word)
			assert.Equal(t, tc.expected, m.laneDamage(tiles.Player, m.row.Lane(0)))
		})
	}
}

func TestPercentDamageOverridesFormula(t *testing.T) {
	dict := lexicon.NewDictionaryFromWords(testWords)
	m := NewMatch(dict, relic.NewRegistry(), gamedata.MustLoad(), Options{Seed: 3})
	require.NoError(t, m.GrantPlayerRelic("blood-chalice"))
	require.NoError(t, m.StartMatch("rust-rat"))

	// 10 percent of the rat's 18 max health, floored; lane length is
	// ignored entirely
	fillLane(t, m, 0, tiles.Player, "cat")
	assert.Equal(t, 1, m.laneDamage(tiles.Player, m.row.Lane(0)))
	fillLane(t, m, 1, tiles.Player, "ants")
	assert.Equal(t, 1, m.laneDamage(tiles.Player, m.row.Lane(1)))

	// against the player's 50 the same relic is worth 5 per lane
	require.NoError(t, m.relics.Activate(tiles.Foe, "blood-chalice"))
	fillLane(t, m, 2, tiles.Foe, "ant")
	assert.Equal(t, 5, m.laneDamage(tiles.Foe, m.row.Lane(2)))
}

func TestCombatBothSidesStrike(t *testing.T) {
	m := newTestMatch(t, "rust-rat")
	fillLane(t, m, 0, tiles.Player, "cat")
	fillLane(t, m, 1, tiles.Foe, "ant")
	fillLane(t, m, 2, tiles.Player, "at")

	require.True(t, m.SubmitTurn())
	m.Update(time.Millisecond)
	m.Update(time.Millisecond)
	require.Equal(t, PhasePostCombat, m.Phase())

	assert.Equal(t, 13, m.Health(tiles.Foe))
	assert.Equal(t, 47, m.Health(tiles.Player))
	assert.Equal(t, 5, m.TotalDamage(tiles.Player))
	assert.Equal(t, 3, m.TotalDamage(tiles.Foe))

	// the turn is booked once post-combat resolves
	m.Update(time.Millisecond)
	recs := m.History()
	require.NotEmpty(t, recs)
	last := recs[len(recs)-1]
	assert.Equal(t, 5, last.DamageDealt[tiles.Player])
	assert.Equal(t, 3, last.DamageDealt[tiles.Foe])
	assert.Equal(t, 13, last.HealthAfter[tiles.Foe])
	assert.Equal(t, 47, last.HealthAfter[tiles.Player])
}

func TestEmptyLanesDealNothing(t *testing.T) {
	m := newTestMatch(t, "rust-rat")

	require.True(t, m.SubmitTurn())
	m.Update(time.Millisecond)
	m.Update(time.Millisecond)

	assert.Equal(t, 18, m.Health(tiles.Foe))
	assert.Equal(t, 50, m.Health(tiles.Player))
	assert.Equal(t, 0, m.TotalDamage(tiles.Player))
}

func TestOwnedLaneKeepsStrikingEveryTurn(t *testing.T) {
	m := newTestMatch(t, "rust-rat")
	fillLane(t, m, 0, tiles.Player, "cat")

	// two full rounds: the carried-over word fires in the player's combat
	// pass and again in the foe's
	require.True(t, m.SubmitTurn())
	settle(m)
	require.Equal(t, PhasePlaying, m.Phase())
	assert.Equal(t, 18-2*3, m.Health(tiles.Foe))
	assert.Equal(t, 6, m.TotalDamage(tiles.Player))
}
