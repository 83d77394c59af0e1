package tiles

import (
	"math/rand"
	"testing"

	"github.com/matryer/is"
)

func testPool(seed int64) *Pool {
	return NewPool(EnglishDistribution(), rand.New(rand.NewSource(seed)))
}

func TestPoolConservation(t *testing.T) {
	is := is.New(t)

	ld := EnglishDistribution()
	pool := testPool(1)
	is.Equal(pool.TilesRemaining(), ld.NumTiles())

	tally := make(map[Letter]int)
	for {
		tile, ok := pool.Draw()
		if !ok {
			break
		}
		tally[tile.Letter]++
	}
	for i := 0; i < 26; i++ {
		l := Letter('A' + i)
		if tally[l] != ld.Count(l) {
			t.Errorf("letter %v: drew %v, distribution has %v", l, tally[l], ld.Count(l))
		}
	}
	_, ok := pool.Draw()
	is.True(!ok)
}

func TestPoolDrawLetterPrefersPowered(t *testing.T) {
	is := is.New(t)

	pool := testPool(2)
	pool.AddPersistent(Tile{Letter: 'E', Kind: Shield})
	pool.Reset()

	tile, ok := pool.DrawLetter('E')
	is.True(ok)
	is.Equal(tile.Letter, Letter('E'))
	is.Equal(tile.Kind, Shield)

	// only one shield E existed
	tile, ok = pool.DrawLetter('E')
	is.True(ok)
	is.Equal(tile.Kind, Plain)
}

func TestPoolDrawExactFallsBack(t *testing.T) {
	is := is.New(t)

	pool := testPool(3)
	tile, ok := pool.DrawExact('Q', Meteor)
	is.True(ok)
	is.Equal(tile.Letter, Letter('Q'))
	is.Equal(tile.Kind, Plain)

	// the single Q is gone now
	_, ok = pool.DrawExact('Q', Plain)
	is.True(!ok)
	_, ok = pool.DrawLetter('Q')
	is.True(!ok)
}

func TestPoolPutBack(t *testing.T) {
	is := is.New(t)

	pool := testPool(4)
	before := pool.LetterCounts()
	tile, ok := pool.Draw()
	is.True(ok)
	pool.PutBack(tile)
	is.Equal(pool.TilesRemaining(), EnglishDistribution().NumTiles())
	is.Equal(pool.LetterCounts(), before)
}

func TestPoolPersistentSurvivesReset(t *testing.T) {
	is := is.New(t)

	pool := testPool(5)
	pool.AddPersistent(Tile{Letter: 'S', Kind: Heal}, Tile{Letter: 'M', Kind: Meteor})
	is.Equal(pool.PersistentCount(), 2)
	// current working copy untouched until reset
	is.Equal(pool.TilesRemaining(), 98)

	pool.Reset()
	is.Equal(pool.TilesRemaining(), 100)
	bd := pool.PoweredBreakdown()
	is.Equal(bd[Heal], 1)
	is.Equal(bd[Meteor], 1)

	pool.Reset()
	is.Equal(pool.TilesRemaining(), 100)
}

func TestParseLetterFoldsCase(t *testing.T) {
	is := is.New(t)

	l, err := ParseLetter('q')
	is.NoErr(err)
	is.Equal(l, Letter('Q'))

	_, err = ParseLetter('3')
	if err == nil {
		t.Error("expected an error for a non-letter rune")
	}
}
