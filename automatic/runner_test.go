package automatic

import (
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/wordfray/wordfray/tiles"
)

func TestPlayMatchCompletes(t *testing.T) {
	is := is.New(t)

	logchan := make(chan string, 1000)
	r, err := NewRunner(logchan, Options{})
	is.NoErr(err)

	res, err := r.PlayMatch("rust-rat", 7)
	is.NoErr(err)
	is.True(res.MatchID != "")
	is.Equal(res.EnemyID, "rust-rat")
	is.True(res.Winner == tiles.Player || res.Winner == tiles.Foe)
	is.True(res.Turns >= 2)
	is.True(res.Shard >= 0 && res.Shard < ResultShards)

	close(logchan)
	lines := 0
	for msg := range logchan {
		lines++
		if !strings.HasSuffix(msg, "\n") {
			t.Fatalf("turn log line missing newline: %q", msg)
		}
	}
	is.Equal(lines, res.Turns)
}

func TestPlayMatchDeterministic(t *testing.T) {
	is := is.New(t)

	r1, err := NewRunner(nil, Options{})
	is.NoErr(err)
	r2, err := NewRunner(nil, Options{})
	is.NoErr(err)

	a, err := r1.PlayMatch("barrow-wight", 1234)
	is.NoErr(err)
	b, err := r2.PlayMatch("barrow-wight", 1234)
	is.NoErr(err)

	// Ids are time based; everything the seed controls must match.
	a.MatchID, b.MatchID = "", ""
	a.Shard, b.Shard = 0, 0
	is.Equal(a, b)
}

func TestPlayMatchCapsTurns(t *testing.T) {
	is := is.New(t)

	r, err := NewRunner(nil, Options{MaxTurns: 1})
	is.NoErr(err)

	// One seat turn cannot decide a match against a 30 health enemy.
	res, err := r.PlayMatch("barrow-wight", 5)
	is.NoErr(err)
	is.Equal(res.Winner, tiles.NoSeat)
	is.True(res.Turns <= 2)
}

func TestPlayMatchUnknownEnemy(t *testing.T) {
	is := is.New(t)

	r, err := NewRunner(nil, Options{})
	is.NoErr(err)
	_, err = r.PlayMatch("lint-goblin", 1)
	is.True(err != nil)
}

func BenchmarkPlayMatch(b *testing.B) {
	r, err := NewRunner(nil, Options{})
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := r.PlayMatch("rust-rat", int64(i+1)); err != nil {
			b.Fatal(err)
		}
	}
}
