package automatic

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
)

func TestRunSeriesAggregates(t *testing.T) {
	is := is.New(t)

	var buf bytes.Buffer
	rep, err := RunSeries(context.Background(), SeriesOptions{
		Options:   Options{EnemyID: "rust-rat"},
		Matches:   4,
		Workers:   2,
		Seed:      11,
		LogWriter: &buf,
	})
	is.NoErr(err)
	is.Equal(rep.Matches, 4)
	is.Equal(rep.PlayerWins+rep.FoeWins+rep.Draws, 4)
	is.True(rep.MeanTurns > 0)
	is.Equal(rep.PerEnemy["rust-rat"].Matches, 4)
	is.True(strings.HasPrefix(buf.String(), "matchId,turn,seat,"))
	is.True(strings.Count(buf.String(), "\n") > 4)
}

func TestRunSeriesRotatesRoster(t *testing.T) {
	is := is.New(t)

	rep, err := RunSeries(context.Background(), SeriesOptions{
		Matches: 8,
		Workers: 4,
		Seed:    3,
	})
	is.NoErr(err)
	is.Equal(rep.Matches, 8)
	is.Equal(len(rep.PerEnemy), 8)
	for id, es := range rep.PerEnemy {
		if es.Matches != 1 {
			t.Fatalf("enemy %v played %v matches, want 1", id, es.Matches)
		}
	}
}

func TestRunSeriesDeterministicAcrossWorkerCounts(t *testing.T) {
	is := is.New(t)

	// Each match is seeded by ordinal, so the worker count must not
	// change any outcome.
	a, err := RunSeries(context.Background(), SeriesOptions{
		Options: Options{EnemyID: "bog-sprite"},
		Matches: 4,
		Workers: 1,
		Seed:    21,
	})
	is.NoErr(err)
	b, err := RunSeries(context.Background(), SeriesOptions{
		Options: Options{EnemyID: "bog-sprite"},
		Matches: 4,
		Workers: 4,
		Seed:    21,
	})
	is.NoErr(err)

	is.Equal(a.PlayerWins, b.PlayerWins)
	is.Equal(a.Draws, b.Draws)
	is.Equal(a.MeanTurns, b.MeanTurns)
	is.Equal(a.MeanPlayerDamage, b.MeanPlayerDamage)
}

func TestRunSeriesExplicitSeeds(t *testing.T) {
	is := is.New(t)

	rep, err := RunSeries(context.Background(), SeriesOptions{
		Options: Options{EnemyID: "rust-rat"},
		Seeds:   []int64{101, 102, 103},
	})
	is.NoErr(err)
	is.Equal(rep.Matches, 3)
}

func TestRunSeriesRejectsUnknownEnemy(t *testing.T) {
	is := is.New(t)

	_, err := RunSeries(context.Background(), SeriesOptions{
		Options: Options{EnemyID: "lint-goblin"},
		Matches: 1,
	})
	is.True(err != nil)
}

func TestAnalyzeLogFile(t *testing.T) {
	is := is.New(t)

	path := filepath.Join(t.TempDir(), "turns.csv")
	data := logHeader +
		"abc,1,player,cat tan,5,0,0,50,13\n" +
		"abc,2,foe,ants,4,2,0,46,13\n" +
		"def,1,player,eel,3,0,3,50,15\n"
	is.NoErr(os.WriteFile(path, []byte(data), 0o644))

	stats, err := AnalyzeLogFile(path)
	is.NoErr(err)
	is.True(strings.Contains(stats, "Matches: 2"))
	is.True(strings.Contains(stats, "Turns: 2 by player, 1 by foe"))
	is.True(strings.Contains(stats, "Words: 3 by player, 1 by foe"))
	is.True(strings.Contains(stats, "player Mean Damage Per Turn: 4.000"))
}
