package automatic

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/wordfray/wordfray/tiles"
)

func sampleResults() []Result {
	return []Result{
		{MatchID: "a", EnemyID: "rust-rat", Winner: tiles.Player, Turns: 6,
			PlayerDamage: 20, FoeDamage: 4, PlayerLongest: "cats"},
		{MatchID: "b", EnemyID: "rust-rat", Winner: tiles.Foe, Turns: 10,
			PlayerDamage: 12, FoeDamage: 50, FoeLongest: "wyverns"},
		{MatchID: "c", EnemyID: "bog-sprite", Winner: tiles.NoSeat, Turns: 8},
	}
}

func TestBuildReport(t *testing.T) {
	is := is.New(t)

	rep := BuildReport(sampleResults())
	is.Equal(rep.Matches, 3)
	is.Equal(rep.PlayerWins, 1)
	is.Equal(rep.FoeWins, 1)
	is.Equal(rep.Draws, 1)
	is.Equal(rep.MeanTurns, 8.0)
	is.Equal(rep.StdevTurns, 2.0)
	is.Equal(rep.LongestWord, "wyverns")
	is.Equal(rep.PerEnemy["rust-rat"].Matches, 2)
	is.Equal(rep.PerEnemy["rust-rat"].PlayerWins, 1)
	is.Equal(rep.PerEnemy["bog-sprite"].WinRate, 0.0)
	is.True(rep.WinMargin(95) > 0)
}

func TestBuildReportEmpty(t *testing.T) {
	is := is.New(t)

	rep := BuildReport(nil)
	is.Equal(rep.Matches, 0)
	is.Equal(rep.WinRate, 0.0)
	is.Equal(rep.WinMargin(95), 0.0)
	is.Equal(rep.String(), "Matches played: 0\nplayer wins: 0 (0.0% +/- 0.0%)\nfoe wins: 0, draws: 0\nMean Turns: 0.00  Stdev: 0.00\nMean Damage: 0.00 by player, 0.00 by foe\n")
}

func TestReportString(t *testing.T) {
	is := is.New(t)

	out := BuildReport(sampleResults()).String()
	is.True(strings.Contains(out, "Matches played: 3"))
	is.True(strings.Contains(out, "player wins: 1"))
	is.True(strings.Contains(out, "rust-rat"))
	is.True(strings.Contains(out, "Match length (turns):"))
}

func TestReportYAML(t *testing.T) {
	is := is.New(t)

	var buf bytes.Buffer
	is.NoErr(BuildReport(sampleResults()).WriteYAML(&buf))
	is.True(strings.Contains(buf.String(), "matches: 3"))
	is.True(strings.Contains(buf.String(), "win_rate:"))
	is.True(strings.Contains(buf.String(), "per_enemy:"))
	is.True(strings.Contains(buf.String(), "rust-rat:"))
}

func TestReportHistogram(t *testing.T) {
	is := is.New(t)

	var buf bytes.Buffer
	is.NoErr(BuildReport(sampleResults()).WriteHistogram(&buf))
	is.True(buf.Len() > 0)

	buf.Reset()
	is.NoErr(BuildReport(nil).WriteHistogram(&buf))
	is.Equal(buf.Len(), 0)
}
