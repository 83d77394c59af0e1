package automatic

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/aybabtme/uniplot/histogram"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
	"gopkg.in/yaml.v3"

	"github.com/wordfray/wordfray/tiles"
)

// EnemyStats is one roster entry's slice of a series.
type EnemyStats struct {
	Matches    int     `yaml:"matches"`
	PlayerWins int     `yaml:"player_wins"`
	WinRate    float64 `yaml:"win_rate"`
}

// Report aggregates a series of results.
type Report struct {
	Matches    int `yaml:"matches"`
	PlayerWins int `yaml:"player_wins"`
	FoeWins    int `yaml:"foe_wins"`
	Draws      int `yaml:"draws"`

	// WinRate is the player's share of all matches, draws included.
	WinRate float64 `yaml:"win_rate"`

	MeanTurns  float64 `yaml:"mean_turns"`
	StdevTurns float64 `yaml:"stdev_turns"`

	MeanPlayerDamage float64 `yaml:"mean_player_damage"`
	MeanFoeDamage    float64 `yaml:"mean_foe_damage"`

	LongestWord string `yaml:"longest_word"`

	PerEnemy map[string]EnemyStats `yaml:"per_enemy"`

	turns []float64
}

// BuildReport aggregates raw results. Input order does not matter.
func BuildReport(results []Result) *Report {
	r := &Report{Matches: len(results), PerEnemy: map[string]EnemyStats{}}
	if len(results) == 0 {
		return r
	}
	var turns, pdmg, fdmg []float64
	for _, res := range results {
		switch res.Winner {
		case tiles.Player:
			r.PlayerWins++
		case tiles.Foe:
			r.FoeWins++
		default:
			r.Draws++
		}
		es := r.PerEnemy[res.EnemyID]
		es.Matches++
		if res.Winner == tiles.Player {
			es.PlayerWins++
		}
		r.PerEnemy[res.EnemyID] = es

		turns = append(turns, float64(res.Turns))
		pdmg = append(pdmg, float64(res.PlayerDamage))
		fdmg = append(fdmg, float64(res.FoeDamage))
		if len(res.PlayerLongest) > len(r.LongestWord) {
			r.LongestWord = res.PlayerLongest
		}
		if len(res.FoeLongest) > len(r.LongestWord) {
			r.LongestWord = res.FoeLongest
		}
	}
	r.WinRate = float64(r.PlayerWins) / float64(r.Matches)
	for id, es := range r.PerEnemy {
		es.WinRate = float64(es.PlayerWins) / float64(es.Matches)
		r.PerEnemy[id] = es
	}
	r.MeanTurns, r.StdevTurns = meanStdev(turns)
	r.MeanPlayerDamage, _ = meanStdev(pdmg)
	r.MeanFoeDamage, _ = meanStdev(fdmg)
	r.turns = turns
	return r
}

func meanStdev(xs []float64) (float64, float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	m := stat.Mean(xs, nil)
	if len(xs) < 2 {
		return m, 0
	}
	return m, stat.StdDev(xs, nil)
}

// WinMargin returns the half width of the confidence interval around the
// observed win rate. The confidence level is a percentage, e.g. 95.
func (r *Report) WinMargin(confidence float64) float64 {
	if r.Matches == 0 {
		return 0
	}
	dist := distuv.Normal{
		Mu:    0,
		Sigma: 1,
	}
	z := dist.Quantile((1 + confidence/100) / 2)
	p := r.WinRate
	return z * math.Sqrt(p*(1-p)/float64(r.Matches))
}

// String renders the report the way the shell prints it, the match
// length histogram included.
func (r *Report) String() string {
	var ss strings.Builder
	fmt.Fprintf(&ss, "Matches played: %d\n", r.Matches)
	fmt.Fprintf(&ss, "player wins: %d (%.1f%% +/- %.1f%%)\n",
		r.PlayerWins, 100*r.WinRate, 100*r.WinMargin(95))
	fmt.Fprintf(&ss, "foe wins: %d, draws: %d\n", r.FoeWins, r.Draws)
	fmt.Fprintf(&ss, "Mean Turns: %.2f  Stdev: %.2f\n", r.MeanTurns, r.StdevTurns)
	fmt.Fprintf(&ss, "Mean Damage: %.2f by player, %.2f by foe\n",
		r.MeanPlayerDamage, r.MeanFoeDamage)
	if r.LongestWord != "" {
		fmt.Fprintf(&ss, "Longest word: %v\n", r.LongestWord)
	}

	ids := make([]string, 0, len(r.PerEnemy))
	for id := range r.PerEnemy {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		es := r.PerEnemy[id]
		fmt.Fprintf(&ss, "  %-20s %4d matches, player wins %.1f%%\n",
			id, es.Matches, 100*es.WinRate)
	}

	if len(r.turns) > 0 {
		ss.WriteString("\nMatch length (turns):\n")
		r.WriteHistogram(&ss)
	}
	return ss.String()
}

// WriteHistogram prints a histogram of match lengths in turns.
func (r *Report) WriteHistogram(w io.Writer) error {
	if len(r.turns) == 0 {
		return nil
	}
	hist := histogram.Hist(10, r.turns)
	return histogram.Fprint(w, hist, histogram.Linear(40))
}

// WriteYAML exports the report for scripts and dashboards.
func (r *Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(r)
}
