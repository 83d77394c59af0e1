// Package automatic plays bot-versus-bot matches for balance work: both
// seats of a match are driven by scripted strategies at zero delay, and
// the outcomes are collected over large series.
package automatic

import (
	"encoding/binary"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash"
	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/wordfray/wordfray/bot"
	"github.com/wordfray/wordfray/game"
	"github.com/wordfray/wordfray/gamedata"
	"github.com/wordfray/wordfray/lexicon"
	"github.com/wordfray/wordfray/relic"
	"github.com/wordfray/wordfray/tiles"
)

const (
	// DefaultMaxTurns caps a match; one still alive after this many seat
	// turns scores as a draw.
	DefaultMaxTurns = 80

	// ResultShards partitions results into stable buckets keyed on the
	// match id, for splitting big runs into datasets.
	ResultShards = 8

	runnerTick = 50 * time.Millisecond
)

// Result is one finished match's outcome.
type Result struct {
	MatchID       string
	Shard         int
	EnemyID       string
	Difficulty    gamedata.Difficulty
	Winner        tiles.Seat
	Turns         int
	PlayerDamage  int
	FoeDamage     int
	PlayerHealth  int
	FoeHealth     int
	PlayerLongest string
	FoeLongest    string
	Seed          int64
}

// Options configures a runner.
type Options struct {
	// EnemyID picks the opponent. RunSeries rotates through the whole
	// roster when it is empty.
	EnemyID string
	// Player pins the human seat's strategy strength. Empty plays hard.
	Player gamedata.Difficulty
	// MaxTurns caps each match; zero means DefaultMaxTurns.
	MaxTurns int
	// DictionaryPath overrides the embedded word list.
	DictionaryPath string
}

// Runner is the master struct for one worker's self-play loop. It owns
// private copies of the dictionary and relic registry, so runners on
// different goroutines never share mutable state.
type Runner struct {
	dict    *lexicon.Dictionary
	relics  *relic.Registry
	enemies *gamedata.Registry

	opts    Options
	logchan chan string
}

// NewRunner instantiates and initializes a runner.
func NewRunner(logchan chan string, opts Options) (*Runner, error) {
	if opts.MaxTurns <= 0 {
		opts.MaxTurns = DefaultMaxTurns
	}
	if opts.Player == "" {
		opts.Player = gamedata.Hard
	}
	var dict *lexicon.Dictionary
	if opts.DictionaryPath != "" {
		var err error
		dict, err = lexicon.LoadDictionary(opts.DictionaryPath)
		if err != nil {
			return nil, err
		}
	} else {
		dict = lexicon.NewDictionary()
	}
	enemies, err := gamedata.Load()
	if err != nil {
		return nil, err
	}
	log.Debug().Uint64("dict-fingerprint", dict.Fingerprint()).
		Int("max-turns", opts.MaxTurns).Msg("runner-ready")
	return &Runner{
		dict:    dict,
		relics:  relic.NewRegistry(),
		enemies: enemies,
		opts:    opts,
		logchan: logchan,
	}, nil
}

// PlayMatch plays one complete match against the enemy and returns its
// outcome. Replaying the same seed replays the same match.
func (r *Runner) PlayMatch(enemyID string, seed int64) (Result, error) {
	m := game.NewMatch(r.dict, r.relics, r.enemies, game.Options{
		PlayerName: "autoplayer",
		Seed:       seed,
	})

	player := bot.New(tiles.Player)
	player.SetDifficulty(r.opts.Player)
	player.SetDelayScale(0)
	player.SetRNG(frand.NewCustom(strategySeed(seed, tiles.Player), 1024, 12))

	foe := bot.New(tiles.Foe)
	foe.SetDelayScale(0)
	foe.SetRNG(frand.NewCustom(strategySeed(seed, tiles.Foe), 1024, 12))
	m.SetFoe(foe)

	if err := m.StartMatch(enemyID); err != nil {
		return Result{}, err
	}

	budget := r.opts.MaxTurns * 64
	for spins := 0; !m.Over(); spins++ {
		if spins >= budget {
			return Result{}, fmt.Errorf("match %v wedged after %d updates", m.ID(), spins)
		}
		if m.TurnNumber() > r.opts.MaxTurns {
			break
		}
		if m.Phase() == game.PhasePlaying {
			if player.State() != bot.Thinking {
				player.StartTurn(m)
			}
			if player.Update(runnerTick, m) && !m.SubmitTurn() {
				return Result{}, fmt.Errorf("match %v rejected a scripted turn", m.ID())
			}
			continue
		}
		m.Update(runnerTick)
	}

	r.logTurns(m)
	return Result{
		MatchID:       m.ID(),
		Shard:         int(xxhash.Sum64String(m.ID()) % ResultShards),
		EnemyID:       m.Enemy().ID,
		Difficulty:    m.Enemy().Difficulty,
		Winner:        m.Winner(),
		Turns:         m.TurnNumber(),
		PlayerDamage:  m.TotalDamage(tiles.Player),
		FoeDamage:     m.TotalDamage(tiles.Foe),
		PlayerHealth:  m.Health(tiles.Player),
		FoeHealth:     m.Health(tiles.Foe),
		PlayerLongest: m.LongestWord(tiles.Player),
		FoeLongest:    m.LongestWord(tiles.Foe),
		Seed:          seed,
	}, nil
}

// logHeader is the per-turn CSV schema shared with AnalyzeLogFile.
const logHeader = "matchId,turn,seat,words,damage,healed,shield,playerHealth,foeHealth\n"

func (r *Runner) logTurns(m *game.Match) {
	if r.logchan == nil {
		return
	}
	for _, rec := range m.History() {
		r.logchan <- fmt.Sprintf("%v,%v,%v,%v,%v,%v,%v,%v,%v\n",
			m.ID(),
			rec.Turn,
			rec.Seat,
			strings.Join(rec.Words, " "),
			rec.DamageDealt[rec.Seat],
			rec.Healed,
			rec.ShieldGained,
			rec.HealthAfter[tiles.Player],
			rec.HealthAfter[tiles.Foe])
	}
}

// strategySeed stretches a match seed into a 32 byte frand seed, mixed
// per seat so the two strategies draw distinct streams.
func strategySeed(seed int64, seat tiles.Seat) []byte {
	b := make([]byte, 32)
	for i := 0; i < 4; i++ {
		h := xxhash.Sum64String(fmt.Sprintf("%d-%d-%d", seed, seat, i))
		binary.LittleEndian.PutUint64(b[i*8:], h)
	}
	return b
}
