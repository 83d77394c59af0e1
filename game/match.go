// Package game is the combat engine: it owns the match state machine,
// turn lifecycle, word validation, damage resolution and win/loss
// detection. It is single threaded; everything advances inside the
// caller's Update tick.
package game

import (
	crypto_rand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/wordfray/wordfray/gamedata"
	"github.com/wordfray/wordfray/lanes"
	"github.com/wordfray/wordfray/lexicon"
	"github.com/wordfray/wordfray/relic"
	"github.com/wordfray/wordfray/tiles"
)

const (
	// DefaultMaxHealth is the human side's starting health when the
	// caller doesn't override it.
	DefaultMaxHealth = 50
	// MulligansPerMatch is the paid mulligan allowance.
	MulligansPerMatch = 2
)

// FoeStrategy drives the scripted side during PhaseFoeTurn. The engine
// polls Update every tick until it reports completion.
type FoeStrategy interface {
	// StartTurn arms the strategy for a fresh turn.
	StartTurn(m *Match)
	// Update advances the strategy by one tick and reports whether the
	// turn is finished.
	Update(dt time.Duration, m *Match) bool
	// Reset returns the strategy to idle, dropping any armed turn.
	Reset()
}

func seededRandSource(seed int64) (int64, *rand.Rand) {
	if seed == 0 {
		var b [8]byte
		if _, err := crypto_rand.Read(b[:]); err != nil {
			panic("cannot seed match randomness: " + err.Error())
		}
		seed = int64(binary.LittleEndian.Uint64(b[:]))
	}
	return seed, rand.New(rand.NewSource(seed))
}

// Options configures a match series. Zero values fall back to defaults.
type Options struct {
	PlayerName   string
	PlayerHealth int
	Mulligans    int
	// Seed fixes the match randomness; 0 seeds from entropy.
	Seed int64
}

// Match is one human-versus-enemy fight, reusable across StartMatch
// calls. Pools persist between matches so earned powered tiles
// accumulate.
type Match struct {
	id   string
	opts Options

	dict    *lexicon.Dictionary
	relics  *relic.Registry
	enemies *gamedata.Registry
	enemy   *gamedata.Enemy

	playerRelics []string

	phase      Phase
	active     tiles.Seat
	turnNumber int
	winner     tiles.Seat

	health    [3]int
	maxHealth [3]int
	shield    [3]int

	mulligansLeft        int
	usedMulliganThisTurn bool
	restartAvailable     bool

	row   *lanes.Row
	racks [3]*tiles.Rack
	pools [3]*tiles.Pool

	// handSnapshot holds the acting seat's exact hand at turn start,
	// for restart-turn.
	handSnapshot []tiles.Tile

	drag        *dragState
	preview     *previewTarget
	failedLanes []int

	// Settled is the caller-supplied "animations finished" predicate,
	// the engine's only suspension point. Nil means always settled.
	Settled func() bool

	foe         FoeStrategy
	subscribers []func(Event)

	randSeed   int64
	randSource *rand.Rand

	history     []TurnRecord
	turnLog     TurnRecord
	totalDamage [3]int
	longestWord [3]string
}

// NewMatch builds an idle match. Call StartMatch to begin a fight.
func NewMatch(dict *lexicon.Dictionary, relics *relic.Registry, enemies *gamedata.Registry, opts Options) *Match {
	if opts.PlayerName == "" {
		opts.PlayerName = "you"
	}
	if opts.PlayerHealth <= 0 {
		opts.PlayerHealth = DefaultMaxHealth
	}
	if opts.Mulligans < 0 {
		opts.Mulligans = 0
	} else if opts.Mulligans == 0 {
		opts.Mulligans = MulligansPerMatch
	}

	m := &Match{
		dict:    dict,
		relics:  relics,
		enemies: enemies,
		opts:    opts,
		row:     lanes.NewRow(),
		phase:   PhaseOver,
	}
	m.randSeed, m.randSource = seededRandSource(opts.Seed)
	log.Debug().Msgf("Random seed for this match series was %v", m.randSeed)

	dist := tiles.EnglishDistribution()
	for _, seat := range []tiles.Seat{tiles.Player, tiles.Foe} {
		m.racks[seat] = tiles.NewRack()
		m.pools[seat] = tiles.NewPool(dist, m.randSource)
	}
	return m
}

// SetFoe installs the scripted opponent driver. A nil foe makes
// PhaseFoeTurn complete instantly without playing, which scripted tests
// use.
func (m *Match) SetFoe(f FoeStrategy) {
	m.foe = f
}

// GrantPlayerRelic adds a relic to the player's permanent loadout,
// activated at every subsequent StartMatch. Unknown names are an error.
func (m *Match) GrantPlayerRelic(name string) error {
	if err := m.relics.Activate(tiles.Player, name); err != nil {
		return err
	}
	for _, have := range m.playerRelics {
		if have == name {
			return nil
		}
	}
	m.playerRelics = append(m.playerRelics, name)
	return nil
}

// StartMatch resets all per-match state and begins a fight against the
// named enemy. Unknown enemy ids and unknown relic names abort setup.
func (m *Match) StartMatch(enemyID string) error {
	enemy, err := m.enemies.ByID(enemyID)
	if err != nil {
		return err
	}

	m.relics.ResetActive()
	m.dict.ClearSupplemental(tiles.Player)
	m.dict.ClearSupplemental(tiles.Foe)
	for _, name := range m.playerRelics {
		if err := m.relics.Activate(tiles.Player, name); err != nil {
			return err
		}
	}
	for _, name := range enemy.Relics {
		if err := m.relics.Activate(tiles.Foe, name); err != nil {
			return err
		}
	}
	m.dict.AddSupplemental(tiles.Player, m.relics.ExtraWords(tiles.Player)...)
	m.dict.AddSupplemental(tiles.Foe, m.relics.ExtraWords(tiles.Foe)...)

	m.id = newMatchID()
	m.enemy = enemy
	m.winner = tiles.NoSeat
	m.turnNumber = 0
	m.mulligansLeft = m.opts.Mulligans
	m.history = nil
	m.drag = nil
	m.preview = nil
	m.failedLanes = nil
	m.totalDamage = [3]int{}
	m.longestWord = [3]string{}

	m.health[tiles.Player] = m.opts.PlayerHealth
	m.maxHealth[tiles.Player] = m.opts.PlayerHealth
	m.health[tiles.Foe] = enemy.Health
	m.maxHealth[tiles.Foe] = enemy.Health
	m.shield = [3]int{}

	m.row.Reset()
	for _, idx := range enemy.LockedLanes {
		m.row.Lane(idx).Locked = true
	}
	for _, idx := range enemy.HiddenLanes {
		m.row.Lane(idx).Visible = false
	}

	for _, seat := range []tiles.Seat{tiles.Player, tiles.Foe} {
		m.racks[seat].Clear()
		m.pools[seat].Reset()
	}
	if m.foe != nil {
		m.foe.Reset()
	}

	m.beginTurn(tiles.Player)

	log.Info().Str("match", m.id).Str("enemy", enemy.ID).
		Str("difficulty", string(enemy.Difficulty)).Msg("started-match")
	return nil
}

// Update advances the state machine by one tick. PhasePlaying waits on
// input; PhaseFoeTurn pumps the scripted side.
func (m *Match) Update(dt time.Duration) {
	switch m.phase {
	case PhaseEndTurn:
		if m.AnimationsSettled() {
			m.phase = PhaseCombat
		}
	case PhaseCombat:
		m.processCombat()
		m.phase = PhasePostCombat
	case PhasePostCombat:
		m.resolvePostCombat()
	case PhaseFoeTurn:
		if m.foe == nil || m.foe.Update(dt, m) {
			m.finishFoeTurn()
		}
	}
}

// AnimationsSettled reports the external animation predicate. With no
// predicate installed the engine never suspends.
func (m *Match) AnimationsSettled() bool {
	return m.Settled == nil || m.Settled()
}

func (m *Match) ID() string             { return m.id }
func (m *Match) Phase() Phase           { return m.phase }
func (m *Match) ActiveSeat() tiles.Seat { return m.active }
func (m *Match) TurnNumber() int        { return m.turnNumber }
func (m *Match) PlayerName() string     { return m.opts.PlayerName }
func (m *Match) RandSeed() int64        { return m.randSeed }

func (m *Match) Health(s tiles.Seat) int    { return m.health[s] }
func (m *Match) MaxHealth(s tiles.Seat) int { return m.maxHealth[s] }
func (m *Match) Shield(s tiles.Seat) int    { return m.shield[s] }

func (m *Match) MulligansLeft() int     { return m.mulligansLeft }
func (m *Match) RestartAvailable() bool { return m.restartAvailable }

func (m *Match) Row() *lanes.Row                 { return m.row }
func (m *Match) Rack(s tiles.Seat) *tiles.Rack   { return m.racks[s] }
func (m *Match) Pool(s tiles.Seat) *tiles.Pool   { return m.pools[s] }
func (m *Match) Dictionary() *lexicon.Dictionary { return m.dict }
func (m *Match) Relics() *relic.Registry         { return m.relics }
func (m *Match) Enemy() *gamedata.Enemy          { return m.enemy }

// EnemyDifficulty is the difficulty of the current enemy, defaulting to
// Medium before any match starts.
func (m *Match) EnemyDifficulty() gamedata.Difficulty {
	if m.enemy == nil {
		return gamedata.Medium
	}
	return m.enemy.Difficulty
}

// Winner is NoSeat until the match ends.
func (m *Match) Winner() tiles.Seat { return m.winner }

func (m *Match) Over() bool { return m.phase == PhaseOver }

// FailedLanes returns the lane indexes that failed validation on the
// last submit attempt. It clears on the next successful submit or turn.
func (m *Match) FailedLanes() []int {
	out := make([]int, len(m.failedLanes))
	copy(out, m.failedLanes)
	return out
}

// TotalDamage is the cumulative damage the seat has dealt this match.
func (m *Match) TotalDamage(s tiles.Seat) int { return m.totalDamage[s] }

// LongestWord is the longest word the seat has had accepted this match.
func (m *Match) LongestWord(s tiles.Seat) string { return m.longestWord[s] }
