// Package bot is the scripted opponent: a word-search strategy that
// plays one lane at a time on a timer, bounded by a difficulty profile.
// Difficulty scales strength cheaply by capping how deep into the
// rank-ordered dictionary the search may look.
package bot

import (
	"sort"
	"time"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/wordfray/wordfray/game"
	"github.com/wordfray/wordfray/gamedata"
	"github.com/wordfray/wordfray/lanes"
	"github.com/wordfray/wordfray/lexicon"
	"github.com/wordfray/wordfray/tiles"
)

// State is the strategy's inner machine: armed by StartTurn, advanced by
// Update, finished at Complete.
type State uint8

const (
	Idle State = iota
	Thinking
	Complete
)

type profile struct {
	// searchDivisor caps the dictionary scan at size/divisor entries; a
	// lower divisor searches deeper and plays stronger.
	searchDivisor int
	// tileProb biases how many hand tiles get committed per lane.
	tileProb float64
	minTiles int
	maxTiles int

	thinkDelay time.Duration
	moveDelay  time.Duration
}

// Profiles maps each difficulty to its search and pacing parameters.
var Profiles = map[gamedata.Difficulty]profile{
	gamedata.Easy:   {searchDivisor: 12, tileProb: 0.35, minTiles: 2, maxTiles: 4, thinkDelay: 850 * time.Millisecond, moveDelay: 400 * time.Millisecond},
	gamedata.Medium: {searchDivisor: 6, tileProb: 0.5, minTiles: 2, maxTiles: 5, thinkDelay: 850 * time.Millisecond, moveDelay: 400 * time.Millisecond},
	gamedata.Hard:   {searchDivisor: 2, tileProb: 0.65, minTiles: 3, maxTiles: 6, thinkDelay: 850 * time.Millisecond, moveDelay: 400 * time.Millisecond},
	gamedata.Brutal: {searchDivisor: 1, tileProb: 0.8, minTiles: 3, maxTiles: 7, thinkDelay: 850 * time.Millisecond, moveDelay: 400 * time.Millisecond},
}

// Strategy plays one seat of a match. It satisfies game.FoeStrategy and
// can also drive the player seat for self-play.
type Strategy struct {
	seat       tiles.Seat
	difficulty gamedata.Difficulty

	state    State
	prof     profile
	visit    []int
	visitPos int
	delay    time.Duration

	delayScale float64
	rng        *frand.RNG
}

// New builds a strategy for the seat. Its difficulty follows the match's
// current enemy unless pinned with SetDifficulty.
func New(seat tiles.Seat) *Strategy {
	return &Strategy{seat: seat, delayScale: 1, rng: frand.New()}
}

// SetDifficulty pins the profile regardless of the enemy being fought.
// Self-play uses this for the player seat.
func (s *Strategy) SetDifficulty(d gamedata.Difficulty) {
	s.difficulty = d
}

// SetRNG replaces the random source. Tests pin it with frand.NewCustom
// for reproducible turns.
func (s *Strategy) SetRNG(r *frand.RNG) {
	s.rng = r
}

// SetDelayScale scales the think and move delays. 1 is showtime pacing,
// 0 plays as fast as the caller ticks.
func (s *Strategy) SetDelayScale(f float64) {
	if f < 0 {
		f = 0
	}
	s.delayScale = f
}

func (s *Strategy) scaled(d time.Duration) time.Duration {
	return time.Duration(float64(d) * s.delayScale)
}

func (s *Strategy) Seat() tiles.Seat { return s.seat }
func (s *Strategy) State() State     { return s.state }

func (s *Strategy) lookupProfile(m *game.Match) profile {
	d := s.difficulty
	if d == "" {
		d = m.EnemyDifficulty()
	}
	p, ok := Profiles[d]
	if !ok {
		p = Profiles[gamedata.Medium]
	}
	return p
}

// StartTurn arms a fresh turn: a shuffled visiting order over the lanes
// and the think delay before the first play.
func (s *Strategy) StartTurn(m *game.Match) {
	s.prof = s.lookupProfile(m)
	s.state = Thinking
	s.visit = make([]int, lanes.LaneCount)
	for i := range s.visit {
		s.visit[i] = i
	}
	s.rng.Shuffle(len(s.visit), func(i, j int) {
		s.visit[i], s.visit[j] = s.visit[j], s.visit[i]
	})
	s.visitPos = 0
	s.delay = s.scaled(s.prof.thinkDelay)
}

// Reset returns the strategy to idle, dropping any armed turn.
func (s *Strategy) Reset() {
	s.state = Idle
	s.visit = nil
	s.visitPos = 0
}

// Update advances the strategy by one tick and reports whether its turn
// is finished. While animations run outside, it does nothing; otherwise
// it counts its delay down and, on expiry, plays the next lane in the
// visiting order. Hidden and locked lanes are skipped without delay.
func (s *Strategy) Update(dt time.Duration, m *game.Match) bool {
	switch s.state {
	case Idle, Complete:
		return true
	}
	if !m.AnimationsSettled() {
		return false
	}
	s.delay -= dt
	if s.delay > 0 {
		return false
	}

	played := false
	for s.visitPos < len(s.visit) && !played {
		idx := s.visit[s.visitPos]
		s.visitPos++
		ln := m.Row().Lane(idx)
		if ln == nil || !ln.Playable() {
			continue
		}
		s.playLane(m, idx, ln)
		played = true
	}
	if !played && s.visitPos >= len(s.visit) {
		s.state = Complete
		return true
	}
	s.delay = s.scaled(s.prof.moveDelay)
	return false
}

// playLane commits a difficulty-biased handful of tiles, searches the
// dictionary prefix for the longest word assemblable with the lane's
// letters, and realizes it. A lane with no playable word stays untouched.
func (s *Strategy) playLane(m *game.Match, idx int, ln *lanes.Lane) {
	rack := m.Rack(s.seat)
	if rack.Empty() && ln.Empty() {
		return
	}

	k := s.commitCount(rack.Len())
	order := make([]int, rack.Len())
	for i := range order {
		order[i] = i
	}
	s.rng.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	commit := order[:k]

	available := ln.LetterCounts()
	for _, hi := range commit {
		t, _ := rack.At(hi)
		available[t.Letter.Index()]++
	}
	required := ln.LetterCounts()

	entry := s.searchWord(m.Dictionary(), ln.Len(), available, required)
	if entry == nil {
		log.Debug().Int("lane", idx).Msg("no-word-found")
		return
	}
	s.realize(m, idx, ln, entry, commit)
}

// commitCount draws a binomial-like count of hand tiles to commit,
// clamped to the profile's bounds and the hand size.
func (s *Strategy) commitCount(handSize int) int {
	k := 0
	for i := 0; i < handSize; i++ {
		if s.rng.Float64() < s.prof.tileProb {
			k++
		}
	}
	if k < s.prof.minTiles {
		k = s.prof.minTiles
	}
	if k > s.prof.maxTiles {
		k = s.prof.maxTiles
	}
	if k > handSize {
		k = handSize
	}
	return k
}

// searchWord scans the first size/divisor entries of the dictionary, then
// the seat's supplemental words, for the longest word that fits the lane,
// can be assembled from the available letters, and uses every lane letter.
// A word played onto a nonempty lane must be strictly longer than what is
// there. Equal lengths keep the earlier (higher-ranked) find.
func (s *Strategy) searchWord(dict *lexicon.Dictionary, laneLen int, available, required [26]uint8) *lexicon.Entry {
	limit := dict.Size() / s.prof.searchDivisor
	var best *lexicon.Entry
	consider := func(e *lexicon.Entry) {
		if len(e.Word) < lexicon.MinWordLength || len(e.Word) > lanes.LaneSize {
			return
		}
		if laneLen > 0 && len(e.Word) <= laneLen {
			return
		}
		if best != nil && len(e.Word) <= len(best.Word) {
			return
		}
		if !e.SpellableFrom(available) || !e.Covers(required) {
			return
		}
		best = e
	}
	for i := 0; i < limit; i++ {
		consider(dict.WordByRank(i))
	}
	supp := dict.Supplemental(s.seat)
	for i := range supp {
		consider(&supp[i])
	}
	return best
}

// realize replaces the lane's contents with the word. Old lane tiles and
// consumed hand tiles return to the pool, and each letter of the word is
// drawn back out of it, so nothing is minted or lost. The letter
// accounting is verified before any container changes; a mismatch
// abandons the lane intact.
func (s *Strategy) realize(m *game.Match, idx int, ln *lanes.Lane, e *lexicon.Entry, commit []int) {
	rack := m.Rack(s.seat)
	pool := m.Pool(s.seat)

	leftovers := ln.LetterCounts()
	used := make(map[int]bool, len(commit))
	var handUse []int
	for i := 0; i < len(e.Word); i++ {
		l, err := tiles.ParseLetter(rune(e.Word[i]))
		if err != nil {
			return
		}
		if leftovers[l.Index()] > 0 {
			leftovers[l.Index()]--
			continue
		}
		found := false
		for _, hi := range commit {
			if used[hi] {
				continue
			}
			if t, ok := rack.At(hi); ok && t.Letter == l {
				used[hi] = true
				handUse = append(handUse, hi)
				found = true
				break
			}
		}
		if !found {
			log.Debug().Int("lane", idx).Str("word", e.Word).
				Msg("letter-bookkeeping-mismatch")
			return
		}
	}

	sort.Sort(sort.Reverse(sort.IntSlice(handUse)))
	for _, hi := range handUse {
		t, _ := rack.RemoveAt(hi)
		pool.PutBack(t)
	}
	for _, t := range ln.Clear() {
		pool.PutBack(t)
	}
	for i := 0; i < len(e.Word); i++ {
		l, _ := tiles.ParseLetter(rune(e.Word[i]))
		t, ok := pool.DrawLetter(l)
		if !ok {
			// unreachable: every letter was just returned to the pool
			break
		}
		ln.Append(t)
	}
	ln.Owner = s.seat
	ln.TemporaryOwner = s.seat
	log.Debug().Int("lane", idx).Str("word", e.Word).
		Str("seat", s.seat.String()).Msg("played-word")
}
