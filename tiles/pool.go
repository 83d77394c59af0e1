package tiles

import "math/rand"

// Pool is one side's supply of tiles. It is built from a letter
// distribution plus any persistent powered tiles the side has earned, and
// it is reshuffled whole at the start of every match. Draws come off the
// front of the shuffled copy.
//
// Letters are conserved: a tile drawn and put back keeps its letter, and
// Reset always rebuilds the same multiset. Powered tiles added with
// AddPersistent survive resets.
type Pool struct {
	dist       *LetterDistribution
	persistent []Tile
	tiles      []Tile
	randomizer *rand.Rand
}

// NewPool builds a freshly shuffled pool from the distribution.
func NewPool(dist *LetterDistribution, randSource *rand.Rand) *Pool {
	p := &Pool{dist: dist, randomizer: randSource}
	p.Reset()
	return p
}

func (p *Pool) SetRandomizer(r *rand.Rand) {
	p.randomizer = r
}

// Reset rebuilds the working copy from the distribution and the persistent
// tiles, then shuffles it. Any tiles still out (on racks or lanes) are
// forgotten; callers reset pools only at match boundaries.
func (p *Pool) Reset() {
	p.tiles = make([]Tile, 0, p.dist.NumTiles()+len(p.persistent))
	for i := 0; i < 26; i++ {
		l := Letter('A' + i)
		for n := 0; n < p.dist.Count(l); n++ {
			p.tiles = append(p.tiles, Tile{Letter: l, Kind: Plain})
		}
	}
	p.tiles = append(p.tiles, p.persistent...)
	p.Shuffle()
}

// Shuffle shuffles the remaining tiles.
func (p *Pool) Shuffle() {
	p.randomizer.Shuffle(len(p.tiles), func(i, j int) {
		p.tiles[i], p.tiles[j] = p.tiles[j], p.tiles[i]
	})
}

// Draw takes the next tile. It fails only when the pool is empty.
func (p *Pool) Draw() (Tile, bool) {
	if len(p.tiles) == 0 {
		return Tile{}, false
	}
	t := p.tiles[0]
	p.tiles = p.tiles[1:]
	return t, true
}

// DrawLetter takes a tile with the given letter, preferring a powered
// instance if one remains. It fails when no tile of that letter is left.
func (p *Pool) DrawLetter(l Letter) (Tile, bool) {
	pick := -1
	for i, t := range p.tiles {
		if t.Letter != l {
			continue
		}
		if t.Kind.Powered() {
			pick = i
			break
		}
		if pick == -1 {
			pick = i
		}
	}
	return p.takeAt(pick)
}

// DrawExact takes a tile matching both letter and kind. If no exact
// instance remains it falls back to any tile of the letter, returned
// as-is; kinds are never minted by the pool.
func (p *Pool) DrawExact(l Letter, k Kind) (Tile, bool) {
	for i, t := range p.tiles {
		if t.Letter == l && t.Kind == k {
			return p.takeAt(i)
		}
	}
	return p.DrawLetter(l)
}

func (p *Pool) takeAt(i int) (Tile, bool) {
	if i < 0 || i >= len(p.tiles) {
		return Tile{}, false
	}
	t := p.tiles[i]
	p.tiles = append(p.tiles[:i], p.tiles[i+1:]...)
	return t, true
}

// PutBack returns a tile to the pool and reshuffles the remainder. Lock
// state belongs to lanes, so a locked tile reverts to plain on the way in.
func (p *Pool) PutBack(t Tile) {
	if t.Kind == Locked {
		t.Kind = Plain
	}
	p.tiles = append(p.tiles, t)
	p.Shuffle()
}

// AddPersistent registers tiles that join the pool on every future Reset.
// The current working copy is untouched.
func (p *Pool) AddPersistent(ts ...Tile) {
	p.persistent = append(p.persistent, ts...)
}

func (p *Pool) TilesRemaining() int {
	return len(p.tiles)
}

func (p *Pool) PersistentCount() int {
	return len(p.persistent)
}

// Count returns how many tiles of the letter remain.
func (p *Pool) Count(l Letter) int {
	n := 0
	for _, t := range p.tiles {
		if t.Letter == l {
			n++
		}
	}
	return n
}

// LetterCounts tallies the remaining tiles by letter.
func (p *Pool) LetterCounts() [26]uint8 {
	var counts [26]uint8
	for _, t := range p.tiles {
		counts[t.Letter.Index()]++
	}
	return counts
}

// PoweredBreakdown counts the remaining tiles that carry a power, by kind.
func (p *Pool) PoweredBreakdown() map[Kind]int {
	out := map[Kind]int{}
	for _, t := range p.tiles {
		if t.Kind.Powered() {
			out[t.Kind]++
		}
	}
	return out
}
