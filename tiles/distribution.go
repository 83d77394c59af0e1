package tiles

// LetterDistribution tells a pool how many copies of each letter it starts
// with. Distributions are immutable once built; pools copy out of them.
type LetterDistribution struct {
	name     string
	counts   [26]uint8
	numTiles int
}

// NewLetterDistribution builds a distribution from a letter-count map.
func NewLetterDistribution(name string, counts map[Letter]uint8) *LetterDistribution {
	d := &LetterDistribution{name: name}
	for l, ct := range counts {
		if !l.Valid() {
			continue
		}
		d.counts[l.Index()] = ct
		d.numTiles += int(ct)
	}
	return d
}

func (d *LetterDistribution) Name() string { return d.name }

// NumTiles returns the total tile count across all letters.
func (d *LetterDistribution) NumTiles() int { return d.numTiles }

// Count returns how many copies of the letter the distribution carries.
func (d *LetterDistribution) Count(l Letter) int {
	if !l.Valid() {
		return 0
	}
	return int(d.counts[l.Index()])
}

// EnglishDistribution is the standard English letter distribution without
// blanks, 98 tiles.
func EnglishDistribution() *LetterDistribution {
	return NewLetterDistribution("english", map[Letter]uint8{
		'A': 9, 'B': 2, 'C': 2, 'D': 4, 'E': 12, 'F': 2, 'G': 3,
		'H': 2, 'I': 9, 'J': 1, 'K': 1, 'L': 4, 'M': 2, 'N': 6,
		'O': 8, 'P': 2, 'Q': 1, 'R': 6, 'S': 4, 'T': 6, 'U': 4,
		'V': 2, 'W': 2, 'X': 1, 'Y': 2, 'Z': 1,
	})
}
