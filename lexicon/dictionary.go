// Package lexicon holds the playable word list. Words are stored in rank
// order, most common first; the rank prefix an opponent is allowed to scan
// is the difficulty lever, so order is load-bearing.
package lexicon

import (
	"bufio"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/cespare/xxhash"
	"github.com/rs/zerolog/log"

	"github.com/wordfray/wordfray/tiles"
)

// MinWordLength is the shortest word any side may play.
const MinWordLength = 2

//go:embed words.txt
var embeddedWords string

// Entry is one playable word with its letter multiset precomputed.
type Entry struct {
	Word         string
	LetterCounts [26]uint8
}

func newEntry(word string) (Entry, bool) {
	e := Entry{Word: word}
	if len(word) < MinWordLength {
		return e, false
	}
	for i := 0; i < len(word); i++ {
		c := word[i]
		if c < 'a' || c > 'z' {
			return e, false
		}
		e.LetterCounts[c-'a']++
	}
	return e, true
}

// SpellableFrom reports whether the word can be assembled from the
// available letter multiset.
func (e *Entry) SpellableFrom(available [26]uint8) bool {
	for i, need := range e.LetterCounts {
		if need > available[i] {
			return false
		}
	}
	return true
}

// Covers reports whether the word uses every required letter at least as
// many times as required.
func (e *Entry) Covers(required [26]uint8) bool {
	for i, need := range required {
		if e.LetterCounts[i] < need {
			return false
		}
	}
	return true
}

// Dictionary is the rank-ordered word list plus any per-seat supplemental
// words granted by relics. Base words are playable by both seats;
// supplemental words only by theirs.
type Dictionary struct {
	entries      []Entry
	byWord       map[string]int
	supplemental map[tiles.Seat][]Entry
}

// NewDictionary loads the embedded word list.
func NewDictionary() *Dictionary {
	d := fromLines(strings.Split(embeddedWords, "\n"))
	log.Debug().Int("words", d.Size()).Str("source", "embedded").Msg("loaded-dictionary")
	return d
}

// LoadDictionary reads a rank-ordered word list from a file, one word per
// line.
func LoadDictionary(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dictionary: %w", err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read dictionary: %w", err)
	}
	d := fromLines(lines)
	log.Debug().Int("words", d.Size()).Str("source", path).Msg("loaded-dictionary")
	return d, nil
}

// NewDictionaryFromWords builds a dictionary from an explicit rank-ordered
// word list. Scripted matches and fixtures use this.
func NewDictionaryFromWords(words []string) *Dictionary {
	return fromLines(words)
}

func fromLines(lines []string) *Dictionary {
	d := &Dictionary{
		byWord:       make(map[string]int, len(lines)),
		supplemental: make(map[tiles.Seat][]Entry),
	}
	for _, line := range lines {
		w := strings.ToLower(strings.TrimSpace(line))
		e, ok := newEntry(w)
		if !ok {
			continue
		}
		if _, dup := d.byWord[w]; dup {
			continue
		}
		d.byWord[w] = len(d.entries)
		d.entries = append(d.entries, e)
	}
	return d
}

// Size returns the number of base words. Supplemental words don't count;
// they sit outside the rank order.
func (d *Dictionary) Size() int {
	return len(d.entries)
}

// WordByRank returns the base entry at the given rank, or nil when out of
// range. Rank 0 is the most common word.
func (d *Dictionary) WordByRank(i int) *Entry {
	if i < 0 || i >= len(d.entries) {
		return nil
	}
	return &d.entries[i]
}

// Rank returns the frequency rank of a base word. Supplemental words
// have no rank.
func (d *Dictionary) Rank(word string) (int, bool) {
	i, ok := d.byWord[strings.ToLower(word)]
	return i, ok
}

// HasWord reports whether the seat may play the word.
func (d *Dictionary) HasWord(word string, seat tiles.Seat) bool {
	_, ok := d.Entry(word, seat)
	return ok
}

// Entry looks a word up for the seat, checking base words first and then
// the seat's supplemental list.
func (d *Dictionary) Entry(word string, seat tiles.Seat) (*Entry, bool) {
	w := strings.ToLower(word)
	if i, ok := d.byWord[w]; ok {
		return &d.entries[i], true
	}
	supp := d.supplemental[seat]
	for i := range supp {
		if supp[i].Word == w {
			return &supp[i], true
		}
	}
	return nil, false
}

// AddSupplemental grants the seat extra playable words. Invalid words are
// dropped; duplicates are kept as given.
func (d *Dictionary) AddSupplemental(seat tiles.Seat, words ...string) {
	for _, word := range words {
		w := strings.ToLower(strings.TrimSpace(word))
		e, ok := newEntry(w)
		if !ok {
			continue
		}
		d.supplemental[seat] = append(d.supplemental[seat], e)
	}
}

// ClearSupplemental drops the seat's extra words. Run at match setup
// before relic activation repopulates it.
func (d *Dictionary) ClearSupplemental(seat tiles.Seat) {
	delete(d.supplemental, seat)
}

// Supplemental returns the seat's extra entries in grant order. The slice
// is live; callers must not mutate it.
func (d *Dictionary) Supplemental(seat tiles.Seat) []Entry {
	return d.supplemental[seat]
}

// Fingerprint hashes the base word list in rank order. Two dictionaries
// with the same fingerprint rank words identically.
func (d *Dictionary) Fingerprint() uint64 {
	var sb strings.Builder
	for i := range d.entries {
		sb.WriteString(d.entries[i].Word)
		sb.WriteByte('\n')
	}
	return xxhash.Sum64String(sb.String())
}
