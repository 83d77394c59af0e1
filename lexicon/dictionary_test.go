package lexicon

import (
	"testing"

	"github.com/matryer/is"

	"github.com/wordfray/wordfray/tiles"
)

func TestEmbeddedDictionary(t *testing.T) {
	is := is.New(t)

	d := NewDictionary()
	is.True(d.Size() > 2000)
	is.Equal(d.WordByRank(0).Word, "the")
	is.True(d.HasWord("cat", tiles.Player))
	is.True(d.HasWord("cats", tiles.Foe))
	is.True(d.HasWord("ant", tiles.Player))
	is.True(!d.HasWord("zzzz", tiles.Player))
}

func TestNormalizationAndMinLength(t *testing.T) {
	is := is.New(t)

	d := NewDictionaryFromWords([]string{"  CAT ", "a", "ok!", "dog", "dog"})
	is.Equal(d.Size(), 2)
	is.True(d.HasWord("CAT", tiles.Player))
	is.True(d.HasWord("dog", tiles.Player))
	is.True(!d.HasWord("a", tiles.Player))
	is.True(!d.HasWord("ok!", tiles.Player))
}

func TestWordByRankOrder(t *testing.T) {
	is := is.New(t)

	d := NewDictionaryFromWords([]string{"cat", "dog", "eel"})
	is.Equal(d.WordByRank(0).Word, "cat")
	is.Equal(d.WordByRank(2).Word, "eel")
	is.Equal(d.WordByRank(3), (*Entry)(nil))
	is.Equal(d.WordByRank(-1), (*Entry)(nil))
}

func TestSupplementalIsPerSeat(t *testing.T) {
	is := is.New(t)

	d := NewDictionaryFromWords([]string{"cat"})
	d.AddSupplemental(tiles.Foe, "wyvern")
	is.True(d.HasWord("wyvern", tiles.Foe))
	is.True(!d.HasWord("wyvern", tiles.Player))
	// supplemental words sit outside the rank order
	is.Equal(d.Size(), 1)
	is.Equal(len(d.Supplemental(tiles.Foe)), 1)

	d.ClearSupplemental(tiles.Foe)
	is.True(!d.HasWord("wyvern", tiles.Foe))
}

func TestSpellableFromAndCovers(t *testing.T) {
	is := is.New(t)

	d := NewDictionaryFromWords([]string{"cats"})
	e, ok := d.Entry("cats", tiles.Player)
	is.True(ok)

	var avail [26]uint8
	for _, c := range "catsx" {
		avail[c-'a']++
	}
	is.True(e.SpellableFrom(avail))

	avail['s'-'a'] = 0
	is.True(!e.SpellableFrom(avail))

	var required [26]uint8
	required['c'-'a'] = 1
	required['t'-'a'] = 1
	is.True(e.Covers(required))

	required['t'-'a'] = 2
	is.True(!e.Covers(required))
}

func TestFingerprintTracksRankOrder(t *testing.T) {
	is := is.New(t)

	a := NewDictionaryFromWords([]string{"cat", "dog"})
	b := NewDictionaryFromWords([]string{"dog", "cat"})
	c := NewDictionaryFromWords([]string{"cat", "dog"})
	is.True(a.Fingerprint() != b.Fingerprint())
	is.Equal(a.Fingerprint(), c.Fingerprint())
}
