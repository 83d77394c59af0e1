package relic

import (
	"strings"

	"github.com/wordfray/wordfray/tiles"
)

// The builtin roster. Names are the stable identifiers enemy configs and
// reward tables refer to.

type whetstoneCharm struct{ Base }

func (whetstoneCharm) WordScoreBonus(string) int { return 1 }

type alephSigil struct{ Base }

func (alephSigil) WordScoreMult(word string) float64 {
	if strings.HasPrefix(word, "a") {
		return 2
	}
	return 1
}

type longshipFigurehead struct{ Base }

func (longshipFigurehead) WordScoreMult(word string) float64 {
	if len(word) >= 6 {
		return 1.5
	}
	return 1
}

// glassHourglass trades defense for offense.
type glassHourglass struct{ Base }

func (glassHourglass) WordScoreMult(string) float64     { return 1.5 }
func (glassHourglass) VulnerabilityMult(string) float64 { return 2 }

type wolfsbaneWreath struct{ Base }

func (wolfsbaneWreath) VulnerabilityMult(word string) float64 {
	if strings.HasSuffix(word, "s") {
		return 1.5
	}
	return 1
}

type siegebreakerHorn struct{ Base }

func (siegebreakerHorn) Unblockable() bool { return true }

type leechLocket struct{ Base }

func (leechLocket) HealOnWord(string) int { return 2 }

type bloodChalice struct{ Base }

func (bloodChalice) PercentDamage() float64 { return 10 }

type quartermastersCoin struct{ Base }

func (quartermastersCoin) RequiredLetter() (tiles.Letter, bool) { return 'Q', true }

type bestiaryAppendix struct{ Base }

func (bestiaryAppendix) ExtraWords() []string {
	return []string{
		"wyvern", "gryphon", "basilisk", "kraken", "chimera",
		"hydra", "phoenix", "drake", "wyrm", "roc",
	}
}

type cartographersFolio struct{ Base }

func (cartographersFolio) ExtraWords() []string {
	return []string{
		"atoll", "butte", "mesa", "steppe", "taiga",
		"lagoon", "estuary", "bayou", "savanna", "tor",
	}
}

// Builtin returns one instance of every stock relic.
func Builtin() []Relic {
	return []Relic{
		whetstoneCharm{Base{name: "whetstone-charm"}},
		alephSigil{Base{name: "aleph-sigil"}},
		longshipFigurehead{Base{name: "longship-figurehead"}},
		glassHourglass{Base{name: "glass-hourglass"}},
		wolfsbaneWreath{Base{name: "wolfsbane-wreath"}},
		siegebreakerHorn{Base{name: "siegebreaker-horn"}},
		leechLocket{Base{name: "leech-locket"}},
		bloodChalice{Base{name: "blood-chalice"}},
		quartermastersCoin{Base{name: "quartermasters-coin"}},
		bestiaryAppendix{Base{name: "bestiary-appendix"}},
		cartographersFolio{Base{name: "cartographers-folio"}},
	}
}
