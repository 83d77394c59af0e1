// Package relic implements the named rule modifiers a side can carry into
// a match. Relics are stateless; all per-match state is the registry's
// per-seat active set.
package relic

import "github.com/wordfray/wordfray/tiles"

// Relic is the fixed capability set the combat engine and the opponent
// strategy consult. Every capability has a safe no-op default on Base, so
// concrete relics override only what they change.
type Relic interface {
	Name() string

	// WordScoreMult scales the damage of an accepted word. Neutral is 1.
	WordScoreMult(word string) float64
	// WordScoreBonus adds flat damage to an accepted word.
	WordScoreBonus(word string) int
	// VulnerabilityMult scales damage the carrier takes from an incoming
	// word. Neutral is 1.
	VulnerabilityMult(word string) float64
	// PercentDamage, when positive, replaces the carrier's word damage
	// with a flat percentage of the defender's max health.
	PercentDamage() float64
	// Unblockable makes the carrier's damage ignore shields.
	Unblockable() bool
	// HealOnWord heals the carrier when one of its words is accepted.
	HealOnWord(word string) int
	// RequiredLetter forces refills to keep one tile of the letter on the
	// carrier's hand.
	RequiredLetter() (tiles.Letter, bool)
	// ExtraWords are added to the carrier's playable vocabulary.
	ExtraWords() []string
}

// Base carries the no-op defaults. Concrete relics embed it.
type Base struct {
	name string
}

func (b Base) Name() string                         { return b.name }
func (b Base) WordScoreMult(string) float64         { return 1 }
func (b Base) WordScoreBonus(string) int            { return 0 }
func (b Base) VulnerabilityMult(string) float64     { return 1 }
func (b Base) PercentDamage() float64               { return 0 }
func (b Base) Unblockable() bool                    { return false }
func (b Base) HealOnWord(string) int                { return 0 }
func (b Base) RequiredLetter() (tiles.Letter, bool) { return 0, false }
func (b Base) ExtraWords() []string                 { return nil }
