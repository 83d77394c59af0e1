package relic

import (
	"fmt"
	"sort"

	"github.com/samber/lo"

	"github.com/wordfray/wordfray/tiles"
)

// Registry tracks which relics each seat has active and aggregates their
// capabilities. Additive effects sum, multiplicative effects multiply,
// percent overrides take the max, flags or together, and word/letter
// grants collect.
type Registry struct {
	known  map[string]Relic
	active map[tiles.Seat][]Relic
}

// NewRegistry returns a registry preloaded with the builtin roster.
func NewRegistry() *Registry {
	r := &Registry{
		known:  make(map[string]Relic),
		active: make(map[tiles.Seat][]Relic),
	}
	for _, rel := range Builtin() {
		r.known[rel.Name()] = rel
	}
	return r
}

// Register adds a relic to the known set, replacing any same-named one.
func (r *Registry) Register(rel Relic) {
	r.known[rel.Name()] = rel
}

// Known returns every registered relic name, sorted.
func (r *Registry) Known() []string {
	names := lo.Keys(r.known)
	sort.Strings(names)
	return names
}

// Activate turns a relic on for the seat. Activating an already-active
// relic is a no-op; an unknown name is an error.
func (r *Registry) Activate(seat tiles.Seat, name string) error {
	rel, ok := r.known[name]
	if !ok {
		return fmt.Errorf("unknown relic %q", name)
	}
	for _, a := range r.active[seat] {
		if a.Name() == name {
			return nil
		}
	}
	r.active[seat] = append(r.active[seat], rel)
	return nil
}

// Deactivate turns a relic off for the seat. Deactivating an inactive
// relic is a no-op; an unknown name is an error.
func (r *Registry) Deactivate(seat tiles.Seat, name string) error {
	if _, ok := r.known[name]; !ok {
		return fmt.Errorf("unknown relic %q", name)
	}
	r.active[seat] = lo.Filter(r.active[seat], func(rel Relic, _ int) bool {
		return rel.Name() != name
	})
	return nil
}

// ResetActive clears every seat's active set. Run at match setup.
func (r *Registry) ResetActive() {
	r.active = make(map[tiles.Seat][]Relic)
}

// Active returns the seat's active relics in activation order.
func (r *Registry) Active(seat tiles.Seat) []Relic {
	out := make([]Relic, len(r.active[seat]))
	copy(out, r.active[seat])
	return out
}

// ActiveNames returns the seat's active relic names in activation order.
func (r *Registry) ActiveNames(seat tiles.Seat) []string {
	return lo.Map(r.active[seat], func(rel Relic, _ int) string {
		return rel.Name()
	})
}

// ScoreMult is the product of the seat's word score multipliers.
func (r *Registry) ScoreMult(seat tiles.Seat, word string) float64 {
	return lo.Reduce(r.active[seat], func(agg float64, rel Relic, _ int) float64 {
		return agg * rel.WordScoreMult(word)
	}, 1)
}

// ScoreBonus is the sum of the seat's flat word bonuses.
func (r *Registry) ScoreBonus(seat tiles.Seat, word string) int {
	return lo.SumBy(r.active[seat], func(rel Relic) int {
		return rel.WordScoreBonus(word)
	})
}

// Vulnerability is the product of the seat's incoming-damage multipliers
// for the given attacking word.
func (r *Registry) Vulnerability(seat tiles.Seat, word string) float64 {
	return lo.Reduce(r.active[seat], func(agg float64, rel Relic, _ int) float64 {
		return agg * rel.VulnerabilityMult(word)
	}, 1)
}

// PercentDamage is the largest percent override any of the seat's relics
// grants, or 0 when none does.
func (r *Registry) PercentDamage(seat tiles.Seat) float64 {
	return lo.Reduce(r.active[seat], func(agg float64, rel Relic, _ int) float64 {
		if p := rel.PercentDamage(); p > agg {
			return p
		}
		return agg
	}, 0)
}

// Unblockable reports whether any of the seat's relics bypasses shields.
func (r *Registry) Unblockable(seat tiles.Seat) bool {
	return lo.SomeBy(r.active[seat], func(rel Relic) bool {
		return rel.Unblockable()
	})
}

// HealOnWord is the total healing the seat receives for an accepted word.
func (r *Registry) HealOnWord(seat tiles.Seat, word string) int {
	return lo.SumBy(r.active[seat], func(rel Relic) int {
		return rel.HealOnWord(word)
	})
}

// RequiredLetters collects the letters the seat's refills must keep on
// hand, in activation order.
func (r *Registry) RequiredLetters(seat tiles.Seat) []tiles.Letter {
	return lo.FilterMap(r.active[seat], func(rel Relic, _ int) (tiles.Letter, bool) {
		return rel.RequiredLetter()
	})
}

// ExtraWords collects the extra vocabulary the seat's relics grant.
func (r *Registry) ExtraWords(seat tiles.Seat) []string {
	return lo.FlatMap(r.active[seat], func(rel Relic, _ int) []string {
		return rel.ExtraWords()
	})
}
