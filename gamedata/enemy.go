package gamedata

import (
	"fmt"

	"github.com/wordfray/wordfray/tiles"
)

// Difficulty selects how hard an enemy's word search is allowed to look.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
	Brutal Difficulty = "brutal"
)

func (d Difficulty) Valid() bool {
	switch d {
	case Easy, Medium, Hard, Brutal:
		return true
	}
	return false
}

// Reward is a powered tile granted to the player's pool on victory.
type Reward struct {
	Letter string `yaml:"letter"`
	Kind   string `yaml:"kind"`
}

// Tile converts the reward to a pool tile.
func (r Reward) Tile() (tiles.Tile, error) {
	if len(r.Letter) != 1 {
		return tiles.Tile{}, fmt.Errorf("reward letter must be one character, got %q", r.Letter)
	}
	l, err := tiles.ParseLetter(rune(r.Letter[0]))
	if err != nil {
		return tiles.Tile{}, err
	}
	k, err := tiles.ParseKind(r.Kind)
	if err != nil {
		return tiles.Tile{}, err
	}
	if !k.Powered() {
		return tiles.Tile{}, fmt.Errorf("reward kind %q carries no power", r.Kind)
	}
	return tiles.Tile{Letter: l, Kind: k}, nil
}

// Enemy is one scripted opponent definition.
type Enemy struct {
	ID          string     `yaml:"id"`
	Name        string     `yaml:"name"`
	Epithet     string     `yaml:"epithet"`
	Health      int        `yaml:"health"`
	Difficulty  Difficulty `yaml:"difficulty"`
	Relics      []string   `yaml:"relics"`
	LockedLanes []int      `yaml:"locked_lanes"`
	HiddenLanes []int      `yaml:"hidden_lanes"`
	Rewards     []Reward   `yaml:"rewards"`
}

func (e *Enemy) validate() error {
	if e.ID == "" {
		return fmt.Errorf("enemy with empty id")
	}
	if e.Name == "" {
		return fmt.Errorf("enemy %q has no name", e.ID)
	}
	if e.Health <= 0 {
		return fmt.Errorf("enemy %q has non-positive health %d", e.ID, e.Health)
	}
	if !e.Difficulty.Valid() {
		return fmt.Errorf("enemy %q has unknown difficulty %q", e.ID, e.Difficulty)
	}
	for _, idx := range append(append([]int{}, e.LockedLanes...), e.HiddenLanes...) {
		if idx < 0 || idx > 2 {
			return fmt.Errorf("enemy %q references lane %d", e.ID, idx)
		}
	}
	for _, r := range e.Rewards {
		if _, err := r.Tile(); err != nil {
			return fmt.Errorf("enemy %q: %w", e.ID, err)
		}
	}
	return nil
}
