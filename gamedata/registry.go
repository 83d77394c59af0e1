package gamedata

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Registry holds the loaded enemy definitions.
type Registry struct {
	enemies []Enemy
	byID    map[string]*Enemy
}

// Load parses and validates the embedded enemy definitions.
func Load() (*Registry, error) {
	return loadFrom(enemiesYAML)
}

// MustLoad loads the embedded definitions, panicking on error. Shipped
// data failing to parse is a build defect, not a runtime condition.
func MustLoad() *Registry {
	r, err := Load()
	if err != nil {
		panic(err)
	}
	return r
}

func loadFrom(raw []byte) (*Registry, error) {
	var enemies []Enemy
	if err := yaml.Unmarshal(raw, &enemies); err != nil {
		return nil, fmt.Errorf("parse enemies: %w", err)
	}
	if len(enemies) == 0 {
		return nil, fmt.Errorf("no enemies defined")
	}
	r := &Registry{enemies: enemies, byID: make(map[string]*Enemy, len(enemies))}
	for i := range r.enemies {
		e := &r.enemies[i]
		if err := e.validate(); err != nil {
			return nil, err
		}
		if _, dup := r.byID[e.ID]; dup {
			return nil, fmt.Errorf("duplicate enemy id %q", e.ID)
		}
		r.byID[e.ID] = e
	}
	log.Debug().Int("enemies", len(r.enemies)).Msg("loaded-enemy-registry")
	return r, nil
}

// ByID returns the enemy with the given id. Unknown ids are an error;
// match setup fails loudly rather than guessing.
func (r *Registry) ByID(id string) (*Enemy, error) {
	e, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("unknown enemy %q", id)
	}
	return e, nil
}

// All returns every enemy in definition order.
func (r *Registry) All() []Enemy {
	return r.enemies
}

func (r *Registry) Count() int {
	return len(r.enemies)
}
