package gamedata

import (
	"testing"

	"github.com/matryer/is"

	"github.com/wordfray/wordfray/tiles"
)

func TestEmbeddedEnemiesLoad(t *testing.T) {
	is := is.New(t)

	r, err := Load()
	is.NoErr(err)
	is.True(r.Count() >= 8)

	e, err := r.ByID("rust-rat")
	is.NoErr(err)
	is.Equal(e.Name, "Rust Rat")
	is.Equal(e.Difficulty, Easy)
	is.Equal(e.Health, 18)
}

func TestUnknownEnemyFailsLoud(t *testing.T) {
	r := MustLoad()
	if _, err := r.ByID("tarrasque"); err == nil {
		t.Fatal("expected an error for an unknown enemy id")
	}
}

func TestRewardTiles(t *testing.T) {
	is := is.New(t)

	r := MustLoad()
	e, err := r.ByID("blood-regent")
	is.NoErr(err)
	is.Equal(len(e.Rewards), 2)

	tile, err := e.Rewards[0].Tile()
	is.NoErr(err)
	is.Equal(tile, tiles.Tile{Letter: 'N', Kind: tiles.Shield})
}

func TestLaneFlags(t *testing.T) {
	is := is.New(t)

	r := MustLoad()
	reaver, err := r.ByID("sea-reaver")
	is.NoErr(err)
	is.Equal(reaver.LockedLanes, []int{2})

	binder, err := r.ByID("bestiary-binder")
	is.NoErr(err)
	is.Equal(binder.HiddenLanes, []int{2})
}

func TestValidationRejectsBadData(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"empty id", "- id: \"\"\n  name: X\n  health: 1\n  difficulty: easy\n"},
		{"zero health", "- id: x\n  name: X\n  health: 0\n  difficulty: easy\n"},
		{"bad difficulty", "- id: x\n  name: X\n  health: 1\n  difficulty: nightmare\n"},
		{"bad lane", "- id: x\n  name: X\n  health: 1\n  difficulty: easy\n  locked_lanes: [5]\n"},
		{"powerless reward", "- id: x\n  name: X\n  health: 1\n  difficulty: easy\n  rewards:\n    - letter: A\n      kind: plain\n"},
		{"duplicate id", "- id: x\n  name: X\n  health: 1\n  difficulty: easy\n- id: x\n  name: Y\n  health: 1\n  difficulty: easy\n"},
	}
	for _, c := range cases {
		if _, err := loadFrom([]byte(c.yaml)); err == nil {
			t.Errorf("%s: expected a load error", c.name)
		}
	}
}
