// Package gamedata loads the static enemy definitions shipped with the
// game.
package gamedata

import _ "embed"

//go:embed enemies.yaml
var enemiesYAML []byte
