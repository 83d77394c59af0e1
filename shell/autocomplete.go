package shell

import (
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/wordfray/wordfray/gamedata"
)

// ShellCompleter provides context-aware autocomplete for shell commands
type ShellCompleter struct {
	sc     *ShellController
	roster []string
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

// CommandMetadata holds autocomplete information for a command
type CommandMetadata struct {
	Options []string // Available options for this command (e.g., "-enemy", "-workers")
	Args    []string // Possible argument values (for non-option arguments)
}

// commandMetadata maps command names to their options and arguments.
// These mirror the command implementations in api.go.
var commandMetadata = map[string]CommandMetadata{
	"autoplay": {
		Options: []string{
			"-enemy", "-player", "-workers", "-seed", "-seeds", "-file",
			"-db", "-yaml",
		},
		Args: []string{"stop"},
	},
	"results": {
		Options: []string{"-db", "-limit"},
		Args:    []string{"summary"},
	},
	"set": {
		Args: []string{
			"bot-delay-scale", "max-health", "mulligans", "player-name",
			"seed", "autoplay-db", "dictionary-path", "data-path",
		},
	},
	"place": {
		Args: []string{"1", "2", "3"},
	},
	"pickup": {
		Args: []string{"hand", "1", "2", "3"},
	},
	"drop": {
		Args: []string{"hand", "1", "2", "3"},
	},
	"pool": {
		Args: []string{"foe"},
	},
	"help": {
		Args: []string{
			"new", "place", "submit", "autoplay", "results", "script",
			"set", "check",
		},
	},
}

// Common command names for command completion
var commandNames = []string{
	"help", "new", "show", "hand", "pool", "place", "pickup", "drop",
	"cancel", "submit", "mulligan", "restart", "check", "relics", "grant",
	"enemies", "history", "autoplay", "autoanalyze", "results", "seeds",
	"set", "export", "script", "exit",
}

var difficultyValues = []string{"easy", "medium", "hard", "brutal"}

// enemyIDs returns the roster ids, loading the embedded roster once if
// the engine has not been built yet.
func (c *ShellCompleter) enemyIDs() []string {
	if c.sc.enemies != nil {
		ids := make([]string, 0, c.sc.enemies.Count())
		for _, e := range c.sc.enemies.All() {
			ids = append(ids, e.ID)
		}
		return ids
	}
	if c.roster == nil {
		reg, err := gamedata.Load()
		if err != nil {
			return nil
		}
		for _, e := range reg.All() {
			c.roster = append(c.roster, e.ID)
		}
	}
	return c.roster
}

// Do implements the readline.AutoComplete interface
// It provides context-aware autocomplete based on what's been typed
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	// Get the text up to the cursor position
	text := string(line[:pos])

	// Parse the line using shellquote to handle quoted strings properly
	fields, err := shellquote.Split(text)
	if err != nil {
		// If we can't parse, fall back to simple space splitting
		fields = strings.Fields(text)
	}

	// Check if we're in the middle of typing a word or just after a space
	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	// Determine what we're trying to complete
	var prefix string
	var completions []string

	if len(fields) == 0 || (len(fields) == 1 && !endsWithSpace) {
		// Completing a command name
		if len(fields) == 1 {
			prefix = fields[0]
		}
		completions = commandNames
	} else {
		// We have a command, now complete its arguments/options
		cmdName := fields[0]

		if !endsWithSpace && len(fields) > 0 {
			prefix = fields[len(fields)-1]
		}

		// Get the last complete field to check context
		var lastCompleteField string
		if endsWithSpace && len(fields) > 0 {
			lastCompleteField = fields[len(fields)-1]
		} else if len(fields) > 1 {
			lastCompleteField = fields[len(fields)-2]
		}

		// Check if the last field was an option that expects specific values
		if lastCompleteField != "" && strings.HasPrefix(lastCompleteField, "-") {
			optName := strings.TrimPrefix(lastCompleteField, "-")

			switch optName {
			case "player":
				completions = difficultyValues
			case "enemy":
				completions = c.enemyIDs()
			}
		}

		// The new command wants an enemy id
		if cmdName == "new" && completions == nil {
			completions = c.enemyIDs()
		}

		// If we haven't determined completions yet, show command options/args
		if completions == nil {
			if metadata, exists := commandMetadata[cmdName]; exists {
				// If we're typing something that starts with -, show options
				if strings.HasPrefix(prefix, "-") {
					completions = metadata.Options
				} else {
					// Show args if available, otherwise show options
					if len(metadata.Args) > 0 {
						completions = metadata.Args
					} else {
						completions = metadata.Options
					}
				}
			}
		}
	}

	// Filter completions based on prefix
	var matches [][]rune
	for _, completion := range completions {
		if strings.HasPrefix(completion, prefix) {
			// Return only the part that needs to be added
			suffix := completion[len(prefix):]
			matches = append(matches, []rune(suffix))
		}
	}

	return matches, len(prefix)
}
