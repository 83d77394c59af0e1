package automatic

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// AnalyzeLogFile analyzes a per-turn CSV written by RunSeries and spits
// out a bunch of statistics.
func AnalyzeLogFile(filepath string) (string, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return "", err
	}
	defer file.Close()
	r := csv.NewReader(file)

	// Record looks like:
	// matchId,turn,seat,words,damage,healed,shield,playerHealth,foeHealth

	matches := map[string]bool{}
	damage := map[string][]float64{}
	words := map[string]int{}
	turns := map[string]int{}
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		if record[0] == "matchId" {
			// this is the header line
			continue
		}
		seat := record[2]
		dmg, err := strconv.Atoi(record[4])
		if err != nil {
			return "", err
		}
		matches[record[0]] = true
		damage[seat] = append(damage[seat], float64(dmg))
		if record[3] != "" {
			words[seat] += len(strings.Fields(record[3]))
		}
		turns[seat]++
	}

	stats := fmt.Sprintf("Matches: %d\n", len(matches))
	stats += fmt.Sprintf("Turns: %d by player, %d by foe\n", turns["player"], turns["foe"])
	stats += fmt.Sprintf("Words: %d by player, %d by foe\n", words["player"], words["foe"])
	for _, seat := range []string{"player", "foe"} {
		m, sd := meanStdev(damage[seat])
		stats += fmt.Sprintf("%v Mean Damage Per Turn: %.3f  Stdev: %.3f\n", seat, m, sd)
	}
	return stats, nil
}
