package shell

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"github.com/wordfray/wordfray/automatic"
	"github.com/wordfray/wordfray/game"
	"github.com/wordfray/wordfray/gamedata"
	"github.com/wordfray/wordfray/lanes"
	"github.com/wordfray/wordfray/tiles"
)

type Response struct {
	message string
}

type CmdOptions map[string][]string

func (c CmdOptions) String(key string) string {
	v := c[key]
	if len(v) > 0 {
		return v[0]
	}
	return ""
}

func (c CmdOptions) Int(key string) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return 0, errors.New(key + " not found in options")
	}
	return strconv.Atoi(v[0])
}

func (c CmdOptions) IntDefault(key string, defaultI int) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return defaultI, nil
	}
	return strconv.Atoi(v[0])
}

func (c CmdOptions) Bool(key string) bool {
	v := c[key]
	if len(v) == 0 {
		return false
	}
	return strings.ToLower(v[0]) == "true"
}

func (c CmdOptions) StringArray(key string) []string {
	return c[key]
}

func msg(message string) *Response {
	return &Response{message: message}
}

func laneArg(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > lanes.LaneCount {
		return 0, fmt.Errorf("lane must be 1 through %d", lanes.LaneCount)
	}
	return n - 1, nil
}

func locArg(s string) (game.Loc, error) {
	if strings.EqualFold(s, "hand") {
		return game.HandLoc(), nil
	}
	lane, err := laneArg(s)
	if err != nil {
		return game.Loc{}, errors.New("target must be `hand` or a lane number")
	}
	return game.LaneLoc(lane), nil
}

func (sc *ShellController) newMatch(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return nil, errors.New("need an enemy id; `enemies` lists the roster")
	}
	if err := sc.ensureEngine(); err != nil {
		return nil, err
	}
	sc.foe.SetDelayScale(sc.config.GetFloat64("bot-delay-scale"))
	if err := sc.match.StartMatch(cmd.args[0]); err != nil {
		return nil, err
	}
	e := sc.match.Enemy()
	sc.showMessage(fmt.Sprintf("You face %s, %s.", e.Name, e.Epithet))
	return msg(sc.renderMatch()), nil
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	if sc.match == nil || sc.match.TurnNumber() == 0 {
		return nil, errNoMatch
	}
	return msg(sc.renderMatch()), nil
}

func (sc *ShellController) hand(cmd *shellcmd) (*Response, error) {
	if sc.match == nil || sc.match.TurnNumber() == 0 {
		return nil, errNoMatch
	}
	return msg(sc.renderHand()), nil
}

func (sc *ShellController) pool(cmd *shellcmd) (*Response, error) {
	if sc.match == nil || sc.match.TurnNumber() == 0 {
		return nil, errNoMatch
	}
	seat := tiles.Player
	if len(cmd.args) > 0 && strings.EqualFold(cmd.args[0], "foe") {
		seat = tiles.Foe
	}
	return msg(sc.renderPool(seat)), nil
}

// unplace takes n tiles back off the end of the lane after a partial
// place, so a failed command leaves the hand as it found it.
func (sc *ShellController) unplace(lane, n int) {
	for i := 0; i < n; i++ {
		ln := sc.match.Row().Lane(lane)
		if ln == nil || !sc.match.PickUp(game.LaneLoc(lane), ln.Len()-1) {
			return
		}
		sc.match.Drop(game.HandLoc(), sc.match.Rack(tiles.Player).Len())
	}
}

func (sc *ShellController) place(cmd *shellcmd) (*Response, error) {
	if err := sc.playable(); err != nil {
		return nil, err
	}
	if len(cmd.args) < 2 {
		return nil, errors.New("usage: place <lane> <letters>")
	}
	lane, err := laneArg(cmd.args[0])
	if err != nil {
		return nil, err
	}
	word := strings.ToLower(strings.Join(cmd.args[1:], ""))
	placed := 0
	for _, r := range word {
		l, err := tiles.ParseLetter(r)
		if err != nil {
			sc.unplace(lane, placed)
			return nil, err
		}
		idx, ok := sc.match.Rack(tiles.Player).IndexOfLetter(l)
		if !ok {
			sc.unplace(lane, placed)
			return nil, fmt.Errorf("no %s tile on your hand", strings.ToUpper(string(r)))
		}
		if !sc.match.PickUp(game.HandLoc(), idx) {
			sc.unplace(lane, placed)
			return nil, errors.New("tiles cannot move right now")
		}
		if !sc.match.Drop(game.LaneLoc(lane), sc.match.Row().Lane(lane).Len()) {
			sc.match.CancelDrag()
			sc.unplace(lane, placed)
			return nil, fmt.Errorf("lane %d will not take more tiles", lane+1)
		}
		placed++
	}
	return msg(sc.renderMatch()), nil
}

func (sc *ShellController) pickup(cmd *shellcmd) (*Response, error) {
	if err := sc.playable(); err != nil {
		return nil, err
	}
	if len(cmd.args) < 2 {
		return nil, errors.New("usage: pickup <hand|lane> <position>")
	}
	loc, err := locArg(cmd.args[0])
	if err != nil {
		return nil, err
	}
	pos, err := strconv.Atoi(cmd.args[1])
	if err != nil || pos < 1 {
		return nil, errors.New("positions count from 1")
	}
	if !sc.match.PickUp(loc, pos-1) {
		return nil, errors.New("no tile can be lifted from there")
	}
	t, _ := sc.match.HeldTile()
	return msg("holding " + tileGlyph(t.Letter.String(), t.Kind.String()) +
		"; place it with `drop <hand|lane> [position]`"), nil
}

func (sc *ShellController) drop(cmd *shellcmd) (*Response, error) {
	if err := sc.playable(); err != nil {
		return nil, err
	}
	if !sc.match.Dragging() {
		return nil, errors.New("no tile held; `pickup` one first")
	}
	if len(cmd.args) < 1 {
		return nil, errors.New("usage: drop <hand|lane> [position]")
	}
	loc, err := locArg(cmd.args[0])
	if err != nil {
		return nil, err
	}
	var index int
	switch loc.Kind {
	case game.LocHand:
		index = sc.match.Rack(tiles.Player).Len()
	case game.LocLane:
		index = sc.match.Row().Lane(loc.Lane).Len()
	}
	if len(cmd.args) > 1 {
		pos, err := strconv.Atoi(cmd.args[1])
		if err != nil || pos < 1 {
			return nil, errors.New("positions count from 1")
		}
		index = pos - 1
	}
	if !sc.match.Drop(loc, index) {
		return nil, errors.New("that spot will not take the tile")
	}
	return msg(sc.renderMatch()), nil
}

func (sc *ShellController) cancel(cmd *shellcmd) (*Response, error) {
	if sc.match == nil || !sc.match.CancelDrag() {
		return nil, errors.New("no tile held")
	}
	return msg("tile returned"), nil
}

func (sc *ShellController) submit(cmd *shellcmd) (*Response, error) {
	if err := sc.playable(); err != nil {
		return nil, err
	}
	if !sc.match.SubmitTurn() {
		failed := sc.match.FailedLanes()
		if len(failed) == 0 {
			return nil, errors.New("the turn cannot be submitted right now")
		}
		parts := make([]string, 0, len(failed))
		for _, idx := range failed {
			w := sc.match.Row().Lane(idx).Word()
			parts = append(parts, fmt.Sprintf("lane %d: %s does not read as a word",
				idx+1, strings.ToUpper(w)))
		}
		return nil, errors.New(strings.Join(parts, "; "))
	}
	sc.advance()
	return msg(sc.renderMatch()), nil
}

func (sc *ShellController) mulligan(cmd *shellcmd) (*Response, error) {
	if err := sc.playable(); err != nil {
		return nil, err
	}
	if !sc.match.Mulligan() {
		return nil, errors.New("no mulligan available this turn")
	}
	return msg(sc.renderHand()), nil
}

func (sc *ShellController) restart(cmd *shellcmd) (*Response, error) {
	if err := sc.playable(); err != nil {
		return nil, err
	}
	if !sc.match.RestartTurn() {
		return nil, errors.New("the turn cannot be restarted now")
	}
	return msg(sc.renderMatch()), nil
}

func (sc *ShellController) check(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("please provide a word or space-separated list of words to check")
	}
	if err := sc.ensureEngine(); err != nil {
		return nil, err
	}
	playValid := true
	wordsFriendly := []string{}
	for _, w := range cmd.args {
		wordFriendly := strings.Trim(strings.ToUpper(w), ",")
		wordsFriendly = append(wordsFriendly, wordFriendly)
		if !sc.dict.HasWord(wordFriendly, tiles.Player) {
			playValid = false
		}
	}
	validStr := "VALID"
	if !playValid {
		validStr = "INVALID"
	}
	out := fmt.Sprintf("The play (%v) is %v", strings.Join(wordsFriendly, ","), validStr)
	if len(wordsFriendly) == 1 && playValid {
		if rank, ok := sc.dict.Rank(wordsFriendly[0]); ok {
			out += fmt.Sprintf(" (rank %d of %d)", rank+1, sc.dict.Size())
		} else {
			out += " (supplemental)"
		}
	}
	return msg(out), nil
}

func (sc *ShellController) relicList(cmd *shellcmd) (*Response, error) {
	if err := sc.ensureEngine(); err != nil {
		return nil, err
	}
	listOrNone := func(names []string) string {
		if len(names) == 0 {
			return "none"
		}
		return strings.Join(names, ", ")
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "yours: %s\n", listOrNone(sc.relics.ActiveNames(tiles.Player)))
	fmt.Fprintf(&sb, "foe's: %s\n", listOrNone(sc.relics.ActiveNames(tiles.Foe)))
	fmt.Fprintf(&sb, "known: %s", strings.Join(sc.relics.Known(), ", "))
	return msg(sb.String()), nil
}

func (sc *ShellController) grant(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return nil, errors.New("usage: grant <relic>; `relics` lists the known names")
	}
	if err := sc.ensureEngine(); err != nil {
		return nil, err
	}
	name := cmd.args[0]
	if err := sc.match.GrantPlayerRelic(name); err != nil {
		return nil, err
	}
	return msg("granted " + name + "; it stays with you for every match"), nil
}

func (sc *ShellController) enemyList(cmd *shellcmd) (*Response, error) {
	if err := sc.ensureEngine(); err != nil {
		return nil, err
	}
	return msg(renderEnemies(sc.enemies.All())), nil
}

func (sc *ShellController) history(cmd *shellcmd) (*Response, error) {
	if sc.match == nil || sc.match.TurnNumber() == 0 {
		return nil, errNoMatch
	}
	recs := sc.match.History()
	if len(recs) == 0 {
		return msg("no completed turns yet"), nil
	}
	return msg(sc.renderHistory(recs)), nil
}

func (sc *ShellController) autoplay(cmd *shellcmd) (*Response, error) {
	return sc.handleAutoplay(cmd.args, cmd.options)
}

func (sc *ShellController) handleAutoplay(args []string, options CmdOptions) (*Response, error) {
	if len(args) == 1 && args[0] == "stop" {
		if sc.seriesCancel == nil || automatic.IsPlaying.Value() == 0 {
			return nil, errors.New("no autoplay series to stop")
		}
		sc.seriesCancel()
		return msg("stopping the autoplay series; queued matches still finish"), nil
	}
	matches := 50
	if len(args) > 0 {
		m, err := strconv.Atoi(args[0])
		if err != nil || m < 1 {
			return nil, fmt.Errorf("invalid match count %q", args[0])
		}
		matches = m
	}
	workers, err := options.IntDefault("workers", runtime.NumCPU())
	if err != nil {
		return nil, err
	}
	seed, err := options.IntDefault("seed", 0)
	if err != nil {
		return nil, err
	}
	player := options.String("player")
	if player != "" && !gamedata.Difficulty(player).Valid() {
		return nil, fmt.Errorf("unknown player difficulty %q", player)
	}
	sopts := automatic.SeriesOptions{
		Options: automatic.Options{
			EnemyID:        options.String("enemy"),
			Player:         gamedata.Difficulty(player),
			DictionaryPath: sc.config.GetString("dictionary-path"),
		},
		Matches: matches,
		Workers: workers,
		Seed:    int64(seed),
	}
	if sf := options.String("seeds"); sf != "" {
		seeds, err := automatic.LoadSeeds(sf)
		if err != nil {
			return nil, err
		}
		sopts.Seeds = seeds
		matches = len(seeds)
	}
	var logFile *os.File
	if lf := options.String("file"); lf != "" {
		logFile, err = os.Create(lf)
		if err != nil {
			return nil, err
		}
		sopts.LogWriter = logFile
	}
	dbPath := options.String("db")
	if dbPath == "" {
		dbPath = sc.config.GetString("autoplay-db")
	}
	var store *automatic.Store
	if dbPath != "" {
		store, err = automatic.OpenStore(dbPath)
		if err != nil {
			if logFile != nil {
				logFile.Close()
			}
			return nil, err
		}
		sopts.Store = store
	}
	yamlOut := options.String("yaml")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	sc.seriesCancel = cancel
	sc.seriesDone = done

	go func() {
		defer close(done)
		defer cancel()
		if logFile != nil {
			defer logFile.Close()
		}
		if store != nil {
			defer store.Close()
		}
		rep, err := automatic.RunSeries(ctx, sopts)
		if err != nil {
			sc.showError(err)
			return
		}
		if yamlOut != "" {
			f, err := os.Create(yamlOut)
			if err == nil {
				err = rep.WriteYAML(f)
				if cerr := f.Close(); err == nil {
					err = cerr
				}
			}
			if err != nil {
				sc.showError(err)
			}
		}
		sc.showMessage(rep.String())
	}()

	opponent := sopts.EnemyID
	if opponent == "" {
		opponent = "the whole roster"
	}
	return msg(fmt.Sprintf(
		"playing %d matches against %s on %d workers; `autoplay stop` cancels",
		matches, opponent, workers)), nil
}

func (sc *ShellController) autoAnalyze(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return nil, errors.New("please provide a filename to analyze")
	}
	analysis, err := automatic.AnalyzeLogFile(cmd.args[0])
	if err != nil {
		return nil, err
	}
	return msg(analysis), nil
}

func (sc *ShellController) results(cmd *shellcmd) (*Response, error) {
	dbPath := cmd.options.String("db")
	if dbPath == "" {
		dbPath = sc.config.GetString("autoplay-db")
	}
	if dbPath == "" {
		return nil, errors.New("no result store; set autoplay-db or pass -db <file>")
	}
	store, err := automatic.OpenStore(dbPath)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	ctx := context.Background()

	if len(cmd.args) > 0 && cmd.args[0] == "summary" {
		rows, err := store.Summary(ctx)
		if err != nil {
			return nil, err
		}
		if len(rows) == 0 {
			return msg("the store is empty"), nil
		}
		var sb strings.Builder
		fmt.Fprintf(&sb, "%-18s %-8s %8s %8s %10s\n", "enemy", "diff", "matches", "wins", "mean turns")
		for _, r := range rows {
			fmt.Fprintf(&sb, "%-18s %-8s %8d %8d %10.2f\n",
				r.EnemyID, r.Difficulty, r.Matches, r.PlayerWins, r.MeanTurns)
		}
		return msg(strings.TrimRight(sb.String(), "\n")), nil
	}

	enemy := ""
	if len(cmd.args) > 0 {
		enemy = cmd.args[0]
	}
	limit, err := cmd.options.IntDefault("limit", 20)
	if err != nil {
		return nil, err
	}
	rs, err := store.Results(ctx, enemy, limit)
	if err != nil {
		return nil, err
	}
	if len(rs) == 0 {
		return msg("no stored results match"), nil
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%-26s %-18s %-7s %6s %6s %6s\n",
		"match", "enemy", "winner", "turns", "php", "fhp")
	for _, r := range rs {
		fmt.Fprintf(&sb, "%-26s %-18s %-7s %6d %6d %6d\n",
			r.MatchID, r.EnemyID, r.Winner, r.Turns, r.PlayerHealth, r.FoeHealth)
	}
	return msg(strings.TrimRight(sb.String(), "\n")), nil
}

func (sc *ShellController) seeds(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) < 2 {
		return nil, errors.New("usage: seeds <count> <file>")
	}
	n, err := strconv.Atoi(cmd.args[0])
	if err != nil || n < 1 {
		return nil, fmt.Errorf("invalid seed count %q", cmd.args[0])
	}
	seeds, err := automatic.GenerateSeeds(n)
	if err != nil {
		return nil, err
	}
	if err := automatic.SaveSeeds(seeds, cmd.args[1]); err != nil {
		return nil, err
	}
	return msg(fmt.Sprintf("wrote %d seeds to %s; replay them with `autoplay -seeds %s`",
		n, cmd.args[1], cmd.args[1])), nil
}

func (sc *ShellController) set(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		settings := sc.config.SanitizedSettings()
		keys := make([]string, 0, len(settings))
		for k := range settings {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var sb strings.Builder
		for _, k := range keys {
			fmt.Fprintf(&sb, "%-20s %v\n", k, settings[k])
		}
		return msg(strings.TrimRight(sb.String(), "\n")), nil
	}
	opt := cmd.args[0]
	if !sc.config.Has(opt) {
		return nil, fmt.Errorf("no setting named %q", opt)
	}
	if len(cmd.args) == 1 {
		return msg(fmt.Sprintf("%v", sc.config.SanitizedSettings()[opt])), nil
	}
	value := strings.Join(cmd.args[1:], " ")
	sc.config.Set(opt, value)
	return msg("set " + opt + " to " + value), nil
}

func (sc *ShellController) export(cmd *shellcmd) (*Response, error) {
	if sc.match == nil || sc.match.TurnNumber() == 0 {
		return nil, errNoMatch
	}
	out, err := json.MarshalIndent(sc.match.Snapshot(), "", "  ")
	if err != nil {
		return nil, err
	}
	if len(cmd.args) > 0 {
		if err := os.WriteFile(cmd.args[0], append(out, '\n'), 0644); err != nil {
			return nil, err
		}
		return msg("exported the match state to " + cmd.args[0]), nil
	}
	return msg(string(out)), nil
}

func (sc *ShellController) help(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return usage()
	}
	return usageTopic(cmd.args[0])
}
