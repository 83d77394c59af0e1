package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/wordfray/wordfray/bot"
	"github.com/wordfray/wordfray/config"
	"github.com/wordfray/wordfray/game"
	"github.com/wordfray/wordfray/gamedata"
	"github.com/wordfray/wordfray/lexicon"
	"github.com/wordfray/wordfray/relic"
	"github.com/wordfray/wordfray/tiles"
)

var (
	errNoData            = errors.New("no data in this line")
	errWrongOptionSyntax = errors.New("wrong option syntax")
	errQuit              = errors.New("sending quit signal")
	errNoMatch           = errors.New("no match in progress; start one with `new <enemy>`")
	errMatchOver         = errors.New("the match is over; start another with `new <enemy>`")
)

// ShellController drives the interactive console. One controller owns
// at most one match and reuses it across `new` commands so the player
// pool keeps its earned powered tiles.
type ShellController struct {
	l   *readline.Instance
	out io.Writer

	config   *config.Config
	execPath string

	dict    *lexicon.Dictionary
	relics  *relic.Registry
	enemies *gamedata.Registry

	match *game.Match
	foe   *bot.Strategy

	seriesCancel context.CancelFunc
	seriesDone   chan struct{}
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func NewShellController(cfg *config.Config, execPath string) *ShellController {
	sc := &ShellController{config: cfg, execPath: execPath}
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mwordfray>\033[0m ",
		HistoryFile:     filepath.Join(os.TempDir(), "readline-wordfray.tmp"),
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",
		AutoComplete:    NewShellCompleter(sc),

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	sc.l = l
	sc.out = l.Stderr()
	return sc
}

func (sc *ShellController) showMessage(msg string) {
	showMessage(msg, sc.out)
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

// ensureEngine lazily builds the dictionary, relic registry, enemy
// roster, and the long-lived match. The dictionary load is deferred to
// here so a `wordfray -help` style invocation never pays for it.
func (sc *ShellController) ensureEngine() error {
	if sc.match != nil {
		return nil
	}
	var (
		dict *lexicon.Dictionary
		err  error
	)
	if path := sc.config.GetString("dictionary-path"); path != "" {
		dict, err = lexicon.LoadDictionary(path)
		if err != nil {
			return err
		}
	} else {
		dict = lexicon.NewDictionary()
	}
	enemies, err := gamedata.Load()
	if err != nil {
		return err
	}
	sc.dict = dict
	sc.relics = relic.NewRegistry()
	sc.enemies = enemies

	m := game.NewMatch(sc.dict, sc.relics, sc.enemies, game.Options{
		PlayerName:   sc.config.GetString("player-name"),
		PlayerHealth: sc.config.GetInt("max-health"),
		Mulligans:    sc.config.GetInt("mulligans"),
		Seed:         sc.config.GetInt64("seed"),
	})
	foe := bot.New(tiles.Foe)
	foe.SetDelayScale(sc.config.GetFloat64("bot-delay-scale"))
	m.SetFoe(foe)
	m.Subscribe(sc.printEvent)
	sc.match, sc.foe = m, foe
	return nil
}

// playable guards the commands that need a live, unfinished match.
func (sc *ShellController) playable() error {
	if sc.match == nil || sc.match.TurnNumber() == 0 {
		return errNoMatch
	}
	if sc.match.Over() {
		return errMatchOver
	}
	return nil
}

// advance pumps the state machine until it wants player input again.
// It runs on the wall clock so the foe's think and move delays play
// out at the configured bot-delay-scale.
func (sc *ShellController) advance() {
	if sc.match == nil {
		return
	}
	last := time.Now()
	deadline := last.Add(2 * time.Minute)
	for sc.match.Phase() != game.PhasePlaying && !sc.match.Over() {
		now := time.Now()
		dt := now.Sub(last)
		if dt <= 0 {
			dt = time.Millisecond
		}
		sc.match.Update(dt)
		last = now
		if now.After(deadline) {
			log.Error().Str("phase", sc.match.Phase().String()).
				Msg("state-machine-wedged")
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// printEvent narrates engine events as they fire. Per-tile pickup and
// placement events are too chatty for a line console and stay silent.
func (sc *ShellController) printEvent(ev game.Event) {
	name := sc.seatLabel(ev.Seat)
	switch ev.Type {
	case game.WordAccepted:
		sc.showMessage("  " + name + " plays " + strings.ToUpper(ev.Word) +
			" on lane " + strconv.Itoa(ev.Lane+1))
	case game.DamageDealt:
		sc.showMessage("  " + name + " deals " + strconv.Itoa(ev.Amount) + " damage")
	case game.Healed:
		sc.showMessage("  " + name + " heals " + strconv.Itoa(ev.Amount))
	case game.ShieldGained:
		sc.showMessage("  " + name + " gains a " + strconv.Itoa(ev.Amount) + " point shield")
	case game.MulliganUsed:
		if ev.Free {
			sc.showMessage("  " + name + " takes a free mulligan; no playable tiles")
		}
	case game.MatchWon:
		sc.showMessage("*** victory for " + name + " ***")
	case game.MatchLost:
		sc.showMessage("*** " + name + " prevails ***")
	}
}

func (sc *ShellController) seatLabel(s tiles.Seat) string {
	switch s {
	case tiles.Player:
		if sc.match != nil {
			return sc.match.PlayerName()
		}
		return "you"
	case tiles.Foe:
		if sc.match != nil && sc.match.Enemy() != nil {
			return sc.match.Enemy().Name
		}
		return "the foe"
	}
	return "nobody"
}

type shellcmd struct {
	cmd     string
	args    []string
	options CmdOptions
}

// extractFields splits a raw line into the command, its positional
// arguments, and -key value options. Quoting follows shell rules.
func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := strings.ToLower(fields[0])
	var args []string
	options := CmdOptions{}
	lastWasOption := false
	lastOption := ""
	for _, field := range fields[1:] {
		if lastWasOption {
			options[lastOption] = append(options[lastOption], field)
			lastWasOption = false
			continue
		}
		if strings.HasPrefix(field, "-") {
			lastWasOption = true
			lastOption = strings.TrimPrefix(field, "-")
			continue
		}
		args = append(args, field)
	}
	if lastWasOption {
		return nil, errWrongOptionSyntax
	}
	return &shellcmd{cmd: cmd, args: args, options: options}, nil
}

func (sc *ShellController) standardModeSwitch(line string, sig chan os.Signal) (*Response, error) {
	cmd, err := extractFields(line)
	if err != nil {
		return nil, err
	}
	switch cmd.cmd {
	case "new":
		return sc.newMatch(cmd)
	case "show", "s":
		return sc.show(cmd)
	case "hand":
		return sc.hand(cmd)
	case "pool":
		return sc.pool(cmd)
	case "place":
		return sc.place(cmd)
	case "pickup":
		return sc.pickup(cmd)
	case "drop":
		return sc.drop(cmd)
	case "cancel":
		return sc.cancel(cmd)
	case "submit", "done":
		return sc.submit(cmd)
	case "mulligan":
		return sc.mulligan(cmd)
	case "restart":
		return sc.restart(cmd)
	case "check":
		return sc.check(cmd)
	case "relics":
		return sc.relicList(cmd)
	case "grant":
		return sc.grant(cmd)
	case "enemies":
		return sc.enemyList(cmd)
	case "history":
		return sc.history(cmd)
	case "autoplay":
		return sc.autoplay(cmd)
	case "autoanalyze":
		return sc.autoAnalyze(cmd)
	case "results":
		return sc.results(cmd)
	case "seeds":
		return sc.seeds(cmd)
	case "set":
		return sc.set(cmd)
	case "export":
		return sc.export(cmd)
	case "script":
		return sc.script(cmd)
	case "help":
		return sc.help(cmd)
	case "exit", "bye", "quit":
		sig <- syscall.SIGINT
		return nil, errQuit
	default:
		return nil, errors.New("command " + strconv.Quote(cmd.cmd) + " not recognized; try `help`")
	}
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			} else {
				continue
			}
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)

		resp, err := sc.standardModeSwitch(line, sig)
		if err == errNoData {
			continue
		}
		if err == errQuit {
			break
		}
		if err != nil {
			sc.showError(err)
			continue
		}
		if resp != nil && resp.message != "" {
			sc.showMessage(resp.message)
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}

// Execute runs one command line non-interactively and returns when it
// is done, blocking on any series it kicked off.
func (sc *ShellController) Execute(sig chan os.Signal, line string) {
	defer sc.l.Close()

	resp, err := sc.standardModeSwitch(strings.TrimSpace(line), sig)
	if err != nil && err != errNoData && err != errQuit {
		sc.showError(err)
		return
	}
	if resp != nil && resp.message != "" {
		sc.showMessage(resp.message)
	}
	if sc.seriesDone != nil {
		<-sc.seriesDone
	}
}

// Cleanup cancels any background series and waits for its workers to
// drain before the process exits.
func (sc *ShellController) Cleanup() {
	if sc.seriesCancel != nil {
		sc.seriesCancel()
	}
	if sc.seriesDone != nil {
		<-sc.seriesDone
	}
}
