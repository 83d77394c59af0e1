package shell

import (
	"fmt"
	"strings"

	"github.com/wordfray/wordfray/game"
	"github.com/wordfray/wordfray/gamedata"
	"github.com/wordfray/wordfray/lanes"
	"github.com/wordfray/wordfray/tiles"
)

// tileGlyph is the single console encoding for a tile: carried-over
// tiles print lowercase, powered tiles carry a marker suffix.
func tileGlyph(letter, kind string) string {
	switch kind {
	case "locked":
		return strings.ToLower(letter)
	case "shield":
		return strings.ToUpper(letter) + "/"
	case "heal":
		return strings.ToUpper(letter) + "+"
	case "meteor":
		return strings.ToUpper(letter) + "*"
	}
	return strings.ToUpper(letter)
}

func renderTile(t game.TileView) string {
	return tileGlyph(t.Letter, t.Kind)
}

func renderTiles(ts []game.TileView) string {
	if len(ts) == 0 {
		return "(empty)"
	}
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = renderTile(t)
	}
	return strings.Join(out, " ")
}

func shieldNote(n int) string {
	if n == 0 {
		return ""
	}
	return fmt.Sprintf(" [shield %d]", n)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func renderLane(ln game.LaneView, failed bool) string {
	owner := ln.TemporaryOwner
	if owner == "" || owner == "none" {
		owner = ln.Owner
	}
	tag := "---"
	switch owner {
	case "player":
		tag = "you"
	case "foe":
		tag = "foe"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "lane %d [%s]  ", ln.Index+1, tag)
	if !ln.Visible {
		sb.WriteString("(hidden)")
		return sb.String()
	}
	for _, t := range ln.Tiles {
		fmt.Fprintf(&sb, "%-3s", renderTile(t))
	}
	for i := len(ln.Tiles); i < lanes.LaneSize; i++ {
		fmt.Fprintf(&sb, "%-3s", ".")
	}
	if ln.Word != "" {
		fmt.Fprintf(&sb, " %s", strings.ToUpper(ln.Word))
	}
	if ln.Locked {
		sb.WriteString(" (locked)")
	}
	if failed {
		sb.WriteString(" <- does not read as a word")
	}
	return strings.TrimRight(sb.String(), " ")
}

func renderSnapshot(snap *game.Snapshot) string {
	var sb strings.Builder

	left := fmt.Sprintf("%s  %d/%d hp%s",
		snap.Player.Name, snap.Player.Health, snap.Player.MaxHealth, shieldNote(snap.Player.Shield))
	right := fmt.Sprintf("%s  %d/%d hp%s",
		snap.Foe.Name, snap.Foe.Health, snap.Foe.MaxHealth, shieldNote(snap.Foe.Shield))
	fmt.Fprintf(&sb, "%-40s %s\n", left, right)
	fmt.Fprintf(&sb, "turn %d (%s)  mulligans: %d  restart: %s\n\n",
		snap.Turn, snap.Phase, snap.MulligansLeft, yesNo(snap.RestartAvailable))

	failed := map[int]bool{}
	for _, i := range snap.FailedLanes {
		failed[i] = true
	}
	for _, ln := range snap.Lanes {
		sb.WriteString(renderLane(ln, failed[ln.Index]))
		sb.WriteByte('\n')
	}

	fmt.Fprintf(&sb, "\nhand: %s", renderTiles(snap.Player.Hand))
	if snap.Held != nil {
		fmt.Fprintf(&sb, "   holding: %s", renderTile(*snap.Held))
	}
	fmt.Fprintf(&sb, "\npools: you %d, foe %d   (lowercase carried, / shield, + heal, * meteor)",
		snap.Player.PoolSize, snap.Foe.PoolSize)

	if snap.Winner != "" {
		name := snap.Foe.Name
		if snap.Winner == "player" {
			name = snap.Player.Name
		}
		fmt.Fprintf(&sb, "\n\n*** victory for %s ***", name)
	}
	return sb.String()
}

func (sc *ShellController) renderMatch() string {
	return renderSnapshot(sc.match.Snapshot())
}

func (sc *ShellController) renderHand() string {
	snap := sc.match.Snapshot()
	var sb strings.Builder
	fmt.Fprintf(&sb, "hand: %s", renderTiles(snap.Player.Hand))
	if snap.Held != nil {
		fmt.Fprintf(&sb, "   holding: %s", renderTile(*snap.Held))
	}
	fmt.Fprintf(&sb, "\nmulligans left: %d, restart: %s",
		snap.MulligansLeft, yesNo(snap.RestartAvailable))
	return sb.String()
}

func (sc *ShellController) renderPool(seat tiles.Seat) string {
	pool := sc.match.Pool(seat)
	whose := "your"
	if seat == tiles.Foe {
		whose = "the foe's"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s pool: %d tiles left\n", whose, pool.TilesRemaining())
	counts := pool.LetterCounts()
	for i, c := range counts {
		fmt.Fprintf(&sb, "%c:%-3d ", 'a'+i, c)
		if (i+1)%7 == 0 {
			sb.WriteByte('\n')
		}
	}
	sb.WriteByte('\n')
	powered := pool.PoweredBreakdown()
	parts := []string{}
	for _, k := range []tiles.Kind{tiles.Shield, tiles.Heal, tiles.Meteor} {
		if n := powered[k]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s x%d", k, n))
		}
	}
	if len(parts) > 0 {
		fmt.Fprintf(&sb, "powered: %s\n", strings.Join(parts, ", "))
	}
	fmt.Fprintf(&sb, "victory keepsakes: %d", pool.PersistentCount())
	return sb.String()
}

func (sc *ShellController) renderHistory(recs []game.TurnRecord) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%4s  %-18s %-24s %4s %5s %7s\n",
		"turn", "seat", "words", "dmg", "heal", "shield")
	for _, r := range recs {
		words := strings.ToUpper(strings.Join(r.Words, " "))
		if words == "" {
			words = "-"
		}
		extra := ""
		if r.FreeMulligan {
			extra = " (free mulligan)"
		} else if r.Mulligans > 0 {
			extra = fmt.Sprintf(" (%d mulligan)", r.Mulligans)
		}
		if r.Restarted {
			extra += " (restarted)"
		}
		fmt.Fprintf(&sb, "%4d  %-18s %-24s %4d %5d %7d%s\n",
			r.Turn, sc.seatLabel(r.Seat), words,
			r.DamageDealt[r.Seat], r.Healed, r.ShieldGained, extra)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func renderEnemies(all []gamedata.Enemy) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%-16s %-32s %-7s %4s  %s\n", "id", "name", "diff", "hp", "notes")
	for _, e := range all {
		notes := []string{}
		if len(e.Relics) > 0 {
			notes = append(notes, strings.Join(e.Relics, ", "))
		}
		for _, l := range e.LockedLanes {
			notes = append(notes, fmt.Sprintf("locks lane %d", l+1))
		}
		for _, l := range e.HiddenLanes {
			notes = append(notes, fmt.Sprintf("hides lane %d", l+1))
		}
		note := "-"
		if len(notes) > 0 {
			note = strings.Join(notes, "; ")
		}
		fmt.Fprintf(&sb, "%-16s %-32s %-7s %4d  %s\n",
			e.ID, e.Name+", "+e.Epithet, e.Difficulty, e.Health, note)
	}
	return strings.TrimRight(sb.String(), "\n")
}
