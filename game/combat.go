package game

import (
	"math"

	"github.com/rs/zerolog/log"

	"github.com/wordfray/wordfray/lanes"
	"github.com/wordfray/wordfray/tiles"
)

// processCombat resolves one damage pass. Every owned, non-empty lane
// strikes for its owner; there is no randomness here, so the outcome is
// a pure function of lane contents, ownership, and the active relic
// sets.
func (m *Match) processCombat() {
	var dealt [3]int
	for _, ln := range m.row.Lanes() {
		if ln.Owner == tiles.NoSeat || ln.Empty() {
			continue
		}
		dealt[ln.Owner] += m.laneDamage(ln.Owner, ln)
	}

	for _, atk := range []tiles.Seat{tiles.Player, tiles.Foe} {
		total := dealt[atk]
		if total == 0 {
			continue
		}
		def := atk.Opponent()
		applied := total
		if !m.relics.Unblockable(atk) && m.shield[def] > 0 {
			absorbed := m.shield[def]
			if absorbed > applied {
				absorbed = applied
			}
			m.shield[def] -= absorbed
			applied -= absorbed
		}
		m.health[def] -= applied
		m.totalDamage[atk] += total
		m.turnLog.DamageDealt[atk] = total
		m.emit(Event{Type: DamageDealt, Seat: atk, Amount: total})
		log.Debug().Str("attacker", atk.String()).Int("damage", total).
			Int("applied", applied).Msg("combat-strike")
	}
}

// laneDamage scores one lane for its owner. The base is the tile count,
// scaled by the owner's multipliers and bonuses and the defender's
// vulnerability, floored. A percent-damage relic replaces the formula
// with a flat fraction of the defender's max health.
func (m *Match) laneDamage(owner tiles.Seat, ln *lanes.Lane) int {
	defender := owner.Opponent()
	word := ln.Word()
	if pct := m.relics.PercentDamage(owner); pct > 0 {
		return int(math.Floor(float64(m.maxHealth[defender]) * pct / 100))
	}
	raw := float64(ln.Len())*m.relics.ScoreMult(owner, word) + float64(m.relics.ScoreBonus(owner, word))
	dmg := int(math.Floor(raw * m.relics.Vulnerability(defender, word)))
	if dmg < 0 {
		return 0
	}
	return dmg
}

// resolvePostCombat closes the turn's books and either ends the match or
// hands the turn over. When both sides hit zero in the same pass the
// acting seat loses; its own submit triggered the fatal exchange.
func (m *Match) resolvePostCombat() {
	m.turnLog.HealthAfter = m.health
	m.history = append(m.history, m.turnLog)

	playerDead := m.health[tiles.Player] <= 0
	foeDead := m.health[tiles.Foe] <= 0
	if playerDead || foeDead {
		loser := m.active
		if !playerDead || !foeDead {
			loser = tiles.Foe
			if playerDead {
				loser = tiles.Player
			}
		}
		m.finishMatch(loser.Opponent())
		return
	}

	if m.active == tiles.Player {
		m.beginFoeTurn()
	} else {
		m.beginTurn(tiles.Player)
	}
}

func (m *Match) finishMatch(winner tiles.Seat) {
	m.winner = winner
	m.phase = PhaseOver

	if winner == tiles.Player && m.enemy != nil {
		for _, reward := range m.enemy.Rewards {
			t, err := reward.Tile()
			if err != nil {
				continue
			}
			m.pools[tiles.Player].AddPersistent(t)
			log.Info().Str("letter", t.Letter.String()).
				Str("kind", t.Kind.String()).Msg("earned-powered-tile")
		}
		m.emit(Event{Type: MatchWon, Seat: winner})
	} else {
		m.emit(Event{Type: MatchLost, Seat: winner})
	}
	log.Info().Str("match", m.id).Str("winner", winner.String()).
		Int("turns", m.turnNumber).Msg("match-over")
}
