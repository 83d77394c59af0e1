package game

// Phase is the match state machine's current state. The cycle is
// PhasePlaying (or PhaseFoeTurn) -> PhaseEndTurn -> PhaseCombat ->
// PhasePostCombat, which either ends the match or hands the turn to the
// other seat.
type Phase uint8

const (
	PhasePlaying Phase = iota
	PhaseEndTurn
	PhaseCombat
	PhasePostCombat
	PhaseFoeTurn
	PhaseOver
)

func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseEndTurn:
		return "end_turn"
	case PhaseCombat:
		return "combat"
	case PhasePostCombat:
		return "post_combat"
	case PhaseFoeTurn:
		return "foe_turn"
	case PhaseOver:
		return "game_over"
	}
	return "unknown"
}
