package game

import "github.com/wordfray/wordfray/tiles"

// TileView is one tile as the render layer sees it.
type TileView struct {
	Letter string `json:"letter"`
	Kind   string `json:"kind"`
}

// LaneView is one lane's render state.
type LaneView struct {
	Index          int        `json:"index"`
	Tiles          []TileView `json:"tiles"`
	Word           string     `json:"word"`
	Owner          string     `json:"owner"`
	TemporaryOwner string     `json:"temporaryOwner"`
	Locked         bool       `json:"locked"`
	Visible        bool       `json:"visible"`
	NewTiles       int        `json:"newTiles"`
}

// SeatView is one side's render state.
type SeatView struct {
	Name      string     `json:"name"`
	Health    int        `json:"health"`
	MaxHealth int        `json:"maxHealth"`
	Shield    int        `json:"shield"`
	Hand      []TileView `json:"hand"`
	PoolSize  int        `json:"poolSize"`
	Relics    []string   `json:"relics"`
}

// Snapshot is the read-only render feed: everything a display or script
// layer needs for one frame, decoupled from engine internals. It
// marshals cleanly to JSON.
type Snapshot struct {
	MatchID          string     `json:"matchId"`
	Phase            string     `json:"phase"`
	Turn             int        `json:"turn"`
	Active           string     `json:"active"`
	Player           SeatView   `json:"player"`
	Foe              SeatView   `json:"foe"`
	Lanes            []LaneView `json:"lanes"`
	FailedLanes      []int      `json:"failedLanes,omitempty"`
	Held             *TileView  `json:"held,omitempty"`
	MulligansLeft    int        `json:"mulligansLeft"`
	RestartAvailable bool       `json:"restartAvailable"`
	Winner           string     `json:"winner,omitempty"`
}

func tileView(t tiles.Tile) TileView {
	return TileView{Letter: t.Letter.String(), Kind: t.Kind.String()}
}

func tileViews(ts []tiles.Tile) []TileView {
	out := make([]TileView, len(ts))
	for i, t := range ts {
		out[i] = tileView(t)
	}
	return out
}

func (m *Match) seatView(s tiles.Seat) SeatView {
	name := m.opts.PlayerName
	if s == tiles.Foe {
		name = "nobody"
		if m.enemy != nil {
			name = m.enemy.Name
		}
	}
	return SeatView{
		Name:      name,
		Health:    m.health[s],
		MaxHealth: m.maxHealth[s],
		Shield:    m.shield[s],
		Hand:      tileViews(m.racks[s].Tiles()),
		PoolSize:  m.pools[s].TilesRemaining(),
		Relics:    m.relics.ActiveNames(s),
	}
}

// Snapshot captures the current frame.
func (m *Match) Snapshot() *Snapshot {
	snap := &Snapshot{
		MatchID:          m.id,
		Phase:            m.phase.String(),
		Turn:             m.turnNumber,
		Active:           m.active.String(),
		Player:           m.seatView(tiles.Player),
		Foe:              m.seatView(tiles.Foe),
		Lanes:            make([]LaneView, 0, len(m.row.Lanes())),
		FailedLanes:      m.FailedLanes(),
		MulligansLeft:    m.mulligansLeft,
		RestartAvailable: m.restartAvailable,
	}
	if len(snap.FailedLanes) == 0 {
		snap.FailedLanes = nil
	}
	for i, ln := range m.row.Lanes() {
		snap.Lanes = append(snap.Lanes, LaneView{
			Index:          i,
			Tiles:          tileViews(ln.Tiles()),
			Word:           ln.Word(),
			Owner:          ln.Owner.String(),
			TemporaryOwner: ln.TemporaryOwner.String(),
			Locked:         ln.Locked,
			Visible:        ln.Visible,
			NewTiles:       ln.NewTileCount(),
		})
	}
	if t, ok := m.HeldTile(); ok {
		tv := tileView(t)
		snap.Held = &tv
	}
	if m.winner != tiles.NoSeat {
		snap.Winner = m.winner.String()
	}
	return snap
}
