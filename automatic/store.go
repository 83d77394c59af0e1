package automatic

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/wordfray/wordfray/gamedata"
	"github.com/wordfray/wordfray/tiles"
)

const resultsSchema = `
CREATE TABLE IF NOT EXISTS results (
	match_id TEXT PRIMARY KEY,
	shard INTEGER NOT NULL,
	enemy_id TEXT NOT NULL,
	difficulty TEXT NOT NULL,
	winner TEXT NOT NULL,
	turns INTEGER NOT NULL,
	player_damage INTEGER NOT NULL,
	foe_damage INTEGER NOT NULL,
	player_health INTEGER NOT NULL,
	foe_health INTEGER NOT NULL,
	player_longest TEXT NOT NULL,
	foe_longest TEXT NOT NULL,
	seed INTEGER NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_results_enemy ON results(enemy_id);
`

// Store persists series results in a sqlite file.
type Store struct {
	db *sql.DB
}

// OpenStore opens, and creates if missing, the results database. The
// schema is applied on every open.
func OpenStore(dsn string) (*Store, error) {
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(resultsSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	log.Debug().Str("dsn", dsn).Msg("opened-result-store")
	return &Store{db: db}, nil
}

// Save upserts one result, keyed on the match id.
func (s *Store) Save(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO results(match_id, shard, enemy_id, difficulty,
			winner, turns, player_damage, foe_damage, player_health, foe_health,
			player_longest, foe_longest, seed)
		VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		r.MatchID, r.Shard, r.EnemyID, string(r.Difficulty), r.Winner.String(),
		r.Turns, r.PlayerDamage, r.FoeDamage, r.PlayerHealth, r.FoeHealth,
		r.PlayerLongest, r.FoeLongest, r.Seed)
	return err
}

// Results returns stored results, newest first. An empty enemy id
// returns every enemy; a non-positive limit defaults to 100 rows.
func (s *Store) Results(ctx context.Context, enemyID string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 100
	}
	q := `SELECT match_id, shard, enemy_id, difficulty, winner, turns,
			player_damage, foe_damage, player_health, foe_health,
			player_longest, foe_longest, seed
		FROM results`
	args := []any{}
	if enemyID != "" {
		q += ` WHERE enemy_id=?`
		args = append(args, enemyID)
	}
	q += ` ORDER BY created_at DESC, match_id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Result
	for rows.Next() {
		var r Result
		var diff, winner string
		if err := rows.Scan(&r.MatchID, &r.Shard, &r.EnemyID, &diff, &winner,
			&r.Turns, &r.PlayerDamage, &r.FoeDamage, &r.PlayerHealth,
			&r.FoeHealth, &r.PlayerLongest, &r.FoeLongest, &r.Seed); err != nil {
			return nil, err
		}
		r.Difficulty = gamedata.Difficulty(diff)
		r.Winner = parseSeat(winner)
		out = append(out, r)
	}
	return out, rows.Err()
}

// SummaryRow is one enemy's aggregate across everything stored.
type SummaryRow struct {
	EnemyID    string
	Difficulty string
	Matches    int
	PlayerWins int
	MeanTurns  float64
}

// Summary aggregates stored results per enemy. Difficulty tuning passes
// read this to spot enemies that win too often or too rarely.
func (s *Store) Summary(ctx context.Context) ([]SummaryRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT enemy_id, difficulty, COUNT(1),
			SUM(CASE WHEN winner='player' THEN 1 ELSE 0 END),
			AVG(turns)
		FROM results
		GROUP BY enemy_id, difficulty
		ORDER BY enemy_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SummaryRow
	for rows.Next() {
		var row SummaryRow
		if err := rows.Scan(&row.EnemyID, &row.Difficulty, &row.Matches,
			&row.PlayerWins, &row.MeanTurns); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func parseSeat(s string) tiles.Seat {
	switch s {
	case "player":
		return tiles.Player
	case "foe":
		return tiles.Foe
	}
	return tiles.NoSeat
}
