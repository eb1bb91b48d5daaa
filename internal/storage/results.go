package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Result is one finished game.
type Result struct {
	ID         string // UUID, assigned by SaveResult when empty
	Session    string // SSH session ID, empty for local play
	Difficulty string
	Won        bool
	Seconds    int
	Flags      int
	Numbers    int
	Empties    int
	CreatedAt  time.Time
}

// Stats aggregates the results of one difficulty.
type Stats struct {
	Difficulty  string
	Played      int
	Won         int
	BestSeconds int // fastest win, 0 without wins
	AvgSeconds  float64
}

// Lost returns the number of games not won.
func (s Stats) Lost() int {
	return s.Played - s.Won
}

// WinRate returns the fraction of won games, 0 when nothing was played.
func (s Stats) WinRate() float64 {
	if s.Played == 0 {
		return 0
	}
	return float64(s.Won) / float64(s.Played)
}

const resultColumns = `id, session, difficulty, won, seconds, flags, numbers, empties, created_at`

// SaveResult records a finished game and returns it with ID and CreatedAt filled in.
func (s *Store) SaveResult(r Result) (Result, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = s.now().UTC().Truncate(time.Second)
	}

	_, err := s.db.Exec(
		`INSERT INTO results (`+resultColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Session, r.Difficulty, r.Won, r.Seconds,
		r.Flags, r.Numbers, r.Empties, r.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return Result{}, fmt.Errorf("storage: cannot save result: %w", err)
	}
	return r, nil
}

// RecentResults returns the latest results, newest first.
// An empty difficulty matches every difficulty.
func (s *Store) RecentResults(difficulty string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT `+resultColumns+`
		 FROM results
		 WHERE ? = '' OR difficulty = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		difficulty, difficulty, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	return scanResults(rows)
}

// BestTimes returns the fastest won games of a difficulty.
func (s *Store) BestTimes(difficulty string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(
		`SELECT `+resultColumns+`
		 FROM results
		 WHERE difficulty = ? AND won = 1
		 ORDER BY seconds ASC, created_at ASC, rowid ASC
		 LIMIT ?`,
		difficulty, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query best times: %w", err)
	}
	return scanResults(rows)
}

// DifficultyStats aggregates all results of one difficulty.
// A difficulty without results yields zero counts.
func (s *Store) DifficultyStats(difficulty string) (Stats, error) {
	st := Stats{Difficulty: difficulty}
	var best sql.NullInt64
	var avg sql.NullFloat64

	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(won), 0),
		        MIN(CASE WHEN won = 1 THEN seconds END),
		        AVG(seconds)
		 FROM results
		 WHERE difficulty = ?`,
		difficulty,
	).Scan(&st.Played, &st.Won, &best, &avg)
	if err != nil {
		return Stats{}, fmt.Errorf("storage: cannot query stats: %w", err)
	}

	if best.Valid {
		st.BestSeconds = int(best.Int64)
	}
	if avg.Valid {
		st.AvgSeconds = avg.Float64
	}
	return st, nil
}

// AllStats aggregates results per difficulty, ordered by difficulty name.
func (s *Store) AllStats() ([]Stats, error) {
	rows, err := s.db.Query(`SELECT DISTINCT difficulty FROM results ORDER BY difficulty`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query difficulties: %w", err)
	}

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	rows.Close()

	stats := make([]Stats, 0, len(names))
	for _, name := range names {
		st, err := s.DifficultyStats(name)
		if err != nil {
			return nil, err
		}
		stats = append(stats, st)
	}
	return stats, nil
}

// ClearResults deletes the results of one difficulty, or all results when
// difficulty is empty. Returns the number of deleted rows.
func (s *Store) ClearResults(difficulty string) (int64, error) {
	res, err := s.db.Exec(`DELETE FROM results WHERE ? = '' OR difficulty = ?`, difficulty, difficulty)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot clear results: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count deleted rows: %w", err)
	}
	return n, nil
}

func scanResults(rows *sql.Rows) ([]Result, error) {
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		var createdAt any
		if err := rows.Scan(
			&r.ID, &r.Session, &r.Difficulty, &r.Won, &r.Seconds,
			&r.Flags, &r.Numbers, &r.Empties, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return results, nil
}
