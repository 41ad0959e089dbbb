// Package store persists game sessions in SQLite: the seed the board was
// generated from, the baseline after setup and the full action history.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"dicewars/config"
	"dicewars/engine"
	"dicewars/game"
)

var ErrSessionNotFound = errors.New("session not found")

// Session is one stored game. Replaying History over Baseline on the board
// regenerated from Seed reproduces the final position.
type Session struct {
	ID          string
	Seed        uint64
	Players     int
	Width       int
	Height      int
	DicePerArea int
	Controllers []string
	Winner      int
	Turns       int
	CreatedAt   time.Time
	Baseline    game.Baseline
	History     []game.Entry
}

type sessionRow struct {
	ID          string `db:"id"`
	Seed        int64  `db:"seed"`
	Players     int    `db:"players"`
	Width       int    `db:"width"`
	Height      int    `db:"height"`
	DicePerArea int    `db:"dice_per_area"`
	Areas       int    `db:"areas"`
	Controllers string `db:"controllers"`
	Winner      int    `db:"winner"`
	Turns       int    `db:"turns"`
	CreatedAt   int64  `db:"created_at"` // unix nanoseconds
}

type baselineRow struct {
	Area  int `db:"area"`
	Owner int `db:"owner"`
	Dice  int `db:"dice"`
}

// FromEngine captures the current state of a session.
func FromEngine(e *engine.Engine) *Session {
	controllers := make([]string, len(e.Controllers))
	for i, c := range e.Controllers {
		controllers[i] = c.Name
	}
	s := &Session{
		ID:          e.ID.String(),
		Seed:        e.Seed(),
		Players:     len(e.Controllers),
		DicePerArea: e.DicePerArea(),
		Controllers: controllers,
		Winner:      e.Winner(),
		Turns:       e.Turns(),
		CreatedAt:   time.Now(),
		Baseline:    e.Baseline,
		History:     e.History.Entries(),
	}
	if top := e.Registry.Topology(); top != nil {
		s.Width, s.Height = top.Width(), top.Height()
	}
	return s
}

// DB wraps a SQLite connection for session storage.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		players INTEGER NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		dice_per_area INTEGER NOT NULL DEFAULT 0,
		areas INTEGER NOT NULL,
		controllers TEXT NOT NULL,
		winner INTEGER NOT NULL,
		turns INTEGER NOT NULL,
		created_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS baseline (
		session_id TEXT NOT NULL,
		area INTEGER NOT NULL,
		owner INTEGER NOT NULL,
		dice INTEGER NOT NULL,
		PRIMARY KEY (session_id, area)
	);

	CREATE TABLE IF NOT EXISTS history (
		session_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		from_area INTEGER NOT NULL,
		to_area INTEGER NOT NULL,
		success INTEGER NOT NULL,
		PRIMARY KEY (session_id, seq)
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_created ON sessions(created_at);
	`
	if _, err := db.conn.Exec(schema); err != nil {
		return err
	}

	// databases created before dice_per_area was stored
	var columns int
	err := db.conn.Get(&columns, "SELECT COUNT(*) FROM pragma_table_info('sessions') WHERE name = 'dice_per_area'")
	if err != nil {
		return err
	}
	if columns == 0 {
		_, err = db.conn.Exec("ALTER TABLE sessions ADD COLUMN dice_per_area INTEGER NOT NULL DEFAULT 0")
	}
	return err
}

// SaveSession writes a session (full replace of any earlier save).
func (db *DB) SaveSession(s *Session) error {
	if len(s.Baseline.Owners) != len(s.Baseline.Dice) {
		return fmt.Errorf("session %s: baseline owners and dice differ in length", s.ID)
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"baseline", "history"} {
		if _, err := tx.Exec("DELETE FROM "+table+" WHERE session_id = ?", s.ID); err != nil {
			return err
		}
	}

	_, err = tx.Exec(`INSERT OR REPLACE INTO sessions
		(id, seed, players, width, height, dice_per_area, areas, controllers, winner, turns, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, int64(s.Seed), s.Players, s.Width, s.Height, s.DicePerArea, len(s.Baseline.Owners),
		strings.Join(s.Controllers, ","), s.Winner, s.Turns, s.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("insert session %s: %w", s.ID, err)
	}

	for area := range s.Baseline.Owners {
		_, err := tx.Exec("INSERT INTO baseline (session_id, area, owner, dice) VALUES (?, ?, ?, ?)",
			s.ID, area, s.Baseline.Owners[area], s.Baseline.Dice[area])
		if err != nil {
			return fmt.Errorf("insert baseline %d: %w", area, err)
		}
	}

	stmt, err := tx.Preparex(`INSERT INTO history
		(session_id, seq, from_area, to_area, success) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for seq, entry := range s.History {
		if _, err := stmt.Exec(s.ID, seq, entry.From, entry.To, entry.Success); err != nil {
			return fmt.Errorf("insert history %d: %w", seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	log.Debug().Str("session", s.ID).Int("entries", len(s.History)).Msg("session saved")
	return nil
}

// LoadSession reads a session with its baseline and history.
func (db *DB) LoadSession(id string) (*Session, error) {
	var row sessionRow
	err := db.conn.Get(&row, "SELECT * FROM sessions WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	s := row.session()

	var baseline []baselineRow
	err = db.conn.Select(&baseline,
		"SELECT area, owner, dice FROM baseline WHERE session_id = ? ORDER BY area", id)
	if err != nil {
		return nil, fmt.Errorf("load baseline: %w", err)
	}
	s.Baseline = game.Baseline{
		Owners: make([]int, row.Areas),
		Dice:   make([]int, row.Areas),
	}
	for _, b := range baseline {
		if b.Area < 0 || b.Area >= row.Areas {
			return nil, fmt.Errorf("baseline area %d out of range", b.Area)
		}
		s.Baseline.Owners[b.Area] = b.Owner
		s.Baseline.Dice[b.Area] = b.Dice
	}

	err = db.conn.Select(&s.History,
		"SELECT from_area, to_area, success FROM history WHERE session_id = ? ORDER BY seq", id)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	return s, nil
}

// ListSessions returns the most recent sessions without baseline or
// history.
func (db *DB) ListSessions(limit int) ([]Session, error) {
	var rows []sessionRow
	err := db.conn.Select(&rows,
		"SELECT * FROM sessions ORDER BY created_at DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	sessions := make([]Session, len(rows))
	for i, row := range rows {
		sessions[i] = *row.session()
	}
	return sessions, nil
}

func (row sessionRow) session() *Session {
	var controllers []string
	if row.Controllers != "" {
		controllers = strings.Split(row.Controllers, ",")
	}
	return &Session{
		ID:          row.ID,
		Seed:        uint64(row.Seed),
		Players:     row.Players,
		Width:       row.Width,
		Height:      row.Height,
		DicePerArea: row.DicePerArea,
		Controllers: controllers,
		Winner:      row.Winner,
		Turns:       row.Turns,
		CreatedAt:   time.Unix(0, row.CreatedAt),
	}
}

// Config returns a copy of base set up to regenerate the session's board.
// Every seat is played by the default provider.
func (s *Session) Config(base *config.Config) *config.Config {
	cfg := *base
	cfg.Board.Width, cfg.Board.Height = s.Width, s.Height
	cfg.Game.Players = s.Players
	if s.DicePerArea > 0 {
		cfg.Game.DicePerArea = s.DicePerArea
	}
	cfg.Game.Controllers = nil
	return &cfg
}
