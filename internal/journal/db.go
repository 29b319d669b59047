// Package journal keeps a queryable SQLite record of a game session: every
// status event and every shortage eviction, tagged with a session id.
package journal

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/upkeep/internal/economy"
	"github.com/talgya/upkeep/internal/engine"
	"github.com/talgya/upkeep/internal/world"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// DB wraps a SQLite connection scoped to one session.
type DB struct {
	conn    *sqlx.DB
	session string
}

var _ engine.Recorder = (*DB)(nil)

// EvictionRow is a stored eviction.
type EvictionRow struct {
	Turn     int    `db:"turn"`
	Player   string `db:"player"`
	Target   string `db:"target"`
	Kind     string `db:"kind"`
	Q        int    `db:"q"`
	R        int    `db:"r"`
	Resource string `db:"resource"`
}

// Coord returns the evicted cell.
func (e EvictionRow) Coord() world.HexCoord {
	return world.HexCoord{Q: e.Q, R: e.R}
}

// Open opens or creates a journal at path and starts a new session in it.
func Open(path string) (*DB, error) {
	dsn := path
	if path != MemoryPath {
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	conn, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// Each connection to :memory: is its own database.
	conn.SetMaxOpenConns(1)

	db := &DB{conn: conn, session: uuid.NewString()}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if _, err := conn.Exec("INSERT INTO sessions (id) VALUES (?)", db.session); err != nil {
		conn.Close()
		return nil, fmt.Errorf("start session: %w", err)
	}

	slog.Debug("journal opened", "path", path, "session", db.session)
	return db, nil
}

// Session returns the id stamped on every row this DB writes.
func (db *DB) Session() string {
	return db.session
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		started_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session TEXT NOT NULL,
		turn INTEGER NOT NULL,
		player INTEGER NOT NULL,
		description TEXT NOT NULL,
		category TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS evictions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session TEXT NOT NULL,
		turn INTEGER NOT NULL,
		player TEXT NOT NULL,
		target TEXT NOT NULL,
		kind TEXT NOT NULL,
		q INTEGER NOT NULL,
		r INTEGER NOT NULL,
		resource TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_session ON events(session, turn);
	CREATE INDEX IF NOT EXISTS idx_evictions_session ON evictions(session, player);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// RecordEvent stores one event.
func (db *DB) RecordEvent(e engine.Event) error {
	_, err := db.conn.Exec(
		"INSERT INTO events (session, turn, player, description, category) VALUES (?, ?, ?, ?, ?)",
		db.session, e.Turn, int(e.Player), e.Description, e.Category,
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// RecordEviction stores one eviction that happened at the end of turn.
func (db *DB) RecordEviction(turn int, e economy.Eviction) error {
	_, err := db.conn.Exec(
		`INSERT INTO evictions (session, turn, player, target, kind, q, r, resource)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		db.session, turn, e.Player.String(), e.Target.String(), e.Kind,
		e.Coord.Q, e.Coord.R, e.Resource.String(),
	)
	if err != nil {
		return fmt.Errorf("insert eviction: %w", err)
	}
	return nil
}

// RecentEvents returns the most recent N events of this session, newest first.
func (db *DB) RecentEvents(limit int) ([]engine.Event, error) {
	var rows []struct {
		Turn        int    `db:"turn"`
		Player      int    `db:"player"`
		Description string `db:"description"`
		Category    string `db:"category"`
	}
	err := db.conn.Select(&rows,
		"SELECT turn, player, description, category FROM events WHERE session = ? ORDER BY id DESC LIMIT ?",
		db.session, limit,
	)
	if err != nil {
		return nil, err
	}
	events := make([]engine.Event, len(rows))
	for i, r := range rows {
		events[i] = engine.Event{
			Turn:        r.Turn,
			Player:      world.Player(r.Player),
			Description: r.Description,
			Category:    r.Category,
		}
	}
	return events, nil
}

// EvictionsFor returns p's evictions in this session in the order they happened.
func (db *DB) EvictionsFor(p world.Player) ([]EvictionRow, error) {
	var rows []EvictionRow
	err := db.conn.Select(&rows,
		`SELECT turn, player, target, kind, q, r, resource FROM evictions
		WHERE session = ? AND player = ? ORDER BY id`,
		db.session, p.String(),
	)
	return rows, err
}

// CountByCategory tallies this session's events per category.
func (db *DB) CountByCategory() (map[string]int, error) {
	var rows []struct {
		Category string `db:"category"`
		N        int    `db:"n"`
	}
	err := db.conn.Select(&rows,
		"SELECT category, COUNT(*) AS n FROM events WHERE session = ? GROUP BY category",
		db.session,
	)
	if err != nil {
		return nil, err
	}
	out := make(map[string]int, len(rows))
	for _, r := range rows {
		out[r.Category] = r.N
	}
	return out, nil
}
