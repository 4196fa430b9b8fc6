package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/glebarez/sqlite"

	"courtside/internal/api"
	"courtside/internal/config"
)

// DB is a read-through cache for game recaps. Recaps of finished games are
// immutable server-side, so rows are valid until the TTL elapses; expired
// rows are dropped lazily on lookup.
type DB struct {
	SQL  *sql.DB
	Path string
	ttl  time.Duration
}

func Open(cfg *config.Config) (*DB, error) {
	if cfg == nil {
		return nil, errors.New("nil config")
	}
	if cfg.Cache.DataRoot == "" {
		return nil, errors.New("cache.data_root required")
	}
	if err := os.MkdirAll(cfg.Cache.DataRoot, 0o755); err != nil {
		return nil, err
	}
	path := filepath.Join(cfg.Cache.DataRoot, "recaps.db")
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout=5000&_pragma=journal_mode(WAL)", path)
	sqldb, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := initSchema(sqldb); err != nil {
		return nil, err
	}
	ttl := time.Duration(cfg.Cache.RecapTTLHours) * time.Hour
	return &DB{SQL: sqldb, Path: path, ttl: ttl}, nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS recaps (
		game_id TEXT PRIMARY KEY,
		summary TEXT NOT NULL,
		generated_at TEXT,
		away_team TEXT,
		home_team TEXT,
		away_team_id TEXT,
		home_team_id TEXT,
		fetched_at INTEGER NOT NULL
	);`)
	return err
}

// Put stores or replaces the cached recap for a game.
func (db *DB) Put(s *api.GameSummary) error {
	if s == nil || s.GameID == "" {
		return errors.New("recap missing game id")
	}
	_, err := db.SQL.Exec(`INSERT INTO recaps(game_id, summary, generated_at, away_team, home_team, away_team_id, home_team_id, fetched_at)
		VALUES(?,?,?,?,?,?,?,?)
		ON CONFLICT(game_id) DO UPDATE SET summary=excluded.summary, generated_at=excluded.generated_at, away_team=excluded.away_team, home_team=excluded.home_team, away_team_id=excluded.away_team_id, home_team_id=excluded.home_team_id, fetched_at=excluded.fetched_at`,
		s.GameID, s.Summary, s.GeneratedAt, s.AwayTeam, s.HomeTeam, s.AwayTeamID, s.HomeTeamID, time.Now().Unix())
	return err
}

// Get returns the cached recap for a game, or ok=false on a miss or an
// expired row.
func (db *DB) Get(gameID string) (*api.GameSummary, bool, error) {
	row := db.SQL.QueryRow(`SELECT summary,
		COALESCE(generated_at, ''),
		COALESCE(away_team, ''),
		COALESCE(home_team, ''),
		COALESCE(away_team_id, ''),
		COALESCE(home_team_id, ''),
		fetched_at
	  FROM recaps WHERE game_id=?`, gameID)
	var s api.GameSummary
	var fetchedAt int64
	s.GameID = gameID
	err := row.Scan(&s.Summary, &s.GeneratedAt, &s.AwayTeam, &s.HomeTeam, &s.AwayTeamID, &s.HomeTeamID, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if db.ttl > 0 && time.Since(time.Unix(fetchedAt, 0)) > db.ttl {
		_, _ = db.SQL.Exec(`DELETE FROM recaps WHERE game_id=?`, gameID)
		return nil, false, nil
	}
	return &s, true, nil
}

// Delete removes one cached recap.
func (db *DB) Delete(gameID string) error {
	_, err := db.SQL.Exec(`DELETE FROM recaps WHERE game_id=?`, gameID)
	return err
}

func (db *DB) Close() error { return db.SQL.Close() }
