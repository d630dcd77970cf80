package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/ab1manyu/PokedexChallenge/internal/model"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(filePath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", filePath)
	if err != nil {
		return nil, err
	}
	st := &SQLiteStore{db: db}
	if err := st.initSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return st, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS caught (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			sprite TEXT NOT NULL,
			caught_on INTEGER NOT NULL,
			ball TEXT NOT NULL DEFAULT '',
			stats TEXT NOT NULL DEFAULT '[]'
		);
		CREATE TABLE IF NOT EXISTS companion (
			slot INTEGER PRIMARY KEY CHECK (slot = 0),
			id INTEGER NOT NULL,
			name TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS catalog_index (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL
		);`)
	return err
}

func (s *SQLiteStore) Collection() (model.Collection, error) {
	rows, err := s.db.Query(`SELECT id, name, sprite, caught_on, ball, stats FROM caught`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(model.Collection)
	for rows.Next() {
		var entry model.CaughtEntry
		var ball string
		var stats string
		if err := rows.Scan(&entry.ID, &entry.Name, &entry.Sprite, &entry.CaughtOn, &ball, &stats); err != nil {
			return nil, err
		}
		entry.Ball = model.BallTier(ball)
		if err := json.Unmarshal([]byte(stats), &entry.Stats); err != nil {
			entry.Stats = nil
		}
		out[entry.ID] = entry
	}
	return out, rows.Err()
}

func (s *SQLiteStore) SaveCollection(c model.Collection) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM caught`); err != nil {
		return err
	}
	for _, entry := range c {
		stats, err := json.Marshal(entry.Stats)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(`
			INSERT INTO caught (id, name, sprite, caught_on, ball, stats)
			VALUES (?, ?, ?, ?, ?, ?)`,
			entry.ID, entry.Name, entry.Sprite, entry.CaughtOn, string(entry.Ball), string(stats),
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) Companion() (*model.CompanionRef, error) {
	row := s.db.QueryRow(`SELECT id, name FROM companion WHERE slot = 0`)
	var ref model.CompanionRef
	err := row.Scan(&ref.ID, &ref.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ref, nil
}

func (s *SQLiteStore) SaveCompanion(ref *model.CompanionRef) error {
	if ref == nil {
		_, err := s.db.Exec(`DELETE FROM companion WHERE slot = 0`)
		return err
	}
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO companion (slot, id, name) VALUES (0, ?, ?)`,
		ref.ID, ref.Name,
	)
	return err
}

func (s *SQLiteStore) Theme() (string, error) {
	row := s.db.QueryRow(`SELECT value FROM settings WHERE key = 'theme'`)
	var theme string
	err := row.Scan(&theme)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return theme, err
}

func (s *SQLiteStore) SaveTheme(theme string) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO settings (key, value) VALUES ('theme', ?)`, theme)
	return err
}

func (s *SQLiteStore) CatalogIndex() ([]model.IndexEntry, error) {
	rows, err := s.db.Query(`SELECT id, name FROM catalog_index ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.IndexEntry
	for rows.Next() {
		var entry model.IndexEntry
		if err := rows.Scan(&entry.ID, &entry.Name); err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) SaveCatalogIndex(entries []model.IndexEntry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM catalog_index`); err != nil {
		return err
	}
	for _, entry := range entries {
		if _, err := tx.Exec(`
			INSERT INTO catalog_index (id, name) VALUES (?, ?)`,
			entry.ID, entry.Name,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) Reset() error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM caught`); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM companion`); err != nil {
		return err
	}
	return tx.Commit()
}
