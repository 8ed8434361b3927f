// Package store is the client-local persistent state: the auth token, the
// stable client id and the survey prompt history, kept in a small SQLite
// database under the user's home directory. It fills the role localStorage
// plays for the web client.
package store

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

const (
	TokenKey    = "auth_token"
	clientIDKey = "client_id"
)

type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, errors.Wrap(err, "store.open.mkdir")
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "store.open")
	}

	if _, err = db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "store.open.pragma")
	}

	// a single-user client needs very little connection headroom
	db.SetMaxOpenConns(2)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err = migrateDB(db); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "store.migrate")
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Get(key string) (value string, ok bool, err error) {
	err = s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", false, nil
	case err != nil:
		return "", false, errors.Wrap(err, "store.get")
	}
	return value, true, nil
}

func (s *Store) Set(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now(),
	)
	return errors.Wrap(err, "store.set")
}

func (s *Store) Delete(key string) error {
	_, err := s.db.Exec("DELETE FROM kv WHERE key = ?", key)
	return errors.Wrap(err, "store.delete")
}

// ClientID returns this installation's stable identifier, minting and
// persisting one on first use. It travels with every API request.
func (s *Store) ClientID() (string, error) {
	id, ok, err := s.Get(clientIDKey)
	if err != nil {
		return "", err
	}
	if ok {
		return id, nil
	}

	fresh, err := uuid.NewV4()
	if err != nil {
		return "", errors.Wrap(err, "store.client_id")
	}
	if err := s.Set(clientIDKey, fresh.String()); err != nil {
		return "", err
	}
	return fresh.String(), nil
}
