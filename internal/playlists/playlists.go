// Package playlists provides the playlist store: playlist CRUD and the
// ordered track membership that playlists exist to maintain.
package playlists

import (
	"database/sql"
	"strings"
	"time"

	dbutil "github.com/llehouerou/roo/internal/db"
	"github.com/llehouerou/roo/internal/errmsg"
)

// DefaultName is the playlist created on first open of an empty store.
const DefaultName = "Default Playlist"

// Playlist represents playlist metadata (without tracks).
type Playlist struct {
	ID        int64
	Name      string
	CreatedAt int64
}

// Store provides database operations for playlists.
type Store struct {
	db *sql.DB
}

// New creates a new Store instance.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Create creates a new playlist and returns the stored row.
// Empty or whitespace-only names are rejected before touching the store.
func (s *Store) Create(name string) (*Playlist, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errmsg.Validation("name", "must not be empty")
	}

	now := time.Now().Unix()
	result, err := s.db.Exec(`
		INSERT INTO playlists (name, created_at)
		VALUES (?, ?)
	`, name, now)
	if err != nil {
		return nil, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &Playlist{ID: id, Name: name, CreatedAt: now}, nil
}

// EnsureDefault creates the default playlist iff no playlist exists.
// Returns the created playlist, or nil when the store already has one.
// Safe to call repeatedly; it never creates duplicates.
func (s *Store) EnsureDefault() (*Playlist, error) {
	var created *Playlist
	err := dbutil.WithTx(s.db, func(tx *sql.Tx) error {
		var count int
		if err := tx.QueryRow(`SELECT COUNT(*) FROM playlists`).Scan(&count); err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		now := time.Now().Unix()
		result, err := tx.Exec(`
			INSERT INTO playlists (name, created_at)
			VALUES (?, ?)
		`, DefaultName, now)
		if err != nil {
			return err
		}
		id, err := result.LastInsertId()
		if err != nil {
			return err
		}
		created = &Playlist{ID: id, Name: DefaultName, CreatedAt: now}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Delete deletes a playlist and all its membership rows as one atomic
// unit. Deleting an id that does not exist is a no-op.
func (s *Store) Delete(id int64) error {
	return dbutil.WithTx(s.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM playlist_tracks WHERE playlist_id = ?`, id); err != nil {
			return err
		}
		_, err := tx.Exec(`DELETE FROM playlists WHERE id = ?`, id)
		return err
	})
}

// List returns all playlists in creation order.
func (s *Store) List() ([]Playlist, error) {
	rows, err := s.db.Query(`
		SELECT id, name, created_at
		FROM playlists
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var playlists []Playlist
	for rows.Next() {
		var pl Playlist
		if err := rows.Scan(&pl.ID, &pl.Name, &pl.CreatedAt); err != nil {
			return nil, err
		}
		playlists = append(playlists, pl)
	}
	return playlists, rows.Err()
}

// Get returns a playlist by its ID.
func (s *Store) Get(id int64) (*Playlist, error) {
	row := s.db.QueryRow(`
		SELECT id, name, created_at
		FROM playlists
		WHERE id = ?
	`, id)

	var pl Playlist
	if err := row.Scan(&pl.ID, &pl.Name, &pl.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, errmsg.NotFound("playlist", id)
		}
		return nil, err
	}
	return &pl, nil
}

// FindByName returns the playlist with the given name. Names are not
// unique; the most recently created playlist wins.
func (s *Store) FindByName(name string) (*Playlist, error) {
	row := s.db.QueryRow(`
		SELECT id, name, created_at
		FROM playlists
		WHERE name = ?
		ORDER BY id DESC
		LIMIT 1
	`, name)

	var pl Playlist
	if err := row.Scan(&pl.ID, &pl.Name, &pl.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, errmsg.NotFound("playlist", name)
		}
		return nil, err
	}
	return &pl, nil
}
