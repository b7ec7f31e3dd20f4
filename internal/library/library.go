// Package library holds the track catalog: the read-only track table,
// its full-text index and the ranked, filtered, paginated search over it.
package library

import (
	"database/sql"

	dbutil "github.com/llehouerou/roo/internal/db"
	"github.com/llehouerou/roo/internal/errmsg"
)

// Track is an immutable catalog row. Tracks are populated by the ingest
// tooling and never modified by the browsing layers.
type Track struct {
	ID          string
	Title       string
	Description string
	Composer    string
	CDTitle     string
	Library     string
	Version     string
	Duration    string
	Filename    string
	Vocal       bool
	Solo        bool
}

type Library struct {
	db *sql.DB
}

func New(db *sql.DB) *Library {
	return &Library{db: db}
}

const trackColumns = `t.id, t.title, t.description, t.composer, t.cd_title, t.library, t.version, t.duration, t.filename, t.vocal, t.solo`

// TrackByID returns a track by its catalog id.
func (l *Library) TrackByID(id string) (*Track, error) {
	row := l.db.QueryRow(`
		SELECT `+trackColumns+`
		FROM tracks t
		WHERE t.id = ?
	`, id)

	t, err := scanTrack(row)
	if err == sql.ErrNoRows {
		return nil, errmsg.NotFound("track", id)
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// TrackCount returns the total number of tracks in the catalog.
func (l *Library) TrackCount() (int, error) {
	var count int
	err := l.db.QueryRow(`SELECT COUNT(*) FROM tracks`).Scan(&count)
	return count, err
}

// AlbumTracks returns all tracks whose id starts with the given album
// prefix, in id order.
func (l *Library) AlbumTracks(prefix string) ([]Track, error) {
	rows, err := l.db.Query(`
		SELECT `+trackColumns+`
		FROM tracks t
		WHERE t.id LIKE ? || '%'
		ORDER BY t.id
	`, prefix)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tracks []Track
	for rows.Next() {
		t, err := scanTrack(rows)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, *t)
	}
	return tracks, rows.Err()
}

type scanner interface {
	Scan(...any) error
}

func scanTrack(row scanner) (*Track, error) {
	var t Track
	var description, composer, cdTitle, lib, version, duration, filename sql.NullString

	err := row.Scan(&t.ID, &t.Title, &description, &composer, &cdTitle, &lib,
		&version, &duration, &filename, &t.Vocal, &t.Solo)
	if err != nil {
		return nil, err
	}
	t.Description = dbutil.NullStringValue(description)
	t.Composer = dbutil.NullStringValue(composer)
	t.CDTitle = dbutil.NullStringValue(cdTitle)
	t.Library = dbutil.NullStringValue(lib)
	t.Version = dbutil.NullStringValue(version)
	t.Duration = dbutil.NullStringValue(duration)
	t.Filename = dbutil.NullStringValue(filename)
	return &t, nil
}
