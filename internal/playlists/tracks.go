package playlists

import (
	"database/sql"

	dbutil "github.com/llehouerou/roo/internal/db"
	"github.com/llehouerou/roo/internal/errmsg"
	"github.com/llehouerou/roo/internal/library"
)

// Track is one membership row. The track fields are a snapshot copied at
// insertion time so playlist display survives later catalog changes.
type Track struct {
	ID         int64
	PlaylistID int64
	TrackID    string
	Title      string
	Duration   string
	Library    string
	CDTitle    string
	Filename   string
	Ordering   int
}

// Tracks returns a playlist's membership in insertion order.
func (s *Store) Tracks(playlistID int64) ([]Track, error) {
	rows, err := s.db.Query(`
		SELECT id, playlist_id, track_id, title, duration, library, cd_title, filename, ordering
		FROM playlist_tracks
		WHERE playlist_id = ?
		ORDER BY ordering ASC
	`, playlistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tracks []Track
	for rows.Next() {
		var t Track
		var title, duration, lib, cdTitle, filename sql.NullString
		if err := rows.Scan(&t.ID, &t.PlaylistID, &t.TrackID, &title, &duration,
			&lib, &cdTitle, &filename, &t.Ordering); err != nil {
			return nil, err
		}
		t.Title = dbutil.NullStringValue(title)
		t.Duration = dbutil.NullStringValue(duration)
		t.Library = dbutil.NullStringValue(lib)
		t.CDTitle = dbutil.NullStringValue(cdTitle)
		t.Filename = dbutil.NullStringValue(filename)
		tracks = append(tracks, t)
	}
	return tracks, rows.Err()
}

// TrackCount returns the number of tracks in a playlist.
func (s *Store) TrackCount(playlistID int64) (int, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM playlist_tracks WHERE playlist_id = ?
	`, playlistID).Scan(&count)
	return count, err
}

// AddTrack appends one track to a playlist, snapshotting its display
// fields. The next ordering value is read and the row inserted inside
// one transaction, so concurrent adds to the same playlist cannot
// allocate the same slot.
func (s *Store) AddTrack(playlistID int64, t library.Track) (*Track, error) {
	var added *Track
	err := dbutil.WithTx(s.db, func(tx *sql.Tx) error {
		next, err := nextOrdering(tx, playlistID)
		if err != nil {
			return err
		}
		row, err := insertMembership(tx, playlistID, t, next)
		if err != nil {
			return err
		}
		added = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return added, nil
}

// AddTracks appends the given tracks to a playlist as one atomic batch,
// allocating consecutive ordering values. Either every track is inserted
// or, on any failure, none are.
func (s *Store) AddTracks(playlistID int64, tracks []library.Track) (int, error) {
	err := dbutil.WithTx(s.db, func(tx *sql.Tx) error {
		next, err := nextOrdering(tx, playlistID)
		if err != nil {
			return err
		}
		for i, t := range tracks {
			if _, err := insertMembership(tx, playlistID, t, next+i); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(tracks), nil
}

// nextOrdering computes the ordering slot for the next insert: one past
// the current maximum, or 0 for an empty playlist. It also verifies the
// playlist exists; adding to a missing playlist is a hard error.
func nextOrdering(tx *sql.Tx, playlistID int64) (int, error) {
	var exists int
	err := tx.QueryRow(`SELECT COUNT(*) FROM playlists WHERE id = ?`, playlistID).Scan(&exists)
	if err != nil {
		return 0, err
	}
	if exists == 0 {
		return 0, errmsg.NotFound("playlist", playlistID)
	}

	var maxOrd sql.NullInt64
	err = tx.QueryRow(`
		SELECT MAX(ordering) FROM playlist_tracks WHERE playlist_id = ?
	`, playlistID).Scan(&maxOrd)
	if err != nil {
		return 0, err
	}
	if !maxOrd.Valid {
		return 0, nil
	}
	return int(maxOrd.Int64) + 1, nil
}

func insertMembership(tx *sql.Tx, playlistID int64, t library.Track, ordering int) (*Track, error) {
	result, err := tx.Exec(`
		INSERT INTO playlist_tracks (playlist_id, track_id, title, duration, library, cd_title, filename, ordering)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, playlistID, t.ID, t.Title, t.Duration, t.Library, t.CDTitle, t.Filename, ordering)
	if err != nil {
		return nil, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &Track{
		ID:         id,
		PlaylistID: playlistID,
		TrackID:    t.ID,
		Title:      t.Title,
		Duration:   t.Duration,
		Library:    t.Library,
		CDTitle:    t.CDTitle,
		Filename:   t.Filename,
		Ordering:   ordering,
	}, nil
}
