package library

import (
	"database/sql"

	dbutil "github.com/llehouerou/roo/internal/db"
)

// ImportTracks upserts catalog rows in a single transaction. The FTS
// index follows through the schema triggers. Used by the ingest tool and
// by tests; the browsing layers never write to the catalog.
func (l *Library) ImportTracks(tracks []Track) error {
	if len(tracks) == 0 {
		return nil
	}

	return dbutil.WithTx(l.db, func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`
			INSERT INTO tracks (id, title, description, composer, cd_title, library, version, duration, filename, vocal, solo)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				title = excluded.title,
				description = excluded.description,
				composer = excluded.composer,
				cd_title = excluded.cd_title,
				library = excluded.library,
				version = excluded.version,
				duration = excluded.duration,
				filename = excluded.filename,
				vocal = excluded.vocal,
				solo = excluded.solo
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, t := range tracks {
			if _, err := stmt.Exec(t.ID, t.Title, t.Description, t.Composer, t.CDTitle,
				t.Library, t.Version, t.Duration, t.Filename, t.Vocal, t.Solo); err != nil {
				return err
			}
		}
		return nil
	})
}
