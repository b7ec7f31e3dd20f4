package store

import (
	"database/sql"
)

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS tracks (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT,
			composer TEXT,
			cd_title TEXT,
			library TEXT,
			version TEXT,
			duration TEXT,
			filename TEXT,
			vocal INTEGER NOT NULL DEFAULT 0,
			solo INTEGER NOT NULL DEFAULT 0
		);

		CREATE VIRTUAL TABLE IF NOT EXISTS tracks_fts USING fts5(
			title,
			description,
			composer,
			content='tracks'
		);

		-- Keep the FTS index in lockstep with tracks. The index is joined
		-- back to tracks by rowid, never by a copied key.
		CREATE TRIGGER IF NOT EXISTS tracks_fts_ai AFTER INSERT ON tracks BEGIN
			INSERT INTO tracks_fts (rowid, title, description, composer)
			VALUES (new.rowid, new.title, new.description, new.composer);
		END;

		CREATE TRIGGER IF NOT EXISTS tracks_fts_ad AFTER DELETE ON tracks BEGIN
			INSERT INTO tracks_fts (tracks_fts, rowid, title, description, composer)
			VALUES ('delete', old.rowid, old.title, old.description, old.composer);
		END;

		CREATE TRIGGER IF NOT EXISTS tracks_fts_au AFTER UPDATE ON tracks BEGIN
			INSERT INTO tracks_fts (tracks_fts, rowid, title, description, composer)
			VALUES ('delete', old.rowid, old.title, old.description, old.composer);
			INSERT INTO tracks_fts (rowid, title, description, composer)
			VALUES (new.rowid, new.title, new.description, new.composer);
		END;

		CREATE TABLE IF NOT EXISTS playlists (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			created_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS playlist_tracks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			playlist_id INTEGER NOT NULL REFERENCES playlists(id) ON DELETE CASCADE,
			track_id TEXT NOT NULL CHECK (track_id <> ''),
			duration TEXT,
			title TEXT,
			library TEXT,
			cd_title TEXT,
			filename TEXT,
			ordering INTEGER NOT NULL,
			UNIQUE(playlist_id, ordering)
		);

		CREATE INDEX IF NOT EXISTS idx_playlist_tracks_playlist ON playlist_tracks(playlist_id, ordering);
		CREATE INDEX IF NOT EXISTS idx_playlists_created ON playlists(created_at);
	`)
	return err
}
