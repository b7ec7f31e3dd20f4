package library

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/llehouerou/roo/internal/errmsg"
)

func TestTrackByID(t *testing.T) {
	db := setupTestDB(t)
	lib := New(db)
	seedTracks(t, lib)

	track, err := lib.TrackByID("T2_a")
	if err != nil {
		t.Fatalf("TrackByID failed: %v", err)
	}
	require.Equal(t, "Open Road", track.Title)
	require.Equal(t, "B. West", track.Composer)
	require.True(t, track.Vocal)
	require.False(t, track.Solo)
}

func TestTrackByID_Missing(t *testing.T) {
	db := setupTestDB(t)
	lib := New(db)
	seedTracks(t, lib)

	_, err := lib.TrackByID("nope")
	if !errmsg.IsNotFound(err) {
		t.Errorf("expected NotFoundError, got %v", err)
	}
}

func TestAlbumTracks(t *testing.T) {
	db := setupTestDB(t)
	lib := New(db)
	seedTracks(t, lib)

	tracks, err := lib.AlbumTracks("T1")
	if err != nil {
		t.Fatalf("AlbumTracks failed: %v", err)
	}

	ids := make([]string, len(tracks))
	for i, tr := range tracks {
		ids[i] = tr.ID
	}
	require.Equal(t, []string{"T1_a", "T1_b"}, ids)
}

func TestImportTracks_Upsert(t *testing.T) {
	db := setupTestDB(t)
	lib := New(db)
	seedTracks(t, lib)

	// Re-import one track with a changed title
	err := lib.ImportTracks([]Track{
		{ID: "T1_a", Title: "Morning Sunrise (remaster)", Composer: "A. North", Vocal: true},
	})
	if err != nil {
		t.Fatalf("ImportTracks failed: %v", err)
	}

	count, err := lib.TrackCount()
	if err != nil {
		t.Fatalf("TrackCount failed: %v", err)
	}
	require.Equal(t, 5, count, "upsert must not add a row")

	track, err := lib.TrackByID("T1_a")
	if err != nil {
		t.Fatalf("TrackByID failed: %v", err)
	}
	require.Equal(t, "Morning Sunrise (remaster)", track.Title)

	// The FTS index must follow the update
	page, err := lib.Search(Params{Text: "remaster"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	require.Equal(t, []string{"T1_a"}, resultIDs(page))
}

func TestImportTracks_Empty(t *testing.T) {
	db := setupTestDB(t)
	lib := New(db)

	if err := lib.ImportTracks(nil); err != nil {
		t.Fatalf("ImportTracks(nil) failed: %v", err)
	}
}
