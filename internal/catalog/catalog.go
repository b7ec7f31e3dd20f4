// Package catalog is the single entry point the presentation layer
// calls: it composes the track library and the playlist store,
// normalizes inputs and publishes change notifications.
package catalog

import (
	"database/sql"
	"strings"

	"github.com/llehouerou/roo/internal/errmsg"
	"github.com/llehouerou/roo/internal/events"
	"github.com/llehouerou/roo/internal/library"
	"github.com/llehouerou/roo/internal/playlists"
)

type Catalog struct {
	lib *library.Library
	pls *playlists.Store
	bus *events.Bus
}

// Open builds the facade over an opened database. The first open of an
// empty store creates the default playlist.
func Open(db *sql.DB, bus *events.Bus) (*Catalog, error) {
	c := &Catalog{
		lib: library.New(db),
		pls: playlists.New(db),
		bus: bus,
	}

	created, err := c.pls.EnsureDefault()
	if err != nil {
		return nil, errmsg.Wrap(errmsg.OpInitialize, err)
	}
	if created != nil {
		c.bus.Publish(events.PlaylistCreated, *created)
	}
	return c, nil
}

// Library exposes the underlying track library for ingest tooling.
func (c *Catalog) Library() *library.Library {
	return c.lib
}

// Search runs a catalog query with defaults applied: page 1, the default
// page size and the all-tracks facet. The returned page carries its
// parameters, so further pages of the same query go through PageAt.
func (c *Catalog) Search(text, facet, column, columnText string, page, pageSize int) (library.Page, error) {
	f := library.Facet(facet)
	if facet == "" {
		f = library.FacetAll
	}

	params := library.Params{
		Text:         text,
		Facet:        f,
		FilterColumn: column,
		FilterText:   columnText,
		Page:         page,
		PageSize:     pageSize,
	}

	result, err := c.lib.Search(params)
	if err != nil {
		return library.Page{}, errmsg.Wrap(errmsg.OpSearch, err)
	}
	c.bus.Publish(events.SearchRequested, result.Params)
	return result, nil
}

// PageAt re-runs the query that produced page, windowed to page n.
func (c *Catalog) PageAt(page library.Page, n int) (library.Page, error) {
	params := page.Params
	params.Page = n
	result, err := c.lib.Search(params)
	if err != nil {
		return library.Page{}, errmsg.Wrap(errmsg.OpSearch, err)
	}
	return result, nil
}

// NextPage returns the page after the given one.
func (c *Catalog) NextPage(page library.Page) (library.Page, error) {
	return c.PageAt(page, page.Page+1)
}

// ClearResults tells subscribers to drop the current result view.
func (c *Catalog) ClearResults() {
	c.bus.Publish(events.ResultsCleared, nil)
}

// Playlists returns all playlists in creation order.
func (c *Catalog) Playlists() ([]playlists.Playlist, error) {
	pls, err := c.pls.List()
	if err != nil {
		return nil, errmsg.Wrap(errmsg.OpPlaylistList, err)
	}
	return pls, nil
}

// CreatePlaylist creates a playlist and notifies subscribers.
func (c *Catalog) CreatePlaylist(name string) (*playlists.Playlist, error) {
	pl, err := c.pls.Create(name)
	if err != nil {
		return nil, errmsg.Wrap(errmsg.OpPlaylistCreate, err)
	}
	c.bus.Publish(events.PlaylistCreated, *pl)
	return pl, nil
}

// DeletePlaylist deletes a playlist and its membership, then notifies
// subscribers. Deleting a playlist that does not exist succeeds quietly.
func (c *Catalog) DeletePlaylist(id int64) error {
	if err := c.pls.Delete(id); err != nil {
		return errmsg.Wrap(errmsg.OpPlaylistDelete, err)
	}
	c.bus.Publish(events.PlaylistDeleted, id)
	return nil
}

// PlaylistTracks returns the named playlist's tracks in insertion order.
// When several playlists share the name, the most recent one wins.
func (c *Catalog) PlaylistTracks(name string) ([]playlists.Track, error) {
	pl, err := c.pls.FindByName(name)
	if err != nil {
		return nil, errmsg.Wrap(errmsg.OpPlaylistTracks, err)
	}
	tracks, err := c.pls.Tracks(pl.ID)
	if err != nil {
		return nil, errmsg.Wrap(errmsg.OpPlaylistTracks, err)
	}
	return tracks, nil
}

// SelectPlaylist resolves a playlist by name, notifies subscribers of
// the selection and returns the playlist with its tracks.
func (c *Catalog) SelectPlaylist(name string) (*playlists.Playlist, []playlists.Track, error) {
	pl, err := c.pls.FindByName(name)
	if err != nil {
		return nil, nil, errmsg.Wrap(errmsg.OpPlaylistTracks, err)
	}
	tracks, err := c.pls.Tracks(pl.ID)
	if err != nil {
		return nil, nil, errmsg.Wrap(errmsg.OpPlaylistTracks, err)
	}
	c.bus.Publish(events.PlaylistSelected, *pl)
	return pl, tracks, nil
}

// AddTrackToPlaylist appends one track to a playlist. The playlist must
// exist; the track's display fields are snapshotted into the membership.
func (c *Catalog) AddTrackToPlaylist(playlistID int64, t library.Track) error {
	if _, err := c.pls.AddTrack(playlistID, t); err != nil {
		return errmsg.Wrap(errmsg.OpPlaylistAddTrack, err)
	}
	return nil
}

// AddAlbumToPlaylist filters candidates to the tracks belonging to the
// album and appends them as one atomic batch. Returns how many tracks
// matched and were inserted.
func (c *Catalog) AddAlbumToPlaylist(playlistID int64, albumPrefix string, candidates []library.Track) (int, error) {
	if albumPrefix == "" {
		return 0, errmsg.Validation("album prefix", "must not be empty")
	}

	var matched []library.Track
	for _, t := range candidates {
		if strings.HasPrefix(t.ID, albumPrefix) {
			matched = append(matched, t)
		}
	}

	count, err := c.pls.AddTracks(playlistID, matched)
	if err != nil {
		return 0, errmsg.Wrap(errmsg.OpPlaylistAddAlbum, err)
	}
	return count, nil
}

// AlbumPrefix derives a track's album grouping from its id: the part
// before the first '_'. An id without the delimiter has no album.
func (c *Catalog) AlbumPrefix(trackID string) (string, error) {
	idx := strings.Index(trackID, "_")
	if idx < 0 {
		return "", errmsg.Validationf("track id", "%q has no album prefix", trackID)
	}
	return trackID[:idx], nil
}
