package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/roo/internal/catalog"
	"github.com/llehouerou/roo/internal/config"
	"github.com/llehouerou/roo/internal/errmsg"
	"github.com/llehouerou/roo/internal/events"
	"github.com/llehouerou/roo/internal/store"
)

const usage = `Usage: roo <command> [arguments]

Commands:
  search          search the track catalog
  playlists       list playlists
  playlist-create <name>
  playlist-delete <id>
  playlist-tracks <name>
  add-track  <playlist name> <track id>
  add-album  <playlist name> <track id>
`

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Error loading configuration")
	}

	db, err := store.Open(cfg.DatabasePath)
	if err != nil {
		logger.Fatal(errmsg.Format(errmsg.OpCatalogOpen, err))
	}
	defer db.Close()

	c, err := catalog.Open(db, events.NewBus())
	if err != nil {
		logger.WithError(err).Fatal("Error initializing catalog")
	}

	switch cmd, args := os.Args[1], os.Args[2:]; cmd {
	case "search":
		err = runSearch(c, cfg, args)
	case "playlists":
		err = runPlaylists(c)
	case "playlist-create":
		err = runPlaylistCreate(c, args)
	case "playlist-delete":
		err = runPlaylistDelete(c, args)
	case "playlist-tracks":
		err = runPlaylistTracks(c, args)
	case "add-track":
		err = runAddTrack(c, args)
	case "add-album":
		err = runAddAlbum(c, args)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		logger.WithError(err).Fatal("Command failed")
	}
}

func runSearch(c *catalog.Catalog, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	text := fs.String("text", "", "free-text query over title, description and composer")
	facet := fs.String("facet", "", "facet: All Tracks, Vocal, Instrumental or Solo")
	column := fs.String("column", "", "column to filter on (id, title, composer, cd_title, library, version)")
	columnText := fs.String("column-text", "", "substring the filter column must contain")
	pageN := fs.Int("page", 1, "result page")
	if err := fs.Parse(args); err != nil {
		return err
	}

	page, err := c.Search(*text, *facet, *column, *columnText, *pageN, cfg.PageSize)
	if err != nil {
		return err
	}

	fmt.Printf("%s results (page %d of %d)\n",
		humanize.Comma(int64(page.TotalResults)), page.Page, page.TotalPages)
	for _, r := range page.Results {
		fmt.Printf("  %-12s %-40s %s\n", r.ID, r.Title, r.Composer)
	}
	return nil
}

func runPlaylists(c *catalog.Catalog) error {
	pls, err := c.Playlists()
	if err != nil {
		return err
	}
	for _, pl := range pls {
		fmt.Printf("  %4d  %-30s created %s\n",
			pl.ID, pl.Name, humanize.Time(time.Unix(pl.CreatedAt, 0)))
	}
	return nil
}

func runPlaylistCreate(c *catalog.Catalog, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("playlist-create: expected <name>")
	}
	pl, err := c.CreatePlaylist(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("Created playlist %d: %s\n", pl.ID, pl.Name)
	return nil
}

func runPlaylistDelete(c *catalog.Catalog, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("playlist-delete: expected <id>")
	}
	var id int64
	if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil {
		return fmt.Errorf("playlist-delete: %q is not a playlist id", args[0])
	}
	return c.DeletePlaylist(id)
}

func runPlaylistTracks(c *catalog.Catalog, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("playlist-tracks: expected <name>")
	}
	tracks, err := c.PlaylistTracks(args[0])
	if err != nil {
		return err
	}
	for _, t := range tracks {
		fmt.Printf("  %3d  %-12s %-40s %s\n", t.Ordering, t.TrackID, t.Title, t.Duration)
	}
	return nil
}

func runAddTrack(c *catalog.Catalog, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("add-track: expected <playlist name> <track id>")
	}
	pl, _, err := c.SelectPlaylist(args[0])
	if err != nil {
		return err
	}
	track, err := c.Library().TrackByID(args[1])
	if err != nil {
		return err
	}
	return c.AddTrackToPlaylist(pl.ID, *track)
}

func runAddAlbum(c *catalog.Catalog, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("add-album: expected <playlist name> <track id>")
	}
	pl, _, err := c.SelectPlaylist(args[0])
	if err != nil {
		return err
	}
	prefix, err := c.AlbumPrefix(args[1])
	if err != nil {
		return err
	}
	candidates, err := c.Library().AlbumTracks(prefix)
	if err != nil {
		return err
	}
	count, err := c.AddAlbumToPlaylist(pl.ID, prefix, candidates)
	if err != nil {
		return err
	}
	fmt.Printf("Added %d tracks from album %s to %s\n", count, prefix, pl.Name)
	return nil
}
