// Loads a JSON track export into the catalog database.
package main

import (
	"encoding/json"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/llehouerou/roo/internal/config"
	"github.com/llehouerou/roo/internal/errmsg"
	"github.com/llehouerou/roo/internal/library"
	"github.com/llehouerou/roo/internal/store"
)

// record mirrors one entry of the track export file.
type record struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Composer    string `json:"composer"`
	CDTitle     string `json:"cd_title"`
	Library     string `json:"library"`
	Version     string `json:"version"`
	Duration    string `json:"duration"`
	Filename    string `json:"filename"`
	Vocal       bool   `json:"vocal"`
	Solo        bool   `json:"solo"`
}

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	if len(os.Args) != 2 {
		logger.Fatal("Usage: ingest <tracks.json>")
	}
	path := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Error loading configuration")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.WithError(err).Fatal("Error reading export file")
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		logger.WithError(err).Fatal("Error parsing export file")
	}

	tracks := make([]library.Track, 0, len(records))
	for _, r := range records {
		if r.ID == "" {
			logger.WithField("title", r.Title).Warn("Skipping record without id")
			continue
		}
		tracks = append(tracks, library.Track{
			ID:          r.ID,
			Title:       r.Title,
			Description: r.Description,
			Composer:    r.Composer,
			CDTitle:     r.CDTitle,
			Library:     r.Library,
			Version:     r.Version,
			Duration:    r.Duration,
			Filename:    r.Filename,
			Vocal:       r.Vocal,
			Solo:        r.Solo,
		})
	}

	db, err := store.Open(cfg.DatabasePath)
	if err != nil {
		logger.Fatal(errmsg.Format(errmsg.OpCatalogOpen, err))
	}
	defer db.Close()

	lib := library.New(db)
	if err := lib.ImportTracks(tracks); err != nil {
		logger.Fatal(errmsg.FormatWith(errmsg.OpCatalogImport, path, err))
	}

	count, err := lib.TrackCount()
	if err != nil {
		logger.WithError(err).Fatal("Error counting tracks")
	}
	logger.WithFields(logrus.Fields{
		"imported": len(tracks),
		"total":    count,
	}).Info("Import complete")
}
