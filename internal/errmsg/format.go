// Package errmsg provides the error taxonomy and consistent error
// formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Catalog operations
	OpCatalogOpen   Op = "open catalog"
	OpCatalogImport Op = "import tracks"
	OpSearch        Op = "search tracks"

	// Playlist operations
	OpPlaylistList     Op = "load playlists"
	OpPlaylistCreate   Op = "create playlist"
	OpPlaylistDelete   Op = "delete playlist"
	OpPlaylistTracks   Op = "load playlist tracks"
	OpPlaylistAddTrack Op = "add track to playlist"
	OpPlaylistAddAlbum Op = "add album to playlist"

	// Initialization
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
