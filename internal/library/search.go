package library

import (
	"database/sql"
	"strings"

	dbutil "github.com/llehouerou/roo/internal/db"
	"github.com/llehouerou/roo/internal/errmsg"
)

// Facet is a closed-set boolean classification used as a query constraint.
type Facet string

const (
	FacetAll          Facet = "All Tracks"
	FacetVocal        Facet = "Vocal"
	FacetInstrumental Facet = "Instrumental"
	FacetSolo         Facet = "Solo"
)

// DefaultPageSize is the page size used when the caller supplies none.
const DefaultPageSize = 20

// filterColumns is the allow-list for the column filter. Anything else is
// rejected before query construction; column names are never interpolated
// from free user input.
var filterColumns = map[string]bool{
	"id":       true,
	"title":    true,
	"composer": true,
	"cd_title": true,
	"library":  true,
	"version":  true,
}

// Params describes one search request. A Page carries the Params that
// produced it so a caller can ask for another page of the same query
// without resubmitting filters.
type Params struct {
	Text         string
	Facet        Facet
	FilterColumn string
	FilterText   string
	Page         int
	PageSize     int
}

// ScoredTrack is a catalog row with its relevance score. Higher scores
// rank first; zero for every row when the free-text term is empty.
type ScoredTrack struct {
	Track
	Score float64
}

// Page is one window of a search result set.
type Page struct {
	Results      []ScoredTrack
	TotalResults int
	TotalPages   int
	Page         int
	Params       Params
}

// Search runs a ranked, counted, paginated query over the catalog.
// All active constraints combine with AND. Rows are ordered by relevance
// score descending with id ascending as the stable tie-break. Requesting
// a page past the end returns an empty result set, not an error.
func (l *Library) Search(p Params) (Page, error) {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}

	text := strings.TrimSpace(p.Text)

	var from string
	var where []string
	var args []any

	if text != "" {
		from = `FROM tracks_fts
			JOIN tracks t ON t.rowid = tracks_fts.rowid`
		where = append(where, `tracks_fts MATCH ?`)
		args = append(args, escapeFTSQuery(text))
	} else {
		from = `FROM tracks t`
	}

	switch p.Facet {
	case FacetVocal:
		where = append(where, `t.vocal = 1`)
	case FacetInstrumental:
		where = append(where, `t.vocal = 0`)
	case FacetSolo:
		where = append(where, `t.solo = 1`)
	default:
		// All Tracks, including unrecognized values
	}

	if p.FilterColumn != "" && p.FilterText != "" {
		if !filterColumns[p.FilterColumn] {
			return Page{}, errmsg.Validationf("column", "%q is not a filterable column", p.FilterColumn)
		}
		where = append(where, `LOWER(t.`+p.FilterColumn+`) LIKE '%' || LOWER(?) || '%'`)
		args = append(args, p.FilterText)
	}

	clause := ""
	if len(where) > 0 {
		clause = ` WHERE ` + strings.Join(where, " AND ")
	}

	// Count over the same predicate, independent of the page window
	var total int
	if err := l.db.QueryRow(`SELECT COUNT(*) `+from+clause, args...).Scan(&total); err != nil {
		return Page{}, err
	}

	score := `0.0`
	if text != "" {
		// bm25 returns lower-is-better values; negate so descending
		// score means most relevant first. Weights follow the indexed
		// columns (title, description, composer).
		score = `-bm25(tracks_fts, 1.0, 0.5, 0.5)`
	}

	rows, err := l.db.Query(`
		SELECT `+trackColumns+`, `+score+` AS score
		`+from+clause+`
		ORDER BY score DESC, t.id ASC
		LIMIT ? OFFSET ?
	`, append(args, p.PageSize, (p.Page-1)*p.PageSize)...)
	if err != nil {
		return Page{}, err
	}
	defer rows.Close()

	var results []ScoredTrack
	for rows.Next() {
		st, err := scanScoredTrack(rows)
		if err != nil {
			return Page{}, err
		}
		results = append(results, st)
	}
	if err := rows.Err(); err != nil {
		return Page{}, err
	}

	return Page{
		Results:      results,
		TotalResults: total,
		TotalPages:   (total + p.PageSize - 1) / p.PageSize,
		Page:         p.Page,
		Params:       p,
	}, nil
}

func scanScoredTrack(row scanner) (ScoredTrack, error) {
	var st ScoredTrack
	var description, composer, cdTitle, lib, version, duration, filename sql.NullString

	err := row.Scan(&st.ID, &st.Title, &description, &composer, &cdTitle, &lib,
		&version, &duration, &filename, &st.Vocal, &st.Solo, &st.Score)
	if err != nil {
		return ScoredTrack{}, err
	}
	st.Description = dbutil.NullStringValue(description)
	st.Composer = dbutil.NullStringValue(composer)
	st.CDTitle = dbutil.NullStringValue(cdTitle)
	st.Library = dbutil.NullStringValue(lib)
	st.Version = dbutil.NullStringValue(version)
	st.Duration = dbutil.NullStringValue(duration)
	st.Filename = dbutil.NullStringValue(filename)
	return st, nil
}

// escapeFTSQuery escapes a free-text term for FTS5. Each word is wrapped
// in quotes, with implicit AND between words, so user input can never be
// parsed as FTS syntax.
func escapeFTSQuery(query string) string {
	words := strings.Fields(query)
	if len(words) == 0 {
		return `""`
	}

	quoted := make([]string, len(words))
	for i, word := range words {
		escaped := strings.ReplaceAll(word, `"`, `""`)
		quoted[i] = `"` + escaped + `"`
	}

	return strings.Join(quoted, " ")
}
