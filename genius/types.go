package genius

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"geniusmcp/config"
)

// ErrNotFound is returned when Genius answers 404 for a resource.
var ErrNotFound = errors.New("genius: not found")

// ErrMissingToken is returned by New when no bearer token is given.
var ErrMissingToken = errors.New("genius: access token is required")

// APIError is a non-2xx answer other than 404.
type APIError struct {
	StatusCode int
	Path       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("genius %s: status %d: %s", e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("genius %s: status %d", e.Path, e.StatusCode)
}

// Options configures a Client. Zero values fall back to the defaults below.
type Options struct {
	Token                string
	Timeout              time.Duration
	Retries              int
	RetryDelay           time.Duration
	RemoveSectionHeaders bool
	SkipNonSongs         bool
	ExcludedTerms        []string

	// APIRoot and PublicRoot exist for tests; both must end with "/".
	APIRoot    string
	PublicRoot string
}

// OptionsFromConfig builds client options from the loaded configuration.
func OptionsFromConfig(cfg config.GeniusConfig) Options {
	return Options{
		Token:                cfg.Token,
		Timeout:              cfg.Timeout(),
		Retries:              cfg.Retries,
		RemoveSectionHeaders: cfg.RemoveSectionHeaders,
		SkipNonSongs:         cfg.SkipNonSongs,
		ExcludedTerms:        cfg.ExcludedTerms,
	}
}

// SearchOptions narrows a search. An empty Type searches all content through
// the authenticated API ("hits" envelope); a non-empty Type goes through the
// public API ("sections" envelope).
type SearchOptions struct {
	Type    string
	PerPage int
	Page    int
}

// Sort orders artist songs.
type Sort string

const (
	SortPopularity Sort = "popularity"
	SortTitle      Sort = "title"
)

type DateComponents struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

type Artist struct {
	ID             int      `json:"id"`
	Name           string   `json:"name"`
	URL            string   `json:"url"`
	AlternateNames []string `json:"alternate_names"`
	FollowersCount int      `json:"followers_count"`

	// Description is {"plain": "..."} when requested with text_format=plain;
	// other formats are tolerated and ignored.
	Description json.RawMessage `json:"description"`
}

// DescriptionText returns the plain-text description or "".
func (a *Artist) DescriptionText() string {
	var d struct {
		Plain string `json:"plain"`
	}
	if len(a.Description) == 0 || json.Unmarshal(a.Description, &d) != nil {
		return ""
	}
	return strings.TrimSpace(d.Plain)
}

type Album struct {
	ID                    int             `json:"id"`
	Name                  string          `json:"name"`
	URL                   string          `json:"url"`
	Artist                *Artist         `json:"artist"`
	ReleaseDateComponents *DateComponents `json:"release_date_components"`
	ReleaseDateForDisplay string          `json:"release_date_for_display"`

	// Raw is the album object exactly as Genius returned it; its track data
	// has no fixed shape and is parsed by the tracks package.
	Raw json.RawMessage `json:"-"`
}

// Year is the release year or 0 when unknown.
func (a *Album) Year() int {
	if a == nil || a.ReleaseDateComponents == nil {
		return 0
	}
	return a.ReleaseDateComponents.Year
}

// ArtistName is the album artist or "" when absent.
func (a *Album) ArtistName() string {
	if a == nil || a.Artist == nil {
		return ""
	}
	return a.Artist.Name
}

type Song struct {
	ID                    int             `json:"id"`
	Title                 string          `json:"title"`
	URL                   string          `json:"url"`
	ArtistNames           string          `json:"artist_names"`
	PrimaryArtist         *Artist         `json:"primary_artist"`
	Album                 *Album          `json:"album"`
	ReleaseDateComponents *DateComponents `json:"release_date_components"`
	ReleaseDateForDisplay string          `json:"release_date_for_display"`
	LyricsState           string          `json:"lyrics_state"`
}

// Artist prefers the display credit, then the primary artist.
func (s *Song) Artist() string {
	if s.ArtistNames != "" {
		return s.ArtistNames
	}
	if s.PrimaryArtist != nil {
		return s.PrimaryArtist.Name
	}
	return ""
}

// Year is the release year or 0 when unknown.
func (s *Song) Year() int {
	if s.ReleaseDateComponents == nil {
		return 0
	}
	return s.ReleaseDateComponents.Year
}

type envelope struct {
	Meta struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	} `json:"meta"`
	Response json.RawMessage `json:"response"`
}
