// Package tools implements the five Genius tools and the supplementary
// resources and prompts. Every method returns exactly one Markdown text on
// every path; failures are rendered as text, never returned.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"geniusmcp/genius"
	"geniusmcp/logging"
	"geniusmcp/sentryhelper"
)

const (
	// NotInitialized is returned by every call when the server runs without
	// a Genius client.
	NotInitialized = "Error: Genius client not initialized. Set GENIUS_TOKEN and restart the server."

	defaultSearchPerPage = 10
	defaultSongsPerPage  = 20
	maxSearchPerPage     = 50
	maxAlbumsShown       = 20
)

// Genius is the upstream surface the tools depend on; *genius.Client
// implements it.
type Genius interface {
	Search(ctx context.Context, query string, opts genius.SearchOptions) (json.RawMessage, error)
	SearchSong(ctx context.Context, title, artist string) (*genius.Song, error)
	Artist(ctx context.Context, id int) (*genius.Artist, error)
	Album(ctx context.Context, id int) (*genius.Album, error)
	ArtistSongs(ctx context.Context, id, perPage int, sort genius.Sort) ([]genius.Song, error)
	ArtistAlbums(ctx context.Context, id int) ([]genius.Album, error)
	AlbumTracks(ctx context.Context, id int) (json.RawMessage, error)
	Lyrics(ctx context.Context, songURL string) (string, error)
}

// Service holds the immutable client shared by all tool calls.
type Service struct {
	client     Genius
	maxPerPage int
	logger     *log.Entry
}

// NewService builds the tool surface. A nil client puts the service in
// degraded mode where every call answers NotInitialized. Callers holding a
// nil *genius.Client must pass a literal nil, not the typed pointer.
func NewService(client Genius, maxPerPage int) *Service {
	if maxPerPage <= 0 || maxPerPage > maxSearchPerPage {
		maxPerPage = maxSearchPerPage
	}
	return &Service{
		client:     client,
		maxPerPage: maxPerPage,
		logger:     logging.For("tools"),
	}
}

// Ready reports whether a Genius client is configured.
func (s *Service) Ready() bool { return s.client != nil }

// upstreamError logs and reports an error on a tool's main operation and
// renders it for the caller.
func (s *Service) upstreamError(ctx context.Context, doing string, err error) string {
	s.logger.WithError(err).Errorf("error %s", doing)
	sentryhelper.CaptureException(ctx, err)
	return fmt.Sprintf("Error %s: %v", doing, err)
}

func invalid(format string, args ...any) string {
	return "Invalid input: " + fmt.Sprintf(format, args...)
}

// IsErrorText reports whether a tool text describes a failure rather than
// an expected outcome.
func IsErrorText(text string) bool {
	return strings.HasPrefix(text, "Error") || strings.HasPrefix(text, "Invalid input")
}

func clamp(v, def, hi int) int {
	if v <= 0 {
		v = def
	}
	return min(v, hi)
}

func yearOr(year int, fallback string) string {
	if year <= 0 {
		return fallback
	}
	return fmt.Sprint(year)
}
