package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"geniusmcp/genius"
	"geniusmcp/lyrics"
)

// GetLyrics finds a song and renders its metadata and cleaned lyrics.
func (s *Service) GetLyrics(ctx context.Context, title, artist string) string {
	if !s.Ready() {
		return NotInitialized
	}
	title, artist = strings.TrimSpace(title), strings.TrimSpace(artist)
	if title == "" {
		return invalid("title must not be empty")
	}

	song, text, msg := s.findLyrics(ctx, title, artist)
	if song == nil {
		if msg != "" {
			return msg
		}
		if artist != "" {
			return fmt.Sprintf("Could not find lyrics for '%s' by %s", title, artist)
		}
		return fmt.Sprintf("Could not find lyrics for '%s'", title)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", song.Title)
	fmt.Fprintf(&b, "**Artist**: %s\n", orUnknown(song.Artist()))
	albumName := ""
	if song.Album != nil {
		albumName = song.Album.Name
	}
	fmt.Fprintf(&b, "**Album**: %s\n", orUnknown(albumName))
	if y := song.Year(); y > 0 {
		fmt.Fprintf(&b, "**Year**: %d\n", y)
	}
	fmt.Fprintf(&b, "\n## Lyrics\n\n%s", lyrics.StripHeader(text))
	return b.String()
}

// SongResource renders the song://{artist_name}/{song_title} resource.
func (s *Service) SongResource(ctx context.Context, artist, title string) string {
	if !s.Ready() {
		return NotInitialized
	}
	song, text, msg := s.findLyrics(ctx, title, artist)
	if song == nil {
		if msg != "" {
			return msg
		}
		return fmt.Sprintf("Could not find song '%s' by %s", title, artist)
	}

	release := song.ReleaseDateForDisplay
	albumName := ""
	if song.Album != nil {
		albumName = song.Album.Name
	}
	return fmt.Sprintf("# %s by %s\n\n**Album**: %s\n**Release date**: %s\n\n## Lyrics\n\n%s",
		song.Title, orUnknown(song.Artist()), orUnknown(albumName), orUnknown(release), lyrics.StripHeader(text))
}

// findLyrics returns the song and its lyrics. A nil song with an empty
// message is a plain miss; a non-empty message is an upstream error already
// rendered for the caller.
func (s *Service) findLyrics(ctx context.Context, title, artist string) (*genius.Song, string, string) {
	song, err := s.client.SearchSong(ctx, title, artist)
	if errors.Is(err, genius.ErrNotFound) {
		s.logger.Debugf("no song matches %q by %q", title, artist)
		return nil, "", ""
	}
	if err != nil {
		return nil, "", s.upstreamError(ctx, "searching for song", err)
	}

	text, err := s.client.Lyrics(ctx, song.URL)
	if errors.Is(err, lyrics.ErrNoLyrics) || errors.Is(err, genius.ErrNotFound) {
		s.logger.Debugf("song %d has no lyrics page content", song.ID)
		return nil, "", ""
	}
	if err != nil {
		return nil, "", s.upstreamError(ctx, "fetching lyrics", err)
	}
	return song, text, ""
}

func orUnknown(v string) string {
	if v == "" {
		return "Unknown"
	}
	return v
}
