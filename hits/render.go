package hits

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"geniusmcp/models"
)

const (
	UnknownArtist = "Unknown Artist"
	UnknownItem   = "Unknown Item"
)

// SongArtist prefers the explicit credit, then the primary artist.
func (h Hit) SongArtist() string {
	switch {
	case h.ArtistNames != "":
		return h.ArtistNames
	case h.PrimaryArtistName != "":
		return h.PrimaryArtistName
	default:
		return UnknownArtist
	}
}

func (h Hit) AlbumArtist() string {
	if h.AlbumArtistName != "" {
		return h.AlbumArtistName
	}
	return UnknownArtist
}

// Label is the best available display name for any hit.
func (h Hit) Label() string {
	switch {
	case h.Name != "":
		return h.Name
	case h.Title != "":
		return h.Title
	default:
		return UnknownItem
	}
}

// Render formats one hit as a Markdown list item, with follow-up tool calls
// for artists and albums.
func Render(h Hit) string {
	switch h.Kind {
	case models.KindSong:
		return fmt.Sprintf("- Song: **%s** by %s", h.Title, h.SongArtist())
	case models.KindArtist:
		return fmt.Sprintf("- Artist: **%s** (ID: %d)\n"+
			"  - Songs: `get_artist_songs(artist_identifier=\"%d\")`\n"+
			"  - Albums: `get_artist_albums(artist_identifier=\"%d\")`",
			h.Name, h.ID, h.ID, h.ID)
	case models.KindAlbum:
		return fmt.Sprintf("- Album: **%s** by %s (ID: %d)\n"+
			"  - Tracks: `get_album_tracks(album_identifier=\"%d\")`",
			h.Name, h.AlbumArtist(), h.ID, h.ID)
	default:
		return fmt.Sprintf("- %s: %s", capitalize(h.Type), h.Label())
	}
}

// NoResults is the message for an empty search.
func NoResults(query string) string {
	return fmt.Sprintf("No results found for '%s'", query)
}

// RenderList renders a whole result page, or NoResults when hs is empty.
func RenderList(query string, hs []Hit) string {
	if len(hs) == 0 {
		return NoResults(query)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "# Search Results for '%s'\n\n", query)
	for i, h := range hs {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(Render(h))
	}
	return b.String()
}

func capitalize(s string) string {
	if s == "" {
		return "Item"
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
