package models

import "strings"

// Kind is the content type of a Genius search hit.
type Kind string

const (
	KindSong   Kind = "song"
	KindArtist Kind = "artist"
	KindAlbum  Kind = "album"
	KindOther  Kind = "other"
)

// KindOf maps the raw upstream "type" tag onto a Kind.
func KindOf(raw string) Kind {
	switch strings.ToLower(raw) {
	case "song":
		return KindSong
	case "artist":
		return KindArtist
	case "album":
		return KindAlbum
	default:
		return KindOther
	}
}

// ResolvedEntity is the canonical reference produced by identifier resolution.
type ResolvedEntity struct {
	ID         int
	Name       string
	ArtistName string // album artist; empty for artists
}

// Track is one entry of an album track list; Number is 1-based.
type Track struct {
	Number int
	Title  string
}
