package tools

import (
	"context"
	"fmt"
	"strings"

	"geniusmcp/models"
	"geniusmcp/resolver"
	"geniusmcp/tracks"
)

// GetAlbumTracks resolves an album and lists its tracks.
func (s *Service) GetAlbumTracks(ctx context.Context, identifier string) string {
	if !s.Ready() {
		return NotInitialized
	}
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return invalid("album_identifier must not be empty")
	}

	res := resolver.Resolve(ctx, s.client, models.KindAlbum, identifier)
	if !res.Found() {
		return fmt.Sprintf("Could not find album with identifier: %s", identifier)
	}

	album := res.Album
	if album == nil {
		var err error
		album, err = s.client.Album(ctx, res.Entity.ID)
		if err != nil {
			return s.upstreamError(ctx, "fetching album "+res.Entity.Name, err)
		}
	}

	result := tracks.Extract(ctx, album, s.client)
	if result.Empty() {
		return fmt.Sprintf("Could not extract track titles for album: %s", album.Name)
	}
	s.logger.WithField("tool", "get_album_tracks").Debugf("album %d tracks from %s", album.ID, result.Shape)

	var b strings.Builder
	fmt.Fprintf(&b, "# Tracks on %s\n\n", album.Name)
	artist := album.ArtistName()
	if artist == "" {
		artist = res.Entity.ArtistName
	}
	if artist != "" {
		fmt.Fprintf(&b, "**Artist**: %s\n\n", artist)
	}
	for _, t := range result.Tracks {
		fmt.Fprintf(&b, "%d. %s\n", t.Number, t.Title)
	}
	return strings.TrimRight(b.String(), "\n")
}
