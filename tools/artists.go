package tools

import (
	"context"
	"fmt"
	"strings"

	"geniusmcp/genius"
	"geniusmcp/models"
	"geniusmcp/resolver"
)

// GetArtistSongs lists an artist's songs by popularity or title.
func (s *Service) GetArtistSongs(ctx context.Context, identifier string, perPage int, sort string) string {
	if !s.Ready() {
		return NotInitialized
	}
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return invalid("artist_identifier must not be empty")
	}
	order := genius.Sort(strings.ToLower(strings.TrimSpace(sort)))
	switch order {
	case "":
		order = genius.SortPopularity
	case genius.SortPopularity, genius.SortTitle:
	default:
		return invalid("sort must be %q or %q", genius.SortPopularity, genius.SortTitle)
	}

	res := resolver.Resolve(ctx, s.client, models.KindArtist, identifier)
	if !res.Found() {
		return fmt.Sprintf("Could not find artist with identifier: %s", identifier)
	}
	artist := res.Entity

	songs, err := s.client.ArtistSongs(ctx, artist.ID, clamp(perPage, defaultSongsPerPage, s.maxPerPage), order)
	if err != nil {
		return s.upstreamError(ctx, "fetching songs for "+artist.Name, err)
	}
	if len(songs) == 0 {
		return fmt.Sprintf("No songs found for artist: %s", artist.Name)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Songs by %s\n\n", artist.Name)
	for i, song := range songs {
		fmt.Fprintf(&b, "%d. **%s**", i+1, song.Title)
		if song.ArtistNames != "" && song.ArtistNames != artist.Name {
			fmt.Fprintf(&b, " (%s)", song.ArtistNames)
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "\n%s\n%s", lyricsHint(songs[0].Title, artist.Name), songResourceHint(artist.Name, songs[0].Title))
	return b.String()
}

// GetArtistAlbums lists an artist's albums in the order Genius returns them.
func (s *Service) GetArtistAlbums(ctx context.Context, identifier string) string {
	if !s.Ready() {
		return NotInitialized
	}
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return invalid("artist_identifier must not be empty")
	}

	res := resolver.Resolve(ctx, s.client, models.KindArtist, identifier)
	if !res.Found() {
		return fmt.Sprintf("Could not find artist with identifier: %s", identifier)
	}
	artist := res.Entity

	albums, err := s.client.ArtistAlbums(ctx, artist.ID)
	if err != nil {
		return s.upstreamError(ctx, "fetching albums for "+artist.Name, err)
	}
	if len(albums) == 0 {
		return fmt.Sprintf("No albums found for artist: %s", artist.Name)
	}

	shown := albums[:min(len(albums), maxAlbumsShown)]
	var b strings.Builder
	fmt.Fprintf(&b, "# Albums by %s\n\n", artist.Name)
	for i, album := range shown {
		fmt.Fprintf(&b, "%d. **%s** (%s) (ID: %d)\n", i+1, album.Name, yearOr(album.Year(), "Unknown"), album.ID)
	}
	fmt.Fprintf(&b, "\n%s", tracksHint(shown[0].ID))
	if len(albums) > len(shown) {
		fmt.Fprintf(&b, "\n\nShowing %d of %d albums", len(shown), len(albums))
	}
	return b.String()
}

// ArtistInfo renders the artist://{artist_name}/info resource.
func (s *Service) ArtistInfo(ctx context.Context, name string) string {
	if !s.Ready() {
		return NotInitialized
	}
	name = strings.TrimSpace(name)
	res := resolver.Resolve(ctx, s.client, models.KindArtist, name)
	if !res.Found() {
		return fmt.Sprintf("Could not find artist: %s", name)
	}

	artist, err := s.client.Artist(ctx, res.Entity.ID)
	if err != nil {
		return s.upstreamError(ctx, "fetching artist "+res.Entity.Name, err)
	}

	alternate := "None"
	if len(artist.AlternateNames) > 0 {
		alternate = strings.Join(artist.AlternateNames, ", ")
	}
	description := artist.DescriptionText()
	if description == "" || description == "?" {
		description = "No description available"
	}
	return fmt.Sprintf("# %s\n\n**Alternate names**: %s\n\n**Description**:\n%s\n\n**Followers count**: %d\n",
		artist.Name, alternate, description, artist.FollowersCount)
}
