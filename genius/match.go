package genius

import (
	"context"
	"fmt"
	"strings"

	"github.com/hbollon/go-edlib"

	"geniusmcp/hits"
	"geniusmcp/models"
)

// SearchSong finds the song best matching title (and artist, when given)
// among the song hits of a song-scoped search. Hits rejected by the title
// filters are skipped; ties keep Genius' own ranking. The full song record is
// fetched when possible, otherwise the hit itself is returned.
func (c *Client) SearchSong(ctx context.Context, title, artist string) (*Song, error) {
	raw, err := c.SearchSongs(ctx, title, artist)
	if err != nil {
		return nil, err
	}
	all, err := hits.Flatten(raw)
	if err != nil {
		return nil, fmt.Errorf("genius song search: %w", err)
	}

	var (
		best      hits.Hit
		bestScore float32 = -1
	)
	for _, h := range all {
		if h.Kind != models.KindSong || !c.AcceptsSongTitle(h.Title) {
			continue
		}
		score := matchScore(title, artist, h)
		if score > bestScore {
			best, bestScore = h, score
		}
	}
	if bestScore < 0 {
		return nil, ErrNotFound
	}

	song, err := c.Song(ctx, best.ID)
	if err != nil {
		c.logger.Debugf("song %d detail lookup failed, using search hit: %v", best.ID, err)
		return songFromHit(best), nil
	}
	if song.URL == "" {
		song.URL = best.URL
	}
	return song, nil
}

func matchScore(title, artist string, h hits.Hit) float32 {
	score := similarity(title, h.Title)
	if artist != "" {
		score = (score + similarity(artist, h.SongArtist())) / 2
	}
	return score
}

func similarity(a, b string) float32 {
	s, err := edlib.StringsSimilarity(strings.ToLower(a), strings.ToLower(b), edlib.JaroWinkler)
	if err != nil {
		return 0
	}
	return s
}

func songFromHit(h hits.Hit) *Song {
	s := &Song{
		ID:          h.ID,
		Title:       h.Title,
		URL:         h.URL,
		ArtistNames: h.ArtistNames,
	}
	if h.PrimaryArtistName != "" {
		s.PrimaryArtist = &Artist{Name: h.PrimaryArtistName}
	}
	return s
}
