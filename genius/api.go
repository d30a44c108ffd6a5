package genius

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	sentry "github.com/getsentry/sentry-go"

	"geniusmcp/lyrics"
)

const (
	maxPerPage    = 50
	maxAlbumPages = 10
)

// Search queries Genius. The returned value is the raw "response" object;
// its envelope differs between typed and untyped searches.
func (c *Client) Search(ctx context.Context, query string, opts SearchOptions) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("q", query)
	if opts.PerPage > 0 {
		params.Set("per_page", strconv.Itoa(min(opts.PerPage, maxPerPage)))
	}
	if opts.Page > 0 {
		params.Set("page", strconv.Itoa(opts.Page))
	}

	var raw json.RawMessage
	var err error
	if opts.Type == "" {
		err = c.getJSON(ctx, "search", c.apiRoot, "search", params, &raw)
	} else {
		err = c.getJSON(ctx, "search_"+opts.Type, c.publicRoot, "search/"+url.PathEscape(opts.Type), params, &raw)
	}
	if err != nil {
		return nil, err
	}
	return raw, nil
}

// SearchArtists runs an artist-scoped search.
func (c *Client) SearchArtists(ctx context.Context, name string) (json.RawMessage, error) {
	return c.Search(ctx, name, SearchOptions{Type: "artist"})
}

// SearchSongs runs a song-scoped search for title, optionally narrowed by artist.
func (c *Client) SearchSongs(ctx context.Context, title, artist string) (json.RawMessage, error) {
	query := strings.TrimSpace(title + " " + artist)
	return c.Search(ctx, query, SearchOptions{Type: "song"})
}

func (c *Client) Artist(ctx context.Context, id int) (*Artist, error) {
	params := url.Values{"text_format": {"plain"}}
	var resp struct {
		Artist *Artist `json:"artist"`
	}
	path := fmt.Sprintf("artists/%d", id)
	if err := c.getJSON(ctx, "get_artist", c.apiRoot, path, params, &resp); err != nil {
		return nil, err
	}
	if resp.Artist == nil || resp.Artist.ID == 0 {
		return nil, fmt.Errorf("genius %s: artist missing from response", path)
	}
	return resp.Artist, nil
}

func (c *Client) Album(ctx context.Context, id int) (*Album, error) {
	params := url.Values{"text_format": {"plain"}}
	var resp struct {
		Album json.RawMessage `json:"album"`
	}
	path := fmt.Sprintf("albums/%d", id)
	if err := c.getJSON(ctx, "get_album", c.publicRoot, path, params, &resp); err != nil {
		return nil, err
	}
	if len(resp.Album) == 0 || bytes.Equal(resp.Album, []byte("null")) {
		return nil, fmt.Errorf("genius %s: album missing from response", path)
	}
	album := &Album{}
	if err := json.Unmarshal(resp.Album, album); err != nil {
		return nil, fmt.Errorf("genius %s: decode album: %w", path, err)
	}
	if album.ID == 0 {
		return nil, fmt.Errorf("genius %s: album has no id", path)
	}
	album.Raw = resp.Album
	return album, nil
}

func (c *Client) Song(ctx context.Context, id int) (*Song, error) {
	params := url.Values{"text_format": {"plain"}}
	var resp struct {
		Song *Song `json:"song"`
	}
	path := fmt.Sprintf("songs/%d", id)
	if err := c.getJSON(ctx, "get_song", c.apiRoot, path, params, &resp); err != nil {
		return nil, err
	}
	if resp.Song == nil || resp.Song.ID == 0 {
		return nil, fmt.Errorf("genius %s: song missing from response", path)
	}
	return resp.Song, nil
}

// ArtistSongs returns the first page of an artist's songs.
func (c *Client) ArtistSongs(ctx context.Context, id, perPage int, sort Sort) ([]Song, error) {
	if sort == "" {
		sort = SortPopularity
	}
	params := url.Values{}
	params.Set("per_page", strconv.Itoa(min(max(perPage, 1), maxPerPage)))
	params.Set("sort", string(sort))
	params.Set("page", "1")

	var resp struct {
		Songs []Song `json:"songs"`
	}
	if err := c.getJSON(ctx, "get_artist_songs", c.apiRoot, fmt.Sprintf("artists/%d/songs", id), params, &resp); err != nil {
		return nil, err
	}
	return resp.Songs, nil
}

// ArtistAlbums follows next_page until the listing ends.
func (c *Client) ArtistAlbums(ctx context.Context, id int) ([]Album, error) {
	var albums []Album
	page := 1
	for range maxAlbumPages {
		params := url.Values{}
		params.Set("per_page", strconv.Itoa(maxPerPage))
		params.Set("page", strconv.Itoa(page))

		var resp struct {
			Albums   []Album `json:"albums"`
			NextPage *int    `json:"next_page"`
		}
		if err := c.getJSON(ctx, "get_artist_albums", c.publicRoot, fmt.Sprintf("artists/%d/albums", id), params, &resp); err != nil {
			if len(albums) > 0 {
				c.logger.Warnf("stopping album listing for artist %d at page %d: %v", id, page, err)
				return albums, nil
			}
			return nil, err
		}
		albums = append(albums, resp.Albums...)
		if resp.NextPage == nil || *resp.NextPage <= page {
			return albums, nil
		}
		page = *resp.NextPage
	}
	c.logger.Debugf("artist %d album listing truncated at %d pages", id, maxAlbumPages)
	return albums, nil
}

// AlbumTracks returns the raw track listing response of the album tracks endpoint.
func (c *Client) AlbumTracks(ctx context.Context, id int) (json.RawMessage, error) {
	params := url.Values{"per_page": {strconv.Itoa(maxPerPage)}}
	var raw json.RawMessage
	if err := c.getJSON(ctx, "get_album_tracks", c.publicRoot, fmt.Sprintf("albums/%d/tracks", id), params, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// Lyrics scrapes the lyrics from a song page. Section headers are removed
// when the client is configured to do so.
func (c *Client) Lyrics(ctx context.Context, songURL string) (string, error) {
	span := sentry.StartSpan(ctx, "genius.get_lyrics")
	span.Description = "Scrape lyrics from song page"
	span.SetTag("url", songURL)
	defer span.Finish()

	if songURL == "" {
		span.Status = sentry.SpanStatusInvalidArgument
		return "", fmt.Errorf("genius: song has no page url")
	}

	body, err := c.fetch(span.Context(), songURL, "text/html,application/xhtml+xml", false)
	if err != nil {
		span.Status = statusFor(err)
		return "", fmt.Errorf("genius lyrics page: %w", err)
	}

	text, err := lyrics.Extract(bytes.NewReader(body))
	if err != nil {
		span.Status = sentry.SpanStatusDataLoss
		return "", err
	}
	if c.removeSectionHeaders {
		text = lyrics.RemoveSectionHeaders(text)
	}

	span.Status = sentry.SpanStatusOK
	span.SetData("lyrics_length", len(text))
	return text, nil
}
