package handlers

import (
	"context"
	"encoding/json"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"geniusmcp/tools"
)

type SearchParams struct {
	Query      string `json:"query"`
	SearchType string `json:"search_type,omitempty"`
	PerPage    int    `json:"per_page,omitempty"`
	Page       int    `json:"page,omitempty"`
}

type LyricsParams struct {
	Title  string `json:"title"`
	Artist string `json:"artist,omitempty"`
}

type ArtistSongsParams struct {
	ArtistIdentifier string `json:"artist_identifier"`
	PerPage          int    `json:"per_page,omitempty"`
	Sort             string `json:"sort,omitempty"`
}

type ArtistAlbumsParams struct {
	ArtistIdentifier string `json:"artist_identifier"`
}

type AlbumTracksParams struct {
	AlbumIdentifier string `json:"album_identifier"`
}

func (s *Server) registerTools() {
	searchTypes := make([]any, 0, len(tools.SearchTypes))
	for _, t := range tools.SearchTypes {
		searchTypes = append(searchTypes, t)
	}

	s.server.AddTool(&mcp.Tool{
		Name:        "search",
		Description: "Search Genius for songs, artists, albums and more. Artist and album results include ids for the other tools.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"query":       {Type: "string", Description: "Search text"},
				"search_type": {Type: "string", Description: "Restrict results to one content type; omit to search everything", Enum: searchTypes},
				"per_page":    {Type: "integer", Description: "Results per page (1-50, default 10)", Minimum: bound(1), Maximum: bound(50)},
				"page":        {Type: "integer", Description: "Page number, starting at 1", Minimum: bound(1)},
			},
			Required: []string{"query"},
		},
	}, s.handle("search", func(ctx context.Context, raw json.RawMessage) string {
		var p SearchParams
		if err := decode(raw, &p); err != nil {
			return "Invalid input: " + err.Error()
		}
		return s.service.Search(ctx, p.Query, p.SearchType, p.PerPage, p.Page)
	}))

	s.server.AddTool(&mcp.Tool{
		Name:        "get_lyrics",
		Description: "Get the lyrics of a song, with its artist, album and release year.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"title":  {Type: "string", Description: "Song title"},
				"artist": {Type: "string", Description: "Artist name, improves matching"},
			},
			Required: []string{"title"},
		},
	}, s.handle("get_lyrics", func(ctx context.Context, raw json.RawMessage) string {
		var p LyricsParams
		if err := decode(raw, &p); err != nil {
			return "Invalid input: " + err.Error()
		}
		return s.service.GetLyrics(ctx, p.Title, p.Artist)
	}))

	s.server.AddTool(&mcp.Tool{
		Name:        "get_artist_songs",
		Description: "List an artist's songs. The artist may be given by Genius id or by name.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"artist_identifier": {Type: "string", Description: "Genius artist id or artist name"},
				"per_page":          {Type: "integer", Description: "Number of songs (default 20)", Minimum: bound(1), Maximum: bound(50)},
				"sort":              {Type: "string", Description: "Sort order", Enum: []any{"popularity", "title"}},
			},
			Required: []string{"artist_identifier"},
		},
	}, s.handle("get_artist_songs", func(ctx context.Context, raw json.RawMessage) string {
		var p ArtistSongsParams
		if err := decode(raw, &p); err != nil {
			return "Invalid input: " + err.Error()
		}
		return s.service.GetArtistSongs(ctx, p.ArtistIdentifier, p.PerPage, p.Sort)
	}))

	s.server.AddTool(&mcp.Tool{
		Name:        "get_artist_albums",
		Description: "List an artist's albums with release years. The artist may be given by Genius id or by name.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"artist_identifier": {Type: "string", Description: "Genius artist id or artist name"},
			},
			Required: []string{"artist_identifier"},
		},
	}, s.handle("get_artist_albums", func(ctx context.Context, raw json.RawMessage) string {
		var p ArtistAlbumsParams
		if err := decode(raw, &p); err != nil {
			return "Invalid input: " + err.Error()
		}
		return s.service.GetArtistAlbums(ctx, p.ArtistIdentifier)
	}))

	s.server.AddTool(&mcp.Tool{
		Name:        "get_album_tracks",
		Description: "List the tracks of an album. The album may be given by Genius id or by name.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"album_identifier": {Type: "string", Description: "Genius album id or album name"},
			},
			Required: []string{"album_identifier"},
		},
	}, s.handle("get_album_tracks", func(ctx context.Context, raw json.RawMessage) string {
		var p AlbumTracksParams
		if err := decode(raw, &p); err != nil {
			return "Invalid input: " + err.Error()
		}
		return s.service.GetAlbumTracks(ctx, p.AlbumIdentifier)
	}))
}

func bound(v float64) *float64 { return &v }
