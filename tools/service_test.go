package tools

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geniusmcp/genius"
)

const bohemianPage = `<html><body>
<div data-lyrics-container="true">Bohemian Rhapsody Lyrics<br/>[Intro]<br/>Is this the real life?<br/>Is this just fantasy?<br/>Caught in a landslide<br/>No escape from reality</div>
</body></html>`

func respond(w http.ResponseWriter, response string) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"meta":{"status":200},"response":%s}`, response)
}

// fakeGenius serves a small slice of the Genius API: Queen (563), the album
// A Night at the Opera (9), an album without tracks (10) and one song.
func fakeGenius(t *testing.T) *http.ServeMux {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/public/search/song", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("q") {
		case "Bohemian Rhapsody Queen", "Bohemian Rhapsody":
			respond(w, fmt.Sprintf(`{"sections":[{"type":"song","hits":[
				{"type":"song","result":{"id":1063,"title":"Bohemian Rhapsody","artist_names":"Queen","url":"http://%s/pages/bohemian"}}]}]}`, r.Host))
		default:
			respond(w, `{"sections":[{"type":"song","hits":[]}]}`)
		}
	})
	mux.HandleFunc("/api/songs/1063", func(w http.ResponseWriter, r *http.Request) {
		respond(w, fmt.Sprintf(`{"song":{"id":1063,"title":"Bohemian Rhapsody","artist_names":"Queen",
			"url":"http://%s/pages/bohemian","release_date_components":{"year":1975},
			"release_date_for_display":"October 31, 1975","album":{"id":9,"name":"A Night at the Opera"}}}`, r.Host))
	})
	mux.HandleFunc("/pages/bohemian", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, bohemianPage)
	})

	mux.HandleFunc("/public/search/artist", func(w http.ResponseWriter, r *http.Request) {
		if strings.EqualFold(r.URL.Query().Get("q"), "queen") {
			respond(w, `{"sections":[{"type":"artist","hits":[{"type":"artist","result":{"id":563,"name":"Queen"}}]}]}`)
			return
		}
		respond(w, `{"sections":[]}`)
	})
	mux.HandleFunc("/api/artists/563", func(w http.ResponseWriter, r *http.Request) {
		respond(w, `{"artist":{"id":563,"name":"Queen","alternate_names":["Queen (band)"],
			"followers_count":1200,"description":{"plain":"British rock band."}}}`)
	})
	mux.HandleFunc("/api/artists/563/songs", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "title", r.URL.Query().Get("sort"))
		assert.Equal(t, "2", r.URL.Query().Get("per_page"))
		respond(w, `{"songs":[{"id":1,"title":"Another One Bites the Dust","artist_names":"Queen"},
			{"id":2,"title":"Bicycle Race","artist_names":"Queen"}],"next_page":2}`)
	})
	mux.HandleFunc("/public/artists/563/albums", func(w http.ResponseWriter, r *http.Request) {
		var albums []string
		for i := 1; i <= 25; i++ {
			albums = append(albums, fmt.Sprintf(`{"id":%d,"name":"Album %d","release_date_components":{"year":%d}}`, 1000+i, i, 1970+i))
		}
		respond(w, `{"albums":[`+strings.Join(albums, ",")+`],"next_page":null}`)
	})

	mux.HandleFunc("/public/search/album", func(w http.ResponseWriter, r *http.Request) {
		switch strings.ToLower(r.URL.Query().Get("q")) {
		case "a night at the opera":
			respond(w, `{"sections":[{"type":"album","hits":[{"type":"album","result":{"id":9,"name":"A Night at the Opera","artist":{"name":"Queen"}}}]}]}`)
		case "empty":
			respond(w, `{"sections":[{"type":"album","hits":[{"type":"album","result":{"id":10,"name":"Empty"}}]}]}`)
		default:
			respond(w, `{"sections":[]}`)
		}
	})
	mux.HandleFunc("/public/albums/9", func(w http.ResponseWriter, r *http.Request) {
		respond(w, `{"album":{"id":9,"name":"A Night at the Opera","artist":{"name":"Queen"},
			"tracks":[{"title":"Death on Two Legs"},{"title":"Lazing on a Sunday Afternoon"}]}}`)
	})
	mux.HandleFunc("/public/albums/10", func(w http.ResponseWriter, r *http.Request) {
		respond(w, `{"album":{"id":10,"name":"Empty"}}`)
	})
	mux.HandleFunc("/public/albums/10/tracks", func(w http.ResponseWriter, r *http.Request) {
		respond(w, `{"tracks":[]}`)
	})

	mux.HandleFunc("/api/search", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") == "explode" {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		respond(w, `{"hits":[
			{"type":"artist","result":{"id":563,"name":"Queen"}},
			{"type":"song","result":{"id":1063,"title":"Bohemian Rhapsody","primary_artist":{"name":"Queen"}}}]}`)
	})
	return mux
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	srv := httptest.NewServer(fakeGenius(t))
	t.Cleanup(srv.Close)

	client, err := genius.New(genius.Options{
		Token:                "test-token",
		Timeout:              2 * time.Second,
		Retries:              1,
		RetryDelay:           time.Millisecond,
		RemoveSectionHeaders: true,
		APIRoot:              srv.URL + "/api/",
		PublicRoot:           srv.URL + "/public/",
	})
	require.NoError(t, err)
	return NewService(client, 50)
}

func TestGetLyrics_Found(t *testing.T) {
	s := newTestService(t)

	out := s.GetLyrics(context.Background(), "Bohemian Rhapsody", "Queen")

	assert.Contains(t, out, "# Bohemian Rhapsody")
	assert.Contains(t, out, "**Artist**: Queen")
	assert.Contains(t, out, "**Album**: A Night at the Opera")
	assert.Contains(t, out, "**Year**: 1975")
	assert.Contains(t, out, "## Lyrics\n\nIs this the real life?")
	assert.NotContains(t, out, "Bohemian Rhapsody Lyrics")
	assert.NotContains(t, out, "[Intro]")
}

func TestGetLyrics_NotFound(t *testing.T) {
	s := newTestService(t)

	assert.Equal(t, "Could not find lyrics for 'zzzz' by Nobody", s.GetLyrics(context.Background(), "zzzz", "Nobody"))
	assert.Equal(t, "Could not find lyrics for 'zzzz'", s.GetLyrics(context.Background(), "zzzz", ""))
}

func TestSearch(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	t.Run("zero hits", func(t *testing.T) {
		assert.Equal(t, "No results found for 'query-with-zero-hits'", s.Search(ctx, "query-with-zero-hits", "song", 10, 1))
	})
	t.Run("untyped", func(t *testing.T) {
		out := s.Search(ctx, "queen", "", 0, 0)
		assert.True(t, strings.HasPrefix(out, "# Search Results for 'queen'"))
		assert.Contains(t, out, `get_artist_songs(artist_identifier="563")`)
		assert.Contains(t, out, "**Bohemian Rhapsody** by Queen")
	})
	t.Run("upstream error", func(t *testing.T) {
		out := s.Search(ctx, "explode", "", 10, 1)
		assert.True(t, strings.HasPrefix(out, "Error searching Genius:"), out)
		assert.True(t, IsErrorText(out))
	})
	t.Run("invalid type", func(t *testing.T) {
		out := s.Search(ctx, "queen", "podcast", 10, 1)
		assert.True(t, strings.HasPrefix(out, "Invalid input:"), out)
	})
	t.Run("empty query", func(t *testing.T) {
		assert.Equal(t, "Invalid input: query must not be empty", s.Search(ctx, "  ", "", 10, 1))
	})
}

func TestGetArtistSongs(t *testing.T) {
	s := newTestService(t)

	out := s.GetArtistSongs(context.Background(), "Queen", 2, "title")

	assert.True(t, strings.HasPrefix(out, "# Songs by Queen\n\n"))
	assert.Contains(t, out, "1. **Another One Bites the Dust**")
	assert.Contains(t, out, "2. **Bicycle Race**")
	assert.Contains(t, out, `get_lyrics(title="Another One Bites the Dust", artist="Queen")`)
}

func TestGetArtistSongs_Errors(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	assert.Equal(t, "Could not find artist with identifier: nobody", s.GetArtistSongs(ctx, "nobody", 5, ""))
	assert.True(t, strings.HasPrefix(s.GetArtistSongs(ctx, "Queen", 5, "release_date"), "Invalid input:"))
}

func TestGetArtistAlbums_Truncates(t *testing.T) {
	s := newTestService(t)

	out := s.GetArtistAlbums(context.Background(), "563")

	assert.True(t, strings.HasPrefix(out, "# Albums by Queen\n\n"))
	assert.Contains(t, out, "1. **Album 1** (1971) (ID: 1001)")
	assert.Contains(t, out, "20. **Album 20**")
	assert.NotContains(t, out, "Album 21")
	assert.Contains(t, out, `get_album_tracks(album_identifier="1001")`)
	assert.True(t, strings.HasSuffix(out, "Showing 20 of 25 albums"))
}

func TestGetAlbumTracks(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	t.Run("by name", func(t *testing.T) {
		out := s.GetAlbumTracks(ctx, "A Night at the Opera")
		assert.Equal(t, "# Tracks on A Night at the Opera\n\n**Artist**: Queen\n\n1. Death on Two Legs\n2. Lazing on a Sunday Afternoon", out)
	})
	t.Run("by id", func(t *testing.T) {
		out := s.GetAlbumTracks(ctx, "9")
		assert.Contains(t, out, "# Tracks on A Night at the Opera")
	})
	t.Run("unknown id", func(t *testing.T) {
		assert.Equal(t, "Could not find album with identifier: 11769", s.GetAlbumTracks(ctx, "11769"))
	})
	t.Run("no tracks", func(t *testing.T) {
		assert.Equal(t, "Could not extract track titles for album: Empty", s.GetAlbumTracks(ctx, "empty"))
	})
}

func TestResources(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	info := s.ArtistInfo(ctx, "Queen")
	assert.Contains(t, info, "# Queen")
	assert.Contains(t, info, "**Alternate names**: Queen (band)")
	assert.Contains(t, info, "British rock band.")
	assert.Contains(t, info, "**Followers count**: 1200")
	assert.Equal(t, "Could not find artist: Nobody", s.ArtistInfo(ctx, "Nobody"))

	song := s.SongResource(ctx, "Queen", "Bohemian Rhapsody")
	assert.True(t, strings.HasPrefix(song, "# Bohemian Rhapsody by Queen"))
	assert.Contains(t, song, "**Release date**: October 31, 1975")
	assert.Contains(t, song, "Is this the real life?")
	assert.Equal(t, "Could not find song 'zzzz' by Nobody", s.SongResource(ctx, "Nobody", "zzzz"))
}

func TestDegradedMode(t *testing.T) {
	s := NewService(nil, 50)
	ctx := context.Background()

	calls := map[string]string{
		"search":            s.Search(ctx, "queen", "", 10, 1),
		"get_lyrics":        s.GetLyrics(ctx, "Bohemian Rhapsody", "Queen"),
		"get_artist_songs":  s.GetArtistSongs(ctx, "Queen", 10, ""),
		"get_artist_albums": s.GetArtistAlbums(ctx, "Queen"),
		"get_album_tracks":  s.GetAlbumTracks(ctx, "11769"),
		"artist_info":       s.ArtistInfo(ctx, "Queen"),
		"song":              s.SongResource(ctx, "Queen", "Bohemian Rhapsody"),
	}
	for name, out := range calls {
		assert.Equal(t, NotInitialized, out, name)
		assert.Contains(t, out, "client not initialized", name)
	}
}

func TestPrompts(t *testing.T) {
	p := AnalyzeLyricsPrompt("Queen", "Bohemian Rhapsody")
	assert.Contains(t, p, "'Bohemian Rhapsody' by Queen")
	assert.Contains(t, p, `get_lyrics(title="Bohemian Rhapsody", artist="Queen")`)

	c := CompareSongsPrompt("Queen", "Bohemian Rhapsody", "Somebody to Love")
	assert.Contains(t, c, "'Bohemian Rhapsody' and 'Somebody to Love' by Queen")
	assert.Contains(t, c, `get_lyrics(title="Somebody to Love", artist="Queen")`)
}
