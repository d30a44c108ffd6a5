package resolver

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geniusmcp/genius"
	"geniusmcp/models"
)

type fakeAPI struct {
	artists  map[int]*genius.Artist
	albums   map[int]*genius.Album
	search   map[string]string // "type:query" -> raw response
	errAll   error
	searches []string
}

func (f *fakeAPI) Artist(_ context.Context, id int) (*genius.Artist, error) {
	if f.errAll != nil {
		return nil, f.errAll
	}
	if a, ok := f.artists[id]; ok {
		return a, nil
	}
	return nil, genius.ErrNotFound
}

func (f *fakeAPI) Album(_ context.Context, id int) (*genius.Album, error) {
	if f.errAll != nil {
		return nil, f.errAll
	}
	if a, ok := f.albums[id]; ok {
		return a, nil
	}
	return nil, genius.ErrNotFound
}

func (f *fakeAPI) Search(_ context.Context, q string, opts genius.SearchOptions) (json.RawMessage, error) {
	f.searches = append(f.searches, opts.Type+":"+q)
	if f.errAll != nil {
		return nil, f.errAll
	}
	if raw, ok := f.search[opts.Type+":"+q]; ok {
		return json.RawMessage(raw), nil
	}
	return json.RawMessage(`{"sections":[]}`), nil
}

func TestResolve(t *testing.T) {
	api := &fakeAPI{
		artists: map[int]*genius.Artist{563: {ID: 563, Name: "Queen"}},
		albums: map[int]*genius.Album{
			11039: {ID: 11039, Name: "Abbey Road", Artist: &genius.Artist{Name: "The Beatles"}},
		},
		search: map[string]string{
			"artist:queen": `{"sections":[{"type":"top_hit","hits":[{"type":"song","result":{"id":1,"title":"Bohemian Rhapsody"}}]},
				{"type":"artist","hits":[{"type":"artist","result":{"id":563,"name":"Queen"}}]}]}`,
			"album:thriller": `{"sections":[{"type":"album","hits":[{"type":"album","result":{"id":11769,"name":"Thriller","artist":{"name":"Michael Jackson"}}}]}]}`,
			"artist:1999":    `{"sections":[{"type":"artist","hits":[{"type":"artist","result":{"id":77,"name":"1999"}}]}]}`,

			"artist:ghost": `{"sections":[{"type":"artist","hits":[{"type":"artist","result":{"name":"ghost"}}]}]}`,

			"artist:queen live": `{"sections":[{"type":"artist","hits":[{"type":"artist","result":{"name":"ghost"}},
				{"type":"artist","result":{"id":5,"name":"Queen"}}]}]}`,
		},
	}

	tests := []struct {
		name       string
		kind       models.Kind
		identifier string
		wantStatus Status
		wantSource Source
		want       models.ResolvedEntity
	}{
		{
			name: "artist by id", kind: models.KindArtist, identifier: "563",
			wantStatus: Found, wantSource: SourceID,
			want: models.ResolvedEntity{ID: 563, Name: "Queen"},
		},
		{
			name: "album by id carries artist", kind: models.KindAlbum, identifier: " 11039 ",
			wantStatus: Found, wantSource: SourceID,
			want: models.ResolvedEntity{ID: 11039, Name: "Abbey Road", ArtistName: "The Beatles"},
		},
		{
			name: "artist by name skips other kinds", kind: models.KindArtist, identifier: "queen",
			wantStatus: Found, wantSource: SourceSearch,
			want: models.ResolvedEntity{ID: 563, Name: "Queen"},
		},
		{
			name: "album by name", kind: models.KindAlbum, identifier: "thriller",
			wantStatus: Found, wantSource: SourceSearch,
			want: models.ResolvedEntity{ID: 11769, Name: "Thriller", ArtistName: "Michael Jackson"},
		},
		{
			name: "numeric name falls back to search", kind: models.KindArtist, identifier: "1999",
			wantStatus: Found, wantSource: SourceSearch,
			want: models.ResolvedEntity{ID: 77, Name: "1999"},
		},
		{
			name: "hits without id are skipped", kind: models.KindArtist, identifier: "queen live",
			wantStatus: Found, wantSource: SourceSearch,
			want: models.ResolvedEntity{ID: 5, Name: "Queen"},
		},
		{name: "only hits without id", kind: models.KindArtist, identifier: "ghost", wantStatus: NotFound},
		{name: "unknown name", kind: models.KindArtist, identifier: "nobody", wantStatus: NotFound},
		{name: "unknown album id", kind: models.KindAlbum, identifier: "11769000", wantStatus: NotFound},
		{name: "empty identifier", kind: models.KindArtist, identifier: "  ", wantStatus: NotFound},
		{name: "songs do not resolve", kind: models.KindSong, identifier: "1", wantStatus: NotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(context.Background(), api, tt.kind, tt.identifier)
			require.Equal(t, tt.wantStatus, got.Status)
			if tt.wantStatus != Found {
				return
			}
			assert.Equal(t, tt.wantSource, got.Source)
			assert.Equal(t, tt.want, got.Entity)
		})
	}
}

func TestResolve_AlbumByIDKeepsAlbum(t *testing.T) {
	album := &genius.Album{ID: 5, Name: "Jazz"}
	api := &fakeAPI{albums: map[int]*genius.Album{5: album}}

	got := Resolve(context.Background(), api, models.KindAlbum, "5")
	require.True(t, got.Found())
	assert.Same(t, album, got.Album)
	assert.Empty(t, api.searches)
}

func TestResolve_Idempotent(t *testing.T) {
	api := &fakeAPI{artists: map[int]*genius.Artist{16775: {ID: 16775, Name: "The Beatles"}}}

	first := Resolve(context.Background(), api, models.KindArtist, "16775")
	second := Resolve(context.Background(), api, models.KindArtist, "16775")
	assert.Equal(t, first.Entity, second.Entity)
	assert.Equal(t, first.Status, second.Status)
}

func TestResolve_BothPhasesFail(t *testing.T) {
	boom := errors.New("connection reset")
	api := &fakeAPI{errAll: boom}

	got := Resolve(context.Background(), api, models.KindArtist, "42")
	assert.Equal(t, NotFound, got.Status)
	assert.ErrorIs(t, got.Err, boom)
	assert.Equal(t, []string{"artist:42"}, api.searches)
}
