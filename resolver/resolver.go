// Package resolver turns user-supplied artist and album references, either
// numeric Genius ids or free-text names, into canonical entities.
package resolver

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"geniusmcp/genius"
	"geniusmcp/hits"
	"geniusmcp/logging"
	"geniusmcp/models"
	"geniusmcp/sentryhelper"
)

// API is the slice of the Genius client the resolver needs.
type API interface {
	Artist(ctx context.Context, id int) (*genius.Artist, error)
	Album(ctx context.Context, id int) (*genius.Album, error)
	Search(ctx context.Context, query string, opts genius.SearchOptions) (json.RawMessage, error)
}

type Status int

const (
	Found Status = iota
	NotFound
)

// Source records which phase produced the entity.
type Source string

const (
	SourceID     Source = "id"
	SourceSearch Source = "search"
)

// Result is the outcome of Resolve. Err keeps the last upstream error seen,
// if any, for logging; it does not change Status.
type Result struct {
	Status Status
	Source Source
	Entity models.ResolvedEntity

	// Album is the fetched album when an album was resolved by id.
	Album *genius.Album

	Err error
}

func (r Result) Found() bool { return r.Status == Found }

// step is the outcome of one resolution phase.
type step struct {
	found  bool
	entity models.ResolvedEntity
	album  *genius.Album
	err    error
}

// Resolve looks identifier up as an id first when it is all digits, then by
// name through a search scoped to kind. Only artists and albums resolve.
func Resolve(ctx context.Context, api API, kind models.Kind, identifier string) Result {
	logger := logging.For("resolver").WithField("kind", kind)
	identifier = strings.TrimSpace(identifier)

	if kind != models.KindArtist && kind != models.KindAlbum {
		return Result{Status: NotFound, Err: fmt.Errorf("cannot resolve %s references", kind)}
	}
	if identifier == "" {
		return Result{Status: NotFound}
	}

	span := sentryhelper.StartSpan(ctx, "resolver.resolve", fmt.Sprintf("%s %q", kind, identifier))
	span.SetTag("kind", string(kind))
	defer span.Finish()
	ctx = span.Context()

	var lastErr error
	if id, ok := numericID(identifier); ok {
		s := byID(ctx, api, kind, id)
		if s.found {
			return Result{Status: Found, Source: SourceID, Entity: s.entity, Album: s.album}
		}
		if s.err != nil {
			logger.Debugf("id lookup for %q failed, falling back to search: %v", identifier, s.err)
			lastErr = s.err
		}
	}

	sentryhelper.AddBreadcrumb(ctx, "resolver", fmt.Sprintf("search %s %q", kind, identifier))
	s := bySearch(ctx, api, kind, identifier)
	if s.found {
		return Result{Status: Found, Source: SourceSearch, Entity: s.entity}
	}
	if s.err != nil {
		logger.Warnf("search for %q failed: %v", identifier, s.err)
		lastErr = s.err
	} else {
		logger.Debugf("no %s matches %q", kind, identifier)
	}
	return Result{Status: NotFound, Err: lastErr}
}

func byID(ctx context.Context, api API, kind models.Kind, id int) step {
	if kind == models.KindArtist {
		artist, err := api.Artist(ctx, id)
		if err != nil {
			return step{err: err}
		}
		return step{found: true, entity: models.ResolvedEntity{ID: artist.ID, Name: artist.Name}}
	}

	album, err := api.Album(ctx, id)
	if err != nil {
		return step{err: err}
	}
	return step{
		found:  true,
		entity: models.ResolvedEntity{ID: album.ID, Name: album.Name, ArtistName: album.ArtistName()},
		album:  album,
	}
}

func bySearch(ctx context.Context, api API, kind models.Kind, name string) step {
	raw, err := api.Search(ctx, name, genius.SearchOptions{Type: string(kind)})
	if err != nil {
		return step{err: err}
	}
	all, err := hits.Flatten(raw)
	if err != nil {
		return step{err: err}
	}
	// Hits without an id cannot be looked up later, so they never resolve.
	h, ok := hits.FirstWhere(all, func(h hits.Hit) bool { return h.Kind == kind && h.ID != 0 })
	if !ok {
		return step{}
	}
	e := models.ResolvedEntity{ID: h.ID, Name: h.Label()}
	if kind == models.KindAlbum {
		e.ArtistName = h.AlbumArtistName
	}
	return step{found: true, entity: e}
}

// numericID reports whether s is all ASCII digits and fits an int.
func numericID(s string) (int, bool) {
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
