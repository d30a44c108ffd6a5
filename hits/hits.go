// Package hits flattens Genius search responses into typed hits and renders
// them as Markdown summary lines.
//
// Genius answers searches with one of two envelopes:
//
//	{"hits": [hit, ...]}                                  // authenticated API
//	{"sections": [{"type": "...", "hits": [hit, ...]}]}   // public API
//
// Both are decoded by their own parser; the "hits" envelope wins when present.
package hits

import (
	"encoding/json"
	"errors"
	"fmt"

	"geniusmcp/models"
)

// ErrUnrecognized is returned when a response carries neither envelope.
var ErrUnrecognized = errors.New("search response has neither hits nor sections")

// Hit is one search result, tagged by Kind. Type keeps the raw upstream tag
// so that Other hits can still be labelled.
type Hit struct {
	Kind models.Kind
	Type string

	ID                int
	Title             string
	Name              string
	URL               string
	ArtistNames       string // song credit, e.g. "Queen & David Bowie"
	PrimaryArtistName string // song primary_artist.name
	AlbumArtistName   string // album artist.name
}

type rawHit struct {
	Type   string          `json:"type"`
	Result json.RawMessage `json:"result"`
}

type rawResult struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	Name          string `json:"name"`
	URL           string `json:"url"`
	ArtistNames   string `json:"artist_names"`
	PrimaryArtist *struct {
		Name string `json:"name"`
	} `json:"primary_artist"`
	Artist *struct {
		Name string `json:"name"`
	} `json:"artist"`
}

type hitsEnvelope struct {
	Hits *[]json.RawMessage `json:"hits"`
}

type sectionsEnvelope struct {
	Sections *[]json.RawMessage `json:"sections"`
}

type section struct {
	Hits []json.RawMessage `json:"hits"`
}

// Flatten returns the hits of a search response in display order: the
// "hits" list as is, or every section's hits in section order.
func Flatten(raw json.RawMessage) ([]Hit, error) {
	rawHits, err := parseHitsEnvelope(raw)
	if errors.Is(err, ErrUnrecognized) {
		rawHits, err = parseSectionsEnvelope(raw)
	}
	if err != nil {
		return nil, err
	}

	out := make([]Hit, 0, len(rawHits))
	for _, rh := range rawHits {
		h, err := toHit(rh)
		if err != nil {
			// One malformed hit should not hide the rest.
			continue
		}
		out = append(out, h)
	}
	return out, nil
}

// First returns the first hit of the given kind.
func First(hs []Hit, kind models.Kind) (Hit, bool) {
	return FirstWhere(hs, func(h Hit) bool { return h.Kind == kind })
}

// FirstWhere returns the first hit accepted by keep.
func FirstWhere(hs []Hit, keep func(Hit) bool) (Hit, bool) {
	for _, h := range hs {
		if keep(h) {
			return h, true
		}
	}
	return Hit{}, false
}

func parseHitsEnvelope(raw json.RawMessage) ([]json.RawMessage, error) {
	var env hitsEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	if env.Hits == nil {
		return nil, ErrUnrecognized
	}
	return *env.Hits, nil
}

func parseSectionsEnvelope(raw json.RawMessage) ([]json.RawMessage, error) {
	var env sectionsEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode search sections: %w", err)
	}
	if env.Sections == nil {
		return nil, ErrUnrecognized
	}
	var out []json.RawMessage
	for _, rs := range *env.Sections {
		var sec section
		if err := json.Unmarshal(rs, &sec); err != nil {
			continue
		}
		out = append(out, sec.Hits...)
	}
	return out, nil
}

func toHit(raw json.RawMessage) (Hit, error) {
	var rh rawHit
	if err := json.Unmarshal(raw, &rh); err != nil {
		return Hit{}, err
	}
	var r rawResult
	if len(rh.Result) > 0 {
		if err := json.Unmarshal(rh.Result, &r); err != nil {
			return Hit{}, err
		}
	}
	h := Hit{
		Kind:        models.KindOf(rh.Type),
		Type:        rh.Type,
		ID:          r.ID,
		Title:       r.Title,
		Name:        r.Name,
		URL:         r.URL,
		ArtistNames: r.ArtistNames,
	}
	if r.PrimaryArtist != nil {
		h.PrimaryArtistName = r.PrimaryArtist.Name
	}
	if r.Artist != nil {
		h.AlbumArtistName = r.Artist.Name
	}
	return h, nil
}
