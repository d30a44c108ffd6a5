// Package tracks recovers an album's ordered track list. Genius albums expose
// their tracks in one of three shapes, tried in order until one yields tracks:
//
//  1. performance_groups[].song.title on the album object
//  2. tracks[].title on the album object
//  3. tracks[].song.title from the album tracks endpoint
package tracks

import (
	"context"
	"encoding/json"
	"fmt"

	log "github.com/sirupsen/logrus"

	"geniusmcp/genius"
	"geniusmcp/logging"
	"geniusmcp/models"
)

const UnknownTrack = "Unknown Track"

// Fetcher loads the album tracks endpoint.
type Fetcher interface {
	AlbumTracks(ctx context.Context, id int) (json.RawMessage, error)
}

// Shape names the payload shape tracks were recovered from.
type Shape string

const (
	ShapeNone              Shape = ""
	ShapePerformanceGroups Shape = "performance_groups"
	ShapeTracks            Shape = "tracks"
	ShapeEndpoint          Shape = "album_tracks_endpoint"
)

// Result is an ordered track list. An empty list with ShapeNone means the
// album exists but its tracks could not be recovered.
type Result struct {
	Tracks []models.Track
	Shape  Shape
}

func (r Result) Empty() bool { return len(r.Tracks) == 0 }

type parser struct {
	shape Shape
	parse func(json.RawMessage, *log.Entry) ([]models.Track, error)
}

var albumParsers = []parser{
	{ShapePerformanceGroups, parsePerformanceGroups},
	{ShapeTracks, parseFlatTracks},
}

// Extract returns the first non-empty track list. A failing fetch of the
// tracks endpoint is logged and treated as no tracks.
func Extract(ctx context.Context, album *genius.Album, fetcher Fetcher) Result {
	logger := logging.For("tracks").WithField("album_id", album.ID)

	if len(album.Raw) > 0 {
		for _, p := range albumParsers {
			ts, err := p.parse(album.Raw, logger)
			if err != nil {
				logger.Debugf("%s shape not usable: %v", p.shape, err)
				continue
			}
			if len(ts) > 0 {
				return Result{Tracks: ts, Shape: p.shape}
			}
		}
	}

	if fetcher == nil || album.ID == 0 {
		return Result{}
	}
	raw, err := fetcher.AlbumTracks(ctx, album.ID)
	if err != nil {
		logger.Warnf("album tracks fetch failed: %v", err)
		return Result{}
	}
	ts, err := parseEndpointTracks(raw, logger)
	if err != nil {
		logger.Debugf("%s shape not usable: %v", ShapeEndpoint, err)
		return Result{}
	}
	if len(ts) == 0 {
		return Result{}
	}
	return Result{Tracks: ts, Shape: ShapeEndpoint}
}

type songRef struct {
	Title string `json:"title"`
}

// Each parser decodes its list element by element. An element that cannot be
// decoded is logged and skipped; the rest of the list still counts.

func parsePerformanceGroups(raw json.RawMessage, logger *log.Entry) ([]models.Track, error) {
	var album struct {
		Groups []json.RawMessage `json:"performance_groups"`
	}
	if err := json.Unmarshal(raw, &album); err != nil {
		return nil, fmt.Errorf("decode performance groups: %w", err)
	}
	var out []models.Track
	for i, rg := range album.Groups {
		var g struct {
			Song *songRef `json:"song"`
		}
		if err := json.Unmarshal(rg, &g); err != nil {
			logger.Debugf("skipping performance group %d: %v", i, err)
			continue
		}
		if g.Song == nil {
			continue
		}
		out = append(out, models.Track{Number: len(out) + 1, Title: titleOr(g.Song.Title)})
	}
	return out, nil
}

func parseFlatTracks(raw json.RawMessage, logger *log.Entry) ([]models.Track, error) {
	var album struct {
		Tracks []json.RawMessage `json:"tracks"`
	}
	if err := json.Unmarshal(raw, &album); err != nil {
		return nil, fmt.Errorf("decode tracks: %w", err)
	}
	out := make([]models.Track, 0, len(album.Tracks))
	for i, rt := range album.Tracks {
		var t songRef
		if err := json.Unmarshal(rt, &t); err != nil {
			logger.Debugf("skipping track %d: %v", i, err)
			continue
		}
		out = append(out, models.Track{Number: len(out) + 1, Title: titleOr(t.Title)})
	}
	return out, nil
}

func parseEndpointTracks(raw json.RawMessage, logger *log.Entry) ([]models.Track, error) {
	var resp struct {
		Tracks []json.RawMessage `json:"tracks"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decode album tracks: %w", err)
	}
	out := make([]models.Track, 0, len(resp.Tracks))
	for i, rt := range resp.Tracks {
		var t struct {
			Song *songRef `json:"song"`
		}
		if err := json.Unmarshal(rt, &t); err != nil {
			logger.Debugf("skipping album track %d: %v", i, err)
			continue
		}
		title := ""
		if t.Song != nil {
			title = t.Song.Title
		}
		out = append(out, models.Track{Number: len(out) + 1, Title: titleOr(title)})
	}
	return out, nil
}

func titleOr(title string) string {
	if title == "" {
		return UnknownTrack
	}
	return title
}
