package tools

import (
	"context"
	"slices"
	"strings"

	"geniusmcp/genius"
	"geniusmcp/hits"
)

// SearchTypes are the content types accepted by Search; "" searches all.
var SearchTypes = []string{"song", "artist", "album", "lyric", "video", "article", "user"}

// Search runs a Genius search and renders every hit.
func (s *Service) Search(ctx context.Context, query, searchType string, perPage, page int) string {
	if !s.Ready() {
		return NotInitialized
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return invalid("query must not be empty")
	}
	searchType = strings.ToLower(strings.TrimSpace(searchType))
	if searchType != "" && !slices.Contains(SearchTypes, searchType) {
		return invalid("search_type must be one of %s", strings.Join(SearchTypes, ", "))
	}

	opts := genius.SearchOptions{
		Type:    searchType,
		PerPage: clamp(perPage, defaultSearchPerPage, maxSearchPerPage),
		Page:    max(page, 1),
	}
	raw, err := s.client.Search(ctx, query, opts)
	if err != nil {
		return s.upstreamError(ctx, "searching Genius", err)
	}
	all, err := hits.Flatten(raw)
	if err != nil {
		return s.upstreamError(ctx, "searching Genius", err)
	}

	s.logger.WithField("tool", "search").Debugf("%d hits for %q", len(all), query)
	return hits.RenderList(query, all)
}

