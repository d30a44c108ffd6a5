package genius

import (
	"regexp"
	"strings"
)

// nonSongTitle matches Genius pages that carry no lyrics of their own.
var nonSongTitle = regexp.MustCompile(`(?i)\b(track\s?list|album art(work)?|liner notes|booklet|credits|interview|skit|instrumental|setlist)\b`)

// AcceptsSongTitle applies the configured excluded terms and, when enabled,
// the non-song filter to a song title.
func (c *Client) AcceptsSongTitle(title string) bool {
	lower := strings.ToLower(title)
	for _, term := range c.excludedTerms {
		if term != "" && strings.Contains(lower, strings.ToLower(term)) {
			return false
		}
	}
	if c.skipNonSongs && nonSongTitle.MatchString(title) {
		return false
	}
	return true
}
