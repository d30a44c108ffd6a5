// Package lyrics extracts and cleans song lyrics from Genius song pages.
package lyrics

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	log "github.com/sirupsen/logrus"
)

// ErrNoLyrics is returned when a page has no recognizable lyrics markup,
// which is normal for instrumentals and unreleased songs.
var ErrNoLyrics = errors.New("no lyrics found on page")

// headerMarker separates the page header (contributors, translations, song
// title) from the lyric body in scraped text.
const headerMarker = "Lyrics"

var (
	sectionHeader = regexp.MustCompile(`\[[^\]\n]*\]`)
	blankRuns     = regexp.MustCompile(`\n{3,}`)
)

// Extract parses a song page and returns the lyric text with line breaks kept.
func Extract(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	// Current page layout first
	text := extractContainers(doc.Find(`div[data-lyrics-container="true"]`))
	if text != "" {
		return text, nil
	}

	log.Debug("lyrics containers not found, trying legacy layout")

	text = extractContainers(doc.Find("div.lyrics"))
	if text != "" {
		return text, nil
	}
	return "", ErrNoLyrics
}

func extractContainers(sel *goquery.Selection) string {
	parts := []string{}
	sel.Each(func(i int, s *goquery.Selection) {
		s.Find(`[data-exclude-from-selection="true"]`).Remove()
		s.Find("br").ReplaceWithHtml("\n")
		if t := strings.TrimSpace(s.Text()); t != "" {
			parts = append(parts, t)
		}
	})
	return strings.TrimSpace(strings.Join(parts, "\n"))
}

// RemoveSectionHeaders drops bracketed annotations such as "[Chorus]" and
// collapses the blank lines they leave behind.
func RemoveSectionHeaders(text string) string {
	text = sectionHeader.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "\n\n", "\n")
	text = blankRuns.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// StripHeader removes the non-lyrical page header. The first "Lyrics" marker
// counts as the boundary only when it lies in the first half of the text;
// later occurrences are assumed to be part of the song itself. This is a
// heuristic: a song whose lyrics say "Lyrics" early loses its opening lines.
func StripHeader(text string) string {
	idx := strings.Index(text, headerMarker)
	if idx < 0 || idx >= len(text)/2 {
		return strings.TrimSpace(text)
	}
	return strings.TrimSpace(text[idx+len(headerMarker):])
}
