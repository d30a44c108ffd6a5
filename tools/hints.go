package tools

import "fmt"

// Follow-up invocations appended to tool output so the caller can chain
// calls with the ids it was just given.

func lyricsHint(title, artist string) string {
	return fmt.Sprintf("Get lyrics with `get_lyrics(title=%q, artist=%q)`", title, artist)
}

func tracksHint(albumID int) string {
	return fmt.Sprintf("Get tracks with `get_album_tracks(album_identifier=\"%d\")`", albumID)
}

func songResourceHint(artist, title string) string {
	return fmt.Sprintf("Full lyrics are also available as the resource `song://%s/%s`", artist, title)
}
