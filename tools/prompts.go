package tools

import "fmt"

func AnalyzeLyricsPrompt(artist, song string) string {
	return fmt.Sprintf("Please analyze the lyrics of the song '%s' by %s.\n"+
		"Consider the themes, literary devices, cultural context, and meaning.\n\n"+
		"Start by fetching the lyrics with `get_lyrics(title=%q, artist=%q)`.",
		song, artist, song, artist)
}

func CompareSongsPrompt(artist, song1, song2 string) string {
	return fmt.Sprintf("Please compare and contrast the lyrics and themes of '%s' and '%s' by %s.\n"+
		"Consider how these songs relate to each other, evolution in style, recurring themes, and differences.\n\n"+
		"Start by fetching the lyrics of both songs with `get_lyrics(title=%q, artist=%q)` and `get_lyrics(title=%q, artist=%q)`.",
		song1, song2, artist, song1, artist, song2, artist)
}
