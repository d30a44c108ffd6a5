package handlers

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"geniusmcp/tools"
)

func (s *Server) registerPrompts() {
	s.server.AddPrompt(&mcp.Prompt{
		Name:        "analyze_lyrics",
		Description: "Analyze the lyrics of a song",
		Arguments: []*mcp.PromptArgument{
			{Name: "artist", Description: "Artist name", Required: true},
			{Name: "song", Description: "Song title", Required: true},
		},
	}, func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		args := req.Params.Arguments
		if args["artist"] == "" || args["song"] == "" {
			return nil, fmt.Errorf("analyze_lyrics needs artist and song")
		}
		return promptResult("Analyze lyrics", tools.AnalyzeLyricsPrompt(args["artist"], args["song"])), nil
	})

	s.server.AddPrompt(&mcp.Prompt{
		Name:        "compare_songs",
		Description: "Compare the lyrics and themes of two songs by the same artist",
		Arguments: []*mcp.PromptArgument{
			{Name: "artist", Description: "Artist name", Required: true},
			{Name: "song1", Description: "First song title", Required: true},
			{Name: "song2", Description: "Second song title", Required: true},
		},
	}, func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		args := req.Params.Arguments
		if args["artist"] == "" || args["song1"] == "" || args["song2"] == "" {
			return nil, fmt.Errorf("compare_songs needs artist, song1 and song2")
		}
		return promptResult("Compare songs", tools.CompareSongsPrompt(args["artist"], args["song1"], args["song2"])), nil
	})
}

func promptResult(description, text string) *mcp.GetPromptResult {
	return &mcp.GetPromptResult{
		Description: description,
		Messages: []*mcp.PromptMessage{
			{Role: "user", Content: &mcp.TextContent{Text: text}},
		},
	}
}
