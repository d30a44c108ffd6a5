package handlers

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"geniusmcp/sentryhelper"
)

const (
	artistInfoTemplate = "artist://{artist_name}/info"
	songTemplate       = "song://{artist_name}/{song_title}"
)

func (s *Server) registerResources() {
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		Name:        "artist_info",
		URITemplate: artistInfoTemplate,
		Description: "Basic information about an artist: alternate names, description and followers",
		MIMEType:    "text/markdown",
	}, s.readResource("artist_info", "artist", func(ctx context.Context, parts []string) (string, error) {
		if len(parts) != 2 || parts[1] != "info" || parts[0] == "" {
			return "", fmt.Errorf("expected artist://{artist_name}/info")
		}
		return s.service.ArtistInfo(ctx, parts[0]), nil
	}))

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		Name:        "song_lyrics",
		URITemplate: songTemplate,
		Description: "Metadata and lyrics of a song by an artist",
		MIMEType:    "text/markdown",
	}, s.readResource("song_lyrics", "song", func(ctx context.Context, parts []string) (string, error) {
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return "", fmt.Errorf("expected song://{artist_name}/{song_title}")
		}
		return s.service.SongResource(ctx, parts[0], parts[1]), nil
	}))
}

func (s *Server) readResource(name, scheme string, fn func(context.Context, []string) (string, error)) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		ctx, tx := sentryhelper.StartToolTransaction(ctx, name)
		defer tx.Finish()

		uri := req.Params.URI
		parts, err := splitResourceURI(scheme, uri)
		if err != nil {
			s.logger.WithField("tool", name).Debugf("bad resource uri %q: %v", uri, err)
			return nil, mcp.ResourceNotFoundError(uri)
		}
		text, err := fn(ctx, parts)
		if err != nil {
			return nil, mcp.ResourceNotFoundError(uri)
		}
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{URI: uri, MIMEType: "text/markdown", Text: text}},
		}, nil
	}
}

// splitResourceURI returns the unescaped path segments after scheme://.
// url.Parse is not used because artist names are hosts here and may carry
// escaped spaces, which it rejects.
func splitResourceURI(scheme, uri string) ([]string, error) {
	rest, ok := strings.CutPrefix(uri, scheme+"://")
	if !ok {
		return nil, fmt.Errorf("scheme must be %s", scheme)
	}
	raw := strings.Split(rest, "/")
	parts := make([]string, 0, len(raw))
	for _, p := range raw {
		v, err := url.PathUnescape(p)
		if err != nil {
			return nil, err
		}
		parts = append(parts, strings.TrimSpace(v))
	}
	return parts, nil
}
