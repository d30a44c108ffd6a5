// Package handlers exposes the tool service over the Model Context Protocol.
// Handlers decode arguments, open a Sentry transaction per call and turn the
// tool text into an MCP result.
package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	sentry "github.com/getsentry/sentry-go"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	log "github.com/sirupsen/logrus"

	"geniusmcp/logging"
	"geniusmcp/sentryhelper"
	"geniusmcp/tools"
)

const ServerName = "genius-mcp"

type Server struct {
	server  *mcp.Server
	service *tools.Service
	logger  *log.Entry
}

// NewServer registers every tool, resource template and prompt of service on
// a fresh MCP server.
func NewServer(service *tools.Service, version string) *Server {
	s := &Server{
		server: mcp.NewServer(&mcp.Implementation{
			Name:    ServerName,
			Version: version,
		}, nil),
		service: service,
		logger:  logging.For("handlers"),
	}
	s.registerTools()
	s.registerResources()
	s.registerPrompts()
	return s
}

// MCP returns the underlying protocol server.
func (s *Server) MCP() *mcp.Server { return s.server }

// RunStdio serves a single client over stdin/stdout until ctx is done or the
// client disconnects.
func (s *Server) RunStdio(ctx context.Context) error {
	s.logger.Info("serving MCP over stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// toolFunc renders one tool call from its raw arguments.
type toolFunc func(ctx context.Context, args json.RawMessage) string

// handle wraps fn with tracing, logging and panic recovery. Tool failures are
// reported in the result, never as protocol errors.
func (s *Server) handle(name string, fn toolFunc) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (result *mcp.CallToolResult, err error) {
		ctx, tx := sentryhelper.StartToolTransaction(ctx, name)
		defer tx.Finish()
		logger := s.logger.WithField("tool", name)

		defer func() {
			if r := recover(); r != nil {
				logger.Errorf("panic in tool handling: %v", r)
				sentryhelper.HubFromContext(ctx).RecoverWithContext(ctx, r)
				tx.Status = sentry.SpanStatusInternalError
				result, err = textResult(fmt.Sprintf("Error: internal failure in %s", name), true), nil
			}
		}()

		var args json.RawMessage
		if req != nil && req.Params != nil {
			args = req.Params.Arguments
		}
		logger.Debugf("received tool call: %s", args)

		text := fn(ctx, args)
		isErr := tools.IsErrorText(text)
		if isErr {
			tx.Status = sentry.SpanStatusInternalError
			logger.Debugf("tool returned error text: %s", firstLine(text))
		} else {
			tx.Status = sentry.SpanStatusOK
		}
		return textResult(text, isErr), nil
	}
}

// decode unmarshals tool arguments; absent arguments decode as {}.
func decode(raw json.RawMessage, v any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("invalid parameters: %w", err)
	}
	return nil
}

func textResult(text string, isErr bool) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: isErr,
	}
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}
