package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/sync/errgroup"

	appsentry "geniusmcp/sentry"
)

const shutdownTimeout = 5 * time.Second

// Router serves the streamable HTTP transport on /mcp and a health check on
// /healthz.
func (s *Server) Router() *gin.Engine {
	router := gin.Default()
	router.Use(appsentry.GetSentryGin())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"ok":     true,
			"server": ServerName,
			"genius": s.service.Ready(),
		})
	})

	streamable := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.server
	}, nil)
	router.Any("/mcp", gin.WrapH(streamable))

	return router
}

// RunHTTP listens on addr until ctx is done, then shuts down gracefully.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Infof("serving MCP over HTTP on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down HTTP server")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
