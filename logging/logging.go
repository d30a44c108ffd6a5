// Package logging configures the process-wide logrus logger for the MCP server.
//
// stdout belongs to the stdio transport, so nothing here ever writes to it.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	nested "github.com/antonfisher/nested-logrus-formatter"
	log "github.com/sirupsen/logrus"

	"geniusmcp/config"
)

const componentField = "component"

// Setup applies cfg to the standard logger. A log file that cannot be opened
// is reported and skipped; it never prevents the server from starting.
// The returned closer releases the log file, if any.
func Setup(cfg config.LoggingConfig) io.Closer {
	return setup(log.StandardLogger(), cfg, os.Stderr)
}

func setup(logger *log.Logger, cfg config.LoggingConfig, stderr io.Writer) io.Closer {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		level = log.InfoLevel
	}

	logger.SetFormatter(&nested.Formatter{
		HideKeys:        true,
		FieldsOrder:     []string{componentField, "tool"},
		TimestampFormat: time.RFC3339,
		NoColors:        !cfg.DevMode,
	})

	var (
		writers []io.Writer
		closer  io.Closer = nopCloser{}
	)
	if cfg.DevMode {
		writers = append(writers, stderr)
	}
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(stderr, "logging: cannot open %s, continuing without file log: %v\n", cfg.File, err)
		} else {
			writers = append(writers, f)
			closer = f
		}
	}

	switch len(writers) {
	case 0:
		// Neither dev mode nor a file: keep stderr quiet unless something breaks.
		logger.SetOutput(stderr)
		logger.SetLevel(log.ErrorLevel)
		return closer
	case 1:
		logger.SetOutput(writers[0])
	default:
		logger.SetOutput(io.MultiWriter(writers...))
	}
	logger.SetLevel(level)
	return closer
}

// For returns an entry tagged with the component name.
func For(component string) *log.Entry {
	return log.WithField(componentField, component)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
