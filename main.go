package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	appConfig "geniusmcp/config"
	"geniusmcp/genius"
	"geniusmcp/handlers"
	"geniusmcp/logging"
	"geniusmcp/sentry"
	"geniusmcp/tools"
)

var Version = "dev"

func main() {
	app := &cli.App{
		Name:    "genius-mcp",
		Usage:   "MCP server for Genius lyrics, artists and albums",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "dotenv file loaded before reading the environment",
				Value: ".env",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "optional TOML config file; its values override the environment",
			},
			&cli.StringFlag{
				Name:  "transport",
				Usage: "stdio or http (overrides MCP_TRANSPORT)",
			},
			&cli.StringFlag{
				Name:  "port",
				Usage: "HTTP port (overrides PORT)",
			},
			&cli.BoolFlag{
				Name:  "lenient",
				Usage: "start without GENIUS_TOKEN; every tool then reports the missing client",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	envErr := godotenv.Load(c.String("env-file"))

	cfg := appConfig.NewConfig()
	if path := c.String("config"); path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return cli.Exit(err.Error(), 1)
		}
	}
	if err := applyFlags(c, cfg); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	closer := logging.Setup(cfg.Logging)
	defer closer.Close()
	logger := logging.For("main")
	if envErr != nil && c.IsSet("env-file") {
		logger.Warnf("Error loading %s: %v", c.String("env-file"), envErr)
	}

	if err := sentry.Init(cfg.Sentry); err != nil {
		logger.Warnf("Sentry initialization failed: %v", err)
	}
	defer sentry.Flush()

	service, err := newService(cfg)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	server := handlers.NewServer(service, Version)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Server.IsHTTP() {
		err = server.RunHTTP(ctx, ":"+cfg.Server.Port)
	} else {
		err = server.RunStdio(ctx)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		sentry.ReportError(err)
		return err
	}
	return nil
}

// newService builds the Genius client. Without a token the server refuses to
// start unless lenient startup was requested.
func newService(cfg *appConfig.ConfigStruct) (*tools.Service, error) {
	logger := logging.For("main")

	if err := cfg.Validate(); err != nil {
		if !cfg.Options.LenientStartup {
			return nil, err
		}
		logger.Warnf("%v; starting in degraded mode", err)
		sentry.ReportMessage("genius-mcp started without GENIUS_TOKEN")
		return tools.NewService(nil, cfg.Genius.MaxPerPage), nil
	}

	client, err := genius.New(genius.OptionsFromConfig(cfg.Genius))
	if err != nil {
		return nil, fmt.Errorf("creating Genius client: %w", err)
	}
	logger.Infof("Genius client ready (timeout %s, %d retries)", cfg.Genius.Timeout(), cfg.Genius.Retries)
	return tools.NewService(client, cfg.Genius.MaxPerPage), nil
}

func applyFlags(c *cli.Context, cfg *appConfig.ConfigStruct) error {
	switch t := strings.ToLower(c.String("transport")); t {
	case "":
	case "stdio", "http":
		cfg.Server.Transport = t
	default:
		return fmt.Errorf("unknown transport %q, want stdio or http", t)
	}
	if p := c.String("port"); p != "" {
		cfg.Server.Port = p
	}
	if c.Bool("lenient") {
		cfg.Options.LenientStartup = true
	}
	return nil
}
