package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// ErrMissingToken is returned by Validate when no Genius API token is configured.
var ErrMissingToken = errors.New("GENIUS_TOKEN environment variable not set; get a token at https://genius.com/api-clients")

type ConfigStruct struct {
	Genius  GeniusConfig
	Server  ServerConfig
	Logging LoggingConfig
	Sentry  SentryConfig
	Options Options
}

type GeniusConfig struct {
	Token                string
	TimeoutSeconds       int
	Retries              int
	RemoveSectionHeaders bool
	SkipNonSongs         bool
	ExcludedTerms        []string
	MaxPerPage           int
}

type ServerConfig struct {
	Transport string // "stdio" or "http"
	Port      string
}

type LoggingConfig struct {
	Level   string
	File    string
	DevMode bool
}

type SentryConfig struct {
	DSN     string
	Release string
}

type Options struct {
	// LenientStartup keeps the server running without a token; every tool
	// call then answers with the "client not initialized" message.
	LenientStartup bool
}

func (g *GeniusConfig) Timeout() time.Duration {
	return time.Duration(g.TimeoutSeconds) * time.Second
}

func (g *GeniusConfig) HasToken() bool {
	return g.Token != ""
}

func (s *ServerConfig) IsHTTP() bool {
	return s.Transport == "http"
}

// Validate reports configuration that prevents the Genius client from being built.
func (c *ConfigStruct) Validate() error {
	if !c.Genius.HasToken() {
		return ErrMissingToken
	}
	return nil
}

// NewConfig reads the process environment. Call it after godotenv has loaded .env.
func NewConfig() *ConfigStruct {
	return &ConfigStruct{
		Genius: GeniusConfig{
			Token:                strings.TrimSpace(os.Getenv("GENIUS_TOKEN")),
			TimeoutSeconds:       getTimeoutSeconds(),
			Retries:              getRetries(),
			RemoveSectionHeaders: getBool("GENIUS_REMOVE_SECTION_HEADERS", true),
			SkipNonSongs:         getBool("GENIUS_SKIP_NON_SONGS", false),
			ExcludedTerms:        getExcludedTerms(),
			MaxPerPage:           getMaxPerPage(),
		},
		Server: ServerConfig{
			Transport: getTransport(),
			Port:      getPort(),
		},
		Logging: LoggingConfig{
			Level:   getLogLevel(),
			File:    os.Getenv("MCP_LOG_FILE"),
			DevMode: getBool("MCP_DEV_MODE", false),
		},
		Sentry: SentryConfig{
			DSN:     os.Getenv("SENTRY_DSN"),
			Release: os.Getenv("RELEASE"),
		},
		Options: Options{
			LenientStartup: getBool("GENIUS_LENIENT_STARTUP", false),
		},
	}
}

func getTimeoutSeconds() int {
	timeoutStr := os.Getenv("GENIUS_TIMEOUT_SECONDS")
	if timeoutStr == "" {
		return 15
	}
	timeout, err := strconv.Atoi(timeoutStr)
	if err != nil || timeout <= 0 {
		return 15
	}
	if timeout > 120 {
		return 120
	}
	return timeout
}

func getRetries() int {
	retriesStr := os.Getenv("GENIUS_RETRIES")
	if retriesStr == "" {
		return 3
	}
	retries, err := strconv.Atoi(retriesStr)
	if err != nil || retries < 0 {
		return 3
	}
	if retries > 10 {
		return 10
	}
	return retries
}

func getMaxPerPage() int {
	limitStr := os.Getenv("GENIUS_MAX_PER_PAGE")
	if limitStr == "" {
		return 50
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		return 50
	}
	if limit > 50 {
		return 50 // Genius rejects per_page above 50
	}
	return limit
}

func getExcludedTerms() []string {
	raw, ok := os.LookupEnv("GENIUS_EXCLUDED_TERMS")
	if !ok {
		return []string{"(Remix)", "(Live)"}
	}
	return splitList(raw)
}

func getTransport() string {
	switch strings.ToLower(os.Getenv("MCP_TRANSPORT")) {
	case "http":
		return "http"
	default:
		return "stdio"
	}
}

func getPort() string {
	port := os.Getenv("PORT")
	if port == "" {
		return "8080"
	}
	return port
}

func getLogLevel() string {
	level := strings.ToLower(os.Getenv("MCP_LOG_LEVEL"))
	if level == "" {
		return "info"
	}
	return level
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func splitList(raw string) []string {
	terms := []string{}
	for _, part := range strings.Split(raw, ",") {
		if t := strings.TrimSpace(part); t != "" {
			terms = append(terms, t)
		}
	}
	return terms
}
