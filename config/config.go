package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	LogSearch LogSearchConfig
	Table     TableConfig
	Health    HealthConfig
	LogLevel  string
}

type ServerConfig struct {
	Port        string
	CORSOrigins []string
}

// LogSearchConfig points at the external log-search endpoint.
type LogSearchConfig struct {
	URL             string
	Timeout         time.Duration
	ProbeMaxElapsed time.Duration // Startup probe gives up after this long
}

type TableConfig struct {
	PageSize       int    // Rows per page when the widget does not say
	SortField      string // Widget parameter carrying the sort direction
	SourcePath     string // Path the widget fetches pages from
	SessionIdleTTL time.Duration
}

type HealthConfig struct {
	Schedule string
}

// NewConfig loads configuration from .env, the environment and command line flags.
func NewConfig(args []string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_SEARCH_URL", "http://localhost:9000/api/log")
	v.SetDefault("LOG_SEARCH_TIMEOUT", "30s")
	v.SetDefault("PROBE_MAX_ELAPSED", "60s")
	v.SetDefault("TABLE_PAGE_SIZE", 25)
	v.SetDefault("TABLE_SORT_FIELD", "sSortDir_0")
	v.SetDefault("TABLE_SOURCE_PATH", "/api/v1/logs/table")
	v.SetDefault("TABLE_SESSION_IDLE_TTL", "30m")
	v.SetDefault("HEALTH_SCHEDULE", "*/30 * * * * *") // Every 30 seconds

	flags := pflag.NewFlagSet("logtable", pflag.ContinueOnError)
	flags.ParseErrorsWhitelist.UnknownFlags = true
	flags.String("port", "8080", "HTTP listen port")
	flags.String("log-search-url", "", "URL of the log search endpoint")
	flags.String("log-level", "info", "zerolog level")
	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}
	for key, name := range map[string]string{
		"SERVER_PORT":    "port",
		"LOG_SEARCH_URL": "log-search-url",
		"LOG_LEVEL":      "log-level",
	} {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", name, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config
	config.Server.Port = v.GetString("SERVER_PORT")
	config.Server.CORSOrigins = splitList(v.GetString("CORS_ORIGINS"))
	config.LogLevel = v.GetString("LOG_LEVEL")

	// --- Log search endpoint ---
	config.LogSearch.URL = v.GetString("LOG_SEARCH_URL")
	config.LogSearch.Timeout = v.GetDuration("LOG_SEARCH_TIMEOUT")
	config.LogSearch.ProbeMaxElapsed = v.GetDuration("PROBE_MAX_ELAPSED")

	// --- Table widget ---
	config.Table.PageSize = v.GetInt("TABLE_PAGE_SIZE")
	config.Table.SortField = v.GetString("TABLE_SORT_FIELD")
	config.Table.SourcePath = v.GetString("TABLE_SOURCE_PATH")
	config.Table.SessionIdleTTL = v.GetDuration("TABLE_SESSION_IDLE_TTL")

	config.Health.Schedule = v.GetString("HEALTH_SCHEDULE")

	if config.Table.PageSize <= 0 || config.Table.PageSize > 1000 {
		return nil, fmt.Errorf("TABLE_PAGE_SIZE must be between 1 and 1000, got %d", config.Table.PageSize)
	}

	level, err := zerolog.ParseLevel(config.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", config.LogLevel, err)
	}
	zerolog.SetGlobalLevel(level)

	log.Info().Interface("config", config).Msg("Config loaded")
	return &config, nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
