// Package config loads command configuration from flags, environment variables, and .env files.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	domainerrors "github.com/reelpulse/reelpulse/internal/errors"
	"github.com/reelpulse/reelpulse/internal/validation"
)

// TokenEnv is the environment variable holding the TMDB v4 read access token.
const TokenEnv = "TMDB_V4_TOKEN"

// MissingTokenMessage is printed when TokenEnv is unset.
const MissingTokenMessage = "Set environment variable " + TokenEnv + " to your v4 read access token."

// Fixed parameters of the historical command.
const (
	HistoricalDaysBack = 180
	HistoricalPages    = 5
	TrendingPages      = 5
)

// Command selects which command's flags are registered.
type Command string

// Commands.
const (
	CommandTrending   Command = "trending"
	CommandHistorical Command = "historical"
)

// Config holds the configuration of a single run.
type Config struct {
	App        AppConfig
	Logger     LoggerConfig
	Output     OutputConfig
	TMDB       TMDBConfig
	Archive    ArchiveConfig
	Trending   TrendingConfig
	Historical HistoricalConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Command     Command
	Environment string `config:"ENV" validate:"oneof=development staging production"`
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level   string `config:"LOG_LEVEL" validate:"oneof=debug info warn warning error"`
	NoColor bool   `config:"NO_COLOR"`
}

// OutputConfig holds where CSV and JSON artifacts are written.
type OutputConfig struct {
	DataDir string `config:"DATA_DIR" validate:"required"`
}

// TMDBConfig holds TMDB API client configuration.
type TMDBConfig struct {
	Token   string        `config:"TMDB_V4_TOKEN" validate:"required"`
	BaseURL string        `config:"TMDB_BASE_URL" validate:"required,url"`
	Timeout time.Duration `config:"TMDB_TIMEOUT" validate:"gt=0"`
	MaxRPS  float64       `config:"TMDB_MAX_RPS" validate:"gt=0"`
}

// ArchiveConfig holds the optional SQLite run archive. Empty Path disables it.
type ArchiveConfig struct {
	Path string
}

// TrendingConfig holds trending command options.
type TrendingConfig struct {
	Media      string `config:"media" validate:"oneof=all movie tv"`
	Window     string `config:"window" validate:"oneof=day week"`
	CastSample int    `config:"cast-sample" validate:"gte=0"`
	Pages      int    `config:"pages" validate:"gte=1"`
}

// HistoricalConfig holds historical command options.
type HistoricalConfig struct {
	DaysBack int `config:"days-back" validate:"gte=1"`
	Pages    int `config:"pages" validate:"gte=1"`
}

// Load parses args for cmd and resolves every setting with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func Load(cmd Command, args []string) (*Config, error) {
	flags := flag.NewFlagSet(string(cmd), flag.ContinueOnError)

	env := flags.String("env", "", "Environment (development, staging, production)")
	logLevel := flags.String("log-level", "", "Log level (debug, info, warn, error)")
	dataDir := flags.String("data-dir", "", "Directory for CSV and JSON output (default: ./data)")
	archiveDB := flags.String("archive-db", "", "SQLite file that archives every run (default: disabled)")
	envFile := flags.String("env-file", ".env", "Path to .env file")
	noColor := flags.Bool("no-color", false, "Disable colored log output (also NO_COLOR)")

	var media, window *string
	var castSample *int
	if cmd == CommandTrending {
		media = flags.String("media", "all", "Media kind: all, movie, or tv")
		window = flags.String("window", "week", "Trending window: day or week")
		castSample = flags.Int("cast-sample", 8, "Number of top titles to pull credits for (0 disables)")
	}

	if err := flags.Parse(args); err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeValidation, "parse flags")
	}

	if err := loadEnvFile(*envFile); err != nil {
		return nil, fmt.Errorf("load %s: %w", *envFile, err)
	}

	token := strings.TrimSpace(os.Getenv(TokenEnv))
	if token == "" {
		return nil, domainerrors.MissingCredential(MissingTokenMessage)
	}

	cfg := &Config{
		App: AppConfig{
			Command:     cmd,
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level:   strings.ToLower(getConfigValue(*logLevel, "LOG_LEVEL", "info")),
			NoColor: *noColor || os.Getenv("NO_COLOR") != "",
		},
		Output: OutputConfig{
			DataDir: getConfigValue(*dataDir, "DATA_DIR", "data"),
		},
		TMDB: TMDBConfig{
			Token:   token,
			BaseURL: strings.TrimRight(getConfigValue("", "TMDB_BASE_URL", "https://api.themoviedb.org/3"), "/"),
			MaxRPS:  getFloatConfigValue("", "TMDB_MAX_RPS", 20),
		},
		Archive: ArchiveConfig{
			Path: getConfigValue(*archiveDB, "ARCHIVE_DB", ""),
		},
		Historical: HistoricalConfig{
			DaysBack: HistoricalDaysBack,
			Pages:    HistoricalPages,
		},
		Trending: TrendingConfig{
			Media:  "all",
			Window: "week",
			Pages:  TrendingPages,
		},
	}

	if cmd == CommandTrending {
		cfg.Trending.Media = strings.ToLower(*media)
		cfg.Trending.Window = strings.ToLower(*window)
		cfg.Trending.CastSample = *castSample
	}

	timeoutStr := getConfigValue("", "TMDB_TIMEOUT", "30s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, domainerrors.Wrapf(err, domainerrors.CodeValidation, "invalid TMDB_TIMEOUT %q", timeoutStr)
	}
	cfg.TMDB.Timeout = timeout

	if cfg.Output.DataDir, err = expandPath(cfg.Output.DataDir); err != nil {
		return nil, fmt.Errorf("invalid data dir: %w", err)
	}
	if cfg.Archive.Path != "" {
		if cfg.Archive.Path, err = expandPath(cfg.Archive.Path); err != nil {
			return nil, fmt.Errorf("invalid archive path: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks every section of the configuration.
func (c *Config) Validate() error {
	if c.App.Command != CommandTrending && c.App.Command != CommandHistorical {
		return domainerrors.Validation(fmt.Sprintf("unknown command %q", c.App.Command))
	}

	v := validation.New()
	sections := []any{c.App, c.Logger, c.Output, c.TMDB}
	switch c.App.Command {
	case CommandTrending:
		sections = append(sections, c.Trending)
	case CommandHistorical:
		sections = append(sections, c.Historical)
	}

	for _, s := range sections {
		if err := v.Validate(s); err != nil {
			return err
		}
	}
	return nil
}

// expandPath expands ~ and makes the path absolute.
func expandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// loadEnvFile loads a .env file without overriding variables already set.
// A missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

// getFloatConfigValue returns a float from flag, env var, or default.
// Unparseable values fall back to the default.
func getFloatConfigValue(flagValue, envKey string, defaultValue float64) float64 {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(strValue, 64)
	if err != nil {
		return defaultValue
	}
	return f
}
