package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string        `toml:"environment"` // "development" or "production"
	Server      ServerConfig  `toml:"server"`
	Logging     LoggingConfig `toml:"logging"`
	Storage     StorageConfig `toml:"storage"`
	Claude      ClaudeConfig  `toml:"claude"`
	Gemini      GeminiConfig  `toml:"gemini"`
	Review      ReviewConfig  `toml:"review"`
}

type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

type LoggingConfig struct {
	Level  string   `toml:"level"`  // "debug", "info", "warn", "error"
	Output []string `toml:"output"` // "stdout", "file"
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path"`             // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"` // Delete database on startup for clean test runs
}

// ClaudeConfig contains Anthropic Claude API configuration for the textual
// analysis pass
type ClaudeConfig struct {
	APIKey      string  `toml:"api_key"`     // Anthropic API key
	Model       string  `toml:"model"`       // Model name (default: "claude-haiku-3-5-20241022")
	MaxTokens   int     `toml:"max_tokens"`  // Maximum tokens in response (default: 4096)
	Timeout     string  `toml:"timeout"`     // Operation timeout as duration string (default: "2m")
	RateLimit   int     `toml:"rate_limit"`  // Max requests per second (default: 2)
	Temperature float32 `toml:"temperature"` // Completion temperature (default: 0 for deterministic output)
}

// GeminiConfig contains Google Gemini API configuration for the visual
// analysis pass
type GeminiConfig struct {
	APIKey      string  `toml:"api_key"`     // Google API key
	Model       string  `toml:"model"`       // Model name (default: "gemini-2.0-flash")
	Timeout     string  `toml:"timeout"`     // Operation timeout as duration string (default: "2m")
	RateLimit   int     `toml:"rate_limit"`  // Max requests per second (default: 2)
	Temperature float32 `toml:"temperature"` // Completion temperature (default: 0)
}

// ReviewConfig tunes the analysis pipeline
type ReviewConfig struct {
	Concurrency      int      `toml:"concurrency"`       // Max slides analyzed concurrently (default: 4)
	ScoreWeight      int      `toml:"score_weight"`      // Penalty per finding in the overall score (default: 5)
	MinTextLength    int      `toml:"min_text_length"`   // Slides with less trimmed text skip the textual pass (default: 5)
	DictionaryDir    string   `toml:"dictionary_dir"`    // Directory containing word-list files (default: "./dictionaries")
	AcronymWhitelist []string `toml:"acronym_whitelist"` // Tokens never flagged by the spelling pass (case-insensitive)
	MaxUploadMB      int      `toml:"max_upload_mb"`     // Multipart upload size limit (default: 50)
	ExtractImages    bool     `toml:"extract_images"`    // Pull embedded slide images for the visual pass (default: true)
}

// DefaultAcronymWhitelist covers domain acronyms that dictionaries reject but
// consulting decks use freely.
var DefaultAcronymWhitelist = []string{
	"AI", "ML", "LLM", "GPT", "API", "SaaS", "KPI", "KPIs", "ROI",
	"B2B", "B2C", "CEO", "CFO", "CTO", "COO", "CRM", "ERP", "FY",
	"Q1", "Q2", "Q3", "Q4", "YoY", "EBITDA", "OKR", "OKRs",
}

// DefaultConfig returns the built-in defaults, overridable by file and env
func DefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8085,
			Host: "localhost",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout"},
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path:           "./data/deckcheck",
				ResetOnStartup: false,
			},
		},
		Claude: ClaudeConfig{
			Model:       "claude-haiku-3-5-20241022",
			MaxTokens:   4096,
			Timeout:     "2m",
			RateLimit:   2,
			Temperature: 0,
		},
		Gemini: GeminiConfig{
			Model:       "gemini-2.0-flash",
			Timeout:     "2m",
			RateLimit:   2,
			Temperature: 0,
		},
		Review: ReviewConfig{
			Concurrency:      4,
			ScoreWeight:      5,
			MinTextLength:    5,
			DictionaryDir:    "./dictionaries",
			AcronymWhitelist: DefaultAcronymWhitelist,
			MaxUploadMB:      50,
			ExtractImages:    true,
		},
	}
}

// LoadFromFile loads configuration from a TOML file, layered over defaults,
// then applies environment variable overrides. A missing path is not an
// error; defaults plus env apply.
func LoadFromFile(path string) (*Config, error) {
	config := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("config file not found: %s", path)
			}
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ApplyFlagOverrides applies command-line overrides (highest priority)
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port != 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// applyEnvOverrides layers DECKCHECK_* environment variables over the config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("DECKCHECK_ENV"); env != "" {
		config.Environment = env
	}
	if port := os.Getenv("DECKCHECK_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("DECKCHECK_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if level := os.Getenv("DECKCHECK_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if output := os.Getenv("DECKCHECK_LOG_OUTPUT"); output != "" {
		config.Logging.Output = splitAndTrim(output)
	}
	if path := os.Getenv("DECKCHECK_BADGER_PATH"); path != "" {
		config.Storage.Badger.Path = path
	}
	if key := os.Getenv("DECKCHECK_CLAUDE_API_KEY"); key != "" {
		config.Claude.APIKey = key
	}
	if model := os.Getenv("DECKCHECK_CLAUDE_MODEL"); model != "" {
		config.Claude.Model = model
	}
	if key := os.Getenv("DECKCHECK_GEMINI_API_KEY"); key != "" {
		config.Gemini.APIKey = key
	}
	if model := os.Getenv("DECKCHECK_GEMINI_MODEL"); model != "" {
		config.Gemini.Model = model
	}
	if dir := os.Getenv("DECKCHECK_DICTIONARY_DIR"); dir != "" {
		config.Review.DictionaryDir = dir
	}
	if conc := os.Getenv("DECKCHECK_REVIEW_CONCURRENCY"); conc != "" {
		if c, err := strconv.Atoi(conc); err == nil && c > 0 {
			config.Review.Concurrency = c
		}
	}
	if weight := os.Getenv("DECKCHECK_REVIEW_SCORE_WEIGHT"); weight != "" {
		if w, err := strconv.Atoi(weight); err == nil && w >= 0 {
			config.Review.ScoreWeight = w
		}
	}
}

// Validate checks configuration invariants that would otherwise surface as
// confusing runtime failures.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if _, err := time.ParseDuration(c.Claude.Timeout); err != nil {
		return fmt.Errorf("invalid claude timeout '%s': %w", c.Claude.Timeout, err)
	}
	if _, err := time.ParseDuration(c.Gemini.Timeout); err != nil {
		return fmt.Errorf("invalid gemini timeout '%s': %w", c.Gemini.Timeout, err)
	}
	if c.Review.Concurrency < 1 {
		return fmt.Errorf("review concurrency must be at least 1, got %d", c.Review.Concurrency)
	}
	if c.Review.ScoreWeight < 0 {
		return fmt.Errorf("review score weight must not be negative, got %d", c.Review.ScoreWeight)
	}
	return nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
