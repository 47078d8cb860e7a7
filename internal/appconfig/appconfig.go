// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mwiater/mteb/internal/datasets"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// SourceLocal reads JSONL splits from DataDir.
	SourceLocal = "local"
	// SourceHub pages rows from the hub datasets-server.
	SourceHub = "hub"
	// TokenEnvVar fills HubToken when the config leaves it empty.
	TokenEnvVar = "HF_TOKEN"

	defaultDataDir           = "data"
	defaultRequestsPerSecond = 5.0
	defaultTimeout           = 60 * time.Second
	defaultSeed              = 42
	defaultLogFile           = "mteb.log"
)

// Config represents the top-level application configuration.
type Config struct {
	Source             string  `json:"source" mapstructure:"source"`
	DataDir            string  `json:"dataDir" mapstructure:"dataDir"`
	HubURL             string  `json:"hubURL" mapstructure:"hubURL"`
	HubToken           string  `json:"hubToken,omitempty" mapstructure:"hubToken"`
	RequestsPerSecond  float64 `json:"requestsPerSecond" mapstructure:"requestsPerSecond"`
	PageSize           int     `json:"pageSize" mapstructure:"pageSize"`
	TimeoutSeconds     int     `json:"timeout" mapstructure:"timeout"`
	Seed               int64   `json:"seed" mapstructure:"seed"`
	Debug              bool    `json:"debug" mapstructure:"debug"`
	JSONMode           bool    `json:"jsonMode" mapstructure:"jsonMode"`
	LogFile            string  `json:"logFile,omitempty" mapstructure:"logFile"`
	ExportPath         string  `json:"export,omitempty" mapstructure:"export"`
	ExportMarkdownPath string  `json:"exportMarkdown,omitempty" mapstructure:"exportMarkdown"`
	ConfigPath         string  `json:"-" mapstructure:"-"`
}

// Defaults returns a configuration that reads from ./data.
func Defaults() Config {
	return Config{
		Source:            SourceLocal,
		DataDir:           defaultDataDir,
		HubURL:            datasets.DefaultHubURL,
		RequestsPerSecond: defaultRequestsPerSecond,
		PageSize:          datasets.MaxHubPageSize,
		TimeoutSeconds:    int(defaultTimeout.Seconds()),
		Seed:              defaultSeed,
		LogFile:           defaultLogFile,
	}
}

// ApplyDefaults fills every zero-valued field from Defaults and HubToken from HF_TOKEN.
func (c *Config) ApplyDefaults() {
	d := Defaults()
	if strings.TrimSpace(c.Source) == "" {
		c.Source = d.Source
	}
	if strings.TrimSpace(c.DataDir) == "" {
		c.DataDir = d.DataDir
	}
	if strings.TrimSpace(c.HubURL) == "" {
		c.HubURL = d.HubURL
	}
	if c.RequestsPerSecond == 0 {
		c.RequestsPerSecond = d.RequestsPerSecond
	}
	if c.PageSize == 0 {
		c.PageSize = d.PageSize
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = d.TimeoutSeconds
	}
	if c.Seed == 0 {
		c.Seed = d.Seed
	}
	if c.HubToken == "" {
		c.HubToken = os.Getenv(TokenEnvVar)
	}
}

// Validate rejects values no dataset source can work with.
func (c Config) Validate() error {
	var problems []string
	switch c.Source {
	case SourceLocal, SourceHub:
	default:
		problems = append(problems, fmt.Sprintf("source must be %q or %q, got %q", SourceLocal, SourceHub, c.Source))
	}
	if c.PageSize < 1 || c.PageSize > datasets.MaxHubPageSize {
		problems = append(problems, fmt.Sprintf("pageSize must be between 1 and %d, got %d", datasets.MaxHubPageSize, c.PageSize))
	}
	if c.RequestsPerSecond < 0 {
		problems = append(problems, "requestsPerSecond must not be negative")
	}
	if c.TimeoutSeconds < 0 {
		problems = append(problems, "timeout must not be negative")
	}
	if len(problems) > 0 {
		return errors.New("invalid config: " + strings.Join(problems, "; "))
	}
	return nil
}

// RequestTimeout returns the timeout duration for hub requests, falling back to the default if not specified.
func (c Config) RequestTimeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return defaultTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return defaultLogFile
}

// MaskedToken returns the hub token with everything but its last four characters hidden.
func (c Config) MaskedToken() string {
	if c.HubToken == "" {
		return "(none)"
	}
	if len(c.HubToken) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(c.HubToken)-4) + c.HubToken[len(c.HubToken)-4:]
}

// Load reads the application configuration from the specified path, applies defaults and validates it.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	config, err := loadFromPath(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("no configuration file found at %q", path)
		}
		return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
	}
	config.ApplyDefaults()
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	config.ConfigPath = path
	return config, nil
}

// loadFromPath is a helper function that loads the configuration from a specific file path.
func loadFromPath(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	if err := json.NewDecoder(file).Decode(&config); err != nil {
		return Config{}, err
	}
	return config, nil
}
