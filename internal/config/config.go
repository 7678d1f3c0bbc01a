package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/gravitrone/coursedesk/internal/api"
)

const (
	DefaultBaseURL  = api.DefaultBaseURL
	DefaultPageSize = 10
)

// Environment overrides, applied over the config file.
const (
	EnvAPIURL   = "COURSEDESK_API_URL"
	EnvAPIToken = "COURSEDESK_API_TOKEN"
	EnvPageSize = "COURSEDESK_PAGE_SIZE"
	EnvLogLevel = "COURSEDESK_LOG_LEVEL"
)

// ErrNotFound means no config file exists yet.
var ErrNotFound = errors.New("config not found")

// Config holds CLI configuration stored at ~/.coursedesk/config.
type Config struct {
	BaseURL  string `yaml:"base_url"`
	Token    string `yaml:"token"`
	Username string `yaml:"username,omitempty"`
	PageSize int    `yaml:"page_size,omitempty"`
	LogLevel string `yaml:"log_level,omitempty"`
	LogFile  string `yaml:"log_file,omitempty"`

	// Timeout bounds each HTTP request, e.g. "30s".
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

// Dir returns the config directory.
func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".coursedesk")
}

// Path returns the config file path.
func Path() string {
	return filepath.Join(Dir(), "config")
}

// Load reads and parses the config file. Returns error if missing, insecure
// or without a token.
func Load() (*Config, error) {
	cfg, err := read()
	if err != nil {
		return nil, err
	}
	if cfg.Token == "" {
		return nil, fmt.Errorf("config missing token")
	}
	return cfg, nil
}

// LoadOrDefault reads the config file, falling back to defaults when none
// exists yet. Unlike Load it does not require a token.
func LoadOrDefault() (*Config, error) {
	cfg, err := read()
	if errors.Is(err, ErrNotFound) {
		cfg = &Config{}
		cfg.applyDefaults()
		return cfg, nil
	}
	return cfg, err
}

// Resolve builds the effective config: the file when present, then .env in
// the working directory, then COURSEDESK_* variables. A token must come from
// one of them.
func Resolve() (*Config, error) {
	cfg, err := read()
	if errors.Is(err, ErrNotFound) {
		cfg, err = &Config{}, nil
	}
	if err != nil {
		return nil, err
	}

	// .env is optional.
	_ = godotenv.Load()

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if cfg.Token == "" {
		return nil, fmt.Errorf("no API token: run `coursedesk login` or set %s", EnvAPIToken)
	}
	return cfg, nil
}

// ApplyEnv overlays COURSEDESK_* environment variables.
func (c *Config) ApplyEnv() error {
	if v := strings.TrimSpace(os.Getenv(EnvAPIURL)); v != "" {
		c.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvAPIToken)); v != "" {
		c.Token = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvPageSize)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return fmt.Errorf("invalid %s %q", EnvPageSize, v)
		}
		c.PageSize = n
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.LogLevel = v
	}
	return nil
}

// LogPath returns the log file path, defaulting under the config dir.
func (c *Config) LogPath() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(Dir(), "coursedesk.log")
}

// Save writes the config to disk with secure permissions.
func (c *Config) Save() error {
	path := Path()
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	// WriteFile keeps the mode of an existing file.
	return os.Chmod(path, 0600)
}

func (c *Config) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.PageSize < 1 {
		c.PageSize = DefaultPageSize
	}
	if c.Timeout <= 0 {
		c.Timeout = api.DefaultTimeout
	}
}

func read() (*Config, error) {
	path := Path()

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("stat config: %w", err)
	}

	perm := info.Mode().Perm()
	if perm != 0600 {
		return nil, fmt.Errorf("config permissions too open: %04o (want 0600)", perm)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}
