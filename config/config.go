package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read when no --config flag is given; it may be absent
const DefaultFile = "dashboard.yaml"

// EnvFile is loaded into the environment before DASHBOARD_* variables are read
var EnvFile = ".env"

type Config struct {
	APIURL       string        `yaml:"api_url"`
	Addr         string        `yaml:"addr"`
	LogLevel     string        `yaml:"log_level"`
	LogFile      string        `yaml:"log_file"`
	CacheTTL     time.Duration `yaml:"cache_ttl"`
	FetchTimeout time.Duration `yaml:"fetch_timeout"`
	SessionTTL   time.Duration `yaml:"session_ttl"`
	OpenBrowser  bool          `yaml:"open_browser"`
	AssetsHost   string        `yaml:"assets_host"`
}

func Default() *Config {
	return &Config{
		APIURL:     "http://localhost:5000",
		Addr:       "localhost:8080",
		LogLevel:   "info",
		LogFile:    "logs/app.log",
		CacheTTL:   5 * time.Minute,
		SessionTTL: 30 * time.Minute,
	}
}

// Load layers defaults, the YAML file at path, the .env file and the
// environment, then validates the result
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
	}

	if err := godotenv.Load(EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", EnvFile, err)
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.APIURL = getEnv("DASHBOARD_API_URL", c.APIURL)
	c.Addr = getEnv("DASHBOARD_ADDR", c.Addr)
	c.LogLevel = getEnv("DASHBOARD_LOG_LEVEL", c.LogLevel)
	c.LogFile = getEnv("DASHBOARD_LOG_FILE", c.LogFile)
	c.AssetsHost = getEnv("DASHBOARD_ASSETS_HOST", c.AssetsHost)

	durations := map[string]*time.Duration{
		"DASHBOARD_CACHE_TTL":     &c.CacheTTL,
		"DASHBOARD_FETCH_TIMEOUT": &c.FetchTimeout,
		"DASHBOARD_SESSION_TTL":   &c.SessionTTL,
	}
	for key, dst := range durations {
		value := os.Getenv(key)
		if value == "" {
			continue
		}
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
		*dst = d
	}

	if value := os.Getenv("DASHBOARD_OPEN_BROWSER"); value != "" {
		open, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid DASHBOARD_OPEN_BROWSER: %w", err)
		}
		c.OpenBrowser = open
	}
	return nil
}

// MinSessionTTL is the shortest accepted non-zero session_ttl
const MinSessionTTL = time.Second

// Validate validates the configuration
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api_url must be an http(s) URL, got %q", c.APIURL)
	}

	_, port, err := net.SplitHostPort(c.Addr)
	if err != nil {
		return fmt.Errorf("invalid addr %q: %w", c.Addr, err)
	}
	if p, err := strconv.Atoi(port); err != nil || p < 0 || p > 65535 {
		return fmt.Errorf("invalid port in addr %q", c.Addr)
	}

	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.CacheTTL < 0 || c.FetchTimeout < 0 || c.SessionTTL < 0 {
		return fmt.Errorf("durations must not be negative")
	}
	if c.SessionTTL > 0 && c.SessionTTL < MinSessionTTL {
		return fmt.Errorf("session_ttl must be 0 or at least %s, got %s", MinSessionTTL, c.SessionTTL)
	}
	return nil
}

// Level returns the slog level for log_level
func (c *Config) Level() slog.Level {
	level, _ := ParseLevel(c.LogLevel)
	return level
}

// URL is the address the dashboard is reachable at from a local browser
func (c *Config) URL() string {
	host, port, _ := net.SplitHostPort(c.Addr)
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port)
}

func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log_level %q", s)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
