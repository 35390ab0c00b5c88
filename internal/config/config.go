// Package config loads the gallery CLI configuration from TOML with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/goliatone/go-gallery/internal/logging"
)

const (
	// DefaultFile is read when no --config flag is given and it exists.
	DefaultFile = "gallery.toml"

	EnvBaseURL     = "GALLERY_BASE_URL"
	EnvTimeout     = "GALLERY_TIMEOUT"
	EnvToken       = "GALLERY_TOKEN"
	EnvSnapshot    = "GALLERY_SNAPSHOT"
	EnvPageSize    = "GALLERY_PAGE_SIZE"
	EnvImagePrefix = "GALLERY_IMAGE_PREFIX"
	EnvPreviewAddr = "GALLERY_PREVIEW_ADDR"
	EnvThemeName   = "GALLERY_THEME"
	EnvThemeVar    = "GALLERY_THEME_VARIANT"
	EnvLogLevel    = "GALLERY_LOG_LEVEL"
	EnvLogFormat   = "GALLERY_LOG_FORMAT"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config is the root document.
type Config struct {
	Backend BackendConfig  `toml:"backend"`
	Data    DataConfig     `toml:"data"`
	List    ListConfig     `toml:"list"`
	Storage StorageConfig  `toml:"storage"`
	Logging logging.Config `toml:"logging"`
	Preview PreviewConfig  `toml:"preview"`
	Theme   ThemeConfig    `toml:"theme"`
}

// BackendConfig addresses the server that owns the records.
type BackendConfig struct {
	BaseURL string `toml:"base_url"`
	Timeout string `toml:"timeout"`
	Token   string `toml:"token"`
}

// TimeoutDuration parses Timeout. Call after Finalize.
func (b BackendConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(b.Timeout)
	return d
}

// DataConfig locates the host data snapshot (file path or URL).
type DataConfig struct {
	Snapshot string `toml:"snapshot"`
}

type ListConfig struct {
	PageSize int `toml:"page_size"`
}

type StorageConfig struct {
	ImagePrefix string `toml:"image_prefix"`
}

type PreviewConfig struct {
	Addr string `toml:"addr"`
}

// Load reads path. A missing DefaultFile is not an error; any other missing
// path is.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes a TOML document without finalizing it.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// Finalize applies defaults, environment overrides, and validates.
func (c *Config) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Logging.Finalize(&logging.Env{Level: EnvLogLevel, Format: EnvLogFormat}); err != nil {
		return fmt.Errorf("%w: logging: %v", ErrInvalid, err)
	}
	return nil
}

// Merge copies non-zero overlay values, typically command-line flags.
func (c *Config) Merge(overlay *Config) {
	if overlay == nil {
		return
	}
	setString(&c.Backend.BaseURL, overlay.Backend.BaseURL)
	setString(&c.Backend.Timeout, overlay.Backend.Timeout)
	setString(&c.Backend.Token, overlay.Backend.Token)
	setString(&c.Data.Snapshot, overlay.Data.Snapshot)
	if overlay.List.PageSize > 0 {
		c.List.PageSize = overlay.List.PageSize
	}
	setString(&c.Storage.ImagePrefix, overlay.Storage.ImagePrefix)
	setString(&c.Preview.Addr, overlay.Preview.Addr)
	c.Logging.Merge(&overlay.Logging)
	c.Theme.Merge(&overlay.Theme)
}

func (c *Config) loadDefaults() {
	if c.Backend.Timeout == "" {
		c.Backend.Timeout = "30s"
	}
	if c.List.PageSize <= 0 {
		c.List.PageSize = 3
	}
	if c.Storage.ImagePrefix == "" {
		c.Storage.ImagePrefix = "/storage/"
	}
	if c.Preview.Addr == "" {
		c.Preview.Addr = "127.0.0.1:8089"
	}
}

func (c *Config) loadEnv() {
	envString(&c.Backend.BaseURL, EnvBaseURL)
	envString(&c.Backend.Timeout, EnvTimeout)
	envString(&c.Backend.Token, EnvToken)
	envString(&c.Data.Snapshot, EnvSnapshot)
	envString(&c.Storage.ImagePrefix, EnvImagePrefix)
	envString(&c.Preview.Addr, EnvPreviewAddr)
	envString(&c.Theme.Name, EnvThemeName)
	envString(&c.Theme.Variant, EnvThemeVar)
	if v := os.Getenv(EnvPageSize); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.List.PageSize = n
		}
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.Backend.Timeout); err != nil {
		return fmt.Errorf("%w: backend.timeout: %v", ErrInvalid, err)
	}
	if c.Backend.BaseURL != "" {
		u, err := url.Parse(c.Backend.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: backend.base_url %q must be an absolute http(s) URL", ErrInvalid, c.Backend.BaseURL)
		}
	}
	if c.List.PageSize <= 0 {
		return fmt.Errorf("%w: list.page_size must be positive", ErrInvalid)
	}
	return nil
}

func setString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

func envString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
