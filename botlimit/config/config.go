package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goccy/go-yaml"

	"github.com/go-harden/botlimit/botlimit/limit"
)

const (
	Version           = "0.1.0"
	DirName           = ".botlimit"
	FileName          = "config.json"
	DefaultListenAddr = "127.0.0.1:9877"
	DefaultHistory    = 500
	MCPPath           = "/mcp"
)

// RevNum is the git revision count, injected at build time via ldflags.
// Falls back to "dev" when not set (e.g., go run without ldflags).
var RevNum = "dev"

// VersionString returns the version with the build revision appended.
func VersionString() string {
	return "botlimit v" + Version + "-" + RevNum
}

// DefaultPath returns the config location inside dir.
func DefaultPath(dir string) string {
	return filepath.Join(dir, DirName, FileName)
}

// Config holds the botlimit configuration stored in .botlimit/config.json
type Config struct {
	Version        string         `json:"version" yaml:"version"`
	InitializedAt  time.Time      `json:"initialized_at" yaml:"initialized_at"`
	PreserveGuides bool           `json:"preserve_guides,omitempty" yaml:"preserve_guides,omitempty"`
	Limits         *limit.Limits  `json:"limits,omitempty" yaml:"limits,omitempty"`
	Service        *ServiceConfig `json:"service,omitempty" yaml:"service,omitempty"`
}

// ServiceConfig holds settings for the MCP service.
type ServiceConfig struct {
	ListenAddr  string `json:"listen_addr,omitempty" yaml:"listen_addr,omitempty"`
	HistorySize int    `json:"history_size,omitempty" yaml:"history_size,omitempty"`
}

// DefaultLimits returns the limits applied to fields the config leaves unset.
func DefaultLimits() limit.Limits {
	return limit.Limits{
		BotName:              20,
		BotDescription:       500,
		Onboarding:           300,
		OnboardingSuggestion: 50,
		SuggestionPrompt:     5000,
		ProjectName:          20,
		ProjectDescription:   800,
	}
}

// ServiceDefaults returns a ServiceConfig with default values.
func ServiceDefaults() *ServiceConfig {
	return &ServiceConfig{
		ListenAddr:  DefaultListenAddr,
		HistorySize: DefaultHistory,
	}
}

// GetLimits returns the configured limits with defaults applied to unset fields.
// A limit of -1 is kept and leaves the field unlimited.
func (c *Config) GetLimits() limit.Limits {
	merged := DefaultLimits()
	if c == nil || c.Limits == nil {
		return merged
	}
	for _, f := range limit.Fields() {
		if v := c.Limits.Raw(f); v != 0 {
			merged.Set(f, v)
		}
	}
	return merged
}

// GetService returns the service config with defaults applied.
func (c *Config) GetService() *ServiceConfig {
	defaults := ServiceDefaults()
	if c == nil || c.Service == nil {
		return defaults
	}
	cfg := *c.Service
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = defaults.ListenAddr
	}
	if cfg.HistorySize == 0 {
		cfg.HistorySize = defaults.HistorySize
	}
	return &cfg
}

// Validate checks limit values and service settings.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Limits),
		validation.Field(&c.Service),
	)
}

func (s ServiceConfig) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.ListenAddr, validation.By(validateHostPort)),
		validation.Field(&s.HistorySize, validation.Min(0)),
	)
}

func validateHostPort(value interface{}) error {
	addr, _ := value.(string)
	if addr == "" {
		return nil
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return errors.New("must be in host:port form")
	}
	return nil
}

// DefaultConfig returns a new Config with default values
func DefaultConfig() *Config {
	return &Config{
		Version:       Version,
		InitializedAt: time.Now().UTC(),
	}
}

// Load reads, parses and validates config from the given path.
// Files ending in .yaml or .yml are parsed as YAML, everything else as JSON.
// If the file doesn't exist, returns os.ErrNotExist.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if isYAML(path) {
		err = yaml.Unmarshal(data, &cfg)
	} else {
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadOrDefaultConfig loads the config at path, or returns defaults when the file is missing.
func LoadOrDefaultConfig(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

// Save writes the config to the given path, in YAML when the extension asks for it.
func (c *Config) Save(path string) error {
	if c == nil {
		return errors.New("config is nil")
	}

	var data []byte
	var err error
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
