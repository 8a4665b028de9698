/*
Package config manages the TOML config for wordindex.

The file is created with defaults when it does not exist. A file that fails to
decode is read again as a generic table so that every valid key still applies:

	[server]
	max_limit = 64
	min_prefix = 0
	max_prefix = 60
	enable_filter = false

	[index]
	default_limit = 10
	default_score = 1.0
	vocabulary = ["words_dictionary.json"]
	max_batch = 100000
	cache_size = 4096

	[http]
	addr = ":8080"
*/
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/bastiangx/wordindex/internal/utils"
	"github.com/charmbracelet/log"
)

const appName = "wordindex"

// Config holds the entire config structure
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Index   IndexConfig   `toml:"index"`
	HTTP    HTTPConfig    `toml:"http"`
	Metrics MetricsConfig `toml:"metrics"`
	CLI     CliConfig     `toml:"cli"`
	Log     LogConfig     `toml:"log"`
}

// ServerConfig has request validation options shared by the IPC and HTTP servers.
type ServerConfig struct {
	MaxLimit     int  `toml:"max_limit"`
	MinPrefix    int  `toml:"min_prefix"`
	MaxPrefix    int  `toml:"max_prefix"`
	EnableFilter bool `toml:"enable_filter"`
}

// IndexConfig holds completion index options.
type IndexConfig struct {
	DefaultLimit int      `toml:"default_limit"`
	DefaultScore float64  `toml:"default_score"`
	Vocabulary   []string `toml:"vocabulary"`
	MaxBatch     int      `toml:"max_batch"`
	CacheSize    int      `toml:"cache_size"`
}

// HTTPConfig holds the HTTP listener options. Timeouts are in milliseconds.
type HTTPConfig struct {
	Addr              string `toml:"addr"`
	ReadTimeoutMs     int    `toml:"read_timeout_ms"`
	WriteTimeoutMs    int    `toml:"write_timeout_ms"`
	ShutdownTimeoutMs int    `toml:"shutdown_timeout_ms"`
}

// ReadTimeout returns the read timeout as a duration.
func (h HTTPConfig) ReadTimeout() time.Duration {
	return time.Duration(h.ReadTimeoutMs) * time.Millisecond
}

// WriteTimeout returns the write timeout as a duration.
func (h HTTPConfig) WriteTimeout() time.Duration {
	return time.Duration(h.WriteTimeoutMs) * time.Millisecond
}

// ShutdownTimeout returns the graceful shutdown budget as a duration.
func (h HTTPConfig) ShutdownTimeout() time.Duration {
	return time.Duration(h.ShutdownTimeoutMs) * time.Millisecond
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	DefaultLimit    int  `toml:"default_limit"`
	DefaultMinLen   int  `toml:"default_min_len"`
	DefaultMaxLen   int  `toml:"default_max_len"`
	DefaultNoFilter bool `toml:"default_no_filter"`
}

// LogConfig holds the log level used when --debug is not given.
type LogConfig struct {
	Level string `toml:"level"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			MaxLimit:     64,
			MinPrefix:    0,
			MaxPrefix:    60,
			EnableFilter: false,
		},
		Index: IndexConfig{
			DefaultLimit: 10,
			DefaultScore: 1,
			Vocabulary:   []string{},
			MaxBatch:     100000,
			CacheSize:    4096,
		},
		HTTP: HTTPConfig{
			Addr:              ":8080",
			ReadTimeoutMs:     5000,
			WriteTimeoutMs:    10000,
			ShutdownTimeoutMs: 5000,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
		CLI: CliConfig{
			DefaultLimit:    10,
			DefaultMinLen:   1,
			DefaultMaxLen:   24,
			DefaultNoFilter: false,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/wordindex
// 2. ~/Library/Application Support/wordindex (macOS)
// 3. Current executable dir
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.GetExecutableDir()
	}
	primaryPath := filepath.Join(homeDir, ".config", appName)
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", appName)
	if result := utils.CheckDirStatus(macOSPath); result.Writable {
		return macOSPath, nil
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/wordindex/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err == nil {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
			log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}

	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file, recovering what it can from a broken one.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()
	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config.normalized(), nil
}

func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(section, &config.Server)
	}
	if section, ok := utils.ExtractSection(tempConfig, "index"); ok {
		extractIndexConfig(section, &config.Index)
	}
	if section, ok := utils.ExtractSection(tempConfig, "http"); ok {
		extractHTTPConfig(section, &config.HTTP)
	}
	if section, ok := utils.ExtractSection(tempConfig, "metrics"); ok {
		extractMetricsConfig(section, &config.Metrics)
	}
	if section, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(section, &config.CLI)
	}
	if section, ok := utils.ExtractSection(tempConfig, "log"); ok {
		if val, ok := utils.ExtractString(section, "level"); ok {
			config.Log.Level = val
		}
	}
	return config.normalized(), nil
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_limit"); ok {
		server.MaxLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "min_prefix"); ok {
		server.MinPrefix = val
	}
	if val, ok := utils.ExtractInt64(data, "max_prefix"); ok {
		server.MaxPrefix = val
	}
	if val, ok := utils.ExtractBool(data, "enable_filter"); ok {
		server.EnableFilter = val
	}
}

func extractIndexConfig(data map[string]any, index *IndexConfig) {
	if val, ok := utils.ExtractInt64(data, "default_limit"); ok {
		index.DefaultLimit = val
	}
	if val, ok := utils.ExtractFloat(data, "default_score"); ok {
		index.DefaultScore = val
	}
	if val, ok := utils.ExtractStrings(data, "vocabulary"); ok {
		index.Vocabulary = val
	}
	if val, ok := utils.ExtractInt64(data, "max_batch"); ok {
		index.MaxBatch = val
	}
	if val, ok := utils.ExtractInt64(data, "cache_size"); ok {
		index.CacheSize = val
	}
}

func extractHTTPConfig(data map[string]any, h *HTTPConfig) {
	if val, ok := utils.ExtractString(data, "addr"); ok {
		h.Addr = val
	}
	if val, ok := utils.ExtractInt64(data, "read_timeout_ms"); ok {
		h.ReadTimeoutMs = val
	}
	if val, ok := utils.ExtractInt64(data, "write_timeout_ms"); ok {
		h.WriteTimeoutMs = val
	}
	if val, ok := utils.ExtractInt64(data, "shutdown_timeout_ms"); ok {
		h.ShutdownTimeoutMs = val
	}
}

func extractMetricsConfig(data map[string]any, m *MetricsConfig) {
	if val, ok := utils.ExtractBool(data, "enabled"); ok {
		m.Enabled = val
	}
	if val, ok := utils.ExtractString(data, "path"); ok {
		m.Path = val
	}
}

func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractInt64(data, "default_limit"); ok {
		cli.DefaultLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "default_min_len"); ok {
		cli.DefaultMinLen = val
	}
	if val, ok := utils.ExtractInt64(data, "default_max_len"); ok {
		cli.DefaultMaxLen = val
	}
	if val, ok := utils.ExtractBool(data, "default_no_filter"); ok {
		cli.DefaultNoFilter = val
	}
}

// normalized replaces values that would make the servers misbehave with defaults.
func (c *Config) normalized() *Config {
	def := DefaultConfig()
	if c.Server.MaxLimit < 1 {
		c.Server.MaxLimit = def.Server.MaxLimit
	}
	if c.Server.MinPrefix < 0 {
		c.Server.MinPrefix = 0
	}
	if c.Server.MaxPrefix < c.Server.MinPrefix {
		log.Warnf("max_prefix %d is below min_prefix %d, using %d", c.Server.MaxPrefix, c.Server.MinPrefix, def.Server.MaxPrefix)
		c.Server.MaxPrefix = def.Server.MaxPrefix
	}
	if c.Index.DefaultLimit < 1 {
		c.Index.DefaultLimit = def.Index.DefaultLimit
	}
	if c.Index.DefaultLimit > c.Server.MaxLimit {
		c.Index.DefaultLimit = c.Server.MaxLimit
	}
	if c.Index.DefaultScore <= 0 {
		c.Index.DefaultScore = def.Index.DefaultScore
	}
	if c.Index.Vocabulary == nil {
		c.Index.Vocabulary = []string{}
	}
	if c.Index.MaxBatch < 1 {
		c.Index.MaxBatch = def.Index.MaxBatch
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = def.Metrics.Path
	}
	return c
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}

// Update changes the server values and saves to file
func (c *Config) Update(configPath string, maxLimit, minPrefix, maxPrefix *int, enableFilter *bool) error {
	server := &c.Server
	if maxLimit != nil {
		server.MaxLimit = *maxLimit
	}
	if minPrefix != nil {
		server.MinPrefix = *minPrefix
	}
	if maxPrefix != nil {
		server.MaxPrefix = *maxPrefix
	}
	if enableFilter != nil {
		server.EnableFilter = *enableFilter
	}
	c.normalized()
	return SaveConfig(c, configPath)
}
