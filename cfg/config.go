package cfg

import (
	"flag"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog/log"
)

// TransportConfiguration declares a UDF class that has a native
// target-dialect implementation. Calls bound to From are re-emitted
// against the native name instead of the original class.
type TransportConfiguration struct {
	From        string   `toml:"from"`        // fully qualified source class
	To          string   `toml:"to"`          // native target function name
	Coordinates []string `toml:"coordinates"` // artifact coordinates of the native implementation
}

// RenameConfiguration maps a source-dialect function name to its
// target-dialect spelling.
type RenameConfiguration struct {
	From string `toml:"from"`
	To   string `toml:"to"`
}

// EngineConfiguration controls conversion behavior.
type EngineConfiguration struct {
	CacheSize         int      `toml:"cache_size"`         // converted-query LRU entries
	ShadingTag        string   `toml:"shading_tag"`        // prefix tag stripped from shaded class names
	DenylistedClasses []string `toml:"denylisted_classes"` // UDF classes that fail conversion outright
}

// LoggingConfiguration controls logging behavior
type LoggingConfiguration struct {
	Verbose bool   `toml:"verbose"`
	Format  string `toml:"format"` // "console" or "json"
}

// PrometheusConfiguration for metrics
type PrometheusConfiguration struct {
	Enabled bool   `toml:"enabled"`
	Address string `toml:"address"`
	Port    int    `toml:"port"`
}

// Configuration is the main configuration structure
type Configuration struct {
	Engine     EngineConfiguration      `toml:"engine"`
	Transports []TransportConfiguration `toml:"transport"`
	Renames    []RenameConfiguration    `toml:"rename"`
	Logging    LoggingConfiguration     `toml:"logging"`
	Prometheus PrometheusConfiguration  `toml:"prometheus"`
}

// Command line flags
var (
	ConfigPathFlag = flag.String("config", "config.toml", "Path to configuration file")
	CacheSizeFlag  = flag.Int("cache-size", 0, "Converted-query cache size (overrides config)")
)

// Default configuration
var Config = &Configuration{
	Engine: EngineConfiguration{
		CacheSize:  1024,
		ShadingTag: "shadedudf",
	},

	Logging: LoggingConfiguration{
		Verbose: false,
		Format:  "console",
	},

	Prometheus: PrometheusConfiguration{
		Enabled: false,
		Address: "0.0.0.0",
		Port:    9090,
	},
}

// Load loads configuration from file and applies CLI overrides
func Load(configPath string) error {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			log.Info().Str("path", configPath).Msg("Loading configuration")
			if _, err := toml.DecodeFile(configPath, Config); err != nil {
				return fmt.Errorf("failed to decode config: %w", err)
			}
		} else {
			log.Warn().Str("path", configPath).Msg("Config file not found, using defaults")
		}
	}

	if *CacheSizeFlag != 0 {
		Config.Engine.CacheSize = *CacheSizeFlag
	}

	return Validate()
}

// Validate checks configuration for errors
func Validate() error {
	if Config.Engine.CacheSize < 1 {
		return fmt.Errorf("cache size must be >= 1")
	}

	if Config.Engine.ShadingTag == "" {
		return fmt.Errorf("shading tag must not be empty")
	}

	for _, t := range Config.Transports {
		if t.From == "" || t.To == "" {
			return fmt.Errorf("transport mapping requires both from and to")
		}
	}

	for _, r := range Config.Renames {
		if r.From == "" || r.To == "" {
			return fmt.Errorf("rename mapping requires both from and to")
		}
	}

	if Config.Prometheus.Enabled && (Config.Prometheus.Port < 1 || Config.Prometheus.Port > 65535) {
		return fmt.Errorf("invalid Prometheus port: %d", Config.Prometheus.Port)
	}

	return nil
}
