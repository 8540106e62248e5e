package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Transport names accepted by the serve commands.
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
	TransportHTTP  = "http"
)

// Config holds the runtime settings for the task manager server.
type Config struct {
	ServerName    string
	Transport     string
	Host          string
	Port          int
	Debug         bool
	Seed          bool
	NotesDir      string
	StatsInterval time.Duration
}

// SetDefaults registers the default values with viper. Call before Load.
func SetDefaults() {
	viper.SetDefault("server_name", "Advanced Task Manager")
	viper.SetDefault("transport", TransportStdio)
	viper.SetDefault("host", "0.0.0.0")
	viper.SetDefault("port", 8000)
	viper.SetDefault("debug", false)
	viper.SetDefault("seed", true)
	viper.SetDefault("notes_dir", "")
	viper.SetDefault("stats_interval", time.Duration(0))
}

// Load builds a Config from viper's current state (config file, env,
// bound flags) and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		ServerName:    viper.GetString("server_name"),
		Transport:     normalizeTransport(viper.GetString("transport")),
		Host:          viper.GetString("host"),
		Port:          viper.GetInt("port"),
		Debug:         viper.GetBool("debug"),
		Seed:          viper.GetBool("seed"),
		NotesDir:      viper.GetString("notes_dir"),
		StatsInterval: viper.GetDuration("stats_interval"),
	}

	switch cfg.Transport {
	case TransportStdio, TransportSSE, TransportHTTP:
	default:
		return nil, fmt.Errorf("unknown transport %q (expected stdio, sse or http)", cfg.Transport)
	}

	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d", cfg.Port)
	}

	return cfg, nil
}

// Addr returns the listen address for the network transports.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// normalizeTransport maps the streamable-http spelling used by other MCP
// tooling onto the short name.
func normalizeTransport(transport string) string {
	if transport == "streamable-http" {
		return TransportHTTP
	}
	return transport
}
