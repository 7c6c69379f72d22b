// Package config loads the proxy's YAML configuration file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds every setting the proxy reads from its YAML config file.
type Config struct {
	ListenAddr           string `yaml:"listen_addr"`
	BackendAddr          string `yaml:"backend_addr"`
	FallbackAddr         string `yaml:"fallback_addr"`
	OnlineMode           bool   `yaml:"online_mode"`
	CompressionThreshold int    `yaml:"compression_threshold"`
	CompressionLevel     int    `yaml:"compression_level"`

	MotdName string `yaml:"motd_name"`
	MotdText string `yaml:"motd_text"`
	MaxSlots int     `yaml:"max_slots"`
}

// Load reads and parses path, applying the same defaults a vanilla server
// uses when a field is left unset.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	var c Config
	if err := yaml.NewDecoder(f).Decode(&c); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if c.CompressionThreshold == 0 {
		c.CompressionThreshold = -1
	}
	if c.CompressionLevel == 0 {
		c.CompressionLevel = -1
	}
	if c.MaxSlots == 0 {
		c.MaxSlots = 20
	}
	if c.MotdText == "" {
		c.MotdText = "A Minecraft Server"
	}

	return &c, nil
}
