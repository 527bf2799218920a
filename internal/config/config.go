// internal/config/config.go
package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Enclosure EnclosureConfig `yaml:"enclosure"`
	Mirror    *MirrorConfig   `yaml:"mirror"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// ---- ENCLOSURE ----

type EnclosureConfig struct {
	Name      string `yaml:"name" validate:"max=64"`
	Type      string `yaml:"type" validate:"required,enclosure_type"`
	BlockSize int    `yaml:"block_size" validate:"gte=0,lte=65535"`
	MaxTypes  int    `yaml:"max_types" validate:"gte=0,lte=255"`
	Locale    uint8  `yaml:"locale"`

	Components []ComponentConfig `yaml:"components" validate:"dive"`
}

// ---- COMPONENT INVENTORY ----

type ComponentConfig struct {
	Type   string        `yaml:"type" validate:"required,component_type"`
	Count  int           `yaml:"count" validate:"gte=0,lte=65535"`
	Values []ValueConfig `yaml:"values" validate:"dive"`
}

// ValueConfig is an initial attribute value. Value is parsed per the
// attribute kind: bool, decimal/0x integer, text, or hex for buffers.
type ValueConfig struct {
	Index int    `yaml:"index" validate:"gte=0"`
	Attr  string `yaml:"attr" validate:"required"`
	Value string `yaml:"value"`
}

// ---- PEER SHADOW MIRROR (optional) ----

type MirrorConfig struct {
	Endpoint    string `yaml:"endpoint" validate:"required,hostname_port"`
	UnitID      uint8  `yaml:"unit_id"`
	BaseAddress uint16 `yaml:"base_address"`
	TimeoutMs   int    `yaml:"timeout_ms" validate:"gte=0"`
	IntervalMs  int    `yaml:"interval_ms" validate:"gte=0"`
}

// ---- METRICS ----

type MetricsConfig struct {
	Listen string `yaml:"listen"`
}

// Load reads and strictly decodes a YAML file. Unknown keys are errors.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse strictly decodes YAML bytes.
func Parse(raw []byte) (*Config, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	return &cfg, nil
}
