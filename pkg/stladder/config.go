package stladder

import (
	"os"

	"github.com/goccy/go-yaml"
)

// Config is the project file (stladder.yaml): a scan period, whether
// unsupported-statement warnings are reported, and an entry file. Only
// LoadConfig reads it; the CLI and Engine do not consult it.
type Config struct {
	ScanTimeMs        int64  `yaml:"scanTimeMs"`
	WarnOnUnsupported bool   `yaml:"warnOnUnsupported"`
	Entry             string `yaml:"entry"`
}

// DefaultConfig mirrors the runtime package's own defaults so a missing
// config file behaves identically to an empty one.
func DefaultConfig() Config {
	return Config{ScanTimeMs: 100, WarnOnUnsupported: true}
}

// LoadConfig reads and parses a stladder.yaml project file.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
