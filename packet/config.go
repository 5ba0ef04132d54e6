package packet

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Defaults for Config
const (
	DefaultMaxNestingDepth     = 8
	DefaultMaxDecompressedSize = 64 << 20
)

// Config provides codec limits
type Config struct {
	// MaxNestingDepth is the maximum depth of packets inside compressed data
	MaxNestingDepth int `json:"max_nesting_depth,omitempty" yaml:"max_nesting_depth,omitempty"`
	// MaxDecompressedSize is the maximum total of decompressed data, in octets,
	// across all compressed packets decoded by one Parse, ParseAll or ParseBody call
	MaxDecompressedSize int64 `json:"max_decompressed_size,omitempty" yaml:"max_decompressed_size,omitempty"`
}

// LoadConfig returns configuration loaded from a file
func LoadConfig(file string) (*Config, error) {
	if file == "" {
		return &Config{}, nil
	}

	raw, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var config Config
	if strings.HasSuffix(file, ".json") {
		err = json.Unmarshal(raw, &config)
		if err != nil {
			return nil, errors.WithMessagef(err, "unable to unmarshal JSON: %q", file)
		}
	} else {
		err = yaml.Unmarshal(raw, &config)
		if err != nil {
			return nil, errors.WithMessagef(err, "unable to unmarshal YAML: %q", file)
		}
	}

	if config.MaxNestingDepth < 0 {
		return nil, errors.Errorf("invalid max_nesting_depth: %d", config.MaxNestingDepth)
	}
	if config.MaxDecompressedSize < 0 {
		return nil, errors.Errorf("invalid max_decompressed_size: %d", config.MaxDecompressedSize)
	}
	return &config, nil
}

func (c Config) withDefaults() Config {
	if c.MaxNestingDepth == 0 {
		c.MaxNestingDepth = DefaultMaxNestingDepth
	}
	if c.MaxDecompressedSize == 0 {
		c.MaxDecompressedSize = DefaultMaxDecompressedSize
	}
	return c
}
