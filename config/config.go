package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/iamNilotpal/zstream"
)

// Config carries tool-level defaults for the zstream command. File values
// fill in whatever the command line leaves unset.
type Config struct {
	BufferSize int        `yaml:"buffer_size"` // Segment size in bytes for every stage
	Level      int        `yaml:"level"`       // Compression level (-1 store, 0 default, 1-9)
	Format     string     `yaml:"format"`      // Deflate wrapper: "zlib" or "raw"
	Gzip       GzipConfig `yaml:"gzip"`
}

// GzipConfig holds member header defaults for gzip mode.
type GzipConfig struct {
	FileName string `yaml:"file_name"` // Header file name; input base name when empty
	Comment  string `yaml:"comment"`   // Header comment
}

// DefaultConfig returns a Config with the tool's built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		BufferSize: zstream.DefaultBufferSize,
		Level:      int(zstream.DefaultCompression),
		Format:     "zlib",
	}
}

// LoadConfig loads configuration from a YAML file. Keys absent from the
// file keep their built-in defaults.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.BufferSize <= 0 {
		return fmt.Errorf("buffer_size must be greater than 0")
	}

	if !zstream.CompressionLevel(config.Level).IsValid() {
		return fmt.Errorf("level must be -1, 0, or 1 through 9")
	}

	switch config.Format {
	case "zlib", "raw":
	default:
		return fmt.Errorf("format must be \"zlib\" or \"raw\"")
	}

	return nil
}
