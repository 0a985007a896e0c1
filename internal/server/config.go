package server

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/takhmino/takhmino/internal/config"
	"github.com/takhmino/takhmino/pkg/constants"
	"gopkg.in/yaml.v3"
)

// Config defines runtime parameters for the HTTP server.
type Config struct {
	Address           string               `yaml:"address"`
	MaxBodySize       ByteSize             `yaml:"maxBodySize"`
	Version           string               `yaml:"version"`
	ReadHeaderTimeout time.Duration        `yaml:"readHeaderTimeout"`
	ShutdownTimeout   time.Duration        `yaml:"shutdownTimeout"`
	Logging           config.LoggingConfig `yaml:"logging"`
}

// LoadConfig loads the server configuration from YAML. A missing file yields
// the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read server config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse server config: %w", err)
			}
		}
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Address == "" {
		c.Address = constants.DefaultServerAddress
	}
	if c.MaxBodySize <= 0 {
		c.MaxBodySize = ByteSize(constants.DefaultMaxBodySizeBytes)
	}
	if strings.TrimSpace(c.Version) == "" {
		c.Version = "dev"
	}
	if c.ReadHeaderTimeout <= 0 {
		c.ReadHeaderTimeout = constants.DefaultReadHeaderTimeout
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = constants.DefaultShutdownTimeout
	}
}

// ByteSize is a byte count written either as a plain integer or with a
// binary unit suffix such as "256K" or "1MB".
type ByteSize int64

// UnmarshalYAML accepts integers and human-readable sizes.
func (b *ByteSize) UnmarshalYAML(node *yaml.Node) error {
	size, err := ParseSize(node.Value)
	if err != nil {
		return err
	}
	*b = ByteSize(size)
	return nil
}

func (b ByteSize) String() string {
	for _, u := range sizeUnits {
		if u.bytes > 1 && b >= ByteSize(u.bytes) && int64(b)%u.bytes == 0 {
			return strconv.FormatInt(int64(b)/u.bytes, 10) + u.suffix
		}
	}
	return strconv.FormatInt(int64(b), 10)
}

var sizeUnits = []struct {
	suffix string
	bytes  int64
}{
	{"M", 1 << 20},
	{"K", 1 << 10},
	{"B", 1},
}

// ParseSize converts a size such as "512", "256K", "256 kb" or "1M" into
// bytes. An empty string yields 0.
func ParseSize(value string) (int64, error) {
	s := strings.ToUpper(strings.TrimSpace(value))
	if s == "" {
		return 0, nil
	}

	multiplier := int64(1)
	for _, u := range sizeUnits {
		if trimmed, ok := strings.CutSuffix(s, u.suffix+"B"); ok && u.bytes > 1 {
			s, multiplier = trimmed, u.bytes
			break
		}
		if trimmed, ok := strings.CutSuffix(s, u.suffix); ok {
			s, multiplier = trimmed, u.bytes
			break
		}
	}

	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q", value)
	}
	if n < 0 || n > (1<<63-1)/multiplier {
		return 0, fmt.Errorf("size %q out of range", value)
	}
	return n * multiplier, nil
}
