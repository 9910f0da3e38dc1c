package logfactory

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/philipp01105/logbridge/core"
	"github.com/philipp01105/logbridge/output"
)

// Environment variables read by ApplyEnv
const (
	EnvConfig  = "LOGBRIDGE_CONFIG"
	EnvBackend = "LOGBRIDGE_BACKEND"
	EnvLevel   = "LOGBRIDGE_LEVEL"
	EnvFormat  = "LOGBRIDGE_FORMAT"
	EnvOutput  = "LOGBRIDGE_OUTPUT"
	EnvCaller  = "LOGBRIDGE_CALLER"
)

// Output formats
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Config controls how a Factory selects and builds its backend
type Config struct {
	// Backend names the backend to use. Empty means discovery.
	Backend string `yaml:"backend"`
	// Discovery is the order in which backends are tried when Backend is
	// empty (default: DefaultDiscovery)
	Discovery []string `yaml:"discovery"`
	// Level is the threshold handed to the backend (default: INFO)
	Level core.Level `yaml:"level"`
	// Format is "json" or "text" (default: json)
	Format string `yaml:"format"`
	// Output is "stdout", "stderr" or a file path (default: stderr)
	Output string `yaml:"output"`
	// Caller attaches the application caller to each record
	Caller bool `yaml:"caller"`
	// Rotation applies when Output is a file path
	Rotation output.Rotation `yaml:"rotation"`
}

// DefaultDiscovery is the backend order tried when none is configured
var DefaultDiscovery = []string{"zap", "zerolog", "logrus", "slog"}

// DefaultConfig returns the configuration used when nothing is set
func DefaultConfig() Config {
	return Config{
		Level:  core.InfoLevel,
		Format: FormatJSON,
		Output: "stderr",
	}
}

// LoadConfig reads a YAML config file. Fields absent from the file keep
// their DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return ReadConfig(f)
}

// fileConfig mirrors Config with optional fields, so keys absent from the
// document keep their defaults
type fileConfig struct {
	Backend   *string          `yaml:"backend"`
	Discovery []string         `yaml:"discovery"`
	Level     *string          `yaml:"level"`
	Format    *string          `yaml:"format"`
	Output    *string          `yaml:"output"`
	Caller    *bool            `yaml:"caller"`
	Rotation  *output.Rotation `yaml:"rotation"`
}

// ReadConfig decodes a YAML config from r on top of DefaultConfig. An empty
// document yields DefaultConfig.
func ReadConfig(r io.Reader) (Config, error) {
	var fc fileConfig
	if err := yaml.NewDecoder(r).Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	cfg := DefaultConfig()
	if fc.Backend != nil {
		cfg.Backend = *fc.Backend
	}
	if len(fc.Discovery) > 0 {
		cfg.Discovery = fc.Discovery
	}
	if fc.Level != nil {
		lvl, err := core.ParseLevel(*fc.Level)
		if err != nil {
			return Config{}, fmt.Errorf("decode config: %w", err)
		}
		cfg.Level = lvl
	}
	if fc.Format != nil {
		cfg.Format = strings.ToLower(*fc.Format)
	}
	if fc.Output != nil {
		cfg.Output = *fc.Output
	}
	if fc.Caller != nil {
		cfg.Caller = *fc.Caller
	}
	if fc.Rotation != nil {
		cfg.Rotation = *fc.Rotation
	}
	return cfg, cfg.Validate()
}

// ApplyEnv returns a copy of c with LOGBRIDGE_* environment overrides applied
func (c Config) ApplyEnv() (Config, error) {
	return c.applyEnv(os.LookupEnv)
}

func (c Config) applyEnv(lookup func(string) (string, bool)) (Config, error) {
	if v, ok := lookup(EnvBackend); ok {
		c.Backend = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvLevel); ok {
		lvl, err := core.ParseLevel(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvLevel, err)
		}
		c.Level = lvl
	}
	if v, ok := lookup(EnvFormat); ok {
		c.Format = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := lookup(EnvOutput); ok {
		c.Output = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvCaller); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvCaller, err)
		}
		c.Caller = b
	}
	return c, c.Validate()
}

// Validate checks the config for unusable values
func (c Config) Validate() error {
	if !c.Level.Valid() {
		return fmt.Errorf("invalid level %d", int8(c.Level))
	}
	switch c.Format {
	case "", FormatJSON, FormatText:
	default:
		return fmt.Errorf("unknown format %q", c.Format)
	}
	return nil
}

// discovery returns the configured order or DefaultDiscovery
func (c Config) discovery() []string {
	if len(c.Discovery) > 0 {
		return c.Discovery
	}
	return DefaultDiscovery
}
