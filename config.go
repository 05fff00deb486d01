package tokenlist

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Output formats accepted by [Config.Output].
const (
	OutputSimple   = "simple"
	OutputBasic    = "basic"
	OutputDetailed = "detailed"
)

// Config holds everything the validator needs for one run.
type Config struct {
	// BaseDir is the directory relative local sources are resolved against.
	BaseDir string `yaml:"base_dir"`

	// Schema optionally names a schema file to use instead of
	// the embedded token list schema.
	Schema string `yaml:"schema"`

	// Timeout bounds loading the source. Zero disables it.
	Timeout time.Duration `yaml:"timeout"`

	HTTP HTTPConfig `yaml:"http"`
	Log  LogConfig  `yaml:"log"`

	// Output selects what is written to stdout after validation.
	Output string `yaml:"output"`
}

// HTTPConfig controls how remote sources are fetched.
type HTTPConfig struct {
	// MaxRedirects is the number of redirects followed.
	// Zero disables following redirects.
	MaxRedirects int    `yaml:"max_redirects"`
	Insecure     bool   `yaml:"insecure"`
	CACert       string `yaml:"cacert"`
}

// LogConfig controls the console and durable log sinks.
type LogConfig struct {
	Level    string `yaml:"level"`
	ErrorLog string `yaml:"error_log"`
	Service  string `yaml:"service"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
// Local sources resolve against the directory holding the executable.
func DefaultConfig() Config {
	return Config{
		BaseDir: executableDir(),
		Timeout: 30 * time.Second,
		HTTP: HTTPConfig{
			MaxRedirects: 10,
		},
		Log: LogConfig{
			Level:    "info",
			ErrorLog: "error.log",
			Service:  "token-list-validator",
		},
		Output: OutputSimple,
	}
}

// LoadConfig reads a YAML file on top of [DefaultConfig].
// Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative: %s", c.Timeout)
	}
	if c.HTTP.MaxRedirects < 0 {
		return fmt.Errorf("max_redirects must not be negative: %d", c.HTTP.MaxRedirects)
	}
	switch c.Output {
	case OutputSimple, OutputBasic, OutputDetailed:
	default:
		return fmt.Errorf("output must be one of %s, %s, %s: got %q", OutputSimple, OutputBasic, OutputDetailed, c.Output)
	}
	return nil
}

func executableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
}
