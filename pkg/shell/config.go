package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
	"src.rambutan.dev/pkg/eval"
	"src.rambutan.dev/pkg/eval/errs"
)

const (
	defaultPrompt      = "rambutan> "
	defaultHistorySize = 1000
)

// Config is the content of rc.yaml.
type Config struct {
	// Strict makes unbound symbols an error.
	Strict bool `yaml:"strict"`
	// MaxDepth limits the nesting of evaluation. 0 means the default.
	MaxDepth int `yaml:"max-depth"`
	// Prompt is shown by the REPL before each input.
	Prompt string `yaml:"prompt"`
	// HistorySize is the number of past inputs loaded into the REPL.
	HistorySize int `yaml:"history-size"`
	// Preload lists script files evaluated before the REPL or the script
	// starts.
	Preload []string `yaml:"preload"`
	// DB is the path to the store database.
	DB string `yaml:"db"`
}

// DefaultConfig returns the configuration used when there is no rc.yaml.
func DefaultConfig() *Config {
	return &Config{Prompt: defaultPrompt, HistorySize: defaultHistorySize}
}

// LoadConfig reads the configuration from the named file. A missing file is
// not an error, and results in the default configuration.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, err
	}
	defer f.Close()
	cfg, err := ParseConfig(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig parses the configuration from r. Unknown keys are rejected.
func ParseConfig(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	err := dec.Decode(cfg)
	if err != nil && err != io.EOF {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) validate() error {
	if cfg.MaxDepth < 0 || cfg.MaxDepth > eval.MaxDepthLimit {
		return errs.OutOfRange{What: "max-depth",
			ValidLow: "0", ValidHigh: strconv.Itoa(eval.MaxDepthLimit),
			Actual: strconv.Itoa(cfg.MaxDepth)}
	}
	if cfg.HistorySize < 0 {
		return errs.OutOfRange{What: "history-size",
			ValidLow: "0", ValidHigh: "∞", Actual: strconv.Itoa(cfg.HistorySize)}
	}
	return nil
}

// EvalConfig derives the interpreter configuration. The strict flag from the
// command line overrides the file.
func (cfg *Config) EvalConfig(strict bool, stdout, warn io.Writer) eval.Config {
	return eval.Config{
		Strict:   cfg.Strict || strict,
		MaxDepth: cfg.MaxDepth,
		Stdout:   stdout,
		Warn:     warn,
	}
}
