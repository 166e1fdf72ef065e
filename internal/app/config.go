package app

import (
	"errors"
	"fmt"

	"github.com/vk/ssflowgo/internal/diagram"
	"github.com/vk/ssflowgo/internal/render"
)

// Config holds everything one invocation needs. It is populated by the CLI
// layer and validated once by NewConfig.
type Config struct {
	ModelPath string // YAML or JSON model document
	OutPath   string // empty means <model name>.<format>

	Style   diagram.Style
	Format  render.Format
	RankDir string // LR or TB, pass-through layout hint

	Simplify     bool
	PruneZeros   bool
	FloatSigFigs int // <= 0 disables significant-figure formatting
	Unicode      bool

	LogFormat string
	LogLevel  string
}

// NewConfig validates the raw configuration and fills defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ModelPath == "" {
		return nil, errors.New("a model file path is required")
	}
	if cfg.Style == "" {
		cfg.Style = diagram.StyleSignalFlow
	}
	if cfg.Format == "" {
		cfg.Format = render.FormatDOT
	}
	switch cfg.RankDir {
	case "":
		cfg.RankDir = "LR"
	case "LR", "TB":
	default:
		return nil, fmt.Errorf("rankdir must be either LR or TB, got %q", cfg.RankDir)
	}
	if cfg.FloatSigFigs < 0 {
		return nil, fmt.Errorf("float significant figures must be positive, got %d", cfg.FloatSigFigs)
	}
	return &cfg, nil
}
