package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/ssflowgo/internal/ctxlog"
	"github.com/vk/ssflowgo/internal/diagram"
	"github.com/vk/ssflowgo/internal/dot"
	"github.com/vk/ssflowgo/internal/modelfile"
	"github.com/vk/ssflowgo/internal/render"
)

// App runs one build invocation: model document in, DOT text (and optionally
// a rendered artifact) out.
type App struct {
	cfg      *Config
	logger   *slog.Logger
	out      io.Writer
	renderer *render.Renderer
}

// NewApp constructs an App writing progress messages to outW and log output
// to logW.
func NewApp(outW, logW io.Writer, cfg *Config) *App {
	return &App{
		cfg:      cfg,
		logger:   newLogger(cfg.LogLevel, cfg.LogFormat, logW),
		out:      outW,
		renderer: render.New(),
	}
}

// Run executes the pipeline. The returned error is nil when the textual
// output was produced, even if an optional rasterization step had to be
// skipped because the renderer is not installed.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	m, err := modelfile.Load(a.cfg.ModelPath)
	if err != nil {
		return err
	}
	a.logger.Debug("model loaded", "name", m.Name(), "order", m.Order())

	g, err := diagram.Build(m, a.cfg.Style, a.cfg.Unicode)
	if err != nil {
		return err
	}
	a.logger.Debug("diagram built", "style", string(a.cfg.Style), "nodes", len(g.Nodes()), "edges", len(g.Edges()))

	diagram.ApplyTransforms(g, diagram.TransformOptions{
		Simplify:     a.cfg.Simplify,
		PruneZeros:   a.cfg.PruneZeros,
		FloatSigFigs: a.cfg.FloatSigFigs,
		Unicode:      a.cfg.Unicode,
	})

	text := dot.Marshal(g, dot.Options{Name: m.Name(), RankDir: a.cfg.RankDir})

	outPath := a.cfg.OutPath
	if outPath == "" {
		outPath = fmt.Sprintf("%s.%s", m.Name(), a.cfg.Format)
	}

	if a.cfg.Format == render.FormatDOT {
		if err := writeText(outPath, text); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Wrote dot to %s\n", outPath)
		return nil
	}

	err = a.renderer.Render(ctx, text, a.cfg.Format, outPath)
	if errors.Is(err, render.ErrUnavailable) {
		// Recoverable: keep the textual serialization and say why the
		// raster artifact is missing.
		fallback := replaceExt(outPath, ".dot")
		a.logger.Warn("graphviz renderer unavailable, writing dot text instead", "error", err, "path", fallback)
		if werr := writeText(fallback, text); werr != nil {
			return werr
		}
		fmt.Fprintf(a.out, "Wrote dot to %s (renderer unavailable)\n", fallback)
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Wrote %s to %s\n", a.cfg.Format, outPath)
	return nil
}

func writeText(path, text string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("app: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("app: %w", err)
	}
	return nil
}

func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
