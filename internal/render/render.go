// Package render rasterizes serialized DOT text by invoking the external
// Graphviz binary. A missing binary is a recoverable condition: the caller
// still has the DOT text and reports the unavailability as a warning rather
// than failing the run.
package render

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/vk/ssflowgo/internal/ctxlog"
)

// Format is a requested output artifact type.
type Format string

const (
	FormatDOT Format = "dot"
	FormatSVG Format = "svg"
	FormatPDF Format = "pdf"
)

// ParseFormat validates a format name from configuration.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatDOT, FormatSVG, FormatPDF:
		return Format(s), nil
	default:
		return "", fmt.Errorf("render: unknown output format %q (want dot, svg or pdf)", s)
	}
}

// ErrUnavailable marks the recoverable "renderer not installed" condition.
// Match with errors.Is.
var ErrUnavailable = errors.New("render: graphviz renderer unavailable")

// UnavailableError names the missing binary and carries an actionable
// install hint. It unwraps to ErrUnavailable.
type UnavailableError struct {
	Binary string
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("render: %q executable not found; install graphviz or request dot output", e.Binary)
}

func (e *UnavailableError) Unwrap() error { return ErrUnavailable }

// Renderer invokes a Graphviz layout binary as a subprocess. The zero value
// is not usable; construct with New.
type Renderer struct {
	binary string
}

// New returns a renderer using the standard `dot` layout binary.
func New() *Renderer {
	return &Renderer{binary: "dot"}
}

// NewWithBinary returns a renderer using a specific layout binary, mainly
// for tests.
func NewWithBinary(binary string) *Renderer {
	return &Renderer{binary: binary}
}

// Render feeds the DOT source to the layout binary and writes the requested
// format to outPath. The invocation is synchronous and never retried;
// regenerating the cheap DOT text is what a caller would retry, not the
// subprocess. A missing binary yields *UnavailableError.
func (r *Renderer) Render(ctx context.Context, dotSource string, format Format, outPath string) error {
	if format == FormatDOT {
		return fmt.Errorf("render: dot output is written directly, not rendered")
	}
	path, err := exec.LookPath(r.binary)
	if err != nil {
		return &UnavailableError{Binary: r.binary}
	}

	logger := ctxlog.FromContext(ctx)
	logger.Debug("invoking graphviz", "binary", path, "format", string(format), "out", outPath)

	cmd := exec.CommandContext(ctx, path, "-T"+string(format), "-o", outPath)
	cmd.Stdin = strings.NewReader(dotSource)
	var stderr strings.Builder
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("render: graphviz exited with code %d: %s", exitErr.ExitCode(), strings.TrimSpace(stderr.String()))
		}
		return fmt.Errorf("render: graphviz invocation failed: %w", err)
	}
	return nil
}
