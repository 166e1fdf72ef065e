package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/vk/ssflowgo/internal/app"
	"github.com/vk/ssflowgo/internal/diagram"
	"github.com/vk/ssflowgo/internal/render"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("ssflowgo", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
ssflowgo - State-space schematic generator.

Usage:
  ssflowgo [options] MODEL_PATH

Arguments:
  MODEL_PATH
    Path to a YAML or JSON state-space model file.

Options:
`)
		flagSet.PrintDefaults()
	}

	styleFlag := flagSet.String("style", "sfg", "Diagram style. Options: 'sfg' or 'integrator'.")
	formatFlag := flagSet.String("format", "dot", "Output format. Options: 'dot', 'svg' or 'pdf'.")
	outFlag := flagSet.String("out", "", "Output file path. Defaults to <model name>.<format>.")
	rankdirFlag := flagSet.String("rankdir", "LR", "Graphviz rank direction. Options: 'LR' or 'TB'.")
	simplifyFlag := flagSet.Bool("simplify", false, "Simplify symbolic gains.")
	pruneFlag := flagSet.Bool("prune-zeros", false, "Drop zero-value edges.")
	floatFlag := flagSet.Int("float", 0, "Format numeric gains to N significant figures. 0 keeps full precision.")
	unicodeFlag := flagSet.Bool("unicode", false, "Use Unicode labels for sums and derivatives.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	if flagSet.NArg() == 0 {
		flagSet.Usage()
		return nil, true, nil
	}
	if flagSet.NArg() > 1 {
		return nil, false, &ExitError{Code: 2, Message: "expected exactly one model path argument"}
	}

	style, err := diagram.ParseStyle(strings.ToLower(*styleFlag))
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	format, err := render.ParseFormat(strings.ToLower(*formatFlag))
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if *floatFlag < 0 {
		return nil, false, &ExitError{Code: 2, Message: "-float must be a positive number of significant figures"}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}
	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	config, err := app.NewConfig(app.Config{
		ModelPath:    flagSet.Arg(0),
		OutPath:      *outFlag,
		Style:        style,
		Format:       format,
		RankDir:      strings.ToUpper(*rankdirFlag),
		Simplify:     *simplifyFlag,
		PruneZeros:   *pruneFlag,
		FloatSigFigs: *floatFlag,
		Unicode:      *unicodeFlag,
		LogFormat:    logFormat,
		LogLevel:     logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	return config, false, nil
}
