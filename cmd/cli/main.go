package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/vk/ssflowgo/internal/app"
	"github.com/vk/ssflowgo/internal/cli"
)

// main is the entrypoint for the ssflowgo application.
func main() {
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error
// handling.
func run(outW io.Writer, args []string) error {
	config, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	a := app.NewApp(outW, os.Stderr, config)
	return a.Run(context.Background())
}
