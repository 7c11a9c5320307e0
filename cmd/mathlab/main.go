package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vk/mathlab/internal/cli"
)

// main is the entrypoint for the mathlab application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW io.Writer, args []string) (err error) {
	// Render entries panic on programmer errors such as a duplicate name;
	// report them as a startup failure instead of a crash.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application startup panicked: %v", r)
		}
	}()

	cmd := cli.NewRootCmd(outW)
	cmd.SetArgs(args)
	return cmd.Execute()
}
