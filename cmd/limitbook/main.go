// Command limitbook runs the matching engine over a CSV operation
// stream, reading from a file (-i/--input) or standard input, and
// writing events to standard output (spec.md §6). Signal handling and
// the tomb-supervised run loop are adapted from the teacher's
// cmd/server/server.go.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"limitbook/internal/pipeline"
)

func main() {
	os.Exit(run())
}

func run() int {
	var inputPath string
	flag.StringVar(&inputPath, "i", "", "path to the input operation stream (default: stdin)")
	flag.StringVar(&inputPath, "input", "", "path to the input operation stream (default: stdin)")
	verbose := flag.Bool("v", false, "enable debug-level logging")
	flag.BoolVar(verbose, "verbose", false, "enable debug-level logging")
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()

	input := io.Reader(os.Stdin)
	if inputPath != "" {
		f, err := os.Open(inputPath)
		if err != nil {
			logger.Error().Err(err).Str("path", inputPath).Msg("unable to open input")
			return 1
		}
		defer f.Close()
		input = f
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	p := pipeline.New(input, os.Stdout, logger)
	if err := p.Run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
