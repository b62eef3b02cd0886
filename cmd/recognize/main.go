package main

import (
	"context"
	"io"
	"os"

	"smartrecipe/internal/cli"
	"smartrecipe/internal/logger"
	"smartrecipe/internal/platform/imageinfo"
	"smartrecipe/internal/recognition"
)

func main() {
	os.Exit(run(context.Background(), os.Args, os.Stdout, os.Stderr))
}

// run wires the recognizer and returns the exit code. Arguments are passed through untouched:
// the single argument is always an image path, never a flag.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	log := logger.New(&logger.Config{
		Level:       "error",
		Format:      "text",
		Output:      stderr,
		ServiceName: "recognize",
	})

	handler := cli.NewHandler(imageinfo.NewReader(), recognition.NewSampler(nil), log)
	return handler.Run(ctx, args, stdout)
}
