package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"smartrecipe/internal/cli"
	"smartrecipe/internal/dish"
	"smartrecipe/internal/logger"
	"smartrecipe/internal/platform/imageinfo"
	"smartrecipe/internal/recognition"
)

type (
	// cmd corresponds to the top-level `dishctl` command.
	cmd struct {
		LogLevel  string `name:"log-level" help:"Log level written to stderr." default:"warn" enum:"debug,info,warn,error"`
		LogFormat string `name:"log-format" help:"Log format." default:"text" enum:"text,json"`

		Catalog   struct{}     `cmd:"" help:"Print the dish catalog as a JSON array."`
		Inspect   cmdInspect   `cmd:"" help:"Print the metadata and seed of an image."`
		Recognize cmdRecognize `cmd:"" help:"Recognize dishes for one or more images, one JSON line per image."`
		Match     cmdMatch     `cmd:"" help:"Recognize an image and look up matching recipes."`
	}
	// cmdInspect corresponds to `dishctl inspect` command.
	cmdInspect struct {
		Path string `arg:"" name:"path" help:"Path to the image."`
	}
	// cmdRecognize corresponds to `dishctl recognize` command.
	cmdRecognize struct {
		Paths   []string `arg:"" name:"path" help:"Paths to the images."`
		Workers int      `help:"Number of images processed concurrently." default:"4"`
	}
	// cmdMatch corresponds to `dishctl match` command.
	cmdMatch struct {
		Recipes string `help:"Path to the recipes JSON file." required:"" type:"path"`
		Path    string `arg:"" name:"path" help:"Path to the image."`
	}
)

// Validate is called by Kong after parsing to validate the cmdRecognize arguments.
func (c *cmdRecognize) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	return nil
}

// deps holds the collaborators shared by the sub-commands.
type deps struct {
	reader     cli.MetadataReader
	recognizer cli.DishRecognizer
	log        *logger.Logger
}

func main() {
	doMain(context.Background(), os.Stdout, os.Stderr, os.Args[1:], os.Exit)
}

// doMain parses args and runs the selected sub-command.
//
//   - stdout and stderr are the writers used for output. Mainly for testing.
//   - args are the command line arguments without the program name.
//   - exitFn is called with the exit code, including for parse errors. Mainly for testing.
func doMain(ctx context.Context, stdout, stderr io.Writer, args []string, exitFn func(int)) {
	var c cmd
	parser, err := kong.New(&c,
		kong.Name("dishctl"),
		kong.Description("Developer tool for the dish recognizer."),
		kong.Writers(stdout, stderr),
		kong.Exit(exitFn),
	)
	if err != nil {
		log.Fatalf("Error creating parser: %v", err)
	}
	parsed, err := parser.Parse(args)
	parser.FatalIfErrorf(err)

	d := deps{
		reader:     imageinfo.NewReader(),
		recognizer: recognition.NewSampler(nil),
		log: logger.New(&logger.Config{
			Level:       c.LogLevel,
			Format:      c.LogFormat,
			Output:      stderr,
			ServiceName: "dishctl",
		}),
	}

	code := cli.ExitOK
	switch strings.Fields(parsed.Command())[0] {
	case "catalog":
		err = writeJSONLine(stdout, dish.Default().Names())
	case "inspect":
		err = inspect(ctx, d, c.Inspect.Path, stdout)
	case "recognize":
		var failed bool
		failed, err = recognizeBatch(ctx, d, c.Recognize.Paths, c.Recognize.Workers, stdout)
		if failed {
			code = cli.ExitFailure
		}
	case "match":
		err = match(ctx, d, c.Match.Recipes, c.Match.Path, stdout)
	default:
		err = fmt.Errorf("unknown command %q", parsed.Command())
	}
	if err != nil {
		d.log.WithError(err).Debug("command failed")
		_ = cli.WriteError(stdout, err.Error())
		code = cli.ExitFailure
	}
	exitFn(code)
}

func writeJSONLine(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
