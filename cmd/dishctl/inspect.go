package main

import (
	"context"
	"io"
	"os"

	"smartrecipe/internal/cli"
	"smartrecipe/internal/platform/imageinfo"
	"smartrecipe/internal/recognition"
)

type inspectResult struct {
	Path   string `json:"path"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`
	Seed   int64  `json:"seed"`
	SHA256 string `json:"sha256"`
}

// inspect prints what the recognizer sees of an image: its header fields, the seed they produce
// and the file hash. Two files with the same seed are recognized identically.
func inspect(ctx context.Context, d deps, path string, stdout io.Writer) error {
	meta, err := readMetadata(ctx, d.reader, path)
	if err != nil {
		return err
	}
	sum, err := imageinfo.HashFile(path)
	if err != nil {
		return err
	}
	return writeJSONLine(stdout, inspectResult{
		Path:   path,
		Width:  meta.Width,
		Height: meta.Height,
		Format: meta.Format,
		Seed:   recognition.Seed(meta),
		SHA256: sum,
	})
}

// readMetadata reports a missing path the same way the recognize command does.
func readMetadata(ctx context.Context, reader cli.MetadataReader, path string) (*imageinfo.Metadata, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &cli.NotFoundError{Path: path}
	}
	return reader.Read(ctx, path)
}
