package main

import (
	"context"
	"io"
	"time"

	"golang.org/x/sync/errgroup"

	"smartrecipe/internal/logger"
)

type batchResult struct {
	Path   string   `json:"path"`
	Dishes []string `json:"dishes,omitempty"`
	Error  string   `json:"error,omitempty"`
}

// recognizeBatch recognizes every path with at most workers in flight and writes one JSON line per
// path in argument order. failed reports whether any path produced an error.
func recognizeBatch(ctx context.Context, d deps, paths []string, workers int, stdout io.Writer) (failed bool, err error) {
	start := time.Now()
	results := make([]batchResult, len(paths))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			results[i] = recognizeOne(ctx, d, path)
			return nil
		})
	}
	_ = g.Wait()

	for _, r := range results {
		if r.Error != "" {
			failed = true
		}
		if err := writeJSONLine(stdout, r); err != nil {
			return failed, err
		}
	}

	d.log.WithFields(logger.Fields{
		logger.FieldCount:      len(paths),
		"workers":              workers,
		logger.FieldDurationMs: time.Since(start).Milliseconds(),
	}).Info("batch recognition complete")
	return failed, nil
}

func recognizeOne(ctx context.Context, d deps, path string) batchResult {
	meta, err := readMetadata(ctx, d.reader, path)
	if err != nil {
		d.log.WithError(err).WithField(logger.FieldPath, path).Debug("recognition failed")
		return batchResult{Path: path, Error: err.Error()}
	}
	return batchResult{Path: path, Dishes: d.recognizer.Recognize(meta)}
}
