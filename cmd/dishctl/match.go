package main

import (
	"context"
	"io"

	"smartrecipe/internal/logger"
	"smartrecipe/internal/recipe"
	"smartrecipe/internal/recognition"
)

type matchResult struct {
	Dishes  []string         `json:"dishes"`
	Recipes []*recipe.Recipe `json:"recipes"`
}

// match recognizes the image at path and looks the dish names up in the recipe file.
func match(ctx context.Context, d deps, recipesPath, path string, stdout io.Writer) error {
	store, err := recipe.NewJSONStore(recipesPath)
	if err != nil {
		return err
	}

	meta, err := readMetadata(ctx, d.reader, path)
	if err != nil {
		return err
	}
	dishes := d.recognizer.Recognize(meta)

	recipes, err := store.Recipes(ctx)
	if err != nil {
		return err
	}
	matched := recipe.Match(recipes, dishes, recognition.Seed(meta))

	d.log.WithFields(logger.Fields{
		logger.FieldPath:  path,
		logger.FieldCount: len(matched),
		"dishes":          len(dishes),
	}).Info("recipes matched")

	return writeJSONLine(stdout, matchResult{Dishes: dishes, Recipes: matched})
}
