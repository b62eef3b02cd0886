package recipe

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/gjson"
)

// Store defines the interface for reading recipes.
type Store interface {
	Recipes(ctx context.Context) ([]*Recipe, error)
}

// JSONStore is a read-only Store backed by a JSON document.
type JSONStore struct {
	recipes []*Recipe
}

// NewJSONStore loads the recipe file at path. The document is either an array of recipes or an
// object holding them under "recipes".
func NewJSONStore(path string) (*JSONStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read recipes file: %w", err)
	}
	recipes, err := ParseRecipes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return &JSONStore{recipes: recipes}, nil
}

// ParseRecipes decodes a recipe document. Entries without a name are skipped.
func ParseRecipes(data []byte) ([]*Recipe, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid JSON")
	}

	list := gjson.ParseBytes(data)
	if list.IsObject() {
		list = list.Get("recipes")
	}
	if !list.IsArray() {
		return nil, fmt.Errorf("expected an array of recipes")
	}

	var recipes []*Recipe
	for i, item := range list.Array() {
		var r Recipe
		if err := json.Unmarshal([]byte(item.Raw), &r); err != nil {
			return nil, fmt.Errorf("failed to unmarshal recipe %d: %w", i, err)
		}
		if r.Name == "" {
			continue
		}
		recipes = append(recipes, &r)
	}
	return recipes, nil
}

// Recipes returns all loaded recipes.
func (s *JSONStore) Recipes(ctx context.Context) ([]*Recipe, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]*Recipe, len(s.recipes))
	copy(out, s.recipes)
	return out, nil
}
