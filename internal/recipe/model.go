package recipe

import (
	"encoding/json"
	"strings"
)

// Recipe represents a recipe from the recipe collection.
type Recipe struct {
	Name              string   `json:"name"`
	Description       string   `json:"description,omitempty"`
	Cuisine           string   `json:"cuisine,omitempty"`
	DietaryPreference string   `json:"dietary_preference,omitempty"`
	CookingTime       string   `json:"cooking_time,omitempty"`
	Servings          string   `json:"servings,omitempty"`
	Ingredients       []string `json:"ingredients,omitempty"`
	Instructions      []string `json:"instructions,omitempty"`
	ImageURL          string   `json:"image_url,omitempty"`
}

// UnmarshalJSON implements the json.Unmarshaler interface for Recipe.
// Cuisine and dietary preference are lower-cased, and "title" is accepted when "name" is absent.
func (r *Recipe) UnmarshalJSON(data []byte) error {
	type Alias Recipe // Create an alias to avoid infinite recursion
	aux := &struct {
		Title             string `json:"title"`
		Cuisine           string `json:"cuisine"`
		DietaryPreference string `json:"dietary_preference"`
		*Alias
	}{
		Alias: (*Alias)(r),
	}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if r.Name == "" {
		r.Name = aux.Title
	}
	r.Name = strings.TrimSpace(r.Name)
	r.Cuisine = strings.ToLower(aux.Cuisine)
	r.DietaryPreference = strings.ToLower(aux.DietaryPreference)

	return nil
}
