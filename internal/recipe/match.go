package recipe

import (
	"strings"

	"smartrecipe/internal/recognition"
)

// MaxMatches is the most recipes a lookup returns.
const MaxMatches = 10

// Match finds recipes for the recognized dish names. A recipe matches a dish when either lower-cased
// name contains the other. Names are visited in order, each recipe is returned once, and the lookup
// stops after the name that brings the total to MaxMatches or more.
//
// When nothing matches, up to MaxMatches recipes are picked with a generator seeded by seed.
func Match(recipes []*Recipe, dishes []string, seed int64) []*Recipe {
	var matched []*Recipe
	seen := make(map[string]bool)

	for _, dish := range dishes {
		d := strings.ToLower(dish)
		for _, r := range recipes {
			if seen[r.Name] {
				continue
			}
			name := strings.ToLower(r.Name)
			if strings.Contains(name, d) || strings.Contains(d, name) {
				seen[r.Name] = true
				matched = append(matched, r)
			}
		}
		if len(matched) >= MaxMatches {
			break
		}
	}

	if len(matched) > 0 {
		return matched
	}

	k := MaxMatches
	if len(recipes) < k {
		k = len(recipes)
	}
	return recognition.Sample(recognition.NewGenerator(seed), recipes, k)
}
