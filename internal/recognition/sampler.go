package recognition

import (
	"smartrecipe/internal/dish"
	"smartrecipe/internal/platform/imageinfo"
)

const (
	// MinDishes is the smallest number of dishes a recognition returns.
	MinDishes = 5
	// MaxDishes is the largest number of dishes a recognition returns.
	MaxDishes = 10
)

// Seed derives the generator seed from image metadata: width + height + length of the format tag.
// Pixel content never contributes.
func Seed(meta *imageinfo.Metadata) int64 {
	return int64(meta.Width) + int64(meta.Height) + int64(len(meta.Format))
}

// Sampler picks dish names from a catalog using a generator seeded from image metadata.
type Sampler struct {
	catalog *dish.Catalog
}

// NewSampler creates a new Sampler over catalog. A nil catalog uses dish.Default().
func NewSampler(catalog *dish.Catalog) *Sampler {
	if catalog == nil {
		catalog = dish.Default()
	}
	return &Sampler{catalog: catalog}
}

// Recognize returns between MinDishes and MaxDishes distinct catalog names for meta.
// Images with the same seed always yield the same names in the same order.
func (s *Sampler) Recognize(meta *imageinfo.Metadata) []string {
	return s.RecognizeSeed(Seed(meta))
}

// RecognizeSeed is Recognize for an already derived seed.
func (s *Sampler) RecognizeSeed(seed int64) []string {
	g := NewGenerator(seed)
	count := g.IntRange(MinDishes, MaxDishes)
	if n := s.catalog.Len(); count > n {
		count = n
	}
	return Sample(g, s.catalog.Names(), count)
}
