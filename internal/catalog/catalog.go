// Package catalog holds the selectable categories, keywords and tones offered
// when requesting content.
package catalog

import (
	_ "embed"
	"fmt"
	"math/rand/v2"

	"github.com/alkime/teeshot/internal/content"
	"gopkg.in/yaml.v3"
)

// Custom is the category name that means the user types their own.
const Custom = "직접 입력"

//go:embed catalog.yaml
var defaultCatalog []byte

// Category is a named group of suggested keywords.
type Category struct {
	Name     string   `yaml:"name" json:"name"`
	Keywords []string `yaml:"keywords" json:"keywords"`
}

// Catalog is the full set of choices.
type Catalog struct {
	Categories     []Category `yaml:"categories" json:"categories"`
	BlogCategories []Category `yaml:"blog_categories" json:"blog_categories"`
	Tones          []string   `yaml:"tones" json:"tones"`
	BlogLengths    []int      `yaml:"blog_lengths" json:"blog_lengths"`
	VideoLengths   []int      `yaml:"video_lengths" json:"video_lengths"`
}

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Parse decodes a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(c.Categories) == 0 {
		return nil, fmt.Errorf("catalog has no categories")
	}
	if len(c.BlogCategories) == 0 {
		c.BlogCategories = c.Categories
	}

	return &c, nil
}

// For returns the categories offered for format.
func (c *Catalog) For(format content.Format) []Category {
	if format == content.Blog {
		return c.BlogCategories
	}

	return c.Categories
}

// Keywords returns the keywords of category, falling back to the first
// category of format when it has none.
func (c *Catalog) Keywords(format content.Format, category string) []string {
	cats := c.For(format)
	for _, cat := range cats {
		if cat.Name == category && len(cat.Keywords) > 0 {
			return cat.Keywords
		}
	}
	if len(cats) == 0 {
		return nil
	}

	return cats[0].Keywords
}

// RandomKeyword picks a keyword for category. The custom category yields "".
func (c *Catalog) RandomKeyword(rng *rand.Rand, format content.Format, category string) string {
	if category == Custom {
		return ""
	}

	return pick(rng, c.Keywords(format, category))
}

// Quick builds a randomized request for format, as the one-click generate
// button does.
func (c *Catalog) Quick(rng *rand.Rand, format content.Format) content.Input {
	var named []Category
	for _, cat := range c.For(format) {
		if cat.Name != Custom {
			named = append(named, cat)
		}
	}

	in := content.Input{
		Format:       format,
		CardCount:    rng.IntN(8) + 3,
		TextLength:   pick(rng, c.BlogLengths),
		SectionCount: rng.IntN(10) + 1,
		VideoLength:  30,
		Tone:         pick(rng, c.Tones),
	}
	if len(named) > 0 {
		cat := named[rng.IntN(len(named))]
		in.Category = cat.Name
		in.Keyword = c.RandomKeyword(rng, format, cat.Name)
	}

	return in
}

func pick[T any](rng *rand.Rand, items []T) T {
	var zero T
	if len(items) == 0 {
		return zero
	}

	return items[rng.IntN(len(items))]
}
