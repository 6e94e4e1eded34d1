package theme

import "github.com/Rrens/birthday-builder/internal/domain"

// DefaultKey is used whenever a page references a theme that does not exist
const DefaultKey = "female_friend"

// SlideCount is the number of slides every theme carries
const SlideCount = 10

// Theme is the palette and fixed slide content for a category
type Theme struct {
	Key       string
	Colors    domain.Colors
	IntroText string
	Slides    [SlideCount]domain.Slide
}

// Catalog holds the static themes
type Catalog struct {
	themes map[string]*Theme
}

// NewCatalog returns the built-in themes
func NewCatalog() *Catalog {
	c := &Catalog{themes: make(map[string]*Theme, len(builtin))}
	for i := range builtin {
		c.themes[builtin[i].Key] = &builtin[i]
	}
	return c
}

// Lookup always returns a theme, falling back to DefaultKey
func (c *Catalog) Lookup(key string) *Theme {
	if t, ok := c.themes[key]; ok {
		return t
	}
	return c.themes[DefaultKey]
}

// Has reports whether the key names a built-in theme
func (c *Catalog) Has(key string) bool {
	_, ok := c.themes[key]
	return ok
}

// Keys returns the theme keys in catalog order
func (c *Catalog) Keys() []string {
	keys := make([]string, 0, len(builtin))
	for _, t := range builtin {
		keys = append(keys, t.Key)
	}
	return keys
}

// KeyForCategory maps a session category to its theme key
func KeyForCategory(category domain.Category) string {
	switch category {
	case domain.CategoryMaleFriend:
		return "male_friend"
	case domain.CategoryFemaleFriend:
		return "female_friend"
	case domain.CategoryUniversityJunior:
		return "university_junior"
	case domain.CategoryStudent:
		return "student"
	default:
		return DefaultKey
	}
}
