package model

import (
	"strings"

	"github.com/pkg/errors"
)

// Category classifies an item; it determines the item's processing duration.
type Category int

const (
	Fast Category = iota
	SemiFast
	Long
)

var categoryNames = map[Category]string{
	Fast:     "fast",
	SemiFast: "semiFast",
	Long:     "long",
}

// Categories returns all known categories, shortest first.
func Categories() []Category {
	return []Category{Fast, SemiFast, Long}
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "unknown"
}

// IsValid returns true for one of the predefined categories.
func (c Category) IsValid() bool {
	_, ok := categoryNames[c]
	return ok
}

// ParseCategory parses a category name, case-insensitively. Both "semiFast"
// and "semi-fast" are accepted.
func ParseCategory(name string) (Category, error) {
	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), "-", ""))
	for c, candidate := range categoryNames {
		if strings.ToLower(candidate) == normalized {
			return c, nil
		}
	}
	return Fast, errors.Errorf("unknown category: %q", name)
}

// MarshalText implements encoding.TextMarshaler
func (c Category) MarshalText() ([]byte, error) {
	if !c.IsValid() {
		return nil, errors.Errorf("invalid category: %d", int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
