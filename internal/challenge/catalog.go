// Package challenge holds the static catalog of numbered foundation
// exercises woven into check-ins.
package challenge

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/alexanderramin/dayframe/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var embedded []byte

// EnvCatalogPath names a YAML file that replaces the built-in catalog.
const EnvCatalogPath = "DAYFRAME_CHALLENGES"

var ErrUnknownChallenge = errors.New("unknown challenge")

// Catalog is an ordered, read-only set of challenges.
type Catalog struct {
	items    []domain.Challenge
	byNumber map[int]domain.Challenge
}

// Load returns the catalog at $DAYFRAME_CHALLENGES if set, otherwise the
// built-in one.
func Load() (*Catalog, error) {
	if path := os.Getenv(EnvCatalogPath); path != "" {
		return LoadFile(path)
	}
	return Parse(embedded)
}

func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading challenge catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML list of challenges. Numbers must be positive and
// unique; titles are required.
func Parse(data []byte) (*Catalog, error) {
	var items []domain.Challenge
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parsing challenge catalog: %w", err)
	}

	c := &Catalog{byNumber: make(map[int]domain.Challenge, len(items))}
	for _, ch := range items {
		if ch.Number <= 0 {
			return nil, fmt.Errorf("challenge %q: number must be positive", ch.Title)
		}
		if ch.Title == "" {
			return nil, fmt.Errorf("challenge %d: missing title", ch.Number)
		}
		if _, dup := c.byNumber[ch.Number]; dup {
			return nil, fmt.Errorf("challenge %d: duplicate number", ch.Number)
		}
		c.byNumber[ch.Number] = ch
		c.items = append(c.items, ch)
	}
	sort.Slice(c.items, func(i, j int) bool { return c.items[i].Number < c.items[j].Number })
	return c, nil
}

// All returns the challenges ordered by number.
func (c *Catalog) All() []domain.Challenge {
	out := make([]domain.Challenge, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Catalog) ByNumber(n int) (domain.Challenge, error) {
	ch, ok := c.byNumber[n]
	if !ok {
		return domain.Challenge{}, fmt.Errorf("%w: #%d", ErrUnknownChallenge, n)
	}
	return ch, nil
}

func (c *Catalog) Len() int { return len(c.items) }
