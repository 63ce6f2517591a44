package engine

import (
	"github.com/vovakirdan/pose-catcher/internal/config"
	"github.com/vovakirdan/pose-catcher/internal/core"
)

// ItemKind is an immutable catalog entry shared by every item of that kind.
type ItemKind struct {
	ID         string
	Glyph      string
	Color      core.Color
	ScoreValue int
	BaseSpeed  float64
	IsHazard   bool
	IsSpecial  bool
}

// Catalog holds the item kinds and their cumulative spawn probabilities.
type Catalog struct {
	kinds      []*ItemKind
	cumulative []float64 // cumulative[i] is the upper bound of kind i in [0,1)
}

// NewCatalog builds a catalog from config, normalizing weights to sum to 1.
func NewCatalog(kinds []config.ItemKindConfig) *Catalog {
	c := &Catalog{
		kinds:      make([]*ItemKind, 0, len(kinds)),
		cumulative: make([]float64, 0, len(kinds)),
	}

	var total float64
	for _, k := range kinds {
		if k.Weight > 0 {
			total += k.Weight
		}
	}

	var acc float64
	for _, k := range kinds {
		c.kinds = append(c.kinds, &ItemKind{
			ID:         k.ID,
			Glyph:      k.Glyph,
			Color:      core.ParseColor(k.Color),
			ScoreValue: k.Score,
			BaseSpeed:  k.BaseSpeed,
			IsHazard:   k.Hazard,
			IsSpecial:  k.Special,
		})
		if k.Weight > 0 && total > 0 {
			acc += k.Weight / total
		}
		c.cumulative = append(c.cumulative, acc)
	}
	return c
}

// Pick selects a kind with one draw r in [0,1) against the cumulative table.
// Returns nil only for an empty catalog.
func (c *Catalog) Pick(r float64) *ItemKind {
	if len(c.kinds) == 0 {
		return nil
	}
	for i, upper := range c.cumulative {
		if r < upper {
			return c.kinds[i]
		}
	}
	// r >= 1 or rounding left a gap: take the last kind with weight
	for i := len(c.kinds) - 1; i >= 0; i-- {
		if i == 0 || c.cumulative[i] > c.cumulative[i-1] {
			return c.kinds[i]
		}
	}
	return c.kinds[len(c.kinds)-1]
}

// Kinds returns the catalog entries in config order.
func (c *Catalog) Kinds() []*ItemKind {
	return c.kinds
}

// Lookup returns the kind with the given ID.
func (c *Catalog) Lookup(id string) (*ItemKind, bool) {
	for _, k := range c.kinds {
		if k.ID == id {
			return k, true
		}
	}
	return nil, false
}
