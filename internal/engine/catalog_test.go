package engine

import (
	"testing"

	"github.com/vovakirdan/pose-catcher/internal/config"
)

func TestCatalogPick(t *testing.T) {
	c := NewCatalog(config.DefaultConfig().Catalog)

	tests := []struct {
		r    float64
		want string
	}{
		{0, "apple"},
		{0.44, "apple"},
		{0.46, "grape"},
		{0.69, "grape"},
		{0.71, "bomb"},
		{0.89, "bomb"},
		{0.91, "golden"},
		{0.9999, "golden"},
		{1.0, "golden"},
	}
	for _, tc := range tests {
		got := c.Pick(tc.r)
		if got == nil || got.ID != tc.want {
			t.Errorf("Pick(%v) = %v, want %s", tc.r, got, tc.want)
		}
	}
}

func TestCatalogNormalizesWeights(t *testing.T) {
	c := NewCatalog([]config.ItemKindConfig{
		{ID: "a", Weight: 3, BaseSpeed: 1},
		{ID: "b", Weight: 1, BaseSpeed: 1},
		{ID: "c", Weight: 0, BaseSpeed: 1},
	})

	if got := c.Pick(0.7).ID; got != "a" {
		t.Errorf("Pick(0.7) = %s, want a", got)
	}
	if got := c.Pick(0.8).ID; got != "b" {
		t.Errorf("Pick(0.8) = %s, want b", got)
	}
	// Zero-weight kinds are never picked, even at the top of the range.
	if got := c.Pick(1.0).ID; got != "b" {
		t.Errorf("Pick(1.0) = %s, want b", got)
	}
}

func TestCatalogEmpty(t *testing.T) {
	c := NewCatalog(nil)
	if c.Pick(0.5) != nil {
		t.Error("empty catalog should pick nil")
	}
}

func TestCatalogLookup(t *testing.T) {
	c := NewCatalog(config.DefaultConfig().Catalog)

	k, ok := c.Lookup("golden")
	if !ok {
		t.Fatal("golden not found")
	}
	if !k.IsSpecial || k.IsHazard || k.ScoreValue != 1000 {
		t.Errorf("golden = %+v", *k)
	}
	if _, ok := c.Lookup("pear"); ok {
		t.Error("unknown kind should not be found")
	}
}
