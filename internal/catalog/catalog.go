// Package catalog holds the read-only magic and non-magic item tables.
package catalog

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/Ryladain/Inventory-files/internal/models"
)

// File names inside the catalog directory.
const (
	NonMagicFile = "nonmagic.json"
	MagicFile    = "library.json"
)

// Catalog is an immutable pair of item tables. Construct it once and share it.
type Catalog struct {
	magic    []models.CatalogItem
	nonmagic []models.CatalogItem
}

// New builds a catalog from in-memory tables.
func New(magic, nonmagic []models.CatalogItem) *Catalog {
	c := &Catalog{
		magic:    make([]models.CatalogItem, len(magic)),
		nonmagic: make([]models.CatalogItem, len(nonmagic)),
	}
	copy(c.magic, magic)
	copy(c.nonmagic, nonmagic)
	for i := range c.magic {
		c.magic[i].Magic = true
	}
	return c
}

// Load reads both tables from dir. A missing or corrupt file degrades to an
// empty table; lookups against it simply miss.
func Load(dir string) *Catalog {
	magic, err := loadFile(filepath.Join(dir, MagicFile))
	if err != nil {
		log.Printf("Warning: magic catalog unavailable: %v", err)
	}
	nonmagic, err := loadFile(filepath.Join(dir, NonMagicFile))
	if err != nil {
		log.Printf("Warning: non-magic catalog unavailable: %v", err)
	}
	c := New(magic, nonmagic)
	log.Printf("📚 Catalog loaded: %d magic and %d non-magic items", len(c.magic), len(c.nonmagic))
	return c
}

func loadFile(path string) ([]models.CatalogItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var items []models.CatalogItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return items, nil
}

// Sizes returns the number of magic and non-magic items.
func (c *Catalog) Sizes() (magic, nonmagic int) {
	return len(c.magic), len(c.nonmagic)
}

// Normalize folds case and unicode form so that names compare reliably.
func Normalize(s string) string {
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(s)))
}

func find(items []models.CatalogItem, name string, match func(models.CatalogItem) bool) (models.CatalogItem, bool) {
	q := Normalize(name)
	if q == "" {
		return models.CatalogItem{}, false
	}
	for _, it := range items {
		if match(it) && Normalize(it.Name) == q {
			return it, true
		}
	}
	for _, it := range items {
		if match(it) && strings.Contains(Normalize(it.Name), q) {
			return it, true
		}
	}
	return models.CatalogItem{}, false
}

func inCategory(cat models.Category) func(models.CatalogItem) bool {
	return func(it models.CatalogItem) bool {
		if cat == "" {
			return true
		}
		c, ok := models.ParseCategory(it.Category)
		return ok && c == cat
	}
}

// FindNonMagic looks a name up in the non-magic table: exact match first,
// then substring. An empty cat searches every category.
func (c *Catalog) FindNonMagic(name string, cat models.Category) (models.CatalogItem, bool) {
	return find(c.nonmagic, name, inCategory(cat))
}

// FindMagic looks a name up in the magic table: exact match first, then substring.
func (c *Catalog) FindMagic(name string) (models.CatalogItem, bool) {
	return find(c.magic, name, inCategory(""))
}

// Lookup resolves an inventory name stored under cat to its catalog record.
// Weapons and armor are searched within their category before the whole
// non-magic table; magic items use the magic table.
func (c *Catalog) Lookup(name string, cat models.Category) (models.CatalogItem, bool) {
	if cat.IsMagic() {
		return c.FindMagic(name)
	}
	if cat == models.Weapons || cat == models.Armor {
		if it, ok := c.FindNonMagic(name, cat); ok {
			return it, true
		}
	}
	return c.FindNonMagic(name, "")
}

// Describe returns the catalog description for an entry, preferring the
// entry's own description. It returns "" when neither is known.
func (c *Catalog) Describe(e models.ItemEntry, cat models.Category) string {
	if e.Description != "" {
		return e.Description
	}
	if it, ok := c.Lookup(e.Name, cat); ok {
		return strings.TrimSpace(it.Text())
	}
	return ""
}

// MagicPool returns the magic items of the given base rarity and tier.
func (c *Catalog) MagicPool(r models.Rarity, t models.Tier) []models.CatalogItem {
	var out []models.CatalogItem
	for _, it := range c.magic {
		if strings.EqualFold(strings.TrimSpace(it.Rarity), string(r)) &&
			strings.EqualFold(strings.TrimSpace(it.Tier), string(t)) {
			out = append(out, it)
		}
	}
	return out
}

// Pool returns the candidates for reconciling a free-text name added under
// cat: the matching table narrowed to cat, or the whole table when nothing
// in it is tagged with cat.
func (c *Catalog) Pool(cat models.Category) []models.CatalogItem {
	base := c.nonmagic
	if cat.IsMagic() {
		base = c.magic
	}
	var out []models.CatalogItem
	for _, it := range base {
		if inCategory(cat)(it) {
			out = append(out, it)
		}
	}
	if len(out) == 0 {
		return base
	}
	return out
}

// Search returns items whose name contains q, across both tables, optionally
// restricted to cat.
func (c *Catalog) Search(q string, cat models.Category) []models.CatalogItem {
	q = Normalize(q)
	var out []models.CatalogItem
	scan := func(items []models.CatalogItem) {
		for _, it := range items {
			if cat != "" && !cat.IsMagic() && !inCategory(cat)(it) {
				continue
			}
			if q == "" || strings.Contains(Normalize(it.Name), q) {
				out = append(out, it)
			}
		}
	}
	if cat == "" || !cat.IsMagic() {
		scan(c.nonmagic)
	}
	if cat == "" || cat.IsMagic() {
		scan(c.magic)
	}
	return out
}
