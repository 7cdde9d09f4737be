package loot

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Ryladain/Inventory-files/internal/catalog"
	"github.com/Ryladain/Inventory-files/internal/models"
)

// ErrNothingToLose indicates a loss was requested from an empty inventory.
var ErrNothingToLose = errors.New("nothing available to lose")

// ErrEmptyCategoryList indicates the drawer has no names for a category.
var ErrEmptyCategoryList = errors.New("category has no item names to draw from")

// ErrInvalidDays indicates a simulation was requested for fewer than one day.
var ErrInvalidDays = errors.New("days must be at least 1")

// Defaults for Options.
const (
	DefaultMagicDescriptionLimit = 600
	DefaultMaxLossRerolls        = 1000
)

// MagicPool is the part of the catalog the rarity resolver needs.
type MagicPool interface {
	MagicPool(r models.Rarity, t models.Tier) []models.CatalogItem
}

// Options tunes an Engine. Zero values select the defaults.
type Options struct {
	// Items overrides the built-in name lists used by DrawItem.
	Items map[models.Category][]string
	// MagicDescriptionLimit caps the description attached to a magic find.
	MagicDescriptionLimit int
	// MaxLossRerolls bounds the loss procedure's rejection sampling.
	MaxLossRerolls int
}

// Engine rolls dice against the fixed tables. It is not safe for concurrent use.
type Engine struct {
	src        Source
	magic      MagicPool
	items      map[models.Category][]string
	descLimit  int
	maxRerolls int
}

// NewEngine returns an engine drawing randomness from src and magic items
// from magic.
func NewEngine(src Source, magic MagicPool, opts Options) *Engine {
	e := &Engine{
		src:        src,
		magic:      magic,
		items:      opts.Items,
		descLimit:  opts.MagicDescriptionLimit,
		maxRerolls: opts.MaxLossRerolls,
	}
	if e.items == nil {
		e.items = DefaultItems()
	}
	if e.descLimit <= 0 {
		e.descLimit = DefaultMagicDescriptionLimit
	}
	if e.maxRerolls <= 0 {
		e.maxRerolls = DefaultMaxLossRerolls
	}
	return e
}

// DrawItem picks a name uniformly from the built-in list for c.
func (e *Engine) DrawItem(c models.Category) (string, error) {
	names := e.items[c]
	if len(names) == 0 {
		return "", fmt.Errorf("draw %s: %w", c, ErrEmptyCategoryList)
	}
	return names[e.src.Intn(len(names))], nil
}

// RollRarity rolls d100 and classifies it.
func (e *Engine) RollRarity() (models.RarityLabel, int) {
	raw := D100(e.src)
	return LabelFor(raw), raw
}

// MagicFind is the audited outcome of a magic item roll.
type MagicFind struct {
	Label       models.RarityLabel
	Roll        int
	Base        models.Rarity
	Tier        models.Tier
	Item        *models.CatalogItem // nil when the pool was empty
	Description string              // truncated catalog description
}

// Name is the found item's name, or a placeholder when nothing matched.
func (m MagicFind) Name() string {
	if m.Item != nil {
		return m.Item.Name
	}
	return fmt.Sprintf("Not found (%s, %s)", capitalize(string(m.Base)), m.Tier)
}

func (m MagicFind) audit() string {
	return fmt.Sprintf("(%s, d100=%d)", m.Label, m.Roll)
}

// Entry is the inventory entry recorded for the find. The audit suffix rides
// in the description so the name still resolves against the catalog.
func (m MagicFind) Entry() models.ItemEntry {
	desc := m.audit()
	if m.Description != "" {
		desc = m.Description + " " + desc
	}
	return models.ItemEntry{Kind: models.KindCatalog, Name: m.Name(), Description: desc}
}

// String renders "<name>[ — <description>] (<label>, d100=<raw>)".
func (m MagicFind) String() string {
	s := m.Name()
	if m.Description != "" {
		s += models.DescriptionSeparator + m.Description
	}
	return s + " " + m.audit()
}

// FindMagicItem rolls rarity and picks a matching item from the catalog.
func (e *Engine) FindMagicItem() MagicFind {
	label, raw := e.RollRarity()
	base, tier, ok := ClassifyRarity(label)
	if !ok {
		panic(fmt.Sprintf("loot: rarity label %q has no class", label))
	}
	find := MagicFind{Label: label, Roll: raw, Base: base, Tier: tier}

	var pool []models.CatalogItem
	if e.magic != nil {
		pool = e.magic.MagicPool(base, tier)
	}
	if len(pool) > 0 {
		chosen := pool[e.src.Intn(len(pool))]
		find.Item = &chosen
		find.Description = catalog.Shorten(chosen.Text(), e.descLimit)
	}
	return find
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	first, rest, _ := strings.Cut(s, " ")
	out := cases.Title(language.English).String(first)
	if rest != "" {
		out += " " + rest
	}
	return out
}
