package models

import (
	"strings"
)

// Category is one of the seven fixed inventory sections.
type Category string

const (
	Clothing  Category = "Clothing"
	Gear      Category = "Gear"
	GearSets  Category = "Gear Sets"
	Tools     Category = "Tools"
	Armor     Category = "Armor"
	Weapons   Category = "Weapons"
	MagicItem Category = "Magic Item"
)

// Categories returns every category in display order.
func Categories() []Category {
	return []Category{Clothing, Gear, GearSets, Tools, Armor, Weapons, MagicItem}
}

// legacyCategories maps labels found in data files written by the first
// version of the bot.
var legacyCategories = map[string]Category{
	"одежда":             Clothing,
	"снаряжение":         Gear,
	"наборы снаряжения":  GearSets,
	"наборы":             GearSets,
	"инструменты":        Tools,
	"доспехи":            Armor,
	"оружие":             Weapons,
	"магический предмет": MagicItem,
}

// ParseCategory resolves a label to a Category. Canonical labels match
// case-insensitively; legacy labels are accepted too.
func ParseCategory(label string) (Category, bool) {
	s := strings.ToLower(strings.TrimSpace(label))
	if s == "" {
		return "", false
	}
	for _, c := range Categories() {
		if strings.ToLower(string(c)) == s {
			return c, true
		}
	}
	if c, ok := legacyCategories[s]; ok {
		return c, true
	}
	// tolerate underscores and dashes from URLs ("gear-sets", "magic_item")
	s = strings.NewReplacer("-", " ", "_", " ").Replace(s)
	for _, c := range Categories() {
		if strings.ToLower(string(c)) == s {
			return c, true
		}
	}
	return "", false
}

// Valid reports whether c is one of the seven categories.
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// IsMagic reports whether entries of c come from the magic catalog.
func (c Category) IsMagic() bool {
	return c == MagicItem
}

// Slug returns the URL form of the category ("gear-sets").
func (c Category) Slug() string {
	return strings.ReplaceAll(strings.ToLower(string(c)), " ", "-")
}
