package loot

import (
	"fmt"

	"github.com/Ryladain/Inventory-files/internal/models"
)

type categoryRange struct {
	Lo, Hi   int
	Category models.Category
}

// d20Table partitions 1..20 into the seven categories.
var d20Table = []categoryRange{
	{1, 1, models.Clothing},
	{2, 11, models.Gear},
	{12, 13, models.GearSets},
	{14, 15, models.Tools},
	{16, 17, models.Armor},
	{18, 19, models.Weapons},
	{20, 20, models.MagicItem},
}

type rarityThreshold struct {
	Max   int
	Label models.RarityLabel
}

// rarityTable classifies a d100 roll by cumulative threshold.
var rarityTable = []rarityThreshold{
	{30, models.LabelCommon},
	{66, models.LabelUncommon},
	{81, models.LabelRare},
	{96, models.LabelNotableUncommon},
	{98, models.LabelVeryRare},
	{100, models.LabelNotableRare},
}

type rarityClass struct {
	Base models.Rarity
	Tier models.Tier
}

// rarityClasses resolves each label to the catalog filter it selects.
var rarityClasses = map[models.RarityLabel]rarityClass{
	models.LabelCommon:          {models.RarityCommon, models.TierMinor},
	models.LabelUncommon:        {models.RarityUncommon, models.TierMinor},
	models.LabelRare:            {models.RarityRare, models.TierMinor},
	models.LabelVeryRare:        {models.RarityVeryRare, models.TierMinor},
	models.LabelNotableUncommon: {models.RarityUncommon, models.TierMajor},
	models.LabelNotableRare:     {models.RarityRare, models.TierMajor},
}

func init() {
	if err := validatePartition(d20Table, 20); err != nil {
		panic(err)
	}
	if err := validateRarityTable(rarityTable); err != nil {
		panic(err)
	}
}

// CategoryFor maps a d20 roll to its category. Rolls outside [1,20] are a
// programming error and panic.
func CategoryFor(roll int) models.Category {
	for _, r := range d20Table {
		if roll >= r.Lo && roll <= r.Hi {
			return r.Category
		}
	}
	panic(fmt.Sprintf("loot: d20 roll %d out of range", roll))
}

// categoryWidth returns how many faces of the d20 select c.
func categoryWidth(c models.Category) int {
	n := 0
	for _, r := range d20Table {
		if r.Category == c {
			n += r.Hi - r.Lo + 1
		}
	}
	return n
}

// LabelFor classifies a d100 roll. Rolls outside [1,100] panic.
func LabelFor(roll int) models.RarityLabel {
	if roll < 1 || roll > 100 {
		panic(fmt.Sprintf("loot: d100 roll %d out of range", roll))
	}
	for _, t := range rarityTable {
		if roll <= t.Max {
			return t.Label
		}
	}
	panic("loot: rarity table does not cover d100")
}

// ClassifyRarity returns the base rarity and tier a label selects.
func ClassifyRarity(label models.RarityLabel) (models.Rarity, models.Tier, bool) {
	c, ok := rarityClasses[label]
	return c.Base, c.Tier, ok
}

func validatePartition(table []categoryRange, sides int) error {
	seen := make([]int, sides+1)
	for _, r := range table {
		if r.Lo < 1 || r.Hi > sides || r.Lo > r.Hi {
			return fmt.Errorf("loot: range %d-%d invalid for d%d", r.Lo, r.Hi, sides)
		}
		for v := r.Lo; v <= r.Hi; v++ {
			seen[v]++
		}
	}
	for v := 1; v <= sides; v++ {
		if seen[v] != 1 {
			return fmt.Errorf("loot: face %d covered %d times", v, seen[v])
		}
	}
	return nil
}

func validateRarityTable(table []rarityThreshold) error {
	prev := 0
	for _, t := range table {
		if t.Max <= prev {
			return fmt.Errorf("loot: rarity threshold %d not increasing", t.Max)
		}
		if _, ok := rarityClasses[t.Label]; !ok {
			return fmt.Errorf("loot: rarity label %q has no class", t.Label)
		}
		prev = t.Max
	}
	if prev != 100 {
		return fmt.Errorf("loot: rarity table ends at %d, want 100", prev)
	}
	return nil
}
