package loot

import "github.com/Ryladain/Inventory-files/internal/models"

// DefaultItems returns the built-in names DrawItem chooses from. Each call
// returns a fresh map.
func DefaultItems() map[models.Category][]string {
	return map[models.Category][]string{
		models.Clothing: {
			"traveler's clothes", "common clothes",
			"fine clothes", "mage's robes",
		},
		models.Gear: {
			"torch", "rope (50 ft)", "backpack", "water bottle", "bedroll",
			"flask", "pouch", "flask of oil", "hand mirror",
		},
		models.GearSets: {
			"explorer's pack", "priest's pack",
			"burglar's pack", "dungeoneer's pack",
		},
		models.Tools: {
			"smith's tools", "thieves' tools",
			"painter's supplies", "musical instrument (lute)",
		},
		models.Armor: {
			"leather armor", "chain shirt", "plate armor", "shield",
		},
		models.Weapons: {
			"dagger", "shortsword", "longsword", "bow", "handaxe", "quarterstaff",
		},
		models.MagicItem: {
			"potion of healing", "+1 sword", "ring of protection",
			"cloak of protection", "wand of lightning bolts", "bag of holding",
		},
	}
}
