package catalog

import (
	"fmt"
	"html"
	"strings"

	"github.com/Ryladain/Inventory-files/internal/models"
)

// CardDescriptionLimit caps the description shown on an item card.
const CardDescriptionLimit = 400

// Shorten collapses whitespace and cuts s to limit runes, appending an
// ellipsis only when something was cut.
func Shorten(s string, limit int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if limit <= 0 || len(r) <= limit {
		return s
	}
	return strings.TrimRight(string(r[:limit]), " ") + "…"
}

// RenderCard formats an item as an HTML card for chat. Every catalog or
// user supplied value is escaped.
func RenderCard(it models.CatalogItem) string {
	cat := it.Category
	if cat == "" {
		cat = "Item"
	}
	name := it.Name
	if name == "" {
		name = "Unnamed"
	}

	var body []string
	parsed, _ := models.ParseCategory(it.Category)
	switch {
	case parsed == models.Weapons:
		body = append(body, weaponLines(it.Props)...)
	case parsed == models.Armor:
		body = append(body, armorLines(it.Props)...)
	case it.Magic || parsed == models.MagicItem:
		if it.Rarity != "" {
			body = append(body, "Rarity: "+it.Rarity)
		}
		if it.Attunement != "" {
			body = append(body, "Attunement: "+it.Attunement)
		}
	}
	if it.Cost != "" {
		body = append(body, "Cost: "+it.Cost)
	}
	if it.Weight != "" {
		body = append(body, "Weight: "+it.Weight)
	}
	if desc := strings.TrimSpace(it.Text()); desc != "" {
		body = append(body, "", Shorten(desc, CardDescriptionLimit))
	}

	lines := []string{fmt.Sprintf("<b>%s</b> (%s)", html.EscapeString(name), html.EscapeString(cat))}
	for _, l := range body {
		lines = append(lines, html.EscapeString(l))
	}
	if it.SourceURL != "" {
		lines = append(lines, fmt.Sprintf(`<a href="%s">Source</a>`, html.EscapeString(it.SourceURL)))
	}
	return strings.Join(lines, "\n")
}

func weaponLines(props map[string]interface{}) []string {
	if props == nil {
		return nil
	}
	var lines []string
	if dmg, ok := props["damage"].(map[string]interface{}); ok {
		var parts []string
		for _, k := range []string{"dice", "type"} {
			if v, _ := dmg[k].(string); v != "" {
				parts = append(parts, v)
			}
		}
		if len(parts) > 0 {
			lines = append(lines, "Damage: "+strings.Join(parts, " / "))
		}
	}

	var list []string
	if ps, ok := props["properties"].([]interface{}); ok {
		for _, p := range ps {
			if s, ok := p.(string); ok && s != "" {
				list = append(list, s)
			}
		}
	}
	if rng, ok := props["ranges"].(map[string]interface{}); ok {
		if v, _ := rng["ammo"].(string); v != "" {
			list = append(list, "ammunition "+v)
		}
		if v, _ := rng["thrown"].(string); v != "" {
			list = append(list, "thrown "+v)
		}
	}
	if v, _ := props["versatile_dice"].(string); v != "" {
		list = append(list, fmt.Sprintf("versatile (%s)", v))
	}
	if len(list) > 0 {
		lines = append(lines, "Properties: "+strings.Join(list, ", "))
	}
	return lines
}

func armorLines(props map[string]interface{}) []string {
	if props == nil {
		return nil
	}
	var lines []string
	if v := props["ac"]; v != nil && v != "" {
		lines = append(lines, fmt.Sprintf("AC: %v", v))
	}
	if v := props["str_req"]; v != nil && v != "" {
		lines = append(lines, fmt.Sprintf("Strength required: %v", v))
	}
	switch props["stealth_disadv"] {
	case true:
		lines = append(lines, "Stealth disadvantage: yes")
	case false:
		lines = append(lines, "Stealth disadvantage: no")
	}
	return lines
}
