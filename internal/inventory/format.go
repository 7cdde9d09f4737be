package inventory

import (
	"fmt"
	"html"
	"strings"

	"github.com/Ryladain/Inventory-files/internal/catalog"
	"github.com/Ryladain/Inventory-files/internal/models"
)

// ListDescriptionLimit caps each description in an inventory listing.
const ListDescriptionLimit = 1000

// FormatCategories lists the categories one per line.
func FormatCategories() string {
	var b strings.Builder
	b.WriteString("📚 Categories:")
	for _, c := range models.Categories() {
		b.WriteString("\n• ")
		b.WriteString(string(c))
	}
	return b.String()
}

// FormatInventory renders an inventory as Telegram HTML, one numbered list
// per category. Entries without their own description get the catalog's.
func FormatInventory(inv models.Inventory, cat *catalog.Catalog) string {
	lines := []string{"<b>🎒 Inventory:</b>"}
	for _, c := range models.Categories() {
		lines = append(lines, fmt.Sprintf("<b>%s:</b>", html.EscapeString(string(c))))
		entries := inv[c]
		if len(entries) == 0 {
			lines = append(lines, "<i>empty</i>")
			continue
		}
		for i, e := range entries {
			lines = append(lines, fmt.Sprintf("%d. %s", i+1, html.EscapeString(e.Name)))
			desc := e.Description
			if desc == "" && cat != nil {
				desc = cat.Describe(e, c)
			}
			if desc != "" {
				lines = append(lines, "<i>"+html.EscapeString(catalog.Shorten(desc, ListDescriptionLimit))+"</i>")
			}
		}
	}
	return strings.Join(lines, "\n")
}

// FormatCategory renders the numbered entries of one category as plain text.
func FormatCategory(inv models.Inventory, c models.Category) string {
	entries := inv[c]
	if len(entries) == 0 {
		return fmt.Sprintf("%s: empty", c)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s:", c)
	for i, e := range entries {
		fmt.Fprintf(&b, "\n%d. %s", i+1, e.Name)
	}
	return b.String()
}

// FormatReport renders a simulation report as plain text.
func FormatReport(r *models.SimulationReport) string {
	var b strings.Builder
	for i, d := range r.Days {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "📅 Day %d:\n", d.Day)
		fmt.Fprintf(&b, "  Lost (%d) [%s] %s\n", d.LossRoll, d.LostCategory, d.Lost.Name)
		fmt.Fprintf(&b, "  %s\n", d.LostDescription)
		fmt.Fprintf(&b, "  Found (%d) [%s] %s\n", d.FindRoll, d.FoundCategory, d.Found.Name)
		if d.RarityLabel != "" {
			fmt.Fprintf(&b, "  Rarity: %s (d100=%d)\n", d.RarityLabel, d.RarityRoll)
		}
		fmt.Fprintf(&b, "  %s\n", d.FoundDescription)
	}
	return b.String()
}

// Chunk splits text into pieces of at most size runes, preferring line breaks.
func Chunk(text string, size int) []string {
	if size <= 0 {
		return []string{text}
	}
	var out []string
	runes := []rune(text)
	for len(runes) > size {
		cut := size
		for i := size; i > size/2; i-- {
			if runes[i-1] == '\n' {
				cut = i
				break
			}
		}
		out = append(out, string(runes[:cut]))
		runes = runes[cut:]
	}
	if len(runes) > 0 || len(out) == 0 {
		out = append(out, string(runes))
	}
	return out
}
