package catalog

import (
	"regexp"
	"sort"
	"strings"

	"github.com/Ryladain/Inventory-files/internal/models"
)

// RawItem is one record of a scraped item export. Exports carry Russian
// and English names side by side and use either "description" or "desc".
type RawItem struct {
	RuName      string                 `json:"ru_name"`
	EnName      string                 `json:"en_name"`
	Name        string                 `json:"name"`
	URL         string                 `json:"url"`
	Category    string                 `json:"category"`
	Rarity      string                 `json:"rarity"`
	Tier        string                 `json:"tier"`
	Attunement  string                 `json:"attunement"`
	Cost        string                 `json:"cost"`
	Weight      string                 `json:"weight"`
	Description string                 `json:"description"`
	Desc        string                 `json:"desc"`
	Props       map[string]interface{} `json:"props"`
}

// ImportStats summarises an Import run.
type ImportStats struct {
	Read       int
	Imported   int
	Duplicates int
	Unnamed    int
}

var slugRegex = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// Slugify reduces a name to lowercase letters and digits joined by dashes.
func Slugify(s string) string {
	s = strings.ToLower(s)
	s = slugRegex.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Import converts raw records into catalog items sorted by name. The English
// name wins over the Russian one; records whose name slug was already seen
// are dropped. Inventory category labels, legacy ones included, are rewritten
// to their canonical form; other labels (magic item types) are kept.
func Import(raw []RawItem) ([]models.CatalogItem, ImportStats) {
	stats := ImportStats{Read: len(raw)}
	seen := make(map[string]bool, len(raw))
	out := make([]models.CatalogItem, 0, len(raw))

	for _, r := range raw {
		name := firstNonEmpty(r.EnName, r.Name, r.RuName)
		slug := Slugify(name)
		if slug == "" {
			stats.Unnamed++
			continue
		}
		if seen[slug] {
			stats.Duplicates++
			continue
		}
		seen[slug] = true

		category := strings.TrimSpace(r.Category)
		if c, ok := models.ParseCategory(category); ok {
			category = string(c)
		}

		out = append(out, models.CatalogItem{
			Name:        name,
			Category:    category,
			Rarity:      strings.ToLower(strings.TrimSpace(r.Rarity)),
			Tier:        strings.ToLower(strings.TrimSpace(r.Tier)),
			Description: firstNonEmpty(r.Description, r.Desc),
			Cost:        strings.TrimSpace(r.Cost),
			Weight:      strings.TrimSpace(r.Weight),
			Attunement:  strings.TrimSpace(r.Attunement),
			SourceURL:   strings.TrimSpace(r.URL),
			Props:       r.Props,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return Normalize(out[i].Name) < Normalize(out[j].Name)
	})
	stats.Imported = len(out)
	return out, stats
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
