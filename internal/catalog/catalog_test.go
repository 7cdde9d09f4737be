package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Ryladain/Inventory-files/internal/models"
)

func fixture() *Catalog {
	return New(
		[]models.CatalogItem{
			{Name: "Cloak of Elvenkind", Category: "Wondrous item", Rarity: "Uncommon", Tier: "Major", Description: "Hood up."},
			{Name: "Bag of Holding", Category: "Wondrous item", Rarity: "uncommon", Tier: "minor", Desc: "Bigger inside."},
			{Name: "Flame Tongue", Category: "Weapon", Rarity: "Rare", Tier: "Major"},
		},
		[]models.CatalogItem{
			{Name: "Longsword", Category: "Weapons", Description: "A versatile blade."},
			{Name: "Studded Leather", Category: "Armor", Description: "Tough leather."},
			{Name: "Leather", Category: "Gear", Description: "A tanned hide."},
			{Name: "Rope, hempen (50 feet)", Category: "Gear", Description: "Fifty feet of rope."},
		},
	)
}

func TestNewMarksMagic(t *testing.T) {
	it, ok := fixture().FindMagic("cloak of elvenkind")
	if !ok || !it.Magic {
		t.Fatalf("FindMagic = %+v, %v", it, ok)
	}
}

func TestLookup(t *testing.T) {
	c := fixture()

	it, ok := c.Lookup("LONGSWORD", models.Weapons)
	if !ok || it.Name != "Longsword" {
		t.Fatalf("exact lookup = %+v, %v", it, ok)
	}
	it, ok = c.Lookup("rope", models.Gear)
	if !ok || it.Name != "Rope, hempen (50 feet)" {
		t.Fatalf("substring lookup = %+v, %v", it, ok)
	}
	it, ok = c.Lookup("leather", models.Armor)
	if !ok || it.Name != "Studded Leather" {
		t.Fatalf("armor lookup should prefer the armor table, got %+v", it)
	}
	it, ok = c.Lookup("leather", models.Gear)
	if !ok || it.Name != "Leather" {
		t.Fatalf("gear lookup = %+v", it)
	}
	if _, ok := c.Lookup("Flame Tongue", models.Weapons); ok {
		t.Fatal("magic items must not resolve outside Magic Item")
	}
	if _, ok := c.Lookup("Flame Tongue", models.MagicItem); !ok {
		t.Fatal("magic lookup failed")
	}
}

func TestDescribe(t *testing.T) {
	c := fixture()
	if got := c.Describe(models.CatalogEntry("Longsword"), models.Weapons); got != "A versatile blade." {
		t.Fatalf("Describe = %q", got)
	}
	if got := c.Describe(models.CustomEntry("Pebble", "round"), models.Gear); got != "round" {
		t.Fatalf("Describe custom = %q", got)
	}
	if got := c.Describe(models.CatalogEntry("Nothing like it"), models.Gear); got != "" {
		t.Fatalf("Describe unknown = %q", got)
	}
}

func TestMagicPoolIsCaseInsensitive(t *testing.T) {
	c := fixture()
	if got := c.MagicPool(models.RarityUncommon, models.TierMinor); len(got) != 1 || got[0].Name != "Bag of Holding" {
		t.Fatalf("uncommon/minor = %+v", got)
	}
	if got := c.MagicPool(models.RarityVeryRare, models.TierMinor); len(got) != 0 {
		t.Fatalf("very rare/minor = %+v", got)
	}
}

func TestPoolFallsBackToWholeTable(t *testing.T) {
	c := fixture()
	if got := c.Pool(models.Weapons); len(got) != 1 {
		t.Fatalf("weapons pool = %+v", got)
	}
	if got := c.Pool(models.Tools); len(got) != 4 {
		t.Fatalf("tools pool should fall back to all non-magic items, got %d", len(got))
	}
	if got := c.Pool(models.MagicItem); len(got) != 3 {
		t.Fatalf("magic pool = %d items", len(got))
	}
}

func TestSearch(t *testing.T) {
	c := fixture()
	if got := c.Search("leather", ""); len(got) != 2 {
		t.Fatalf("search leather = %+v", got)
	}
	if got := c.Search("o", models.MagicItem); len(got) != 3 {
		t.Fatalf("magic search = %+v", got)
	}
}

func TestLoadDegradesToEmpty(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, NonMagicFile), []byte("{broken"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, MagicFile), []byte(`[{"name":"Wand of Web","rarity":"Uncommon","tier":"Major"}]`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	c := Load(dir)
	magic, nonmagic := c.Sizes()
	if magic != 1 || nonmagic != 0 {
		t.Fatalf("sizes = %d, %d", magic, nonmagic)
	}
}

func TestMatcherThreshold(t *testing.T) {
	c := fixture()
	m := NewMatcher(DefaultMatchThreshold)

	got, ok := m.Closest("longsord", c.Pool(models.Weapons))
	if !ok || got.Item.Name != "Longsword" {
		t.Fatalf("Closest(longsord) = %+v, %v", got, ok)
	}
	if _, ok := m.Closest("xyzzy", c.Pool(models.Weapons)); ok {
		t.Fatal("unrelated text must not match")
	}
	if _, ok := m.Closest("   ", c.Pool(models.Weapons)); ok {
		t.Fatal("blank query must not match")
	}

	strict := NewMatcher(100)
	if _, ok := strict.Closest("longsord", c.Pool(models.Weapons)); ok {
		t.Fatal("threshold 100 accepts only exact names")
	}
}

func TestMatcherIsDeterministic(t *testing.T) {
	pool := fixture().Pool(models.Gear)
	m := NewMatcher(0)
	first, ok1 := m.Closest("hempen rope", pool)
	for i := 0; i < 10; i++ {
		got, ok := m.Closest("hempen rope", pool)
		if ok != ok1 || got.Item.Name != first.Item.Name || got.Score != first.Score {
			t.Fatalf("run %d differs: %+v vs %+v", i, got, first)
		}
	}
}

func TestScore(t *testing.T) {
	if got := Score("torch", "torch"); got != 100 {
		t.Fatalf("identical = %d", got)
	}
	if got := Score("rope hempen", "hempen rope"); got < 90 {
		t.Fatalf("token order should barely matter, got %d", got)
	}
	if got := Score("", "rope"); got != 0 {
		t.Fatalf("empty = %d", got)
	}
	long := Score("rope", "rope, hempen (50 feet)")
	if long < 60 || long > 90 {
		t.Fatalf("partial match should be scaled, got %d", long)
	}
}

func TestShorten(t *testing.T) {
	if got := Shorten("  a   b\n c ", 10); got != "a b c" {
		t.Fatalf("Shorten = %q", got)
	}
	got := Shorten(strings.Repeat("é", 20), 5)
	if got != "ééééé…" {
		t.Fatalf("Shorten = %q", got)
	}
	if got := Shorten("exact", 5); strings.HasSuffix(got, "…") {
		t.Fatalf("no ellipsis when nothing was cut, got %q", got)
	}
}

func TestRenderCard(t *testing.T) {
	card := RenderCard(models.CatalogItem{
		Name: "Longsword", Category: "Weapons", Cost: "15 gp",
		Description: "A versatile blade.",
		Props: map[string]interface{}{
			"damage":         map[string]interface{}{"dice": "1d8", "type": "slashing"},
			"versatile_dice": "1d10",
		},
	})
	for _, want := range []string{"<b>Longsword</b> (Weapons)", "Damage: 1d8 / slashing", "versatile (1d10)", "Cost: 15 gp", "A versatile blade."} {
		if !strings.Contains(card, want) {
			t.Fatalf("card missing %q:\n%s", want, card)
		}
	}

	card = RenderCard(models.CatalogItem{Name: "Cloak", Rarity: "Uncommon", Attunement: "requires attunement", Magic: true})
	if !strings.Contains(card, "Rarity: Uncommon") || !strings.Contains(card, "Attunement") {
		t.Fatalf("magic card = %s", card)
	}
}

func TestRenderCardEscapesText(t *testing.T) {
	card := RenderCard(models.CatalogItem{
		Name:        "Bag_of *Tricks* <grey>",
		Category:    "Gear",
		Description: "Pull a [fuzzy] ball & throw it.",
		SourceURL:   "https://example.org/bag?a=1&b=2",
	})
	for _, want := range []string{
		"<b>Bag_of *Tricks* &lt;grey&gt;</b> (Gear)",
		"Pull a [fuzzy] ball &amp; throw it.",
		`<a href="https://example.org/bag?a=1&amp;b=2">Source</a>`,
	} {
		if !strings.Contains(card, want) {
			t.Fatalf("card missing %q:\n%s", want, card)
		}
	}
	if strings.Contains(card, "<grey>") {
		t.Fatalf("raw markup leaked into the card:\n%s", card)
	}
}

func TestSlugify(t *testing.T) {
	tcs := map[string]string{
		"Rope, hempen (50 feet)": "rope-hempen-50-feet",
		"  Плащ эльфов ":         "плащ-эльфов",
		"---":                    "",
	}
	for in, want := range tcs {
		if got := Slugify(in); got != want {
			t.Fatalf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestImport(t *testing.T) {
	items, stats := Import([]RawItem{
		{RuName: "Длинный меч", EnName: "Longsword", Category: "Оружие", Desc: "A blade."},
		{RuName: "Плащ эльфов", EnName: "Cloak of Elvenkind", Category: "Wondrous item", Rarity: " Uncommon ", Tier: "Major"},
		{EnName: "longsword", Category: "Weapons"},
		{RuName: "Верёвка", Category: "Снаряжение", URL: "https://example.org/rope"},
		{Category: "Gear"},
	})

	if stats.Read != 5 || stats.Imported != 3 || stats.Duplicates != 1 || stats.Unnamed != 1 {
		t.Fatalf("stats = %+v", stats)
	}
	names := []string{items[0].Name, items[1].Name, items[2].Name}
	if names[0] != "Cloak of Elvenkind" || names[1] != "Longsword" || names[2] != "Верёвка" {
		t.Fatalf("order = %v", names)
	}
	if items[1].Category != "Weapons" || items[1].Description != "A blade." {
		t.Fatalf("longsword = %+v", items[1])
	}
	if items[0].Category != "Wondrous item" || items[0].Rarity != "uncommon" || items[0].Tier != "major" {
		t.Fatalf("cloak = %+v", items[0])
	}
	if items[2].Category != "Gear" || items[2].SourceURL != "https://example.org/rope" {
		t.Fatalf("rope = %+v", items[2])
	}
}
