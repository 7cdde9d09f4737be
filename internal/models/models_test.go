package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestParseCategory(t *testing.T) {
	tcs := map[string]Category{
		"Clothing":           Clothing,
		"  gear ":            Gear,
		"GEAR SETS":          GearSets,
		"gear-sets":          GearSets,
		"magic_item":         MagicItem,
		"Оружие":             Weapons,
		"наборы снаряжения":  GearSets,
		"Магический предмет": MagicItem,
	}
	for label, want := range tcs {
		got, ok := ParseCategory(label)
		if !ok || got != want {
			t.Fatalf("ParseCategory(%q) = %q, %v; want %q", label, got, ok, want)
		}
	}
	for _, label := range []string{"", "Potions", "gear sets!"} {
		if _, ok := ParseCategory(label); ok {
			t.Fatalf("ParseCategory(%q) should fail", label)
		}
	}
}

func TestCategorySlugRoundTrip(t *testing.T) {
	for _, c := range Categories() {
		got, ok := ParseCategory(c.Slug())
		if !ok || got != c {
			t.Fatalf("slug %q parsed to %q", c.Slug(), got)
		}
	}
}

func TestParseEntry(t *testing.T) {
	tcs := []struct {
		in   string
		want ItemEntry
	}{
		{"Torch", ItemEntry{Kind: KindCatalog, Name: "Torch"}},
		{"Cloak of Elvenkind — hood up (Notable Uncommon, d100=95)", ItemEntry{Kind: KindCatalog, Name: "Cloak of Elvenkind", Description: "hood up (Notable Uncommon, d100=95)"}},
		{"⭐ Lucky coin — heads every time", ItemEntry{Kind: KindCustom, Name: "Lucky coin", Description: "heads every time"}},
		{"⭐Pebble", ItemEntry{Kind: KindCustom, Name: "Pebble"}},
	}
	for _, tc := range tcs {
		if got := ParseEntry(tc.in); got != tc.want {
			t.Fatalf("ParseEntry(%q) = %+v, want %+v", tc.in, got, tc.want)
		}
	}
}

func TestEntryJSONForms(t *testing.T) {
	data, err := json.Marshal([]ItemEntry{
		CatalogEntry("Torch"),
		CustomEntry("Lucky coin", ""),
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `["Torch",{"name":"Lucky coin","description":"— custom description —"}]`
	if string(data) != want {
		t.Fatalf("marshal = %s, want %s", data, want)
	}

	var back []ItemEntry
	if err := json.Unmarshal([]byte(`["Torch", {"name": "Map", "desc": "old"}, "⭐ Pebble — round"]`), &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back[0].IsCustom() || !back[1].IsCustom() || !back[2].IsCustom() {
		t.Fatalf("kinds = %v %v %v", back[0].Kind, back[1].Kind, back[2].Kind)
	}
	if back[1].Description != "old" || back[2].Description != "round" {
		t.Fatalf("descriptions = %q %q", back[1].Description, back[2].Description)
	}

	if err := json.Unmarshal([]byte(`[42]`), &back); err == nil {
		t.Fatal("expected error for a number entry")
	}
}

func TestInventoryJSON(t *testing.T) {
	inv := NewInventory()
	inv.Add(Weapons, CatalogEntry("Dagger"))
	inv.Add(Clothing, CustomEntry("Scarf", "red"))

	data, err := json.Marshal(inv)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(data)
	if !strings.HasPrefix(s, `{"Clothing":`) || strings.Index(s, `"Weapons"`) > strings.Index(s, `"Magic Item"`) {
		t.Fatalf("categories out of display order: %s", s)
	}

	var back Inventory
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Count() != 2 || len(back) != 7 {
		t.Fatalf("round trip lost data: %v", back)
	}
	if back[Gear] == nil {
		t.Fatal("empty categories must decode to empty, non-nil lists")
	}
}

func TestInventoryUnmarshalLegacyAndUnknown(t *testing.T) {
	var inv Inventory
	if err := json.Unmarshal([]byte(`{"Оружие": ["Кинжал"], "Снаряжение": []}`), &inv); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(inv[Weapons]) != 1 || inv[Weapons][0].Name != "Кинжал" {
		t.Fatalf("weapons = %v", inv[Weapons])
	}

	var mixed Inventory
	if err := json.Unmarshal([]byte(`{"Weapons": ["Dagger"], "Trinkets": ["Lucky coin"]}`), &mixed); err != nil {
		t.Fatalf("unmarshal with unknown category: %v", err)
	}
	if got := mixed.Unknown(); len(got) != 1 || got[0] != "Trinkets" {
		t.Fatalf("Unknown = %v, want [Trinkets]", got)
	}
	if len(mixed[Weapons]) != 1 || mixed.Count() != 2 {
		t.Fatalf("entries lost: %v", mixed)
	}
	data, err := json.Marshal(mixed)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.HasSuffix(string(data), `"Trinkets":["Lucky coin"]}`) {
		t.Fatalf("unknown category not written back last: %s", data)
	}
}

func TestIsEmptyIgnoresUnknownCategories(t *testing.T) {
	inv := NewInventory()
	inv[Category("Trinkets")] = []ItemEntry{CatalogEntry("Lucky coin")}
	if !inv.IsEmpty() {
		t.Fatal("entries outside the seven categories cannot be lost, inventory should count as empty")
	}
	if inv.Count() != 1 {
		t.Fatalf("Count = %d, want 1", inv.Count())
	}
}

func TestInsertAt(t *testing.T) {
	inv := NewInventory()
	inv.Add(Tools, CatalogEntry("hammer"))
	inv.Add(Tools, CatalogEntry("tongs"))
	inv.InsertAt(Tools, 1, CatalogEntry("saw"))
	inv.InsertAt(Tools, 9, CatalogEntry("file"))

	var names []string
	for _, e := range inv[Tools] {
		names = append(names, e.Name)
	}
	if strings.Join(names, ",") != "hammer,saw,tongs,file" {
		t.Fatalf("tools = %v", names)
	}
}

func TestInventoryMutations(t *testing.T) {
	inv := NewInventory()
	inv.Add(Tools, CatalogEntry("hammer"))
	inv.Add(Tools, CatalogEntry("saw"))
	clone := inv.Clone()

	removed, ok := inv.RemoveAt(Tools, 0)
	if !ok || removed.Name != "hammer" {
		t.Fatalf("RemoveAt = %+v, %v", removed, ok)
	}
	if _, ok := inv.RemoveAt(Tools, 3); ok {
		t.Fatal("out of range remove must fail")
	}
	if len(clone[Tools]) != 2 {
		t.Fatal("clone shares storage with the original")
	}
	if got := inv.NonEmpty(); len(got) != 1 || got[0] != Tools {
		t.Fatalf("NonEmpty = %v", got)
	}
}

func TestCatalogItemText(t *testing.T) {
	if got := (CatalogItem{Desc: "old field"}).Text(); got != "old field" {
		t.Fatalf("Text = %q", got)
	}
	if got := (CatalogItem{Description: "new", Desc: "old"}).Text(); got != "new" {
		t.Fatalf("Text = %q", got)
	}
}
