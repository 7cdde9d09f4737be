package bot

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Ryladain/Inventory-files/internal/catalog"
	"github.com/Ryladain/Inventory-files/internal/inventory"
	"github.com/Ryladain/Inventory-files/internal/loot"
	"github.com/Ryladain/Inventory-files/internal/models"
	"github.com/Ryladain/Inventory-files/internal/roster"
	"github.com/Ryladain/Inventory-files/internal/storage"
)

const (
	master int64 = 1
	karla  int64 = 10
	nait   int64 = 20
)

func newTestDispatcher(t *testing.T) *Dispatcher {
	t.Helper()
	cat := catalog.New(nil, []models.CatalogItem{
		{Name: "Longsword", Category: "Weapons", Description: "A versatile blade.", Props: map[string]interface{}{"damage": "1d8 slashing"}},
	})
	svc := inventory.New(inventory.Deps{
		Store:   storage.NewJSONFile(filepath.Join(t.TempDir(), "inventory_data.json")),
		Catalog: cat,
		Engine:  loot.NewEngine(loot.NewSource(11), cat, loot.Options{}),
		Roster:  roster.New(master, map[string]int64{"Karla": karla, "Nait": nait}, "Nait"),
	}, inventory.Options{})
	return NewDispatcher(svc)
}

func text(replies []Reply) string {
	var parts []string
	for _, r := range replies {
		parts = append(parts, r.Text)
	}
	return strings.Join(parts, "\n")
}

func TestSplitCommand(t *testing.T) {
	tcs := []struct {
		in, cmd, args string
	}{
		{"/inventory", "inventory", ""},
		{"/Simulate@party_bot 3", "simulate", "3"},
		{"/add Gear | rope: long", "add", "Gear | rope: long"},
		{"hello", "", "hello"},
	}
	for _, tc := range tcs {
		cmd, args := splitCommand(tc.in)
		if cmd != tc.cmd || args != tc.args {
			t.Fatalf("splitCommand(%q) = %q, %q", tc.in, cmd, args)
		}
	}
}

func TestSplitIndexed(t *testing.T) {
	label, n, ok := splitIndexed("Gear Sets 2")
	if !ok || label != "Gear Sets" || n != 2 {
		t.Fatalf("splitIndexed = %q %d %v", label, n, ok)
	}
	if _, _, ok := splitIndexed("Gear 0"); ok {
		t.Fatal("index 0 must be rejected")
	}
	if _, _, ok := splitIndexed("Gear"); ok {
		t.Fatal("missing index must be rejected")
	}
}

func TestAddConfirmYes(t *testing.T) {
	d := newTestDispatcher(t)
	ctx := context.Background()

	replies := d.HandleText(ctx, karla, karla, "/add Weapons | longsord")
	if len(replies) != 1 || len(replies[0].Buttons) != 2 {
		t.Fatalf("expected a confirmation prompt, got %+v", replies)
	}
	if !strings.Contains(replies[0].Text, "Longsword") {
		t.Fatalf("prompt does not name the match: %q", replies[0].Text)
	}

	got := text(d.HandleCallback(ctx, karla, karla, CallbackConfirmYes))
	if !strings.Contains(got, "Longsword") {
		t.Fatalf("confirm reply = %q", got)
	}
	if got := text(d.HandleCallback(ctx, karla, karla, CallbackConfirmYes)); !strings.Contains(got, "Nothing is waiting") {
		t.Fatalf("second confirm reply = %q", got)
	}

	inv := text(d.HandleText(ctx, karla, karla, "/inventory"))
	if !strings.Contains(inv, "1. Longsword") || !strings.Contains(inv, "A versatile blade.") {
		t.Fatalf("inventory = %q", inv)
	}
}

func TestAddConfirmNoKeepsRawText(t *testing.T) {
	d := newTestDispatcher(t)
	ctx := context.Background()

	d.HandleText(ctx, karla, karla, "/add Weapons | longsord: grandpa's")
	d.HandleCallback(ctx, karla, karla, CallbackConfirmNo)

	replies := d.HandleText(ctx, karla, karla, "/item weapons 1")
	got := text(replies)
	if !strings.Contains(got, "<b>longsord</b>") || !strings.Contains(got, "grandpa&#39;s") {
		t.Fatalf("item card = %q", got)
	}
	if replies[0].ParseMode != ModeHTML {
		t.Fatalf("item card parse mode = %q, want %q", replies[0].ParseMode, ModeHTML)
	}
}

func TestMasterMustSelectPlayer(t *testing.T) {
	d := newTestDispatcher(t)
	ctx := context.Background()

	if got := text(d.HandleText(ctx, master, master, "/inventory")); !strings.Contains(got, "/player") {
		t.Fatalf("expected a hint to select a player, got %q", got)
	}
	if got := text(d.HandleText(ctx, master, master, "/player Nait")); !strings.Contains(got, "Nait") {
		t.Fatalf("player reply = %q", got)
	}
	if d.Target(master) != nait {
		t.Fatalf("target = %d, want %d", d.Target(master), nait)
	}
	if got := text(d.HandleText(ctx, master, master, "/add Gear | Lantern")); !strings.Contains(got, "Added") {
		t.Fatalf("add reply = %q", got)
	}
	got := text(d.HandleText(ctx, master, master, "/simulate 2"))
	if !strings.Contains(got, "Day 2") || !strings.Contains(got, "Simulation complete") {
		t.Fatalf("simulate reply = %q", got)
	}
}

func TestPlayerCommandIsMasterOnly(t *testing.T) {
	d := newTestDispatcher(t)
	got := text(d.HandleText(context.Background(), karla, karla, "/player Nait"))
	if !strings.Contains(got, "Only the game master") {
		t.Fatalf("reply = %q", got)
	}
	if d.Target(karla) != karla {
		t.Fatal("players always act on their own inventory")
	}
}

func TestErrorsAreFriendly(t *testing.T) {
	d := newTestDispatcher(t)
	ctx := context.Background()

	tcs := map[string]string{
		"/simulate 3":           "not allowed",
		"/remove Gear 1":        "No item",
		"/add Potions | elixir": "Unknown category",
		"/simulate soon":        "Usage",
		"/dance":                "Unknown command",
	}
	for in, want := range tcs {
		if got := text(d.HandleText(ctx, karla, karla, in)); !strings.Contains(got, want) {
			t.Fatalf("%s: reply %q does not contain %q", in, got, want)
		}
	}
	if got := text(d.HandleText(ctx, 99, 99, "/inventory")); !strings.Contains(got, "not allowed") {
		t.Fatalf("guest reply = %q", got)
	}
}

func TestButtonLabelTruncates(t *testing.T) {
	label := buttonLabel("✅ Yes, " + strings.Repeat("Very Long Name ", 10))
	if !strings.HasSuffix(label, "…") {
		t.Fatalf("expected ellipsis, got %q", label)
	}
}
