// Command simulate runs the loss/find cycle against a copy of one stored
// inventory and prints the report. Nothing is written back unless -write is
// given.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Ryladain/Inventory-files/internal/catalog"
	"github.com/Ryladain/Inventory-files/internal/config"
	"github.com/Ryladain/Inventory-files/internal/inventory"
	"github.com/Ryladain/Inventory-files/internal/loot"
	"github.com/Ryladain/Inventory-files/internal/storage"
)

func main() {
	log.SetPrefix("simulate ")

	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	driver := flag.String("store", cfg.StoreDriver, "Store driver (json or sqlite)")
	path := flag.String("data", cfg.StorePath(), "Inventory file or SQLite database path")
	catalogDir := flag.String("catalog", cfg.CatalogDir, "Catalog directory")
	user := flag.String("user", "", "User id whose inventory to simulate")
	days := flag.Int("days", 1, "Number of days")
	seed := flag.Int64("seed", cfg.LootSeed, "Dice seed, 0 for a random one")
	asJSON := flag.Bool("json", false, "Print the report as JSON")
	write := flag.Bool("write", false, "Save the resulting inventory")
	flag.Parse()

	if *user == "" {
		log.Fatal("-user is required")
	}
	if *days < 1 || *days > cfg.MaxSimulationDays {
		log.Fatalf("-days must be within 1..%d", cfg.MaxSimulationDays)
	}

	store, err := storage.Open(*driver, *path)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	inv, err := store.Load(*user)
	if err != nil {
		log.Fatalf("Failed to load %s: %v", *user, err)
	}
	work := inv.Clone()

	if *seed == 0 {
		if *seed, err = loot.NewSeed(); err != nil {
			log.Fatalf("Failed to seed dice: %v", err)
		}
	}
	cat := catalog.Load(*catalogDir)
	engine := loot.NewEngine(loot.NewSource(*seed), cat, loot.Options{
		MagicDescriptionLimit: cfg.MagicDescriptionLimit,
	})

	simulated, err := engine.Simulate(work, *days)
	if err != nil {
		log.Fatalf("Simulation failed: %v", err)
	}
	report := inventory.NewReport(cat, *user, simulated, time.Now())

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(report); err != nil {
			log.Fatalf("Failed to encode report: %v", err)
		}
	} else {
		fmt.Print(inventory.FormatReport(report))
	}
	log.Printf("🎲 seed=%d, %d item(s) before and after", *seed, work.Count())

	if *write {
		if err := store.Save(*user, work); err != nil {
			log.Fatalf("Failed to save %s: %v", *user, err)
		}
		log.Printf("✓ Saved %s", *user)
	}
}
