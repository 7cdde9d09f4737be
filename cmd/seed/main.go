package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"sort"

	"github.com/Ryladain/Inventory-files/internal/config"
	"github.com/Ryladain/Inventory-files/internal/models"
	"github.com/Ryladain/Inventory-files/internal/storage"
)

func main() {
	log.SetPrefix("seed ")

	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	driver := flag.String("store", cfg.StoreDriver, "Store driver (json or sqlite)")
	path := flag.String("data", cfg.StorePath(), "Inventory file or SQLite database path")
	seedFile := flag.String("seeds", "./seeds/inventories.json", "Seed file: user id -> inventory")
	overwrite := flag.Bool("overwrite", false, "Replace inventories that already have items")
	flag.Parse()

	store, err := storage.Open(*driver, *path)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	seeds, err := readSeeds(*seedFile)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", *seedFile, err)
	}

	ids := make([]string, 0, len(seeds))
	for id := range seeds {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		if err := seedInventory(store, id, seeds[id], *overwrite); err != nil {
			log.Printf("Warning: failed to seed %s: %v", id, err)
		}
	}

	log.Println("🌱 Seeding complete!")
}

func readSeeds(path string) (map[string]models.Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var seeds map[string]models.Inventory
	if err := json.Unmarshal(data, &seeds); err != nil {
		return nil, err
	}
	return seeds, nil
}

func seedInventory(store storage.Store, userID string, inv models.Inventory, overwrite bool) error {
	current, err := store.Load(userID)
	if err != nil {
		return err
	}
	if !current.IsEmpty() && !overwrite {
		log.Printf("- Skipped %s: already has %d items", userID, current.Count())
		return nil
	}

	inv.Materialize()
	if err := store.Save(userID, inv); err != nil {
		return err
	}
	log.Printf("✓ Seeded %s with %d items", userID, inv.Count())
	return nil
}
