package main

import (
	"flag"
	"log"

	"github.com/Ryladain/Inventory-files/internal/config"
	"github.com/Ryladain/Inventory-files/internal/models"
	"github.com/Ryladain/Inventory-files/internal/storage"
)

func main() {
	log.SetPrefix("migrate ")

	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	from := flag.String("from", cfg.DataFile, "JSON inventory file to read")
	to := flag.String("to", cfg.DBPath, "SQLite database to write")
	flag.Parse()

	src := storage.NewJSONFile(*from)
	ids, err := src.UserIDs()
	if err != nil {
		log.Fatalf("Failed to list users in %s: %v", *from, err)
	}
	if len(ids) == 0 {
		log.Printf("Nothing to migrate: %s has no inventories", *from)
		return
	}

	invs := make(map[string]models.Inventory, len(ids))
	items := 0
	for _, id := range ids {
		inv, err := src.Load(id)
		if err != nil {
			log.Fatalf("Failed to read %s: %v", id, err)
		}
		invs[id] = inv
		items += inv.Count()
	}

	dst, err := storage.New(*to)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer dst.Close()

	if err := dst.BulkSave(invs); err != nil {
		log.Fatalf("Failed to write inventories: %v", err)
	}

	log.Printf("✓ Migrated %d inventories (%d items) from %s to %s", len(invs), items, *from, *to)
}
