package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/Ryladain/Inventory-files/internal/catalog"
)

func main() {
	log.SetPrefix("import ")

	rawPath := flag.String("raw", "data/raw_items.json", "Scraped item export")
	outDir := flag.String("out", "data", "Catalog directory to write")
	magic := flag.Bool("magic", false, "Write the magic table instead of the non-magic one")
	flag.Parse()

	data, err := os.ReadFile(*rawPath)
	if err != nil {
		log.Fatalf("Failed to read export: %v", err)
	}

	var raw []catalog.RawItem
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Fatalf("Failed to parse export: %v", err)
	}

	items, stats := catalog.Import(raw)

	name := catalog.NonMagicFile
	if *magic {
		name = catalog.MagicFile
	}
	path := filepath.Join(*outDir, name)

	f, err := os.Create(path)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", path, err)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(items); err != nil {
		f.Close()
		log.Fatalf("Failed to write %s: %v", path, err)
	}
	if err := f.Close(); err != nil {
		log.Fatalf("Failed to write %s: %v", path, err)
	}

	fmt.Printf("Read %d records: %d imported, %d duplicates, %d without a name\n",
		stats.Read, stats.Imported, stats.Duplicates, stats.Unnamed)
	fmt.Printf("✓ Wrote %s\n", path)
}
