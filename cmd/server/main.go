package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Ryladain/Inventory-files/internal/api"
	"github.com/Ryladain/Inventory-files/internal/backup"
	"github.com/Ryladain/Inventory-files/internal/bot"
	"github.com/Ryladain/Inventory-files/internal/catalog"
	"github.com/Ryladain/Inventory-files/internal/config"
	"github.com/Ryladain/Inventory-files/internal/inventory"
	"github.com/Ryladain/Inventory-files/internal/loot"
	"github.com/Ryladain/Inventory-files/internal/roster"
	"github.com/Ryladain/Inventory-files/internal/storage"
)

func main() {
	log.SetPrefix("inventory ")

	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Parse flags
	port := flag.Int("port", cfg.Port, "Server port")
	driver := flag.String("store", cfg.StoreDriver, "Store driver (json or sqlite)")
	path := flag.String("data", cfg.StorePath(), "Inventory file or SQLite database path")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize storage
	store, err := storage.Open(*driver, *path)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer store.Close()

	cat := catalog.Load(cfg.CatalogDir)

	seed := cfg.LootSeed
	if seed == 0 {
		if seed, err = loot.NewSeed(); err != nil {
			log.Fatalf("Failed to seed dice: %v", err)
		}
	}
	engine := loot.NewEngine(loot.NewSource(seed), cat, loot.Options{
		MagicDescriptionLimit: cfg.MagicDescriptionLimit,
	})

	var (
		tg       *bot.Telegram
		notifier inventory.Notifier = inventory.LogNotifier{}
	)
	if cfg.Bot.Token != "" {
		if tg, err = bot.NewTelegram(cfg.Bot.Token, cfg.Bot.Debug, cfg.Bot.Timeout); err != nil {
			log.Fatalf("Failed to start bot: %v", err)
		}
		notifier = tg
	} else {
		log.Println("BOT_TOKEN is not set, running the HTTP API only")
	}

	svc := inventory.New(inventory.Deps{
		Store:    store,
		Catalog:  cat,
		Engine:   engine,
		Matcher:  catalog.NewMatcher(cfg.MatchThreshold),
		Roster:   roster.New(cfg.Roster.MasterID, cfg.Roster.Players, cfg.Roster.SimulationPlayer),
		Notifier: notifier,
	}, inventory.Options{
		MaxSimulationDays:       cfg.MaxSimulationDays,
		ConfirmDescriptionLimit: cfg.ConfirmDescriptionLimit,
	})

	if tg != nil {
		go func() {
			if err := tg.Run(ctx, bot.NewDispatcher(svc)); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("Bot stopped: %v", err)
			}
		}()
	}

	if *driver == storage.DriverJSON {
		job, err := backup.New(cfg.Backup, *path, nil)
		switch {
		case errors.Is(err, backup.ErrDisabled):
			log.Println("GITHUB_REPO is not set, backups disabled")
		case err != nil:
			log.Fatalf("Failed to configure backup: %v", err)
		default:
			c, err := backup.Start(ctx, cfg.Backup.Schedule, job)
			if err != nil {
				log.Fatalf("Failed to schedule backup: %v", err)
			}
			defer c.Stop()
		}
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", *port),
		Handler:           api.New(svc),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("🚀 Inventory API starting on http://localhost:%d", *port)
	log.Printf("📦 Store: %s (%s)", *path, *driver)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Shutdown: %v", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server failed: %v", err)
	}
	log.Println("👋 Server stopped")
}
