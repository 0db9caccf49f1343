package main

import (
	"fmt"

	"github.com/Kush-Singh-26/stemma/stemmer/cache"
	"github.com/Kush-Singh-26/stemma/stemmer/config"
)

// handleCacheCommand processes cache-related subcommands
func handleCacheCommand(args []string) error {
	if len(args) < 1 {
		printCacheUsage()
		return fmt.Errorf("missing cache subcommand")
	}

	subcommand := args[0]
	cfg, err := config.Load(args[1:])
	if err != nil {
		return err
	}

	switch subcommand {
	case "stats":
		return cacheStats(cfg)
	case "clear":
		return cacheClear(cfg)
	default:
		printCacheUsage()
		return fmt.Errorf("unknown cache subcommand: %s", subcommand)
	}
}

func printCacheUsage() {
	fmt.Println("Usage: stemma cache <subcommand> [flags]")
	fmt.Println("\nSubcommands:")
	fmt.Println("  stats          Show cache statistics")
	fmt.Println("  clear          Delete all cached stems")
}

func openCache(cfg *config.Config) (*cache.Manager, error) {
	cm, err := cache.Open(cfg.CacheDir, cfg.CacheDBTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	return cm, nil
}

func cacheStats(cfg *config.Config) error {
	cm, err := openCache(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = cm.Close() }()

	stats, err := cm.Stats()
	if err != nil {
		return fmt.Errorf("failed to get stats: %w", err)
	}

	fmt.Println("📊 Stem Cache Statistics")
	fmt.Println("========================")
	fmt.Printf("Location:        %s\n", cfg.CacheDir)
	fmt.Printf("Schema Version:  %d\n", stats.SchemaVersion)
	fmt.Printf("Cache ID:        %s\n", stats.CacheID)
	fmt.Printf("American stems:  %d\n", stats.USEntries)
	fmt.Printf("British stems:   %d\n", stats.GBEntries)
	fmt.Printf("Lookups served:  %d\n", stats.TotalHits)
	return nil
}

func cacheClear(cfg *config.Config) error {
	cm, err := openCache(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = cm.Close() }()

	if err := cm.Clear(); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	fmt.Println("✅ Stem cache cleared")
	return nil
}
