package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Kush-Singh-26/stemma/internal/build"
	"github.com/Kush-Singh-26/stemma/internal/query"
	"github.com/Kush-Singh-26/stemma/internal/stem"
	"github.com/Kush-Singh-26/stemma/stemmer/cache"
	"github.com/Kush-Singh-26/stemma/stemmer/porter2"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch command {
	case "stem":
		err = stem.Run(args)
	case "trace":
		err = stem.RunTrace(args)
	case "index":
		err = build.Run(ctx, args)
	case "search":
		err = query.Run(args)
	case "cache":
		err = handleCacheCommand(args)
	case "version":
		fmt.Printf("stemma rule set %s (cache id %s)\n", porter2.Version, cache.ExpectedCacheID()[:12])
	case "help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Printf("❌ %v\n", err)
		stop()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: stemma <command> [flags] [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  stem [words...]   Stem words from the arguments or stdin")
	fmt.Println("  trace <word>      Show every stemming step for a word")
	fmt.Println("  index             Build the search index from the content directory")
	fmt.Println("  search <query>    Search the index")
	fmt.Println("  cache <sub>       Manage the persistent stem cache (stats, clear)")
	fmt.Println("  version           Show the stemmer rule set")
	fmt.Println("  help              Show this help message")
	fmt.Println("\nCommon flags:")
	fmt.Println("  -british          Use the British -ise/-isation rules")
	fmt.Println("  -config <file>    Config file (default: stemma.yaml)")
	fmt.Println("\nFlags for stem:")
	fmt.Println("  -cache            Stem through the persistent cache")
	fmt.Println("\nFlags for index:")
	fmt.Println("  -watch            Rebuild the index when content changes")
}
