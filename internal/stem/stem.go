// Package stem implements the stem and trace commands.
package stem

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Kush-Singh-26/stemma/stemmer/cache"
	"github.com/Kush-Singh-26/stemma/stemmer/config"
	"github.com/Kush-Singh-26/stemma/stemmer/metrics"
	"github.com/Kush-Singh-26/stemma/stemmer/porter2"
	"github.com/Kush-Singh-26/stemma/stemmer/search"
)

// batchSize bounds how many words go through the persistent cache per transaction
const batchSize = 4096

// Run stems the positional arguments, or every whitespace-separated word
// on stdin when there are none, printing "word<TAB>stem" lines.
func Run(args []string) error {
	return run(args, os.Stdin, os.Stdout, os.Stderr)
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := config.Load(args)
	if err != nil {
		return err
	}
	search.SetMemoLimit(cfg.MemoCacheSize)

	m := metrics.NewRunMetrics()
	memoHits, memoMisses := search.MemoStats()

	stemBatch := func(words []string) ([]string, error) {
		stems := make([]string, len(words))
		for i, w := range words {
			stems[i] = search.StemCached(w, cfg.British)
		}
		return stems, nil
	}

	var cm *cache.Manager
	if cfg.UseCache {
		cm, err = cache.Open(cfg.CacheDir, cfg.CacheDBTimeout)
		if err != nil {
			return fmt.Errorf("failed to open stem cache: %w", err)
		}
		defer func() {
			if err := cm.Close(); err != nil {
				slog.Warn("Failed to close stem cache", "error", err)
			}
		}()
		stemBatch = func(words []string) ([]string, error) {
			return cm.StemBatch(words, cfg.British)
		}
	}

	out := bufio.NewWriter(stdout)
	emit := func(words []string) error {
		stems, err := stemBatch(words)
		if err != nil {
			return err
		}
		for i, w := range words {
			if _, err := fmt.Fprintf(out, "%s\t%s\n", w, stems[i]); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
		m.WordsStemmed.Add(int64(len(words)))
		return nil
	}

	if len(cfg.Args) > 0 {
		err = emit(cfg.Args)
	} else {
		err = scanWords(stdin, emit)
	}
	if err != nil {
		return err
	}
	if err := out.Flush(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	hits, misses := search.MemoStats()
	m.AddMemo(hits-memoHits, misses-memoMisses)
	if cm != nil {
		if stats, err := cm.Stats(); err == nil {
			m.CacheHits.Add(stats.Hits)
			m.CacheMisses.Add(stats.Misses)
		}
	}
	m.RecordEnd()
	_, _ = fmt.Fprintln(stderr, m.String())
	return nil
}

// scanWords feeds words from r to emit in batches
func scanWords(r io.Reader, emit func([]string) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	scanner.Split(bufio.ScanWords)

	batch := make([]string, 0, batchSize)
	for scanner.Scan() {
		batch = append(batch, scanner.Text())
		if len(batch) == batchSize {
			if err := emit(batch); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	if len(batch) > 0 {
		return emit(batch)
	}
	return nil
}

// RunTrace prints every stage the stemmer takes for one word as debug
// log records.
func RunTrace(args []string) error {
	return runTrace(args, os.Stdout)
}

func runTrace(args []string, stdout io.Writer) error {
	cfg, err := config.Load(args)
	if err != nil {
		return err
	}
	if len(cfg.Args) != 1 {
		return errors.New("usage: stemma trace [-british] <word>")
	}
	word := cfg.Args[0]

	logger := slog.New(slog.NewTextHandler(stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	stem, trace := porter2.StemWithTrace(word, cfg.British)
	trace.Log(logger)

	variant := "American"
	if cfg.British {
		variant = "British"
	}
	_, err = fmt.Fprintf(stdout, "✅ %s -> %s (%s, exit: %s)\n", strings.TrimSpace(word), stem, variant, trace.Exit)
	return err
}
