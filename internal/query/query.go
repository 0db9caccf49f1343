// Package query implements the search command.
package query

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/afero"

	"github.com/Kush-Singh-26/stemma/stemmer/config"
	"github.com/Kush-Singh-26/stemma/stemmer/index"
	"github.com/Kush-Singh-26/stemma/stemmer/metrics"
	"github.com/Kush-Singh-26/stemma/stemmer/search"
)

// Run loads the saved index and prints the ranked results for the query
// formed by the positional arguments.
func Run(args []string) error {
	return run(args, afero.NewOsFs(), os.Stdout)
}

func run(args []string, fsys afero.Fs, stdout io.Writer) error {
	cfg, err := config.Load(args)
	if err != nil {
		return err
	}
	query := strings.TrimSpace(strings.Join(cfg.Args, " "))
	if query == "" {
		return errors.New("usage: stemma search [flags] <query>")
	}
	search.SetMemoLimit(cfg.MemoCacheSize)

	idx, err := index.Load(fsys, cfg.IndexPath)
	if err != nil {
		if errors.Is(err, index.ErrIndexNotFound) {
			return fmt.Errorf("no index at %s, run 'stemma index' first: %w", cfg.IndexPath, err)
		}
		return err
	}
	if stale, err := index.Stale(fsys, cfg.ContentDir, idx); err == nil && stale {
		slog.Warn("Index is out of date, run 'stemma index' to refresh it", "path", cfg.IndexPath)
	}
	if cfg.British != idx.British {
		slog.Warn("Index was built with the other stemmer variant, using the index's", "british", idx.British)
	}
	if cfg.StopWords != idx.StopWords || cfg.Stemming != idx.Stemming {
		slog.Warn("Index was built with different analysis settings, using the index's",
			"stopwords", idx.StopWords, "stemming", idx.Stemming)
	}

	m := metrics.NewRunMetrics()
	opts := search.DefaultOptions(idx)
	opts.MaxResults = cfg.MaxResults
	opts.MaxEditDistance = cfg.MaxEditDistance

	results := search.PerformSearch(idx, query, opts)
	if len(results) == 0 {
		_, err := fmt.Fprintf(stdout, "No results for %q\n", query)
		return err
	}

	for i, r := range results {
		if _, err := fmt.Fprintf(stdout, "%d. %s (%s) [%.2f]\n   %s\n", i+1, r.Title, r.Path, r.Score, r.Snippet); err != nil {
			return fmt.Errorf("failed to write results: %w", err)
		}
		m.ResultsPrinted.Add(1)
	}
	m.RecordEnd()
	slog.Debug("Search complete", "query", query, "results", m.ResultsPrinted.Load(), "took", m.TotalDuration())
	return nil
}
