// Package build implements the index command.
package build

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/afero"

	"github.com/Kush-Singh-26/stemma/stemmer/config"
	"github.com/Kush-Singh-26/stemma/stemmer/index"
	"github.com/Kush-Singh-26/stemma/stemmer/metrics"
	"github.com/Kush-Singh-26/stemma/stemmer/search"
)

// Builder rebuilds the saved index from the content directory
type Builder struct {
	cfg     *config.Config
	fs      afero.Fs
	logger  *slog.Logger
	metrics *metrics.RunMetrics
}

// NewBuilder creates a builder over fsys
func NewBuilder(cfg *config.Config, fsys afero.Fs, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{
		cfg:     cfg,
		fs:      fsys,
		logger:  logger,
		metrics: metrics.NewRunMetrics(),
	}
}

// Metrics returns the counters collected across builds
func (b *Builder) Metrics() *metrics.RunMetrics {
	return b.metrics
}

func (b *Builder) options() index.Options {
	return index.Options{
		British:      b.cfg.British,
		UseStopWords: b.cfg.StopWords,
		UseStemming:  b.cfg.Stemming,
		Workers:      b.cfg.Workers,
		Extensions:   b.cfg.Extensions,
		Logger:       b.logger,
	}
}

// upToDate reports whether the saved index already matches the content
// and the analysis settings.
func (b *Builder) upToDate() bool {
	existing, err := index.Load(b.fs, b.cfg.IndexPath)
	if err != nil {
		if !errors.Is(err, index.ErrIndexNotFound) {
			b.logger.Warn("Ignoring unreadable index", "path", b.cfg.IndexPath, "error", err)
		}
		return false
	}
	opts := b.options()
	if existing.British != opts.British ||
		existing.StopWords != opts.UseStopWords ||
		existing.Stemming != opts.UseStemming ||
		!slices.Equal(existing.Extensions, opts.EffectiveExtensions()) {
		b.logger.Debug("Index settings changed", "path", b.cfg.IndexPath)
		return false
	}
	stale, err := index.Stale(b.fs, b.cfg.ContentDir, existing)
	if err != nil {
		b.logger.Warn("Failed to check index freshness", "error", err)
		return false
	}
	return !stale
}

// Build writes a fresh index unless the saved one is current. It returns
// true when an index was written.
func (b *Builder) Build(ctx context.Context, force bool) (bool, error) {
	if !force && b.upToDate() {
		return false, nil
	}

	memoHits, memoMisses := search.MemoStats()
	idx, err := index.Build(ctx, b.fs, b.cfg.ContentDir, b.options())
	if err != nil {
		return false, fmt.Errorf("failed to build index: %w", err)
	}
	if err := index.Save(b.fs, b.cfg.IndexPath, idx); err != nil {
		return false, fmt.Errorf("failed to save index: %w", err)
	}

	hits, misses := search.MemoStats()
	b.metrics.AddMemo(hits-memoHits, misses-memoMisses)
	b.metrics.DocsIndexed.Add(int64(idx.TotalDocs))
	b.metrics.IndexRebuilds.Add(1)
	b.logger.Info("Index saved", "path", b.cfg.IndexPath, "docs", idx.TotalDocs, "stems", len(idx.Inverted))
	return true, nil
}

// Run builds the index and, with -watch, keeps rebuilding it until ctx is
// done.
func Run(ctx context.Context, args []string) error {
	cfg, err := config.Load(args)
	if err != nil {
		return err
	}
	search.SetMemoLimit(cfg.MemoCacheSize)

	b := NewBuilder(cfg, afero.NewOsFs(), slog.Default())
	written, err := b.Build(ctx, false)
	if err != nil {
		return err
	}
	if written {
		fmt.Printf("✅ Indexed %d documents from %s into %s\n", b.metrics.DocsIndexed.Load(), cfg.ContentDir, cfg.IndexPath)
	} else {
		fmt.Printf("✅ Index %s is up to date\n", cfg.IndexPath)
	}

	if cfg.Watch {
		fmt.Printf("👀 Watching %s for changes...\n", cfg.ContentDir)
		err = index.Watch(ctx, cfg.ContentDir, cfg.Debounce, func() error {
			if _, err := b.Build(ctx, false); err != nil {
				return err
			}
			fmt.Println("🔄 Index rebuilt")
			return nil
		}, slog.Default())
		if err != nil {
			return err
		}
	}

	b.metrics.RecordEnd()
	b.metrics.Print()
	return nil
}
