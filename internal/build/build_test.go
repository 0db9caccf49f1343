package build

import (
	"context"
	"testing"

	"github.com/spf13/afero"

	"github.com/Kush-Singh-26/stemma/stemmer/config"
	"github.com/Kush-Singh-26/stemma/stemmer/index"
)

func newTestBuilder(t *testing.T) (*Builder, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	_ = afero.WriteFile(fs, "/site/content/a.md", []byte("---\ntitle: Running\n---\nRunners running."), 0644)
	_ = afero.WriteFile(fs, "/site/content/b.txt", []byte("Cooking pasta."), 0644)

	cfg := config.DefaultConfig()
	cfg.ContentDir = "/site/content"
	cfg.IndexPath = "/site/.stemma/index.bin"
	return NewBuilder(cfg, fs, nil), fs
}

func TestBuildWritesIndex(t *testing.T) {
	b, fs := newTestBuilder(t)

	written, err := b.Build(context.Background(), false)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if !written {
		t.Fatal("first build should write the index")
	}

	idx, err := index.Load(fs, "/site/.stemma/index.bin")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if idx.TotalDocs != 2 {
		t.Errorf("TotalDocs = %d, want 2", idx.TotalDocs)
	}
	if got := b.Metrics().DocsIndexed.Load(); got != 2 {
		t.Errorf("DocsIndexed = %d, want 2", got)
	}
}

func TestBuildSkipsFreshIndex(t *testing.T) {
	b, fs := newTestBuilder(t)
	ctx := context.Background()

	if _, err := b.Build(ctx, false); err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	written, err := b.Build(ctx, false)
	if err != nil {
		t.Fatalf("second Build() error = %v", err)
	}
	if written {
		t.Error("unchanged content should not be reindexed")
	}

	if written, _ := b.Build(ctx, true); !written {
		t.Error("forced build should write the index")
	}

	_ = afero.WriteFile(fs, "/site/content/c.txt", []byte("Jumping"), 0644)
	if written, _ := b.Build(ctx, false); !written {
		t.Error("new content should trigger a rebuild")
	}
	if got := b.Metrics().IndexRebuilds.Load(); got != 3 {
		t.Errorf("IndexRebuilds = %d, want 3", got)
	}
}

func TestBuildVariantChange(t *testing.T) {
	b, _ := newTestBuilder(t)
	ctx := context.Background()

	if _, err := b.Build(ctx, false); err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	b.cfg.British = true
	if written, _ := b.Build(ctx, false); !written {
		t.Error("switching to British rules should rebuild the index")
	}
}

func TestBuildSettingsChange(t *testing.T) {
	tests := []struct {
		name   string
		change func(*config.Config)
	}{
		{"stop words", func(c *config.Config) { c.StopWords = false }},
		{"stemming", func(c *config.Config) { c.Stemming = false }},
		{"extensions", func(c *config.Config) { c.Extensions = []string{".md"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, _ := newTestBuilder(t)
			ctx := context.Background()

			if _, err := b.Build(ctx, false); err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			tt.change(b.cfg)
			written, err := b.Build(ctx, false)
			if err != nil {
				t.Fatalf("second Build() error = %v", err)
			}
			if !written {
				t.Error("changed analysis settings should rebuild the index")
			}
		})
	}
}

func TestBuildRecordsSettings(t *testing.T) {
	b, fs := newTestBuilder(t)
	b.cfg.StopWords = false
	b.cfg.Stemming = false

	if _, err := b.Build(context.Background(), false); err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	idx, err := index.Load(fs, b.cfg.IndexPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if idx.StopWords || idx.Stemming {
		t.Errorf("index settings = stopwords %v, stemming %v, want both false", idx.StopWords, idx.Stemming)
	}
	if _, ok := idx.Inverted["running"]; !ok {
		t.Error("unstemmed index should hold running")
	}
	if _, ok := idx.Inverted["run"]; ok {
		t.Error("unstemmed index should not hold run")
	}
}
