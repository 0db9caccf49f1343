// Package config layers command-line flags over stemma.yaml over defaults.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Kush-Singh-26/stemma/stemmer/utils"
)

// DefaultConfigFile is read from the working directory unless -config is given
const DefaultConfigFile = "stemma.yaml"

// Config contains every tunable of the stemma commands
type Config struct {
	// Stemming
	British   bool `yaml:"british"`   // Use the British -ise/-isation rules
	StopWords bool `yaml:"stopWords"` // Drop stop words while indexing (default: true)
	Stemming  bool `yaml:"stemming"`  // Stem index and query terms (default: true)

	// Paths
	ContentDir string `yaml:"contentDir"` // Documents to index (default: content)
	IndexPath  string `yaml:"indexPath"`  // Saved index (default: .stemma/index.bin)
	CacheDir   string `yaml:"cacheDir"`   // Persistent stem cache (default: .stemma/cache)

	// Indexing
	Workers    int      `yaml:"workers"`    // Indexer workers (default: CPU count, max 12)
	Extensions []string `yaml:"extensions"` // Indexed file types (default: .txt, .md)

	// Search
	MaxEditDistance int `yaml:"maxEditDistance"` // Max fuzzy edit distance (default: 2)
	MaxResults      int `yaml:"maxResults"`      // Max search results (default: 10)

	// Caches and timeouts
	MemoCacheSize  int           `yaml:"memoCacheSize"`  // In-process stem memo bound (default: 50000)
	Debounce       time.Duration `yaml:"debounce"`       // File watcher debounce (default: 200ms)
	CacheDBTimeout time.Duration `yaml:"cacheDBTimeout"` // BoltDB lock timeout (default: 10s)

	// Per-run switches, flags only
	UseCache bool     `yaml:"-"` // Stem through the persistent cache
	Watch    bool     `yaml:"-"` // Keep rebuilding the index on change
	Args     []string `yaml:"-"` // Positional arguments after the flags
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		StopWords: true,
		Stemming:  true,

		ContentDir: "content",
		IndexPath:  ".stemma/index.bin",
		CacheDir:   ".stemma/cache",

		Workers:    utils.GetDefaultWorkerCount(),
		Extensions: []string{".txt", ".md"},

		MaxEditDistance: 2,
		MaxResults:      10,

		MemoCacheSize:  50000,
		Debounce:       200 * time.Millisecond,
		CacheDBTimeout: 10 * time.Second,
	}
}

// Load builds the configuration for one subcommand from its arguments.
// Flags win over the YAML file, which wins over the defaults; a missing
// YAML file is not an error.
func Load(args []string) (*Config, error) {
	cfg := DefaultConfig()

	flags := flag.NewFlagSet("stemma", flag.ContinueOnError)
	configPath := flags.String("config", DefaultConfigFile, "Path to the YAML config file")
	british := flags.Bool("british", cfg.British, "Use the British -ise/-isation rules")
	stopWords := flags.Bool("stopwords", cfg.StopWords, "Drop stop words")
	stemming := flags.Bool("stem", cfg.Stemming, "Stem index and query terms")
	contentDir := flags.String("content", cfg.ContentDir, "Directory of documents to index")
	indexPath := flags.String("index", cfg.IndexPath, "Path of the saved index")
	cacheDir := flags.String("cache-dir", cfg.CacheDir, "Directory of the persistent stem cache")
	workers := flags.Int("workers", cfg.Workers, "Indexer workers")
	maxEdit := flags.Int("max-edit", cfg.MaxEditDistance, "Max fuzzy edit distance (0 disables fuzzy matching)")
	maxResults := flags.Int("max-results", cfg.MaxResults, "Max search results")
	memo := flags.Int("memo", cfg.MemoCacheSize, "In-process stem memo size")
	debounce := flags.Duration("debounce", cfg.Debounce, "File watcher debounce")
	useCache := flags.Bool("cache", false, "Stem through the persistent cache")
	watch := flags.Bool("watch", false, "Rebuild the index when content changes")

	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	if err := cfg.loadFile(*configPath); err != nil {
		return nil, err
	}

	// Only flags given on the command line override the file
	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "british":
			cfg.British = *british
		case "stopwords":
			cfg.StopWords = *stopWords
		case "stem":
			cfg.Stemming = *stemming
		case "content":
			cfg.ContentDir = *contentDir
		case "index":
			cfg.IndexPath = *indexPath
		case "cache-dir":
			cfg.CacheDir = *cacheDir
		case "workers":
			cfg.Workers = *workers
		case "max-edit":
			cfg.MaxEditDistance = *maxEdit
		case "max-results":
			cfg.MaxResults = *maxResults
		case "memo":
			cfg.MemoCacheSize = *memo
		case "debounce":
			cfg.Debounce = *debounce
		}
	})
	cfg.UseCache = *useCache
	cfg.Watch = *watch
	cfg.Args = flags.Args()

	cfg.validate()
	return cfg, nil
}

// loadFile merges the YAML file at path into c
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// validate ensures configuration values are within reasonable bounds
func (c *Config) validate() {
	// Workers
	if c.Workers < 1 {
		c.Workers = 1
	}
	if c.Workers > utils.MaxWorkers {
		c.Workers = utils.MaxWorkers
	}

	// Search
	if c.MaxEditDistance < 0 {
		c.MaxEditDistance = 0
	}
	if c.MaxEditDistance > 4 {
		c.MaxEditDistance = 4
	}
	if c.MaxResults < 1 {
		c.MaxResults = 1
	}
	if c.MaxResults > 1000 {
		c.MaxResults = 1000
	}

	// Caches
	if c.MemoCacheSize < 1 {
		c.MemoCacheSize = 1
	}
	if c.MemoCacheSize > 10_000_000 {
		c.MemoCacheSize = 10_000_000
	}

	// Timeouts
	if c.Debounce < 10*time.Millisecond {
		c.Debounce = 10 * time.Millisecond
	}
	if c.Debounce > 5*time.Second {
		c.Debounce = 5 * time.Second
	}
	if c.CacheDBTimeout < 1*time.Second {
		c.CacheDBTimeout = 1 * time.Second
	}

	// Extensions are compared lowercased with a leading dot
	exts := make([]string, 0, len(c.Extensions))
	for _, ext := range c.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts = append(exts, ext)
	}
	if len(exts) == 0 {
		exts = []string{".txt", ".md"}
	}
	c.Extensions = exts
}
