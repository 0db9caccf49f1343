// Package index builds, persists and watches the stem inverted index over a
// directory of text and markdown documents.
package index

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/afero"

	"github.com/Kush-Singh-26/stemma/stemmer/models"
	"github.com/Kush-Singh-26/stemma/stemmer/porter2"
	"github.com/Kush-Singh-26/stemma/stemmer/search"
	"github.com/Kush-Singh-26/stemma/stemmer/utils"
)

// DefaultExtensions are the file types indexed when Options.Extensions is empty
var DefaultExtensions = []string{".txt", ".md"}

// Options controls how documents are analyzed
type Options struct {
	British      bool
	UseStopWords bool
	UseStemming  bool
	Workers      int
	Extensions   []string
	Logger       *slog.Logger
}

// DefaultOptions stems with the American rules and drops stop words
func DefaultOptions() Options {
	return Options{
		UseStopWords: true,
		UseStemming:  true,
		Workers:      utils.GetDefaultWorkerCount(),
		Extensions:   DefaultExtensions,
	}
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// EffectiveExtensions returns the sorted file types Build will index
func (o Options) EffectiveExtensions() []string {
	exts := o.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	exts = slices.Clone(exts)
	slices.Sort(exts)
	return slices.Compact(exts)
}

func (o Options) wants(path string) bool {
	exts := o.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	return slices.Contains(exts, strings.ToLower(filepath.Ext(path)))
}

// indexResult is one worker's output; skipped files carry ok == false
type indexResult struct {
	doc models.IndexedDocument
	ok  bool
}

// Build walks root on fsys, analyzes every matching document on a worker
// pool and merges the results into an inverted index. Document IDs follow
// the lexical order of paths, so rebuilding an unchanged tree yields the
// same index.
func Build(ctx context.Context, fsys afero.Fs, root string, opts Options) (*models.SearchIndex, error) {
	log := opts.logger()

	var paths []string
	err := afero.Walk(fsys, root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !opts.wants(path) {
			return nil
		}
		if info.Size() > utils.MaxFileSize {
			log.Warn("Skipping oversized document", "path", path, "size", info.Size())
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	fingerprint, err := Fingerprint(fsys, root)
	if err != nil {
		return nil, err
	}

	analyzer := search.NewAnalyzer(opts.UseStopWords, opts.UseStemming, opts.British)
	results := utils.Map(ctx, opts.Workers, paths, func(path string) indexResult {
		source, err := afero.ReadFile(fsys, path)
		if err != nil {
			log.Warn("Failed to read document", "path", path, "error", err)
			return indexResult{}
		}
		return indexResult{doc: analyzeDocument(analyzer, root, path, source), ok: true}
	})
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("index build cancelled: %w", err)
	}

	indexed := make([]models.IndexedDocument, 0, len(results))
	for _, r := range results {
		if r.ok {
			indexed = append(indexed, r.doc)
		}
	}

	idx := Merge(indexed)
	idx.British = opts.British
	idx.StopWords = opts.UseStopWords
	idx.Stemming = opts.UseStemming
	idx.Extensions = opts.EffectiveExtensions()
	idx.StemmerVersion = porter2.Version
	idx.Fingerprint = fingerprint

	log.Debug("Index built", "root", root, "docs", idx.TotalDocs, "terms", len(idx.Inverted))
	return idx, nil
}

// analyzeDocument extracts and analyzes one document
func analyzeDocument(analyzer *search.Analyzer, root, path string, source []byte) models.IndexedDocument {
	title, plain := extractDocument(path, source)

	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}

	terms := analyzer.Analyze(title + " " + plain)
	freqs := make(map[string]int, len(terms))
	for _, term := range terms {
		freqs[term]++
	}

	return models.IndexedDocument{
		Doc: models.Document{
			Path:            filepath.ToSlash(rel),
			Title:           title,
			NormalizedTitle: strings.ToLower(title),
			Content:         plain,
		},
		WordFreqs: freqs,
		DocLen:    len(terms),
	}
}

// Merge assembles analyzed documents into an inverted index, assigning each
// document its position as ID.
func Merge(indexed []models.IndexedDocument) *models.SearchIndex {
	totalDocs := len(indexed)
	// Heuristic: estimate 100 unique stems per document
	estimatedUniqueWords := totalDocs * 100

	idx := &models.SearchIndex{
		Docs:     make([]models.Document, totalDocs),
		Inverted: make(map[string]map[int]int, estimatedUniqueWords),
		DocLens:  make(map[int]int, totalDocs),
	}

	totalLen := 0
	for i, ip := range indexed {
		doc := ip.Doc
		doc.ID = i
		idx.Docs[i] = doc
		idx.DocLens[i] = ip.DocLen
		totalLen += ip.DocLen

		for word, freq := range ip.WordFreqs {
			postMap, ok := idx.Inverted[word]
			if !ok {
				postMap = make(map[int]int)
				idx.Inverted[word] = postMap
			}
			postMap[i] = freq
		}
	}

	idx.TotalDocs = totalDocs
	if totalDocs > 0 {
		idx.AvgDocLen = float64(totalLen) / float64(totalDocs)
	}
	return idx
}

// Fingerprint summarizes the state of a content tree so a stale index can
// be detected without re-reading documents.
func Fingerprint(fsys afero.Fs, root string) (string, error) {
	hash, err := utils.HashDirsFast(fsys, []string{root})
	if err != nil {
		return "", fmt.Errorf("failed to fingerprint %s: %w", root, err)
	}
	return hash, nil
}

// Stale reports whether idx no longer matches the content under root or was
// built by a different stemmer revision.
func Stale(fsys afero.Fs, root string, idx *models.SearchIndex) (bool, error) {
	if idx == nil || idx.StemmerVersion != porter2.Version {
		return true, nil
	}
	fingerprint, err := Fingerprint(fsys, root)
	if err != nil {
		return false, err
	}
	return fingerprint != idx.Fingerprint, nil
}
