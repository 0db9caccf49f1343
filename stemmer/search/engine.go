package search

import (
	"math"
	"sort"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Kush-Singh-26/stemma/stemmer/models"
)

// titleCaser is cached at package level to avoid recreation on every snippet extraction
var (
	titleCaser   = cases.Title(language.English)
	titleCaserMu sync.Mutex
)

// maxReplacers bounds replacerCache; like the stem memo it is dropped
// wholesale when full.
const maxReplacers = 1024

// replacerCache caches string replacers for snippet highlighting
var (
	replacerCache   = make(map[string]*strings.Replacer)
	replacerCacheMu sync.RWMutex
)

// Constants for snippet extraction
const (
	MaxSnippetContentLength = 10000
	DefaultSnippetLength    = 150
	SnippetContextBefore    = 60
	SnippetContextAfter     = 90
)

// Scoring weights for different match types
const (
	ScorePhraseMatch   = 15.0
	ScoreTitleMatch    = 10.0
	ScoreFuzzyModifier = 0.7
)

// BM25 parameters
const (
	bm25K1 = 1.2
	bm25B  = 0.75
)

// Options tunes a single search
type Options struct {
	MaxResults      int
	MaxEditDistance int
	FuzzyModifier   float64
	Analyzer        *Analyzer
}

// DefaultOptions matches the index's analysis settings so queries are
// analyzed like documents
func DefaultOptions(index *models.SearchIndex) Options {
	return Options{
		MaxResults:      10,
		MaxEditDistance: MaxEditDistance,
		FuzzyModifier:   ScoreFuzzyModifier,
		Analyzer:        indexAnalyzer(index),
	}
}

func indexAnalyzer(index *models.SearchIndex) *Analyzer {
	return NewAnalyzer(index.StopWords, index.Stemming, index.British)
}

// Result is one ranked document
type Result struct {
	ID      int
	Title   string
	Path    string
	Snippet string
	Score   float64
}

// bm25 scores one posting list into scores
func bm25(index *models.SearchIndex, postings map[int]int, weight float64, scores map[int]float64) {
	df := len(postings)
	idf := math.Log(1 + (float64(index.TotalDocs)-float64(df)+0.5)/(float64(df)+0.5))
	for docID, freq := range postings {
		docLen := float64(index.DocLens[docID])
		avg := index.AvgDocLen
		if avg == 0 {
			avg = 1
		}
		tf := float64(freq) * (bm25K1 + 1) / (float64(freq) + bm25K1*(1-bm25B+bm25B*(docLen/avg)))
		scores[docID] += idf * tf * weight
	}
}

// PerformSearch ranks the documents of index against query. Query words
// are stemmed with the same variant as the index; stems missing from the
// index fall back to fuzzy matches at a reduced weight.
func PerformSearch(index *models.SearchIndex, query string, opts Options) []Result {
	query = strings.TrimSpace(query)
	if query == "" || index == nil {
		return nil
	}
	if opts.Analyzer == nil {
		opts.Analyzer = indexAnalyzer(index)
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = 10
	}

	parsed := ParseQuery(query, opts.Analyzer)
	scores := make(map[int]float64)

	for _, term := range parsed.Terms {
		if postings, ok := index.Inverted[term]; ok {
			bm25(index, postings, 1, scores)
			continue
		}
		if opts.MaxEditDistance <= 0 {
			continue
		}
		for _, fuzzyTerm := range FuzzyExpand(term, index.Inverted, opts.MaxEditDistance) {
			bm25(index, index.Inverted[fuzzyTerm], opts.FuzzyModifier, scores)
		}
	}

	for _, phrase := range parsed.Phrases {
		for i := range index.Docs {
			doc := &index.Docs[i]
			if strings.Contains(doc.NormalizedTitle, phrase) {
				scores[doc.ID] += ScorePhraseMatch * 2
				continue
			}
			if strings.Contains(strings.ToLower(doc.Content), phrase) {
				scores[doc.ID] += ScorePhraseMatch
			}
		}
	}

	// Title boost on stems, so "Running" in a title matches a "runs" query
	for id := range scores {
		titleStems := opts.Analyzer.Analyze(index.Docs[id].Title)
		for _, term := range parsed.Terms {
			if containsString(titleStems, term) {
				scores[id] += ScoreTitleMatch
				break
			}
		}
	}

	highlight := append(append([]string{}, parsed.Originals...), parsed.Phrases...)
	results := make([]Result, 0, len(scores))
	for id, score := range scores {
		doc := index.Docs[id]
		results = append(results, Result{
			ID:      id,
			Title:   doc.Title,
			Path:    doc.Path,
			Snippet: ExtractSnippet(doc.Content, highlight),
			Score:   score,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].ID < results[j].ID
	})

	if len(results) > opts.MaxResults {
		results = results[:opts.MaxResults]
	}
	return results
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// getReplacer returns a cached strings.Replacer for the given term
func getReplacer(term string) *strings.Replacer {
	replacerCacheMu.RLock()
	if r, ok := replacerCache[term]; ok {
		replacerCacheMu.RUnlock()
		return r
	}
	replacerCacheMu.RUnlock()

	titleCaserMu.Lock()
	titled := titleCaser.String(term)
	titleCaserMu.Unlock()

	r := strings.NewReplacer(
		term, "<b>"+term+"</b>",
		titled, "<b>"+titled+"</b>",
	)

	replacerCacheMu.Lock()
	if len(replacerCache) >= maxReplacers {
		replacerCache = make(map[string]*strings.Replacer)
	}
	replacerCache[term] = r
	replacerCacheMu.Unlock()
	return r
}

// lowerWithOffsets lowercases s rune by rune like strings.ToLower and
// records, for every byte of the result, the byte offset in s of the rune
// it came from. Lowercasing can change a rune's encoded length, so offsets
// found in the lowered text must be mapped back before slicing s.
func lowerWithOffsets(s string) (string, []int) {
	var b strings.Builder
	b.Grow(len(s))
	offsets := make([]int, 0, len(s))
	for i, r := range s {
		n := b.Len()
		b.WriteRune(unicode.ToLower(r))
		for k, w := 0, b.Len()-n; k < w; k++ {
			offsets = append(offsets, i)
		}
	}
	return b.String(), offsets
}

// runeFloor moves i back to the start of the rune containing it
func runeFloor(s string, i int) int {
	if i >= len(s) {
		return len(s)
	}
	for i > 0 && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}

// ExtractSnippet returns a window of content around the first term found,
// with every term highlighted. Matching ignores case; all cuts fall on rune
// boundaries.
func ExtractSnippet(content string, terms []string) string {
	if len(content) > MaxSnippetContentLength {
		content = content[:runeFloor(content, MaxSnippetContentLength)]
	}

	contentLower, offsets := lowerWithOffsets(content)
	firstPos := -1
	for _, term := range terms {
		if term == "" {
			continue
		}
		pos := strings.Index(contentLower, term)
		if pos == -1 {
			continue
		}
		if orig := offsets[pos]; firstPos == -1 || orig < firstPos {
			firstPos = orig
		}
	}

	if firstPos == -1 {
		if len(content) > DefaultSnippetLength {
			return content[:runeFloor(content, DefaultSnippetLength)] + "..."
		}
		return content
	}

	start := runeFloor(content, max(firstPos-SnippetContextBefore, 0))
	end := max(runeFloor(content, firstPos+SnippetContextAfter), start)
	snippet := content[start:end]

	for _, term := range terms {
		if term != "" {
			snippet = getReplacer(term).Replace(snippet)
		}
	}

	var b strings.Builder
	b.Grow(len(snippet) + 6)
	if start > 0 {
		b.WriteString("...")
	}
	b.WriteString(snippet)
	if end < len(content) {
		b.WriteString("...")
	}
	return b.String()
}
