package search

import (
	"sort"
	"strings"
)

// MaxEditDistance is the maximum Levenshtein distance for fuzzy matching
const MaxEditDistance = 2

// LevenshteinDistance calculates the edit distance between two strings
func LevenshteinDistance(a, b string) int {
	aRunes := []rune(a)
	bRunes := []rune(b)

	lenA := len(aRunes)
	lenB := len(bRunes)

	if lenA == 0 {
		return lenB
	}
	if lenB == 0 {
		return lenA
	}

	// Only the previous row is needed
	prev := make([]int, lenB+1)
	curr := make([]int, lenB+1)

	for j := 0; j <= lenB; j++ {
		prev[j] = j
	}

	for i := 1; i <= lenA; i++ {
		curr[0] = i

		for j := 1; j <= lenB; j++ {
			cost := 1
			if aRunes[i-1] == bRunes[j-1] {
				cost = 0
			}
			curr[j] = min(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}

		prev, curr = curr, prev
	}

	return prev[lenB]
}

// FuzzyMatch checks if two stems match within maxDist edit distance
func FuzzyMatch(term, target string, maxDist int) bool {
	diff := len(term) - len(target)
	if diff < 0 {
		diff = -diff
	}
	if diff > maxDist {
		return false
	}
	return LevenshteinDistance(term, target) <= maxDist
}

// FuzzyExpand returns the stems of the inverted index within maxDist of term,
// sorted so scoring is deterministic.
func FuzzyExpand(term string, inverted map[string]map[int]int, maxDist int) []string {
	var candidates []string
	for stem := range inverted {
		if stem != term && FuzzyMatch(term, stem, maxDist) {
			candidates = append(candidates, stem)
		}
	}
	sort.Strings(candidates)
	return candidates
}

// FuzzyExpandWithNgrams uses a trigram index for faster candidate generation
func FuzzyExpandWithNgrams(term string, ngramIndex map[string][]string, maxDist int) []string {
	trigrams := generateTrigrams(term)

	shared := make(map[string]int)
	for _, tg := range trigrams {
		for _, cand := range ngramIndex[tg] {
			shared[cand]++
		}
	}

	minShared := len(trigrams) / 2
	var results []string
	for cand, n := range shared {
		if n >= minShared && cand != term && FuzzyMatch(term, cand, maxDist) {
			results = append(results, cand)
		}
	}
	sort.Strings(results)
	return results
}

// generateTrigrams creates 3-rune sequences from a stem
func generateTrigrams(word string) []string {
	runes := []rune(word)
	if len(runes) < 3 {
		return []string{word}
	}

	n := len(runes)
	trigrams := make([]string, 0, n-2)
	for i := 0; i <= n-3; i++ {
		trigrams = append(trigrams, string(runes[i:i+3]))
	}
	return trigrams
}

// BuildNgramIndex builds a trigram index over the stems of an inverted index
func BuildNgramIndex(inverted map[string]map[int]int) map[string][]string {
	ngramIndex := make(map[string][]string)
	for stem := range inverted {
		for _, tg := range generateTrigrams(stem) {
			ngramIndex[tg] = append(ngramIndex[tg], stem)
		}
	}
	return ngramIndex
}

// ParsedQuery holds the analyzed parts of a search query
type ParsedQuery struct {
	Terms     []string // Stemmed terms
	Originals []string // Lowercased terms as typed, for highlighting
	Phrases   []string // Quoted phrases, lowercased
	Raw       string
}

// ParseQuery extracts quoted phrases and analyzed terms from a query.
// Phrases are enclosed in quotes: "machine learning"
func ParseQuery(query string, analyzer *Analyzer) ParsedQuery {
	result := ParsedQuery{Raw: query}

	var phraseBuf strings.Builder
	var rest strings.Builder
	inPhrase := false

	for _, r := range query {
		switch {
		case r == '"':
			if inPhrase {
				if phrase := strings.TrimSpace(phraseBuf.String()); phrase != "" {
					result.Phrases = append(result.Phrases, strings.ToLower(phrase))
				}
				phraseBuf.Reset()
			}
			inPhrase = !inPhrase
			rest.WriteByte(' ')
		case inPhrase:
			phraseBuf.WriteRune(r)
		default:
			rest.WriteRune(r)
		}
	}
	// an unterminated quote is treated as plain terms
	if inPhrase {
		rest.WriteString(phraseBuf.String())
	}

	result.Terms, result.Originals = analyzer.AnalyzeWithOriginals(rest.String())
	return result
}
