package search

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Kush-Singh-26/stemma/stemmer/utils"
)

// English stop words - common words that don't contribute to search relevance
var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "but": true, "by": true, "for": true, "if": true, "in": true,
	"into": true, "is": true, "it": true, "no": true, "not": true, "of": true,
	"on": true, "or": true, "such": true, "that": true, "the": true, "their": true,
	"then": true, "there": true, "these": true, "they": true, "this": true,
	"to": true, "was": true, "will": true, "with": true, "have": true, "has": true,
	"had": true, "been": true, "being": true, "from": true, "were": true,
	"what": true, "when": true, "where": true, "which": true, "who": true,
	"whom": true, "why": true, "how": true, "all": true, "each": true,
	"every": true, "both": true, "few": true, "more": true, "most": true,
	"other": true, "some": true, "any": true, "only": true, "own": true,
	"same": true, "so": true, "than": true, "too": true, "very": true,
	"can": true, "just": true, "should": true, "now": true, "also": true,
	"its": true, "about": true, "after": true, "before": true, "above": true,
	"below": true, "between": true, "under": true, "again": true, "further": true,
	"once": true, "here": true, "during": true, "out": true, "up": true,
	"down": true, "off": true, "over": true, "through": true, "because": true,
	"while": true, "until": true, "am": true, "i": true, "me": true, "my": true,
	"myself": true, "we": true, "our": true, "ours": true, "ourselves": true,
	"you": true, "your": true, "yours": true, "yourself": true, "yourselves": true,
	"he": true, "him": true, "his": true, "himself": true, "she": true,
	"her": true, "hers": true, "herself": true, "itself": true, "them": true,
	"themselves": true, "those": true,
	"do": true, "does": true, "did": true, "would": true, "could": true,
	"may": true, "might": true, "must": true, "shall": true, "need": true,
	"dare": true, "ought": true, "used": true, "nor": true,
}

// Analyzer turns free text into index terms
type Analyzer struct {
	useStopWords bool
	useStemming  bool
	british      bool
}

// NewAnalyzer creates a new analyzer with specified options
func NewAnalyzer(useStopWords, useStemming, british bool) *Analyzer {
	return &Analyzer{
		useStopWords: useStopWords,
		useStemming:  useStemming,
		british:      british,
	}
}

// DefaultAnalyzer removes stop words and stems with the American rules
var DefaultAnalyzer = NewAnalyzer(true, true, false)

// British reports which stemmer variant the analyzer uses
func (a *Analyzer) British() bool {
	return a.british
}

// Term normalizes a single token, returning "" when it should be dropped.
func (a *Analyzer) Term(token string) string {
	token = strings.ToLower(token)
	if len(token) < 2 {
		return ""
	}
	if a.useStopWords && stopWords[strings.TrimRight(token, "'")] {
		return ""
	}
	if a.useStemming {
		return StemCached(token, a.british)
	}
	return token
}

// Analyze processes text and returns normalized tokens
func (a *Analyzer) Analyze(text string) []string {
	tokens := TokenizeWithUnicode(text)
	result := make([]string, 0, len(tokens))

	for _, token := range tokens {
		if term := a.Term(token); term != "" {
			result = append(result, term)
		}
	}
	return result
}

// AnalyzeWithOriginals returns both stemmed and original forms.
// Originals are used for snippet highlighting, stems for matching.
func (a *Analyzer) AnalyzeWithOriginals(text string) (stemmed []string, originals []string) {
	for _, token := range TokenizeWithUnicode(text) {
		term := a.Term(token)
		if term == "" {
			continue
		}
		originals = append(originals, strings.ToLower(token))
		stemmed = append(stemmed, term)
	}
	return stemmed, originals
}

// isApostrophe matches the plain and typographic apostrophes the stemmer normalizes
func isApostrophe(r rune) bool {
	return r == '\'' || r == '’' || r == '‘'
}

// TokenizeWithUnicode splits text into letter/number runs. Apostrophes are
// kept inside and at the end of a token so possessives reach the stemmer.
func TokenizeWithUnicode(text string) []string {
	if len(text) == 0 {
		return nil
	}

	estimatedTokens := len(text) / 5
	if estimatedTokens < 8 {
		estimatedTokens = 8
	}
	tokens := make([]string, 0, estimatedTokens)

	scratch := utils.TokenScratch.Get()
	defer utils.TokenScratch.Put(scratch)
	buf := (*scratch)[:0]

	for _, r := range text {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			buf = utf8.AppendRune(buf, r)
		case isApostrophe(r) && len(buf) > 0:
			buf = utf8.AppendRune(buf, r)
		case len(buf) > 0:
			tokens = append(tokens, string(buf))
			buf = buf[:0]
		}
	}

	if len(buf) > 0 {
		tokens = append(tokens, string(buf))
	}
	*scratch = buf

	return tokens
}

// IsStopWord checks if a word is a stop word
func IsStopWord(word string) bool {
	return stopWords[strings.ToLower(word)]
}
