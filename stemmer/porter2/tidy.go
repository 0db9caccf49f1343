package porter2

import (
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// A cases.Caser carries transform state, so each call borrows its own.
var lowerCaserPool = sync.Pool{
	New: func() interface{} {
		c := cases.Lower(language.Und)
		return &c
	},
}

// quoteReplacer maps typographic single quotes to a plain apostrophe
var quoteReplacer = strings.NewReplacer("‘", "'", "’", "'")

// Tidy trims surrounding whitespace, folds to lower case and normalizes
// curly single quotes to apostrophes.
func Tidy(word string) string {
	c := lowerCaserPool.Get().(*cases.Caser)
	lowered := c.String(strings.TrimSpace(word))
	lowerCaserPool.Put(c)
	return quoteReplacer.Replace(lowered)
}

// preprocess removes leading apostrophes and marks vocalic y as Y.
// A word made only of apostrophes keeps its last one.
func preprocess(w string) string {
	i := 0
	for i < len(w)-1 && w[i] == '\'' {
		i++
	}
	b := []byte(w[i:])

	if len(b) > 0 && b[0] == 'y' {
		b[0] = 'Y'
	}
	for j := 0; j+1 < len(b); j++ {
		if isVowel(b[j]) && b[j+1] == 'y' {
			b[j+1] = 'Y'
			j++
		}
	}
	return string(b)
}

// postprocess turns every vocalic-y marker back into y
func postprocess(w string) string {
	return strings.ReplaceAll(w, "Y", "y")
}
