// Package benchmarks compares stemmer, memo, index and search performance.
// Run with: go test -bench=. -benchmem ./stemmer/benchmarks/
package benchmarks

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/kljensen/snowball/english"
	"github.com/spf13/afero"

	"github.com/Kush-Singh-26/stemma/stemmer/index"
	"github.com/Kush-Singh-26/stemma/stemmer/models"
	"github.com/Kush-Singh-26/stemma/stemmer/porter2"
	"github.com/Kush-Singh-26/stemma/stemmer/search"
)

var corpus = strings.Fields(`
	running generously national nationalization hopping caresses ponies cats
	skies dying proceed innings agreed generate relational conditional
	rational valenci hesitanci digitizer conformabli radicalli differentli
	vileli analogousli vietnamization predication operator feudalism
	decisiveness hopefulness callousness formaliti sensitiviti sensibiliti
	triplicate formative formalize electriciti electrical hopeful goodness
	revival allowance inference airliner gyroscopic adjustable defensible
	irritant replacement adjustment dependent adoption homologou
	communism activate angulariti homologous effective bowdlerize`)

// agreed are words whose Porter2 stems are settled across implementations
var agreed = []string{
	"running", "generously", "national", "hopping", "caresses", "ponies",
	"cats", "skies", "dying", "proceed", "innings", "agreed", "generate",
}

func TestAgreesWithSnowball(t *testing.T) {
	for _, w := range agreed {
		if got, want := porter2.Stem(w, false), english.Stem(w, true); got != want {
			t.Errorf("Stem(%q) = %q, snowball says %q", w, got, want)
		}
	}
}

// BenchmarkStem measures the stemmer on a mixed vocabulary
func BenchmarkStem(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		for _, w := range corpus {
			_ = porter2.Stem(w, false)
		}
	}
}

// BenchmarkStemBritish measures the variant rule tables
func BenchmarkStemBritish(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		for _, w := range corpus {
			_ = porter2.Stem(w, true)
		}
	}
}

// BenchmarkSnowball is the baseline from github.com/kljensen/snowball
func BenchmarkSnowball(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		for _, w := range corpus {
			_ = english.Stem(w, true)
		}
	}
}

// BenchmarkStemWithTrace shows the cost of recording every stage
func BenchmarkStemWithTrace(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		for _, w := range corpus {
			_, _ = porter2.StemWithTrace(w, false)
		}
	}
}

// BenchmarkStemCached measures the in-process memo once warm
func BenchmarkStemCached(b *testing.B) {
	search.ResetMemo()
	for _, w := range corpus {
		_ = search.StemCached(w, false)
	}
	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		for _, w := range corpus {
			_ = search.StemCached(w, false)
		}
	}
}

// BenchmarkStemParallel exercises concurrent stemming
func BenchmarkStemParallel(b *testing.B) {
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			_ = porter2.Stem(corpus[i%len(corpus)], false)
			i++
		}
	})
}

// BenchmarkTokenize tests text tokenization
func BenchmarkTokenize(b *testing.B) {
	text := "The quick brown fox jumps over the lazy dog. This is a test of the tokenization performance with various words and numbers like 123 and 456."
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = search.TokenizeWithUnicode(text)
	}
}

// BenchmarkBuildIndex indexes in-memory trees of increasing size
func BenchmarkBuildIndex(b *testing.B) {
	for _, size := range []int{10, 100, 500} {
		b.Run(fmt.Sprintf("Docs-%d", size), func(b *testing.B) {
			fs := createMockContent(size)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := index.Build(context.Background(), fs, "/content", index.DefaultOptions()); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkSearch performs search with various index sizes
func BenchmarkSearch(b *testing.B) {
	for _, size := range []int{10, 50, 100, 500} {
		b.Run(fmt.Sprintf("IndexSize-%d", size), func(b *testing.B) {
			idx := createMockSearchIndex(b, size)
			opts := search.DefaultOptions(idx)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = search.PerformSearch(idx, "generating national adjustments", opts)
			}
		})
	}
}

// BenchmarkSearchFuzzy forces the fuzzy fallback on every term
func BenchmarkSearchFuzzy(b *testing.B) {
	idx := createMockSearchIndex(b, 100)
	opts := search.DefaultOptions(idx)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = search.PerformSearch(idx, "generat natonal adjustmnt", opts)
	}
}

func createMockContent(size int) afero.Fs {
	fs := afero.NewMemMapFs()
	for i := 0; i < size; i++ {
		var body strings.Builder
		for j := 0; j < 50; j++ {
			body.WriteString(corpus[(i+j)%len(corpus)])
			body.WriteByte(' ')
		}
		path := fmt.Sprintf("/content/doc-%04d.md", i)
		content := fmt.Sprintf("---\ntitle: Document %d\n---\n%s", i, body.String())
		_ = afero.WriteFile(fs, path, []byte(content), 0644)
	}
	return fs
}

func createMockSearchIndex(b *testing.B, size int) *models.SearchIndex {
	b.Helper()
	idx, err := index.Build(context.Background(), createMockContent(size), "/content", index.DefaultOptions())
	if err != nil {
		b.Fatal(err)
	}
	return idx
}
