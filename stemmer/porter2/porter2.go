// Package porter2 implements the Porter2 (Snowball English) stemming
// algorithm, with an optional British English variant that treats
// -ise/-isation like -ize/-ization.
//
// The package holds no mutable state. Stem is safe for concurrent use.
package porter2

import "unicode/utf8"

// Version identifies the rule set. Persisted stems are keyed on it so a
// change to the tables invalidates them.
const Version = "porter2-en/1"

// stage is one named step of the pipeline
type stage struct {
	name string
	fn   func(w string, british bool) string
}

var (
	// run before the step 1a terminator check
	leadingStages = []stage{
		{"0", step0},
		{"1a", step1a},
	}
	trailingStages = []stage{
		{"1b", step1b},
		{"1c", step1c},
		{"2", step2},
		{"3", step3},
		{"4", step4},
		{"5", step5},
	}
)

// Stem returns the Porter2 stem of word. When british is set the -ise
// family of suffixes is stemmed like -ize.
func Stem(word string, british bool) string {
	return run(word, british, nil)
}

// StemWithTrace stems word exactly like Stem and also reports every
// intermediate value.
func StemWithTrace(word string, british bool) (string, Trace) {
	tr := Trace{Input: word, British: british}
	stem := run(word, british, &tr)
	tr.Result = stem
	return stem, tr
}

func run(word string, british bool, tr *Trace) string {
	tidied := Tidy(word)
	if tr != nil {
		tr.Tidied = tidied
	}
	if utf8.RuneCountInString(tidied) <= 2 {
		tr.exit(ExitShort)
		return tidied
	}

	w := preprocess(tidied)
	if tr != nil {
		tr.Preprocessed = w
	}
	if stem, ok := specialCases[w]; ok {
		tr.exit(ExitSpecialCase)
		return stem
	}

	for _, s := range leadingStages {
		w = s.fn(w, british)
		tr.record(s.name, w)
	}
	if step1aTerminators[w] {
		tr.exit(ExitStep1a)
		return w
	}

	for _, s := range trailingStages {
		w = s.fn(w, british)
		tr.record(s.name, w)
	}

	w = postprocess(w)
	tr.record("post", w)
	tr.exit(ExitNone)
	return w
}
