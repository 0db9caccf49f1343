package porter2

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

var stemCases = []struct {
	input    string
	expected string
}{
	// short words come back tidied
	{"", ""},
	{"a", "a"},
	{"ab", "ab"},
	{" AB ", "ab"},
	{"''", "''"},

	// whole-word overrides
	{"skis", "ski"},
	{"skies", "sky"},
	{"Skies", "sky"},
	{"sky", "sky"},
	{"atlas", "atlas"},
	{"news", "news"},
	{"dying", "die"},

	// step 1a terminators
	{"proceed", "proceed"},
	{"succeed", "succeed"},
	{"exceed", "exceed"},
	{"innings", "inning"},

	{"running", "run"},
	{"  Running  ", "run"},
	{"generously", "generous"},
	{"generate", "generat"},
	{"national", "nation"},
	{"nationalization", "nation"},
	{"ties", "tie"},
	{"hopping", "hop"},
	{"feed", "feed"},
	{"caresses", "caress"},
	{"ponies", "poni"},
	{"cats", "cat"},
	{"cat's", "cat"},
	{"cat’s", "cat"},
	{"agreed", "agre"},
	{"sized", "size"},
	{"conflated", "conflat"},
	{"troubled", "troubl"},
	{"happy", "happi"},
	{"hopefulness", "hope"},
	{"enjoying", "enjoy"},
	{"say", "say"},
	{"atomised", "atomis"},
	{"nationalisation", "nationalis"},
}

func TestStem(t *testing.T) {
	for _, tt := range stemCases {
		t.Run(tt.input, func(t *testing.T) {
			if got := Stem(tt.input, false); got != tt.expected {
				t.Errorf("Stem(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestStemBritish(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"nationalisation", "nation"},
		{"nationalization", "nation"},
		{"atomised", "atom"},
		{"atomized", "atom"},
		{"running", "run"},
		{"skies", "sky"},
	}

	for _, tt := range tests {
		if got := Stem(tt.input, true); got != tt.expected {
			t.Errorf("Stem(%q, british) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestStemVariantDoesNotLeak(t *testing.T) {
	for i := 0; i < 3; i++ {
		if got := Stem("atomised", true); got != "atom" {
			t.Fatalf("round %d: Stem(atomised, true) = %q", i, got)
		}
		if got := Stem("atomised", false); got != "atomis" {
			t.Fatalf("round %d: Stem(atomised, false) = %q", i, got)
		}
	}
}

func TestStemShortWordsUnchanged(t *testing.T) {
	for _, w := range []string{"a", "I", "by", "yo", "'s", "é", "ab"} {
		if got, want := Stem(w, false), Tidy(w); got != want {
			t.Errorf("Stem(%q) = %q, want tidied %q", w, got, want)
		}
	}
}

func TestStemToleratesNonsense(t *testing.T) {
	for _, w := range []string{"''''", "xyzzy", "12345", "a-b-c", "café's", "ñññ", "yyy"} {
		// must not panic; output is whatever the rules produce
		_ = Stem(w, false)
		_ = Stem(w, true)
	}
}

func TestStemWithTraceMatchesStem(t *testing.T) {
	for _, tt := range stemCases {
		for _, british := range []bool{false, true} {
			got, tr := StemWithTrace(tt.input, british)
			if want := Stem(tt.input, british); got != want {
				t.Errorf("StemWithTrace(%q, %v) = %q, Stem = %q", tt.input, british, got, want)
			}
			if tr.Result != got {
				t.Errorf("trace result %q differs from returned stem %q", tr.Result, got)
			}
		}
	}
}

func TestStemWithTraceStages(t *testing.T) {
	_, tr := StemWithTrace("Running", false)
	if tr.Exit != ExitNone {
		t.Errorf("Exit = %v, want %v", tr.Exit, ExitNone)
	}
	if tr.Tidied != "running" || tr.Preprocessed != "running" {
		t.Errorf("Tidied/Preprocessed = %q/%q", tr.Tidied, tr.Preprocessed)
	}

	names := make([]string, 0, len(tr.Stages))
	for _, s := range tr.Stages {
		names = append(names, s.Name)
	}
	if got := strings.Join(names, ","); got != "0,1a,1b,1c,2,3,4,5,post" {
		t.Errorf("stage names = %s", got)
	}
	if tr.Stages[2].Word != "run" {
		t.Errorf("after step 1b word = %q, want run", tr.Stages[2].Word)
	}

	_, tr = StemWithTrace("beautiful", false)
	if tr.Stages[0].R1 != "iful" || tr.Stages[0].R2 != "ul" {
		t.Errorf("step 0 regions = %q/%q, want iful/ul", tr.Stages[0].R1, tr.Stages[0].R2)
	}

	exits := map[string]Exit{
		"ab":      ExitShort,
		"skies":   ExitSpecialCase,
		"proceed": ExitStep1a,
	}
	for word, want := range exits {
		_, tr := StemWithTrace(word, false)
		if tr.Exit != want {
			t.Errorf("StemWithTrace(%q).Exit = %v, want %v", word, tr.Exit, want)
		}
	}

	_, tr = StemWithTrace("proceed", false)
	if len(tr.Stages) != 2 {
		t.Errorf("step 1a exit recorded %d stages, want 2", len(tr.Stages))
	}
}

func TestTraceLog(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, tr := StemWithTrace("hopping", false)
	tr.Log(logger)

	out := buf.String()
	for _, want := range []string{"preprocess", "\"step 1b\"", "word=hop", "reason=none", "stem=hop"} {
		if !strings.Contains(out, want) {
			t.Errorf("trace log missing %q:\n%s", want, out)
		}
	}
}

func TestStemConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(british bool) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				want := "atomis"
				if british {
					want = "atom"
				}
				if got := Stem("Atomised", british); got != want {
					t.Errorf("Stem(Atomised, %v) = %q, want %q", british, got, want)
					return
				}
			}
		}(i%2 == 0)
	}
	wg.Wait()
}
