package porter2

import (
	"strings"
	"unicode/utf8"
)

// trimSuffix drops n bytes from the end of w
func trimSuffix(w string, n int) string {
	return w[:len(w)-n]
}

// step0 removes the longest of 's', 's and ' when something precedes it.
func step0(w string, _ bool) string {
	for _, suffix := range []string{"'s'", "'s", "'"} {
		if len(w) > len(suffix) && strings.HasSuffix(w, suffix) {
			return trimSuffix(w, len(suffix))
		}
	}
	return w
}

// step1a handles plural endings.
func step1a(w string, _ bool) string {
	switch {
	case strings.HasSuffix(w, "sses"):
		return trimSuffix(w, 2)
	case strings.HasSuffix(w, "ied"), strings.HasSuffix(w, "ies"):
		if utf8.RuneCountInString(w) > 4 {
			return trimSuffix(w, 3) + "i"
		}
		return trimSuffix(w, 3) + "ie"
	case strings.HasSuffix(w, "us"), strings.HasSuffix(w, "ss"):
		return w
	case strings.HasSuffix(w, "s"):
		// the vowel may not be the letter right before the s
		if len(w) >= 3 && hasVowel(w[:len(w)-2]) {
			return trimSuffix(w, 1)
		}
	}
	return w
}

// step1b handles eed, ed and ing endings and the repairs that follow.
func step1b(w string, british bool) string {
	for _, suffix := range []string{"eedly", "eed"} {
		if strings.HasSuffix(w, suffix) {
			if inRegion(R1(w), suffix) {
				return trimSuffix(w, len(suffix)) + "ee"
			}
			return w
		}
	}

	var stem string
	found := false
	for _, suffix := range []string{"ingly", "edly", "ing", "ed"} {
		if strings.HasSuffix(w, suffix) {
			stem = trimSuffix(w, len(suffix))
			found = true
			break
		}
	}
	if !found || !hasVowel(stem) {
		return w
	}

	switch {
	case strings.HasSuffix(stem, "at"), strings.HasSuffix(stem, "bl"), strings.HasSuffix(stem, "iz"):
		return stem + "e"
	case british && strings.HasSuffix(stem, "is"):
		return stem + "e"
	case endsWithDouble(stem):
		return trimSuffix(stem, 1)
	case IsShortWord(stem):
		return stem + "e"
	}
	return stem
}

func endsWithDouble(w string) bool {
	for _, d := range doubles {
		if strings.HasSuffix(w, d) {
			return true
		}
	}
	return false
}

// step1c turns a final y or Y into i after a non-vowel that is not the
// first letter.
func step1c(w string, _ bool) string {
	if !strings.HasSuffix(w, "y") && !strings.HasSuffix(w, "Y") {
		return w
	}
	head := trimSuffix(w, 1)
	r, size := utf8.DecodeLastRuneInString(head)
	if size == 0 || len(head) == size || isVowelRune(r) {
		return w
	}
	return head + "i"
}

// step2 maps double suffixes to single ones inside R1.
func step2(w string, british bool) string {
	r1 := R1(w)
	if rule, ok := pickRules(british, step2Rules, step2RulesBritish).longest(w); ok {
		if inRegion(r1, rule.suffix) {
			return trimSuffix(w, len(rule.suffix)) + rule.replacement
		}
		return w
	}
	if inRegion(r1, "li") && len(w) >= 3 && strings.IndexByte(validLiEnding, w[len(w)-3]) >= 0 {
		return trimSuffix(w, 2)
	}
	if inRegion(r1, "ogi") && strings.HasSuffix(w, "logi") {
		return trimSuffix(w, 1)
	}
	return w
}

// step3 handles ative in R2 and the step 3 table in R1.
func step3(w string, british bool) string {
	if strings.HasSuffix(w, "ative") && inRegion(R2(w), "ative") {
		return trimSuffix(w, len("ative"))
	}
	rule, ok := pickRules(british, step3Rules, step3RulesBritish).longest(w)
	if ok && inRegion(R1(w), rule.suffix) {
		return trimSuffix(w, len(rule.suffix)) + rule.replacement
	}
	return w
}

// step4 deletes residual suffixes found in R2.
func step4(w string, british bool) string {
	r2 := R2(w)
	if inRegion(r2, "ion") && (strings.HasSuffix(w, "sion") || strings.HasSuffix(w, "tion")) {
		return trimSuffix(w, len("ion"))
	}
	rule, ok := pickRules(british, step4Rules, step4RulesBritish).longest(w)
	if ok && inRegion(r2, rule.suffix) {
		return trimSuffix(w, len(rule.suffix)) + rule.replacement
	}
	return w
}

// step5 removes a final e or undoubles a final ll.
func step5(w string, _ bool) string {
	r2 := R2(w)
	if strings.HasSuffix(w, "ll") && inRegion(r2, "l") {
		return trimSuffix(w, 1)
	}
	if !strings.HasSuffix(w, "e") {
		return w
	}
	if inRegion(r2, "e") {
		return trimSuffix(w, 1)
	}
	if inRegion(R1(w), "e") && !EndsWithShortSyllable(trimSuffix(w, 1)) {
		return trimSuffix(w, 1)
	}
	return w
}
