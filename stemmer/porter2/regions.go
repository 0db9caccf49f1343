package porter2

import (
	"strings"
	"unicode/utf8"
)

// Words with these prefixes have R1 fixed to whatever follows the prefix.
var r1Exceptions = []string{"gener", "commun", "arsen"}

// isVowel reports whether b is one of a, e, i, o, u, y.
// The Y marker and every non-ASCII byte are non-vowels.
func isVowel(b byte) bool {
	switch b {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}

func isVowelRune(r rune) bool {
	return r < utf8.RuneSelf && isVowel(byte(r))
}

// hasVowel reports whether s contains a vowel anywhere
func hasVowel(s string) bool {
	return strings.ContainsAny(s, "aeiouy")
}

// firstVowelConsonant returns the part of s after the first vowel that is
// directly followed by a non-vowel, or "" if there is no such pair.
func firstVowelConsonant(s string) string {
	for i := 0; i+1 < len(s); i++ {
		if isVowel(s[i]) && !isVowel(s[i+1]) {
			_, size := utf8.DecodeRuneInString(s[i+1:])
			return s[i+1+size:]
		}
	}
	return ""
}

// R1 returns the region after the first non-vowel following a vowel.
func R1(w string) string {
	for _, prefix := range r1Exceptions {
		if strings.HasPrefix(w, prefix) {
			return w[len(prefix):]
		}
	}
	return firstVowelConsonant(w)
}

// R2 returns the region after the first non-vowel following a vowel in R1.
func R2(w string) string {
	return firstVowelConsonant(R1(w))
}

// inRegion reports whether suffix lies inside region. Regions are always
// suffixes of the word, so this is a suffix test on the region itself.
func inRegion(region, suffix string) bool {
	return strings.HasSuffix(region, suffix)
}

// EndsWithShortSyllable reports whether w ends in non-vowel, vowel,
// non-vowel other than w, x or Y, or is exactly a vowel then a non-vowel.
func EndsWithShortSyllable(w string) bool {
	r := []rune(w)
	n := len(r)
	if n == 2 {
		return isVowelRune(r[0]) && !isVowelRune(r[1])
	}
	if n < 3 {
		return false
	}
	last := r[n-1]
	if isVowelRune(last) || last == 'w' || last == 'x' || last == 'Y' {
		return false
	}
	return isVowelRune(r[n-2]) && !isVowelRune(r[n-3])
}

// IsShortWord reports whether w ends in a short syllable and R1 is empty.
func IsShortWord(w string) bool {
	return EndsWithShortSyllable(w) && R1(w) == ""
}
