package porter2

import "sort"

// specialCases are whole words whose stem is fixed. The lookup runs on the
// preprocessed word and its result is returned as is.
var specialCases = map[string]string{
	"skis":  "ski",
	"skies": "sky",

	"dying":  "die",
	"lying":  "lie",
	"tying":  "tie",
	"idly":   "idl",
	"gently": "gentl",
	"ugly":   "ugli",
	"early":  "earli",
	"only":   "onli",
	"singly": "singl",

	"sky":    "sky",
	"news":   "news",
	"howe":   "howe",
	"atlas":  "atlas",
	"cosmos": "cosmos",
	"bias":   "bias",
	"andes":  "andes",
}

// step1aTerminators stop the pipeline right after step 1a
var step1aTerminators = map[string]bool{
	"inning": true, "outing": true, "canning": true, "herring": true,
	"earring": true, "proceed": true, "exceed": true, "succeed": true,
}

// Letters that may precede a removable "li" in step 2
const validLiEnding = "cdeghkmnrt"

// Doubles that are undoubled in step 1b
var doubles = []string{"bb", "dd", "ff", "gg", "mm", "nn", "pp", "rr", "tt"}

// li and ogi endings are handled in step2 itself
var step2Map = map[string]string{
	"tional":  "tion",
	"enci":    "ence",
	"anci":    "ance",
	"abli":    "able",
	"entli":   "ent",
	"ization": "ize",
	"izer":    "ize",
	"ational": "ate",
	"ation":   "ate",
	"ator":    "ate",
	"alism":   "al",
	"aliti":   "al",
	"alli":    "al",
	"fulness": "ful",
	"ousli":   "ous",
	"ousness": "ous",
	"iveness": "ive",
	"iviti":   "ive",
	"biliti":  "ble",
	"bli":     "ble",
	"fulli":   "ful",
	"lessli":  "less",
}

var step2British = map[string]string{
	"iser":    "ise",
	"isation": "ise",
}

// ative is handled in step3 itself
var step3Map = map[string]string{
	"tional":  "tion",
	"ational": "ate",
	"alize":   "al",
	"icate":   "ic",
	"iciti":   "ic",
	"ical":    "ic",
	"ful":     "",
	"ness":    "",
}

var step3British = map[string]string{
	"alise": "al",
}

// ion after s or t is handled in step4 itself
var step4Map = map[string]string{
	"al":    "",
	"ance":  "",
	"ence":  "",
	"er":    "",
	"ic":    "",
	"able":  "",
	"ible":  "",
	"ant":   "",
	"ement": "",
	"ment":  "",
	"ent":   "",
	"ism":   "",
	"ate":   "",
	"iti":   "",
	"ous":   "",
	"ive":   "",
	"ize":   "",
}

var step4British = map[string]string{
	"ise": "",
}

// suffixRule rewrites a matched suffix to its replacement
type suffixRule struct {
	suffix      string
	replacement string
}

// ruleSet is a suffix table sorted longest first, so the first match of a
// linear scan is the longest matching suffix.
type ruleSet []suffixRule

// newRuleSet merges the given maps into one sorted table
func newRuleSet(maps ...map[string]string) ruleSet {
	size := 0
	for _, m := range maps {
		size += len(m)
	}
	rules := make(ruleSet, 0, size)
	for _, m := range maps {
		for suffix, replacement := range m {
			rules = append(rules, suffixRule{suffix: suffix, replacement: replacement})
		}
	}
	sort.Slice(rules, func(i, j int) bool {
		if len(rules[i].suffix) != len(rules[j].suffix) {
			return len(rules[i].suffix) > len(rules[j].suffix)
		}
		return rules[i].suffix < rules[j].suffix
	})
	return rules
}

// longest returns the longest rule whose suffix ends w
func (rs ruleSet) longest(w string) (suffixRule, bool) {
	for _, rule := range rs {
		if len(w) >= len(rule.suffix) && w[len(w)-len(rule.suffix):] == rule.suffix {
			return rule, true
		}
	}
	return suffixRule{}, false
}

// Built once at package init and never mutated.
var (
	step2Rules        = newRuleSet(step2Map)
	step2RulesBritish = newRuleSet(step2Map, step2British)
	step3Rules        = newRuleSet(step3Map)
	step3RulesBritish = newRuleSet(step3Map, step3British)
	step4Rules        = newRuleSet(step4Map)
	step4RulesBritish = newRuleSet(step4Map, step4British)
)

func pickRules(british bool, american, gb ruleSet) ruleSet {
	if british {
		return gb
	}
	return american
}
