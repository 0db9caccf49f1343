package porter2

import "testing"

type stepCase struct {
	input    string
	expected string
}

func runStepCases(t *testing.T, name string, fn func(string, bool) string, british bool, cases []stepCase) {
	t.Helper()
	for _, tt := range cases {
		if got := fn(tt.input, british); got != tt.expected {
			t.Errorf("%s(%q, british=%v) = %q, want %q", name, tt.input, british, got, tt.expected)
		}
	}
}

func TestStep0(t *testing.T) {
	runStepCases(t, "step0", step0, false, []stepCase{
		{"abac", "abac"},
		{"abac'", "abac"},
		{"abac's", "abac"},
		{"abac's'", "abac"},
		{"ab'c", "ab'c"},
		{"ab'sc", "ab'sc"},
		{"ab's'c", "ab's'c"},
		{"ab'sc's", "ab'sc"},
		{"'", "'"},
		{"'s", "'s"},
		{"'s'", "'s"},
	})
}

func TestStep1a(t *testing.T) {
	runStepCases(t, "step1a", step1a, false, []stepCase{
		{"abacde", "abacde"},
		{"abacesses", "abacess"},
		{"ties", "tie"},
		{"tied", "tie"},
		{"cries", "cri"},
		{"cried", "cri"},
		{"gas", "gas"},
		{"this", "this"},
		{"gaps", "gap"},
		{"kiwis", "kiwi"},
		{"abacus", "abacus"},
		{"abacess", "abacess"},
		{"s", "s"},
	})
}

func TestStep1b(t *testing.T) {
	common := []stepCase{
		{"abacde", "abacde"},
		{"luxuriated", "luxuriate"},
		{"luxuriating", "luxuriate"},
		{"hopping", "hop"},
		{"hopped", "hop"},
		{"hoped", "hope"},
		{"hoping", "hope"},
		{"atomized", "atomize"},
		{"addicted", "addict"},
		{"bleed", "bleed"},
		{"agreed", "agree"},
		{"troubled", "trouble"},
		{"sing", "sing"},
	}

	t.Run("american", func(t *testing.T) {
		runStepCases(t, "step1b", step1b, false, append(common, stepCase{"atomised", "atomis"}))
	})
	t.Run("british", func(t *testing.T) {
		runStepCases(t, "step1b", step1b, true, append(common, stepCase{"atomised", "atomise"}))
	})
}

func TestStep1c(t *testing.T) {
	runStepCases(t, "step1c", step1c, false, []stepCase{
		{"cry", "cri"},
		{"by", "by"},
		{"saY", "saY"},
		{"abbeY", "abbeY"},
		{"happy", "happi"},
	})
}

func TestStep2(t *testing.T) {
	runStepCases(t, "step2", step2, false, []stepCase{
		{"abac", "abac"},
		{"nationalization", "nationalize"},
		{"nationalisation", "nationalisate"},
		{"nationalizer", "nationalize"},
		{"nationaliser", "nationaliser"},

		{"abactional", "abaction"},
		{"abacenci", "abacence"},
		{"abacanci", "abacance"},
		{"abacabli", "abacable"},
		{"abacentli", "abacent"},
		{"abacizer", "abacize"},
		{"abacization", "abacize"},
		{"abacational", "abacate"},
		{"abacation", "abacate"},
		{"abacator", "abacate"},
		{"abacalism", "abacal"},
		{"abacaliti", "abacal"},
		{"abacalli", "abacal"},
		{"abacfulness", "abacful"},
		{"abacousli", "abacous"},
		{"abacousness", "abacous"},
		{"abaciveness", "abacive"},
		{"abaciviti", "abacive"},
		{"abiliti", "abiliti"},
		{"abacbiliti", "abacble"},
		{"abacbli", "abacble"},
		{"abacfulli", "abacful"},
		{"abaclessli", "abacless"},
		{"abaclogi", "abaclog"},

		{"abacli", "abac"},
		{"abdli", "abd"},
		{"abeli", "abe"},
		{"abgli", "abg"},
		{"abhli", "abh"},
		{"abkli", "abk"},
		{"abmli", "abm"},
		{"abnli", "abn"},
		{"abrli", "abr"},
		{"abtli", "abt"},
		{"abali", "abali"},

		{"badli", "bad"},
		{"fluentli", "fluentli"},
		{"geologi", "geolog"},
	})

	runStepCases(t, "step2", step2, true, []stepCase{
		{"nationalization", "nationalize"},
		{"nationalisation", "nationalise"},
		{"nationalizer", "nationalize"},
		{"nationaliser", "nationalise"},
	})
}

func TestStep2VariantIsNotSticky(t *testing.T) {
	for i := 0; i < 2; i++ {
		if got := step2("nationalization", false); got != "nationalize" {
			t.Errorf("round %d: step2(nationalization, false) = %q", i, got)
		}
		if got := step2("nationalisation", true); got != "nationalise" {
			t.Errorf("round %d: step2(nationalisation, true) = %q", i, got)
		}
		if got := step2("nationalisation", false); got != "nationalisate" {
			t.Errorf("round %d: step2(nationalisation, false) = %q", i, got)
		}
		if got := step2("nationalization", true); got != "nationalize" {
			t.Errorf("round %d: step2(nationalization, true) = %q", i, got)
		}
	}
}

func TestStep3(t *testing.T) {
	runStepCases(t, "step3", step3, false, []stepCase{
		{"abac", "abac"},
		{"nationalize", "national"},
		{"nationalise", "nationalise"},
		{"abactional", "abaction"},
		{"abacational", "abacate"},
		{"abacicate", "abacic"},
		{"abaciciti", "abacic"},
		{"abacical", "abacic"},
		{"abacful", "abac"},
		{"abacness", "abac"},
		{"abacabacative", "abacabac"},
		{"dryness", "dryness"},
	})

	runStepCases(t, "step3", step3, true, []stepCase{
		{"nationalize", "national"},
		{"nationalise", "national"},
	})
}

func TestStep4(t *testing.T) {
	runStepCases(t, "step4", step4, false, []stepCase{
		{"abac", "abac"},
		{"nationize", "nation"},
		{"nationise", "nationise"},
		{"abacal", "abac"},
		{"abacance", "abac"},
		{"abacence", "abac"},
		{"abacer", "abac"},
		{"abacic", "abac"},
		{"abacerable", "abacer"},
		{"abacible", "abac"},
		{"abacant", "abac"},
		{"abacement", "abac"},
		{"abacacement", "abacac"},
		{"abacacment", "abacac"},
		{"abacment", "abac"},
		{"abacent", "abac"},
		{"abacism", "abac"},
		{"abacate", "abac"},
		{"abaciti", "abac"},
		{"abacous", "abac"},
		{"abacive", "abac"},
		{"abacize", "abac"},
		{"abacion", "abacion"},
		{"abacsion", "abacs"},
		{"abaction", "abact"},
		{"abction", "abction"},
		{"ablution", "ablut"},
		{"agreement", "agreement"},
		{"abcal", "abcal"},
	})

	runStepCases(t, "step4", step4, true, []stepCase{
		{"nationize", "nation"},
		{"nationise", "nation"},
	})
}

func TestStep5(t *testing.T) {
	runStepCases(t, "step5", step5, false, []stepCase{
		{"abac", "abac"},
		{"abacll", "abacl"},
		{"abcll", "abcll"},
		{"abc", "abc"},
		{"able", "abl"},
		{"abe", "abe"},
		{"abace", "abac"},
		{"bawace", "bawac"},
	})
}

func TestRuleSetLongestFirst(t *testing.T) {
	for _, rs := range []ruleSet{step2Rules, step2RulesBritish, step3Rules, step3RulesBritish, step4Rules, step4RulesBritish} {
		for i := 1; i < len(rs); i++ {
			if len(rs[i].suffix) > len(rs[i-1].suffix) {
				t.Fatalf("rule %q sorted after shorter rule %q", rs[i].suffix, rs[i-1].suffix)
			}
		}
	}
	if len(step2RulesBritish) != len(step2Rules)+2 {
		t.Errorf("british step 2 table has %d rules, want %d", len(step2RulesBritish), len(step2Rules)+2)
	}

	rule, ok := step4Rules.longest("abacement")
	if !ok || rule.suffix != "ement" {
		t.Errorf("longest(abacement) = %q, %v; want ement", rule.suffix, ok)
	}
	if _, ok := step4Rules.longest("x"); ok {
		t.Error("longest(x) should not match")
	}
}
