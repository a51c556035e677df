package triage

import (
	"strings"
	"testing"
)

func TestClassifyCategory_Default(t *testing.T) {
	res := classifyCategory("nothing matches here", DefaultRules())

	if res.Category != CategoryGeneralOps {
		t.Errorf("Category = %s, want %s", res.Category, CategoryGeneralOps)
	}
	if len(res.Matched) != 0 {
		t.Errorf("Matched = %v, want empty", res.Matched)
	}
	if len(res.SuspectedSystems) != 0 {
		t.Errorf("SuspectedSystems = %v, want empty", res.SuspectedSystems)
	}
	if res.Confidence != 0.40 {
		t.Errorf("Confidence = %v, want 0.40", res.Confidence)
	}
	if !strings.Contains(res.Reason, "defaulted") {
		t.Errorf("Reason = %q, want defaulted wording", res.Reason)
	}
}

func TestClassifyCategory_InferredWording(t *testing.T) {
	res := classifyCategory("the vpn dropped", DefaultRules())

	if res.Category != CategoryITOps {
		t.Errorf("Category = %s, want %s", res.Category, CategoryITOps)
	}
	if !strings.Contains(res.Reason, "inferred from keywords") {
		t.Errorf("Reason = %q, want inferred wording", res.Reason)
	}
}

func TestClassifyCategory_FirstSeenWinsTies(t *testing.T) {
	// One IT Ops keyword (vpn) and one Customer Support keyword (order):
	// strict > comparison keeps the earlier rule.
	res := classifyCategory("vpn order", DefaultRules())

	if res.Category != CategoryITOps {
		t.Errorf("Category = %s, want %s (first-seen tie win)", res.Category, CategoryITOps)
	}
	if res.Confidence != 0.55 {
		t.Errorf("Confidence = %v, want 0.55", res.Confidence)
	}
}

func TestClassifyCategory_ConfidenceLadder(t *testing.T) {
	rules := DefaultRules()

	two := classifyCategory("vpn password reset broken", rules)
	if two.Confidence != 0.70 {
		t.Errorf("two matches: Confidence = %v, want 0.70", two.Confidence)
	}
	three := classifyCategory("vpn password sso broken", rules)
	if three.Confidence != 0.85 {
		t.Errorf("three matches: Confidence = %v, want 0.85", three.Confidence)
	}
}

func TestClassifyCategory_SubstringImprecision(t *testing.T) {
	// "circuit" contains "ci"; substring containment matches inside words.
	res := classifyCategory("the circuit board overheated", DefaultRules())

	if res.Category != CategoryEngineering {
		t.Errorf("Category = %s, want %s", res.Category, CategoryEngineering)
	}
	found := false
	for _, kw := range res.Matched {
		if kw == "ci" {
			found = true
		}
	}
	if !found {
		t.Errorf("Matched = %v, want the ci substring hit", res.Matched)
	}
}

func TestClassifyCategory_CaseInsensitive(t *testing.T) {
	res := classifyCategory("VPN AUTHENTICATION OUTAGE", DefaultRules())
	if res.Category != CategoryITOps {
		t.Errorf("Category = %s, want %s", res.Category, CategoryITOps)
	}
}
