package triage

import (
	"strings"
	"testing"
)

func TestMissingInfoQuestions_AllMissingInOrder(t *testing.T) {
	qs := missingInfoQuestions("Something seems off. Please look into it.", DefaultRules())

	if len(qs) != 4 {
		t.Fatalf("questions = %d, want 4", len(qs))
	}
	wantOrder := []string{"start", "error message", "affected", "environment"}
	for i, marker := range wantOrder {
		if !strings.Contains(strings.ToLower(qs[i]), marker) {
			t.Errorf("question[%d] = %q, want the %s question", i, qs[i], marker)
		}
	}
}

func TestMissingInfoQuestions_NonePresent(t *testing.T) {
	text := "Started today with an error in the logs, affects two teams in production."
	qs := missingInfoQuestions(text, DefaultRules())
	if len(qs) != 0 {
		t.Errorf("questions = %v, want none", qs)
	}
}

func TestCombinedConfidence(t *testing.T) {
	// 0.55*0.85 + 0.35*0.80 + 0.10*0.75 = 0.8225 -> 0.82
	if got := combinedConfidence(0.85, 0.80, ImpactBroad); got != 0.82 {
		t.Errorf("combinedConfidence known impact = %v, want 0.82", got)
	}
	// 0.55*0.40 + 0.35*0.55 + 0.10*0.45 = 0.4575 -> 0.46
	if got := combinedConfidence(0.40, 0.55, ImpactUnknown); got != 0.46 {
		t.Errorf("combinedConfidence unknown impact = %v, want 0.46", got)
	}
}

func TestReviewFlags_LowConfidenceGeneralOps(t *testing.T) {
	need, reasons := reviewFlags(CategoryGeneralOps, UrgencyLow, 0.46, "vague text today error affected production", 0)
	if !need {
		t.Fatal("want review for low-confidence General Ops")
	}
	if len(reasons) != 1 {
		t.Fatalf("reasons = %v, want exactly one", reasons)
	}

	need, _ = reviewFlags(CategoryGeneralOps, UrgencyLow, 0.55, "same text error today affected production", 0)
	if need {
		t.Error("confidence at the 0.55 boundary must not trigger review")
	}
}

func TestReviewFlags_HighUrgencyWithoutDiagnostics(t *testing.T) {
	need, reasons := reviewFlags(CategoryITOps, UrgencyHigh, 0.80, "everything is down", 0)
	if !need || len(reasons) != 1 {
		t.Fatalf("need=%v reasons=%v, want one High-without-details reason", need, reasons)
	}

	need, _ = reviewFlags(CategoryITOps, UrgencyHigh, 0.80, "down, see the error below", 0)
	if need {
		t.Error(`"error" in the text must clear the High-urgency review flag`)
	}
	need, _ = reviewFlags(CategoryITOps, UrgencyHigh, 0.80, "down, log attached", 0)
	if need {
		t.Error(`"log" in the text must clear the High-urgency review flag`)
	}
}

func TestReviewFlags_ManyQuestions(t *testing.T) {
	need, reasons := reviewFlags(CategoryEngineering, UrgencyLow, 0.70, "error logs attached", 3)
	if !need || len(reasons) != 1 {
		t.Fatalf("need=%v reasons=%v, want one missing-details reason", need, reasons)
	}

	need, _ = reviewFlags(CategoryEngineering, UrgencyLow, 0.70, "error logs attached", 2)
	if need {
		t.Error("two questions must not trigger review")
	}
}

func TestReviewFlags_AllConditionsStack(t *testing.T) {
	need, reasons := reviewFlags(CategoryGeneralOps, UrgencyHigh, 0.40, "no details at all", 4)
	if !need {
		t.Fatal("want review")
	}
	if len(reasons) != 3 {
		t.Fatalf("reasons = %v, want all three appended", reasons)
	}
}

func TestNextActions_CopyIndependence(t *testing.T) {
	rules := DefaultRules()

	first := nextActions(CategoryITOps, rules)
	second := nextActions(CategoryITOps, rules)
	if len(first) != 3 {
		t.Fatalf("playbook steps = %d, want 3", len(first))
	}

	first[0] = "mutated"
	if second[0] == "mutated" {
		t.Error("playbook copies share backing storage")
	}
	third := nextActions(CategoryITOps, rules)
	if third[0] == "mutated" {
		t.Error("mutation leaked into the shared playbook table")
	}
}

func TestNextActions_UnmappedFallsBackToGeneralOps(t *testing.T) {
	rules := DefaultRules()
	got := nextActions(Category("Bogus"), rules)
	want := rules.Playbooks[CategoryGeneralOps]
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("fallback = %v, want the General Ops playbook", got)
	}
}

func TestRecommendedRunbooks(t *testing.T) {
	rules := DefaultRules()

	withAuth := recommendedRunbooks(CategoryITOps, []string{"VPN", "Authentication"}, rules)
	if len(withAuth) == 0 || withAuth[0] != "RB-AUTH-001" {
		t.Errorf("IT Ops with Authentication = %v, want RB-AUTH-001 first", withAuth)
	}

	withoutAuth := recommendedRunbooks(CategoryITOps, []string{"VPN"}, rules)
	for _, rb := range withoutAuth {
		if rb == "RB-AUTH-001" {
			t.Error("auth runbook recommended without Authentication suspected")
		}
	}

	support := recommendedRunbooks(CategoryCustomerSupport, nil, rules)
	if len(support) != 1 || support[0] != "RB-BILLING-101" {
		t.Errorf("Customer Support = %v, want [RB-BILLING-101]", support)
	}

	general := recommendedRunbooks(CategoryGeneralOps, nil, rules)
	if len(general) != 0 {
		t.Errorf("General Ops = %v, want empty", general)
	}
}
