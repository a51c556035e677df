package triage

import (
	"strings"
	"testing"
)

func TestClassifyUrgency_HighPrecedence(t *testing.T) {
	// Both a high indicator (outage) and a medium indicator (error) present:
	// high wins and the medium list is never consulted.
	res := classifyUrgency("full outage, error rate spiking", DefaultRules())

	if res.Urgency != UrgencyHigh {
		t.Errorf("Urgency = %s, want %s", res.Urgency, UrgencyHigh)
	}
	if res.Confidence != 0.80 {
		t.Errorf("Confidence = %v, want 0.80", res.Confidence)
	}
	for _, kw := range res.Matched {
		if kw == "error" {
			t.Error("medium indicator leaked into a High match")
		}
	}
	if !strings.Contains(res.Reason, "High") {
		t.Errorf("Reason = %q, want High wording", res.Reason)
	}
}

func TestClassifyUrgency_Medium(t *testing.T) {
	res := classifyUrgency("responses are slow and intermittent", DefaultRules())

	if res.Urgency != UrgencyMedium {
		t.Errorf("Urgency = %s, want %s", res.Urgency, UrgencyMedium)
	}
	if res.Confidence != 0.65 {
		t.Errorf("Confidence = %v, want 0.65", res.Confidence)
	}
	if len(res.Matched) == 0 {
		t.Error("Matched is empty, want the medium indicators")
	}
}

func TestClassifyUrgency_LowDefault(t *testing.T) {
	res := classifyUrgency("just a heads up about a small glitch", DefaultRules())

	if res.Urgency != UrgencyLow {
		t.Errorf("Urgency = %s, want %s", res.Urgency, UrgencyLow)
	}
	if res.Confidence != 0.55 {
		t.Errorf("Confidence = %v, want 0.55", res.Confidence)
	}
	if len(res.Matched) != 0 {
		t.Errorf("Matched = %v, want empty", res.Matched)
	}
	if !strings.Contains(res.Reason, "No urgency indicators") {
		t.Errorf("Reason = %q, want the no-indicators wording", res.Reason)
	}
}
