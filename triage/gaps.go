package triage

import (
	"fmt"
	"math"
	"strings"
)

// missingInfoQuestions evaluates each gap probe against the full text and
// collects the question for every probe whose evidence set is absent.
// Probe order is fixed, so question order is stable.
func missingInfoQuestions(text string, rules *Rules) []string {
	lower := strings.ToLower(text)
	questions := []string{}
	for _, probe := range rules.Probes {
		if len(matchKeywords(lower, probe.Evidence)) == 0 {
			questions = append(questions, probe.Question)
		}
	}
	return questions
}

// combinedConfidence weights category as the dominant signal, urgency
// secondary, and impact as a minor adjustment.
func combinedConfidence(categoryConf, urgencyConf float64, impact string) float64 {
	impactFactor := 0.45
	if impact != ImpactUnknown {
		impactFactor = 0.75
	}
	return round2(0.55*categoryConf + 0.35*urgencyConf + 0.10*impactFactor)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// reviewFlags decides whether a human should check the classification.
// Every triggering condition contributes its own reasoning sentence.
func reviewFlags(category Category, urgency Urgency, confidence float64, text string, questionCount int) (bool, []string) {
	lower := strings.ToLower(text)
	var reasons []string

	if category == CategoryGeneralOps && confidence < 0.55 {
		reasons = append(reasons, "Low-confidence General Ops classification requires human review.")
	}
	if urgency == UrgencyHigh && !strings.Contains(lower, "error") && !strings.Contains(lower, "log") {
		reasons = append(reasons, "High urgency without error details requires human review.")
	}
	if questionCount >= 3 {
		reasons = append(reasons, fmt.Sprintf("Multiple missing details (%d questions) require human review.", questionCount))
	}

	return len(reasons) > 0, reasons
}

// nextActions returns a copy of the playbook for the category, falling back
// to General Ops for any unmapped category. The copy keeps callers from
// mutating the shared tables.
func nextActions(category Category, rules *Rules) []string {
	steps, ok := rules.Playbooks[category]
	if !ok {
		steps = rules.Playbooks[CategoryGeneralOps]
	}
	return append([]string(nil), steps...)
}

// recommendedRunbooks is a fixed lookup: IT Ops is keyed by whether
// Authentication is among the suspected systems, the other mapped
// categories by name alone, everything else empty.
func recommendedRunbooks(category Category, suspectedSystems []string, rules *Rules) []string {
	if category == CategoryITOps {
		for _, sys := range suspectedSystems {
			if sys == "Authentication" {
				return append([]string(nil), rules.RunbooksITOpsAuth...)
			}
		}
		return append([]string(nil), rules.RunbooksITOps...)
	}
	if books, ok := rules.RunbooksByCategory[category]; ok {
		return append([]string(nil), books...)
	}
	return []string{}
}
