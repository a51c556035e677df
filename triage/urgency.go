package triage

import (
	"fmt"
	"strings"
)

type urgencyResult struct {
	Urgency    Urgency
	Matched    []string
	Confidence float64
	Reason     string
}

// classifyUrgency checks the high-urgency indicator set first; any hit wins
// outright and the medium set is never evaluated. This is precedence, not
// scoring.
func classifyUrgency(text string, rules *Rules) urgencyResult {
	lower := strings.ToLower(text)

	if matched := matchKeywords(lower, rules.UrgencyHigh); len(matched) > 0 {
		return urgencyResult{
			Urgency:    UrgencyHigh,
			Matched:    matched,
			Confidence: 0.80,
			Reason: fmt.Sprintf("Urgency set to High based on indicators: %s.",
				strings.Join(matched, ", ")),
		}
	}

	if matched := matchKeywords(lower, rules.UrgencyMedium); len(matched) > 0 {
		return urgencyResult{
			Urgency:    UrgencyMedium,
			Matched:    matched,
			Confidence: 0.65,
			Reason: fmt.Sprintf("Urgency set to Medium based on indicators: %s.",
				strings.Join(matched, ", ")),
		}
	}

	return urgencyResult{
		Urgency:    UrgencyLow,
		Matched:    []string{},
		Confidence: 0.55,
		Reason:     "No urgency indicators found; defaulting to Low.",
	}
}
