package triage

import (
	"fmt"
	"strings"
)

type categoryResult struct {
	Category         Category
	Matched          []string
	SuspectedSystems []string
	Confidence       float64
	Reason           string
}

// matchKeywords returns the keywords that occur in the lowercased text.
// Matching is substring containment, not word matching: short keywords like
// "ci" match inside unrelated words, an accepted imprecision.
func matchKeywords(lower string, keywords []string) []string {
	var matched []string
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			matched = append(matched, kw)
		}
	}
	return matched
}

// classifyCategory scores the text against each category rule in order and
// keeps the strictly best match. With no matches at all it falls back to
// General Ops with empty suspected systems.
func classifyCategory(text string, rules *Rules) categoryResult {
	lower := strings.ToLower(text)

	best := categoryResult{
		Category:         CategoryGeneralOps,
		Matched:          []string{},
		SuspectedSystems: []string{},
	}
	bestCount := 0

	for _, rule := range rules.Categories {
		matched := matchKeywords(lower, rule.Keywords)
		if len(matched) > bestCount {
			bestCount = len(matched)
			best.Category = rule.Category
			best.Matched = matched
			best.SuspectedSystems = append([]string(nil), rule.SuspectedSystems...)
		}
	}

	best.Confidence = categoryConfidence(bestCount)
	if bestCount == 0 {
		best.Reason = "No category keywords matched; defaulted to General Ops."
	} else {
		best.Reason = fmt.Sprintf("Category %s inferred from keywords: %s.",
			best.Category, strings.Join(best.Matched, ", "))
	}
	return best
}

func categoryConfidence(matches int) float64 {
	switch {
	case matches >= 3:
		return 0.85
	case matches == 2:
		return 0.70
	case matches == 1:
		return 0.55
	default:
		return 0.40
	}
}
