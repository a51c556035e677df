package triage

import (
	"fmt"
	"strings"
)

type impactResult struct {
	Impact  string
	Matched []string
	Reason  string
}

// inferImpact checks broad-impact indicators before customer-facing ones;
// broad takes precedence. The unknown branch reports no matched keywords.
func inferImpact(text string, rules *Rules) impactResult {
	lower := strings.ToLower(text)

	if matched := matchKeywords(lower, rules.ImpactBroad); len(matched) > 0 {
		return impactResult{
			Impact:  ImpactBroad,
			Matched: matched,
			Reason: fmt.Sprintf("Broad impact indicators found: %s.",
				strings.Join(matched, ", ")),
		}
	}

	if matched := matchKeywords(lower, rules.ImpactCustomer); len(matched) > 0 {
		return impactResult{
			Impact:  ImpactCustomer,
			Matched: matched,
			Reason: fmt.Sprintf("Customer-facing impact indicators found: %s.",
				strings.Join(matched, ", ")),
		}
	}

	return impactResult{
		Impact: ImpactUnknown,
		Reason: "No impact indicators found; impact is unclear.",
	}
}
