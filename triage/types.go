package triage

import "time"

// Category is the closed set of teams an incident can be routed to.
type Category string

const (
	CategoryITOps           Category = "IT Ops"
	CategoryCustomerSupport Category = "Customer Support"
	CategoryOperations      Category = "Operations"
	CategoryEngineering     Category = "Engineering"
	CategoryGeneralOps      Category = "General Ops"
)

// Urgency is the closed set of urgency levels. UrgencyUnknown exists in the
// enumeration but is never produced by the classifier.
type Urgency string

const (
	UrgencyHigh    Urgency = "High"
	UrgencyMedium  Urgency = "Medium"
	UrgencyLow     Urgency = "Low"
	UrgencyUnknown Urgency = "Unknown"
)

// Impact values are fixed strings, not an open field.
const (
	ImpactBroad    = "Broad impact (many users/teams)"
	ImpactCustomer = "Customer-facing impact"
	ImpactUnknown  = "Unknown/unclear impact"
)

// IncidentTicket is the structured record produced by a single triage call.
// It is fully populated on construction and never mutated afterward.
type IncidentTicket struct {
	TicketID             string              `json:"ticket_id"`
	CreatedAtUTC         time.Time           `json:"created_at_utc"`
	Title                string              `json:"title"`
	Description          string              `json:"description"`
	Category             Category            `json:"category"`
	Urgency              Urgency             `json:"urgency"`
	Impact               string              `json:"impact"`
	SuspectedSystems     []string            `json:"suspected_systems"`
	MatchedKeywords      map[string][]string `json:"matched_keywords"`
	Reasoning            []string            `json:"reasoning"`
	Confidence           float64             `json:"confidence"`
	NeedsHumanReview     bool                `json:"needs_human_review"`
	MissingInfoQuestions []string            `json:"missing_info_questions"`
	NextActions          []string            `json:"next_actions"`
	RecommendedRunbooks  []string            `json:"recommended_runbooks"`
	Citations            []string            `json:"citations"`
}
