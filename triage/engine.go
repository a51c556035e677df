package triage

import (
	"strings"
	"time"

	"ops-triage/logger"
)

// Engine turns free-text incident reports into structured tickets using the
// static rule tables. It holds no mutable state and is safe for concurrent
// callers.
type Engine struct {
	rules *Rules
	log   logger.Logger
}

// NewEngine creates a triage engine. A nil rules argument uses the built-in
// tables; a nil logger discards everything.
func NewEngine(rules *Rules, log logger.Logger) *Engine {
	if rules == nil {
		rules = DefaultRules()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Engine{rules: rules, log: log}
}

// Triage converts one incident report into a fully-populated ticket.
// The only failure is ErrInvalidInput for empty text; every non-empty input
// produces a ticket.
func (e *Engine) Triage(raw string) (*IncidentTicket, error) {
	text, err := Normalize(raw)
	if err != nil {
		return nil, err
	}

	e.log.Debug("triage.started", logger.Int("chars", len(text)))

	cat := classifyCategory(text, e.rules)
	urg := classifyUrgency(text, e.rules)
	imp := inferImpact(text, e.rules)

	questions := missingInfoQuestions(text, e.rules)
	confidence := combinedConfidence(cat.Confidence, urg.Confidence, imp.Impact)
	needsReview, reviewReasons := reviewFlags(cat.Category, urg.Urgency, confidence, text, len(questions))

	// Reasoning is append-only, in decision order: category, urgency,
	// impact, then review flags.
	reasoning := []string{cat.Reason, urg.Reason, imp.Reason}
	reasoning = append(reasoning, reviewReasons...)

	matched := map[string][]string{
		"category": cat.Matched,
		"urgency":  urg.Matched,
	}
	if len(imp.Matched) > 0 {
		matched["impact"] = imp.Matched
	}

	ticket := &IncidentTicket{
		TicketID:             TicketID(text),
		CreatedAtUTC:         time.Now().UTC(),
		Title:                titleFrom(text),
		Description:          text,
		Category:             cat.Category,
		Urgency:              urg.Urgency,
		Impact:               imp.Impact,
		SuspectedSystems:     cat.SuspectedSystems,
		MatchedKeywords:      matched,
		Reasoning:            reasoning,
		Confidence:           confidence,
		NeedsHumanReview:     needsReview,
		MissingInfoQuestions: questions,
		NextActions:          nextActions(cat.Category, e.rules),
		RecommendedRunbooks:  recommendedRunbooks(cat.Category, cat.SuspectedSystems, e.rules),
		Citations:            []string{},
	}

	e.log.Info("triage.completed",
		logger.String("ticket_id", ticket.TicketID),
		logger.String("category", string(ticket.Category)),
		logger.String("urgency", string(ticket.Urgency)),
		logger.Float64("confidence", ticket.Confidence),
		logger.Bool("needs_review", ticket.NeedsHumanReview),
		logger.Int("questions", len(ticket.MissingInfoQuestions)),
	)

	return ticket, nil
}

// titleFrom takes the first line, truncated to 80 runes. The placeholder is
// unreachable behind Normalize but defined anyway.
func titleFrom(text string) string {
	line := text
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		line = text[:idx]
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "(untitled incident)"
	}
	runes := []rune(line)
	if len(runes) > 80 {
		return string(runes[:80])
	}
	return line
}
