package triage

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CategoryRule maps a keyword set to a category and the systems it implicates.
// Rules are evaluated in order; the rule with the strictly highest match
// count wins, first-seen winning ties.
type CategoryRule struct {
	Category         Category `yaml:"category"`
	Keywords         []string `yaml:"keywords"`
	SuspectedSystems []string `yaml:"suspected_systems"`
}

// GapProbe asks a clarifying question when none of its evidence markers
// occur in the incident text.
type GapProbe struct {
	Evidence []string `yaml:"evidence"`
	Question string   `yaml:"question"`
}

// Rules is the full static rule-table set. It is built once at startup and
// treated as read-only afterward; the engine never mutates it.
type Rules struct {
	Categories     []CategoryRule `yaml:"categories"`
	UrgencyHigh    []string       `yaml:"urgency_high"`
	UrgencyMedium  []string       `yaml:"urgency_medium"`
	ImpactBroad    []string       `yaml:"impact_broad"`
	ImpactCustomer []string       `yaml:"impact_customer"`
	Probes         []GapProbe     `yaml:"probes"`

	Playbooks map[Category][]string `yaml:"playbooks"`

	// Runbook lookup: IT Ops is keyed by whether Authentication is among the
	// suspected systems; the other mapped categories are keyed by name alone.
	RunbooksITOpsAuth  []string              `yaml:"runbooks_it_ops_auth"`
	RunbooksITOps      []string              `yaml:"runbooks_it_ops"`
	RunbooksByCategory map[Category][]string `yaml:"runbooks_by_category"`
}

// DefaultRules returns the built-in rule tables.
func DefaultRules() *Rules {
	return &Rules{
		Categories: []CategoryRule{
			{
				Category: CategoryITOps,
				Keywords: []string{
					"login", "log in", "auth", "authentication", "sso", "vpn",
					"password", "503", "dashboard", "server", "unavailable",
					"certificate", "dns",
				},
				SuspectedSystems: []string{"Authentication", "VPN", "Internal Dashboard"},
			},
			{
				Category: CategoryCustomerSupport,
				Keywords: []string{
					"customer", "checkout", "billing", "charge", "refund",
					"payment", "invoice", "subscription", "order",
				},
				SuspectedSystems: []string{"Billing", "Payments", "Checkout"},
			},
			{
				Category: CategoryOperations,
				Keywords: []string{
					"warehouse", "shipment", "delivery", "inventory",
					"logistics", "supplier", "scheduling", "fulfillment",
				},
				SuspectedSystems: []string{"Logistics", "Inventory"},
			},
			{
				Category: CategoryEngineering,
				Keywords: []string{
					"deploy", "build", "pipeline", "ci", "release", "merge",
					"regression", "stacktrace", "exception", "api",
				},
				SuspectedSystems: []string{"CI/CD", "Deployment"},
			},
		},
		UrgencyHigh: []string{
			"outage", "down", "sev1", "sev 1", "p0", "critical", "cannot",
			"unavailable", "data loss", "breach", "security", "503", "500",
		},
		UrgencyMedium: []string{
			"intermittent", "degraded", "slow", "error", "failing", "fails",
			"timeout", "delay", "stuck",
		},
		ImpactBroad: []string{
			"all users", "everyone", "multiple teams", "many users",
			"company-wide", "org-wide", "all teams", "widespread",
		},
		ImpactCustomer: []string{
			"customer", "client", "checkout", "end user", "end-user",
		},
		Probes: []GapProbe{
			{
				Evidence: []string{
					"start", "since", "minute", "hour", "today", "yesterday",
					"timestamp", "am", "pm",
				},
				Question: "When did the issue start (include time and timezone)?",
			},
			{
				Evidence: []string{
					"error", "message", "code", "screenshot", "log",
					"stacktrace", "trace",
				},
				Question: "Can you share the exact error message or relevant logs?",
			},
			{
				Evidence: []string{
					"affect", "impact", "users", "teams", "customers",
					"everyone", "all users",
				},
				Question: "Who is affected (specific users, teams, or customers)?",
			},
			{
				Evidence: []string{
					"prod", "production", "staging", "dev", "test environment",
				},
				Question: "Which environment is this happening in (production, staging, or dev)?",
			},
		},
		Playbooks: map[Category][]string{
			CategoryITOps: {
				"Check service health dashboards and recent alerts.",
				"Verify recent deployments or configuration changes.",
				"Escalate to the on-call infrastructure engineer if unresolved.",
			},
			CategoryCustomerSupport: {
				"Acknowledge the report and set expectations with affected customers.",
				"Reproduce the reported issue and capture evidence.",
				"Escalate to the billing/payments owner with findings.",
			},
			CategoryOperations: {
				"Confirm operational impact with the process owner.",
				"Check for upstream system or vendor disruptions.",
				"Document workaround steps for the affected workflow.",
			},
			CategoryEngineering: {
				"Inspect recent commits, builds, and pipeline runs.",
				"Collect stack traces and error logs for the failure.",
				"Open a defect ticket with reproduction steps.",
			},
			CategoryGeneralOps: {
				"Gather more details from the reporter.",
				"Identify the affected system and business impact.",
				"Route to the appropriate team once scoped.",
			},
		},
		RunbooksITOpsAuth: []string{"RB-AUTH-001", "RB-IT-OUTAGE-002"},
		RunbooksITOps:     []string{"RB-IT-OUTAGE-002"},
		RunbooksByCategory: map[Category][]string{
			CategoryCustomerSupport: {"RB-BILLING-101"},
			CategoryOperations:      {"RB-OPS-201"},
			CategoryEngineering:     {"RB-CI-301"},
		},
	}
}

// LoadRules reads a YAML rule-table override file. Sections left empty in
// the file keep their built-in defaults, so a partial override is valid.
func LoadRules(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules: %w", err)
	}

	var r Rules
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse rules: %w", err)
	}

	r.applyDefaults()
	if err := r.validate(); err != nil {
		return nil, fmt.Errorf("invalid rules: %w", err)
	}
	return &r, nil
}

func (r *Rules) applyDefaults() {
	def := DefaultRules()
	if len(r.Categories) == 0 {
		r.Categories = def.Categories
	}
	if len(r.UrgencyHigh) == 0 {
		r.UrgencyHigh = def.UrgencyHigh
	}
	if len(r.UrgencyMedium) == 0 {
		r.UrgencyMedium = def.UrgencyMedium
	}
	if len(r.ImpactBroad) == 0 {
		r.ImpactBroad = def.ImpactBroad
	}
	if len(r.ImpactCustomer) == 0 {
		r.ImpactCustomer = def.ImpactCustomer
	}
	if len(r.Probes) == 0 {
		r.Probes = def.Probes
	}
	if len(r.Playbooks) == 0 {
		r.Playbooks = def.Playbooks
	}
	if len(r.RunbooksITOpsAuth) == 0 {
		r.RunbooksITOpsAuth = def.RunbooksITOpsAuth
	}
	if len(r.RunbooksITOps) == 0 {
		r.RunbooksITOps = def.RunbooksITOps
	}
	if len(r.RunbooksByCategory) == 0 {
		r.RunbooksByCategory = def.RunbooksByCategory
	}
}

var knownCategories = map[Category]bool{
	CategoryITOps:           true,
	CategoryCustomerSupport: true,
	CategoryOperations:      true,
	CategoryEngineering:     true,
	CategoryGeneralOps:      true,
}

func (r *Rules) validate() error {
	for _, rule := range r.Categories {
		if !knownCategories[rule.Category] {
			return fmt.Errorf("unknown category %q in rule", rule.Category)
		}
		if len(rule.Keywords) == 0 {
			return fmt.Errorf("category %s has no keywords", rule.Category)
		}
	}
	for cat := range r.Playbooks {
		if !knownCategories[cat] {
			return fmt.Errorf("unknown category %q in playbooks", cat)
		}
	}
	if len(r.Playbooks[CategoryGeneralOps]) == 0 {
		return fmt.Errorf("playbooks must include the %s fallback", CategoryGeneralOps)
	}
	return nil
}
