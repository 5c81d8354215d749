package domain

import "regexp"

// DetectionRule is one immutable entry in the pattern registry. Rules are
// constructed once at startup; the matcher is applied statelessly to the full
// input text on every scan.
type DetectionRule struct {
	// Category identifies the kind of sensitive data this rule detects.
	Category Category

	// Matcher locates candidate spans in the input text. Go regexps carry no
	// cross-call cursor state, so the same compiled pattern is safe to reuse
	// across concurrent scans.
	Matcher *regexp.Regexp

	// RiskLevel is assigned to every finding this rule produces.
	RiskLevel RiskLevel

	// Jurisdictions lists the regulatory regions this rule applies to. An
	// empty set means the rule applies everywhere.
	Jurisdictions []Jurisdiction

	// Validator rejects raw matches that are structurally shaped like the
	// target but fail checksum or known-placeholder checks. A nil validator
	// accepts every match.
	Validator func(raw string) bool

	// Redactor produces the masked replacement for a raw match, keeping at
	// most the last few characters.
	Redactor func(raw string) string

	// Description explains what was detected, for display to the user.
	Description string

	// Recommendation suggests what the user should do about it.
	Recommendation string
}

// AppliesTo reports whether the rule is active for the given jurisdictions.
// An empty active set, or a rule with no jurisdiction restriction, always
// applies.
func (r *DetectionRule) AppliesTo(active []Jurisdiction) bool {
	if len(active) == 0 || len(r.Jurisdictions) == 0 {
		return true
	}
	for _, a := range active {
		for _, j := range r.Jurisdictions {
			if a == j {
				return true
			}
		}
	}
	return false
}
