// Package service implements the detection engine: an immutable pattern
// registry applied statelessly to input text, producing findings and an
// aggregate risk classification.
package service

import (
	"sort"
	"time"

	"github.com/jdai-ca/atticus-privacy/internal/privacy/domain"
)

// Scanner runs the registry against input text. It holds no mutable state,
// so a single instance is safe for concurrent use.
type Scanner struct {
	rules     []domain.DetectionRule
	threshold domain.SensitivityThreshold
	now       func() time.Time
}

// NewScanner creates a Scanner over the given registry at the given
// sensitivity threshold.
func NewScanner(rules []domain.DetectionRule, threshold domain.SensitivityThreshold) *Scanner {
	return &Scanner{
		rules:     rules,
		threshold: threshold,
		now:       time.Now,
	}
}

// WithClock overrides the timestamp source. Intended for tests.
func (s *Scanner) WithClock(now func() time.Time) *Scanner {
	s.now = now
	return s
}

// Scan applies every active rule to the entire text and returns the
// findings. Matching is a pure function of (text, registry, jurisdictions):
// each invocation walks the compiled patterns from the start of the text, so
// repeated calls with identical arguments yield identical findings.
func (s *Scanner) Scan(text string, active []domain.Jurisdiction) *domain.ScanResult {
	var findings []domain.Finding

	for i := range s.rules {
		rule := &s.rules[i]
		if rule.RiskLevel < s.threshold.MinimumRisk() {
			continue
		}
		if !rule.AppliesTo(active) {
			continue
		}

		for _, span := range rule.Matcher.FindAllStringIndex(text, -1) {
			raw := text[span[0]:span[1]]
			if rule.Validator != nil && !rule.Validator(raw) {
				continue
			}
			findings = append(findings, domain.Finding{
				Category:            rule.Category,
				RedactedValue:       rule.Redactor(raw),
				StartIndex:          span[0],
				EndIndex:            span[1],
				RiskLevel:           rule.RiskLevel,
				Description:         rule.Description,
				Recommendation:      rule.Recommendation,
				MatchedJurisdiction: matchedJurisdiction(rule, active),
			})
		}
	}

	// Present findings in text order regardless of registry order.
	sort.SliceStable(findings, func(i, j int) bool {
		if findings[i].StartIndex != findings[j].StartIndex {
			return findings[i].StartIndex < findings[j].StartIndex
		}
		return findings[i].Category < findings[j].Category
	})

	return domain.NewScanResult(text, findings, s.now().UTC())
}

// matchedJurisdiction reports which active region made a restricted rule
// applicable. Unrestricted rules report no jurisdiction.
func matchedJurisdiction(rule *domain.DetectionRule, active []domain.Jurisdiction) domain.Jurisdiction {
	if len(rule.Jurisdictions) == 0 || len(active) == 0 {
		return ""
	}
	for _, a := range active {
		for _, j := range rule.Jurisdictions {
			if a == j {
				return j
			}
		}
	}
	return ""
}
