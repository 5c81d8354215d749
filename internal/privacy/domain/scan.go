package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// previewLength bounds how much of the scanned text is kept in results and
// scan log entries.
const previewLength = 100

// Finding is a single accepted match produced by a scan. Indices refer to
// byte offsets in the original input text.
type Finding struct {
	Category            Category     `json:"category"`
	RedactedValue       string       `json:"redacted_value"`
	StartIndex          int          `json:"start_index"`
	EndIndex            int          `json:"end_index"`
	RiskLevel           RiskLevel    `json:"risk_level"`
	Description         string       `json:"description"`
	Recommendation      string       `json:"recommendation"`
	MatchedJurisdiction Jurisdiction `json:"matched_jurisdiction,omitempty"`
}

// ScanResult is the aggregate outcome of running the registry against one
// text. It is ephemeral; ScanLogEntry is the persisted form.
type ScanResult struct {
	HasFindings        bool       `json:"has_findings"`
	Findings           []Finding  `json:"findings"`
	AggregateRisk      RiskLevel  `json:"aggregate_risk"`
	Summary            string     `json:"summary"`
	DistinctCategories []Category `json:"distinct_categories"`
	ScanTimestamp      time.Time  `json:"scan_timestamp"`
	TextPreview        string     `json:"text_preview"`
}

// NewScanResult assembles a ScanResult from accepted findings. AggregateRisk
// is the maximum finding risk, or LOW when there are no findings.
func NewScanResult(text string, findings []Finding, now time.Time) *ScanResult {
	result := &ScanResult{
		HasFindings:   len(findings) > 0,
		Findings:      findings,
		AggregateRisk: RiskLow,
		ScanTimestamp: now,
		TextPreview:   Preview(text),
	}

	seen := make(map[Category]bool)
	for _, f := range findings {
		if f.RiskLevel > result.AggregateRisk {
			result.AggregateRisk = f.RiskLevel
		}
		if !seen[f.Category] {
			seen[f.Category] = true
			result.DistinctCategories = append(result.DistinctCategories, f.Category)
		}
	}
	sort.Slice(result.DistinctCategories, func(i, j int) bool {
		return result.DistinctCategories[i] < result.DistinctCategories[j]
	})

	result.Summary = summarize(findings, result.DistinctCategories)
	return result
}

// Preview returns the first 100 characters of text, respecting rune
// boundaries.
func Preview(text string) string {
	runes := []rune(text)
	if len(runes) <= previewLength {
		return text
	}
	return string(runes[:previewLength])
}

func summarize(findings []Finding, categories []Category) string {
	if len(findings) == 0 {
		return "No sensitive information detected"
	}
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = string(c)
	}
	noun := "findings"
	if len(findings) == 1 {
		noun = "finding"
	}
	return fmt.Sprintf("%d %s across: %s", len(findings), noun, strings.Join(names, ", "))
}

// ScanLogEntry is the persisted record of one scan and the user's decision
// about it. Appended to the per-conversation scan log, never mutated.
type ScanLogEntry struct {
	ID                  uuid.UUID      `json:"id"`
	Timestamp           time.Time      `json:"timestamp"`
	MessageID           string         `json:"message_id"`
	ConversationID      string         `json:"conversation_id"`
	ScanResult          *ScanResult    `json:"scan_result"`
	UserDecision        UserDecision   `json:"user_decision"`
	TextPreview         string         `json:"text_preview"`
	ActiveJurisdictions []Jurisdiction `json:"active_jurisdictions"`
}
