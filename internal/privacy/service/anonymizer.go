package service

import (
	"sort"

	"github.com/jdai-ca/atticus-privacy/internal/privacy/domain"
)

// Anonymize returns a copy of text with every finding's span replaced by its
// redacted value. Replacements run in descending start-index order so earlier
// substitutions cannot shift the offsets of later ones. Behavior is undefined
// when findings overlap; the default registry does not produce overlapping
// spans.
func Anonymize(text string, result *domain.ScanResult) string {
	if result == nil || !result.HasFindings {
		return text
	}

	findings := make([]domain.Finding, len(result.Findings))
	copy(findings, result.Findings)
	sort.Slice(findings, func(i, j int) bool {
		return findings[i].StartIndex > findings[j].StartIndex
	})

	out := text
	for _, f := range findings {
		if f.StartIndex < 0 || f.EndIndex > len(out) || f.StartIndex > f.EndIndex {
			continue
		}
		out = out[:f.StartIndex] + f.RedactedValue + out[f.EndIndex:]
	}
	return out
}
