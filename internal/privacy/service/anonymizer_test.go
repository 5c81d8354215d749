package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdai-ca/atticus-privacy/internal/privacy/domain"
)

func TestAnonymize(t *testing.T) {
	scanner := newStrictScanner()

	t.Run("RemovesEveryRawMatch", func(t *testing.T) {
		text := "ssn 078-05-1120, card 4111111111111111, mail carol@acmecorp.com"
		result := scanner.Scan(text, nil)
		require.True(t, result.HasFindings)

		anonymized := Anonymize(text, result)

		assert.NotContains(t, anonymized, "078-05-1120")
		assert.NotContains(t, anonymized, "4111111111111111")
		assert.NotContains(t, anonymized, "carol@acmecorp.com")
	})

	t.Run("ReplacementsDoNotShiftEarlierIndices", func(t *testing.T) {
		text := "a 078-05-1120 b 4111111111111111 c"
		result := scanner.Scan(text, nil)
		require.Len(t, result.Findings, 2)

		anonymized := Anonymize(text, result)

		assert.Contains(t, anonymized, "a ")
		assert.Contains(t, anonymized, " b ")
		assert.Contains(t, anonymized, " c")
		assert.Contains(t, anonymized, "1120")
		assert.Contains(t, anonymized, "1111")
	})

	t.Run("NoFindingsReturnsTextUnchanged", func(t *testing.T) {
		text := "nothing sensitive here"
		result := scanner.Scan(text, nil)

		assert.Equal(t, text, Anonymize(text, result))
	})

	t.Run("NilResultReturnsTextUnchanged", func(t *testing.T) {
		assert.Equal(t, "text", Anonymize("text", nil))
	})

	t.Run("OutOfRangeFindingIsSkipped", func(t *testing.T) {
		result := &domain.ScanResult{
			HasFindings: true,
			Findings: []domain.Finding{
				{StartIndex: 100, EndIndex: 200, RedactedValue: "***"},
			},
		}
		assert.Equal(t, "short", Anonymize("short", result))
	})
}
