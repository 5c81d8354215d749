package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewScanResult(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("NoFindings_AggregateRiskIsLow", func(t *testing.T) {
		result := NewScanResult("hello world", nil, now)

		assert.False(t, result.HasFindings)
		assert.Equal(t, RiskLow, result.AggregateRisk)
		assert.Equal(t, "No sensitive information detected", result.Summary)
		assert.Empty(t, result.DistinctCategories)
		assert.Equal(t, "hello world", result.TextPreview)
	})

	t.Run("AggregateRiskIsMaxFindingRisk", func(t *testing.T) {
		findings := []Finding{
			{Category: CategoryEmail, RiskLevel: RiskModerate},
			{Category: CategoryCreditCard, RiskLevel: RiskCritical},
			{Category: CategoryIPAddress, RiskLevel: RiskLow},
		}
		result := NewScanResult("text", findings, now)

		assert.True(t, result.HasFindings)
		assert.Equal(t, RiskCritical, result.AggregateRisk)
	})

	t.Run("DistinctCategoriesAreDeduplicatedAndSorted", func(t *testing.T) {
		findings := []Finding{
			{Category: CategoryPhone, RiskLevel: RiskModerate},
			{Category: CategoryEmail, RiskLevel: RiskModerate},
			{Category: CategoryEmail, RiskLevel: RiskModerate},
		}
		result := NewScanResult("text", findings, now)

		assert.Equal(t, []Category{CategoryEmail, CategoryPhone}, result.DistinctCategories)
		assert.Equal(t, "3 findings across: EMAIL, PHONE", result.Summary)
	})

	t.Run("SingleFindingUsesSingularNoun", func(t *testing.T) {
		findings := []Finding{{Category: CategorySSN, RiskLevel: RiskCritical}}
		result := NewScanResult("text", findings, now)

		assert.Equal(t, "1 finding across: SSN", result.Summary)
	})

	t.Run("PreviewTruncatesTo100Characters", func(t *testing.T) {
		long := strings.Repeat("a", 250)
		result := NewScanResult(long, nil, now)

		assert.Len(t, result.TextPreview, 100)
	})
}

func TestSensitivityThreshold_MinimumRisk(t *testing.T) {
	assert.Equal(t, RiskLow, ThresholdStrict.MinimumRisk())
	assert.Equal(t, RiskModerate, ThresholdModerate.MinimumRisk())
	assert.Equal(t, RiskHigh, ThresholdRelaxed.MinimumRisk())
	// Unknown thresholds fall back to scanning everything.
	assert.Equal(t, RiskLow, SensitivityThreshold("bogus").MinimumRisk())
}

func TestDetectionRule_AppliesTo(t *testing.T) {
	usOnly := &DetectionRule{Jurisdictions: []Jurisdiction{JurisdictionUS}}
	global := &DetectionRule{}

	assert.True(t, usOnly.AppliesTo(nil))
	assert.True(t, usOnly.AppliesTo([]Jurisdiction{JurisdictionUS, JurisdictionCA}))
	assert.False(t, usOnly.AppliesTo([]Jurisdiction{JurisdictionCA}))
	assert.True(t, global.AppliesTo([]Jurisdiction{JurisdictionEU}))
}

func TestRiskLevel_String(t *testing.T) {
	assert.Equal(t, "LOW", RiskLow.String())
	assert.Equal(t, "MODERATE", RiskModerate.String())
	assert.Equal(t, "HIGH", RiskHigh.String())
	assert.Equal(t, "CRITICAL", RiskCritical.String())
	assert.Equal(t, "UNKNOWN", RiskLevel(42).String())
}
