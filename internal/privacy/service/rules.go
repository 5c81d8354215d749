package service

import (
	"regexp"
	"strings"

	"github.com/jdai-ca/atticus-privacy/internal/privacy/domain"
)

// maskKeepLast masks every character except the final keep characters.
// Separator characters inside the kept tail are preserved as-is.
func maskKeepLast(raw string, keep int) string {
	runes := []rune(raw)
	if keep >= len(runes) {
		keep = 0
	}
	masked := make([]rune, len(runes))
	cut := len(runes) - keep
	for i, r := range runes {
		if i < cut {
			masked[i] = '*'
		} else {
			masked[i] = r
		}
	}
	return string(masked)
}

// redactKeepLast4 is the default redactor for account-style identifiers.
func redactKeepLast4(raw string) string { return maskKeepLast(raw, 4) }

// redactKeepLast3 is used for shorter identifiers such as SINs.
func redactKeepLast3(raw string) string { return maskKeepLast(raw, 3) }

// redactEmail masks the local part but keeps the domain so the user can still
// recognize which address was caught.
func redactEmail(raw string) string {
	at := strings.LastIndex(raw, "@")
	if at <= 0 {
		return maskKeepLast(raw, 0)
	}
	return maskKeepLast(raw[:at], 1) + raw[at:]
}

// redactAll masks the entire match; used for credentials where even a suffix
// can narrow a brute-force search.
func redactAll(raw string) string { return maskKeepLast(raw, 0) }

var allJurisdictions = []domain.Jurisdiction(nil)

// DefaultRegistry builds the immutable detection rule catalog. Patterns are
// compiled once at startup; a malformed pattern is a programming error and
// panics here rather than being handled at scan time.
func DefaultRegistry() []domain.DetectionRule {
	return []domain.DetectionRule{
		{
			Category:       domain.CategoryCreditCard,
			Matcher:        regexp.MustCompile(`\b(?:4\d{12}(?:\d{3})?|5[1-5]\d{14}|3[47]\d{13}|6(?:011|5\d{2})\d{12})\b`),
			RiskLevel:      domain.RiskCritical,
			Jurisdictions:  allJurisdictions,
			Validator:      creditCardValid,
			Redactor:       redactKeepLast4,
			Description:    "Payment card number",
			Recommendation: "Remove the card number before sending; providers must never receive payment data",
		},
		{
			Category:       domain.CategoryCreditCard,
			Matcher:        regexp.MustCompile(`\b(?:4\d{3}|5[1-5]\d{2}|3[47]\d{2}|6(?:011|5\d{2}))[-\s]\d{4}[-\s]\d{4}[-\s]\d{1,4}\b`),
			RiskLevel:      domain.RiskCritical,
			Jurisdictions:  allJurisdictions,
			Validator:      creditCardValid,
			Redactor:       redactKeepLast4,
			Description:    "Payment card number (formatted)",
			Recommendation: "Remove the card number before sending; providers must never receive payment data",
		},
		{
			Category:       domain.CategorySSN,
			Matcher:        regexp.MustCompile(`\b\d{3}[-\s]\d{2}[-\s]\d{4}\b`),
			RiskLevel:      domain.RiskCritical,
			Jurisdictions:  []domain.Jurisdiction{domain.JurisdictionUS},
			Validator:      ssnValid,
			Redactor:       redactKeepLast4,
			Description:    "US Social Security Number",
			Recommendation: "Remove or anonymize the SSN; it identifies a person for life",
		},
		{
			Category:       domain.CategorySIN,
			Matcher:        regexp.MustCompile(`\b\d{3}[-\s]\d{3}[-\s]\d{3}\b`),
			RiskLevel:      domain.RiskCritical,
			Jurisdictions:  []domain.Jurisdiction{domain.JurisdictionCA},
			Validator:      sinValid,
			Redactor:       redactKeepLast3,
			Description:    "Canadian Social Insurance Number",
			Recommendation: "Remove or anonymize the SIN before sending",
		},
		{
			Category:       domain.CategoryIBAN,
			Matcher:        regexp.MustCompile(`\b[A-Z]{2}\d{2}[A-Z0-9]{11,30}\b`),
			RiskLevel:      domain.RiskHigh,
			Jurisdictions:  []domain.Jurisdiction{domain.JurisdictionEU, domain.JurisdictionUK},
			Validator:      ibanValid,
			Redactor:       redactKeepLast4,
			Description:    "International Bank Account Number",
			Recommendation: "Remove the account number; bank details should not reach a provider",
		},
		{
			Category:       domain.CategoryNINO,
			Matcher:        regexp.MustCompile(`\b[A-Z]{2}[\s]?\d{2}[\s]?\d{2}[\s]?\d{2}[\s]?[A-D]\b`),
			RiskLevel:      domain.RiskHigh,
			Jurisdictions:  []domain.Jurisdiction{domain.JurisdictionUK},
			Validator:      ninoValid,
			Redactor:       redactKeepLast3,
			Description:    "UK National Insurance number",
			Recommendation: "Remove or anonymize the NI number before sending",
		},
		{
			Category:       domain.CategoryCredential,
			Matcher:        regexp.MustCompile(`\bAKIA[0-9A-Z]{16}\b`),
			RiskLevel:      domain.RiskHigh,
			Jurisdictions:  allJurisdictions,
			Redactor:       redactAll,
			Description:    "AWS access key ID",
			Recommendation: "Rotate this key immediately and remove it from the message",
		},
		{
			Category:       domain.CategoryCredential,
			Matcher:        regexp.MustCompile(`\b(?:sk-ant-[A-Za-z0-9_-]{20,}|gh[pousr]_[A-Za-z0-9_]{36,}|xox[bporas]-[A-Za-z0-9-]{10,})\b`),
			RiskLevel:      domain.RiskHigh,
			Jurisdictions:  allJurisdictions,
			Redactor:       redactAll,
			Description:    "Provider API token",
			Recommendation: "Rotate this token immediately and remove it from the message",
		},
		{
			Category:       domain.CategoryCredential,
			Matcher:        regexp.MustCompile(`\beyJ[A-Za-z0-9_-]{10,}\.eyJ[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}\b`),
			RiskLevel:      domain.RiskHigh,
			Jurisdictions:  allJurisdictions,
			Redactor:       redactAll,
			Description:    "JSON Web Token",
			Recommendation: "Invalidate this session token and remove it from the message",
		},
		{
			Category:       domain.CategoryEmail,
			Matcher:        regexp.MustCompile(`\b[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}\b`),
			RiskLevel:      domain.RiskModerate,
			Jurisdictions:  allJurisdictions,
			Validator:      emailValid,
			Redactor:       redactEmail,
			Description:    "Email address",
			Recommendation: "Consider anonymizing the address unless it is needed for context",
		},
		{
			Category:       domain.CategoryPhone,
			Matcher:        regexp.MustCompile(`\b(?:\+?1[-.\s])?(?:\(\d{3}\)[-.\s]?|\d{3}[-.\s])\d{3}[-.\s]\d{4}\b`),
			RiskLevel:      domain.RiskModerate,
			Jurisdictions:  []domain.Jurisdiction{domain.JurisdictionUS, domain.JurisdictionCA},
			Validator:      phoneValid,
			Redactor:       redactKeepLast4,
			Description:    "North American phone number",
			Recommendation: "Consider anonymizing the number unless it is needed for context",
		},
		{
			Category:       domain.CategoryIPAddress,
			Matcher:        regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`),
			RiskLevel:      domain.RiskLow,
			Jurisdictions:  allJurisdictions,
			Validator:      ipValid,
			Redactor:       redactKeepLast3,
			Description:    "IP address",
			Recommendation: "Review whether the address identifies a person or internal system",
		},
		{
			Category:       domain.CategoryPersonName,
			Matcher:        regexp.MustCompile(`\b(?:Mr|Mrs|Ms|Dr|Prof)\.?\s+[A-Z][a-z]+(?:\s+[A-Z][a-z]+)?\b`),
			RiskLevel:      domain.RiskLow,
			Jurisdictions:  allJurisdictions,
			Validator:      personNameValid,
			Redactor:       redactKeepLast3,
			Description:    "Personal name",
			Recommendation: "Review whether naming this person is necessary",
		},
	}
}
