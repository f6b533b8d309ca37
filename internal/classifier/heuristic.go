package classifier

import (
	"regexp"
	"strings"

	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/models"
)

var (
	scamPattern      = regexp.MustCompile(`scam|fee|pay|urgent|wire|transfer|bank account|verify now`)
	internPattern    = regexp.MustCompile(`intern|internship|graduate|entry-level`)
	promoPattern     = regexp.MustCompile(`promo|promotion|discount|offer|apply now`)
	unrealistic      = regexp.MustCompile(`free|too good to be true`)
	highlightPattern = regexp.MustCompile(`(?i)\b(urgent|apply now|fee|bank|verify now|free|discount)\b`)
)

// Heuristic is the offline keyword classifier used when no provider is
// configured. Its output has the same shape as a remote verdict.
func Heuristic(text string) Verdict {
	lower := strings.ToLower(text)
	isScam := scamPattern.MatchString(lower)
	isIntern := internPattern.MatchString(lower)
	isPromo := promoPattern.MatchString(lower)

	v := Verdict{
		Category:          models.CategoryUnknown,
		RiskScore:         10,
		ConfidenceScore:   70,
		Analysis:          "No clear scam indicators found in the provided text.",
		RedFlags:          []string{},
		Recommendation:    "Needs manual verification",
		LinkAnalysis:      models.UnknownLinkAnalysis(),
		KeywordHighlights: []string{},
	}

	switch {
	case isScam:
		v.Category = models.CategoryScam
		v.RiskScore = 85
		v.ConfidenceScore = 90
		v.Analysis = "Content shows multiple scam indicators such as requests for payment and urgency."
		v.RedFlags = append(v.RedFlags, "Requests payment or bank details", "Urgency language")
		v.Recommendation = "Likely scam — stay away"
		v.SimilarScamsCount = 3
	case isIntern:
		v.Category = models.CategoryInternship
		v.RiskScore = 25
		v.Recommendation = "Safe to apply"
	case isPromo:
		v.Category = models.CategoryPromotion
		v.RiskScore = 25
	}
	if unrealistic.MatchString(lower) {
		v.RedFlags = append(v.RedFlags, "Unrealistic promises")
	}

	if m := highlightPattern.FindAllString(text, 5); m != nil {
		v.KeywordHighlights = m
	}
	return v
}
