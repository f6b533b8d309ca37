package classifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/models"
)

const maxRedFlags = 5

var errInvalidVerdict = errors.New("invalid verdict")

// rawVerdict mirrors the provider payload. Pointers tell a missing field
// from a zero value.
type rawVerdict struct {
	Category          *string          `json:"category"`
	RiskScore         *float64         `json:"riskScore"`
	ConfidenceScore   *float64         `json:"confidenceScore"`
	Analysis          *string          `json:"analysis"`
	RedFlags          *[]string        `json:"redFlags"`
	Recommendation    *string          `json:"recommendation"`
	LinkAnalysis      *rawLinkAnalysis `json:"linkAnalysis"`
	KeywordHighlights []string         `json:"keywordHighlights"`
	SimilarScamsCount *float64         `json:"similarScamsCount"`
}

type rawLinkAnalysis struct {
	DomainAge   string  `json:"domainAge"`
	SSLStatus   string  `json:"sslStatus"`
	Redirects   float64 `json:"redirects"`
	MalwareScan string  `json:"malwareScan"`
}

// ParseVerdict decodes and validates a provider reply.
func ParseVerdict(content string) (Verdict, error) {
	var raw rawVerdict
	if err := json.Unmarshal([]byte(extractJSON(content)), &raw); err != nil {
		return Verdict{}, fmt.Errorf("%w: %v", errInvalidVerdict, err)
	}
	return raw.verdict()
}

func (r rawVerdict) verdict() (Verdict, error) {
	switch {
	case r.Category == nil:
		return Verdict{}, fmt.Errorf("%w: missing category", errInvalidVerdict)
	case r.RiskScore == nil:
		return Verdict{}, fmt.Errorf("%w: missing riskScore", errInvalidVerdict)
	case r.Analysis == nil:
		return Verdict{}, fmt.Errorf("%w: missing analysis", errInvalidVerdict)
	case r.RedFlags == nil:
		return Verdict{}, fmt.Errorf("%w: missing redFlags", errInvalidVerdict)
	case r.Recommendation == nil:
		return Verdict{}, fmt.Errorf("%w: missing recommendation", errInvalidVerdict)
	}

	// Providers must answer with the exact enum value.
	category := models.Category(*r.Category)
	if !category.Valid() {
		return Verdict{}, fmt.Errorf("%w: category %q", errInvalidVerdict, *r.Category)
	}

	v := Verdict{
		Category:          category,
		RiskScore:         score(*r.RiskScore),
		Analysis:          strings.TrimSpace(*r.Analysis),
		RedFlags:          cleanList(*r.RedFlags, maxRedFlags),
		Recommendation:    strings.TrimSpace(*r.Recommendation),
		LinkAnalysis:      models.UnknownLinkAnalysis(),
		KeywordHighlights: cleanList(r.KeywordHighlights, 0),
	}
	if r.ConfidenceScore != nil {
		v.ConfidenceScore = score(*r.ConfidenceScore)
	}
	if r.SimilarScamsCount != nil {
		v.SimilarScamsCount = count(*r.SimilarScamsCount)
	}
	if r.LinkAnalysis != nil {
		v.LinkAnalysis = r.LinkAnalysis.normalize()
	}
	return v, nil
}

func (l rawLinkAnalysis) normalize() models.LinkAnalysis {
	out := models.LinkAnalysis{
		DomainAge:   strings.TrimSpace(l.DomainAge),
		SSLStatus:   oneOf(l.SSLStatus, models.SSLUnknown, models.SSLSecure, models.SSLNotSecure),
		MalwareScan: oneOf(l.MalwareScan, models.MalwareUnknown, models.MalwareClean, models.MalwareInfected),
	}
	if out.DomainAge == "" {
		out.DomainAge = "Unknown"
	}
	out.Redirects = count(l.Redirects)
	return out
}

// oneOf returns the allowed value matching s case-insensitively, or fallback.
func oneOf(s, fallback string, allowed ...string) string {
	s = strings.TrimSpace(s)
	for _, a := range allowed {
		if strings.EqualFold(s, a) {
			return a
		}
	}
	return fallback
}

// maxCount bounds the optional counters a provider may report.
const maxCount = 1_000_000

// score maps f onto 0..100. Clamping happens before the int conversion,
// which is undefined for values outside the int range.
func score(f float64) int {
	return clampRound(f, 100)
}

func count(f float64) int {
	return clampRound(f, maxCount)
}

func clampRound(f, maxV float64) int {
	if math.IsNaN(f) {
		return 0
	}
	return int(math.Round(math.Max(0, math.Min(maxV, f))))
}

// cleanList trims entries, drops blanks and keeps at most limit (0 = all).
func cleanList(in []string, limit int) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
