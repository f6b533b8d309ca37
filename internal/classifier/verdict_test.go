package classifier

import (
	"errors"
	"testing"

	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/models"
)

const validReply = `{"category":"SCAM","riskScore":92,"confidenceScore":88,"analysis":"Asks for a fee.","redFlags":["Fee"],"recommendation":"Likely scam — stay away","linkAnalysis":{"domainAge":"New","sslStatus":"not secure","redirects":2,"malwareScan":"weird"},"keywordHighlights":["fee"],"similarScamsCount":4}`

func TestParseVerdict(t *testing.T) {
	v, err := ParseVerdict(validReply)
	if err != nil {
		t.Fatalf("ParseVerdict: %v", err)
	}
	if v.Category != models.CategoryScam || v.RiskScore != 92 || v.ConfidenceScore != 88 {
		t.Errorf("unexpected verdict %+v", v)
	}
	want := models.LinkAnalysis{DomainAge: "New", SSLStatus: models.SSLNotSecure, Redirects: 2, MalwareScan: models.MalwareUnknown}
	if v.LinkAnalysis != want {
		t.Errorf("linkAnalysis = %+v, want %+v", v.LinkAnalysis, want)
	}
	if v.SimilarScamsCount != 4 {
		t.Errorf("similarScamsCount = %d", v.SimilarScamsCount)
	}
}

func TestParseVerdictExtractsJSON(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"json fence", "```json\n" + validReply + "\n```"},
		{"bare fence", "```\n" + validReply + "\n```"},
		{"surrounding prose", "Here is the result: " + validReply + " Hope this helps."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ParseVerdict(tt.content)
			if err != nil {
				t.Fatalf("ParseVerdict: %v", err)
			}
			if v.Category != models.CategoryScam {
				t.Errorf("category = %s", v.Category)
			}
		})
	}
}

func TestParseVerdictNormalizes(t *testing.T) {
	v, err := ParseVerdict(`{"category":"INTERNSHIP","riskScore":140.4,"confidenceScore":-3,"analysis":"ok","redFlags":["a"," ","b","c","d","e","f"],"recommendation":"Safe to apply"}`)
	if err != nil {
		t.Fatalf("ParseVerdict: %v", err)
	}
	if v.Category != models.CategoryInternship {
		t.Errorf("category = %s", v.Category)
	}
	if v.RiskScore != 100 || v.ConfidenceScore != 0 {
		t.Errorf("scores not clamped: %d/%d", v.RiskScore, v.ConfidenceScore)
	}
	if len(v.RedFlags) != 5 || v.RedFlags[4] != "e" {
		t.Errorf("redFlags = %v", v.RedFlags)
	}
	if v.LinkAnalysis != models.UnknownLinkAnalysis() {
		t.Errorf("linkAnalysis = %+v", v.LinkAnalysis)
	}
	if v.KeywordHighlights == nil {
		t.Error("keywordHighlights is nil")
	}
}

func TestParseVerdictClampsHugeNumbers(t *testing.T) {
	tests := []struct {
		name       string
		value      string
		risk       int
		confidence int
		counts     int
	}{
		{"huge positive", "1e20", 100, 100, maxCount},
		{"huge negative", "-1e20", 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ParseVerdict(`{"category":"SCAM","riskScore":` + tt.value + `,"confidenceScore":` + tt.value +
				`,"analysis":"a","redFlags":[],"recommendation":"r","similarScamsCount":` + tt.value +
				`,"linkAnalysis":{"redirects":` + tt.value + `}}`)
			if err != nil {
				t.Fatalf("ParseVerdict: %v", err)
			}
			if v.RiskScore != tt.risk || v.ConfidenceScore != tt.confidence {
				t.Errorf("scores = %d/%d, want %d/%d", v.RiskScore, v.ConfidenceScore, tt.risk, tt.confidence)
			}
			if v.SimilarScamsCount != tt.counts || v.LinkAnalysis.Redirects != tt.counts {
				t.Errorf("counts = %d/%d, want %d", v.SimilarScamsCount, v.LinkAnalysis.Redirects, tt.counts)
			}
		})
	}
}

func TestParseVerdictRejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", "I cannot help with that."},
		{"missing category", `{"riskScore":1,"analysis":"a","redFlags":[],"recommendation":"r"}`},
		{"missing riskScore", `{"category":"SCAM","analysis":"a","redFlags":[],"recommendation":"r"}`},
		{"missing analysis", `{"category":"SCAM","riskScore":1,"redFlags":[],"recommendation":"r"}`},
		{"missing redFlags", `{"category":"SCAM","riskScore":1,"analysis":"a","recommendation":"r"}`},
		{"missing recommendation", `{"category":"SCAM","riskScore":1,"analysis":"a","redFlags":[]}`},
		{"lowercase category", `{"category":"scam","riskScore":1,"analysis":"a","redFlags":[],"recommendation":"r"}`},
		{"padded category", `{"category":" SCAM ","riskScore":1,"analysis":"a","redFlags":[],"recommendation":"r"}`},
		{"unknown category", `{"category":"PHISHING","riskScore":1,"analysis":"a","redFlags":[],"recommendation":"r"}`},
		{"wrong type", `{"category":"SCAM","riskScore":"high","analysis":"a","redFlags":[],"recommendation":"r"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseVerdict(tt.content); !errors.Is(err, errInvalidVerdict) {
				t.Errorf("err = %v, want errInvalidVerdict", err)
			}
		})
	}
}
