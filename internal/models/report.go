package models

import (
	"time"
)

const (
	SSLSecure    = "Secure"
	SSLNotSecure = "Not Secure"
	SSLUnknown   = "Unknown"

	MalwareClean    = "Clean"
	MalwareInfected = "Infected"
	MalwareUnknown  = "Unknown"
)

// LinkAnalysis describes the URL found in submitted content.
type LinkAnalysis struct {
	DomainAge   string `json:"domainAge"`
	SSLStatus   string `json:"sslStatus"`
	Redirects   int    `json:"redirects"`
	MalwareScan string `json:"malwareScan"`
}

// UnknownLinkAnalysis is the value used when no URL was analysed.
func UnknownLinkAnalysis() LinkAnalysis {
	return LinkAnalysis{
		DomainAge:   "Unknown",
		SSLStatus:   SSLUnknown,
		Redirects:   0,
		MalwareScan: MalwareUnknown,
	}
}

// Report is one submitted item and its classification verdict.
// Every enrichment field is always present; absence is stored as its zero value.
type Report struct {
	ID                string       `gorm:"primaryKey;size:64" json:"id"`
	Content           string       `gorm:"type:text" json:"content"`
	Category          Category     `gorm:"size:20;not null;index" json:"category"`
	RiskScore         int          `gorm:"not null;check:risk_score >= 0 AND risk_score <= 100" json:"riskScore"`
	Analysis          string       `gorm:"type:text" json:"analysis"`
	RedFlags          []string     `gorm:"type:jsonb;serializer:json" json:"redFlags"`
	Recommendation    string       `gorm:"size:255" json:"recommendation"`
	Timestamp         time.Time    `gorm:"not null;index" json:"timestamp"`
	LinkAnalysis      LinkAnalysis `gorm:"type:jsonb;serializer:json" json:"linkAnalysis"`
	KeywordHighlights []string     `gorm:"type:jsonb;serializer:json" json:"keywordHighlights"`
	SimilarScamsCount int          `json:"similarScamsCount"`
	ConfidenceScore   int          `json:"confidenceScore"`
	ImageURL          string       `gorm:"type:text" json:"imageUrl"`
	IsVerified        bool         `gorm:"not null" json:"isVerified"`
	UserID            string       `gorm:"size:64;index" json:"userId"`
	Comments          []Comment    `gorm:"-" json:"comments"`
}

func (Report) TableName() string {
	return "reports"
}

// Normalize replaces nil slices and blank link analysis fields with their
// empty values so consumers never see absent data.
func (r *Report) Normalize() {
	if r.RedFlags == nil {
		r.RedFlags = []string{}
	}
	if r.KeywordHighlights == nil {
		r.KeywordHighlights = []string{}
	}
	if r.Comments == nil {
		r.Comments = []Comment{}
	}
	if r.LinkAnalysis.DomainAge == "" {
		r.LinkAnalysis.DomainAge = "Unknown"
	}
	if r.LinkAnalysis.SSLStatus == "" {
		r.LinkAnalysis.SSLStatus = SSLUnknown
	}
	if r.LinkAnalysis.MalwareScan == "" {
		r.LinkAnalysis.MalwareScan = MalwareUnknown
	}
}
