// Package analytics derives report views: the filtered and sorted feed and
// the dashboard aggregates. Everything here is pure and recomputed on demand.
package analytics

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/models"
)

// Risk band upper bounds. A score equal to a bound belongs to the lower band.
const (
	SafeMaxScore     = 30
	ModerateMaxScore = 60

	// Scams above this score are shown as recent high-risk alerts.
	AlertMinScore = 70
)

// RiskLevel selects a risk band.
type RiskLevel string

const (
	RiskAll      RiskLevel = "ALL"
	RiskSafe     RiskLevel = "SAFE"
	RiskModerate RiskLevel = "MODERATE"
	RiskHigh     RiskLevel = "HIGH"
)

// BandOf returns the band a score falls in. The three bands partition every
// integer: SAFE <= 30 < MODERATE <= 60 < HIGH.
func BandOf(score int) RiskLevel {
	switch {
	case score <= SafeMaxScore:
		return RiskSafe
	case score <= ModerateMaxScore:
		return RiskModerate
	default:
		return RiskHigh
	}
}

// Matches reports whether score satisfies the selector.
func (l RiskLevel) Matches(score int) bool {
	if l == RiskAll || l == "" {
		return true
	}
	return BandOf(score) == l
}

// DateRange selects how far back reports are kept.
type DateRange string

const (
	DateAll     DateRange = "ALL"
	Date24Hours DateRange = "24_HOURS"
	Date7Days   DateRange = "7_DAYS"
	Date30Days  DateRange = "30_DAYS"
)

// Window returns the look-back duration, or false for ALL.
func (d DateRange) Window() (time.Duration, bool) {
	switch d {
	case Date24Hours:
		return 24 * time.Hour, true
	case Date7Days:
		return 7 * 24 * time.Hour, true
	case Date30Days:
		return 30 * 24 * time.Hour, true
	}
	return 0, false
}

// Within reports whether ts is at or after now minus window. A zero ts is an
// unknown instant and never falls inside a bounded window.
func Within(ts, now time.Time, window time.Duration) bool {
	if ts.IsZero() {
		return false
	}
	return !ts.Before(now.Add(-window))
}

func isScam(r models.Report) bool {
	return r.Category == models.CategoryScam
}
