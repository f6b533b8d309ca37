package analytics

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/models"
)

// SortOrder orders the filtered feed.
type SortOrder string

const (
	NewestFirst SortOrder = "NEWEST_FIRST"
	OldestFirst SortOrder = "OLDEST_FIRST"
	HighestRisk SortOrder = "HIGHEST_RISK"
	LowestRisk  SortOrder = "LOWEST_RISK"
)

// CategoryAll disables the category filter.
const CategoryAll = "ALL"

// FilterState fully determines the output of FilterAndSort for a snapshot.
type FilterState struct {
	SearchTerm string    `json:"searchTerm"`
	Category   string    `json:"category"`
	DateRange  DateRange `json:"dateRange"`
	RiskLevel  RiskLevel `json:"riskLevel"`
	SortOrder  SortOrder `json:"sortOrder"`
}

// DefaultFilters shows everything, newest first.
func DefaultFilters() FilterState {
	return FilterState{
		Category:  CategoryAll,
		DateRange: DateAll,
		RiskLevel: RiskAll,
		SortOrder: NewestFirst,
	}
}

// Normalize fills empty selectors with their ALL / NEWEST_FIRST defaults and
// upper-cases the enum values.
func (f FilterState) Normalize() FilterState {
	out := f
	out.Category = strings.ToUpper(strings.TrimSpace(f.Category))
	if out.Category == "" {
		out.Category = CategoryAll
	}
	out.DateRange = DateRange(strings.ToUpper(string(f.DateRange)))
	if out.DateRange == "" {
		out.DateRange = DateAll
	}
	out.RiskLevel = RiskLevel(strings.ToUpper(string(f.RiskLevel)))
	if out.RiskLevel == "" {
		out.RiskLevel = RiskAll
	}
	out.SortOrder = SortOrder(strings.ToUpper(string(f.SortOrder)))
	if out.SortOrder == "" {
		out.SortOrder = NewestFirst
	}
	return out
}

// Validate rejects selector values outside their enumerations.
func (f FilterState) Validate() error {
	if f.Category != CategoryAll && !models.Category(f.Category).Valid() {
		return fmt.Errorf("%w: category %q", ErrInvalidFilter, f.Category)
	}
	switch f.DateRange {
	case DateAll, Date24Hours, Date7Days, Date30Days:
	default:
		return fmt.Errorf("%w: dateRange %q", ErrInvalidFilter, f.DateRange)
	}
	switch f.RiskLevel {
	case RiskAll, RiskSafe, RiskModerate, RiskHigh:
	default:
		return fmt.Errorf("%w: riskLevel %q", ErrInvalidFilter, f.RiskLevel)
	}
	switch f.SortOrder {
	case NewestFirst, OldestFirst, HighestRisk, LowestRisk:
	default:
		return fmt.Errorf("%w: sortOrder %q", ErrInvalidFilter, f.SortOrder)
	}
	return nil
}

// FilterAndSort narrows reports by search term, category, date range and risk
// level, then orders them with a stable sort. The input slice is not
// modified. now is captured once by the caller.
func FilterAndSort(reports []models.Report, f FilterState, now time.Time) []models.Report {
	f = f.Normalize()
	term := strings.ToLower(f.SearchTerm)
	window, bounded := f.DateRange.Window()

	out := make([]models.Report, 0, len(reports))
	for _, r := range reports {
		if term != "" && !matchesTerm(r, term) {
			continue
		}
		if f.Category != CategoryAll && string(r.Category) != f.Category {
			continue
		}
		if bounded && !Within(r.Timestamp, now, window) {
			continue
		}
		if !f.RiskLevel.Matches(r.RiskScore) {
			continue
		}
		out = append(out, r)
	}

	SortReports(out, f.SortOrder)
	return out
}

// SortReports orders reports in place. Exact ties keep their relative order.
func SortReports(reports []models.Report, order SortOrder) {
	switch order {
	case OldestFirst:
		slices.SortStableFunc(reports, func(a, b models.Report) int {
			return a.Timestamp.Compare(b.Timestamp)
		})
	case HighestRisk:
		slices.SortStableFunc(reports, func(a, b models.Report) int {
			return b.RiskScore - a.RiskScore
		})
	case LowestRisk:
		slices.SortStableFunc(reports, func(a, b models.Report) int {
			return a.RiskScore - b.RiskScore
		})
	default:
		slices.SortStableFunc(reports, func(a, b models.Report) int {
			return b.Timestamp.Compare(a.Timestamp)
		})
	}
}

// ReportsByCategory keeps store order and returns only reports of category c.
func ReportsByCategory(reports []models.Report, c models.Category) []models.Report {
	out := make([]models.Report, 0)
	for _, r := range reports {
		if r.Category == c {
			out = append(out, r)
		}
	}
	return out
}

func matchesTerm(r models.Report, term string) bool {
	if strings.Contains(strings.ToLower(r.Content), term) ||
		strings.Contains(strings.ToLower(r.Analysis), term) {
		return true
	}
	for _, flag := range r.RedFlags {
		if strings.Contains(strings.ToLower(flag), term) {
			return true
		}
	}
	return false
}
