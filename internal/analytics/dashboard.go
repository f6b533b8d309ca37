package analytics

import (
	"slices"
	"time"

	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/models"
	"gonum.org/v1/gonum/stat"
)

const (
	trendingLimit    = 5
	recentScamsLimit = 3
	timelineDays     = 7
	trendingWindow   = 7 * 24 * time.Hour

	dayKeyLayout   = "2006-01-02"
	dayLabelLayout = "Jan 2"
)

// Slice is one named, coloured chart segment.
type Slice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Fill  string `json:"fill"`
}

// DayCount is one point of the reports-over-time series.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// KeywordCount is one trending red flag.
type KeywordCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Dashboard summarises the whole report store.
type Dashboard struct {
	TotalReports          int                     `json:"totalReports"`
	ScamCount             int                     `json:"scamCount"`
	SafeLinksCount        int                     `json:"safeLinksCount"`
	CommunityMembers      int                     `json:"communityMembers"`
	VerifiedCount         int                     `json:"verifiedCount"`
	AverageRiskScore      float64                 `json:"averageRiskScore"`
	CategoryCounts        map[models.Category]int `json:"categoryCounts"`
	RiskScoreDistribution []Slice                 `json:"riskScoreDistribution"`
	ReportsOverTime       []DayCount              `json:"reportsOverTime"`
	CategoryBreakdown     []Slice                 `json:"categoryBreakdown"`
	TrendingScams         []KeywordCount          `json:"trendingScams"`
	RecentScams           []models.Report         `json:"recentScams"`
}

var riskBuckets = []struct {
	level RiskLevel
	name  string
	fill  string
}{
	{RiskSafe, "Safe (0-30)", "#22c55e"},
	{RiskModerate, "Moderate (31-60)", "#f59e0b"},
	{RiskHigh, "High (61-100)", "#ef4444"},
}

// BuildDashboard aggregates every report; no filter is applied.
// communityMembers is the roster size. Calendar days are taken in now's
// location.
func BuildDashboard(reports []models.Report, communityMembers int, now time.Time) Dashboard {
	d := Dashboard{
		TotalReports:     len(reports),
		CommunityMembers: communityMembers,
		CategoryCounts:   make(map[models.Category]int, len(models.Categories)),
	}

	bands := make(map[RiskLevel]int, len(riskBuckets))
	scores := make([]float64, 0, len(reports))
	for _, r := range reports {
		if isScam(r) {
			d.ScamCount++
		}
		if r.RiskScore <= SafeMaxScore {
			d.SafeLinksCount++
		}
		if r.IsVerified {
			d.VerifiedCount++
		}
		bands[BandOf(r.RiskScore)]++
		d.CategoryCounts[r.Category]++
		scores = append(scores, float64(r.RiskScore))
	}
	if len(scores) > 0 {
		d.AverageRiskScore = stat.Mean(scores, nil)
	}

	d.RiskScoreDistribution = make([]Slice, 0, len(riskBuckets))
	for _, b := range riskBuckets {
		d.RiskScoreDistribution = append(d.RiskScoreDistribution, Slice{Name: b.name, Value: bands[b.level], Fill: b.fill})
	}

	d.CategoryBreakdown = make([]Slice, 0, len(models.Categories))
	for _, c := range models.Categories {
		if _, ok := d.CategoryCounts[c.ID]; !ok {
			d.CategoryCounts[c.ID] = 0
		}
		d.CategoryBreakdown = append(d.CategoryBreakdown, Slice{Name: c.Name, Value: d.CategoryCounts[c.ID], Fill: c.Color})
	}

	d.ReportsOverTime = reportsOverTime(reports, now)
	d.TrendingScams = TrendingRedFlags(reports, now)
	d.RecentScams = RecentScams(reports)
	return d
}

// reportsOverTime counts reports per calendar day for the last seven days,
// oldest day first.
func reportsOverTime(reports []models.Report, now time.Time) []DayCount {
	loc := now.Location()
	y, m, day := now.Date()
	today := time.Date(y, m, day, 0, 0, 0, 0, loc)

	index := make(map[string]int, timelineDays)
	series := make([]DayCount, timelineDays)
	for i := 0; i < timelineDays; i++ {
		d := today.AddDate(0, 0, i-(timelineDays-1))
		index[d.Format(dayKeyLayout)] = i
		series[i] = DayCount{Date: d.Format(dayLabelLayout)}
	}

	for _, r := range reports {
		if r.Timestamp.IsZero() {
			continue
		}
		if i, ok := index[r.Timestamp.In(loc).Format(dayKeyLayout)]; ok {
			series[i].Count++
		}
	}
	return series
}

// TrendingRedFlags counts red flags of scams reported in the last seven days
// and returns the five most frequent. Equal counts keep first-seen order.
func TrendingRedFlags(reports []models.Report, now time.Time) []KeywordCount {
	counts := make([]KeywordCount, 0)
	index := make(map[string]int)
	for _, r := range reports {
		if !isScam(r) || !Within(r.Timestamp, now, trendingWindow) {
			continue
		}
		for _, flag := range r.RedFlags {
			if i, ok := index[flag]; ok {
				counts[i].Count++
				continue
			}
			index[flag] = len(counts)
			counts = append(counts, KeywordCount{Name: flag, Count: 1})
		}
	}

	slices.SortStableFunc(counts, func(a, b KeywordCount) int {
		return b.Count - a.Count
	})
	if len(counts) > trendingLimit {
		counts = counts[:trendingLimit]
	}
	return counts
}

// RecentScams returns up to three scams scoring above AlertMinScore, newest
// first.
func RecentScams(reports []models.Report) []models.Report {
	out := make([]models.Report, 0, recentScamsLimit)
	for _, r := range reports {
		if isScam(r) && r.RiskScore > AlertMinScore {
			out = append(out, r)
		}
	}
	SortReports(out, NewestFirst)
	if len(out) > recentScamsLimit {
		out = out[:recentScamsLimit]
	}
	return out
}
