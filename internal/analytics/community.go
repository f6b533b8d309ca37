package analytics

import (
	"slices"

	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/models"
)

// VoteTally is one category's share of a post's votes.
type VoteTally struct {
	Category   models.Category `json:"category"`
	Name       string          `json:"name"`
	Color      string          `json:"color"`
	Count      int             `json:"count"`
	Percentage float64         `json:"percentage"`
}

// VoteTallies returns every category with its count and percentage, most
// voted first. Equal counts keep canonical category order. A post with no
// votes has no tallies.
func VoteTallies(votes []models.CommunityVote) []VoteTally {
	if len(votes) == 0 {
		return []VoteTally{}
	}
	counts := make(map[models.Category]int, len(models.Categories))
	for _, v := range votes {
		counts[v.Category]++
	}

	out := make([]VoteTally, 0, len(models.Categories))
	for _, c := range models.Categories {
		n := counts[c.ID]
		out = append(out, VoteTally{
			Category:   c.ID,
			Name:       c.Name,
			Color:      c.Color,
			Count:      n,
			Percentage: float64(n) / float64(len(votes)) * 100,
		})
	}
	slices.SortStableFunc(out, func(a, b VoteTally) int {
		return b.Count - a.Count
	})
	return out
}
