// Package badges decides which achievement badges a user has earned.
package badges

import "github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/models"

type ID string

const (
	ScamSpotter         ID = "SCAM_SPOTTER"
	VerifiedContributor ID = "VERIFIED_CONTRIBUTOR"
	CommunityHelper     ID = "COMMUNITY_HELPER"
)

// Badge describes an achievement and the counter threshold that unlocks it.
type Badge struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`

	check func(models.User) bool
}

var catalogue = []Badge{
	{
		ID:          ScamSpotter,
		Name:        "Scam Spotter",
		Description: "Awarded for submitting 10+ reports for AI analysis.",
		check:       func(u models.User) bool { return u.ReportsCount >= 10 },
	},
	{
		ID:          VerifiedContributor,
		Name:        "Verified Contributor",
		Description: "Awarded for casting 20+ votes in the community.",
		check:       func(u models.User) bool { return u.VotesCount >= 20 },
	},
	{
		ID:          CommunityHelper,
		Name:        "Community Helper",
		Description: "Awarded for posting 5+ helpful comments.",
		check:       func(u models.User) bool { return u.CommentsCount >= 5 },
	},
}

// All returns every badge in display order.
func All() []Badge {
	out := make([]Badge, len(catalogue))
	copy(out, catalogue)
	return out
}

// Earned returns the badges u qualifies for, in display order.
func Earned(u models.User) []Badge {
	out := make([]Badge, 0, len(catalogue))
	for _, b := range catalogue {
		if b.check(u) {
			out = append(out, b)
		}
	}
	return out
}

// Has reports whether u qualifies for badge id.
func Has(u models.User, id ID) bool {
	for _, b := range catalogue {
		if b.ID == id {
			return b.check(u)
		}
	}
	return false
}
