// Package seed provides the demo reports, users and community posts loaded
// into an empty database.
package seed

import (
	"context"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/repository"
)

// Users is the mock roster. The first user is the admin.
func Users() []models.User {
	return []models.User{
		{ID: "user-1", Username: "Alex", AvatarURL: "https://i.pravatar.cc/150?u=alex", ReportsCount: 5, VotesCount: 12, CommentsCount: 3},
		{ID: "user-2", Username: "Ben", AvatarURL: "https://i.pravatar.cc/150?u=ben", ReportsCount: 11, VotesCount: 25, CommentsCount: 8},
	}
}

// Data builds the demo dataset with timestamps relative to now.
func Data(now time.Time) repository.Data {
	now = now.UTC()
	users := Users()

	reports := []models.Report{
		{
			ID:             "mock-1",
			Content:        "Congratulations! You've won a $1000 gift card. Click here to claim: http://bit.ly/totally-legit-prize",
			Category:       models.CategoryScam,
			RiskScore:      95,
			Analysis:       "The message creates a false sense of urgency and uses a suspicious shortened URL, which are common tactics in phishing scams.",
			RedFlags:       []string{"unrealistic claims", "shortened URL", "sense of urgency"},
			Recommendation: "Confirmed scam — avoid",
			Timestamp:      now.Add(-5 * time.Minute),
		},
		{
			ID:             "mock-2",
			Content:        "Apply for our summer software engineering internship. Gain real-world experience and work with a dynamic team. Apply at https://realcompany.com/internships",
			Category:       models.CategoryInternship,
			RiskScore:      10,
			Analysis:       "This appears to be a standard internship posting with a link to a plausible corporate domain.",
			Recommendation: "Safe to apply",
			Timestamp:      now.Add(-30 * time.Minute),
		},
		{
			ID:             "mock-3",
			Content:        "Get 50% off on all electronics this weekend only! Shop now at www.techdeals.com",
			Category:       models.CategoryPromotion,
			RiskScore:      5,
			Analysis:       "This is a typical promotional message with a clear offer and a direct link to a retail site.",
			Recommendation: "Safe to apply",
			Timestamp:      now.Add(-2 * time.Hour),
		},
	}
	for i := range reports {
		reports[i].Normalize()
	}

	posts := []models.CommunityPost{
		{
			ID:        "comm-1",
			Content:   "Got this email offer for a remote data entry job, seems too good to be true. They want me to buy equipment through them. What do you guys think? link: a-fake-job-site.com",
			Timestamp: now.Add(-5 * time.Hour),
			Comments: []models.Comment{{
				ID:         "c1",
				TargetKind: models.CommentOnPost,
				TargetID:   "comm-1",
				Author:     users[1].AsAuthor(),
				Content:    "Definitely a scam. Legitimate companies don't ask you to pay for equipment upfront.",
				Timestamp:  now.Add(-4 * time.Hour),
			}},
			Votes: []models.CommunityVote{
				{PostID: "comm-1", UserID: "user-2", Category: models.CategoryScam, Position: 0},
				{PostID: "comm-1", UserID: "user-3-guest", Category: models.CategoryScam, Position: 1},
				{PostID: "comm-1", UserID: "user-4-guest", Category: models.CategoryInternship, Position: 2},
			},
		},
		{
			ID:        "comm-2",
			Content:   "Is this influencer merch drop legit? The website looks a bit new. shop-merch-now.io",
			Timestamp: now.Add(-48 * time.Hour),
			Comments:  []models.Comment{},
			Votes: []models.CommunityVote{
				{PostID: "comm-2", UserID: "user-1", Category: models.CategoryPromotion, Position: 0},
			},
		},
	}

	return repository.Data{Reports: reports, Users: users, Posts: posts}
}

// Run seeds repo when it holds no users yet. It reports whether it seeded.
func Run(ctx context.Context, repo repository.Repository, now time.Time) (bool, error) {
	empty, err := repo.Empty(ctx)
	if err != nil {
		return false, err
	}
	if !empty {
		return false, nil
	}
	d := Data(now)
	if err := repo.Seed(ctx, d); err != nil {
		return false, err
	}
	slog.Info("seeded demo data", "reports", len(d.Reports), "users", len(d.Users), "posts", len(d.Posts))
	return true, nil
}
