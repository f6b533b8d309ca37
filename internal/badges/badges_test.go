package badges

import (
	"testing"

	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/models"
)

func TestEarned(t *testing.T) {
	tests := []struct {
		name string
		user models.User
		want []ID
	}{
		{"none", models.User{ReportsCount: 9, VotesCount: 19, CommentsCount: 4}, nil},
		{"thresholds", models.User{ReportsCount: 10, VotesCount: 20, CommentsCount: 5}, []ID{ScamSpotter, VerifiedContributor, CommunityHelper}},
		{"votes only", models.User{VotesCount: 25}, []ID{VerifiedContributor}},
		{"ben", models.User{ReportsCount: 11, VotesCount: 25, CommentsCount: 8}, []ID{ScamSpotter, VerifiedContributor, CommunityHelper}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Earned(tt.user)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d badges, want %d", len(got), len(tt.want))
			}
			for i := range tt.want {
				if got[i].ID != tt.want[i] {
					t.Errorf("badge %d = %s, want %s", i, got[i].ID, tt.want[i])
				}
				if !Has(tt.user, tt.want[i]) {
					t.Errorf("Has(%s) = false", tt.want[i])
				}
			}
		})
	}
}

func TestAllReturnsCopy(t *testing.T) {
	all := All()
	if len(all) != 3 {
		t.Fatalf("expected 3 badges, got %d", len(all))
	}
	all[0].Name = "changed"
	if All()[0].Name != "Scam Spotter" {
		t.Error("All must not expose the catalogue")
	}
}
