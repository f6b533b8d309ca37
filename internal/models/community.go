package models

import "time"

// CommunityVote is one user's category guess for a post.
// (post_id, user_id) is unique: a second vote replaces the first.
type CommunityVote struct {
	PostID   string   `gorm:"primaryKey;size:64" json:"-"`
	UserID   string   `gorm:"primaryKey;size:64" json:"userId"`
	Category Category `gorm:"size:20;not null" json:"category"`
	Position int      `gorm:"not null" json:"-"`
}

func (CommunityVote) TableName() string {
	return "community_votes"
}

// CommunityPost is content shared for community review.
type CommunityPost struct {
	ID        string          `gorm:"primaryKey;size:64" json:"id"`
	Content   string          `gorm:"type:text;not null" json:"content"`
	Timestamp time.Time       `gorm:"not null;index" json:"timestamp"`
	Comments  []Comment       `gorm:"-" json:"comments"`
	Votes     []CommunityVote `gorm:"-" json:"votes"`
}

func (CommunityPost) TableName() string {
	return "community_posts"
}
